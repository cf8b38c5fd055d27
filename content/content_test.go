package content_test

import (
	"testing"

	"github.com/nathoo/slotline/content"
	"github.com/nathoo/slotline/engine"
	"github.com/nathoo/slotline/loader"
)

func TestDefault_Loads(t *testing.T) {
	defs, err := loader.LoadFS(content.Default, content.DefaultDir)
	if err != nil {
		t.Fatalf("default encounter failed to load: %v", err)
	}
	if defs.Encounter.Title != "The Slotline" {
		t.Errorf("Title = %q", defs.Encounter.Title)
	}
	if len(defs.CardOrder) == 0 {
		t.Error("expected cards")
	}
}

func TestDefault_Plays(t *testing.T) {
	defs, err := loader.LoadFS(content.Default, content.DefaultDir)
	if err != nil {
		t.Fatal(err)
	}
	e := engine.New(defs)

	if !e.Timeline.Occupied(1) {
		t.Fatal("expected the opening wave at T1")
	}
	for i := 0; i < 30 && !e.State.GameOver; i++ {
		e.Step("end")
	}
	if !e.State.GameOver {
		t.Error("expected an idle player to be overwhelmed within 30 turns")
	}
	if e.State.Won {
		t.Error("an idle player should not win")
	}
}

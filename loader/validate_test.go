package loader

import (
	"strings"
	"testing"

	"github.com/nathoo/slotline/engine/state"
	"github.com/nathoo/slotline/types"
)

// validDefs returns a minimal valid Defs for testing.
func validDefs() *state.Defs {
	return &state.Defs{
		Encounter: types.EncounterDef{
			Title:      "Test",
			Slots:      5,
			PlayerHP:   30,
			Energy:     3,
			HandSize:   3,
			KillsToWin: 5,
		},
		Cards: map[string]types.CardDef{
			"strike": {ID: "strike", Name: "Strike", Op: "attack", Cost: 1, Weight: 1},
		},
		CardOrder: []string{"strike"},
	}
}

func TestValidate_ValidDefs(t *testing.T) {
	if err := validate(validDefs()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_EmptyTitle(t *testing.T) {
	defs := validDefs()
	defs.Encounter.Title = ""

	ve := mustFail(t, defs)
	assertContains(t, ve.Errors, "title is required")
}

func TestValidate_TrackSize(t *testing.T) {
	defs := validDefs()
	defs.Encounter.Slots = 0

	ve := mustFail(t, defs)
	assertContains(t, ve.Errors, "slots must be at least 1")
}

func TestValidate_NoCards(t *testing.T) {
	defs := validDefs()
	defs.Cards = map[string]types.CardDef{}
	defs.CardOrder = nil

	ve := mustFail(t, defs)
	assertContains(t, ve.Errors, "at least one Card")
}

func TestValidate_ReservedGlitchID(t *testing.T) {
	defs := validDefs()
	defs.Cards[state.GlitchCardID] = types.CardDef{ID: state.GlitchCardID, Op: "attack", Weight: 1}
	defs.CardOrder = append(defs.CardOrder, state.GlitchCardID)

	ve := mustFail(t, defs)
	assertContains(t, ve.Errors, "reserved")
}

func TestValidate_NoDrawableCard(t *testing.T) {
	defs := validDefs()
	defs.Cards["strike"] = types.CardDef{ID: "strike", Op: "attack", Cost: 1}

	ve := mustFail(t, defs)
	assertContains(t, ve.Errors, "no card has a positive weight")
	assertContains(t, ve.Warnings, "will never be drawn")
}

func TestValidate_GlitchOpNotDeclarable(t *testing.T) {
	defs := validDefs()
	defs.Cards["strike"] = types.CardDef{ID: "strike", Op: "glitch", Weight: 1}

	ve := mustFail(t, defs)
	assertContains(t, ve.Errors, `unknown op "glitch"`)
}

func TestValidate_WaveSpawnOutsideTrack(t *testing.T) {
	defs := validDefs()
	defs.Waves = []types.WaveDef{
		{Turn: 1, Spawns: []types.SpawnDef{
			{Slot: 5, Action: types.ActionAttack, Magnitude: 3, Species: types.SpeciesNormal},
		}},
	}

	ve := mustFail(t, defs)
	assertContains(t, ve.Errors, "outside the 5-slot track")
}

func TestValidate_WaveOverwriteWarning(t *testing.T) {
	defs := validDefs()
	defs.Waves = []types.WaveDef{
		{Turn: 2, Spawns: []types.SpawnDef{
			{Slot: 2, Action: types.ActionAttack, Magnitude: 3, Species: types.SpeciesNormal},
			{Slot: 2, Action: types.ActionDefend, Magnitude: 3, Species: types.SpeciesArmor},
		}},
	}

	// Warnings alone do not fail validation.
	if err := validate(defs); err != nil {
		t.Fatalf("expected warnings only, got: %v", err)
	}
}

func TestValidate_UnknownSpecies(t *testing.T) {
	defs := validDefs()
	defs.Spawner = types.SpawnerDef{
		Every: 1, Slot: -1, Chance: 100,
		Entries: []types.SpawnEntry{{Weight: 1, Action: types.ActionAttack, Min: 1, Max: 2, Species: "DRAGON"}},
	}

	ve := mustFail(t, defs)
	assertContains(t, ve.Errors, `unknown species "DRAGON"`)
}

func TestValidate_SpawnerRange(t *testing.T) {
	defs := validDefs()
	defs.Spawner = types.SpawnerDef{
		Every: 0, Slot: 9, Chance: 100,
		Entries: []types.SpawnEntry{{Weight: 1, Action: types.ActionAttack, Min: 5, Max: 1, Species: types.SpeciesNormal}},
	}

	ve := mustFail(t, defs)
	assertContains(t, ve.Errors, "spawner slot T9")
	assertContains(t, ve.Errors, "every must be at least 1")
	assertContains(t, ve.Errors, "min 5 > max 1")
}

func TestValidate_HandlerKindAndSpecies(t *testing.T) {
	defs := validDefs()
	defs.Handlers = []types.EventHandler{
		{Kind: "teleported"},
		{Kind: types.EventArmorHit, Species: "GHOST"},
		{Kind: types.EventEnemyDefeated, Effects: []types.Effect{{Type: "explode"}}},
	}

	ve := mustFail(t, defs)
	assertContains(t, ve.Errors, "unknown event kind")
	assertContains(t, ve.Errors, `unknown species "GHOST"`)
	assertContains(t, ve.Errors, `unknown effect type "explode"`)
}

func TestValidate_CardEffects(t *testing.T) {
	defs := validDefs()
	defs.Cards["strike"] = types.CardDef{
		ID: "strike", Op: "attack", Cost: 1, Weight: 1,
		Effects: []types.Effect{{Type: "give_item"}},
	}

	ve := mustFail(t, defs)
	assertContains(t, ve.Errors, `card "strike": unknown effect type`)
}

func mustFail(t *testing.T, defs *state.Defs) *ValidationError {
	t.Helper()
	err := validate(defs)
	if err == nil {
		t.Fatal("expected validation error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve
}

func assertContains(t *testing.T, strs []string, substr string) {
	t.Helper()
	for _, s := range strs {
		if strings.Contains(s, substr) {
			return
		}
	}
	t.Errorf("expected one of %v to contain %q", strs, substr)
}

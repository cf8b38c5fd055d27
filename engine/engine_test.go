package engine

import (
	"strings"
	"testing"

	"github.com/nathoo/slotline/engine/state"
	"github.com/nathoo/slotline/types"
)

// testDefs builds a five-slot encounter with a single card type so every
// draw is deterministic: T1 attacks for 10, T3 guards for 5.
func testDefs() *state.Defs {
	return &state.Defs{
		Encounter: types.EncounterDef{
			Title:    "Test Encounter",
			Slots:    5,
			PlayerHP: 30,
			Energy:   3,
			HandSize: 3,
			Seed:     7,
		},
		Cards: map[string]types.CardDef{
			"strike": {ID: "strike", Name: "Strike", Op: "attack", Cost: 1, Weight: 1},
		},
		CardOrder: []string{"strike"},
		Waves: []types.WaveDef{
			{Turn: 1, Spawns: []types.SpawnDef{
				{Slot: 1, Action: types.ActionAttack, Magnitude: 10},
				{Slot: 3, Action: types.ActionDefend, Magnitude: 5},
			}},
		},
	}
}

func outputContains(output []string, substr string) bool {
	for _, line := range output {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func hasEvent(evts []types.Event, kind types.EventKind) bool {
	for _, ev := range evts {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestNew_OpeningTurn(t *testing.T) {
	e := New(testDefs())

	if e.State.Turn != 1 {
		t.Errorf("expected turn 1, got %d", e.State.Turn)
	}
	if e.State.HP != 30 || e.State.MaxHP != 30 {
		t.Errorf("expected 30/30 HP, got %d/%d", e.State.HP, e.State.MaxHP)
	}
	if e.State.Energy != 3 {
		t.Errorf("expected 3 energy, got %d", e.State.Energy)
	}
	if len(e.State.Hand) != 3 {
		t.Fatalf("expected 3 cards in hand, got %d", len(e.State.Hand))
	}
	if !e.Timeline.Occupied(1) || !e.Timeline.Occupied(3) {
		t.Errorf("expected wave 1 at T1 and T3")
	}
	if e.RunID == "" {
		t.Error("expected a run ID")
	}
	if !outputContains(e.Opening(), "Turn 1") {
		t.Errorf("expected opening narration, got %v", e.Opening())
	}
}

func TestStep_AttackKillsIntent(t *testing.T) {
	e := New(testDefs())

	result := e.Step("attack t1")
	if e.Timeline.Occupied(1) {
		t.Error("expected T1 to be cleared")
	}
	if e.State.Kills != 1 {
		t.Errorf("expected 1 kill, got %d", e.State.Kills)
	}
	if e.State.Energy != 2 {
		t.Errorf("expected 2 energy left, got %d", e.State.Energy)
	}
	if len(e.State.Hand) != 2 {
		t.Errorf("expected 2 cards left, got %d", len(e.State.Hand))
	}
	if !hasEvent(result.Events, types.EventCardPlayed) || !hasEvent(result.Events, types.EventEnemyDefeated) {
		t.Errorf("expected card_played and enemy_defeated, got %v", result.Events)
	}
	if !outputContains(result.Output, "destroyed") {
		t.Errorf("expected destruction narration, got %v", result.Output)
	}
}

func TestStep_PlayByIndex(t *testing.T) {
	e := New(testDefs())

	e.Step("play 1 3")
	if e.Timeline.Occupied(3) {
		t.Error("expected T3 to be cleared")
	}
	if len(e.State.Hand) != 2 {
		t.Errorf("expected 2 cards left, got %d", len(e.State.Hand))
	}
}

func TestStep_PlayBadIndex(t *testing.T) {
	e := New(testDefs())

	result := e.Step("play 9 t1")
	if !outputContains(result.Output, "Choose 1-3") {
		t.Errorf("expected index hint, got %v", result.Output)
	}
	if e.State.Energy != 3 {
		t.Errorf("energy should be untouched, got %d", e.State.Energy)
	}
}

func TestStep_AttackNeedsSlot(t *testing.T) {
	e := New(testDefs())

	result := e.Step("attack")
	if !outputContains(result.Output, "on which slot") {
		t.Errorf("expected slot prompt, got %v", result.Output)
	}
	if len(e.State.Hand) != 3 {
		t.Errorf("card should stay in hand, got %d cards", len(e.State.Hand))
	}
}

func TestStep_AttackEmptySlot(t *testing.T) {
	e := New(testDefs())

	result := e.Step("attack t0")
	if !outputContains(result.Output, "T0 is empty") {
		t.Errorf("expected empty slot message, got %v", result.Output)
	}
	if e.State.Energy != 3 {
		t.Errorf("energy should be untouched, got %d", e.State.Energy)
	}
}

func TestStep_SlotOutOfRange(t *testing.T) {
	e := New(testDefs())

	result := e.Step("attack t9")
	if !outputContains(result.Output, "no slot T9") {
		t.Errorf("expected out-of-range message, got %v", result.Output)
	}
}

func TestStep_NotEnoughEnergy(t *testing.T) {
	e := New(testDefs())
	e.State.Energy = 0

	result := e.Step("attack t1")
	if !outputContains(result.Output, "Not enough energy") {
		t.Errorf("expected energy gate, got %v", result.Output)
	}
	if !e.Timeline.Occupied(1) {
		t.Error("T1 should survive an unpaid card")
	}
}

func TestStep_MissingCard(t *testing.T) {
	e := New(testDefs())

	result := e.Step("thunder t1")
	if !outputContains(result.Output, "no thunder card") {
		t.Errorf("expected missing card message, got %v", result.Output)
	}
}

func TestStep_UnknownVerb(t *testing.T) {
	e := New(testDefs())

	result := e.Step("dance")
	if !outputContains(result.Output, "don't know how") {
		t.Errorf("expected unknown verb message, got %v", result.Output)
	}
}

func TestStep_EmptyInput(t *testing.T) {
	e := New(testDefs())

	result := e.Step("")
	if !outputContains(result.Output, "What do you want to do?") {
		t.Errorf("expected prompt, got %v", result.Output)
	}
}

func TestStep_CommandLogged(t *testing.T) {
	e := New(testDefs())

	e.Step("look")
	e.Step("hand")
	if len(e.State.CommandLog) != 2 || e.State.CommandLog[1] != "hand" {
		t.Errorf("unexpected command log %v", e.State.CommandLog)
	}
}

func TestStep_LookShowsTrack(t *testing.T) {
	e := New(testDefs())

	result := e.Step("look")
	if !outputContains(result.Output, "T1 [ATK 10]") {
		t.Errorf("expected T1 on the track, got %v", result.Output)
	}
	if !outputContains(result.Output, "T3 [DEF 5]") {
		t.Errorf("expected T3 on the track, got %v", result.Output)
	}
	if !outputContains(result.Output, "HP 30/30") {
		t.Errorf("expected status line, got %v", result.Output)
	}
}

func TestStep_EndTurnAdvancesAndResolves(t *testing.T) {
	e := New(testDefs())

	e.Step("end")
	if e.State.Turn != 2 {
		t.Fatalf("expected turn 2, got %d", e.State.Turn)
	}
	it, ok := e.Timeline.At(0)
	if !ok || it.Magnitude() != 10 {
		t.Fatalf("expected the attack at T0")
	}
	if !e.Timeline.Occupied(2) {
		t.Error("expected the guard at T2")
	}
	if e.State.Energy != 3 || len(e.State.Hand) != 3 {
		t.Errorf("expected energy and hand refilled, got %d energy %d cards", e.State.Energy, len(e.State.Hand))
	}

	result := e.Step("end")
	if e.State.HP != 20 {
		t.Errorf("expected 20 HP after the front attack, got %d", e.State.HP)
	}
	if !hasEvent(result.Events, types.EventEnemyAction) || !hasEvent(result.Events, types.EventPlayerDamaged) {
		t.Errorf("expected enemy_action and player_damaged, got %v", result.Events)
	}
	if e.State.Kills != 0 {
		t.Errorf("a resolved intent is not a kill, got %d", e.State.Kills)
	}
}

func TestStep_EndTurnDoesNotNarrateAdvance(t *testing.T) {
	e := New(testDefs())

	result := e.Step("end")
	if !hasEvent(result.Events, types.EventIntentMoved) {
		t.Fatalf("expected the track to advance, got %v", result.Events)
	}
	if outputContains(result.Output, "moves from") {
		t.Errorf("routine advancement should not be narrated, got %v", result.Output)
	}
}

func TestStep_PushNarratesMove(t *testing.T) {
	defs := testDefs()
	defs.Cards["shove"] = types.CardDef{ID: "shove", Name: "Shove", Op: "push", Cost: 1}
	defs.CardOrder = append(defs.CardOrder, "shove")
	e := New(defs)
	e.State.Hand = []string{"shove"}

	result := e.Step("push t3")
	if !outputContains(result.Output, "moves from T3 to T4") {
		t.Errorf("expected the push to be narrated, got %v", result.Output)
	}

	// The flag must not leak into the next turn's forced moves.
	e.Step("end")
	e.State.Hand = []string{"shove"}
	result = e.Step("push t0")
	if !outputContains(result.Output, "moves from T0 to T1") {
		t.Errorf("expected the push after end to be narrated, got %v", result.Output)
	}
}

func TestDescribeHand_UnknownCard(t *testing.T) {
	e := New(testDefs())
	e.State.Hand = []string{"strike", "ghost"}

	got := e.describeHand()
	if got != "Hand: 1) Strike [1]  2) ghost [?]" {
		t.Errorf("unexpected hand line %q", got)
	}
}

func TestStep_DefendResolvesHarmlessly(t *testing.T) {
	defs := testDefs()
	defs.Waves = []types.WaveDef{
		{Turn: 1, Spawns: []types.SpawnDef{{Slot: 0, Action: types.ActionDefend, Magnitude: 5}}},
	}
	e := New(defs)

	result := e.Step("end")
	if e.State.HP != 30 {
		t.Errorf("defend should not hurt, got %d HP", e.State.HP)
	}
	if !outputContains(result.Output, "braces") {
		t.Errorf("expected brace narration, got %v", result.Output)
	}
	if e.Timeline.Occupied(0) {
		t.Error("resolved intent should leave the track")
	}
}

func TestStep_BlockAbsorbsDamage(t *testing.T) {
	defs := testDefs()
	defs.Cards = map[string]types.CardDef{
		"guard": {ID: "guard", Name: "Guard", Op: "block", Cost: 1, Amount: 6, Weight: 1},
	}
	defs.CardOrder = []string{"guard"}
	defs.Waves = []types.WaveDef{
		{Turn: 1, Spawns: []types.SpawnDef{{Slot: 0, Action: types.ActionAttack, Magnitude: 10}}},
	}
	e := New(defs)

	e.Step("block")
	if e.State.Block != 6 {
		t.Fatalf("expected 6 block, got %d", e.State.Block)
	}
	result := e.Step("end")
	if e.State.HP != 26 {
		t.Errorf("expected 26 HP, got %d", e.State.HP)
	}
	if !hasEvent(result.Events, types.EventPlayerBlocked) {
		t.Errorf("expected player_blocked, got %v", result.Events)
	}
	if e.State.Block != 0 {
		t.Errorf("block should reset at turn start, got %d", e.State.Block)
	}
}

func TestStep_RageEscalates(t *testing.T) {
	defs := testDefs()
	defs.Encounter.RagePerTurn = 2
	e := New(defs)

	e.Step("end")
	it, _ := e.Timeline.At(0)
	if it.Magnitude() != 12 {
		t.Errorf("expected 12 after +2 rage, got %d", it.Magnitude())
	}

	e.Step("end")
	if e.State.Rage != 4 {
		t.Errorf("expected accumulated rage 4, got %d", e.State.Rage)
	}
	// The 10-point attack resolved at 12 on the second end.
	if e.State.HP != 18 {
		t.Errorf("expected 18 HP, got %d", e.State.HP)
	}
}

func TestStep_BombChainCountsKills(t *testing.T) {
	defs := testDefs()
	defs.Waves = []types.WaveDef{
		{Turn: 1, Spawns: []types.SpawnDef{
			{Slot: 1, Action: types.ActionAttack, Magnitude: 3},
			{Slot: 2, Action: types.ActionAttack, Magnitude: 3, Species: types.SpeciesBomb},
			{Slot: 3, Action: types.ActionAttack, Magnitude: 3},
		}},
	}
	e := New(defs)

	result := e.Step("attack t2")
	if e.State.Kills != 3 {
		t.Errorf("expected 3 kills from the chain, got %d", e.State.Kills)
	}
	if !outputContains(result.Output, "detonates") {
		t.Errorf("expected detonation narration, got %v", result.Output)
	}
	if e.Timeline.Count() != 0 {
		t.Errorf("expected an empty track, got %d", e.Timeline.Count())
	}
}

func TestStep_HackerCorruptsHand(t *testing.T) {
	defs := testDefs()
	defs.Waves = []types.WaveDef{
		{Turn: 1, Spawns: []types.SpawnDef{{Slot: 4, Action: types.ActionAttack, Magnitude: 2, Species: types.SpeciesHacker}}},
	}
	e := New(defs)

	idx := -1
	for i, id := range e.State.Hand {
		if id == state.GlitchCardID {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("expected a glitch card in %v", e.State.Hand)
	}

	result := e.Step("play " + string(rune('1'+idx)))
	if !outputContains(result.Output, "static") {
		t.Errorf("expected glitch narration, got %v", result.Output)
	}
	if e.State.Energy != 2 {
		t.Errorf("glitch should cost 1 energy, got %d left", e.State.Energy)
	}
	if !e.Timeline.Occupied(4) {
		t.Error("glitch should do nothing to the track")
	}
}

func TestStep_VictoryByKills(t *testing.T) {
	defs := testDefs()
	defs.Encounter.KillsToWin = 1
	e := New(defs)

	result := e.Step("attack t1")
	if !e.State.GameOver || !e.State.Won {
		t.Fatalf("expected a win, got over=%v won=%v", e.State.GameOver, e.State.Won)
	}
	if !hasEvent(result.Events, types.EventVictory) {
		t.Errorf("expected victory event, got %v", result.Events)
	}

	after := e.Step("attack t3")
	if !outputContains(after.Output, "battle is over") {
		t.Errorf("expected game over gate, got %v", after.Output)
	}
}

func TestStep_VictoryBySurvival(t *testing.T) {
	defs := testDefs()
	defs.Encounter.Turns = 1
	e := New(defs)

	e.Step("end")
	if !e.State.Won {
		t.Errorf("expected a win after surviving 1 turn")
	}
}

func TestStep_Defeat(t *testing.T) {
	defs := testDefs()
	defs.Encounter.PlayerHP = 5
	defs.Waves = []types.WaveDef{
		{Turn: 1, Spawns: []types.SpawnDef{{Slot: 0, Action: types.ActionAttack, Magnitude: 10}}},
	}
	e := New(defs)

	result := e.Step("end")
	if !e.State.GameOver || e.State.Won {
		t.Fatalf("expected a loss, got over=%v won=%v", e.State.GameOver, e.State.Won)
	}
	if e.State.HP != 0 {
		t.Errorf("HP should floor at 0, got %d", e.State.HP)
	}
	if !hasEvent(result.Events, types.EventPlayerDefeated) {
		t.Errorf("expected player_defeated, got %v", result.Events)
	}
	if e.State.Turn != 1 {
		t.Errorf("turn should not advance after defeat, got %d", e.State.Turn)
	}
}

func TestStep_EventHandlerFires(t *testing.T) {
	defs := testDefs()
	defs.Encounter.PlayerHP = 30
	defs.Handlers = []types.EventHandler{
		{
			Kind: types.EventEnemyDefeated,
			Effects: []types.Effect{
				{Type: "say", Params: map[string]any{"text": "Cleared {slot}."}},
				{Type: "gain_energy", Params: map[string]any{"amount": 1}},
			},
		},
	}
	e := New(defs)

	result := e.Step("attack t1")
	if !outputContains(result.Output, "Cleared T1.") {
		t.Errorf("expected handler text, got %v", result.Output)
	}
	if e.State.Energy != 3 {
		t.Errorf("expected energy refunded to 3, got %d", e.State.Energy)
	}
}

func TestStep_RandomSpawnerFillsBack(t *testing.T) {
	defs := testDefs()
	defs.Waves = nil
	defs.Spawner = types.SpawnerDef{
		Every:  1,
		Slot:   -1,
		Chance: 100,
		Entries: []types.SpawnEntry{
			{Weight: 1, Action: types.ActionAttack, Min: 4, Max: 4, Species: types.SpeciesSpeed},
		},
	}
	e := New(defs)

	it, ok := e.Timeline.At(4)
	if !ok {
		t.Fatal("expected a spawn at the back slot")
	}
	if it.Magnitude() != 4 || it.Species() != types.SpeciesSpeed {
		t.Errorf("unexpected spawn %d %s", it.Magnitude(), it.Species())
	}
}

func TestStep_SeedOverride(t *testing.T) {
	e := New(testDefs(), WithSeed(99))
	if e.RNG.Seed() != 99 {
		t.Errorf("expected seed 99, got %d", e.RNG.Seed())
	}
}

func TestDraw_SkipsZeroWeight(t *testing.T) {
	defs := testDefs()
	defs.Cards["never"] = types.CardDef{ID: "never", Name: "Never", Op: "attack", Cost: 1}
	defs.CardOrder = append(defs.CardOrder, "never")
	e := New(defs)

	for _, id := range e.Draw(20) {
		if id == "never" {
			t.Fatal("zero-weight card was drawn")
		}
	}
}

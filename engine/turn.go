package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nathoo/slotline/engine/effects"
	"github.com/nathoo/slotline/engine/events"
	"github.com/nathoo/slotline/engine/state"
	"github.com/nathoo/slotline/types"
)

// endTurn runs the end-of-turn sequence: advance and resolve the track,
// escalate rage, then start the next turn.
func (e *Engine) endTurn(result *types.Result) {
	ctx := effects.Context{Slot: -1}

	// 1. Advance the track and resolve the front slot.
	// Routine advancement is not narrated move by move.
	e.advancing = true
	e.Timeline.AdvanceTimeline()
	evts := e.rec.Drain()
	e.absorb(result, evts)
	e.advancing = false

	// 2. Resolved intents act on the player.
	for _, ev := range evts {
		if ev.Kind != types.EventEnemyAction || ev.Action != types.ActionAttack {
			continue
		}
		eff := types.Effect{Type: "damage", Params: map[string]any{"amount": ev.Magnitude}}
		evts2, out := effects.Apply(e.State, e.Defs, []types.Effect{eff}, ctx, e)
		result.Effects = append(result.Effects, eff)
		result.Events = append(result.Events, evts2...)
		result.Output = append(result.Output, out...)
		evts = append(evts, evts2...)
	}

	// 3. Handlers for this phase, then the loss check.
	if handlerEffs := events.Dispatch(evts, e.Defs); len(handlerEffs) > 0 {
		evts2, out := effects.Apply(e.State, e.Defs, handlerEffs, ctx, e)
		result.Effects = append(result.Effects, handlerEffs...)
		result.Events = append(result.Events, evts2...)
		result.Output = append(result.Output, out...)
	}
	e.checkEnd(result)
	if e.State.GameOver {
		return
	}

	// 4. Rage escalates every intent still on the track.
	e.State.Rage += e.Defs.Encounter.RagePerTurn
	if e.State.Rage > 0 && e.Timeline.Count() > 0 {
		e.Timeline.ApplyRage(e.State.Rage)
		result.Output = append(result.Output, fmt.Sprintf("The line seethes: every intent gains +%d.", e.State.Rage))
	}

	// 5. Next turn.
	e.State.Block = 0
	e.State.Turn++
	e.beginTurn(result)

	e.log.Debug("turn ended",
		zap.Int("turn", e.State.Turn),
		zap.Int("hp", e.State.HP),
		zap.Int("rage", e.State.Rage),
		zap.Int("intents", e.Timeline.Count()),
	)
}

// beginTurn spawns the turn's intents, refills energy and draws a hand.
func (e *Engine) beginTurn(result *types.Result) {
	result.Events = append(result.Events, types.Event{Kind: types.EventTurnStarted, Slot: -1})
	result.Output = append(result.Output, fmt.Sprintf("— Turn %d —", e.State.Turn))

	e.spawnForTurn(e.State.Turn)
	e.settle(result, effects.Context{Slot: -1})
	if e.State.GameOver {
		return
	}

	e.State.Energy = e.Defs.Encounter.Energy
	e.State.Hand = e.Draw(e.Defs.Encounter.HandSize)
	if e.Timeline.HasHacker() && len(e.State.Hand) > 0 {
		e.State.Hand[e.RNG.Intn(len(e.State.Hand))] = state.GlitchCardID
		result.Output = append(result.Output, "Static crawls over your hand: a card is corrupted.")
	}
	result.Output = append(result.Output, e.describeHand())
}

// spawnForTurn places scripted waves, then rolls the random spawner.
// Scripted spawns overwrite; the spawner never replaces an occupant.
func (e *Engine) spawnForTurn(turn int) {
	for _, sp := range state.WavesForTurn(e.Defs, turn) {
		e.Timeline.Spawn(sp.Slot, sp.Action, sp.Magnitude, sp.Species)
	}

	sp := e.Defs.Spawner
	if sp.Every <= 0 || len(sp.Entries) == 0 || turn%sp.Every != 0 {
		return
	}
	slot := sp.Slot
	if slot < 0 || slot >= e.Timeline.Size() {
		slot = e.Timeline.Size() - 1
	}
	if e.Timeline.Occupied(slot) || !e.RNG.Percent(sp.Chance) {
		return
	}
	weights := make([]int, len(sp.Entries))
	for i, entry := range sp.Entries {
		weights[i] = entry.Weight
	}
	idx := e.RNG.WeightedSelect(weights)
	if idx < 0 {
		return
	}
	entry := sp.Entries[idx]
	e.Timeline.Spawn(slot, entry.Action, e.RNG.Between(entry.Min, entry.Max), entry.Species)
}

// Draw picks n cards by weight. It implements effects.Drawer.
func (e *Engine) Draw(n int) []string {
	ids := e.Defs.CardOrder
	weights := make([]int, len(ids))
	for i, id := range ids {
		weights[i] = e.Defs.Cards[id].Weight
	}
	hand := make([]string, 0, n)
	for i := 0; i < n; i++ {
		idx := e.RNG.WeightedSelect(weights)
		if idx < 0 {
			break
		}
		hand = append(hand, ids[idx])
	}
	return hand
}

// describeHand lists the hand with 1-based indices and costs.
func (e *Engine) describeHand() string {
	if len(e.State.Hand) == 0 {
		return "Hand: (empty)"
	}
	parts := make([]string, 0, len(e.State.Hand))
	for i, id := range e.State.Hand {
		card, ok := state.Card(e.Defs, id)
		if !ok {
			parts = append(parts, fmt.Sprintf("%d) %s [?]", i+1, id))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d) %s [%d]", i+1, state.CardName(e.Defs, id), card.Cost))
	}
	return "Hand: " + strings.Join(parts, "  ")
}

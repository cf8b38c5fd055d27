package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nathoo/slotline/engine/effects"
	"github.com/nathoo/slotline/engine/state"
	"github.com/nathoo/slotline/types"
)

// knownOps are the card operations the engine can execute.
var knownOps = map[string]bool{
	"attack":  true,
	"thunder": true,
	"push":    true,
	"pull":    true,
	"stun":    true,
	"block":   true,
	"glitch":  true,
}

// KnownOp reports whether op is a card operation the engine can execute.
func KnownOp(op string) bool {
	return knownOps[op]
}

// targeted returns true if the op needs an occupied slot.
func targeted(op string) bool {
	switch op {
	case "attack", "thunder", "push", "pull", "stun":
		return true
	default:
		return false
	}
}

// playCommand handles "play <n> [slot]".
func (e *Engine) playCommand(cmd types.Command, result *types.Result) {
	if cmd.Card < 1 || cmd.Card > len(e.State.Hand) {
		if len(e.State.Hand) == 0 {
			result.Output = append(result.Output, "Your hand is empty. End the turn to draw.")
			return
		}
		result.Output = append(result.Output, fmt.Sprintf("Play which card? Choose 1-%d.", len(e.State.Hand)))
		return
	}
	e.playCard(cmd.Card-1, cmd, result)
}

// playCard gates a hand card behind its target and energy cost, then runs it.
func (e *Engine) playCard(idx int, cmd types.Command, result *types.Result) {
	id := e.State.Hand[idx]
	card, ok := state.Card(e.Defs, id)
	if !ok {
		result.Output = append(result.Output, fmt.Sprintf("Unknown card %q.", id))
		return
	}
	name := state.CardName(e.Defs, id)

	if targeted(card.Op) {
		if !cmd.HasSlot {
			result.Output = append(result.Output,
				fmt.Sprintf("Play %s on which slot? (T0-T%d)", name, e.Timeline.Size()-1))
			return
		}
		if cmd.Slot >= e.Timeline.Size() {
			result.Output = append(result.Output, fmt.Sprintf("There is no slot T%d.", cmd.Slot))
			return
		}
		if card.Op != "thunder" && !e.Timeline.Occupied(cmd.Slot) {
			result.Output = append(result.Output, fmt.Sprintf("T%d is empty.", cmd.Slot))
			return
		}
	}

	if card.Cost > e.State.Energy {
		result.Output = append(result.Output,
			fmt.Sprintf("Not enough energy: %s costs %d, you have %d.", name, card.Cost, e.State.Energy))
		return
	}

	e.State.Energy -= card.Cost
	state.RemoveFromHand(e.State, idx)

	ctx := effects.Context{Card: name, Slot: -1}
	slot := -1
	if targeted(card.Op) {
		slot = cmd.Slot
		ctx.Slot = slot
		if it, ok := e.Timeline.At(slot); ok {
			ctx.Species = it.Species()
		}
		result.Output = append(result.Output, fmt.Sprintf("You play %s on T%d.", name, cmd.Slot))
	} else {
		result.Output = append(result.Output, fmt.Sprintf("You play %s.", name))
	}
	result.Events = append(result.Events, types.Event{Kind: types.EventCardPlayed, Slot: slot})

	e.runOp(card, cmd.Slot, ctx, result)

	if len(card.Effects) > 0 {
		evts, out := effects.Apply(e.State, e.Defs, card.Effects, ctx, e)
		result.Effects = append(result.Effects, card.Effects...)
		result.Events = append(result.Events, evts...)
		result.Output = append(result.Output, out...)
	}

	e.settle(result, ctx)

	e.log.Debug("card played",
		zap.String("card", id),
		zap.String("op", card.Op),
		zap.Int("slot", slot),
		zap.Int("energy", e.State.Energy),
	)
}

// runOp maps a card operation onto the timeline.
func (e *Engine) runOp(card types.CardDef, slot int, ctx effects.Context, result *types.Result) {
	switch card.Op {
	case "attack":
		e.Timeline.RemoveIntent(slot)
	case "thunder":
		e.Timeline.ThunderIntent(slot)
	case "push":
		e.Timeline.TryMoveIntent(slot, 1)
	case "pull":
		e.Timeline.TryMoveIntent(slot, -1)
	case "stun":
		e.Timeline.StunIntent(slot)
	case "block":
		eff := types.Effect{Type: "gain_block", Params: map[string]any{"amount": card.Amount}}
		evts, out := effects.Apply(e.State, e.Defs, []types.Effect{eff}, ctx, e)
		result.Effects = append(result.Effects, eff)
		result.Events = append(result.Events, evts...)
		result.Output = append(result.Output, out...)
	case "glitch":
		result.Output = append(result.Output, "The card dissolves into static. Nothing happens.")
	}
}

// Package events implements single-pass event handler dispatch.
// Event handlers produce additional effects but do not recurse.
package events

import (
	"github.com/nathoo/slotline/engine/state"
	"github.com/nathoo/slotline/types"
)

// Dispatch runs event handlers against the emitted events. Single pass —
// no recursion. Returns additional effects produced by matching handlers.
func Dispatch(events []types.Event, defs *state.Defs) []types.Effect {
	var result []types.Effect

	for _, event := range events {
		for _, handler := range defs.Handlers {
			if handler.Kind != event.Kind {
				continue
			}
			if handler.Species != "" && handler.Species != event.Species {
				continue
			}
			result = append(result, handler.Effects...)
		}
	}

	return result
}

package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/slotline/engine/state"
	"github.com/nathoo/slotline/engine/timeline"
	"github.com/nathoo/slotline/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Known card operations. "glitch" is engine-only and cannot be declared.
var validOps = map[string]bool{
	"attack":  true,
	"thunder": true,
	"push":    true,
	"pull":    true,
	"stun":    true,
	"block":   true,
}

// Known effect types.
var validEffectTypes = map[string]bool{
	"say":         true,
	"heal":        true,
	"damage":      true,
	"gain_block":  true,
	"gain_energy": true,
	"draw":        true,
	"stop":        true,
}

// Event kinds a handler may subscribe to.
var validEventKinds = map[types.EventKind]bool{
	types.EventEnemyAction:    true,
	types.EventEnemyDefeated:  true,
	types.EventArmorHit:       true,
	types.EventBombExploded:   true,
	types.EventIntentSpawned:  true,
	types.EventIntentMoved:    true,
	types.EventIntentStunned:  true,
	types.EventIntentJitter:   true,
	types.EventCameraShake:    true,
	types.EventPlayerDamaged:  true,
	types.EventPlayerBlocked:  true,
	types.EventPlayerDefeated: true,
	types.EventVictory:        true,
}

func validAction(a types.ActionType) bool {
	return a == types.ActionAttack || a == types.ActionDefend
}

// validate checks the compiled defs for consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}
	enc := defs.Encounter

	// Encounter settings.
	if enc.Title == "" {
		ve.Errors = append(ve.Errors, "Encounter.title is required")
	}
	if enc.Slots < 1 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("Encounter.slots must be at least 1, got %d", enc.Slots))
	}
	if enc.PlayerHP < 1 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("Encounter.player_hp must be at least 1, got %d", enc.PlayerHP))
	}
	if enc.Energy < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("Encounter.energy must not be negative, got %d", enc.Energy))
	}
	if enc.HandSize < 1 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("Encounter.hand_size must be at least 1, got %d", enc.HandSize))
	}
	if enc.KillsToWin == 0 && enc.Turns == 0 {
		ve.Warnings = append(ve.Warnings, "neither kills_to_win nor turns is set; the encounter cannot be won")
	}

	// Cards.
	if len(defs.CardOrder) == 0 {
		ve.Errors = append(ve.Errors, "at least one Card is required")
	}
	seen := map[string]bool{}
	drawable := false
	for _, id := range defs.CardOrder {
		if seen[id] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate card ID %q", id))
			continue
		}
		seen[id] = true
		if id == state.GlitchCardID {
			ve.Errors = append(ve.Errors, fmt.Sprintf("card ID %q is reserved", id))
		}

		card := defs.Cards[id]
		if !validOps[card.Op] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("card %q has unknown op %q", id, card.Op))
		}
		if card.Cost < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("card %q has negative cost %d", id, card.Cost))
		}
		if card.Weight < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("card %q has negative weight %d", id, card.Weight))
		}
		if card.Weight > 0 {
			drawable = true
		} else {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("card %q has weight 0 and will never be drawn", id))
		}
		if card.Op == "block" && card.Amount <= 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("block card %q has no amount", id))
		}
		validateEffects(fmt.Sprintf("card %q", id), card.Effects, ve)
	}
	if len(defs.CardOrder) > 0 && !drawable {
		ve.Errors = append(ve.Errors, "no card has a positive weight")
	}

	// Waves.
	for _, w := range defs.Waves {
		if w.Turn < 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("wave turn must be at least 1, got %d", w.Turn))
		}
		used := map[int]bool{}
		for _, sp := range w.Spawns {
			where := fmt.Sprintf("wave %d spawn at T%d", w.Turn, sp.Slot)
			if sp.Slot < 0 || sp.Slot >= enc.Slots {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s is outside the %d-slot track", where, enc.Slots))
			}
			validateIntent(where, sp.Action, sp.Species, ve)
			if sp.Magnitude < 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s has negative magnitude %d", where, sp.Magnitude))
			}
			if used[sp.Slot] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s overwrites an earlier spawn", where))
			}
			used[sp.Slot] = true
		}
	}

	// Spawner.
	sp := defs.Spawner
	if len(sp.Entries) > 0 {
		if sp.Slot >= enc.Slots {
			ve.Errors = append(ve.Errors, fmt.Sprintf("spawner slot T%d is outside the %d-slot track", sp.Slot, enc.Slots))
		}
		if sp.Every < 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("spawner every must be at least 1, got %d", sp.Every))
		}
		for i, entry := range sp.Entries {
			where := fmt.Sprintf("spawner entry %d", i+1)
			validateIntent(where, entry.Action, entry.Species, ve)
			if entry.Min > entry.Max {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s has min %d > max %d", where, entry.Min, entry.Max))
			}
			if entry.Min < 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s has negative min %d", where, entry.Min))
			}
		}
	}

	// Handlers.
	for _, h := range defs.Handlers {
		where := fmt.Sprintf("handler On(%q)", h.Kind)
		if !validEventKinds[h.Kind] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown event kind", where))
		}
		if h.Species != "" && !timeline.KnownSpecies(h.Species) {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown species %q", where, h.Species))
		}
		validateEffects(where, h.Effects, ve)
	}

	// Print warnings to stderr.
	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateIntent(where string, a types.ActionType, sp types.Species, ve *ValidationError) {
	if !validAction(a) {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s has unknown action %q", where, a))
	}
	if !timeline.KnownSpecies(sp) {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s has unknown species %q", where, sp))
	}
}

func validateEffects(where string, effects []types.Effect, ve *ValidationError) {
	for _, eff := range effects {
		if !validEffectTypes[eff.Type] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("%s: unknown effect type %q", where, eff.Type))
			continue
		}
		if eff.Type == "say" {
			if text, _ := eff.Params["text"].(string); text == "" {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf("%s: empty Say text", where))
			}
		}
	}
}

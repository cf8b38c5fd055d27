// Package effects implements centralized run-state mutation via the Apply
// function. Every effect type is one atomic operation. No logic in effects.
package effects

import (
	"fmt"
	"strings"

	"github.com/nathoo/slotline/engine/state"
	"github.com/nathoo/slotline/types"
)

// Context carries what triggered the effects, for template interpolation.
type Context struct {
	Card    string // display name of the card being played
	Slot    int
	Species types.Species
}

// Drawer adds cards to the hand. The engine implements it so effects never
// touch the RNG directly.
type Drawer interface {
	Draw(n int) []string
}

// Apply applies a list of effects to the run state, mutating it.
// Returns events emitted and output text collected.
func Apply(s *types.RunState, defs *state.Defs, effs []types.Effect, ctx Context, drawer Drawer) ([]types.Event, []string) {
	var events []types.Event
	var output []string

	for _, eff := range effs {
		switch eff.Type {
		case "say":
			text, _ := eff.Params["text"].(string)
			output = append(output, interpolate(text, s, ctx))

		case "heal":
			amount := toInt(eff.Params["amount"])
			before := s.HP
			state.Heal(s, amount)
			if s.HP > before {
				output = append(output, fmt.Sprintf("You recover %d HP.", s.HP-before))
			}

		case "damage":
			amount := toInt(eff.Params["amount"])
			blocked, taken := state.Damage(s, amount)
			if blocked > 0 {
				events = append(events, types.Event{Kind: types.EventPlayerBlocked, Slot: -1, Magnitude: blocked})
			}
			if taken > 0 {
				events = append(events, types.Event{Kind: types.EventPlayerDamaged, Slot: -1, Magnitude: taken})
				output = append(output, fmt.Sprintf("You take %d damage.", taken))
			}

		case "gain_block":
			amount := toInt(eff.Params["amount"])
			if amount > 0 {
				s.Block += amount
				output = append(output, fmt.Sprintf("You gain %d block.", amount))
			}

		case "gain_energy":
			amount := toInt(eff.Params["amount"])
			if amount > 0 {
				s.Energy += amount
				output = append(output, fmt.Sprintf("You gain %d energy.", amount))
			}

		case "draw":
			n := toInt(eff.Params["count"])
			if n > 0 && drawer != nil {
				drawn := drawer.Draw(n)
				s.Hand = append(s.Hand, drawn...)
				if len(drawn) > 0 {
					names := make([]string, 0, len(drawn))
					for _, id := range drawn {
						names = append(names, state.CardName(defs, id))
					}
					output = append(output, "You draw: "+strings.Join(names, ", ")+".")
				}
			}

		case "stop":
			return events, output

		default:
			// Unknown effect type — ignore silently.
		}
	}

	return events, output
}

// interpolate replaces template variables in text.
func interpolate(text string, s *types.RunState, ctx Context) string {
	r := strings.NewReplacer(
		"{card}", ctx.Card,
		"{slot}", fmt.Sprintf("T%d", ctx.Slot),
		"{species}", string(ctx.Species),
		"{hp}", fmt.Sprint(s.HP),
		"{max_hp}", fmt.Sprint(s.MaxHP),
		"{kills}", fmt.Sprint(s.Kills),
		"{turn}", fmt.Sprint(s.Turn),
		"{rage}", fmt.Sprint(s.Rage),
	)
	return r.Replace(text)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}

package timeline

import "github.com/nathoo/slotline/types"

// Intent is one hostile threat occupying a slot. It only exists inside a
// Timeline; Spawn is the sole constructor.
type Intent struct {
	action    types.ActionType
	magnitude int
	species   types.Species
	stunned   bool
}

func newIntent(action types.ActionType, magnitude int, species types.Species) *Intent {
	if magnitude < 0 {
		magnitude = 0
	}
	if species == "" {
		species = types.SpeciesNormal
	}
	return &Intent{action: action, magnitude: magnitude, species: species}
}

// Action returns what the intent does when it resolves.
func (i *Intent) Action() types.ActionType { return i.action }

// Magnitude returns the damage or defend value.
func (i *Intent) Magnitude() int { return i.magnitude }

// Species returns the behaviour tag.
func (i *Intent) Species() types.Species { return i.species }

// Stunned reports whether the intent skips its next movement step.
func (i *Intent) Stunned() bool { return i.stunned }

// SetStun toggles the stunned status.
func (i *Intent) SetStun(enabled bool) {
	i.stunned = enabled
}

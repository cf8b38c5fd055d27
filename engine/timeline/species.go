package timeline

import "github.com/nathoo/slotline/types"

// behavior is the per-species rule row consulted by every operation.
type behavior struct {
	step         int  // slots advanced per turn
	resistRemove bool // RemoveIntent is rejected
	resistArea   bool // ThunderIntent is rejected
	resistStun   bool // StunIntent is rejected
	resistChain  bool // survives a neighbouring bomb
	crushes      bool // as a mover, destroys the occupant it collides with
	wall         bool // as a collision target, destroys the mover
	explodes     bool // kills both neighbours on death
	corrupts     bool // counted by HasHacker
}

var behaviors = map[types.Species]behavior{
	types.SpeciesNormal: {step: 1},
	types.SpeciesArmor:  {step: 1, resistRemove: true},
	types.SpeciesBomb:   {step: 1, explodes: true},
	types.SpeciesSpeed:  {step: 2},
	types.SpeciesHacker: {step: 1, corrupts: true},
	types.SpeciesKing: {
		step:         1,
		resistRemove: true,
		resistArea:   true,
		resistStun:   true,
		resistChain:  true,
		crushes:      true,
		wall:         true,
	},
}

// behaviorOf returns the rule row for a species. Unknown species act as NORMAL.
func behaviorOf(s types.Species) behavior {
	if b, ok := behaviors[s]; ok {
		return b
	}
	return behaviors[types.SpeciesNormal]
}

// KnownSpecies reports whether s has a behaviour row.
func KnownSpecies(s types.Species) bool {
	_, ok := behaviors[s]
	return ok
}

// Step returns how many slots an intent of species s advances per turn.
func Step(s types.Species) int {
	return behaviorOf(s).step
}

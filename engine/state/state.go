// Package state holds the immutable encounter definitions and the helpers
// that read and mutate the player's run state.
package state

import "github.com/nathoo/slotline/types"

// GlitchCardID is the card a corrupting intent substitutes into the hand.
const GlitchCardID = "glitch"

// Defs holds the immutable encounter definitions loaded from Lua.
type Defs struct {
	Encounter types.EncounterDef
	Cards     map[string]types.CardDef
	CardOrder []string // declaration order, used for deterministic draws
	Waves     []types.WaveDef
	Spawner   types.SpawnerDef
	Handlers  []types.EventHandler
}

// NewRunState creates a fresh run state from definitions.
func NewRunState(defs *Defs) *types.RunState {
	return &types.RunState{
		HP:         defs.Encounter.PlayerHP,
		MaxHP:      defs.Encounter.PlayerHP,
		Energy:     defs.Encounter.Energy,
		Hand:       []string{},
		RNGSeed:    defs.Encounter.Seed,
		CommandLog: []string{},
	}
}

// Card returns a card definition. The glitch card always exists even when
// the encounter does not declare it.
func Card(defs *Defs, id string) (types.CardDef, bool) {
	if c, ok := defs.Cards[id]; ok {
		return c, true
	}
	if id == GlitchCardID {
		return types.CardDef{ID: GlitchCardID, Name: "Glitch", Op: "glitch", Cost: 1}, true
	}
	return types.CardDef{}, false
}

// CardName returns the display name of a card, falling back to its ID.
func CardName(defs *Defs, id string) string {
	if c, ok := Card(defs, id); ok && c.Name != "" {
		return c.Name
	}
	return id
}

// WavesForTurn returns the scripted spawns for a turn in declaration order.
func WavesForTurn(defs *Defs, turn int) []types.SpawnDef {
	var out []types.SpawnDef
	for _, w := range defs.Waves {
		if w.Turn == turn {
			out = append(out, w.Spawns...)
		}
	}
	return out
}

// Damage applies an attack to the player, absorbing with block first.
// Returns the blocked and the taken amounts.
func Damage(s *types.RunState, amount int) (blocked, taken int) {
	if amount <= 0 {
		return 0, 0
	}
	blocked = min(s.Block, amount)
	s.Block -= blocked
	taken = amount - blocked
	s.HP -= taken
	if s.HP < 0 {
		s.HP = 0
	}
	return blocked, taken
}

// Heal restores HP up to MaxHP. Returns the new HP.
func Heal(s *types.RunState, amount int) int {
	if amount <= 0 {
		return s.HP
	}
	s.HP += amount
	if s.MaxHP > 0 && s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	return s.HP
}

// RemoveFromHand removes the card at a 0-based hand index.
func RemoveFromHand(s *types.RunState, index int) {
	if index < 0 || index >= len(s.Hand) {
		return
	}
	s.Hand = append(s.Hand[:index], s.Hand[index+1:]...)
}

// HandIndexForOp returns the 0-based index of the first card in hand whose
// op matches, or -1.
func HandIndexForOp(s *types.RunState, defs *Defs, op string) int {
	for i, id := range s.Hand {
		if c, ok := Card(defs, id); ok && c.Op == op {
			return i
		}
	}
	return -1
}

// Package parser converts command strings into Command structs.
// Intentionally dumb: a verb, an optional hand index, an optional slot.
package parser

import (
	"strconv"
	"strings"

	"github.com/nathoo/slotline/types"
)

var verbAliases = map[string]string{
	// Attack
	"hit":    "attack",
	"strike": "attack",
	"kill":   "attack",
	"a":      "attack",

	// Area effect
	"zap":   "thunder",
	"storm": "thunder",
	"bolt":  "thunder",

	// Forced movement
	"shove": "push",
	"drag":  "pull",
	"yank":  "pull",
	"tug":   "pull",

	// Stun
	"daze":   "stun",
	"freeze": "stun",

	// Block
	"guard":  "block",
	"defend": "block",
	"shield": "block",

	// Turn
	"e":    "end",
	"wait": "end",
	"pass": "end",
	"next": "end",

	// Info
	"l":     "look",
	"board": "look",
	"h":     "hand",
	"cards": "hand",
	"s":     "status",
	"stats": "status",
	"p":     "play",
	"use":   "play",
}

// Parse converts a raw command string into a Command.
//
//	attack 3     -> {Verb: attack, Slot: 3}
//	play 2 t1    -> {Verb: play, Card: 2, Slot: 1}
//	end          -> {Verb: end}
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	words := strings.Fields(strings.ToLower(input))

	// "end turn" / "end the turn"
	words = stripFiller(words)

	verb := words[0]
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	cmd := types.Command{Verb: verb}
	rest := words[1:]

	if verb == "play" && len(rest) > 0 {
		if n, err := strconv.Atoi(rest[0]); err == nil {
			cmd.Card = n
			rest = rest[1:]
		}
	}

	if len(rest) > 0 {
		if slot, ok := ParseSlot(rest[0]); ok {
			cmd.Slot = slot
			cmd.HasSlot = true
		}
	}

	return cmd
}

// ParseSlot parses "3", "t3" or "slot3" into a slot index.
func ParseSlot(word string) (int, bool) {
	word = strings.TrimPrefix(word, "slot")
	word = strings.TrimPrefix(word, "t")
	n, err := strconv.Atoi(word)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

var filler = map[string]bool{
	"the": true, "turn": true, "on": true, "at": true, "slot": true,
}

// stripFiller removes filler words after the verb, keeping at least the verb.
func stripFiller(words []string) []string {
	result := make([]string, 0, len(words))
	result = append(result, words[0])
	for _, w := range words[1:] {
		if !filler[w] {
			result = append(result, w)
		}
	}
	return result
}

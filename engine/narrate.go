package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/slotline/engine/timeline"
	"github.com/nathoo/slotline/types"
)

// narrate turns a timeline event into a line of output. Events with no
// player-facing text return "".
func (e *Engine) narrate(ev types.Event) string {
	switch ev.Kind {
	case types.EventIntentSpawned:
		return fmt.Sprintf("%s appears at T%d.", describeIntent(ev.Action, ev.Magnitude, ev.Species), ev.Slot)
	case types.EventEnemyAction:
		if ev.Action == types.ActionDefend {
			return fmt.Sprintf("The %s at the front braces behind %d guard and withdraws.", speciesLabel(ev.Species), ev.Magnitude)
		}
		return fmt.Sprintf("The %s at the front strikes for %d!", speciesLabel(ev.Species), ev.Magnitude)
	case types.EventEnemyDefeated:
		return fmt.Sprintf("The %s at T%d is destroyed.", speciesLabel(ev.Species), ev.Slot)
	case types.EventArmorHit:
		return fmt.Sprintf("The %s at T%d shrugs it off.", speciesLabel(ev.Species), ev.Slot)
	case types.EventBombExploded:
		return fmt.Sprintf("The bomb at T%d detonates!", ev.Slot)
	case types.EventIntentStunned:
		return fmt.Sprintf("The %s at T%d is stunned.", speciesLabel(ev.Species), ev.Slot)
	case types.EventIntentMoved:
		if e.advancing {
			return ""
		}
		return fmt.Sprintf("The %s moves from T%d to T%d.", speciesLabel(ev.Species), ev.Slot, ev.To)
	case types.EventCameraShake:
		return "CRASH! The collision shakes the line."
	default:
		return ""
	}
}

func speciesLabel(sp types.Species) string {
	if sp == "" {
		sp = types.SpeciesNormal
	}
	return strings.ToLower(string(sp)) + " intent"
}

func describeIntent(action types.ActionType, magnitude int, sp types.Species) string {
	label := "An attack"
	if action == types.ActionDefend {
		label = "A guard"
	}
	if sp != "" && sp != types.SpeciesNormal {
		label += " (" + string(sp) + ")"
	}
	return fmt.Sprintf("%s of %d", label, magnitude)
}

// SlotLabel renders one slot compactly, e.g. "ATK 10", "DEF 5 ARMOR", "-".
func SlotLabel(v timeline.SlotView) string {
	if !v.Occupied {
		return "-"
	}
	parts := []string{abbrev(v.Action), fmt.Sprint(v.Magnitude)}
	if v.Species != "" && v.Species != types.SpeciesNormal {
		parts = append(parts, string(v.Species))
	}
	if v.Stunned {
		parts = append(parts, "zz")
	}
	return strings.Join(parts, " ")
}

func abbrev(a types.ActionType) string {
	if a == types.ActionDefend {
		return "DEF"
	}
	return "ATK"
}

// DescribeBoard renders the status line and the slot track.
func (e *Engine) DescribeBoard() []string {
	views := e.Timeline.Snapshot()
	cells := make([]string, len(views))
	for i, v := range views {
		cells[i] = fmt.Sprintf("T%d [%s]", i, SlotLabel(v))
	}
	return []string{
		e.describeStatus(),
		strings.Join(cells, " "),
	}
}

// describeStatus summarizes the player's side of the battle.
func (e *Engine) describeStatus() string {
	s := e.State
	line := fmt.Sprintf("Turn %d  HP %d/%d  Block %d  Energy %d  Rage +%d  Kills %d",
		s.Turn, s.HP, s.MaxHP, s.Block, s.Energy, s.Rage, s.Kills)
	if goal := e.Defs.Encounter.KillsToWin; goal > 0 {
		line += fmt.Sprintf("/%d", goal)
	}
	return line
}

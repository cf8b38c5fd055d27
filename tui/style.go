package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleTurn = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true)

	styleDamage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleKill = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleHand = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleOutcome = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// Slot track.
	styleSlot = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(11).
			Align(lipgloss.Center)

	styleSlotFront = styleSlot.
			BorderForeground(lipgloss.Color("203"))

	styleSlotFlash = styleSlot.
			BorderForeground(lipgloss.Color("226"))

	styleSlotShake = styleSlot.
			BorderForeground(lipgloss.Color("196")).
			BorderStyle(lipgloss.ThickBorder())

	styleAttack = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	styleDefend = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true)

	styleSpecies = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	styleEmptySlot = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindTurn
	kindDamage
	kindKill
	kindHand
	kindOutcome
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "— Turn"):
		return kindTurn
	case strings.HasPrefix(line, "Hand:"):
		return kindHand
	case strings.HasPrefix(line, "Victory"),
		strings.HasPrefix(line, "You have been overwhelmed"):
		return kindOutcome
	case strings.HasPrefix(line, "You take"),
		strings.Contains(line, "strikes for"):
		return kindDamage
	case strings.Contains(line, "destroyed"),
		strings.Contains(line, "detonates"):
		return kindKill
	case strings.HasPrefix(line, "Not enough energy"),
		strings.HasPrefix(line, "There is no slot"),
		strings.HasPrefix(line, "You have no"),
		strings.HasPrefix(line, "I don't know"),
		strings.HasSuffix(line, " is empty."):
		return kindError
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindTurn:
		return styleTurn.Render(line)
	case kindDamage:
		return styleDamage.Render(line)
	case kindKill:
		return styleKill.Render(line)
	case kindHand:
		return styleHand.Render(line)
	case kindOutcome:
		return styleOutcome.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}

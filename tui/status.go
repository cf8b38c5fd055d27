package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/slotline/engine/timeline"
	"github.com/nathoo/slotline/types"
)

// trackHeight is the number of terminal rows the slot track occupies:
// a bordered box of three content lines plus the hand line.
const trackHeight = 6

// renderStatusBar produces a full-width inverted status line showing
// HP, block, energy, rage, kills and the turn.
func (m Model) renderStatusBar() string {
	s := m.engine.State
	enc := m.defs.Encounter

	kills := fmt.Sprint(s.Kills)
	if enc.KillsToWin > 0 {
		kills = fmt.Sprintf("%d/%d", s.Kills, enc.KillsToWin)
	}
	left := fmt.Sprintf(" HP %d/%d | Block %d | Energy %d/%d | Rage +%d | Kills %s",
		s.HP, s.MaxHP, s.Block, s.Energy, enc.Energy, s.Rage, kills)

	right := fmt.Sprintf("Turn %d ", s.Turn)
	if enc.Turns > 0 {
		right = fmt.Sprintf("Turn %d/%d ", s.Turn, enc.Turns)
	}
	if s.GameOver {
		outcome := "DEFEAT"
		if s.Won {
			outcome = "VICTORY"
		}
		right = outcome + " | " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// renderTrack draws the slot track front to back with the hand beneath it.
func (m Model) renderTrack() string {
	views := m.engine.Timeline.Snapshot()
	boxes := make([]string, len(views))
	for i, v := range views {
		boxes[i] = m.slotStyle(i).Render(renderSlot(i, v))
	}
	track := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	return track + "\n" + styleHand.Render(m.handLine())
}

func (m Model) slotStyle(i int) lipgloss.Style {
	switch {
	case m.shake:
		return styleSlotShake
	case m.flash[i]:
		return styleSlotFlash
	case i == 0:
		return styleSlotFront
	default:
		return styleSlot
	}
}

// renderSlot renders the three content lines of one slot box.
func renderSlot(i int, v timeline.SlotView) string {
	label := fmt.Sprintf("T%d", i)
	if !v.Occupied {
		return label + "\n" + styleEmptySlot.Render("·") + "\n "
	}

	intent := fmt.Sprintf("ATK %d", v.Magnitude)
	style := styleAttack
	if v.Action == types.ActionDefend {
		intent = fmt.Sprintf("DEF %d", v.Magnitude)
		style = styleDefend
	}

	tag := ""
	if v.Species != types.SpeciesNormal {
		tag = string(v.Species)
	}
	if v.Stunned {
		tag = strings.TrimSpace(tag + " zz")
	}
	if tag == "" {
		tag = " "
	}
	return label + "\n" + style.Render(intent) + "\n" + styleSpecies.Render(tag)
}

// handLine lists the hand as "1) Strike [1]  2) ..." truncated to the width.
func (m Model) handLine() string {
	s := m.engine.State
	if len(s.Hand) == 0 {
		return " Hand: (empty)"
	}
	parts := make([]string, 0, len(s.Hand))
	for i, id := range s.Hand {
		parts = append(parts, fmt.Sprintf("%d) %s [%d]", i+1, m.cardName(id), m.cardCost(id)))
	}
	line := " Hand: " + strings.Join(parts, "  ")
	if m.width > 0 && lipgloss.Width(line) > m.width {
		line = line[:max(m.width-1, 0)] + "…"
	}
	return line
}

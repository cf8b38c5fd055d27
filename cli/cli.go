// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the Slotline engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/slotline/engine"
	"github.com/nathoo/slotline/engine/state"
	"github.com/nathoo/slotline/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs) *CLI {
	return &CLI{
		Engine: eng,
		Defs:   defs,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the battle loop. It shows the intro and the opening turn,
// then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if c.Defs.Encounter.Intro != "" {
		c.printLine(c.Defs.Encounter.Intro)
		c.printLine("")
	}

	for _, line := range c.Engine.Opening() {
		c.printLine(line)
	}
	for _, line := range c.Engine.DescribeBoard() {
		c.printLine(line)
	}

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit         — Exit",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"  /trace        — Toggle debug trace output",
		"",
		"Battle commands:",
		"  attack <slot> (hit)      — Destroy the intent in a slot",
		"  thunder <slot> (zap)     — Strike a slot and both neighbours",
		"  push <slot> (shove)      — Push an intent one slot back",
		"  pull <slot> (drag)       — Pull an intent one slot forward",
		"  stun <slot> (daze)       — Hold an intent in place for a turn",
		"  block (guard)            — Raise your guard",
		"  play <n> [slot] (p)      — Play card n from your hand",
		"  end (e, wait)            — End the turn",
		"  look (l)                 — Show the timeline",
		"  hand (h)                 — List your cards",
		"  status (s)               — HP, energy, rage and kills",
		"  again (g)                — Repeat your last command",
		"",
		"Slots are written 0-4 or T0-T4; T0 is the front.",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.State
	c.printSystem(fmt.Sprintf("Run: %s", c.Engine.RunID))
	c.printSystem(fmt.Sprintf("Turn: %d", s.Turn))
	c.printSystem(fmt.Sprintf("HP: %d/%d  Block: %d  Energy: %d", s.HP, s.MaxHP, s.Block, s.Energy))
	c.printSystem(fmt.Sprintf("Rage: %d  Kills: %d", s.Rage, s.Kills))
	c.printSystem(fmt.Sprintf("Hand: %v", s.Hand))
	c.printSystem(fmt.Sprintf("RNG: seed %d, position %d", c.Engine.RNG.Seed(), c.Engine.RNG.Position()))
	for i, v := range c.Engine.Timeline.Snapshot() {
		c.printSystem(fmt.Sprintf("T%d: %s", i, engine.SlotLabel(v)))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Effects) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Params))
		}
	}
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s", describeEvent(e)))
		}
	}
}

func describeEvent(e types.Event) string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Slot >= 0 {
		fmt.Fprintf(&b, " T%d", e.Slot)
	}
	if e.Kind == types.EventIntentMoved {
		fmt.Fprintf(&b, "->T%d", e.To)
	}
	if e.Action != "" {
		fmt.Fprintf(&b, " %s %d", e.Action, e.Magnitude)
	} else if e.Magnitude != 0 {
		fmt.Fprintf(&b, " %d", e.Magnitude)
	}
	if e.Species != "" {
		fmt.Fprintf(&b, " %s", e.Species)
	}
	return b.String()
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

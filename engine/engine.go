// Package engine provides the Step() orchestrator that wires together
// parsing, cards, the timeline, effects, and events into a single command.
package engine

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nathoo/slotline/engine/effects"
	"github.com/nathoo/slotline/engine/events"
	"github.com/nathoo/slotline/engine/parser"
	"github.com/nathoo/slotline/engine/state"
	"github.com/nathoo/slotline/engine/timeline"
	"github.com/nathoo/slotline/types"
)

// Engine holds the encounter definitions, the run state and the track.
type Engine struct {
	Defs     *state.Defs
	State    *types.RunState
	Timeline *timeline.Timeline
	RNG      *RNG
	RunID    string

	log       *zap.Logger
	rec       *timeline.Recorder
	advancing bool
	opening   []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSeed overrides the encounter's RNG seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.State.RNGSeed = seed
	}
}

// New creates an engine from definitions, spawns the first turn's intents
// and draws the opening hand.
func New(defs *state.Defs, opts ...Option) *Engine {
	e := &Engine{
		Defs:  defs,
		State: state.NewRunState(defs),
		RunID: uuid.NewString(),
		log:   zap.NewNop(),
		rec:   &timeline.Recorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(zap.String("run_id", e.RunID))
	e.RNG = NewRNG(e.State.RNGSeed)
	e.Timeline = timeline.New(defs.Encounter.Slots)
	e.Timeline.Subscribe(e.rec)

	e.State.Turn = 1
	var opening types.Result
	e.beginTurn(&opening)
	e.opening = opening.Output

	e.log.Info("run started",
		zap.String("encounter", defs.Encounter.Title),
		zap.Int("slots", e.Timeline.Size()),
		zap.Int64("seed", e.State.RNGSeed),
	)
	return e
}

// Opening returns the narration produced while setting up the first turn.
func (e *Engine) Opening() []string {
	return e.opening
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 0. Game over — block all gameplay commands.
	if e.State.GameOver {
		result.Output = append(result.Output, "The battle is over. Use /quit to exit.")
		return result
	}

	// 1. Parse input.
	cmd := parser.Parse(input)

	// 2. Log the command.
	e.State.CommandLog = append(e.State.CommandLog, input)

	// 3. Dispatch on verb.
	switch cmd.Verb {
	case "":
		result.Output = append(result.Output, "What do you want to do?")

	case "look":
		result.Output = append(result.Output, e.DescribeBoard()...)

	case "hand":
		result.Output = append(result.Output, e.describeHand())

	case "status":
		result.Output = append(result.Output, e.describeStatus())

	case "end":
		e.endTurn(&result)

	case "play":
		e.playCommand(cmd, &result)

	default:
		if !knownOps[cmd.Verb] {
			result.Output = append(result.Output, fmt.Sprintf("I don't know how to %q. Type /help for commands.", cmd.Verb))
			break
		}
		idx := state.HandIndexForOp(e.State, e.Defs, cmd.Verb)
		if idx < 0 {
			result.Output = append(result.Output, fmt.Sprintf("You have no %s card in hand.", cmd.Verb))
			break
		}
		e.playCard(idx, cmd, &result)
	}

	e.log.Debug("step",
		zap.String("input", input),
		zap.String("verb", cmd.Verb),
		zap.Int("turn", e.State.Turn),
		zap.Int("events", len(result.Events)),
		zap.Int64("rng_pos", e.RNG.Position()),
	)

	return result
}

// settle drains timeline events into the result, counts kills, runs event
// handlers (single pass) and checks for the end of the battle.
func (e *Engine) settle(result *types.Result, ctx effects.Context) {
	evts := e.rec.Drain()
	e.absorb(result, evts)

	// Event handlers produce effects; the events those effects emit are
	// recorded but not re-dispatched.
	handlerEffs := events.Dispatch(evts, e.Defs)
	if len(handlerEffs) > 0 {
		evts2, out := effects.Apply(e.State, e.Defs, handlerEffs, ctx, e)
		result.Effects = append(result.Effects, handlerEffs...)
		result.Events = append(result.Events, evts2...)
		result.Output = append(result.Output, out...)
	}

	e.checkEnd(result)
}

// absorb records events, applies kill counting and narrates them.
func (e *Engine) absorb(result *types.Result, evts []types.Event) {
	for _, ev := range evts {
		result.Events = append(result.Events, ev)
		if ev.Kind == types.EventEnemyDefeated {
			e.State.Kills++
		}
		if line := e.narrate(ev); line != "" {
			result.Output = append(result.Output, line)
		}
	}
}

// checkEnd flags defeat or victory once.
func (e *Engine) checkEnd(result *types.Result) {
	if e.State.GameOver {
		return
	}
	enc := e.Defs.Encounter
	switch {
	case e.State.HP <= 0:
		e.State.GameOver = true
		result.Events = append(result.Events, types.Event{Kind: types.EventPlayerDefeated, Slot: -1})
		result.Output = append(result.Output, "You have been overwhelmed. The timeline closes over you.")
		e.log.Info("run lost", zap.Int("turn", e.State.Turn), zap.Int("kills", e.State.Kills))
	case enc.KillsToWin > 0 && e.State.Kills >= enc.KillsToWin,
		enc.Turns > 0 && e.State.Turn > enc.Turns:
		e.State.GameOver = true
		e.State.Won = true
		result.Events = append(result.Events, types.Event{Kind: types.EventVictory, Slot: -1})
		result.Output = append(result.Output, "Victory! The timeline falls silent.")
		e.log.Info("run won", zap.Int("turn", e.State.Turn), zap.Int("kills", e.State.Kills))
	}
}

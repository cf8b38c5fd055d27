// Slotline is a deterministic, data-driven deck battler played on a
// one-dimensional timeline of enemy intents.
// Usage: slotline [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--log <file>] [encounter_directory]
package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/nathoo/slotline/cli"
	"github.com/nathoo/slotline/content"
	"github.com/nathoo/slotline/engine"
	"github.com/nathoo/slotline/engine/state"
	"github.com/nathoo/slotline/loader"
	"github.com/nathoo/slotline/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: slotline [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--log <file>] [encounter_directory]\n"

func main() {
	plain := false
	trace := false
	var encounterDir string
	var scriptFile string
	var logFile string
	var seed int64
	hasSeed := false

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("slotline %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			scriptFile = requireValue(args, &i, "--script requires a file path")
		case "--log":
			logFile = requireValue(args, &i, "--log requires a file path")
		case "--seed":
			n, err := strconv.ParseInt(requireValue(args, &i, "--seed requires a number"), 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
				os.Exit(1)
			}
			seed, hasSeed = n, true
		case "-h", "--help":
			fmt.Print(usage)
			return
		default:
			if encounterDir == "" {
				encounterDir = args[i]
			}
		}
	}

	// Load and compile Lua encounter content.
	defs, err := loadEncounter(encounterDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading encounter: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	opts := []engine.Option{engine.WithLogger(logger)}
	if hasSeed {
		opts = append(opts, engine.WithSeed(seed))
	}
	eng := engine.New(defs, opts...)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		printHeader(defs)
		c := cli.New(eng, defs)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		printHeader(defs)
		c := cli.New(eng, defs)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng, defs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// requireValue consumes the argument after a flag or exits with msg.
func requireValue(args []string, i *int, msg string) string {
	if *i+1 >= len(args) {
		fmt.Fprintf(os.Stderr, "%s\n%s", msg, usage)
		os.Exit(1)
	}
	*i++
	return args[*i]
}

// loadEncounter loads dir, or the built-in encounter when dir is empty.
func loadEncounter(dir string) (*state.Defs, error) {
	if dir == "" {
		return loader.LoadFS(content.Default, content.DefaultDir)
	}
	return loader.Load(dir)
}

// newLogger returns a JSON debug logger writing to path, or a no-op logger
// when path is empty. The terminal is never a log destination.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Sampling = nil
	return cfg.Build()
}

func printHeader(defs *state.Defs) {
	enc := defs.Encounter
	fmt.Printf("%s v%s by %s\n\n", enc.Title, enc.Version, enc.Author)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

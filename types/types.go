// Package types defines the shared data structures for the Slotline engine.
// This package contains only type definitions and constants — no logic, no methods.
package types

// ActionType is what an intent does when it resolves at the front slot.
type ActionType string

const (
	ActionAttack ActionType = "ATTACK"
	ActionDefend ActionType = "DEFEND"
)

// Species is the behaviour tag of an intent.
type Species string

const (
	SpeciesNormal Species = "NORMAL"
	SpeciesArmor  Species = "ARMOR"
	SpeciesBomb   Species = "BOMB"
	SpeciesSpeed  Species = "SPEED"
	SpeciesHacker Species = "HACKER"
	SpeciesKing   Species = "KING"
)

// EventKind names an emitted event.
type EventKind string

const (
	// Timeline events consumed by the orchestrator.
	EventEnemyAction   EventKind = "enemy_action"
	EventEnemyDefeated EventKind = "enemy_defeated"
	EventArmorHit      EventKind = "armor_hit"
	EventBombExploded  EventKind = "bomb_exploded"

	// Timeline presentation hooks.
	EventIntentSpawned EventKind = "intent_spawned"
	EventIntentMoved   EventKind = "intent_moved"
	EventIntentStunned EventKind = "intent_stunned"
	EventIntentJitter  EventKind = "intent_jitter"
	EventCameraShake   EventKind = "camera_shake"

	// Orchestrator events.
	EventCardPlayed     EventKind = "card_played"
	EventPlayerDamaged  EventKind = "player_damaged"
	EventPlayerBlocked  EventKind = "player_blocked"
	EventTurnStarted    EventKind = "turn_started"
	EventPlayerDefeated EventKind = "player_defeated"
	EventVictory        EventKind = "victory"
)

// Event is a single notification. Unused fields are zero.
type Event struct {
	Kind      EventKind
	Slot      int // slot the event happened at (-1 when not slot related)
	To        int // destination slot for intent_moved
	Action    ActionType
	Magnitude int
	Species   Species
}

// Command is the parsed representation of a player command.
type Command struct {
	Verb    string
	Card    int // 1-based hand index for "play", 0 otherwise
	Slot    int
	HasSlot bool
}

// Effect is a single atomic run-state mutation instruction.
type Effect struct {
	Type   string
	Params map[string]any
}

// Result is the output of a single engine step.
type Result struct {
	Effects []Effect
	Events  []Event
	Output  []string
}

// EncounterDef holds encounter metadata and tuning from Lua.
type EncounterDef struct {
	Title       string
	Author      string
	Version     string
	Intro       string
	Slots       int
	PlayerHP    int
	Energy      int
	HandSize    int
	RagePerTurn int
	KillsToWin  int   // 0 disables the kill victory
	Turns       int   // 0 disables the survival victory
	Seed        int64 // RNG seed, overridable from the command line
}

// CardDef is a player action with an energy cost.
type CardDef struct {
	ID      string
	Name    string
	Op      string // "attack", "thunder", "push", "pull", "stun", "block", "glitch"
	Cost    int
	Amount  int // block amount for "block"
	Weight  int // draw weight; 0 never drawn
	Effects []Effect
}

// SpawnDef places one intent on the track.
type SpawnDef struct {
	Slot      int
	Action    ActionType
	Magnitude int
	Species   Species
}

// WaveDef is a scripted set of spawns for a given turn.
type WaveDef struct {
	Turn   int
	Spawns []SpawnDef
}

// SpawnEntry is one weighted row of the random spawner.
type SpawnEntry struct {
	Weight  int
	Action  ActionType
	Min     int
	Max     int
	Species Species
}

// SpawnerDef describes the random per-turn spawner.
type SpawnerDef struct {
	Every   int // spawn on turns divisible by Every; 0 disables the spawner
	Slot    int // spawn slot; -1 means the back slot
	Chance  int // percent chance per eligible turn
	Entries []SpawnEntry
}

// EventHandler is triggered by an emitted event rather than a player command.
type EventHandler struct {
	Kind    EventKind
	Species Species // optional filter
	Effects []Effect
}

// RunState is the complete mutable state of one battle.
type RunState struct {
	HP         int
	MaxHP      int
	Block      int
	Energy     int
	Kills      int
	Turn       int
	Rage       int
	Hand       []string // card IDs
	GameOver   bool
	Won        bool
	RNGSeed    int64
	CommandLog []string
}

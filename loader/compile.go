// Package loader loads Lua encounter content into Go structs at startup.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/slotline/engine/state"
	"github.com/nathoo/slotline/types"
)

// Defaults for Encounter{} fields left out of the script.
const (
	defaultSlots    = 5
	defaultPlayerHP = 50
	defaultEnergy   = 3
	defaultHandSize = 4
	defaultSeed     = 1
)

// rawCard holds a card table before compilation.
type rawCard struct {
	id    string
	table *lua.LTable
}

// rawWave holds a wave's spawn list before compilation.
type rawWave struct {
	turn  int
	table *lua.LTable
}

// rawHandler holds an event handler before compilation.
type rawHandler struct {
	kind  string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getIntOr returns an int field, or def if the field is absent.
func getIntOr(tbl *lua.LTable, key string, def int) int {
	if _, ok := tbl.RawGetString(key).(lua.LNumber); !ok {
		return def
	}
	return getInt(tbl, key)
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// arrayTables returns the table values of the array part, in order.
func arrayTables(tbl *lua.LTable) []*lua.LTable {
	var out []*lua.LTable
	for i := 1; i <= tbl.MaxN(); i++ {
		if t, ok := tbl.RawGetInt(i).(*lua.LTable); ok {
			out = append(out, t)
		}
	}
	return out
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		// Check if it's an array (sequential integer keys starting at 1).
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

func species(s string) types.Species {
	if s == "" {
		return types.SpeciesNormal
	}
	return types.Species(strings.ToUpper(s))
}

func action(s string) types.ActionType {
	return types.ActionType(strings.ToUpper(s))
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Cards: map[string]types.CardDef{},
	}

	if coll.encounter == nil {
		return nil, fmt.Errorf("no Encounter{} definition found")
	}
	defs.Encounter = compileEncounter(coll.encounter)

	for _, raw := range coll.cards {
		card := compileCard(raw)
		defs.Cards[card.ID] = card
		defs.CardOrder = append(defs.CardOrder, card.ID)
	}

	for _, raw := range coll.waves {
		defs.Waves = append(defs.Waves, compileWave(raw))
	}

	if coll.spawner != nil {
		defs.Spawner = compileSpawner(coll.spawner)
	}

	for _, raw := range coll.handlers {
		defs.Handlers = append(defs.Handlers, compileHandler(raw))
	}

	return defs, nil
}

func compileEncounter(tbl *lua.LTable) types.EncounterDef {
	return types.EncounterDef{
		Title:       getString(tbl, "title"),
		Author:      getString(tbl, "author"),
		Version:     getString(tbl, "version"),
		Intro:       getString(tbl, "intro"),
		Slots:       getIntOr(tbl, "slots", defaultSlots),
		PlayerHP:    getIntOr(tbl, "player_hp", defaultPlayerHP),
		Energy:      getIntOr(tbl, "energy", defaultEnergy),
		HandSize:    getIntOr(tbl, "hand_size", defaultHandSize),
		RagePerTurn: getInt(tbl, "rage_per_turn"),
		KillsToWin:  getInt(tbl, "kills_to_win"),
		Turns:       getInt(tbl, "turns"),
		Seed:        int64(getIntOr(tbl, "seed", defaultSeed)),
	}
}

func compileCard(raw rawCard) types.CardDef {
	card := types.CardDef{
		ID:     raw.id,
		Name:   getString(raw.table, "name"),
		Op:     strings.ToLower(getString(raw.table, "op")),
		Cost:   getIntOr(raw.table, "cost", 1),
		Amount: getInt(raw.table, "amount"),
		Weight: getIntOr(raw.table, "weight", 1),
	}
	if card.Name == "" {
		card.Name = raw.id
	}
	if effTbl := getTable(raw.table, "effects"); effTbl != nil {
		card.Effects = compileEffects(effTbl)
	}
	return card
}

func compileWave(raw rawWave) types.WaveDef {
	wave := types.WaveDef{Turn: raw.turn}
	for _, sp := range arrayTables(raw.table) {
		wave.Spawns = append(wave.Spawns, types.SpawnDef{
			Slot:      getInt(sp, "slot"),
			Action:    action(getString(sp, "action")),
			Magnitude: getInt(sp, "magnitude"),
			Species:   species(getString(sp, "species")),
		})
	}
	return wave
}

func compileSpawner(tbl *lua.LTable) types.SpawnerDef {
	sp := types.SpawnerDef{
		Every:  getIntOr(tbl, "every", 1),
		Slot:   getIntOr(tbl, "slot", -1),
		Chance: getIntOr(tbl, "chance", 100),
	}
	for _, entry := range arrayTables(tbl) {
		lo := getInt(entry, "min")
		sp.Entries = append(sp.Entries, types.SpawnEntry{
			Weight:  getIntOr(entry, "weight", 1),
			Action:  action(getString(entry, "action")),
			Min:     lo,
			Max:     getIntOr(entry, "max", lo),
			Species: species(getString(entry, "species")),
		})
	}
	return sp
}

func compileEffects(tbl *lua.LTable) []types.Effect {
	var effects []types.Effect
	for _, effTbl := range arrayTables(tbl) {
		effects = append(effects, compileEffect(effTbl))
	}
	return effects
}

func compileEffect(tbl *lua.LTable) types.Effect {
	effType := getString(tbl, "type")
	params := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			key := string(ks)
			if key != "type" {
				params[key] = toGoValue(v)
			}
		}
	})
	return types.Effect{
		Type:   effType,
		Params: params,
	}
}

func compileHandler(raw rawHandler) types.EventHandler {
	handler := types.EventHandler{
		Kind: types.EventKind(strings.ToLower(raw.kind)),
	}
	if sp := getString(raw.table, "species"); sp != "" {
		handler.Species = species(sp)
	}
	if effTbl := getTable(raw.table, "effects"); effTbl != nil {
		handler.Effects = compileEffects(effTbl)
	}
	return handler
}

// sortedLuaFiles returns .lua files with encounter.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var first string
	var others []string
	for _, f := range files {
		if f == "encounter.lua" {
			first = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if first != "" {
		return append([]string{first}, others...)
	}
	return others
}

package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Encounter { title = "...", slots = 5, ... }
	L.SetGlobal("Encounter", L.NewFunction(func(L *lua.LState) int {
		coll.encounter = L.CheckTable(1)
		return 0
	}))

	// Card "id" { ... }: curried, Card("id") returns a function that takes a table.
	L.SetGlobal("Card", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.cards = append(coll.cards, rawCard{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Wave(n) { Spawn(...), ... }: curried on the turn number.
	L.SetGlobal("Wave", L.NewFunction(func(L *lua.LState) int {
		turn := L.CheckInt(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.waves = append(coll.waves, rawWave{turn: turn, table: tbl})
			return 0
		}))
		return 1
	}))

	// Spawn(slot, "ATTACK", magnitude [, "SPECIES"])
	L.SetGlobal("Spawn", L.NewFunction(func(L *lua.LState) int {
		slot := L.CheckInt(1)
		action := L.CheckString(2)
		magnitude := L.CheckInt(3)
		species := L.OptString(4, "NORMAL")
		tbl := L.NewTable()
		tbl.RawSetString("slot", lua.LNumber(slot))
		tbl.RawSetString("action", lua.LString(action))
		tbl.RawSetString("magnitude", lua.LNumber(magnitude))
		tbl.RawSetString("species", lua.LString(species))
		L.Push(tbl)
		return 1
	}))

	// Spawner { every = 1, slot = 4, chance = 100, { weight = ..., ... }, ... }
	L.SetGlobal("Spawner", L.NewFunction(func(L *lua.LState) int {
		coll.spawner = L.CheckTable(1)
		return 0
	}))

	// On("event_kind", { species = "...", effects = {...} })
	L.SetGlobal("On", L.NewFunction(func(L *lua.LState) int {
		kind := L.CheckString(1)
		tbl := L.CheckTable(2)
		coll.handlers = append(coll.handlers, rawHandler{kind: kind, table: tbl})
		return 0
	}))
}

// amountEffect builds a helper that takes a single number, e.g. Heal(5).
func amountEffect(L *lua.LState, effType, key string) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		n := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(effType))
		tbl.RawSetString(key, n)
		L.Push(tbl)
		return 1
	})
}

func registerEffectHelpers(L *lua.LState) {
	// Say("text")
	L.SetGlobal("Say", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("say"))
		tbl.RawSetString("text", lua.LString(text))
		L.Push(tbl)
		return 1
	}))

	L.SetGlobal("Heal", amountEffect(L, "heal", "amount"))
	L.SetGlobal("Damage", amountEffect(L, "damage", "amount"))
	L.SetGlobal("GainBlock", amountEffect(L, "gain_block", "amount"))
	L.SetGlobal("GainEnergy", amountEffect(L, "gain_energy", "amount"))
	L.SetGlobal("Draw", amountEffect(L, "draw", "count"))

	// Stop()
	L.SetGlobal("Stop", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("stop"))
		L.Push(tbl)
		return 1
	}))
}

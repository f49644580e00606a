package scripting

import lua "github.com/yuin/gopher-lua"

// RegisterModules registers the engine.* Lua table into L. Every function is
// a thin bridge to a Manager callback; callbacks left nil make the function a
// no-op returning nil.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	L.SetField(engine, "get_combatant", L.NewFunction(func(ls *lua.LState) int {
		uid := ls.CheckString(1)
		if m.GetCombatant == nil {
			ls.Push(lua.LNil)
			return 1
		}
		info := m.GetCombatant(uid)
		if info == nil {
			ls.Push(lua.LNil)
			return 1
		}
		t := ls.NewTable()
		ls.SetField(t, "uid", lua.LString(info.UID))
		ls.SetField(t, "name", lua.LString(info.Name))
		ls.SetField(t, "hp", lua.LNumber(info.HP))
		ls.SetField(t, "max_hp", lua.LNumber(info.MaxHP))
		ls.SetField(t, "gp", lua.LNumber(info.GP))
		ls.SetField(t, "max_gp", lua.LNumber(info.MaxGP))
		ls.SetField(t, "attitude", lua.LString(info.Attitude))
		ls.SetField(t, "location", lua.LString(info.Location))
		ls.Push(t)
		return 1
	}))

	L.SetField(engine, "damage", L.NewFunction(func(ls *lua.LState) int {
		uid := ls.CheckString(1)
		hp := ls.CheckInt(2)
		if m.ApplyDamage != nil {
			if err := m.ApplyDamage(uid, hp); err != nil {
				ls.Push(lua.LString(err.Error()))
				return 1
			}
		}
		ls.Push(lua.LNil)
		return 1
	}))

	L.SetField(engine, "drain_stamina", L.NewFunction(func(ls *lua.LState) int {
		uid := ls.CheckString(1)
		gp := ls.CheckInt(2)
		if m.DrainStamina != nil {
			if err := m.DrainStamina(uid, gp); err != nil {
				ls.Push(lua.LString(err.Error()))
				return 1
			}
		}
		ls.Push(lua.LNil)
		return 1
	}))

	L.SetField(engine, "notify", L.NewFunction(func(ls *lua.LState) int {
		uid := ls.CheckString(1)
		msg := ls.CheckString(2)
		if m.Notify != nil {
			m.Notify(uid, msg)
		}
		return 0
	}))

	L.SetField(engine, "broadcast", L.NewFunction(func(ls *lua.LState) int {
		roomID := ls.CheckString(1)
		msg := ls.CheckString(2)
		if m.Broadcast != nil {
			m.Broadcast(roomID, msg)
		}
		return 0
	}))

	L.SetField(engine, "roll", L.NewFunction(func(ls *lua.LState) int {
		n := ls.CheckInt(1)
		if n <= 0 {
			ls.ArgError(1, "bound must be positive")
			return 0
		}
		ls.Push(lua.LNumber(m.src.Intn(n)))
		return 1
	}))

	L.SetGlobal("engine", engine)
}

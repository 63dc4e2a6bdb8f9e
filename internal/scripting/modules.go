package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine.log, engine.dice and engine.world
// tables plus the engine.message and engine.set_ter functions into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetGlobal("engine", engine)

	logT := L.NewTable()
	for name, fn := range map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	} {
		fn := fn
		L.SetField(logT, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	L.SetField(engine, "log", logT)

	diceT := L.NewTable()
	L.SetField(diceT, "range", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.roller.Range(L.CheckInt(1), L.CheckInt(2))))
		return 1
	}))
	L.SetField(diceT, "one_in", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(m.roller.OneIn(L.CheckInt(1))))
		return 1
	}))
	L.SetField(engine, "dice", diceT)

	// engine.message(kind, text)
	L.SetField(engine, "message", L.NewFunction(func(L *lua.LState) int {
		kind, text := L.CheckString(1), L.CheckString(2)
		if m.Message != nil {
			m.Message(kind, text)
		}
		return 0
	}))

	// engine.set_ter(x, y, z, id) returns true on success.
	L.SetField(engine, "set_ter", L.NewFunction(func(L *lua.LState) int {
		x, y, z := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
		id := L.CheckString(4)
		if m.SetTer == nil {
			L.Push(lua.LFalse)
			return 1
		}
		if err := m.SetTer(x, y, z, id); err != nil {
			m.logger.Warn("engine.set_ter failed", zap.String("ter", id), zap.Error(err))
			L.Push(lua.LFalse)
			return 1
		}
		L.Push(lua.LTrue)
		return 1
	}))
}

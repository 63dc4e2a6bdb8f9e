// Package scripting runs item-use scripts in a sandboxed GopherLua VM. It has
// no dependency on the map or the avatar; world changes are made through the
// callback fields of Manager.
package scripting

import (
	"context"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget of one script run when no
// limit is configured.
const DefaultInstructionLimit = 100_000

// budgetContext cancels itself once Done has been polled limit times.
// GopherLua polls Done once per opcode while a context is set.
type budgetContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining int64
}

func (c *budgetContext) Done() <-chan struct{} {
	c.remaining--
	if c.remaining <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// NewSandboxedState creates an LState with only base, table, string and math
// opened and the file and loader globals removed.
//
// Postcondition: the caller owns the LState and must Close it.
func NewSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// Limit bounds what L runs next to limit opcodes; 0 or less uses
// DefaultInstructionLimit. A run over budget fails with a cancellation error.
//
// Precondition: L has no context set and is not shared between goroutines.
// Postcondition: release must be called when the run is over; it lifts the
// bound so the next run starts with a full budget.
func Limit(L *lua.LState, limit int) (release func()) {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	base, cancel := context.WithCancel(context.Background())
	L.SetContext(&budgetContext{Context: base, cancel: cancel, remaining: int64(limit)})
	return func() {
		cancel()
		L.RemoveContext()
	}
}

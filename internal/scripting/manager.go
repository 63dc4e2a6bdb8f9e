package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/dice"
)

// ErrUnknownUse is returned by Invoke when no script handles the method.
var ErrUnknownUse = errors.New("scripting: no use script for method")

// UseContext describes one item use passed to a script.
type UseContext struct {
	// Item is the item definition id.
	Item    string
	Name    string
	Charges int
	// X, Y and Z are the target tile.
	X, Y, Z int
}

// Manager owns the item-use VM and dispatches use methods to it.
//
// A Manager serializes every call into its VM; it is safe for concurrent use
// once Load has returned.
type Manager struct {
	mu     sync.Mutex
	L      *lua.LState
	limit  int
	roller *dice.Roller
	logger *zap.Logger

	// Injected after construction. nil = no-op in engine.* modules.
	Message func(kind, text string)
	SetTer  func(x, y, z int, id string) error
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: roller and logger must be non-nil.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	return &Manager{roller: roller, logger: logger}
}

// Load replaces the VM with a fresh sandbox and executes every *.lua file in
// scriptDir in lexicographic order. Each file, and later each Invoke, may run
// at most instLimit opcodes.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: on error the previous VM stays in place.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState()
	m.RegisterModules(L)
	for _, path := range luaFiles {
		release := Limit(L, instLimit)
		err := L.DoFile(path)
		release()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L != nil {
		m.L.Close()
	}
	m.L, m.limit = L, instLimit
	m.logger.Info("item scripts loaded",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L != nil {
		m.L.Close()
		m.L = nil
	}
}

// HookName returns the Lua global that handles method.
func HookName(method string) string {
	return "use_" + strings.ToLower(method)
}

// Handles reports whether a script is defined for method.
func (m *Manager) Handles(method string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.L != nil && m.L.GetGlobal(HookName(method)) != lua.LNil
}

// Invoke calls the use_<method> hook with a context table and returns the
// move cost it reports. A hook returning nothing costs 0 moves.
//
// Postcondition: returns ErrUnknownUse (wrapped) when no hook is defined;
// Lua runtime errors are logged at Warn level and returned.
func (m *Manager) Invoke(method string, uc UseContext) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hook := HookName(method)
	if m.L == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUse, method)
	}
	fn := m.L.GetGlobal(hook)
	if fn == lua.LNil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUse, method)
	}

	ctx := m.L.NewTable()
	ctx.RawSetString("item", lua.LString(uc.Item))
	ctx.RawSetString("name", lua.LString(uc.Name))
	ctx.RawSetString("charges", lua.LNumber(uc.Charges))
	ctx.RawSetString("x", lua.LNumber(uc.X))
	ctx.RawSetString("y", lua.LNumber(uc.Y))
	ctx.RawSetString("z", lua.LNumber(uc.Z))

	release := Limit(m.L, m.limit)
	err := m.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, ctx)
	release()
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return 0, fmt.Errorf("scripting: %s: %w", hook, err)
	}
	ret := m.L.Get(-1)
	m.L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, nil
	}
	m.logger.Debug("item script",
		zap.String("hook", hook),
		zap.String("item", uc.Item),
		zap.Int("cost", int(n)),
	)
	return max(int(n), 0), nil
}

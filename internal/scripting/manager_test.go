package scripting_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/underbrush/internal/game/dice"
	"github.com/cory-johannsen/underbrush/internal/scripting"
)

type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	mgr := scripting.NewManager(dice.NewRoller(fixedSrc{v: 0}, logger), logger)
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0o644))
	return dir
}

func load(t *testing.T, mgr *scripting.Manager, src string) {
	t.Helper()
	require.NoError(t, mgr.Load(writeTempLua(t, "uses.lua", src), 0))
}

func TestHookName(t *testing.T) {
	assert.Equal(t, "use_pickaxe", scripting.HookName("PICKAXE"))
	assert.Equal(t, "use_jackhammer", scripting.HookName("JACKHAMMER"))
}

func TestManager_Invoke_ReturnsCost(t *testing.T) {
	mgr, _ := newTestManager(t)
	load(t, mgr, `
		function use_pickaxe(ctx)
			return 100 + ctx.x + ctx.charges
		end
	`)
	cost, err := mgr.Invoke("PICKAXE", scripting.UseContext{Item: "pickaxe", X: 5, Charges: 2})
	require.NoError(t, err)
	assert.Equal(t, 107, cost)
	assert.True(t, mgr.Handles("PICKAXE"))
	assert.False(t, mgr.Handles("BURROW"))
}

func TestManager_Invoke_NoReturnCostsNothing(t *testing.T) {
	mgr, _ := newTestManager(t)
	load(t, mgr, `function use_burrow(ctx) end`)
	cost, err := mgr.Invoke("BURROW", scripting.UseContext{})
	require.NoError(t, err)
	assert.Zero(t, cost)
}

func TestManager_Invoke_UnknownUse(t *testing.T) {
	mgr, _ := newTestManager(t)
	_, err := mgr.Invoke("PICKAXE", scripting.UseContext{})
	assert.True(t, errors.Is(err, scripting.ErrUnknownUse))

	load(t, mgr, `-- nothing`)
	_, err = mgr.Invoke("PICKAXE", scripting.UseContext{})
	assert.True(t, errors.Is(err, scripting.ErrUnknownUse))
}

func TestManager_Invoke_RuntimeErrorLogged(t *testing.T) {
	mgr, logs := newTestManager(t)
	load(t, mgr, `function use_pickaxe(ctx) error("handle snapped") end`)
	_, err := mgr.Invoke("PICKAXE", scripting.UseContext{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, scripting.ErrUnknownUse))
	assert.Equal(t, 1, logs.FilterMessage("scripting: Lua runtime error").Len())
}

func TestManager_Load_BadDirKeepsPreviousVM(t *testing.T) {
	mgr, _ := newTestManager(t)
	load(t, mgr, `function use_pickaxe(ctx) return 1 end`)
	assert.Error(t, mgr.Load(filepath.Join(t.TempDir(), "missing"), 0))
	assert.Error(t, mgr.Load(writeTempLua(t, "bad.lua", `function (`), 0))
	cost, err := mgr.Invoke("PICKAXE", scripting.UseContext{})
	require.NoError(t, err)
	assert.Equal(t, 1, cost)
}

func TestManager_Invoke_Concurrent(t *testing.T) {
	mgr, _ := newTestManager(t)
	load(t, mgr, `function use_pickaxe(ctx) return ctx.x end`)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			cost, err := mgr.Invoke("PICKAXE", scripting.UseContext{X: x})
			assert.NoError(t, err)
			assert.Equal(t, x, cost)
		}(i)
	}
	wg.Wait()
}

func TestManager_Invoke_BudgetIsPerCall(t *testing.T) {
	mgr, _ := newTestManager(t)
	src := `
		function use_pickaxe(ctx)
			local n = 0
			for i = 1, 20 do n = n + i end
			return n
		end
		function use_burrow(ctx)
			while true do end
		end
	`
	require.NoError(t, mgr.Load(writeTempLua(t, "uses.lua", src), 500))
	for i := 0; i < 50; i++ {
		cost, err := mgr.Invoke("PICKAXE", scripting.UseContext{})
		require.NoError(t, err, "call %d", i)
		assert.Equal(t, 210, cost)
	}
	_, err := mgr.Invoke("BURROW", scripting.UseContext{})
	assert.Error(t, err)
	cost, err := mgr.Invoke("PICKAXE", scripting.UseContext{})
	require.NoError(t, err, "a runaway script does not poison the VM")
	assert.Equal(t, 210, cost)
}

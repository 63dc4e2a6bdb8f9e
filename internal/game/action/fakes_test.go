package action_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/underbrush/internal/game/action"
	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/dice"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/message"
	"github.com/cory-johannsen/underbrush/internal/game/vehicle"
	"github.com/cory-johannsen/underbrush/internal/game/world"
)

// fixedSrc always returns min(v, n-1).
type fixedSrc struct{ v int }

func (f fixedSrc) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

type fakeGame struct {
	u          *avatar.Avatar
	m          *world.Map
	safeBlock  bool
	seen       int
	monsters   []*creature.Monster
	npcs       []*creature.NPC
	robot      bool
	walks      []geom.Tripoint
	viaRamp    bool
	menus      int
	hits       int
	dismounts  int
	moveEffect int
	moved      []geom.Tripoint
}

func (g *fakeGame) SafeModeAllowed() bool { return !g.safeBlock }
func (g *fakeGame) MonstersSeen() int     { return g.seen }

func (g *fakeGame) CritterAt(p geom.Tripoint) creature.Creature {
	if mon := g.MonsterAt(p, true); mon != nil {
		return mon
	}
	if np := g.NPCAt(p); np != nil {
		return np
	}
	return nil
}

func (g *fakeGame) MonsterAt(p geom.Tripoint, allowHallucination bool) *creature.Monster {
	for _, mon := range g.monsters {
		if mon.Pos() == p && !mon.IsDead() && (allowHallucination || !mon.IsHallucination()) {
			return mon
		}
	}
	return nil
}

func (g *fakeGame) NPCAt(p geom.Tripoint) *creature.NPC {
	for _, np := range g.npcs {
		if np.Pos() == p {
			return np
		}
	}
	return nil
}

func (g *fakeGame) DisableRobot(geom.Tripoint) bool { return g.robot }

func (g *fakeGame) WalkMove(p geom.Tripoint, viaRamp bool) bool {
	g.walks = append(g.walks, p)
	g.viaRamp = viaRamp
	if !g.m.Passable(p) {
		return false
	}
	g.u.SetPos(p)
	g.u.ModMoves(-g.m.MoveCostTerFurn(p) * 50)
	return true
}

func (g *fakeGame) NPCMenu(*creature.NPC)                          { g.menus++ }
func (g *fakeGame) DrawHit(geom.Tripoint, creature.Creature, bool) { g.hits++ }
func (g *fakeGame) MovingVehicleDismount(geom.Tripoint)            { g.dismounts++ }
func (g *fakeGame) OnMoveEffects()                                 { g.moveEffect++ }
func (g *fakeGame) UpdateMap()                                     {}
func (g *fakeGame) AvatarMoved(p geom.Tripoint)                    { g.moved = append(g.moved, p) }

type fakeUI struct {
	yes      bool
	prompts  []string
	popups   []string
	titles   []string
	pick     func([]inventory.Location) (inventory.Location, bool)
	traj     []geom.Tripoint
	throwPos geom.Tripoint
	exits    int
	reenters int
}

func (f *fakeUI) QueryYN(prompt string) bool {
	f.prompts = append(f.prompts, prompt)
	return f.yes
}
func (f *fakeUI) Popup(text string)           { f.popups = append(f.popups, text) }
func (f *fakeUI) KeyFor(action string) string { return "<" + action + ">" }

func (f *fakeUI) PickItem(title string, cands []inventory.Location) (inventory.Location, bool) {
	f.titles = append(f.titles, title)
	if f.pick == nil {
		return inventory.Location{}, false
	}
	return f.pick(cands)
}

func (f *fakeUI) TargetThrow(u *avatar.Avatar, _ *inventory.Item, _ bool) []geom.Tripoint {
	f.throwPos = u.Pos()
	return f.traj
}

func (f *fakeUI) TargetTurret(*avatar.Avatar, *vehicle.Turret) []geom.Tripoint { return f.traj }
func (f *fakeUI) TempExitFullscreen()                                          { f.exits++ }
func (f *fakeUI) ReenterFullscreen()                                           { f.reenters++ }

type invoked struct {
	method string
	item   string
	at     geom.Tripoint
}

type thrown struct {
	target geom.Tripoint
	item   *inventory.Item
}

type fakeRules struct {
	moveBlocked bool
	mountRefuse bool
	melee       []creature.Creature
	reach       []geom.Tripoint
	targets     []creature.Creature
	common      []string
	weapon      []string
	invoked     []invoked
	thrown      []thrown
	consumed    []*inventory.Item
	consumeOK   bool
	asIs        bool
	usable      bool
	used        []inventory.Location
	unloadable  bool
	unloaded    []inventory.Location
	mended      []inventory.Location
	invalidated int
}

func (r *fakeRules) MoveEffects(*avatar.Avatar, bool) bool             { return !r.moveBlocked }
func (r *fakeRules) MountWillMove(*avatar.Avatar, geom.Tripoint) bool  { return !r.mountRefuse }
func (r *fakeRules) MeleeAttack(_ *avatar.Avatar, c creature.Creature) { r.melee = append(r.melee, c) }

func (r *fakeRules) ReachAttack(_ *avatar.Avatar, _ *world.Map, p geom.Tripoint) {
	r.reach = append(r.reach, p)
}

func (r *fakeRules) TargetableCreatures(*avatar.Avatar, *world.Map, int) []creature.Creature {
	return r.targets
}

func (r *fakeRules) GunModeChecksCommon(*avatar.Avatar, *world.Map, *inventory.Item, inventory.GunMode) []string {
	return r.common
}

func (r *fakeRules) GunModeChecksWeapon(*avatar.Avatar, *world.Map, *inventory.Item, inventory.GunMode) []string {
	return r.weapon
}

func (r *fakeRules) InvokeItem(_ *avatar.Avatar, _ *world.Map, it *inventory.Item, method string, p geom.Tripoint) bool {
	r.invoked = append(r.invoked, invoked{method: method, item: it.TypeID(), at: p})
	return true
}

func (r *fakeRules) ThrowItem(_ *avatar.Avatar, _ *world.Map, target geom.Tripoint, it *inventory.Item, _ *geom.Tripoint) {
	r.thrown = append(r.thrown, thrown{target: target, item: it})
}

func (r *fakeRules) Consume(_ *avatar.Avatar, loc inventory.Location) bool {
	r.consumed = append(r.consumed, loc.Get())
	return true
}

func (r *fakeRules) ConsumeItem(_ *avatar.Avatar, it *inventory.Item) bool {
	r.consumed = append(r.consumed, it)
	return r.consumeOK
}

func (r *fakeRules) CanConsumeAsIs(*avatar.Avatar, *inventory.Item) bool { return r.asIs }
func (r *fakeRules) CanUse(*avatar.Avatar, *inventory.Item) bool         { return r.usable }

func (r *fakeRules) Use(_ *avatar.Avatar, _ *world.Map, loc inventory.Location) {
	r.used = append(r.used, loc)
}

func (r *fakeRules) RateUnload(*avatar.Avatar, *inventory.Item) bool { return r.unloadable }

func (r *fakeRules) Unload(_ *avatar.Avatar, _ *world.Map, loc inventory.Location) bool {
	r.unloaded = append(r.unloaded, loc)
	return true
}

func (r *fakeRules) MendItem(_ *avatar.Avatar, loc inventory.Location) {
	r.mended = append(r.mended, loc)
}
func (r *fakeRules) InvalidateCraftingInventory(*avatar.Avatar) { r.invalidated++ }

type fakeOptions map[string]bool

func (o fakeOptions) Bool(name string) bool { return o[name] }

type fixture struct {
	d     *action.Dispatcher
	u     *avatar.Avatar
	m     *world.Map
	game  *fakeGame
	ui    *fakeUI
	rules *fakeRules
	opts  fakeOptions
	items *inventory.Registry
	log   *message.Log
	logs  *observer.ObservedLogs
	roll  int
	zl    *zap.Logger
}

func testDefs() *world.Definitions {
	d := world.NewDefinitions()
	ter := func(id, name string, cost int, open string, flags ...string) {
		d.AddTerrain(&world.TerrainDef{TileDef: world.TileDef{ID: id, Name: name, MoveCost: cost, Open: open, Flags: flags}})
	}
	ter("t_floor", "floor", 2, "")
	ter("t_wall", "wall", 0, "")
	ter("t_rock", "rock", 0, "", world.FlagMineable)
	ter("t_door_c", "closed door", 0, "t_door_o", world.FlagDoor)
	ter("t_door_o", "open door", 2, "")
	ter(world.TerDoorLocked, "locked door", 0, "")
	ter(world.TerDoorBarLocked, "locked bar door", 0, "")
	ter(world.TerFault, "fault", 0, "")
	ter("t_water_dp", "deep water", 8, "", world.FlagSwimmable, world.FlagDeepWater)
	ter("t_ramp_up", "ramp", 2, "", world.FlagRampUp)
	ter("t_ramp", "ramp top", 2, "", world.FlagRamp)
	ter("t_ramp_end", "ramp end", 2, "", world.FlagRampEnd)
	ter("t_open_air", "open air", 2, "", world.FlagNoFloor)
	ter(world.TerUnderbrush, "underbrush", 6, "")
	ter(world.TerShrub, "shrub", 8, "")
	ter(world.TerGrass, "grass", 2, "")
	ter(world.TerGrassLong, "long grass", 2, "")
	ter(world.TerGrassTall, "tall grass", 3, "")
	ter(world.TerGrassGolf, "short grass", 2, "")
	ter(world.TerGrassDead, "dead grass", 2, "")
	ter(world.TerGrassWhite, "painted grass", 2, "")
	ter(world.TerDirt, "dirt", 2, "")
	d.AddFurniture(&world.FurnitureDef{TileDef: world.TileDef{ID: world.FurnSafeC, Name: "safe", Open: "f_safe_o"}})
	d.AddFurniture(&world.FurnitureDef{TileDef: world.TileDef{ID: "f_safe_o", Name: "open safe", MoveCost: 2}})
	return d
}

func testItems(t *testing.T) *inventory.Registry {
	t.Helper()
	reg := inventory.NewRegistry()
	for _, d := range []*inventory.ItemDef{
		{ID: "rock", Name: "rock", NamePlural: "rocks", Weight: 0.5, Volume: 250},
		{ID: "pebble", Name: "pebble", NamePlural: "pebbles", Weight: 0.01, Volume: 10, CountByCharges: true, InitialCharges: 5},
		{ID: "anvil", Name: "anvil", Weight: 80, Volume: 5000},
		{ID: "pickaxe", Name: "pickaxe", Weight: 3, Volume: 2000, Flags: []string{inventory.FlagDigTool}, Uses: []string{inventory.UsePickaxe}},
		{ID: "claws", Name: "claws", Weight: 0.1, Flags: []string{inventory.FlagNoUnwield}},
		{ID: "apple", Name: "apple", Weight: 0.2, Comestible: &inventory.ComestibleDef{Kcal: 95}},
		{ID: "can", Name: "can", Weight: 0.1, Flags: []string{inventory.FlagFoodContainer}},
		{ID: "lamp", Name: "lamp", Weight: 1, Flags: []string{inventory.FlagAllowsRemoteUse}},
		{ID: "flashlight", Name: "flashlight", Weight: 0.3, Volume: 250},
		{ID: inventory.IDSwimFins, Name: "swim fins", Weight: 0.5, Wearable: true},
		{ID: inventory.IDGrass, Name: "grass", Comestible: &inventory.ComestibleDef{Kcal: 60}},
		{ID: inventory.IDUnderbrush, Name: "underbrush", Comestible: &inventory.ComestibleDef{Kcal: 80}},
	} {
		require.NoError(t, reg.RegisterItem(d))
	}
	return reg
}

func newFixture(t *testing.T, roll int) *fixture {
	t.Helper()
	m, err := world.NewMap(testDefs(), "t_floor")
	require.NoError(t, err)
	u := avatar.New("Tester", geom.Tripoint{X: 5, Y: 5}, condition.NewRegistry(), inventory.NewInventory(20, 50))
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	f := &fixture{
		u:     u,
		m:     m,
		game:  &fakeGame{u: u, m: m},
		ui:    &fakeUI{},
		rules: &fakeRules{},
		opts:  fakeOptions{},
		items: testItems(t),
		log:   message.NewLog(nil),
		logs:  logs,
		roll:  roll,
		zl:    logger,
	}
	f.configure(action.Config{})
	return f
}

// configure rebuilds the dispatcher with cfg, keeping every collaborator.
func (f *fixture) configure(cfg action.Config) {
	f.d = action.New(cfg, f.game, f.ui, f.rules, f.opts, f.items,
		dice.NewRoller(fixedSrc{v: f.roll}, f.zl), f.log, f.zl)
}

func (f *fixture) item(t *testing.T, id string) *inventory.Item {
	t.Helper()
	it, err := f.items.Create(id)
	require.NoError(t, err)
	return it
}

func (f *fixture) ter(t *testing.T, p geom.Tripoint, id string) {
	t.Helper()
	require.NoError(t, f.m.SetTer(p, id))
}

func (f *fixture) last() string {
	e, _ := f.log.Last()
	return e.Text
}

func (f *fixture) texts() []string { return f.log.Texts() }

func at(x, y, z int) geom.Tripoint { return geom.Tripoint{X: x, Y: y, Z: z} }

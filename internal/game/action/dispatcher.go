// Package action resolves the avatar's actions: moving, attacking, swimming,
// firing, throwing, and handling items. Each operation mutates the avatar and
// map, reports to the message log, and charges moves.
package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/dice"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/message"
	"github.com/cory-johannsen/underbrush/internal/game/vehicle"
	"github.com/cory-johannsen/underbrush/internal/game/world"
)

// Option names read through Options.
const (
	OptAutoFeatures = "AUTO_FEATURES"
	OptAutoMining   = "AUTO_MINING"
)

// Key names passed to UI.KeyFor.
const (
	KeyMoveUp   = "move_up"
	KeyMoveDown = "move_down"
)

// Game is the world-level state the dispatcher consults.
type Game interface {
	// SafeModeAllowed is false while safe mode forbids acting.
	SafeModeAllowed() bool
	// MonstersSeen counts hostile monsters currently in view.
	MonstersSeen() int
	CritterAt(p geom.Tripoint) creature.Creature
	MonsterAt(p geom.Tripoint, allowHallucination bool) *creature.Monster
	NPCAt(p geom.Tripoint) *creature.NPC
	// DisableRobot offers to disable a robot at p; true consumes the move.
	DisableRobot(p geom.Tripoint) bool
	// WalkMove performs an ordinary step; false when the step is impossible.
	WalkMove(p geom.Tripoint, viaRamp bool) bool
	NPCMenu(np *creature.NPC)
	DrawHit(p geom.Tripoint, c creature.Creature, dead bool)
	MovingVehicleDismount(p geom.Tripoint)
	OnMoveEffects()
	UpdateMap()
	// AvatarMoved is the movement event hook.
	AvatarMoved(p geom.Tripoint)
}

// UI is the interactive surface. Strings passed in are already translated.
type UI interface {
	QueryYN(prompt string) bool
	Popup(text string)
	// KeyFor names the key bound to action.
	KeyFor(action string) string
	// PickItem asks for one of candidates; ok is false when cancelled.
	PickItem(title string, candidates []inventory.Location) (inventory.Location, bool)
	// TargetThrow returns the chosen trajectory, empty when cancelled.
	TargetThrow(u *avatar.Avatar, it *inventory.Item, blind bool) []geom.Tripoint
	TargetTurret(u *avatar.Avatar, t *vehicle.Turret) []geom.Tripoint
	TempExitFullscreen()
	ReenterFullscreen()
}

// Rules are the subsystems the dispatcher hands off to.
type Rules interface {
	// MoveEffects resolves effects that hinder moving; false wastes the turn.
	MoveEffects(u *avatar.Avatar, attacking bool) bool
	MountWillMove(u *avatar.Avatar, dest geom.Tripoint) bool
	MeleeAttack(u *avatar.Avatar, target creature.Creature)
	ReachAttack(u *avatar.Avatar, m *world.Map, p geom.Tripoint)
	TargetableCreatures(u *avatar.Avatar, m *world.Map, reach int) []creature.Creature
	// GunModeChecksCommon returns the reasons mode cannot be fired, nil when it can.
	GunModeChecksCommon(u *avatar.Avatar, m *world.Map, gun *inventory.Item, mode inventory.GunMode) []string
	GunModeChecksWeapon(u *avatar.Avatar, m *world.Map, gun *inventory.Item, mode inventory.GunMode) []string
	InvokeItem(u *avatar.Avatar, m *world.Map, it *inventory.Item, method string, p geom.Tripoint) bool
	ThrowItem(u *avatar.Avatar, m *world.Map, target geom.Tripoint, it *inventory.Item, blindFrom *geom.Tripoint)
	// Consume eats or drinks an item the avatar holds.
	Consume(u *avatar.Avatar, loc inventory.Location) bool
	// ConsumeItem eats from an item lying elsewhere without moving it.
	ConsumeItem(u *avatar.Avatar, it *inventory.Item) bool
	CanConsumeAsIs(u *avatar.Avatar, it *inventory.Item) bool
	CanUse(u *avatar.Avatar, it *inventory.Item) bool
	Use(u *avatar.Avatar, m *world.Map, loc inventory.Location)
	// RateUnload reports whether unloading it would do anything.
	RateUnload(u *avatar.Avatar, it *inventory.Item) bool
	Unload(u *avatar.Avatar, m *world.Map, loc inventory.Location) bool
	MendItem(u *avatar.Avatar, loc inventory.Location)
	InvalidateCraftingInventory(u *avatar.Avatar)
}

// Options reads boolean game options.
type Options interface {
	Bool(name string) bool
}

// Config holds display settings that change action geometry.
type Config struct {
	// TileIso selects isometric facing rules.
	TileIso bool
	// TrigDist charges diagonal swimming by sqrt(2).
	TrigDist bool
}

// Dispatcher resolves avatar actions against its collaborators.
type Dispatcher struct {
	cfg    Config
	game   Game
	ui     UI
	rules  Rules
	opts   Options
	items  *inventory.Registry
	dice   *dice.Roller
	log    *message.Log
	logger *zap.Logger
}

// New creates a Dispatcher.
//
// Precondition: every argument is non-nil.
func New(cfg Config, game Game, ui UI, rules Rules, opts Options, items *inventory.Registry,
	roller *dice.Roller, log *message.Log, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		game:   game,
		ui:     ui,
		rules:  rules,
		opts:   opts,
		items:  items,
		dice:   roller,
		log:    log,
		logger: logger,
	}
}

// Log returns the message log the dispatcher writes to.
func (d *Dispatcher) Log() *message.Log { return d.log }

// relaxGasCheck rolls against relax gas: it passes one time in chance,
// otherwise costs rng(2, maxPenalty)*10 moves. Callers report the outcome.
func (d *Dispatcher) relaxGasCheck(u *avatar.Avatar, chance, maxPenalty int) bool {
	if d.dice.OneIn(chance) {
		return true
	}
	u.ModMoves(-d.dice.Range(2, maxPenalty) * 10)
	return false
}

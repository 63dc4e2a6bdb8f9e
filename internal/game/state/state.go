// Package state holds the live game: the map, the creatures on it and the
// avatar. It is the concrete world the action dispatcher moves through.
package state

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/message"
	"github.com/cory-johannsen/underbrush/internal/game/world"
)

const (
	// SightRange is how far away a hostile monster counts as seen.
	SightRange = 12
	// TurnMoves is the move allowance restored every turn.
	TurnMoves = 100

	costDisableRobot = 100
	costSwapPlaces   = 100
	costDiveOut      = 200
	walkCostFactor   = 50
	inventorySlots   = 26
	inventoryWeight  = 40.0
)

// Prompter asks the player yes/no questions.
type Prompter interface {
	QueryYN(prompt string) bool
}

// State is the live game.
type State struct {
	Map    *world.Map
	Avatar *avatar.Avatar
	// SafeMode refuses movement while hostile monsters are in view.
	SafeMode bool

	monsters   []*creature.Monster
	npcs       []*creature.NPC
	seen       int
	turn       int
	prompter   Prompter
	rampMove   func(p geom.Tripoint) bool
	conditions *condition.Registry
	log        *message.Log
	logger     *zap.Logger
}

// New lays out level, spawns its creatures and places the avatar at the
// level's start.
//
// Precondition: level has been validated against defs; every argument is non-nil.
// Postcondition: returns a State with the seen-monster count computed, or an error.
func New(level *world.Level, defs *world.Definitions, items *inventory.Registry,
	conditions *condition.Registry, prompter Prompter, log *message.Log, logger *zap.Logger) (*State, error) {
	m, err := level.Build(defs, items)
	if err != nil {
		return nil, fmt.Errorf("building level %q: %w", level.ID, err)
	}
	s := &State{
		Map:        m,
		Avatar:     avatar.New("you", level.Start, conditions, inventory.NewInventory(inventorySlots, inventoryWeight)),
		prompter:   prompter,
		conditions: conditions,
		log:        log,
		logger:     logger,
	}
	for _, sp := range level.Creatures {
		if err := s.spawn(sp, items); err != nil {
			return nil, fmt.Errorf("level %q: %w", level.ID, err)
		}
	}
	s.UpdateMap()
	logger.Info("level loaded",
		zap.String("level", level.ID),
		zap.Int("monsters", len(s.monsters)),
		zap.Int("npcs", len(s.npcs)),
	)
	return s, nil
}

// spawn places one creature from its level entry.
func (s *State) spawn(sp world.CreatureSpawn, items *inventory.Registry) error {
	name := sp.Name
	if name == "" {
		name = sp.ID
	}
	hp := max(sp.HP, 1)
	pos := geom.Tripoint{X: sp.X, Y: sp.Y, Z: sp.Z}
	id := sp.ID + "-" + uuid.NewString()

	var effects *condition.ActiveSet
	switch sp.Kind {
	case "monster", "":
		mon := creature.NewMonster(id, name, pos, hp, sp.Defense)
		mon.Flags = sp.Flags
		mon.Swimmer = sp.Swims
		mon.Difficulty = sp.Level
		if sp.Friendly {
			mon.Friendly = 1
		}
		if sp.Size != "" {
			mon.Size = creature.ParseSize(sp.Size)
		}
		effects = mon.Effects
		s.monsters = append(s.monsters, mon)
	case "npc":
		np := creature.NewNPC(id, name, pos, hp, sp.Defense)
		np.Attitude = creature.ParseAttitude(sp.Attitude)
		if sp.Weapon != "" {
			w, err := items.Create(sp.Weapon)
			if err != nil {
				return fmt.Errorf("npc %q weapon: %w", sp.ID, err)
			}
			np.Weapon = w
		}
		effects = np.Effects
		s.npcs = append(s.npcs, np)
	default:
		return fmt.Errorf("creature %q: unknown kind %q", sp.ID, sp.Kind)
	}
	for _, e := range sp.Effects {
		if err := effects.Apply(s.conditions.Lookup(e), 1, -1); err != nil {
			return fmt.Errorf("creature %q effect %q: %w", sp.ID, e, err)
		}
	}
	return nil
}

// SetRampHook installs the climb used when a walk is blocked at the
// avatar's own level.
func (s *State) SetRampHook(fn func(p geom.Tripoint) bool) { s.rampMove = fn }

// AddMonster puts mon on the map.
func (s *State) AddMonster(mon *creature.Monster) { s.monsters = append(s.monsters, mon) }

// AddNPC puts np on the map.
func (s *State) AddNPC(np *creature.NPC) { s.npcs = append(s.npcs, np) }

// Turn is the number of turns elapsed.
func (s *State) Turn() int { return s.turn }

// Monsters returns the living monsters.
func (s *State) Monsters() []*creature.Monster {
	var out []*creature.Monster
	for _, m := range s.monsters {
		if !m.IsDead() {
			out = append(out, m)
		}
	}
	return out
}

// NPCs returns the living NPCs.
func (s *State) NPCs() []*creature.NPC {
	var out []*creature.NPC
	for _, n := range s.npcs {
		if !n.IsDead() {
			out = append(out, n)
		}
	}
	return out
}

// Creatures returns every living creature, monsters first.
func (s *State) Creatures() []creature.Creature {
	var out []creature.Creature
	for _, m := range s.Monsters() {
		out = append(out, m)
	}
	for _, n := range s.NPCs() {
		out = append(out, n)
	}
	return out
}

// SafeModeAllowed is false while safe mode is on and a hostile is in view.
func (s *State) SafeModeAllowed() bool {
	if s.SafeMode && s.seen > 0 {
		s.log.Add(message.Warning, "Hostiles are nearby.  Safe mode prevents you from moving.")
		return false
	}
	return true
}

// MonstersSeen counts the hostile monsters in view at the last map update.
func (s *State) MonstersSeen() int { return s.seen }

// CritterAt returns the living creature at p, if any.
func (s *State) CritterAt(p geom.Tripoint) creature.Creature {
	if m := s.MonsterAt(p, true); m != nil {
		return m
	}
	if n := s.NPCAt(p); n != nil {
		return n
	}
	return nil
}

// MonsterAt returns the living monster at p. Hallucinations are skipped
// unless allowHallucination is set.
func (s *State) MonsterAt(p geom.Tripoint, allowHallucination bool) *creature.Monster {
	for _, m := range s.monsters {
		if m.IsDead() || m.Pos() != p {
			continue
		}
		if m.IsHallucination() && !allowHallucination {
			continue
		}
		return m
	}
	return nil
}

// NPCAt returns the living NPC at p.
func (s *State) NPCAt(p geom.Tripoint) *creature.NPC {
	for _, n := range s.npcs {
		if !n.IsDead() && n.Pos() == p {
			return n
		}
	}
	return nil
}

// DisableRobot offers to shut down a friendly robot standing at p.
//
// Postcondition: returns true when the robot was disabled and the move spent.
func (s *State) DisableRobot(p geom.Tripoint) bool {
	mon := s.MonsterAt(p, false)
	if mon == nil || mon.Friendly == 0 || !mon.HasFlag(creature.FlagRobot) {
		return false
	}
	if !s.prompter.QueryYN(s.log.Sprintf("Disable the %s?", mon.Name())) {
		return false
	}
	mon.Die()
	s.Avatar.ModMoves(-costDisableRobot)
	s.log.Add(message.Good, "You disable the %s.", mon.Name())
	s.logger.Debug("robot disabled", zap.String("monster", mon.ID()))
	return true
}

// WalkMove steps the avatar onto p: passability, displacing friendly
// monsters, move cost by mode, vehicle boarding. An impassable p on the
// avatar's level is handed to the ramp hook unless the step already came
// off a ramp.
//
// Postcondition: returns true when the avatar moved or the ramp hook acted.
func (s *State) WalkMove(p geom.Tripoint, viaRamp bool) bool {
	u, m := s.Avatar, s.Map
	if !m.Passable(p) {
		if !viaRamp && s.rampMove != nil {
			return s.rampMove(p)
		}
		return false
	}
	from := u.Pos()
	if c := s.CritterAt(p); c != nil {
		mon, ok := c.(*creature.Monster)
		if !ok || mon.Friendly == 0 && !mon.HasEffect(condition.Pet) {
			return false
		}
		mon.SetPos(from)
		s.log.Add(message.Neutral, "You swap places with your %s.", mon.Name())
	}

	cost := m.MoveCostTerFurn(p) * walkCostFactor
	switch u.Mode {
	case avatar.Run:
		cost = max(cost/2, 1)
	case avatar.Crouch:
		cost *= 2
	}

	if u.InVehicle {
		m.UnboardVehicle(from)
		u.InVehicle = false
	}
	u.SetPos(p)
	if _, _, ok := m.VehAt(p); ok {
		u.InVehicle = m.BoardVehicle(p, u.Name)
	}
	u.ModMoves(-cost)
	if !u.IsMounted() {
		u.BurnMoveStamina(cost)
	}
	s.UpdateMap()
	s.AvatarMoved(p)
	return true
}

// NPCMenu interacts with a non-hostile NPC: friends swap places, others
// have nothing to say.
func (s *State) NPCMenu(np *creature.NPC) {
	if np.Attitude != creature.AttitudeFriend {
		s.log.Add(message.Neutral, "%s has nothing to say to you.", np.Name())
		return
	}
	if !s.prompter.QueryYN(s.log.Sprintf("Swap places with %s?", np.Name())) {
		return
	}
	from := s.Avatar.Pos()
	s.Avatar.SetPos(np.Pos())
	np.SetPos(from)
	s.Avatar.ModMoves(-costSwapPlaces)
	s.log.Add(message.Neutral, "You swap places with %s.", np.Name())
	s.AvatarMoved(s.Avatar.Pos())
}

// DrawHit records a hit landing at p. The console has no animation layer.
func (s *State) DrawHit(p geom.Tripoint, c creature.Creature, dead bool) {
	s.logger.Debug("hit",
		zap.Stringer("pos", p),
		zap.String("target", c.Name()),
		zap.Bool("dead", dead),
	)
}

// MovingVehicleDismount throws the avatar clear of a moving vehicle onto p.
func (s *State) MovingVehicleDismount(p geom.Tripoint) {
	u := s.Avatar
	s.Map.UnboardVehicle(u.Pos())
	u.InVehicle = false
	u.SetPos(p)
	u.AddEffect(condition.Downed, 2)
	u.ModMoves(-costDiveOut)
	s.log.Add(message.Bad, "You dive from the vehicle and hit the ground hard!")
	s.UpdateMap()
	s.AvatarMoved(p)
}

// OnMoveEffects settles the cost of a step: an exhausted runner drops to
// walking.
func (s *State) OnMoveEffects() {
	u := s.Avatar
	if u.Mode == avatar.Run && u.Stamina < u.MaxStamina/10 {
		u.Mode = avatar.Walk
		s.log.Add(message.Warning, "You're too tired to run.")
	}
}

// UpdateMap recounts the hostile monsters in view.
func (s *State) UpdateMap() {
	pos := s.Avatar.Pos()
	seen := 0
	for _, m := range s.monsters {
		if m.IsDead() || m.IsHallucination() || m.Friendly != 0 || m.HasEffect(condition.Pet) {
			continue
		}
		if m.Pos().Z == pos.Z && geom.Dist(pos, m.Pos()) <= SightRange {
			seen++
		}
	}
	if seen > s.seen {
		s.logger.Debug("hostiles sighted", zap.Int("seen", seen))
	}
	s.seen = seen
}

// AvatarMoved reports what lies at the avatar's new position.
func (s *State) AvatarMoved(p geom.Tripoint) {
	s.logger.Debug("avatar moved", zap.Stringer("pos", p))
	items := s.Map.ItemsAt(p)
	switch len(items) {
	case 0:
	case 1:
		s.log.Add(message.Info, "You see here %s.", items[0].Name())
	default:
		s.log.Add(message.Info, "There are %d items here.", len(items))
	}
}

// EndTurn passes turns until the avatar can act again, ticking effects.
//
// Postcondition: Avatar.Moves > 0.
func (s *State) EndTurn() {
	u := s.Avatar
	for u.Moves <= 0 {
		u.Moves += TurnMoves
		s.turn++
		for _, id := range u.Effects.Tick() {
			s.logger.Debug("effect expired", zap.String("effect", id))
		}
		for _, c := range s.monsters {
			c.Effects.Tick()
		}
		for _, c := range s.npcs {
			c.Effects.Tick()
		}
		if u.Stamina < u.MaxStamina && !u.MovementModeIs(avatar.Run) {
			u.Stamina = min(u.Stamina+TurnMoves/2, u.MaxStamina)
		}
	}
	s.UpdateMap()
}

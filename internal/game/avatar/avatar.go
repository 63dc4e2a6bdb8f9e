// Package avatar holds the player character's state and the derived rules
// the action dispatcher consults.
package avatar

import (
	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
)

// Traits and mutations the rules refer to.
const (
	TraitBurrow   = "BURROW"
	TraitGrazer   = "GRAZER"
	TraitRuminant = "RUMINANT"
	TraitShell2   = "SHELL2"
)

// Keys of the avatar's value map.
const (
	ValueThiefMode     = "THIEF_MODE"
	ValueThiefModeKeep = "THIEF_MODE_KEEP"
)

// THIEF_MODE values.
const (
	ThiefAsk    = "THIEF_ASK"
	ThiefHonest = "THIEF_HONEST"
	ThiefSteal  = "THIEF_STEAL"
)

// Skill ids.
const (
	SkillSwimming = "swimming"
	SkillMelee    = "melee"
	SkillThrow    = "throw"
)

// MoveMode is the avatar's gait.
type MoveMode int

const (
	Walk MoveMode = iota
	Run
	Crouch
)

// String returns a lowercase gait name.
func (m MoveMode) String() string {
	switch m {
	case Run:
		return "run"
	case Crouch:
		return "crouch"
	default:
		return "walk"
	}
}

// Avatar is the player character.
type Avatar struct {
	Name string
	// Faction owns whatever the avatar owns; vehicles of other factions are theft.
	Faction string
	pos     geom.Tripoint
	// Moves is the move budget for the current turn; actions subtract from it.
	Moves  int
	Facing creature.Facing

	Effects *condition.ActiveSet
	// conditions resolves effect ids for Apply.
	conditions *condition.Registry

	traits          map[string]bool
	activeMutations map[string]bool

	Weapon *inventory.Item
	Worn   []*inventory.Item
	Inv    *inventory.Inventory

	Mount *creature.Monster

	Underwater bool
	Oxygen     int
	StrCur     int
	Stamina    int
	MaxStamina int
	// skills holds accumulated practice per skill; 100 practice is one level.
	skills map[string]int

	StoredKcal int
	MaxKcal    int

	values map[string]string

	destination []geom.Tripoint
	deferred    *geom.Tripoint

	Mode        MoveMode
	Blind       bool
	InVehicle   bool
	WorkingArms int

	Activity *Activity
	drenched map[BodyPart]int
}

// New creates an avatar at pos with default statistics.
//
// Precondition: conditions and inv must not be nil.
// Postcondition: the avatar is unarmed, walking, and has two working arms.
func New(name string, pos geom.Tripoint, conditions *condition.Registry, inv *inventory.Inventory) *Avatar {
	return &Avatar{
		Name:            name,
		Faction:         "your_followers",
		pos:             pos,
		Moves:           100,
		Effects:         condition.NewActiveSet(),
		conditions:      conditions,
		traits:          make(map[string]bool),
		activeMutations: make(map[string]bool),
		Inv:             inv,
		Oxygen:          30,
		StrCur:          8,
		Stamina:         10000,
		MaxStamina:      10000,
		skills:          make(map[string]int),
		StoredKcal:      55000,
		MaxKcal:         60000,
		values:          make(map[string]string),
		WorkingArms:     2,
		drenched:        make(map[BodyPart]int),
	}
}

// Pos returns the avatar's position.
func (a *Avatar) Pos() geom.Tripoint { return a.pos }

// SetPos moves the avatar, and its mount with it.
func (a *Avatar) SetPos(p geom.Tripoint) {
	a.pos = p
	if a.Mount != nil {
		a.Mount.SetPos(p)
	}
}

// Size is the avatar's body size.
func (a *Avatar) Size() creature.Size { return creature.SizeMedium }

// HasEffect reports whether effect id is active.
func (a *Avatar) HasEffect(id string) bool { return a.Effects.Has(id) }

// AddEffect applies effect id for turns (-1 permanent).
func (a *Avatar) AddEffect(id string, turns int) {
	// Lookup never returns nil so Apply cannot fail.
	_ = a.Effects.Apply(a.conditions.Lookup(id), 1, turns)
}

// RemoveEffect clears effect id.
func (a *Avatar) RemoveEffect(id string) { a.Effects.Remove(id) }

// SetTrait grants or removes a trait.
func (a *Avatar) SetTrait(id string, on bool) {
	if on {
		a.traits[id] = true
		return
	}
	delete(a.traits, id)
	delete(a.activeMutations, id)
}

// HasTrait reports whether the avatar has trait id.
func (a *Avatar) HasTrait(id string) bool { return a.traits[id] }

// SetMutationActive toggles an activatable mutation; the trait must be present.
//
// Postcondition: returns false when the avatar lacks the trait.
func (a *Avatar) SetMutationActive(id string, active bool) bool {
	if !a.traits[id] {
		return false
	}
	if active {
		a.activeMutations[id] = true
	} else {
		delete(a.activeMutations, id)
	}
	return true
}

// HasActiveMutation reports whether mutation id is present and switched on.
// Passive traits count as active.
func (a *Avatar) HasActiveMutation(id string) bool {
	return a.traits[id] && (a.activeMutations[id] || !activatable[id])
}

// activatable lists mutations that are only in effect while switched on.
var activatable = map[string]bool{
	TraitShell2: true,
}

// Value returns the stored value for key, or "".
func (a *Avatar) Value(key string) string { return a.values[key] }

// SetValue stores a value.
func (a *Avatar) SetValue(key, v string) { a.values[key] = v }

// IsMounted reports whether the avatar rides a creature.
func (a *Avatar) IsMounted() bool { return a.Mount != nil }

// IsUnderwater reports whether the avatar is submerged.
func (a *Avatar) IsUnderwater() bool { return a.Underwater }

// SetUnderwater submerges or surfaces the avatar.
func (a *Avatar) SetUnderwater(u bool) { a.Underwater = u }

// IsBlind reports whether the avatar cannot see.
func (a *Avatar) IsBlind() bool { return a.Blind }

// MovementModeIs reports whether the current gait is m.
func (a *Avatar) MovementModeIs(m MoveMode) bool { return a.Mode == m }

// ModMoves adds delta to the move budget.
func (a *Avatar) ModMoves(delta int) { a.Moves += delta }

// Pause spends the rest of the turn resting.
//
// Postcondition: Moves == 0; stamina recovers by the unused moves.
func (a *Avatar) Pause() {
	if a.Moves > 0 {
		a.Stamina = min(a.Stamina+a.Moves, a.MaxStamina)
	}
	a.Moves = 0
}

// SetDestination starts auto-moving along route.
func (a *Avatar) SetDestination(route []geom.Tripoint) {
	a.destination = append([]geom.Tripoint(nil), route...)
}

// IsAutoMoving reports whether an auto-move route is in progress.
func (a *Avatar) IsAutoMoving() bool { return len(a.destination) > 0 }

// ClearDestination cancels auto-move and any deferred move.
func (a *Avatar) ClearDestination() {
	a.destination = nil
	a.deferred = nil
}

// NextDestination pops the next auto-move step.
func (a *Avatar) NextDestination() (geom.Tripoint, bool) {
	if len(a.destination) == 0 {
		return geom.Tripoint{}, false
	}
	p := a.destination[0]
	a.destination = a.destination[1:]
	return p, true
}

// DeferMove records that the avatar should step into p once the current
// activity finishes.
func (a *Avatar) DeferMove(p geom.Tripoint) {
	a.deferred = &p
}

// DeferredMove returns the pending deferred step, if any.
func (a *Avatar) DeferredMove() (geom.Tripoint, bool) {
	if a.deferred == nil {
		return geom.Tripoint{}, false
	}
	return *a.deferred, true
}

// Practice adds practice to skill.
func (a *Avatar) Practice(skill string, amount int) {
	a.skills[skill] += amount
}

// SkillLevel returns the level of skill.
func (a *Avatar) SkillLevel(skill string) int { return a.skills[skill] / 100 }

// SkillPractice returns the raw practice in skill.
func (a *Avatar) SkillPractice(skill string) int { return a.skills[skill] }

// BurnMoveStamina spends stamina for a move costing moves. Running burns
// more, crouching less.
//
// Postcondition: Stamina >= 0.
func (a *Avatar) BurnMoveStamina(moves int) {
	burn := moves
	switch a.Mode {
	case Run:
		burn *= 7
	case Crouch:
		burn /= 2
	}
	a.Stamina = max(a.Stamina-burn, 0)
}

// Eat adds the food's calories.
//
// Postcondition: returns false and changes nothing for non-comestibles.
func (a *Avatar) Eat(food *inventory.Item) bool {
	if !food.IsComestible() {
		return false
	}
	a.StoredKcal += food.Kcal()
	return true
}

package creature

import (
	"github.com/cory-johannsen/underbrush/internal/game/geom"
)

// Monster flags.
const (
	FlagImmobile     = "IMMOBILE"
	FlagRideableMech = "RIDEABLE_MECH"
	FlagRobot        = "ROBOT"
)

// Monster is a non-NPC creature.
type Monster struct {
	body
	// Friendly is non-zero for tamed or allied monsters.
	Friendly      int
	Flags         []string
	Hallucination bool
	Difficulty    int
	Swimmer       bool
	Size          Size
	Facing        Facing
	// Battery is the charge left in a rideable mech.
	Battery int
}

// NewMonster creates a monster at full health.
//
// Precondition: id and name are non-empty; hp >= 1.
func NewMonster(id, name string, pos geom.Tripoint, hp, ac int) *Monster {
	return &Monster{body: newBody(id, name, pos, hp, ac), Size: SizeMedium}
}

// IsNPC is false for monsters.
func (m *Monster) IsNPC() bool { return false }

// HasFlag reports whether the monster carries flag.
func (m *Monster) HasFlag(flag string) bool {
	for _, f := range m.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// IsHallucination reports whether the monster is imaginary.
func (m *Monster) IsHallucination() bool { return m.Hallucination }

// Swims reports whether the monster can move through deep water.
func (m *Monster) Swims() bool { return m.Swimmer }

// Die kills the monster outright.
func (m *Monster) Die() { m.CurrentHP = 0 }

// CheckMechPowered reports whether a rideable mech still has battery.
// Other monsters are always powered.
func (m *Monster) CheckMechPowered() bool {
	if !m.HasFlag(FlagRideableMech) {
		return true
	}
	return m.Battery > 0
}

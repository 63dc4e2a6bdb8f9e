package creature

import (
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
)

// Attitude is how an NPC regards the avatar.
type Attitude int

const (
	AttitudeNeutral Attitude = iota
	AttitudeFriend
	AttitudeEnemy
)

// ParseAttitude maps an attitude name to an Attitude; unknown names are neutral.
func ParseAttitude(s string) Attitude {
	switch s {
	case "friend":
		return AttitudeFriend
	case "enemy", "hostile":
		return AttitudeEnemy
	default:
		return AttitudeNeutral
	}
}

// NPC is a non-player character.
type NPC struct {
	body
	Attitude Attitude
	Weapon   *inventory.Item
}

// NewNPC creates an NPC at full health.
//
// Precondition: id and name are non-empty; hp >= 1.
func NewNPC(id, name string, pos geom.Tripoint, hp, ac int) *NPC {
	return &NPC{body: newBody(id, name, pos, hp, ac)}
}

// IsNPC is true for NPCs.
func (n *NPC) IsNPC() bool { return true }

// IsEnemy reports whether the NPC is hostile to the avatar.
func (n *NPC) IsEnemy() bool { return n.Attitude == AttitudeEnemy }

// MakeAngry turns the NPC hostile.
func (n *NPC) MakeAngry() { n.Attitude = AttitudeEnemy }

// WeaponValue rates the NPC's armament: the weapon's value, or 0 unarmed.
func (n *NPC) WeaponValue() int {
	if n.Weapon == nil {
		return 0
	}
	return n.Weapon.Def.Value
}

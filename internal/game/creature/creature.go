// Package creature provides the monsters and NPCs the avatar interacts with.
package creature

import (
	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
)

// Creature is anything that occupies a tile and can be attacked.
type Creature interface {
	ID() string
	Pos() geom.Tripoint
	Name() string
	IsNPC() bool
	IsDead() bool
	HasEffect(id string) bool
	// Defense is the target number an attack roll must reach.
	Defense() int
	// TakeDamage reduces hit points, flooring at zero.
	TakeDamage(n int)
}

// Facing is the horizontal direction a sprite faces.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

// Size is a creature's body size.
type Size int

const (
	SizeTiny Size = iota
	SizeSmall
	SizeMedium
	SizeLarge
	SizeHuge
)

// ParseSize maps a size name to a Size; unknown names are medium.
func ParseSize(s string) Size {
	switch s {
	case "tiny":
		return SizeTiny
	case "small":
		return SizeSmall
	case "large":
		return SizeLarge
	case "huge":
		return SizeHuge
	default:
		return SizeMedium
	}
}

// body holds the state shared by monsters and NPCs.
type body struct {
	id        string
	name      string
	pos       geom.Tripoint
	CurrentHP int
	MaxHP     int
	AC        int
	Effects   *condition.ActiveSet
}

func (b *body) ID() string               { return b.id }
func (b *body) Name() string             { return b.name }
func (b *body) Pos() geom.Tripoint       { return b.pos }
func (b *body) SetPos(p geom.Tripoint)   { b.pos = p }
func (b *body) IsDead() bool             { return b.CurrentHP <= 0 }
func (b *body) HasEffect(id string) bool { return b.Effects.Has(id) }
func (b *body) Defense() int             { return b.AC }
func (b *body) TakeDamage(n int)         { b.CurrentHP = max(b.CurrentHP-n, 0) }
func (b *body) RemoveEffect(id string)   { b.Effects.Remove(id) }

// HealthDescription returns a visible health state string.
//
// Postcondition: Returns a non-empty string.
func (b *body) HealthDescription() string {
	if b.CurrentHP <= 0 {
		return "dead"
	}
	pct := float64(b.CurrentHP) / float64(max(b.MaxHP, 1))
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}

func newBody(id, name string, pos geom.Tripoint, hp, ac int) body {
	return body{
		id:        id,
		name:      name,
		pos:       pos,
		CurrentHP: hp,
		MaxHP:     hp,
		AC:        ac,
		Effects:   condition.NewActiveSet(),
	}
}

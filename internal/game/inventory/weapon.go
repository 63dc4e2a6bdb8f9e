package inventory

import (
	"errors"
	"fmt"
)

// GunMode is one firing mode of a gun.
type GunMode struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Shots int    `yaml:"shots"`
	// Melee modes fire the weapon as a club, e.g. a bayonet.
	Melee bool `yaml:"melee"`
}

// GunDef defines the ranged properties of an item.
type GunDef struct {
	AmmoTypes []string  `yaml:"ammo_types"`
	Modes     []GunMode `yaml:"modes"`
	Capacity  int       `yaml:"capacity"`
	Range     int       `yaml:"range"`
	// UsableUnderwater guns may be fired while submerged.
	UsableUnderwater bool `yaml:"usable_underwater"`
}

// AcceptsAmmo reports whether ammoType may be loaded into the gun.
func (g *GunDef) AcceptsAmmo(ammoType string) bool {
	for _, t := range g.AmmoTypes {
		if t == ammoType {
			return true
		}
	}
	return false
}

// Validate checks that the gun has at least one mode and a capacity.
func (g *GunDef) Validate() error {
	var errs []error
	if len(g.Modes) == 0 {
		errs = append(errs, errors.New("gun must have at least one mode"))
	}
	for i, m := range g.Modes {
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("gun mode %d: id must not be empty", i))
		}
		if !m.Melee && m.Shots < 1 {
			errs = append(errs, fmt.Errorf("gun mode %q: shots must be >= 1", m.ID))
		}
	}
	if g.Capacity < 0 {
		errs = append(errs, errors.New("gun capacity must be >= 0"))
	}
	return errors.Join(errs...)
}

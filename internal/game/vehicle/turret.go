package vehicle

import (
	"fmt"

	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
)

// TurretStatus is the readiness of a turret.
type TurretStatus int

const (
	TurretInvalid TurretStatus = iota
	TurretNoAmmo
	TurretNoPower
	TurretReady
)

// String returns a lowercase status name.
func (s TurretStatus) String() string {
	switch s {
	case TurretNoAmmo:
		return "no_ammo"
	case TurretNoPower:
		return "no_power"
	case TurretReady:
		return "ready"
	default:
		return "invalid"
	}
}

// Turret is a vehicle part carrying a gun.
type Turret struct {
	Vehicle *Vehicle
	Part    int
	Gun     *inventory.Item
	// Powered is false when the vehicle battery cannot drive the mount.
	Powered bool
}

// TurretAt returns the turret mounted on the vehicle at p.
func (v *Vehicle) TurretAt(p geom.Tripoint, gun *inventory.Item, powered bool) (*Turret, error) {
	i, ok := v.PartWithFeature(p, FeatureTurret, true)
	if !ok {
		return nil, fmt.Errorf("vehicle %q: no turret at %s", v.Name, p)
	}
	return &Turret{Vehicle: v, Part: i, Gun: gun, Powered: powered}, nil
}

// MountedTurret returns the turret at p armed with the part's own gun.
//
// Postcondition: Powered reflects the vehicle battery.
func (v *Vehicle) MountedTurret(p geom.Tripoint) (*Turret, error) {
	i, ok := v.PartWithFeature(p, FeatureTurret, true)
	if !ok {
		return nil, fmt.Errorf("vehicle %q: no turret at %s", v.Name, p)
	}
	return v.TurretAt(p, v.Parts[i].Gun, !v.Drained)
}

// Name returns the turret part's name.
func (t *Turret) Name() string {
	if t.Vehicle == nil {
		return t.Gun.Name()
	}
	return t.Vehicle.Parts[t.Part].Name
}

// Base returns the gun item backing the turret.
func (t *Turret) Base() *inventory.Item { return t.Gun }

// Position returns the map position of the turret.
func (t *Turret) Position() geom.Tripoint {
	if t.Vehicle == nil {
		return geom.Tripoint{}
	}
	return t.Vehicle.PartPos(t.Part)
}

// Query reports whether the turret can fire.
func (t *Turret) Query() TurretStatus {
	if t.Gun == nil || !t.Gun.IsGun() {
		return TurretInvalid
	}
	if t.Gun.Charges <= 0 {
		return TurretNoAmmo
	}
	if !t.Powered {
		return TurretNoPower
	}
	return TurretReady
}

// Fire discharges the current mode at target.
//
// Postcondition: returns the number of shots fired; charges drop by that many.
func (t *Turret) Fire(target geom.Tripoint) int {
	if t.Query() != TurretReady {
		return 0
	}
	shots := min(t.Gun.CurrentMode().Shots, t.Gun.Charges)
	t.Gun.ModCharges(-shots)
	return shots
}

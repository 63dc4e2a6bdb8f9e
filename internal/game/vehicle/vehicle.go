// Package vehicle models vehicles as a set of parts mounted around an origin.
package vehicle

import (
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
)

// Part features.
const (
	FeatureBoardable       = "BOARDABLE"
	FeatureOpenable        = "OPENABLE"
	FeatureOpenCloseInside = "OPENCLOSE_INSIDE"
	FeatureTurret          = "TURRET"
	FeatureCargo           = "CARGO"
	FeatureObstacle        = "OBSTACLE"
)

// Part is one component of a vehicle.
type Part struct {
	Name     string
	Mount    geom.Point
	Features []string
	Open     bool
	Broken   bool
	// Passenger is the id of whoever is boarded on this part.
	Passenger string
	Items     []*inventory.Item
	// Gun is the weapon of a turret part.
	Gun *inventory.Item
}

// HasFeature reports whether the part carries feature.
func (p *Part) HasFeature(feature string) bool {
	for _, f := range p.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// RemoveItem removes it from the part's cargo.
func (p *Part) RemoveItem(it *inventory.Item) bool {
	for i, have := range p.Items {
		if have == it {
			p.Items = append(p.Items[:i], p.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Vehicle is a multi-tile object occupying Origin plus each part's mount.
type Vehicle struct {
	Name string
	// Origin is the map position of mount (0,0).
	Origin geom.Tripoint
	// Velocity in hundredths of a tile per turn; negative is reverse.
	Velocity int
	InWater  bool
	// Drained is set when the battery cannot power turret mounts.
	Drained bool
	// Owner is the faction owning the vehicle; empty means unowned.
	Owner  string
	Parts  []*Part
	active []*inventory.Item
}

// PartPos returns the map position of part i.
func (v *Vehicle) PartPos(i int) geom.Tripoint {
	return v.Origin.Add(v.Parts[i].Mount.Lift(0))
}

// PartsAt returns the indices of every part at p.
func (v *Vehicle) PartsAt(p geom.Tripoint) []int {
	var out []int
	for i := range v.Parts {
		if v.PartPos(i) == p {
			out = append(out, i)
		}
	}
	return out
}

// Part returns part i.
//
// Precondition: 0 <= i < len(v.Parts).
func (v *Vehicle) Part(i int) *Part { return v.Parts[i] }

// Occupies reports whether any part is at p.
func (v *Vehicle) Occupies(p geom.Tripoint) bool {
	return len(v.PartsAt(p)) > 0
}

// IsInWater reports whether the vehicle floats.
func (v *Vehicle) IsInWater() bool { return v.InWater }

// PartWithFeature returns the first part at p with feature, skipping broken
// parts when unbroken is set.
//
// Postcondition: returns (-1, false) when no part matches.
func (v *Vehicle) PartWithFeature(p geom.Tripoint, feature string, unbroken bool) (int, bool) {
	for _, i := range v.PartsAt(p) {
		part := v.Parts[i]
		if part.HasFeature(feature) && (!unbroken || !part.Broken) {
			return i, true
		}
	}
	return -1, false
}

// NextPartToOpen returns the openable part sharing part's mount that would be
// opened next, or -1. Parts only operable from inside are skipped when
// outside is set.
func (v *Vehicle) NextPartToOpen(part int, outside bool) int {
	mount := v.Parts[part].Mount
	for i, p := range v.Parts {
		if p.Mount != mount || p.Broken || !p.HasFeature(FeatureOpenable) {
			continue
		}
		if outside && p.HasFeature(FeatureOpenCloseInside) {
			continue
		}
		return i
	}
	return -1
}

// Open opens a single part.
func (v *Vehicle) Open(part int) {
	v.Parts[part].Open = true
}

// OpenAllAt opens every openable part sharing part's mount.
func (v *Vehicle) OpenAllAt(part int) {
	mount := v.Parts[part].Mount
	for _, p := range v.Parts {
		if p.Mount == mount && p.HasFeature(FeatureOpenable) {
			p.Open = true
		}
	}
}

// Blocks reports whether the parts at p form an obstacle: a closed openable
// part or an obstacle part.
func (v *Vehicle) Blocks(p geom.Tripoint) bool {
	for _, i := range v.PartsAt(p) {
		part := v.Parts[i]
		if part.HasFeature(FeatureOpenable) && !part.Open {
			return true
		}
		if part.HasFeature(FeatureObstacle) && !part.Broken {
			return true
		}
	}
	return false
}

// IsOwnedBy reports whether faction may use the vehicle without theft.
func (v *Vehicle) IsOwnedBy(faction string) bool {
	return v.Owner == "" || v.Owner == faction
}

// Board seats passenger on the boardable part at p.
//
// Postcondition: returns false when there is no unbroken boardable part at p.
func (v *Vehicle) Board(p geom.Tripoint, passenger string) bool {
	i, ok := v.PartWithFeature(p, FeatureBoardable, true)
	if !ok {
		return false
	}
	v.Parts[i].Passenger = passenger
	return true
}

// Unboard clears the passenger at p.
func (v *Vehicle) Unboard(p geom.Tripoint) {
	for _, i := range v.PartsAt(p) {
		v.Parts[i].Passenger = ""
	}
}

// CargoAt returns the first cargo part at p.
func (v *Vehicle) CargoAt(p geom.Tripoint) (*Part, bool) {
	i, ok := v.PartWithFeature(p, FeatureCargo, false)
	if !ok {
		return nil, false
	}
	return v.Parts[i], true
}

// MakeActive marks a cargo item for per-turn processing.
func (v *Vehicle) MakeActive(it *inventory.Item) {
	for _, have := range v.active {
		if have == it {
			return
		}
	}
	it.Active = true
	v.active = append(v.active, it)
}

// ActiveItems returns the items marked active.
func (v *Vehicle) ActiveItems() []*inventory.Item {
	return append([]*inventory.Item(nil), v.active...)
}

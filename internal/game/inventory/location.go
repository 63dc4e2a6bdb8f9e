package inventory

import (
	"fmt"

	"github.com/cory-johannsen/underbrush/internal/game/geom"
)

// Where classifies the holder of an item.
type Where int

const (
	// Nowhere is the zero Location.
	Nowhere Where = iota
	// Character items are carried, worn, or wielded by the avatar.
	Character
	// Map items lie on a map tile.
	Map
	// Vehicle items sit in a vehicle cargo part.
	Vehicle
)

// String returns a lowercase name for w.
func (w Where) String() string {
	switch w {
	case Character:
		return "character"
	case Map:
		return "map"
	case Vehicle:
		return "vehicle"
	default:
		return "nowhere"
	}
}

// MoveCostPickup is added to the obtain cost of items that are not carried.
const MoveCostPickup = 100

// Container is anything an item can be removed from.
type Container interface {
	RemoveItem(it *Item) bool
}

// Location is a handle to an item together with the container holding it.
// The zero value refers to no item.
type Location struct {
	where  Where
	pos    geom.Tripoint
	item   *Item
	parent Container
}

// AtCharacter returns a location for an item held by the avatar.
//
// Precondition: it and holder must not be nil.
func AtCharacter(holder Container, pos geom.Tripoint, it *Item) Location {
	return Location{where: Character, pos: pos, item: it, parent: holder}
}

// OnMap returns a location for an item lying at pos.
//
// Precondition: it and tile must not be nil.
func OnMap(tile Container, pos geom.Tripoint, it *Item) Location {
	return Location{where: Map, pos: pos, item: it, parent: tile}
}

// InVehicle returns a location for an item in a vehicle part at pos.
//
// Precondition: it and cargo must not be nil.
func InVehicle(cargo Container, pos geom.Tripoint, it *Item) Location {
	return Location{where: Vehicle, pos: pos, item: it, parent: cargo}
}

// Where reports the kind of holder.
func (l Location) Where() Where {
	if l.item == nil {
		return Nowhere
	}
	return l.where
}

// Position returns the map position of the item.
func (l Location) Position() geom.Tripoint { return l.pos }

// Get returns the item, or nil for an empty location.
func (l Location) Get() *Item { return l.item }

// Valid reports whether the location refers to an item.
func (l Location) Valid() bool { return l.item != nil }

// Remove takes the item out of its holder.
//
// Postcondition: the location is empty on success.
func (l *Location) Remove() error {
	if l.item == nil {
		return fmt.Errorf("inventory: remove from empty location")
	}
	if l.parent == nil || !l.parent.RemoveItem(l.item) {
		return fmt.Errorf("inventory: item %s not found at %s %s", l.item.ID, l.where, l.pos)
	}
	l.item = nil
	return nil
}

// ObtainCost returns the moves needed to bring the item into hand given the
// holder's base handling cost.
func (l Location) ObtainCost(handling int) int {
	switch l.Where() {
	case Character:
		return handling
	case Map, Vehicle:
		return handling + MoveCostPickup
	default:
		return 0
	}
}

// String describes the location for logs.
func (l Location) String() string {
	if l.item == nil {
		return "nowhere"
	}
	return fmt.Sprintf("%s %s at %s", l.item.TypeID(), l.where, l.pos)
}

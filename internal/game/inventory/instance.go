package inventory

import (
	"fmt"

	"github.com/google/uuid"
)

// Item is a concrete instance of an ItemDef.
type Item struct {
	// ID uniquely identifies this instance.
	ID string
	// Def is the static definition.
	Def *ItemDef
	// Charges counts rounds, uses, or stack size depending on the definition.
	Charges int
	// Contents holds items stored inside this one (food in a can, ...).
	Contents []*Item
	// Ammo is the ammunition currently loaded; nil when empty.
	Ammo *Item
	// Active items are processed every turn by the map or vehicle they sit in.
	Active bool
	// Rusted is set once iron items have been soaked.
	Rusted bool
}

// New creates an instance of def with its initial charges.
//
// Precondition: def must not be nil.
// Postcondition: Returns an Item with a fresh ID.
func New(def *ItemDef) *Item {
	return &Item{
		ID:      uuid.New().String(),
		Def:     def,
		Charges: def.InitialCharges,
	}
}

// Clone returns a copy of it under a fresh ID. Contents are shared.
func (it *Item) Clone() *Item {
	cp := *it
	cp.ID = uuid.New().String()
	cp.Contents = append([]*Item(nil), it.Contents...)
	return &cp
}

// TypeID returns the definition id.
func (it *Item) TypeID() string { return it.Def.ID }

// Name returns the display name, pluralised for stacks counted by charges.
func (it *Item) Name() string {
	if it.Def.CountByCharges && it.Charges > 1 {
		if it.Def.NamePlural != "" {
			return fmt.Sprintf("%d %s", it.Charges, it.Def.NamePlural)
		}
		return fmt.Sprintf("%d %s", it.Charges, it.Def.Name)
	}
	return it.Def.Name
}

// HasFlag reports whether the item's definition carries flag.
func (it *Item) HasFlag(flag string) bool { return it.Def.HasFlag(flag) }

// CanUse reports whether the item supports the use method.
func (it *Item) CanUse(method string) bool { return it.Def.CanUse(method) }

// IsGun reports whether the item can be fired.
func (it *Item) IsGun() bool { return it.Def.Gun != nil }

// IsGunmod reports whether the item is a gun attachment.
func (it *Item) IsGunmod() bool { return it.Def.Gunmod }

// IsComestible reports whether the item can be eaten.
func (it *Item) IsComestible() bool { return it.Def.Comestible != nil }

// IsFoodContainer reports whether the item holds something edible.
func (it *Item) IsFoodContainer() bool {
	return len(it.Contents) > 0 && it.Contents[0].IsComestible()
}

// CountByCharges reports whether the item is a stack measured in charges.
func (it *Item) CountByCharges() bool { return it.Def.CountByCharges }

// ModCharges adds delta to the charge count, flooring at zero.
func (it *Item) ModCharges(delta int) {
	it.Charges = max(it.Charges+delta, 0)
}

// AmmoSufficient reports whether the item has enough charges for one use.
func (it *Item) AmmoSufficient() bool {
	return it.Charges >= max(it.Def.ChargesPerUse, 1)
}

// ReachRange returns how far the item can strike in melee.
//
// Postcondition: Returns >= 1.
func (it *Item) ReachRange() int {
	return max(it.Def.Reach, 1)
}

// IsTwoHanded reports whether the item needs both hands for a wielder of the
// given strength: flagged items always, otherwise items heavier than half
// the strength score in kilograms.
func (it *Item) IsTwoHanded(strength int) bool {
	return it.HasFlag(FlagTwoHanded) || it.Def.Weight > float64(strength)/2
}

// Weight returns the total weight in kilograms including contents and ammo.
func (it *Item) Weight() float64 {
	w := it.Def.Weight
	if it.Def.CountByCharges && it.Charges > 1 {
		w *= float64(it.Charges)
	}
	for _, c := range it.Contents {
		w += c.Weight()
	}
	if it.Ammo != nil {
		w += it.Ammo.Weight()
	}
	return w
}

// Kcal returns the calories of a comestible, 0 otherwise.
func (it *Item) Kcal() int {
	if it.Def.Comestible == nil {
		return 0
	}
	return it.Def.Comestible.Kcal
}

// CurrentMode returns the active gun mode.
//
// Precondition: IsGun() is true.
func (it *Item) CurrentMode() GunMode {
	return it.Def.Gun.Modes[0]
}

// AllModes returns every gun mode of the item.
func (it *Item) AllModes() []GunMode {
	if it.Def.Gun == nil {
		return nil
	}
	return it.Def.Gun.Modes
}

// AmmoType returns the type of the loaded ammunition, or "" when unloaded.
func (it *Item) AmmoType() string {
	if it.Ammo == nil || it.Ammo.Def.Ammo == nil {
		return ""
	}
	return it.Ammo.Def.Ammo.Type
}

// HasIncompatibleAmmo reports whether the loaded ammunition cannot be fired
// from this gun.
func (it *Item) HasIncompatibleAmmo() bool {
	t := it.AmmoType()
	return t != "" && it.Def.Gun != nil && !it.Def.Gun.AcceptsAmmo(t)
}

// Unloadable reports whether the item holds anything that could be unloaded.
func (it *Item) Unloadable() bool {
	return it.Ammo != nil || len(it.Contents) > 0
}

// RemoveItem removes child from the item's contents.
//
// Postcondition: returns true iff child was present and has been removed.
func (it *Item) RemoveItem(child *Item) bool {
	for i, c := range it.Contents {
		if c == child {
			it.Contents = append(it.Contents[:i], it.Contents[i+1:]...)
			return true
		}
	}
	return false
}

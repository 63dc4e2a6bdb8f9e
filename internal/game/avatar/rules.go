package avatar

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/underbrush/internal/game/inventory"
)

// InventoryHandlingPenalty is the base cost of moving an item between
// containers.
const InventoryHandlingPenalty = 100

// FlagNoTakeoff marks worn items that cannot be removed.
const FlagNoTakeoff = "NO_TAKEOFF"

// Swim speed bounds.
const (
	minSwimSpeed = 20
	maxSwimSpeed = 1000
)

// SwimSpeed returns the move cost of one swimming step. It grows with the
// weight carried and shrinks with swimming skill and swim fins.
//
// Postcondition: 20 <= result <= 1000.
func (a *Avatar) SwimSpeed() int {
	carried := a.Inv.TotalWeight()
	if a.Weapon != nil {
		carried += a.Weapon.Weight()
	}
	for _, w := range a.Worn {
		carried += w.Weight()
	}
	ret := 150 + int(carried*5)
	ret -= 15 * a.SkillLevel(SkillSwimming)
	ret -= 50 * a.ShoeTypeCount(inventory.IDSwimFins)
	if a.IsUnderwater() {
		ret -= 20
	}
	return min(max(ret, minSwimSpeed), maxSwimSpeed)
}

// ShoeTypeCount counts worn items of type id, at most one per foot.
func (a *Avatar) ShoeTypeCount(id string) int {
	n := 0
	for _, w := range a.Worn {
		if w.TypeID() == id {
			n++
		}
	}
	return min(n, 2)
}

// HasItem reports whether it is wielded, worn, or carried.
func (a *Avatar) HasItem(it *inventory.Item) bool {
	if it == nil {
		return false
	}
	if a.Weapon == it {
		return true
	}
	for _, w := range a.Worn {
		if w == it {
			return true
		}
	}
	return a.Inv.Has(it)
}

// IsArmed reports whether something is wielded.
func (a *Avatar) IsArmed() bool { return a.Weapon != nil }

// IsWielding reports whether it is the wielded item.
func (a *Avatar) IsWielding(it *inventory.Item) bool { return it != nil && a.Weapon == it }

// IsWearing reports whether an item of type id is worn.
func (a *Avatar) IsWearing(id string) bool {
	for _, w := range a.Worn {
		if w.TypeID() == id {
			return true
		}
	}
	return false
}

// CanTakeOff reports whether it could be removed.
//
// Postcondition: the error message is player-facing.
func (a *Avatar) CanTakeOff(it *inventory.Item) error {
	worn := false
	for _, w := range a.Worn {
		if w == it {
			worn = true
			break
		}
	}
	if !worn {
		return errors.New("You are not wearing that item.")
	}
	if it.HasFlag(FlagNoTakeoff) {
		return fmt.Errorf("You can't take off your %s.", it.Name())
	}
	return nil
}

// TakeOff removes a worn item into the inventory.
func (a *Avatar) TakeOff(it *inventory.Item) error {
	if err := a.CanTakeOff(it); err != nil {
		return err
	}
	if _, err := a.Inv.Add(it); err != nil {
		return err
	}
	a.removeWorn(it)
	return nil
}

func (a *Avatar) removeWorn(it *inventory.Item) bool {
	for i, w := range a.Worn {
		if w == it {
			a.Worn = append(a.Worn[:i], a.Worn[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveItem takes it away from wherever the avatar holds it.
// It makes the avatar an inventory.Container.
func (a *Avatar) RemoveItem(it *inventory.Item) bool {
	if a.Weapon == it {
		a.Weapon = nil
		return true
	}
	if a.removeWorn(it) {
		return true
	}
	return a.Inv.RemoveItem(it)
}

// ItemLocation returns a Location for an item the avatar holds.
func (a *Avatar) ItemLocation(it *inventory.Item) inventory.Location {
	return inventory.AtCharacter(a, a.pos, it)
}

// UsableHands returns the free hands: working arms less those occupied by
// the wielded item.
func (a *Avatar) UsableHands() int {
	n := a.WorkingArms
	if a.IsArmed() {
		n--
		if a.Weapon.IsTwoHanded(a.StrCur) {
			n--
		}
	}
	return n
}

// Wield puts it in hand, stowing the current weapon.
//
// Postcondition: returns false and changes nothing when the current weapon
// cannot be unwielded or cannot be stowed.
func (a *Avatar) Wield(it *inventory.Item) bool {
	if a.Weapon == it {
		return true
	}
	if a.Weapon != nil {
		if a.Weapon.HasFlag(inventory.FlagNoUnwield) {
			return false
		}
		if _, err := a.Inv.Add(a.Weapon); err != nil {
			return false
		}
	}
	if !a.removeWorn(it) {
		a.Inv.RemoveItem(it)
	}
	a.Weapon = it
	a.Moves -= a.ItemHandlingCost(it, true, InventoryHandlingPenalty)
	return true
}

// ItemHandlingCost returns the moves to handle it starting from base.
// Bulky items cost more; with penalties, a missing arm doubles the cost.
//
// Postcondition: 0 <= result <= 400 when base <= 100.
func (a *Avatar) ItemHandlingCost(it *inventory.Item, penalties bool, base int) int {
	mv := base + it.Def.Volume/250
	if penalties && a.WorkingArms < 2 {
		mv *= 2
	}
	return min(max(mv, 0), 400)
}

// ThrowRange returns how far it can be thrown: -1 when the avatar does not
// hold it, 0 when it is too heavy.
func (a *Avatar) ThrowRange(it *inventory.Item) int {
	if !a.HasItem(it) {
		return -1
	}
	w := it.Def.Weight
	if w > float64(a.StrCur)*1.5 {
		return 0
	}
	return min(max(a.StrCur*2-int(w*2), 1), a.StrCur)
}

// RustIronItems rusts every carried iron item.
func (a *Avatar) RustIronItems() {
	for _, it := range a.Inv.Items() {
		if it.HasFlag(inventory.FlagIron) {
			it.Rusted = true
		}
	}
}

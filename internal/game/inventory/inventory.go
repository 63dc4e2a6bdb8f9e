package inventory

import "fmt"

// Inventory is a carried container with slot and weight limits.
type Inventory struct {
	MaxSlots  int
	MaxWeight float64
	items     []*Item
}

// NewInventory creates an Inventory with the given limits.
//
// Precondition: maxSlots >= 0 and maxWeight >= 0.
// Postcondition: returned Inventory has zero items and the specified limits.
func NewInventory(maxSlots int, maxWeight float64) *Inventory {
	return &Inventory{MaxSlots: maxSlots, MaxWeight: maxWeight}
}

// CanAdd reports why it could not be stored, or nil.
func (inv *Inventory) CanAdd(it *Item) error {
	if w := inv.TotalWeight() + it.Weight(); w > inv.MaxWeight {
		return fmt.Errorf("inventory: adding %q would exceed weight limit (%.2f > %.2f)",
			it.TypeID(), w, inv.MaxWeight)
	}
	if it.CountByCharges() {
		for _, have := range inv.items {
			if have.TypeID() == it.TypeID() {
				return nil
			}
		}
	}
	if len(inv.items) >= inv.MaxSlots {
		return fmt.Errorf("inventory: not enough slots")
	}
	return nil
}

// Add stores it. Stacks counted by charges merge into an existing stack of
// the same type. It is atomic: if limits would be exceeded nothing changes.
//
// Precondition: it must not be nil.
// Postcondition: on success the returned item holds it or its charges.
func (inv *Inventory) Add(it *Item) (*Item, error) {
	if it == nil {
		return nil, fmt.Errorf("inventory: cannot add nil item")
	}
	if err := inv.CanAdd(it); err != nil {
		return nil, err
	}
	if it.CountByCharges() {
		for _, have := range inv.items {
			if have.TypeID() == it.TypeID() {
				have.Charges += it.Charges
				return have, nil
			}
		}
	}
	inv.items = append(inv.items, it)
	return it, nil
}

// RemoveItem removes it by identity.
//
// Postcondition: returns true iff it was present.
func (inv *Inventory) RemoveItem(it *Item) bool {
	for i, have := range inv.items {
		if have == it {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether it is stored here by identity.
func (inv *Inventory) Has(it *Item) bool {
	for _, have := range inv.items {
		if have == it {
			return true
		}
	}
	return false
}

// Find returns the first item whose instance id is id.
func (inv *Inventory) Find(id string) (*Item, bool) {
	for _, have := range inv.items {
		if have.ID == id {
			return have, true
		}
	}
	return nil, false
}

// Items returns a snapshot of the stored items.
//
// Postcondition: mutations of the returned slice do not affect the inventory.
func (inv *Inventory) Items() []*Item {
	out := make([]*Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of occupied slots.
func (inv *Inventory) Len() int { return len(inv.items) }

// TotalWeight sums the weight of every stored item.
func (inv *Inventory) TotalWeight() float64 {
	var w float64
	for _, it := range inv.items {
		w += it.Weight()
	}
	return w
}

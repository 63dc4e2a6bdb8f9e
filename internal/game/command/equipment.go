package command

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
)

// HandleEquipment lists what the avatar wields, wears and carries.
//
// Precondition: u must not be nil.
// Postcondition: Returns a multi-section string with one item per line.
func HandleEquipment(u *avatar.Avatar) string {
	var sb strings.Builder
	sb.WriteString("=== Wielded ===\n")
	if u.Weapon == nil {
		sb.WriteString("  nothing\n")
	} else {
		sb.WriteString("  " + formatItem(u.Weapon) + "\n")
	}

	sb.WriteString("\n=== Worn ===\n")
	if len(u.Worn) == 0 {
		sb.WriteString("  nothing\n")
	}
	for _, it := range u.Worn {
		sb.WriteString("  " + formatItem(it) + "\n")
	}

	items := u.Inv.Items()
	fmt.Fprintf(&sb, "\n=== Inventory (%d/%d, %.1f/%.1f kg) ===\n",
		len(items), u.Inv.MaxSlots, u.Inv.TotalWeight(), u.Inv.MaxWeight)
	if len(items) == 0 {
		sb.WriteString("  nothing\n")
	}
	for _, it := range items {
		sb.WriteString("  " + formatItem(it) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatItem renders an item with its state markers.
func formatItem(it *inventory.Item) string {
	s := it.Name()
	if it.IsGun() {
		s += fmt.Sprintf(" (%d/%d)", it.Charges, it.Def.Gun.Capacity)
	}
	if it.Rusted {
		s += " [rusted]"
	}
	if len(it.Contents) > 0 {
		s += fmt.Sprintf(" [%s]", it.Contents[0].Name())
	}
	return s
}

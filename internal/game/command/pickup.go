package command

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/world"
)

// HandleGet processes "get [item]": the named item, or everything, on the
// avatar's tile goes into the inventory.
//
// Postcondition: items that do not fit stay on the floor.
func HandleGet(u *avatar.Avatar, m *world.Map, arg string) string {
	p := u.Pos()
	here := m.ItemsAt(p)
	if len(here) == 0 {
		return "There is nothing here to pick up."
	}
	if strings.TrimSpace(arg) != "" {
		it := findCarried(here, arg)
		if it == nil {
			return fmt.Sprintf("There is no %s here.", arg)
		}
		here = []*inventory.Item{it}
	}
	var lines []string
	for _, it := range here {
		if err := u.Inv.CanAdd(it); err != nil {
			lines = append(lines, fmt.Sprintf("You have no room for the %s.", it.Name()))
			continue
		}
		m.RemoveItem(p, it)
		if _, err := u.Inv.Add(it); err != nil {
			m.AddItem(p, it)
			lines = append(lines, fmt.Sprintf("You have no room for the %s.", it.Name()))
			continue
		}
		u.ModMoves(-u.ItemHandlingCost(it, true, avatar.InventoryHandlingPenalty))
		lines = append(lines, fmt.Sprintf("You pick up the %s.", it.Name()))
	}
	return strings.Join(lines, "\n")
}

// HandleDrop processes "drop <item>" for an inventory item.
func HandleDrop(u *avatar.Avatar, m *world.Map, arg string) string {
	if strings.TrimSpace(arg) == "" {
		return "Usage: drop <item>"
	}
	it := findCarried(u.Inv.Items(), arg)
	if it == nil {
		return fmt.Sprintf("You don't have a %s.", arg)
	}
	u.Inv.RemoveItem(it)
	m.AddItem(u.Pos(), it)
	u.ModMoves(-u.ItemHandlingCost(it, false, avatar.InventoryHandlingPenalty/2))
	return fmt.Sprintf("You drop the %s.", it.Name())
}

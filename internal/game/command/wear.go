package command

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
)

// HandleWear processes "wear <item>": the item moves from the inventory to
// the worn list.
//
// Precondition: u must not be nil.
// Postcondition: On failure, returns a descriptive message and state is unchanged.
func HandleWear(u *avatar.Avatar, arg string) string {
	if strings.TrimSpace(arg) == "" {
		return "Usage: wear <item>"
	}
	it := findCarried(u.Inv.Items(), arg)
	if it == nil {
		return fmt.Sprintf("You don't have a %s.", strings.TrimSpace(arg))
	}
	if !it.Def.Wearable {
		return fmt.Sprintf("You can't wear your %s.", it.Name())
	}
	u.Inv.RemoveItem(it)
	u.Worn = append(u.Worn, it)
	u.ModMoves(-u.ItemHandlingCost(it, true, avatar.InventoryHandlingPenalty))
	return fmt.Sprintf("You put on your %s.", it.Name())
}

// HandleTakeOff processes "takeoff <item>": a worn item returns to the
// inventory.
//
// Precondition: u must not be nil.
// Postcondition: On failure, returns a descriptive message and state is unchanged.
func HandleTakeOff(u *avatar.Avatar, arg string) string {
	if strings.TrimSpace(arg) == "" {
		return "Usage: takeoff <item>"
	}
	it := findCarried(u.Worn, arg)
	if it == nil {
		return "You are not wearing that item."
	}
	if err := u.TakeOff(it); err != nil {
		return err.Error()
	}
	u.ModMoves(-u.ItemHandlingCost(it, true, avatar.InventoryHandlingPenalty))
	return fmt.Sprintf("You take off your %s.", it.Name())
}

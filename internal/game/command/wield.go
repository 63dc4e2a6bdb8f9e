package command

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
)

// findCarried returns the first carried item whose type id or name matches
// arg, case-insensitively.
func findCarried(items []*inventory.Item, arg string) *inventory.Item {
	want := strings.ToLower(strings.TrimSpace(arg))
	for _, it := range items {
		if strings.ToLower(it.TypeID()) == want || strings.ToLower(it.Def.Name) == want {
			return it
		}
	}
	return nil
}

// HandleWield processes "wield <item>". An empty argument puts the wielded
// item away.
//
// Precondition: u must not be nil.
// Postcondition: Returns a player-facing message; on failure nothing changes.
func HandleWield(u *avatar.Avatar, arg string) string {
	if strings.TrimSpace(arg) == "" {
		if u.Weapon == nil {
			return "Usage: wield <item>"
		}
		w := u.Weapon
		if w.HasFlag(inventory.FlagNoUnwield) {
			return fmt.Sprintf("You cannot put away your %s.", w.Name())
		}
		if _, err := u.Inv.Add(w); err != nil {
			return fmt.Sprintf("You have no room for your %s.", w.Name())
		}
		u.Weapon = nil
		u.ModMoves(-u.ItemHandlingCost(w, true, avatar.InventoryHandlingPenalty))
		return fmt.Sprintf("You put away your %s.", w.Name())
	}
	it := findCarried(append(u.Inv.Items(), u.Worn...), arg)
	if it == nil {
		return fmt.Sprintf("You don't have a %s.", strings.TrimSpace(arg))
	}
	if !u.Wield(it) {
		return fmt.Sprintf("You cannot put away your %s.", u.Weapon.Name())
	}
	return fmt.Sprintf("You wield your %s.", it.Name())
}

// FindHeld returns the wielded, worn, or carried item matching arg.
//
// Postcondition: returns nil when arg is blank or nothing matches.
func FindHeld(u *avatar.Avatar, arg string) *inventory.Item {
	if strings.TrimSpace(arg) == "" {
		return nil
	}
	var held []*inventory.Item
	if u.Weapon != nil {
		held = append(held, u.Weapon)
	}
	held = append(held, u.Worn...)
	return findCarried(append(held, u.Inv.Items()...), arg)
}

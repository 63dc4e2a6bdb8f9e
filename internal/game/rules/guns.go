package rules

import (
	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/world"
)

// GunModeChecksCommon returns why mode cannot be fired by anyone in the
// avatar's situation: hands and mount.
func (r *Rules) GunModeChecksCommon(u *avatar.Avatar, m *world.Map, gun *inventory.Item, mode inventory.GunMode) []string {
	if mode.Melee {
		return nil
	}
	var msgs []string
	twoHanded := gun.IsTwoHanded(u.StrCur)
	if twoHanded && u.WorkingArms < 2 {
		msgs = append(msgs, r.log.Sprintf("You need two free hands to fire your %s.", gun.Name()))
	}
	if twoHanded && u.IsMounted() && !u.Mount.HasFlag(creature.FlagRideableMech) {
		msgs = append(msgs, r.log.Sprintf("You cannot use a two-handed weapon while mounted."))
	}
	return msgs
}

// GunModeChecksWeapon returns why the gun itself cannot fire mode: ammunition
// and submersion.
func (r *Rules) GunModeChecksWeapon(u *avatar.Avatar, m *world.Map, gun *inventory.Item, mode inventory.GunMode) []string {
	if mode.Melee {
		return nil
	}
	var msgs []string
	if !gun.AmmoSufficient() {
		msgs = append(msgs, r.log.Sprintf("Your %s is empty!", gun.Name()))
	}
	if gun.HasIncompatibleAmmo() {
		msgs = append(msgs, r.log.Sprintf("Your %s can't fire the loaded ammunition.", gun.Name()))
	}
	underwater := u.IsUnderwater() || m.HasFlag(world.FlagDeepWater, u.Pos()) && !u.InVehicle
	if underwater && !gun.Def.Gun.UsableUnderwater {
		msgs = append(msgs, r.log.Sprintf("You can't fire your %s underwater.", gun.Name()))
	}
	return msgs
}

package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/message"
	"github.com/cory-johannsen/underbrush/internal/game/vehicle"
	"github.com/cory-johannsen/underbrush/internal/game/world"
)

// targetRating ranks a creature as an autoattack target.
func targetRating(c creature.Creature) int {
	switch v := c.(type) {
	case *creature.NPC:
		return v.WeaponValue()
	case *creature.Monster:
		return v.Difficulty
	default:
		return 0
	}
}

// Autoattack attacks the lowest-rated hostile within reach of the wielded
// weapon, stepping into adjacent targets and reaching for distant ones. Ties
// go to the first target found.
func (d *Dispatcher) Autoattack(u *avatar.Avatar, m *world.Map) {
	reach := 1
	if u.Weapon != nil {
		reach = u.Weapon.ReachRange()
	}
	var targets []creature.Creature
	for _, c := range d.rules.TargetableCreatures(u, m, reach) {
		if np, ok := c.(*creature.NPC); ok && !np.IsEnemy() {
			continue
		}
		targets = append(targets, c)
	}
	if len(targets) == 0 {
		d.log.Add(message.Info, "No hostile creature in reach.  Waiting a turn.")
		if d.game.SafeModeAllowed() {
			u.Pause()
		}
		return
	}

	best := targets[0]
	for _, c := range targets[1:] {
		if targetRating(c) < targetRating(best) {
			best = c
		}
	}

	diff := best.Pos().Sub(u.Pos())
	if abs(diff.X) <= 1 && abs(diff.Y) <= 1 && diff.Z == 0 {
		d.Move(u, m, geom.Tripoint{X: diff.X, Y: diff.Y})
		return
	}
	d.rules.ReachAttack(u, m, best.Pos())
}

// CanFireWeapon reports whether the avatar can fire weapon in its current
// mode. Reasons it cannot are added to the log.
func (d *Dispatcher) CanFireWeapon(u *avatar.Avatar, m *world.Map, weapon *inventory.Item) bool {
	if weapon == nil || !weapon.IsGun() {
		d.logger.Error("expected item to be a gun", zap.String("item", describeItem(weapon)))
		return false
	}
	if u.HasEffect(condition.RelaxGas) {
		if !d.relaxGasCheck(u, 5, 5) {
			d.log.Add(message.Bad, "You can't fire your weapon, it's too heavy…")
			return false
		}
		d.log.Add(message.Good, "Your eyes steel, and you raise your weapon!")
	}

	mode := weapon.CurrentMode()
	reasons := d.rules.GunModeChecksCommon(u, m, weapon, mode)
	reasons = append(reasons, d.rules.GunModeChecksWeapon(u, m, weapon, mode)...)
	if len(reasons) == 0 {
		return true
	}
	for _, r := range reasons {
		d.log.Add(message.Info, "%s", r)
	}
	return false
}

// CanFireTurret reports whether the avatar can fire turret manually.
func (d *Dispatcher) CanFireTurret(u *avatar.Avatar, m *world.Map, t *vehicle.Turret) bool {
	gun := t.Base()
	if gun == nil || !gun.IsGun() {
		d.logger.Error("expected turret base to be a gun", zap.String("turret", t.Name()))
		return false
	}

	switch st := t.Query(); st {
	case vehicle.TurretNoAmmo:
		d.log.Add(message.Bad, "The %s is out of ammo.", t.Name())
		return false
	case vehicle.TurretNoPower:
		d.log.Add(message.Bad, "The %s is not powered.", t.Name())
		return false
	case vehicle.TurretReady:
	default:
		d.logger.Error("unknown turret status",
			zap.String("turret", t.Name()),
			zap.Stringer("status", st),
		)
		return false
	}

	if u.HasEffect(condition.RelaxGas) {
		if !d.relaxGasCheck(u, 5, 5) {
			d.log.Add(message.Bad, "You are too pacified to aim the turret…")
			return false
		}
		d.log.Add(message.Good, "Your eyes steel, and you aim your weapon!")
	}

	var reasons []string
	for _, mode := range gun.AllModes() {
		r := d.rules.GunModeChecksCommon(u, m, gun, mode)
		if len(r) == 0 {
			return true
		}
		reasons = append(reasons, r...)
	}
	for _, r := range reasons {
		d.log.Add(message.Info, "%s", r)
	}
	return false
}

// FireWieldedWeapon starts aiming the wielded gun.
func (d *Dispatcher) FireWieldedWeapon(u *avatar.Avatar) {
	w := u.Weapon
	switch {
	case w == nil:
		return
	case w.IsGunmod():
		d.log.Add(message.Info, "The %s must be attached to a gun, it can not be fired separately.", w.Name())
		return
	case !w.IsGun():
		return
	case w.HasIncompatibleAmmo():
		d.log.Add(message.Info, "The %s can't be fired while loaded with incompatible ammunition %s",
			w.Name(), w.Ammo.Def.Name)
		return
	}
	u.AssignActivity(avatar.Activity{Kind: avatar.ActivityAimWielded})
}

// FireRangedMutation starts aiming a weapon granted by a mutation.
func (d *Dispatcher) FireRangedMutation(u *avatar.Avatar, fakeGun *inventory.Item) {
	u.AssignActivity(avatar.Activity{Kind: avatar.ActivityAimMutation, FakeGun: fakeGun})
}

// FireRangedBionic starts aiming a bionic weapon drawing costPerShot power.
func (d *Dispatcher) FireRangedBionic(u *avatar.Avatar, fakeGun *inventory.Item, costPerShot int) {
	u.AssignActivity(avatar.Activity{Kind: avatar.ActivityAimBionic, FakeGun: fakeGun, EnergyPerShot: costPerShot})
}

// FireTurretManual aims and fires turret at a target the player picks.
func (d *Dispatcher) FireTurretManual(u *avatar.Avatar, m *world.Map, t *vehicle.Turret) {
	if !d.CanFireTurret(u, m, t) {
		return
	}
	d.ui.TempExitFullscreen()
	defer d.ui.ReenterFullscreen()
	traj := d.ui.TargetTurret(u, t)
	if len(traj) == 0 {
		return
	}
	shots := t.Fire(traj[len(traj)-1])
	d.logger.Debug("turret fired",
		zap.String("turret", t.Name()),
		zap.Int("shots", shots),
	)
}

// Mend repairs the item at loc, defaulting to the wielded weapon.
func (d *Dispatcher) Mend(u *avatar.Avatar, loc inventory.Location) {
	if !loc.Valid() {
		if !u.IsArmed() {
			d.log.Add(message.Info, "You're not wielding anything.")
			return
		}
		loc = u.ItemLocation(u.Weapon)
	}
	if u.HasItem(loc.Get()) {
		d.rules.MendItem(u, loc)
	}
}

// describeItem renders a possibly nil item for logs.
func describeItem(it *inventory.Item) string {
	if it == nil {
		return "<none>"
	}
	return it.TypeID()
}

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

// Move costs.
const (
	costOpenDoor         = 100
	costMoveEffects      = 100
	costMountRefuses     = 20
	costRampClimb        = 50
	costRampMisalign     = 50
	fastVehicleSpeed     = 100
	swimSpeedFloundering = 500
)

// Move steps the avatar by delta, resolving whatever is in the way: mining,
// attacking, displacing, diving, opening doors, or bumping.
//
// Postcondition: returns true when the turn was spent on the move itself or
// on an action that replaces it.
func (d *Dispatcher) Move(u *avatar.Avatar, m *world.Map, delta geom.Tripoint) bool {
	shell := u.HasActiveMutation(avatar.TraitShell2)
	if !d.game.SafeModeAllowed() || shell {
		if shell {
			d.log.Add(message.Warning, "You can't move while in your shell.  Deactivate it to go mobile.")
		}
		return false
	}
	riding := u.IsMounted()
	pos := u.Pos()

	var dest geom.Tripoint
	if delta.Z == 0 && u.HasEffect(condition.Stunned) {
		dest = geom.Tripoint{
			X: d.dice.Range(pos.X-1, pos.X+1),
			Y: d.dice.Range(pos.Y-1, pos.Y+1),
			Z: pos.Z,
		}
	} else {
		dest = pos.Add(delta)
	}
	if dest == pos {
		return true
	}

	viaRamp := false
	if m.HasFlag(world.FlagRampUp, dest) {
		dest.Z++
		viaRamp = true
	} else if m.HasFlag(world.FlagRampDown, dest) {
		dest.Z--
		viaRamp = true
	}

	if d.autoMine(u, m, dest, riding) {
		return true
	}

	d.updateFacing(u, dest)

	if u.HasEffect(condition.Amigara) && d.pullsAwayFromFault(u, m, dest) {
		d.log.Add(message.Info, "You cannot pull yourself away from the faultline…")
		return false
	}

	d.logger.Debug("plmove",
		zap.Stringer("from", pos),
		zap.Stringer("to", dest),
	)

	if d.game.DisableRobot(dest) {
		return false
	}

	attacking := d.game.CritterAt(dest) != nil
	if !d.rules.MoveEffects(u, attacking) {
		u.ModMoves(-costMoveEffects)
		return false
	}

	if mon := d.game.MonsterAt(dest, true); mon != nil {
		if mon.Friendly == 0 && !mon.HasEffect(condition.Pet) {
			if u.IsAutoMoving() {
				d.log.Add(message.Warning, "Monster in the way.  Auto-move canceled.")
				d.log.Add(message.Info, "Move into the monster to attack.")
				u.ClearDestination()
				return false
			}
			if u.HasEffect(condition.RelaxGas) {
				if !d.relaxGasCheck(u, 8, 8) {
					d.log.Add(message.Bad, "You're too pacified to strike anything…")
					return false
				}
				d.log.Add(message.Good, "Your willpower asserts itself, and so do you!")
			}
			d.rules.MeleeAttack(u, mon)
			if mon.IsHallucination() {
				mon.Die()
			}
			d.game.DrawHit(dest, mon, mon.IsDead())
			return false
		} else if mon.HasFlag(creature.FlagImmobile) || mon.HasEffect(condition.Harnessed) ||
			mon.HasEffect(condition.Ridden) {
			d.log.Add(message.Info, "You can't displace your %s.", mon.Name())
			return false
		}
		// Displacing a friendly monster happens in WalkMove.
	}

	if np := d.game.NPCAt(dest); np != nil {
		if u.IsAutoMoving() {
			d.log.Add(message.Neutral, "NPC in the way, Auto-move canceled.")
			d.log.Add(message.Info, "Move into the NPC to interact or attack.")
			u.ClearDestination()
			return false
		}
		if !np.IsEnemy() {
			d.game.NPCMenu(np)
			return false
		}
		d.rules.MeleeAttack(u, np)
		np.MakeAngry()
		return false
	}

	veh0, _, inVeh0 := m.VehAt(pos)
	veh1, part1, inVeh1 := m.VehAt(dest)
	outside := !inVeh0 || veh0 != veh1
	doorPart := -1
	vehClosedDoor := false
	if inVeh1 {
		doorPart = veh1.NextPartToOpen(part1, outside)
		vehClosedDoor = doorPart >= 0 && !veh1.Part(doorPart).Open
	}

	if inVeh0 && abs(veh0.Velocity) > fastVehicleSpeed {
		if !inVeh1 {
			if d.ui.QueryYN(d.log.Sprintf("Dive from moving vehicle?")) {
				d.game.MovingVehicleDismount(dest)
			}
			return false
		} else if veh1 != veh0 {
			d.log.Add(message.Info, "There is another vehicle in the way.")
			return false
		} else if _, ok := veh1.PartWithFeature(dest, vehicle.FeatureBoardable, true); !ok {
			d.log.Add(message.Info, "That part of the vehicle is currently unsafe.")
			return false
		}
	}

	toSwimmable := m.HasFlag(world.FlagSwimmable, dest)
	toDeepWater := m.HasFlag(world.FlagDeepWater, dest)
	fromSwimmable := m.HasFlag(world.FlagSwimmable, pos)
	fromDeepWater := m.HasFlag(world.FlagDeepWater, pos)
	fromBoat := inVeh0 && veh0.IsInWater()
	toBoat := inVeh1 && veh1.IsInWater()

	if riding && !d.rules.MountWillMove(u, dest) {
		if u.IsAutoMoving() {
			u.ClearDestination()
		}
		u.ModMoves(-costMountRefuses)
		return false
	}

	if toSwimmable && toDeepWater && !toBoat {
		if riding {
			mon := u.Mount
			if !mon.Swims() || mon.Size < u.Size()+2 {
				d.log.Add(message.Warning, "The %s cannot swim while it is carrying you!", mon.Name())
				return false
			}
		}
		if (fromSwimmable && fromDeepWater && !fromBoat) || d.ui.QueryYN(d.log.Sprintf("Dive into the water?")) {
			if (!fromDeepWater || fromBoat) && u.SwimSpeed() < swimSpeedFloundering {
				d.log.Add(message.Neutral, "You start swimming.")
				d.log.Add(message.Info, "%s to dive underwater.", d.ui.KeyFor(KeyMoveDown))
			}
			d.Swim(m, u, dest)
		}
		d.game.OnMoveEffects()
		return true
	}

	inside := !m.IsOutside(pos)
	if m.PassableTerFurn(dest) && u.MovementModeIs(avatar.Walk) && m.OpenDoor(dest, inside) {
		d.spendOpening(u, dest)
		return true
	}

	if d.game.WalkMove(dest, viaRamp) {
		return true
	}

	if vehClosedDoor {
		if !d.handlePotentialTheft(u, veh1) {
			return true
		}
		if outside {
			veh1.OpenAllAt(doorPart)
		} else {
			veh1.Open(doorPart)
			d.log.Add(message.Neutral, "You open the %[1]s's %[2]s.", veh1.Name, veh1.Part(doorPart).Name)
		}
		d.spendOpening(u, dest)
		return true
	}

	if m.FurnID(dest) != world.FurnSafeC && m.OpenDoor(dest, inside) {
		d.spendOpening(u, dest)
		return true
	}

	wasteMoves := u.IsBlind() || u.HasEffect(condition.Stunned)
	switch ter := m.Ter(dest).ID; {
	case wasteMoves || dest.Z != pos.Z:
		d.log.Add(message.Neutral, "You bump into the %s!", m.ObstacleName(dest))
		if wasteMoves {
			u.ModMoves(-costOpenDoor)
		}
	case ter == world.TerDoorLocked || ter == world.TerDoorLockedPeep ||
		ter == world.TerDoorLockedAlarm || ter == world.TerDoorLockedInterior:
		d.log.Add(message.Neutral, "That door is locked!")
	case ter == world.TerDoorBarLocked:
		d.log.Add(message.Neutral, "You rattle the bars but the door is locked!")
	}
	return false
}

// spendOpening charges for opening a door and keeps an auto-move going.
func (d *Dispatcher) spendOpening(u *avatar.Avatar, dest geom.Tripoint) {
	u.ModMoves(-costOpenDoor)
	if u.IsAutoMoving() {
		u.DeferMove(dest)
	}
}

// autoMine digs into a mineable destination with the wielded tool or the
// burrowing mutation.
//
// Postcondition: returns true when digging started; the move is deferred.
func (d *Dispatcher) autoMine(u *avatar.Avatar, m *world.Map, dest geom.Tripoint, riding bool) bool {
	if !m.HasFlag(world.FlagMineable, dest) || d.game.MonstersSeen() != 0 ||
		!d.opts.Bool(OptAutoFeatures) || !d.opts.Bool(OptAutoMining) {
		return false
	}
	if _, _, ok := m.VehAt(dest); ok || u.IsUnderwater() || u.HasEffect(condition.Stunned) || riding {
		return false
	}
	if w := u.Weapon; w != nil && w.HasFlag(inventory.FlagDigTool) {
		if w.CanUse(inventory.UseJackhammer) && w.AmmoSufficient() {
			d.rules.InvokeItem(u, m, w, inventory.UseJackhammer, dest)
			u.DeferMove(dest)
			return true
		} else if w.CanUse(inventory.UsePickaxe) {
			d.rules.InvokeItem(u, m, w, inventory.UsePickaxe, dest)
			u.DeferMove(dest)
			return true
		}
	}
	if u.HasTrait(avatar.TraitBurrow) {
		d.rules.InvokeItem(u, m, d.fakeItem(inventory.IDFakeBurrowing, inventory.UseBurrow), inventory.UseBurrow, dest)
		u.DeferMove(dest)
		return true
	}
	return false
}

// fakeItem creates a registered item, or a bare stand-in supporting method.
func (d *Dispatcher) fakeItem(id, method string) *inventory.Item {
	if it, err := d.items.Create(id); err == nil {
		return it
	}
	return inventory.New(&inventory.ItemDef{ID: id, Name: id, Uses: []string{method}})
}

// updateFacing turns the avatar, and its mount, toward dest.
func (d *Dispatcher) updateFacing(u *avatar.Avatar, dest geom.Tripoint) {
	nd := geom.Point{X: dest.X - u.Pos().X, Y: dest.Y - u.Pos().Y}
	face := func(f creature.Facing) {
		u.Facing = f
		if u.IsMounted() {
			u.Mount.Facing = f
		}
	}
	if !d.cfg.TileIso {
		if nd.X > 0 {
			face(creature.FacingRight)
		} else if nd.X < 0 {
			face(creature.FacingLeft)
		}
		return
	}
	// Isometric screens rotate the grid: +x/+y reads as right, -x/-y as left.
	if nd.X >= 0 && nd.Y >= 0 {
		face(creature.FacingRight)
	}
	if nd.Y <= 0 && nd.X <= 0 {
		face(creature.FacingLeft)
	}
}

// pullsAwayFromFault reports whether dest is further from the nearest fault
// than the avatar is now.
func (d *Dispatcher) pullsAwayFromFault(u *avatar.Avatar, m *world.Map, dest geom.Tripoint) bool {
	z := u.Pos().Z
	cur, ok := m.ClosestTer(world.TerFault, z, u.Pos())
	if !ok {
		return false
	}
	next, _ := m.ClosestTer(world.TerFault, z, dest)
	return next > cur
}

// RampMove climbs onto or off a ramp when dest on the avatar's level cannot
// be entered directly.
//
// Postcondition: returns true when the avatar was moved (or tried to move)
// by a level.
func (d *Dispatcher) RampMove(u *avatar.Avatar, m *world.Map, dest geom.Tripoint) bool {
	pos := u.Pos()
	if dest.Z != pos.Z {
		return false
	}
	delta := dest.Sub(pos)

	if !m.HasFloorOrSupport(dest) {
		below := dest.WithZ(dest.Z - 1)
		if m.HasFlag(world.FlagRamp, below) {
			d.Move(u, m, geom.Tripoint{X: delta.X, Y: delta.Y, Z: -1})
			return true
		}
		return false
	}

	if !m.HasFlag(world.FlagRamp, pos) || m.Passable(dest) {
		return false
	}

	aligned := false
	for _, pt := range geom.PointsInRadius(pos, 1) {
		if geom.Dist(pt, dest) < 2 && m.HasFlag(world.FlagRampEnd, pt) {
			aligned = true
			break
		}
	}

	if m.HasFloorOrSupport(pos.WithZ(pos.Z + 1)) {
		d.log.Add(message.Warning, "You can't climb here - there's a ceiling above.")
		return false
	}

	d.Move(u, m, geom.Tripoint{X: delta.X, Y: delta.Y, Z: 1})
	if u.Pos() != pos {
		cost := costRampClimb
		if !aligned {
			cost += costRampMisalign
		}
		u.ModMoves(-cost)
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

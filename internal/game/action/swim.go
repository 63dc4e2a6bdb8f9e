package action

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/message"
	"github.com/cory-johannsen/underbrush/internal/game/vehicle"
	"github.com/cory-johannsen/underbrush/internal/game/world"
)

const (
	maxSwimStepCost = 200
	lowOxygen       = 5
)

var swimDrench = []avatar.BodyPart{
	avatar.LegL, avatar.LegR, avatar.Torso, avatar.ArmL, avatar.ArmR,
	avatar.FootL, avatar.FootR, avatar.HandL, avatar.HandR,
}

var underwaterDrench = []avatar.BodyPart{avatar.Head, avatar.Eyes, avatar.Mouth}

// Swim moves the avatar one step through deep water at p.
//
// Postcondition: unless boarding is refused, the avatar stands at p, has been
// charged for the stroke, and is soaked.
func (d *Dispatcher) Swim(m *world.Map, u *avatar.Avatar, p geom.Tripoint) {
	if !m.HasFlag(world.FlagSwimmable, p) {
		d.logger.Error("swim into non-swimmable tile",
			zap.Stringer("pos", p),
			zap.String("ter", m.Ter(p).ID),
		)
		return
	}
	if u.HasEffect(condition.OnFire) {
		d.log.Add(message.Neutral, "The water puts out the flames!")
		u.RemoveEffect(condition.OnFire)
		if u.IsMounted() && u.Mount.HasEffect(condition.OnFire) {
			u.Mount.RemoveEffect(condition.OnFire)
		}
	}
	if u.HasEffect(condition.Glowing) {
		d.log.Add(message.Neutral, "The water washes off the glowing goo!")
		u.RemoveEffect(condition.Glowing)
	}

	cost := u.SwimSpeed()
	if u.IsUnderwater() {
		u.Practice(avatar.SkillSwimming, 2)
	} else {
		u.Practice(avatar.SkillSwimming, 1)
	}
	if cost >= swimSpeedFloundering && !u.IsUnderwater() {
		fins := u.ShoeTypeCount(inventory.IDSwimFins)
		if !(fins == 2 || (fins == 1 && d.dice.OneIn(2))) {
			d.log.Add(message.Bad, "You sink like a rock!")
			u.SetUnderwater(true)
			u.Oxygen = 30 + 2*u.StrCur
		}
	}
	if u.Oxygen <= lowOxygen && u.IsUnderwater() {
		if cost < swimSpeedFloundering {
			d.ui.Popup(d.log.Sprintf("You need to breathe!  (%s to surface.)", d.ui.KeyFor(KeyMoveUp)))
		} else {
			d.ui.Popup(d.log.Sprintf("You need to breathe but you can't swim!  Get to dry land, quick!"))
		}
	}

	pos := u.Pos()
	diagonal := p.X != pos.X && p.Y != pos.Y
	if u.InVehicle {
		m.UnboardVehicle(pos)
		u.InVehicle = false
	}
	if u.IsMounted() && boardableAt(m, p) != nil {
		d.log.Add(message.Warning, "You cannot board a vehicle while mounted.")
		return
	}
	if v := boardableAt(m, p); v != nil && !d.handlePotentialTheft(u, v) {
		return
	}

	u.SetPos(p)
	d.game.UpdateMap()
	d.game.AvatarMoved(p)

	if boardableAt(m, p) != nil {
		u.InVehicle = m.BoardVehicle(p, u.Name)
	}

	stroke := float64(min(cost, maxSwimStepCost))
	if d.cfg.TrigDist && diagonal {
		stroke *= math.Sqrt2
	}
	u.Moves = int(float64(u.Moves) - stroke)
	u.RustIronItems()
	if !u.IsMounted() {
		u.BurnMoveStamina(cost)
	}

	parts := swimDrench
	if u.IsUnderwater() {
		parts = append(append([]avatar.BodyPart(nil), swimDrench...), underwaterDrench...)
	}
	u.Drench(100, parts)
}

// boardableAt returns the vehicle with an intact boardable part at p.
func boardableAt(m *world.Map, p geom.Tripoint) *vehicle.Vehicle {
	v, _, ok := m.VehAt(p)
	if !ok {
		return nil
	}
	if _, ok := v.PartWithFeature(p, vehicle.FeatureBoardable, true); !ok {
		return nil
	}
	return v
}

package rules

import (
	"errors"

	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/message"
	"github.com/cory-johannsen/underbrush/internal/game/world"
	"github.com/cory-johannsen/underbrush/internal/scripting"
)

// InvokeItem runs the use method of it against p and charges the moves the
// script reports.
//
// Postcondition: returns false and spends nothing when the item cannot be
// used that way or lacks charges.
func (r *Rules) InvokeItem(u *avatar.Avatar, m *world.Map, it *inventory.Item, method string, p geom.Tripoint) bool {
	if !it.CanUse(method) {
		r.log.Add(message.Info, "You can't do anything interesting with your %s.", it.Name())
		return false
	}
	if need := it.Def.ChargesPerUse; need > 0 && !it.AmmoSufficient() {
		r.log.Add(message.Info, "Your %s has %d charges but needs %d.", it.Name(), it.Charges, need)
		return false
	}
	cost, err := r.scripts.Invoke(method, scripting.UseContext{
		Item:    it.TypeID(),
		Name:    it.Name(),
		Charges: it.Charges,
		X:       p.X,
		Y:       p.Y,
		Z:       p.Z,
	})
	if errors.Is(err, scripting.ErrUnknownUse) {
		r.log.Add(message.Info, "You can't do anything interesting with your %s.", it.Name())
		return false
	}
	if err != nil {
		r.logger.Error("item use failed",
			zap.String("item", it.TypeID()),
			zap.String("method", method),
			zap.Error(err),
		)
		return false
	}
	it.ModCharges(-it.Def.ChargesPerUse)
	u.ModMoves(-cost)
	return true
}

// CanUse reports whether it has any use method.
func (r *Rules) CanUse(u *avatar.Avatar, it *inventory.Item) bool {
	return len(it.Def.Uses) > 0
}

// Use invokes the first use method of the item at loc on the avatar's tile.
// Dig methods are skipped; they need a target tile.
func (r *Rules) Use(u *avatar.Avatar, m *world.Map, loc inventory.Location) {
	it := loc.Get()
	if it == nil {
		return
	}
	if len(it.Def.Uses) == 0 {
		r.log.Add(message.Info, "You can't do anything interesting with your %s.", it.Name())
		return
	}
	for _, method := range it.Def.Uses {
		if !isDigMethod(method) {
			r.InvokeItem(u, m, it, method, u.Pos())
			return
		}
	}
	r.log.Add(message.Info, "Walk into a wall with your %s to dig through it.", it.Name())
}

// isDigMethod reports whether method digs the tile it is aimed at. Dig
// methods are only invoked by walking into a diggable tile.
func isDigMethod(method string) bool {
	switch method {
	case inventory.UsePickaxe, inventory.UseJackhammer, inventory.UseBurrow:
		return true
	}
	return false
}

// ThrowItem flies it from the avatar (or blindFrom) toward target. It stops
// short of the first impassable tile and may strike the first creature on
// its path.
func (r *Rules) ThrowItem(u *avatar.Avatar, m *world.Map, target geom.Tripoint, it *inventory.Item, blindFrom *geom.Tripoint) {
	from := u.Pos()
	if blindFrom != nil {
		from = *blindFrom
	}
	u.ModMoves(-costThrow)
	u.Practice(avatar.SkillThrow, 1)
	if blindFrom != nil {
		r.log.Add(message.Neutral, "You throw the %s blindly.", it.Name())
	}

	land := from
	for _, p := range geom.Line(from, target) {
		if !m.Passable(p) {
			break
		}
		land = p
		c := r.critters.CritterAt(p)
		if c == nil || c.IsDead() {
			continue
		}
		str := AbilityMod(u.StrCur)
		total := r.dice.Range(1, 20) + str + ProficiencyBonus(u.SkillLevel(avatar.SkillThrow))
		if blindFrom != nil {
			total -= 4
		}
		if OutcomeFor(total, c.Defense()) > Success {
			r.log.Add(message.Neutral, "The %s misses the %s.", it.Name(), c.Name())
			continue
		}
		dmg := r.dice.Range(1, max(int(it.Weight()*2), 1)) + max(str, 0)
		c.TakeDamage(dmg)
		r.log.Add(message.Good, "The %s hits the %s for %d damage.", it.Name(), c.Name(), dmg)
		if c.IsDead() {
			r.log.Add(message.Good, "The %s dies!", c.Name())
		}
		break
	}
	m.AddItem(land, it)
	r.logger.Debug("item thrown",
		zap.String("item", it.TypeID()),
		zap.Stringer("target", target),
		zap.Stringer("landed", land),
	)
}

// CanConsumeAsIs reports whether it is itself edible, as opposed to holding
// something edible.
func (r *Rules) CanConsumeAsIs(u *avatar.Avatar, it *inventory.Item) bool {
	return it.IsComestible()
}

// food returns the edible part of it, or nil.
func food(it *inventory.Item) *inventory.Item {
	switch {
	case it.IsComestible():
		return it
	case it.IsFoodContainer():
		return it.Contents[0]
	default:
		return nil
	}
}

// eat eats one portion of f.
//
// Postcondition: returns (used up, ate).
func (r *Rules) eat(u *avatar.Avatar, f *inventory.Item) (bool, bool) {
	if u.StoredKcal+f.Kcal() > u.MaxKcal {
		r.log.Add(message.Info, "You're full.")
		return false, false
	}
	u.Eat(f)
	u.ModMoves(-costEat)
	r.log.Add(message.Neutral, "You eat the %s.", f.Def.Name)
	if f.CountByCharges() && f.Charges > 1 {
		f.ModCharges(-1)
		return false, true
	}
	return true, true
}

// ConsumeItem eats one portion of it, or of its contents, where it lies.
//
// Postcondition: returns true iff the portion eaten used up the food.
func (r *Rules) ConsumeItem(u *avatar.Avatar, it *inventory.Item) bool {
	f := food(it)
	if f == nil {
		r.log.Add(message.Info, "You can't eat your %s.", it.Name())
		return false
	}
	usedUp, _ := r.eat(u, f)
	return usedUp
}

// Consume eats one portion of an item the avatar holds and discards what is
// used up. Containers are kept.
func (r *Rules) Consume(u *avatar.Avatar, loc inventory.Location) bool {
	it := loc.Get()
	if it == nil {
		return false
	}
	f := food(it)
	if f == nil {
		r.log.Add(message.Info, "You can't eat your %s.", it.Name())
		return false
	}
	usedUp, ate := r.eat(u, f)
	if usedUp {
		if f == it {
			if err := loc.Remove(); err != nil {
				r.logger.Error("remove eaten item", zap.Stringer("loc", loc), zap.Error(err))
			}
		} else {
			it.RemoveItem(f)
		}
	}
	return ate
}

// RateUnload reports whether it holds ammunition or contents.
func (r *Rules) RateUnload(u *avatar.Avatar, it *inventory.Item) bool {
	return it.Unloadable()
}

// stash puts it in the avatar's inventory, or at the avatar's feet when it
// does not fit.
func (r *Rules) stash(u *avatar.Avatar, m *world.Map, it *inventory.Item) {
	if _, err := u.Inv.Add(it); err != nil {
		m.AddItem(u.Pos(), it)
		r.log.Add(message.Neutral, "You drop the %s.", it.Name())
	}
}

// Unload empties the ammunition and contents of the item at loc into the
// avatar's inventory.
func (r *Rules) Unload(u *avatar.Avatar, m *world.Map, loc inventory.Location) bool {
	it := loc.Get()
	if it == nil || !it.Unloadable() {
		if it != nil {
			r.log.Add(message.Info, "You can't unload a %s.", it.Name())
		}
		return false
	}
	if ammo := it.Ammo; ammo != nil {
		if ammo.CountByCharges() {
			ammo.Charges = it.Charges
		}
		it.Ammo = nil
		it.Charges = 0
		if ammo.Charges > 0 || !ammo.CountByCharges() {
			r.stash(u, m, ammo)
		}
	}
	contents := it.Contents
	it.Contents = nil
	for _, c := range contents {
		r.stash(u, m, c)
	}
	u.ModMoves(-costUnload)
	r.log.Add(message.Neutral, "You unload the %s.", it.Name())
	return true
}

// MendItem clears rust from the item at loc.
func (r *Rules) MendItem(u *avatar.Avatar, loc inventory.Location) {
	it := loc.Get()
	if it == nil {
		return
	}
	if !it.Rusted {
		r.log.Add(message.Info, "Your %s doesn't need mending.", it.Name())
		return
	}
	it.Rusted = false
	u.ModMoves(-costMend)
	r.log.Add(message.Good, "You mend your %s.", it.Name())
}

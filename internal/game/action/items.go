package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/message"
	"github.com/cory-johannsen/underbrush/internal/game/world"
)

// Item menu titles.
const (
	TitleThrow   = "Throw item"
	TitleUse     = "Use item"
	TitleUnload  = "Unload item"
	TitleConsume = "Consume item"
)

const costBrowse = 400

// nearbyItems lists the items the avatar holds followed by those lying, or
// stowed in vehicle cargo, within one tile, keeping those accepted by keep.
func nearbyItems(u *avatar.Avatar, m *world.Map, keep func(*inventory.Item) bool) []inventory.Location {
	var out []inventory.Location
	add := func(loc inventory.Location) {
		if keep == nil || keep(loc.Get()) {
			out = append(out, loc)
		}
	}
	for _, it := range heldItems(u) {
		add(u.ItemLocation(it))
	}
	if m == nil {
		return out
	}
	for _, p := range geom.PointsInRadius(u.Pos(), 1) {
		for _, it := range m.ItemsAt(p) {
			add(m.ItemLocation(p, it))
		}
		if v, _, ok := m.VehAt(p); ok {
			if cargo, ok := v.CargoAt(p); ok {
				for _, it := range cargo.Items {
					add(inventory.InVehicle(cargo, p, it))
				}
			}
		}
	}
	return out
}

// heldItems returns the wielded weapon, worn items, and carried items.
func heldItems(u *avatar.Avatar) []*inventory.Item {
	var out []*inventory.Item
	if u.Weapon != nil {
		out = append(out, u.Weapon)
	}
	out = append(out, u.Worn...)
	return append(out, u.Inv.Items()...)
}

// EatHere lets grazing and ruminant mutants eat the vegetation they stand on.
//
// Postcondition: returns true when the turn was spent (or explained) on the
// vegetation underfoot.
func (d *Dispatcher) EatHere(u *avatar.Avatar, m *world.Map) bool {
	pos := u.Pos()
	ter := m.Ter(pos).ID
	ruminant := u.HasActiveMutation(avatar.TraitRuminant)
	grazer := u.HasActiveMutation(avatar.TraitGrazer)

	if (ruminant || grazer) && (ter == world.TerUnderbrush || ter == world.TerShrub) {
		food := d.fakeFood(inventory.IDUnderbrush)
		if d.tooFull(u, food) {
			d.log.Add(message.Neutral, "You're too full to eat the leaves from the %s.", m.TerName(pos))
			return true
		}
		d.setTer(m, pos, world.TerGrass)
		u.ModMoves(-costBrowse)
		d.log.Add(message.Neutral, "You eat the underbrush.")
		u.Eat(food)
		return true
	}

	if grazer && (ter == world.TerGrass || ter == world.TerGrassLong || ter == world.TerGrassTall) {
		food := d.fakeFood(inventory.IDGrass)
		if d.tooFull(u, food) {
			d.log.Add(message.Neutral, "You're too full to graze.")
			return true
		}
		u.ModMoves(-costBrowse)
		d.log.Add(message.Neutral, "You eat the grass.")
		u.Eat(food)
		switch ter {
		case world.TerGrassTall:
			d.setTer(m, pos, world.TerGrassLong)
		case world.TerGrassLong:
			d.setTer(m, pos, world.TerGrass)
		default:
			d.setTer(m, pos, world.TerDirt)
		}
		return true
	}

	if grazer {
		switch ter {
		case world.TerGrassGolf:
			d.log.Add(message.Neutral, "This grass is too short to graze.")
			return true
		case world.TerGrassDead:
			d.log.Add(message.Neutral, "This grass is dead and too mangled for you to graze.")
			return true
		case world.TerGrassWhite:
			d.log.Add(message.Neutral, "This grass is tainted with paint and thus inedible.")
			return true
		}
	}
	return false
}

func (d *Dispatcher) tooFull(u *avatar.Avatar, food *inventory.Item) bool {
	return u.StoredKcal+food.Kcal() > u.MaxKcal
}

// fakeFood creates one serving of a registered food, or a calorie-free
// stand-in when the content does not define it.
func (d *Dispatcher) fakeFood(id string) *inventory.Item {
	if it, err := d.items.Create(id); err == nil {
		return it
	}
	return inventory.New(&inventory.ItemDef{ID: id, Name: id, Comestible: &inventory.ComestibleDef{}})
}

func (d *Dispatcher) setTer(m *world.Map, p geom.Tripoint, id string) {
	if err := m.SetTer(p, id); err != nil {
		d.logger.Error("set terrain", zap.Stringer("pos", p), zap.String("ter", id), zap.Error(err))
	}
}

// Eat asks for something edible nearby and eats it.
func (d *Dispatcher) Eat(u *avatar.Avatar, m *world.Map) {
	cands := nearbyItems(u, m, func(it *inventory.Item) bool {
		return it.IsComestible() || (it.IsFoodContainer() && len(it.Contents) > 0)
	})
	var loc inventory.Location
	if len(cands) > 0 {
		loc, _ = d.ui.PickItem(d.log.Sprintf(TitleConsume), cands)
	}
	d.EatLocation(u, loc)
}

// EatLocation eats the item at loc. Held items are consumed through the
// avatar; others are eaten where they lie.
func (d *Dispatcher) EatLocation(u *avatar.Avatar, loc inventory.Location) {
	if !loc.Valid() {
		u.CancelActivity()
		d.log.Add(message.Neutral, "Never mind.")
		return
	}
	if loc.Where() == inventory.Character {
		d.rules.Consume(u, loc)
	} else if it := loc.Get(); d.rules.ConsumeItem(u, it) {
		if (it.IsFoodContainer() || !d.rules.CanConsumeAsIs(u, it)) && len(it.Contents) > 0 {
			it.RemoveItem(it.Contents[0])
			d.log.Add(message.Neutral, "You leave the empty %s.", it.Name())
		} else if err := loc.Remove(); err != nil {
			d.logger.Error("remove eaten item", zap.Stringer("loc", loc), zap.Error(err))
		}
	}
	if u.Value(avatar.ValueThiefModeKeep) != "YES" {
		u.SetValue(avatar.ValueThiefMode, avatar.ThiefAsk)
	}
}

// Throw throws the item at loc, asking for one when loc is empty. blindFrom,
// when set, is the position the avatar peeks from to pick a target.
func (d *Dispatcher) Throw(u *avatar.Avatar, m *world.Map, loc inventory.Location, blindFrom *geom.Tripoint) {
	if u.HasActiveMutation(avatar.TraitShell2) {
		d.log.Add(message.Info, "You can't effectively throw while you're in your shell.")
		return
	}
	if mon := u.Mount; mon != nil && mon.HasFlag(creature.FlagRideableMech) && !mon.CheckMechPowered() {
		d.log.Add(message.Bad, "Your %s refuses to move as its batteries have been drained.", mon.Name())
		return
	}

	if !loc.Valid() {
		cands := nearbyItems(u, nil, nil)
		if len(cands) == 0 {
			d.log.Add(message.Info, "You don't have any items to throw.")
			return
		}
		var ok bool
		if loc, ok = d.ui.PickItem(d.log.Sprintf(TitleThrow), cands); !ok || !loc.Valid() {
			d.log.Add(message.Neutral, "Never mind.")
			return
		}
	}
	it := loc.Get()

	switch rng := u.ThrowRange(it); {
	case rng < 0:
		d.log.Add(message.Info, "You don't have that item.")
		return
	case rng == 0:
		d.log.Add(message.Info, "That is too heavy to throw.")
		return
	}

	if u.IsWielding(it) && it.HasFlag(inventory.FlagNoUnwield) {
		d.log.Add(message.Info, "That's part of your body, you can't throw that!")
		return
	}

	if u.HasEffect(condition.RelaxGas) {
		if !d.relaxGasCheck(u, 5, 5) {
			d.log.Add(message.Bad, "You can't muster up the effort to throw anything…")
			return
		}
		d.log.Add(message.Good, "You concentrate mightily, and your body obeys!")
	}

	if u.IsWearing(it.TypeID()) {
		if err := u.CanTakeOff(it); err != nil {
			d.log.Add(message.Info, "%s", err.Error())
			return
		}
	}

	need := 1
	if it.IsTwoHanded(u.StrCur) {
		need = 2
	}
	if u.UsableHands() < need && !u.IsWielding(it) {
		if !u.Wield(it) {
			d.log.Add(message.Info, "You do not have enough free hands to throw %s without wielding it.", it.Name())
			return
		}
		loc = u.ItemLocation(it)
	}

	origin := u.Pos()
	if blindFrom != nil {
		u.SetPos(*blindFrom)
	}
	d.ui.TempExitFullscreen()
	traj := d.ui.TargetThrow(u, it, blindFrom != nil)
	if blindFrom != nil {
		u.SetPos(origin)
	}
	if len(traj) == 0 {
		d.ui.ReenterFullscreen()
		return
	}

	if !u.IsWielding(it) {
		u.ModMoves(-u.ItemHandlingCost(it, true, avatar.InventoryHandlingPenalty/2))
	}

	thrown := it
	if it.CountByCharges() && it.Charges > 1 {
		thrown = it.Clone()
		thrown.Charges = 1
		it.ModCharges(-1)
	} else {
		if err := loc.Remove(); err != nil {
			d.logger.Error("remove thrown item", zap.Stringer("loc", loc), zap.Error(err))
		}
	}
	d.rules.ThrowItem(u, m, traj[len(traj)-1], thrown, blindFrom)
	d.ui.ReenterFullscreen()
}

// UseItem uses the item at loc, asking for one when loc is empty. Items that
// allow remote use are used where they lie; others are brought to hand first.
func (d *Dispatcher) UseItem(u *avatar.Avatar, m *world.Map, loc inventory.Location) {
	inPlace := false
	if !loc.Valid() {
		cands := nearbyItems(u, m, func(it *inventory.Item) bool { return d.rules.CanUse(u, it) })
		var ok bool
		if len(cands) > 0 {
			loc, ok = d.ui.PickItem(d.log.Sprintf(TitleUse), cands)
		}
		if !ok || !loc.Valid() {
			d.log.Add(message.Neutral, "Never mind.")
			return
		}
		if loc.Get().HasFlag(inventory.FlagAllowsRemoteUse) {
			inPlace = true
		} else {
			cost := loc.ObtainCost(u.ItemHandlingCost(loc.Get(), true, avatar.InventoryHandlingPenalty))
			obtained, err := d.obtain(u, loc, cost)
			if err != nil {
				d.logger.Error("failed to obtain target item", zap.Stringer("loc", loc), zap.Error(err))
				return
			}
			loc = obtained
			u.ModMoves(cost)
		}
	}

	if inPlace {
		m.UpdateLum(loc, false)
		d.rules.Use(u, m, loc)
		m.UpdateLum(loc, true)
		d.makeActive(m, loc)
	} else {
		d.rules.Use(u, m, loc)
	}
	d.rules.InvalidateCraftingInventory(u)
}

// obtain brings the item at loc into the avatar's inventory for cost moves.
func (d *Dispatcher) obtain(u *avatar.Avatar, loc inventory.Location, cost int) (inventory.Location, error) {
	if loc.Where() == inventory.Character {
		u.ModMoves(-cost)
		return loc, nil
	}
	it := loc.Get()
	if err := u.Inv.CanAdd(it); err != nil {
		return inventory.Location{}, err
	}
	if err := loc.Remove(); err != nil {
		return inventory.Location{}, err
	}
	held, err := u.Inv.Add(it)
	if err != nil {
		return inventory.Location{}, err
	}
	u.ModMoves(-cost)
	return u.ItemLocation(held), nil
}

// makeActive registers an item used in place with whatever holds it.
func (d *Dispatcher) makeActive(m *world.Map, loc inventory.Location) {
	switch loc.Where() {
	case inventory.Map:
		m.MakeActive(loc)
	case inventory.Vehicle:
		if v, _, ok := m.VehAt(loc.Position()); ok {
			v.MakeActive(loc.Get())
		}
	}
}

// Unload asks for an item worth unloading and unloads it.
func (d *Dispatcher) Unload(u *avatar.Avatar, m *world.Map) {
	cands := nearbyItems(u, m, func(it *inventory.Item) bool { return d.rules.RateUnload(u, it) })
	if len(cands) == 0 {
		d.log.Add(message.Info, "You have nothing to unload.")
		d.log.Add(message.Neutral, "Never mind.")
		return
	}
	loc, ok := d.ui.PickItem(d.log.Sprintf(TitleUnload), cands)
	if !ok || !loc.Valid() {
		d.log.Add(message.Neutral, "Never mind.")
		return
	}
	d.rules.Unload(u, m, loc)
}

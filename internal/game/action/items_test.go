package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/underbrush/internal/game/action"
	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/vehicle"
	"github.com/cory-johannsen/underbrush/internal/game/world"
)

// pickType answers an item prompt with the first candidate of type id.
func pickType(id string) func([]inventory.Location) (inventory.Location, bool) {
	return func(cands []inventory.Location) (inventory.Location, bool) {
		for _, c := range cands {
			if c.Get().TypeID() == id {
				return c, true
			}
		}
		return inventory.Location{}, false
	}
}

func (f *fixture) carry(t *testing.T, id string) *inventory.Item {
	t.Helper()
	it, err := f.u.Inv.Add(f.item(t, id))
	require.NoError(t, err)
	return it
}

func TestEatHere_Grazing(t *testing.T) {
	cases := []struct {
		from, to string
	}{
		{world.TerGrassTall, world.TerGrassLong},
		{world.TerGrassLong, world.TerGrass},
		{world.TerGrass, world.TerDirt},
	}
	for _, tc := range cases {
		t.Run(tc.from, func(t *testing.T) {
			f := newFixture(t, 0)
			f.u.SetTrait(avatar.TraitGrazer, true)
			f.ter(t, f.u.Pos(), tc.from)
			assert.True(t, f.d.EatHere(f.u, f.m))
			assert.Equal(t, tc.to, f.m.Ter(f.u.Pos()).ID)
			assert.Equal(t, "You eat the grass.", f.last())
			assert.Equal(t, 55000+60, f.u.StoredKcal)
			assert.Equal(t, 100-400, f.u.Moves)
		})
	}
}

func TestEatHere_TooFullToGraze(t *testing.T) {
	f := newFixture(t, 0)
	f.u.SetTrait(avatar.TraitGrazer, true)
	f.u.StoredKcal = f.u.MaxKcal
	f.ter(t, f.u.Pos(), world.TerGrassTall)
	assert.True(t, f.d.EatHere(f.u, f.m))
	assert.Equal(t, "You're too full to graze.", f.last())
	assert.Equal(t, world.TerGrassTall, f.m.Ter(f.u.Pos()).ID)
	assert.Equal(t, 100, f.u.Moves)
}

func TestEatHere_Browsing(t *testing.T) {
	for _, ter := range []string{world.TerUnderbrush, world.TerShrub} {
		t.Run(ter, func(t *testing.T) {
			f := newFixture(t, 0)
			f.u.SetTrait(avatar.TraitRuminant, true)
			f.ter(t, f.u.Pos(), ter)
			assert.True(t, f.d.EatHere(f.u, f.m))
			assert.Equal(t, "You eat the underbrush.", f.last())
			assert.Equal(t, world.TerGrass, f.m.Ter(f.u.Pos()).ID)
			assert.Equal(t, 55000+80, f.u.StoredKcal)
		})
	}
}

func TestEatHere_TooFullForLeaves(t *testing.T) {
	f := newFixture(t, 0)
	f.u.SetTrait(avatar.TraitRuminant, true)
	f.u.StoredKcal = f.u.MaxKcal
	f.ter(t, f.u.Pos(), world.TerShrub)
	assert.True(t, f.d.EatHere(f.u, f.m))
	assert.Equal(t, "You're too full to eat the leaves from the shrub.", f.last())
	assert.Equal(t, world.TerShrub, f.m.Ter(f.u.Pos()).ID)
}

func TestEatHere_InedibleGrass(t *testing.T) {
	cases := map[string]string{
		world.TerGrassGolf:  "This grass is too short to graze.",
		world.TerGrassDead:  "This grass is dead and too mangled for you to graze.",
		world.TerGrassWhite: "This grass is tainted with paint and thus inedible.",
	}
	for ter, want := range cases {
		t.Run(ter, func(t *testing.T) {
			f := newFixture(t, 0)
			f.u.SetTrait(avatar.TraitGrazer, true)
			f.ter(t, f.u.Pos(), ter)
			assert.True(t, f.d.EatHere(f.u, f.m))
			assert.Equal(t, want, f.last())
			assert.Equal(t, ter, f.m.Ter(f.u.Pos()).ID)
		})
	}
}

func TestEatHere_NothingToEat(t *testing.T) {
	f := newFixture(t, 0)
	f.ter(t, f.u.Pos(), world.TerGrassTall)
	assert.False(t, f.d.EatHere(f.u, f.m))

	f.u.SetTrait(avatar.TraitRuminant, true)
	assert.False(t, f.d.EatHere(f.u, f.m))
	assert.Empty(t, f.texts())
}

func TestEatLocation_NeverMind(t *testing.T) {
	f := newFixture(t, 0)
	f.u.AssignActivity(avatar.Activity{Kind: avatar.ActivityAimWielded})
	f.u.SetValue(avatar.ValueThiefMode, avatar.ThiefSteal)
	f.d.EatLocation(f.u, inventory.Location{})
	assert.Nil(t, f.u.Activity)
	assert.Equal(t, "Never mind.", f.last())
	assert.Equal(t, avatar.ThiefSteal, f.u.Value(avatar.ValueThiefMode))
}

func TestEatLocation_Carried(t *testing.T) {
	f := newFixture(t, 0)
	apple := f.carry(t, "apple")
	f.u.SetValue(avatar.ValueThiefMode, avatar.ThiefSteal)
	f.d.EatLocation(f.u, f.u.ItemLocation(apple))
	require.Len(t, f.rules.consumed, 1)
	assert.Same(t, apple, f.rules.consumed[0])
	assert.Equal(t, avatar.ThiefAsk, f.u.Value(avatar.ValueThiefMode))
}

func TestEatLocation_KeepsThiefMode(t *testing.T) {
	f := newFixture(t, 0)
	apple := f.carry(t, "apple")
	f.u.SetValue(avatar.ValueThiefMode, avatar.ThiefSteal)
	f.u.SetValue(avatar.ValueThiefModeKeep, "YES")
	f.d.EatLocation(f.u, f.u.ItemLocation(apple))
	assert.Equal(t, avatar.ThiefSteal, f.u.Value(avatar.ValueThiefMode))
}

func TestEatLocation_FromTheGround(t *testing.T) {
	f := newFixture(t, 0)
	f.rules.consumeOK = true
	f.rules.asIs = true
	apple := f.item(t, "apple")
	f.m.AddItem(at(6, 5, 0), apple)
	f.d.EatLocation(f.u, f.m.ItemLocation(at(6, 5, 0), apple))
	assert.Empty(t, f.m.ItemsAt(at(6, 5, 0)))
}

func TestEatLocation_FailedConsumeLeavesItem(t *testing.T) {
	f := newFixture(t, 0)
	apple := f.item(t, "apple")
	f.m.AddItem(at(6, 5, 0), apple)
	f.d.EatLocation(f.u, f.m.ItemLocation(at(6, 5, 0), apple))
	assert.Len(t, f.m.ItemsAt(at(6, 5, 0)), 1)
}

func TestEatLocation_EmptiesContainer(t *testing.T) {
	f := newFixture(t, 0)
	f.rules.consumeOK = true
	can := f.item(t, "can")
	can.Contents = append(can.Contents, f.item(t, "apple"))
	f.m.AddItem(at(6, 5, 0), can)
	f.d.EatLocation(f.u, f.m.ItemLocation(at(6, 5, 0), can))
	assert.Empty(t, can.Contents)
	assert.Len(t, f.m.ItemsAt(at(6, 5, 0)), 1)
	assert.Equal(t, "You leave the empty can.", f.last())
}

func TestEat_PicksFood(t *testing.T) {
	f := newFixture(t, 0)
	f.carry(t, "rock")
	apple := f.carry(t, "apple")
	f.ui.pick = pickType("apple")
	f.d.Eat(f.u, f.m)
	assert.Equal(t, []string{action.TitleConsume}, f.ui.titles)
	require.Len(t, f.rules.consumed, 1)
	assert.Same(t, apple, f.rules.consumed[0])
}

func TestThrow_Refusals(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, f *fixture) inventory.Location
		want  string
	}{
		{
			name: "shell",
			setup: func(t *testing.T, f *fixture) inventory.Location {
				f.u.SetTrait(avatar.TraitShell2, true)
				f.u.SetMutationActive(avatar.TraitShell2, true)
				return f.u.ItemLocation(f.carry(t, "rock"))
			},
			want: "You can't effectively throw while you're in your shell.",
		},
		{
			name: "drained mech",
			setup: func(t *testing.T, f *fixture) inventory.Location {
				f.u.Mount = creature.NewMonster("mech", "mech", f.u.Pos(), 100, 18)
				f.u.Mount.Flags = []string{creature.FlagRideableMech}
				return f.u.ItemLocation(f.carry(t, "rock"))
			},
			want: "Your mech refuses to move as its batteries have been drained.",
		},
		{
			name: "nothing to throw",
			setup: func(*testing.T, *fixture) inventory.Location {
				return inventory.Location{}
			},
			want: "You don't have any items to throw.",
		},
		{
			name: "cancelled",
			setup: func(t *testing.T, f *fixture) inventory.Location {
				f.carry(t, "rock")
				return inventory.Location{}
			},
			want: "Never mind.",
		},
		{
			name: "not held",
			setup: func(t *testing.T, f *fixture) inventory.Location {
				rock := f.item(t, "rock")
				f.m.AddItem(at(6, 5, 0), rock)
				return f.m.ItemLocation(at(6, 5, 0), rock)
			},
			want: "You don't have that item.",
		},
		{
			name: "too heavy",
			setup: func(t *testing.T, f *fixture) inventory.Location {
				f.u.Weapon = f.item(t, "anvil")
				return f.u.ItemLocation(f.u.Weapon)
			},
			want: "That is too heavy to throw.",
		},
		{
			name: "body part",
			setup: func(t *testing.T, f *fixture) inventory.Location {
				f.u.Weapon = f.item(t, "claws")
				return f.u.ItemLocation(f.u.Weapon)
			},
			want: "That's part of your body, you can't throw that!",
		},
		{
			name: "cannot take off",
			setup: func(t *testing.T, f *fixture) inventory.Location {
				helmet := inventory.New(&inventory.ItemDef{ID: "helmet", Name: "helmet", Weight: 1, Flags: []string{avatar.FlagNoTakeoff}})
				f.u.Worn = append(f.u.Worn, helmet)
				return f.u.ItemLocation(helmet)
			},
			want: "You can't take off your helmet.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 0)
			f.ui.traj = []geom.Tripoint{at(8, 5, 0)}
			loc := tc.setup(t, f)
			f.d.Throw(f.u, f.m, loc, nil)
			assert.Equal(t, tc.want, f.last())
			assert.Empty(t, f.rules.thrown)
		})
	}
}

func TestThrow_FromInventory(t *testing.T) {
	f := newFixture(t, 0)
	rock := f.carry(t, "rock")
	f.ui.traj = []geom.Tripoint{at(6, 5, 0), at(8, 5, 0)}

	f.d.Throw(f.u, f.m, f.u.ItemLocation(rock), nil)
	require.Len(t, f.rules.thrown, 1)
	assert.Same(t, rock, f.rules.thrown[0].item)
	assert.Equal(t, at(8, 5, 0), f.rules.thrown[0].target)
	assert.False(t, f.u.Inv.Has(rock))
	assert.Equal(t, 100-51, f.u.Moves)
	assert.Equal(t, 1, f.ui.exits)
	assert.Equal(t, 1, f.ui.reenters)
}

func TestThrow_PicksItem(t *testing.T) {
	f := newFixture(t, 0)
	f.carry(t, "rock")
	f.ui.pick = pickType("rock")
	f.ui.traj = []geom.Tripoint{at(8, 5, 0)}
	f.d.Throw(f.u, f.m, inventory.Location{}, nil)
	assert.Equal(t, []string{action.TitleThrow}, f.ui.titles)
	assert.Len(t, f.rules.thrown, 1)
}

func TestThrow_SplitsOneCharge(t *testing.T) {
	f := newFixture(t, 0)
	pebbles := f.carry(t, "pebble")
	f.ui.traj = []geom.Tripoint{at(8, 5, 0)}
	f.d.Throw(f.u, f.m, f.u.ItemLocation(pebbles), nil)
	require.Len(t, f.rules.thrown, 1)
	assert.Equal(t, 1, f.rules.thrown[0].item.Charges)
	assert.NotSame(t, pebbles, f.rules.thrown[0].item)
	assert.Equal(t, 4, pebbles.Charges)
	assert.True(t, f.u.Inv.Has(pebbles))
}

func TestThrow_BlindPeeksFromPosition(t *testing.T) {
	f := newFixture(t, 0)
	rock := f.carry(t, "rock")
	f.ui.traj = []geom.Tripoint{at(5, 1, 0)}
	peek := at(5, 4, 0)
	f.d.Throw(f.u, f.m, f.u.ItemLocation(rock), &peek)
	assert.Equal(t, peek, f.ui.throwPos)
	assert.Equal(t, at(5, 5, 0), f.u.Pos())
	assert.Len(t, f.rules.thrown, 1)
}

func TestThrow_WieldsWithoutFreeHands(t *testing.T) {
	f := newFixture(t, 0)
	f.u.WorkingArms = 0
	rock := f.carry(t, "rock")
	f.ui.traj = []geom.Tripoint{at(8, 5, 0)}
	f.d.Throw(f.u, f.m, f.u.ItemLocation(rock), nil)
	require.Len(t, f.rules.thrown, 1)
	assert.Nil(t, f.u.Weapon)
	assert.False(t, f.u.Inv.Has(rock))
	assert.Equal(t, 100-202, f.u.Moves)
}

func TestThrow_CannotFreeHands(t *testing.T) {
	f := newFixture(t, 0)
	f.u.WorkingArms = 1
	f.u.Weapon = f.item(t, "claws")
	rock := f.carry(t, "rock")
	f.d.Throw(f.u, f.m, f.u.ItemLocation(rock), nil)
	assert.Equal(t, "You do not have enough free hands to throw rock without wielding it.", f.last())
	assert.True(t, f.u.Inv.Has(rock))
}

func TestThrow_CancelledTarget(t *testing.T) {
	f := newFixture(t, 0)
	rock := f.carry(t, "rock")
	f.d.Throw(f.u, f.m, f.u.ItemLocation(rock), nil)
	assert.Empty(t, f.rules.thrown)
	assert.True(t, f.u.Inv.Has(rock))
	assert.Equal(t, 100, f.u.Moves)
	assert.Equal(t, 1, f.ui.reenters)
}

func TestThrow_RelaxGas(t *testing.T) {
	f := newFixture(t, 3)
	f.u.AddEffect(condition.RelaxGas, 10)
	rock := f.carry(t, "rock")
	f.ui.traj = []geom.Tripoint{at(8, 5, 0)}
	f.d.Throw(f.u, f.m, f.u.ItemLocation(rock), nil)
	assert.Equal(t, "You can't muster up the effort to throw anything…", f.last())
	assert.Equal(t, 50, f.u.Moves)
	assert.Empty(t, f.rules.thrown)
}

func TestUseItem_NeverMind(t *testing.T) {
	f := newFixture(t, 0)
	f.carry(t, "rock")
	f.d.UseItem(f.u, f.m, inventory.Location{})
	assert.Equal(t, "Never mind.", f.last())
	assert.Empty(t, f.rules.used)
	assert.Equal(t, 0, f.rules.invalidated)
}

func TestUseItem_RemoteUseInPlace(t *testing.T) {
	f := newFixture(t, 0)
	f.rules.usable = true
	lamp := f.item(t, "lamp")
	f.m.AddItem(at(6, 5, 0), lamp)
	f.ui.pick = pickType("lamp")

	f.d.UseItem(f.u, f.m, inventory.Location{})
	require.Len(t, f.rules.used, 1)
	assert.Equal(t, inventory.Map, f.rules.used[0].Where())
	assert.Equal(t, []string{action.TitleUse}, f.ui.titles)
	assert.True(t, lamp.Active)
	assert.Equal(t, 1, f.m.ActiveItemCount())
	assert.Len(t, f.m.ItemsAt(at(6, 5, 0)), 1)
	assert.Equal(t, 1, f.rules.invalidated)
}

func TestUseItem_RemoteUseInVehicle(t *testing.T) {
	f := newFixture(t, 0)
	f.rules.usable = true
	lamp := f.item(t, "lamp")
	v := &vehicle.Vehicle{
		Name:   "van",
		Origin: at(6, 5, 0),
		Parts:  []*vehicle.Part{{Name: "trunk", Features: []string{vehicle.FeatureCargo}, Items: []*inventory.Item{lamp}}},
	}
	f.m.AddVehicle(v)
	f.ui.pick = pickType("lamp")

	f.d.UseItem(f.u, f.m, inventory.Location{})
	require.Len(t, f.rules.used, 1)
	assert.Equal(t, inventory.Vehicle, f.rules.used[0].Where())
	assert.Equal(t, []*inventory.Item{lamp}, v.ActiveItems())
}

func TestUseItem_ObtainsAndRefunds(t *testing.T) {
	f := newFixture(t, 0)
	f.rules.usable = true
	light := f.item(t, "flashlight")
	f.m.AddItem(at(6, 5, 0), light)
	f.ui.pick = pickType("flashlight")

	f.d.UseItem(f.u, f.m, inventory.Location{})
	require.Len(t, f.rules.used, 1)
	assert.Equal(t, inventory.Character, f.rules.used[0].Where())
	assert.True(t, f.u.Inv.Has(light))
	assert.Empty(t, f.m.ItemsAt(at(6, 5, 0)))
	assert.Equal(t, 100, f.u.Moves)
}

func TestUseItem_ObtainFails(t *testing.T) {
	f := newFixture(t, 0)
	f.rules.usable = true
	f.u.Inv = inventory.NewInventory(0, 50)
	light := f.item(t, "flashlight")
	f.m.AddItem(at(6, 5, 0), light)
	f.ui.pick = pickType("flashlight")

	f.d.UseItem(f.u, f.m, inventory.Location{})
	assert.Empty(t, f.rules.used)
	assert.Len(t, f.m.ItemsAt(at(6, 5, 0)), 1)
	assert.Equal(t, 1, f.logs.FilterMessage("failed to obtain target item").Len())
}

func TestUseItem_GivenLocation(t *testing.T) {
	f := newFixture(t, 0)
	light := f.carry(t, "flashlight")
	f.d.UseItem(f.u, f.m, f.u.ItemLocation(light))
	require.Len(t, f.rules.used, 1)
	assert.Empty(t, f.ui.titles)
	assert.Equal(t, 1, f.rules.invalidated)
}

func TestUnload(t *testing.T) {
	f := newFixture(t, 0)
	f.d.Unload(f.u, f.m)
	assert.Equal(t, []string{"You have nothing to unload.", "Never mind."}, f.texts())

	g := newFixture(t, 0)
	g.rules.unloadable = true
	gun := g.carry(t, "pickaxe")
	g.ui.pick = pickType("pickaxe")
	g.d.Unload(g.u, g.m)
	require.Len(t, g.rules.unloaded, 1)
	assert.Same(t, gun, g.rules.unloaded[0].Get())
	assert.Equal(t, []string{action.TitleUnload}, g.ui.titles)
}

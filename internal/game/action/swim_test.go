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
)

func waterFixture(t *testing.T, roll int) *fixture {
	t.Helper()
	f := newFixture(t, roll)
	for x := 4; x <= 7; x++ {
		for y := 4; y <= 7; y++ {
			f.ter(t, at(x, y, 0), "t_water_dp")
		}
	}
	return f
}

func TestSwim_RejectsDryLand(t *testing.T) {
	f := newFixture(t, 0)
	f.d.Swim(f.m, f.u, at(6, 5, 0))
	assert.Equal(t, at(5, 5, 0), f.u.Pos())
	assert.Equal(t, 1, f.logs.FilterMessage("swim into non-swimmable tile").Len())
}

func TestSwim_Stroke(t *testing.T) {
	f := waterFixture(t, 0)
	f.d.Swim(f.m, f.u, at(6, 5, 0))

	assert.Equal(t, at(6, 5, 0), f.u.Pos())
	assert.Equal(t, 100-150, f.u.Moves)
	assert.Equal(t, 1, f.u.SkillPractice(avatar.SkillSwimming))
	assert.Equal(t, 10000-150, f.u.Stamina)
	assert.Equal(t, 100, f.u.Wetness(avatar.Torso))
	assert.Equal(t, 100, f.u.Wetness(avatar.FootL))
	assert.Equal(t, 0, f.u.Wetness(avatar.Head))
	assert.Equal(t, []geom.Tripoint{at(6, 5, 0)}, f.game.moved)
}

func TestSwim_UnderwaterSoaksHead(t *testing.T) {
	f := waterFixture(t, 0)
	f.u.SetUnderwater(true)
	f.d.Swim(f.m, f.u, at(6, 5, 0))
	assert.Equal(t, 100, f.u.Wetness(avatar.Head))
	assert.Equal(t, 100, f.u.Wetness(avatar.Mouth))
	assert.Equal(t, 2, f.u.SkillPractice(avatar.SkillSwimming))
	assert.Equal(t, 100-130, f.u.Moves)
}

func TestSwim_DiagonalCostsMoreWithTrigDist(t *testing.T) {
	f := waterFixture(t, 0)
	f.configure(action.Config{TrigDist: true})
	f.d.Swim(f.m, f.u, at(6, 6, 0))
	assert.Equal(t, 100-212, f.u.Moves)

	g := waterFixture(t, 0)
	g.d.Swim(g.m, g.u, at(6, 6, 0))
	assert.Equal(t, 100-150, g.u.Moves)
}

func TestSwim_DiagonalStrokeTruncatesTheRemainder(t *testing.T) {
	f := waterFixture(t, 0)
	f.configure(action.Config{TrigDist: true})
	f.u.Moves = 300
	f.d.Swim(f.m, f.u, at(6, 6, 0))
	// 300 - 150*sqrt(2) = 87.87
	assert.Equal(t, 87, f.u.Moves)
}

func TestSwim_PutsOutFireAndGoo(t *testing.T) {
	f := waterFixture(t, 0)
	f.u.AddEffect(condition.OnFire, 3)
	f.u.AddEffect(condition.Glowing, 3)
	f.u.Mount = creature.NewMonster("horse", "horse", f.u.Pos(), 30, 10)
	require.NoError(t, f.u.Mount.Effects.Apply(condition.NewRegistry().Lookup(condition.OnFire), 1, 3))

	f.d.Swim(f.m, f.u, at(6, 5, 0))
	assert.False(t, f.u.HasEffect(condition.OnFire))
	assert.False(t, f.u.HasEffect(condition.Glowing))
	assert.False(t, f.u.Mount.HasEffect(condition.OnFire))
	assert.Contains(t, f.texts(), "The water puts out the flames!")
	assert.Contains(t, f.texts(), "The water washes off the glowing goo!")
	assert.Equal(t, 10000, f.u.Stamina)
}

func TestSwim_SinksLikeARock(t *testing.T) {
	f := waterFixture(t, 0)
	f.u.Weapon = f.item(t, "anvil")
	f.d.Swim(f.m, f.u, at(6, 5, 0))
	assert.True(t, f.u.IsUnderwater())
	assert.Equal(t, 30+2*8, f.u.Oxygen)
	assert.Contains(t, f.texts(), "You sink like a rock!")
	assert.Equal(t, 100-200, f.u.Moves)
}

func TestSwim_FinsKeepYouAfloat(t *testing.T) {
	f := waterFixture(t, 0)
	f.u.Weapon = f.item(t, "anvil")
	f.u.Inv = inventory.NewInventory(20, 500)
	_, err := f.u.Inv.Add(f.item(t, "anvil"))
	require.NoError(t, err)
	f.u.Worn = append(f.u.Worn, f.item(t, inventory.IDSwimFins), f.item(t, inventory.IDSwimFins))
	require.GreaterOrEqual(t, f.u.SwimSpeed(), 500)
	f.d.Swim(f.m, f.u, at(6, 5, 0))
	assert.False(t, f.u.IsUnderwater())
}

func TestSwim_BreathPopups(t *testing.T) {
	t.Run("can surface", func(t *testing.T) {
		f := waterFixture(t, 0)
		f.u.SetUnderwater(true)
		f.u.Oxygen = 3
		f.d.Swim(f.m, f.u, at(6, 5, 0))
		assert.Equal(t, []string{"You need to breathe!  (<move_up> to surface.)"}, f.ui.popups)
	})
	t.Run("cannot swim", func(t *testing.T) {
		f := waterFixture(t, 0)
		f.u.SetUnderwater(true)
		f.u.Oxygen = 3
		f.u.Weapon = f.item(t, "anvil")
		f.d.Swim(f.m, f.u, at(6, 5, 0))
		assert.Equal(t, []string{"You need to breathe but you can't swim!  Get to dry land, quick!"}, f.ui.popups)
	})
}

func TestSwim_BoardsBoat(t *testing.T) {
	f := waterFixture(t, 0)
	boat := &vehicle.Vehicle{
		Name:    "canoe",
		Origin:  at(6, 5, 0),
		InWater: true,
		Parts:   []*vehicle.Part{{Name: "seat", Features: []string{vehicle.FeatureBoardable}}},
	}
	f.m.AddVehicle(boat)
	f.d.Swim(f.m, f.u, at(6, 5, 0))
	assert.True(t, f.u.InVehicle)
	assert.Equal(t, "Tester", boat.Part(0).Passenger)
}

func TestSwim_MountedCannotBoard(t *testing.T) {
	f := waterFixture(t, 0)
	f.m.AddVehicle(&vehicle.Vehicle{
		Name:   "canoe",
		Origin: at(6, 5, 0),
		Parts:  []*vehicle.Part{{Name: "seat", Features: []string{vehicle.FeatureBoardable}}},
	})
	f.u.Mount = creature.NewMonster("horse", "horse", f.u.Pos(), 30, 10)
	f.d.Swim(f.m, f.u, at(6, 5, 0))
	assert.Equal(t, at(5, 5, 0), f.u.Pos())
	assert.Equal(t, "You cannot board a vehicle while mounted.", f.last())
}

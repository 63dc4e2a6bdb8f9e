package avatar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
)

func newAvatar() *avatar.Avatar {
	return avatar.New("you", geom.Tripoint{}, condition.NewRegistry(), inventory.NewInventory(20, 100))
}

func item(id string, weight float64, flags ...string) *inventory.Item {
	return inventory.New(&inventory.ItemDef{ID: id, Name: id, Weight: weight, Flags: flags})
}

func TestAvatar_SetPosMovesMount(t *testing.T) {
	u := newAvatar()
	u.Mount = creature.NewMonster("h", "horse", geom.Tripoint{}, 30, 10)
	u.SetPos(geom.Tripoint{X: 3})
	assert.Equal(t, geom.Tripoint{X: 3}, u.Mount.Pos())
}

func TestAvatar_Effects(t *testing.T) {
	u := newAvatar()
	u.AddEffect(condition.Stunned, 3)
	assert.True(t, u.HasEffect(condition.Stunned))
	u.RemoveEffect(condition.Stunned)
	assert.False(t, u.HasEffect(condition.Stunned))
}

func TestAvatar_ActiveMutations(t *testing.T) {
	u := newAvatar()
	assert.False(t, u.SetMutationActive(avatar.TraitShell2, true))
	u.SetTrait(avatar.TraitShell2, true)
	assert.False(t, u.HasActiveMutation(avatar.TraitShell2), "shell must be switched on")
	require.True(t, u.SetMutationActive(avatar.TraitShell2, true))
	assert.True(t, u.HasActiveMutation(avatar.TraitShell2))

	u.SetTrait(avatar.TraitGrazer, true)
	assert.True(t, u.HasActiveMutation(avatar.TraitGrazer), "passive traits are always active")
	u.SetTrait(avatar.TraitGrazer, false)
	assert.False(t, u.HasActiveMutation(avatar.TraitGrazer))
}

func TestAvatar_AutoMove(t *testing.T) {
	u := newAvatar()
	assert.False(t, u.IsAutoMoving())
	u.SetDestination([]geom.Tripoint{{X: 1}, {X: 2}})
	assert.True(t, u.IsAutoMoving())
	p, ok := u.NextDestination()
	require.True(t, ok)
	assert.Equal(t, geom.Tripoint{X: 1}, p)

	u.DeferMove(geom.Tripoint{X: 9})
	d, ok := u.DeferredMove()
	require.True(t, ok)
	assert.Equal(t, geom.Tripoint{X: 9}, d)

	u.ClearDestination()
	assert.False(t, u.IsAutoMoving())
	_, ok = u.DeferredMove()
	assert.False(t, ok)
}

func TestAvatar_Pause(t *testing.T) {
	u := newAvatar()
	u.Stamina = 100
	u.Moves = 40
	u.Pause()
	assert.Equal(t, 0, u.Moves)
	assert.Equal(t, 140, u.Stamina)
}

func TestAvatar_SwimSpeed(t *testing.T) {
	u := newAvatar()
	assert.Equal(t, 150, u.SwimSpeed())

	_, err := u.Inv.Add(item("anvil", 80))
	require.NoError(t, err)
	assert.Equal(t, 550, u.SwimSpeed())

	u.Worn = append(u.Worn, item(inventory.IDSwimFins, 0), item(inventory.IDSwimFins, 0))
	assert.Equal(t, 2, u.ShoeTypeCount(inventory.IDSwimFins))
	assert.Equal(t, 450, u.SwimSpeed())
}

func TestProperty_SwimSpeedBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := avatar.New("you", geom.Tripoint{}, condition.NewRegistry(), inventory.NewInventory(50, 1e6))
		n := rapid.IntRange(0, 10).Draw(t, "items")
		for i := 0; i < n; i++ {
			w := rapid.Float64Range(0, 100).Draw(t, "w")
			if _, err := u.Inv.Add(item("x", w)); err != nil {
				t.Fatal(err)
			}
		}
		u.Practice(avatar.SkillSwimming, rapid.IntRange(0, 10000).Draw(t, "practice"))
		u.Underwater = rapid.Bool().Draw(t, "underwater")
		s := u.SwimSpeed()
		if s < 20 || s > 1000 {
			t.Fatalf("swim speed %d out of bounds", s)
		}
	})
}

func TestAvatar_WieldAndHands(t *testing.T) {
	u := newAvatar()
	assert.Equal(t, 2, u.UsableHands())

	knife := item("knife", 0.3)
	_, err := u.Inv.Add(knife)
	require.NoError(t, err)
	require.True(t, u.Wield(knife))
	assert.True(t, u.IsWielding(knife))
	assert.False(t, u.Inv.Has(knife))
	assert.Equal(t, 1, u.UsableHands())

	sledge := item("sledge", 9)
	_, err = u.Inv.Add(sledge)
	require.NoError(t, err)
	require.True(t, u.Wield(sledge))
	assert.True(t, u.Inv.Has(knife), "old weapon stowed")
	assert.Equal(t, 0, u.UsableHands())
}

func TestAvatar_WieldRefusedWithBodyWeapon(t *testing.T) {
	u := newAvatar()
	u.Weapon = item("claws", 0, inventory.FlagNoUnwield)
	other := item("rock", 1)
	_, err := u.Inv.Add(other)
	require.NoError(t, err)
	assert.False(t, u.Wield(other))
	assert.Equal(t, "claws", u.Weapon.TypeID())
}

func TestAvatar_ThrowRange(t *testing.T) {
	u := newAvatar()
	rock := item("rock", 1)
	assert.Equal(t, -1, u.ThrowRange(rock))
	_, err := u.Inv.Add(rock)
	require.NoError(t, err)
	assert.Equal(t, 8, u.ThrowRange(rock))

	boulder := item("boulder", 40)
	_, err = u.Inv.Add(boulder)
	require.NoError(t, err)
	assert.Equal(t, 0, u.ThrowRange(boulder))
}

func TestAvatar_CanTakeOff(t *testing.T) {
	u := newAvatar()
	vest := item("vest", 1)
	assert.Error(t, u.CanTakeOff(vest))
	u.Worn = append(u.Worn, vest)
	assert.NoError(t, u.CanTakeOff(vest))
	require.NoError(t, u.TakeOff(vest))
	assert.False(t, u.IsWearing("vest"))
	assert.True(t, u.Inv.Has(vest))

	skin := item("skin", 0, avatar.FlagNoTakeoff)
	u.Worn = append(u.Worn, skin)
	assert.Error(t, u.CanTakeOff(skin))
}

func TestAvatar_RemoveItemAndLocation(t *testing.T) {
	u := newAvatar()
	rock := item("rock", 1)
	_, err := u.Inv.Add(rock)
	require.NoError(t, err)
	loc := u.ItemLocation(rock)
	assert.Equal(t, inventory.Character, loc.Where())
	require.NoError(t, loc.Remove())
	assert.False(t, u.HasItem(rock))
}

func TestAvatar_DrenchAndRust(t *testing.T) {
	u := newAvatar()
	u.Drench(150, []avatar.BodyPart{avatar.Torso, avatar.LegL})
	assert.Equal(t, 100, u.Wetness(avatar.Torso))
	u.Drench(50, []avatar.BodyPart{avatar.Torso})
	assert.Equal(t, 100, u.Wetness(avatar.Torso))
	assert.Equal(t, 0, u.Wetness(avatar.Head))
	assert.Equal(t, "left leg", avatar.LegL.String())

	pipe := item("pipe", 1, inventory.FlagIron)
	_, err := u.Inv.Add(pipe)
	require.NoError(t, err)
	u.RustIronItems()
	assert.True(t, pipe.Rusted)
}

func TestAvatar_BurnMoveStamina(t *testing.T) {
	u := newAvatar()
	u.Stamina = 1000
	u.BurnMoveStamina(100)
	assert.Equal(t, 900, u.Stamina)
	u.Mode = avatar.Run
	u.BurnMoveStamina(200)
	assert.Equal(t, 0, u.Stamina)
}

func TestAvatar_EatAndActivity(t *testing.T) {
	u := newAvatar()
	before := u.StoredKcal
	assert.False(t, u.Eat(item("rock", 1)))
	food := inventory.New(&inventory.ItemDef{ID: "apple", Name: "apple", Comestible: &inventory.ComestibleDef{Kcal: 95}})
	assert.True(t, u.Eat(food))
	assert.Equal(t, before+95, u.StoredKcal)

	u.AssignActivity(avatar.Activity{Kind: avatar.ActivityAimWielded})
	require.NotNil(t, u.Activity)
	u.CancelActivity()
	assert.Nil(t, u.Activity)
}

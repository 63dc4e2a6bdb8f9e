package creature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/underbrush/internal/game/condition"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
)

var (
	_ creature.Creature = (*creature.Monster)(nil)
	_ creature.Creature = (*creature.NPC)(nil)
)

func TestMonster_Basics(t *testing.T) {
	m := creature.NewMonster("m1", "zombie", geom.Tripoint{X: 1}, 10, 12)
	assert.False(t, m.IsNPC())
	assert.Equal(t, "zombie", m.Name())
	assert.Equal(t, 12, m.Defense())
	assert.Equal(t, "unharmed", m.HealthDescription())

	m.TakeDamage(7)
	assert.Equal(t, "heavily wounded", m.HealthDescription())
	m.Die()
	assert.True(t, m.IsDead())
	assert.Equal(t, "dead", m.HealthDescription())
}

func TestMonster_Effects(t *testing.T) {
	m := creature.NewMonster("m1", "horse", geom.Tripoint{}, 10, 10)
	require.NoError(t, m.Effects.Apply(condition.NewRegistry().Lookup(condition.Ridden), 1, -1))
	assert.True(t, m.HasEffect(condition.Ridden))
	m.RemoveEffect(condition.Ridden)
	assert.False(t, m.HasEffect(condition.Ridden))
}

func TestMonster_CheckMechPowered(t *testing.T) {
	m := creature.NewMonster("m1", "mech", geom.Tripoint{}, 10, 10)
	assert.True(t, m.CheckMechPowered())
	m.Flags = []string{creature.FlagRideableMech}
	assert.False(t, m.CheckMechPowered())
	m.Battery = 5
	assert.True(t, m.CheckMechPowered())
}

func TestNPC_Attitude(t *testing.T) {
	n := creature.NewNPC("n1", "Ahmed", geom.Tripoint{}, 20, 10)
	assert.True(t, n.IsNPC())
	assert.False(t, n.IsEnemy())
	n.MakeAngry()
	assert.True(t, n.IsEnemy())
	assert.Equal(t, creature.AttitudeFriend, creature.ParseAttitude("friend"))
	assert.Equal(t, creature.AttitudeNeutral, creature.ParseAttitude("bored"))
}

func TestNPC_WeaponValue(t *testing.T) {
	n := creature.NewNPC("n1", "Ahmed", geom.Tripoint{}, 20, 10)
	assert.Equal(t, 0, n.WeaponValue())
	n.Weapon = inventory.New(&inventory.ItemDef{ID: "knife", Name: "knife", Value: 30})
	assert.Equal(t, 30, n.WeaponValue())
}

func TestParseSize(t *testing.T) {
	assert.Equal(t, creature.SizeHuge, creature.ParseSize("huge"))
	assert.Equal(t, creature.SizeMedium, creature.ParseSize(""))
}

func TestProperty_TakeDamage_NeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hp := rapid.IntRange(1, 100).Draw(t, "hp")
		m := creature.NewMonster("m", "m", geom.Tripoint{}, hp, 10)
		hits := rapid.SliceOf(rapid.IntRange(0, 50)).Draw(t, "hits")
		for _, h := range hits {
			m.TakeDamage(h)
		}
		if m.CurrentHP < 0 {
			t.Fatalf("hp went negative: %d", m.CurrentHP)
		}
	})
}

// Package rules provides the default subsystems the action dispatcher hands
// off to: melee resolution, gun checks, throwing, eating, item use through
// scripts, unloading and mending.
package rules

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/creature"
	"github.com/cory-johannsen/underbrush/internal/game/dice"
	"github.com/cory-johannsen/underbrush/internal/game/geom"
	"github.com/cory-johannsen/underbrush/internal/game/inventory"
	"github.com/cory-johannsen/underbrush/internal/game/message"
	"github.com/cory-johannsen/underbrush/internal/scripting"
)

// Move costs.
const (
	costAttack = 100
	costThrow  = 100
	costEat    = 250
	costUnload = 100
	costMend   = 100
)

// Critters gives the rules access to the creatures on the map.
type Critters interface {
	CritterAt(p geom.Tripoint) creature.Creature
	Creatures() []creature.Creature
}

// Scripts runs item-use methods.
type Scripts interface {
	Invoke(method string, uc scripting.UseContext) (int, error)
}

// Rules is the default implementation of the dispatcher's rules.
type Rules struct {
	critters Critters
	scripts  Scripts
	dice     *dice.Roller
	log      *message.Log
	logger   *zap.Logger

	// crafting caches the items available for crafting; nil when stale.
	crafting []*inventory.Item
}

// New creates Rules.
//
// Precondition: every argument is non-nil.
func New(critters Critters, scripts Scripts, roller *dice.Roller, log *message.Log, logger *zap.Logger) *Rules {
	return &Rules{
		critters: critters,
		scripts:  scripts,
		dice:     roller,
		log:      log,
		logger:   logger,
	}
}

// CraftingInventory returns the items the avatar can craft with, rebuilding
// the cache when it has been invalidated.
func (r *Rules) CraftingInventory(u *avatar.Avatar) []*inventory.Item {
	if r.crafting != nil {
		return r.crafting
	}
	items := make([]*inventory.Item, 0, u.Inv.Len()+1+len(u.Worn))
	if u.Weapon != nil {
		items = append(items, u.Weapon)
	}
	items = append(items, u.Worn...)
	items = append(items, u.Inv.Items()...)
	r.crafting = items
	return items
}

// InvalidateCraftingInventory drops the cached crafting inventory.
func (r *Rules) InvalidateCraftingInventory(u *avatar.Avatar) {
	r.crafting = nil
	r.logger.Debug("crafting inventory invalidated", zap.String("avatar", u.Name))
}

package action

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/underbrush/internal/game/avatar"
	"github.com/cory-johannsen/underbrush/internal/game/vehicle"
)

// handlePotentialTheft decides whether the avatar may interact with v,
// following the avatar's THIEF_MODE preference.
//
// Postcondition: returns true when the interaction may proceed.
func (d *Dispatcher) handlePotentialTheft(u *avatar.Avatar, v *vehicle.Vehicle) bool {
	if v.IsOwnedBy(u.Faction) {
		return true
	}
	mode := u.Value(avatar.ValueThiefMode)
	d.logger.Debug("potential theft",
		zap.String("vehicle", v.Name),
		zap.String("owner", v.Owner),
		zap.String("mode", mode),
	)
	switch mode {
	case avatar.ThiefSteal:
		return true
	case avatar.ThiefHonest:
		return false
	default:
		return d.ui.QueryYN(d.log.Sprintf(
			"This vehicle belongs to: %s, there may be consequences if you are observed interacting with it, continue?",
			v.Owner))
	}
}

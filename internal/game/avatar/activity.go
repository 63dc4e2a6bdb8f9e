package avatar

import "github.com/cory-johannsen/underbrush/internal/game/inventory"

// Activity kinds.
const (
	ActivityAimWielded  = "aim_wielded"
	ActivityAimMutation = "aim_mutation"
	ActivityAimBionic   = "aim_bionic"
)

// Activity is a multi-turn task the avatar is engaged in.
type Activity struct {
	Kind string
	// FakeGun is the weapon a mutation or bionic fires.
	FakeGun *inventory.Item
	// EnergyPerShot is the bionic power drawn per shot, in kJ.
	EnergyPerShot int
}

// AssignActivity starts act, replacing any current activity.
func (a *Avatar) AssignActivity(act Activity) {
	a.Activity = &act
}

// CancelActivity abandons the current activity.
func (a *Avatar) CancelActivity() {
	a.Activity = nil
}

package avatar

// BodyPart identifies a part of the avatar's body.
type BodyPart int

const (
	Torso BodyPart = iota
	Head
	Eyes
	Mouth
	ArmL
	ArmR
	HandL
	HandR
	LegL
	LegR
	FootL
	FootR
)

var bodyPartNames = [...]string{
	Torso: "torso",
	Head:  "head",
	Eyes:  "eyes",
	Mouth: "mouth",
	ArmL:  "left arm",
	ArmR:  "right arm",
	HandL: "left hand",
	HandR: "right hand",
	LegL:  "left leg",
	LegR:  "right leg",
	FootL: "left foot",
	FootR: "right foot",
}

// String returns the body part's name.
func (b BodyPart) String() string {
	if int(b) < len(bodyPartNames) {
		return bodyPartNames[b]
	}
	return "unknown"
}

// Drench soaks parts to at least percent wetness.
//
// Postcondition: Wetness(p) >= percent for every p in parts, capped at 100.
func (a *Avatar) Drench(percent int, parts []BodyPart) {
	percent = min(max(percent, 0), 100)
	for _, p := range parts {
		if a.drenched[p] < percent {
			a.drenched[p] = percent
		}
	}
}

// Wetness returns how soaked part p is, 0..100.
func (a *Avatar) Wetness(p BodyPart) int { return a.drenched[p] }

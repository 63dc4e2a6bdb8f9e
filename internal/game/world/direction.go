package world

import "github.com/cory-johannsen/underbrush/internal/game/geom"

// Direction is one of the eight compass steps or a vertical step.
type Direction string

// Compass and vertical steps.
const (
	North     Direction = "north"
	South     Direction = "south"
	East      Direction = "east"
	West      Direction = "west"
	Northeast Direction = "northeast"
	Northwest Direction = "northwest"
	Southeast Direction = "southeast"
	Southwest Direction = "southwest"
	Up        Direction = "up"
	Down      Direction = "down"
)

// StandardDirections lists every Direction in menu order.
var StandardDirections = []Direction{
	North, South, East, West,
	Northeast, Northwest, Southeast, Southwest,
	Up, Down,
}

// North is -y; up is +z.
var stepOffsets = map[Direction]geom.Tripoint{
	North:     {Y: -1},
	South:     {Y: 1},
	East:      {X: 1},
	West:      {X: -1},
	Northeast: {X: 1, Y: -1},
	Northwest: {X: -1, Y: -1},
	Southeast: {X: 1, Y: 1},
	Southwest: {X: -1, Y: 1},
	Up:        {Z: 1},
	Down:      {Z: -1},
}

// IsStandard reports whether d is one of StandardDirections.
func (d Direction) IsStandard() bool {
	_, ok := stepOffsets[d]
	return ok
}

// Offset returns the displacement of one step in d, or the zero Tripoint
// for an unknown direction.
func (d Direction) Offset() geom.Tripoint { return stepOffsets[d] }

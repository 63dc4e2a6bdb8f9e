// Package geom provides the integer grid coordinates used by the map and
// the avatar action rules.
package geom

import "fmt"

// Point is a position on a single z-level.
type Point struct {
	X int
	Y int
}

// Tripoint is a position in the three-dimensional map.
type Tripoint struct {
	X int
	Y int
	Z int
}

// Add returns p + o.
func (p Tripoint) Add(o Tripoint) Tripoint {
	return Tripoint{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Sub returns p - o.
func (p Tripoint) Sub(o Tripoint) Tripoint {
	return Tripoint{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// XY drops the z component.
func (p Tripoint) XY() Point {
	return Point{X: p.X, Y: p.Y}
}

// WithZ returns p moved to level z.
func (p Tripoint) WithZ(z int) Tripoint {
	return Tripoint{X: p.X, Y: p.Y, Z: z}
}

// String formats p as "(x,y,z)".
func (p Tripoint) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Lift returns the point at level z.
func (p Point) Lift(z int) Tripoint {
	return Tripoint{X: p.X, Y: p.Y, Z: z}
}

// Dist returns the roguelike distance between a and b: the largest absolute
// difference along any axis.
//
// Postcondition: Dist(a, b) == Dist(b, a) and Dist(a, a) == 0.
func Dist(a, b Tripoint) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y), abs(a.Z-b.Z))
}

// IsDiagonal reports whether moving from a to b changes both x and y.
func IsDiagonal(a, b Tripoint) bool {
	return a.X != b.X && a.Y != b.Y
}

// PointsInRadius returns every point on c's level within square radius r of
// c, including c itself, in row-major order.
//
// Precondition: r >= 0.
// Postcondition: len(result) == (2r+1)^2.
func PointsInRadius(c Tripoint, r int) []Tripoint {
	out := make([]Tripoint, 0, (2*r+1)*(2*r+1))
	for y := c.Y - r; y <= c.Y+r; y++ {
		for x := c.X - r; x <= c.X+r; x++ {
			out = append(out, Tripoint{X: x, Y: y, Z: c.Z})
		}
	}
	return out
}

// PointsInRectangle returns every point in the inclusive rectangle spanned by
// lo and hi on lo's level.
//
// Precondition: lo.X <= hi.X and lo.Y <= hi.Y.
func PointsInRectangle(lo, hi Tripoint) []Tripoint {
	if hi.X < lo.X || hi.Y < lo.Y {
		return nil
	}
	out := make([]Tripoint, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1))
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			out = append(out, Tripoint{X: x, Y: y, Z: lo.Z})
		}
	}
	return out
}

// Line returns the Bresenham line from a to b on a's level, excluding a and
// including b.
//
// Postcondition: len(result) == Dist(a.XY, b.XY); the last point is b on a's level.
func Line(a, b Tripoint) []Tripoint {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	out := make([]Tripoint, 0, max(dx, -dy))
	x, y, e := a.X, a.Y, dx+dy
	for x != b.X || y != b.Y {
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
		out = append(out, Tripoint{X: x, Y: y, Z: a.Z})
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/underbrush/internal/game/geom"
)

func drawTripoint(t *rapid.T, label string) geom.Tripoint {
	return geom.Tripoint{
		X: rapid.IntRange(-500, 500).Draw(t, label+"_x"),
		Y: rapid.IntRange(-500, 500).Draw(t, label+"_y"),
		Z: rapid.IntRange(-10, 10).Draw(t, label+"_z"),
	}
}

func TestDist_Examples(t *testing.T) {
	a := geom.Tripoint{X: 0, Y: 0, Z: 0}
	assert.Equal(t, 0, geom.Dist(a, a))
	assert.Equal(t, 1, geom.Dist(a, geom.Tripoint{X: 1, Y: 1, Z: 0}))
	assert.Equal(t, 5, geom.Dist(a, geom.Tripoint{X: -5, Y: 2, Z: 1}))
}

func TestDist_MetricProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawTripoint(rt, "a")
		b := drawTripoint(rt, "b")
		c := drawTripoint(rt, "c")
		assert.Equal(rt, geom.Dist(a, b), geom.Dist(b, a))
		assert.GreaterOrEqual(rt, geom.Dist(a, b), 0)
		assert.LessOrEqual(rt, geom.Dist(a, c), geom.Dist(a, b)+geom.Dist(b, c))
	})
}

func TestTripoint_AddSubRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawTripoint(rt, "a")
		d := drawTripoint(rt, "d")
		assert.Equal(rt, a, a.Add(d).Sub(d))
	})
}

func TestPointsInRadius_CountAndBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := drawTripoint(rt, "c")
		r := rapid.IntRange(0, 4).Draw(rt, "r")
		pts := geom.PointsInRadius(c, r)
		assert.Len(rt, pts, (2*r+1)*(2*r+1))
		for _, p := range pts {
			assert.LessOrEqual(rt, geom.Dist(c, p), r)
			assert.Equal(rt, c.Z, p.Z)
		}
	})
}

func TestPointsInRectangle(t *testing.T) {
	pts := geom.PointsInRectangle(geom.Tripoint{X: 1, Y: 1, Z: 2}, geom.Tripoint{X: 2, Y: 3, Z: 9})
	assert.Len(t, pts, 6)
	for _, p := range pts {
		assert.Equal(t, 2, p.Z)
	}
	assert.Nil(t, geom.PointsInRectangle(geom.Tripoint{X: 3}, geom.Tripoint{X: 1}))
}

func TestIsDiagonal(t *testing.T) {
	o := geom.Tripoint{}
	assert.True(t, geom.IsDiagonal(o, geom.Tripoint{X: 1, Y: -1}))
	assert.False(t, geom.IsDiagonal(o, geom.Tripoint{X: 1}))
	assert.False(t, geom.IsDiagonal(o, geom.Tripoint{Y: 1, Z: 1}))
}

func TestLine_Straight(t *testing.T) {
	a := geom.Tripoint{X: 1, Y: 1, Z: 0}
	assert.Equal(t, []geom.Tripoint{{X: 2, Y: 1}, {X: 3, Y: 1}}, geom.Line(a, geom.Tripoint{X: 3, Y: 1}))
	assert.Empty(t, geom.Line(a, a))
}

func TestProperty_LineSteps(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := drawTripoint(rt, "a")
		b := drawTripoint(rt, "b").WithZ(a.Z)
		line := geom.Line(a, b)
		assert.Len(rt, line, geom.Dist(a, b))
		prev := a
		for _, p := range line {
			assert.Equal(rt, 1, geom.Dist(prev, p))
			prev = p
		}
		if len(line) > 0 {
			assert.Equal(rt, b, line[len(line)-1])
		}
	})
}

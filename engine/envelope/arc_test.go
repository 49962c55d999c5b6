package envelope

import (
	"math"
	"testing"

	"github.com/npillmayer/glyphpath/core/path"
	"github.com/stretchr/testify/assert"
)

func TestZeroAngleIsIdentity(t *testing.T) {
	arc := Arc{Angle: 0, TextWidth: 300, CenterX: 150, CenterY: 40}
	for _, pt := range [][2]float64{{0, 0}, {-150, 12.5}, {150, -80}, {1e4, 3}} {
		x, y, rot := arc.TransformPoint(pt[0], pt[1])
		assert.Equal(t, 150+pt[0], x)
		assert.Equal(t, 40+pt[1], y)
		assert.Equal(t, 0.0, rot)
	}
	var p path.Path
	p.MoveTo(10, 20)
	p.CubicTo(1, 2, 3, 4, 5, 6)
	p.ClosePath()
	assert.Equal(t, p, arc.Apply(p))
}

func TestRadius(t *testing.T) {
	arc := Arc{Angle: 180, TextWidth: 200}
	assert.InDelta(t, 100, arc.Radius(), 1e-9) // chord over a half circle
	small := Arc{Angle: 5, TextWidth: 200}
	assert.InDelta(t, 200/(5*math.Pi/180), small.Radius(), 1e-9)
	assert.Equal(t, 0.0, Arc{TextWidth: 10}.Radius())
	assert.Equal(t, arc.Radius(), Arc{Angle: -180, TextWidth: 200}.Radius())
}

func TestUpwardAndDownwardArcs(t *testing.T) {
	up := Arc{Angle: 90, TextWidth: 100, CenterX: 0, CenterY: 0}
	down := up
	down.Angle = -90
	// the center stays in place
	x, y, rot := up.TransformPoint(0, 0)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
	assert.InDelta(t, 0, rot, 1e-9)
	// the ends bend up (negative y) for upward arcs
	r := up.Radius()
	x, y, rot = up.TransformPoint(50, 0)
	pa := 0.5 * math.Pi / 2
	assert.InDelta(t, r*math.Sin(pa), x, 1e-9)
	assert.InDelta(t, -r*(1-math.Cos(pa)), y, 1e-9)
	assert.InDelta(t, 45, rot, 1e-9)
	x2, y2, rot2 := down.TransformPoint(50, 0)
	assert.InDelta(t, x, x2, 1e-9)
	assert.InDelta(t, -y, y2, 1e-9)
	assert.InDelta(t, -45, rot2, 1e-9)
	// symmetric around the center
	xl, yl, rotl := up.TransformPoint(-50, 0)
	assert.InDelta(t, -x, xl, 1e-9)
	assert.InDelta(t, y, yl, 1e-9)
	assert.InDelta(t, -45, rotl, 1e-9)
	// offsets perpendicular to the baseline are kept
	_, y3, _ := up.TransformPoint(50, -10)
	assert.InDelta(t, y-10, y3, 1e-9)
}

func TestApplyMapsControlPoints(t *testing.T) {
	arc := Arc{Angle: 60, TextWidth: 200, CenterX: 100, CenterY: 50}
	var p path.Path
	p.MoveTo(0, 50)
	p.QuadTo(100, 50, 200, 50)
	p.ClosePath()
	q := arc.Apply(p)
	assert.Len(t, q, 3)
	assert.InDelta(t, 100, q[1].X1, 1e-9) // center maps to itself
	assert.InDelta(t, 50, q[1].Y1, 1e-9)
	assert.Less(t, q[0].Y, 50.0)
	assert.InDelta(t, q[0].Y, q[1].Y, 1e-9)
	assert.InDelta(t, 200-q[0].X, q[1].X, 1e-9)
	assert.Equal(t, path.Close, q[2].Op)
}

func TestOffCenterArc(t *testing.T) {
	// text spans 0…100, but the center is moved to x=200
	arc := Arc{Angle: 90, TextWidth: 100, CenterX: 200, CenterY: 0}
	var p path.Path
	p.MoveTo(150, 0)
	p.LineTo(100, 0)
	q := arc.Apply(p)
	r := arc.Radius()
	// 50 left of the center is the end of the arc, at -45°
	x, y, rot := arc.TransformPoint(-50, 0)
	assert.InDelta(t, -45, rot, 1e-9)
	assert.InDelta(t, x, q[0].X, 1e-9)
	assert.InDelta(t, y, q[0].Y, 1e-9)
	// the start of the text lies beyond the arc's span
	_, _, rot = arc.TransformPoint(-100, 0)
	assert.InDelta(t, -90, rot, 1e-9)
	assert.InDelta(t, 200-r, q[1].X, 1e-9)
	assert.InDelta(t, -r, q[1].Y, 1e-9)
}

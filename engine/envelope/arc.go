/*
Package envelope remaps path geometry onto curved baselines.

The only envelope currently available is a circular arc. Every endpoint and
every control point of a path is mapped independently. This does not preserve
the arc length or tangent continuity of curves; for strongly bent text curve
segments will deviate visibly from an exact remapping.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package envelope

import (
	"math"

	"github.com/npillmayer/glyphpath/core/path"
)

// smallAngle is the threshold (in radians) below which the radius is derived
// from the arc length instead of the chord.
const smallAngle = 0.1

// Arc bends a text of width TextWidth along a circular arc spanning Angle
// degrees. Positive angles bow upward, negative angles downward.
// (CenterX, CenterY) is the point the middle of the text is mapped to.
//
// Horizontal positions are measured from CenterX, not from the start of the
// text: a point at distance d from CenterX is placed at d/TextWidth of the
// arc's angle. With the center in the middle of the text, the text spans
// exactly Angle. A center moved away from the middle shifts the whole
// mapping, and points farther than TextWidth/2 from it end up beyond
// ±Angle/2.
type Arc struct {
	Angle     float64
	TextWidth float64
	CenterX   float64
	CenterY   float64
}

func (a Arc) theta() float64 {
	return a.Angle * math.Pi / 180
}

// Radius of the arc. Zero for a straight (angle 0) arc.
func (a Arc) Radius() float64 {
	t := math.Abs(a.theta())
	switch {
	case t == 0:
		return 0
	case t < smallAngle:
		return a.TextWidth / t
	}
	return a.TextWidth / (2 * math.Sin(t/2))
}

// TransformPoint maps a point given relative to the arc center. It returns
// the absolute point and the rotation of the text at that point in degrees.
func (a Arc) TransformPoint(x, y float64) (tx, ty, rotation float64) {
	theta := a.theta()
	if theta == 0 || a.TextWidth == 0 {
		return a.CenterX + x, a.CenterY + y, 0
	}
	r := a.Radius()
	pa := x / a.TextWidth * math.Abs(theta)
	tx = a.CenterX + r*math.Sin(pa)
	rotation = pa * 180 / math.Pi
	if theta > 0 {
		ty = a.CenterY - r*(1-math.Cos(pa)) + y
	} else {
		ty = a.CenterY + r*(1-math.Cos(pa)) + y
		rotation = -rotation
	}
	return tx, ty, rotation
}

// Apply maps every point of p, given in absolute coordinates, onto the arc.
// Points are taken relative to (CenterX, CenterY) before mapping.
func (a Arc) Apply(p path.Path) path.Path {
	return p.Map(func(x, y float64) (float64, float64) {
		tx, ty, _ := a.TransformPoint(x-a.CenterX, y-a.CenterY)
		return tx, ty
	})
}

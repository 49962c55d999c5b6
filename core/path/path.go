package path

import (
	"math"
	"strconv"
	"strings"
)

// Op is the type of a path command.
type Op uint8

// Path operations
const (
	MoveTo Op = iota
	LineTo
	QuadTo
	CubicTo
	Arc
	Close
)

func (op Op) String() string {
	switch op {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case QuadTo:
		return "QuadTo"
	case CubicTo:
		return "CubicTo"
	case Arc:
		return "Arc"
	case Close:
		return "Close"
	}
	return "Unknown"
}

// letter returns the SVG path data command letter for an operation.
func (op Op) letter() byte {
	switch op {
	case MoveTo:
		return 'M'
	case LineTo:
		return 'L'
	case QuadTo:
		return 'Q'
	case CubicTo:
		return 'C'
	case Arc:
		return 'A'
	}
	return 'Z'
}

// Command is a single path instruction.
//
//   MoveTo, LineTo:  X, Y
//   QuadTo:          X1, Y1 (control), X, Y
//   CubicTo:         X1, Y1, X2, Y2 (controls), X, Y
//   Arc:             Rx, Ry, Rotation, LargeArc, Sweep, X, Y
//   Close:           no coordinates
type Command struct {
	Op       Op
	X, Y     float64
	X1, Y1   float64
	X2, Y2   float64
	Rx, Ry   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
}

// Points returns the number of coordinate pairs a command carries, including
// control points.
func (c Command) Points() int {
	switch c.Op {
	case MoveTo, LineTo, Arc:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	}
	return 0
}

// Path is a sequence of path commands.
type Path []Command

// MoveTo appends a move command.
func (p *Path) MoveTo(x, y float64) {
	*p = append(*p, Command{Op: MoveTo, X: x, Y: y})
}

// LineTo appends a straight line.
func (p *Path) LineTo(x, y float64) {
	*p = append(*p, Command{Op: LineTo, X: x, Y: y})
}

// QuadTo appends a quadratic Bézier segment.
func (p *Path) QuadTo(x1, y1, x, y float64) {
	*p = append(*p, Command{Op: QuadTo, X1: x1, Y1: y1, X: x, Y: y})
}

// CubicTo appends a cubic Bézier segment.
func (p *Path) CubicTo(x1, y1, x2, y2, x, y float64) {
	*p = append(*p, Command{Op: CubicTo, X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
}

// ArcTo appends an elliptical arc segment.
func (p *Path) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) {
	*p = append(*p, Command{Op: Arc, Rx: rx, Ry: ry, Rotation: rotation,
		LargeArc: largeArc, Sweep: sweep, X: x, Y: y})
}

// ClosePath appends a close command.
func (p *Path) ClosePath() {
	*p = append(*p, Command{Op: Close})
}

// Append concatenates paths.
func (p *Path) Append(q Path) {
	*p = append(*p, q...)
}

// Map returns a copy of p with f applied to every endpoint and every control
// point. Arc radii and flags are left untouched.
func (p Path) Map(f func(x, y float64) (float64, float64)) Path {
	if p == nil {
		return nil
	}
	q := make(Path, len(p))
	for i, c := range p {
		switch c.Op {
		case CubicTo:
			c.X2, c.Y2 = f(c.X2, c.Y2)
			fallthrough
		case QuadTo:
			c.X1, c.Y1 = f(c.X1, c.Y1)
			fallthrough
		case MoveTo, LineTo, Arc:
			c.X, c.Y = f(c.X, c.Y)
		}
		q[i] = c
	}
	return q
}

// Translate returns a copy of p shifted by (dx, dy).
func (p Path) Translate(dx, dy float64) Path {
	return p.Map(func(x, y float64) (float64, float64) {
		return x + dx, y + dy
	})
}

// --- Bounding box ----------------------------------------------------------

// Box is an axis-aligned rectangle, (X1,Y1) being the top left corner.
type Box struct {
	X1, Y1, X2, Y2 float64
}

// Width of the box.
func (b Box) Width() float64 { return b.X2 - b.X1 }

// Height of the box.
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// Pad returns a box enlarged by d on every side.
func (b Box) Pad(d float64) Box {
	return Box{X1: b.X1 - d, Y1: b.Y1 - d, X2: b.X2 + d, Y2: b.Y2 + d}
}

// BoundingBox returns the box spanned by all endpoints and control points of
// a path. The empty path has the zero box.
func (p Path) BoundingBox() Box {
	var box Box
	first := true
	extend := func(x, y float64) {
		if first {
			box = Box{X1: x, Y1: y, X2: x, Y2: y}
			first = false
			return
		}
		box.X1 = math.Min(box.X1, x)
		box.Y1 = math.Min(box.Y1, y)
		box.X2 = math.Max(box.X2, x)
		box.Y2 = math.Max(box.Y2, y)
	}
	for _, c := range p {
		switch c.Op {
		case CubicTo:
			extend(c.X2, c.Y2)
			fallthrough
		case QuadTo:
			extend(c.X1, c.Y1)
			fallthrough
		case MoveTo, LineTo, Arc:
			extend(c.X, c.Y)
		}
	}
	return box
}

// --- Serialization ---------------------------------------------------------

// Data returns the path as SVG path data, e.g. "M10 20L30.50 -4Z".
// Coordinates are rounded to two decimals; integral values are written
// without decimals.
func (p Path) Data() string {
	var b strings.Builder
	for _, c := range p {
		b.WriteByte(c.Op.letter())
		switch c.Op {
		case MoveTo, LineTo:
			writeNumbers(&b, c.X, c.Y)
		case QuadTo:
			writeNumbers(&b, c.X1, c.Y1, c.X, c.Y)
		case CubicTo:
			writeNumbers(&b, c.X1, c.Y1, c.X2, c.Y2, c.X, c.Y)
		case Arc:
			writeNumbers(&b, c.Rx, c.Ry, c.Rotation, flag(c.LargeArc), flag(c.Sweep), c.X, c.Y)
		}
	}
	return b.String()
}

func (p Path) String() string {
	return p.Data()
}

func flag(f bool) float64 {
	if f {
		return 1
	}
	return 0
}

func writeNumbers(b *strings.Builder, v ...float64) {
	for i, n := range v {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatNumber(n))
	}
}

// FormatNumber rounds n to two decimals. Integral results are formatted
// without a fractional part, and negative zero is written as "0".
func FormatNumber(n float64) string {
	r := math.Round(n*100) / 100
	if r == 0 {
		return "0"
	}
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}

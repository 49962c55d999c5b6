/*
Package glyphing turns text into positioned glyph outlines.

The synthesizer first computes the metrics of a text (see package layout)
and then places the glyph outlines accordingly. Horizontal text is set on the
baselines of its lines. Vertical text is set glyph by glyph from top to bottom,
every glyph centered in its column and top-aligned under a running cursor.

For left aligned multi-line text, lines are shifted by the differences of the
left side bearings of their first glyphs, so that they appear flush-left.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"math"

	"github.com/npillmayer/glyphpath/core/font"
	"github.com/npillmayer/glyphpath/core/path"
	"github.com/npillmayer/glyphpath/engine/envelope"
	"github.com/npillmayer/glyphpath/engine/layout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpath.glyphing'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpath.glyphing")
}

// Synthesizer creates glyph paths for texts set in a font.
type Synthesizer struct {
	font font.Asset
	calc *layout.Calculator
}

// NewSynthesizer creates a synthesizer for font f.
func NewSynthesizer(f font.Asset) *Synthesizer {
	return &Synthesizer{font: f, calc: layout.NewCalculator(f)}
}

// Calculator returns the metrics calculator used by the synthesizer.
func (s *Synthesizer) Calculator() *layout.Calculator {
	return s.calc
}

// Path returns the outlines of text together with the text's metrics.
func (s *Synthesizer) Path(text string, opts layout.Resolved) (path.Path, layout.TextMetrics, error) {
	lines := layout.SplitLines(text)
	switch {
	case len(lines) > 1 && opts.IsVertical():
		return s.multiVertical(lines, opts)
	case len(lines) > 1:
		return s.multiHorizontal(lines, opts)
	case opts.IsVertical():
		return s.vertical(text, opts)
	}
	return s.horizontal(text, opts)
}

func (s *Synthesizer) horizontal(text string, opts layout.Resolved) (path.Path, layout.TextMetrics, error) {
	m, err := s.calc.Horizontal(text, opts)
	if err != nil {
		return nil, m, err
	}
	p := font.OutlinePath(s.font, text, m.X, m.Baseline, opts.FontSize, opts.RunOptions())
	return bend(p, opts, m.Width, m.X, m.Baseline), m, nil
}

func (s *Synthesizer) multiHorizontal(lines []string, opts layout.Resolved) (path.Path, layout.TextMetrics, error) {
	m, err := s.calc.MultiHorizontal(lines, opts)
	if err != nil {
		return nil, m, err
	}
	shift := make([]float64, len(m.Lines))
	if opts.TextAlign == layout.AlignLeft {
		shift = s.leftEdgeCompensation(m.Lines, opts)
	}
	var p path.Path
	for i, line := range m.Lines {
		if layout.IsBlank(line.Text) {
			continue
		}
		x := line.X + shift[i]
		lp := font.OutlinePath(s.font, line.Text, x, line.Baseline, opts.FontSize, opts.RunOptions())
		p.Append(bend(lp, opts, line.Width, x, line.Baseline))
	}
	return p, m, nil
}

// leftEdgeCompensation returns the horizontal shift per line which makes
// the outlines of the lines' first glyphs start at a common left edge.
func (s *Synthesizer) leftEdgeCompensation(lines []layout.LineMetrics, opts layout.Resolved) []float64 {
	shift := make([]float64, len(lines))
	offsets := make([]float64, len(lines))
	least := math.Inf(1)
	for i, line := range lines {
		if layout.IsBlank(line.Text) {
			continue
		}
		glyphs := s.font.Glyphs(line.Text)
		offsets[i] = s.font.GlyphBounds(glyphs[0], opts.FontSize).X1
		least = math.Min(least, offsets[i])
	}
	for i, line := range lines {
		if !layout.IsBlank(line.Text) {
			shift[i] = -(offsets[i] - least)
		}
	}
	tracer().Debugf("left edge compensation = %v", shift)
	return shift
}

func (s *Synthesizer) vertical(text string, opts layout.Resolved) (path.Path, layout.TextMetrics, error) {
	m, err := s.calc.Vertical(text, opts)
	if err != nil {
		return nil, m, err
	}
	return s.column(text, opts.X, opts.Y, m.Width, opts), m, nil
}

func (s *Synthesizer) multiVertical(columns []string, opts layout.Resolved) (path.Path, layout.TextMetrics, error) {
	m, err := s.calc.MultiVertical(columns, opts)
	if err != nil {
		return nil, m, err
	}
	colOpts := opts.Column()
	var p path.Path
	for _, col := range m.Lines {
		if layout.IsBlank(col.Text) {
			continue
		}
		p.Append(s.column(col.Text, col.X, col.Y, col.Width, colOpts))
	}
	return p, m, nil
}

// column sets text top to bottom, starting at (x, y), every glyph centered
// in a column of the given width. Kerning does not apply.
func (s *Synthesizer) column(text string, x, y, width float64, opts layout.Resolved) path.Path {
	size := opts.FontSize
	spacing := opts.RunOptions().Spacing(size)
	cursor := y
	var p path.Path
	for _, g := range s.font.Glyphs(text) {
		if g.Rune > ' ' {
			box := s.font.GlyphBounds(g, size)
			gx := x + (width-box.Width())/2 - box.X1
			gy := cursor - box.Y1
			p.Append(s.font.GlyphOutline(g, gx, gy, size))
			cursor += box.Height() + layout.VerticalGap*size + spacing
		} else if s.font.AdvanceWidth(g) != 0 {
			cursor += layout.VerticalWhitespace * size
		}
	}
	return p
}

// ArcFor returns the arc envelope for a line of text of the given width,
// starting at x on a baseline. The arc's center defaults to the middle of
// the line on the baseline. ArcFor returns nil if opts request no arc.
func ArcFor(opts layout.Resolved, width, x, baseline float64) *envelope.Arc {
	a := opts.Arc()
	if a == nil {
		return nil
	}
	arc := &envelope.Arc{
		Angle:     a.Angle,
		TextWidth: width,
		CenterX:   x + width/2,
		CenterY:   baseline,
	}
	if a.CenterX != nil {
		arc.CenterX = *a.CenterX
	}
	if a.CenterY != nil {
		arc.CenterY = *a.CenterY
	}
	return arc
}

func bend(p path.Path, opts layout.Resolved, width, x, baseline float64) path.Path {
	if arc := ArcFor(opts, width, x, baseline); arc != nil {
		tracer().Debugf("bending line along arc of %.1f°, radius %.2f", arc.Angle, arc.Radius())
		return arc.Apply(p)
	}
	return p
}

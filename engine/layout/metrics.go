package layout

import (
	"math"
	"strings"

	"github.com/npillmayer/glyphpath/core/font"
)

// LineMetrics are the metrics of a single line of horizontal text or of a
// single column of vertical text.
type LineMetrics struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Baseline  float64 `json:"baseline"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Ascender  float64 `json:"ascender"`
	Descender float64 `json:"descender"`
}

// TextMetrics are the metrics of a text block. (X, Y) is the top left
// corner of the block. Lines is set for texts with more than one line only.
type TextMetrics struct {
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	Baseline  float64       `json:"baseline"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Ascender  float64       `json:"ascender"`  // of the first line
	Descender float64       `json:"descender"` // of the last line
	Lines     []LineMetrics `json:"lines,omitempty"`
}

// Line returns single-line metrics as LineMetrics.
func (m TextMetrics) Line(text string) LineMetrics {
	return LineMetrics{
		Text: text, X: m.X, Y: m.Y, Baseline: m.Baseline,
		Width: m.Width, Height: m.Height,
		Ascender: m.Ascender, Descender: m.Descender,
	}
}

// Vertical glyph spacing, as fractions of the font size.
const (
	VerticalGap        = 0.1 // between printable glyphs
	VerticalWhitespace = 0.6 // advance of whitespace
)

// SplitLines splits a text at line breaks ("\r\n", "\n" or "\r").
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// IsBlank is true for lines without printable characters.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Calculator computes text metrics for a font.
type Calculator struct {
	font font.Asset
}

// NewCalculator creates a metrics calculator for font f.
func NewCalculator(f font.Asset) *Calculator {
	return &Calculator{font: f}
}

// Font returns the calculator's font.
func (calc *Calculator) Font() font.Asset {
	return calc.font
}

// Metrics computes the metrics of text, choosing the layout mode from the
// number of lines and the writing mode. It fails with an error of kind
// core.ErrUnknownAnchor for anchors with unknown values.
func (calc *Calculator) Metrics(text string, opts Resolved) (TextMetrics, error) {
	lines := SplitLines(text)
	switch {
	case len(lines) > 1 && opts.IsVertical():
		return calc.MultiVertical(lines, opts)
	case len(lines) > 1:
		return calc.MultiHorizontal(lines, opts)
	case opts.IsVertical():
		return calc.Vertical(text, opts)
	}
	return calc.Horizontal(text, opts)
}

func (calc *Calculator) scale(opts Resolved) float64 {
	return font.Scale(calc.font, opts.FontSize)
}

// Height of a line, independent of its glyphs.
func (calc *Calculator) lineHeight(opts Resolved) float64 {
	return (calc.font.Ascender() - calc.font.Descender()) * calc.scale(opts)
}

// Horizontal measures a single line of horizontal text. Letter spacing (or
// tracking) is added after every glyph, including the last one.
func (calc *Calculator) Horizontal(text string, opts Resolved) (TextMetrics, error) {
	scale := calc.scale(opts)
	spacing := opts.RunOptions().Spacing(opts.FontSize)
	glyphs := calc.font.Glyphs(text)
	width := 0.0
	for i, g := range glyphs {
		width += calc.font.AdvanceWidth(g) * scale
		if opts.Kerning && i+1 < len(glyphs) {
			width += calc.font.Kerning(g, glyphs[i+1]) * scale
		}
		width += spacing
	}
	return calc.place(width, calc.lineHeight(opts), opts)
}

// Vertical measures a single column of vertical text.
func (calc *Calculator) Vertical(text string, opts Resolved) (TextMetrics, error) {
	spacing := opts.RunOptions().Spacing(opts.FontSize)
	glyphs := calc.font.Glyphs(text)
	height := 0.0
	for i, g := range glyphs {
		if g.Rune > ' ' {
			height += calc.font.GlyphBounds(g, opts.FontSize).Height() + spacing
			if i+1 < len(glyphs) {
				height += VerticalGap * opts.FontSize
			}
		} else if calc.font.AdvanceWidth(g) != 0 {
			height += VerticalWhitespace * opts.FontSize
		}
	}
	return calc.place(calc.lineHeight(opts), height, opts)
}

// place positions a block of size w × h at the requested point.
func (calc *Calculator) place(w, h float64, opts Resolved) (TextMetrics, error) {
	scale := calc.scale(opts)
	asc := calc.font.Ascender() * scale
	dx, dy, err := opts.Anchor.offset(w, h, asc)
	if err != nil {
		return TextMetrics{}, err
	}
	m := TextMetrics{
		X:         opts.X + dx,
		Y:         opts.Y + dy,
		Width:     w,
		Height:    h,
		Ascender:  asc,
		Descender: calc.font.Descender() * scale,
	}
	m.Baseline = m.Y + asc
	return m, nil
}

// MultiHorizontal measures lines of horizontal text. For left aligned text
// the anchor is fixed to "left top".
func (calc *Calculator) MultiHorizontal(lines []string, opts Resolved) (TextMetrics, error) {
	if opts.TextAlign == AlignLeft {
		opts = opts.WithAnchor(TopLeft)
	}
	metrics := make([]LineMetrics, len(lines))
	width := 0.0
	for i, line := range lines {
		m, err := calc.Horizontal(line, opts)
		if err != nil {
			return TextMetrics{}, err
		}
		metrics[i] = m.Line(line)
		width = math.Max(width, m.Width)
	}
	lh := opts.LineAdvance()
	first, last := metrics[0], metrics[len(metrics)-1]
	height := float64(len(lines)-1)*lh + first.Height
	dx, dy, err := opts.Anchor.offset(width, height, first.Ascender)
	if err != nil {
		return TextMetrics{}, err
	}
	bx, by := opts.X+dx, opts.Y+dy
	tracer().Debugf("%d lines, block at (%.2f,%.2f), %.2f × %.2f", len(lines), bx, by, width, height)
	for i := range metrics {
		switch opts.TextAlign {
		case AlignCenter:
			metrics[i].X = bx + (width-metrics[i].Width)/2
		case AlignRight:
			metrics[i].X = bx + width - metrics[i].Width
		default:
			metrics[i].X = bx
		}
		metrics[i].Y = by + float64(i)*lh
		metrics[i].Baseline = metrics[i].Y + metrics[i].Ascender
	}
	return TextMetrics{
		X:         bx,
		Y:         by,
		Baseline:  by + first.Ascender,
		Width:     width,
		Height:    height,
		Ascender:  first.Ascender,
		Descender: last.Descender,
		Lines:     metrics,
	}, nil
}

// MultiVertical measures columns of vertical text. Columns are set from
// right to left, each centered in a slot of one line advance.
func (calc *Calculator) MultiVertical(columns []string, opts Resolved) (TextMetrics, error) {
	colOpts := opts.Column()
	metrics := make([]LineMetrics, len(columns))
	height := 0.0
	for i, col := range columns {
		m, err := calc.Vertical(col, colOpts)
		if err != nil {
			return TextMetrics{}, err
		}
		metrics[i] = m.Line(col)
		height = math.Max(height, m.Height)
	}
	lh := opts.LineAdvance()
	width := metrics[0].Width + float64(len(columns)-1)*lh
	asc := calc.font.Ascender() * calc.scale(opts)
	dx, dy, err := opts.Anchor.offset(width, height, asc)
	if err != nil {
		return TextMetrics{}, err
	}
	bx, by := opts.X+dx, opts.Y+dy
	tracer().Debugf("%d columns, block at (%.2f,%.2f), %.2f × %.2f", len(columns), bx, by, width, height)
	for i := range metrics {
		metrics[i].X = bx + width - float64(i+1)*lh + (lh-metrics[i].Width)/2
		metrics[i].Y = by
		metrics[i].Baseline = by + metrics[i].Ascender
	}
	return TextMetrics{
		X:         bx,
		Y:         by,
		Baseline:  by + asc,
		Width:     width,
		Height:    height,
		Ascender:  metrics[0].Ascender,
		Descender: metrics[len(metrics)-1].Descender,
		Lines:     metrics,
	}, nil
}

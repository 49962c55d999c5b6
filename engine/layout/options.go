package layout

import (
	"math"
	"strings"

	"github.com/npillmayer/glyphpath/core"
	"github.com/npillmayer/glyphpath/core/font"
)

// Text alignment and writing modes
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"

	Horizontally = "horizontal"
	Vertically   = "vertical"
)

// Defaults for unset options
const (
	DefaultFontSize   = 72.0
	DefaultLineHeight = 1.2
)

// ArcOptions request bending a text along a circular arc. Angle is given in
// degrees; positive angles bow upward. An unset center defaults to the
// horizontal middle of the text on its baseline.
type ArcOptions struct {
	Angle   float64  `json:"angle"`
	CenterX *float64 `json:"centerX,omitempty"`
	CenterY *float64 `json:"centerY,omitempty"`
}

// Envelope holds the geometric remapping applied to synthesized paths.
type Envelope struct {
	Arc *ArcOptions `json:"arc,omitempty"`
}

// TextOptions are the options of a request, as supplied by a client. Zero
// values denote defaults.
type TextOptions struct {
	FontSize      float64           `json:"fontSize,omitempty"`
	LetterSpacing float64           `json:"letterSpacing,omitempty"` // in em
	Tracking      float64           `json:"tracking,omitempty"`      // in 1/1000 em
	Kerning       *bool             `json:"kerning,omitempty"`       // default true
	Anchor        string            `json:"anchor,omitempty"`
	X             float64           `json:"x,omitempty"`
	Y             float64           `json:"y,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	Envelope      *Envelope         `json:"envelope,omitempty"`
	LineHeight    float64           `json:"lineHeight,omitempty"` // multiple of the font size
	TextAlign     string            `json:"textAlign,omitempty"`
	WritingMode   string            `json:"writingMode,omitempty"`
	Font          string            `json:"font,omitempty"` // font key
}

// Resolved are text options with all defaults applied and the anchor parsed.
// Resolved values are never changed in place; derived variants are copies.
type Resolved struct {
	FontSize      float64
	LetterSpacing float64
	Tracking      float64
	Kerning       bool
	Anchor        AnchorSpec
	X, Y          float64
	Attributes    map[string]string
	Envelope      *Envelope
	LineHeight    float64
	TextAlign     string
	WritingMode   string
	Font          string
}

// Resolve applies defaults and validates options. It fails with an error
// of kind core.ErrInvalidOption.
func (o TextOptions) Resolve() (Resolved, error) {
	r := Resolved{
		FontSize:      o.FontSize,
		LetterSpacing: o.LetterSpacing,
		Tracking:      o.Tracking,
		Kerning:       o.Kerning == nil || *o.Kerning,
		Anchor:        ParseAnchor(o.Anchor),
		X:             o.X,
		Y:             o.Y,
		Envelope:      o.Envelope,
		LineHeight:    o.LineHeight,
		TextAlign:     strings.ToLower(strings.TrimSpace(o.TextAlign)),
		WritingMode:   strings.ToLower(strings.TrimSpace(o.WritingMode)),
		Font:          o.Font,
	}
	if r.FontSize == 0 {
		r.FontSize = DefaultFontSize
	} else if !(r.FontSize > 0) || math.IsInf(r.FontSize, 1) {
		return Resolved{}, core.Error(core.EINVALID, "font size must be positive, is %g", o.FontSize)
	}
	if r.LineHeight == 0 {
		r.LineHeight = DefaultLineHeight
	} else if !(r.LineHeight > 0) || math.IsInf(r.LineHeight, 1) {
		return Resolved{}, core.Error(core.EINVALID, "line height must be positive, is %g", o.LineHeight)
	}
	switch r.TextAlign {
	case "":
		r.TextAlign = AlignLeft
	case AlignLeft, AlignCenter, AlignRight:
	default:
		return Resolved{}, core.Error(core.EINVALID, "unknown text alignment: %q", o.TextAlign)
	}
	switch r.WritingMode {
	case "":
		r.WritingMode = Horizontally
	case Horizontally, Vertically:
	default:
		return Resolved{}, core.Error(core.EINVALID, "unknown writing mode: %q", o.WritingMode)
	}
	if math.IsNaN(r.X) || math.IsNaN(r.Y) || math.IsNaN(r.LetterSpacing) || math.IsNaN(r.Tracking) {
		return Resolved{}, core.Error(core.EINVALID, "options contain NaN values")
	}
	if o.Envelope != nil && o.Envelope.Arc != nil && math.IsNaN(o.Envelope.Arc.Angle) {
		return Resolved{}, core.Error(core.EINVALID, "arc angle is NaN")
	}
	if len(o.Attributes) > 0 {
		r.Attributes = make(map[string]string, len(o.Attributes))
		for k, v := range o.Attributes {
			r.Attributes[k] = v
		}
	}
	return r, nil
}

// WithAnchor returns a copy of r with a different anchor.
func (r Resolved) WithAnchor(a AnchorSpec) Resolved {
	r.Anchor = a
	return r
}

// At returns a copy of r positioned at (x, y).
func (r Resolved) At(x, y float64) Resolved {
	r.X, r.Y = x, y
	return r
}

// Column returns a copy of r suited for measuring a single column of
// vertical text: position, anchor and envelope are reset.
func (r Resolved) Column() Resolved {
	r.X, r.Y = 0, 0
	r.Anchor = DefaultAnchor
	r.Envelope = nil
	r.WritingMode = Vertically
	return r
}

// IsVertical is true for vertical writing mode.
func (r Resolved) IsVertical() bool {
	return r.WritingMode == Vertically
}

// Arc returns the arc options, if any.
func (r Resolved) Arc() *ArcOptions {
	if r.Envelope == nil {
		return nil
	}
	return r.Envelope.Arc
}

// RunOptions are the spacing options for a glyph run.
func (r Resolved) RunOptions() font.RunOptions {
	return font.RunOptions{
		Kerning:       r.Kerning,
		LetterSpacing: r.LetterSpacing,
		Tracking:      r.Tracking,
	}
}

// LineAdvance is the distance between adjacent lines (or columns).
func (r Resolved) LineAdvance() float64 {
	return r.LineHeight * r.FontSize
}

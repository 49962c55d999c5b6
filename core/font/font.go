/*
Package font is for outline font handling.

We stick to the following definitions:

* A "font" is a parsed outline font file (TrueType or OpenType/CFF), i.e.
a variant of a typeface with a certain weight, slant, etc.
An example is "Helvetica regular".

* A "glyph" is a single shape of a font, addressed by its glyph index.

Fonts are accessed through the Asset interface. Metrics are reported in font
units, with the ascender positive and the descender negative, as is the
convention for OpenType fonts. Glyph outlines and glyph bounds are reported
in output units at a given font size, in SVG user space (y-axis pointing
down).

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Complex script shaping is not performed: glyphs are looked up one rune at a
time after NFC normalization.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"sync"

	"github.com/npillmayer/glyphpath/core"
	"github.com/npillmayer/glyphpath/core/path"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// tracer writes to trace with key 'glyphpath.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphpath.fonts")
}

// Glyph is a glyph of a font, together with the rune it has been mapped from.
type Glyph struct {
	Index uint16
	Rune  rune
}

// Asset is a parsed font. Implementations are immutable and safe for
// concurrent use.
type Asset interface {
	UnitsPerEm() int
	Ascender() float64  // in font units, positive
	Descender() float64 // in font units, negative
	Glyphs(text string) []Glyph
	AdvanceWidth(g Glyph) float64 // in font units
	Kerning(a, b Glyph) float64   // in font units
	// GlyphOutline returns the outline of g at font size 'size', with the
	// glyph origin placed at (x, y).
	GlyphOutline(g Glyph, x, y, size float64) path.Path
	// GlyphBounds returns the outline box of g at font size 'size', with the
	// glyph origin at (0, 0).
	GlyphBounds(g Glyph, size float64) path.Box
}

// Scale returns the factor converting font units of f to output units at
// a given font size.
func Scale(f Asset, size float64) float64 {
	return size / float64(f.UnitsPerEm())
}

// SFNT is an Asset backed by golang.org/x/image/font/sfnt.
type SFNT struct {
	Fontname string
	Binary   []byte // raw data
	font     *sfnt.Font
	upem     int
	ppem     fixed.Int26_6 // 1 pixel per font unit
	asc      float64
	desc     float64
}

var _ Asset = &SFNT{}

// Parse creates a font asset from the bytes of a TrueType or OpenType font.
// Parse fails with an error of kind core.ErrFontParse.
func Parse(fbytes []byte) (*SFNT, error) {
	sf, err := sfnt.Parse(fbytes)
	if err != nil {
		return nil, core.WrapError(err, core.EFORMAT, "font cannot be parsed: %v", err)
	}
	f := &SFNT{Binary: fbytes, font: sf}
	f.upem = int(sf.UnitsPerEm())
	if f.upem <= 0 {
		return nil, core.Error(core.EFORMAT, "font has invalid units per em: %d", f.upem)
	}
	f.ppem = fixed.I(f.upem)
	var buf sfnt.Buffer
	m, err := sf.Metrics(&buf, f.ppem, xfont.HintingNone)
	if err != nil {
		return nil, core.WrapError(err, core.EFORMAT, "font has no usable metrics")
	}
	f.asc = fromFixed(m.Ascent)
	f.desc = -fromFixed(m.Descent)
	f.Fontname, _ = sf.Name(&buf, sfnt.NameIDFull)
	tracer().Debugf("parsed font '%s', upem=%d, asc=%.0f, desc=%.0f", f.Fontname, f.upem, f.asc, f.desc)
	return f, nil
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// UnitsPerEm is part of interface Asset.
func (f *SFNT) UnitsPerEm() int { return f.upem }

// Ascender is part of interface Asset.
func (f *SFNT) Ascender() float64 { return f.asc }

// Descender is part of interface Asset.
func (f *SFNT) Descender() float64 { return f.desc }

// Glyphs maps the NFC normalized text to glyphs. Runes without a glyph in
// the font map to glyph 0 (.notdef).
func (f *SFNT) Glyphs(text string) []Glyph {
	text = norm.NFC.String(text)
	var buf sfnt.Buffer
	glyphs := make([]Glyph, 0, len(text))
	for _, r := range text {
		inx, err := f.font.GlyphIndex(&buf, r)
		if err != nil {
			tracer().Debugf("no glyph for rune %#U: %v", r, err)
			inx = 0
		}
		glyphs = append(glyphs, Glyph{Index: uint16(inx), Rune: r})
	}
	return glyphs
}

// AdvanceWidth is part of interface Asset.
func (f *SFNT) AdvanceWidth(g Glyph) float64 {
	var buf sfnt.Buffer
	adv, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(g.Index), f.ppem, xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(adv)
}

// Kerning is part of interface Asset. Pairs without kerning information
// yield 0.
func (f *SFNT) Kerning(a, b Glyph) float64 {
	var buf sfnt.Buffer
	k, err := f.font.Kern(&buf, sfnt.GlyphIndex(a.Index), sfnt.GlyphIndex(b.Index), f.ppem, xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(k)
}

// GlyphOutline is part of interface Asset.
// sfnt reports open contours, every contour is closed explicitly.
func (f *SFNT) GlyphOutline(g Glyph, x, y, size float64) path.Path {
	var buf sfnt.Buffer
	segs, err := f.font.LoadGlyph(&buf, sfnt.GlyphIndex(g.Index), f.ppem, nil)
	if err != nil {
		tracer().Errorf("cannot load outline of glyph %d: %v", g.Index, err)
		return nil
	}
	scale := Scale(f, size)
	pt := func(p fixed.Point26_6) (float64, float64) {
		return x + fromFixed(p.X)*scale, y + fromFixed(p.Y)*scale
	}
	var p path.Path
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.ClosePath()
			}
			p.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(seg.Args[0])
			ex, ey := pt(seg.Args[1])
			p.QuadTo(x1, y1, ex, ey)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			ex, ey := pt(seg.Args[2])
			p.CubicTo(x1, y1, x2, y2, ex, ey)
		}
	}
	if open {
		p.ClosePath()
	}
	return p
}

// GlyphBounds is part of interface Asset.
func (f *SFNT) GlyphBounds(g Glyph, size float64) path.Box {
	var buf sfnt.Buffer
	r, _, err := f.font.GlyphBounds(&buf, sfnt.GlyphIndex(g.Index), f.ppem, xfont.HintingNone)
	if err != nil {
		return path.Box{}
	}
	scale := Scale(f, size)
	return path.Box{
		X1: fromFixed(r.Min.X) * scale,
		Y1: fromFixed(r.Min.Y) * scale,
		X2: fromFixed(r.Max.X) * scale,
		Y2: fromFixed(r.Max.Y) * scale,
	}
}

// --- Text runs -------------------------------------------------------------

// RunOptions controls spacing of a text run.
type RunOptions struct {
	Kerning       bool
	LetterSpacing float64 // in em
	Tracking      float64 // in 1/1000 em, used if LetterSpacing is 0
}

// Spacing returns the extra space after every glyph of a run at a given size.
func (opts RunOptions) Spacing(size float64) float64 {
	if opts.LetterSpacing != 0 {
		return opts.LetterSpacing * size
	}
	if opts.Tracking != 0 {
		return opts.Tracking / 1000 * size
	}
	return 0
}

// OutlinePath returns the outlines of all glyphs of text, the first glyph
// origin placed at (x, y). Spacing is added after every glyph, including
// the last one.
func OutlinePath(f Asset, text string, x, y, size float64, opts RunOptions) path.Path {
	scale := Scale(f, size)
	spacing := opts.Spacing(size)
	glyphs := f.Glyphs(text)
	var p path.Path
	for i, g := range glyphs {
		p.Append(f.GlyphOutline(g, x, y, size))
		x += f.AdvanceWidth(g) * scale
		if opts.Kerning && i+1 < len(glyphs) {
			x += f.Kerning(g, glyphs[i+1]) * scale
		}
		x += spacing
	}
	return p
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *SFNT {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
// Currently we use Go Sans.
var fallbackFont *SFNT

func loadFallbackFont() *SFNT {
	gofont, err := Parse(goregular.TTF)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Fontname = "Go Sans"
	return gofont
}

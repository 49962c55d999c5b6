/*
Package fonttest provides a deterministic font asset for tests.

The fixture font has 1000 units per em, an ascender of 800 and a descender
of -200 font units. Every glyph advances by 600 font units and, except for
whitespace, is drawn as a rectangle filling its advance box from the baseline
up to the ascender. Kerning is always 0.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fonttest

import (
	"unicode"

	"github.com/npillmayer/glyphpath/core/font"
	"github.com/npillmayer/glyphpath/core/path"
)

// Fixture font metrics, in font units.
const (
	UnitsPerEm = 1000
	Ascender   = 800
	Descender  = -200
	Advance    = 600
)

// Font is the fixture font asset.
type Font struct{}

var _ font.Asset = Font{}

// New returns the fixture font.
func New() Font {
	return Font{}
}

// UnitsPerEm is part of interface font.Asset.
func (Font) UnitsPerEm() int { return UnitsPerEm }

// Ascender is part of interface font.Asset.
func (Font) Ascender() float64 { return Ascender }

// Descender is part of interface font.Asset.
func (Font) Descender() float64 { return Descender }

// Glyphs maps every rune to a glyph with the rune's code as index.
func (Font) Glyphs(text string) []font.Glyph {
	glyphs := make([]font.Glyph, 0, len(text))
	for _, r := range text {
		glyphs = append(glyphs, font.Glyph{Index: uint16(r), Rune: r})
	}
	return glyphs
}

// AdvanceWidth is part of interface font.Asset.
func (Font) AdvanceWidth(g font.Glyph) float64 { return Advance }

// Kerning is part of interface font.Asset.
func (Font) Kerning(a, b font.Glyph) float64 { return 0 }

// GlyphOutline draws a closed rectangle for visible glyphs and nothing for
// whitespace.
func (f Font) GlyphOutline(g font.Glyph, x, y, size float64) path.Path {
	if unicode.IsSpace(g.Rune) {
		return nil
	}
	box := f.GlyphBounds(g, size)
	var p path.Path
	p.MoveTo(x+box.X1, y+box.Y2)
	p.LineTo(x+box.X2, y+box.Y2)
	p.LineTo(x+box.X2, y+box.Y1)
	p.LineTo(x+box.X1, y+box.Y1)
	p.ClosePath()
	return p
}

// GlyphBounds returns [0,0]–[600,800] font units, scaled to size and flipped
// to y-down coordinates. Whitespace has an empty box.
func (Font) GlyphBounds(g font.Glyph, size float64) path.Box {
	if unicode.IsSpace(g.Rune) {
		return path.Box{}
	}
	scale := size / UnitsPerEm
	return path.Box{X1: 0, Y1: -Ascender * scale, X2: Advance * scale, Y2: 0}
}

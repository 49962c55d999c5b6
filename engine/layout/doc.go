/*
Package layout computes the positioned metrics of a text.

Texts are measured in one of four modes: a single line or multiple lines,
written horizontally or vertically. Vertical text runs top to bottom; multiple
lines of vertical text are set as columns from right to left.

Metrics are given in SVG user space, with the y-axis pointing down. The
position of a text block relative to the requested point (x, y) is governed
by an anchor, e.g. "center middle" or "right baseline".

The height of a line is the font's ascender minus its descender at the given
font size. It does not depend on the glyphs of the line.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpath.layout'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpath.layout")
}

/*
Package svg assembles glyph paths into SVG markup.

Three kinds of output are available: a bare <path> element, a plain document
framing the path in a padded viewBox, and a debug document which overlays the
path with the layout information it was computed from.

Markup is written with svgo, using its float64 coordinate flavour.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package svg

import (
	"bytes"
	"encoding/xml"
	"math"
	"sort"
	"strconv"
	"strings"

	svgo "github.com/ajstarks/svgo/float"
	"github.com/npillmayer/glyphpath/core/path"
	"github.com/npillmayer/glyphpath/engine/layout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpath.svg'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpath.svg")
}

// Padding is the margin around the content of a document, in user units.
const Padding = 10

// Debug overlay colors.
const (
	axisColor  = "#e53935"
	boxColor   = "#1e88e5"
	labelColor = "#757575"
)

// PathElement renders p as a <path> element. Attributes are passed through,
// sorted by name, with escaped values. Attributes which are not valid XML
// names, and an attribute named "d", are dropped.
func PathElement(p path.Path, attrs map[string]string) string {
	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	canvas.Path(p.Data(), attributes(attrs)...)
	return strings.TrimSpace(buf.String())
}

// Document renders p into a self-contained SVG document. The viewBox is the
// bounding box of p, padded on every side.
func Document(p path.Path, attrs map[string]string) string {
	box := p.BoundingBox().Pad(Padding)
	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	canvas.Startview(box.Width(), box.Height(), box.X1, box.Y1, box.Width(), box.Height())
	canvas.Path(p.Data(), attributes(attrs)...)
	canvas.End()
	return buf.String()
}

// DebugDocument renders p together with its layout: axis lines crossing at
// the computed origin of the text block (m.X, m.Y), a dashed rectangle with
// a number for every line or column of multi-line text, and a label naming
// the writing mode. The document has explicit width and height; content is
// shifted so that nothing lies left of or above the padding.
func DebugDocument(p path.Path, m layout.TextMetrics, opts layout.Resolved) string {
	box := debugArea(p, m)
	dx, dy := Padding-box.X1, Padding-box.Y1
	width, height := math.Ceil(box.Width()+2*Padding), math.Ceil(box.Height()+2*Padding)
	tracer().Debugf("debug document %.0f × %.0f, content shifted by (%.2f,%.2f)", width, height, dx, dy)
	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	canvas.Start(width, height)
	canvas.Gtransform("translate(" + num(dx) + " " + num(dy) + ")")
	axis := []string{attr("stroke", axisColor), attr("stroke-width", "1")}
	canvas.Line(box.X1-Padding, m.Y, box.X2+Padding, m.Y, axis...)
	canvas.Line(m.X, box.Y1-Padding, m.X, box.Y2+Padding, axis...)
	for i, line := range m.Lines {
		canvas.Rect(line.X, line.Y, line.Width, line.Height, attr("fill", "none"),
			attr("stroke", boxColor), attr("stroke-width", "1"), attr("stroke-dasharray", "4 2"))
		canvas.Text(line.X+2, line.Y+10, strconv.Itoa(i+1), label(boxColor)...)
	}
	canvas.Path(p.Data(), attributes(opts.Attributes)...)
	canvas.Gend()
	canvas.Text(2, 10, opts.WritingMode, label(labelColor)...)
	canvas.End()
	return buf.String()
}

// debugArea is the union of the path's box and the metrics' box.
func debugArea(p path.Path, m layout.TextMetrics) path.Box {
	box := path.Box{X1: m.X, Y1: m.Y, X2: m.X + m.Width, Y2: m.Y + m.Height}
	if len(p) > 0 {
		b := p.BoundingBox()
		box.X1, box.Y1 = math.Min(box.X1, b.X1), math.Min(box.Y1, b.Y1)
		box.X2, box.Y2 = math.Max(box.X2, b.X2), math.Max(box.Y2, b.Y2)
	}
	return box
}

func label(color string) []string {
	return []string{attr("font-family", "sans-serif"), attr("font-size", "10"), attr("fill", color)}
}

// attributes converts pass-through attributes to svgo attribute strings,
// sorted by name.
func attributes(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k == "d" || !isName(k) {
			tracer().Infof("dropping attribute %q", k)
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = attr(k, attrs[k])
	}
	return s
}

// attr formats an attribute for svgo, which writes it verbatim.
func attr(name, value string) string {
	return name + `="` + escape(value) + `"`
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s)) // strings.Builder does not fail
	return b.String()
}

// isName checks for a plausible XML attribute name, allowing a namespace
// prefix like "xlink:href".
func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func num(n float64) string {
	return path.FormatNumber(n)
}

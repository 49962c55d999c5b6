package layout

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/npillmayer/glyphpath/core"
)

// Horizontal anchors
const (
	Left   = "left"
	Center = "center"
	Right  = "right"
)

// Vertical anchors
const (
	Baseline = "baseline"
	Top      = "top"
	Middle   = "middle"
	Bottom   = "bottom"
)

// AnchorSpec is the reference point of a text block which is placed at the
// requested position.
type AnchorSpec struct {
	Horizontal string
	Vertical   string
}

// DefaultAnchor is "left baseline".
var DefaultAnchor = AnchorSpec{Horizontal: Left, Vertical: Baseline}

// TopLeft is the anchor "left top".
var TopLeft = AnchorSpec{Horizontal: Left, Vertical: Top}

func (a AnchorSpec) String() string {
	return a.Horizontal + " " + a.Vertical
}

// Keywords may appear anywhere in an anchor string, even inside of other
// words or overlapping with a keyword of the other axis, as in "rightop".
// Every axis is therefore scanned by a lexer of its own; everything except
// the axis' keywords is filler and elided.
var (
	horizontalLexer = keywordLexer(`(?i:left|center|right)`)
	verticalLexer   = keywordLexer(`(?i:baseline|top|middle|bottom)`)
)

func keywordLexer(keywords string) *lexer.StatefulDefinition {
	return lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Keyword", Pattern: keywords},
		{Name: "filler", Pattern: `[\s\S]`},
	})
}

// ParseAnchor derives an anchor from a free-text specifier such as
// "center middle" or "TopRight". The first horizontal and the first vertical
// keyword win; keywords are matched case-insensitively. Axes without a
// keyword default to "left" and "baseline" respectively.
func ParseAnchor(spec string) AnchorSpec {
	return AnchorSpec{
		Horizontal: firstKeyword(horizontalLexer, spec, Left),
		Vertical:   firstKeyword(verticalLexer, spec, Baseline),
	}
}

// firstKeyword returns the first keyword of spec, lower-cased, or dflt.
func firstKeyword(def *lexer.StatefulDefinition, spec, dflt string) string {
	keyword := def.Symbols()["Keyword"]
	lex, err := def.LexString("anchor", spec)
	if err != nil {
		return dflt
	}
	for {
		token, err := lex.Next()
		if err != nil { // cannot happen, the filler matches every rune
			tracer().Errorf("anchor %q: %v", spec, err)
			return dflt
		}
		switch token.Type {
		case lexer.EOF:
			return dflt
		case keyword:
			return strings.ToLower(token.Value)
		}
	}
}

// Validate checks that both axes of an anchor hold a known value.
func (a AnchorSpec) Validate() error {
	_, _, err := a.offset(0, 0, 0)
	return err
}

// offset returns the displacement of a block of size w × h from the anchor
// point. asc is the scaled ascender, used for the baseline.
func (a AnchorSpec) offset(w, h, asc float64) (dx, dy float64, err error) {
	switch a.Horizontal {
	case Left:
		dx = 0
	case Center:
		dx = -w / 2
	case Right:
		dx = -w
	default:
		return 0, 0, core.Error(core.EANCHOR, "unknown horizontal anchor option: %q", a.Horizontal)
	}
	switch a.Vertical {
	case Top:
		dy = 0
	case Baseline:
		dy = -asc
	case Middle:
		dy = -h / 2
	case Bottom:
		dy = -h
	default:
		return 0, 0, core.Error(core.EANCHOR, "unknown vertical anchor option: %q", a.Vertical)
	}
	return dx, dy, nil
}

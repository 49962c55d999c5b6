package layout

import (
	"errors"
	"testing"

	"github.com/npillmayer/glyphpath/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseAnchor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpath.layout")
	defer teardown()
	//
	for spec, expected := range map[string]AnchorSpec{
		"":                    {Left, Baseline},
		"left baseline":       {Left, Baseline},
		"center middle":       {Center, Middle},
		"right bottom":        {Right, Bottom},
		"top":                 {Left, Top},
		"right":               {Right, Baseline},
		"Center Middle":       {Center, Middle},
		"TOPRIGHT":            {Right, Top},
		"middle-left":         {Left, Middle},
		"right left top base": {Right, Top},
		"nonsense":            {Left, Baseline},
		"x=centered;y=bottom": {Center, Bottom},
		"rightop":             {Right, Top},
		"lefTOP":              {Left, Top},
		"centerbottomiddle":   {Center, Bottom},
	} {
		assert.Equal(t, expected, ParseAnchor(spec), "anchor %q", spec)
	}
}

func TestAnchorValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpath.layout")
	defer teardown()
	//
	assert.NoError(t, ParseAnchor("Right Top").Validate())
	err := AnchorSpec{Horizontal: "Center", Vertical: Middle}.Validate()
	assert.True(t, errors.Is(err, core.ErrUnknownAnchor))
	err = AnchorSpec{Horizontal: Center, Vertical: "above"}.Validate()
	assert.True(t, errors.Is(err, core.ErrUnknownAnchor))
	assert.Equal(t, core.EANCHOR, core.Code(err))
}

func TestResolveOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpath.layout")
	defer teardown()
	//
	r, err := TextOptions{}.Resolve()
	assert.NoError(t, err)
	assert.Equal(t, DefaultFontSize, r.FontSize)
	assert.Equal(t, DefaultLineHeight, r.LineHeight)
	assert.True(t, r.Kerning)
	assert.Equal(t, DefaultAnchor, r.Anchor)
	assert.Equal(t, AlignLeft, r.TextAlign)
	assert.Equal(t, Horizontally, r.WritingMode)
	//
	off := false
	r, err = TextOptions{Kerning: &off, WritingMode: "Vertical", TextAlign: "RIGHT"}.Resolve()
	assert.NoError(t, err)
	assert.False(t, r.Kerning)
	assert.True(t, r.IsVertical())
	assert.Equal(t, AlignRight, r.TextAlign)
	//
	for _, opts := range []TextOptions{
		{FontSize: -1},
		{LineHeight: -0.5},
		{TextAlign: "justify"},
		{WritingMode: "diagonal"},
	} {
		_, err := opts.Resolve()
		assert.True(t, errors.Is(err, core.ErrInvalidOption), "options %+v", opts)
	}
}

func TestResolvedIsCopied(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpath.layout")
	defer teardown()
	//
	attrs := map[string]string{"fill": "red"}
	r, _ := TextOptions{X: 5, Y: 7, Attributes: attrs, Anchor: "center"}.Resolve()
	attrs["fill"] = "blue"
	assert.Equal(t, "red", r.Attributes["fill"])
	moved := r.At(1, 2).WithAnchor(TopLeft)
	assert.Equal(t, 5.0, r.X)
	assert.Equal(t, Center, r.Anchor.Horizontal)
	assert.Equal(t, 1.0, moved.X)
	col := r.Column()
	assert.Equal(t, 0.0, col.X)
	assert.Equal(t, DefaultAnchor, col.Anchor)
	assert.True(t, col.IsVertical())
	assert.False(t, r.IsVertical())
}

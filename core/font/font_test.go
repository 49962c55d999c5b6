package font

import (
	"errors"
	"testing"

	"github.com/npillmayer/glyphpath/core"
	"github.com/npillmayer/glyphpath/core/path"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpath.fonts")
	defer teardown()
	//
	_, err := Parse([]byte("this is not a font"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrFontParse))
	assert.Equal(t, core.EFORMAT, core.Code(err))
}

func TestFallbackFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpath.fonts")
	defer teardown()
	//
	f := FallbackFont()
	require.NotNil(t, f)
	assert.Same(t, f, FallbackFont())
	assert.Equal(t, 2048, f.UnitsPerEm())
	assert.Greater(t, f.Ascender(), 0.0)
	assert.Less(t, f.Descender(), 0.0)
}

func TestGlyphOutlinesAreClosed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpath.fonts")
	defer teardown()
	//
	f := FallbackFont()
	glyphs := f.Glyphs("O")
	require.Len(t, glyphs, 1)
	assert.NotZero(t, glyphs[0].Index)
	p := f.GlyphOutline(glyphs[0], 0, 0, 100)
	require.NotEmpty(t, p)
	assert.Equal(t, path.MoveTo, p[0].Op)
	assert.Equal(t, path.Close, p[len(p)-1].Op)
	closes := 0
	for _, c := range p {
		if c.Op == path.Close {
			closes++
		}
	}
	assert.Equal(t, 2, closes, "expected an outer and an inner contour for 'O'")
	// outline lies above the baseline, y-axis pointing down
	box := f.GlyphBounds(glyphs[0], 100)
	assert.Less(t, box.Y1, 0.0)
	assert.InDelta(t, box.Y1, p.BoundingBox().Y1, 1.0)
}

func TestNormalization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpath.fonts")
	defer teardown()
	//
	f := FallbackFont()
	decomposed := f.Glyphs("e\u0301")
	assert.Len(t, decomposed, 1)
	assert.Equal(t, 'é', decomposed[0].Rune)
}

func TestOutlinePathSpacing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpath.fonts")
	defer teardown()
	//
	f := FallbackFont()
	g := f.Glyphs("I")[0]
	adv := f.AdvanceWidth(g) * Scale(f, 100)
	plain := OutlinePath(f, "II", 0, 0, 100, RunOptions{})
	spaced := OutlinePath(f, "II", 0, 0, 100, RunOptions{LetterSpacing: 0.5})
	tracked := OutlinePath(f, "II", 0, 0, 100, RunOptions{Tracking: 500})
	w := plain.BoundingBox().Width()
	assert.InDelta(t, w+50, spaced.BoundingBox().Width(), 0.001)
	assert.InDelta(t, w+50, tracked.BoundingBox().Width(), 0.001)
	assert.Greater(t, w, adv*0.5)
	assert.Equal(t, 0.0, RunOptions{}.Spacing(100))
	assert.Equal(t, 20.0, RunOptions{LetterSpacing: 0.2, Tracking: 500}.Spacing(100))
}

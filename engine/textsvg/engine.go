/*
Package textsvg is the entry point for turning text into vector glyph paths.

An Engine ties together the font cache, the metrics calculator, the path
synthesizer and the SVG assembler. Every request resolves its options,
acquires its font from the cache and then runs purely on the immutable font.
Engines are safe for concurrent use.

	cache := fontcache.New(resources.NewFontLoader(settings))
	engine := textsvg.New(cache)
	doc, err := engine.SynthesizeDocument(ctx, "Hello", layout.TextOptions{FontSize: 48}, false)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package textsvg

import (
	"context"

	"github.com/npillmayer/glyphpath/backend/svg"
	"github.com/npillmayer/glyphpath/core/font/fontcache"
	"github.com/npillmayer/glyphpath/core/locate/resources"
	"github.com/npillmayer/glyphpath/core/parameters"
	"github.com/npillmayer/glyphpath/core/path"
	"github.com/npillmayer/glyphpath/engine/glyphing"
	"github.com/npillmayer/glyphpath/engine/layout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphpath.engine'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpath.engine")
}

// Engine renders text to glyph paths, using fonts from a cache.
type Engine struct {
	cache *fontcache.Cache
}

// New creates an engine drawing its fonts from cache.
func New(cache *fontcache.Cache) *Engine {
	return &Engine{cache: cache}
}

// FromSettings creates an engine with a new font cache configured by s.
func FromSettings(s parameters.Settings) *Engine {
	loader := resources.NewFontLoader(s)
	return New(fontcache.New(loader, fontcache.WithMaxBytes(s.MaxBytes)))
}

// Cache returns the engine's font cache.
func (e *Engine) Cache() *fontcache.Cache {
	return e.cache
}

// prepare resolves the options of a request and acquires its font.
func (e *Engine) prepare(ctx context.Context, opts layout.TextOptions) (*glyphing.Synthesizer, layout.Resolved, error) {
	r, err := opts.Resolve()
	if err != nil {
		return nil, r, err
	}
	f, err := e.cache.Acquire(ctx, r.Font)
	if err != nil {
		tracer().Infof("cannot acquire font %q: %v", r.Font, err)
		return nil, r, err
	}
	return glyphing.NewSynthesizer(f), r, nil
}

func (e *Engine) synthesize(ctx context.Context, text string, opts layout.TextOptions) (path.Path, layout.TextMetrics, layout.Resolved, error) {
	s, r, err := e.prepare(ctx, opts)
	if err != nil {
		return nil, layout.TextMetrics{}, r, err
	}
	p, m, err := s.Path(text, r)
	if err == nil {
		tracer().Debugf("synthesized %q: %d path commands", text, len(p))
	}
	return p, m, r, err
}

// ComputeMetrics measures text without creating outlines.
func (e *Engine) ComputeMetrics(ctx context.Context, text string, opts layout.TextOptions) (layout.TextMetrics, error) {
	s, r, err := e.prepare(ctx, opts)
	if err != nil {
		return layout.TextMetrics{}, err
	}
	return s.Calculator().Metrics(text, r)
}

// SynthesizePath returns the glyph outlines of text.
func (e *Engine) SynthesizePath(ctx context.Context, text string, opts layout.TextOptions) (path.Path, error) {
	p, _, _, err := e.synthesize(ctx, text, opts)
	return p, err
}

// PathData returns the glyph outlines of text as SVG path data.
func (e *Engine) PathData(ctx context.Context, text string, opts layout.TextOptions) (string, error) {
	p, err := e.SynthesizePath(ctx, text, opts)
	if err != nil {
		return "", err
	}
	return p.Data(), nil
}

// PathElement returns the glyph outlines of text as an SVG <path> element,
// carrying the attributes of opts.
func (e *Engine) PathElement(ctx context.Context, text string, opts layout.TextOptions) (string, error) {
	p, _, r, err := e.synthesize(ctx, text, opts)
	if err != nil {
		return "", err
	}
	return svg.PathElement(p, r.Attributes), nil
}

// SynthesizeDocument returns a self-contained SVG document showing text. If
// debug is set, the document includes an overlay of the text's layout.
func (e *Engine) SynthesizeDocument(ctx context.Context, text string, opts layout.TextOptions, debug bool) (string, error) {
	p, m, r, err := e.synthesize(ctx, text, opts)
	if err != nil {
		return "", err
	}
	if debug {
		return svg.DebugDocument(p, m, r), nil
	}
	return svg.Document(p, r.Attributes), nil
}

// BoundingBox returns the box around the control polygon of the outlines
// of text.
func (e *Engine) BoundingBox(ctx context.Context, text string, opts layout.TextOptions) (path.Box, error) {
	p, err := e.SynthesizePath(ctx, text, opts)
	if err != nil {
		return path.Box{}, err
	}
	return p.BoundingBox(), nil
}

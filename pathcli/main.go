/*
Command pathcli renders text to SVG glyph paths.

	pathcli [flags] text...

Text arguments are joined by spaces; a literal "\n" starts a new line. With
flag -i, pathcli starts an interactive session, reading one text per line.
Lines starting with a colon are commands:

	:stats            show the font cache
	:clear            clear the font cache
	:font <key>       switch to another font (empty key selects the default)
	:format <f>       switch the output format
	:quit             end the session

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/glyphpath/core"
	"github.com/npillmayer/glyphpath/core/parameters"
	"github.com/npillmayer/glyphpath/core/path"
	"github.com/npillmayer/glyphpath/engine/layout"
	"github.com/npillmayer/glyphpath/engine/textsvg"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'glyphpath.engine'
func tracer() tracing.Trace {
	return tracing.Select("glyphpath.engine")
}

// Output formats
const (
	FormatSVG     = "svg"
	FormatDebug   = "debug"
	FormatPath    = "path"
	FormatElement = "element"
	FormatMetrics = "metrics"
	FormatBBox    = "bbox"
)

var formats = []string{FormatSVG, FormatDebug, FormatPath, FormatElement, FormatMetrics, FormatBBox}

func main() {
	initDisplay()

	// command line flags
	fontkey := flag.String("font", "", "Font key (file name below the font roots)")
	size := flag.Float64("size", layout.DefaultFontSize, "Font size")
	anchor := flag.String("anchor", "", "Anchor, e.g. \"center middle\"")
	x := flag.Float64("x", 0, "Horizontal position")
	y := flag.Float64("y", 0, "Vertical position")
	align := flag.String("align", layout.AlignLeft, "Text alignment [left|center|right]")
	mode := flag.String("mode", layout.Horizontally, "Writing mode [horizontal|vertical]")
	lineHeight := flag.Float64("line-height", layout.DefaultLineHeight, "Line height, multiple of the font size")
	letterSpacing := flag.Float64("letter-spacing", 0, "Letter spacing in em")
	tracking := flag.Float64("tracking", 0, "Tracking in 1/1000 em")
	noKerning := flag.Bool("no-kerning", false, "Disable kerning")
	arc := flag.Float64("arc", 0, "Bend text along an arc of this angle (degrees)")
	format := flag.String("format", FormatSVG, "Output format ["+strings.Join(formats, "|")+"]")
	out := flag.String("out", "", "Output file (default stdout)")
	fontsRoot := flag.String("fonts", "fonts", "Root directory of fonts")
	uploadsRoot := flag.String("uploads", "uploads", "Root directory of uploaded fonts")
	systemFonts := flag.Bool("system-fonts", false, "Look up fonts installed on the system")
	maxBytes := flag.Int64("max-bytes", parameters.DefaultCacheBytes, "Ceiling of the font cache in bytes")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	interactive := flag.Bool("i", false, "Interactive mode")
	flag.Parse()

	// set up configuration and logging
	conf := testconfig.Conf{}
	for k, v := range parameters.Defaults() {
		conf[k] = v
	}
	for k := range conf {
		if strings.HasPrefix(k, "trace.glyphpath.") {
			conf[k] = *tlevel
		}
	}
	conf[parameters.P_FONTS_ROOT] = *fontsRoot
	conf[parameters.P_UPLOADS_ROOT] = *uploadsRoot
	conf[parameters.P_DEFAULT_FONT] = *fontsRoot + "/default.ttf"
	conf[parameters.P_SYSTEM_LOOKUP] = *systemFonts
	conf[parameters.P_CACHE_MAX] = strconv.FormatInt(*maxBytes, 10)
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", *tlevel)

	opts := layout.TextOptions{
		FontSize:      *size,
		LetterSpacing: *letterSpacing,
		Tracking:      *tracking,
		Anchor:        *anchor,
		X:             *x,
		Y:             *y,
		LineHeight:    *lineHeight,
		TextAlign:     *align,
		WritingMode:   *mode,
		Font:          *fontkey,
	}
	if *noKerning {
		off := false
		opts.Kerning = &off
	}
	if *arc != 0 {
		opts.Envelope = &layout.Envelope{Arc: &layout.ArcOptions{Angle: *arc}}
	}
	if !isFormat(*format) {
		pterm.Error.Printfln("unknown output format %q", *format)
		os.Exit(2)
	}
	engine := textsvg.FromSettings(parameters.Read(conf))
	r := &Renderer{engine: engine, opts: opts, format: *format, out: *out}

	if *interactive {
		intp, err := NewIntp(r)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(3)
		}
		pterm.Info.Println("Welcome to glyphpath") // colored welcome message
		pterm.Info.Println("Quit with <ctrl>D or :quit")
		intp.REPL()
		return
	}
	if flag.NArg() == 0 {
		pterm.Error.Println("no text given")
		flag.Usage()
		os.Exit(2)
	}
	if err := r.Render(context.Background(), TextArg(flag.Args())); err != nil {
		core.UserError(err)
		os.Exit(4)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// TextArg joins command line arguments to a text, turning a literal "\n"
// into a line break.
func TextArg(args []string) string {
	return strings.ReplaceAll(strings.Join(args, " "), `\n`, "\n")
}

func isFormat(f string) bool {
	for _, ff := range formats {
		if f == ff {
			return true
		}
	}
	return false
}

// Renderer renders texts with fixed options to a fixed output.
type Renderer struct {
	engine *textsvg.Engine
	opts   layout.TextOptions
	format string
	out    string // file name, or empty for stdout
}

// Output renders text in the renderer's format.
func (r *Renderer) Output(ctx context.Context, text string) (string, error) {
	e := r.engine
	switch r.format {
	case FormatDebug:
		return e.SynthesizeDocument(ctx, text, r.opts, true)
	case FormatPath:
		return e.PathData(ctx, text, r.opts)
	case FormatElement:
		return e.PathElement(ctx, text, r.opts)
	case FormatMetrics:
		m, err := e.ComputeMetrics(ctx, text, r.opts)
		if err != nil {
			return "", err
		}
		j, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return "", core.WrapError(err, core.EINTERNAL, "cannot encode metrics")
		}
		return string(j), nil
	case FormatBBox:
		b, err := e.BoundingBox(ctx, text, r.opts)
		if err != nil {
			return "", err
		}
		return strings.Join([]string{path.FormatNumber(b.X1), path.FormatNumber(b.Y1),
			path.FormatNumber(b.X2), path.FormatNumber(b.Y2)}, " "), nil
	}
	return e.SynthesizeDocument(ctx, text, r.opts, false)
}

// Render renders text and writes the result.
func (r *Renderer) Render(ctx context.Context, text string) error {
	s, err := r.Output(ctx, text)
	if err != nil {
		return err
	}
	if r.out == "" {
		fmt.Println(s)
		return nil
	}
	if err = os.WriteFile(r.out, []byte(s+"\n"), 0644); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write %s", r.out)
	}
	tracer().Infof("output written to %s", r.out)
	return nil
}

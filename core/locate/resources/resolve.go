package resources

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/glyphpath/core"
	"github.com/npillmayer/glyphpath/core/font"
	"github.com/npillmayer/glyphpath/core/parameters"
	"golang.org/x/image/font/gofont/goregular"
)

// NotFound returns an application error for a missing font resource.
func NotFound(res string) error {
	e := fmt.Errorf("resouce missing: %v", res)
	if res == "" {
		res = "<default>"
	}
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

// PackagedFont is the source path reported for the packaged Go Sans font.
const PackagedFont = "packaged:goregular"

// FontSource is a resolved font file.
type FontSource struct {
	Path string // resolved file path, or PackagedFont
	Size int64  // size of the file in bytes
}

// FontLoader resolves font keys to files and parses them.
type FontLoader struct {
	FontsRoot    string
	UploadsRoot  string
	DefaultFont  string
	SystemLookup bool
	// findSystemFont is findfont.Find, replaceable for tests
	findSystemFont func(string) (string, error)
}

// NewFontLoader creates a loader from configuration settings.
func NewFontLoader(s parameters.Settings) *FontLoader {
	return &FontLoader{
		FontsRoot:      s.FontsRoot,
		UploadsRoot:    s.UploadsRoot,
		DefaultFont:    s.DefaultFont,
		SystemLookup:   s.SystemLookup,
		findSystemFont: findfont.Find,
	}
}

// SanitizeKey removes leading parent-directory segments, redundant separators
// and dot segments from a font key. The result is a relative path which never
// leaves its base directory lexically.
func SanitizeKey(key string) string {
	key = strings.ReplaceAll(key, "\\", "/")
	key = filepath.Clean("/" + filepath.FromSlash(key))
	return strings.TrimLeft(key, string(filepath.Separator))
}

// Within joins rel to base, canonicalizes the result and returns it if it
// is a descendant of base. Non-existing files are reported as not within.
func Within(base, rel string) (string, bool) {
	if base == "" || rel == "" {
		return "", false
	}
	root, err := canonical(base)
	if err != nil {
		return "", false
	}
	candidate, err := canonical(filepath.Join(root, rel))
	if err != nil {
		return "", false
	}
	r, err := filepath.Rel(root, candidate)
	if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", false
	}
	return candidate, true
}

func canonical(p string) (string, error) {
	p, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(p)
}

// Candidates lists the file names tried for a key, in order.
func (l *FontLoader) Candidates(key string) [][2]string {
	clean := SanitizeKey(key)
	base := filepath.Base(clean)
	return [][2]string{
		{l.FontsRoot, clean},
		{l.UploadsRoot, clean},
		{l.FontsRoot, base},
		{l.UploadsRoot, base},
	}
}

// Locate resolves a font key to a font file and stats it. The empty key
// denotes the default font. Locate fails with an error of kind
// core.ErrFontNotFound.
func (l *FontLoader) Locate(ctx context.Context, key string) (FontSource, error) {
	if err := ctx.Err(); err != nil {
		return FontSource{}, err
	}
	if key == "" {
		return l.locateDefault(), nil
	}
	if SanitizeKey(key) == "" {
		return FontSource{}, NotFound(key)
	}
	for _, c := range l.Candidates(key) {
		if p, ok := Within(c[0], c[1]); ok {
			if src, err := stat(p); err == nil {
				tracer().Debugf("font %s resolved to %s", key, p)
				return src, nil
			}
		}
	}
	if l.SystemLookup && l.findSystemFont != nil {
		base := filepath.Base(SanitizeKey(key))
		if p, err := l.findSystemFont(base); err == nil && p != "" {
			if src, err := stat(p); err == nil {
				tracer().Debugf("%s is a system font", key)
				return src, nil
			}
		}
	}
	tracer().Infof("font %s not found", key)
	return FontSource{}, NotFound(key)
}

func (l *FontLoader) locateDefault() FontSource {
	if l.DefaultFont != "" {
		if p, err := canonical(l.DefaultFont); err == nil {
			if src, err := stat(p); err == nil {
				return src
			}
		}
	}
	tracer().Debugf("default font file not present, using packaged font")
	return FontSource{Path: PackagedFont, Size: int64(len(goregular.TTF))}
}

func stat(p string) (FontSource, error) {
	fi, err := os.Stat(p)
	if err != nil {
		return FontSource{}, err
	}
	if !fi.Mode().IsRegular() {
		return FontSource{}, errors.New("not a regular file: " + p)
	}
	return FontSource{Path: p, Size: fi.Size()}, nil
}

// Load reads and parses a located font. It fails with an error of kind
// core.ErrFontParse for malformed font files.
func (l *FontLoader) Load(ctx context.Context, src FontSource) (font.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src.Path == PackagedFont {
		return font.FallbackFont(), nil
	}
	bytez, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "font not readable: %s", filepath.Base(src.Path))
	}
	f, err := font.Parse(bytez)
	if err != nil {
		tracer().Errorf("cannot parse font %s: %v", src.Path, err)
		return nil, err
	}
	if f.Fontname == "" {
		f.Fontname = filepath.Base(src.Path)
	}
	tracer().Infof("loaded font %s from %s", f.Fontname, src.Path)
	return f, nil
}

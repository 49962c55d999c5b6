/*
Package parameters holds the configuration keys of glyphpath together with
their defaults.

Configuration is read from a schuko.Configuration. Keys missing from the
configuration fall back to the defaults listed in Defaults().

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"strconv"

	"github.com/npillmayer/schuko"
)

// Configuration keys
const (
	P_FONTS_ROOT    = "fonts.default-root"  // directory of packaged fonts
	P_UPLOADS_ROOT  = "fonts.uploads-root"  // directory of user supplied fonts
	P_DEFAULT_FONT  = "fonts.default-file"  // font used if no font key is given
	P_SYSTEM_LOOKUP = "fonts.system-lookup" // search system font directories as a last resort
	P_CACHE_MAX     = "cache.max-bytes"     // ceiling of the font cache in bytes
	P_TRACE_ADAPTER = "tracing.adapter"     // schuko tracing adapter key
)

// DefaultCacheBytes is the default ceiling of the font cache (256 MiB).
const DefaultCacheBytes = 256 * 1024 * 1024

// Defaults returns the default value for every configuration key, suitable
// for being loaded into a configuration.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		P_FONTS_ROOT:    "fonts",
		P_UPLOADS_ROOT:  "uploads",
		P_DEFAULT_FONT:  "fonts/default.ttf",
		P_SYSTEM_LOOKUP: false,
		P_CACHE_MAX:     DefaultCacheBytes,
		P_TRACE_ADAPTER: "go",

		"trace.root":                "Error",
		"trace.glyphpath.fonts":     "Error",
		"trace.glyphpath.resources": "Error",
		"trace.glyphpath.layout":    "Error",
		"trace.glyphpath.glyphing":  "Error",
		"trace.glyphpath.svg":       "Error",
		"trace.glyphpath.engine":    "Error",
	}
}

// Settings are the typed configuration values consumed by the font cache
// and its loader.
type Settings struct {
	FontsRoot    string
	UploadsRoot  string
	DefaultFont  string
	SystemLookup bool
	MaxBytes     int64
}

// Read extracts Settings from conf. Keys not set in conf get their default
// value.
func Read(conf schuko.Configuration) Settings {
	defaults := Defaults()
	str := func(key string) string {
		if conf != nil && conf.IsSet(key) {
			return conf.GetString(key)
		}
		return defaults[key].(string)
	}
	s := Settings{
		FontsRoot:   str(P_FONTS_ROOT),
		UploadsRoot: str(P_UPLOADS_ROOT),
		DefaultFont: str(P_DEFAULT_FONT),
		MaxBytes:    DefaultCacheBytes,
	}
	if conf != nil && conf.IsSet(P_SYSTEM_LOOKUP) {
		s.SystemLookup = conf.GetBool(P_SYSTEM_LOOKUP)
	}
	if conf != nil && conf.IsSet(P_CACHE_MAX) {
		// GetInt of some adapters drops 64-bit values, go through the string
		if n, err := strconv.ParseInt(conf.GetString(P_CACHE_MAX), 10, 64); err == nil && n > 0 {
			s.MaxBytes = n
		}
	}
	return s
}

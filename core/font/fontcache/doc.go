/*
Package fontcache manages a cache for loaded fonts.

The cache maps font keys to parsed fonts. It is bounded by the total size in
bytes of the font files it holds. If loading a font would exceed this
ceiling, the least recently accessed fonts are evicted first. A single font
larger than the ceiling is kept anyway; the ceiling is advisory for it.

Concurrent requests for a font not yet in the cache share a single load.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontcache

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphpath.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphpath.fonts")
}

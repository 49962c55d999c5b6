/*
Package resources resolves font resources for an application.

Fonts are addressed by keys which are relative file names, e.g.
"Roboto/Roboto-Regular.ttf". A key is sanitized and then looked up in the
following order:

   1. the sanitized key below the default fonts root
   2. the sanitized key below the uploads root
   3. the key's base name below the default fonts root
   4. the key's base name below the uploads root
   5. the key's base name as a system font (optional)

The first existing file wins. Every candidate below a root is canonicalized
(symlinks resolved) and rejected unless it is a descendant of that root.

The empty key denotes the default font. It resolves to a configured font file
or, if that file does not exist, to the packaged Go Sans font.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'glyphpath.resources'.
func tracer() tracing.Trace {
	return tracing.Select("glyphpath.resources")
}

/*
Package path holds vector path commands as produced from glyph outlines.

A Path is a flat sequence of commands in SVG user space (y-axis pointing
down). Paths serialize to SVG path data with every coordinate rounded to
two decimal places.

Bounding boxes are computed over the control polygon of a path, i.e. over
endpoints and control points. For curves this is a superset of the true
geometric extent. Clients needing tight boxes have to flatten curves first.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package path

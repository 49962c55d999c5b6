// Package percent implements a type for fill levels, such as the usage of
// the font cache.
package percent

import (
	"math"
	"strconv"
	"strings"
)

// Percent is a whole-numbered fill level in [0…100].
type Percent uint8

// FromFloat rounds f to a Percent, clamping values outside [0…100].
func FromFloat(f float64) Percent {
	switch {
	case f <= 0 || math.IsNaN(f):
		return Percent(0)
	case f >= 100:
		return Percent(100)
	}
	return Percent(math.Round(f))
}

// Of returns part as a percentage of whole. A whole of 0 yields 0%.
func Of(part, whole int64) Percent {
	if whole <= 0 {
		return Percent(0)
	}
	return FromFloat(float64(part) / float64(whole) * 100)
}

// Ratio is p as a fraction of 1.
func (p Percent) Ratio() float64 {
	return float64(p) / 100
}

// Bar draws p as a gauge of width runes, e.g. "[####------]".
func (p Percent) Bar(width int) string {
	if width <= 0 {
		return "[]"
	}
	filled := int(math.Round(p.Ratio() * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}

package config

import (
	"regexp"
	"strconv"
)

// RGB is a color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// Fallback colors for unparseable hex strings.
var (
	White = RGB{1, 1, 1}
	Black = RGB{0, 0, 0}
)

var hexPattern = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)

// ParseHex parses a 6-digit hex color ("#rrggbb" or "rrggbb", any case).
// Returns fallback and false when s does not match.
func ParseHex(s string, fallback RGB) (RGB, bool) {
	m := hexPattern.FindStringSubmatch(s)
	if m == nil {
		return fallback, false
	}
	return RGB{
		R: channel(m[1]),
		G: channel(m[2]),
		B: channel(m[3]),
	}, true
}

// channel converts two hex digits to [0, 1]. The regexp guarantees validity.
func channel(hex string) float64 {
	v, _ := strconv.ParseUint(hex, 16, 8)
	return float64(v) / 255
}

// Bytes returns the color as 8-bit channels.
func (c RGB) Bytes() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

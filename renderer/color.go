// Package renderer submits the particle buffers for drawing, either through
// raylib point sprites or a software context that writes PNG frames.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/config"
)

const (
	DefaultPointSize    = 3.5
	DefaultAlphaDiscard = 0.01
)

// ToColors converts a flat RGBA float buffer (4 per particle, 0..1) into
// raylib colors, appending to dst.
func ToColors(colors []float32, dst []rl.Color) []rl.Color {
	n := len(colors) / 4
	for i := 0; i < n; i++ {
		o := i * 4
		dst = append(dst, rl.Color{
			R: unitToByte(colors[o]),
			G: unitToByte(colors[o+1]),
			B: unitToByte(colors[o+2]),
			A: unitToByte(colors[o+3]),
		})
	}
	return dst
}

// BackgroundColor converts a parsed config color into an opaque raylib color.
func BackgroundColor(c config.RGB) rl.Color {
	r, g, b := c.Bytes()
	return rl.Color{R: r, G: g, B: b, A: 255}
}

func unitToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// drawCount clamps count to what both buffers can serve.
func drawCount(count int, positions []float32, colors int) int {
	if n := len(positions) / 2; count > n {
		count = n
	}
	if count > colors {
		count = colors
	}
	if count < 0 {
		return 0
	}
	return count
}

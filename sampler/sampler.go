// Package sampler turns a logo raster into particle seeds.
package sampler

import (
	"image"
	"image/color"

	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/particles"
)

// DefaultAlphaThreshold skips pixels with alpha at or below 10/255.
const DefaultAlphaThreshold = 10

// Pixels is a square RGBA buffer, 8 bits per channel, row-major.
type Pixels struct {
	Side int
	Pix  []uint8
}

// FromImage copies img into a side×side buffer anchored at its bounds'
// minimum point. Pixels outside img are transparent.
func FromImage(img image.Image, side int) Pixels {
	px := Pixels{Side: side, Pix: make([]uint8, side*side*4)}
	if img == nil {
		return px
	}
	b := img.Bounds()
	for y := 0; y < side && b.Min.Y+y < b.Max.Y; y++ {
		for x := 0; x < side && b.Min.X+x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			o := (y*side + x) * 4
			px.Pix[o] = c.R
			px.Pix[o+1] = c.G
			px.Pix[o+2] = c.B
			px.Pix[o+3] = c.A
		}
	}
	return px
}

// Sample emits one particle per pixel whose alpha exceeds threshold.
// Particles are centered on (cx, cy) at one unit per pixel, in row-major
// order, colored by the pixel's channels multiplied by tint with the
// pixel's own alpha.
func Sample(px Pixels, tint config.RGB, threshold uint8, cx, cy float64) *particles.Store {
	side := px.Side
	if side <= 0 || len(px.Pix) < side*side*4 {
		return particles.New(0)
	}

	half := float64(side) / 2
	s := particles.New(countAbove(px, threshold))

	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			o := (i*side + j) * 4
			a := px.Pix[o+3]
			if a <= threshold {
				continue
			}

			x := cx + (float64(j) - half)
			y := cy + (float64(i) - half)

			s.Add(x, y,
				float32(float64(px.Pix[o])/255*tint.R),
				float32(float64(px.Pix[o+1])/255*tint.G),
				float32(float64(px.Pix[o+2])/255*tint.B),
				float32(float64(a)/255),
			)
		}
	}
	return s
}

// countAbove counts pixels that will be emitted so the store is sized once.
func countAbove(px Pixels, threshold uint8) int {
	n := 0
	for o := 3; o < px.Side*px.Side*4; o += 4 {
		if px.Pix[o] > threshold {
			n++
		}
	}
	return n
}

package sampler

import (
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/dissolve/config"
)

// pixels builds a side×side buffer from per-pixel RGBA quads.
func pixels(side int, quads ...[4]uint8) Pixels {
	px := Pixels{Side: side, Pix: make([]uint8, side*side*4)}
	for i, q := range quads {
		copy(px.Pix[i*4:], q[:])
	}
	return px
}

func TestSampleSingleOpaquePixel(t *testing.T) {
	// 2x2: one opaque black pixel, the rest at or below the threshold
	px := pixels(2,
		[4]uint8{0, 0, 0, 255},
		[4]uint8{255, 255, 255, 10},
		[4]uint8{255, 255, 255, 0},
		[4]uint8{255, 255, 255, 10},
	)
	tint, _ := config.ParseHex("#ffffff", config.White)

	s := Sample(px, tint, DefaultAlphaThreshold, 0, 0)

	require.Equal(t, 1, s.Len())
	r, g, b, a := s.Color(0)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, [4]float32{r, g, b, a})

	// row 0, col 0 -> center + (0 - 1, 0 - 1)
	x, y := s.Position(0)
	assert.Equal(t, -1.0, x)
	assert.Equal(t, -1.0, y)
}

func TestSampleInvalidTintIsWhite(t *testing.T) {
	px := pixels(1, [4]uint8{255, 128, 0, 255})
	tint, ok := config.ParseHex("notacolor", config.White)
	require.False(t, ok)
	assert.Equal(t, config.RGB{R: 1, G: 1, B: 1}, tint)

	s := Sample(px, tint, DefaultAlphaThreshold, 0, 0)
	require.Equal(t, 1, s.Len())
	r, g, b, _ := s.Color(0)
	assert.InDelta(t, 1.0, r, 1e-6)
	assert.InDelta(t, 128.0/255, g, 1e-6)
	assert.InDelta(t, 0.0, b, 1e-6)
}

func TestSampleTintMultiplies(t *testing.T) {
	px := pixels(1, [4]uint8{255, 255, 255, 128})
	tint := config.RGB{R: 0.5, G: 0.25, B: 0}

	s := Sample(px, tint, DefaultAlphaThreshold, 0, 0)
	require.Equal(t, 1, s.Len())

	r, g, b, a := s.Color(0)
	assert.InDelta(t, 0.5, r, 1e-6)
	assert.InDelta(t, 0.25, g, 1e-6)
	assert.InDelta(t, 0.0, b, 1e-6)
	assert.InDelta(t, 128.0/255, a, 1e-6)
}

func TestSampleAlphaThresholdProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const side = 32

	for trial := 0; trial < 20; trial++ {
		px := Pixels{Side: side, Pix: make([]uint8, side*side*4)}
		rng.Read(px.Pix)

		want := 0
		for o := 3; o < len(px.Pix); o += 4 {
			if px.Pix[o] > DefaultAlphaThreshold {
				want++
			}
		}

		s := Sample(px, config.White, DefaultAlphaThreshold, 100, 100)
		require.Equal(t, want, s.Len())

		// Every particle maps back to a pixel above the threshold
		for i := 0; i < s.Len(); i++ {
			x, y := s.Origin(i)
			col := int(x - 100 + side/2)
			row := int(y - 100 + side/2)
			alpha := px.Pix[(row*side+col)*4+3]
			assert.Greater(t, alpha, uint8(DefaultAlphaThreshold))

			_, _, _, a := s.Color(i)
			assert.InDelta(t, float64(alpha)/255, float64(a), 1e-6)
		}
	}
}

func TestSampleRowMajorCentered(t *testing.T) {
	opaque := [4]uint8{10, 20, 30, 255}
	px := pixels(3, opaque, opaque, opaque, opaque, opaque, opaque, opaque, opaque, opaque)

	s := Sample(px, config.White, DefaultAlphaThreshold, 50, 60)
	require.Equal(t, 9, s.Len())

	// index 5 -> row 1, col 2 -> (50 + 2 - 1.5, 60 + 1 - 1.5)
	x, y := s.Position(5)
	assert.Equal(t, 50.5, x)
	assert.Equal(t, 59.5, y)
}

func TestSampleEmptyBuffer(t *testing.T) {
	s := Sample(Pixels{}, config.White, DefaultAlphaThreshold, 0, 0)
	assert.Equal(t, 0, s.Len())

	s = Sample(Pixels{Side: 4, Pix: make([]uint8, 3)}, config.White, DefaultAlphaThreshold, 0, 0)
	assert.Equal(t, 0, s.Len())
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	px := FromImage(img, 3)

	require.Equal(t, 3, px.Side)
	assert.Equal(t, []uint8{200, 100, 50, 255}, px.Pix[4:8])
	// outside the source image stays transparent
	assert.Equal(t, uint8(0), px.Pix[(2*3+2)*4+3])
}

func TestFitLeavesMargin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for i := range src.Pix {
		src.Pix[i] = 255
	}

	px := Fit(src, 100, DefaultScale)

	require.Equal(t, 100, px.Side)
	alphaAt := func(x, y int) uint8 { return px.Pix[(y*100+x)*4+3] }
	assert.Equal(t, uint8(0), alphaAt(0, 0), "corner margin is transparent")
	assert.Equal(t, uint8(0), alphaAt(2, 50), "left margin is transparent")
	assert.Greater(t, alphaAt(50, 50), uint8(250), "center is opaque")
}

func TestLoadLogo(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	px, err := LoadLogo(path, 20, DefaultScale)
	require.NoError(t, err)

	s := Sample(px, config.White, DefaultAlphaThreshold, 0, 0)
	assert.Greater(t, s.Len(), 0)
	assert.Less(t, s.Len(), 20*20)
}

func TestLoadLogoMissing(t *testing.T) {
	_, err := LoadLogo(filepath.Join(t.TempDir(), "nope.png"), 10, DefaultScale)
	assert.Error(t, err)
}

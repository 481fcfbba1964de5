package renderer

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/dissolve/config"
)

// Snapshot renders the particle buffers into an offscreen software context.
// It implements particles.Sink so it can stand in for the window renderer.
type Snapshot struct {
	ctx *gg.Context

	width, height int
	background    gg.RGBA
	radius        float64
	alphaDiscard  float32

	positions []float32
	colors    []float32

	err error
}

// NewSnapshot creates a snapshot renderer for a canvas of the given size.
func NewSnapshot(width, height int, cfg *config.Config) *Snapshot {
	size := cfg.Render.PointSize
	if size <= 0 {
		size = DefaultPointSize
	}
	discard := float32(cfg.Render.AlphaDiscard)
	if discard <= 0 {
		discard = DefaultAlphaDiscard
	}
	bg := cfg.Derived.Background
	return &Snapshot{
		ctx:          gg.NewContext(width, height),
		width:        width,
		height:       height,
		background:   gg.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 1},
		radius:       size / 2,
		alphaDiscard: discard,
	}
}

// UploadPositions retains the position buffer for the next Draw.
func (s *Snapshot) UploadPositions(positions []float32) {
	s.positions = positions
}

// UploadColors retains the color buffer for the next Draw.
func (s *Snapshot) UploadColors(colors []float32) {
	s.colors = colors
}

// Draw clears the canvas and fills one circle per particle. Runs of
// particles sharing a color are filled as a single path.
func (s *Snapshot) Draw(count int) {
	s.ctx.ClearWithColor(s.background)

	count = drawCount(count, s.positions, len(s.colors)/4)
	pending := false
	var cur [4]float32

	flush := func() {
		if !pending {
			return
		}
		s.ctx.SetRGBA(float64(cur[0]), float64(cur[1]), float64(cur[2]), float64(cur[3]))
		if err := s.ctx.Fill(); err != nil && s.err == nil {
			s.err = err
		}
		pending = false
	}

	for i := 0; i < count; i++ {
		c := [4]float32{s.colors[i*4], s.colors[i*4+1], s.colors[i*4+2], s.colors[i*4+3]}
		if c[3] < s.alphaDiscard {
			continue
		}
		if pending && c != cur {
			flush()
		}
		cur = c
		s.ctx.DrawCircle(float64(s.positions[i*2]), float64(s.positions[i*2+1]), s.radius)
		pending = true
	}
	flush()
}

// Err returns the first fill error since the snapshot was created.
func (s *Snapshot) Err() error {
	return s.err
}

// Image returns the last drawn frame.
func (s *Snapshot) Image() image.Image {
	return s.ctx.Image()
}

// SavePNG writes the last drawn frame to path.
func (s *Snapshot) SavePNG(path string) error {
	if err := s.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", path, err)
	}
	return nil
}

// Size returns the canvas dimensions.
func (s *Snapshot) Size() (width, height int) {
	return s.width, s.height
}

// Close releases the drawing context.
func (s *Snapshot) Close() error {
	return s.ctx.Close()
}

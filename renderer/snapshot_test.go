package renderer

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/dissolve/config"
)

func snapshotConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Render.PointSize = 8
	return cfg
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestSnapshotClearsWithBackground(t *testing.T) {
	s := NewSnapshot(16, 16, snapshotConfig(t))
	defer s.Close()

	s.Draw(0)

	img := s.Image()
	r, g, b, a := img.At(3, 3).RGBA()
	if !near(uint8(r>>8), 20) || !near(uint8(g>>8), 20) || !near(uint8(b>>8), 20) || uint8(a>>8) != 255 {
		t.Errorf("expected #141414 background, got (%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestSnapshotDrawsParticles(t *testing.T) {
	s := NewSnapshot(32, 32, snapshotConfig(t))
	defer s.Close()

	s.UploadColors([]float32{
		1, 1, 1, 1,
		1, 0, 0, 0.005, // below the discard threshold
	})
	s.UploadPositions([]float32{8, 8, 24, 24})
	s.Draw(2)

	if err := s.Err(); err != nil {
		t.Fatalf("draw error: %v", err)
	}

	img := s.Image()
	r, _, _, _ := img.At(8, 8).RGBA()
	if uint8(r>>8) < 200 {
		t.Errorf("expected white particle at (8,8), got red %d", r>>8)
	}

	r, g, b, _ := img.At(24, 24).RGBA()
	if !near(uint8(r>>8), 20) || !near(uint8(g>>8), 20) || !near(uint8(b>>8), 20) {
		t.Errorf("discarded particle should leave background, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestSnapshotSavePNG(t *testing.T) {
	s := NewSnapshot(10, 12, snapshotConfig(t))
	defer s.Close()

	s.Draw(0)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 12 {
		t.Errorf("expected 10x12, got %dx%d", b.Dx(), b.Dy())
	}
}

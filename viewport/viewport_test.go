package viewport

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	vp := New(1280, 800, 0)

	if vp.DPR != 1 {
		t.Errorf("expected DPR 1 for non-positive input, got %f", vp.DPR)
	}
	if vp.Width != 1280 || vp.Height != 800 {
		t.Errorf("expected 1280x800, got %fx%f", vp.Width, vp.Height)
	}
}

func TestCanvasSizeAndCenter(t *testing.T) {
	vp := New(1280, 800, 2)

	w, h := vp.CanvasSize()
	if w != 2560 || h != 1600 {
		t.Errorf("expected canvas 2560x1600, got %fx%f", w, h)
	}

	cx, cy := vp.Center()
	if cx != 1280 || cy != 800 {
		t.Errorf("expected center (1280, 800), got (%f, %f)", cx, cy)
	}
}

func TestToCanvasRoundtrip(t *testing.T) {
	vp := New(1280, 800, 1.5)

	testCases := []struct{ sx, sy float64 }{
		{640, 400}, // center
		{0, 0},     // top-left
		{1279, 799},
	}

	for _, tc := range testCases {
		cx, cy := vp.ToCanvas(tc.sx, tc.sy)
		if math.Abs(cx-tc.sx*1.5) > 1e-9 || math.Abs(cy-tc.sy*1.5) > 1e-9 {
			t.Errorf("ToCanvas(%f,%f) = (%f,%f)", tc.sx, tc.sy, cx, cy)
		}
		sx, sy := vp.ToScreen(cx, cy)
		if math.Abs(sx-tc.sx) > 1e-9 || math.Abs(sy-tc.sy) > 1e-9 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, cx, cy, sx, sy)
		}
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		changed bool
	}{
		{"same size", 1280, 800, false},
		{"wider", 1920, 800, true},
		{"taller", 1280, 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := New(1280, 800, 1)
			if got := vp.Resize(tt.w, tt.h); got != tt.changed {
				t.Errorf("Resize(%f, %f) = %v, want %v", tt.w, tt.h, got, tt.changed)
			}
			if vp.Width != tt.w || vp.Height != tt.h {
				t.Errorf("expected %fx%f, got %fx%f", tt.w, tt.h, vp.Width, vp.Height)
			}
		})
	}
}

func TestSetDPR(t *testing.T) {
	vp := New(100, 100, 1)

	if vp.SetDPR(1) {
		t.Error("same DPR should not report a change")
	}
	if vp.SetDPR(-2) {
		t.Error("negative DPR should be ignored")
	}
	if !vp.SetDPR(2) {
		t.Error("new DPR should report a change")
	}
	cx, cy := vp.Center()
	if cx != 100 || cy != 100 {
		t.Errorf("expected center (100, 100) at DPR 2, got (%f, %f)", cx, cy)
	}
}

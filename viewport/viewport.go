// Package viewport maps the logical window onto the device-pixel canvas the
// particles live in.
package viewport

// Viewport tracks the logical window size and device pixel ratio.
type Viewport struct {
	// Logical window dimensions
	Width, Height float64

	// Device pixel ratio (canvas pixels per logical pixel)
	DPR float64
}

// New creates a viewport. A non-positive dpr is treated as 1.
func New(width, height, dpr float64) *Viewport {
	if dpr <= 0 {
		dpr = 1
	}
	return &Viewport{Width: width, Height: height, DPR: dpr}
}

// CanvasSize returns the canvas dimensions in device pixels.
func (v *Viewport) CanvasSize() (w, h float64) {
	return v.Width * v.DPR, v.Height * v.DPR
}

// Center returns the canvas midpoint in device pixels.
func (v *Viewport) Center() (cx, cy float64) {
	w, h := v.CanvasSize()
	return w / 2, h / 2
}

// ToCanvas converts window coordinates to canvas device pixels.
func (v *Viewport) ToCanvas(sx, sy float64) (cx, cy float64) {
	return sx * v.DPR, sy * v.DPR
}

// ToScreen converts canvas device pixels back to window coordinates.
func (v *Viewport) ToScreen(cx, cy float64) (sx, sy float64) {
	return cx / v.DPR, cy / v.DPR
}

// Resize updates the logical dimensions and reports whether they changed.
func (v *Viewport) Resize(width, height float64) bool {
	if width == v.Width && height == v.Height {
		return false
	}
	v.Width = width
	v.Height = height
	return true
}

// SetDPR updates the device pixel ratio and reports whether it changed.
func (v *Viewport) SetDPR(dpr float64) bool {
	if dpr <= 0 || dpr == v.DPR {
		return false
	}
	v.DPR = dpr
	return true
}

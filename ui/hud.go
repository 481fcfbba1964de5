package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds the values shown in the heads-up display.
type HUDData struct {
	Particles     int
	Countdown     int
	ActivityTicks int
	Tick          int32
	FPS           int32
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
	visible  bool
}

// NewHUD creates a hidden HUD.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Visible reports whether the HUD is shown.
func (h *HUD) Visible() bool {
	return h.visible
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	if !h.visible {
		return
	}

	r := h.renderer
	x, y := r.Theme.Padding, r.Theme.Padding
	width := int32(220)
	r.DrawPanel(x-4, y-4, width+8, 4*r.Theme.LineHeight+12)

	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", data.Particles))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	r.DrawBar(x, y, "Active", ActivityFraction(data.Countdown, data.ActivityTicks), width)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	if !h.visible {
		return
	}
	rl.DrawText("[H] HUD  [Tab] tuning  [F11] fullscreen", 10, screenHeight-22, 14, rl.Gray)
}

// ActivityFraction returns the share of the activity budget remaining.
func ActivityFraction(countdown, budget int) float32 {
	if budget <= 0 || countdown <= 0 {
		return 0
	}
	return clamp01(float32(countdown) / float32(budget))
}

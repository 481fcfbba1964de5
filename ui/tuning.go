package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/physics"
)

// Slider describes one tunable physics constant.
type Slider struct {
	Label    string
	Min, Max float32
	Format   string
	Get      func(*physics.Params) float64
	Set      func(*physics.Params, float64)
}

// Apply clamps v into the slider range and stores it in p.
func (s Slider) Apply(p *physics.Params, v float32) {
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	s.Set(p, float64(v))
}

// TuningSliders returns the sliders shown by the tuning panel.
func TuningSliders() []Slider {
	return []Slider{
		{
			Label: "Distortion radius", Min: 100, Max: 6000, Format: "%.0f",
			Get: func(p *physics.Params) float64 { return p.DistortionRadius },
			Set: func(p *physics.Params, v float64) { p.DistortionRadius = v },
		},
		{
			Label: "Force strength", Min: 0.0005, Max: 0.01, Format: "%.4f",
			Get: func(p *physics.Params) float64 { return p.ForceStrength },
			Set: func(p *physics.Params, v float64) { p.ForceStrength = v },
		},
		{
			Label: "Max displacement", Min: 10, Max: 300, Format: "%.0f",
			Get: func(p *physics.Params) float64 { return p.MaxDisplacement },
			Set: func(p *physics.Params, v float64) { p.MaxDisplacement = v },
		},
		{
			Label: "Return force", Min: 0.005, Max: 0.1, Format: "%.3f",
			Get: func(p *physics.Params) float64 { return p.ReturnForce },
			Set: func(p *physics.Params, v float64) { p.ReturnForce = v },
		},
	}
}

// TuningPanel is a raygui panel of sliders over the integrator constants.
type TuningPanel struct {
	renderer *Renderer
	sliders  []Slider
	defaults physics.Params
	x, y     float32
	width    float32
	visible  bool
}

// NewTuningPanel creates a hidden panel anchored at (x, y). Reset restores
// defaults.
func NewTuningPanel(x, y, width float32, defaults physics.Params) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		sliders:  TuningSliders(),
		defaults: defaults,
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (t *TuningPanel) Toggle() bool {
	t.visible = !t.visible
	return t.visible
}

// Visible reports whether the panel is shown.
func (t *TuningPanel) Visible() bool {
	return t.visible
}

// Move re-anchors the panel, e.g. after a window resize.
func (t *TuningPanel) Move(x, y float32) {
	t.x = x
	t.y = y
}

// Draw renders the panel and returns the edited params and whether any
// value changed this frame.
func (t *TuningPanel) Draw(p physics.Params) (physics.Params, bool) {
	if !t.visible {
		return p, false
	}

	r := t.renderer
	pad := float32(r.Theme.Padding)
	rowHeight := float32(38)
	height := pad*3 + 20 + rowHeight*float32(len(t.sliders)) + 30
	r.DrawPanel(int32(t.x), int32(t.y), int32(t.width), int32(height))

	y := float32(r.DrawSectionHeader(int32(t.x+pad), int32(t.y+pad), "Physics"))
	barWidth := t.width - pad*2 - 70
	changed := false

	for _, s := range t.sliders {
		cur := float32(s.Get(&p))
		rl.DrawText(s.Label, int32(t.x+pad), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14

		next := gui.SliderBar(
			rl.Rectangle{X: t.x + pad, Y: y, Width: barWidth, Height: 16},
			"", "",
			cur, s.Min, s.Max,
		)
		rl.DrawText(fmt.Sprintf(s.Format, s.Get(&p)), int32(t.x+pad+barWidth+8), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
		if next != cur {
			s.Apply(&p, next)
			changed = true
		}
		y += rowHeight - 14
	}

	if gui.Button(rl.Rectangle{X: t.x + pad, Y: y, Width: 100, Height: 24}, "Reset") {
		p = t.defaults
		changed = true
	}

	return p, changed
}

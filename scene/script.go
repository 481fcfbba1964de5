package scene

import (
	"math"

	"github.com/pthm-cable/dissolve/viewport"
)

// Script supplies pointer positions for headless runs.
type Script interface {
	// Next returns the canvas position for tick, or ok=false for no event.
	Next(tick int32) (x, y float64, ok bool)
}

// Orbit circles a center point, one move per tick, for Duration ticks and
// then goes quiet so the integrator returns to idle.
type Orbit struct {
	CX, CY   float64
	Radius   float64
	Period   int32 // Ticks per revolution
	Duration int32 // Ticks that emit moves (0 = forever)
}

// NewOrbit circles the canvas center at a quarter of the shorter side.
func NewOrbit(vp *viewport.Viewport, duration int32) Orbit {
	cx, cy := vp.Center()
	w, h := vp.CanvasSize()
	return Orbit{
		CX:       cx,
		CY:       cy,
		Radius:   math.Min(w, h) / 4,
		Period:   240,
		Duration: duration,
	}
}

// Next implements Script.
func (o Orbit) Next(tick int32) (x, y float64, ok bool) {
	if o.Duration > 0 && tick >= o.Duration {
		return 0, 0, false
	}
	period := o.Period
	if period < 1 {
		period = 1
	}
	angle := 2 * math.Pi * float64(tick%period) / float64(period)
	return o.CX + o.Radius*math.Cos(angle), o.CY + o.Radius*math.Sin(angle), true
}

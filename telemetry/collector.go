package telemetry

import (
	"math"

	"github.com/pthm-cable/dissolve/particles"
	"github.com/pthm-cable/dissolve/physics"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Event counters for current window
	pointerMoves int
	resizes      int
	activeTicks  int
	repelled     int
	clamped      int

	displacements []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: simulated seconds per window
// dt: seconds per tick
func NewCollector(windowDurationSec, dt float64) *Collector {
	if dt <= 0 {
		dt = 1.0 / 60
	}
	ticks := int32(math.Round(windowDurationSec / dt))
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{
		windowDurationTicks: ticks,
		dt:                  dt,
	}
}

// RecordPointerMove records a pointer event.
func (c *Collector) RecordPointerMove() {
	c.pointerMoves++
}

// RecordResize records a viewport relayout.
func (c *Collector) RecordResize() {
	c.resizes++
}

// RecordStep folds one integrator step into the window.
func (c *Collector) RecordStep(res physics.StepResult) {
	if !res.Active {
		return
	}
	c.activeTicks++
	c.repelled += res.Repelled
	c.clamped += res.Clamped
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the counters and the store's current
// displacement, then resets for the next window.
func (c *Collector) Flush(currentTick int32, store *particles.Store) WindowStats {
	n := store.Len()
	c.displacements = c.displacements[:0]
	for i := 0; i < n; i++ {
		c.displacements = append(c.displacements, store.Displacement(i))
	}
	disp := ComputeDisplacementStats(c.displacements)

	ticks := currentTick - c.windowStartTick
	var activeFrac float64
	if ticks > 0 {
		activeFrac = float64(c.activeTicks) / float64(ticks)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Particles: n,

		PointerMoves: c.pointerMoves,
		Resizes:      c.resizes,
		ActiveTicks:  c.activeTicks,
		ActiveFrac:   activeFrac,
		Repelled:     c.repelled,
		Clamped:      c.clamped,

		DispMean:  disp.Mean,
		DispStd:   disp.Std,
		DispP50:   disp.P50,
		DispP90:   disp.P90,
		DispMax:   disp.Max,
		Displaced: disp.Displaced,
	}

	c.windowStartTick = currentTick
	c.pointerMoves = 0
	c.resizes = 0
	c.activeTicks = 0
	c.repelled = 0
	c.clamped = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

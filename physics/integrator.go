package physics

import (
	"math"

	"github.com/pthm-cable/dissolve/particles"
)

// StepResult reports what a Step did.
type StepResult struct {
	Active   bool // Per-particle work ran this tick
	Repelled int  // Particles inside the pointer radius
	Clamped  int  // Particles whose target exceeded MaxDisplacement
}

// Integrator is the idle/active state machine driving the store.
// It is owned by the tick loop; PointerMove must be called between ticks.
type Integrator struct {
	params Params

	pointerX, pointerY float64
	countdown          int
}

// NewIntegrator creates an idle integrator.
func NewIntegrator(p Params) *Integrator {
	return &Integrator{params: p}
}

// Params returns the current constants.
func (in *Integrator) Params() Params {
	return in.params
}

// SetParams replaces the constants. The countdown is left as is.
func (in *Integrator) SetParams(p Params) {
	in.params = p
}

// PointerMove records the pointer and restarts the activity countdown.
func (in *Integrator) PointerMove(x, y float64) {
	in.pointerX = x
	in.pointerY = y
	in.countdown = in.params.ActivityTicks
}

// Pointer returns the last recorded pointer position.
func (in *Integrator) Pointer() (x, y float64) {
	return in.pointerX, in.pointerY
}

// Countdown returns the remaining active ticks.
func (in *Integrator) Countdown() int {
	return in.countdown
}

// Active reports whether the next Step will do work.
func (in *Integrator) Active() bool {
	return in.countdown > 0
}

// Step advances every particle by one tick. While idle it does nothing,
// including no damping, so a particle left mid-excursion stays displaced.
func (in *Integrator) Step(s *particles.Store) StepResult {
	if in.countdown <= 0 {
		return StepResult{}
	}
	in.countdown--

	res := StepResult{Active: true}
	p := in.params
	r2 := p.DistortionRadius * p.DistortionRadius
	maxDisp := p.MaxDisplacement

	n := s.Len()
	for i := 0; i < n; i++ {
		x, y := s.Position(i)
		ox, oy := s.Origin(i)
		vx, vy := s.Velocity(i)

		dx := in.pointerX - x
		dy := in.pointerY - y
		d2 := dx*dx + dy*dy

		if d2 < r2 && d2 > 0 {
			// Grows more negative as the pointer closes in; the sign
			// pushes the particle away from the pointer.
			force := -r2 / d2
			angle := math.Atan2(dy, dx)

			fromOrigin := math.Hypot(x-ox, y-oy)
			falloff := math.Max(p.FalloffFloor, 1-fromOrigin/(maxDisp*2))

			vx += force * math.Cos(angle) * p.ForceStrength * falloff
			vy += force * math.Sin(angle) * p.ForceStrength * falloff
			res.Repelled++
		}

		vx *= p.Damping
		vy *= p.Damping

		tx := x + vx + (ox-x)*p.ReturnForce
		ty := y + vy + (oy-y)*p.ReturnForce

		offX := tx - ox
		offY := ty - oy
		dist := math.Hypot(offX, offY)

		if dist > maxDisp {
			scale := SoftClampScale(dist, maxDisp, p.ClampFalloff)
			tx = ox + offX*scale
			ty = oy + offY*scale
			vx *= p.ClampDamping
			vy *= p.ClampDamping
			res.Clamped++
		}

		s.SetVelocity(i, vx, vy)
		s.SetPosition(i, tx, ty)
	}

	return res
}

// SoftClampScale returns the factor applied to an offset of length
// distance that exceeds limit. It blends the hard-clamp scale
// limit/distance toward 1 by exp(-excess*falloff), so it is 1 at the
// boundary and approaches limit/distance far beyond it.
func SoftClampScale(distance, limit, falloff float64) float64 {
	if distance <= 0 {
		return 1
	}
	excess := distance - limit
	scale := limit / distance
	return scale + (1-scale)*math.Exp(-excess*falloff)
}

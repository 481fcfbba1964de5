// Package physics advances the particle store one frame at a time: pointer
// repulsion, velocity damping, a linear spring back to origin and a soft
// clamp on displacement.
package physics

import "github.com/pthm-cable/dissolve/config"

// Params holds the integrator constants.
type Params struct {
	DistortionRadius float64 // Pointer influence radius
	ForceStrength    float64 // Repulsion scale
	MaxDisplacement  float64 // Soft limit on distance from origin
	ReturnForce      float64 // Spring stiffness toward origin
	Damping          float64 // Velocity multiplier every active tick
	ClampDamping     float64 // Extra velocity multiplier when the soft clamp engages
	ClampFalloff     float64 // Exponential rate of the soft clamp
	FalloffFloor     float64 // Lower bound on the repulsion falloff multiplier
	ActivityTicks    int     // Countdown budget set by each pointer move
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		DistortionRadius: 3000,
		ForceStrength:    0.0035,
		MaxDisplacement:  100,
		ReturnForce:      0.025,
		Damping:          0.82,
		ClampDamping:     0.7,
		ClampFalloff:     0.02,
		FalloffFloor:     0.1,
		ActivityTicks:    300,
	}
}

// ParamsFromConfig builds Params from the physics section. Zero values fall
// back to the defaults so partial configs stay usable.
func ParamsFromConfig(c config.PhysicsConfig) Params {
	p := DefaultParams()
	if c.DistortionRadius > 0 {
		p.DistortionRadius = c.DistortionRadius
	}
	if c.ForceStrength != 0 {
		p.ForceStrength = c.ForceStrength
	}
	if c.MaxDisplacement > 0 {
		p.MaxDisplacement = c.MaxDisplacement
	}
	if c.ReturnForce != 0 {
		p.ReturnForce = c.ReturnForce
	}
	if c.Damping > 0 {
		p.Damping = c.Damping
	}
	if c.ClampDamping > 0 {
		p.ClampDamping = c.ClampDamping
	}
	if c.ClampFalloff > 0 {
		p.ClampFalloff = c.ClampFalloff
	}
	if c.FalloffFloor > 0 {
		p.FalloffFloor = c.FalloffFloor
	}
	if c.ActivityTicks > 0 {
		p.ActivityTicks = c.ActivityTicks
	}
	return p
}

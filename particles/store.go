// Package particles holds the struct-of-arrays particle state shared by the
// sampler, the integrator and the renderers.
package particles

import "math"

// Store is a fixed-size set of particles in parallel arrays indexed by
// particle index. Positions and colors are float32 because they double as
// the GPU upload buffers; simulation state is float64.
type Store struct {
	positions []float32 // x, y per particle
	colors    []float32 // r, g, b, a per particle

	originX, originY []float64
	velX, velY       []float64
}

// New creates an empty store with room for n particles.
func New(n int) *Store {
	return &Store{
		positions: make([]float32, 0, n*2),
		colors:    make([]float32, 0, n*4),
		originX:   make([]float64, 0, n),
		originY:   make([]float64, 0, n),
		velX:      make([]float64, 0, n),
		velY:      make([]float64, 0, n),
	}
}

// Add appends a particle at rest at (x, y). Only the sampler calls this;
// the count is fixed once sampling finishes.
func (s *Store) Add(x, y float64, r, g, b, a float32) {
	s.positions = append(s.positions, float32(x), float32(y))
	s.colors = append(s.colors, r, g, b, a)
	s.originX = append(s.originX, x)
	s.originY = append(s.originY, y)
	s.velX = append(s.velX, 0)
	s.velY = append(s.velY, 0)
}

// Len returns the particle count.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.originX)
}

// Position returns the live position of particle i.
func (s *Store) Position(i int) (x, y float64) {
	return float64(s.positions[i*2]), float64(s.positions[i*2+1])
}

// SetPosition writes the live position of particle i.
func (s *Store) SetPosition(i int, x, y float64) {
	s.positions[i*2] = float32(x)
	s.positions[i*2+1] = float32(y)
}

// Origin returns the rest position of particle i.
func (s *Store) Origin(i int) (x, y float64) {
	return s.originX[i], s.originY[i]
}

// Velocity returns the velocity of particle i.
func (s *Store) Velocity(i int) (vx, vy float64) {
	return s.velX[i], s.velY[i]
}

// SetVelocity writes the velocity of particle i.
func (s *Store) SetVelocity(i int, vx, vy float64) {
	s.velX[i] = vx
	s.velY[i] = vy
}

// Color returns the RGBA color of particle i.
func (s *Store) Color(i int) (r, g, b, a float32) {
	c := s.colors[i*4 : i*4+4]
	return c[0], c[1], c[2], c[3]
}

// Displacement returns the distance between particle i and its origin.
func (s *Store) Displacement(i int) float64 {
	x, y := s.Position(i)
	return math.Hypot(x-s.originX[i], y-s.originY[i])
}

// Positions returns the flat position buffer (2 floats per particle).
// Callers must treat it as read-only.
func (s *Store) Positions() []float32 {
	if s == nil {
		return nil
	}
	return s.positions
}

// Colors returns the flat color buffer (4 floats per particle).
// Callers must treat it as read-only.
func (s *Store) Colors() []float32 {
	if s == nil {
		return nil
	}
	return s.colors
}

// GridDim returns the side of the square grid used by Relayout.
func GridDim(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// Relayout moves every origin and live position onto a square grid of side
// GridDim(Len()) centered on (cx, cy). Row-major by index, so the last row
// may be partially filled. Velocities, colors and count are unchanged.
func (s *Store) Relayout(cx, cy float64) {
	n := s.Len()
	if n == 0 {
		return
	}
	dim := GridDim(n)
	half := float64(dim) / 2

	for i := 0; i < n; i++ {
		row := i / dim
		col := i % dim
		x := cx + (float64(col) - half)
		y := cy + (float64(row) - half)

		s.originX[i] = x
		s.originY[i] = y
		s.SetPosition(i, x, y)
	}
}

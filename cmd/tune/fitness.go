package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/particles"
	"github.com/pthm-cable/dissolve/physics"
	"github.com/pthm-cable/dissolve/scene"
	"github.com/pthm-cable/dissolve/telemetry"
)

// Synthetic logo: a filled square of gridSide² particles, gridSpacing apart.
const (
	gridSide    = 60
	gridSpacing = 4.0
	sampleEvery = 10 // ticks between displacement samples
)

// Scenario is one scripted pointer path the parameters are scored on.
type Scenario struct {
	Name  string
	Orbit scene.Orbit
}

// DefaultScenarios circles the synthetic logo at three radii.
func DefaultScenarios(pointerTicks int32) []Scenario {
	half := gridSide * gridSpacing / 2
	return []Scenario{
		{Name: "inner", Orbit: scene.Orbit{Radius: half * 0.4, Period: 180, Duration: pointerTicks}},
		{Name: "edge", Orbit: scene.Orbit{Radius: half, Period: 240, Duration: pointerTicks}},
		{Name: "outside", Orbit: scene.Orbit{Radius: half * 1.6, Period: 300, Duration: pointerTicks}},
	}
}

// runResult holds the results from a single scenario run.
type runResult struct {
	peakFrac float64 // Highest fraction of displaced particles seen
	residual float64 // Mean displacement at the end, relative to max_displacement
}

// FitnessEvaluator runs headless integrator sessions and scores them.
type FitnessEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	scenarios  []Scenario

	// TargetFrac is the displaced fraction a pass of the pointer should reach.
	TargetFrac float64
	// ResidualWeight scales the settle penalty against the target error.
	ResidualWeight float64

	mu           sync.Mutex
	lastPeak     float64
	lastResidual float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, scenarios []Scenario, targetFrac float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:         params,
		baseConfig:     baseCfg,
		scenarios:      scenarios,
		TargetFrac:     targetFrac,
		ResidualWeight: 4.0,
	}
}

// Last returns the mean peak fraction and residual from the most recent
// evaluation.
func (fe *FitnessEvaluator) Last() (peak, residual float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastPeak, fe.lastResidual
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	p := physics.ParamsFromConfig(cfg.Physics)

	results := make([]runResult, len(fe.scenarios))
	var wg sync.WaitGroup
	for i, sc := range fe.scenarios {
		wg.Add(1)
		go func(idx int, sc Scenario) {
			defer wg.Done()
			results[idx] = runScenario(p, sc)
		}(i, sc)
	}
	wg.Wait()

	var total, peak, residual float64
	for _, r := range results {
		total += fe.score(r)
		peak += r.peakFrac
		residual += r.residual
	}
	n := float64(len(results))
	if n == 0 {
		return 0
	}

	fe.mu.Lock()
	fe.lastPeak = peak / n
	fe.lastResidual = residual / n
	fe.mu.Unlock()

	return total / n
}

func (fe *FitnessEvaluator) score(r runResult) float64 {
	miss := r.peakFrac - fe.TargetFrac
	return miss*miss + fe.ResidualWeight*r.residual*r.residual
}

// runScenario drives one store through the scripted pointer path and the
// following countdown until the integrator goes idle.
func runScenario(p physics.Params, sc Scenario) runResult {
	store := gridStore()
	in := physics.NewIntegrator(p)
	values := make([]float64, store.Len())

	var res runResult
	var tick int32
	for {
		if x, y, ok := sc.Orbit.Next(tick); ok {
			in.PointerMove(x, y)
		}
		if !in.Step(store).Active {
			break
		}
		tick++

		if tick%sampleEvery == 0 {
			res.peakFrac = math.Max(res.peakFrac, displacedFraction(store, values))
		}
	}

	stats := telemetry.ComputeDisplacementStats(displacements(store, values))
	res.residual = stats.Mean / p.MaxDisplacement
	return res
}

// gridStore lays out the synthetic logo centered on the origin.
func gridStore() *particles.Store {
	s := particles.New(gridSide * gridSide)
	offset := (gridSide - 1) * gridSpacing / 2
	for row := 0; row < gridSide; row++ {
		for col := 0; col < gridSide; col++ {
			s.Add(float64(col)*gridSpacing-offset, float64(row)*gridSpacing-offset, 1, 1, 1, 1)
		}
	}
	return s
}

func displacements(s *particles.Store, dst []float64) []float64 {
	for i := range dst {
		dst[i] = s.Displacement(i)
	}
	return dst
}

func displacedFraction(s *particles.Store, buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	stats := telemetry.ComputeDisplacementStats(displacements(s, buf))
	return float64(stats.Displaced) / float64(len(buf))
}

// copyConfig returns a shallow copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

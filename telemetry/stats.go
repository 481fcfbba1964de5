package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DisplacedThreshold is the distance from origin, in canvas pixels, past
// which a particle counts as displaced.
const DisplacedThreshold = 0.5

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Particles int `csv:"particles"`

	// Events during window
	PointerMoves int     `csv:"pointer_moves"`
	Resizes      int     `csv:"resizes"`
	ActiveTicks  int     `csv:"active_ticks"`
	ActiveFrac   float64 `csv:"active_frac"`
	Repelled     int     `csv:"repelled"` // particle-steps inside the pointer radius
	Clamped      int     `csv:"clamped"`  // particle-steps where the soft clamp engaged

	// Displacement from origin, sampled at window end
	DispMean  float64 `csv:"disp_mean"`
	DispStd   float64 `csv:"disp_std"`
	DispP50   float64 `csv:"disp_p50"`
	DispP90   float64 `csv:"disp_p90"`
	DispMax   float64 `csv:"disp_max"`
	Displaced int     `csv:"displaced"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// DisplacementStats summarizes a set of displacement magnitudes.
type DisplacementStats struct {
	Mean, Std, P50, P90, Max float64
	Displaced                int
}

// ComputeDisplacementStats calculates the distribution of values. The
// standard deviation is the population form.
func ComputeDisplacementStats(values []float64) DisplacementStats {
	if len(values) == 0 {
		return DisplacementStats{}
	}

	mean, variance := stat.PopMeanVariance(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	// first index strictly above the threshold
	above := sort.Search(len(sorted), func(i int) bool { return sorted[i] > DisplacedThreshold })

	return DisplacementStats{
		Mean:      mean,
		Std:       math.Sqrt(variance),
		P50:       Percentile(sorted, 0.50),
		P90:       Percentile(sorted, 0.90),
		Max:       floats.Max(sorted),
		Displaced: len(sorted) - above,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Int("pointer_moves", s.PointerMoves),
		slog.Int("resizes", s.Resizes),
		slog.Int("active_ticks", s.ActiveTicks),
		slog.Float64("active_frac", s.ActiveFrac),
		slog.Int("repelled", s.Repelled),
		slog.Int("clamped", s.Clamped),
		slog.Float64("disp_mean", s.DispMean),
		slog.Float64("disp_std", s.DispStd),
		slog.Float64("disp_p50", s.DispP50),
		slog.Float64("disp_p90", s.DispP90),
		slog.Float64("disp_max", s.DispMax),
		slog.Int("displaced", s.Displaced),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "stats", s)
}

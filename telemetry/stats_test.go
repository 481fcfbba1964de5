package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDisplacementStats(t *testing.T) {
	values := []float64{0, 0, 0.5, 2, 4, 6, 8, 10, 0, 1}

	s := ComputeDisplacementStats(values)

	if math.Abs(s.Mean-3.15) > 1e-9 {
		t.Errorf("mean = %v, want 3.15", s.Mean)
	}
	if s.Max != 10 {
		t.Errorf("max = %v, want 10", s.Max)
	}
	// sorted: 0 0 0 0.5 1 2 4 6 8 10
	if math.Abs(s.P50-1.5) > 1e-9 {
		t.Errorf("p50 = %v, want 1.5", s.P50)
	}
	if math.Abs(s.P90-8.2) > 1e-9 {
		t.Errorf("p90 = %v, want 8.2", s.P90)
	}
	// 0.5 sits on the threshold and is not displaced
	if s.Displaced != 6 {
		t.Errorf("displaced = %d, want 6", s.Displaced)
	}

	var sq float64
	for _, v := range values {
		sq += (v - 3.15) * (v - 3.15)
	}
	if want := math.Sqrt(sq / 10); math.Abs(s.Std-want) > 1e-9 {
		t.Errorf("std = %v, want %v", s.Std, want)
	}
}

func TestComputeDisplacementStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeDisplacementStats(values)

	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestComputeDisplacementStatsEmpty(t *testing.T) {
	s := ComputeDisplacementStats(nil)

	if s != (DisplacementStats{}) {
		t.Errorf("empty input should return zero stats, got %+v", s)
	}
}

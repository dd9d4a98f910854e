package metrics

import (
	"math"
	"testing"
)

func TestComputeRollingAverages(t *testing.T) {
	e := NewEngine()
	values := []float64{10, 20, 30, 40}

	points := e.ComputeRollingAverages(values, []int{3})
	if len(points) != len(values) {
		t.Fatalf("got %d points, want %d", len(points), len(values))
	}

	// The trailing window shrinks at the start: averages over 1, 2, then
	// 3 rows.
	want := []float64{10, 15, 20, 30}
	for i, p := range points {
		if p.Value != values[i] {
			t.Errorf("point %d Value = %v, want %v", i, p.Value, values[i])
		}
		if got := p.Averages[3]; got != want[i] {
			t.Errorf("point %d avg = %v, want %v", i, got, want[i])
		}
	}
}

func TestComputeRollingAverages_DefaultWindowsAndRounding(t *testing.T) {
	e := NewEngine()
	values := []float64{1, 2}

	points := e.ComputeRollingAverages(values, nil)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	for _, w := range DefaultRollingWindows {
		if _, ok := points[1].Averages[w]; !ok {
			t.Errorf("missing default window %d in averages", w)
		}
	}
	// (1+2)/2 = 1.5 survives the one-decimal rounding exactly.
	if got := points[1].Averages[7]; got != 1.5 {
		t.Errorf("avg = %v, want 1.5", got)
	}

	// A repeating average like 10/3 must come back rounded to one decimal.
	points = e.ComputeRollingAverages([]float64{1, 4, 5}, []int{3})
	if got := points[2].Averages[3]; got != 3.3 {
		t.Errorf("rounded avg = %v, want 3.3", got)
	}
}

func TestDetectAnomalies(t *testing.T) {
	e := NewEngine()

	// A stable series with one extreme spike at the end.
	values := []float64{100, 102, 98, 101, 99, 100, 103, 97, 100, 101, 500}
	points := e.DetectAnomalies(values, 14, 2.0)

	if len(points) != len(values) {
		t.Fatalf("got %d points, want %d", len(points), len(values))
	}

	// The first two rows have fewer than 3 values in their window.
	for i := 0; i < 2; i++ {
		if !math.IsNaN(points[i].ZScore) {
			t.Errorf("point %d ZScore = %v, want NaN below min period", i, points[i].ZScore)
		}
		if points[i].IsAnomaly {
			t.Errorf("point %d flagged anomalous with undefined baseline", i)
		}
	}

	last := points[len(points)-1]
	if !last.IsAnomaly {
		t.Errorf("spike not flagged: z=%v", last.ZScore)
	}
	for i := 2; i < len(points)-1; i++ {
		if points[i].IsAnomaly {
			t.Errorf("point %d (value %v) wrongly flagged, z=%v", i, points[i].Value, points[i].ZScore)
		}
	}
}

func TestDetectAnomalies_ZeroVariance(t *testing.T) {
	e := NewEngine()
	values := []float64{50, 50, 50, 50, 50}

	points := e.DetectAnomalies(values, 14, 2.0)
	for i, p := range points {
		if p.IsAnomaly {
			t.Errorf("point %d flagged anomalous in a constant series", i)
		}
		if !math.IsNaN(p.ZScore) {
			t.Errorf("point %d ZScore = %v, want NaN for zero stddev", i, p.ZScore)
		}
	}
}

func TestDetectAnomalies_ZScoreRounding(t *testing.T) {
	e := NewEngine()
	values := []float64{10, 20, 40}

	points := e.DetectAnomalies(values, 14, 2.0)
	z := points[2].ZScore
	if math.Round(z*100)/100 != z {
		t.Errorf("stored z-score %v is not rounded to two decimals", z)
	}
}

func TestDetectAnomalies_Defaults(t *testing.T) {
	e := NewEngine()
	values := []float64{1, 2, 3, 4}

	// Non-positive window and threshold fall back to the defaults rather
	// than panicking.
	points := e.DetectAnomalies(values, 0, 0)
	if len(points) != 4 {
		t.Fatalf("got %d points, want 4", len(points))
	}
}

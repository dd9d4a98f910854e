package metrics

import (
	"math"
	"testing"
)

func TestLinearTrend_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name      string
		y         []float64
		wantSlope float64
		wantP     float64
	}{
		{"empty series", nil, 0, 1.0},
		{"single point", []float64{42}, 0, 1.0},
		{"two points reports slope but no test", []float64{1, 3}, 2, 1.0},
		{"constant series", []float64{5, 5, 5, 5, 5}, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := linearTrend(tt.y)
			if got.Slope != tt.wantSlope {
				t.Errorf("slope = %v, want %v", got.Slope, tt.wantSlope)
			}
			if got.PValue != tt.wantP {
				t.Errorf("p-value = %v, want %v", got.PValue, tt.wantP)
			}
		})
	}
}

func TestLinearTrend_PerfectFit(t *testing.T) {
	// y = 100 + 50x fits exactly, so the residual error is zero.
	y := []float64{100, 150, 200, 250, 300}
	got := linearTrend(y)

	if math.Abs(got.Slope-50) > 1e-9 {
		t.Errorf("slope = %v, want 50", got.Slope)
	}
	if got.PValue != 0 {
		t.Errorf("p-value = %v, want 0 for a perfect fit", got.PValue)
	}
}

func TestLinearTrend_NoisyIncreasingSeries(t *testing.T) {
	// 30 days of 8000 + 50i with small alternating noise: the trend must
	// come out positive and clearly significant.
	y := make([]float64, 30)
	for i := range y {
		noise := float64(i%3-1) * 40
		y[i] = 8000 + 50*float64(i) + noise
	}

	got := linearTrend(y)
	if got.Slope <= 40 || got.Slope >= 60 {
		t.Errorf("slope = %v, want close to 50", got.Slope)
	}
	if got.PValue >= 0.05 {
		t.Errorf("p-value = %v, want < 0.05", got.PValue)
	}
}

func TestLinearTrend_SymmetricSign(t *testing.T) {
	up := make([]float64, 20)
	down := make([]float64, 20)
	for i := range up {
		noise := float64(i%2)*10 - 5
		up[i] = 1000 + 30*float64(i) + noise
		down[i] = -up[i]
	}

	upRes := linearTrend(up)
	downRes := linearTrend(down)

	if upRes.Slope <= 0 || downRes.Slope >= 0 {
		t.Fatalf("slopes = %v and %v, want opposite signs", upRes.Slope, downRes.Slope)
	}
	if math.Abs(upRes.PValue-downRes.PValue) > 1e-9 {
		t.Errorf("p-values differ: %v vs %v, test should be two-sided", upRes.PValue, downRes.PValue)
	}
}

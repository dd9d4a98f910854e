package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TrendResult is the outcome of an ordinary least squares fit of a series
// against its 0-based index.
type TrendResult struct {
	Slope  float64 `json:"slope"`
	PValue float64 `json:"p_value"`
}

// linearTrend fits y = a + b*x with x = 0..n-1 and returns the slope with
// its two-sided p-value from a t test with n-2 degrees of freedom.
// Degenerate inputs never error: fewer than 2 points yields slope 0 and
// p 1.0, and with exactly 2 points the slope is reported but the test is
// undefined (0 df) so p stays 1.0. A perfect fit with n >= 3 drives the
// residual standard error to zero and the p-value to 0.
func linearTrend(y []float64) TrendResult {
	n := len(y)
	if n < 2 {
		return TrendResult{Slope: 0, PValue: 1.0}
	}

	var sumX, sumY float64
	for i, v := range y {
		sumX += float64(i)
		sumY += v
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, sxy, syy float64
	for i, v := range y {
		dx := float64(i) - meanX
		dy := v - meanY
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	if sxx == 0 {
		return TrendResult{Slope: 0, PValue: 1.0}
	}

	slope := sxy / sxx
	if n < 3 {
		return TrendResult{Slope: slope, PValue: 1.0}
	}

	// Residual sum of squares; clamp tiny negatives from float error.
	sse := syy - slope*sxy
	if sse < 0 {
		sse = 0
	}

	df := float64(n - 2)
	sigma2 := sse / df
	if sigma2 == 0 {
		if slope == 0 {
			return TrendResult{Slope: 0, PValue: 1.0}
		}
		return TrendResult{Slope: slope, PValue: 0.0}
	}

	se := math.Sqrt(sigma2 / sxx)
	t := slope / se

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - tDist.CDF(math.Abs(t)))
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	return TrendResult{Slope: slope, PValue: p}
}

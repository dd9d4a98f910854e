package metrics

import (
	"math"

	"healthlens/domain/health"
)

// Default parameters for the rolling utilities.
var DefaultRollingWindows = []int{7, 30}

const (
	DefaultAnomalyWindow    = 14
	DefaultAnomalyThreshold = 2.0
	anomalyMinPeriod        = 3
)

// ComputeRollingAverages augments each value with trailing moving averages,
// one per window size. The window includes the current row and shrinks at
// the start of the series (minimum period 1), so the first rows average over
// however many rows exist. Averages are rounded to one decimal.
func (e *Engine) ComputeRollingAverages(values []float64, windows []int) []health.RollingPoint {
	if len(windows) == 0 {
		windows = DefaultRollingWindows
	}

	out := make([]health.RollingPoint, len(values))
	for i, v := range values {
		averages := make(map[int]float64, len(windows))
		for _, w := range windows {
			start := i - w + 1
			if start < 0 {
				start = 0
			}
			var sum float64
			for _, x := range values[start : i+1] {
				sum += x
			}
			averages[w] = round1(sum / float64(i-start+1))
		}
		out[i] = health.RollingPoint{Value: v, Averages: averages}
	}
	return out
}

// DetectAnomalies flags values whose rolling z-score exceeds the threshold.
// The baseline is a trailing window (including the current row) with a
// minimum period of 3; rows with an undefined baseline, or a zero rolling
// stddev, get a NaN z-score and are never anomalous. The stored z-score is
// rounded to two decimals; the comparison uses the unrounded value.
func (e *Engine) DetectAnomalies(values []float64, window int, threshold float64) []health.AnomalyPoint {
	if window <= 0 {
		window = DefaultAnomalyWindow
	}
	if threshold <= 0 {
		threshold = DefaultAnomalyThreshold
	}

	out := make([]health.AnomalyPoint, len(values))
	for i, v := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		slice := values[start : i+1]
		if len(slice) < anomalyMinPeriod {
			out[i] = health.AnomalyPoint{Value: v, ZScore: math.NaN()}
			continue
		}

		mean := meanOrZero(slice)
		std := sampleStd(slice)
		if std == 0 {
			out[i] = health.AnomalyPoint{Value: v, ZScore: math.NaN()}
			continue
		}

		z := (v - mean) / std
		out[i] = health.AnomalyPoint{
			Value:     v,
			ZScore:    round2(z),
			IsAnomaly: math.Abs(z) > threshold,
		}
	}
	return out
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

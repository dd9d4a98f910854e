package metrics

import (
	"math"
	"strconv"
	"strings"
	"time"

	"healthlens/domain/health"

	"github.com/montanaflynn/stats"
)

// Heart rate zone boundaries in bpm. Non-overlapping: resting <70,
// light [70,100), moderate [100,140), vigorous >=140.
const (
	zoneRestingMax  = 70
	zoneLightMax    = 100
	zoneModerateMax = 140
)

// Engine computes derived health metrics from raw records.
//
// All methods are stateless pure functions over their inputs: the same
// records always produce the same summary, and the engine holds no caches.
// Sequences as short as one record degrade to trivial statistics instead
// of erroring.
type Engine struct{}

// NewEngine creates a new metrics engine
func NewEngine() *Engine {
	return &Engine{}
}

// ComputeActivitySummary computes descriptive statistics, an OLS step
// trend against the day index, and the weekday/weekend split.
func (e *Engine) ComputeActivitySummary(records []health.ActivityRecord) health.ActivitySummary {
	steps := make([]float64, len(records))
	var totalActive int
	var totalDistance float64
	calories := make([]float64, len(records))
	for i, r := range records {
		steps[i] = float64(r.Steps)
		calories[i] = r.CaloriesBurned
		totalActive += r.ActiveMinutes
		totalDistance += r.DistanceKm
	}

	trend := linearTrend(steps)

	var weekday, weekend []float64
	for i, r := range records {
		if isWeekend(r.Date) {
			weekend = append(weekend, steps[i])
		} else {
			weekday = append(weekday, steps[i])
		}
	}

	return health.ActivitySummary{
		MeanSteps:          meanOrZero(steps),
		MedianSteps:        medianOrZero(steps),
		StdSteps:           sampleStd(steps),
		TotalActiveMinutes: totalActive,
		AvgDailyCalories:   meanOrZero(calories),
		TotalDistanceKm:    totalDistance,
		TrendSlope:         trend.Slope,
		TrendPValue:        trend.PValue,
		WeekdayAvgSteps:    meanOrNaN(weekday),
		WeekendAvgSteps:    meanOrNaN(weekend),
	}
}

// ComputeHRSummary computes the zone distribution, the observed maximum,
// and the resting-HR proxy. Resting HR is the mean/std of readings below
// 70 bpm; with no such readings both are 0, which callers must treat as
// undetermined rather than a physiological value.
func (e *Engine) ComputeHRSummary(records []health.HeartRateRecord) health.HeartRateSummary {
	total := len(records)
	if total == 0 {
		return health.HeartRateSummary{}
	}

	var resting, light, moderate, vigorous int
	var restingBPM []float64
	maxBPM := records[0].BPM
	for _, r := range records {
		switch {
		case r.BPM < zoneRestingMax:
			resting++
			restingBPM = append(restingBPM, float64(r.BPM))
		case r.BPM < zoneLightMax:
			light++
		case r.BPM < zoneModerateMax:
			moderate++
		default:
			vigorous++
		}
		if r.BPM > maxBPM {
			maxBPM = r.BPM
		}
	}

	pct := func(count int) float64 {
		return float64(count) / float64(total) * 100
	}

	return health.HeartRateSummary{
		RestingHRMean: meanOrZero(restingBPM),
		RestingHRStd:  sampleStd(restingBPM),
		MaxHRObserved: maxBPM,
		TimeInZones: health.TimeInZones{
			Resting:  pct(resting),
			Light:    pct(light),
			Moderate: pct(moderate),
			Vigorous: pct(vigorous),
		},
	}
}

// ComputeSleepSummary computes duration and stage averages plus the two
// circadian metrics: bedtime consistency (stddev of normalized bedtime
// hours) and the weekend shift (weekend mean bedtime minus weekday mean,
// positive = later on weekends).
func (e *Engine) ComputeSleepSummary(records []health.SleepRecord) health.SleepSummary {
	durations := make([]float64, len(records))
	deep := make([]float64, len(records))
	rem := make([]float64, len(records))
	light := make([]float64, len(records))
	for i, r := range records {
		durations[i] = r.DurationHours
		deep[i] = r.DeepSleepPct
		rem[i] = r.RemPct
		light[i] = r.LightSleepPct
	}

	var bedtimes, weekdayBed, weekendBed []float64
	for _, r := range records {
		h, ok := parseClockHours(r.SleepStart)
		if !ok {
			continue
		}
		h = normalizeBedtime(h)
		bedtimes = append(bedtimes, h)
		if isWeekend(r.Date) {
			weekendBed = append(weekendBed, h)
		} else {
			weekdayBed = append(weekdayBed, h)
		}
	}

	return health.SleepSummary{
		AvgDurationHours:   meanOrZero(durations),
		StdDurationHours:   sampleStd(durations),
		AvgDeepSleepPct:    meanOrZero(deep),
		AvgRemPct:          meanOrZero(rem),
		AvgLightSleepPct:   meanOrZero(light),
		BedtimeConsistency: sampleStd(bedtimes),
		WeekendShiftHours:  meanOrNaN(weekendBed) - meanOrNaN(weekdayBed),
	}
}

// normalizeBedtime shifts past-midnight clock times onto a continuous
// same-night timeline: hours below 12 gain 24, so 23:30 stays 23.5 while
// 00:45 becomes 24.75.
func normalizeBedtime(hours float64) float64 {
	if hours < 12 {
		return hours + 24
	}
	return hours
}

// parseClockHours converts "HH:MM" to fractional hours.
func parseClockHours(s string) (float64, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, false
	}
	m, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, false
	}
	return h + m/60, true
}

// isWeekend partitions Mon-Fri vs Sat-Sun. The same convention is used
// for both the activity split and the sleep weekend shift.
func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// meanOrZero averages values, returning 0 for an empty slice.
func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// meanOrNaN averages values, returning NaN for an empty partition so the
// caller can tell "no data" from a real zero.
func meanOrNaN(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m, err := stats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	return m
}

// medianOrZero returns the median, 0 for an empty slice.
func medianOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Median(values)
	if err != nil {
		return 0
	}
	return m
}

// sampleStd is the n-1 standard deviation; fewer than two values yield 0.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationSample(values)
	if err != nil {
		return 0
	}
	return sd
}

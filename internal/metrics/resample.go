package metrics

import (
	"math"
	"sort"
	"time"

	"healthlens/domain/health"
)

// ResampleActivityWeekly aggregates daily activity into calendar weeks
// ending on Sunday. AvgDailySteps divides the weekly total by a full seven
// days regardless of how many days the week actually has data for.
func (e *Engine) ResampleActivityWeekly(records []health.ActivityRecord) []health.WeeklyActivity {
	buckets := make(map[time.Time]*health.WeeklyActivity)
	for _, r := range records {
		we := weekEnding(r.Date)
		b, ok := buckets[we]
		if !ok {
			b = &health.WeeklyActivity{WeekEnding: we}
			buckets[we] = b
		}
		b.Steps += r.Steps
		b.CaloriesBurned += r.CaloriesBurned
		b.DistanceKm += r.DistanceKm
		b.ActiveMinutes += r.ActiveMinutes
	}

	out := make([]health.WeeklyActivity, 0, len(buckets))
	for _, b := range buckets {
		b.AvgDailySteps = int(math.Round(float64(b.Steps) / 7))
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekEnding.Before(out[j].WeekEnding)
	})
	return out
}

// ResampleHRHourly aggregates bpm readings into hourly mean/min/max,
// rounded to one decimal.
func (e *Engine) ResampleHRHourly(records []health.HeartRateRecord) []health.HourlyHeartRate {
	type agg struct {
		sum   float64
		count int
		min   float64
		max   float64
	}
	buckets := make(map[time.Time]*agg)
	for _, r := range records {
		hour := r.Timestamp.Truncate(time.Hour)
		b, ok := buckets[hour]
		if !ok {
			b = &agg{min: float64(r.BPM), max: float64(r.BPM)}
			buckets[hour] = b
		}
		v := float64(r.BPM)
		b.sum += v
		b.count++
		if v < b.min {
			b.min = v
		}
		if v > b.max {
			b.max = v
		}
	}

	hours := make([]time.Time, 0, len(buckets))
	for h := range buckets {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Before(hours[j]) })

	out := make([]health.HourlyHeartRate, 0, len(hours))
	for _, h := range hours {
		b := buckets[h]
		out = append(out, health.HourlyHeartRate{
			Hour:    h,
			BPMMean: round1(b.sum / float64(b.count)),
			BPMMin:  round1(b.min),
			BPMMax:  round1(b.max),
		})
	}
	return out
}

// weekEnding maps a date to the Sunday that closes its week.
func weekEnding(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	days := (7 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, days)
}

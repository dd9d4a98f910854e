package health

import "time"

// Dataset names the three wearable exports the loader understands.
type Dataset string

const (
	DatasetActivity  Dataset = "activity"
	DatasetHeartRate Dataset = "heart_rate"
	DatasetSleep     Dataset = "sleep"
)

// ActivityRecord is one day of wearable activity data.
type ActivityRecord struct {
	Date           time.Time `json:"date"`
	Steps          int       `json:"steps"`
	CaloriesBurned float64   `json:"calories_burned"`
	DistanceKm     float64   `json:"distance_km"`
	ActiveMinutes  int       `json:"active_minutes"`
}

// HeartRateRecord is a single bpm reading.
type HeartRateRecord struct {
	Timestamp time.Time `json:"timestamp"`
	BPM       int       `json:"bpm"`
}

// SleepRecord is one night of sleep. SleepStart and SleepEnd are
// clock times in "HH:MM" form as exported by the device.
type SleepRecord struct {
	Date          time.Time `json:"date"`
	SleepStart    string    `json:"sleep_start"`
	SleepEnd      string    `json:"sleep_end"`
	DurationHours float64   `json:"duration_hours"`
	DeepSleepPct  float64   `json:"deep_sleep_pct"`
	LightSleepPct float64   `json:"light_sleep_pct"`
	RemPct        float64   `json:"rem_pct"`
}

// ActivitySummary aggregates activity statistics over a period.
// TrendSlope is in steps/day; a positive significant slope means improving.
// WeekdayAvgSteps/WeekendAvgSteps are NaN when the partition is empty.
type ActivitySummary struct {
	MeanSteps          float64 `json:"mean_steps"`
	MedianSteps        float64 `json:"median_steps"`
	StdSteps           float64 `json:"std_steps"`
	TotalActiveMinutes int     `json:"total_active_minutes"`
	AvgDailyCalories   float64 `json:"avg_daily_calories"`
	TotalDistanceKm    float64 `json:"total_distance_km"`
	TrendSlope         float64 `json:"trend_slope"`
	TrendPValue        float64 `json:"trend_pvalue"`
	WeekdayAvgSteps    float64 `json:"weekday_avg_steps"`
	WeekendAvgSteps    float64 `json:"weekend_avg_steps"`
}

// SleepSummary aggregates sleep statistics over a period.
// BedtimeConsistency is the stddev of normalized bedtime hours (lower =
// more consistent). WeekendShiftHours is the social jet lag proxy:
// positive means later bedtime on weekends.
type SleepSummary struct {
	AvgDurationHours   float64 `json:"avg_duration_hours"`
	StdDurationHours   float64 `json:"std_duration_hours"`
	AvgDeepSleepPct    float64 `json:"avg_deep_sleep_pct"`
	AvgRemPct          float64 `json:"avg_rem_pct"`
	AvgLightSleepPct   float64 `json:"avg_light_sleep_pct"`
	BedtimeConsistency float64 `json:"bedtime_consistency"`
	WeekendShiftHours  float64 `json:"weekend_shift_hours"`
}

// TimeInZones holds the percentage of readings in each intensity zone.
// Boundaries: resting <70, light [70,100), moderate [100,140), vigorous >=140.
type TimeInZones struct {
	Resting  float64 `json:"resting"`
	Light    float64 `json:"light"`
	Moderate float64 `json:"moderate"`
	Vigorous float64 `json:"vigorous"`
}

// HeartRateSummary aggregates heart rate statistics over a period.
// RestingHRMean is the mean of readings below 70 bpm, the resting-zone
// proxy (no explicit rest flag exists in the data, so transient low
// readings are counted too). 0 means undetermined, not a real value.
type HeartRateSummary struct {
	RestingHRMean float64     `json:"resting_hr_mean"`
	RestingHRStd  float64     `json:"resting_hr_std"`
	MaxHRObserved int         `json:"max_hr_observed"`
	TimeInZones   TimeInZones `json:"time_in_zones"`
}

// WeeklyActivity is one calendar week of summed activity (week ending Sunday).
type WeeklyActivity struct {
	WeekEnding     time.Time `json:"week_ending"`
	Steps          int       `json:"steps"`
	CaloriesBurned float64   `json:"calories_burned"`
	DistanceKm     float64   `json:"distance_km"`
	ActiveMinutes  int       `json:"active_minutes"`
	AvgDailySteps  int       `json:"avg_daily_steps"`
}

// HourlyHeartRate is one hour of aggregated bpm readings.
type HourlyHeartRate struct {
	Hour    time.Time `json:"hour"`
	BPMMean float64   `json:"bpm_mean"`
	BPMMin  float64   `json:"bpm_min"`
	BPMMax  float64   `json:"bpm_max"`
}

// RollingPoint pairs a source value with its trailing moving averages,
// one per requested window size.
type RollingPoint struct {
	Value    float64         `json:"value"`
	Averages map[int]float64 `json:"averages"`
}

// AnomalyPoint flags a value whose rolling z-score exceeds the threshold.
// ZScore is NaN where the rolling baseline is undefined; NaN is never
// anomalous.
type AnomalyPoint struct {
	Value     float64 `json:"value"`
	ZScore    float64 `json:"z_score"`
	IsAnomaly bool    `json:"is_anomaly"`
}

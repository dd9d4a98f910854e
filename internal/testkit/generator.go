package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"healthlens/domain/health"
)

// GeneratorConfig configures the synthetic wearable data generator
type GeneratorConfig struct {
	Days      int       `json:"days"`
	StartDate time.Time `json:"start_date"`
	Seed      int64     `json:"seed"`
	// TrendStepsPerDay is the gradual fitness-improvement slope baked
	// into the step series.
	TrendStepsPerDay float64 `json:"trend_steps_per_day"`
}

// DefaultGeneratorConfig returns sensible defaults for demo data
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Days:             90,
		StartDate:        time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		Seed:             42,
		TrendStepsPerDay: 30,
	}
}

// DataGenerator produces realistic synthetic wearable data: weekday/weekend
// activity patterns, a gradual improvement trend, circadian heart rate
// rhythm, and cross-midnight bedtimes with weekend drift.
type DataGenerator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewDataGenerator creates a generator with its own seeded RNG
func NewDataGenerator(config GeneratorConfig) *DataGenerator {
	return &DataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateActivity produces daily activity records. Weekdays run higher
// than weekends and the configured trend is added on top.
func (g *DataGenerator) GenerateActivity() []health.ActivityRecord {
	records := make([]health.ActivityRecord, 0, g.config.Days)
	for i := 0; i < g.config.Days; i++ {
		date := g.config.StartDate.AddDate(0, 0, i)

		dowFactor := 1.0
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			dowFactor = 0.82
		}

		base := 8200 * math.Exp(g.rng.NormFloat64()*0.30)
		steps := int(base*dowFactor + g.config.TrendStepsPerDay*float64(i))
		if steps < 0 {
			steps = 0
		}

		distance := float64(steps) * 0.00078 * (1 + g.rng.NormFloat64()*0.05)
		calories := 1850 + float64(steps)*(0.045+g.rng.NormFloat64()*0.003)
		active := int(float64(steps) / (155 + g.rng.NormFloat64()*15))
		if active < 5 {
			active = 5
		}
		if active > 150 {
			active = 150
		}

		records = append(records, health.ActivityRecord{
			Date:           date,
			Steps:          steps,
			CaloriesBurned: math.Round(calories),
			DistanceKm:     math.Round(distance*100) / 100,
			ActiveMinutes:  active,
		})
	}
	return records
}

// GenerateHeartRate produces 5-minute interval readings with a sinusoidal
// circadian base (nadir ~4 AM, peak ~3 PM) and occasional exercise spikes.
func (g *DataGenerator) GenerateHeartRate() []health.HeartRateRecord {
	const intervalsPerDay = 288 // 24h at 5-minute intervals
	total := g.config.Days * intervalsPerDay

	records := make([]health.HeartRateRecord, 0, total)
	for i := 0; i < total; i++ {
		ts := g.config.StartDate.Add(time.Duration(i) * 5 * time.Minute)
		hour := float64(ts.Hour()) + float64(ts.Minute())/60

		// Circadian rhythm: ~58 bpm at 4 AM, ~72 bpm at 3 PM.
		base := 65 + 7*math.Sin((hour-9.5)/24*2*math.Pi)
		bpm := base + g.rng.NormFloat64()*4

		// Short elevated blocks standing in for workouts.
		if g.rng.Float64() < 0.01 {
			bpm += 50 + g.rng.Float64()*40
		}

		if bpm < 40 {
			bpm = 40
		}
		records = append(records, health.HeartRateRecord{Timestamp: ts, BPM: int(bpm)})
	}
	return records
}

// GenerateSleep produces nightly sleep records. Weekend bedtimes drift
// about an hour later, and some bedtimes cross midnight.
func (g *DataGenerator) GenerateSleep() []health.SleepRecord {
	records := make([]health.SleepRecord, 0, g.config.Days)
	for i := 0; i < g.config.Days; i++ {
		date := g.config.StartDate.AddDate(0, 0, i)

		bedtime := 23.0 + g.rng.NormFloat64()*0.6
		if date.Weekday() == time.Friday || date.Weekday() == time.Saturday {
			bedtime += 1.1
		}
		// Wrap onto the clock: 24.75 renders as 00:45.
		clock := math.Mod(bedtime, 24)

		duration := 7.3 + g.rng.NormFloat64()*0.8
		if duration < 4 {
			duration = 4
		}
		wake := math.Mod(clock+duration, 24)

		deep := 18 + g.rng.NormFloat64()*3
		rem := 22 + g.rng.NormFloat64()*3
		light := 100 - deep - rem

		records = append(records, health.SleepRecord{
			Date:          date,
			SleepStart:    formatClock(clock),
			SleepEnd:      formatClock(wake),
			DurationHours: math.Round(duration*10) / 10,
			DeepSleepPct:  math.Round(deep*10) / 10,
			LightSleepPct: math.Round(light*10) / 10,
			RemPct:        math.Round(rem*10) / 10,
		})
	}
	return records
}

func formatClock(hours float64) string {
	h := int(hours)
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h = (h + 1) % 24
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"healthlens/internal/testkit"
)

// Writes synthetic wearable exports into a data directory so the server
// has something to chew on without a real device.
func main() {
	dir := flag.String("dir", "./data", "output directory for the CSV exports")
	days := flag.Int("days", 90, "number of days to generate")
	seed := flag.Int64("seed", 42, "RNG seed")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("failed to create %s: %v", *dir, err)
	}

	cfg := testkit.DefaultGeneratorConfig()
	cfg.Days = *days
	cfg.Seed = *seed
	gen := testkit.NewDataGenerator(cfg)

	activity := gen.GenerateActivity()
	activityRows := [][]string{{"date", "steps", "calories_burned", "distance_km", "active_minutes"}}
	for _, r := range activity {
		activityRows = append(activityRows, []string{
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Steps),
			fmt.Sprintf("%.0f", r.CaloriesBurned),
			fmt.Sprintf("%.2f", r.DistanceKm),
			strconv.Itoa(r.ActiveMinutes),
		})
	}
	writeCSV(filepath.Join(*dir, "activity.csv"), activityRows)

	heartRate := gen.GenerateHeartRate()
	hrRows := [][]string{{"timestamp", "bpm"}}
	for _, r := range heartRate {
		hrRows = append(hrRows, []string{
			r.Timestamp.Format("2006-01-02 15:04:05"),
			strconv.Itoa(r.BPM),
		})
	}
	writeCSV(filepath.Join(*dir, "heart_rate.csv"), hrRows)

	sleep := gen.GenerateSleep()
	sleepRows := [][]string{{"date", "sleep_start", "sleep_end", "duration_hours", "deep_sleep_pct", "light_sleep_pct", "rem_pct"}}
	for _, r := range sleep {
		sleepRows = append(sleepRows, []string{
			r.Date.Format("2006-01-02"),
			r.SleepStart,
			r.SleepEnd,
			fmt.Sprintf("%.1f", r.DurationHours),
			fmt.Sprintf("%.1f", r.DeepSleepPct),
			fmt.Sprintf("%.1f", r.LightSleepPct),
			fmt.Sprintf("%.1f", r.RemPct),
		})
	}
	writeCSV(filepath.Join(*dir, "sleep.csv"), sleepRows)

	log.Printf("wrote %d days of sample data to %s (generated %s)",
		*days, *dir, time.Now().Format("2006-01-02 15:04:05"))
}

func writeCSV(path string, rows [][]string) {
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to create %s: %v", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		log.Fatalf("failed to write %s: %v", path, err)
	}
	log.Printf("wrote %s (%d rows)", path, len(rows)-1)
}

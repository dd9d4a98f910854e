package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"healthlens/domain/health"
	"healthlens/internal"
	"healthlens/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Expected column sets per dataset. Schema validation fails the load when
// any of these is absent from the header row.
var expectedColumns = map[health.Dataset][]string{
	health.DatasetActivity:  {"date", "steps", "calories_burned", "distance_km", "active_minutes"},
	health.DatasetHeartRate: {"timestamp", "bpm"},
	health.DatasetSleep:     {"date", "sleep_start", "sleep_end", "duration_hours", "deep_sleep_pct", "light_sleep_pct", "rem_pct"},
}

// File stems tried per dataset, in order. "daily_activity" keeps old
// Google Fit style exports loadable under the "activity" dataset name.
var fileStems = map[health.Dataset][]string{
	health.DatasetActivity:  {"activity", "daily_activity"},
	health.DatasetHeartRate: {"heart_rate"},
	health.DatasetSleep:     {"sleep"},
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}
var timestampLayouts = []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02T15:04:05"}

// Loader reads wearable datasets from CSV or Excel exports in a directory.
//
// The directory is injected; loads are read-only and idempotent. Records
// come back parsed to canonical types and sorted ascending by their time
// key. A missing file yields DATASET_NOT_FOUND, missing or malformed
// columns yield SCHEMA_VALIDATION naming the fields.
type Loader struct {
	dataDir string
	logger  *internal.Logger
}

// NewLoader creates a loader rooted at dataDir.
func NewLoader(dataDir string, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{dataDir: dataDir, logger: logger}
}

// LoadActivity loads daily activity records sorted by date.
func (l *Loader) LoadActivity(ctx context.Context) ([]health.ActivityRecord, error) {
	rows, cols, err := l.loadDataset(ctx, health.DatasetActivity)
	if err != nil {
		return nil, err
	}

	records := make([]health.ActivityRecord, 0, len(rows))
	for i, row := range rows {
		date, err := parseDate(cell(row, cols, "date"))
		if err != nil {
			return nil, malformed(health.DatasetActivity, i, "date", err)
		}
		steps, err := parseInt(cell(row, cols, "steps"))
		if err != nil {
			return nil, malformed(health.DatasetActivity, i, "steps", err)
		}
		calories, err := parseFloat(cell(row, cols, "calories_burned"))
		if err != nil {
			return nil, malformed(health.DatasetActivity, i, "calories_burned", err)
		}
		distance, err := parseFloat(cell(row, cols, "distance_km"))
		if err != nil {
			return nil, malformed(health.DatasetActivity, i, "distance_km", err)
		}
		active, err := parseInt(cell(row, cols, "active_minutes"))
		if err != nil {
			return nil, malformed(health.DatasetActivity, i, "active_minutes", err)
		}
		records = append(records, health.ActivityRecord{
			Date:           date,
			Steps:          steps,
			CaloriesBurned: calories,
			DistanceKm:     distance,
			ActiveMinutes:  active,
		})
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	l.logger.Info("loaded activity data: %d days", len(records))
	return records, nil
}

// LoadHeartRate loads bpm readings sorted by timestamp.
func (l *Loader) LoadHeartRate(ctx context.Context) ([]health.HeartRateRecord, error) {
	rows, cols, err := l.loadDataset(ctx, health.DatasetHeartRate)
	if err != nil {
		return nil, err
	}

	records := make([]health.HeartRateRecord, 0, len(rows))
	for i, row := range rows {
		ts, err := parseTimestamp(cell(row, cols, "timestamp"))
		if err != nil {
			return nil, malformed(health.DatasetHeartRate, i, "timestamp", err)
		}
		bpm, err := parseInt(cell(row, cols, "bpm"))
		if err != nil {
			return nil, malformed(health.DatasetHeartRate, i, "bpm", err)
		}
		records = append(records, health.HeartRateRecord{Timestamp: ts, BPM: bpm})
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Timestamp.Before(records[j].Timestamp) })
	l.logger.Info("loaded heart rate data: %d measurements", len(records))
	return records, nil
}

// LoadSleep loads nightly sleep sessions sorted by date.
func (l *Loader) LoadSleep(ctx context.Context) ([]health.SleepRecord, error) {
	rows, cols, err := l.loadDataset(ctx, health.DatasetSleep)
	if err != nil {
		return nil, err
	}

	records := make([]health.SleepRecord, 0, len(rows))
	for i, row := range rows {
		date, err := parseDate(cell(row, cols, "date"))
		if err != nil {
			return nil, malformed(health.DatasetSleep, i, "date", err)
		}
		duration, err := parseFloat(cell(row, cols, "duration_hours"))
		if err != nil {
			return nil, malformed(health.DatasetSleep, i, "duration_hours", err)
		}
		deep, err := parseFloat(cell(row, cols, "deep_sleep_pct"))
		if err != nil {
			return nil, malformed(health.DatasetSleep, i, "deep_sleep_pct", err)
		}
		light, err := parseFloat(cell(row, cols, "light_sleep_pct"))
		if err != nil {
			return nil, malformed(health.DatasetSleep, i, "light_sleep_pct", err)
		}
		rem, err := parseFloat(cell(row, cols, "rem_pct"))
		if err != nil {
			return nil, malformed(health.DatasetSleep, i, "rem_pct", err)
		}
		records = append(records, health.SleepRecord{
			Date:          date,
			SleepStart:    cell(row, cols, "sleep_start"),
			SleepEnd:      cell(row, cols, "sleep_end"),
			DurationHours: duration,
			DeepSleepPct:  deep,
			LightSleepPct: light,
			RemPct:        rem,
		})
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	l.logger.Info("loaded sleep data: %d nights", len(records))
	return records, nil
}

// loadDataset resolves the backing file, reads the raw rows, and validates
// the header. The returned map indexes columns by name.
func (l *Loader) loadDataset(ctx context.Context, dataset health.Dataset) ([][]string, map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	path, ok := l.resolvePath(dataset)
	if !ok {
		return nil, nil, errors.DatasetNotFound(string(dataset), l.dataDir)
	}

	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readExcelRows(path)
	} else {
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read %s", path)
	}
	if len(rows) == 0 {
		return nil, nil, errors.NewSchemaValidation(string(dataset), expectedColumns[dataset])
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, want := range expectedColumns[dataset] {
		if _, ok := cols[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, nil, errors.NewSchemaValidation(string(dataset), missing)
	}

	return rows[1:], cols, nil
}

// resolvePath tries each known file stem with .csv then .xlsx.
func (l *Loader) resolvePath(dataset health.Dataset) (string, bool) {
	for _, stem := range fileStems[dataset] {
		for _, ext := range []string{".csv", ".xlsx"} {
			path := filepath.Join(l.dataDir, stem+ext)
			if _, err := os.Stat(path); err == nil {
				return path, true
			}
		}
	}
	return "", false
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetRows(f.GetSheetName(0))
}

func cell(row []string, cols map[string]int, name string) string {
	idx := cols[name]
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

func parseInt(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	// Some exports write integral columns as floats (e.g. "8000.0").
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// malformed reports an unparseable cell; row is 0-based over data rows, the
// message counts from the file's first line including the header.
func malformed(dataset health.Dataset, row int, field string, cause error) error {
	appErr := errors.New(errors.CodeSchemaValidation, fmt.Sprintf("malformed field %s in %s row %d", field, dataset, row+2))
	appErr.Cause = cause
	return appErr
}

package postgres

import (
	"context"

	"healthlens/domain/health"
	"healthlens/internal/errors"
	"healthlens/ports"

	"github.com/jmoiron/sqlx"
)

// healthRepository implements the DatasetReader port against a warehouse
// holding synced wearable exports. Tables mirror the file schemas:
// activity(date, steps, calories_burned, distance_km, active_minutes),
// heart_rate(timestamp, bpm) and sleep(date, sleep_start, sleep_end,
// duration_hours, deep_sleep_pct, light_sleep_pct, rem_pct).
type healthRepository struct {
	db *sqlx.DB
}

// NewHealthRepository creates a warehouse-backed dataset reader
func NewHealthRepository(db *sqlx.DB) ports.DatasetReader {
	return &healthRepository{db: db}
}

// LoadActivity retrieves daily activity rows sorted by date.
func (r *healthRepository) LoadActivity(ctx context.Context) ([]health.ActivityRecord, error) {
	query := `SELECT date, steps, calories_burned, distance_km, active_minutes
		FROM activity
		ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query activity dataset")
	}
	defer rows.Close()

	var records []health.ActivityRecord
	for rows.Next() {
		var rec health.ActivityRecord
		if err := rows.Scan(&rec.Date, &rec.Steps, &rec.CaloriesBurned, &rec.DistanceKm, &rec.ActiveMinutes); err != nil {
			return nil, errors.Wrap(err, "failed to scan activity row")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate activity rows")
	}

	return records, nil
}

// LoadHeartRate retrieves bpm readings sorted by timestamp.
func (r *healthRepository) LoadHeartRate(ctx context.Context) ([]health.HeartRateRecord, error) {
	query := `SELECT timestamp, bpm FROM heart_rate ORDER BY timestamp ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query heart_rate dataset")
	}
	defer rows.Close()

	var records []health.HeartRateRecord
	for rows.Next() {
		var rec health.HeartRateRecord
		if err := rows.Scan(&rec.Timestamp, &rec.BPM); err != nil {
			return nil, errors.Wrap(err, "failed to scan heart_rate row")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate heart_rate rows")
	}

	return records, nil
}

// LoadSleep retrieves nightly sleep rows sorted by date.
func (r *healthRepository) LoadSleep(ctx context.Context) ([]health.SleepRecord, error) {
	query := `SELECT date, sleep_start, sleep_end, duration_hours, deep_sleep_pct, light_sleep_pct, rem_pct
		FROM sleep
		ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query sleep dataset")
	}
	defer rows.Close()

	var records []health.SleepRecord
	for rows.Next() {
		var rec health.SleepRecord
		if err := rows.Scan(&rec.Date, &rec.SleepStart, &rec.SleepEnd, &rec.DurationHours,
			&rec.DeepSleepPct, &rec.LightSleepPct, &rec.RemPct); err != nil {
			return nil, errors.Wrap(err, "failed to scan sleep row")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate sleep rows")
	}

	return records, nil
}

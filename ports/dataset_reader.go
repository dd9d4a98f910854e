package ports

import (
	"context"

	"healthlens/domain/health"
)

// DatasetReader provides read-only access to the three wearable datasets.
// Implementations must return records sorted ascending by their time key,
// fail with the DATASET_NOT_FOUND code when the backing resource is absent,
// and with SCHEMA_VALIDATION (naming the missing columns) when the resource
// is malformed. Loads have no side effects and are safe to repeat.
type DatasetReader interface {
	LoadActivity(ctx context.Context) ([]health.ActivityRecord, error)
	LoadHeartRate(ctx context.Context) ([]health.HeartRateRecord, error)
	LoadSleep(ctx context.Context) ([]health.SleepRecord, error)
}

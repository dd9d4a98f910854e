package app

import (
	"context"

	"healthlens/domain/health"
	"healthlens/internal"
	"healthlens/internal/insights"
	"healthlens/internal/metrics"
	"healthlens/ports"
)

// HealthService orchestrates dataset loading and metric computation.
//
// It is the single entry point the transports use: load records through the
// injected reader, push them through the stateless engines, and hand back
// domain types. Loads are on-demand per request; the reader is the place to
// add caching if a deployment needs it.
type HealthService struct {
	reader   ports.DatasetReader
	metrics  *metrics.Engine
	insights *insights.Engine
	logger   *internal.Logger
}

// NewHealthService wires the service with its dataset reader.
func NewHealthService(reader ports.DatasetReader, logger *internal.Logger) *HealthService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &HealthService{
		reader:   reader,
		metrics:  metrics.NewEngine(),
		insights: insights.NewEngine(),
		logger:   logger,
	}
}

// ActivitySummary loads activity records and computes the period summary.
func (s *HealthService) ActivitySummary(ctx context.Context) (health.ActivitySummary, error) {
	records, err := s.reader.LoadActivity(ctx)
	if err != nil {
		return health.ActivitySummary{}, err
	}
	return s.metrics.ComputeActivitySummary(records), nil
}

// HeartRateSummary loads bpm readings and computes the period summary.
func (s *HealthService) HeartRateSummary(ctx context.Context) (health.HeartRateSummary, error) {
	records, err := s.reader.LoadHeartRate(ctx)
	if err != nil {
		return health.HeartRateSummary{}, err
	}
	return s.metrics.ComputeHRSummary(records), nil
}

// SleepSummary loads sleep records and computes the period summary.
func (s *HealthService) SleepSummary(ctx context.Context) (health.SleepSummary, error) {
	records, err := s.reader.LoadSleep(ctx)
	if err != nil {
		return health.SleepSummary{}, err
	}
	return s.metrics.ComputeSleepSummary(records), nil
}

// Summaries loads all three datasets and returns whichever summaries have
// backing data. A dataset that fails to load yields a nil summary and a
// warning; only when every dataset fails is the last error returned.
func (s *HealthService) Summaries(ctx context.Context) (*health.ActivitySummary, *health.SleepSummary, *health.HeartRateSummary, error) {
	var lastErr error

	var activity *health.ActivitySummary
	if sum, err := s.ActivitySummary(ctx); err != nil {
		s.logger.Warn("activity summary unavailable: %v", err)
		lastErr = err
	} else {
		activity = &sum
	}

	var sleep *health.SleepSummary
	if sum, err := s.SleepSummary(ctx); err != nil {
		s.logger.Warn("sleep summary unavailable: %v", err)
		lastErr = err
	} else {
		sleep = &sum
	}

	var heartRate *health.HeartRateSummary
	if sum, err := s.HeartRateSummary(ctx); err != nil {
		s.logger.Warn("heart rate summary unavailable: %v", err)
		lastErr = err
	} else {
		heartRate = &sum
	}

	if activity == nil && sleep == nil && heartRate == nil {
		return nil, nil, nil, lastErr
	}
	return activity, sleep, heartRate, nil
}

// Insights runs the rule engine over every summary that has data.
func (s *HealthService) Insights(ctx context.Context) ([]health.Insight, error) {
	activity, sleep, heartRate, err := s.Summaries(ctx)
	if err != nil {
		return nil, err
	}
	return s.insights.GetAllInsights(activity, sleep, heartRate), nil
}

// WeeklyActivity aggregates daily activity into weeks ending Sunday.
func (s *HealthService) WeeklyActivity(ctx context.Context) ([]health.WeeklyActivity, error) {
	records, err := s.reader.LoadActivity(ctx)
	if err != nil {
		return nil, err
	}
	return s.metrics.ResampleActivityWeekly(records), nil
}

// HourlyHeartRate aggregates bpm readings into hourly mean/min/max.
func (s *HealthService) HourlyHeartRate(ctx context.Context) ([]health.HourlyHeartRate, error) {
	records, err := s.reader.LoadHeartRate(ctx)
	if err != nil {
		return nil, err
	}
	return s.metrics.ResampleHRHourly(records), nil
}

// RollingSteps returns the step series with trailing 7 and 30 day averages.
func (s *HealthService) RollingSteps(ctx context.Context) ([]health.RollingPoint, error) {
	steps, err := s.stepSeries(ctx)
	if err != nil {
		return nil, err
	}
	return s.metrics.ComputeRollingAverages(steps, metrics.DefaultRollingWindows), nil
}

// StepAnomalies flags days whose step count deviates more than the default
// threshold from the trailing 14-day baseline.
func (s *HealthService) StepAnomalies(ctx context.Context) ([]health.AnomalyPoint, error) {
	steps, err := s.stepSeries(ctx)
	if err != nil {
		return nil, err
	}
	return s.metrics.DetectAnomalies(steps, metrics.DefaultAnomalyWindow, metrics.DefaultAnomalyThreshold), nil
}

func (s *HealthService) stepSeries(ctx context.Context) ([]float64, error) {
	records, err := s.reader.LoadActivity(ctx)
	if err != nil {
		return nil, err
	}
	steps := make([]float64, len(records))
	for i, r := range records {
		steps[i] = float64(r.Steps)
	}
	return steps, nil
}

package health

import (
	"encoding/json"
	"math"
)

// NaN is not representable in JSON. The fields that use it as an
// "empty partition" sentinel marshal as null instead.

func (s ActivitySummary) MarshalJSON() ([]byte, error) {
	type alias ActivitySummary
	return json.Marshal(struct {
		alias
		WeekdayAvgSteps *float64 `json:"weekday_avg_steps"`
		WeekendAvgSteps *float64 `json:"weekend_avg_steps"`
	}{alias(s), nullable(s.WeekdayAvgSteps), nullable(s.WeekendAvgSteps)})
}

func (s SleepSummary) MarshalJSON() ([]byte, error) {
	type alias SleepSummary
	return json.Marshal(struct {
		alias
		WeekendShiftHours *float64 `json:"weekend_shift_hours"`
	}{alias(s), nullable(s.WeekendShiftHours)})
}

func (p AnomalyPoint) MarshalJSON() ([]byte, error) {
	type alias AnomalyPoint
	return json.Marshal(struct {
		alias
		ZScore *float64 `json:"z_score"`
	}{alias(p), nullable(p.ZScore)})
}

func nullable(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

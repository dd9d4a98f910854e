package insights

import (
	"fmt"
	"math"

	"healthlens/domain/health"
)

// Rule thresholds. These are fixed design constants; changing any of them
// changes which insights fire.
const (
	stepGoalHigh      = 10000
	stepGoalLow       = 7000
	trendSlopeMin     = 20   // steps/day
	trendAlpha        = 0.05 // significance level for the step trend
	weekdayGapSteps   = 3000
	sleepDurationMin  = 7.0
	sleepDurationMax  = 9.0
	bedtimeStdMax     = 1.0 // hours
	weekendShiftMax   = 1.0 // hours
	deepSleepPctMin   = 15
	restingHRAthletic = 60
	restingHRNormal   = 80
)

// Engine generates rule-based insights from health metric summaries.
//
// Thresholds follow WHO physical activity guidelines, Sleep Foundation
// duration recommendations, and AHA resting heart rate ranges. Rules are
// independent: one summary can produce several insights, or none.
type Engine struct{}

// NewEngine creates a new insight engine
func NewEngine() *Engine {
	return &Engine{}
}

// AnalyzeActivity generates insights from activity metrics.
func (e *Engine) AnalyzeActivity(summary health.ActivitySummary) []health.Insight {
	var out []health.Insight

	// Step count assessment
	switch {
	case summary.MeanSteps >= stepGoalHigh:
		out = append(out, health.Insight{
			Category: health.CategoryActivity,
			Severity: health.SeverityPositive,
			Title:    "Meeting step goals",
			Description: fmt.Sprintf(
				"Your average of %.0f steps/day meets the 10,000-step target. Research suggests this level is associated with reduced cardiovascular risk.",
				summary.MeanSteps),
			Recommendation: "Maintain your current activity level.",
		})
	case summary.MeanSteps >= stepGoalLow:
		out = append(out, health.Insight{
			Category: health.CategoryActivity,
			Severity: health.SeverityInfo,
			Title:    "Good step count",
			Description: fmt.Sprintf(
				"Your average of %.0f steps/day is above the 7,000-step threshold associated with reduced all-cause mortality (Paluch et al., 2021).",
				summary.MeanSteps),
			Recommendation: fmt.Sprintf(
				"To reach 10K, try adding a %.0f-minute walk to your routine.",
				(stepGoalHigh-summary.MeanSteps)/2000),
		})
	default:
		out = append(out, health.Insight{
			Category: health.CategoryActivity,
			Severity: health.SeverityWarning,
			Title:    "Below recommended daily steps",
			Description: fmt.Sprintf(
				"Your average of %.0f steps/day is below the 7,000-step threshold associated with reduced mortality risk.",
				summary.MeanSteps),
			Recommendation: "Start with adding a 15-minute walk after meals.",
		})
	}

	// Trend analysis
	if summary.TrendSlope > trendSlopeMin && summary.TrendPValue < trendAlpha {
		out = append(out, health.Insight{
			Category: health.CategoryActivity,
			Severity: health.SeverityPositive,
			Title:    "Improving activity trend",
			Description: fmt.Sprintf(
				"Your step count is increasing by ~%.0f steps/day (p=%.3f). This is a statistically significant positive trend.",
				summary.TrendSlope, summary.TrendPValue),
			Recommendation: "Keep up the momentum.",
		})
	} else if summary.TrendSlope < -trendSlopeMin && summary.TrendPValue < trendAlpha {
		out = append(out, health.Insight{
			Category: health.CategoryActivity,
			Severity: health.SeverityAlert,
			Title:    "Declining activity trend",
			Description: fmt.Sprintf(
				"Your step count is declining by ~%.0f steps/day (p=%.3f).",
				math.Abs(summary.TrendSlope), summary.TrendPValue),
			Recommendation: "Consider setting incremental daily step goals.",
		})
	}

	// Weekday vs weekend gap. NaN partition averages make the comparison
	// false, so the rule is skipped when either side has no data.
	gap := summary.WeekdayAvgSteps - summary.WeekendAvgSteps
	if gap > weekdayGapSteps {
		out = append(out, health.Insight{
			Category: health.CategoryActivity,
			Severity: health.SeverityInfo,
			Title:    "Large weekday-weekend activity gap",
			Description: fmt.Sprintf(
				"You average %.0f steps on weekdays vs %.0f on weekends (a %.0f-step difference).",
				summary.WeekdayAvgSteps, summary.WeekendAvgSteps, gap),
			Recommendation: "Try adding weekend activities like walking or cycling.",
		})
	}

	return out
}

// AnalyzeSleep generates insights from sleep metrics.
func (e *Engine) AnalyzeSleep(summary health.SleepSummary) []health.Insight {
	var out []health.Insight

	// Duration assessment
	if summary.AvgDurationHours >= sleepDurationMin && summary.AvgDurationHours <= sleepDurationMax {
		out = append(out, health.Insight{
			Category: health.CategorySleep,
			Severity: health.SeverityPositive,
			Title:    "Healthy sleep duration",
			Description: fmt.Sprintf(
				"Your average sleep of %.1f hours falls within the 7-9 hour range recommended by the National Sleep Foundation for adults.",
				summary.AvgDurationHours),
			Recommendation: "Maintain your current sleep schedule.",
		})
	} else if summary.AvgDurationHours < sleepDurationMin {
		out = append(out, health.Insight{
			Category: health.CategorySleep,
			Severity: health.SeverityWarning,
			Title:    "Insufficient sleep duration",
			Description: fmt.Sprintf(
				"Your average of %.1f hours is below the 7-hour minimum. Chronic sleep restriction is linked to impaired cognitive function and metabolic health.",
				summary.AvgDurationHours),
			Recommendation: "Try moving your bedtime 15-30 minutes earlier.",
		})
	}

	// Consistency
	if summary.BedtimeConsistency > bedtimeStdMax {
		out = append(out, health.Insight{
			Category: health.CategorySleep,
			Severity: health.SeverityWarning,
			Title:    "Inconsistent bedtime",
			Description: fmt.Sprintf(
				"Your bedtime varies by ~%.0f minutes (std dev). Irregular sleep schedules can disrupt circadian rhythm.",
				summary.BedtimeConsistency*60),
			Recommendation: "Aim for the same bedtime within a 30-minute window.",
		})
	}

	// Social jet lag
	if math.Abs(summary.WeekendShiftHours) > weekendShiftMax {
		out = append(out, health.Insight{
			Category: health.CategorySleep,
			Severity: health.SeverityInfo,
			Title:    "Social jet lag detected",
			Description: fmt.Sprintf(
				"Your weekend bedtime is ~%.1f hours later than weekdays. This 'social jet lag' can impair Monday alertness and metabolic regulation.",
				summary.WeekendShiftHours),
			Recommendation: "Reduce weekend bedtime shifts to under 1 hour.",
		})
	}

	// Deep sleep
	if summary.AvgDeepSleepPct < deepSleepPctMin {
		out = append(out, health.Insight{
			Category: health.CategorySleep,
			Severity: health.SeverityWarning,
			Title:    "Low deep sleep percentage",
			Description: fmt.Sprintf(
				"Your average deep sleep of %.1f%% is below the typical 15-20%% range. Deep sleep is critical for physical recovery and immune function.",
				summary.AvgDeepSleepPct),
			Recommendation: "Avoid alcohol and heavy meals before bed.",
		})
	}

	return out
}

// AnalyzeHeartRate generates insights from heart rate metrics.
func (e *Engine) AnalyzeHeartRate(summary health.HeartRateSummary) []health.Insight {
	var out []health.Insight

	switch {
	case summary.RestingHRMean < restingHRAthletic:
		out = append(out, health.Insight{
			Category: health.CategoryHeartRate,
			Severity: health.SeverityPositive,
			Title:    "Excellent resting heart rate",
			Description: fmt.Sprintf(
				"Your resting HR of %.0f bpm indicates strong cardiovascular fitness. Athletes typically have resting HR in the 40-60 bpm range.",
				summary.RestingHRMean),
			Recommendation: "Maintain your cardiovascular training.",
		})
	case summary.RestingHRMean <= restingHRNormal:
		out = append(out, health.Insight{
			Category: health.CategoryHeartRate,
			Severity: health.SeverityInfo,
			Title:    "Normal resting heart rate",
			Description: fmt.Sprintf(
				"Your resting HR of %.0f bpm is within the normal range (60-100 bpm per AHA guidelines).",
				summary.RestingHRMean),
			Recommendation: "Regular aerobic exercise can further lower resting HR.",
		})
	default:
		out = append(out, health.Insight{
			Category: health.CategoryHeartRate,
			Severity: health.SeverityWarning,
			Title:    "Elevated resting heart rate",
			Description: fmt.Sprintf(
				"Your resting HR of %.0f bpm is on the higher end. Sustained elevated resting HR may indicate stress, dehydration, or insufficient recovery.",
				summary.RestingHRMean),
			Recommendation: "Ensure adequate hydration and stress management.",
		})
	}

	return out
}

// GetAllInsights concatenates per-domain results for whichever summaries
// are supplied; any subset may be nil.
func (e *Engine) GetAllInsights(activity *health.ActivitySummary, sleep *health.SleepSummary, heartRate *health.HeartRateSummary) []health.Insight {
	var out []health.Insight
	if activity != nil {
		out = append(out, e.AnalyzeActivity(*activity)...)
	}
	if sleep != nil {
		out = append(out, e.AnalyzeSleep(*sleep)...)
	}
	if heartRate != nil {
		out = append(out, e.AnalyzeHeartRate(*heartRate)...)
	}
	return out
}

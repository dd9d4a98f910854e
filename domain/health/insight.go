package health

// InsightCategory is the health domain an insight belongs to.
type InsightCategory string

const (
	CategoryActivity  InsightCategory = "activity"
	CategorySleep     InsightCategory = "sleep"
	CategoryHeartRate InsightCategory = "heart_rate"
)

// InsightSeverity orders insights by urgency.
type InsightSeverity string

const (
	SeverityInfo     InsightSeverity = "info"
	SeverityPositive InsightSeverity = "positive"
	SeverityWarning  InsightSeverity = "warning"
	SeverityAlert    InsightSeverity = "alert"
)

// Insight is a single display-only finding derived from a summary.
// Description interpolates the computed values behind the triggering rule;
// Recommendation is the actionable next step.
type Insight struct {
	Category       InsightCategory `json:"category"`
	Severity       InsightSeverity `json:"severity"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Recommendation string          `json:"recommendation"`
}

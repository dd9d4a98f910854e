package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"healthlens/domain/health"
	"healthlens/domain/nutrition"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// severityBadges map insight severities to the report's inline markers.
var severityBadges = map[health.InsightSeverity]string{
	health.SeverityPositive: "✅",
	health.SeverityInfo:     "ℹ️",
	health.SeverityWarning:  "⚠️",
	health.SeverityAlert:    "🚨",
}

// Report bundles everything the markdown builder renders. Nil sections are
// omitted from the output.
type Report struct {
	GeneratedAt time.Time
	Activity    *health.ActivitySummary
	Sleep       *health.SleepSummary
	HeartRate   *health.HeartRateSummary
	Insights    []health.Insight
	Nutrition   *nutrition.Recommendations
}

// BuildMarkdown renders the report as a markdown document.
func BuildMarkdown(r Report) string {
	var b strings.Builder

	b.WriteString("# Health Report\n\n")
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	}

	if r.Activity != nil {
		b.WriteString("## Activity\n\n")
		fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Mean steps/day | %.0f |\n", r.Activity.MeanSteps)
		fmt.Fprintf(&b, "| Median steps/day | %.0f |\n", r.Activity.MedianSteps)
		fmt.Fprintf(&b, "| Avg daily calories | %.0f |\n", r.Activity.AvgDailyCalories)
		fmt.Fprintf(&b, "| Total distance | %.1f km |\n", r.Activity.TotalDistanceKm)
		fmt.Fprintf(&b, "| Step trend | %+.1f steps/day (p=%.3f) |\n", r.Activity.TrendSlope, r.Activity.TrendPValue)
		if !math.IsNaN(r.Activity.WeekdayAvgSteps) && !math.IsNaN(r.Activity.WeekendAvgSteps) {
			fmt.Fprintf(&b, "| Weekday vs weekend | %.0f vs %.0f steps |\n", r.Activity.WeekdayAvgSteps, r.Activity.WeekendAvgSteps)
		}
		b.WriteString("\n")
	}

	if r.Sleep != nil {
		b.WriteString("## Sleep\n\n")
		fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Avg duration | %.1f h |\n", r.Sleep.AvgDurationHours)
		fmt.Fprintf(&b, "| Deep / REM / light | %.1f%% / %.1f%% / %.1f%% |\n",
			r.Sleep.AvgDeepSleepPct, r.Sleep.AvgRemPct, r.Sleep.AvgLightSleepPct)
		fmt.Fprintf(&b, "| Bedtime consistency | ±%.0f min |\n", r.Sleep.BedtimeConsistency*60)
		if !math.IsNaN(r.Sleep.WeekendShiftHours) {
			fmt.Fprintf(&b, "| Weekend bedtime shift | %+.1f h |\n", r.Sleep.WeekendShiftHours)
		}
		b.WriteString("\n")
	}

	if r.HeartRate != nil {
		b.WriteString("## Heart Rate\n\n")
		fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
		if r.HeartRate.RestingHRMean > 0 {
			fmt.Fprintf(&b, "| Resting HR | %.0f bpm (±%.1f) |\n", r.HeartRate.RestingHRMean, r.HeartRate.RestingHRStd)
		} else {
			b.WriteString("| Resting HR | undetermined |\n")
		}
		fmt.Fprintf(&b, "| Max observed | %d bpm |\n", r.HeartRate.MaxHRObserved)
		z := r.HeartRate.TimeInZones
		fmt.Fprintf(&b, "| Time in zones | resting %.1f%%, light %.1f%%, moderate %.1f%%, vigorous %.1f%% |\n",
			z.Resting, z.Light, z.Moderate, z.Vigorous)
		b.WriteString("\n")
	}

	if len(r.Insights) > 0 {
		b.WriteString("## Insights\n\n")
		for _, ins := range r.Insights {
			badge := severityBadges[ins.Severity]
			fmt.Fprintf(&b, "- %s **%s**: %s\n  _%s_\n", badge, ins.Title, ins.Description, ins.Recommendation)
		}
		b.WriteString("\n")
	}

	if r.Nutrition != nil {
		n := r.Nutrition
		b.WriteString("## Nutrition Targets\n\n")
		fmt.Fprintf(&b, "| Target | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| BMR | %d kcal |\n", n.BMR)
		fmt.Fprintf(&b, "| TDEE | %d kcal |\n", n.TDEE)
		fmt.Fprintf(&b, "| Daily calories | %d kcal |\n", n.TargetCalories)
		fmt.Fprintf(&b, "| Protein | %.0f g (range %.0f-%.0f g) |\n", n.ProteinRecommendedG, n.ProteinMinG, n.ProteinMaxG)
		fmt.Fprintf(&b, "| Carbohydrates | at least %.0f g |\n", n.CarbsMinG)
		fmt.Fprintf(&b, "| Fat | at least %.0f g |\n", n.FatMinG)
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHTML converts report markdown to an HTML fragment with tables enabled.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

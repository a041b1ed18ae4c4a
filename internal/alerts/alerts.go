// Package alerts classifies summaries into strategic alerts. Rules run in
// priority order; the first match determines the alert kind and level.
package alerts

import (
	"fmt"
	"strings"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
)

// Level is the severity of a strategic alert.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Kind labels what triggered an alert.
type Kind string

const (
	KindAIPush      Kind = "ai_push"
	KindPricing     Kind = "pricing_change"
	KindMajorUpdate Kind = "major_update"
	KindBroadUpdate Kind = "broad_update"
	KindIncremental Kind = "incremental"
)

// Alert is one strategic alert for one competitor's summary.
type Alert struct {
	Competitor string `json:"competitor"`
	Kind       Kind   `json:"kind"`
	Level      Level  `json:"level"`
	Message    string `json:"message"`
}

var aiAlertKeywords = []string{"ai", "artificial intelligence", "machine learning", "copilot", "automation"}

// Evaluate produces the strategic alert for one summary. Every summary
// yields an alert; most are incremental and informational.
func Evaluate(summary core.Summary) Alert {
	bullets := strings.ToLower(strings.Join(summary.SummaryBullets, " "))

	switch {
	case summary.ImpactScore > 70 && containsAny(bullets, aiAlertKeywords):
		return newAlert(summary, KindAIPush, LevelCritical,
			fmt.Sprintf("%s is making a significant AI push (impact %d). Review their positioning before the next planning cycle.",
				summary.Competitor, summary.ImpactScore))

	case hasCategory(summary, "pricing"):
		return newAlert(summary, KindPricing, LevelCritical,
			fmt.Sprintf("%s changed pricing or packaging. Assess impact on competitive deals.", summary.Competitor))

	case summary.ImpactScore > 85:
		return newAlert(summary, KindMajorUpdate, LevelWarning,
			fmt.Sprintf("%s shipped a major update (impact %d).", summary.Competitor, summary.ImpactScore))

	case len(summary.Categories) >= 3:
		return newAlert(summary, KindBroadUpdate, LevelWarning,
			fmt.Sprintf("%s shipped updates across %d areas this period.", summary.Competitor, len(summary.Categories)))

	default:
		return newAlert(summary, KindIncremental, LevelInfo,
			fmt.Sprintf("%s shipped incremental updates (impact %d).", summary.Competitor, summary.ImpactScore))
	}
}

// EvaluateBatch returns one alert per summary, in batch order.
func EvaluateBatch(summaries []core.Summary) []Alert {
	out := make([]Alert, len(summaries))
	for i, s := range summaries {
		out[i] = Evaluate(s)
	}
	return out
}

// Actionable filters a batch's alerts down to warning level and above.
func Actionable(alerts []Alert) []Alert {
	var out []Alert
	for _, a := range alerts {
		if a.Level >= LevelWarning {
			out = append(out, a)
		}
	}
	return out
}

func newAlert(summary core.Summary, kind Kind, level Level, message string) Alert {
	if summary.FallbackSummary || summary.UsedFallbackContent {
		message += " (AI-generated analysis; verify against the source)"
	}
	return Alert{
		Competitor: summary.Competitor,
		Kind:       kind,
		Level:      level,
		Message:    message,
	}
}

func hasCategory(summary core.Summary, name string) bool {
	for _, c := range summary.Categories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

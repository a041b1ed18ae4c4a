// Package analytics derives batch-level signals from a run's summaries:
// per-competitor momentum, a ranked leaderboard, and the dominant
// cross-competitor theme. Every function here is pure over its inputs.
package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
)

// Momentum formula weights.
const (
	momentumPerBullet  = 10
	momentumPerAI      = 5
	momentumPerFeature = 3
	momentumCap        = 100
)

var featureKeywords = []string{"feature", "new", "launch"}

// MomentumScore computes a competitor's activity score from one summary:
// bullet volume, weighted up for AI mentions and feature language.
func MomentumScore(summary core.Summary) int {
	score := momentumPerBullet * len(summary.SummaryBullets)

	for _, bullet := range summary.SummaryBullets {
		lower := strings.ToLower(bullet)
		if strings.Contains(lower, "ai") {
			score += momentumPerAI
		}
		for _, kw := range featureKeywords {
			if strings.Contains(lower, kw) {
				score += momentumPerFeature
				break
			}
		}
	}

	if score > momentumCap {
		score = momentumCap
	}
	return score
}

// Leaderboard ranks a batch by momentum, highest first. Ties keep batch
// order. Positions one through three get medal labels, the rest numeric.
func Leaderboard(summaries []core.Summary) []core.LeaderboardEntry {
	entries := make([]core.LeaderboardEntry, len(summaries))
	for i, s := range summaries {
		entries[i] = core.LeaderboardEntry{
			CompetitorName: s.Competitor,
			Score:          MomentumScore(s),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	medals := []string{"🥇", "🥈", "🥉"}
	for i := range entries {
		entries[i].Rank = i + 1
		if i < len(medals) {
			entries[i].RankLabel = medals[i]
		} else {
			entries[i].RankLabel = fmt.Sprintf("#%d", i+1)
		}
	}
	return entries
}

// trendThemes maps each theme to the keywords that count toward it.
var trendThemes = []struct {
	name     string
	label    string
	keywords []string
}{
	{"ai", "AI capabilities", []string{"ai", "artificial intelligence", "machine learning", "automation", "copilot"}},
	{"mobile", "mobile experience", []string{"mobile", "ios", "android"}},
	{"integration", "integrations", []string{"integration", "api", "webhook", "sync"}},
	{"ui_ux", "UI and UX refinement", []string{"ui", "ux", "design", "interface", "redesign"}},
	{"enterprise", "enterprise readiness", []string{"enterprise", "sso", "admin", "compliance", "permission"}},
	{"collaboration", "collaboration", []string{"collaboration", "comment", "share", "real-time", "team"}},
	{"pricing", "pricing and packaging", []string{"pricing", "plan", "tier", "billing"}},
	{"security", "security", []string{"security", "encryption", "privacy", "audit"}},
	{"performance", "performance", []string{"performance", "faster", "speed", "optimization", "latency"}},
	{"analytics", "analytics and reporting", []string{"analytics", "dashboard", "report", "metric"}},
	{"accessibility", "accessibility", []string{"accessibility", "screen reader", "keyboard navigation", "contrast"}},
	{"onboarding", "onboarding", []string{"onboarding", "tutorial", "getting started", "template"}},
}

// DominantTrend finds the theme with the most keyword occurrences across
// all bullets and insights in the batch. When nothing matches it returns
// the neutral no-trend signal.
func DominantTrend(summaries []core.Summary) core.TrendSignal {
	var corpus strings.Builder
	for _, s := range summaries {
		for _, b := range s.SummaryBullets {
			corpus.WriteString(strings.ToLower(b))
			corpus.WriteString(" ")
		}
		corpus.WriteString(strings.ToLower(s.StrategicInsight))
		corpus.WriteString(" ")
	}
	text := corpus.String()

	bestIdx := -1
	bestCount := 0
	for i, theme := range trendThemes {
		count := 0
		for _, kw := range theme.keywords {
			count += strings.Count(text, kw)
		}
		if count > bestCount {
			bestCount = count
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return core.TrendSignal{
			Description: "No dominant trend detected across competitors this period.",
		}
	}

	winner := trendThemes[bestIdx]
	supporters := 0
	for _, s := range summaries {
		bullets := strings.ToLower(strings.Join(s.SummaryBullets, " "))
		for _, kw := range winner.keywords {
			if strings.Contains(bullets, kw) {
				supporters++
				break
			}
		}
	}

	return core.TrendSignal{
		DominantTheme: winner.name,
		Description: fmt.Sprintf("%d of %d competitors are converging on %s this period.",
			supporters, len(summaries), winner.label),
		SupportingCompetitorCount: supporters,
	}
}

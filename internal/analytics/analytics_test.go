package analytics

import (
	"reflect"
	"testing"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
)

func summaryWithBullets(name string, bullets ...string) core.Summary {
	return core.Summary{Competitor: name, SummaryBullets: bullets}
}

func TestMomentumScore(t *testing.T) {
	cases := []struct {
		name    string
		summary core.Summary
		want    int
	}{
		{
			"bland bullets",
			summaryWithBullets("A", "improved docs", "updated colors", "fixed bugs"),
			30,
		},
		{
			"ai and feature weighting",
			// 3 bullets = 30, "ai" in two = +10, feature word in two = +6
			summaryWithBullets("B", "New AI copilot", "Launched AI suggestions", "faster exports"),
			30 + 10 + 6,
		},
		{
			"capped at 100",
			summaryWithBullets("C",
				"new ai feature one", "new ai feature two", "new ai feature three",
				"new ai feature four", "new ai feature five", "new ai feature six",
				"new ai feature seven", "new ai feature eight"),
			100,
		},
		{
			"empty",
			summaryWithBullets("D"),
			0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MomentumScore(tc.summary); got != tc.want {
				t.Errorf("MomentumScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMomentumScore_Idempotent(t *testing.T) {
	s := summaryWithBullets("A", "New AI copilot launched", "More features")
	if MomentumScore(s) != MomentumScore(s) {
		t.Error("MomentumScore must be pure")
	}
}

func TestLeaderboard_StableTieBreak(t *testing.T) {
	// A and B score identically; A appears first in the batch and must
	// stay ahead of B.
	batch := []core.Summary{
		summaryWithBullets("A", "new ai feature", "new ai feature two", "something else entirely"),
		summaryWithBullets("B", "new ai feature", "new ai feature two", "something else entirely"),
		summaryWithBullets("C", "minor fix"),
	}

	board := Leaderboard(batch)

	var order []string
	for _, e := range board {
		order = append(order, e.CompetitorName)
	}
	if !reflect.DeepEqual(order, []string{"A", "B", "C"}) {
		t.Errorf("order = %v, want [A B C]", order)
	}
	if board[0].Score != board[1].Score {
		t.Fatalf("test setup broken: A and B should tie (%d vs %d)", board[0].Score, board[1].Score)
	}
}

func TestLeaderboard_RankLabels(t *testing.T) {
	batch := []core.Summary{
		summaryWithBullets("A", "new ai launch", "ai copilot", "ai everywhere"),
		summaryWithBullets("B", "new feature", "another new thing"),
		summaryWithBullets("C", "fix"),
		summaryWithBullets("D"),
	}

	board := Leaderboard(batch)

	wantLabels := []string{"🥇", "🥈", "🥉", "#4"}
	for i, want := range wantLabels {
		if board[i].RankLabel != want {
			t.Errorf("rank %d label = %q, want %q", i+1, board[i].RankLabel, want)
		}
		if board[i].Rank != i+1 {
			t.Errorf("rank %d numeric = %d", i+1, board[i].Rank)
		}
	}
}

func TestDominantTrend_AITheme(t *testing.T) {
	batch := []core.Summary{
		summaryWithBullets("A", "New AI copilot launched", "AI-driven suggestions", "Expanded AI automation"),
		summaryWithBullets("B", "Dark mode polish"),
		summaryWithBullets("C", "Bug fixes"),
		summaryWithBullets("D", "Docs refresh"),
		summaryWithBullets("E", "Minor tweaks"),
	}

	trend := DominantTrend(batch)

	if trend.DominantTheme != "ai" {
		t.Errorf("dominant theme = %q, want ai", trend.DominantTheme)
	}
	if trend.SupportingCompetitorCount < 1 {
		t.Errorf("supporting count = %d, want >= 1", trend.SupportingCompetitorCount)
	}
	if trend.NoDominantTrend() {
		t.Error("signal should not be neutral")
	}
}

func TestDominantTrend_NoMatches(t *testing.T) {
	batch := []core.Summary{
		summaryWithBullets("A", "zzz", "qqq"),
		summaryWithBullets("B", "xxx"),
	}

	trend := DominantTrend(batch)

	if !trend.NoDominantTrend() {
		t.Errorf("expected neutral signal, got theme %q", trend.DominantTheme)
	}
	if trend.Description == "" {
		t.Error("neutral signal still needs a description")
	}
}

func TestDominantTrend_Idempotent(t *testing.T) {
	batch := []core.Summary{
		summaryWithBullets("A", "New AI copilot", "security audit logs"),
		summaryWithBullets("B", "SSO for enterprise admins"),
	}

	first := DominantTrend(batch)
	second := DominantTrend(batch)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("DominantTrend must be pure: %+v vs %+v", first, second)
	}
}

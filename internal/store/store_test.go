package store

import (
	"testing"
	"time"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSummary(id, competitor string, generatedAt time.Time) core.Summary {
	return core.Summary{
		ID:               id,
		Competitor:       competitor,
		SummaryBullets:   []string{"Launched AI search", "New API endpoints", "Faster sync"},
		StrategicInsight: competitor + " is betting on AI.",
		ConfidenceLevel:  core.ConfidenceHigh,
		RelevantDates:    []string{"July 15, 2025"},
		Categories:       []string{"ai_ml", "integration"},
		ImpactScore:      85,
		ContentLength:    2400,
		AnalysisPeriod: core.AnalysisPeriod{
			Start: generatedAt.AddDate(0, 0, -7),
			End:   generatedAt,
		},
		GeneratedAt: generatedAt,
	}
}

func TestSaveAndRecentAnalyses(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	first := sampleSummary("id-1", "Notion", now.Add(-time.Hour))
	second := sampleSummary("id-2", "Linear", now)

	for _, sum := range []core.Summary{first, second} {
		if _, err := s.SaveAnalysis(sum, "raw content"); err != nil {
			t.Fatalf("SaveAnalysis failed: %v", err)
		}
	}

	got, err := s.RecentAnalyses(10)
	if err != nil {
		t.Fatalf("RecentAnalyses failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d analyses, want 2", len(got))
	}
	if got[0].Competitor != "Linear" {
		t.Errorf("newest first: got %q, want Linear", got[0].Competitor)
	}
	if len(got[0].SummaryBullets) != 3 {
		t.Errorf("bullets did not round-trip: %v", got[0].SummaryBullets)
	}
	if got[0].ConfidenceLevel != core.ConfidenceHigh {
		t.Errorf("confidence did not round-trip: %q", got[0].ConfidenceLevel)
	}
}

func TestSaveAnalysis_UpsertsByID(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	sum := sampleSummary("id-1", "Notion", now)
	if _, err := s.SaveAnalysis(sum, "v1"); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}
	sum.ImpactScore = 40
	if _, err := s.SaveAnalysis(sum, "v2"); err != nil {
		t.Fatalf("second SaveAnalysis failed: %v", err)
	}

	got, err := s.RecentAnalyses(10)
	if err != nil {
		t.Fatalf("RecentAnalyses failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("same ID should replace, got %d rows", len(got))
	}
	if got[0].ImpactScore != 40 {
		t.Errorf("impact score = %d, want the replaced value 40", got[0].ImpactScore)
	}
}

func TestCompetitorHistory(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	for i, name := range []string{"Notion", "Linear", "Notion"} {
		sum := sampleSummary(string(rune('a'+i)), name, now.Add(time.Duration(i)*time.Minute))
		if _, err := s.SaveAnalysis(sum, ""); err != nil {
			t.Fatalf("SaveAnalysis failed: %v", err)
		}
	}

	got, err := s.CompetitorHistory("Notion", 10)
	if err != nil {
		t.Fatalf("CompetitorHistory failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows for Notion, want 2", len(got))
	}
	for _, sum := range got {
		if sum.Competitor != "Notion" {
			t.Errorf("history leaked another competitor: %q", sum.Competitor)
		}
	}
}

func TestSaveTrendAndCleanup(t *testing.T) {
	s := newTestStore(t)

	trend := core.TrendSignal{
		DominantTheme:             "ai",
		Description:               "3 of 5 competitors are converging on AI capabilities.",
		SupportingCompetitorCount: 3,
	}
	if err := s.SaveTrend(trend); err != nil {
		t.Fatalf("SaveTrend failed: %v", err)
	}

	old := sampleSummary("old", "Notion", time.Now().UTC().AddDate(0, 0, -90))
	fresh := sampleSummary("fresh", "Linear", time.Now().UTC())
	for _, sum := range []core.Summary{old, fresh} {
		if _, err := s.SaveAnalysis(sum, ""); err != nil {
			t.Fatalf("SaveAnalysis failed: %v", err)
		}
	}

	removed, err := s.CleanupOldData(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("CleanupOldData failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed %d rows, want 1", removed)
	}

	got, err := s.RecentAnalyses(10)
	if err != nil {
		t.Fatalf("RecentAnalyses failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Errorf("cleanup kept the wrong rows: %+v", got)
	}
}

package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/Akhila-1703/CompetitorTracker/internal/alerts"
	"github.com/Akhila-1703/CompetitorTracker/internal/core"
)

type fakeAcquirer struct {
	byName map[string]core.AcquiredContent
}

func (f fakeAcquirer) Acquire(_ context.Context, target core.CompetitorTarget) core.AcquiredContent {
	if c, ok := f.byName[target.Name]; ok {
		return c
	}
	return core.AcquiredContent{
		CompetitorName: target.Name,
		Text:           "acquisition failed",
		Provenance:     core.ProvenanceFailed,
	}
}

type fakeSummarizer struct{}

func (fakeSummarizer) Summarize(_ context.Context, content core.AcquiredContent, period core.AnalysisPeriod) core.Summary {
	return core.Summary{
		Competitor:       content.CompetitorName,
		SummaryBullets:   []string{"New AI feature", "b", "c"},
		StrategicInsight: content.CompetitorName + " insight",
		ConfidenceLevel:  core.ConfidenceHigh,
		Categories:       []string{"general"},
		ImpactScore:      50,
		FallbackSummary:  content.Failed(),
		AnalysisPeriod:   period,
	}
}

type failingSaver struct {
	analyses int
	trends   int
}

func (s *failingSaver) SaveAnalysis(core.Summary, string) (string, error) {
	s.analyses++
	return "", errors.New("disk full")
}

func (s *failingSaver) SaveTrend(core.TrendSignal) error {
	s.trends++
	return errors.New("disk full")
}

type failingNotifier struct {
	digests int
	alerts  int
}

func (n *failingNotifier) SendDigest([]core.Summary, []core.LeaderboardEntry, core.TrendSignal) error {
	n.digests++
	return errors.New("webhook down")
}

func (n *failingNotifier) SendAlerts([]alerts.Alert) error {
	n.alerts++
	return errors.New("webhook down")
}

func targets(names ...string) []core.CompetitorTarget {
	out := make([]core.CompetitorTarget, len(names))
	for i, n := range names {
		out[i] = core.CompetitorTarget{Name: n, URL: "https://" + n + ".example/changelog"}
	}
	return out
}

func TestRunBatch_OneSummaryPerTarget(t *testing.T) {
	acq := fakeAcquirer{byName: map[string]core.AcquiredContent{
		"Good": {CompetitorName: "Good", Text: "long enough scraped content", Provenance: core.ProvenanceScraped},
	}}
	p := New(acq, fakeSummarizer{}, nil, nil)

	result := p.RunBatch(context.Background(), targets("Good", "Bad", "AlsoBad"), 7)

	if len(result.Summaries) != 3 {
		t.Fatalf("got %d summaries for 3 targets, want 3", len(result.Summaries))
	}
	for i, name := range []string{"Good", "Bad", "AlsoBad"} {
		if result.Summaries[i].Competitor != name {
			t.Errorf("summary %d is %q, want %q (input order must be preserved)", i, result.Summaries[i].Competitor, name)
		}
	}
	if len(result.Leaderboard) != 3 {
		t.Errorf("leaderboard has %d entries, want 3", len(result.Leaderboard))
	}
	if len(result.Alerts) != 3 {
		t.Errorf("got %d alerts, want one per summary", len(result.Alerts))
	}
}

func TestRunBatch_CollaboratorFailuresAreNonFatal(t *testing.T) {
	saver := &failingSaver{}
	notifier := &failingNotifier{}
	p := New(fakeAcquirer{}, fakeSummarizer{}, saver, notifier)

	result := p.RunBatch(context.Background(), targets("A", "B"), 7)

	if len(result.Summaries) != 2 {
		t.Fatalf("collaborator failures must not drop summaries, got %d", len(result.Summaries))
	}
	if saver.analyses != 2 {
		t.Errorf("SaveAnalysis called %d times, want 2", saver.analyses)
	}
	if notifier.digests != 1 || notifier.alerts != 1 {
		t.Errorf("notifier calls digest=%d alerts=%d, want 1 each", notifier.digests, notifier.alerts)
	}
}

func TestRunBatch_PeriodStamped(t *testing.T) {
	p := New(fakeAcquirer{}, fakeSummarizer{}, nil, nil)

	result := p.RunBatch(context.Background(), targets("A"), 14)

	period := result.Summaries[0].AnalysisPeriod
	days := period.End.Sub(period.Start).Hours() / 24
	if days != 14 {
		t.Errorf("analysis period spans %.0f days, want 14", days)
	}
}

func TestRunBatch_EmptyBatch(t *testing.T) {
	p := New(fakeAcquirer{}, fakeSummarizer{}, nil, nil)

	result := p.RunBatch(context.Background(), nil, 7)
	if len(result.Summaries) != 0 {
		t.Errorf("empty input must yield empty output, got %d", len(result.Summaries))
	}
}

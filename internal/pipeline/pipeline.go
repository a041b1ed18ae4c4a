// Package pipeline drives a full analysis run: acquire content for every
// configured competitor, summarize each one, derive batch analytics, and
// hand results to the persistence and notification collaborators. Execution
// is sequential per competitor; the shared rate limiter inside the stages
// enforces global pacing.
package pipeline

import (
	"context"
	"time"

	"github.com/Akhila-1703/CompetitorTracker/internal/alerts"
	"github.com/Akhila-1703/CompetitorTracker/internal/analytics"
	"github.com/Akhila-1703/CompetitorTracker/internal/core"
	"github.com/Akhila-1703/CompetitorTracker/internal/logger"
)

// Acquirer is the content acquisition stage.
type Acquirer interface {
	Acquire(ctx context.Context, target core.CompetitorTarget) core.AcquiredContent
}

// Summarizer is the summarization stage.
type Summarizer interface {
	Summarize(ctx context.Context, content core.AcquiredContent, period core.AnalysisPeriod) core.Summary
}

// Saver persists run results. Failures are logged, never fatal.
type Saver interface {
	SaveAnalysis(summary core.Summary, rawContent string) (string, error)
	SaveTrend(trend core.TrendSignal) error
}

// Notifier delivers run results. Failures are logged, never fatal.
type Notifier interface {
	SendDigest(summaries []core.Summary, board []core.LeaderboardEntry, trend core.TrendSignal) error
	SendAlerts(batch []alerts.Alert) error
}

// Result is everything one run produced.
type Result struct {
	Summaries   []core.Summary
	Leaderboard []core.LeaderboardEntry
	Trend       core.TrendSignal
	Alerts      []alerts.Alert
}

// Pipeline wires the stages together.
type Pipeline struct {
	acquirer   Acquirer
	summarizer Summarizer
	saver      Saver
	notifier   Notifier
	now        func() time.Time
}

// New builds a Pipeline. Saver and notifier are optional; nil disables
// that collaborator.
func New(acquirer Acquirer, summarizer Summarizer, saver Saver, notifier Notifier) *Pipeline {
	return &Pipeline{
		acquirer:   acquirer,
		summarizer: summarizer,
		saver:      saver,
		notifier:   notifier,
		now:        time.Now,
	}
}

// RunBatch processes every target to completion, one at a time. Every
// target yields exactly one Summary regardless of failures along the way.
// daysBack only sets the analysis period stamped on each summary.
func (p *Pipeline) RunBatch(ctx context.Context, targets []core.CompetitorTarget, daysBack int) Result {
	if daysBack <= 0 {
		daysBack = 7
	}
	end := p.now().UTC()
	period := core.AnalysisPeriod{Start: end.AddDate(0, 0, -daysBack), End: end}

	logger.Info("starting batch", "targets", len(targets), "days_back", daysBack)

	summaries := make([]core.Summary, 0, len(targets))
	for _, target := range targets {
		content := p.acquirer.Acquire(ctx, target)
		summary := p.summarizer.Summarize(ctx, content, period)
		summaries = append(summaries, summary)

		if p.saver != nil {
			if _, err := p.saver.SaveAnalysis(summary, content.Text); err != nil {
				logger.Warn("failed to persist analysis", "competitor", summary.Competitor, "error", err.Error())
			}
		}
	}

	board := analytics.Leaderboard(summaries)
	trend := analytics.DominantTrend(summaries)
	batchAlerts := alerts.EvaluateBatch(summaries)

	if p.saver != nil && !trend.NoDominantTrend() {
		if err := p.saver.SaveTrend(trend); err != nil {
			logger.Warn("failed to persist trend", "error", err.Error())
		}
	}

	if p.notifier != nil {
		if err := p.notifier.SendDigest(summaries, board, trend); err != nil {
			logger.Warn("failed to send digest", "error", err.Error())
		}
		if err := p.notifier.SendAlerts(batchAlerts); err != nil {
			logger.Warn("failed to send alerts", "error", err.Error())
		}
	}

	logger.Info("batch complete", "summaries", len(summaries), "trend", trend.DominantTheme)

	return Result{
		Summaries:   summaries,
		Leaderboard: board,
		Trend:       trend,
		Alerts:      batchAlerts,
	}
}

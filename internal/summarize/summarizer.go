// Package summarize turns acquired changelog content into validated,
// enriched Summary records. The model's JSON output is treated as untrusted:
// it is validated field by field, bullets are deduplicated and padded, the
// impact score is recomputed locally, and every failure path degrades to a
// heuristic local summary rather than an error.
package summarize

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
	"github.com/Akhila-1703/CompetitorTracker/internal/llm"
	"github.com/Akhila-1703/CompetitorTracker/internal/logger"
	"github.com/Akhila-1703/CompetitorTracker/internal/ratelimit"
)

// CompletionClient is the AI capability summarization needs: one prompt,
// one JSON document back.
type CompletionClient interface {
	CompleteJSON(ctx context.Context, prompt string) (string, error)
}

// Options tunes the retry behavior of a Summarizer.
type Options struct {
	// MaxAttempts is the total API attempt budget per competitor,
	// counting throttled and malformed-response attempts alike.
	MaxAttempts int
	// RetryDelay is the fixed backoff after a throttled attempt.
	RetryDelay time.Duration
}

// DefaultOptions returns the production retry settings.
func DefaultOptions() Options {
	return Options{MaxAttempts: 2, RetryDelay: 5 * time.Second}
}

// Summarizer produces one Summary per competitor per run.
type Summarizer struct {
	client  CompletionClient
	limiter *ratelimit.Limiter
	opts    Options
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

// New returns a Summarizer. A nil client is allowed; every call then takes
// the local fallback path.
func New(client CompletionClient, limiter *ratelimit.Limiter, opts Options) *Summarizer {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultOptions().MaxAttempts
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultOptions().RetryDelay
	}
	return &Summarizer{
		client:  client,
		limiter: limiter,
		opts:    opts,
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

// Summarize produces the Summary for one competitor's acquired content.
// It never returns an error: all failures degrade to a local heuristic
// summary. The returned Summary always has exactly three bullets, a
// non-empty strategic insight, and an impact score in [0,100].
func (s *Summarizer) Summarize(ctx context.Context, content core.AcquiredContent, period core.AnalysisPeriod) core.Summary {
	// Failed acquisitions carry an error message, not content; never send
	// them to the model.
	if content.Failed() || s.client == nil {
		return s.localFallback(content, period)
	}

	prompt := buildPrompt(content, period)

	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		resp, err := s.attempt(ctx, prompt)
		if err == nil {
			logger.Info("summary generated", "competitor", content.CompetitorName, "attempt", attempt)
			return s.fromResponse(resp, content, period)
		}

		switch {
		case errors.Is(err, llm.ErrThrottled):
			logger.Warn("summarization throttled", "competitor", content.CompetitorName, "attempt", attempt)
			if attempt < s.opts.MaxAttempts {
				if sleepErr := s.sleep(ctx, s.opts.RetryDelay); sleepErr != nil {
					return s.localFallback(content, period)
				}
			}
		case errors.Is(err, ErrInvalidResponse):
			logger.Warn("summarization response invalid", "competitor", content.CompetitorName, "attempt", attempt, "error", err.Error())
		default:
			// Unclassified API failures are final; no point burning the
			// remaining budget on them.
			logger.Warn("summarization failed", "competitor", content.CompetitorName, "error", err.Error())
			return s.localFallback(content, period)
		}
	}

	return s.localFallback(content, period)
}

func (s *Summarizer) attempt(ctx context.Context, prompt string) (modelResponse, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, ratelimit.ChannelAI); err != nil {
			return modelResponse{}, err
		}
	}
	raw, err := s.client.CompleteJSON(ctx, prompt)
	if err != nil {
		return modelResponse{}, err
	}
	return parseResponse(raw)
}

// fromResponse post-processes a validated model response into the final
// Summary record.
func (s *Summarizer) fromResponse(resp modelResponse, content core.AcquiredContent, period core.AnalysisPeriod) core.Summary {
	bullets := padToThree(resp.SummaryBullets)

	categories := resp.Categories
	if len(categories) == 0 {
		categories = deriveCategories(content.Text, bullets)
	}

	return core.Summary{
		ID:                  uuid.New().String(),
		Competitor:          content.CompetitorName,
		SummaryBullets:      bullets,
		StrategicInsight:    rewriteInsight(content.CompetitorName, resp.StrategicInsight, bullets),
		ConfidenceLevel:     s.confidenceForSuccess(content),
		RelevantDates:       resp.RelevantDates,
		Categories:          categories,
		ImpactScore:         computeImpactScore(content.Text, bullets),
		UsedFallbackContent: content.Provenance == core.ProvenanceSynthesized,
		FallbackSummary:     false,
		ContentLength:       content.Length,
		AnalysisPeriod:      period,
		GeneratedAt:         s.now().UTC(),
	}
}

// confidenceForSuccess caps confidence at medium when the source content
// was synthesized; high is reserved for clean scrapes with a clean API
// response.
func (s *Summarizer) confidenceForSuccess(content core.AcquiredContent) core.ConfidenceLevel {
	if content.Provenance == core.ProvenanceSynthesized {
		return core.ConfidenceMedium
	}
	return core.ConfidenceHigh
}

// localFallback builds a Summary without the model: bullets mined from the
// source text, same deterministic scoring and insight logic as the API path.
func (s *Summarizer) localFallback(content core.AcquiredContent, period core.AnalysisPeriod) core.Summary {
	var bullets []string
	sourceText := content.Text
	if content.Failed() {
		// The text is an error message; mine nothing from it.
		sourceText = ""
	} else {
		bullets = mineBullets(content.Text)
	}
	bullets = padToThree(bullets)

	confidence := core.ConfidenceLow
	if content.Provenance == core.ProvenanceSynthesized {
		confidence = core.ConfidenceMedium
	}

	logger.Info("local fallback summary", "competitor", content.CompetitorName, "confidence", string(confidence))

	return core.Summary{
		ID:                  uuid.New().String(),
		Competitor:          content.CompetitorName,
		SummaryBullets:      bullets,
		StrategicInsight:    rewriteInsight(content.CompetitorName, "", bullets),
		ConfidenceLevel:     confidence,
		Categories:          deriveCategories(sourceText, bullets),
		ImpactScore:         computeImpactScore(sourceText, bullets),
		UsedFallbackContent: content.Provenance == core.ProvenanceSynthesized,
		FallbackSummary:     true,
		ContentLength:       content.Length,
		AnalysisPeriod:      period,
		GeneratedAt:         s.now().UTC(),
	}
}

// mineBullets pulls up to three bullets out of raw changelog text:
// marker-prefixed lines first, substantial plain lines second. Bracketed
// lines are skipped because they are provenance markers, not content.
// Mined bullets are clipped to 100 characters.
func mineBullets(text string) []string {
	var markered, plain []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•"):
			cleaned := strings.TrimSpace(strings.TrimLeft(line, "-*• "))
			if cleaned != "" {
				markered = append(markered, clipBullet(cleaned))
			}
		case len(line) > 20:
			plain = append(plain, clipBullet(line))
		}
		if len(markered) >= 3 {
			break
		}
	}

	if len(markered) > 0 {
		return markered
	}
	if len(plain) > 3 {
		plain = plain[:3]
	}
	return plain
}

func clipBullet(line string) string {
	if len(line) > 100 {
		return line[:100]
	}
	return line
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

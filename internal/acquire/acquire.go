// Package acquire runs the content acquisition stage: scrape first, fall
// back to AI synthesis, and record an explicit failure when both paths are
// exhausted. One competitor's trouble never aborts the batch.
package acquire

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
	"github.com/Akhila-1703/CompetitorTracker/internal/logger"
	"github.com/Akhila-1703/CompetitorTracker/internal/synth"
)

// MinUsableLength is the minimum trimmed length for scraped text to count
// as a successful scrape. Anything shorter is boilerplate or an error page.
const MinUsableLength = 50

// Extractor scrapes and cleans one changelog page.
type Extractor interface {
	Extract(ctx context.Context, rawURL string, platform core.Platform) (string, error)
}

// Synthesizer produces AI stand-in content when scraping fails.
type Synthesizer interface {
	Generate(ctx context.Context, target core.CompetitorTarget) (string, error)
}

// Acquirer coordinates scraping and fallback synthesis for one target at a
// time.
type Acquirer struct {
	extractor   Extractor
	synthesizer Synthesizer
	now         func() time.Time
}

// New returns an Acquirer. The synthesizer may be nil; scraping failures
// then go straight to the failed state.
func New(extractor Extractor, synthesizer Synthesizer) *Acquirer {
	return &Acquirer{extractor: extractor, synthesizer: synthesizer, now: time.Now}
}

// Acquire obtains content for one competitor. It always returns a value:
// provenance records which path produced the text, and the failed state
// carries a human-readable explanation instead of content.
func (a *Acquirer) Acquire(ctx context.Context, target core.CompetitorTarget) core.AcquiredContent {
	name := target.Name
	if name == "" {
		name = CompanyNameFromURL(target.URL)
	}

	text, scrapeErr := a.scrape(ctx, target)
	if scrapeErr == nil {
		logger.Info("scraped changelog", "competitor", name, "chars", len(text))
		return core.AcquiredContent{
			CompetitorName: name,
			Text:           text,
			Provenance:     core.ProvenanceScraped,
			Length:         len(text),
			AcquiredAt:     a.now().UTC(),
		}
	}

	logger.Warn("scrape failed, trying AI fallback", "competitor", name, "error", scrapeErr.Error())

	if a.synthesizer != nil {
		// Synthesis grounds its prompt and marker on the target name, so it
		// must carry the derived label when the roster left the name blank.
		target.Name = name
		synthetic, synthErr := a.synthesizer.Generate(ctx, target)
		if synthErr == nil {
			if !synth.IsSynthesized(synthetic) {
				synthetic += "\n\n" + synth.Marker(name)
			}
			return core.AcquiredContent{
				CompetitorName: name,
				Text:           synthetic,
				Provenance:     core.ProvenanceSynthesized,
				Length:         len(synthetic),
				AcquiredAt:     a.now().UTC(),
			}
		}
		logger.Warn("fallback synthesis failed", "competitor", name, "error", synthErr.Error())
		scrapeErr = fmt.Errorf("%v; fallback: %v", scrapeErr, synthErr)
	}

	return core.AcquiredContent{
		CompetitorName: name,
		Text:           fmt.Sprintf("Unable to acquire changelog content for %s: %v", name, scrapeErr),
		Provenance:     core.ProvenanceFailed,
		AcquiredAt:     a.now().UTC(),
	}
}

func (a *Acquirer) scrape(ctx context.Context, target core.CompetitorTarget) (string, error) {
	text, err := a.extractor.Extract(ctx, target.URL, target.Platform)
	if err != nil {
		return "", err
	}
	if len(strings.TrimSpace(text)) < MinUsableLength {
		return "", fmt.Errorf("extracted only %d usable characters from %s", len(strings.TrimSpace(text)), target.URL)
	}
	return text, nil
}

// CompanyNameFromURL derives a display name from a changelog URL: the first
// domain label after stripping common subdomain prefixes, capitalized.
// "https://changelog.figma.com/..." becomes "Figma".
func CompanyNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "Unknown"
	}

	host := strings.ToLower(u.Hostname())
	for _, prefix := range []string{"www.", "blog.", "changelog.", "releases.", "updates."} {
		host = strings.TrimPrefix(host, prefix)
	}

	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return "Unknown"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// Package synth generates stand-in changelog content when scraping a
// competitor's page fails. The synthesized text is always marked so it can
// never be mistaken for scraped content downstream.
package synth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
	"github.com/Akhila-1703/CompetitorTracker/internal/llm"
	"github.com/Akhila-1703/CompetitorTracker/internal/logger"
	"github.com/Akhila-1703/CompetitorTracker/internal/ratelimit"
)

// FallbackMarkerPrefix begins the provenance marker appended to every
// synthesized document.
const FallbackMarkerPrefix = "[AI-generated fallback for "

// CompletionClient is the AI capability synthesis needs.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator produces plausible recent-changelog text for a competitor when
// the real page could not be read.
type Generator struct {
	client  CompletionClient
	limiter *ratelimit.Limiter
}

// NewGenerator returns a Generator backed by the given AI client. A nil
// client is allowed; Generate then always returns llm.ErrUnavailable.
func NewGenerator(client CompletionClient, limiter *ratelimit.Limiter) *Generator {
	return &Generator{client: client, limiter: limiter}
}

// Generate synthesizes changelog-style content for the target, appending the
// fallback marker. Without an AI client it fails immediately with
// llm.ErrUnavailable so acquisition can record the competitor as failed.
func (g *Generator) Generate(ctx context.Context, target core.CompetitorTarget) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("cannot synthesize content for %s: %w", target.Name, llm.ErrUnavailable)
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx, ratelimit.ChannelAI); err != nil {
			return "", err
		}
	}

	logger.Info("synthesizing fallback content", "competitor", target.Name)

	text, err := g.client.Complete(ctx, buildPrompt(target))
	if err != nil {
		return "", fmt.Errorf("fallback synthesis for %s failed: %w", target.Name, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("fallback synthesis for %s failed: %w", target.Name, llm.ErrEmptyResponse)
	}

	return text + "\n\n" + Marker(target.Name), nil
}

// Marker returns the provenance marker for a competitor's synthesized text.
func Marker(competitorName string) string {
	return FallbackMarkerPrefix + competitorName + "]"
}

// IsSynthesized reports whether text carries a fallback marker.
func IsSynthesized(text string) bool {
	return strings.Contains(text, FallbackMarkerPrefix)
}

func buildPrompt(target core.CompetitorTarget) string {
	category := target.Category
	if category == "" {
		category = "software"
	}

	return fmt.Sprintf(`You are simulating the most recent changelog entry of %s, a %s product. Their changelog page at %s could not be read, so produce a realistic illustrative stand-in dated %s.

Use this exact shape:

[Month Day, Year] - [Title]
- [specific feature or change]
- [specific feature or change]
- [specific feature or change]

Exactly one header line and exactly three bullets. Ground the bullets in what a product like %s plausibly ships: features, integrations, performance work, UI refinements. Make no real factual claims. Do not mention that this is simulated or generated. Output only the entry.`,
		target.Name, category, target.URL, time.Now().Format("January 2, 2006"), target.Name)
}

package core

import "time"

// Platform identifies the changelog hosting flavor of a competitor site.
// It selects the post-extraction cleaning rules in internal/fetch.
type Platform string

const (
	PlatformGeneric  Platform = "generic"
	PlatformNotion   Platform = "notion"
	PlatformLinear   Platform = "linear"
	PlatformGitHub   Platform = "github"
	PlatformAppStore Platform = "appstore"
)

// CompetitorTarget is one configured competitor changelog to monitor.
// Targets come from configuration and are never mutated by the pipeline.
type CompetitorTarget struct {
	Name     string   `json:"name" mapstructure:"name"`
	URL      string   `json:"url" mapstructure:"url"`
	Platform Platform `json:"platform" mapstructure:"platform"`
	Category string   `json:"category" mapstructure:"category"`
}

// Provenance records how a piece of acquired content came to exist.
type Provenance string

const (
	// ProvenanceScraped means the text was extracted from the live page.
	ProvenanceScraped Provenance = "scraped"
	// ProvenanceSynthesized means scraping failed and the text was
	// AI-generated as a stand-in.
	ProvenanceSynthesized Provenance = "synthesized"
	// ProvenanceFailed means both scraping and synthesis failed; Text holds
	// a human-readable error and must not be sent for AI analysis.
	ProvenanceFailed Provenance = "failed"
)

// AcquiredContent is the output of the acquisition stage for one competitor.
// Created once per run per competitor and read-only afterward.
type AcquiredContent struct {
	CompetitorName string     `json:"competitor_name"`
	Text           string     `json:"text"`
	Provenance     Provenance `json:"provenance"`
	Length         int        `json:"length"`
	AcquiredAt     time.Time  `json:"acquired_at"`
}

// Failed reports whether the content must bypass AI analysis entirely.
func (c AcquiredContent) Failed() bool {
	return c.Provenance == ProvenanceFailed
}

// AnalysisPeriod is the date window a summary claims to cover.
type AnalysisPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ConfidenceLevel is the qualitative trust tag on a Summary.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Summary is the central record of the pipeline: one structured competitive
// digest per competitor per run. Every Summary carries exactly three bullets,
// a non-empty strategic insight, and an impact score in [0,100] regardless of
// which path produced it.
type Summary struct {
	ID                  string          `json:"id"`
	Competitor          string          `json:"competitor"`
	SummaryBullets      []string        `json:"summary_bullets"`
	StrategicInsight    string          `json:"strategic_insight"`
	ConfidenceLevel     ConfidenceLevel `json:"confidence_level"`
	RelevantDates       []string        `json:"relevant_dates,omitempty"`
	Categories          []string        `json:"categories"`
	ImpactScore         int             `json:"impact_score"`
	UsedFallbackContent bool            `json:"used_fallback_content"`
	FallbackSummary     bool            `json:"fallback_summary"`
	ContentLength       int             `json:"content_length"`
	AnalysisPeriod      AnalysisPeriod  `json:"analysis_period"`
	GeneratedAt         time.Time       `json:"generated_at"`
}

// MomentumScore is the derived activity metric for one competitor. It is a
// pure function of the current batch and is recomputed every run.
type MomentumScore struct {
	CompetitorName string `json:"competitor_name"`
	Score          int    `json:"score"`
}

// LeaderboardEntry is one ranked row of the momentum leaderboard.
type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	RankLabel      string `json:"rank_label"` // medal for 1-3, "#n" after
	CompetitorName string `json:"competitor_name"`
	Score          int    `json:"score"`
}

// TrendSignal is the dominant cross-competitor theme for one run.
type TrendSignal struct {
	DominantTheme             string `json:"dominant_theme"`
	Description               string `json:"description"`
	SupportingCompetitorCount int    `json:"supporting_competitor_count"`
}

// NoDominantTrend reports whether the signal is the neutral "nothing stood
// out" value.
func (t TrendSignal) NoDominantTrend() bool {
	return t.DominantTheme == ""
}

package summarize

import (
	"fmt"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
)

const summaryPromptTemplate = `You are a competitive intelligence analyst. Analyze the changelog content below for %s, covering %s through %s, and respond with a single JSON object. No markdown, no commentary, only JSON.

Required shape:
{
  "competitor": "%s",
  "summary_bullets": ["three concise bullets describing the most significant updates"],
  "strategic_insight": "one forward-looking sentence on what this signals competitively",
  "confidence_level": "high | medium | low",
  "relevant_dates": ["dates mentioned in the content, if any"],
  "categories": ["coarse buckets such as ai_ml, integration, ui_ux, pricing"],
  "impact_score": 0
}

Rules:
- summary_bullets must have at least 3 entries, each a concrete update, no duplicates.
- strategic_insight must be specific to this competitor, not generic filler.
%s
CHANGELOG CONTENT:
---
%s
---`

const syntheticContentNote = `- The content below was AI-synthesized because the live page could not be read. Weight your confidence_level down accordingly (medium at best).
`

// buildPrompt renders the structured summarization prompt for one
// competitor's acquired content.
func buildPrompt(content core.AcquiredContent, period core.AnalysisPeriod) string {
	note := ""
	if content.Provenance == core.ProvenanceSynthesized {
		note = syntheticContentNote
	}
	return fmt.Sprintf(summaryPromptTemplate,
		content.CompetitorName,
		period.Start.Format("January 2, 2006"),
		period.End.Format("January 2, 2006"),
		content.CompetitorName,
		note,
		content.Text,
	)
}

package summarize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidResponse is returned when the model's JSON response is missing
// required fields or cannot be parsed. Counts as a failed attempt within
// the retry budget.
var ErrInvalidResponse = errors.New("invalid summary response")

// modelResponse is the JSON contract the model is asked to fill. Treated as
// untrusted input: every field is validated before use, and impact_score is
// advisory only (the final score is recomputed locally).
type modelResponse struct {
	Competitor       string   `json:"competitor"`
	SummaryBullets   []string `json:"summary_bullets"`
	StrategicInsight string   `json:"strategic_insight"`
	ConfidenceLevel  string   `json:"confidence_level"`
	RelevantDates    []string `json:"relevant_dates"`
	Categories       []string `json:"categories"`
	ImpactScore      int      `json:"impact_score"`
}

// parseResponse decodes and validates the model's reply. The required
// fields are competitor, summary_bullets (3 or more entries),
// strategic_insight, and confidence_level.
func parseResponse(raw string) (modelResponse, error) {
	var resp modelResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
		return modelResponse{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	var missing []string
	if strings.TrimSpace(resp.Competitor) == "" {
		missing = append(missing, "competitor")
	}
	if len(resp.SummaryBullets) < 3 {
		missing = append(missing, "summary_bullets")
	}
	if strings.TrimSpace(resp.StrategicInsight) == "" {
		missing = append(missing, "strategic_insight")
	}
	if strings.TrimSpace(resp.ConfidenceLevel) == "" {
		missing = append(missing, "confidence_level")
	}
	if len(missing) > 0 {
		return modelResponse{}, fmt.Errorf("%w: missing or short fields: %s", ErrInvalidResponse, strings.Join(missing, ", "))
	}

	return resp, nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON
// in one despite the JSON response MIME type.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

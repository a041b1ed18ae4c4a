package alerts

import (
	"strings"
	"testing"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
)

func TestEvaluate_AIPushWinsFirst(t *testing.T) {
	s := core.Summary{
		Competitor:     "Notion",
		SummaryBullets: []string{"Launched AI meeting notes", "New pricing tier", "More"},
		Categories:     []string{"ai_ml", "pricing", "integration"},
		ImpactScore:    90,
	}

	a := Evaluate(s)
	if a.Kind != KindAIPush {
		t.Errorf("kind = %q, want ai_push to outrank pricing and major update", a.Kind)
	}
	if a.Level != LevelCritical {
		t.Errorf("level = %v, want critical", a.Level)
	}
}

func TestEvaluate_AIBelowThresholdIsNotAIPush(t *testing.T) {
	s := core.Summary{
		Competitor:     "Notion",
		SummaryBullets: []string{"Minor AI tweak"},
		Categories:     []string{"ai_ml"},
		ImpactScore:    60,
	}

	if a := Evaluate(s); a.Kind == KindAIPush {
		t.Error("impact at or below 70 must not trigger the AI push alert")
	}
}

func TestEvaluate_Pricing(t *testing.T) {
	s := core.Summary{
		Competitor:     "Airtable",
		SummaryBullets: []string{"Adjusted plans"},
		Categories:     []string{"pricing"},
		ImpactScore:    50,
	}

	a := Evaluate(s)
	if a.Kind != KindPricing || a.Level != LevelCritical {
		t.Errorf("got kind=%q level=%v, want critical pricing alert", a.Kind, a.Level)
	}
}

func TestEvaluate_MajorUpdate(t *testing.T) {
	s := core.Summary{
		Competitor:     "Figma",
		SummaryBullets: []string{"Huge redesign", "More", "Even more"},
		Categories:     []string{"ui_ux"},
		ImpactScore:    90,
	}

	if a := Evaluate(s); a.Kind != KindMajorUpdate {
		t.Errorf("kind = %q, want major_update", a.Kind)
	}
}

func TestEvaluate_BroadUpdate(t *testing.T) {
	s := core.Summary{
		Competitor:     "Linear",
		SummaryBullets: []string{"a", "b", "c"},
		Categories:     []string{"ui_ux", "performance", "mobile"},
		ImpactScore:    60,
	}

	if a := Evaluate(s); a.Kind != KindBroadUpdate {
		t.Errorf("kind = %q, want broad_update", a.Kind)
	}
}

func TestEvaluate_DefaultIncremental(t *testing.T) {
	s := core.Summary{
		Competitor:     "Slack",
		SummaryBullets: []string{"Bug fixes"},
		Categories:     []string{"general"},
		ImpactScore:    40,
	}

	a := Evaluate(s)
	if a.Kind != KindIncremental || a.Level != LevelInfo {
		t.Errorf("got kind=%q level=%v, want info incremental", a.Kind, a.Level)
	}
}

func TestEvaluate_FallbackNote(t *testing.T) {
	s := core.Summary{
		Competitor:      "Slack",
		SummaryBullets:  []string{"Bug fixes"},
		ImpactScore:     40,
		FallbackSummary: true,
	}

	a := Evaluate(s)
	if !strings.Contains(a.Message, "AI-generated analysis") {
		t.Errorf("fallback-derived alerts must carry the provenance note, got %q", a.Message)
	}
}

func TestActionable(t *testing.T) {
	batch := []core.Summary{
		{Competitor: "A", SummaryBullets: []string{"AI everything"}, ImpactScore: 95},
		{Competitor: "B", SummaryBullets: []string{"fix"}, ImpactScore: 40},
	}

	actionable := Actionable(EvaluateBatch(batch))
	if len(actionable) != 1 || actionable[0].Competitor != "A" {
		t.Errorf("expected only A's alert to be actionable, got %+v", actionable)
	}
}

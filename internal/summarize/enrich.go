package summarize

import (
	"fmt"
	"strings"
	"unicode"
)

// Keyword groups for the deterministic impact score. Matches are
// case-insensitive substring checks against content plus bullets.
var (
	aiKeywords          = []string{"ai", "artificial intelligence", "machine learning", "automation", "copilot"}
	launchKeywords      = []string{"launch", "new feature", "released", "introducing", "announcing"}
	uiKeywords          = []string{"ui", "ux", "design", "interface", "redesign"}
	integrationKeywords = []string{"integration", "api", "webhook", "connector"}
	updateKeywords      = []string{"new", "added", "launched", "released"}
)

// fillerBullets pad a summary up to three bullets when the model or the
// source text yields fewer. Distinct entries so padding never collides with
// the dedup pass.
var fillerBullets = []string{
	"Continued product development and maintenance updates",
	"Ongoing improvements to platform stability and performance",
	"Additional minor enhancements across the product",
}

// dedupeBullets removes duplicate bullets under a normalized comparison
// (lowercased, punctuation stripped), preserving first-seen order.
func dedupeBullets(bullets []string) []string {
	seen := make(map[string]bool, len(bullets))
	var out []string
	for _, b := range bullets {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		key := normalizeBullet(b)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, b)
	}
	return out
}

// padToThree returns exactly three bullets: deduped input first, filler
// after, truncated at three.
func padToThree(bullets []string) []string {
	out := dedupeBullets(bullets)
	for _, filler := range fillerBullets {
		if len(out) >= 3 {
			break
		}
		key := normalizeBullet(filler)
		duplicate := false
		for _, b := range out {
			if normalizeBullet(b) == key {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, filler)
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func normalizeBullet(b string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(b) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// computeImpactScore derives the impact score from content and bullets.
// The model's self-reported score is ignored; this keeps scores comparable
// across runs and across the API and fallback paths.
func computeImpactScore(content string, bullets []string) int {
	text := strings.ToLower(content + " " + strings.Join(bullets, " "))

	score := 40
	if containsAny(text, aiKeywords) {
		score += 30
	}
	if containsAny(text, launchKeywords) {
		score += 20
	}
	if containsAny(text, uiKeywords) {
		score += 10
	}
	if containsAny(text, integrationKeywords) {
		score += 15
	}

	updateBonus := 0
	for _, b := range bullets {
		if containsAny(strings.ToLower(b), updateKeywords) {
			updateBonus += 5
		}
	}
	if updateBonus > 20 {
		updateBonus = 20
	}
	score += updateBonus

	if score > 100 {
		score = 100
	}
	return score
}

// insightThemes are checked in priority order when an insight has to be
// rewritten; the first theme with a bullet match wins.
var insightThemes = []struct {
	name     string
	keywords []string
	template string
}{
	{"AI capabilities", aiKeywords, "%s is investing heavily in AI capabilities, signaling a push toward intelligent automation that competitors will need to answer."},
	{"user experience", uiKeywords, "%s is prioritizing user experience refinements, suggesting a retention-focused strategy over pure feature expansion."},
	{"integrations", integrationKeywords, "%s is expanding its integration surface, positioning itself as a hub within customer workflows."},
	{"pricing", []string{"pricing", "plan", "tier", "billing"}, "%s is adjusting its pricing and packaging, which may indicate a shift in target market or monetization strategy."},
}

// rewriteInsight replaces an empty or filler insight with a templated
// forward-looking sentence derived from the dominant bullet theme.
func rewriteInsight(competitor, insight string, bullets []string) string {
	trimmed := strings.TrimSpace(insight)
	if trimmed != "" && !strings.Contains(strings.ToLower(trimmed), "regular updates") {
		return trimmed
	}

	text := strings.ToLower(strings.Join(bullets, " "))
	for _, theme := range insightThemes {
		if containsAny(text, theme.keywords) {
			return fmt.Sprintf(theme.template, competitor)
		}
	}
	return fmt.Sprintf("%s maintains steady development velocity; monitor upcoming releases for strategic shifts.", competitor)
}

// categoryThemes classify content into coarse buckets when the model did
// not supply categories.
var categoryThemes = []struct {
	name     string
	keywords []string
}{
	{"ai_ml", aiKeywords},
	{"integration", integrationKeywords},
	{"ui_ux", uiKeywords},
	{"pricing", []string{"pricing", "plan", "tier", "billing"}},
	{"security", []string{"security", "sso", "compliance", "permission"}},
	{"performance", []string{"performance", "faster", "speed", "latency"}},
	{"mobile", []string{"mobile", "ios", "android"}},
}

func deriveCategories(content string, bullets []string) []string {
	text := strings.ToLower(content + " " + strings.Join(bullets, " "))
	var out []string
	for _, theme := range categoryThemes {
		if containsAny(text, theme.keywords) {
			out = append(out, theme.name)
		}
	}
	if len(out) == 0 {
		out = []string{"general"}
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

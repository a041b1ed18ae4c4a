// Package messaging delivers run results to Slack via an incoming webhook:
// a per-run digest, the momentum leaderboard, and actionable strategic
// alerts. Delivery failures are reported to the caller, which treats them
// as non-fatal.
package messaging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Akhila-1703/CompetitorTracker/internal/alerts"
	"github.com/Akhila-1703/CompetitorTracker/internal/core"
)

// SlackMessage is the webhook payload.
type SlackMessage struct {
	Text        string            `json:"text,omitempty"`
	Blocks      []SlackBlock      `json:"blocks,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
	Username    string            `json:"username,omitempty"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
}

// SlackBlock is a Block Kit element.
type SlackBlock struct {
	Type string     `json:"type"`
	Text *SlackText `json:"text,omitempty"`
}

// SlackText is the text payload inside a block.
type SlackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SlackAttachment is a legacy colored attachment, used for alerts.
type SlackAttachment struct {
	Color  string       `json:"color,omitempty"`
	Title  string       `json:"title,omitempty"`
	Text   string       `json:"text,omitempty"`
	Fields []SlackField `json:"fields,omitempty"`
	Footer string       `json:"footer,omitempty"`
	Ts     int64        `json:"ts,omitempty"`
}

// SlackField is a short field inside an attachment.
type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// Notifier posts run results to a Slack webhook.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewNotifier creates a Notifier. An empty webhook URL is allowed; sends
// then fail with a configuration error the caller can log and ignore.
func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewNotifierWithClient lets tests supply the HTTP client.
func NewNotifierWithClient(webhookURL string, client *http.Client) *Notifier {
	return &Notifier{webhookURL: webhookURL, httpClient: client}
}

// SendDigest posts the full run digest: per-competitor summaries, the
// leaderboard, and the dominant trend.
func (n *Notifier) SendDigest(summaries []core.Summary, board []core.LeaderboardEntry, trend core.TrendSignal) error {
	msg := BuildDigestMessage(summaries, board, trend)
	return n.send(msg)
}

// SendAlerts posts the actionable strategic alerts from a run. A batch
// with no actionable alerts sends nothing and returns nil.
func (n *Notifier) SendAlerts(batch []alerts.Alert) error {
	actionable := alerts.Actionable(batch)
	if len(actionable) == 0 {
		return nil
	}
	return n.send(BuildAlertMessage(actionable))
}

func (n *Notifier) send(msg *SlackMessage) error {
	if n.webhookURL == "" {
		return fmt.Errorf("slack webhook URL not configured")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack message: %w", err)
	}

	resp, err := n.httpClient.Post(n.webhookURL, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to send Slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack webhook returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// BuildDigestMessage shapes the run digest as Block Kit sections.
func BuildDigestMessage(summaries []core.Summary, board []core.LeaderboardEntry, trend core.TrendSignal) *SlackMessage {
	blocks := []SlackBlock{
		header("Competitor Intelligence Digest"),
	}

	if !trend.NoDominantTrend() {
		blocks = append(blocks, section(fmt.Sprintf("*Dominant trend:* %s — %s", trend.DominantTheme, trend.Description)))
	}

	if len(board) > 0 {
		var b strings.Builder
		b.WriteString("*Momentum leaderboard*\n")
		for _, entry := range board {
			fmt.Fprintf(&b, "%s %s — %d\n", entry.RankLabel, entry.CompetitorName, entry.Score)
		}
		blocks = append(blocks, section(b.String()))
	}

	for _, s := range summaries {
		var b strings.Builder
		fmt.Fprintf(&b, "*%s* (impact %d, confidence %s)\n", s.Competitor, s.ImpactScore, s.ConfidenceLevel)
		for _, bullet := range s.SummaryBullets {
			fmt.Fprintf(&b, "• %s\n", bullet)
		}
		fmt.Fprintf(&b, "_%s_", s.StrategicInsight)
		blocks = append(blocks, section(b.String()))
	}

	return &SlackMessage{
		Text:      "Competitor Intelligence Digest",
		Blocks:    blocks,
		Username:  "CompetitorTracker",
		IconEmoji: ":chart_with_upwards_trend:",
	}
}

// BuildAlertMessage shapes actionable alerts as colored attachments.
func BuildAlertMessage(actionable []alerts.Alert) *SlackMessage {
	attachments := make([]SlackAttachment, len(actionable))
	for i, a := range actionable {
		color := "#f2c744"
		if a.Level == alerts.LevelCritical {
			color = "#d83a3a"
		}
		attachments[i] = SlackAttachment{
			Color:  color,
			Title:  fmt.Sprintf("[%s] %s", a.Level, a.Competitor),
			Text:   a.Message,
			Footer: string(a.Kind),
			Ts:     time.Now().Unix(),
		}
	}

	return &SlackMessage{
		Text:        "Strategic alerts",
		Attachments: attachments,
		Username:    "CompetitorTracker",
		IconEmoji:   ":rotating_light:",
	}
}

func header(text string) SlackBlock {
	return SlackBlock{Type: "header", Text: &SlackText{Type: "plain_text", Text: text}}
}

func section(text string) SlackBlock {
	return SlackBlock{Type: "section", Text: &SlackText{Type: "mrkdwn", Text: text}}
}

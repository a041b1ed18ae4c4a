// Package cmd defines the CLI: analyze runs a full batch, history and
// competitors inspect the stored archive.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Akhila-1703/CompetitorTracker/internal/acquire"
	"github.com/Akhila-1703/CompetitorTracker/internal/config"
	"github.com/Akhila-1703/CompetitorTracker/internal/core"
	"github.com/Akhila-1703/CompetitorTracker/internal/fetch"
	"github.com/Akhila-1703/CompetitorTracker/internal/llm"
	"github.com/Akhila-1703/CompetitorTracker/internal/logger"
	"github.com/Akhila-1703/CompetitorTracker/internal/messaging"
	"github.com/Akhila-1703/CompetitorTracker/internal/pipeline"
	"github.com/Akhila-1703/CompetitorTracker/internal/ratelimit"
	"github.com/Akhila-1703/CompetitorTracker/internal/store"
	"github.com/Akhila-1703/CompetitorTracker/internal/summarize"
	"github.com/Akhila-1703/CompetitorTracker/internal/synth"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "competitortracker",
	Short: "CompetitorTracker monitors competitor changelogs and distills them into strategic intelligence.",
	Long: `CompetitorTracker scrapes competitor changelog pages, falls back to
AI-synthesized content when a page cannot be read, produces structured
AI summaries with deterministic impact scoring, and derives momentum
and trend signals across the whole competitor set.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.competitortracker.yaml)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(competitorsCmd)

	analyzeCmd.Flags().Int("days-back", 0, "analysis window in days (default from config)")
	analyzeCmd.Flags().Bool("no-notify", false, "skip Slack notification")
	historyCmd.Flags().Int("limit", 10, "number of analyses to show")
	historyCmd.Flags().String("competitor", "", "restrict to one competitor")
}

func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full analysis batch over the configured competitors",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		daysBack, _ := cmd.Flags().GetInt("days-back")
		if daysBack <= 0 {
			daysBack = cfg.App.DaysBack
		}
		noNotify, _ := cmd.Flags().GetBool("no-notify")

		limiter := ratelimit.New(cfg.Scraping.RateLimitInterval)

		timeout := cfg.Scraping.Timeout
		if timeout <= 0 {
			timeout = fetch.DefaultTimeout
		}
		extractor := fetch.NewExtractorWithClient(limiter, &http.Client{Timeout: timeout})

		var aiClient *llm.Client
		client, err := llm.NewClient(ctx, cfg.Gemini.Model)
		switch {
		case err == nil:
			aiClient = client
			defer aiClient.Close()
		case errors.Is(err, llm.ErrUnavailable):
			logger.Warn("no AI credential configured; running in degraded mode")
		default:
			return fmt.Errorf("failed to initialize AI client: %w", err)
		}

		var synthesizer acquire.Synthesizer
		var completions summarize.CompletionClient
		if aiClient != nil {
			synthesizer = synth.NewGenerator(aiClient, limiter)
			completions = aiClient
		}

		acquirer := acquire.New(extractor, synthesizer)
		summarizer := summarize.New(completions, limiter, summarize.DefaultOptions())

		var saver pipeline.Saver
		db, err := store.New(cfg.App.DataDir)
		if err != nil {
			logger.Warn("store unavailable; results will not be persisted", "error", err.Error())
		} else {
			saver = db
			defer db.Close()
		}

		var notifier pipeline.Notifier
		if !noNotify && cfg.Messaging.SlackWebhookURL != "" {
			notifier = messaging.NewNotifier(cfg.Messaging.SlackWebhookURL)
		}

		p := pipeline.New(acquirer, summarizer, saver, notifier)
		result := p.RunBatch(ctx, cfg.Competitors, daysBack)

		printResult(cmd, result)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent stored analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		db, err := store.New(cfg.App.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer db.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		competitor, _ := cmd.Flags().GetString("competitor")

		var summaries []core.Summary
		if competitor != "" {
			summaries, err = db.CompetitorHistory(competitor, limit)
		} else {
			summaries, err = db.RecentAnalyses(limit)
		}
		if err != nil {
			return err
		}

		if len(summaries) == 0 {
			cmd.Println("No stored analyses yet. Run `competitortracker analyze` first.")
			return nil
		}
		for _, s := range summaries {
			printSummary(cmd, s)
		}
		return nil
	},
}

var competitorsCmd = &cobra.Command{
	Use:   "competitors",
	Short: "List the configured competitor targets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range config.Get().Competitors {
			cmd.Printf("%-12s %-10s %s\n", t.Name, t.Platform, t.URL)
		}
	},
}

func printResult(cmd *cobra.Command, result pipeline.Result) {
	cmd.Println("Momentum leaderboard:")
	for _, entry := range result.Leaderboard {
		cmd.Printf("  %s %s — %d\n", entry.RankLabel, entry.CompetitorName, entry.Score)
	}

	if !result.Trend.NoDominantTrend() {
		cmd.Printf("\nDominant trend: %s (%s)\n", result.Trend.DominantTheme, result.Trend.Description)
	} else {
		cmd.Println("\nNo dominant trend this period.")
	}

	cmd.Println()
	for _, s := range result.Summaries {
		printSummary(cmd, s)
	}
}

func printSummary(cmd *cobra.Command, s core.Summary) {
	flags := []string{string(s.ConfidenceLevel)}
	if s.UsedFallbackContent {
		flags = append(flags, "synthesized content")
	}
	if s.FallbackSummary {
		flags = append(flags, "local summary")
	}

	cmd.Printf("%s (impact %d, %s)\n", s.Competitor, s.ImpactScore, strings.Join(flags, ", "))
	for _, b := range s.SummaryBullets {
		cmd.Printf("  - %s\n", b)
	}
	cmd.Printf("  > %s\n\n", s.StrategicInsight)
}

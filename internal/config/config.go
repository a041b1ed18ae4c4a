// Package config loads application configuration from a YAML file,
// environment variables, and an optional .env file, in that order of
// increasing precedence for env vars.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
)

// Config holds all application configuration.
type Config struct {
	App         App                     `mapstructure:"app"`
	Gemini      Gemini                  `mapstructure:"gemini"`
	Scraping    Scraping                `mapstructure:"scraping"`
	Messaging   Messaging               `mapstructure:"messaging"`
	Competitors []core.CompetitorTarget `mapstructure:"competitors"`
}

// App holds general application settings.
type App struct {
	DataDir  string `mapstructure:"data_dir"`
	DaysBack int    `mapstructure:"days_back"`
}

// Gemini holds the AI provider settings.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Scraping holds fetch and pacing settings.
type Scraping struct {
	RateLimitInterval time.Duration `mapstructure:"rate_limit_interval"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// Messaging holds notification settings.
type Messaging struct {
	SlackWebhookURL string `mapstructure:"slack_webhook_url"`
}

var globalConfig *Config

// Load reads configuration. With an empty configFile it searches for
// .competitortracker.yaml in the working directory and $HOME.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".competitortracker")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if len(config.Competitors) == 0 {
		config.Competitors = DefaultCompetitors()
	}
	normalizeTargets(config.Competitors)

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. For tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

func setDefaults() {
	viper.SetDefault("app.data_dir", ".competitortracker")
	viper.SetDefault("app.days_back", 7)
	viper.SetDefault("gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("scraping.rate_limit_interval", "1s")
	viper.SetDefault("scraping.timeout", "30s")
}

// DefaultCompetitors is the built-in roster used when no competitors are
// configured.
func DefaultCompetitors() []core.CompetitorTarget {
	return []core.CompetitorTarget{
		{Name: "Notion", URL: "https://www.notion.so/releases", Platform: core.PlatformNotion, Category: "productivity"},
		{Name: "Linear", URL: "https://linear.app/changelog", Platform: core.PlatformLinear, Category: "project management"},
		{Name: "Figma", URL: "https://www.figma.com/release-notes/", Platform: core.PlatformGeneric, Category: "design"},
		{Name: "Airtable", URL: "https://www.airtable.com/whatsnew", Platform: core.PlatformGeneric, Category: "database"},
		{Name: "Slack", URL: "https://slack.com/release-notes", Platform: core.PlatformGeneric, Category: "communication"},
	}
}

// normalizeTargets fills gaps in configured targets so the pipeline never
// sees an invalid platform.
func normalizeTargets(targets []core.CompetitorTarget) {
	valid := map[core.Platform]bool{
		core.PlatformGeneric:  true,
		core.PlatformNotion:   true,
		core.PlatformLinear:   true,
		core.PlatformGitHub:   true,
		core.PlatformAppStore: true,
	}
	for i := range targets {
		if !valid[targets[i].Platform] {
			targets[i].Platform = core.PlatformGeneric
		}
	}
}

// Package llm wraps the Gemini SDK behind a small completion interface so
// the rest of the pipeline can be tested against fakes.
package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"google.golang.org/genai"

	"github.com/Akhila-1703/CompetitorTracker/internal/logger"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-flash-lite-latest"

// Client is a thin wrapper over the Gemini SDK.
type Client struct {
	modelName string
	gClient   *genai.Client
}

// NewClient creates a Gemini-backed client. The API key is resolved in
// order of preference:
//  1. Environment variables: GEMINI_API_KEY, GOOGLE_GEMINI_API_KEY, GOOGLE_AI_API_KEY
//  2. Viper configuration: gemini.api_key
//
// Returns ErrUnavailable when no key is configured, so callers can fall back
// to offline behavior instead of treating it as a hard failure.
func NewClient(ctx context.Context, modelName string) (*Client, error) {
	apiKey := resolveAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY or gemini.api_key in config", ErrUnavailable)
	}

	if modelName == "" {
		modelName = viper.GetString("gemini.model")
		if modelName == "" {
			modelName = DefaultModel
		}
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Debug("Gemini client ready", "model", modelName)
	return &Client{modelName: modelName, gClient: gClient}, nil
}

func resolveAPIKey() string {
	for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_GEMINI_API_KEY", "GOOGLE_AI_API_KEY"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return viper.GetString("gemini.api_key")
}

// ModelName returns the model this client calls.
func (c *Client) ModelName() string {
	return c.modelName
}

// Complete sends a prompt and returns the model's text response.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, nil)
}

// CompleteJSON sends a prompt with the JSON response MIME type set, asking
// the model to emit a bare JSON document without markdown fences.
func (c *Client) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	return c.generate(ctx, prompt, config)
}

func (c *Client) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, config)
	if err != nil {
		if IsThrottled(err) {
			return "", fmt.Errorf("%w: %v", ErrThrottled, err)
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Close releases client resources. The current SDK needs no explicit close;
// kept so callers can defer it uniformly.
func (c *Client) Close() {}

package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestNewClient_NoAPIKey(t *testing.T) {
	if os.Getenv("GEMINI_API_KEY") != "" {
		t.Skip("GEMINI_API_KEY is set; cannot test the missing-key path")
	}

	_, err := NewClient(context.Background(), "")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable without an API key, got %v", err)
	}
}

func TestNewClient_LiveCompletion(t *testing.T) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		t.Skip("GEMINI_API_KEY not set; skipping live API test")
	}

	client, err := NewClient(context.Background(), "")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Close()

	text, err := client.Complete(context.Background(), "Reply with the single word: ok")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text == "" {
		t.Error("expected non-empty completion")
	}
}

func TestIsThrottled(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrThrottled, true},
		{"wrapped sentinel", fmt.Errorf("call failed: %w", ErrThrottled), true},
		{"status code", errors.New("googleapi: Error 429: Too Many Requests"), true},
		{"quota message", errors.New("Quota exceeded for quota metric"), true},
		{"rate limit message", errors.New("rate limit reached, slow down"), true},
		{"resource exhausted", errors.New("rpc error: code = ResourceExhausted desc = ..."), true},
		{"unrelated", errors.New("connection refused"), false},
		{"server error", errors.New("googleapi: Error 500: Internal error"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsThrottled(tc.err); got != tc.want {
				t.Errorf("IsThrottled(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

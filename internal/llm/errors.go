package llm

import (
	"errors"
	"strings"
)

var (
	// ErrUnavailable is returned when no AI client can be constructed,
	// usually because no API key is configured.
	ErrUnavailable = errors.New("AI client unavailable")

	// ErrThrottled is returned when the provider rejects a call for quota
	// or rate-limit reasons. Callers may back off and retry.
	ErrThrottled = errors.New("AI provider throttled the request")

	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("empty response from model")
)

// throttleMarkers are the substrings Gemini error messages carry on quota
// and rate-limit rejections. The SDK does not expose a stable typed error
// for these, so we classify by message.
var throttleMarkers = []string{"429", "quota", "rate limit", "resource exhausted", "resource_exhausted", "resourceexhausted"}

// IsThrottled reports whether err looks like a provider quota or rate-limit
// rejection.
func IsThrottled(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrThrottled) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range throttleMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Package fetch downloads competitor changelog pages and converts their
// markup into cleaned plain text. Extraction is readability-first with a
// DOM-walk fallback, followed by platform-specific cleanup rules.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Akhila-1703/CompetitorTracker/internal/core"
	"github.com/Akhila-1703/CompetitorTracker/internal/logger"
	"github.com/Akhila-1703/CompetitorTracker/internal/ratelimit"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	// DefaultTimeout bounds a single page download.
	DefaultTimeout = 30 * time.Second

	// MaxContentLength caps cleaned text to keep prompts within token
	// budgets. Applied as the last cleaning step for every platform.
	MaxContentLength = 10000

	// TruncationMarker is appended when content is cut at MaxContentLength.
	TruncationMarker = "... [content truncated]"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Extractor fetches changelog pages and extracts readable text from them.
type Extractor struct {
	client  *http.Client
	limiter *ratelimit.Limiter
}

// NewExtractor creates an Extractor throttled by the given limiter on the
// web channel.
func NewExtractor(limiter *ratelimit.Limiter) *Extractor {
	return NewExtractorWithClient(limiter, &http.Client{Timeout: DefaultTimeout})
}

// NewExtractorWithClient allows callers (and tests) to supply the HTTP
// client used for downloads.
func NewExtractorWithClient(limiter *ratelimit.Limiter, client *http.Client) *Extractor {
	return &Extractor{client: client, limiter: limiter}
}

// Extract downloads the page at rawURL and returns its cleaned plain text.
// Failures are reported as errors wrapping ErrFetch or ErrExtract so the
// caller can decide on fallback; no error escapes untagged.
func (e *Extractor) Extract(ctx context.Context, rawURL string, platform core.Platform) (string, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx, ratelimit.ChannelWeb); err != nil {
			return "", fmt.Errorf("%w: %v", ErrFetch, err)
		}
	}

	logger.Debug("fetching changelog page", "url", rawURL, "platform", string(platform))

	body, pageURL, err := e.download(ctx, rawURL)
	if err != nil {
		return "", err
	}

	text := extractText(body, pageURL)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w from %s", ErrExtract, rawURL)
	}

	cleaned := CleanForPlatform(text, platform)
	if strings.TrimSpace(cleaned) == "" {
		return "", fmt.Errorf("%w from %s after cleaning", ErrExtract, rawURL)
	}

	logger.Debug("extracted changelog text", "url", rawURL, "chars", len(cleaned))
	return cleaned, nil
}

func (e *Extractor) download(ctx context.Context, rawURL string) ([]byte, *url.URL, error) {
	pageURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid URL %s: %v", ErrFetch, rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("%w: status code %d from %s", ErrFetch, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading body: %v", ErrFetch, err)
	}

	return body, pageURL, nil
}

// extractText recovers the main prose of a page. Readability handles most
// changelog layouts; pages it rejects (heavily scripted Notion exports, bare
// list pages) fall back to a goquery walk over block elements.
func extractText(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent
	}

	return extractTextFromDOM(body)
}

func extractTextFromDOM(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	// Remove common non-content elements before walking the body.
	doc.Find("script, style, nav, footer, header, aside, form, iframe, noscript, .sidebar, #sidebar, .ad, .advertisement, .popup, .modal, .cookie-banner").Remove()

	var b strings.Builder
	doc.Find("body").Find("p, h1, h2, h3, h4, h5, h6, li, blockquote, pre").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	})

	return b.String()
}

// CleanForPlatform applies platform-specific cleanup rules, then the generic
// normalization and length cap that every platform shares.
func CleanForPlatform(text string, platform core.Platform) string {
	switch platform {
	case core.PlatformNotion:
		return cleanGeneric(cleanNotion(text))
	case core.PlatformLinear:
		return cleanGeneric(cleanLinear(text))
	default:
		return cleanGeneric(text)
	}
}

// cleanGeneric trims blank lines, collapses whitespace, and enforces the
// length cap. It is always the final cleaning step.
func cleanGeneric(text string) string {
	if text == "" {
		return ""
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	cleaned := strings.Join(lines, "\n")

	if len(cleaned) > MaxContentLength {
		cleaned = cleaned[:MaxContentLength] + TruncationMarker
	}
	return cleaned
}

// cleanNotion drops Notion UI chrome: the "What's New" banner line and very
// short fragments left over from toggles and date pills.
func cleanNotion(text string) string {
	if text == "" {
		return ""
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "What's New") {
			continue
		}
		if len(line) > 10 {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// cleanLinear drops repeated "Changelog" section headers and the short
// navigation fragments Linear's changelog interleaves between entries.
func cleanLinear(text string) string {
	if text == "" {
		return ""
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(strings.ToLower(line), "changelog") {
			continue
		}
		if len(line) > 15 {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// Package ratelimit paces outbound calls to externally rate-limited services.
// Each named channel (web fetches, AI calls) keeps its own clock, so slow web
// scraping never starves AI calls and vice versa.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Channel names used by the pipeline. Callers may define their own; any
// string is a valid channel.
const (
	ChannelWeb = "web"
	ChannelAI  = "ai"
)

// DefaultInterval is the minimum spacing between calls on one channel.
const DefaultInterval = time.Second

// Limiter enforces a minimum interval between consecutive calls on each
// channel. It is a throttle, not a scheduler: Wait blocks the caller until
// the channel's interval has elapsed since its previous call.
type Limiter struct {
	interval time.Duration

	mu       sync.Mutex
	channels map[string]*rate.Limiter
}

// New returns a Limiter with the given minimum interval between calls.
// A non-positive interval falls back to DefaultInterval.
func New(interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Limiter{
		interval: interval,
		channels: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a call on the channel is permitted. The first call on a
// channel never waits. Wait returns early with the context's error if ctx is
// cancelled while waiting; otherwise it always succeeds.
func (l *Limiter) Wait(ctx context.Context, channel string) error {
	return l.limiterFor(channel).Wait(ctx)
}

// Interval returns the configured minimum spacing.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

func (l *Limiter) limiterFor(channel string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.channels[channel]
	if !ok {
		// Burst 1 makes rate.Limiter behave as a strict min-interval
		// throttle: one token, refilled every interval.
		lim = rate.NewLimiter(rate.Every(l.interval), 1)
		l.channels[channel] = lim
	}
	return lim
}

package script

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer throttles per-character typing to the interval a "rate N" token
// sets (N milliseconds per character), the same token-bucket approach
// plugin.RateLimiter uses for per-plugin request throttling.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a Pacer with no initial pacing; a "rate N" token in the
// script sets it before the next character is typed.
func NewPacer() *Pacer { return &Pacer{} }

// Active reports whether a pacing interval has been set.
func (p *Pacer) Active() bool { return p.limiter != nil }

// SetMillisecondsPerChar reconfigures the pacer to allow one character
// every ms milliseconds. ms <= 0 disables pacing.
func (p *Pacer) SetMillisecondsPerChar(ms int) {
	if ms <= 0 {
		p.limiter = nil
		return
	}
	interval := time.Duration(ms) * time.Millisecond
	p.limiter = rate.NewLimiter(rate.Every(interval), 1)
}

// Wait blocks until the next character may be typed, or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

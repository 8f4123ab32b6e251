package api

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MinRequestInterval is the minimum spacing between outbound requests
// (a ceiling of 10 requests per second).
const MinRequestInterval = 100 * time.Millisecond

// Pacer spaces outbound requests at least interval apart. Concurrent callers
// are dispatched in the order they reach Wait.
type Pacer struct {
	limiter  *rate.Limiter
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewPacer creates a pacer. An interval <= 0 disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Pacer{
		limiter:  rate.NewLimiter(limit, 1),
		interval: interval,
	}
}

var defaultPacer = NewPacer(MinRequestInterval)

// DefaultPacer returns the process-wide pacer shared by every client that
// does not configure its own.
func DefaultPacer() *Pacer {
	return defaultPacer
}

// Wait blocks until the caller may dispatch, records the dispatch time and
// returns how long it waited.
func (p *Pacer) Wait(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := p.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	now := time.Now()

	p.mu.Lock()
	p.last = now
	p.mu.Unlock()

	return now.Sub(start), nil
}

// Interval returns the configured minimum spacing.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// LastDispatch returns the time of the most recent dispatch, zero if none.
func (p *Pacer) LastDispatch() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

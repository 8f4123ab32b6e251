package mashub

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	defaultWaitTimeout    = 5 * time.Minute
	defaultPollInterval   = 2 * time.Second
	maxPollInterval       = 30 * time.Second
	pollBackoffMultiplier = 1.5
	pollJitterFactor      = 0.3
)

// WaitOption configures WaitForConfirmation.
type WaitOption func(*waitConfig)

type waitConfig struct {
	timeout      time.Duration
	pollInterval time.Duration
}

// WithWaitTimeout bounds the whole wait.
// Default: 5 minutes
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// WithPollInterval sets the first delay between polls. Later delays grow by
// half each time, up to 30 seconds.
// Default: 2 seconds
func WithPollInterval(interval time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.pollInterval = interval
	}
}

// WaitForConfirmation polls a token until it leaves the pending state and
// returns it. The caller inspects Status to tell confirmed from failed.
//
// Network failures, HTTP 429 and 5xx keep the wait going. Any other error
// ends it. When the wait times out or ctx is cancelled the context error is
// returned.
//
// Example:
//
//	token, err := client.Tokens.WaitForConfirmation(ctx, id, mashub.WithWaitTimeout(time.Minute))
//	if err != nil {
//	    return err
//	}
//	if token.Status == mashub.TokenFailed {
//	    return fmt.Errorf("tokenization failed: %s", token.TxHash)
//	}
func (s *TokensService) WaitForConfirmation(ctx context.Context, id string, opts ...WaitOption) (*Token, error) {
	cfg := &waitConfig{
		timeout:      defaultWaitTimeout,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	interval := cfg.pollInterval
	for {
		token, err := s.Get(ctx, id)
		switch {
		case err == nil && token != nil && token.Status != TokenPending:
			return token, nil
		case err != nil && !IsRetryable(err):
			return nil, err
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		s.client.apiClient.Logger().DebugContext(ctx, "token pending",
			"token_id", id,
			"next_poll", interval,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(withJitter(interval)):
		}
		interval = nextPollInterval(interval)
	}
}

func nextPollInterval(d time.Duration) time.Duration {
	next := time.Duration(float64(d) * pollBackoffMultiplier)
	if next > maxPollInterval {
		next = maxPollInterval
	}
	return next
}

// withJitter spreads concurrent waiters apart.
func withJitter(d time.Duration) time.Duration {
	return d + time.Duration(rand.Float64()*pollJitterFactor*float64(d))
}

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/mashub/sdk-go/internal/apierrors"
)

// BaseBackoff is the delay before the first retry. Each further retry doubles it.
const BaseBackoff = 100 * time.Millisecond

// maxBackoffShift caps the exponent so large retry budgets cannot overflow.
const maxBackoffShift = 16

// RetryPolicy decides which failed attempts are retried.
type RetryPolicy int

const (
	// RetryAll retries every failure, including authentication and
	// validation errors, until the retry budget is spent.
	RetryAll RetryPolicy = iota
	// RetryTransient retries only network failures, HTTP 429 and 5xx.
	RetryTransient
)

func (p RetryPolicy) String() string {
	switch p {
	case RetryTransient:
		return "transient"
	default:
		return "all"
	}
}

// ParseRetryPolicy parses "all" or "transient". An empty string is RetryAll.
func ParseRetryPolicy(s string) (RetryPolicy, error) {
	switch s {
	case "", "all":
		return RetryAll, nil
	case "transient":
		return RetryTransient, nil
	}
	return RetryAll, apierrors.Validation(fmt.Sprintf("unknown retry policy: %q", s))
}

// MarshalText implements encoding.TextMarshaler.
func (p RetryPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *RetryPolicy) UnmarshalText(text []byte) error {
	v, err := ParseRetryPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p RetryPolicy) retries(err error) bool {
	if p == RetryTransient {
		return apierrors.IsTransient(err)
	}
	return true
}

// Backoff returns the delay before retry k (k >= 1): 100ms * 2^(k-1).
func Backoff(retry int) time.Duration {
	if retry < 1 {
		return 0
	}
	shift := min(retry-1, maxBackoffShift)
	return BaseBackoff << shift
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeRetryable
	outcomeFatal
)

// attemptResult is the result of one attempt.
type attemptResult struct {
	outcome  outcome
	envelope *Envelope
	err      error
}

func success(env *Envelope) attemptResult {
	return attemptResult{outcome: outcomeSuccess, envelope: env}
}

func retryable(err error) attemptResult {
	return attemptResult{outcome: outcomeRetryable, err: err}
}

func fatal(err error) attemptResult {
	return attemptResult{outcome: outcomeFatal, err: err}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

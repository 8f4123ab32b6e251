package api

import (
	"net/http"
	"strings"
	"time"
)

// Observer receives engine events. Implementations must be safe for
// concurrent use.
type Observer interface {
	// ObserveAttempt is called after every attempt. status is 0 when no
	// response was received; err is nil on success.
	ObserveAttempt(method string, attempt, status int, err error, dur time.Duration)
	// ObserveRetry is called before sleeping ahead of retry number retry.
	ObserveRetry(method string, retry int, delay time.Duration, cause error)
	// ObservePacing is called with the time spent waiting on the pacer.
	ObservePacing(wait time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveAttempt(string, int, int, error, time.Duration) {}
func (nopObserver) ObserveRetry(string, int, time.Duration, error)        {}
func (nopObserver) ObservePacing(time.Duration)                           {}

const redacted = "[REDACTED]"

var sensitiveHeaderParts = []string{"authorization", "token", "secret", "api-key", "cookie"}

// redactHeaders returns a loggable copy of h with credentials masked.
func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		if isSensitiveHeader(k) {
			out[k] = redacted
			continue
		}
		out[k] = strings.Join(vv, ", ")
	}
	return out
}

func isSensitiveHeader(name string) bool {
	lower := strings.ToLower(name)
	for _, part := range sensitiveHeaderParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

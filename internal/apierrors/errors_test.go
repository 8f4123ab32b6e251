package apierrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKinds_Tuples(t *testing.T) {
	tests := []struct {
		kind   Kind
		name   string
		code   string
		status int
	}{
		{KindGeneric, "MasHubError", "MASHUB_ERROR", 0},
		{KindAuthentication, "AuthenticationError", "AUTHENTICATION_ERROR", 401},
		{KindNetwork, "NetworkError", "NETWORK_ERROR", 0},
		{KindValidation, "ValidationError", "VALIDATION_ERROR", 400},
		{KindRateLimit, "RateLimitError", "RATE_LIMIT_ERROR", 429},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Name(); got != tt.name {
				t.Errorf("Name() = %q, want %q", got, tt.name)
			}
			if got := tt.kind.Code(); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
			if got := tt.kind.DefaultStatus(); got != tt.status {
				t.Errorf("DefaultStatus() = %d, want %d", got, tt.status)
			}
			e := New(tt.kind, "")
			if e.StatusCode != tt.status {
				t.Errorf("New().StatusCode = %d, want %d", e.StatusCode, tt.status)
			}
			if e.Error() == "" {
				t.Error("New() with empty message has empty Error()")
			}
		})
	}
}

func TestError_MessageAsIs(t *testing.T) {
	e := Authentication("Invalid credentials")
	if e.Error() != "Invalid credentials" {
		t.Errorf("Error() = %q, want %q", e.Error(), "Invalid credentials")
	}
	if e.Code() != CodeAuthentication {
		t.Errorf("Code() = %q", e.Code())
	}
}

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		target error
		want   bool
	}{
		{"auth matches auth", Authentication("x"), ErrAuthentication, true},
		{"auth matches mashub", Authentication("x"), ErrMasHub, true},
		{"auth not network", Authentication("x"), ErrNetwork, false},
		{"network matches network", Network(errors.New("dial")), ErrNetwork, true},
		{"generic matches mashub", Generic("x"), ErrMasHub, true},
		{"generic not auth", Generic("x"), ErrAuthentication, false},
		{"validation", Validation(""), ErrValidation, true},
		{"rate limit", RateLimit(""), ErrRateLimit, true},
		{"same kind pointer", Validation("a"), Validation("b"), true},
		{"other kind pointer", Validation("a"), RateLimit("b"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNetwork_WrapsCause(t *testing.T) {
	e := Network(context.DeadlineExceeded)
	if !errors.Is(e, context.DeadlineExceeded) {
		t.Error("Network error should unwrap to its cause")
	}
	if e.Error() != "Network request failed: context deadline exceeded" {
		t.Errorf("Error() = %q", e.Error())
	}

	wrapped := fmt.Errorf("outer: %w", e)
	if CodeOf(wrapped) != CodeNetwork {
		t.Errorf("CodeOf() = %q, want %q", CodeOf(wrapped), CodeNetwork)
	}
}

func TestKindOf_NonTaxonomy(t *testing.T) {
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf(plain) should report false")
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Error("CodeOf(plain) should be empty")
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", Network(errors.New("refused")), true},
		{"rate limit kind", RateLimit(""), true},
		{"429 generic", Generic("Rate limit exceeded: slow").WithStatus(429), true},
		{"500 generic", Generic("Server error: x").WithStatus(500), true},
		{"503 generic", Generic("x").WithStatus(503), true},
		{"401", Authentication("x"), false},
		{"400", Validation("x"), false},
		{"404", Generic("Not found: x").WithStatus(404), false},
		{"plain", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNilError(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Errorf("nil Error() = %q", e.Error())
	}
}

// Package apierrors provides the shared error taxonomy for the MasHub client.
package apierrors

import (
	"errors"
	"net/http"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMasHub matches every taxonomy error regardless of kind.
	ErrMasHub = errors.New("mashub error")

	// ErrAuthentication matches Authentication errors.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNetwork matches Network errors.
	ErrNetwork = errors.New("network request failed")

	// ErrValidation matches Validation errors.
	ErrValidation = errors.New("validation failed")

	// ErrRateLimit matches RateLimit errors.
	ErrRateLimit = errors.New("rate limit exceeded")
)

// Kind identifies one of the five failure kinds.
type Kind int

const (
	// KindGeneric is the catch-all kind, also used for non-401 HTTP failures.
	KindGeneric Kind = iota
	// KindAuthentication indicates rejected credentials.
	KindAuthentication
	// KindNetwork indicates the server could not be reached or the attempt timed out.
	KindNetwork
	// KindValidation indicates a request rejected as invalid.
	KindValidation
	// KindRateLimit indicates the server throttled the request.
	KindRateLimit
)

// Stable machine-facing codes.
const (
	CodeGeneric        = "MASHUB_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeNetwork        = "NETWORK_ERROR"
	CodeValidation     = "VALIDATION_ERROR"
	CodeRateLimit      = "RATE_LIMIT_ERROR"
)

type kindInfo struct {
	name     string
	code     string
	status   int
	message  string
	sentinel error
}

var kinds = map[Kind]kindInfo{
	KindGeneric:        {"MasHubError", CodeGeneric, 0, "request failed", ErrMasHub},
	KindAuthentication: {"AuthenticationError", CodeAuthentication, http.StatusUnauthorized, "Authentication failed", ErrAuthentication},
	KindNetwork:        {"NetworkError", CodeNetwork, 0, "Network request failed", ErrNetwork},
	KindValidation:     {"ValidationError", CodeValidation, http.StatusBadRequest, "Validation failed", ErrValidation},
	KindRateLimit:      {"RateLimitError", CodeRateLimit, http.StatusTooManyRequests, "Rate limit exceeded", ErrRateLimit},
}

func (k Kind) info() kindInfo {
	if ki, ok := kinds[k]; ok {
		return ki
	}
	return kinds[KindGeneric]
}

// Name returns the kind's type name, e.g. "AuthenticationError".
func (k Kind) Name() string { return k.info().name }

// Code returns the stable code, e.g. "AUTHENTICATION_ERROR".
func (k Kind) Code() string { return k.info().code }

// DefaultStatus returns the kind's default HTTP status, or 0 when it has none.
func (k Kind) DefaultStatus() int { return k.info().status }

// DefaultMessage returns the message used when none is supplied.
func (k Kind) DefaultMessage() string { return k.info().message }

func (k Kind) String() string { return k.Name() }

// Error is a classified failure raised by the request engine.
type Error struct {
	Kind    Kind
	Message string
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int
	Cause      error
}

// New creates an error of the given kind with the kind's default status.
// An empty message is replaced by the kind's default message.
func New(kind Kind, message string) *Error {
	if message == "" {
		message = kind.DefaultMessage()
	}
	return &Error{
		Kind:       kind,
		Message:    message,
		StatusCode: kind.DefaultStatus(),
	}
}

// Generic creates a Generic error.
func Generic(message string) *Error { return New(KindGeneric, message) }

// Authentication creates an Authentication error.
func Authentication(message string) *Error { return New(KindAuthentication, message) }

// Validation creates a Validation error.
func Validation(message string) *Error { return New(KindValidation, message) }

// RateLimit creates a RateLimit error.
func RateLimit(message string) *Error { return New(KindRateLimit, message) }

// Network creates a Network error wrapping cause.
func Network(cause error) *Error {
	e := New(KindNetwork, "")
	if cause != nil {
		e.Message = "Network request failed: " + cause.Error()
		e.Cause = cause
	}
	return e
}

// WithStatus returns the receiver with StatusCode set.
func (e *Error) WithStatus(code int) *Error {
	e.StatusCode = code
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message == "" {
		return e.Kind.DefaultMessage()
	}
	return e.Message
}

// Code returns the stable code of the error's kind.
func (e *Error) Code() string { return e.Kind.Code() }

// Name returns the type name of the error's kind.
func (e *Error) Name() string { return e.Kind.Name() }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Cause }

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	if target == ErrMasHub {
		return true
	}
	return target == e.Kind.info().sentinel
}

// MasHubError marks the type as part of the SDK taxonomy.
func (e *Error) MasHubError() {}

// KindOf reports the kind of a taxonomy error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindGeneric, false
}

// CodeOf returns the stable code of a taxonomy error in err's chain,
// or "" when err is not a taxonomy error.
func CodeOf(err error) string {
	if k, ok := KindOf(err); ok {
		return k.Code()
	}
	return ""
}

// IsTransient reports whether err is worth retrying under a conservative
// policy: network failures, HTTP 429 and 5xx.
func IsTransient(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch {
	case e.Kind == KindNetwork, e.Kind == KindRateLimit:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= 500:
		return true
	}
	return false
}

package mashub

import (
	"github.com/mashub/sdk-go/internal/api"
	"github.com/mashub/sdk-go/internal/apierrors"
)

// Error is the single error type returned by the SDK. Its Kind tells the
// five failure kinds apart; Code returns the stable identifier for
// programmatic matching.
type Error = apierrors.Error

// Kind identifies a failure kind.
type Kind = apierrors.Kind

// Failure kinds.
const (
	KindGeneric        = apierrors.KindGeneric
	KindAuthentication = apierrors.KindAuthentication
	KindNetwork        = apierrors.KindNetwork
	KindValidation     = apierrors.KindValidation
	KindRateLimit      = apierrors.KindRateLimit
)

// Stable error codes.
const (
	CodeGeneric        = apierrors.CodeGeneric
	CodeAuthentication = apierrors.CodeAuthentication
	CodeNetwork        = apierrors.CodeNetwork
	CodeValidation     = apierrors.CodeValidation
	CodeRateLimit      = apierrors.CodeRateLimit
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMasHub matches every SDK error.
	ErrMasHub = apierrors.ErrMasHub

	// ErrAuthentication matches errors raised for HTTP 401 responses.
	ErrAuthentication = apierrors.ErrAuthentication

	// ErrNetwork matches transport failures and attempt timeouts.
	ErrNetwork = apierrors.ErrNetwork

	// ErrValidation matches validation errors.
	ErrValidation = apierrors.ErrValidation

	// ErrRateLimit matches rate limit errors.
	ErrRateLimit = apierrors.ErrRateLimit

	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey error = apierrors.Generic("API key is required")
)

// MasHubError is implemented by all SDK errors.
type MasHubError interface {
	error
	MasHubError() // marker method
}

var _ MasHubError = (*Error)(nil)

// NewError creates an error of the given kind. An empty message takes the
// kind's default.
func NewError(kind Kind, message string) *Error {
	return apierrors.New(kind, message)
}

// KindOf reports the kind of the SDK error in err's chain.
func KindOf(err error) (Kind, bool) {
	return apierrors.KindOf(err)
}

// CodeOf returns the stable code of the SDK error in err's chain, or "".
func CodeOf(err error) string {
	return apierrors.CodeOf(err)
}

// IsRetryable reports whether err is a network failure, HTTP 429 or 5xx.
// These are the failures RetryTransient retries.
func IsRetryable(err error) bool {
	return apierrors.IsTransient(err)
}

// RetryPolicy selects which failed attempts are retried.
type RetryPolicy = api.RetryPolicy

// Retry policies.
const (
	// RetryAll retries every failure up to the retry budget. This is the
	// default and includes 401 and 400 responses.
	RetryAll = api.RetryAll
	// RetryTransient retries only network failures, HTTP 429 and 5xx.
	RetryTransient = api.RetryTransient
)

// ParseRetryPolicy parses "all" or "transient".
func ParseRetryPolicy(s string) (RetryPolicy, error) {
	return api.ParseRetryPolicy(s)
}

package mashub

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mashub/sdk-go/internal/api"
)

// Environment selects a MasHub deployment.
type Environment = api.Environment

// Environments.
const (
	EnvironmentDevelopment = api.EnvironmentDevelopment
	EnvironmentStaging     = api.EnvironmentStaging
	EnvironmentProduction  = api.EnvironmentProduction
)

// Pacer spaces outbound requests. See NewPacer.
type Pacer = api.Pacer

// NewPacer creates a pacer that keeps dispatches at least interval apart.
// An interval <= 0 disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return api.NewPacer(interval)
}

// clientConfig holds configuration for the client.
type clientConfig struct {
	Config

	httpClient *http.Client
	logger     *slog.Logger
	pacer      *api.Pacer
	registerer prometheus.Registerer
	metrics    bool
}

// Option configures the client.
type Option func(*clientConfig)

// RequestOption configures a single call.
type RequestOption func(*api.RequestOptions)

// WithBaseURL sets the API base URL. It takes precedence over the environment.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.BaseURL = url
	}
}

// WithEnvironment sets the environment used when no base URL is set.
func WithEnvironment(env Environment) Option {
	return func(c *clientConfig) {
		c.Environment = env
	}
}

// WithTimeout sets the per-attempt timeout.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.Timeout = timeout
	}
}

// WithRetries sets the number of retries after the first attempt.
// Default: 3
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.MaxRetries = count
	}
}

// WithRetryPolicy sets which failures are retried.
// Default: RetryAll
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *clientConfig) {
		c.RetryPolicy = p
	}
}

// WithDebug enables debug logging to stderr. It has no effect when a
// logger is set with WithLogger.
func WithDebug(debug bool) Option {
	return func(c *clientConfig) {
		c.Debug = debug
	}
}

// WithUserAgent appends a product token to the SDK's User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.UserAgent = ua
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithPacer gives the client its own pacer instead of the process-wide one.
func WithPacer(p *Pacer) Option {
	return func(c *clientConfig) {
		c.pacer = p
	}
}

// WithMetrics registers Prometheus request metrics on reg. A nil reg uses
// the default registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *clientConfig) {
		c.metrics = true
		c.registerer = reg
	}
}

func (c *clientConfig) resolveLogger() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	if c.Debug {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}

// WithMethod sets the HTTP method. Default: GET
func WithMethod(method string) RequestOption {
	return func(o *api.RequestOptions) {
		o.Method = method
	}
}

// WithJSON sets the request body. Structs and maps are JSON-encoded;
// []byte, json.RawMessage and string are sent as-is.
func WithJSON(body any) RequestOption {
	return func(o *api.RequestOptions) {
		o.Body = body
	}
}

// WithForm sends a multipart form. The JSON Content-Type default is
// dropped so the form's boundary type is used.
func WithForm(form *Form) RequestOption {
	return func(o *api.RequestOptions) {
		o.Body = form
		o.RemoveHeaders = append(o.RemoveHeaders, "Content-Type")
	}
}

// WithHeader sets a header, replacing any default of the same name.
func WithHeader(key, value string) RequestOption {
	return func(o *api.RequestOptions) {
		if o.Headers == nil {
			o.Headers = make(http.Header)
		}
		o.Headers.Add(key, value)
	}
}

// WithoutHeader removes a header from the request.
func WithoutHeader(key string) RequestOption {
	return func(o *api.RequestOptions) {
		o.RemoveHeaders = append(o.RemoveHeaders, key)
	}
}

// WithRequestTimeout overrides the per-attempt timeout for one call.
func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(o *api.RequestOptions) {
		o.Timeout = timeout
	}
}

// WithRequestRetries overrides the retry budget for one call.
func WithRequestRetries(count int) RequestOption {
	return func(o *api.RequestOptions) {
		o.Retries = &count
	}
}

// Form is a multipart/form-data body.
type Form = api.Form

// NewForm creates an empty multipart form.
func NewForm() *Form {
	return api.NewForm()
}

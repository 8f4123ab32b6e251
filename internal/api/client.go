package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mashub/sdk-go/internal/apierrors"
)

// Default configuration values.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	// UserAgent is the fixed client identifier sent on every request.
	UserAgent = "MasHub-SDK-Go/1.0.0"
)

// Config holds the engine configuration. Zero values are taken literally
// except where noted; use DefaultConfig as a baseline.
type Config struct {
	APIKey      string
	BaseURL     string
	Environment Environment
	// Timeout bounds each attempt. Zero means DefaultTimeout.
	Timeout    time.Duration
	MaxRetries int
	// UserAgent is appended to the fixed client identifier when set.
	UserAgent   string
	HTTPClient  *http.Client
	Pacer       *Pacer
	RetryPolicy RetryPolicy
	Logger      *slog.Logger
	Observer    Observer
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Environment: EnvironmentProduction,
		Timeout:     DefaultTimeout,
		MaxRetries:  DefaultMaxRetries,
		RetryPolicy: RetryAll,
	}
}

// Client is the request engine. Every resource call goes through Execute.
type Client struct {
	apiKey      string
	baseURL     string
	environment Environment
	timeout     time.Duration
	maxRetries  int
	userAgent   string
	httpClient  *http.Client
	pacer       *Pacer
	retryPolicy RetryPolicy
	logger      *slog.Logger
	observer    Observer

	// sleep waits before a retry; replaced in tests to record backoff.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures the API client.
type Option func(*Config)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithEnvironment sets the environment used when no base URL is set.
func WithEnvironment(env Environment) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithRetries sets the number of retries.
func WithRetries(retries int) Option {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithPacer replaces the process-wide pacer.
func WithPacer(p *Pacer) Option {
	return func(c *Config) {
		c.Pacer = p
	}
}

// WithRetryPolicy sets which failures are retried.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Config) {
		c.RetryPolicy = p
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithObserver sets the attempt observer.
func WithObserver(o Observer) Option {
	return func(c *Config) {
		c.Observer = o
	}
}

// New creates a new API client from DefaultConfig plus opts.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.APIKey = apiKey
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClient(cfg)
}

// NewClient creates a new API client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.Generic("API key is required")
	}
	if cfg.BaseURL == "" && cfg.Environment == "" {
		return nil, apierrors.Generic("Either baseUrl or environment must be specified")
	}

	c := &Client{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		environment: cfg.Environment,
		timeout:     cfg.Timeout,
		maxRetries:  cfg.MaxRetries,
		userAgent:   UserAgent,
		httpClient:  cfg.HTTPClient,
		pacer:       cfg.Pacer,
		retryPolicy: cfg.RetryPolicy,
		logger:      cfg.Logger,
		observer:    cfg.Observer,
		sleep:       sleep,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.maxRetries < 0 {
		c.maxRetries = 0
	}
	if ua := strings.TrimSpace(cfg.UserAgent); ua != "" {
		c.userAgent = UserAgent + " " + ua
	}
	if c.httpClient == nil {
		// Attempt deadlines come from the context, not http.Client.Timeout.
		c.httpClient = &http.Client{}
	}
	if c.pacer == nil {
		c.pacer = DefaultPacer()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	return c, nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// BaseURL resolves the base URL from the configured override or environment.
func (c *Client) BaseURL() (string, error) {
	return ResolveBaseURL(c.baseURL, c.environment)
}

// Execute sends a request to <baseURL>/api<endpoint>, retrying failed
// attempts with exponential backoff. The last attempt's error is returned
// unchanged once the retry budget is spent.
func (c *Client) Execute(ctx context.Context, endpoint string, opts RequestOptions) (*Envelope, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	base, err := c.BaseURL()
	if err != nil {
		return nil, err
	}

	p, err := c.prepare(base+"/api"+endpoint, opts)
	if err != nil {
		return nil, err
	}

	timeout := c.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	retries := c.maxRetries
	if opts.Retries != nil {
		retries = max(*opts.Retries, 0)
	}
	attempts := 1 + retries

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := Backoff(attempt)
			c.observer.ObserveRetry(p.method, attempt, delay, lastErr)
			c.logger.DebugContext(ctx, "retrying request",
				"method", p.method, "url", p.url, "retry", attempt, "delay", delay, "error", lastErr)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, apierrors.Network(err)
			}
		}

		res := c.attempt(ctx, p, attempt, timeout)
		switch res.outcome {
		case outcomeSuccess:
			return res.envelope, nil
		case outcomeFatal:
			return nil, res.err
		}

		lastErr = res.err
		if !c.retryPolicy.retries(res.err) {
			break
		}
	}

	c.logger.DebugContext(ctx, "request failed", "method", p.method, "url", p.url, "error", lastErr)
	return nil, lastErr
}

// attempt performs a single paced, timeout-bounded round trip.
func (c *Client) attempt(ctx context.Context, p *prepared, attempt int, timeout time.Duration) attemptResult {
	waited, err := c.pacer.Wait(ctx)
	if err != nil {
		return fatal(apierrors.Network(err))
	}
	c.observer.ObservePacing(waited)
	if waited > 0 {
		c.logger.DebugContext(ctx, "request paced", "url", p.url, "wait", waited)
	}

	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(actx, p.method, p.url, p.newBody())
	if err != nil {
		return fatal(apierrors.Generic(fmt.Sprintf("failed to create request: %v", err)))
	}
	req.Header = p.header.Clone()

	c.logger.DebugContext(ctx, "sending request",
		"method", p.method, "url", p.url, "attempt", attempt+1, "headers", redactHeaders(req.Header))

	start := time.Now()
	res := c.roundTrip(ctx, actx, req, timeout)
	dur := time.Since(start)

	status := 0
	if res.envelope != nil {
		status = res.envelope.Status
	} else if he, ok := res.err.(*apierrors.Error); ok && he.Kind != apierrors.KindNetwork {
		status = he.StatusCode
	}
	c.observer.ObserveAttempt(p.method, attempt, status, res.err, dur)
	c.logger.DebugContext(ctx, "received response",
		"method", p.method, "url", p.url, "attempt", attempt+1, "status", status, "duration", dur)

	return res
}

func (c *Client) roundTrip(ctx, actx context.Context, req *http.Request, timeout time.Duration) attemptResult {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportFailure(ctx, actx, err, timeout)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(ctx, actx, err, timeout)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return retryable(classifyResponse(resp, body))
	}

	env, err := newEnvelope(resp, body)
	if err != nil {
		return retryable(apierrors.Network(err))
	}
	return success(env)
}

// transportFailure classifies a failure to obtain a full response.
// Caller cancellation ends the call; an expired attempt deadline is retried.
func (c *Client) transportFailure(ctx, actx context.Context, err error, timeout time.Duration) attemptResult {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fatal(apierrors.Network(ctxErr))
	}
	if errors.Is(actx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("request timed out after %v: %w", timeout, context.DeadlineExceeded)
	}
	return retryable(apierrors.Network(err))
}

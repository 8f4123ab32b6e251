package mashub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mashub/sdk-go/internal/api"
	"github.com/mashub/sdk-go/internal/apierrors"
	"github.com/mashub/sdk-go/internal/metrics"
)

// healthEndpoint is probed by Ping.
const healthEndpoint = "/health"

// Response is the result of a successful call.
type Response[T any] struct {
	Success bool
	Data    T
	Status  int
	// Headers maps lower-cased header names to values.
	Headers map[string]string
}

// Client is the MasHub API client. It is safe for concurrent use.
type Client struct {
	apiClient *api.Client
	config    Config

	// Contracts manages smart contract projects, versions and deployments.
	Contracts *ContractsService
	// Tokens manages tokenized assets.
	Tokens *TokensService
	// Compliance runs KYC checks and manages audit logs.
	Compliance *ComplianceService
	// Analytics queries platform and contract metrics.
	Analytics *AnalyticsService
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(cfg *clientConfig) (*api.Client, error) {
	apiCfg := api.Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Environment: cfg.Environment,
		Timeout:     cfg.Timeout,
		MaxRetries:  cfg.MaxRetries,
		UserAgent:   cfg.UserAgent,
		HTTPClient:  cfg.httpClient,
		Pacer:       cfg.pacer,
		RetryPolicy: cfg.RetryPolicy,
		Logger:      cfg.resolveLogger(),
	}
	if cfg.metrics {
		apiCfg.Observer = metrics.New(cfg.registerer, metrics.Config{})
	}
	return api.NewClient(apiCfg)
}

// New creates a client with the given API key. Options are applied over
// DefaultConfig.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.APIKey = apiKey
	return NewWithConfig(cfg, opts...)
}

// NewWithConfig creates a client from cfg, then applies opts.
func NewWithConfig(cfg Config, opts ...Option) (*Client, error) {
	cc := &clientConfig{Config: cfg}
	for _, opt := range opts {
		opt(cc)
	}
	if err := cc.Validate(); err != nil {
		return nil, err
	}
	if cc.Timeout == 0 {
		cc.Timeout = DefaultTimeout
	}

	apiClient, err := buildAPIClient(cc)
	if err != nil {
		return nil, err
	}

	c := &Client{
		apiClient: apiClient,
		config:    cc.Config,
	}
	c.Contracts = &ContractsService{client: c}
	c.Tokens = &TokensService{client: c}
	c.Compliance = &ComplianceService{client: c}
	c.Analytics = &AnalyticsService{client: c}
	return c, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() (string, error) {
	return c.apiClient.BaseURL()
}

// Execute sends a request to <baseURL>/api<endpoint> and returns the raw
// JSON body. Failures are *Error values; the last attempt's error is
// returned once retries are spent.
func (c *Client) Execute(ctx context.Context, endpoint string, opts ...RequestOption) (*Response[json.RawMessage], error) {
	var ro api.RequestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	env, err := c.apiClient.Execute(ctx, endpoint, ro)
	if err != nil {
		return nil, err
	}
	return &Response[json.RawMessage]{
		Success: env.Success,
		Data:    env.Data,
		Status:  env.Status,
		Headers: env.Headers,
	}, nil
}

// Request executes a call and decodes the JSON body into T. An empty body
// leaves Data at its zero value.
func Request[T any](ctx context.Context, c *Client, endpoint string, opts ...RequestOption) (*Response[T], error) {
	raw, err := c.Execute(ctx, endpoint, opts...)
	if err != nil {
		return nil, err
	}

	resp := &Response[T]{
		Success: raw.Success,
		Status:  raw.Status,
		Headers: raw.Headers,
	}
	if len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, &resp.Data); err != nil {
			return nil, apierrors.Generic(fmt.Sprintf("decode %s response: %v", endpoint, err)).WithStatus(raw.Status)
		}
	}
	return resp, nil
}

// Ping calls the health endpoint. It reports false on any error.
func (c *Client) Ping(ctx context.Context) bool {
	_, err := c.Execute(ctx, healthEndpoint)
	return err == nil
}

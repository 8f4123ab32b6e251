package mashub

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mashub/sdk-go/internal/api"
	"github.com/mashub/sdk-go/internal/apierrors"
)

// Default configuration values.
const (
	DefaultEnvironment = EnvironmentProduction
	DefaultTimeout     = api.DefaultTimeout
	DefaultMaxRetries  = api.DefaultMaxRetries
)

// Config is the client configuration. It is fixed once the client is built.
type Config struct {
	APIKey string `yaml:"api_key" json:"apiKey"`
	// BaseURL overrides the environment's URL when set.
	BaseURL     string      `yaml:"base_url,omitempty" json:"baseUrl,omitempty"`
	Environment Environment `yaml:"environment" json:"environment"`
	// Timeout bounds each attempt, e.g. "30s" in YAML.
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	MaxRetries  int           `yaml:"max_retries" json:"maxRetries"`
	Debug       bool          `yaml:"debug" json:"debug"`
	RetryPolicy RetryPolicy   `yaml:"retry_policy" json:"retryPolicy"`
	UserAgent   string        `yaml:"user_agent,omitempty" json:"userAgent,omitempty"`
}

// DefaultConfig returns the default configuration without an API key.
func DefaultConfig() Config {
	return Config{
		Environment: DefaultEnvironment,
		Timeout:     DefaultTimeout,
		MaxRetries:  DefaultMaxRetries,
		RetryPolicy: RetryAll,
	}
}

// Validate checks the construction invariants.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.BaseURL == "" && c.Environment == "" {
		return apierrors.Generic("Either baseUrl or environment must be specified")
	}
	if c.MaxRetries < 0 {
		return apierrors.Validation(fmt.Sprintf("max_retries must be >= 0, got %d", c.MaxRetries))
	}
	if c.Timeout < 0 {
		return apierrors.Validation(fmt.Sprintf("timeout must be >= 0, got %v", c.Timeout))
	}
	return nil
}

// Redacted returns a copy safe to print, with the API key masked.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = maskKey(c.APIKey)
	}
	return c
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// LoadConfig reads a YAML configuration file. ${VAR} references are
// expanded from the environment; absent keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data. See LoadConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Command mashub is an operator CLI for the MasHub API.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	mashub "github.com/mashub/sdk-go"
)

// Config holds the process streams and environment lookup.
type Config struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
}

// DefaultConfig returns a Config bound to the process.
func DefaultConfig() Config {
	return Config{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}

// Environment variables read by the CLI.
const (
	envAPIKey  = "MASHUB_API_KEY"
	envBaseURL = "MASHUB_BASE_URL"
)

const defaultEnvFile = ".env"

type globalFlags struct {
	configPath  string
	envFile     string
	baseURL     string
	environment string
	timeout     time.Duration
	retries     int
	retryPolicy string
	debug       bool
	output      string
}

// app carries state shared by every command.
type app struct {
	cfg   Config
	flags globalFlags

	logger *slog.Logger
	// clientOpts are appended when building the client; tests use it to
	// disable pacing.
	clientOpts []mashub.Option
}

func run(args []string, cfg Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{cfg: cfg}
	root := a.rootCmd()
	root.SetArgs(args[1:])
	return root.ExecuteContext(ctx)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mashub",
		Short:         "Command line client for the MasHub API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.cfg.Stdout)
	root.SetErr(a.cfg.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.flags.envFile, "env-file", defaultEnvFile, "dotenv file loaded before reading the environment")
	pf.StringVar(&a.flags.baseURL, "base-url", "", "API base URL, overrides --environment")
	pf.StringVar(&a.flags.environment, "environment", "", "environment: development, staging or production")
	pf.DurationVar(&a.flags.timeout, "timeout", 0, "per-attempt timeout")
	pf.IntVar(&a.flags.retries, "retries", mashub.DefaultMaxRetries, "retries after the first attempt")
	pf.StringVar(&a.flags.retryPolicy, "retry-policy", "", "retry policy: all or transient")
	pf.BoolVar(&a.flags.debug, "debug", false, "log requests to stderr")
	pf.StringVarP(&a.flags.output, "output", "o", "table", "output format: table or json")

	root.AddCommand(
		a.pingCmd(),
		a.configCmd(),
		a.projectsCmd(),
		a.deployedCmd(),
		a.tokensCmd(),
		a.kycCmd(),
		a.auditCmd(),
		a.analyticsCmd(),
		a.monitorCmd(),
	)
	return root
}

// setup loads the dotenv file and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.loadEnvFile(cmd.Flags().Changed("env-file")); err != nil {
		return err
	}

	a.logger = a.newLogger(a.flags.debug)

	switch a.flags.output {
	case "table", "json":
	default:
		return errors.New("--output must be table or json")
	}
	return nil
}

// loadEnvFile reads the dotenv file. A missing default file is ignored.
func (a *app) loadEnvFile(explicit bool) error {
	if a.flags.envFile == "" {
		return nil
	}
	env, err := godotenv.Read(a.flags.envFile)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	getenv := a.cfg.Getenv
	a.cfg.Getenv = func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return env[key]
	}
	return nil
}

// clientConfig merges the config file, environment and flags, in that order.
func (a *app) clientConfig(cmd *cobra.Command) (mashub.Config, error) {
	cfg := mashub.DefaultConfig()
	if a.flags.configPath != "" {
		loaded, err := mashub.LoadConfig(a.flags.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cfg.APIKey == "" {
		cfg.APIKey = a.cfg.Getenv(envAPIKey)
	}
	if v := a.cfg.Getenv(envBaseURL); v != "" && cfg.BaseURL == "" {
		cfg.BaseURL = v
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = a.flags.baseURL
	}
	if flags.Changed("environment") {
		cfg.Environment = mashub.Environment(a.flags.environment)
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.flags.timeout
	}
	if flags.Changed("retries") {
		cfg.MaxRetries = a.flags.retries
	}
	if flags.Changed("retry-policy") {
		p, err := mashub.ParseRetryPolicy(a.flags.retryPolicy)
		if err != nil {
			return cfg, err
		}
		cfg.RetryPolicy = p
	}
	if flags.Changed("debug") {
		cfg.Debug = a.flags.debug
	}
	return cfg, cfg.Validate()
}

func (a *app) newClient(cmd *cobra.Command, opts ...mashub.Option) (*mashub.Client, error) {
	cfg, err := a.clientConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		a.logger = a.newLogger(true)
	}
	opts = append([]mashub.Option{mashub.WithLogger(a.logger), mashub.WithUserAgent("mashub-cli")}, opts...)
	opts = append(opts, a.clientOpts...)
	return mashub.NewWithConfig(cfg, opts...)
}

func (a *app) newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.cfg.Stderr, &slog.HandlerOptions{Level: level}))
}

func (a *app) printer() *printer {
	return &printer{w: a.cfg.Stdout, format: a.flags.output}
}

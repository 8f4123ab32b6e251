// Package metrics exports request engine events as Prometheus metrics.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mashub/sdk-go/internal/apierrors"
)

// Config configures metric names.
type Config struct {
	Namespace string
	Subsystem string
}

// Collector records attempts, retries and pacing delays. It implements the
// engine's Observer interface and is safe for concurrent use.
type Collector struct {
	attemptsTotal   *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
	retryDelay      prometheus.Histogram
	pacingWait      prometheus.Histogram
}

// New creates a collector and registers its metrics on reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, cfg Config) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "mashub"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "client"
	}
	factory := promauto.With(reg)

	return &Collector{
		attemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "attempts_total",
				Help:      "Total number of request attempts by method, status code and result",
			},
			[]string{"method", "status_code", "result"},
		),
		attemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "attempt_duration_seconds",
				Help:      "Duration of a single request attempt in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		retriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "retries_total",
				Help:      "Total number of retries by method and the error kind that caused them",
			},
			[]string{"method", "reason"},
		),
		retryDelay: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "retry_delay_seconds",
				Help:      "Backoff delay before a retry in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 8),
			},
		),
		pacingWait: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pacing_wait_seconds",
				Help:      "Time spent waiting for the request pacer in seconds",
				Buckets:   []float64{0, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
	}
}

// ObserveAttempt records one attempt.
func (c *Collector) ObserveAttempt(method string, _ int, status int, err error, dur time.Duration) {
	c.attemptsTotal.WithLabelValues(method, strconv.Itoa(status), Result(err)).Inc()
	c.attemptDuration.WithLabelValues(method).Observe(dur.Seconds())
}

// ObserveRetry records a scheduled retry.
func (c *Collector) ObserveRetry(method string, _ int, delay time.Duration, cause error) {
	c.retriesTotal.WithLabelValues(method, Result(cause)).Inc()
	c.retryDelay.Observe(delay.Seconds())
}

// ObservePacing records a pacer wait.
func (c *Collector) ObservePacing(wait time.Duration) {
	c.pacingWait.Observe(wait.Seconds())
}

// Result maps an attempt error to a low-cardinality label value:
// "success", or the lower-cased error code such as "network_error".
func Result(err error) string {
	if err == nil {
		return "success"
	}
	code := apierrors.CodeOf(err)
	if code == "" {
		return "unknown"
	}
	return strings.ToLower(code)
}

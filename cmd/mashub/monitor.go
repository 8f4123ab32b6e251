package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	mashub "github.com/mashub/sdk-go"
)

type monitorFlags struct {
	interval    time.Duration
	metricsAddr string
	count       int
}

// monitorMetrics are the probe results exported next to the client's
// request metrics.
type monitorMetrics struct {
	up        prometheus.Gauge
	probes    *prometheus.CounterVec
	lastProbe prometheus.Gauge
}

func newMonitorMetrics(reg prometheus.Registerer) *monitorMetrics {
	factory := promauto.With(reg)
	return &monitorMetrics{
		up: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "mashub",
			Subsystem: "monitor",
			Name:      "up",
			Help:      "Whether the last health probe succeeded (1) or failed (0)",
		}),
		probes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mashub",
			Subsystem: "monitor",
			Name:      "probes_total",
			Help:      "Total number of health probes by result",
		}, []string{"result"}),
		lastProbe: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "mashub",
			Subsystem: "monitor",
			Name:      "last_probe_timestamp_seconds",
			Help:      "Unix time of the last health probe",
		}),
	}
}

func (m *monitorMetrics) record(ok bool) {
	m.lastProbe.SetToCurrentTime()
	if ok {
		m.up.Set(1)
		m.probes.WithLabelValues("success").Inc()
		return
	}
	m.up.Set(0)
	m.probes.WithLabelValues("failure").Inc()
}

func (a *app) monitorCmd() *cobra.Command {
	var f monitorFlags
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Probe API health periodically and export Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.interval <= 0 {
				return errors.New("--interval must be positive")
			}

			reg := prometheus.NewRegistry()
			client, err := a.newClient(cmd, mashub.WithMetrics(reg))
			if err != nil {
				return err
			}
			m := newMonitorMetrics(reg)

			ctx := cmd.Context()
			if f.metricsAddr != "" {
				_, stop, err := a.serveMetrics(f.metricsAddr, reg)
				if err != nil {
					return err
				}
				defer stop()
			}
			return a.probeLoop(ctx, client, m, f)
		},
	}
	cmd.Flags().DurationVar(&f.interval, "interval", 30*time.Second, "time between probes")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "address to serve /metrics on, e.g. :9090")
	cmd.Flags().IntVar(&f.count, "count", 0, "stop after this many probes (0 runs until interrupted)")
	return cmd
}

// probeLoop pings immediately, then once per interval until ctx ends or
// count probes have run.
func (a *app) probeLoop(ctx context.Context, client *mashub.Client, m *monitorMetrics, f monitorFlags) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		start := time.Now()
		ok := client.Ping(ctx)
		m.record(ok)
		if ok {
			a.logger.Info("probe succeeded", "probe", n, "duration", time.Since(start))
		} else {
			a.logger.Warn("probe failed", "probe", n, "duration", time.Since(start))
		}

		if f.count > 0 && n >= f.count {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// serveMetrics serves reg on addr. It returns the bound address and a
// function that shuts the server down.
func (a *app) serveMetrics(addr string, reg *prometheus.Registry) (net.Addr, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", ln.Addr().String())

	return ln.Addr(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}, nil
}

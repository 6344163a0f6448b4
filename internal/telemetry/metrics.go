// Package telemetry exports Prometheus metrics for a running sand world.
package telemetry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sandfall/internal/sims/sand"
)

const namespace = "sand"

// Metrics holds the tick counters and population gauges of one world. Each
// Metrics owns its registry so several can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	ticks       prometheus.Counter
	tickSeconds prometheus.Histogram
	dispatched  prometheus.Counter
	outcomes    *prometheus.CounterVec
	population  *prometheus.GaugeVec
}

// New creates and registers the metric set.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Ticks advanced.",
		}),
		tickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		dispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatches_total",
			Help:      "Cells dispatched to a kind rule.",
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Dispatch outcomes by kind of effect.",
		}, []string{"outcome"}),
		population: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "particles",
			Help:      "Particles currently in the grid by kind.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.ticks, m.tickSeconds, m.dispatched, m.outcomes, m.population)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveTick records one tick's report, the census after it and its
// duration.
func (m *Metrics) ObserveTick(rep sand.Report, census sand.Census, elapsed time.Duration) {
	m.ticks.Inc()
	m.tickSeconds.Observe(elapsed.Seconds())
	m.dispatched.Add(float64(rep.Dispatched))
	for _, o := range sand.Outcomes() {
		if n := rep.Count(o); n > 0 {
			m.outcomes.WithLabelValues(o.String()).Add(float64(n))
		}
	}
	m.ObserveCensus(census)
}

// ObserveCensus sets the population gauges.
func (m *Metrics) ObserveCensus(census sand.Census) {
	for _, k := range sand.Kinds() {
		m.population.WithLabelValues(k.String()).Set(float64(census[k]))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes h at /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("serving metrics", "addr", addr, "path", "/metrics")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Package metrics exposes operation counters in Prometheus format and reads
// runtime memory statistics for sweep summaries.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "b13phase"

// Result labels of OperationsTotal.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics owns a private registry so several instances (one per run or test)
// never collide on registration.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	operations    *prometheus.CounterVec
	samples       prometheus.Counter
	carries       prometheus.Counter
	activeSweeps  prometheus.Gauge
	sweepDuration prometheus.Histogram
}

// NewMetrics builds and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Phase operations executed, by operation and result.",
		}, []string{"op", "result"}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_samples_total",
			Help:      "Phases evaluated by sweeps.",
		}),
		carries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "carries_total",
			Help:      "Additions that overflowed the most significant digit.",
		}),
		activeSweeps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sweeps",
			Help:      "Sweeps currently running.",
		}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Wall time of completed sweeps.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	m.registry.MustRegister(
		m.operations, m.samples, m.carries, m.activeSweeps, m.sweepDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// ObserveOperation counts one operation; err selects the result label.
func (m *Metrics) ObserveOperation(op string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// ObserveCarry counts an addition whose carry was non-zero.
func (m *Metrics) ObserveCarry(carry uint64) {
	if carry != 0 {
		m.carries.Inc()
	}
}

// AddSamples counts evaluated sweep samples.
func (m *Metrics) AddSamples(n int) {
	m.samples.Add(float64(n))
}

// SweepStarted marks a sweep as running and returns the function that
// records its completion.
func (m *Metrics) SweepStarted() func() {
	start := time.Now()
	m.activeSweeps.Inc()
	return func() {
		m.activeSweeps.Dec()
		m.sweepDuration.Observe(time.Since(start).Seconds())
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WritePrometheus writes all metrics in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Serve exposes /metrics on addr until ctx is done. The listener is bound
// before Serve returns, so a bind failure is reported immediately.
func (m *Metrics) Serve(ctx context.Context, addr string) (<-chan error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", m.WritePrometheus)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return done, nil
}

// Package metrics provides optional Prometheus instrumentation of a single
// build invocation's stage durations and output degree distribution. It
// is off by default; the CLI only registers it when --metrics-addr is
// given (spec.md S6 collaborator note, SPEC_FULL.md S2 item 8). No metric
// here feeds back into Build's output -- purely diagnostic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface cagra.Builder depends on; NopRecorder costs
// nothing when metrics are disabled.
type Recorder interface {
	ObserveStageDuration(stage string, seconds float64)
	ObserveOutputDegree(degree float64)
}

// Metrics is a Recorder backed by a dedicated prometheus.Registry, so a
// single build's metrics never collide with another process's default
// registry.
type Metrics struct {
	registry      *prometheus.Registry
	stageDuration *prometheus.HistogramVec
	outputDegree  prometheus.Histogram
}

// New creates a Metrics instance registered against its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		stageDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cagra",
				Subsystem: "build",
				Name:      "stage_duration_seconds",
				Help:      "Wall-clock duration of each build stage.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		outputDegree: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "cagra",
				Subsystem: "build",
				Name:      "output_degree",
				Help:      "Non-empty out-degree of each node in the final graph.",
				Buckets:   prometheus.LinearBuckets(0, 4, 16),
			},
		),
	}
	return m
}

func (m *Metrics) ObserveStageDuration(stage string, seconds float64) {
	m.stageDuration.WithLabelValues(stage).Observe(seconds)
}

func (m *Metrics) ObserveOutputDegree(degree float64) {
	m.outputDegree.Observe(degree)
}

// Handler returns the HTTP handler to mount at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server exposing /metrics at addr and returns it
// unstarted-shutdown; callers are responsible for calling Shutdown/Close
// once the single build run they're instrumenting has finished.
func (m *Metrics) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}

// NopRecorder discards every observation; the Builder default when no
// metrics.Recorder is supplied via cagra.WithMetrics.
type NopRecorder struct{}

func (NopRecorder) ObserveStageDuration(string, float64) {}
func (NopRecorder) ObserveOutputDegree(float64)          {}

package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/timescript/pkg/domain"
)

// Cache outcomes recorded on timescript_compilations_total.
const (
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheDisabled = "disabled"
)

// Diagnostic sources recorded on timescript_diagnostics_total.
const (
	SourceCompiler  = "compiler"
	SourceValidator = "validator"
)

// Metrics holds the engine collectors.
type Metrics struct {
	registry     *prometheus.Registry
	compilations *prometheus.CounterVec
	nodes        *prometheus.CounterVec
	diagnostics  *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		compilations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timescript_compilations_total",
				Help: "Total number of compile requests by cache outcome",
			},
			[]string{"cache"},
		),
		nodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timescript_nodes_total",
				Help: "Total number of top-level nodes produced by fresh compilations",
			},
			[]string{"kind"},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timescript_diagnostics_total",
				Help: "Total number of diagnostics reported",
			},
			[]string{"source", "severity"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "timescript_operation_duration_seconds",
				Help:    "Duration of engine operations",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"operation"},
		),
	}
	m.registry.MustRegister(m.compilations, m.nodes, m.diagnostics, m.duration)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCompile records one compile request. Node counts are only added for
// fresh compilations, so a cache hit never counts the same document twice.
func (m *Metrics) ObserveCompile(cache string, c *domain.Compilation) {
	m.compilations.WithLabelValues(cache).Inc()
	if cache == CacheHit || c == nil {
		return
	}
	for _, n := range c.Document {
		m.nodes.WithLabelValues(string(n.Kind())).Inc()
	}
	m.ObserveDiagnostics(SourceCompiler, c.Warnings)
}

// ObserveDiagnostics counts diags by severity.
func (m *Metrics) ObserveDiagnostics(source string, diags []domain.Diagnostic) {
	for _, d := range diags {
		m.diagnostics.WithLabelValues(source, string(d.Severity)).Inc()
	}
}

// ObserveDuration records the time elapsed since start.
func (m *Metrics) ObserveDuration(operation string, start time.Time) {
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

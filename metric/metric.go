// Package metric provides Prometheus instrumentation for tool operations.
// A private registry keeps the adapter's metrics isolated from any default
// registry the host process may carry.
package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for tool invocations
const (
	OutcomeSuccess = "success"
	OutcomeAbsent  = "absent"
	OutcomeFailed  = "failed"
	OutcomeInvalid = "invalid"
)

// Metrics holds the adapter's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	toolRequests *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
}

// New creates a metrics registry with Go runtime collectors and the
// per-operation tool metrics registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		toolRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dxdmcp_tool_requests_total",
			Help: "Tool invocations by operation and outcome",
		}, []string{"operation", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dxdmcp_tool_request_seconds",
			Help:    "Tool invocation latency by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	registry.MustRegister(
		m.toolRequests,
		m.toolDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveTool records one completed tool invocation
func (m *Metrics) ObserveTool(operation, outcome string, elapsed time.Duration) {
	m.toolRequests.WithLabelValues(operation, outcome).Inc()
	m.toolDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Handler returns the HTTP handler exposing the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

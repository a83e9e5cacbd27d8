// Package metrics exposes the engine's Prometheus instrumentation: a
// Registry of catalog and estimation metrics, plus a catalog Listener
// that keeps the graph gauges current as graphs are registered and
// dropped.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine
type Registry struct {
	// Catalog metrics
	CatalogGraphsTotal        *prometheus.GaugeVec
	CatalogGraphMemoryBytes   *prometheus.GaugeVec
	CatalogOperationsTotal    *prometheus.CounterVec
	CatalogOperationDuration  *prometheus.HistogramVec
	CatalogListenerFailures   *prometheus.CounterVec

	// Estimation metrics
	EstimatedMemoryBytesMin *prometheus.GaugeVec
	EstimatedMemoryBytesMax *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewRegistry creates a Registry with every metric initialized against a
// fresh prometheus registry, so tests never collide on duplicate
// registration.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initCatalogMetrics()
	r.initEstimationMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry for
// handler wiring.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide Registry, creating it on
// first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

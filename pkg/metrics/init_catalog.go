package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initCatalogMetrics() {
	r.CatalogGraphsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "corestore_catalog_graphs_total",
			Help: "Number of graphs currently registered in the catalog",
		},
		[]string{"database"},
	)

	r.CatalogGraphMemoryBytes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "corestore_catalog_graph_memory_bytes",
			Help: "Memory held by registered graphs in bytes",
		},
		[]string{"database"},
	)

	r.CatalogOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "corestore_catalog_operations_total",
			Help: "Total number of catalog operations",
		},
		[]string{"operation", "status"},
	)

	r.CatalogOperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "corestore_catalog_operation_duration_seconds",
			Help:    "Catalog operation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"operation"},
	)

	r.CatalogListenerFailures = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "corestore_catalog_listener_failures_total",
			Help: "Catalog event listeners that panicked and were isolated",
		},
		[]string{"event"},
	)
}

func (r *Registry) initEstimationMetrics() {
	r.EstimatedMemoryBytesMin = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "corestore_estimated_memory_bytes_min",
			Help: "Lower bound of the most recent memory estimation per graph",
		},
		[]string{"graph"},
	)

	r.EstimatedMemoryBytesMax = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "corestore_estimated_memory_bytes_max",
			Help: "Upper bound of the most recent memory estimation per graph",
		},
		[]string{"graph"},
	)
}

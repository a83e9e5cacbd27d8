package metrics

import (
	"time"

	"github.com/graphcore/corestore/pkg/catalog"
	"github.com/graphcore/corestore/pkg/memest"
)

// RecordCatalogOperation records one catalog operation with its duration
func (r *Registry) RecordCatalogOperation(operation, status string, duration time.Duration) {
	r.CatalogOperationsTotal.WithLabelValues(operation, status).Inc()
	r.CatalogOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordListenerFailure counts an isolated listener panic
func (r *Registry) RecordListenerFailure(event string) {
	r.CatalogListenerFailures.WithLabelValues(event).Inc()
}

// RecordEstimation publishes the min/max of a materialized memory tree
// for graphName.
func (r *Registry) RecordEstimation(graphName string, tree *memest.MemoryTree) {
	usage := tree.MemoryUsage()
	r.EstimatedMemoryBytesMin.WithLabelValues(graphName).Set(float64(usage.Min))
	r.EstimatedMemoryBytesMax.WithLabelValues(graphName).Set(float64(usage.Max))
}

// CatalogListener keeps the per-database graph gauges in sync with the
// catalog by observing add/remove events. Register it with
// Catalog.AddListener.
type CatalogListener struct {
	registry *Registry
}

// NewCatalogListener builds a listener publishing into registry.
func NewCatalogListener(registry *Registry) *CatalogListener {
	return &CatalogListener{registry: registry}
}

func (l *CatalogListener) OnGraphStoreAdded(event catalog.GraphStoreAddedEvent) {
	l.registry.CatalogGraphsTotal.WithLabelValues(event.DatabaseName).Inc()
	l.registry.CatalogGraphMemoryBytes.WithLabelValues(event.DatabaseName).Add(float64(event.MemoryBytes))
}

func (l *CatalogListener) OnGraphStoreRemoved(event catalog.GraphStoreRemovedEvent) {
	l.registry.CatalogGraphsTotal.WithLabelValues(event.DatabaseName).Dec()
	l.registry.CatalogGraphMemoryBytes.WithLabelValues(event.DatabaseName).Sub(float64(event.MemoryBytes))
}

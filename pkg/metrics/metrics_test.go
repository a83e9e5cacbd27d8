package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/graphcore/corestore/pkg/catalog"
	"github.com/graphcore/corestore/pkg/memest"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.CatalogGraphsTotal == nil {
		t.Error("CatalogGraphsTotal not initialized")
	}
	if r.CatalogOperationDuration == nil {
		t.Error("CatalogOperationDuration not initialized")
	}
	if r.EstimatedMemoryBytesMax == nil {
		t.Error("EstimatedMemoryBytesMax not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

// gatherValue finds metric name in the registry and returns the first
// sample's gauge/counter value.
func gatherValue(t *testing.T, r *Registry, name string) float64 {
	t.Helper()
	families, err := r.registry.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if g := m.GetGauge(); g != nil {
				return g.GetValue()
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func findFamily(t *testing.T, r *Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := r.registry.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() == name {
			return fam
		}
	}
	return nil
}

func TestCatalogListenerTracksAddAndRemove(t *testing.T) {
	r := NewRegistry()
	l := NewCatalogListener(r)

	l.OnGraphStoreAdded(catalog.GraphStoreAddedEvent{DatabaseName: "db1", GraphName: "g1", MemoryBytes: 1024})
	l.OnGraphStoreAdded(catalog.GraphStoreAddedEvent{DatabaseName: "db1", GraphName: "g2", MemoryBytes: 512})

	if got := gatherValue(t, r, "corestore_catalog_graphs_total"); got != 2 {
		t.Errorf("graphs gauge = %v, want 2", got)
	}
	if got := gatherValue(t, r, "corestore_catalog_graph_memory_bytes"); got != 1536 {
		t.Errorf("memory gauge = %v, want 1536", got)
	}

	l.OnGraphStoreRemoved(catalog.GraphStoreRemovedEvent{DatabaseName: "db1", GraphName: "g1", MemoryBytes: 1024})

	if got := gatherValue(t, r, "corestore_catalog_graphs_total"); got != 1 {
		t.Errorf("graphs gauge after remove = %v, want 1", got)
	}
	if got := gatherValue(t, r, "corestore_catalog_graph_memory_bytes"); got != 512 {
		t.Errorf("memory gauge after remove = %v, want 512", got)
	}
}

func TestCatalogListenerObservesCatalogEvents(t *testing.T) {
	r := NewRegistry()
	c := catalog.NewCatalog(nil)
	c.AddListener(NewCatalogListener(r))

	cfg := catalog.GraphProjectConfig{Username: "alice", DatabaseId: "db1", GraphName: "g1", Concurrency: 1}
	if err := c.Set(cfg, fakeStore{db: "db1", bytes: 256}, nil); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := gatherValue(t, r, "corestore_catalog_graphs_total"); got != 1 {
		t.Errorf("graphs gauge = %v, want 1", got)
	}
}

type fakeStore struct {
	db    string
	bytes int64
}

func (s fakeStore) DatabaseId() string      { return s.db }
func (s fakeStore) MemoryUsageBytes() int64 { return s.bytes }

func TestRecordCatalogOperation(t *testing.T) {
	r := NewRegistry()
	r.RecordCatalogOperation("set", "ok", 2*time.Millisecond)
	r.RecordCatalogOperation("set", "ok", 3*time.Millisecond)
	r.RecordCatalogOperation("get", "error", time.Millisecond)

	fam := findFamily(t, r, "corestore_catalog_operations_total")
	if fam == nil {
		t.Fatal("operations counter family not found")
	}
	var total float64
	for _, m := range fam.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	if total != 3 {
		t.Errorf("operations total = %v, want 3", total)
	}

	durations := findFamily(t, r, "corestore_catalog_operation_duration_seconds")
	if durations == nil {
		t.Fatal("duration histogram family not found")
	}
}

func TestRecordEstimation(t *testing.T) {
	r := NewRegistry()
	tree := memest.Add("graph",
		memest.Fixed("id map", 100),
		memest.FixedRange("adjacency", memest.RangeBetween(200, 400)),
	).Estimate(memest.GraphDimensions{}, 1)

	r.RecordEstimation("g1", tree)

	if got := gatherValue(t, r, "corestore_estimated_memory_bytes_min"); got != 300 {
		t.Errorf("estimation min = %v, want 300", got)
	}
	if got := gatherValue(t, r, "corestore_estimated_memory_bytes_max"); got != 500 {
		t.Errorf("estimation max = %v, want 500", got)
	}
}

func TestRecordListenerFailure(t *testing.T) {
	r := NewRegistry()
	r.RecordListenerFailure("graph_store_added")
	r.RecordListenerFailure("graph_store_added")

	if got := gatherValue(t, r, "corestore_catalog_listener_failures_total"); got != 2 {
		t.Errorf("listener failures = %v, want 2", got)
	}
}

package loading

import (
	"errors"
	"fmt"
	"sync"

	"github.com/graphcore/corestore/pkg/catalog"
	"github.com/graphcore/corestore/pkg/memest"
)

// ErrNoFactory is returned when no registered provider recognizes a
// projection config.
var ErrNoFactory = errors.New("loading: no graph store factory for config")

// GraphStoreFactory builds a graph store from a source of truth, and can
// predict its memory cost before doing so.
type GraphStoreFactory interface {
	Build(ctx GraphLoaderContext) (catalog.GraphStore, error)
	MemoryEstimation() memest.Estimation
}

// GraphStoreFactorySupplierProvider recognizes the projection-config
// types it can build factories for. Configs are opaque to the registry;
// each provider type-asserts the ones it understands.
type GraphStoreFactorySupplierProvider interface {
	CanSupplyFactoryFor(config any) bool
	Supplier(config any) (GraphStoreFactory, error)
}

// FactoryRegistry is the startup-time registry of factory providers.
// Lookup is a linear scan in registration order.
type FactoryRegistry struct {
	mu        sync.RWMutex
	providers []GraphStoreFactorySupplierProvider
}

// NewFactoryRegistry returns an empty registry.
func NewFactoryRegistry() *FactoryRegistry { return &FactoryRegistry{} }

// Register appends provider to the scan order.
func (r *FactoryRegistry) Register(provider GraphStoreFactorySupplierProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = append(r.providers, provider)
}

// Supplier returns a factory for config from the first provider that
// recognizes it, or ErrNoFactory naming the config's type.
func (r *FactoryRegistry) Supplier(config any) (GraphStoreFactory, error) {
	r.mu.RLock()
	providers := append([]GraphStoreFactorySupplierProvider(nil), r.providers...)
	r.mu.RUnlock()

	for _, provider := range providers {
		if provider.CanSupplyFactoryFor(config) {
			return provider.Supplier(config)
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrNoFactory, config)
}

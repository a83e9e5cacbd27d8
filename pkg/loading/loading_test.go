package loading

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphcore/corestore/pkg/catalog"
	"github.com/graphcore/corestore/pkg/memest"
)

func TestNullContextIsFullyNoOp(t *testing.T) {
	ctx := NullContext()

	assert.Nil(t, ctx.Transaction())
	assert.Empty(t, ctx.DatabaseId())
	assert.False(t, ctx.Log().IsDebugEnabled())
	assert.True(t, ctx.TerminationFlag().Running())

	ran := false
	ctx.Executor().Submit(func() { ran = true })
	assert.True(t, ran, "null executor runs tasks inline")

	reg := ctx.TaskRegistryFactory().NewInstance("job-1")
	reg.RegisterTask("import nodes")
	reg.UnregisterTask()

	ctx.UserLogRegistryFactory().NewInstance("alice").AddWarningToLog("ignored")
}

type fakeStore struct{ db string }

func (s fakeStore) DatabaseId() string      { return s.db }
func (s fakeStore) MemoryUsageBytes() int64 { return 128 }

type fakeFactory struct{ db string }

func (f fakeFactory) Build(ctx GraphLoaderContext) (catalog.GraphStore, error) {
	return fakeStore{db: f.db}, nil
}

func (f fakeFactory) MemoryEstimation() memest.Estimation {
	return memest.Fixed("fake store", 128)
}

type nativeConfig struct{ db string }

type nativeProvider struct{}

func (nativeProvider) CanSupplyFactoryFor(config any) bool {
	_, ok := config.(nativeConfig)
	return ok
}

func (nativeProvider) Supplier(config any) (GraphStoreFactory, error) {
	return fakeFactory{db: config.(nativeConfig).db}, nil
}

func TestFactoryRegistryLinearLookup(t *testing.T) {
	registry := NewFactoryRegistry()
	registry.Register(nativeProvider{})

	factory, err := registry.Supplier(nativeConfig{db: "db1"})
	require.NoError(t, err)

	store, err := factory.Build(NullContext())
	require.NoError(t, err)
	assert.Equal(t, "db1", store.DatabaseId())

	tree := factory.MemoryEstimation().Estimate(memest.GraphDimensions{}, 1)
	assert.Equal(t, int64(128), tree.MemoryUsage().Max)
}

func TestFactoryRegistryNoMatchNamesConfigType(t *testing.T) {
	registry := NewFactoryRegistry()
	registry.Register(nativeProvider{})

	type cypherConfig struct{}
	_, err := registry.Supplier(cypherConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoFactory))
	assert.Contains(t, err.Error(), "cypherConfig")
}

func TestFactoryRegistryFirstProviderWins(t *testing.T) {
	registry := NewFactoryRegistry()
	registry.Register(nativeProvider{})
	registry.Register(nativeProvider{})

	_, err := registry.Supplier(nativeConfig{db: "db1"})
	require.NoError(t, err)
}

package graphql

import (
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphcore/corestore/pkg/catalog"
)

type fakeStore struct {
	db    string
	bytes int64
	nodes int64
}

func (s fakeStore) DatabaseId() string      { return s.db }
func (s fakeStore) MemoryUsageBytes() int64 { return s.bytes }
func (s fakeStore) NodeCount() int64        { return s.nodes }

// opaqueStore deliberately lacks NodeCount.
type opaqueStore struct{ db string }

func (s opaqueStore) DatabaseId() string      { return s.db }
func (s opaqueStore) MemoryUsageBytes() int64 { return 1 }

func seededCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.NewCatalog(nil)
	cfg := func(user, db, name string) catalog.GraphProjectConfig {
		return catalog.GraphProjectConfig{Username: user, DatabaseId: db, GraphName: name, Concurrency: 1}
	}
	require.NoError(t, c.Set(cfg("alice", "db1", "g1"), fakeStore{db: "db1", bytes: 4096, nodes: 10}, nil))
	require.NoError(t, c.Set(cfg("alice", "db2", "g2"), fakeStore{db: "db2", bytes: 512, nodes: 3}, nil))
	require.NoError(t, c.Set(cfg("bob", "db1", "g3"), opaqueStore{db: "db1"}, nil))
	return c
}

func execute(t *testing.T, c *catalog.Catalog, query string) map[string]interface{} {
	t.Helper()
	schema, err := GenerateSchema(c)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{Schema: schema, RequestString: query})
	require.Empty(t, result.Errors, "query errors: %v", result.Errors)
	return result.Data.(map[string]interface{})
}

func TestHealthQuery(t *testing.T) {
	data := execute(t, seededCatalog(t), `{ health }`)
	assert.Equal(t, "ok", data["health"])
}

func TestGraphCount(t *testing.T) {
	c := seededCatalog(t)

	data := execute(t, c, `{ graphCount }`)
	assert.Equal(t, 3, data["graphCount"])

	data = execute(t, c, `{ graphCount(database: "db1") }`)
	assert.Equal(t, 2, data["graphCount"])
}

func TestGraphsListingWithDatabaseFilter(t *testing.T) {
	data := execute(t, seededCatalog(t), `{ graphs(database: "db1") { name username database } }`)

	graphs := data["graphs"].([]interface{})
	require.Len(t, graphs, 2)
	names := map[string]bool{}
	for _, g := range graphs {
		names[g.(map[string]interface{})["name"].(string)] = true
	}
	assert.True(t, names["g1"])
	assert.True(t, names["g3"])
}

func TestSingleGraphLookupIsUserScoped(t *testing.T) {
	c := seededCatalog(t)

	data := execute(t, c, `{ graph(username: "alice", database: "db1", name: "g1") { memoryBytes nodeCount } }`)
	graph := data["graph"].(map[string]interface{})
	assert.Equal(t, float64(4096), graph["memoryBytes"])
	assert.Equal(t, float64(10), graph["nodeCount"])

	// bob's graph is invisible under alice's name
	schema, err := GenerateSchema(c)
	require.NoError(t, err)
	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ graph(username: "alice", database: "db1", name: "g3") { name } }`,
	})
	assert.NotEmpty(t, result.Errors)
}

func TestNodeCountIsNullForOpaqueStores(t *testing.T) {
	data := execute(t, seededCatalog(t), `{ graph(username: "bob", database: "db1", name: "g3") { nodeCount } }`)
	graph := data["graph"].(map[string]interface{})
	assert.Nil(t, graph["nodeCount"])
}

func TestDegreeDistributionField(t *testing.T) {
	c := seededCatalog(t)
	entry, err := c.Get(catalog.NewCatalogRequest("db1", "alice"), "g1")
	require.NoError(t, err)
	entry.SetDegreeDistribution(&catalog.DegreeDistribution{Min: 1, Max: 9, Mean: 3.5, P50: 3, P90: 8, P99: 9})

	data := execute(t, c, `{ graph(username: "alice", database: "db1", name: "g1") { degreeDistribution { min max mean p50 } } }`)
	dist := data["graph"].(map[string]interface{})["degreeDistribution"].(map[string]interface{})
	assert.Equal(t, float64(1), dist["min"])
	assert.Equal(t, float64(9), dist["max"])
	assert.Equal(t, 3.5, dist["mean"])
	assert.Equal(t, float64(3), dist["p50"])
}

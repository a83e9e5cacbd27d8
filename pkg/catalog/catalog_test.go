package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGraphStore struct {
	databaseId string
	memory     int64
}

func (f *fakeGraphStore) DatabaseId() string      { return f.databaseId }
func (f *fakeGraphStore) MemoryUsageBytes() int64 { return f.memory }

func newFakeStore(db string, bytes int64) *fakeGraphStore {
	return &fakeGraphStore{databaseId: db, memory: bytes}
}

func testConfig(username, db, name string) GraphProjectConfig {
	return GraphProjectConfig{Username: username, DatabaseId: db, GraphName: name, Concurrency: 1}
}

// TestCatalogHappyPath walks a single user's set/get/remove cycle.
func TestCatalogHappyPath(t *testing.T) {
	c := NewCatalog(nil)
	storeA := newFakeStore("db1", 1024)

	require.NoError(t, c.Set(testConfig("alice", "db1", "g1"), storeA, nil))

	entry, err := c.Get(NewCatalogRequest("db1", "alice"), "g1")
	require.NoError(t, err)
	assert.Same(t, storeA, entry.GraphStore)

	err = c.Set(testConfig("alice", "db1", "g1"), newFakeStore("db1", 2048), nil)
	assert.ErrorIs(t, err, ErrDuplicateGraph)

	var removedCalled bool
	err = c.Remove(NewCatalogRequest("db1", "alice"), "g1", func(e *CatalogEntry) { removedCalled = true }, true)
	require.NoError(t, err)
	assert.True(t, removedCalled)
	assert.False(t, c.Exists(NewCatalogRequest("db1", "alice"), "g1"))
}

// TestCatalogAdminSearch covers the admin cross-user search paths.
func TestCatalogAdminSearch(t *testing.T) {
	c := NewCatalog(nil)
	require.NoError(t, c.Set(testConfig("alice", "db1", "g1"), newFakeStore("db1", 10), nil))

	entry, err := c.Get(NewAdminCatalogRequest("db1", "root", ""), "g1")
	require.NoError(t, err)
	assert.Equal(t, "alice", entry.Config.Username)

	require.NoError(t, c.Set(testConfig("bob", "db1", "g1"), newFakeStore("db1", 20), nil))

	_, err = c.Get(NewAdminCatalogRequest("db1", "root", ""), "g1")
	var ambiguous *AmbiguousGraphError
	require.True(t, errors.As(err, &ambiguous))
	assert.ErrorIs(t, err, ErrAmbiguousGraph)
	assert.Equal(t, []string{"alice", "bob"}, ambiguous.Users)

	// with an override, the search stays confined to the overridden user
	entry, err = c.Get(NewAdminCatalogRequest("db1", "root", "alice"), "g1")
	require.NoError(t, err)
	assert.Equal(t, "alice", entry.Config.Username)
}

func TestNonAdminCannotOverrideUsername(t *testing.T) {
	req := CatalogRequest{DatabaseName: "db1", RequestingUsername: "alice", UsernameOverride: "bob"}
	assert.ErrorIs(t, req.Validate(), ErrUnauthorized)
}

func TestCatalogIsolationNonAdminNeverSeesOtherUsers(t *testing.T) {
	c := NewCatalog(nil)
	require.NoError(t, c.Set(testConfig("bob", "db1", "secret"), newFakeStore("db1", 1), nil))

	_, err := c.Get(NewCatalogRequest("db1", "alice"), "secret")
	assert.ErrorIs(t, err, ErrGraphNotFound)
}

func TestRemoveNotFoundBehavior(t *testing.T) {
	c := NewCatalog(nil)
	err := c.Remove(NewCatalogRequest("db1", "alice"), "ghost", nil, true)
	assert.ErrorIs(t, err, ErrGraphNotFound)

	err = c.Remove(NewCatalogRequest("db1", "alice"), "ghost", nil, false)
	assert.NoError(t, err)
}

func TestSetRejectsDatabaseMismatch(t *testing.T) {
	c := NewCatalog(nil)
	err := c.Set(testConfig("alice", "db1", "g1"), newFakeStore("db2", 1), nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestListenerPanicDoesNotBreakOtherListenersOrTheOperation(t *testing.T) {
	c := NewCatalog(nil)

	var secondCalled bool
	c.AddListener(ListenerFuncs{Added: func(GraphStoreAddedEvent) { panic("boom") }})
	c.AddListener(ListenerFuncs{Added: func(GraphStoreAddedEvent) { secondCalled = true }})

	err := c.Set(testConfig("alice", "db1", "g1"), newFakeStore("db1", 1), nil)
	require.NoError(t, err)
	assert.True(t, secondCalled)
}

func TestGraphStoreAddedEventCarriesMemoryBytes(t *testing.T) {
	c := NewCatalog(nil)
	var got GraphStoreAddedEvent
	c.AddListener(ListenerFuncs{Added: func(e GraphStoreAddedEvent) { got = e }})

	require.NoError(t, c.Set(testConfig("alice", "db1", "g1"), newFakeStore("db1", 4096), nil))
	assert.Equal(t, int64(4096), got.MemoryBytes)
	assert.Equal(t, "alice", got.User)
	assert.Equal(t, "g1", got.GraphName)
	assert.NotEmpty(t, got.CorrelationID)
}

func TestCountAndCountForDatabase(t *testing.T) {
	c := NewCatalog(nil)
	require.NoError(t, c.Set(testConfig("alice", "db1", "g1"), newFakeStore("db1", 1), nil))
	require.NoError(t, c.Set(testConfig("alice", "db2", "g2"), newFakeStore("db2", 1), nil))
	require.NoError(t, c.Set(testConfig("bob", "db1", "g3"), newFakeStore("db1", 1), nil))

	assert.Equal(t, 3, c.Count())
	assert.Equal(t, 2, c.CountForDatabase("db1"))
}

func TestGraphStoresFilterByDatabase(t *testing.T) {
	c := NewCatalog(nil)
	require.NoError(t, c.Set(testConfig("alice", "db1", "g1"), newFakeStore("db1", 1), nil))
	require.NoError(t, c.Set(testConfig("alice", "db2", "g2"), newFakeStore("db2", 1), nil))

	db1 := "db1"
	entries := c.GraphStores(&db1)
	require.Len(t, entries, 1)
	assert.Equal(t, "g1", entries[0].Config.GraphName)

	all := c.GraphStores(nil)
	assert.Len(t, all, 2)
}

func TestGraphStoresWithPrefix(t *testing.T) {
	c := NewCatalog(nil)
	require.NoError(t, c.Set(testConfig("alice", "db1", "social-2024"), newFakeStore("db1", 1), nil))
	require.NoError(t, c.Set(testConfig("alice", "db1", "social-2025"), newFakeStore("db1", 1), nil))
	require.NoError(t, c.Set(testConfig("bob", "db1", "roads"), newFakeStore("db1", 1), nil))

	assert.Len(t, c.GraphStoresWithPrefix(nil, "social-"), 2)
	assert.Len(t, c.GraphStoresWithPrefix(nil, "roads"), 1)
	assert.Empty(t, c.GraphStoresWithPrefix(nil, "citations"))
	assert.Len(t, c.GraphStoresWithPrefix(nil, ""), 3)
}

func TestDropAllForDatabaseFiresRemovalEvents(t *testing.T) {
	c := NewCatalog(nil)
	require.NoError(t, c.Set(testConfig("alice", "db1", "g1"), newFakeStore("db1", 1), nil))
	require.NoError(t, c.Set(testConfig("alice", "db2", "g2"), newFakeStore("db2", 1), nil))

	var removedNames []string
	c.AddListener(ListenerFuncs{Removed: func(e GraphStoreRemovedEvent) { removedNames = append(removedNames, e.GraphName) }})

	n := c.DropAllForDatabase("db1")
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"g1"}, removedNames)
	assert.Equal(t, 1, c.Count())
}

func TestResetClearsUsersAndListeners(t *testing.T) {
	c := NewCatalog(nil)
	require.NoError(t, c.Set(testConfig("alice", "db1", "g1"), newFakeStore("db1", 1), nil))
	c.AddListener(ListenerFuncs{})

	c.Reset()

	assert.Equal(t, 0, c.Count())
	_, err := c.Get(NewCatalogRequest("db1", "alice"), "g1")
	assert.ErrorIs(t, err, ErrGraphNotFound)
}

func TestDegreeDistributionAttachAndRetrieve(t *testing.T) {
	entry := &CatalogEntry{}
	_, ok := entry.GetDegreeDistribution()
	assert.False(t, ok)

	d := DegreeDistribution{Min: 0, Max: 10, Mean: 5}
	entry.SetDegreeDistribution(&d)

	got, ok := entry.GetDegreeDistribution()
	require.True(t, ok)
	assert.Equal(t, int64(10), got.Max)
}

type fixedDegreeSource struct {
	degrees []int64
}

func (f fixedDegreeSource) NodeCount() int64        { return int64(len(f.degrees)) }
func (f fixedDegreeSource) Degree(node int64) int64 { return f.degrees[node] }

func TestComputeDegreeDistribution(t *testing.T) {
	source := fixedDegreeSource{degrees: []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}}
	d := ComputeDegreeDistribution(source)
	assert.Equal(t, int64(1), d.Min)
	assert.Equal(t, int64(10), d.Max)
	assert.InDelta(t, 5.5, d.Mean, 0.001)
	assert.InDelta(t, 5, d.P50, 1)
}

func TestComputeDegreeDistributionEmptyGraph(t *testing.T) {
	d := ComputeDegreeDistribution(fixedDegreeSource{})
	assert.Equal(t, DegreeDistribution{}, d)
}

func TestAnonymousUserRoundTrip(t *testing.T) {
	u := NewAnonymousUser()
	assert.True(t, IsAnonymousUser(u))
	assert.False(t, IsAnonymousUser("alice"))
}

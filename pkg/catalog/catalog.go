package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/graphcore/corestore/pkg/logging"
	"github.com/graphcore/corestore/pkg/validation"
)

// GraphStore is the opaque collaborator a catalog entry wraps. The
// catalog only ever consumes a graph store's memory-reporting and
// database-identification methods — everything
// else (traversal, schema, properties) lives in pkg/graphstore and is
// never touched by the catalog itself.
type GraphStore interface {
	DatabaseId() string
	MemoryUsageBytes() int64
}

// ResultStore is likewise opaque: the catalog only carries a reference
// to it alongside a GraphStore, never calling into it.
type ResultStore interface{}

// GraphProjectConfig is the configuration a graph was projected under.
// The entry's graph name equals GraphName; the graph's database equals
// DatabaseId (both enforced by Set).
type GraphProjectConfig struct {
	Username    string `json:"username" validate:"required,max=128"`
	DatabaseId  string `json:"databaseId" validate:"required"`
	GraphName   string `json:"graphName" validate:"required,max=128"`
	Concurrency int    `json:"concurrency" validate:"min=1"`
}

// Validate enforces the struct's own invariants, independent of any
// catalog state.
func (c GraphProjectConfig) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	err := validation.NewConfigValidator("GraphProjectConfig").
		Custom("Username", func() error { return validation.ValidateUsername(c.Username) }).
		Custom("GraphName", func() error { return validation.ValidateGraphName(c.GraphName) }).
		Validate()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// CatalogEntry is the triple (GraphStore, GraphProjectConfig,
// ResultStore) the catalog stores per graph name, plus an optional
// precomputed degree distribution.
type CatalogEntry struct {
	GraphStore  GraphStore
	Config      GraphProjectConfig
	ResultStore ResultStore

	mu                 sync.RWMutex
	degreeDistribution *DegreeDistribution
}

// SetDegreeDistribution attaches precomputed degree-distribution side
// data to this entry.
func (e *CatalogEntry) SetDegreeDistribution(d *DegreeDistribution) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.degreeDistribution = d
}

// GetDegreeDistribution returns the entry's attached distribution, if
// any.
func (e *CatalogEntry) GetDegreeDistribution() (*DegreeDistribution, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.degreeDistribution, e.degreeDistribution != nil
}

type graphKey struct {
	databaseName string
	graphName    string
}

// UserCatalog holds every graph one user has registered, keyed by
// (databaseName, graphName). Its operations are serialized by a single
// mutex — simpler than per-key locking, and lookups stay per-user
// anyway.
type UserCatalog struct {
	mu      sync.Mutex
	entries map[graphKey]*CatalogEntry
}

func newUserCatalog() *UserCatalog {
	return &UserCatalog{entries: make(map[graphKey]*CatalogEntry)}
}

func (u *UserCatalog) set(databaseName, graphName string, entry *CatalogEntry) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	key := graphKey{databaseName, graphName}
	if _, exists := u.entries[key]; exists {
		return fmt.Errorf("%w: %s/%s", ErrDuplicateGraph, databaseName, graphName)
	}
	u.entries[key] = entry
	return nil
}

func (u *UserCatalog) get(databaseName, graphName string) (*CatalogEntry, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	entry, ok := u.entries[graphKey{databaseName, graphName}]
	return entry, ok
}

func (u *UserCatalog) remove(databaseName, graphName string) (*CatalogEntry, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	key := graphKey{databaseName, graphName}
	entry, ok := u.entries[key]
	if ok {
		delete(u.entries, key)
	}
	return entry, ok
}

func (u *UserCatalog) list(databaseFilter *string) []*CatalogEntry {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]*CatalogEntry, 0, len(u.entries))
	for key, entry := range u.entries {
		if databaseFilter != nil && key.databaseName != *databaseFilter {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (u *UserCatalog) count(databaseFilter *string) int {
	return len(u.list(databaseFilter))
}

func (u *UserCatalog) dropAll(databaseFilter *string) []*CatalogEntry {
	u.mu.Lock()
	defer u.mu.Unlock()
	var dropped []*CatalogEntry
	for key, entry := range u.entries {
		if databaseFilter != nil && key.databaseName != *databaseFilter {
			continue
		}
		dropped = append(dropped, entry)
		delete(u.entries, key)
	}
	return dropped
}

// Catalog is the process-wide registry mapping username -> UserCatalog.
// Reads and computed inserts on the top-level map are lock-free from the
// caller's perspective (guarded internally by a RWMutex); individual
// UserCatalog operations are serialized per user, never globally.
type Catalog struct {
	mu    sync.RWMutex
	users map[string]*UserCatalog

	listenersMu sync.RWMutex
	listeners   []Listener

	log logging.Log
}

// NewCatalog constructs an empty catalog. A nil log uses logging's no-op
// implementation.
func NewCatalog(log logging.Log) *Catalog {
	if log == nil {
		log = logging.NewNopLog()
	}
	return &Catalog{users: make(map[string]*UserCatalog), log: log}
}

// AddListener registers l to observe future Set/Remove operations.
func (c *Catalog) AddListener(l Listener) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *Catalog) userCatalog(username string, createIfMissing bool) *UserCatalog {
	c.mu.RLock()
	uc, ok := c.users[username]
	c.mu.RUnlock()
	if ok || !createIfMissing {
		return uc
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if uc, ok = c.users[username]; ok {
		return uc
	}
	uc = newUserCatalog()
	c.users[username] = uc
	return uc
}

// Set registers graphStore under config's (username, databaseId,
// graphName), creating that user's catalog if this is their first
// graph. Rejects a duplicate key with ErrDuplicateGraph. Fires
// GraphStoreAddedEvent to every listener on success.
func (c *Catalog) Set(config GraphProjectConfig, graphStore GraphStore, resultStore ResultStore) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if graphStore.DatabaseId() != config.DatabaseId {
		return fmt.Errorf("%w: graph store database %q does not match config database %q", ErrInvalidRequest, graphStore.DatabaseId(), config.DatabaseId)
	}

	uc := c.userCatalog(config.Username, true)
	entry := &CatalogEntry{GraphStore: graphStore, Config: config, ResultStore: resultStore}
	if err := uc.set(config.DatabaseId, config.GraphName, entry); err != nil {
		return err
	}

	c.listenersMu.RLock()
	listeners := append([]Listener(nil), c.listeners...)
	c.listenersMu.RUnlock()
	notifyAdded(listeners, c.log, GraphStoreAddedEvent{
		CorrelationID: newCorrelationID(),
		User:          config.Username,
		DatabaseName:  config.DatabaseId,
		GraphName:     config.GraphName,
		MemoryBytes:   graphStore.MemoryUsageBytes(),
	})
	return nil
}

// Get resolves graphName for request. It searches request.EffectiveUser
// first; if the request is an unrestricted admin search (no override)
// and the graph isn't found there, it searches every other user's
// catalog. Zero matches fails with ErrGraphNotFound; more than one match
// fails with an *AmbiguousGraphError.
func (c *Catalog) Get(request CatalogRequest, graphName string) (*CatalogEntry, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	effectiveUser := request.EffectiveUser()
	if uc := c.userCatalog(effectiveUser, false); uc != nil {
		if entry, ok := uc.get(request.DatabaseName, graphName); ok {
			return entry, nil
		}
	}

	if request.RestrictSearchToUsernameCatalog() {
		return nil, fmt.Errorf("%w: %s", ErrGraphNotFound, graphName)
	}

	matches := map[string]*CatalogEntry{}
	for _, username := range c.usernames() {
		if username == effectiveUser {
			continue
		}
		uc := c.userCatalog(username, false)
		if uc == nil {
			continue
		}
		if entry, ok := uc.get(request.DatabaseName, graphName); ok {
			matches[username] = entry
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrGraphNotFound, graphName)
	case 1:
		for _, entry := range matches {
			return entry, nil
		}
	}

	users := make([]string, 0, len(matches))
	for username := range matches {
		users = append(users, username)
	}
	sort.Strings(users)
	return nil, NewAmbiguousGraphError(graphName, users)
}

// Remove resolves graphName exactly as Get does, invokes consumer(entry)
// before deleting it, then fires GraphStoreRemovedEvent. If failOnMissing
// is false, a missing graph is a silent no-op instead of
// ErrGraphNotFound.
func (c *Catalog) Remove(request CatalogRequest, graphName string, consumer func(*CatalogEntry), failOnMissing bool) error {
	_, owner, err := c.locate(request, graphName)
	if err != nil {
		if !failOnMissing && errors.Is(err, ErrGraphNotFound) {
			return nil
		}
		return err
	}

	uc := c.userCatalog(owner, false)
	removed, ok := uc.remove(request.DatabaseName, graphName)
	if !ok {
		// Raced with a concurrent remove between locate and here.
		if !failOnMissing {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrGraphNotFound, graphName)
	}

	if consumer != nil {
		consumer(removed)
	}

	c.listenersMu.RLock()
	listeners := append([]Listener(nil), c.listeners...)
	c.listenersMu.RUnlock()
	notifyRemoved(listeners, c.log, GraphStoreRemovedEvent{
		CorrelationID: newCorrelationID(),
		User:          owner,
		DatabaseName:  request.DatabaseName,
		GraphName:     graphName,
		MemoryBytes:   removed.GraphStore.MemoryUsageBytes(),
	})
	return nil
}

// locate finds graphName the same way Get does, additionally returning
// the username whose catalog owns it.
func (c *Catalog) locate(request CatalogRequest, graphName string) (*CatalogEntry, string, error) {
	if err := request.Validate(); err != nil {
		return nil, "", err
	}

	effectiveUser := request.EffectiveUser()
	if uc := c.userCatalog(effectiveUser, false); uc != nil {
		if entry, ok := uc.get(request.DatabaseName, graphName); ok {
			return entry, effectiveUser, nil
		}
	}

	if request.RestrictSearchToUsernameCatalog() {
		return nil, "", fmt.Errorf("%w: %s", ErrGraphNotFound, graphName)
	}

	matches := map[string]*CatalogEntry{}
	for _, username := range c.usernames() {
		if username == effectiveUser {
			continue
		}
		uc := c.userCatalog(username, false)
		if uc == nil {
			continue
		}
		if entry, ok := uc.get(request.DatabaseName, graphName); ok {
			matches[username] = entry
		}
	}

	switch len(matches) {
	case 0:
		return nil, "", fmt.Errorf("%w: %s", ErrGraphNotFound, graphName)
	case 1:
		for username, entry := range matches {
			return entry, username, nil
		}
	}
	users := make([]string, 0, len(matches))
	for username := range matches {
		users = append(users, username)
	}
	sort.Strings(users)
	return nil, "", NewAmbiguousGraphError(graphName, users)
}

// Exists reports whether graphName resolves for request, without
// distinguishing "not found" from "ambiguous".
func (c *Catalog) Exists(request CatalogRequest, graphName string) bool {
	_, err := c.Get(request, graphName)
	return err == nil
}

func (c *Catalog) usernames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.users))
	for username := range c.users {
		out = append(out, username)
	}
	return out
}

// Count returns the total number of registered graphs across every
// user.
func (c *Catalog) Count() int {
	total := 0
	for _, username := range c.usernames() {
		total += c.userCatalog(username, false).count(nil)
	}
	return total
}

// CountForDatabase returns the number of registered graphs in
// databaseName across every user.
func (c *Catalog) CountForDatabase(databaseName string) int {
	total := 0
	for _, username := range c.usernames() {
		total += c.userCatalog(username, false).count(&databaseName)
	}
	return total
}

// GraphStores lists every entry in the catalog, optionally filtered to
// one database.
func (c *Catalog) GraphStores(databaseFilter *string) []*CatalogEntry {
	var out []*CatalogEntry
	for _, username := range c.usernames() {
		out = append(out, c.userCatalog(username, false).list(databaseFilter)...)
	}
	return out
}

// GraphStoresWithPrefix is GraphStores additionally restricted to
// entries whose graph name starts with namePrefix. An empty prefix
// matches everything.
func (c *Catalog) GraphStoresWithPrefix(databaseFilter *string, namePrefix string) []*CatalogEntry {
	all := c.GraphStores(databaseFilter)
	out := make([]*CatalogEntry, 0, len(all))
	for _, entry := range all {
		if strings.HasPrefix(entry.Config.GraphName, namePrefix) {
			out = append(out, entry)
		}
	}
	return out
}

// DropAll removes every entry for every user, firing a removal event per
// entry, and returns the number removed.
func (c *Catalog) DropAll() int {
	return c.dropAllMatching(nil)
}

// DropAllForDatabase removes every entry in databaseName for every user.
func (c *Catalog) DropAllForDatabase(databaseName string) int {
	return c.dropAllMatching(&databaseName)
}

func (c *Catalog) dropAllMatching(databaseFilter *string) int {
	c.listenersMu.RLock()
	listeners := append([]Listener(nil), c.listeners...)
	c.listenersMu.RUnlock()

	count := 0
	for _, username := range c.usernames() {
		uc := c.userCatalog(username, false)
		dropped := uc.dropAll(databaseFilter)
		for _, entry := range dropped {
			notifyRemoved(listeners, c.log, GraphStoreRemovedEvent{
				CorrelationID: newCorrelationID(),
				User:          username,
				DatabaseName:  entry.Config.DatabaseId,
				GraphName:     entry.Config.GraphName,
				MemoryBytes:   entry.GraphStore.MemoryUsageBytes(),
			})
		}
		count += len(dropped)
	}
	return count
}

// Reset clears every user's catalog and every listener. Production code
// never needs this — it exists so tests can avoid sharing catalog state
// across cases.
func (c *Catalog) Reset() {
	c.mu.Lock()
	c.users = make(map[string]*UserCatalog)
	c.mu.Unlock()

	c.listenersMu.Lock()
	c.listeners = nil
	c.listenersMu.Unlock()
}

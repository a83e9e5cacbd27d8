package graphstore

import (
	"github.com/graphcore/corestore/pkg/idmap"
	"github.com/graphcore/corestore/pkg/memest"
	"github.com/graphcore/corestore/pkg/nodeprops"
)

// CSRGraphStore is the assembled, immutable (aside from label additions
// via its IdMap) container deposited into the catalog: an id map, a
// schema, a node-property map, and one CSR topology per relationship type,
// plus an optional inverse topology per type.
//
// Every topology's node indices lie in [0, idMap.NodeCount()), and the
// relationship-type sets of schema and the topology maps agree.
// NewCSRGraphStore does not check either invariant.
type CSRGraphStore struct {
	idMap             idmap.IdMap
	schema            *GraphSchema
	nodeProperties    map[string]nodeprops.NodePropertyValues
	topologies        map[RelationshipType]*Topology
	inverseTopologies map[RelationshipType]*Topology
	databaseId        string
}

// NewCSRGraphStore assembles a graph store. inverseTopologies may be nil
// or a strict subset of topologies' keys.
func NewCSRGraphStore(
	idMap idmap.IdMap,
	schema *GraphSchema,
	nodeProperties map[string]nodeprops.NodePropertyValues,
	topologies map[RelationshipType]*Topology,
	inverseTopologies map[RelationshipType]*Topology,
) *CSRGraphStore {
	return &CSRGraphStore{
		idMap:             idMap,
		schema:            schema,
		nodeProperties:    nodeProperties,
		topologies:        topologies,
		inverseTopologies: inverseTopologies,
	}
}

// DatabaseId and MemoryUsageBytes implement catalog.GraphStore — the
// only two methods a catalog entry's wrapped store is required to
// answer for.
//
// SetDatabaseId records which database this store was projected
// against; a catalog Set call checks it matches the registering
// GraphProjectConfig.
func (s *CSRGraphStore) SetDatabaseId(id string) { s.databaseId = id }

// DatabaseId returns the database this store was projected against.
func (s *CSRGraphStore) DatabaseId() string { return s.databaseId }

// MemoryUsageBytes estimates the store's resident size by composing a
// memest.GraphStoreEstimation tree from this store's actual dimensions
// (node count, per-type relationship counts, inverse presence, property
// widths) and reading off its materialized maximum.
func (s *CSRGraphStore) MemoryUsageBytes() int64 {
	dims := memest.GraphDimensions{
		NodeCount:             s.idMap.NodeCount(),
		RelationshipTypeCount: len(s.topologies),
	}
	hasProperty := make(map[string]bool, len(s.topologies))
	hasInverse := make(map[string]bool, len(s.topologies))
	for relType, topo := range s.topologies {
		dims.RelationshipCount += topo.Adjacency.RelationshipCount()
		hasProperty[string(relType)] = topo.HasProperty
		_, hasInverse[string(relType)] = s.inverseTopologies[relType]
	}
	propertyBytes := make(map[string]int64, len(s.nodeProperties))
	for key := range s.nodeProperties {
		propertyBytes[key] = 8
	}
	tree := memest.GraphStoreEstimation(hasProperty, hasInverse, propertyBytes).Estimate(dims, 1)
	return tree.MemoryUsage().Max
}

// NodeCount is the id map's node count.
func (s *CSRGraphStore) NodeCount() int64 { return s.idMap.NodeCount() }

// RelationshipCount sums RelationshipCount across every type's topology.
func (s *CSRGraphStore) RelationshipCount() int64 {
	var total int64
	for _, topo := range s.topologies {
		total += topo.Adjacency.RelationshipCount()
	}
	return total
}

// Schema returns the store's relationship-type schema.
func (s *CSRGraphStore) Schema() *GraphSchema { return s.schema }

// NodeProperty looks up a node property by key.
func (s *CSRGraphStore) NodeProperty(key string) (nodeprops.NodePropertyValues, bool) {
	v, ok := s.nodeProperties[key]
	return v, ok
}

// Graph builds the read-only HugeGraph facade over the given relationship
// types (every supported type if none are given).
func (s *CSRGraphStore) Graph(types ...RelationshipType) (*HugeGraph, error) {
	return s.buildGraph(s.topologies, types)
}

// InverseGraph builds the HugeGraph facade over the inverse topology for
// the given relationship types. It reads from inverseTopologies only —
// a view over reversed edges must never be backed by the forward
// adjacency.
func (s *CSRGraphStore) InverseGraph(types ...RelationshipType) (*HugeGraph, error) {
	return s.buildGraph(s.inverseTopologies, types)
}

func (s *CSRGraphStore) buildGraph(topologies map[RelationshipType]*Topology, types []RelationshipType) (*HugeGraph, error) {
	if len(types) == 0 {
		types = s.schema.SupportedTypes()
	}
	if !subsetOf(types, s.schema.SupportedTypes()) {
		return nil, ErrUnsupportedRelationshipType
	}
	for _, t := range types {
		if _, ok := topologies[t]; !ok {
			return nil, ErrUnsupportedRelationshipType
		}
	}
	return newHugeGraph(s.idMap, s.schema, s.nodeProperties, topologies, types), nil
}

package graphstore

import (
	"github.com/graphcore/corestore/pkg/csr"
	"github.com/graphcore/corestore/pkg/idmap"
	"github.com/graphcore/corestore/pkg/nodeprops"
)

// HugeGraph is the composed, read-only traversal facade: an IdMap plus a
// GraphSchema, a node-property map, and the topologies for a chosen
// subset of relationship types. Cursor state (rawCursors) is per-instance,
// so a HugeGraph must not be shared across goroutines — use ConcurrentCopy
// to hand each algorithm thread its own cursor cache over the same
// underlying, by-reference-shared topology and property data.
type HugeGraph struct {
	idMap          idmap.IdMap
	schema         *GraphSchema
	nodeProperties map[string]nodeprops.NodePropertyValues
	topologies     map[RelationshipType]*Topology
	types          []RelationshipType
	rawCursors     map[RelationshipType]*csr.Cursor
}

func newHugeGraph(
	idMap idmap.IdMap,
	schema *GraphSchema,
	nodeProperties map[string]nodeprops.NodePropertyValues,
	topologies map[RelationshipType]*Topology,
	types []RelationshipType,
) *HugeGraph {
	rawCursors := make(map[RelationshipType]*csr.Cursor, len(types))
	for _, t := range types {
		rawCursors[t] = topologies[t].Adjacency.RawAdjacencyCursor()
	}
	return &HugeGraph{
		idMap:          idMap,
		schema:         schema,
		nodeProperties: nodeProperties,
		topologies:     topologies,
		types:          types,
		rawCursors:     rawCursors,
	}
}

// NodeCount is the number of internal node ids in [0, NodeCount()).
func (g *HugeGraph) NodeCount() int64 { return g.idMap.NodeCount() }

// RelationshipCount sums RelationshipCount across every selected type's
// topology.
func (g *HugeGraph) RelationshipCount() int64 {
	var total int64
	for _, t := range g.types {
		total += g.topologies[t].Adjacency.RelationshipCount()
	}
	return total
}

// IsMultiGraph reports whether any selected type's topology retained
// duplicate targets, or more than one type is selected (two distinct
// types sharing a target pair also constitute a multi-edge at this
// composed view).
func (g *HugeGraph) IsMultiGraph() bool {
	if len(g.types) > 1 {
		return true
	}
	for _, t := range g.types {
		if g.topologies[t].Adjacency.IsMultiGraph() {
			return true
		}
	}
	return false
}

// HasRelationshipProperty reports whether the single selected relationship
// type carries a property channel. Only meaningful for a single-type view;
// returns false for a composed multi-type graph.
func (g *HugeGraph) HasRelationshipProperty() bool {
	if len(g.types) != 1 {
		return false
	}
	return g.topologies[g.types[0]].HasProperty
}

// Degree returns source's out-degree across every selected type.
func (g *HugeGraph) Degree(source int64) int64 {
	var total int64
	for _, t := range g.types {
		total += g.topologies[t].Adjacency.Degree(source)
	}
	return total
}

func (g *HugeGraph) cursorAt(source int64) adjacencyCursor {
	if len(g.types) == 1 {
		c := g.rawCursors[g.types[0]]
		c.Init(source)
		return c
	}
	members := make([]*csr.Cursor, 0, len(g.types))
	for _, t := range g.types {
		c := g.rawCursors[t]
		c.Init(source)
		members = append(members, c)
	}
	return csr.NewCompositeAdjacencyCursor(members...)
}

// Exists reports whether the edge (source, target) is present in any
// selected type's topology.
func (g *HugeGraph) Exists(source, target int64) bool {
	return g.cursorAt(source).Advance(target) == target
}

// NthTarget returns the offset-th target of source in ascending order, or
// csr.NotFound if offset >= Degree(source).
func (g *HugeGraph) NthTarget(source, offset int64) int64 {
	c := g.cursorAt(source)
	var i int64
	for c.HasNext() {
		v := c.Next()
		if i == offset {
			return v
		}
		i++
	}
	return csr.NotFound
}

// RelationshipProperty linear-searches source's adjacency in lockstep with
// its property cursor for target, returning the property on first match
// or fallback otherwise. Only defined for a single selected relationship
// type; returns ErrUnsupportedOperation for a composed multi-type view.
func (g *HugeGraph) RelationshipProperty(source, target int64, fallback float64) (float64, error) {
	if len(g.types) != 1 {
		return 0, ErrUnsupportedOperation
	}
	topology := g.topologies[g.types[0]]
	csrList, ok := topology.Adjacency.(*csr.CSRAdjacencyList)
	if !ok {
		return 0, ErrUnsupportedOperation
	}
	c := topology.Adjacency.AdjacencyCursor(nil, source)
	p := csr.NewPropertyCursor(csrList, topology.PropertyChannel, fallback)
	p.Init(source)
	for c.HasNext() {
		t := c.Next()
		v := p.NextLong()
		if t == target {
			return v, nil
		}
	}
	return fallback, nil
}

// DegreeWithoutParallelRelationships counts source's distinct adjacent
// targets by a single ascending scan comparing each target to the
// previous one emitted.
func (g *HugeGraph) DegreeWithoutParallelRelationships(source int64) int64 {
	c := g.cursorAt(source)
	var count int64
	var previous int64 = csr.NotFound
	first := true
	for c.HasNext() {
		v := c.Next()
		if first || v != previous {
			count++
		}
		previous = v
		first = false
	}
	return count
}

// ConcurrentCopy returns a new facade over the same underlying topology
// and property data (shared by reference) but with its own, independent
// cursor cache — safe for a second algorithm thread to use concurrently
// with the original.
func (g *HugeGraph) ConcurrentCopy() *HugeGraph {
	return newHugeGraph(g.idMap, g.schema, g.nodeProperties, g.topologies, g.types)
}

// RelationshipTypeFilteredGraph returns a new facade restricted to types,
// which must be a subset of this graph's already-selected types.
// ErrUnsupportedRelationshipType otherwise.
func (g *HugeGraph) RelationshipTypeFilteredGraph(types []RelationshipType) (*HugeGraph, error) {
	if !subsetOf(types, g.types) {
		return nil, ErrUnsupportedRelationshipType
	}
	return newHugeGraph(g.idMap, g.schema, g.nodeProperties, g.topologies, types), nil
}

package csr

// AdjacencyList exposes, for every internal source node, its ordered
// (ascending) sequence of target ids.
type AdjacencyList interface {
	// Degree returns the number of neighbours of source in O(1).
	Degree(source int64) int64

	// AdjacencyCursor returns a cursor positioned at source's neighbour
	// list. If reuse is non-nil it is re-initialized and returned instead
	// of allocating a new cursor.
	AdjacencyCursor(reuse *Cursor, source int64) *Cursor

	// RawAdjacencyCursor returns an unbound cursor for later Init calls,
	// letting a caller re-init the same cursor across many sources
	// without reuse-vs-allocate ceremony at every call site.
	RawAdjacencyCursor() *Cursor

	// IsMultiGraph reports whether duplicate targets were retained for
	// any source (as opposed to deduplicated at build time).
	IsMultiGraph() bool

	// RelationshipCount is the total number of edges across all sources.
	RelationshipCount() int64
}

// CSRAdjacencyList is the in-memory compressed-sparse-row implementation:
// offsets[s]..offsets[s+1] indexes into targets for source s's neighbours,
// which are stored in ascending order.
type CSRAdjacencyList struct {
	offsets     []int64
	targets     []int64
	properties  [][]float64 // parallel per-edge property channels, same layout as targets
	isMulti     bool
	relCount    int64
}

// NewCSRAdjacencyList wraps already-built offsets/targets arrays. offsets
// must have length nodeCount+1; targets[offsets[s]:offsets[s+1]] must be
// sorted ascending for every s. Use Builder to construct these from
// unsorted per-source edge batches.
func NewCSRAdjacencyList(offsets []int64, targets []int64, properties [][]float64, isMulti bool) *CSRAdjacencyList {
	return &CSRAdjacencyList{
		offsets:    offsets,
		targets:    targets,
		properties: properties,
		isMulti:    isMulti,
		relCount:   int64(len(targets)),
	}
}

func (l *CSRAdjacencyList) Degree(source int64) int64 {
	return l.offsets[source+1] - l.offsets[source]
}

func (l *CSRAdjacencyList) IsMultiGraph() bool { return l.isMulti }

func (l *CSRAdjacencyList) RelationshipCount() int64 { return l.relCount }

func (l *CSRAdjacencyList) RawAdjacencyCursor() *Cursor {
	return &Cursor{list: l}
}

func (l *CSRAdjacencyList) AdjacencyCursor(reuse *Cursor, source int64) *Cursor {
	c := reuse
	if c == nil {
		c = &Cursor{}
	}
	c.list = l
	c.Init(source)
	return c
}

// propertyChannel returns the k-th property channel, or nil if the CSR
// carries no properties (hasRelationshipProperty == false).
func (l *CSRAdjacencyList) propertyChannel(k int) []float64 {
	if k < 0 || k >= len(l.properties) {
		return nil
	}
	return l.properties[k]
}

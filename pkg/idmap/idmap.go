package idmap

// IdMap is a bijection between a subset of original ids in
// [0, HighestOriginalId()] and internal ids in [0, NodeCount()).
type IdMap interface {
	// NodeCount returns the number of mapped internal ids.
	NodeCount() int64

	// HighestOriginalId returns the largest original id ever mapped, or
	// -1 if the map is empty.
	HighestOriginalId() int64

	// ToMappedNodeId translates an original id to its internal id, or
	// NotFound if original has no mapping.
	ToMappedNodeId(original int64) int64

	// ToOriginalNodeId translates an internal id back to its original id.
	ToOriginalNodeId(internal int64) int64

	// ForEachNode calls consumer(internal) for every internal id in
	// iteration order, stopping early if consumer returns false.
	ForEachNode(consumer func(internal int64) bool)
}

// ArrayIdMap is the standard IdMap: a dense slice indexed by internal id
// (internal -> original) plus a hash map for the reverse direction.
type ArrayIdMap struct {
	internalToOriginal []int64
	originalToInternal map[int64]int64
	highestOriginal    int64
}

// NewArrayIdMap builds an IdMap directly from a complete internal->original
// slice, where internalToOriginal[i] is the original id of internal node
// i. Used by Builder.Build once all batches have been inserted.
func NewArrayIdMap(internalToOriginal []int64) *ArrayIdMap {
	reverse := make(map[int64]int64, len(internalToOriginal))
	highest := int64(-1)
	for internal, original := range internalToOriginal {
		reverse[original] = int64(internal)
		if original > highest {
			highest = original
		}
	}
	return &ArrayIdMap{
		internalToOriginal: internalToOriginal,
		originalToInternal: reverse,
		highestOriginal:    highest,
	}
}

func (m *ArrayIdMap) NodeCount() int64 { return int64(len(m.internalToOriginal)) }

func (m *ArrayIdMap) HighestOriginalId() int64 { return m.highestOriginal }

func (m *ArrayIdMap) ToMappedNodeId(original int64) int64 {
	if internal, ok := m.originalToInternal[original]; ok {
		return internal
	}
	return NotFound
}

func (m *ArrayIdMap) ToOriginalNodeId(internal int64) int64 {
	return m.internalToOriginal[internal]
}

func (m *ArrayIdMap) ForEachNode(consumer func(internal int64) bool) {
	for i := range m.internalToOriginal {
		if !consumer(int64(i)) {
			return
		}
	}
}

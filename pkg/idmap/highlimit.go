package idmap

// HighLimitIdMap composes two maps for the case where the original id
// space vastly exceeds nodeCount: original -> intermediate -> internal.
// Node-property builders key by the intermediate id (smaller, denser)
// while callers still query in the original space.
type HighLimitIdMap struct {
	// originalToIntermediate is the first-stage map: sparse original ids
	// to a denser intermediate space.
	originalToIntermediate IdMap
	// intermediateToInternal is the second-stage (root) map: intermediate
	// ids to the final internal ids in [0, NodeCount()).
	intermediateToInternal IdMap
}

// NewHighLimitIdMap composes the two stages. intermediateToInternal is the
// "root" map returned by RootIdMap.
func NewHighLimitIdMap(originalToIntermediate, intermediateToInternal IdMap) *HighLimitIdMap {
	return &HighLimitIdMap{
		originalToIntermediate: originalToIntermediate,
		intermediateToInternal: intermediateToInternal,
	}
}

func (m *HighLimitIdMap) NodeCount() int64 { return m.intermediateToInternal.NodeCount() }

func (m *HighLimitIdMap) HighestOriginalId() int64 {
	return m.originalToIntermediate.HighestOriginalId()
}

func (m *HighLimitIdMap) ToMappedNodeId(original int64) int64 {
	intermediate := m.originalToIntermediate.ToMappedNodeId(original)
	if intermediate == NotFound {
		return NotFound
	}
	return m.intermediateToInternal.ToMappedNodeId(intermediate)
}

func (m *HighLimitIdMap) ToOriginalNodeId(internal int64) int64 {
	intermediate := m.intermediateToInternal.ToOriginalNodeId(internal)
	return m.originalToIntermediate.ToOriginalNodeId(intermediate)
}

func (m *HighLimitIdMap) ForEachNode(consumer func(internal int64) bool) {
	m.intermediateToInternal.ForEachNode(consumer)
}

// RootIdMap returns the inner (intermediate -> internal) map, used by
// node-property builders so storage is keyed by the smaller intermediate
// id space instead of the sparse original space.
func (m *HighLimitIdMap) RootIdMap() IdMap {
	return m.intermediateToInternal
}

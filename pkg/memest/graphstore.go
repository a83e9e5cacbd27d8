package memest

import "github.com/graphcore/corestore/pkg/collections"

// Per-element byte costs the estimations below scale by. These mirror the
// actual page-backed storage in pkg/collections/pkg/csr/pkg/idmap: eight
// bytes per HugeLongArray slot, one bit per bitset membership test.
const (
	bytesPerLongSlot   = 8
	bytesPerAdjacency  = 8 // target id, CSR-packed
	bytesPerProperty   = 8 // one property word per edge, parallel to targets
	bitsetOverheadByte = 1 // amortized byte-per-node overhead for a HugeAtomicGrowingBitSet word
)

// IdMapEstimation is the per-node cost of the id map: one HugeLongArray
// slot per internal id holding its original id, plus the reverse
// hash-map lookup's amortized overhead.
func IdMapEstimation() Estimation {
	return PerNode("id map (original<->internal)", func(nodeCount int64) MemoryRange {
		forward := nodeCount * bytesPerLongSlot
		// the reverse lookup's hash map carries per-entry overhead beyond
		// the raw 8-byte key/value pair; bracket it as a range rather than
		// pretend a single Go map's overhead is exactly known.
		reverseMin := nodeCount * bytesPerLongSlot
		reverseMax := nodeCount * bytesPerLongSlot * 3
		return MemoryRange{Min: forward + reverseMin, Max: forward + reverseMax}
	})
}

// LabelInformationEstimation picks AllNodes/SingleLabel/MultiLabel
// storage shape based on the declared label count, deferred until
// dimensions are known (the label-variant selection rule collapsed
// into the estimator too: zero or one non-star label costs nothing
// beyond a pointer, N labels cost one bitset each).
func LabelInformationEstimation() Estimation {
	return Setup("label information", func(dims GraphDimensions, _ Concurrency) Estimation {
		if dims.LabelCount <= 1 {
			return Fixed("no-storage label info (AllNodes/SingleLabel)", 0)
		}
		return PerGraphDimension("per-label bitset", func(d GraphDimensions) MemoryRange {
			perLabelBytes := (d.NodeCount/8 + 1) * bitsetOverheadByte
			total := perLabelBytes * int64(d.LabelCount)
			return MemoryRange{Min: total, Max: total * 2} // growth-policy slack
		})
	})
}

// AdjacencyEstimation is one relationship type's CSR storage: one
// adjacency word per relationship (min and max alike), plus optional
// per-edge properties.
func AdjacencyEstimation(withProperties bool) Estimation {
	adjacency := PerGraphDimension("adjacency list", func(dims GraphDimensions) MemoryRange {
		min := dims.RelationshipCount * bytesPerAdjacency
		return MemoryRange{Min: min, Max: min}
	})
	if !withProperties {
		return adjacency
	}
	properties := PerGraphDimension("relationship properties", func(dims GraphDimensions) MemoryRange {
		bytes := dims.RelationshipCount * bytesPerProperty
		return RangeOf(bytes)
	})
	return Add("topology", adjacency, properties)
}

// InverseAdjacencyEstimation estimates the inverse index at the same range
// as the forward topology, since it is a second, independently-sorted CSR
// over the same edge count; added beside forward, it doubles that cost.
func InverseAdjacencyEstimation(forward Estimation) Estimation {
	return AndThen("inverse topology", forward, func(r MemoryRange) MemoryRange { return r })
}

// NodePropertyEstimation is one property key's per-node storage, sized
// by valueBytes (8 for long/double, larger for array-typed properties).
func NodePropertyEstimation(key string, valueBytes int64) Estimation {
	return PerNode("node property: "+key, func(nodeCount int64) MemoryRange {
		return RangeOf(nodeCount * valueBytes)
	})
}

// HugeArrayPageOverheadEstimation accounts for the growth policy's
// slack: the final page is never perfectly full, and the last grow step
// added up to 12.5% extra.
func HugeArrayPageOverheadEstimation(nodeCount int64, elemBytes int64) Estimation {
	return Fixed("huge array page overhead", nodeCount*elemBytes/8+int64(collections.PageSize32KB))
}

// GraphStoreEstimation composes a complete graph store's memory
// estimation: id map, label information, every relationship type's
// topology (forward and inverse where present), and node properties —
// the tree an import job or catalog admission check evaluates before
// committing to a projection.
func GraphStoreEstimation(relTypeHasProperty map[string]bool, hasInverse map[string]bool, nodePropertyValueBytes map[string]int64) Estimation {
	children := []Estimation{IdMapEstimation(), LabelInformationEstimation()}
	for relType, hasProp := range relTypeHasProperty {
		forward := AdjacencyEstimation(hasProp)
		children = append(children, AndThen("relationship type: "+relType, forward, func(r MemoryRange) MemoryRange { return r }))
		if hasInverse[relType] {
			children = append(children, InverseAdjacencyEstimation(forward))
		}
	}
	for key, bytes := range nodePropertyValueBytes {
		children = append(children, NodePropertyEstimation(key, bytes))
	}
	return Add("graph store", children...)
}

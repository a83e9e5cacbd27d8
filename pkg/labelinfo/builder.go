package labelinfo

import (
	"sync"

	"github.com/graphcore/corestore/pkg/collections"
)

// notFoundInternal mirrors idmap.NotFound's contract value (-1): an
// original id recorded here that the id map builder never saw remaps to
// this sentinel and is simply skipped.
const notFoundInternal = -1

// Builder accumulates (label, originalId) pairs from concurrent import
// producers, then — once the id map has been finalized — remaps every
// recorded original id to its internal id and selects the most specific
// LabelInformation variant for the result.
//
// Add records against the *original* id space using one atomic growing
// bitset per label, so concurrent writers need no locking beyond the
// bitset's own lock-free Set. The mutex here only guards the handful of
// map-structure mutations (first Add for a label, MarkStar, Build).
type Builder struct {
	mu         sync.Mutex
	byLabel    map[NodeLabel]*collections.HugeAtomicGrowingBitSet
	starLabels map[NodeLabel]bool
}

// NewBuilder creates an empty label-information builder.
func NewBuilder() *Builder {
	return &Builder{
		byLabel:    make(map[NodeLabel]*collections.HugeAtomicGrowingBitSet),
		starLabels: make(map[NodeLabel]bool),
	}
}

func (b *Builder) bitsetFor(label NodeLabel) *collections.HugeAtomicGrowingBitSet {
	b.mu.Lock()
	bs, ok := b.byLabel[label]
	if !ok {
		bs = collections.NewHugeAtomicGrowingBitSet(64)
		b.byLabel[label] = bs
	}
	b.mu.Unlock()
	return bs
}

// Add records that originalId carries label. Safe for concurrent callers
// across different (or the same) labels.
func (b *Builder) Add(label NodeLabel, originalId int64) {
	b.bitsetFor(label).Set(int(originalId))
}

// MarkStar declares label as a "star" label: one that is materialized at
// build time to include every node, regardless of which original ids were
// individually recorded against it.
func (b *Builder) MarkStar(label NodeLabel) {
	b.mu.Lock()
	b.starLabels[label] = true
	b.mu.Unlock()
}

// Build finalizes the recorded labels into the most specific
// LabelInformation variant for nodeCount nodes, translating every recorded
// original id through remap. Per the build-time selection rule: zero real
// labels and no star labels yields AllNodes; exactly one real label and no
// stars yields SingleLabel; anything else yields MultiLabel, with star
// labels saturated across [0, nodeCount).
func (b *Builder) Build(nodeCount int64, remap func(original int64) int64) LabelInformation {
	b.mu.Lock()
	defer b.mu.Unlock()

	declared := make(map[NodeLabel]bool)
	for label, bs := range b.byLabel {
		if bs.Cardinality() > 0 {
			declared[label] = true
		}
	}
	for label := range b.starLabels {
		declared[label] = true
	}

	if len(declared) == 0 {
		return NewAllNodesLabelInformation(nodeCount)
	}

	if len(declared) == 1 {
		var only NodeLabel
		for label := range declared {
			only = label
		}
		if !b.starLabels[only] {
			return NewSingleLabelInformation(only, nodeCount)
		}
	}

	result := make(map[NodeLabel]*collections.HugeAtomicGrowingBitSet, len(declared))
	for label := range declared {
		internal := collections.NewHugeAtomicGrowingBitSet(int(nodeCount))
		if b.starLabels[label] {
			internal.SetRange(int(nodeCount))
		}
		if original, ok := b.byLabel[label]; ok {
			original.ForEachSetBit(func(originalId int) bool {
				if mapped := remap(int64(originalId)); mapped != notFoundInternal {
					internal.Set(int(mapped))
				}
				return true
			})
		}
		result[label] = internal
	}
	return NewMultiLabelInformation(result, nodeCount)
}

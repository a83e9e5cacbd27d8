package labelinfo

import "github.com/graphcore/corestore/pkg/collections"

// NodeLabel names a label declared during import. AllNodes is reserved.
type NodeLabel string

// LabelInformation is the read contract shared by all three build-time
// variants (AllNodes / SingleLabel / MultiLabel).
type LabelInformation interface {
	// IsEmpty reports whether the representation carries no usable label
	// membership at all.
	IsEmpty() bool

	// Has reports whether node carries label.
	Has(node int64, label NodeLabel) bool

	// LabelsOf returns every label node carries, including AllNodes.
	LabelsOf(node int64) []NodeLabel

	// LabelsAvailable lists the labels this representation knows about,
	// not including the implicit AllNodes pseudo-label, except in the
	// AllNodes variant, whose only label is AllNodes.
	LabelsAvailable() []NodeLabel

	// CountFor returns the number of nodes carrying label, or
	// ErrUnknownLabel if label is outside what this representation can
	// answer for.
	CountFor(label NodeLabel) (int64, error)

	// IterateNodes calls consumer for every internal node id carrying any
	// of labels (union semantics), in ascending order, stopping early if
	// consumer returns false. An empty labels slice means AllNodes.
	// Returns ErrUnknownLabel if a requested label is outside what this
	// representation knows, so a MultiLabel with no bitsets stored rejects
	// any filter other than AllNodes.
	IterateNodes(labels []NodeLabel, consumer func(node int64) bool) error

	// UnionBitSet ORs together the membership of labels into a snapshot
	// bitset sized to nodeCount.
	UnionBitSet(labels []NodeLabel) (*collections.HugeAtomicGrowingBitSet, error)

	// ToMultiLabel converts this representation into an explicit
	// MultiLabelInformation with an additional, initially-empty label
	// bitset for extraLabel — the only mutation a built graph permits.
	ToMultiLabel(extraLabel NodeLabel) *MultiLabelInformation
}

func containsLabel(labels []NodeLabel, label NodeLabel) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

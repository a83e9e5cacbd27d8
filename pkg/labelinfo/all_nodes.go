package labelinfo

import "github.com/graphcore/corestore/pkg/collections"

// AllNodesLabelInformation is the zero-storage variant used when no real
// label was ever declared at build time: every node implicitly carries the
// AllNodes pseudo-label, and nothing else.
type AllNodesLabelInformation struct {
	nodeCount int64
}

// NewAllNodesLabelInformation builds the implicit-universal-label variant.
func NewAllNodesLabelInformation(nodeCount int64) *AllNodesLabelInformation {
	return &AllNodesLabelInformation{nodeCount: nodeCount}
}

func (a *AllNodesLabelInformation) IsEmpty() bool { return false }

func (a *AllNodesLabelInformation) Has(node int64, label NodeLabel) bool {
	return label == AllNodes
}

func (a *AllNodesLabelInformation) LabelsOf(node int64) []NodeLabel {
	return []NodeLabel{AllNodes}
}

func (a *AllNodesLabelInformation) LabelsAvailable() []NodeLabel {
	return []NodeLabel{AllNodes}
}

func (a *AllNodesLabelInformation) CountFor(label NodeLabel) (int64, error) {
	if label != AllNodes {
		return 0, ErrUnknownLabel
	}
	return a.nodeCount, nil
}

func (a *AllNodesLabelInformation) IterateNodes(labels []NodeLabel, consumer func(node int64) bool) error {
	if len(labels) > 0 {
		for _, l := range labels {
			if l != AllNodes {
				return ErrUnknownLabel
			}
		}
	}
	for i := int64(0); i < a.nodeCount; i++ {
		if !consumer(i) {
			return nil
		}
	}
	return nil
}

func (a *AllNodesLabelInformation) UnionBitSet(labels []NodeLabel) (*collections.HugeAtomicGrowingBitSet, error) {
	if len(labels) > 0 {
		for _, l := range labels {
			if l != AllNodes {
				return nil, ErrUnknownLabel
			}
		}
	}
	bs := collections.NewHugeAtomicGrowingBitSet(int(a.nodeCount))
	bs.SetRange(int(a.nodeCount))
	return bs, nil
}

func (a *AllNodesLabelInformation) ToMultiLabel(extraLabel NodeLabel) *MultiLabelInformation {
	m := newMultiLabelInformation(a.nodeCount)
	m.ensureLabel(extraLabel)
	return m
}

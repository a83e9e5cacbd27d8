package labelinfo

import "github.com/graphcore/corestore/pkg/collections"

// MultiLabelInformation is backed by one atomic growing bitset per label
// over [0, nodeCount). The pseudo-label AllNodes is always treated as a
// superset and carries no bitset of its own.
type MultiLabelInformation struct {
	bitSets   map[NodeLabel]*collections.HugeAtomicGrowingBitSet
	nodeCount int64
}

func newMultiLabelInformation(nodeCount int64) *MultiLabelInformation {
	return &MultiLabelInformation{
		bitSets:   make(map[NodeLabel]*collections.HugeAtomicGrowingBitSet),
		nodeCount: nodeCount,
	}
}

// NewMultiLabelInformation builds a MultiLabelInformation directly from
// already-assembled per-label bitsets, as produced by Builder.Build.
func NewMultiLabelInformation(bitSets map[NodeLabel]*collections.HugeAtomicGrowingBitSet, nodeCount int64) *MultiLabelInformation {
	m := newMultiLabelInformation(nodeCount)
	for label, bs := range bitSets {
		m.bitSets[label] = bs
	}
	return m
}

func (m *MultiLabelInformation) ensureLabel(label NodeLabel) *collections.HugeAtomicGrowingBitSet {
	if bs, ok := m.bitSets[label]; ok {
		return bs
	}
	bs := collections.NewHugeAtomicGrowingBitSet(int(m.nodeCount))
	m.bitSets[label] = bs
	return bs
}

func (m *MultiLabelInformation) IsEmpty() bool {
	return len(m.bitSets) == 0
}

func (m *MultiLabelInformation) Has(node int64, label NodeLabel) bool {
	if label == AllNodes {
		return true
	}
	bs, ok := m.bitSets[label]
	if !ok {
		return false
	}
	return bs.Get(int(node))
}

func (m *MultiLabelInformation) LabelsOf(node int64) []NodeLabel {
	labels := make([]NodeLabel, 0, len(m.bitSets)+1)
	for label, bs := range m.bitSets {
		if bs.Get(int(node)) {
			labels = append(labels, label)
		}
	}
	labels = append(labels, AllNodes)
	return labels
}

func (m *MultiLabelInformation) LabelsAvailable() []NodeLabel {
	labels := make([]NodeLabel, 0, len(m.bitSets))
	for label := range m.bitSets {
		labels = append(labels, label)
	}
	return labels
}

func (m *MultiLabelInformation) CountFor(label NodeLabel) (int64, error) {
	if label == AllNodes {
		return m.nodeCount, nil
	}
	bs, ok := m.bitSets[label]
	if !ok {
		return 0, ErrUnknownLabel
	}
	return int64(bs.Cardinality()), nil
}

func (m *MultiLabelInformation) IterateNodes(labels []NodeLabel, consumer func(node int64) bool) error {
	if len(labels) == 0 || containsLabel(labels, AllNodes) {
		for i := int64(0); i < m.nodeCount; i++ {
			if !consumer(i) {
				return nil
			}
		}
		return nil
	}
	union, err := m.UnionBitSet(labels)
	if err != nil {
		return err
	}
	if union.Cardinality() == 0 && len(labels) > 0 {
		// Nothing to iterate over; distinguish "union is legitimately
		// empty" from "caller asked for zero labels against zero bitsets".
		if len(m.bitSets) == 0 {
			return ErrUnsupportedOperation
		}
	}
	union.ForEachSetBit(func(i int) bool { return consumer(int64(i)) })
	return nil
}

func (m *MultiLabelInformation) UnionBitSet(labels []NodeLabel) (*collections.HugeAtomicGrowingBitSet, error) {
	if len(labels) == 0 || containsLabel(labels, AllNodes) {
		bs := collections.NewHugeAtomicGrowingBitSet(int(m.nodeCount))
		bs.SetRange(int(m.nodeCount))
		return bs, nil
	}
	result := collections.NewHugeAtomicGrowingBitSet(int(m.nodeCount))
	for _, label := range labels {
		bs, ok := m.bitSets[label]
		if !ok {
			return nil, ErrUnknownLabel
		}
		result = result.Union(bs)
	}
	return result, nil
}

func (m *MultiLabelInformation) ToMultiLabel(extraLabel NodeLabel) *MultiLabelInformation {
	clone := newMultiLabelInformation(m.nodeCount)
	for label, bs := range m.bitSets {
		clone.bitSets[label] = bs
	}
	clone.ensureLabel(extraLabel)
	return clone
}

package labelinfo

import "github.com/graphcore/corestore/pkg/collections"

// SingleLabelInformation is the zero-storage variant used when exactly one
// real, non-universal label was declared with no star labels: every node
// carries that one label plus the implicit AllNodes pseudo-label.
type SingleLabelInformation struct {
	label     NodeLabel
	nodeCount int64
}

// NewSingleLabelInformation builds the single-real-label variant.
func NewSingleLabelInformation(label NodeLabel, nodeCount int64) *SingleLabelInformation {
	return &SingleLabelInformation{label: label, nodeCount: nodeCount}
}

// IsEmpty reports false: the label is present for every node, which is the
// semantically useful reading for callers that branch on emptiness (the
// alternative "no bitsets stored" reading is rejected here).
func (s *SingleLabelInformation) IsEmpty() bool { return false }

func (s *SingleLabelInformation) Has(node int64, label NodeLabel) bool {
	return label == s.label || label == AllNodes
}

func (s *SingleLabelInformation) LabelsOf(node int64) []NodeLabel {
	return []NodeLabel{s.label, AllNodes}
}

func (s *SingleLabelInformation) LabelsAvailable() []NodeLabel {
	return []NodeLabel{s.label}
}

func (s *SingleLabelInformation) CountFor(label NodeLabel) (int64, error) {
	if label != s.label && label != AllNodes {
		return 0, ErrUnknownLabel
	}
	return s.nodeCount, nil
}

func (s *SingleLabelInformation) validateFilter(labels []NodeLabel) error {
	for _, l := range labels {
		if l != s.label && l != AllNodes {
			return ErrUnknownLabel
		}
	}
	return nil
}

func (s *SingleLabelInformation) IterateNodes(labels []NodeLabel, consumer func(node int64) bool) error {
	if err := s.validateFilter(labels); err != nil {
		return err
	}
	for i := int64(0); i < s.nodeCount; i++ {
		if !consumer(i) {
			return nil
		}
	}
	return nil
}

func (s *SingleLabelInformation) UnionBitSet(labels []NodeLabel) (*collections.HugeAtomicGrowingBitSet, error) {
	if err := s.validateFilter(labels); err != nil {
		return nil, err
	}
	bs := collections.NewHugeAtomicGrowingBitSet(int(s.nodeCount))
	bs.SetRange(int(s.nodeCount))
	return bs, nil
}

func (s *SingleLabelInformation) ToMultiLabel(extraLabel NodeLabel) *MultiLabelInformation {
	m := newMultiLabelInformation(s.nodeCount)
	existing := m.ensureLabel(s.label)
	existing.SetRange(int(s.nodeCount))
	m.ensureLabel(extraLabel)
	return m
}

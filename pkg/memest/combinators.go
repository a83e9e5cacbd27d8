package memest

// leaf is the common shape for every leaf Estimation: a description plus
// a function from (dims, concurrency) to a range. The exported
// constructors (Fixed, PerNode, ...) each fix the function's shape so
// callers describe intent rather than writing the closure by hand.
type leaf struct {
	desc string
	fn   func(dims GraphDimensions, concurrency Concurrency) MemoryRange
}

func (l *leaf) Description() string { return l.desc }

func (l *leaf) Estimate(dims GraphDimensions, concurrency Concurrency) *MemoryTree {
	return &MemoryTree{Description: l.desc, Range: l.fn(dims, concurrency)}
}

// Fixed is a constant leaf: the same number of bytes regardless of
// dimensions or concurrency.
func Fixed(desc string, bytes int64) Estimation {
	r := RangeOf(bytes)
	return &leaf{desc: desc, fn: func(GraphDimensions, Concurrency) MemoryRange { return r }}
}

// FixedRange is a constant leaf over an explicit [min, max] range.
func FixedRange(desc string, r MemoryRange) Estimation {
	return &leaf{desc: desc, fn: func(GraphDimensions, Concurrency) MemoryRange { return r }}
}

// PerNode is a leaf whose range is fn(dims.NodeCount) — typically
// perElementBytes scaled by node count via the caller-supplied fn.
func PerNode(desc string, fn func(nodeCount int64) MemoryRange) Estimation {
	return &leaf{desc: desc, fn: func(dims GraphDimensions, _ Concurrency) MemoryRange {
		return fn(dims.NodeCount)
	}}
}

// PerThread is a leaf whose range is fn(concurrency) — the per-thread
// working-set cost of a parallel operation.
func PerThread(desc string, fn func(concurrency Concurrency) MemoryRange) Estimation {
	return &leaf{desc: desc, fn: func(_ GraphDimensions, concurrency Concurrency) MemoryRange {
		return fn(concurrency)
	}}
}

// PerGraphDimension is a leaf computed from the full dimensions struct,
// for costs that depend on more than node count alone (relationship
// count, label count, average degree, ...).
func PerGraphDimension(desc string, fn func(dims GraphDimensions) MemoryRange) Estimation {
	return &leaf{desc: desc, fn: func(dims GraphDimensions, _ Concurrency) MemoryRange {
		return fn(dims)
	}}
}

// composite materializes a list of child Estimations and combines their
// ranges with combine.
type composite struct {
	desc     string
	children []Estimation
	combine  func(acc MemoryRange, child MemoryRange) MemoryRange
	identity MemoryRange
}

func (c *composite) Description() string { return c.desc }

func (c *composite) Estimate(dims GraphDimensions, concurrency Concurrency) *MemoryTree {
	tree := &MemoryTree{Description: c.desc, Range: c.identity}
	acc := c.identity
	for _, child := range c.children {
		childTree := child.Estimate(dims, concurrency)
		tree.Children = append(tree.Children, childTree)
		acc = c.combine(acc, childTree.Range)
	}
	tree.Range = acc
	return tree
}

// Add sums every child's range.
func Add(desc string, children ...Estimation) Estimation {
	return &composite{
		desc:     desc,
		children: children,
		combine:  func(acc, child MemoryRange) MemoryRange { return acc.Add(child) },
		identity: MemoryRange{},
	}
}

// MaxOf takes the component-wise maximum across every child's range.
// With zero children it estimates to the zero range.
func MaxOf(desc string, children ...Estimation) Estimation {
	return &composite{
		desc:     desc,
		children: children,
		combine:  func(acc, child MemoryRange) MemoryRange { return acc.Union(child) },
		identity: MemoryRange{},
	}
}

// transform wraps a single child and post-processes its materialized
// range.
type transform struct {
	desc      string
	child     Estimation
	transform func(MemoryRange) MemoryRange
}

func (t *transform) Description() string { return t.desc }

func (t *transform) Estimate(dims GraphDimensions, concurrency Concurrency) *MemoryTree {
	childTree := t.child.Estimate(dims, concurrency)
	return &MemoryTree{
		Description: t.desc,
		Range:       t.transform(childTree.Range),
		Children:    []*MemoryTree{childTree},
	}
}

// AndThen estimates child, then applies transform to its range — for a
// cost that delegates to another estimation but scales or adjusts the
// result (e.g. rounding up to a page boundary, or applying a safety
// factor).
func AndThen(desc string, child Estimation, transformFn func(MemoryRange) MemoryRange) Estimation {
	return &transform{desc: desc, child: child, transform: transformFn}
}

// deferred defers construction of the real Estimation until dimensions
// and concurrency are known — for estimations whose shape (not just
// magnitude) depends on runtime inputs, e.g. choosing AllNodes vs.
// MultiLabel label-info storage based on label count.
type deferred struct {
	desc string
	fn   func(dims GraphDimensions, concurrency Concurrency) Estimation
}

func (d *deferred) Description() string { return d.desc }

func (d *deferred) Estimate(dims GraphDimensions, concurrency Concurrency) *MemoryTree {
	resolved := d.fn(dims, concurrency)
	tree := resolved.Estimate(dims, concurrency)
	tree.Description = d.desc
	return tree
}

// Setup defers construction of an Estimation until dims/concurrency are
// known.
func Setup(desc string, fn func(dims GraphDimensions, concurrency Concurrency) Estimation) Estimation {
	return &deferred{desc: desc, fn: fn}
}

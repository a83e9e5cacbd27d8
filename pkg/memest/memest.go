// Package memest implements the memory-estimation framework: a small DSL
// of composable estimators that predicts the RAM cost of a graph before
// (and after) it is loaded, without needing the graph itself.
//
// A MemoryRange is a [min, max] byte pair. An Estimation is a DSL node —
// fixed(desc, bytes|range), perNode(desc, fn), perThread(desc, fn),
// perGraphDimension(desc, fn), add/max composition, andThen transforms,
// and setup(desc, fn) for deferred construction once dimensions are
// known. Estimate(dims, concurrency) materializes the DSL into a
// MemoryTree of concrete byte ranges that can be rendered for reports or
// checked against a budget by Validate.
package memest

import "fmt"

// MemoryRange is a [Min, Max] byte pair. Combinators preserve
// non-negativity.
type MemoryRange struct {
	Min int64
	Max int64
}

// RangeOf returns a MemoryRange with Min == Max == bytes.
func RangeOf(bytes int64) MemoryRange {
	if bytes < 0 {
		bytes = 0
	}
	return MemoryRange{Min: bytes, Max: bytes}
}

// RangeBetween returns a MemoryRange clamped to non-negative bounds, with
// Max raised to Min if it was given smaller.
func RangeBetween(min, max int64) MemoryRange {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return MemoryRange{Min: min, Max: max}
}

// Add sums two ranges component-wise.
func (r MemoryRange) Add(o MemoryRange) MemoryRange {
	return MemoryRange{Min: r.Min + o.Min, Max: r.Max + o.Max}
}

// Union takes the component-wise maximum of two ranges.
func (r MemoryRange) Union(o MemoryRange) MemoryRange {
	return MemoryRange{Min: max64(r.Min, o.Min), Max: max64(r.Max, o.Max)}
}

// Times scales a range by a non-negative integer factor.
func (r MemoryRange) Times(n int64) MemoryRange {
	if n < 0 {
		n = 0
	}
	return MemoryRange{Min: r.Min * n, Max: r.Max * n}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// GraphDimensions captures the sizing inputs an estimation can be computed
// from: node/relationship counts plus the schema breadth that drives
// per-label and per-type overhead.
type GraphDimensions struct {
	NodeCount             int64
	RelationshipCount     int64
	AverageDegree         float64
	LabelCount            int
	RelationshipTypeCount int
	PropertyCount         int
}

// Concurrency is the thread count an estimation scales per-thread leaves
// by.
type Concurrency int

// MemoryTree is a materialized estimation: a concrete byte range at this
// node plus its materialized children, produced by Estimation.Estimate.
type MemoryTree struct {
	Description string
	Range       MemoryRange
	Children    []*MemoryTree
}

// MemoryUsage returns this node's aggregated range.
func (t *MemoryTree) MemoryUsage() MemoryRange { return t.Range }

// Render emits an indented, human-readable tree in the engine's
// structured-log-line style.
func (t *MemoryTree) Render() string {
	var buf []byte
	buf = t.render(buf, 0)
	return string(buf)
}

func (t *MemoryTree) render(buf []byte, depth int) []byte {
	for i := 0; i < depth; i++ {
		buf = append(buf, "  "...)
	}
	line := fmt.Sprintf("%s: %d..%d bytes\n", t.Description, t.Range.Min, t.Range.Max)
	buf = append(buf, line...)
	for _, c := range t.Children {
		buf = c.render(buf, depth+1)
	}
	return buf
}

// RenderTreeJSON is the JSON-tree shape of a materialized MemoryTree, as
// produced by RenderJSON.
type RenderTreeJSON struct {
	Description string            `json:"description"`
	Min         int64             `json:"min"`
	Max         int64             `json:"max"`
	Children    []*RenderTreeJSON `json:"children,omitempty"`
}

// RenderJSON converts the materialized tree into its JSON shape.
func (t *MemoryTree) RenderJSON() *RenderTreeJSON {
	out := &RenderTreeJSON{Description: t.Description, Min: t.Range.Min, Max: t.Range.Max}
	for _, c := range t.Children {
		out.Children = append(out.Children, c.RenderJSON())
	}
	return out
}

// Estimation is the unmaterialized DSL node: data describing how to
// compute a range once dimensions and concurrency are known, not a bare
// closure, so a tree of Estimations can be inspected before Estimate is
// called.
type Estimation interface {
	// Description names this node for rendering.
	Description() string

	// Estimate materializes this node (and its children) into a
	// MemoryTree given concrete dimensions and concurrency.
	Estimate(dims GraphDimensions, concurrency Concurrency) *MemoryTree
}

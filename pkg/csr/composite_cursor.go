package csr

import "container/heap"

// CompositeAdjacencyCursor merges k underlying cursors by minimum-target
// priority, presenting their union as a single globally sorted stream —
// used when a source's relationships are split across several typed
// topologies that must be walked as one.
type CompositeAdjacencyCursor struct {
	members *cursorHeap
}

// NewCompositeAdjacencyCursor builds a composite over already-positioned
// member cursors (e.g. from AdjacencyCursor(nil, source) on each typed
// topology).
func NewCompositeAdjacencyCursor(members ...*Cursor) *CompositeAdjacencyCursor {
	h := make(cursorHeap, 0, len(members))
	for _, m := range members {
		if m.HasNext() {
			h = append(h, m)
		}
	}
	heap.Init(&h)
	return &CompositeAdjacencyCursor{members: &h}
}

// HasNext reports whether any member cursor still has targets.
func (c *CompositeAdjacencyCursor) HasNext() bool {
	return c.members.Len() > 0
}

// Next pops the head cursor (smallest peeked target), emits its next
// target, and re-heaps it if it still has more.
func (c *CompositeAdjacencyCursor) Next() int64 {
	head := (*c.members)[0]
	v := head.Next()
	if head.HasNext() {
		heap.Fix(c.members, 0)
	} else {
		heap.Pop(c.members)
	}
	return v
}

// Peek returns the globally smallest next target without consuming it.
func (c *CompositeAdjacencyCursor) Peek() int64 {
	if c.members.Len() == 0 {
		return NotFound
	}
	return (*c.members)[0].Peek()
}

// Advance seeks every member cursor to its first target >= target, drops
// any that are exhausted, then consumes and returns the new global
// minimum (NotFound if none remains). Only the emitted match is
// consumed, so a subsequent Next continues the merged stream after it.
func (c *CompositeAdjacencyCursor) Advance(target int64) int64 {
	c.applyToMembers(func(m *Cursor) { m.seek(target) })
	if !c.HasNext() {
		return NotFound
	}
	return c.Next()
}

// SkipUntil seeks every member cursor past target (first strictly-greater
// entry), drops any that are exhausted, then consumes and returns the
// new global minimum (NotFound if none remains).
func (c *CompositeAdjacencyCursor) SkipUntil(target int64) int64 {
	c.applyToMembers(func(m *Cursor) { m.seekPast(target) })
	if !c.HasNext() {
		return NotFound
	}
	return c.Next()
}

func (c *CompositeAdjacencyCursor) applyToMembers(fn func(*Cursor)) {
	live := (*c.members)[:0]
	for _, m := range *c.members {
		fn(m)
		if m.HasNext() {
			live = append(live, m)
		}
	}
	*c.members = live
	heap.Init(c.members)
}

// cursorHeap is a min-heap over member cursors ordered by their next
// (peeked) target.
type cursorHeap []*Cursor

func (h cursorHeap) Len() int            { return len(h) }
func (h cursorHeap) Less(i, j int) bool  { return h[i].Peek() < h[j].Peek() }
func (h cursorHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cursorHeap) Push(x any)         { *h = append(*h, x.(*Cursor)) }
func (h *cursorHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

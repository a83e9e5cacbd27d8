package csr

// Cursor is a single-pass, single-thread iterator over one source node's
// ascending target list. It is not safe to share across goroutines — each
// traversing thread owns its own Cursor (or its own concurrent copy of the
// graph, see graphstore.HugeGraph.ConcurrentCopy).
type Cursor struct {
	list *CSRAdjacencyList
	pos  int64 // next unread position into list.targets
	end  int64 // exclusive end of this source's span
	size int64 // original degree, for Size()
}

// Init repositions the cursor at source's neighbour list, so a single
// Cursor value obtained via RawAdjacencyCursor can be reused across many
// sources without reallocating.
func (c *Cursor) Init(source int64) {
	c.pos = c.list.offsets[source]
	c.end = c.list.offsets[source+1]
	c.size = c.end - c.pos
}

// HasNext reports whether any target remains.
func (c *Cursor) HasNext() bool { return c.pos < c.end }

// Next returns the next target and advances past it.
func (c *Cursor) Next() int64 {
	v := c.list.targets[c.pos]
	c.pos++
	return v
}

// Peek returns the next target without consuming it. Returns NotFound if
// exhausted.
func (c *Cursor) Peek() int64 {
	if c.pos >= c.end {
		return NotFound
	}
	return c.list.targets[c.pos]
}

// seek repositions the cursor at the first remaining target >= target
// without consuming it. Targets within a source are ascending, so this
// is a forward-only binary probe.
func (c *Cursor) seek(target int64) {
	lo, hi := c.pos, c.end
	for lo < hi {
		mid := lo + (hi-lo)/2
		if c.list.targets[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	c.pos = lo
}

// seekPast repositions the cursor at the first remaining target strictly
// greater than target without consuming it.
func (c *Cursor) seekPast(target int64) {
	lo, hi := c.pos, c.end
	for lo < hi {
		mid := lo + (hi-lo)/2
		if c.list.targets[mid] <= target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	c.pos = lo
}

// Advance skips strictly-less-than targets, then consumes and returns the
// first target >= target, or NotFound if none remains. The match is
// consumed: a subsequent Next continues with the target after it.
func (c *Cursor) Advance(target int64) int64 {
	c.seek(target)
	if c.pos >= c.end {
		return NotFound
	}
	return c.Next()
}

// SkipUntil skips targets <= target, then consumes and returns the first
// strictly-greater target, or NotFound if none remains.
func (c *Cursor) SkipUntil(target int64) int64 {
	c.seekPast(target)
	if c.pos >= c.end {
		return NotFound
	}
	return c.Next()
}

// AdvanceBy skips n targets, then consumes and returns the target
// immediately after, or NotFound if fewer than n+1 targets remained.
func (c *Cursor) AdvanceBy(n int64) int64 {
	c.pos += n
	if c.pos >= c.end {
		c.pos = c.end
		return NotFound
	}
	return c.Next()
}

// Remaining returns the number of targets not yet consumed.
func (c *Cursor) Remaining() int64 { return c.end - c.pos }

// Size returns the original degree this cursor was initialized with.
func (c *Cursor) Size() int64 { return c.size }

// currentIndex returns the position just emitted by the most
// recent Next(), used to keep a PropertyCursor in lockstep.
func (c *Cursor) currentIndex() int64 { return c.pos - 1 }

// ForEachRelationship drives this cursor over source's targets, calling
// consumer(target) for each. Iteration for this source stops early if
// consumer returns false.
func ForEachRelationship(list *CSRAdjacencyList, source int64, consumer func(target int64) bool) {
	c := list.AdjacencyCursor(nil, source)
	for c.HasNext() {
		if !consumer(c.Next()) {
			return
		}
	}
}

// ForEachRelationshipWithProperty drives the adjacency cursor and a
// property cursor for channel k in lockstep, calling
// consumer(target, property) for each edge. fallback is returned for
// sources with no property channel configured.
func ForEachRelationshipWithProperty(list *CSRAdjacencyList, source int64, channel int, fallback float64, consumer func(target int64, property float64) bool) {
	c := list.AdjacencyCursor(nil, source)
	p := NewPropertyCursor(list, channel, fallback)
	p.Init(source)
	for c.HasNext() {
		target := c.Next()
		prop := p.NextLong()
		if !consumer(target, prop) {
			return
		}
	}
}

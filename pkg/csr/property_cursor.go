package csr

import "math"

// PropertyCursor walks a single per-edge property channel in lockstep with
// an AdjacencyCursor over the same source: each NextLong() call returns the
// property of the edge most recently emitted by the paired adjacency
// cursor's Next().
type PropertyCursor struct {
	list     *CSRAdjacencyList
	channel  int
	fallback float64
	pos      int64
	end      int64
}

// NewPropertyCursor builds a cursor over property channel k of list, using
// fallback when the channel doesn't exist (hasRelationshipProperty ==
// false) or the value stored is the missing sentinel.
func NewPropertyCursor(list *CSRAdjacencyList, channel int, fallback float64) *PropertyCursor {
	return &PropertyCursor{list: list, channel: channel, fallback: fallback}
}

// Init repositions the cursor over source's property span, which shares
// its offsets with the adjacency list (properties are laid out 1:1 with
// targets for the same source).
func (p *PropertyCursor) Init(source int64) {
	p.pos = p.list.offsets[source]
	p.end = p.list.offsets[source+1]
}

// NextLong returns the property for the edge just emitted by the paired
// adjacency cursor, or fallback if no property channel is configured or
// the stored value is the missing-value sentinel (NaN).
func (p *PropertyCursor) NextLong() float64 {
	values := p.list.propertyChannel(p.channel)
	if values == nil || p.pos >= p.end || p.pos >= int64(len(values)) {
		if p.pos < p.end {
			p.pos++
		}
		return p.fallback
	}
	v := values[p.pos]
	p.pos++
	if math.IsNaN(v) {
		return p.fallback
	}
	return v
}

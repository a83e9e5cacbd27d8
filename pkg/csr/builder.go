package csr

import (
	"math"
	"sort"
	"sync"

	"github.com/golang/snappy"

	"github.com/graphcore/corestore/pkg/termination"
)

// Builder accumulates per-source (target[, property]) pairs from
// concurrent relationship producers and assembles them into an immutable
// CSRAdjacencyList. Producers call Add (thread-safe); a single caller then
// calls Build once all producers have finished.
type Builder struct {
	mu         sync.Mutex
	bySource   map[int64][]int64
	properties map[int64][]float64
	hasProps   bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		bySource:   make(map[int64][]int64),
		properties: make(map[int64][]float64),
	}
}

// Add records one edge source->target without a property value (see
// AddWithProperty). Safe for concurrent use by many producer goroutines.
func (b *Builder) Add(source, target int64) {
	b.mu.Lock()
	b.bySource[source] = append(b.bySource[source], target)
	b.mu.Unlock()
}

// AddWithProperty is Add plus a parallel property value for the edge.
func (b *Builder) AddWithProperty(source, target int64, property float64) {
	b.mu.Lock()
	b.bySource[source] = append(b.bySource[source], target)
	b.properties[source] = append(b.properties[source], property)
	b.hasProps = true
	b.mu.Unlock()
}

// spillThreshold is the per-source buffer length at which Build stages a
// source's accumulated targets through snappy between the concurrent
// accumulation phase and the sort-and-flatten pass, so a handful of
// super-nodes don't hold raw buffers across the whole assembly.
const spillThreshold = 4096

// spilledBuffer is one source's compressed staging area: snappy-encoded
// targets, optionally snappy-encoded property bit patterns, and the
// element count needed to decode both.
type spilledBuffer struct {
	targets []byte
	props   []byte
	count   int
}

// spillCompress encodes a source's accumulated targets through snappy.
// Kept as a pure helper so it's independently testable for round-trip
// identity.
func spillCompress(targets []int64) []byte {
	raw := make([]byte, len(targets)*8)
	for i, t := range targets {
		u := uint64(t)
		for b := 0; b < 8; b++ {
			raw[i*8+b] = byte(u >> (8 * b))
		}
	}
	return snappy.Encode(nil, raw)
}

func spillDecompress(compressed []byte, count int) ([]int64, error) {
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, err
	}
	targets := make([]int64, count)
	for i := 0; i < count; i++ {
		var u uint64
		for b := 0; b < 8; b++ {
			u |= uint64(raw[i*8+b]) << (8 * b)
		}
		targets[i] = int64(u)
	}
	return targets, nil
}

// floatsToBits reinterprets property values as their IEEE-754 bit
// patterns so property buffers ride the same spill codec as targets.
func floatsToBits(props []float64) []int64 {
	bits := make([]int64, len(props))
	for i, p := range props {
		bits[i] = int64(math.Float64bits(p))
	}
	return bits
}

func bitsToFloats(bits []int64) []float64 {
	props := make([]float64, len(bits))
	for i, b := range bits {
		props[i] = math.Float64frombits(uint64(b))
	}
	return props
}

// Build sorts each source's targets ascending, optionally deduplicates
// them (when allowMultiGraph is false), and flattens everything into one
// CSRAdjacencyList spanning [0, nodeCount). The builder is consumed:
// large per-source buffers are moved into compressed staging during
// assembly, so Build must not be called twice on the same builder.
func (b *Builder) Build(nodeCount int64, allowMultiGraph bool) *CSRAdjacencyList {
	list, _ := b.BuildWithTermination(nodeCount, allowMultiGraph, termination.RunningTrue)
	return list
}

// BuildWithTermination is Build polling flag between sources; it returns
// termination.ErrTerminated and abandons the partial assembly when the
// flag clears.
func (b *Builder) BuildWithTermination(nodeCount int64, allowMultiGraph bool, flag termination.Flag) (*CSRAdjacencyList, error) {
	flag = termination.OrNil(flag)
	offsets := make([]int64, nodeCount+1)
	degrees := make([]int64, nodeCount)

	// Spill phase: sources past the threshold trade their raw buffers for
	// compressed staging, releasing the accumulation-phase memory before
	// the sort below starts allocating ordered copies.
	spilled := make(map[int64]spilledBuffer)
	for source, targets := range b.bySource {
		if !flag.Running() {
			return nil, termination.ErrTerminated
		}
		if len(targets) < spillThreshold {
			continue
		}
		buf := spilledBuffer{targets: spillCompress(targets), count: len(targets)}
		if props, ok := b.properties[source]; ok {
			buf.props = spillCompress(floatsToBits(props))
			delete(b.properties, source)
		}
		spilled[source] = buf
		delete(b.bySource, source)
	}

	sortedTargets := make(map[int64][]int64, len(b.bySource)+len(spilled))
	sortedProps := make(map[int64][]float64, len(b.properties))
	duplicateRetained := false

	stage := func(source int64, targets []int64, props []float64) {
		idx := make([]int, len(targets))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(i, j int) bool { return targets[idx[i]] < targets[idx[j]] })

		orderedTargets := make([]int64, 0, len(targets))
		var orderedProps []float64
		if b.hasProps {
			orderedProps = make([]float64, 0, len(targets))
		}

		var prev int64
		first := true
		for _, i := range idx {
			t := targets[i]
			if !first && t == prev {
				if !allowMultiGraph {
					continue
				}
				duplicateRetained = true
			}
			orderedTargets = append(orderedTargets, t)
			if orderedProps != nil {
				orderedProps = append(orderedProps, props[i])
			}
			prev = t
			first = false
		}

		sortedTargets[source] = orderedTargets
		if orderedProps != nil {
			sortedProps[source] = orderedProps
		}
		degrees[source] = int64(len(orderedTargets))
	}

	for source, targets := range b.bySource {
		if !flag.Running() {
			return nil, termination.ErrTerminated
		}
		stage(source, targets, b.properties[source])
	}
	for source, buf := range spilled {
		if !flag.Running() {
			return nil, termination.ErrTerminated
		}
		targets, err := spillDecompress(buf.targets, buf.count)
		if err != nil {
			return nil, err
		}
		var props []float64
		if buf.props != nil {
			bits, err := spillDecompress(buf.props, buf.count)
			if err != nil {
				return nil, err
			}
			props = bitsToFloats(bits)
		}
		stage(source, targets, props)
	}

	var total int64
	for s := int64(0); s < nodeCount; s++ {
		offsets[s] = total
		total += degrees[s]
	}
	offsets[nodeCount] = total

	flatTargets := make([]int64, total)
	var flatProps []float64
	if b.hasProps {
		flatProps = make([]float64, total)
	}
	for s := int64(0); s < nodeCount; s++ {
		targets := sortedTargets[s]
		copy(flatTargets[offsets[s]:offsets[s+1]], targets)
		if flatProps != nil {
			copy(flatProps[offsets[s]:offsets[s+1]], sortedProps[s])
		}
	}

	var properties [][]float64
	if flatProps != nil {
		properties = [][]float64{flatProps}
	}

	return NewCSRAdjacencyList(offsets, flatTargets, properties, duplicateRetained), nil
}

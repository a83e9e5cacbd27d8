package idmap

import (
	"sync"
	"sync/atomic"

	"github.com/graphcore/corestore/pkg/collections"
)

// Builder accumulates original node ids from concurrent import producers
// and, once every producer has finished, assembles the final IdMap.
// Allocate is thread-safe; the Allocator handle it returns is not.
type Builder struct {
	reserved int64 // atomically incremented; next free internal id

	growMu sync.Mutex
	store  *collections.HugeLongArray // internal -> original, grown under growMu
}

// NewBuilder creates an empty builder.
func NewBuilder() (*Builder, error) {
	store, err := collections.NewHugeLongArray(0)
	if err != nil {
		return nil, err
	}
	return &Builder{store: store}, nil
}

// Allocate reserves exactly batchLength internal ids for the caller and
// returns a handle to fill them. A batchLength of 0 is a no-op that
// returns a handle whose Insert accepts only an empty slice.
func (b *Builder) Allocate(batchLength int64) (*Allocator, error) {
	if batchLength < 0 {
		return nil, ErrInvalidBatch
	}
	if batchLength == 0 {
		return &Allocator{builder: b, start: 0, length: 0}, nil
	}

	start := atomic.AddInt64(&b.reserved, batchLength) - batchLength
	target := int(start + batchLength)

	b.growMu.Lock()
	if b.store.Size() < target {
		if err := b.store.GrowTo(target); err != nil {
			b.growMu.Unlock()
			return nil, err
		}
	}
	b.growMu.Unlock()

	return &Allocator{builder: b, start: start, length: batchLength}, nil
}

// Allocator is a non-thread-safe handle over a reserved, contiguous span
// of the final internal-id space. Each producer goroutine must obtain its
// own Allocator via Builder.Allocate.
type Allocator struct {
	builder *Builder
	start   int64
	length  int64
}

// Insert fills the reserved span with originalIds, whose length must
// equal the batch length requested from Allocate.
func (a *Allocator) Insert(originalIds []int64) error {
	if int64(len(originalIds)) != a.length {
		return ErrInvalidBatch
	}
	for i, original := range originalIds {
		a.builder.store.Set(int(a.start)+i, original)
	}
	return nil
}

// LabelRemapper is handed to a label-information builder so it can
// translate (label, originalId) pairs recorded during import into
// (label, internalId) pairs, once the original->internal mapping is
// final. It returns NotFound for an original id never inserted.
type LabelRemapper func(original int64) int64

// Build finalizes the original->internal map and hands the resulting
// remapping function to remapLabels (if non-nil) so label information can
// be assembled against internal ids. highestOriginalId and concurrency are
// accepted for parity with the producing pipeline's sizing decisions;
// concurrency does not change the single-threaded assembly below since it
// runs once, after every producer has already finished.
func (b *Builder) Build(remapLabels func(remap LabelRemapper), highestOriginalId int64, concurrency int) *ArrayIdMap {
	size := int(atomic.LoadInt64(&b.reserved))
	internalToOriginal := make([]int64, size)
	for i := 0; i < size; i++ {
		internalToOriginal[i] = b.store.Get(i)
	}

	idMap := NewArrayIdMap(internalToOriginal)

	if remapLabels != nil {
		remapLabels(idMap.ToMappedNodeId)
	}

	return idMap
}

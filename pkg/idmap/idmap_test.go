package idmap

import (
	"sync"
	"testing"
)

func TestBuilderSingleThreadedRoundTrip(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatal(err)
	}
	alloc, err := b.Allocate(3)
	if err != nil {
		t.Fatal(err)
	}
	if err := alloc.Insert([]int64{100, 200, 300}); err != nil {
		t.Fatal(err)
	}

	idMap := b.Build(nil, 300, 1)
	if idMap.NodeCount() != 3 {
		t.Fatalf("NodeCount() = %d, want 3", idMap.NodeCount())
	}
	for internal, original := range []int64{100, 200, 300} {
		if got := idMap.ToMappedNodeId(original); got != int64(internal) {
			t.Fatalf("ToMappedNodeId(%d) = %d, want %d", original, got, internal)
		}
	}
}

func TestIdMapRoundTripLaw(t *testing.T) {
	b, _ := NewBuilder()
	alloc, _ := b.Allocate(5)
	_ = alloc.Insert([]int64{7, 3, 99, 1, 42})
	idMap := b.Build(nil, 99, 1)

	for v := int64(0); v < idMap.NodeCount(); v++ {
		original := idMap.ToOriginalNodeId(v)
		if got := idMap.ToMappedNodeId(original); got != v {
			t.Fatalf("round trip failed for internal %d: got %d back", v, got)
		}
	}
}

func TestAllocateZeroLengthIsNoOp(t *testing.T) {
	b, _ := NewBuilder()
	alloc, err := b.Allocate(0)
	if err != nil {
		t.Fatal(err)
	}
	if err := alloc.Insert(nil); err != nil {
		t.Fatal(err)
	}
	idMap := b.Build(nil, -1, 1)
	if idMap.NodeCount() != 0 {
		t.Fatalf("NodeCount() = %d, want 0", idMap.NodeCount())
	}
}

func TestInsertWrongLengthFails(t *testing.T) {
	b, _ := NewBuilder()
	alloc, _ := b.Allocate(3)
	if err := alloc.Insert([]int64{1, 2}); err != ErrInvalidBatch {
		t.Fatalf("expected ErrInvalidBatch, got %v", err)
	}
}

func TestUnknownOriginalIsNotFound(t *testing.T) {
	b, _ := NewBuilder()
	alloc, _ := b.Allocate(2)
	_ = alloc.Insert([]int64{10, 20})
	idMap := b.Build(nil, 20, 1)
	if got := idMap.ToMappedNodeId(999); got != NotFound {
		t.Fatalf("ToMappedNodeId(999) = %d, want NotFound", got)
	}
}

func TestConcurrentProducersGetDisjointBatches(t *testing.T) {
	b, _ := NewBuilder()
	const producers = 20
	const batch = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			alloc, err := b.Allocate(batch)
			if err != nil {
				t.Error(err)
				return
			}
			ids := make([]int64, batch)
			for i := range ids {
				ids[i] = int64(p*batch + i)
			}
			if err := alloc.Insert(ids); err != nil {
				t.Error(err)
			}
		}(p)
	}
	wg.Wait()

	idMap := b.Build(nil, producers*batch-1, 4)
	if idMap.NodeCount() != producers*batch {
		t.Fatalf("NodeCount() = %d, want %d", idMap.NodeCount(), producers*batch)
	}
	// Every original id in [0, producers*batch) must have been inserted
	// exactly once and be retrievable.
	seen := make(map[int64]bool)
	for internal := int64(0); internal < idMap.NodeCount(); internal++ {
		original := idMap.ToOriginalNodeId(internal)
		if seen[original] {
			t.Fatalf("original id %d inserted more than once", original)
		}
		seen[original] = true
		if idMap.ToMappedNodeId(original) != internal {
			t.Fatalf("mismatch for original %d", original)
		}
	}
}

func TestHighLimitIdMapComposesStages(t *testing.T) {
	outerBuilder, _ := NewBuilder()
	outerAlloc, _ := outerBuilder.Allocate(2)
	_ = outerAlloc.Insert([]int64{0, 1}) // intermediate -> internal, identity here
	root := outerBuilder.Build(nil, 1, 1)

	innerBuilder, _ := NewBuilder()
	innerAlloc, _ := innerBuilder.Allocate(2)
	_ = innerAlloc.Insert([]int64{5_000_000_000, 8_000_000_000}) // original -> intermediate index
	originalToIntermediate := innerBuilder.Build(nil, 8_000_000_000, 1)

	high := NewHighLimitIdMap(originalToIntermediate, root)

	if got := high.ToMappedNodeId(5_000_000_000); got != 0 {
		t.Fatalf("ToMappedNodeId = %d, want 0", got)
	}
	if got := high.ToOriginalNodeId(1); got != 8_000_000_000 {
		t.Fatalf("ToOriginalNodeId(1) = %d, want 8000000000", got)
	}
	if high.RootIdMap() != IdMap(root) {
		t.Fatal("RootIdMap() should return the inner map")
	}
}

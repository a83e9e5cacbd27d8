package collections

import "testing"

func TestContainsAndIndexOfBoundaries(t *testing.T) {
	arr := []int64{1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25, 27, 29}
	length := 15

	if !ContainsSorted(arr, length, 15) {
		t.Fatal("expected 15 to be found")
	}
	if ContainsSorted(arr, length, 2) {
		t.Fatal("expected 2 to be absent")
	}
	if got := IndexOf(arr, length, 29); got != 14 {
		t.Fatalf("IndexOf(29) = %d, want 14", got)
	}
	if got := IndexOf(arr, length, 30); got != -16 {
		t.Fatalf("IndexOf(30) = %d, want -16", got)
	}
}

func TestFirstOfLastOfDuplicates(t *testing.T) {
	arr := []int64{1, 2, 2, 2, 3, 4, 4, 5, 5, 5, 5, 6}

	if got := FirstOf(arr, 0, 12, 2); got != 1 {
		t.Fatalf("FirstOf(2) = %d, want 1", got)
	}
	if got := LastOf(arr, 0, 12, 2); got != 3 {
		t.Fatalf("LastOf(2) = %d, want 3", got)
	}
	if got := FirstOf(arr, 0, 12, 5); got != 7 {
		t.Fatalf("FirstOf(5) = %d, want 7", got)
	}
	if got := LastOf(arr, 0, 12, 5); got != 10 {
		t.Fatalf("LastOf(5) = %d, want 10", got)
	}
	if got := FirstOf(arr, 0, 12, 0); got >= 0 {
		t.Fatalf("FirstOf(0) = %d, want negative", got)
	}
}

func TestRangeBucket(t *testing.T) {
	buckets := []int64{10, 20, 30, 40, 50}

	cases := []struct {
		id   int64
		want int
	}{
		{5, -1},
		{10, 0},
		{25, 1},
		{60, 4},
	}
	for _, c := range cases {
		if got := RangeBucket(c.id, buckets); got != c.want {
			t.Fatalf("RangeBucket(%d) = %d, want %d", c.id, got, c.want)
		}
	}
}

func TestHybridSearchAgreesAcrossSplitPoint(t *testing.T) {
	// Build a sorted array long enough to force the binary-search phase,
	// and check every index both below and above LinearSearchLimit.
	n := 500
	arr := make([]int64, n)
	for i := range arr {
		arr[i] = int64(i * 2)
	}
	for i := 0; i < n; i++ {
		key := int64(i * 2)
		if idx := IndexOf(arr, n, key); idx != i {
			t.Fatalf("IndexOf(%d) = %d, want %d", key, idx, i)
		}
		if !ContainsSorted(arr, n, key) {
			t.Fatalf("ContainsSorted(%d) = false, want true", key)
		}
		oddKey := key + 1
		if ContainsSorted(arr, n, oddKey) {
			t.Fatalf("ContainsSorted(%d) = true, want false", oddKey)
		}
	}
}

package collections

import (
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestGrowthAndSearchInvariants checks the algebraic laws from the
// storage-engine's testable-properties section using property-based
// testing rather than a handful of fixed cases.
func TestGrowthAndSearchInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("oversize never shrinks below the request", prop.ForAll(
		func(n int) bool {
			return Oversize(n, 8) >= n
		},
		gen.IntRange(0, 5_000_000),
	))

	properties.Property("oversize never more than doubles plus a small constant", prop.ForAll(
		func(n int) bool {
			if n == 0 {
				return true
			}
			return Oversize(n, 8) <= 2*n+32
		},
		gen.IntRange(1, 5_000_000),
	))

	properties.Property("containsSorted agrees with a linear scan", prop.ForAll(
		func(values []int64, key int64) bool {
			sorted := append([]int64(nil), values...)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

			want := false
			for _, v := range sorted {
				if v == key {
					want = true
					break
				}
			}
			return ContainsSorted(sorted, len(sorted), key) == want
		},
		gen.SliceOf(gen.Int64Range(-1000, 1000)),
		gen.Int64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}

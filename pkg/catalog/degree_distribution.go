package catalog

import (
	"math"
	"sort"

	"github.com/graphcore/corestore/pkg/termination"
)

// DegreeDistribution is precomputed analytics over a topology's
// per-node degrees, attachable to a catalog entry so dashboards and the
// catalog TUI don't need to recompute it on every view.
type DegreeDistribution struct {
	Min  int64
	Max  int64
	Mean float64
	P50  float64
	P90  float64
	P99  float64
}

// DegreeSource is the minimal surface ComputeDegreeDistribution needs
// from a topology: node count plus an O(1) per-node degree lookup.
// graphstore.HugeGraph satisfies this shape; csr.AdjacencyList has Degree
// but no NodeCount.
type DegreeSource interface {
	NodeCount() int64
	Degree(node int64) int64
}

// degreeScanPageSize is how many nodes the distribution pass scans
// between termination-flag polls.
const degreeScanPageSize = 4096

// ComputeDegreeDistribution makes one pass over every node's degree and
// returns Min/Max/Mean plus the 50th/90th/99th percentiles.
func ComputeDegreeDistribution(source DegreeSource) DegreeDistribution {
	d, _ := ComputeDegreeDistributionWithTermination(source, termination.RunningTrue)
	return d
}

// ComputeDegreeDistributionWithTermination is ComputeDegreeDistribution
// polling flag at page boundaries of the degree scan.
func ComputeDegreeDistributionWithTermination(source DegreeSource, flag termination.Flag) (DegreeDistribution, error) {
	flag = termination.OrNil(flag)
	nodeCount := source.NodeCount()
	if nodeCount == 0 {
		return DegreeDistribution{}, nil
	}

	degrees := make([]int64, nodeCount)
	var sum int64
	min, max := int64(math.MaxInt64), int64(0)
	for i := int64(0); i < nodeCount; i++ {
		if i%degreeScanPageSize == 0 && !flag.Running() {
			return DegreeDistribution{}, termination.ErrTerminated
		}
		d := source.Degree(i)
		degrees[i] = d
		sum += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}

	sort.Slice(degrees, func(i, j int) bool { return degrees[i] < degrees[j] })

	return DegreeDistribution{
		Min:  min,
		Max:  max,
		Mean: float64(sum) / float64(nodeCount),
		P50:  percentile(degrees, 0.50),
		P90:  percentile(degrees, 0.90),
		P99:  percentile(degrees, 0.99),
	}, nil
}

// percentile indexes into a pre-sorted ascending slice using nearest-rank.
func percentile(sorted []int64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return float64(sorted[idx])
}

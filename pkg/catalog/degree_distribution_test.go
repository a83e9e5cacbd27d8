package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphcore/corestore/pkg/termination"
)

func TestComputeDegreeDistributionTermination(t *testing.T) {
	flag := termination.NewStopFlag()
	flag.Stop()

	_, err := ComputeDegreeDistributionWithTermination(fixedDegreeSource{degrees: []int64{1, 2}}, flag)
	require.ErrorIs(t, err, termination.ErrTerminated)
}

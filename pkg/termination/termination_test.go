package termination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunningTrueNeverStops(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.True(t, RunningTrue.Running())
	}
}

func TestStopFlag(t *testing.T) {
	f := NewStopFlag()
	assert.True(t, f.Running())
	f.Stop()
	assert.False(t, f.Running())
	f.Stop()
	assert.False(t, f.Running())
}

func TestOrNil(t *testing.T) {
	assert.True(t, OrNil(nil).Running())

	f := NewStopFlag()
	f.Stop()
	assert.False(t, OrNil(f).Running())
}

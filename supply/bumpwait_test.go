package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBumpWaitMap_SetAndGet(t *testing.T) {
	m := NewBumpWaitMap()
	index := [][3]int32{{5, 1, 10}}
	times := []float64{477.5}
	require.NoError(t, m.SetBumpWait(index, times))

	got, ok := m.Get(BumpWaitKey{TripID: 5, Sequence: 1, StopID: 10})
	require.True(t, ok)
	assert.Equal(t, 477.5, got)

	_, ok = m.Get(BumpWaitKey{TripID: 6, Sequence: 1, StopID: 10})
	assert.False(t, ok)
}

func TestBumpWaitMap_RejectsMismatch(t *testing.T) {
	m := NewBumpWaitMap()
	err := m.SetBumpWait([][3]int32{{5, 1, 10}}, []float64{})
	assert.Error(t, err)
}

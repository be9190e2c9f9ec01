package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTripStopTimes_DenseSequence(t *testing.T) {
	index := [][3]int32{
		{1, 1, 10},
		{1, 2, 11},
		{1, 3, 12},
	}
	times := [][2]float64{
		{0, 480},
		{485, 486},
		{490, 0},
	}
	stopTimes, err := NewTripStopTimes(index, times)
	require.NoError(t, err)

	visits, ok := stopTimes.Trip(TripID(1))
	require.True(t, ok)
	require.Len(t, visits, 3)
	assert.Equal(t, StopID(10), visits[0].StopID)
	assert.Equal(t, StopID(12), visits[2].StopID)

	atStop := stopTimes.AtStop(StopID(11))
	require.Len(t, atStop, 1)
	assert.Equal(t, 2, atStop[0].Sequence)
}

func TestNewTripStopTimes_RejectsGap(t *testing.T) {
	index := [][3]int32{
		{1, 1, 10},
		{1, 3, 12},
	}
	times := [][2]float64{
		{0, 480},
		{490, 0},
	}
	_, err := NewTripStopTimes(index, times)
	assert.Error(t, err)
}

func TestNewTripStopTimes_RejectsRowCountMismatch(t *testing.T) {
	index := [][3]int32{{1, 1, 10}}
	times := [][2]float64{}
	_, err := NewTripStopTimes(index, times)
	assert.Error(t, err)
}

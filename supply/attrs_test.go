package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessEgressStore_LinksAndCoverage(t *testing.T) {
	store := NewAccessEgressStore()
	assert.False(t, store.HasTAZ(TAZID(1)))

	store.Add(TAZID(1), SupplyModeID(0), StopID(10), AttrBundle{"time_min": 3})
	store.Add(TAZID(1), SupplyModeID(0), StopID(11), AttrBundle{"time_min": 5})

	assert.True(t, store.HasTAZ(TAZID(1)))
	links := store.Links(TAZID(1))
	assert.Len(t, links, 2)
}

func TestAccessEgressStore_RequiresTimeMin(t *testing.T) {
	store := NewAccessEgressStore()
	assert.Panics(t, func() {
		store.Add(TAZID(1), SupplyModeID(0), StopID(10), AttrBundle{"dist": 1})
	})
}

func TestTransferStore_ForwardAndReverse(t *testing.T) {
	store := NewTransferStore()
	store.Add(StopID(1), StopID(2), AttrBundle{"time_min": 4})

	fwd := store.Forward(StopID(1))
	require.Contains(t, fwd, StopID(2))
	assert.Equal(t, 4.0, fwd[StopID(2)]["time_min"])

	rev := store.Reverse(StopID(2))
	require.Contains(t, rev, StopID(1))
}

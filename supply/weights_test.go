package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightTable_LookupAndDiscovery(t *testing.T) {
	table := NewWeightTable()
	key := WeightKey{UserClass: "all", ModeType: TRANSIT, ModeName: "local_bus"}
	table.Add(key, SupplyModeID(2), WeightVector{"in_vehicle_time_min": 1.0, "fare": -0.02})

	assert.True(t, table.HasKey(key))
	weights, ok := table.Lookup(key, SupplyModeID(2))
	assert.True(t, ok)
	assert.Equal(t, 1.0, weights["in_vehicle_time_min"])
	assert.Equal(t, -0.02, weights["fare"])

	missing := WeightKey{UserClass: "all", ModeType: ACCESS, ModeName: "walk"}
	assert.False(t, table.HasKey(missing))
}

func TestDiscoverTransferSupplyMode(t *testing.T) {
	names := map[SupplyModeID]string{0: "walk", 1: "transfer", 2: "local_bus"}
	id, ok := DiscoverTransferSupplyMode(names)
	assert.True(t, ok)
	assert.Equal(t, SupplyModeID(1), id)

	_, ok = DiscoverTransferSupplyMode(map[SupplyModeID]string{0: "walk"})
	assert.False(t, ok)
}

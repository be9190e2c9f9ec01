package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttpr0/transit-pathfinder/supply"
)

func TestTally_LinearCombination(t *testing.T) {
	weights := supply.WeightVector{"in_vehicle_time_min": 1.0, "fare": -0.1}
	attrs := supply.AttrBundle{"in_vehicle_time_min": 12.0, "fare": 2.5}
	cost := Tally(weights, attrs)
	assert.InDelta(t, 12.0-0.25, cost, 1e-9)
}

func TestTally_MissingAttributeSkipsTerm(t *testing.T) {
	weights := supply.WeightVector{"in_vehicle_time_min": 1.0, "transfer_penalty": 5.0}
	attrs := supply.AttrBundle{"in_vehicle_time_min": 10.0}
	cost := Tally(weights, attrs)
	assert.Equal(t, 10.0, cost)
}

func TestTally_NegativeWeightsAllowed(t *testing.T) {
	weights := supply.WeightVector{"preferred_delay_min": -2.0}
	attrs := supply.AttrBundle{"preferred_delay_min": 3.0}
	cost := Tally(weights, attrs)
	assert.Equal(t, -6.0, cost)
}

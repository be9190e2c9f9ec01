package algo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttpr0/transit-pathfinder/supply"
)

func TestAddStopState_DeterministicKeepsOnlyCheapest(t *testing.T) {
	store := NewStopStateStore(true, false, 5, 0.5)
	queue := NewLabelStopQueue()
	stop := supply.StopID(1)

	accepted := store.AddStopState(stop, StopState{DeparrMode: supply.TRANSIT, TripID: 1, Cost: 10}, queue)
	assert.True(t, accepted)
	assert.Len(t, store.States(stop), 1)

	accepted = store.AddStopState(stop, StopState{DeparrMode: supply.TRANSIT, TripID: 2, Cost: 12}, queue)
	assert.False(t, accepted)
	assert.Equal(t, 10.0, store.States(stop)[0].Cost)

	accepted = store.AddStopState(stop, StopState{DeparrMode: supply.TRANSIT, TripID: 3, Cost: 4}, queue)
	assert.True(t, accepted)
	assert.Len(t, store.States(stop), 1)
	assert.Equal(t, 4.0, store.States(stop)[0].Cost)
}

func TestAddStopState_HyperpathSoftMaxCombine(t *testing.T) {
	sigma := 0.5
	store := NewStopStateStore(true, true, 100, sigma)
	queue := NewLabelStopQueue()
	stop := supply.StopID(2)

	store.AddStopState(stop, StopState{
		DeparrMode: supply.TRANSIT, TripID: 100, StopSuccPred: 3, SequenceSuccPred: 1,
		DeparrTime: 480, Cost: 10,
	}, queue)
	store.AddStopState(stop, StopState{
		DeparrMode: supply.TRANSIT, TripID: 200, StopSuccPred: 3, SequenceSuccPred: 1,
		DeparrTime: 480, Cost: 10,
	}, queue)

	hs, ok := store.Hyperpath(stop)
	assert.True(t, ok)
	expected := 10 - (1/sigma)*math.Log(2)
	assert.InDelta(t, expected, hs.SoftMaxCost, 1e-9)
	assert.Less(t, hs.SoftMaxCost, 10.0)
}

func TestAddStopState_HyperpathWindowEviction(t *testing.T) {
	sigma := 0.5
	store := NewStopStateStore(true, true, 5, sigma)
	queue := NewLabelStopQueue()
	stop := supply.StopID(3)

	store.AddStopState(stop, StopState{
		DeparrMode: supply.TRANSIT, TripID: 1, StopSuccPred: 9, SequenceSuccPred: 1,
		DeparrTime: 480, Cost: 10,
	}, queue)
	store.AddStopState(stop, StopState{
		DeparrMode: supply.TRANSIT, TripID: 2, StopSuccPred: 9, SequenceSuccPred: 2,
		DeparrTime: 490, Cost: 9,
	}, queue)

	states := store.States(stop)
	assert.Len(t, states, 1)
	assert.Equal(t, supply.TripID(2), states[0].TripID)

	hs, ok := store.Hyperpath(stop)
	assert.True(t, ok)
	assert.InDelta(t, 9.0, hs.SoftMaxCost, 1e-9)
	assert.Equal(t, 490.0, hs.LatestDepEarliestArr)
}

func TestNonwalkLabel_InfWhenNoTransitState(t *testing.T) {
	store := NewStopStateStore(true, true, 5, 0.5)
	assert.True(t, math.IsInf(store.NonwalkLabel(supply.StopID(1)), 1))
}

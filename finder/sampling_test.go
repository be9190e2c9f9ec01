package finder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttpr0/transit-pathfinder/algo"
	"github.com/ttpr0/transit-pathfinder/supply"
)

// Two states costing 5 and 6 under dispersion 1 should be re-picked
// with frequency converging to e^-5/(e^-5+e^-6) ~= 0.7311 as the number
// of draws grows, matching the closed-form soft-max choice
// probability.
func TestSampleStateConvergesToClosedFormProbability(t *testing.T) {
	candidates := []algo.StopState{
		{Cost: 5, DeparrMode: supply.TRANSIT, TripID: 1},
		{Cost: 6, DeparrMode: supply.TRANSIT, TripID: 2},
	}
	rng := newPathRNG("convergence-check")

	const draws = 20000
	firstPicked := 0
	for i := 0; i < draws; i++ {
		chosen, ok := sampleState(candidates, 0, 1.0, rng)
		if !ok {
			t.Fatalf("draw %d: expected a choice, got none", i)
		}
		if chosen.TripID == 1 {
			firstPicked++
		}
	}

	want := math.Exp(-5) / (math.Exp(-5) + math.Exp(-6))
	got := float64(firstPicked) / draws
	assert.InDelta(t, want, got, 0.01)
}

func TestSampleStateWithBaselineNormalizesAgainstAggregate(t *testing.T) {
	candidates := []algo.StopState{{Cost: 10, DeparrMode: supply.TRANSIT}}
	rng := newPathRNG("baseline-check")
	chosen, ok := sampleState(candidates, 10, 1.0, rng)
	require := assert.New(t)
	require.True(ok)
	require.Equal(10.0, chosen.Cost)
}

func TestSampleStateReturnsFalseWhenAllPruned(t *testing.T) {
	candidates := []algo.StopState{{Cost: 1000}}
	rng := newPathRNG("prune-check")
	// with sigma huge, exp(-sigma*1000) underflows to exactly zero
	_, ok := sampleState(candidates, 0, 1e6, rng)
	assert.False(t, ok)
}

func TestIsAdmissibleNextExcludesWalkAfterWalk(t *testing.T) {
	assert.False(t, isAdmissibleNext(
		algo.StopState{DeparrMode: supply.TRANSFER, DeparrTime: 10},
		supply.ACCESS, 0, 5, true,
	))
}

func TestIsAdmissibleNextExcludesSameTripTwice(t *testing.T) {
	assert.False(t, isAdmissibleNext(
		algo.StopState{DeparrMode: supply.TRANSIT, TripID: 7, DeparrTime: 10},
		supply.TRANSIT, 7, 5, true,
	))
}

func TestIsAdmissibleNextEnforcesDirectionalMonotonicity(t *testing.T) {
	// outbound: a candidate departing before the previous arrival is
	// not admissible (time must move forward through the chain)
	assert.False(t, isAdmissibleNext(
		algo.StopState{DeparrMode: supply.TRANSIT, TripID: 2, DeparrTime: 4},
		supply.TRANSIT, 1, 5, true,
	))
	assert.True(t, isAdmissibleNext(
		algo.StopState{DeparrMode: supply.TRANSIT, TripID: 2, DeparrTime: 6},
		supply.TRANSIT, 1, 5, true,
	))
	// inbound: reversed — a candidate departing after the previous
	// arrival is not admissible
	assert.False(t, isAdmissibleNext(
		algo.StopState{DeparrMode: supply.TRANSIT, TripID: 2, DeparrTime: 6},
		supply.TRANSIT, 1, 5, false,
	))
}

func TestIsAdmissibleNextAllowsTerminalModeSelection(t *testing.T) {
	// the terminal mode is not excluded here; the caller breaks after
	// choosing it
	assert.True(t, isAdmissibleNext(
		algo.StopState{DeparrMode: supply.EGRESS, DeparrTime: 6},
		supply.TRANSIT, 1, 5, true,
	))
}

func TestChooseByCumulativeCoversFullRange(t *testing.T) {
	rng := newPathRNG("cumulative-check")
	weights := []int{3, 0, 7}
	counts := map[int]int{}
	for i := 0; i < 5000; i++ {
		idx, ok := chooseByCumulative(rng, weights, 10)
		if !ok {
			t.Fatal("expected a choice")
		}
		counts[idx]++
	}
	assert.Zero(t, counts[1], "zero-weight entry must never be chosen")
	assert.InDelta(t, 0.3, float64(counts[0])/5000, 0.03)
	assert.InDelta(t, 0.7, float64(counts[2])/5000, 0.03)
}

func TestChooseByCumulativeReturnsFalseOnZeroTotal(t *testing.T) {
	rng := newPathRNG("zero-total-check")
	_, ok := chooseByCumulative(rng, []int{0, 0}, 0)
	assert.False(t, ok)
}

package finder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/transit-pathfinder/supply"
)

// tracedTransferData builds the same board/transfer/board scenario
// TestFindPathDeterministicWithTransfer uses, so trace-enabled search
// exercises both the trip and transfer relaxation trace call sites.
func tracedTransferData(t *testing.T) *supply.Data {
	t.Helper()
	stopTimes, err := supply.NewTripStopTimes(
		[][3]int32{
			{int32(trip100), 1, int32(stop10)}, {int32(trip100), 2, int32(stop15)},
			{int32(trip200), 1, int32(stop16)}, {int32(trip200), 2, int32(stop20)},
		},
		[][2]float64{{480, 480}, {490, 490}, {495, 495}, {510, 510}},
	)
	require.NoError(t, err)

	access := supply.NewAccessEgressStore()
	access.Add(taz1, walkMode, stop10, supply.AttrBundle{"time_min": 5})
	access.Add(taz2, walkMode, stop20, supply.AttrBundle{"time_min": 5})

	transfers := supply.NewTransferStore()
	transfers.Add(stop15, stop16, supply.AttrBundle{"time_min": 5})

	tripInfo := supply.NewTripInfoStore(map[supply.TripID]supply.TripInfo{
		trip100: {SupplyMode: busMode, RouteID: "R1", Attrs: supply.AttrBundle{}},
		trip200: {SupplyMode: busMode, RouteID: "R2", Attrs: supply.AttrBundle{}},
	})

	return supply.NewData(
		map[string]supply.TripID{"100": trip100, "200": trip200},
		map[string]supply.StopID{"10": stop10, "15": stop15, "16": stop16, "20": stop20},
		map[string]string{},
		map[string]supply.SupplyModeID{"walk": walkMode, "bus": busMode, "transfer": transferMode},
		stopTimes, tripInfo, access, transfers, baseWeights(),
	)
}

// TestTraceDoesNotAffectComputedPath runs the same deterministic
// scenario with tracing on (writing real files) and off, and requires
// the returned Path and PathInfo to be identical either way: trace
// artifacts are advisory only.
func TestTraceDoesNotAffectComputedPath(t *testing.T) {
	spec := directTripSpec(515)
	spec.PathID = "trace-cmp"

	fOff := NewFinder(tracedTransferData(t), Config{TimeWindow: 30, BumpBuffer: 5})
	pathOff, infoOff, _, err := fOff.FindPath(spec)
	require.NoError(t, err)

	traceDir := t.TempDir()
	fOn := NewFinder(tracedTransferData(t), Config{TimeWindow: 30, BumpBuffer: 5, TraceDir: traceDir})
	tracedSpec := spec
	tracedSpec.Trace = true
	pathOn, infoOn, _, err := fOn.FindPath(tracedSpec)
	require.NoError(t, err)

	assert.Equal(t, pathOff, pathOn)
	assert.Equal(t, infoOff, infoOn)

	entries, err := os.ReadDir(traceDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	for _, want := range []string{"pathfinder_trace-cmp.log", "fasttrips_labels_ids_trace-cmp.csv", "fasttrips_pathset_trace-cmp.csv"} {
		info, err := os.Stat(filepath.Join(traceDir, want))
		require.NoError(t, err, "expected trace artifact %s", want)
		assert.Positive(t, info.Size())
	}
}

// TestTraceDoesNotAffectComputedHyperpath is the same equivalence check
// in hyperpath mode, where soft-max sampling draws on a path-id-seeded
// RNG rather than search order alone.
func TestTraceDoesNotAffectComputedHyperpath(t *testing.T) {
	spec := directTripSpec(515)
	spec.PathID = "trace-cmp-stoch"
	spec.Hyperpath = true

	cfg := Config{TimeWindow: 30, BumpBuffer: 5, StochPathsetSize: 20, StochDispersion: 1}

	fOff := NewFinder(tracedTransferData(t), cfg)
	pathOff, infoOff, _, err := fOff.FindPath(spec)
	require.NoError(t, err)

	traceDir := t.TempDir()
	cfgOn := cfg
	cfgOn.TraceDir = traceDir
	fOn := NewFinder(tracedTransferData(t), cfgOn)
	tracedSpec := spec
	tracedSpec.Trace = true
	pathOn, infoOn, _, err := fOn.FindPath(tracedSpec)
	require.NoError(t, err)

	assert.Equal(t, pathOff, pathOn)
	assert.Equal(t, infoOff, infoOn)
}

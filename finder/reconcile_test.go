package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttpr0/transit-pathfinder/supply"
)

func TestSpliceTransferGapsInsertsBetweenConsecutiveTransitLinks(t *testing.T) {
	links := []PathLink{
		{StopID: 1, DeparrMode: supply.ACCESS},
		{StopID: 10, DeparrMode: supply.TRANSIT, ArrdepTime: 490},
		{StopID: 15, DeparrMode: supply.TRANSIT, ArrdepTime: 510},
		{StopID: 20, DeparrMode: supply.EGRESS},
	}
	out := spliceTransferGaps(links)
	require := assert.New(t)
	require.Len(out, 5)
	require.Equal(supply.TRANSFER, out[2].DeparrMode)
	require.Zero(out[2].LinkTime)
	require.Equal(490.0, out[2].DeparrTime)
	require.Equal(490.0, out[2].ArrdepTime)
}

func TestSpliceTransferGapsNoInsertWhenTransferAlreadyPresent(t *testing.T) {
	links := []PathLink{
		{StopID: 10, DeparrMode: supply.TRANSIT},
		{StopID: 15, DeparrMode: supply.TRANSFER},
		{StopID: 16, DeparrMode: supply.TRANSIT},
	}
	out := spliceTransferGaps(links)
	assert.Len(t, out, 3)
}

func TestSpliceTransferGapsCountMatchesConsecutiveTransitPairs(t *testing.T) {
	links := []PathLink{
		{DeparrMode: supply.ACCESS},
		{DeparrMode: supply.TRANSIT},
		{DeparrMode: supply.TRANSIT},
		{DeparrMode: supply.TRANSIT},
		{DeparrMode: supply.EGRESS},
	}
	out := spliceTransferGaps(links)
	// 3 consecutive TRANSIT links have 2 adjoining boundaries, each gets
	// exactly one synthetic TRANSFER inserted.
	assert.Len(t, out, len(links)+2)
	inserted := 0
	for _, l := range out {
		if l.DeparrMode == supply.TRANSFER {
			inserted++
		}
	}
	assert.Equal(t, 2, inserted)
}

func TestOrderedChronologicallyReversesInboundOnly(t *testing.T) {
	links := []PathLink{{StopID: 1}, {StopID: 2}, {StopID: 3}}

	outboundOrder := orderedChronologically(links, true)
	assert.Equal(t, []supply.StopID{1, 2, 3}, stopIDs(outboundOrder))

	inboundOrder := orderedChronologically(links, false)
	assert.Equal(t, []supply.StopID{3, 2, 1}, stopIDs(inboundOrder))

	// the input slice itself must not be mutated by either call
	assert.Equal(t, []supply.StopID{1, 2, 3}, stopIDs(links))
}

func stopIDs(links []PathLink) []supply.StopID {
	out := make([]supply.StopID, len(links))
	for i, l := range links {
		out[i] = l.StopID
	}
	return out
}

func TestBoundaryAttrsClonesConfiguredRowByBoundaryShape(t *testing.T) {
	access := supply.NewAccessEgressStore()
	access.Add(1, walkMode, stop10, supply.AttrBundle{"time_min": 5, "fare": 2.5})
	access.Add(2, walkMode, stop20, supply.AttrBundle{"time_min": 6, "fare": 3.5})
	data := &supply.Data{AccessEgress: access}

	// outbound ACCESS is the terminal boundary: TAZ under StopID, stop
	// under StopSuccPred.
	outboundAccess := boundaryAttrs(data, 1, &PathLink{
		DeparrMode: supply.ACCESS, TripID: supply.TripID(walkMode),
		StopID: supply.StopID(1), StopSuccPred: int32(stop10), LinkTime: 99,
	}, true)
	assert.Equal(t, 5.0, outboundAccess["time_min"])
	assert.Equal(t, 2.5, outboundAccess["fare"])

	// inbound ACCESS is the initialization boundary: stop under StopID,
	// TAZ under StopSuccPred.
	inboundAccess := boundaryAttrs(data, 1, &PathLink{
		DeparrMode: supply.ACCESS, TripID: supply.TripID(walkMode),
		StopID: stop10, StopSuccPred: int32(1), LinkTime: 99,
	}, false)
	assert.Equal(t, 5.0, inboundAccess["time_min"])
	assert.Equal(t, 2.5, inboundAccess["fare"])

	// mutating the returned bundle must not corrupt the stored row.
	outboundAccess["fare"] = 999
	again := boundaryAttrs(data, 1, &PathLink{
		DeparrMode: supply.ACCESS, TripID: supply.TripID(walkMode),
		StopID: supply.StopID(1), StopSuccPred: int32(stop10), LinkTime: 99,
	}, true)
	assert.Equal(t, 2.5, again["fare"])

	// unconfigured triple falls back to the link's own time.
	fallback := boundaryAttrs(data, 99, &PathLink{
		DeparrMode: supply.ACCESS, TripID: supply.TripID(walkMode),
		StopID: supply.StopID(99), StopSuccPred: int32(stop10), LinkTime: 12,
	}, true)
	assert.Equal(t, 12.0, fallback["time_min"])
}

func TestTransferAttrsUsesForwardRowThenFallsBackToLinkTime(t *testing.T) {
	transfers := supply.NewTransferStore()
	transfers.Add(15, 16, supply.AttrBundle{"time_min": 7})
	data := &supply.Data{Transfers: transfers}

	found := transferAttrs(data, &PathLink{StopID: 15, StopSuccPred: 16, LinkTime: 2})
	assert.Equal(t, 7.0, found["time_min"])

	fallback := transferAttrs(data, &PathLink{StopID: 99, StopSuccPred: 98, LinkTime: 3})
	assert.Equal(t, 3.0, fallback["time_min"])

	sameStop := transferAttrs(data, &PathLink{StopID: 5, StopSuccPred: 5, LinkTime: 9})
	assert.Equal(t, 0.0, sameStop["time_min"])
}

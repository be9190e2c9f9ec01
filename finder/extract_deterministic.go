package finder

import (
	"github.com/ttpr0/transit-pathfinder/algo"
	"github.com/ttpr0/transit-pathfinder/supply"
)

// extractDeterministic chases stop_succpred back-pointers from the
// final TAZ's single StopState to the search origin TAZ, then fixes
// timestamps for chronological consistency.
//
// The terminal boundary link (built by relaxTerminal) and the
// initialization boundary link (built by initializeStopStates) carry
// opposite modes for a given direction — ACCESS/EGRESS respectively
// for outbound, EGRESS/ACCESS for inbound — so only the initialization
// mode ends the walk; stopping on either mode would truncate the chain
// after its very first, terminal-side link.
func (self *Finder) extractDeterministic(spec PathSpec, finalTAZ supply.TAZID, finalStopID supply.StopID, store *algo.StopStateStore) Path {
	initBoundaryMode := supply.EGRESS
	if !spec.Outbound {
		initBoundaryMode = supply.ACCESS
	}

	links := make([]PathLink, 0, 8)

	currentID := finalStopID
	for {
		states := store.States(currentID)
		if len(states) == 0 {
			break
		}
		state := states[0]
		links = append(links, stateToLink(currentID, state))
		if state.DeparrMode == initBoundaryMode {
			break
		}
		currentID = supply.StopID(state.StopSuccPred)
	}

	fixupChronology(links, spec.Outbound)
	return Path{Links: links}
}

func stateToLink(stopID supply.StopID, state algo.StopState) PathLink {
	return PathLink{
		StopID:           stopID,
		DeparrMode:       state.DeparrMode,
		TripID:           state.TripID,
		StopSuccPred:     state.StopSuccPred,
		Sequence:         state.Sequence,
		SequenceSuccPred: state.SequenceSuccPred,
		ReservedLabel:    state.Cost,
		DeparrTime:       state.DeparrTime,
		LinkTime:         state.LinkTime,
		LinkCost:         state.LinkCost,
		ArrdepTime:       state.ArrdepTime,
	}
}

// fixupChronology rewrites link times so that consecutive links form a
// chronologically consistent chain: the boundary access/egress link is
// pinned against its adjacent trip, transfers inherit the previous
// link's boundary time verbatim, and each trip's link_time is
// recomputed from the gap between boundary times so that wait time is
// carried by the trip rather than the transfer before it.
func fixupChronology(links []PathLink, outbound bool) {
	if len(links) < 2 {
		return
	}
	if outbound {
		links[0].ArrdepTime = links[1].DeparrTime
		links[0].DeparrTime = links[0].ArrdepTime - links[0].LinkTime
		for i := 1; i < len(links); i++ {
			switch links[i].DeparrMode {
			case supply.TRANSIT:
				links[i].LinkTime = links[i].ArrdepTime - links[i-1].ArrdepTime
			case supply.TRANSFER, supply.EGRESS:
				links[i].DeparrTime = links[i-1].ArrdepTime
			}
		}
		return
	}

	links[0].DeparrTime = links[1].ArrdepTime
	links[0].ArrdepTime = links[0].DeparrTime + links[0].LinkTime
	for i := 1; i < len(links); i++ {
		switch links[i].DeparrMode {
		case supply.TRANSIT:
			links[i].LinkTime = links[i-1].DeparrTime - links[i].DeparrTime
		case supply.TRANSFER, supply.ACCESS:
			links[i].ArrdepTime = links[i-1].DeparrTime
		}
	}
}

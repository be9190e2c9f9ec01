package finder

import (
	"math"

	"github.com/ttpr0/transit-pathfinder/algo"
	"github.com/ttpr0/transit-pathfinder/supply"
)

// relaxTerminal mirrors initialization but toward the final TAZ:
// ACCESS into the origin for outbound demand, EGRESS into the
// destination for inbound demand. It returns the StopID under which
// the final TAZ's states were recorded in store, ready for extraction.
func (self *Finder) relaxTerminal(spec PathSpec, dirFactor float64, finalTAZ supply.TAZID, store *algo.StopStateStore, queue *algo.LabelStopQueue, tr *trace) (supply.StopID, error) {
	modeType := supply.ACCESS
	if !spec.Outbound {
		modeType = supply.EGRESS
	}
	key := weightKey(spec, modeType)
	finalStopID := supply.StopID(finalTAZ)

	if !self.data.AccessEgress.HasTAZ(finalTAZ) {
		return 0, &NoAccessEgressError{TAZ: finalTAZ}
	}
	if !self.data.Weights.HasKey(key) {
		return 0, &MissingConfigError{UserClass: spec.UserClass, ModeType: modeType, ModeName: key.ModeName}
	}

	any := false
	for _, link := range self.data.AccessEgress.Links(finalTAZ) {
		connectingStop := link.StopID
		timeMin := link.Attrs["time_min"]

		weights, ok := self.data.Weights.Lookup(key, link.SupplyMode)
		if !ok {
			continue
		}

		if !spec.Hyperpath {
			states := store.States(connectingStop)
			if len(states) == 0 {
				continue
			}
			first := states[0]
			if first.DeparrMode == supply.TRANSFER || first.DeparrMode == supply.ACCESS || first.DeparrMode == supply.EGRESS {
				continue
			}
			deparrTime := first.DeparrTime - dirFactor*timeMin
			cost := first.Cost + timeMin

			if spec.Outbound {
				bumpKey := supply.BumpWaitKey{TripID: first.TripID, Sequence: first.Sequence, StopID: connectingStop}
				if bumpTime, ok := self.data.BumpWait.Get(bumpKey); ok {
					if deparrTime-self.config.TimeWindow > bumpTime {
						continue
					}
					cost += (first.DeparrTime - bumpTime) + self.config.BumpBuffer
					deparrTime = bumpTime - timeMin - self.config.BumpBuffer
				}
			}

			candidate := algo.StopState{
				DeparrTime: deparrTime, DeparrMode: modeType, TripID: supply.TripID(link.SupplyMode),
				StopSuccPred: int32(connectingStop), Sequence: -1, SequenceSuccPred: -1,
				LinkTime: timeMin, LinkCost: timeMin, Cost: cost, ArrdepTime: first.DeparrTime,
			}
			store.AddStopState(finalStopID, candidate, queue)
			any = true
		} else {
			nonwalk := store.NonwalkLabel(connectingStop)
			if math.IsInf(nonwalk, 1) {
				continue
			}
			hs, ok := store.Hyperpath(connectingStop)
			if !ok {
				continue
			}
			attrs := cloneAttrs(link.Attrs)
			attrs["preferred_delay_min"] = 0
			linkCost := algo.Tally(weights, attrs)
			cost := nonwalk + linkCost
			deparrTime := hs.LatestDepEarliestArr - dirFactor*timeMin

			candidate := algo.StopState{
				DeparrTime: deparrTime, DeparrMode: modeType, TripID: supply.TripID(link.SupplyMode),
				StopSuccPred: int32(connectingStop), Sequence: -1, SequenceSuccPred: -1,
				LinkTime: timeMin, LinkCost: linkCost, Cost: cost, ArrdepTime: hs.LatestDepEarliestArr,
			}
			store.AddStopState(finalStopID, candidate, queue)
			any = true
		}
		if spec.Trace {
			tr.Logf("terminal relax via stop=%d", connectingStop)
		}
	}
	if !any {
		return 0, &NoPathFoundError{Reason: "no labeled connecting stop reachable for terminal relaxation"}
	}
	return finalStopID, nil
}

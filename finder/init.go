package finder

import (
	"github.com/ttpr0/transit-pathfinder/algo"
	"github.com/ttpr0/transit-pathfinder/supply"
)

// initializeStopStates seeds the stop-state store from every
// access/egress link configured at the search origin TAZ: EGRESS links
// for outbound demand (the search runs backward from the destination),
// ACCESS links for inbound demand.
func (self *Finder) initializeStopStates(spec PathSpec, dirFactor float64, searchOriginTAZ supply.TAZID, store *algo.StopStateStore, queue *algo.LabelStopQueue, tr *trace) error {
	if !self.data.AccessEgress.HasTAZ(searchOriginTAZ) {
		return &NoAccessEgressError{TAZ: searchOriginTAZ}
	}

	modeType := supply.EGRESS
	if !spec.Outbound {
		modeType = supply.ACCESS
	}
	key := weightKey(spec, modeType)
	if !self.data.Weights.HasKey(key) {
		return &MissingConfigError{UserClass: spec.UserClass, ModeType: modeType, ModeName: key.ModeName}
	}

	for _, link := range self.data.AccessEgress.Links(searchOriginTAZ) {
		weights, ok := self.data.Weights.Lookup(key, link.SupplyMode)
		if !ok {
			continue
		}

		timeMin := link.Attrs["time_min"]
		deparrTime := spec.PreferredTime - dirFactor*timeMin

		var cost float64
		if spec.Hyperpath {
			attrs := cloneAttrs(link.Attrs)
			attrs["preferred_delay_min"] = 0
			cost = algo.Tally(weights, attrs)
		} else {
			cost = timeMin
		}

		candidate := algo.StopState{
			DeparrTime:       deparrTime,
			DeparrMode:       modeType,
			TripID:           supply.TripID(link.SupplyMode),
			StopSuccPred:     int32(searchOriginTAZ),
			Sequence:         -1,
			SequenceSuccPred: -1,
			LinkTime:         timeMin,
			LinkCost:         cost,
			Cost:             cost,
			LabelIteration:   0,
			ArrdepTime:       spec.PreferredTime,
		}
		store.AddStopState(link.StopID, candidate, queue)
		if spec.Trace {
			tr.Logf("init stop=%d mode=%s cost=%f", link.StopID, modeType, cost)
		}
	}
	return nil
}

package finder

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/ttpr0/transit-pathfinder/algo"
	"github.com/ttpr0/transit-pathfinder/supply"
)

const bumpSlackMinutes = 0.01

// relaxTrips relaxes the current stop via every scheduled trip passing
// through it within the admissible time window, considering every
// other stop-time position on that trip as a candidate board/alight
// point.
func (self *Finder) relaxTrips(spec PathSpec, dirFactor float64, stopID supply.StopID, iteration int, store *algo.StopStateStore, queue *algo.LabelStopQueue, tr *trace) {
	transitKey := weightKey(spec, supply.TRANSIT)

	var currentMode supply.DemandModeType
	var currentCost, envelopeTime float64
	var currentTripID supply.TripID
	var currentSequence int
	var lderTripID supply.TripID
	hyperpathActive := false

	if !spec.Hyperpath {
		states := store.States(stopID)
		if len(states) == 0 {
			return
		}
		current := states[0]
		currentMode = current.DeparrMode
		currentCost = current.Cost
		envelopeTime = current.DeparrTime
		currentTripID = current.TripID
		currentSequence = current.Sequence
	} else {
		hs, ok := store.Hyperpath(stopID)
		if !ok {
			return
		}
		hyperpathActive = true
		envelopeTime = hs.LatestDepEarliestArr
		lderTripID = hs.LderTripID
		currentCost = hs.SoftMaxCost
		currentMode = envelopeDefiningMode(store.States(stopID), lderTripID, envelopeTime)
		currentTripID = lderTripID
	}

	visits := self.data.StopTimes.AtStop(stopID)
	relevant := lo.Filter(visits, func(v supply.TripStopTime, _ int) bool {
		if spec.Outbound {
			return v.ArriveTime > envelopeTime-self.config.TimeWindow && v.ArriveTime <= envelopeTime
		}
		return v.DepartTime >= envelopeTime && v.DepartTime < envelopeTime+self.config.TimeWindow
	})

	for _, cts := range relevant {
		info, ok := self.data.TripInfo.Get(cts.TripID)
		if !ok {
			continue
		}
		tripWeights, ok := self.data.Weights.Lookup(transitKey, info.SupplyMode)
		if !ok {
			continue
		}
		if hyperpathActive && cts.TripID == lderTripID {
			continue
		}

		visitList, _ := self.data.StopTimes.Trip(cts.TripID)
		self.relaxTripCandidates(spec, dirFactor, stopID, iteration, cts, visitList, info, tripWeights, currentMode, currentCost, currentTripID, currentSequence, envelopeTime, hyperpathActive, store, queue, tr)
	}
}

func (self *Finder) relaxTripCandidates(
	spec PathSpec, dirFactor float64, stopID supply.StopID, iteration int,
	current supply.TripStopTime, visits []supply.TripStopTime, info supply.TripInfo, tripWeights supply.WeightVector,
	currentMode supply.DemandModeType, currentCost float64, currentTripID supply.TripID, currentSequence int, envelopeTime float64,
	hyperpathActive bool, store *algo.StopStateStore, queue *algo.LabelStopQueue, tr *trace,
) {
	arrdepAtCurrent := current.ArriveTime
	if !spec.Outbound {
		arrdepAtCurrent = current.DepartTime
	}

	var candidateRange []supply.TripStopTime
	if spec.Outbound {
		candidateRange = visits[:current.Sequence-1]
	} else {
		candidateRange = visits[current.Sequence:]
	}

	for _, cand := range candidateRange {
		if hyperpathActive {
			if states := store.States(cand.StopID); len(states) > 0 {
				if states[0].DeparrMode == supply.ACCESS || states[0].DeparrMode == supply.EGRESS {
					continue
				}
			}
		}

		waitTime := (envelopeTime - arrdepAtCurrent) * dirFactor

		deparrTime := cand.DepartTime
		if !spec.Outbound {
			deparrTime = cand.ArriveTime
		}
		inVehicleTime := (arrdepAtCurrent - deparrTime) * dirFactor
		for inVehicleTime < 0 {
			if spec.Outbound {
				deparrTime -= 1440
			} else {
				deparrTime += 1440
			}
			inVehicleTime = (arrdepAtCurrent - deparrTime) * dirFactor
		}

		var linkCost, cost float64
		if spec.Hyperpath {
			waitForTrip := waitTime
			if currentMode == supply.ACCESS || currentMode == supply.EGRESS {
				delayKey := weightKey(spec, currentMode)
				delayWeights, ok := self.data.Weights.Lookup(delayKey, supply.SupplyModeID(currentTripID))
				if ok {
					waitForTrip = algo.Tally(delayWeights, supply.AttrBundle{"time_min": 0, "preferred_delay_min": waitTime})
				}
			} else if currentMode == supply.TRANSIT {
				transferWeights, ok := self.data.Weights.Lookup(weightKey(spec, supply.TRANSFER), self.transferSupplyMode())
				if ok {
					linkCost += algo.Tally(transferWeights, supply.AttrBundle{"transfer_penalty": 1, "walk_time_min": 0})
				}
			}
			augmented := cloneAttrs(info.Attrs)
			augmented["in_vehicle_time_min"] = inVehicleTime
			augmented["wait_time_min"] = waitForTrip
			if currentMode == supply.ACCESS || currentMode == supply.EGRESS {
				augmented["transfer_penalty"] = 0
			} else {
				augmented["transfer_penalty"] = 1
			}
			linkCost += algo.Tally(tripWeights, augmented)
			cost = currentCost + linkCost
		} else {
			linkCost = inVehicleTime + waitTime
			cost = currentCost + linkCost

			// Outbound: this trip loop considers trips *before* the
			// current one, so capacity is checked against the
			// already-boarded (current) trip/sequence at stopID, and
			// the comparison time is this candidate trip's own
			// arrdep time. Inbound: the trip loop considers the next
			// trip, so capacity is checked against that candidate
			// trip/sequence, and the comparison time is the current
			// state's own deparr time.
			var bumpKey supply.BumpWaitKey
			var bumpCompareTime float64
			if spec.Outbound {
				bumpKey = supply.BumpWaitKey{TripID: currentTripID, Sequence: currentSequence, StopID: stopID}
				bumpCompareTime = arrdepAtCurrent
			} else {
				bumpKey = supply.BumpWaitKey{TripID: current.TripID, Sequence: current.Sequence, StopID: stopID}
				bumpCompareTime = envelopeTime
			}
			if bumpTime, ok := self.data.BumpWait.Get(bumpKey); ok {
				if currentTripID != current.TripID && bumpCompareTime+bumpSlackMinutes >= bumpTime {
					continue
				}
			}
		}

		candidateState := algo.StopState{
			DeparrTime:       deparrTime,
			DeparrMode:       supply.TRANSIT,
			TripID:           current.TripID,
			StopSuccPred:     int32(stopID),
			Sequence:         cand.Sequence,
			SequenceSuccPred: current.Sequence,
			LinkTime:         inVehicleTime + waitTime,
			LinkCost:         linkCost,
			Cost:             cost,
			LabelIteration:   iteration,
			ArrdepTime:       arrdepAtCurrent,
		}
		store.AddStopState(cand.StopID, candidateState, queue)
		if spec.Trace {
			tr.Logf("trip %d %d -> %d cost=%f attrs={%s}", current.TripID, stopID, cand.StopID, cost, formatAttrs(info.Attrs))
			tr.WriteLabelRow(iteration, "trip", strconv.Itoa(int(cand.StopID)), candidateState.DeparrTime,
				"transit", strconv.Itoa(int(current.TripID)), candidateState.LinkTime, linkCost, cost, "A")
		}
	}
}

// envelopeDefiningMode finds the mode of the state that currently
// defines a hyperpath stop's envelope time, used to decide the wait-vs
// -delay and transfer-penalty branches in trip relaxation.
func envelopeDefiningMode(states []algo.StopState, lderTripID supply.TripID, envelopeTime float64) supply.DemandModeType {
	for _, s := range states {
		if s.TripID == lderTripID && s.DeparrTime == envelopeTime {
			return s.DeparrMode
		}
	}
	if len(states) > 0 {
		return states[0].DeparrMode
	}
	return supply.TRANSIT
}

func cloneAttrs(attrs supply.AttrBundle) supply.AttrBundle {
	out := make(supply.AttrBundle, len(attrs)+3)
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

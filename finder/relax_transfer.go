package finder

import (
	"math"
	"strconv"

	"github.com/ttpr0/transit-pathfinder/algo"
	"github.com/ttpr0/transit-pathfinder/supply"
)

// transferSentinelTripID marks a TRANSFER StopState's trip_id field,
// which otherwise has no trip to encode.
const transferSentinelTripID supply.TripID = 1

// relaxTransfers relaxes the current stop via its transfer links,
// forbidding transfer-to-transfer chaining (deterministic) and
// transfers out of a walk-only stop (hyperpath).
func (self *Finder) relaxTransfers(spec PathSpec, dirFactor float64, stopID supply.StopID, iteration int, store *algo.StopStateStore, queue *algo.LabelStopQueue, tr *trace) {
	key := weightKey(spec, supply.TRANSFER)

	var currentLabel, envelopeTime float64
	var currentTripID supply.TripID
	var currentSequence int

	if !spec.Hyperpath {
		states := store.States(stopID)
		if len(states) == 0 {
			return
		}
		current := states[0]
		if current.DeparrMode == supply.ACCESS || current.DeparrMode == supply.EGRESS || current.DeparrMode == supply.TRANSFER {
			return
		}
		currentLabel = current.Cost
		envelopeTime = current.DeparrTime
		currentTripID = current.TripID
		currentSequence = current.Sequence
	} else {
		nonwalk := store.NonwalkLabel(stopID)
		if math.IsInf(nonwalk, 1) {
			return
		}
		hs, ok := store.Hyperpath(stopID)
		if !ok {
			return
		}
		currentLabel = nonwalk
		envelopeTime = hs.LatestDepEarliestArr
	}

	var neighbors map[supply.StopID]supply.AttrBundle
	if spec.Outbound {
		neighbors = self.data.Transfers.Reverse(stopID)
	} else {
		neighbors = self.data.Transfers.Forward(stopID)
	}

	for neighborStop, attrs := range neighbors {
		transferTime := attrs["time_min"]
		deparrTime := envelopeTime - dirFactor*transferTime

		var linkCost, cost float64
		if spec.Hyperpath {
			weights, ok := self.data.Weights.Lookup(key, self.transferSupplyMode())
			if ok {
				augmented := cloneAttrs(attrs)
				augmented["transfer_penalty"] = 1.0
				linkCost = algo.Tally(weights, augmented)
			}
			cost = currentLabel + linkCost
		} else {
			linkCost = transferTime
			cost = currentLabel + linkCost

			if spec.Outbound {
				bumpKey := supply.BumpWaitKey{TripID: currentTripID, Sequence: currentSequence, StopID: stopID}
				if bumpTime, ok := self.data.BumpWait.Get(bumpKey); ok {
					if deparrTime-self.config.TimeWindow > bumpTime {
						continue
					}
					cost += (envelopeTime - bumpTime) + self.config.BumpBuffer
					deparrTime = bumpTime - transferTime - self.config.BumpBuffer
				}
			}
		}

		candidate := algo.StopState{
			DeparrTime:       deparrTime,
			DeparrMode:       supply.TRANSFER,
			TripID:           transferSentinelTripID,
			StopSuccPred:     int32(stopID),
			Sequence:         -1,
			SequenceSuccPred: -1,
			LinkTime:         transferTime,
			LinkCost:         linkCost,
			Cost:             cost,
			LabelIteration:   iteration,
			ArrdepTime:       envelopeTime,
		}
		store.AddStopState(neighborStop, candidate, queue)
		if spec.Trace {
			tr.Logf("transfer %d -> %d cost=%f attrs={%s}", stopID, neighborStop, cost, formatAttrs(attrs))
			tr.WriteLabelRow(iteration, "transfer", strconv.Itoa(int(neighborStop)), deparrTime,
				"transfer", "-1", transferTime, linkCost, cost, "A")
		}
	}
}

// transferSupplyMode returns the supply mode discovered as "transfer"
// when loading the mode id map, defaulting to 0 if never set (which
// only happens if the loader never wired a transfer mode row).
func (self *Finder) transferSupplyMode() supply.SupplyModeID {
	mode, _ := self.data.Weights.TransferSupplyMode()
	return mode
}

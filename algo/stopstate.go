package algo

import (
	"math"

	"github.com/ttpr0/transit-pathfinder/supply"
)

// DeparrMode is the closed set of link kinds a StopState can carry.
type DeparrMode = supply.DemandModeType

const (
	ModeAccess   = supply.ACCESS
	ModeEgress   = supply.EGRESS
	ModeTransfer = supply.TRANSFER
	ModeTransit  = supply.TRANSIT
)

// StopState is one candidate labeled link arriving-at (inbound) or
// departing-from (outbound) a stop.
type StopState struct {
	DeparrTime      float64
	DeparrMode      DeparrMode
	TripID          supply.TripID // for TRANSIT the trip; otherwise encodes the supply mode
	StopSuccPred    int32         // neighboring stop/TAZ id the link connects to
	Sequence        int
	SequenceSuccPred int
	LinkTime        float64
	LinkCost        float64
	Cost            float64 // cumulative cost
	LabelIteration  int
	ArrdepTime      float64 // opposite-side time of the link
}

// HyperpathState is the per-stop soft-max aggregate kept only in
// hyperpath mode.
type HyperpathState struct {
	LatestDepEarliestArr float64
	LderTripID           supply.TripID
	SoftMaxCost          float64
	ProcessCount         int
}

// StopStateStore holds, per stop, the candidate labeled states plus (in
// hyperpath mode) the auxiliary envelope aggregate.
type StopStateStore struct {
	states     map[supply.StopID][]StopState
	hyperpaths map[supply.StopID]*HyperpathState
	dispersion float64
	timeWindow float64
	outbound   bool
	hyperpath  bool
}

func NewStopStateStore(outbound, hyperpath bool, timeWindow, dispersion float64) *StopStateStore {
	return &StopStateStore{
		states:     make(map[supply.StopID][]StopState),
		hyperpaths: make(map[supply.StopID]*HyperpathState),
		dispersion: dispersion,
		timeWindow: timeWindow,
		outbound:   outbound,
		hyperpath:  hyperpath,
	}
}

// States returns the kept candidate states for a stop, in no
// particular order beyond insertion.
func (self *StopStateStore) States(stop supply.StopID) []StopState {
	return self.states[stop]
}

// Hyperpath returns the stop's envelope aggregate, if any.
func (self *StopStateStore) Hyperpath(stop supply.StopID) (*HyperpathState, bool) {
	hs, ok := self.hyperpaths[stop]
	return hs, ok
}

// NonwalkLabel computes the soft-max cost over a stop's TRANSIT-mode
// states only, used by transfer relaxation to forbid chaining a
// transfer onto a walk-only stop. Returns +Inf if the stop has no
// TRANSIT state yet.
func (self *StopStateStore) NonwalkLabel(stop supply.StopID) float64 {
	states := self.states[stop]
	var sum float64
	found := false
	for _, s := range states {
		if s.DeparrMode != supply.TRANSIT {
			continue
		}
		sum += math.Exp(-self.dispersion * s.Cost)
		found = true
	}
	if !found || sum == 0 {
		return math.Inf(1)
	}
	return -(1.0 / self.dispersion) * math.Log(sum)
}

// AddStopState is the relaxation primitive: it inserts or improves a
// candidate state for a stop, pushing the resulting label onto the
// queue whenever the stop's outstanding label changed. Returns whether
// the stop changed and was pushed: in deterministic mode, whether the
// candidate was stored; in hyperpath mode, whether the window moved or
// the soft-max cost changed by more than 1e-4 (a candidate can be kept
// in the stop's list without either happening).
func (self *StopStateStore) AddStopState(stop supply.StopID, candidate StopState, queue *LabelStopQueue) bool {
	if !self.hyperpath {
		return self.addDeterministic(stop, candidate, queue)
	}
	return self.addHyperpath(stop, candidate, queue)
}

func (self *StopStateStore) addDeterministic(stop supply.StopID, candidate StopState, queue *LabelStopQueue) bool {
	existing := self.states[stop]
	if len(existing) == 0 {
		self.states[stop] = []StopState{candidate}
		queue.Push(candidate.Cost, stop)
		return true
	}
	if candidate.Cost < existing[0].Cost {
		self.states[stop] = []StopState{candidate}
		queue.Push(candidate.Cost, stop)
		return true
	}
	return false
}

func (self *StopStateStore) addHyperpath(stop supply.StopID, candidate StopState, queue *LabelStopQueue) bool {
	hs, ok := self.hyperpaths[stop]
	if !ok {
		hs = &HyperpathState{
			LatestDepEarliestArr: candidate.DeparrTime,
			LderTripID:           candidate.TripID,
			SoftMaxCost:          candidate.Cost,
			ProcessCount:         0,
		}
		self.hyperpaths[stop] = hs
		self.states[stop] = []StopState{candidate}
		queue.Push(hs.SoftMaxCost, stop)
		return true
	}

	extendsWindow := (self.outbound && candidate.DeparrTime > hs.LatestDepEarliestArr) ||
		(!self.outbound && candidate.DeparrTime < hs.LatestDepEarliestArr)

	withinWindow := math.Abs(candidate.DeparrTime-hs.LatestDepEarliestArr) <= self.timeWindow
	if !extendsWindow && !withinWindow {
		return false
	}

	stateChanged := false
	if extendsWindow {
		hs.LatestDepEarliestArr = candidate.DeparrTime
		hs.LderTripID = candidate.TripID
		stateChanged = true
	}

	kept := self.states[stop]
	replaced := false
	for i, s := range kept {
		if s.DeparrMode == candidate.DeparrMode && s.TripID == candidate.TripID &&
			s.StopSuccPred == candidate.StopSuccPred && s.SequenceSuccPred == candidate.SequenceSuccPred {
			kept[i] = candidate
			replaced = true
			break
		}
	}
	if !replaced {
		kept = append(kept, candidate)
	}

	pruned := kept[:0]
	for _, s := range kept {
		if math.Abs(s.DeparrTime-hs.LatestDepEarliestArr) <= self.timeWindow {
			pruned = append(pruned, s)
		}
	}
	self.states[stop] = pruned

	var sum float64
	for _, s := range pruned {
		sum += math.Exp(-self.dispersion * s.Cost)
	}
	var newSoftMax float64
	if sum > 0 {
		newSoftMax = -(1.0 / self.dispersion) * math.Log(sum)
	} else {
		newSoftMax = math.Inf(1)
	}
	if math.Abs(newSoftMax-hs.SoftMaxCost) > 1e-4 {
		hs.SoftMaxCost = newSoftMax
		stateChanged = true
	}

	if stateChanged {
		queue.Push(hs.SoftMaxCost, stop)
	}
	return stateChanged
}

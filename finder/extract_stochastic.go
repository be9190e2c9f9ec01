package finder

import (
	"math"
	"math/rand"

	"github.com/ttpr0/transit-pathfinder/algo"
	"github.com/ttpr0/transit-pathfinder/supply"
)

// enumerateHyperpaths samples up to STOCH_PATHSET_SIZE candidate paths
// via soft-max choice over state alternatives at each hop, aggregating
// repeated draws into a single Path/PathInfo{count} pair per distinct
// path.
func (self *Finder) enumerateHyperpaths(spec PathSpec, dirFactor float64, finalTAZ supply.TAZID, finalStopID supply.StopID, store *algo.StopStateStore, rng *rand.Rand, tr *trace) ([]Path, []PathInfo, error) {
	terminalMode := supply.EGRESS
	if !spec.Outbound {
		terminalMode = supply.ACCESS
	}

	byKey := make(map[string]int)
	var paths []Path
	var infos []PathInfo

	for i := 0; i < self.config.StochPathsetSize; i++ {
		path, err := self.sampleOnePath(spec, dirFactor, finalStopID, terminalMode, store, rng, tr)
		if err != nil {
			if len(paths) > 0 {
				// keep whatever we already sampled; a later draw
				// hitting a dead end does not invalidate earlier ones.
				continue
			}
			return nil, nil, err
		}
		key := path.Key()
		if idx, ok := byKey[key]; ok {
			infos[idx].Count++
			continue
		}
		byKey[key] = len(paths)
		paths = append(paths, path)
		infos = append(infos, PathInfo{Count: 1})
	}

	if len(paths) == 0 {
		return nil, nil, &NoPathFoundError{Reason: "stochastic enumeration produced no admissible path"}
	}
	return paths, infos, nil
}

func (self *Finder) sampleOnePath(spec PathSpec, dirFactor float64, finalStopID supply.StopID, terminalMode supply.DemandModeType, store *algo.StopStateStore, rng *rand.Rand, tr *trace) (Path, error) {
	hs, ok := store.Hyperpath(finalStopID)
	if !ok {
		return Path{}, &NoPathFoundError{Reason: "no hyperpath aggregate at final TAZ"}
	}
	terminalStates := store.States(finalStopID)
	if len(terminalStates) == 0 {
		return Path{}, &NoPathFoundError{Reason: "no terminal states to sample from"}
	}

	first, ok := sampleState(terminalStates, hs.SoftMaxCost, self.config.StochDispersion, rng)
	if !ok {
		return Path{}, &NoPathFoundError{Reason: "all terminal candidates pruned by integerization"}
	}

	links := []PathLink{stateToLink(finalStopID, first)}
	currentStopID := supply.StopID(first.StopSuccPred)
	prevMode := first.DeparrMode
	prevTripID := first.TripID
	prevArrdep := first.ArrdepTime

	for {
		if first.DeparrMode == terminalMode {
			// terminal link sampled directly (single-hop path)
			break
		}
		states := store.States(currentStopID)
		candidates := make([]algo.StopState, 0, len(states))
		for _, s := range states {
			if !isAdmissibleNext(s, prevMode, prevTripID, prevArrdep, spec.Outbound) {
				continue
			}
			candidates = append(candidates, s)
		}
		if len(candidates) == 0 {
			return Path{}, &NoPathFoundError{Reason: "dead-end sampling: no admissible next state"}
		}

		chosen, ok := sampleState(candidates, 0, self.config.StochDispersion, rng)
		if !ok {
			return Path{}, &NoPathFoundError{Reason: "soft-max denominator is zero"}
		}
		links = append(links, stateToLink(currentStopID, chosen))
		if spec.Trace {
			tr.Logf("sampled %d cost=%f", currentStopID, chosen.Cost)
		}

		if chosen.DeparrMode == terminalMode {
			break
		}
		prevMode = chosen.DeparrMode
		prevTripID = chosen.TripID
		prevArrdep = chosen.ArrdepTime
		currentStopID = supply.StopID(chosen.StopSuccPred)
	}

	fixupChronology(links, spec.Outbound)
	return Path{Links: links}, nil
}

// sampleState draws one state from candidates by integerized
// soft-max probability. baseline, when nonzero, is the reference cost
// (e.g. a stop's soft-max aggregate) probabilities are normalized
// against; pass 0 to normalize against the candidate set's own
// Σexp(-sigma*cost) instead, so costs at or below zero (legal, and
// otherwise exp(-sigma*cost) >= 1) still rank correctly relative to
// each other rather than all clamping to the same weight.
func sampleState(candidates []algo.StopState, baseline, sigma float64, rng *rand.Rand) (algo.StopState, bool) {
	denom := math.Exp(-sigma * baseline)
	if baseline == 0 {
		denom = 0
		for _, c := range candidates {
			denom += math.Exp(-sigma * c.Cost)
		}
		if denom == 0 {
			return algo.StopState{}, false
		}
	}

	weights := make([]int, len(candidates))
	total := 0
	for i, c := range candidates {
		p := math.Exp(-sigma*c.Cost) / denom
		w := integerizeProbability(clampProbability(p))
		if w < 1 {
			continue
		}
		weights[i] = w
		total += w
	}
	idx, ok := chooseByCumulative(rng, weights, total)
	if !ok {
		return algo.StopState{}, false
	}
	return candidates[idx], true
}

func clampProbability(p float64) float64 {
	if p > 1 {
		return 1
	}
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	return p
}

// isAdmissibleNext applies the stochastic enumerator's next-state
// exclusions: no two walks in a row, no repeating the same trip back
// to back, and time must move in the search direction. Reaching the
// terminal mode (EGRESS outbound / ACCESS inbound) is not excluded
// here — the caller breaks out of sampling as soon as it is chosen.
func isAdmissibleNext(candidate algo.StopState, prevMode supply.DemandModeType, prevTripID supply.TripID, prevArrdep float64, outbound bool) bool {
	if isWalkMode(prevMode) && isWalkMode(candidate.DeparrMode) {
		return false
	}
	if candidate.DeparrMode == supply.TRANSIT && prevMode == supply.TRANSIT && candidate.TripID == prevTripID {
		return false
	}
	if outbound && candidate.DeparrTime < prevArrdep {
		return false
	}
	if !outbound && candidate.DeparrTime > prevArrdep {
		return false
	}
	return true
}

func isWalkMode(mode supply.DemandModeType) bool {
	return mode == supply.ACCESS || mode == supply.EGRESS || mode == supply.TRANSFER
}

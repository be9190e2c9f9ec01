package finder

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/ttpr0/transit-pathfinder/algo"
	"github.com/ttpr0/transit-pathfinder/supply"
)

// reconcile recomputes generalized cost over each candidate path in
// chronological order, splicing in synthetic zero-length transfer
// links between consecutive trips that had none, then (for stochastic
// mode) draws one final path from the reconciled set by probability.
func (self *Finder) reconcile(spec PathSpec, dirFactor float64, paths []Path, infos []PathInfo, rng *rand.Rand, tr *trace) (Path, PathInfo, error) {
	for i := range paths {
		self.reconcileOne(spec, dirFactor, &paths[i])
		infos[i].Cost = paths[i].TotalCost
	}

	if !spec.Hyperpath {
		if spec.Trace {
			writePathsetRow(tr, spec, paths[0], infos[0])
		}
		return paths[0], infos[0], nil
	}

	sigma := self.config.StochDispersion
	logsum := 0.0
	for _, info := range infos {
		logsum += math.Exp(-sigma * info.Cost)
	}
	if logsum == 0 {
		return Path{}, PathInfo{}, &NoPathFoundError{Reason: "logsum over reconciled paths is zero"}
	}

	weights := make([]int, len(infos))
	total := 0
	for i, info := range infos {
		infos[i].Probability = math.Exp(-sigma*info.Cost) / logsum
		w := integerizeProbability(infos[i].Probability)
		if w < 1 {
			continue
		}
		infos[i].CumulativeProb = total + w
		weights[i] = w
		total += w
	}
	if spec.Trace {
		for i := range paths {
			writePathsetRow(tr, spec, paths[i], infos[i])
		}
	}
	if total == 0 {
		return Path{}, PathInfo{}, &NoPathFoundError{Reason: "all candidate paths pruned by probability integerization"}
	}

	idx, ok := chooseByCumulative(rng, weights, total)
	if !ok {
		return Path{}, PathInfo{}, &NoPathFoundError{Reason: "all candidate paths pruned by probability integerization"}
	}
	return paths[idx], infos[idx], nil
}

// writePathsetRow summarizes one reconciled candidate path's transit
// legs as a pathset CSV row: the stop a rider boards at, the trip
// ridden, and the stop they alight at, one triple per transit leg.
func writePathsetRow(tr *trace, spec PathSpec, path Path, info PathInfo) {
	var boardStops, trips, alightStops []string
	for _, l := range path.Links {
		if l.DeparrMode != supply.TRANSIT {
			continue
		}
		board, alight := int(l.StopID), int(l.StopSuccPred)
		if !spec.Outbound {
			// an inbound search stores a trip link at its alight stop
			board, alight = alight, board
		}
		boardStops = append(boardStops, strconv.Itoa(board))
		trips = append(trips, strconv.Itoa(int(l.TripID)))
		alightStops = append(alightStops, strconv.Itoa(alight))
	}
	tr.WritePathsetRow(spec.Iteration, spec.PassengerID, spec.PathID, path.TotalCost, info.Probability,
		strings.Join(boardStops, ";"), strings.Join(trips, ";"), strings.Join(alightStops, ";"))
}

func (self *Finder) reconcileOne(spec PathSpec, dirFactor float64, path *Path) {
	links := orderedChronologically(path.Links, spec.Outbound)
	links = spliceTransferGaps(links)

	transitKey := weightKey(spec, supply.TRANSIT)
	transferKey := weightKey(spec, supply.TRANSFER)
	accessKey := weightKey(spec, supply.ACCESS)
	egressKey := weightKey(spec, supply.EGRESS)

	total := 0.0
	seenTrip := false
	for i := range links {
		link := &links[i]
		switch link.DeparrMode {
		case supply.ACCESS:
			delay := 0.0
			if !spec.Outbound {
				delay = math.Max(0, link.ArrdepTime-spec.PreferredTime)
			}
			weights, ok := self.data.Weights.Lookup(accessKey, supply.SupplyModeID(link.TripID))
			if ok {
				attrs := boundaryAttrs(self.data, spec.OriginTAZ, link, spec.Outbound)
				attrs["preferred_delay_min"] = delay
				link.LinkCost = algo.Tally(weights, attrs)
			}
		case supply.EGRESS:
			delay := 0.0
			if spec.Outbound {
				delay = math.Max(0, spec.PreferredTime-link.ArrdepTime)
			}
			weights, ok := self.data.Weights.Lookup(egressKey, supply.SupplyModeID(link.TripID))
			if ok {
				attrs := boundaryAttrs(self.data, spec.DestinationTAZ, link, spec.Outbound)
				attrs["preferred_delay_min"] = delay
				link.LinkCost = algo.Tally(weights, attrs)
			}
		case supply.TRANSFER:
			weights, ok := self.data.Weights.Lookup(transferKey, self.transferSupplyMode())
			if ok {
				lookup := *link
				if !spec.Outbound {
					// an inbound search stores a transfer at its end stop
					lookup.StopID, lookup.StopSuccPred = supply.StopID(link.StopSuccPred), int32(link.StopID)
				}
				attrs := transferAttrs(self.data, &lookup)
				attrs["transfer_penalty"] = 1
				link.LinkCost = algo.Tally(weights, attrs)
			}
		case supply.TRANSIT:
			info, ok := self.data.TripInfo.Get(link.TripID)
			if !ok {
				continue
			}
			weights, ok := self.data.Weights.Lookup(transitKey, info.SupplyMode)
			if !ok {
				continue
			}
			attrs := cloneAttrs(info.Attrs)
			ivt := (link.ArrdepTime - link.DeparrTime) * dirFactor
			attrs["in_vehicle_time_min"] = ivt
			attrs["wait_time_min"] = link.LinkTime - ivt
			if !seenTrip {
				attrs["transfer_penalty"] = 0
				seenTrip = true
			} else {
				attrs["transfer_penalty"] = 1
			}
			link.LinkCost = algo.Tally(weights, attrs)
		}
		total += link.LinkCost
	}
	path.Links = links
	path.TotalCost = total
}

// orderedChronologically returns the path's links in real time order:
// outbound paths are already origin-first (chronological); inbound
// paths are stored destination-first and must be reversed.
func orderedChronologically(links []PathLink, outbound bool) []PathLink {
	if outbound {
		out := make([]PathLink, len(links))
		copy(out, links)
		return out
	}
	out := make([]PathLink, len(links))
	for i, l := range links {
		out[len(links)-1-i] = l
	}
	return out
}

// spliceTransferGaps inserts a synthetic zero-length TRANSFER link
// between any two consecutive TRANSIT links that have no transfer
// between them, so reconciliation always sees a transfer boundary at
// every trip change.
func spliceTransferGaps(links []PathLink) []PathLink {
	out := make([]PathLink, 0, len(links)+2)
	for i, l := range links {
		out = append(out, l)
		if i+1 < len(links) && l.DeparrMode == supply.TRANSIT && links[i+1].DeparrMode == supply.TRANSIT {
			out = append(out, PathLink{
				StopID:       l.StopID,
				StopSuccPred: l.StopSuccPred,
				DeparrMode:   supply.TRANSFER,
				TripID:       transferSentinelTripID,
				LinkTime:     0,
				DeparrTime:   l.ArrdepTime,
				ArrdepTime:   l.ArrdepTime,
			})
		}
	}
	return out
}

// boundaryAttrs looks up the configured access/egress row backing a
// boundary (ACCESS/EGRESS) link. The terminal-relaxation boundary link
// (ACCESS for outbound, EGRESS for inbound) stores the TAZ under
// StopID and the connecting stop under StopSuccPred; the
// initialization boundary link (the opposite pairing for that
// direction) stores them the other way round.
func boundaryAttrs(data *supply.Data, taz supply.TAZID, link *PathLink, outbound bool) supply.AttrBundle {
	stop := link.StopID
	isTerminalBoundary := (link.DeparrMode == supply.ACCESS && outbound) || (link.DeparrMode == supply.EGRESS && !outbound)
	if isTerminalBoundary {
		stop = supply.StopID(link.StopSuccPred)
	}
	if attrs, ok := data.AccessEgress.Attrs(taz, supply.SupplyModeID(link.TripID), stop); ok {
		return cloneAttrs(attrs)
	}
	return supply.AttrBundle{"time_min": link.LinkTime}
}

// transferAttrs looks up the configured transfer row for a link,
// taking the link's own StopID as the transfer's origin stop (where the
// prior trip was alighted) and StopSuccPred as the stop where the
// following trip is boarded. That is how an outbound search stores a
// transfer; reconcileOne swaps the two for inbound links before calling.
func transferAttrs(data *supply.Data, link *PathLink) supply.AttrBundle {
	from := link.StopID
	to := supply.StopID(link.StopSuccPred)
	if from == to {
		return supply.AttrBundle{"time_min": 0}
	}
	if attrs, ok := data.Transfers.Forward(from)[to]; ok {
		return cloneAttrs(attrs)
	}
	if attrs, ok := data.Transfers.Reverse(to)[from]; ok {
		return cloneAttrs(attrs)
	}
	return supply.AttrBundle{"time_min": link.LinkTime}
}

package main

import (
	"fmt"

	"github.com/ttpr0/transit-pathfinder/finder"
	"github.com/ttpr0/transit-pathfinder/supply"
)

// ToPathSpec validates a PathfindRequest's TAZ ids and mode names
// against the loaded supply data before handing back the
// finder.PathSpec it describes, mirroring the boundary check a
// request's routing profile string used to get before it was allowed
// anywhere near a search.
func ToPathSpec(data *supply.Data, req PathfindRequest) (finder.PathSpec, error) {
	if !data.AccessEgress.HasTAZ(req.OriginTAZ) {
		return finder.PathSpec{}, fmt.Errorf("unknown origin TAZ %d", req.OriginTAZ)
	}
	if !data.AccessEgress.HasTAZ(req.DestinationTAZ) {
		return finder.PathSpec{}, fmt.Errorf("unknown destination TAZ %d", req.DestinationTAZ)
	}
	if !data.Weights.HasKey(weightKeyFor(req, supply.ACCESS, req.AccessMode)) {
		return finder.PathSpec{}, fmt.Errorf("unknown access mode %q for user class %q", req.AccessMode, req.UserClass)
	}
	if !data.Weights.HasKey(weightKeyFor(req, supply.TRANSIT, req.TransitMode)) {
		return finder.PathSpec{}, fmt.Errorf("unknown transit mode %q for user class %q", req.TransitMode, req.UserClass)
	}
	if !data.Weights.HasKey(weightKeyFor(req, supply.EGRESS, req.EgressMode)) {
		return finder.PathSpec{}, fmt.Errorf("unknown egress mode %q for user class %q", req.EgressMode, req.UserClass)
	}
	return req.ToPathSpec(), nil
}

func weightKeyFor(req PathfindRequest, modeType supply.DemandModeType, modeName string) supply.WeightKey {
	return supply.WeightKey{UserClass: req.UserClass, ModeType: modeType, ModeName: modeName}
}

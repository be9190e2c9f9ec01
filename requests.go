package main

import (
	"github.com/ttpr0/transit-pathfinder/finder"
	"github.com/ttpr0/transit-pathfinder/supply"
)

// PathfindRequest is the JSON body accepted by the pathfinding
// endpoint: a single origin/destination demand at a preferred time,
// searched in either deterministic or hyperpath mode.
type PathfindRequest struct {
	Iteration      int          `json:"iteration"`
	PassengerID    string       `json:"passenger_id"`
	PathID         string       `json:"path_id"`
	Hyperpath      bool         `json:"hyperpath"`
	UserClass      string       `json:"user_class"`
	AccessMode     string       `json:"access_mode"`
	TransitMode    string       `json:"transit_mode"`
	EgressMode     string       `json:"egress_mode"`
	OriginTAZ      supply.TAZID `json:"origin_taz"`
	DestinationTAZ supply.TAZID `json:"destination_taz"`
	Outbound       bool         `json:"outbound"`
	PreferredTime  float64      `json:"preferred_time"`
	Trace          bool         `json:"trace"`
}

func (self PathfindRequest) ToPathSpec() finder.PathSpec {
	return finder.PathSpec{
		Iteration:      self.Iteration,
		PassengerID:    self.PassengerID,
		PathID:         self.PathID,
		Hyperpath:      self.Hyperpath,
		UserClass:      self.UserClass,
		AccessMode:     self.AccessMode,
		TransitMode:    self.TransitMode,
		EgressMode:     self.EgressMode,
		OriginTAZ:      self.OriginTAZ,
		DestinationTAZ: self.DestinationTAZ,
		Outbound:       self.Outbound,
		PreferredTime:  self.PreferredTime,
		Trace:          self.Trace,
	}
}

// PathfindResponse bundles the found path (one entry per link, each
// carrying both the integer and the real-valued link fields), its
// PathInfo bookkeeping, and the performance counters find_path returns
// alongside them.
type PathfindResponse struct {
	Path        finder.Path            `json:"path"`
	Info        finder.PathInfo        `json:"info"`
	Performance finder.PerformanceInfo `json:"performance"`
}

// BumpWaitUpdateRequest replaces the bump-wait table a Finder's supply
// data consults when relaxing trip boardings, keyed by (trip, sequence,
// stop) with the earliest time a rider boarding there was bumped.
type BumpWaitUpdateRequest struct {
	Rows []BumpWaitRow `json:"rows"`
}

type BumpWaitRow struct {
	TripID   supply.TripID `json:"trip_id"`
	Sequence int32         `json:"sequence"`
	StopID   supply.StopID `json:"stop_id"`
	BumpTime float64       `json:"bump_time"`
}

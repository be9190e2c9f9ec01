// Package finder implements the label-setting search over a
// time-expanded transit network: it drives the algo package's queue,
// cost evaluator, and stop-state store from the supply tables to
// produce either a single deterministic shortest path or a sampled
// hyperpath.
package finder

import "github.com/ttpr0/transit-pathfinder/supply"

// PathSpec is one pathfinding request: a single origin/destination
// demand at a preferred time, searched in either deterministic or
// hyperpath mode.
type PathSpec struct {
	Iteration      int
	PassengerID    string
	PathID         string
	Hyperpath      bool
	UserClass      string
	AccessMode     string
	TransitMode    string
	EgressMode     string
	OriginTAZ      supply.TAZID
	DestinationTAZ supply.TAZID
	Outbound       bool
	PreferredTime  float64
	Trace          bool
}

// PathLink is one leg of a found path, carrying both the integer
// identifying fields and the real-valued timing/cost fields the
// pathfinding entry point returns as two parallel tables.
type PathLink struct {
	StopID           supply.StopID
	DeparrMode       supply.DemandModeType
	TripID           supply.TripID
	StopSuccPred     int32
	Sequence         int
	SequenceSuccPred int

	ReservedLabel float64
	DeparrTime    float64
	LinkTime      float64
	LinkCost      float64
	ArrdepTime    float64
}

// Path is an ordered list of links in search order: origin-first for
// outbound, destination-first for inbound, prior to chronological
// fixup by the reconciler.
type Path struct {
	Links     []PathLink
	TotalCost float64
}

// Key produces a value suitable for de-duplicating Paths sampled by the
// stochastic enumerator: two paths are equal iff their link sequences
// match on the fields that determine chronology and cost.
func (self Path) Key() string {
	b := make([]byte, 0, len(self.Links)*24)
	for _, l := range self.Links {
		b = appendInt(b, int64(l.StopID))
		b = appendInt(b, int64(l.DeparrMode))
		b = appendInt(b, int64(l.TripID))
		b = appendInt(b, int64(l.StopSuccPred))
	}
	return string(b)
}

func appendInt(b []byte, v int64) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24), byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56), '|')
}

// PathInfo is bookkeeping the stochastic enumerator and reconciler
// attach to each distinct sampled path.
type PathInfo struct {
	Count          int
	Cost           float64
	Probability    float64
	CumulativeProb int
}

// PerformanceInfo carries the diagnostic counters the pathfinding entry
// point returns alongside a found path.
type PerformanceInfo struct {
	LabelIterations   int
	MaxProcessCount   int
	LabelingMillis    float64
	EnumeratingMillis float64
}

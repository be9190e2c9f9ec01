// Package supply holds the immutable network tables a Finder searches
// against: stops, trips, access/egress and transfer attributes, the
// weight table, and the bump-wait capacity map. Everything here is
// built once at startup and never mutated by a running search.
package supply

// DemandModeType is the closed set of link kinds a weight vector can be
// keyed on.
type DemandModeType int

const (
	ACCESS DemandModeType = iota
	EGRESS
	TRANSFER
	TRANSIT
)

func (self DemandModeType) String() string {
	switch self {
	case ACCESS:
		return "access"
	case EGRESS:
		return "egress"
	case TRANSFER:
		return "transfer"
	case TRANSIT:
		return "transit"
	default:
		return "unknown"
	}
}

// StopID and TAZID share the caller-visible integer key space but are
// kept as distinct types so a stop can never be silently passed where a
// TAZ is expected, and vice versa.
type StopID int32

// TAZID is a travel-analysis zone identifier: an origin/destination
// endpoint distinct from the stop namespace.
type TAZID int32

// TripID identifies a single scheduled vehicle run.
type TripID int32

// SupplyModeID identifies the operator-side class of a link (walk, bus,
// transfer, ...).
type SupplyModeID int32

// AttrBundle is a named-attribute row, e.g. one access link's
// {"time_min": 3.0}. Kept as a plain map rather than a struct because
// the weight table and the cost evaluator both address attributes by
// name, and the attribute set varies per row.
type AttrBundle map[string]float64

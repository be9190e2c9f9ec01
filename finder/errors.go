package finder

import (
	"fmt"

	"github.com/ttpr0/transit-pathfinder/supply"
)

// MissingConfigError reports that no weight vector exists for the
// requested (user_class, demand_mode_type, demand_mode) combination.
type MissingConfigError struct {
	UserClass string
	ModeType  supply.DemandModeType
	ModeName  string
}

func (self *MissingConfigError) Error() string {
	return fmt.Sprintf("finder: no weights for user_class=%s mode_type=%s mode=%s", self.UserClass, self.ModeType, self.ModeName)
}

// NoAccessEgressError reports that a TAZ has no configured
// access/egress links at all.
type NoAccessEgressError struct {
	TAZ supply.TAZID
}

func (self *NoAccessEgressError) Error() string {
	return fmt.Sprintf("finder: no access/egress coverage for TAZ %d", self.TAZ)
}

// NoPathFoundError is returned, rather than a path, whenever the search
// exhausts its options: dead-end sampling, a zero soft-max denominator,
// or every candidate pruned by probability integerization.
type NoPathFoundError struct {
	Reason string
}

func (self *NoPathFoundError) Error() string {
	return "finder: no path found: " + self.Reason
}

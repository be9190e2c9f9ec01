package supply

import "github.com/ttpr0/transit-pathfinder/util"

// TripInfo carries a trip's operator-side attributes: its supply mode,
// route id, and any named numeric attributes the weight table may
// reference (e.g. fare, wait-time coefficients baked in by the loader).
type TripInfo struct {
	SupplyMode SupplyModeID
	RouteID    string
	Attrs      AttrBundle
}

// TripInfoStore is a simple lookup from trip id to its TripInfo, built
// once at load time.
type TripInfoStore struct {
	byTrip util.Dict[TripID, TripInfo]
}

func NewTripInfoStore(entries map[TripID]TripInfo) *TripInfoStore {
	byTrip := util.NewDict[TripID, TripInfo](len(entries))
	for trip, info := range entries {
		byTrip[trip] = info
	}
	return &TripInfoStore{byTrip: byTrip}
}

func (self *TripInfoStore) Get(trip TripID) (TripInfo, bool) {
	info, ok := self.byTrip[trip]
	return info, ok
}

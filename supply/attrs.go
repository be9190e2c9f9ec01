package supply

import "github.com/ttpr0/transit-pathfinder/util"

// AccessEgressLink is one TAZ-to-stop connector under a given supply
// mode, e.g. a walk-access link from a TAZ to a boarding stop.
type AccessEgressLink struct {
	SupplyMode SupplyModeID
	StopID     StopID
	Attrs      AttrBundle
}

// AccessEgressStore indexes access/egress attributes as
// TAZ -> supply_mode -> stop -> attributes, per the supply-loading
// interface. Every row is required to carry "time_min".
type AccessEgressStore struct {
	byTAZ util.Dict[TAZID, util.Dict[SupplyModeID, util.Dict[StopID, AttrBundle]]]
}

func NewAccessEgressStore() *AccessEgressStore {
	return &AccessEgressStore{byTAZ: util.NewDict[TAZID, util.Dict[SupplyModeID, util.Dict[StopID, AttrBundle]]](0)}
}

// Add records one TAZ/supply-mode/stop attribute row. It panics if the
// row is missing "time_min", since every consumer of this store assumes
// its presence.
func (self *AccessEgressStore) Add(taz TAZID, mode SupplyModeID, stop StopID, attrs AttrBundle) {
	if _, ok := attrs["time_min"]; !ok {
		panic("supply: access/egress row missing required time_min attribute")
	}
	byMode, ok := self.byTAZ[taz]
	if !ok {
		byMode = util.NewDict[SupplyModeID, util.Dict[StopID, AttrBundle]](0)
		self.byTAZ[taz] = byMode
	}
	byStop, ok := byMode[mode]
	if !ok {
		byStop = util.NewDict[StopID, AttrBundle](0)
		byMode[mode] = byStop
	}
	byStop[stop] = attrs
}

// HasTAZ reports whether the TAZ has any configured access/egress
// links at all.
func (self *AccessEgressStore) HasTAZ(taz TAZID) bool {
	links, ok := self.byTAZ[taz]
	return ok && len(links) > 0
}

// Attrs looks up one TAZ/supply-mode/stop access/egress row directly,
// for callers that already know which link they want rather than
// scanning every link configured for a TAZ.
func (self *AccessEgressStore) Attrs(taz TAZID, mode SupplyModeID, stop StopID) (AttrBundle, bool) {
	byMode, ok := self.byTAZ[taz]
	if !ok {
		return nil, false
	}
	byStop, ok := byMode[mode]
	if !ok {
		return nil, false
	}
	attrs, ok := byStop[stop]
	return attrs, ok
}

// Links returns every (supply_mode, stop, attrs) link configured for a
// TAZ, flattened across supply modes. Order is not significant; callers
// needing determinism should sort by (mode, stop).
func (self *AccessEgressStore) Links(taz TAZID) []AccessEgressLink {
	byMode, ok := self.byTAZ[taz]
	if !ok {
		return nil
	}
	links := make([]AccessEgressLink, 0)
	for mode, byStop := range byMode {
		for stop, attrs := range byStop {
			links = append(links, AccessEgressLink{SupplyMode: mode, StopID: stop, Attrs: attrs})
		}
	}
	return links
}

// TransferStore indexes transfer attributes as from_stop -> to_stop ->
// attributes, plus a reverse index for outbound searches. Every row is
// required to carry "time_min".
type TransferStore struct {
	forward util.Dict[StopID, util.Dict[StopID, AttrBundle]]
	reverse util.Dict[StopID, util.Dict[StopID, AttrBundle]]
}

func NewTransferStore() *TransferStore {
	return &TransferStore{
		forward: util.NewDict[StopID, util.Dict[StopID, AttrBundle]](0),
		reverse: util.NewDict[StopID, util.Dict[StopID, AttrBundle]](0),
	}
}

func (self *TransferStore) Add(from, to StopID, attrs AttrBundle) {
	if _, ok := attrs["time_min"]; !ok {
		panic("supply: transfer row missing required time_min attribute")
	}
	fwd, ok := self.forward[from]
	if !ok {
		fwd = util.NewDict[StopID, AttrBundle](0)
		self.forward[from] = fwd
	}
	fwd[to] = attrs

	rev, ok := self.reverse[to]
	if !ok {
		rev = util.NewDict[StopID, AttrBundle](0)
		self.reverse[to] = rev
	}
	rev[from] = attrs
}

// Forward returns transfer targets reachable from a stop (from -> to),
// used by inbound searches.
func (self *TransferStore) Forward(from StopID) util.Dict[StopID, AttrBundle] {
	return self.forward[from]
}

// Reverse returns transfer origins that reach a stop (to <- from), used
// by outbound searches.
func (self *TransferStore) Reverse(to StopID) util.Dict[StopID, AttrBundle] {
	return self.reverse[to]
}

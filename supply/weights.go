package supply

import "github.com/ttpr0/transit-pathfinder/util"

// WeightVector maps a named coefficient (e.g. "in_vehicle_time_min") to
// its weight. Negative weights are legal.
type WeightVector map[string]float64

// WeightKey identifies one row of the weight table: a user class paired
// with a demand mode of a given type ("walk" under ACCESS, "local_bus"
// under TRANSIT, and so on).
type WeightKey struct {
	UserClass string
	ModeType  DemandModeType
	ModeName  string
}

// WeightTable is (user_class, demand_mode_type, demand_mode_name) ->
// supply_mode -> weight vector.
type WeightTable struct {
	rows           util.Dict[WeightKey, util.Dict[SupplyModeID, WeightVector]]
	transferSupply SupplyModeID
	hasTransfer    bool
}

func NewWeightTable() *WeightTable {
	return &WeightTable{rows: util.NewDict[WeightKey, util.Dict[SupplyModeID, WeightVector]](0)}
}

func (self *WeightTable) Add(key WeightKey, supplyMode SupplyModeID, weights WeightVector) {
	bySupply, ok := self.rows[key]
	if !ok {
		bySupply = util.NewDict[SupplyModeID, WeightVector](0)
		self.rows[key] = bySupply
	}
	bySupply[supplyMode] = weights
}

// Lookup returns the weight vector for a (user class, mode type, mode
// name, supply mode) combination.
func (self *WeightTable) Lookup(key WeightKey, supplyMode SupplyModeID) (WeightVector, bool) {
	bySupply, ok := self.rows[key]
	if !ok {
		return nil, false
	}
	weights, ok := bySupply[supplyMode]
	return weights, ok
}

// HasKey reports whether any supply-mode row exists for a
// (user class, mode type, mode name) combination — the missing-weights
// fail-fast check at search initialization.
func (self *WeightTable) HasKey(key WeightKey) bool {
	bySupply, ok := self.rows[key]
	return ok && len(bySupply) > 0
}

// SetTransferSupplyMode records which supply-mode id is tagged
// "transfer", discovered by string match when loading the mode id map.
func (self *WeightTable) SetTransferSupplyMode(mode SupplyModeID) {
	self.transferSupply = mode
	self.hasTransfer = true
}

// TransferSupplyMode returns the supply mode singled out for transfer
// costs.
func (self *WeightTable) TransferSupplyMode() (SupplyModeID, bool) {
	return self.transferSupply, self.hasTransfer
}

// DiscoverTransferSupplyMode scans a supply-mode name table for the
// entry named "transfer", matching the mode-id-map loading convention.
func DiscoverTransferSupplyMode(modeNames map[SupplyModeID]string) (SupplyModeID, bool) {
	for id, name := range modeNames {
		if name == "transfer" {
			return id, true
		}
	}
	return 0, false
}

package supply

// Data bundles the immutable network tables a Finder searches against:
// id maps, trip-stop-times, trip-info, access/egress and transfer
// attributes, the weight table, and the (separately replaceable)
// bump-wait map. Built once at startup by the supply-loading interface,
// then shared read-only across concurrent find_path calls.
type Data struct {
	TripIDs       map[string]TripID
	StopIDs       map[string]StopID
	RouteIDs      map[string]string
	SupplyModeIDs map[string]SupplyModeID
	StopTimes     *TripStopTimes
	TripInfo      *TripInfoStore
	AccessEgress  *AccessEgressStore
	Transfers     *TransferStore
	Weights       *WeightTable
	BumpWait      *BumpWaitMap
}

// NewData assembles a Data set from already-parsed tables. The host
// driver owns TSV/GTFS ingestion; this constructor only wires the
// parsed pieces together and discovers the transfer supply mode.
func NewData(
	tripIDs map[string]TripID,
	stopIDs map[string]StopID,
	routeIDs map[string]string,
	supplyModeIDs map[string]SupplyModeID,
	stopTimes *TripStopTimes,
	tripInfo *TripInfoStore,
	accessEgress *AccessEgressStore,
	transfers *TransferStore,
	weights *WeightTable,
) *Data {
	modeNames := make(map[SupplyModeID]string, len(supplyModeIDs))
	for name, id := range supplyModeIDs {
		modeNames[id] = name
	}
	if transferMode, ok := DiscoverTransferSupplyMode(modeNames); ok {
		weights.SetTransferSupplyMode(transferMode)
	}
	return &Data{
		TripIDs:       tripIDs,
		StopIDs:       stopIDs,
		RouteIDs:      routeIDs,
		SupplyModeIDs: supplyModeIDs,
		StopTimes:     stopTimes,
		TripInfo:      tripInfo,
		AccessEgress:  accessEgress,
		Transfers:     transfers,
		Weights:       weights,
		BumpWait:      NewBumpWaitMap(),
	}
}

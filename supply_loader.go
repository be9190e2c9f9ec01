package main

import (
	"fmt"
	"strconv"

	"github.com/ttpr0/transit-pathfinder/supply"
	"github.com/ttpr0/transit-pathfinder/util"
)

// LoadSupplyData reads the JSON-encoded network tables named by a
// SupplySource and assembles a *supply.Data from them. This is the
// boundary between whatever upstream process turns a TSV/GTFS feed
// into these tables and the search engine itself, which never parses
// raw feeds.
func LoadSupplyData(src SupplySource) (*supply.Data, error) {
	modes, err := util.ReadJSONFromFile[map[string]int32](src.Modes)
	if err != nil {
		return nil, fmt.Errorf("loading modes: %w", err)
	}
	supplyModeIDs := make(map[string]supply.SupplyModeID, len(modes))
	for name, id := range modes {
		supplyModeIDs[name] = supply.SupplyModeID(id)
	}

	var stopTimesRaw stopTimesFile
	stopTimesRaw, err = util.ReadJSONFromFile[stopTimesFile](src.StopTimes)
	if err != nil {
		return nil, fmt.Errorf("loading stop times: %w", err)
	}
	stopTimes, err := supply.NewTripStopTimes(stopTimesRaw.Index, stopTimesRaw.Times)
	if err != nil {
		return nil, fmt.Errorf("building stop times: %w", err)
	}

	tripInfoRaw, err := util.ReadJSONFromFile[map[string]tripInfoRow](src.TripInfo)
	if err != nil {
		return nil, fmt.Errorf("loading trip info: %w", err)
	}
	tripIDs := make(map[string]supply.TripID, len(tripInfoRaw))
	tripInfoEntries := make(map[supply.TripID]supply.TripInfo, len(tripInfoRaw))
	routeIDs := make(map[string]string, len(tripInfoRaw))
	for tripStr, row := range tripInfoRaw {
		tripID, err := parseInt32ID(tripStr)
		if err != nil {
			return nil, fmt.Errorf("trip info key %q: %w", tripStr, err)
		}
		trip := supply.TripID(tripID)
		tripIDs[tripStr] = trip
		tripInfoEntries[trip] = supply.TripInfo{
			SupplyMode: supply.SupplyModeID(row.SupplyMode),
			RouteID:    row.RouteID,
			Attrs:      supply.AttrBundle(row.Attrs),
		}
		routeIDs[row.RouteID] = row.RouteID
	}
	tripInfo := supply.NewTripInfoStore(tripInfoEntries)

	accessRows, err := util.ReadJSONFromFile[[]accessEgressRow](src.AccessEgress)
	if err != nil {
		return nil, fmt.Errorf("loading access/egress: %w", err)
	}
	access := supply.NewAccessEgressStore()
	stopIDs := make(map[string]supply.StopID, len(accessRows))
	for _, row := range accessRows {
		stop := supply.StopID(row.StopID)
		stopIDs[strconv.Itoa(int(row.StopID))] = stop
		access.Add(supply.TAZID(row.TAZID), supply.SupplyModeID(row.Mode), stop, supply.AttrBundle(row.Attrs))
	}

	transferRows, err := util.ReadJSONFromFile[[]transferRow](src.Transfers)
	if err != nil {
		return nil, fmt.Errorf("loading transfers: %w", err)
	}
	transfers := supply.NewTransferStore()
	for _, row := range transferRows {
		from, to := supply.StopID(row.From), supply.StopID(row.To)
		stopIDs[strconv.Itoa(int(row.From))] = from
		stopIDs[strconv.Itoa(int(row.To))] = to
		transfers.Add(from, to, supply.AttrBundle(row.Attrs))
	}

	weightRows, err := util.ReadJSONFromFile[[]weightRow](src.Weights)
	if err != nil {
		return nil, fmt.Errorf("loading weights: %w", err)
	}
	weights := supply.NewWeightTable()
	for _, row := range weightRows {
		modeType, err := demandModeTypeFromString(row.ModeType)
		if err != nil {
			return nil, err
		}
		key := supply.WeightKey{UserClass: row.UserClass, ModeType: modeType, ModeName: row.ModeName}
		weights.Add(key, supply.SupplyModeID(row.SupplyMode), supply.WeightVector(row.Weights))
	}

	return supply.NewData(tripIDs, stopIDs, routeIDs, supplyModeIDs, stopTimes, tripInfo, access, transfers, weights), nil
}

type stopTimesFile struct {
	Index [][3]int32   `json:"index"`
	Times [][2]float64 `json:"times"`
}

type tripInfoRow struct {
	SupplyMode int32              `json:"supply_mode"`
	RouteID    string             `json:"route_id"`
	Attrs      map[string]float64 `json:"attrs"`
}

type accessEgressRow struct {
	TAZID  int32              `json:"taz_id"`
	Mode   int32              `json:"mode"`
	StopID int32              `json:"stop_id"`
	Attrs  map[string]float64 `json:"attrs"`
}

type transferRow struct {
	From  int32              `json:"from_stop_id"`
	To    int32              `json:"to_stop_id"`
	Attrs map[string]float64 `json:"attrs"`
}

type weightRow struct {
	UserClass  string             `json:"user_class"`
	ModeType   string             `json:"mode_type"`
	ModeName   string             `json:"mode_name"`
	SupplyMode int32              `json:"supply_mode"`
	Weights    map[string]float64 `json:"weights"`
}

func demandModeTypeFromString(s string) (supply.DemandModeType, error) {
	switch s {
	case "access":
		return supply.ACCESS, nil
	case "egress":
		return supply.EGRESS, nil
	case "transfer":
		return supply.TRANSFER, nil
	case "transit":
		return supply.TRANSIT, nil
	default:
		return 0, fmt.Errorf("unknown demand mode type %q", s)
	}
}

func parseInt32ID(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	return int32(n), err
}

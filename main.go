package main

import (
	"net/http"
	"os"

	"golang.org/x/exp/slog"

	"github.com/ttpr0/transit-pathfinder/finder"
	"github.com/ttpr0/transit-pathfinder/supply"
)

var search *finder.Finder
var loadedData *supply.Data

func main() {
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, nil)))

	config := ReadConfig("./config.yaml")

	data, err := LoadSupplyData(config.Supply)
	if err != nil {
		slog.Error("failed to load supply data: " + err.Error())
		panic(err)
	}
	loadedData = data
	search = finder.NewFinder(data, config.Search.ToFinderConfig())

	app := http.DefaultServeMux
	MapPost(app, "/v1/pathfind", HandlePathfindRequest)
	MapGet(app, "/v1/pathfind/lookup", HandlePathfindRequest)
	MapPost(app, "/v1/bumpwait", HandleBumpWaitUpdateRequest)

	slog.Info("listening on " + config.Listen)
	if err := http.ListenAndServe(config.Listen, nil); err != nil {
		slog.Error("server exited: " + err.Error())
	}
}

// HandlePathfindRequest runs one find_path call and returns its two
// parallel result tables plus performance counters. Registered under
// both a POST (JSON body) and a GET (query string) route, for ad hoc
// single-lookup calls that don't want to construct a body.
func HandlePathfindRequest(req PathfindRequest) Result {
	spec, err := ToPathSpec(loadedData, req)
	if err != nil {
		return BadRequest(err.Error())
	}
	path, info, perf, err := search.FindPath(spec)
	if err != nil {
		return BadRequest(err.Error())
	}
	return OK(PathfindResponse{Path: path, Info: info, Performance: perf})
}

// HandleBumpWaitUpdateRequest replaces the bump-wait table consulted by
// every subsequent find_path call, mirroring the iterative
// simulation's per-round capacity feedback.
func HandleBumpWaitUpdateRequest(req BumpWaitUpdateRequest) Result {
	index := make([][3]int32, len(req.Rows))
	bumpTimes := make([]float64, len(req.Rows))
	for i, row := range req.Rows {
		index[i] = [3]int32{int32(row.TripID), row.Sequence, int32(row.StopID)}
		bumpTimes[i] = row.BumpTime
	}
	if err := loadedData.BumpWait.SetBumpWait(index, bumpTimes); err != nil {
		return BadRequest(err.Error())
	}
	return OK("ok")
}

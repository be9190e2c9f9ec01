package main

import (
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"github.com/ttpr0/transit-pathfinder/finder"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) Config {
	slog.Info("Reading config file")
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file: " + err.Error())
		panic(err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		slog.Error("failed to parse config file: " + err.Error())
		panic(err)
	}
	return config
}

// Config carries the address to listen on, the paths to the
// precomputed supply tables, and the search tuning parameters a Finder
// is built from.
type Config struct {
	Listen string       `yaml:"listen"`
	Supply SupplySource `yaml:"supply"`
	Search SearchConfig `yaml:"search"`
}

// SupplySource points at the JSON-encoded network tables a Finder
// searches against. Turning raw TSV/GTFS feeds into these tables is a
// separate, upstream concern; this service only loads what has already
// been prepared.
type SupplySource struct {
	Modes        string `yaml:"modes"`
	StopTimes    string `yaml:"stop_times"`
	TripInfo     string `yaml:"trip_info"`
	AccessEgress string `yaml:"access_egress"`
	Transfers    string `yaml:"transfers"`
	Weights      string `yaml:"weights"`
}

// SearchConfig is the tunable parameters a host exposes to every
// find_path call: the time window bounding candidate transfers and
// boardings, the bump-wait buffer, the stochastic enumerator's pathset
// size, dispersion, and per-stop process-count cap, and the directory
// per-call trace artifacts are written under when a request opts in.
type SearchConfig struct {
	TimeWindow               float64 `yaml:"time_window_min"`
	BumpBuffer               float64 `yaml:"bump_buffer_min"`
	StochPathsetSize         int     `yaml:"stoch_pathset_size"`
	StochDispersion          float64 `yaml:"stoch_dispersion"`
	StochMaxStopProcessCount int     `yaml:"stoch_max_stop_process_count"`
	TraceDir                 string  `yaml:"trace_dir"`
}

func (self SearchConfig) ToFinderConfig() finder.Config {
	return finder.Config{
		TimeWindow:               self.TimeWindow,
		BumpBuffer:               self.BumpBuffer,
		StochPathsetSize:         self.StochPathsetSize,
		StochDispersion:          self.StochDispersion,
		StochMaxStopProcessCount: self.StochMaxStopProcessCount,
		TraceDir:                 self.TraceDir,
	}
}

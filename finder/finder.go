package finder

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ttpr0/transit-pathfinder/algo"
	"github.com/ttpr0/transit-pathfinder/supply"
)

// Config holds the tunable parameters a host supplies to every search.
// TraceDir is the directory a per-call trace's three artifact files are
// written under when PathSpec.Trace is set; left empty, Trace requests
// are accepted but produce no files (Logf calls still no-op).
type Config struct {
	TimeWindow               float64
	BumpBuffer               float64
	StochPathsetSize         int
	StochDispersion          float64
	StochMaxStopProcessCount int
	TraceDir                 string
}

// Finder is constructed once at the host boundary around an immutable
// supply.Data and a Config, then passed explicitly to callers — no
// package-level global finder instance.
type Finder struct {
	data   *supply.Data
	config Config
}

func NewFinder(data *supply.Data, config Config) *Finder {
	return &Finder{data: data, config: config}
}

// FindPath runs one deterministic or hyperpath search for a single
// origin/destination demand. It owns its own StopStateStore and queue
// for the duration of the call; nothing it allocates outlives the
// return.
func (self *Finder) FindPath(spec PathSpec) (Path, PathInfo, PerformanceInfo, error) {
	tr, closeFiles := self.openTrace(spec)
	defer closeFiles()
	if spec.Trace {
		tr.Logf("starting find_path outbound=%v hyperpath=%v", spec.Outbound, spec.Hyperpath)
	}
	defer tr.Close()

	dirFactor := 1.0
	if !spec.Outbound {
		dirFactor = -1.0
	}

	// The search runs from the destination backward for outbound
	// demand, and from the origin forward for inbound demand.
	searchOriginTAZ := spec.OriginTAZ
	finalTAZ := spec.DestinationTAZ
	if spec.Outbound {
		searchOriginTAZ = spec.DestinationTAZ
		finalTAZ = spec.OriginTAZ
	}

	store := algo.NewStopStateStore(spec.Outbound, spec.Hyperpath, self.config.TimeWindow, self.config.StochDispersion)
	queue := algo.NewLabelStopQueue()

	perf := PerformanceInfo{}

	labelStart := time.Now()
	if err := self.initializeStopStates(spec, dirFactor, searchOriginTAZ, store, queue, tr); err != nil {
		return Path{}, PathInfo{}, perf, err
	}

	if err := self.runLabelingLoop(spec, dirFactor, store, queue, &perf, tr); err != nil {
		return Path{}, PathInfo{}, perf, err
	}
	perf.LabelingMillis = float64(time.Since(labelStart).Microseconds()) / 1000.0

	extractStart := time.Now()
	finalState, err := self.relaxTerminal(spec, dirFactor, finalTAZ, store, queue, tr)
	if err != nil {
		return Path{}, PathInfo{}, perf, err
	}

	rng := newPathRNG(spec.PathID)

	var paths []Path
	var infos []PathInfo
	if spec.Hyperpath {
		paths, infos, err = self.enumerateHyperpaths(spec, dirFactor, finalTAZ, finalState, store, rng, tr)
	} else {
		paths = []Path{self.extractDeterministic(spec, finalTAZ, finalState, store)}
		infos = []PathInfo{{Count: 1}}
	}
	if err != nil {
		return Path{}, PathInfo{}, perf, err
	}

	path, info, err := self.reconcile(spec, dirFactor, paths, infos, rng, tr)
	if err != nil {
		return Path{}, PathInfo{}, perf, err
	}
	perf.EnumeratingMillis = float64(time.Since(extractStart).Microseconds()) / 1000.0

	if spec.Trace {
		tr.Logf("found path with %d links, cost=%f", len(path.Links), path.TotalCost)
	}
	return path, info, perf, nil
}

func (self *Finder) runLabelingLoop(spec PathSpec, dirFactor float64, store *algo.StopStateStore, queue *algo.LabelStopQueue, perf *PerformanceInfo, tr *trace) error {
	lastStop := supply.StopID(-1)
	lastLabel := -1.0
	haveLast := false

	for {
		label, stopID, ok, err := queue.PopTop()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if haveLast && stopID == lastStop && label == lastLabel {
			continue
		}
		haveLast = true
		lastStop, lastLabel = stopID, label

		if spec.Hyperpath {
			hs, ok := store.Hyperpath(stopID)
			if ok {
				if self.config.StochMaxStopProcessCount > 0 && hs.ProcessCount >= self.config.StochMaxStopProcessCount {
					continue
				}
				hs.ProcessCount++
				if hs.ProcessCount > perf.MaxProcessCount {
					perf.MaxProcessCount = hs.ProcessCount
				}
			}
		}

		self.relaxTransfers(spec, dirFactor, stopID, perf.LabelIterations, store, queue, tr)
		self.relaxTrips(spec, dirFactor, stopID, perf.LabelIterations, store, queue, tr)
		perf.LabelIterations++
	}
	return nil
}

// weightKey builds the (user_class, mode_type, mode_name) lookup key
// for one of the four demand-mode-type buckets.
func weightKey(spec PathSpec, modeType supply.DemandModeType) supply.WeightKey {
	name := ""
	switch modeType {
	case supply.ACCESS:
		name = spec.AccessMode
	case supply.EGRESS:
		name = spec.EgressMode
	case supply.TRANSIT:
		name = spec.TransitMode
	case supply.TRANSFER:
		name = "transfer"
	}
	return supply.WeightKey{UserClass: spec.UserClass, ModeType: modeType, ModeName: name}
}

// openTrace builds the trace context for one FindPath call. When Trace
// is off, or no TraceDir was configured, it returns a noop trace and a
// no-op closer, so tracing never touches the filesystem unless a host
// explicitly opts in on both counts. The returned closer must run after
// tr.Close() has flushed the CSV writers.
func (self *Finder) openTrace(spec PathSpec) (*trace, func()) {
	if !spec.Trace || self.config.TraceDir == "" {
		return noopTrace(spec.PathID), func() {}
	}
	logFile, err := os.Create(filepath.Join(self.config.TraceDir, fmt.Sprintf("pathfinder_%s.log", spec.PathID)))
	if err != nil {
		return noopTrace(spec.PathID), func() {}
	}
	labelsFile, err := os.Create(filepath.Join(self.config.TraceDir, fmt.Sprintf("fasttrips_labels_ids_%s.csv", spec.PathID)))
	if err != nil {
		logFile.Close()
		return noopTrace(spec.PathID), func() {}
	}
	pathsetFile, err := os.Create(filepath.Join(self.config.TraceDir, fmt.Sprintf("fasttrips_pathset_%s.csv", spec.PathID)))
	if err != nil {
		logFile.Close()
		labelsFile.Close()
		return noopTrace(spec.PathID), func() {}
	}
	tr := newTrace(spec.PathID, logFile, labelsFile, pathsetFile)
	return tr, func() {
		logFile.Close()
		labelsFile.Close()
		pathsetFile.Close()
	}
}

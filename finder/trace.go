package finder

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/ttpr0/transit-pathfinder/supply"
)

// formatAttrs renders an attribute bundle as a deterministically
// ordered "key=value" list, so two runs of the same search produce
// byte-identical narration logs regardless of map iteration order.
func formatAttrs(attrs supply.AttrBundle) string {
	keys := maps.Keys(attrs)
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", k, strconv.FormatFloat(attrs[k], 'f', -1, 64))
	}
	return strings.Join(parts, ",")
}

// trace bundles the three advisory trace artifacts produced for a
// single path id when PathSpec.Trace is set: a human-readable
// narration log, a labels CSV, and a sampled-pathset CSV. It is
// per-call and never influences the computed path — disabling it must
// produce byte-identical Path/PathInfo results.
type trace struct {
	pathID  string
	log     io.Writer
	labels  *csv.Writer
	pathset *csv.Writer
}

// newTrace wires the three sinks for one path id. Any writer may be
// nil, in which case that artifact is skipped.
func newTrace(pathID string, log io.Writer, labelsOut, pathsetOut io.Writer) *trace {
	t := &trace{pathID: pathID, log: log}
	if labelsOut != nil {
		t.labels = csv.NewWriter(labelsOut)
		_ = t.labels.Write([]string{"label_iteration", "link", "node", "time", "mode", "trip_id", "link_time", "link_cost", "cost", "AB"})
	}
	if pathsetOut != nil {
		t.pathset = csv.NewWriter(pathsetOut)
		_ = t.pathset.Write([]string{"iteration", "passenger_id", "path_id", "cost", "probability", "board_stops", "trips", "alight_stops"})
	}
	return t
}

func (self *trace) Logf(format string, args ...any) {
	if self.log == nil {
		return
	}
	fmt.Fprintf(self.log, "[%s] "+format+"\n", append([]any{self.pathID}, args...)...)
}

func (self *trace) WriteLabelRow(labelIteration int, link, node string, t float64, mode, tripID string, linkTime, linkCost, cost float64, ab string) {
	if self.labels == nil {
		return
	}
	_ = self.labels.Write([]string{
		strconv.Itoa(labelIteration), link, node, strconv.FormatFloat(t, 'f', -1, 64),
		mode, tripID, strconv.FormatFloat(linkTime, 'f', -1, 64),
		strconv.FormatFloat(linkCost, 'f', -1, 64), strconv.FormatFloat(cost, 'f', -1, 64), ab,
	})
}

func (self *trace) WritePathsetRow(iteration int, passengerID, pathID string, cost, probability float64, boardStops, trips, alightStops string) {
	if self.pathset == nil {
		return
	}
	_ = self.pathset.Write([]string{
		strconv.Itoa(iteration), passengerID, pathID,
		strconv.FormatFloat(cost, 'f', -1, 64), strconv.FormatFloat(probability, 'f', -1, 64),
		boardStops, trips, alightStops,
	})
}

// Close flushes both CSV writers. Safe to call even when tracing is
// disabled entirely.
func (self *trace) Close() {
	if self.labels != nil {
		self.labels.Flush()
	}
	if self.pathset != nil {
		self.pathset.Flush()
	}
}

// noopTrace is used whenever PathSpec.Trace is false, so the labeling
// engine never has to nil-check the trace pointer itself.
func noopTrace(pathID string) *trace {
	return newTrace(pathID, nil, nil, nil)
}

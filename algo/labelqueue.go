// Package algo holds the search-scoped data structures a Finder builds
// fresh for each call: the label priority queue, the cost evaluator,
// and the stop-state store.
package algo

import (
	"container/heap"
	"fmt"

	"github.com/ttpr0/transit-pathfinder/supply"
)

// QueueInvariantError reports a violated LabelStopQueue invariant: a
// popped heap entry whose stop is unknown to the state map, or whose
// instance count has fallen to zero or below. Both conditions are
// programming errors, not recoverable search outcomes.
type QueueInvariantError struct {
	StopID  supply.StopID
	Detail  string
}

func (self *QueueInvariantError) Error() string {
	return fmt.Sprintf("algo: label queue invariant violated at stop %d: %s", self.StopID, self.Detail)
}

type queueEntry struct {
	label  float64
	stopID supply.StopID
}

type entryHeap []queueEntry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].label != h[j].label {
		return h[i].label < h[j].label
	}
	return h[i].stopID < h[j].stopID
}
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)        { *h = append(*h, x.(queueEntry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type stopRecord struct {
	bestLabel float64
	valid     bool
	instances int
}

// LabelStopQueue is a min-priority queue of (label, stop) pairs that
// guarantees at most one active entry per stop at any moment; older
// entries left behind by a re-labeling become tombstones skipped
// lazily on pop.
type LabelStopQueue struct {
	heap      entryHeap
	state     map[supply.StopID]*stopRecord
	validCount int
}

func NewLabelStopQueue() *LabelStopQueue {
	q := &LabelStopQueue{
		heap:  make(entryHeap, 0),
		state: make(map[supply.StopID]*stopRecord),
	}
	heap.Init(&q.heap)
	return q
}

// Push inserts a (label, stop) candidate. Cheaper labels for a stop
// already valid in the queue overwrite it in place (the old heap entry
// becomes a tombstone); more expensive candidates are silently
// discarded.
func (self *LabelStopQueue) Push(label float64, stopID supply.StopID) {
	rec, ok := self.state[stopID]
	if !ok {
		self.state[stopID] = &stopRecord{bestLabel: label, valid: true, instances: 1}
		heap.Push(&self.heap, queueEntry{label: label, stopID: stopID})
		self.validCount++
		return
	}
	if !rec.valid {
		rec.bestLabel = label
		rec.valid = true
		rec.instances++
		heap.Push(&self.heap, queueEntry{label: label, stopID: stopID})
		self.validCount++
		return
	}
	if label < rec.bestLabel {
		rec.bestLabel = label
		rec.instances++
		heap.Push(&self.heap, queueEntry{label: label, stopID: stopID})
		return
	}
	// present, valid, and not an improvement: discard.
}

// PopTop returns the stop with the current minimum valid label, along
// with that label, skipping stale tombstones lazily. Returns
// ok = false when the queue is empty.
func (self *LabelStopQueue) PopTop() (label float64, stopID supply.StopID, ok bool, err error) {
	for self.heap.Len() > 0 {
		top := self.heap[0]
		rec, exists := self.state[top.stopID]
		if !exists || rec.instances <= 0 {
			return 0, 0, false, &QueueInvariantError{StopID: top.stopID, Detail: "popped entry has no positive-instance state record"}
		}
		if !rec.valid || top.label != rec.bestLabel {
			heap.Pop(&self.heap)
			rec.instances--
			continue
		}
		heap.Pop(&self.heap)
		rec.valid = false
		rec.instances--
		self.validCount--
		return top.label, top.stopID, true, nil
	}
	return 0, 0, false, nil
}

// Size returns the number of stops currently holding a valid entry.
func (self *LabelStopQueue) Size() int {
	return self.validCount
}

// Empty reports whether the queue has no valid entries left.
func (self *LabelStopQueue) Empty() bool {
	return self.validCount == 0
}

package supply

import "github.com/ttpr0/transit-pathfinder/util"

// BumpWaitKey identifies a (trip, sequence, stop) boarding slot that
// reached capacity in a prior simulation iteration.
type BumpWaitKey struct {
	TripID   TripID
	Sequence int
	StopID   StopID
}

// BumpWaitMap holds the bumped-boarding-time for each capacity-limited
// slot. It is replaced wholesale by SetBumpWait; the search itself never
// mutates it.
type BumpWaitMap struct {
	times util.Dict[BumpWaitKey, float64]
}

func NewBumpWaitMap() *BumpWaitMap {
	return &BumpWaitMap{times: util.NewDict[BumpWaitKey, float64](0)}
}

// SetBumpWait replaces the bump-wait map from the [N×3] index array
// (trip, sequence, stop) and the [N] bump-time array, mirroring the
// separate bump-wait update entry point.
func (self *BumpWaitMap) SetBumpWait(index [][3]int32, bumpTimes []float64) error {
	if len(index) != len(bumpTimes) {
		return &BumpWaitSizeError{IndexRows: len(index), TimeRows: len(bumpTimes)}
	}
	times := util.NewDict[BumpWaitKey, float64](len(index))
	for i, row := range index {
		key := BumpWaitKey{
			TripID:   TripID(row[0]),
			Sequence: int(row[1]),
			StopID:   StopID(row[2]),
		}
		times[key] = bumpTimes[i]
	}
	self.times = times
	return nil
}

// Get returns the bump time for a slot, if any.
func (self *BumpWaitMap) Get(key BumpWaitKey) (float64, bool) {
	t, ok := self.times[key]
	return t, ok
}

// BumpWaitSizeError reports a mismatched row count between the index
// and bump-time arrays passed to SetBumpWait.
type BumpWaitSizeError struct {
	IndexRows int
	TimeRows  int
}

func (self *BumpWaitSizeError) Error() string {
	return "supply: bump-wait index/time row count mismatch"
}

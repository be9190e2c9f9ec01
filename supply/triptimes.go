package supply

import (
	"fmt"

	"github.com/ttpr0/transit-pathfinder/util"
)

// TripStopTime is one (trip, sequence, stop) visit with its arrive/depart
// times, in minutes after midnight.
type TripStopTime struct {
	TripID     TripID
	Sequence   int
	StopID     StopID
	ArriveTime float64
	DepartTime float64
}

// TripStopTimes indexes a trip-stop-times table both by trip (dense,
// ordered by sequence) and by stop (all visits to that stop, across
// trips, in no particular order).
type TripStopTimes struct {
	byTrip util.Dict[TripID, []TripStopTime]
	byStop util.Dict[StopID, []TripStopTime]
}

// NewTripStopTimes builds the by-trip/by-stop indices from the two
// parallel arrays the supply-loading interface hands in: an integer
// matrix of (trip, sequence, stop) and a real matrix of
// (arrive, depart). It validates that each trip's sequence numbers are
// 1..N with no gaps, per the sequence-density invariant.
func NewTripStopTimes(index [][3]int32, times [][2]float64) (*TripStopTimes, error) {
	if len(index) != len(times) {
		return nil, fmt.Errorf("supply: trip-stop-times index/time row count mismatch: %d vs %d", len(index), len(times))
	}
	byTrip := util.NewDict[TripID, []TripStopTime](0)
	for i, row := range index {
		trip := TripID(row[0])
		seq := int(row[1])
		stop := StopID(row[2])
		tst := TripStopTime{
			TripID:     trip,
			Sequence:   seq,
			StopID:     stop,
			ArriveTime: times[i][0],
			DepartTime: times[i][1],
		}
		byTrip[trip] = append(byTrip[trip], tst)
	}
	byStop := util.NewDict[StopID, []TripStopTime](0)
	for trip, visits := range byTrip {
		sortBySequence(visits)
		for i, v := range visits {
			if v.Sequence != i+1 {
				return nil, fmt.Errorf("supply: trip %d has non-dense sequence: expected %d, got %d", trip, i+1, v.Sequence)
			}
			byStop[v.StopID] = append(byStop[v.StopID], v)
		}
	}
	return &TripStopTimes{byTrip: byTrip, byStop: byStop}, nil
}

func sortBySequence(visits []TripStopTime) {
	for i := 1; i < len(visits); i++ {
		for j := i; j > 0 && visits[j].Sequence < visits[j-1].Sequence; j-- {
			visits[j], visits[j-1] = visits[j-1], visits[j]
		}
	}
}

// Trip returns the sequence-ordered stop visits for a trip.
func (self *TripStopTimes) Trip(trip TripID) ([]TripStopTime, bool) {
	visits, ok := self.byTrip[trip]
	return visits, ok
}

// AtStop returns every visit (across all trips) to the given stop.
func (self *TripStopTimes) AtStop(stop StopID) []TripStopTime {
	return self.byStop[stop]
}

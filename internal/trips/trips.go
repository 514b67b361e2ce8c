// Package trips builds the direct-trip table: for every ordered pair
// of distinct platforms, the list of DirectSegments — contiguous
// slices of a single trip's stop_times connecting them.
package trips

import (
	"github.com/antigravity/transitcore/internal/feed"
)

const secondsPerDay = 86400

// PairKey identifies a (from_platform_id, to_platform_id) ordered pair.
type PairKey [2]string

// DirectSegment is a borrowed window [FromIdx..ToIdx] (inclusive) into
// one trip's StopTimes, with FromIdx < ToIdx as a hard invariant.
type DirectSegment struct {
	Trip    *feed.Trip
	FromIdx int
	ToIdx   int
}

// NameLookup resolves a platform id to its passenger-facing stop name.
type NameLookup func(stopID string) string

// StopNames returns the passenger names encountered along the segment,
// in order.
func (s *DirectSegment) StopNames(lookup NameLookup) []string {
	names := make([]string, 0, s.ToIdx-s.FromIdx+1)
	for i := s.FromIdx; i <= s.ToIdx; i++ {
		names = append(names, lookup(s.Trip.StopTimes[i].StopID))
	}
	return names
}

func timeOrZero(t *uint32) uint32 {
	if t == nil {
		return 0
	}
	return *t
}

// DurationS is last.arrival - first.departure, with a missing time
// counted as 0 and the result saturating to 0 when it would be
// negative (so a missing arrival yields 0).
func (s *DirectSegment) DurationS() uint32 {
	departure := timeOrZero(s.Trip.StopTimes[s.FromIdx].Departure)
	arrival := timeOrZero(s.Trip.StopTimes[s.ToIdx].Arrival)
	if arrival < departure {
		return 0
	}
	return arrival - departure
}

// DepartureTime is the segment's first departure, seconds-from-midnight
// modulo one service day.
func (s *DirectSegment) DepartureTime() uint32 {
	return timeOrZero(s.Trip.StopTimes[s.FromIdx].Departure) % secondsPerDay
}

// ArrivalTime is the segment's last arrival, seconds-from-midnight
// modulo one service day.
func (s *DirectSegment) ArrivalTime() uint32 {
	return timeOrZero(s.Trip.StopTimes[s.ToIdx].Arrival) % secondsPerDay
}

// RealArrivalTime adjusts ArrivalTime for midnight wrap: if the
// segment's arrival clock-time is before its departure clock-time, the
// real arrival is one service day later.
func (s *DirectSegment) RealArrivalTime() uint32 {
	arrival := s.ArrivalTime()
	departure := s.DepartureTime()
	if arrival < departure {
		return arrival + secondsPerDay
	}
	return arrival
}

// Build computes the direct-trip table: stage 1 maps each platform to
// the set of trip ids serving it; stage 2 intersects those sets for
// every ordered platform pair and slices each qualifying trip between
// the first occurrence of each platform, keeping only from_idx <
// to_idx. Enumeration follows feed order throughout for determinism.
func Build(f *feed.Feed) map[PairKey][]*DirectSegment {
	singularTrips := make(map[string]map[int]bool, len(f.Stops))
	for _, s := range f.Stops {
		singularTrips[s.ID] = map[int]bool{}
	}
	for ti := range f.Trips {
		trip := &f.Trips[ti]
		seen := map[string]bool{}
		for _, st := range trip.StopTimes {
			if seen[st.StopID] {
				continue
			}
			seen[st.StopID] = true
			if set, ok := singularTrips[st.StopID]; ok {
				set[ti] = true
			}
		}
	}

	direct := map[PairKey][]*DirectSegment{}

	for _, from := range f.Stops {
		tripsFrom := singularTrips[from.ID]
		if len(tripsFrom) == 0 {
			continue
		}
		for _, to := range f.Stops {
			if from.ID == to.ID {
				continue
			}
			tripsTo := singularTrips[to.ID]
			if len(tripsTo) == 0 {
				continue
			}

			var segments []*DirectSegment
			for ti := range f.Trips {
				if !tripsFrom[ti] || !tripsTo[ti] {
					continue
				}
				trip := &f.Trips[ti]
				fromIdx := firstIndex(trip, from.ID)
				toIdx := firstIndex(trip, to.ID)
				if fromIdx == -1 || toIdx == -1 || fromIdx >= toIdx {
					continue
				}
				segments = append(segments, &DirectSegment{Trip: trip, FromIdx: fromIdx, ToIdx: toIdx})
			}

			if len(segments) > 0 {
				direct[PairKey{from.ID, to.ID}] = segments
			}
		}
	}

	return direct
}

func firstIndex(trip *feed.Trip, stopID string) int {
	for i, st := range trip.StopTimes {
		if st.StopID == stopID {
			return i
		}
	}
	return -1
}

// Package transit wires the index components (platform grouping,
// direct-trip indexing, the stops graph and the pairwise distance
// table) into the TransitIndex exposed to callers, and implements the
// five public query operations over it.
package transit

import (
	"time"

	"github.com/antigravity/transitcore/internal/distance"
	"github.com/antigravity/transitcore/internal/feed"
	"github.com/antigravity/transitcore/internal/graph"
	"github.com/antigravity/transitcore/internal/platforms"
	"github.com/antigravity/transitcore/internal/query"
	"github.com/antigravity/transitcore/internal/search"
	"github.com/antigravity/transitcore/internal/trips"
)

// StopPlatforms re-exports the passenger-stop grouping type so callers
// never need to import internal/platforms directly.
type StopPlatforms = platforms.StopPlatforms

// DirectSegment re-exports the direct-trip segment type.
type DirectSegment = trips.DirectSegment

// TransitIndex is the immutable, read-only index built once over a
// Feed. All of its methods are safe for concurrent use.
type TransitIndex struct {
	feed *feed.Feed

	platformGroups []*platforms.StopPlatforms
	platformsByID  map[string]*platforms.StopPlatforms
	directTrips    map[trips.PairKey][]*trips.DirectSegment
	distances      map[distance.PairKey]float64
	stopsGraph     graph.Graph

	diagnostics feed.Diagnostics
}

// New builds a TransitIndex over f. The index borrows f for its
// lifetime; DirectSegments reference slices of f's trips' StopTimes
// and must not outlive f.
func New(f *feed.Feed) *TransitIndex {
	groups, byID, skippedNames := platforms.Build(f.Stops)
	direct := trips.Build(f)

	idx := &TransitIndex{
		feed:           f,
		platformGroups: groups,
		platformsByID:  byID,
		directTrips:    direct,
		distances:      distance.Build(f.Stops),
		stopsGraph:     graph.Build(direct),
	}
	idx.diagnostics.PlatformsWithoutName = skippedNames
	for _, trip := range f.Trips {
		for _, st := range trip.StopTimes {
			if st.Arrival == nil {
				idx.diagnostics.StopTimesMissingTime++
			}
			if st.Departure == nil {
				idx.diagnostics.StopTimesMissingTime++
			}
		}
	}
	return idx
}

// Diagnostics reports rows tolerated rather than rejected while
// building the index, such as platforms missing a name or stop_times
// missing a timestamp.
func (idx *TransitIndex) Diagnostics() feed.Diagnostics {
	return idx.diagnostics
}

// SearchByName ranks StopPlatforms by descending trigram similarity of
// their name to query.
func (idx *TransitIndex) SearchByName(query string) []*platforms.StopPlatforms {
	return search.ByName(idx.platformGroups, query)
}

// FindNearestStops returns the k StopPlatforms nearest to (lon, lat).
func (idx *TransitIndex) FindNearestStops(lon, lat float64, k int) []*platforms.StopPlatforms {
	return search.Nearest(idx.platformGroups, lon, lat, k)
}

// GetDirectTrips returns the direct segments between two platforms, if
// any trip visits fromPlatformID strictly before toPlatformID.
func (idx *TransitIndex) GetDirectTrips(fromPlatformID, toPlatformID string) []*trips.DirectSegment {
	return idx.directTrips[trips.PairKey{fromPlatformID, toPlatformID}]
}

// GetStopNameFromID returns the passenger-facing name of the group
// containing platformID, if any.
func (idx *TransitIndex) GetStopNameFromID(platformID string) (string, bool) {
	group, ok := idx.platformsByID[platformID]
	if !ok {
		return "", false
	}
	return group.Name, true
}

// SegmentStopNames resolves the passenger names encountered along seg,
// in order.
func (idx *TransitIndex) SegmentStopNames(seg *trips.DirectSegment) []string {
	return seg.StopNames(func(stopID string) string {
		name, _ := idx.GetStopNameFromID(stopID)
		return name
	})
}

// FindRoute returns the 0-, 1- or 2-segment route from fromGroup to
// toGroup minimising real arrival time, considering only departures at
// or after departAfterS. A nil departAfterS defaults to the current
// local wall-clock time expressed as seconds-from-midnight.
func (idx *TransitIndex) FindRoute(fromGroup, toGroup *platforms.StopPlatforms, departAfterS *uint32) []*trips.DirectSegment {
	var start uint32
	if departAfterS != nil {
		start = *departAfterS
	} else {
		now := time.Now()
		start = uint32(now.Hour()*3600 + now.Minute()*60 + now.Second())
	}
	return query.FindRoute(fromGroup, toGroup, start, idx.directTrips, idx.stopsGraph)
}

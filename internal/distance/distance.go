// Package distance builds the symmetric pairwise haversine distance
// table between all physical platforms.
package distance

import (
	"github.com/antigravity/transitcore/internal/feed"
	"github.com/antigravity/transitcore/internal/geo"
)

// PairKey identifies an unordered pair; callers look it up with either
// ordering since both are populated.
type PairKey [2]string

// Build computes the haversine distance once per unordered pair of
// distinct platforms and stores it under both orderings. Missing
// coordinates substitute 0.0 (bug-compatible with the source).
func Build(stops []feed.Platform) map[PairKey]float64 {
	distances := make(map[PairKey]float64)

	for i, from := range stops {
		for j := i + 1; j < len(stops); j++ {
			to := stops[j]
			if from.ID == to.ID {
				continue
			}

			fromLon, fromLat := coords(from)
			toLon, toLat := coords(to)
			d := geo.HaversineMeters(fromLon, fromLat, toLon, toLat)

			distances[PairKey{from.ID, to.ID}] = d
			distances[PairKey{to.ID, from.ID}] = d
		}
	}

	return distances
}

func coords(p feed.Platform) (lon, lat float64) {
	if p.Lon != nil {
		lon = *p.Lon
	}
	if p.Lat != nil {
		lat = *p.Lat
	}
	return
}

// Package search implements the two ancillary lookups over
// StopPlatforms: fuzzy name search and nearest-stop search.
package search

import (
	"sort"
	"strings"

	"github.com/antigravity/transitcore/internal/geo"
	"github.com/antigravity/transitcore/internal/platforms"
)

// trigramSet returns the set of 3-grams of s after lowercasing and
// padding with two leading/trailing spaces, matching the `trigram`
// crate's padding semantics that the source relies on.
func trigramSet(s string) map[string]bool {
	padded := "  " + strings.ToLower(s) + "  "
	runes := []rune(padded)
	grams := map[string]bool{}
	for i := 0; i+3 <= len(runes); i++ {
		grams[string(runes[i:i+3])] = true
	}
	return grams
}

// Similarity is the Jaccard ratio over the 3-gram sets of a and b.
// Two empty-gram-set inputs are defined as fully similar.
func Similarity(a, b string) float64 {
	setA := trigramSet(a)
	setB := trigramSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}

	intersection := 0
	for g := range setA {
		if setB[g] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// ByName ranks groups by descending trigram similarity of their Name to
// query. Ties keep the input (insertion) order, matching the source's
// stable sort over map-derived insertion order.
func ByName(groups []*platforms.StopPlatforms, query string) []*platforms.StopPlatforms {
	type scored struct {
		score float64
		group *platforms.StopPlatforms
	}
	weighted := make([]scored, len(groups))
	for i, g := range groups {
		weighted[i] = scored{score: Similarity(g.Name, query), group: g}
	}

	sort.SliceStable(weighted, func(i, j int) bool {
		return weighted[i].score > weighted[j].score
	})

	result := make([]*platforms.StopPlatforms, len(weighted))
	for i, w := range weighted {
		result[i] = w.group
	}
	return result
}

// distanceToLocation is the minimum haversine distance from any
// platform in the group to (lon, lat). Missing coordinates substitute
// 0.0, matching the source's bug-compatible fallback (see DESIGN.md).
func distanceToLocation(g *platforms.StopPlatforms, lon, lat float64) float64 {
	best := -1.0
	for _, p := range g.Platforms {
		plon, plat := 0.0, 0.0
		if p.Lon != nil {
			plon = *p.Lon
		}
		if p.Lat != nil {
			plat = *p.Lat
		}
		d := geo.HaversineMeters(lon, lat, plon, plat)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// Nearest returns the k groups closest to (lon, lat), nearest first.
// Ties keep the input group order. k <= 0 yields an empty slice.
func Nearest(groups []*platforms.StopPlatforms, lon, lat float64, k int) []*platforms.StopPlatforms {
	if k <= 0 {
		return nil
	}

	type ranked struct {
		distance float64
		group    *platforms.StopPlatforms
	}
	all := make([]ranked, len(groups))
	for i, g := range groups {
		all[i] = ranked{distance: distanceToLocation(g, lon, lat), group: g}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].distance < all[j].distance
	})

	if k > len(all) {
		k = len(all)
	}
	result := make([]*platforms.StopPlatforms, k)
	for i := 0; i < k; i++ {
		result[i] = all[i].group
	}
	return result
}

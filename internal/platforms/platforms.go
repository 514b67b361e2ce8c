// Package platforms groups physical GTFS stops that share a
// passenger-facing name into StopPlatforms, the unit passengers
// perceive as a single stop (and the unit at which transfers happen).
package platforms

import (
	"sort"

	"github.com/antigravity/transitcore/internal/feed"
)

// StopPlatforms is one passenger stop: a name plus the ordered physical
// platforms bearing it.
type StopPlatforms struct {
	Name      string
	Platforms []feed.Platform
}

// Build groups stops, returning the groups in deterministic
// (name-sorted) order plus the platform_id -> group mapping over every
// named platform. Platforms whose Name is nil are skipped from the name
// set and are absent from both; the third return value counts how many
// were skipped.
func Build(stops []feed.Platform) ([]*StopPlatforms, map[string]*StopPlatforms, int) {
	names := map[string]bool{}
	skipped := 0
	for _, s := range stops {
		if s.Name == nil {
			skipped++
			continue
		}
		names[*s.Name] = true
	}

	sortedNames := make([]string, 0, len(names))
	for n := range names {
		sortedNames = append(sortedNames, n)
	}
	sort.Strings(sortedNames)

	groups := make([]*StopPlatforms, 0, len(sortedNames))
	byID := map[string]*StopPlatforms{}

	for _, name := range sortedNames {
		group := &StopPlatforms{Name: name}
		for _, s := range stops {
			if s.Name != nil && *s.Name == name {
				group.Platforms = append(group.Platforms, s)
			}
		}
		groups = append(groups, group)
		for _, p := range group.Platforms {
			byID[p.ID] = group
		}
	}

	return groups, byID, skipped
}

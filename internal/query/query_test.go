package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/transitcore/internal/feed"
	"github.com/antigravity/transitcore/internal/graph"
	"github.com/antigravity/transitcore/internal/platforms"
	"github.com/antigravity/transitcore/internal/trips"
)

func u32p(v uint32) *uint32 { return &v }

func segment(tripID string, fromStop string, fromTime uint32, toStop string, toTime uint32) *trips.DirectSegment {
	trip := &feed.Trip{
		ID: tripID,
		StopTimes: []feed.StopTime{
			{StopID: fromStop, Arrival: u32p(fromTime), Departure: u32p(fromTime)},
			{StopID: toStop, Arrival: u32p(toTime), Departure: u32p(toTime)},
		},
	}
	return &trips.DirectSegment{Trip: trip, FromIdx: 0, ToIdx: 1}
}

func TestFindRoutePrefersEarlierDirectArrival(t *testing.T) {
	fromGroup := &platforms.StopPlatforms{Name: "A", Platforms: []feed.Platform{{ID: "P1"}}}
	toGroup := &platforms.StopPlatforms{Name: "B", Platforms: []feed.Platform{{ID: "P2"}}}

	early := segment("T1", "P1", 100, "P2", 200)
	late := segment("T2", "P1", 300, "P2", 400)
	direct := map[trips.PairKey][]*trips.DirectSegment{
		{"P1", "P2"}: {late, early},
	}

	route := FindRoute(fromGroup, toGroup, 0, direct, graph.Build(direct))

	require.Len(t, route, 1)
	assert.Same(t, early, route[0])
}

func TestFindRouteRespectsDepartAfter(t *testing.T) {
	fromGroup := &platforms.StopPlatforms{Name: "A", Platforms: []feed.Platform{{ID: "P1"}}}
	toGroup := &platforms.StopPlatforms{Name: "B", Platforms: []feed.Platform{{ID: "P2"}}}

	seg := segment("T1", "P1", 100, "P2", 200)
	direct := map[trips.PairKey][]*trips.DirectSegment{{"P1", "P2"}: {seg}}

	route := FindRoute(fromGroup, toGroup, 150, direct, graph.Build(direct))
	assert.Empty(t, route)
}

func TestFindRouteUsesSingleTransfer(t *testing.T) {
	fromGroup := &platforms.StopPlatforms{Name: "A", Platforms: []feed.Platform{{ID: "P1"}}}
	toGroup := &platforms.StopPlatforms{Name: "C", Platforms: []feed.Platform{{ID: "P3"}}}

	leg1 := segment("T1", "P1", 100, "P2", 200)
	leg2 := segment("T2", "P2", 210, "P3", 300)
	direct := map[trips.PairKey][]*trips.DirectSegment{
		{"P1", "P2"}: {leg1},
		{"P2", "P3"}: {leg2},
	}

	route := FindRoute(fromGroup, toGroup, 0, direct, graph.Build(direct))

	require.Len(t, route, 2)
	assert.Same(t, leg1, route[0])
	assert.Same(t, leg2, route[1])
}

func TestFindRouteRejectsTransferArrivingAfterLeg2Departure(t *testing.T) {
	fromGroup := &platforms.StopPlatforms{Name: "A", Platforms: []feed.Platform{{ID: "P1"}}}
	toGroup := &platforms.StopPlatforms{Name: "C", Platforms: []feed.Platform{{ID: "P3"}}}

	leg1 := segment("T1", "P1", 100, "P2", 300)
	leg2 := segment("T2", "P2", 200, "P3", 400) // departs before leg1 arrives
	direct := map[trips.PairKey][]*trips.DirectSegment{
		{"P1", "P2"}: {leg1},
		{"P2", "P3"}: {leg2},
	}

	route := FindRoute(fromGroup, toGroup, 0, direct, graph.Build(direct))
	assert.Empty(t, route)
}

func TestFindRouteNoConnectionReturnsEmpty(t *testing.T) {
	fromGroup := &platforms.StopPlatforms{Name: "A", Platforms: []feed.Platform{{ID: "P1"}}}
	toGroup := &platforms.StopPlatforms{Name: "Z", Platforms: []feed.Platform{{ID: "P9"}}}

	route := FindRoute(fromGroup, toGroup, 0, map[trips.PairKey][]*trips.DirectSegment{}, graph.Build(nil))
	assert.Empty(t, route)
}

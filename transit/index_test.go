package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/transitcore/internal/feed"
)

func strp(s string) *string   { return &s }
func f64p(v float64) *float64 { return &v }
func u32p(v uint32) *uint32   { return &v }

func platform(id, name string, lon, lat float64) feed.Platform {
	return feed.Platform{ID: id, Name: strp(name), Lon: f64p(lon), Lat: f64p(lat)}
}

func st(stopID string, seconds uint32) feed.StopTime {
	return feed.StopTime{StopID: stopID, Arrival: u32p(seconds), Departure: u32p(seconds)}
}

// buildSampleFeed builds a small feed exercising platform grouping,
// direct trips and single-transfer routing: two platforms sharing the
// name "A", a "B" and a "C" platform, and four trips across three
// routes.
func buildSampleFeed() *feed.Feed {
	return &feed.Feed{
		Stops: []feed.Platform{
			platform("P1", "A", 0.0, 0.0),
			platform("P2", "A", 0.0001, 0.0),
			platform("P3", "B", 1.0, 1.0),
			platform("P4", "C", 2.0, 2.0),
		},
		Trips: []feed.Trip{
			{
				ID:      "T1",
				RouteID: "R1",
				StopTimes: []feed.StopTime{
					st("P1", 8*3600),
					st("P3", 8*3600+10*60),
					st("P4", 8*3600+25*60),
				},
			},
			{
				ID:      "T2",
				RouteID: "R1",
				StopTimes: []feed.StopTime{
					st("P1", 9*3600),
					st("P3", 9*3600+10*60),
					st("P4", 9*3600+25*60),
				},
			},
			{
				ID:      "T3",
				RouteID: "R2",
				StopTimes: []feed.StopTime{
					st("P3", 8*3600+12*60),
					st("P4", 8*3600+18*60),
				},
			},
			{
				ID:      "T4",
				RouteID: "R3",
				StopTimes: []feed.StopTime{
					st("P2", 8*3600),
					st("P4", 8*3600+30*60),
				},
			},
		},
		Routes: map[string]feed.Route{
			"R1": {ID: "R1"},
			"R2": {ID: "R2"},
			"R3": {ID: "R3"},
		},
	}
}

func groupNamed(idx *TransitIndex, name string) *StopPlatforms {
	for _, g := range idx.SearchByName(name) {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func TestFindRouteDirectScenario(t *testing.T) {
	idx := New(buildSampleFeed())
	groupA, groupB := groupNamed(idx, "A"), groupNamed(idx, "B")
	require.NotNil(t, groupA)
	require.NotNil(t, groupB)

	depart := uint32(7 * 3600)
	route := idx.FindRoute(groupA, groupB, &depart)

	require.Len(t, route, 1)
	assert.Equal(t, "T1", route[0].Trip.ID)
	assert.Equal(t, uint32(8*3600+10*60), route[0].RealArrivalTime())
}

func TestFindRouteTransferBeatsLaterDirect(t *testing.T) {
	idx := New(buildSampleFeed())
	groupA, groupC := groupNamed(idx, "A"), groupNamed(idx, "C")
	require.NotNil(t, groupA)
	require.NotNil(t, groupC)

	depart := uint32(7 * 3600)
	route := idx.FindRoute(groupA, groupC, &depart)

	require.Len(t, route, 2)
	assert.Equal(t, "T1", route[0].Trip.ID)
	assert.Equal(t, "T3", route[1].Trip.ID)
	assert.Equal(t, uint32(8*3600+18*60), route[1].RealArrivalTime())
}

func TestFindRouteSkipsEarlierDepartures(t *testing.T) {
	idx := New(buildSampleFeed())
	groupA, groupC := groupNamed(idx, "A"), groupNamed(idx, "C")
	require.NotNil(t, groupA)
	require.NotNil(t, groupC)

	depart := uint32(8*3600 + 20*60)
	route := idx.FindRoute(groupA, groupC, &depart)

	require.Len(t, route, 1)
	assert.Equal(t, "T2", route[0].Trip.ID)
	assert.Equal(t, uint32(9*3600+25*60), route[0].RealArrivalTime())
}

func TestFindRouteNoPathReturnsEmpty(t *testing.T) {
	idx := New(buildSampleFeed())
	groupA, groupB := groupNamed(idx, "A"), groupNamed(idx, "B")
	require.NotNil(t, groupA)
	require.NotNil(t, groupB)

	depart := uint32(7 * 3600)
	route := idx.FindRoute(groupB, groupA, &depart)

	assert.Empty(t, route)
}

func TestSearchByNameTopResult(t *testing.T) {
	idx := New(buildSampleFeed())
	results := idx.SearchByName("A")
	require.NotEmpty(t, results)
	assert.Equal(t, "A", results[0].Name)
}

func TestFindNearestStopsOrigin(t *testing.T) {
	idx := New(buildSampleFeed())
	nearest := idx.FindNearestStops(0.0, 0.0, 1)
	require.Len(t, nearest, 1)
	assert.Equal(t, "A", nearest[0].Name)
}

func TestDiagnosticsCountsUnnamedPlatforms(t *testing.T) {
	f := buildSampleFeed()
	f.Stops = append(f.Stops, feed.Platform{ID: "P5"})

	idx := New(f)
	assert.Equal(t, 1, idx.Diagnostics().PlatformsWithoutName)
}

func TestGetDirectTripsExcludesReverseDirection(t *testing.T) {
	idx := New(buildSampleFeed())
	assert.Empty(t, idx.GetDirectTrips("P3", "P1"))
	assert.NotEmpty(t, idx.GetDirectTrips("P1", "P3"))
}

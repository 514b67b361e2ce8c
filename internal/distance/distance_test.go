package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/transitcore/internal/feed"
)

func f64p(v float64) *float64 { return &v }

func TestBuildIsSymmetric(t *testing.T) {
	stops := []feed.Platform{
		{ID: "P1", Lon: f64p(2.35), Lat: f64p(48.85)},
		{ID: "P2", Lon: f64p(4.83), Lat: f64p(45.76)},
	}

	d := Build(stops)

	require.Contains(t, d, PairKey{"P1", "P2"})
	require.Contains(t, d, PairKey{"P2", "P1"})
	assert.Equal(t, d[PairKey{"P1", "P2"}], d[PairKey{"P2", "P1"}])
}

func TestBuildExcludesSelfPairs(t *testing.T) {
	stops := []feed.Platform{{ID: "P1", Lon: f64p(0), Lat: f64p(0)}}
	d := Build(stops)
	assert.NotContains(t, d, PairKey{"P1", "P1"})
}

func TestBuildMissingCoordinatesFallBackToZero(t *testing.T) {
	stops := []feed.Platform{
		{ID: "P1"},
		{ID: "P2", Lon: f64p(0), Lat: f64p(0)},
	}
	d := Build(stops)
	assert.Equal(t, 0.0, d[PairKey{"P1", "P2"}])
}

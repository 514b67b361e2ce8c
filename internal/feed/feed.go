// Package feed defines the externally supplied GTFS-shaped schedule the
// transit index is built from. Parsing raw GTFS into these shapes is
// handled by internal/csvfeed and internal/pgfeed; this package only
// describes the data itself.
package feed

// Platform is a single physical stop location. Name, Lon, Lat, Code and
// Zone are optional, mirroring GTFS stops.txt.
type Platform struct {
	ID   string
	Name *string
	Lon  *float64
	Lat  *float64
	Code *string
	Zone *string
}

// StopTime binds a trip to one of its platforms with optional
// seconds-from-midnight timestamps. GTFS allows these to exceed 86400
// for trips that run past midnight.
type StopTime struct {
	StopID    string
	Arrival   *uint32
	Departure *uint32
}

// Trip is an ordered, non-empty sequence of StopTimes along one route.
type Trip struct {
	ID        string
	RouteID   string
	StopTimes []StopTime
}

// Route carries the minimal route metadata the core consumes.
type Route struct {
	ID        string
	ShortName *string
}

// Feed is the complete parsed schedule the index is built over.
type Feed struct {
	Stops  []Platform
	Trips  []Trip
	Routes map[string]Route
}

// Diagnostics counts rows tolerated (not rejected) during feed
// construction, per the skip-silently/coerce-to-zero policy the core
// applies. Loaders populate this, and transit.New computes the same
// counts over the feed it indexes. StopTimesMissingTime counts missing
// arrival and departure values separately.
type Diagnostics struct {
	PlatformsWithoutName int
	StopTimesMissingTime int
}

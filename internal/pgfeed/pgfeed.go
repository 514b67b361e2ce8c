// Package pgfeed loads a schedule feed from a Postgres database into an
// internal/feed.Feed, for deployments that keep GTFS tables in a
// database rather than shipping a static feed directory.
package pgfeed

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antigravity/transitcore/internal/feed"
)

// Loader reads stops, routes, trips and stop_times tables out of a
// Postgres database shaped like a static GTFS feed.
type Loader struct {
	db *pgxpool.Pool
}

// NewLoader wraps an already-connected pool. Callers own the pool's
// lifetime and must close it after the feed has been loaded.
func NewLoader(db *pgxpool.Pool) *Loader {
	return &Loader{db: db}
}

// Load reads the whole feed in four queries and assembles a feed.Feed.
func (l *Loader) Load(ctx context.Context) (*feed.Feed, feed.Diagnostics, error) {
	var diag feed.Diagnostics
	start := time.Now()

	stops, err := l.loadStops(ctx, &diag)
	if err != nil {
		return nil, diag, err
	}
	log.Printf("pgfeed: loaded %d stops", len(stops))

	routes, err := l.loadRoutes(ctx)
	if err != nil {
		return nil, diag, err
	}
	log.Printf("pgfeed: loaded %d routes", len(routes))

	trips, err := l.loadTrips(ctx, &diag)
	if err != nil {
		return nil, diag, err
	}
	log.Printf("pgfeed: loaded %d trips", len(trips))

	log.Printf("pgfeed: feed load complete in %s", time.Since(start))
	return &feed.Feed{Stops: stops, Trips: trips, Routes: routes}, diag, nil
}

func (l *Loader) loadStops(ctx context.Context, diag *feed.Diagnostics) ([]feed.Platform, error) {
	rows, err := l.db.Query(ctx, `
		SELECT stop_id, stop_name, stop_code, zone_id,
		       ST_X(location::geometry), ST_Y(location::geometry)
		FROM stops
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var platforms []feed.Platform
	for rows.Next() {
		var (
			id             string
			name, code, zn *string
			lon, lat       *float64
		)
		if err := rows.Scan(&id, &name, &code, &zn, &lon, &lat); err != nil {
			return nil, err
		}
		if name == nil {
			diag.PlatformsWithoutName++
		}
		platforms = append(platforms, feed.Platform{
			ID: id, Name: name, Code: code, Zone: zn, Lon: lon, Lat: lat,
		})
	}
	return platforms, rows.Err()
}

func (l *Loader) loadRoutes(ctx context.Context) (map[string]feed.Route, error) {
	rows, err := l.db.Query(ctx, `SELECT route_id, route_short_name FROM routes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make(map[string]feed.Route)
	for rows.Next() {
		var id string
		var shortName *string
		if err := rows.Scan(&id, &shortName); err != nil {
			return nil, err
		}
		routes[id] = feed.Route{ID: id, ShortName: shortName}
	}
	return routes, rows.Err()
}

func (l *Loader) loadTrips(ctx context.Context, diag *feed.Diagnostics) ([]feed.Trip, error) {
	tripRows, err := l.db.Query(ctx, `SELECT trip_id, route_id FROM trips ORDER BY trip_id`)
	if err != nil {
		return nil, err
	}
	tripRouteOf := make(map[string]string)
	var tripOrder []string
	for tripRows.Next() {
		var tripID, routeID string
		if err := tripRows.Scan(&tripID, &routeID); err != nil {
			tripRows.Close()
			return nil, err
		}
		tripRouteOf[tripID] = routeID
		tripOrder = append(tripOrder, tripID)
	}
	tripRows.Close()
	if err := tripRows.Err(); err != nil {
		return nil, err
	}

	stopTimeRows, err := l.db.Query(ctx, `
		SELECT trip_id, stop_id, stop_sequence, arrival_time, departure_time
		FROM stop_times
		ORDER BY trip_id, stop_sequence
	`)
	if err != nil {
		return nil, err
	}
	defer stopTimeRows.Close()

	byTrip := make(map[string][]feed.StopTime)
	for stopTimeRows.Next() {
		var tripID, stopID string
		var sequence int
		var arrival, departure *int64
		if err := stopTimeRows.Scan(&tripID, &stopID, &sequence, &arrival, &departure); err != nil {
			return nil, err
		}
		st := feed.StopTime{StopID: stopID}
		if arrival != nil {
			v := uint32(*arrival)
			st.Arrival = &v
		} else {
			diag.StopTimesMissingTime++
		}
		if departure != nil {
			v := uint32(*departure)
			st.Departure = &v
		} else {
			diag.StopTimesMissingTime++
		}
		byTrip[tripID] = append(byTrip[tripID], st)
	}
	if err := stopTimeRows.Err(); err != nil {
		return nil, err
	}

	trips := make([]feed.Trip, 0, len(tripOrder))
	for _, tripID := range tripOrder {
		trips = append(trips, feed.Trip{
			ID:        tripID,
			RouteID:   tripRouteOf[tripID],
			StopTimes: byTrip[tripID],
		})
	}
	return trips, nil
}

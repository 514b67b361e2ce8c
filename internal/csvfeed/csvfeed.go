// Package csvfeed loads a static GTFS text feed (stops.txt, routes.txt,
// trips.txt, stop_times.txt) from a directory or zip archive into an
// internal/feed.Feed. It does not fetch feeds over the network or
// validate the full GTFS schema — it's a minimal, tolerant reader
// sufficient to exercise the transit index.
package csvfeed

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/antigravity/transitcore/internal/feed"
)

type stopRow struct {
	ID    string `csv:"stop_id"`
	Code  string `csv:"stop_code"`
	Name  string `csv:"stop_name"`
	Lat   string `csv:"stop_lat"`
	Lon   string `csv:"stop_lon"`
	Zone  string `csv:"zone_id"`
}

type routeRow struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
}

type tripRow struct {
	ID      string `csv:"trip_id"`
	RouteID string `csv:"route_id"`
}

type stopTimeRow struct {
	TripID       string `csv:"trip_id"`
	StopID       string `csv:"stop_id"`
	StopSequence int    `csv:"stop_sequence"`
	Arrival      string `csv:"arrival_time"`
	Departure    string `csv:"departure_time"`
}

// Open returns an fs.FS over path, which may be a directory or a .zip
// archive (a raw, unfetched GTFS static feed).
func Open(path string) (fs.FS, error) {
	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		r, err := zip.OpenReader(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening GTFS zip '%s'", path)
		}
		return r, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "opening GTFS directory '%s'", path)
	}
	return os.DirFS(path), nil
}

// Load reads stops.txt, routes.txt, trips.txt and stop_times.txt from
// fsys and assembles a feed.Feed. It returns accumulated Diagnostics
// describing rows it tolerated rather than rejected.
func Load(fsys fs.FS) (*feed.Feed, feed.Diagnostics, error) {
	var diag feed.Diagnostics

	stops, err := loadStops(fsys, &diag)
	if err != nil {
		return nil, diag, err
	}

	routes, err := loadRoutes(fsys)
	if err != nil {
		return nil, diag, err
	}

	tripRoutes, err := loadTripRoutes(fsys)
	if err != nil {
		return nil, diag, err
	}

	trips, err := loadStopTimes(fsys, tripRoutes, &diag)
	if err != nil {
		return nil, diag, err
	}

	return &feed.Feed{Stops: stops, Trips: trips, Routes: routes}, diag, nil
}

func openCSV(fsys fs.FS, name string) (io.ReadCloser, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", name)
	}
	return f, nil
}

func loadStops(fsys fs.FS, diag *feed.Diagnostics) ([]feed.Platform, error) {
	f, err := openCSV(fsys, "stops.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows := []*stopRow{}
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, errors.Wrap(err, "unmarshaling stops.txt")
	}

	platforms := make([]feed.Platform, 0, len(rows))
	for _, r := range rows {
		p := feed.Platform{ID: r.ID}
		if r.Name != "" {
			name := r.Name
			p.Name = &name
		} else {
			diag.PlatformsWithoutName++
		}
		if r.Code != "" {
			code := r.Code
			p.Code = &code
		}
		if r.Zone != "" {
			zone := r.Zone
			p.Zone = &zone
		}
		if lat, err := strconv.ParseFloat(r.Lat, 64); err == nil {
			p.Lat = &lat
		}
		if lon, err := strconv.ParseFloat(r.Lon, 64); err == nil {
			p.Lon = &lon
		}
		platforms = append(platforms, p)
	}

	return platforms, nil
}

func loadRoutes(fsys fs.FS) (map[string]feed.Route, error) {
	f, err := openCSV(fsys, "routes.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows := []*routeRow{}
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, errors.Wrap(err, "unmarshaling routes.txt")
	}

	routes := make(map[string]feed.Route, len(rows))
	for _, r := range rows {
		route := feed.Route{ID: r.ID}
		if r.ShortName != "" {
			name := r.ShortName
			route.ShortName = &name
		}
		routes[r.ID] = route
	}
	return routes, nil
}

func loadTripRoutes(fsys fs.FS) (map[string]string, error) {
	f, err := openCSV(fsys, "trips.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows := []*tripRow{}
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, errors.Wrap(err, "unmarshaling trips.txt")
	}

	tripRoutes := make(map[string]string, len(rows))
	for _, r := range rows {
		tripRoutes[r.ID] = r.RouteID
	}
	return tripRoutes, nil
}

func loadStopTimes(fsys fs.FS, tripRoutes map[string]string, diag *feed.Diagnostics) ([]feed.Trip, error) {
	f, err := openCSV(fsys, "stop_times.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows := []*stopTimeRow{}
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, errors.Wrap(err, "unmarshaling stop_times.txt")
	}

	tripOrder := []string{}
	byTrip := map[string][]*stopTimeRow{}
	for _, r := range rows {
		if _, seen := byTrip[r.TripID]; !seen {
			tripOrder = append(tripOrder, r.TripID)
		}
		byTrip[r.TripID] = append(byTrip[r.TripID], r)
	}

	trips := make([]feed.Trip, 0, len(tripOrder))
	for _, tripID := range tripOrder {
		tripRows := byTrip[tripID]
		// stop_times.txt rows for a trip must be ordered by stop_sequence.
		sortBySequence(tripRows)

		stopTimes := make([]feed.StopTime, 0, len(tripRows))
		for _, r := range tripRows {
			st := feed.StopTime{StopID: r.StopID}
			if arrival, ok := parseGTFSTime(r.Arrival); ok {
				st.Arrival = &arrival
			} else {
				diag.StopTimesMissingTime++
			}
			if departure, ok := parseGTFSTime(r.Departure); ok {
				st.Departure = &departure
			} else {
				diag.StopTimesMissingTime++
			}
			stopTimes = append(stopTimes, st)
		}

		trips = append(trips, feed.Trip{
			ID:        tripID,
			RouteID:   tripRoutes[tripID],
			StopTimes: stopTimes,
		})
	}

	return trips, nil
}

func sortBySequence(rows []*stopTimeRow) {
	for i := 1; i < len(rows); i++ {
		j := i
		for j > 0 && rows[j-1].StopSequence > rows[j].StopSequence {
			rows[j-1], rows[j] = rows[j], rows[j-1]
			j--
		}
	}
}

// parseGTFSTime parses "H:MM:SS" / "HH:MM:SS" (hours may exceed 23 for
// post-midnight trips, per GTFS convention) into seconds-from-midnight.
func parseGTFSTime(s string) (uint32, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return uint32(h*3600 + m*60 + sec), true
}

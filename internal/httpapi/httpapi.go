// Package httpapi exposes the transit index's query operations over
// HTTP, chi-routed in the same style as the rest of the stack.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/antigravity/transitcore/internal/metrics"
	"github.com/antigravity/transitcore/transit"
)

// API holds the dependencies of the HTTP surface.
type API struct {
	Index *transit.TransitIndex
}

// NewRouter builds the chi router for the API, including logging,
// panic recovery, request timeout, CORS and Prometheus middleware.
func NewRouter(api *API) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(metrics.Middleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stops/search", api.SearchStops)
		r.Get("/stops/nearest", api.NearestStops)
		r.Get("/trips/direct", api.DirectTrips)
		r.Get("/route", api.FindRoute)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	http.Error(w, message, status)
}

// SearchStops handles GET /api/v1/stops/search?q=<query>.
func (a *API) SearchStops(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	start := time.Now()
	results := a.Index.SearchByName(q)
	metrics.ObserveQuery("search_by_name", time.Since(start))

	writeJSON(w, http.StatusOK, results)
}

// NearestStops handles GET /api/v1/stops/nearest?lon=&lat=&k=.
func (a *API) NearestStops(w http.ResponseWriter, r *http.Request) {
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or missing lon parameter")
		return
	}
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or missing lat parameter")
		return
	}
	k := 5
	if kParam := r.URL.Query().Get("k"); kParam != "" {
		if parsed, err := strconv.Atoi(kParam); err == nil {
			k = parsed
		}
	}

	start := time.Now()
	results := a.Index.FindNearestStops(lon, lat, k)
	metrics.ObserveQuery("find_nearest_stops", time.Since(start))

	writeJSON(w, http.StatusOK, results)
}

// DirectTrips handles GET /api/v1/trips/direct?from=&to=.
func (a *API) DirectTrips(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "missing from/to parameters")
		return
	}

	start := time.Now()
	segments := a.Index.GetDirectTrips(from, to)
	metrics.ObserveQuery("get_direct_trips", time.Since(start))

	writeJSON(w, http.StatusOK, segments)
}

// FindRoute handles GET /api/v1/route?from=&to=&depart_after=.
// from/to name stop platform groups by name; depart_after is
// seconds-from-midnight and defaults to the current wall-clock time.
func (a *API) FindRoute(w http.ResponseWriter, r *http.Request) {
	fromName := r.URL.Query().Get("from")
	toName := r.URL.Query().Get("to")
	if fromName == "" || toName == "" {
		writeError(w, http.StatusBadRequest, "missing from/to parameters")
		return
	}

	fromGroup := topSearchHit(a.Index.SearchByName(fromName))
	toGroup := topSearchHit(a.Index.SearchByName(toName))
	if fromGroup == nil || toGroup == nil {
		writeError(w, http.StatusNotFound, "unknown from/to stop name")
		return
	}

	var departAfter *uint32
	if param := r.URL.Query().Get("depart_after"); param != "" {
		if parsed, err := strconv.ParseUint(param, 10, 32); err == nil {
			v := uint32(parsed)
			departAfter = &v
		}
	}

	start := time.Now()
	route := a.Index.FindRoute(fromGroup, toGroup, departAfter)
	metrics.ObserveQuery("find_route", time.Since(start))

	writeJSON(w, http.StatusOK, route)
}

func topSearchHit(groups []*transit.StopPlatforms) *transit.StopPlatforms {
	if len(groups) == 0 {
		return nil
	}
	return groups[0]
}

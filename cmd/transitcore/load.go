package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antigravity/transitcore/internal/config"
	"github.com/antigravity/transitcore/internal/csvfeed"
	"github.com/antigravity/transitcore/internal/feed"
	"github.com/antigravity/transitcore/internal/pgfeed"
	"github.com/antigravity/transitcore/transit"
)

// loadIndex loads a Feed per cfg.Feed.Source (csv or postgres) and
// builds a TransitIndex over it. For csv, the --feed flag's value is
// used whenever it is non-empty; since the flag defaults to ./gtfs,
// cfg.Feed.Path is used only when --feed is set to an empty string.
func loadIndex(ctx context.Context, cfg *config.Config) (*transit.TransitIndex, feed.Diagnostics, error) {
	var f *feed.Feed
	var diag feed.Diagnostics
	var err error

	switch cfg.Feed.Source {
	case "postgres":
		pool, poolErr := pgxpool.New(ctx, cfg.Feed.DatabaseURL)
		if poolErr != nil {
			return nil, diag, fmt.Errorf("connecting to postgres: %w", poolErr)
		}
		defer pool.Close()

		f, diag, err = pgfeed.NewLoader(pool).Load(ctx)
	default:
		path := cfg.Feed.Path
		if feedPath != "" {
			path = feedPath
		}

		fs, openErr := csvfeed.Open(path)
		if openErr != nil {
			return nil, diag, fmt.Errorf("opening feed '%s': %w", path, openErr)
		}
		f, diag, err = csvfeed.Load(fs)
	}

	if err != nil {
		return nil, diag, fmt.Errorf("loading feed: %w", err)
	}

	return transit.New(f), diag, nil
}

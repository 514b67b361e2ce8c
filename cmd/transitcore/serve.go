package main

import (
	"context"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/antigravity/transitcore/internal/config"
	"github.com/antigravity/transitcore/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load a feed and serve the HTTP query API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		idx, diag, err := loadIndex(context.Background(), cfg)
		if err != nil {
			return err
		}
		log.Printf("loaded feed: %d platforms without a name, %d missing stop_time timestamps",
			diag.PlatformsWithoutName, diag.StopTimesMissingTime)

		router := httpapi.NewRouter(&httpapi.API{Index: idx})

		log.Printf("transitcore listening on %s", cfg.Server.Addr())
		return http.ListenAndServe(cfg.Server.Addr(), router)
	},
}

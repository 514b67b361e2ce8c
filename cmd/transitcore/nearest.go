package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/antigravity/transitcore/internal/config"
)

var nearestCmd = &cobra.Command{
	Use:   "nearest <lon> <lat> <k>",
	Short: "Find the k stop-name platform groups nearest to a coordinate",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		lon, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid lon '%s': %w", args[0], err)
		}
		lat, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid lat '%s': %w", args[1], err)
		}
		k, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid k '%s': %w", args[2], err)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		idx, _, err := loadIndex(context.Background(), cfg)
		if err != nil {
			return err
		}

		for _, group := range idx.FindNearestStops(lon, lat, k) {
			fmt.Printf("%s\t(%d platforms)\n", group.Name, len(group.Platforms))
		}
		return nil
	},
}

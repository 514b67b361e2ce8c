package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antigravity/transitcore/internal/config"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank stop-name platform groups by similarity to a query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		idx, _, err := loadIndex(context.Background(), cfg)
		if err != nil {
			return err
		}

		for _, group := range idx.SearchByName(args[0]) {
			fmt.Printf("%s\t(%d platforms)\n", group.Name, len(group.Platforms))
		}
		return nil
	},
}

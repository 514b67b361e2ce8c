package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var feedPath string

var rootCmd = &cobra.Command{
	Use:          "transitcore",
	Short:        "transitcore is an in-memory GTFS trip planner",
	Long:         "Loads a static GTFS feed and answers stop search, nearest-stop and earliest-arrival queries against it.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&feedPath, "feed", "./gtfs", "GTFS feed directory or zip file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(nearestCmd)
	rootCmd.AddCommand(routeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

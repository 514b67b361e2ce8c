package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antigravity/transitcore/internal/config"
	"github.com/antigravity/transitcore/transit"
)

var departAfterFlag string

var routeCmd = &cobra.Command{
	Use:   "route <from> <to>",
	Short: "Find the earliest-arrival, at-most-one-transfer route between two named stops",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		idx, _, err := loadIndex(context.Background(), cfg)
		if err != nil {
			return err
		}

		fromGroup := bestMatch(idx.SearchByName(args[0]))
		toGroup := bestMatch(idx.SearchByName(args[1]))
		if fromGroup == nil {
			return fmt.Errorf("no stop matching '%s'", args[0])
		}
		if toGroup == nil {
			return fmt.Errorf("no stop matching '%s'", args[1])
		}

		var departAfter *uint32
		if departAfterFlag != "" {
			seconds, err := parseHMS(departAfterFlag)
			if err != nil {
				return fmt.Errorf("invalid --depart-after '%s': %w", departAfterFlag, err)
			}
			departAfter = &seconds
		}

		segments := idx.FindRoute(fromGroup, toGroup, departAfter)
		if len(segments) == 0 {
			fmt.Println("no route found")
			return nil
		}

		for i, seg := range segments {
			names := idx.SegmentStopNames(seg)
			fmt.Printf("leg %d: %s -> %s, departs %s, arrives %s\n",
				i+1, firstOrEmpty(names), lastOrEmpty(names),
				formatHMS(seg.DepartureTime()), formatHMS(seg.RealArrivalTime()))
		}
		return nil
	},
}

func init() {
	routeCmd.Flags().StringVar(&departAfterFlag, "depart-after", "", "earliest acceptable departure time, HH:MM:SS")
}

func bestMatch(groups []*transit.StopPlatforms) *transit.StopPlatforms {
	if len(groups) == 0 {
		return nil
	}
	return groups[0]
}

func firstOrEmpty(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func lastOrEmpty(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[len(names)-1]
}

func parseHMS(s string) (uint32, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected HH:MM:SS")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, err
	}
	return uint32(h*3600 + m*60 + sec), nil
}

func formatHMS(seconds uint32) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Package query implements the earliest-arrival, at-most-one-transfer
// search over the direct-trip table and stops graph.
package query

import (
	"math"
	"sort"

	"github.com/antigravity/transitcore/internal/graph"
	"github.com/antigravity/transitcore/internal/platforms"
	"github.com/antigravity/transitcore/internal/trips"
)

const maxArrival = math.MaxUint32

// FindRoute enumerates every (fp, tp) platform pair across the two
// groups, scanning direct segments and single-transfer segment pairs,
// and returns the 1- or 2-segment route minimising real arrival time.
// Ties keep the first-seen candidate (iteration order of fromGroup,
// toGroup and the feed-order-built segment lists, with transfer
// platforms visited in ascending platform-id order). Returns nil if
// nothing satisfies depart_after_s.
func FindRoute(
	fromGroup, toGroup *platforms.StopPlatforms,
	departAfterS uint32,
	direct map[trips.PairKey][]*trips.DirectSegment,
	stopsGraph graph.Graph,
) []*trips.DirectSegment {
	var best []*trips.DirectSegment
	bestArrival := uint32(maxArrival)

	for _, fp := range fromGroup.Platforms {
		for _, tp := range toGroup.Platforms {
			if fp.ID == tp.ID {
				continue
			}

			// SCAN_DIRECT
			if segments, ok := direct[trips.PairKey{fp.ID, tp.ID}]; ok {
				var bestDirect *trips.DirectSegment
				for _, seg := range segments {
					if seg.DepartureTime() < departAfterS {
						continue
					}
					if bestDirect == nil || seg.RealArrivalTime() < bestDirect.RealArrivalTime() {
						bestDirect = seg
					}
				}
				if bestDirect != nil && bestDirect.RealArrivalTime() < bestArrival {
					bestArrival = bestDirect.RealArrivalTime()
					best = []*trips.DirectSegment{bestDirect}
				}
			}

			// SCAN_TRANSFER_STOP: intermediate platforms reachable
			// from fp that also reach tp.
			fromLegs, ok := stopsGraph[fp.ID]
			if !ok {
				continue
			}
			transferStops := make([]string, 0, len(fromLegs))
			for transferStop := range fromLegs {
				transferStops = append(transferStops, transferStop)
			}
			sort.Strings(transferStops)

			for _, transferStop := range transferStops {
				leg1Segments := fromLegs[transferStop]
				leg2Segments, ok := stopsGraph[transferStop][tp.ID]
				if !ok {
					continue
				}

				// SCAN_LEG1
				for _, s1 := range leg1Segments {
					if s1.DepartureTime() < departAfterS {
						continue
					}

					// SCAN_LEG2
					for _, s2 := range leg2Segments {
						if s2.DepartureTime() < s1.RealArrivalTime() {
							continue
						}

						// RECORD_IF_BETTER
						if s2.RealArrivalTime() < bestArrival {
							bestArrival = s2.RealArrivalTime()
							best = []*trips.DirectSegment{s1, s2}
						}
					}
				}
			}
		}
	}

	return best
}

// Package graph provides the stops-graph view over the direct-trip
// table: from_platform -> to_platform -> segments.
package graph

import "github.com/antigravity/transitcore/internal/trips"

// Graph is the adjacency view of the direct-trip table.
type Graph map[string]map[string][]*trips.DirectSegment

// Build derives the graph from the direct-trip table by a single
// grouping pass; it must be regenerated whenever direct does.
func Build(direct map[trips.PairKey][]*trips.DirectSegment) Graph {
	g := make(Graph)
	for key, segments := range direct {
		from, to := key[0], key[1]
		if g[from] == nil {
			g[from] = make(map[string][]*trips.DirectSegment)
		}
		g[from][to] = segments
	}
	return g
}

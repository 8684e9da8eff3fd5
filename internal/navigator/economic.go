package navigator

import (
	"math"
)

// BuildEconomicEdges computes, for every pair of corp-hosting nodes, the
// shortest spatial-only path cost between them, keyed by EdgeKey. Pairs
// with no spatial path are omitted. The result is a snapshot; it must be
// rebuilt whenever spatial edges or corp placement change.
func BuildEconomicEdges(nav *Navigator) map[string]float64 {
	var hosts []string
	for _, id := range nav.order {
		if nav.nodes[id].HasCorps() {
			hosts = append(hosts, id)
		}
	}

	edges := make(map[string]float64)
	if len(hosts) < 2 {
		return edges
	}
	for i, a := range hosts {
		dists := nav.NodesWithinDistance(a, math.Inf(1), Spatial)
		for _, b := range hosts[i+1:] {
			if d, ok := dists[b]; ok {
				edges[EdgeKey(a, b)] = d
			}
		}
	}
	return edges
}

// AddEconomicEdges applies the output of BuildEconomicEdges to nav.
func AddEconomicEdges(nav *Navigator, edges map[string]float64) {
	for key, w := range edges {
		a, b, ok := ParseEdgeKey(key)
		if !ok {
			continue
		}
		nav.AddEdge(a, b, w, Economic)
	}
}

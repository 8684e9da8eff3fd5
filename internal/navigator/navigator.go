// Package navigator answers shortest-path and reachability questions over
// the node graph. Two edge classes coexist: spatial adjacency and derived
// economic shortcuts between corp-hosting nodes. Lookups on unknown nodes
// never fail; they return empty results, infinite distance or false.
package navigator

import (
	"log/slog"
	"math"
	"slices"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// Navigator is a weighted undirected graph over nodes.
type Navigator struct {
	nodes map[string]*world.Node
	order []string // node ids in insertion order

	adj     map[EdgeClass]map[string][]string
	weights map[EdgeClass]map[string]float64 // edge key → weight, per class
}

// New builds a navigator from nodes and canonical edge keys. Missing weights
// default to 1 and missing classes to Spatial. Edges naming unknown nodes
// are dropped.
func New(nodes []*world.Node, edges []string, weights map[string]float64, edgeClasses map[string]EdgeClass) *Navigator {
	nav := empty(nodes)
	dropped := 0
	for _, key := range edges {
		a, b, ok := ParseEdgeKey(key)
		if !ok || !nav.HasNode(a) || !nav.HasNode(b) {
			dropped++
			continue
		}
		w, ok := weights[key]
		if !ok {
			w = 1
		}
		class, ok := edgeClasses[key]
		if !ok || class == AnyClass {
			class = Spatial
		}
		nav.AddEdge(a, b, w, class)
	}
	if dropped > 0 {
		slog.Debug("navigator dropped edges", "count", dropped)
	}
	return nav
}

// NewWithTravelEstimate builds a spatial-only navigator whose edge weights
// come from EstimateTravel between node anchors. Edges whose cost cannot
// be estimated are dropped.
func NewWithTravelEstimate(nodes []*world.Node, edges []string) *Navigator {
	nav := empty(nodes)
	for _, key := range edges {
		a, b, ok := ParseEdgeKey(key)
		if !ok || !nav.HasNode(a) || !nav.HasNode(b) {
			continue
		}
		w := EstimateTravel(nav.nodes[a].Anchor, nav.nodes[b].Anchor)
		if math.IsInf(w, 1) {
			continue
		}
		nav.AddEdge(a, b, w, Spatial)
	}
	return nav
}

func empty(nodes []*world.Node) *Navigator {
	nav := &Navigator{
		nodes:   make(map[string]*world.Node, len(nodes)),
		adj:     make(map[EdgeClass]map[string][]string, len(classes)),
		weights: make(map[EdgeClass]map[string]float64, len(classes)),
	}
	for _, c := range classes {
		nav.adj[c] = make(map[string][]string)
		nav.weights[c] = make(map[string]float64)
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if _, dup := nav.nodes[n.ID]; dup {
			continue
		}
		nav.nodes[n.ID] = n
		nav.order = append(nav.order, n.ID)
	}
	return nav
}

// HasNode reports whether id is part of the graph.
func (nav *Navigator) HasNode(id string) bool {
	_, ok := nav.nodes[id]
	return ok
}

// Node returns the node with the given id, or nil.
func (nav *Navigator) Node(id string) *world.Node {
	return nav.nodes[id]
}

// NodeIDs returns all node ids in insertion order.
func (nav *Navigator) NodeIDs() []string {
	return slices.Clone(nav.order)
}

// EdgeCount returns the number of edges of one class, or of all classes.
func (nav *Navigator) EdgeCount(class EdgeClass) int {
	n := 0
	for _, c := range nav.view(class) {
		n += len(nav.weights[c])
	}
	return n
}

// AddEdge adds or reweights one edge. It is a no-op when either node is
// unknown, the weight is negative or NaN, or the class is not concrete.
func (nav *Navigator) AddEdge(a, b string, weight float64, class EdgeClass) {
	if !nav.HasNode(a) || !nav.HasNode(b) || a == b {
		return
	}
	if weight < 0 || math.IsNaN(weight) {
		return
	}
	adj, ok := nav.adj[class]
	if !ok {
		return
	}
	key := EdgeKey(a, b)
	if _, exists := nav.weights[class][key]; !exists {
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	nav.weights[class][key] = weight
}

// EdgeWeight returns the weight of the edge between a and b. With AnyClass
// the cheapest class wins.
func (nav *Navigator) EdgeWeight(a, b string, class EdgeClass) (float64, bool) {
	key := EdgeKey(a, b)
	best, found := math.Inf(1), false
	for _, c := range nav.view(class) {
		if w, ok := nav.weights[c][key]; ok && w < best {
			best, found = w, true
		}
	}
	return best, found
}

// Neighbors returns the direct neighbours of id, restricted to one class
// or the union of both.
func (nav *Navigator) Neighbors(id string, class EdgeClass) []string {
	var out []string
	for _, c := range nav.view(class) {
		for _, n := range nav.adj[c][id] {
			if !slices.Contains(out, n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// Subgraph returns a navigator holding only the given nodes and the edges
// (of the selected class) whose endpoints both lie in the set.
func (nav *Navigator) Subgraph(ids []string, class EdgeClass) *Navigator {
	keep := make(map[string]bool, len(ids))
	var nodes []*world.Node
	for _, id := range nav.order {
		if slices.Contains(ids, id) {
			keep[id] = true
			nodes = append(nodes, nav.nodes[id])
		}
	}
	sub := empty(nodes)
	for _, c := range nav.view(class) {
		for _, a := range sub.order {
			for _, b := range nav.adj[c][a] {
				if keep[b] {
					sub.AddEdge(a, b, nav.weights[c][EdgeKey(a, b)], c)
				}
			}
		}
	}
	return sub
}

// ConnectedComponents groups node ids by breadth-first reachability in the
// selected view. Components and their members follow insertion order.
func (nav *Navigator) ConnectedComponents(class EdgeClass) [][]string {
	seen := make(map[string]bool, len(nav.order))
	var comps [][]string
	for _, root := range nav.order {
		if seen[root] {
			continue
		}
		seen[root] = true
		comp := []string{root}
		queue := []string{root}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, n := range nav.Neighbors(cur, class) {
				if !seen[n] {
					seen[n] = true
					comp = append(comp, n)
					queue = append(queue, n)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// IsConnected reports whether every node is reachable from every other in
// the selected view. An empty graph is connected.
func (nav *Navigator) IsConnected(class EdgeClass) bool {
	return len(nav.ConnectedComponents(class)) <= 1
}

func (nav *Navigator) view(class EdgeClass) []EdgeClass {
	if class == AnyClass {
		return classes[:]
	}
	if _, ok := nav.adj[class]; !ok {
		return nil
	}
	return []EdgeClass{class}
}

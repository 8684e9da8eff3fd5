package navigator

import (
	"container/heap"
	"math"
	"slices"
)

// PathResult is the outcome of FindPath.
type PathResult struct {
	Path     []string `json:"path"`
	Distance float64  `json:"distance"`
	Found    bool     `json:"found"`
}

// NodeDistance pairs a node id with its shortest distance from a start.
type NodeDistance struct {
	ID       string  `json:"id"`
	Distance float64 `json:"distance"`
}

// FindPath runs Dijkstra from start to end over the selected view.
// A request from a node to itself succeeds with distance 0 before any
// existence check. Order among equal-distance paths is unspecified.
func (nav *Navigator) FindPath(start, end string, class EdgeClass) PathResult {
	if start == end {
		return PathResult{Path: []string{start}, Distance: 0, Found: true}
	}
	notFound := PathResult{Distance: math.Inf(1)}
	if !nav.HasNode(start) || !nav.HasNode(end) {
		return notFound
	}

	dist := math.Inf(1)
	prev := nav.walk(start, class, math.Inf(1), func(id string, d float64) bool {
		if id == end {
			dist = d
			return true
		}
		return false
	})
	if math.IsInf(dist, 1) {
		return notFound
	}

	path := []string{end}
	for cur := end; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return PathResult{Path: path, Distance: dist, Found: true}
}

// NodesWithinDistance returns every node whose shortest distance from start
// is at most maxDistance, including start itself at 0.
func (nav *Navigator) NodesWithinDistance(start string, maxDistance float64, class EdgeClass) map[string]float64 {
	out := make(map[string]float64)
	if !nav.HasNode(start) {
		return out
	}
	nav.walk(start, class, maxDistance, func(id string, d float64) bool {
		out[id] = d
		return false
	})
	return out
}

// FindClosest returns the nearest member of candidates reachable from start.
// ok is false when candidates is empty or none is reachable.
func (nav *Navigator) FindClosest(start string, candidates []string, class EdgeClass) (id string, distance float64, ok bool) {
	if len(candidates) == 0 {
		return "", math.Inf(1), false
	}
	set := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		set[c] = true
	}
	if set[start] {
		return start, 0, true
	}
	if !nav.HasNode(start) {
		return "", math.Inf(1), false
	}

	id, distance = "", math.Inf(1)
	nav.walk(start, class, math.Inf(1), func(n string, d float64) bool {
		if set[n] {
			id, distance, ok = n, d, true
			return true
		}
		return false
	})
	return id, distance, ok
}

// NodesByDistance lists reachable nodes in ascending distance from start.
// A positive limit truncates the walk once that many nodes are settled.
func (nav *Navigator) NodesByDistance(start string, limit int, class EdgeClass) []NodeDistance {
	if !nav.HasNode(start) {
		return nil
	}
	var out []NodeDistance
	nav.walk(start, class, math.Inf(1), func(id string, d float64) bool {
		out = append(out, NodeDistance{ID: id, Distance: d})
		return limit > 0 && len(out) >= limit
	})
	return out
}

// walk settles nodes in ascending distance order, calling visit for each
// until visit returns true or the frontier minimum exceeds bound. It
// returns the predecessor map of the settled tree.
func (nav *Navigator) walk(start string, class EdgeClass, bound float64, visit func(id string, dist float64) bool) map[string]string {
	view := nav.view(class)
	best := map[string]float64{start: 0}
	prev := make(map[string]string)
	settled := make(map[string]bool)

	fr := &frontier{}
	heap.Push(fr, &entry{id: start, dist: 0, seq: 0})
	seq := 1

	for fr.Len() > 0 {
		cur := heap.Pop(fr).(*entry)
		if settled[cur.id] || cur.dist > best[cur.id] {
			continue
		}
		if cur.dist > bound {
			break
		}
		settled[cur.id] = true
		if visit(cur.id, cur.dist) {
			break
		}

		for _, c := range view {
			for _, n := range nav.adj[c][cur.id] {
				if settled[n] {
					continue
				}
				nd := cur.dist + nav.weights[c][EdgeKey(cur.id, n)]
				if old, seen := best[n]; seen && nd >= old {
					continue
				}
				best[n] = nd
				prev[n] = cur.id
				heap.Push(fr, &entry{id: n, dist: nd, seq: seq})
				seq++
			}
		}
	}
	return prev
}

// entry is one frontier candidate. seq breaks distance ties in insertion
// order so results are reproducible.
type entry struct {
	id   string
	dist float64
	seq  int
}

type frontier []*entry

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(*entry)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	*f = old[:n-1]
	return e
}

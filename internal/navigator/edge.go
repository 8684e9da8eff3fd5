package navigator

import "strings"

// EdgeClass distinguishes the two independently traversable edge sets.
type EdgeClass string

const (
	// AnyClass selects the union of all edge classes in queries.
	AnyClass EdgeClass = ""
	// Spatial edges join territorially adjacent nodes; weight is travel distance.
	Spatial EdgeClass = "spatial"
	// Economic edges join corp-hosting nodes; weight is the shortest spatial
	// path cost at the time the edge was built.
	Economic EdgeClass = "economic"
)

var classes = [...]EdgeClass{Spatial, Economic}

const edgeSep = "|"

// EdgeKey returns the canonical key of the undirected edge between a and b.
// The key does not depend on argument order.
func EdgeKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + edgeSep + b
}

// ParseEdgeKey splits a key produced by EdgeKey.
func ParseEdgeKey(key string) (a, b string, ok bool) {
	a, b, ok = strings.Cut(key, edgeSep)
	if !ok || a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

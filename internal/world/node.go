package world

import (
	"fmt"
	"slices"
)

// ResourceType names a kind of harvestable or claimable feature in a node.
type ResourceType string

const (
	ResourceSource     ResourceType = "source"     // Regenerating energy deposit
	ResourceController ResourceType = "controller" // Upgrade target; terminal sink for energy
	ResourceMineral    ResourceType = "mineral"    // Extractable mineral deposit
)

// Resource is a typed feature located inside a node.
type Resource struct {
	ID       string       `json:"id"`
	Type     ResourceType `json:"type"`
	Position Position     `json:"position"`
	Capacity int          `json:"capacity,omitempty"`
	Level    int          `json:"level,omitempty"`
}

// Node is a spatial territory anchored at a single tile.
type Node struct {
	ID        string     `json:"id"`
	Region    string     `json:"region"`
	Anchor    Position   `json:"anchor"`
	Territory []Position `json:"territory,omitempty"`
	Resources []Resource `json:"resources"`
	Corps     []string   `json:"corps"`
	CreatedAt uint64     `json:"created_at"`
}

// NodeID derives the id of the node anchored at (x, y) in region.
// Re-surveying the same anchor always yields the same id.
func NodeID(region string, x, y int) string {
	return fmt.Sprintf("%s-%d-%d", region, x, y)
}

// NewNode creates an empty node for the given anchor.
func NewNode(anchor Position, createdAt uint64) *Node {
	return &Node{
		ID:        NodeID(anchor.Region, anchor.X, anchor.Y),
		Region:    anchor.Region,
		Anchor:    anchor,
		CreatedAt: createdAt,
	}
}

// AddCorp records that a corp operates in this node. Duplicates are ignored.
func (n *Node) AddCorp(corpID string) {
	if slices.Contains(n.Corps, corpID) {
		return
	}
	n.Corps = append(n.Corps, corpID)
}

// RemoveCorp drops a corp from the node.
func (n *Node) RemoveCorp(corpID string) {
	n.Corps = slices.DeleteFunc(n.Corps, func(id string) bool { return id == corpID })
}

// HasCorps reports whether at least one corp operates here.
func (n *Node) HasCorps() bool {
	return len(n.Corps) > 0
}

// ResourcesOfType returns the node's resources of one type.
func (n *Node) ResourcesOfType(t ResourceType) []Resource {
	var out []Resource
	for _, r := range n.Resources {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

package colony

import (
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/corp"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// Opportunity is a resource in an owned node that could support a new corp.
type Opportunity struct {
	NodeID     string    `json:"node_id"`
	ResourceID string    `json:"resource_id"`
	Role       corp.Role `json:"role"`
}

var opportunityRoles = map[world.ResourceType]corp.Role{
	world.ResourceSource:     corp.RoleProducer,
	world.ResourceController: corp.RoleUpgrader,
}

// Survey lists the uncovered opportunities across owned nodes. Each corp a
// node already hosts is counted as covering one of its resources. Results
// are informational; corp creation is left to the caller.
func (c *Colony) Survey() []Opportunity {
	var out []Opportunity
	for _, n := range c.Nodes() {
		covered := len(n.Corps)
		for _, r := range n.Resources {
			role, ok := opportunityRoles[r.Type]
			if !ok {
				continue
			}
			if covered > 0 {
				covered--
				continue
			}
			out = append(out, Opportunity{NodeID: n.ID, ResourceID: r.ID, Role: role})
		}
	}
	return out
}

// LastSurvey returns the opportunities found by the most recent Run.
func (c *Colony) LastSurvey() []Opportunity {
	return c.survey
}

package engine

import (
	"log/slog"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/corp"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// CorpParams holds the starting economics for newly hydrated corps.
type CorpParams struct {
	Producer corp.Params
	Hauler   corp.Params
	Upgrader corp.Params
}

// DefaultCorpParams returns starting economics that make a one-hop
// harvest-to-upgrade chain profitable at the default mint rate.
func DefaultCorpParams() CorpParams {
	return CorpParams{
		Producer: corp.Params{UnitCost: 0.1, Margin: 0.1, Capacity: 10},
		Hauler:   corp.Params{UnitCost: 0.05, Margin: 0.1, Capacity: 20, Balance: 10},
		Upgrader: corp.Params{UnitCost: 0.1, Capacity: 10, Balance: 10},
	}
}

// Hydrate creates corps for the colony's uncovered survey opportunities
// and returns how many were created. A hauler is added to every node that
// gains a corp and has none yet.
func (c *Context) Hydrate(tick uint64, params CorpParams) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	created := 0
	for _, opp := range c.Colony.Survey() {
		n, ok := c.Colony.Node(opp.NodeID)
		if !ok {
			continue
		}
		res, ok := findResource(n.Resources, opp.ResourceID)
		if !ok {
			continue
		}
		var cp corp.Corp
		switch opp.Role {
		case corp.RoleProducer:
			cp = corp.NewProducer(n, res, params.Producer, tick)
		case corp.RoleUpgrader:
			cp = corp.NewUpgrader(n, res, params.Upgrader, tick)
		default:
			continue
		}
		c.Corps.Add(cp)
		created++
	}
	for _, n := range c.Colony.Nodes() {
		if !n.HasCorps() || c.hasRole(n.Corps, corp.RoleHauler) {
			continue
		}
		c.Corps.Add(corp.NewHauler(n, params.Hauler, tick))
		created++
	}

	if created == 0 {
		slog.Info("no corps hydrated", "tick", tick)
	} else {
		slog.Info("corps hydrated", "tick", tick, "created", created, "total", c.Corps.TotalCorps())
	}
	return created
}

func (c *Context) hasRole(ids []string, role corp.Role) bool {
	for _, id := range ids {
		if cp, ok := c.Corps.Get(id); ok && cp.State().Role == role {
			return true
		}
	}
	return false
}

func findResource(rs []world.Resource, id string) (world.Resource, bool) {
	for _, r := range rs {
		if r.ID == id {
			return r, true
		}
	}
	return world.Resource{}, false
}

package engine

import (
	"log/slog"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/chain"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/contract"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/navigator"
)

// Survey refreshes the node set from the sensor, rebuilds the spatial
// navigator and prunes corps idle past the grace period.
func (c *Context) Survey(tick uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Sensor != nil {
		s := c.Sensor.Sense(tick)
		for _, n := range s.Nodes {
			if old, ok := c.Colony.Node(n.ID); ok && old != n {
				n.Corps = old.Corps
				n.CreatedAt = old.CreatedAt
			}
			c.Colony.AddNode(n)
		}
		c.links = s.Links
		c.rebuildNavigator()
	}
	c.pruneIdle(tick)
}

func (c *Context) rebuildNavigator() {
	keys := make([]string, 0, len(c.links))
	weights := make(map[string]float64, len(c.links))
	for _, l := range c.links {
		k := navigator.EdgeKey(l.A, l.B)
		keys = append(keys, k)
		weights[k] = l.Weight
	}
	c.Navigator = navigator.New(c.Colony.Nodes(), keys, weights, nil)
}

func (c *Context) pruneIdle(tick uint64) {
	for _, id := range c.Colony.IdleCorps(c.Corps.States(), tick) {
		cp, ok := c.Corps.Get(id)
		if !ok {
			continue
		}
		if n, ok := c.Colony.Node(cp.State().NodeID); ok {
			n.RemoveCorp(id)
		}
		c.Corps.Remove(id)
		slog.Info("pruned idle corp", "corp", id, "tick", tick)
	}
}

// Plan runs one planning pass: register nodes then corp states, derive
// economic edges, search, fund, and turn funded chains into contracts.
// Contracts from the previous pass are discarded.
func (c *Context) Plan(tick uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Planner.Reset()
	if err := c.Planner.RegisterNodes(c.Colony.Nodes(), tick); err != nil {
		slog.Error("planner rejected nodes", "tick", tick, "error", err)
		return
	}
	states := c.Corps.States()
	c.Planner.RegisterCorpStates(states, tick)

	if c.Navigator != nil {
		navigator.AddEconomicEdges(c.Navigator, navigator.BuildEconomicEdges(c.Navigator))
	}
	c.Planner.SetNavigator(c.Navigator)

	chains := c.Planner.FindOptimalChains()
	if len(chains) == 0 {
		slog.Info("no viable chains", "tick", tick, "corps", len(states))
	}

	var funded []chain.Chain
	for _, ch := range c.Colony.FundChains(chains) {
		if ch.Funded {
			funded = append(funded, ch)
		}
	}
	c.Colony.SetChains(funded)

	c.releaseAll()
	c.Corps.ClearContracts()
	c.Contracts = contract.DeriveAll(funded, tick, c.Colony.Config().ChainLifetime, parties{c})
	contract.Assign(c.Contracts, c.party)

	slog.Info("plan complete",
		"tick", tick,
		"corps", len(states),
		"viable", len(chains),
		"funded", len(funded),
		"contracts", len(c.Contracts),
		"treasury", c.Colony.Ledger().Treasury(),
	)
	logSaveError(c.save(), tick)
}

// Execute drives the executor over active contracts, credits mints for
// deliveries into terminal consumers and drops finished contracts.
func (c *Context) Execute(tick uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Executor == nil {
		return
	}
	mint := c.Colony.MintValues()
	kept := c.Contracts[:0]
	for _, k := range c.Contracts {
		if !k.IsActive(tick) {
			c.release(k)
			continue
		}
		moved := k.RecordDelivery(c.Executor.Execute(k, tick))
		for _, w := range k.AssignedWorkers {
			c.assignWorker(k.BuyerID, w)
		}
		if moved > 0 {
			c.Corps.Touch(k.SellerID, tick)
			c.Corps.Touch(k.BuyerID, tick)
			k.RecordPayment(k.AmountDue())
			if buyer, ok := c.Corps.Get(k.BuyerID); ok && mint.IsTerminal(buyer.State().Output) {
				c.Colony.CreditMint(buyer.State().Output, moved)
			}
		}
		if k.IsActive(tick) {
			kept = append(kept, k)
		} else {
			c.release(k)
		}
	}
	c.Contracts = kept
}

type workerHolder interface {
	AssignWorker(id string)
	ReleaseWorker(id string)
}

func (c *Context) assignWorker(corpID, workerID string) {
	if cp, ok := c.Corps.Get(corpID); ok {
		if h, ok := cp.(workerHolder); ok {
			h.AssignWorker(workerID)
		}
	}
}

func (c *Context) release(k *contract.Contract) {
	cp, ok := c.Corps.Get(k.BuyerID)
	if !ok {
		return
	}
	if h, ok := cp.(workerHolder); ok {
		for _, w := range k.AssignedWorkers {
			h.ReleaseWorker(w)
		}
	}
}

func (c *Context) releaseAll() {
	for _, k := range c.Contracts {
		c.release(k)
	}
}

func (c *Context) party(id string) (contract.Party, bool) {
	cp, ok := c.Corps.Get(id)
	if !ok {
		return nil, false
	}
	return cp, true
}

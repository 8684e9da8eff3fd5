package colony

import (
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/chain"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/economy"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// State is the persisted shape of a colony. Nodes and chains are stored
// separately and referenced by id.
type State struct {
	Bootstrapped   bool                `json:"bootstrapped"`
	CurrentTick    uint64              `json:"current_tick"`
	Config         Config              `json:"config"`
	MintValues     economy.MintValues  `json:"mint_values"`
	Ledger         economy.LedgerState `json:"ledger"`
	NodeIDs        []string            `json:"node_ids"`
	ActiveChainIDs []string            `json:"active_chain_ids"`
}

// State snapshots the colony.
func (c *Colony) State() State {
	ids := make([]string, len(c.chains))
	for i, ch := range c.chains {
		ids[i] = ch.ID
	}
	return State{
		Bootstrapped:   c.bootstrapped,
		CurrentTick:    c.tick,
		Config:         c.cfg,
		MintValues:     c.mint,
		Ledger:         c.ledger.State(),
		NodeIDs:        append([]string(nil), c.nodeOrder...),
		ActiveChainIDs: ids,
	}
}

// Restore rebuilds a colony from its persisted state plus the nodes and
// chains it references. Referenced ids with no matching node or chain are
// dropped.
func Restore(s State, nodes []*world.Node, chains []chain.Chain) *Colony {
	c := New(s.Config, s.MintValues)
	c.bootstrapped = s.Bootstrapped
	c.tick = s.CurrentTick
	c.ledger = economy.LoadLedger(s.Ledger)
	c.ledger.Advance(s.CurrentTick)

	byID := make(map[string]*world.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	for _, id := range s.NodeIDs {
		if n, ok := byID[id]; ok {
			c.AddNode(n)
		}
	}

	chainByID := make(map[string]chain.Chain, len(chains))
	for _, ch := range chains {
		chainByID[ch.ID] = ch
	}
	for _, id := range s.ActiveChainIDs {
		if ch, ok := chainByID[id]; ok {
			c.chains = append(c.chains, ch)
		}
	}
	return c
}

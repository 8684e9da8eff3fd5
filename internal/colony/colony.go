// Package colony owns a colony's treasury, node set and funded chains, and
// runs its per-tick bookkeeping cycle.
package colony

import (
	"log/slog"
	"slices"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/chain"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/corp"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/economy"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// CorpCounter is the external corp registry as the colony sees it.
type CorpCounter interface {
	TotalCorps() int
	ActiveCorps(tick, window uint64) int
}

// Stats is recomputed at the end of every Run.
type Stats struct {
	Tick         uint64              `json:"tick"`
	Nodes        int                 `json:"nodes"`
	TotalCorps   int                 `json:"total_corps"`
	ActiveCorps  int                 `json:"active_corps"`
	FundedChains int                 `json:"funded_chains"`
	Supply       economy.MoneySupply `json:"money_supply"`
}

// Colony is not safe for concurrent use. The engine serialises access.
type Colony struct {
	cfg    Config
	mint   economy.MintValues
	ledger *economy.Ledger

	nodes     map[string]*world.Node
	nodeOrder []string
	chains    []chain.Chain

	bootstrapped bool
	tick         uint64
	stats        Stats
	survey       []Opportunity
}

// New creates an unbootstrapped colony.
func New(cfg Config, mint economy.MintValues) *Colony {
	if mint == nil {
		mint = economy.DefaultMintValues()
	}
	return &Colony{
		cfg:    cfg.Sanitize(),
		mint:   mint,
		ledger: economy.NewLedger(),
		nodes:  make(map[string]*world.Node),
	}
}

func (c *Colony) Config() Config                 { return c.cfg }
func (c *Colony) MintValues() economy.MintValues { return c.mint }
func (c *Colony) Ledger() *economy.Ledger        { return c.ledger }
func (c *Colony) Tick() uint64                   { return c.tick }
func (c *Colony) Stats() Stats                   { return c.stats }
func (c *Colony) Bootstrapped() bool             { return c.bootstrapped }

// Run performs one tick of colony bookkeeping: bootstrap mint, survey,
// chain aging and stats.
func (c *Colony) Run(tick uint64, corps CorpCounter) {
	c.tick = tick
	c.ledger.Advance(tick)

	if !c.bootstrapped {
		c.ledger.Mint(c.cfg.SeedCapital, "bootstrap")
		c.bootstrapped = true
		slog.Info("colony bootstrapped", "tick", tick, "seed_capital", c.cfg.SeedCapital)
	}

	c.survey = c.Survey()
	if len(c.survey) > 0 {
		slog.Debug("survey", "tick", tick, "opportunities", len(c.survey))
	}

	c.ageChains()
	c.updateStats(corps)
}

func (c *Colony) ageChains() {
	kept := c.chains[:0]
	for _, ch := range c.chains {
		ch.Age++
		if c.cfg.ChainLifetime > 0 && ch.Age >= c.cfg.ChainLifetime {
			slog.Info("chain expired", "chain", ch.ID, "age", ch.Age)
			continue
		}
		kept = append(kept, ch)
	}
	c.chains = kept
}

func (c *Colony) updateStats(corps CorpCounter) {
	s := Stats{
		Tick:   c.tick,
		Nodes:  len(c.nodeOrder),
		Supply: c.ledger.MoneySupply(),
	}
	if corps != nil {
		s.TotalCorps = corps.TotalCorps()
		s.ActiveCorps = corps.ActiveCorps(c.tick, c.cfg.GracePeriod)
	}
	for _, ch := range c.chains {
		if ch.Funded {
			s.FundedChains++
		}
	}
	c.stats = s
}

// AddNode adds or replaces a node.
func (c *Colony) AddNode(n *world.Node) {
	if _, ok := c.nodes[n.ID]; !ok {
		c.nodeOrder = append(c.nodeOrder, n.ID)
	}
	c.nodes[n.ID] = n
}

// Node looks up an owned node.
func (c *Colony) Node(id string) (*world.Node, bool) {
	n, ok := c.nodes[id]
	return n, ok
}

// Nodes returns owned nodes in insertion order.
func (c *Colony) Nodes() []*world.Node {
	out := make([]*world.Node, 0, len(c.nodeOrder))
	for _, id := range c.nodeOrder {
		out = append(out, c.nodes[id])
	}
	return out
}

// SetChains replaces the active chain set.
func (c *Colony) SetChains(chains []chain.Chain) {
	c.chains = slices.Clone(chains)
}

// ActiveChains returns a copy of the active chains.
func (c *Colony) ActiveChains() []chain.Chain {
	return slices.Clone(c.chains)
}

// FundChains walks chains in order and funds each one whose leaf cost the
// treasury can cover while keeping MinTreasuryBuffer in reserve. Chains that
// cannot be funded are returned with Funded false.
func (c *Colony) FundChains(chains []chain.Chain) []chain.Chain {
	out := slices.Clone(chains)
	for i := range out {
		cost := out[i].LeafCost
		if c.ledger.Treasury()-cost < c.cfg.MinTreasuryBuffer || !c.ledger.Spend(cost) {
			out[i].Funded = false
			slog.Debug("chain not funded", "chain", out[i].ID, "cost", cost, "treasury", c.ledger.Treasury())
			continue
		}
		out[i].Funded = true
	}
	return out
}

// CreditMint mints the credits earned by delivering units of a terminal
// resource and destroys the tax share. It returns the net amount kept.
func (c *Colony) CreditMint(resource string, units float64) float64 {
	amount := c.mint.Rate(resource) * units
	if !(amount > 0) {
		return 0
	}
	c.ledger.Mint(amount, resource)
	tax := c.ledger.TransferTo(amount * c.cfg.TaxRate)
	c.ledger.RecordTaxDestroyed(tax)
	return amount - tax
}

// IdleCorps returns the ids of corps idle for longer than the grace period.
func (c *Colony) IdleCorps(states []corp.State, tick uint64) []string {
	var out []string
	for _, s := range states {
		if tick > s.LastActive && tick-s.LastActive > c.cfg.GracePeriod {
			out = append(out, s.ID)
		}
	}
	return out
}

package engine

import (
	"log/slog"
	"sync"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/chain"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/colony"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/contract"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/corp"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/economy"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/navigator"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/persistence"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/planner"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// Sensor is the world-sensing layer: it reports the nodes and spatial
// links currently known.
type Sensor interface {
	Sense(tick uint64) world.Survey
}

// Executor fulfils contracts. Execute returns the units delivered for c
// during tick.
type Executor interface {
	Execute(c *contract.Contract, tick uint64) float64
}

// Context carries everything the phases operate on. It is built once by
// the caller and threaded through every phase; phases take its lock, so
// readers such as the status API must go through Snapshot.
type Context struct {
	mu sync.RWMutex

	Colony   *colony.Colony
	Planner  *planner.Planner
	Corps    *corp.Registry
	Store    persistence.Store // Optional; nil disables persistence
	Sensor   Sensor            // Optional
	Executor Executor          // Optional

	Navigator *navigator.Navigator
	Contracts []*contract.Contract

	links []world.Link
}

// NewContext wires a context around an existing colony.
func NewContext(c *colony.Colony, p *planner.Planner, corps *corp.Registry) *Context {
	return &Context{Colony: c, Planner: p, Corps: corps}
}

// Bind installs the context's phases as e's callbacks.
func (c *Context) Bind(e *Engine) {
	e.OnTick = c.Tick
	e.OnSurvey = c.Survey
	e.OnPlan = c.Plan
	e.OnExecute = c.Execute
}

// Tick runs the colony's per-tick bookkeeping.
func (c *Context) Tick(tick uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Colony.Run(tick, c.Corps)
}

// Save persists the colony and current contracts.
func (c *Context) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.save()
}

func (c *Context) save() error {
	if c.Store == nil {
		return nil
	}
	return persistence.SaveColony(c.Store, c.Colony, c.Contracts)
}

// Status is a read-only view of the context.
type Status struct {
	Tick          uint64               `json:"tick"`
	Stats         colony.Stats         `json:"stats"`
	Chains        []chain.Chain        `json:"chains"`
	Contracts     []contract.Contract  `json:"contracts"`
	Ledger        economy.LedgerState  `json:"ledger"`
	Opportunities []colony.Opportunity `json:"opportunities"`
}

// Snapshot copies the current state for readers outside the tick loop.
func (c *Context) Snapshot() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	contracts := make([]contract.Contract, len(c.Contracts))
	for i, k := range c.Contracts {
		contracts[i] = *k
	}
	return Status{
		Tick:          c.Colony.Tick(),
		Stats:         c.Colony.Stats(),
		Chains:        c.Colony.ActiveChains(),
		Contracts:     contracts,
		Ledger:        c.Colony.Ledger().State(),
		Opportunities: c.Colony.LastSurvey(),
	}
}

func logSaveError(err error, tick uint64) {
	if err != nil {
		slog.Error("persist colony failed", "tick", tick, "error", err)
	}
}

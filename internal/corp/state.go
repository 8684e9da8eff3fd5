// Package corp models the autonomous economic sub-agents of a colony.
// The planner only ever sees State snapshots; behaviour stays behind the
// narrow Corp interface.
package corp

import (
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/economy"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/market"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// Role is a corp's economic function.
type Role string

const (
	RoleProducer Role = "producer" // Harvests a raw resource; no input
	RoleHauler   Role = "hauler"   // Moves a resource between nodes
	RoleUpgrader Role = "upgrader" // Converts energy into mintable progress
	RoleSpawner  Role = "spawner"  // Turns energy into worker lifetime
)

// OfferDuration is how long published offers stand, in ticks.
const OfferDuration = 1500

// State is a point-in-time snapshot of one corp.
type State struct {
	ID       string         `json:"id"`
	Role     Role           `json:"role"`
	NodeID   string         `json:"node_id"`
	Position world.Position `json:"position"`

	Input  string `json:"input,omitempty"` // Resource consumed; empty for producers
	Output string `json:"output"`          // Resource produced

	UnitCost float64 `json:"unit_cost"` // Own operating cost per unit handled
	Margin   float64 `json:"margin"`    // Fractional markup applied to input cost
	Capacity float64 `json:"capacity"`  // Units handled per planning cycle
	Balance  float64 `json:"balance"`

	CreatedAt  uint64 `json:"created_at"`
	LastActive uint64 `json:"last_active"`
}

// IsProducer reports whether the corp has no upstream input.
func (s State) IsProducer() bool {
	return s.Input == ""
}

// SellPrice is the per-unit price of the corp's own contribution.
func (s State) SellPrice() float64 {
	return s.UnitCost * (1 + s.Margin)
}

// Offers derives the buy and sell offers implied by the corp's role.
// Terminal consumers only buy; everyone else sells its output.
func (s State) Offers(tick uint64) []market.Offer {
	if s.Capacity <= 0 {
		return nil
	}
	loc := s.Position
	var out []market.Offer
	if s.Input != "" {
		bid := s.Balance / s.Capacity
		out = append(out, market.NewOffer(s.ID, market.Buy, s.Input, s.Capacity, bid, OfferDuration, &loc))
	}
	if s.Role != RoleUpgrader {
		out = append(out, market.NewOffer(s.ID, market.Sell, s.Output, s.Capacity, s.SellPrice(), OfferDuration, &loc))
	}
	return out
}

// Sources adapts snapshots for market.Collector.
func Sources(states []State) []market.Source {
	out := make([]market.Source, len(states))
	for i, s := range states {
		out[i] = s
	}
	return out
}

// roleIO maps each role to its input and output resource.
var roleIO = map[Role][2]string{
	RoleProducer: {"", economy.ResourceEnergy},
	RoleHauler:   {economy.ResourceEnergy, economy.ResourceEnergy},
	RoleUpgrader: {economy.ResourceEnergy, economy.ResourceControllerProgress},
	RoleSpawner:  {economy.ResourceEnergy, economy.ResourceWorkTicks},
}

// Package planner assembles viable, non-overlapping production chains from
// corp state snapshots.
package planner

import (
	"cmp"
	"errors"
	"log/slog"
	"math"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/chain"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/corp"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/economy"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/market"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/navigator"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// ErrCorpStatesRegistered is returned by RegisterNodes when corp states are
// already registered. Nodes must be registered first.
var ErrCorpStatesRegistered = errors.New("planner: corp states already registered; register nodes first or Reset")

// Config tunes the search.
type Config struct {
	MaxDepth          int     `yaml:"max_chain_depth"`
	TravelCostPerTile float64 `yaml:"travel_cost_per_tile"`
	PathCacheSize     int     `yaml:"path_cache_size"`
}

// DefaultConfig returns the stock planner settings.
func DefaultConfig() Config {
	return Config{
		MaxDepth:          6,
		TravelCostPerTile: 0.01,
		PathCacheSize:     1024,
	}
}

// Planner is not safe for concurrent use; one planning pass runs at a time.
type Planner struct {
	cfg  Config
	mint economy.MintValues

	nodes []*world.Node

	states     []corp.State
	byID       map[string]corp.State
	statesTick uint64

	// Search bounds derived from the registered states. Pruning on them is
	// only sound when no corp has a negative unit cost or margin.
	monotone    bool
	maxRate     float64
	minTerminal float64

	nav       *navigator.Navigator
	collector *market.Collector
	distances *lru.Cache[string, float64]
}

// New creates a planner. Non-positive config values fall back to defaults.
func New(cfg Config, mint economy.MintValues) *Planner {
	def := DefaultConfig()
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if cfg.TravelCostPerTile < 0 {
		cfg.TravelCostPerTile = 0
	}
	if cfg.PathCacheSize <= 0 {
		cfg.PathCacheSize = def.PathCacheSize
	}
	if mint == nil {
		mint = economy.DefaultMintValues()
	}
	cache, _ := lru.New[string, float64](cfg.PathCacheSize)
	p := &Planner{
		cfg:       cfg,
		mint:      mint,
		byID:      make(map[string]corp.State),
		collector: market.NewCollector(navigator.EstimateTravel, cfg.TravelCostPerTile),
		distances: cache,
	}
	p.updateBounds()
	return p
}

// RegisterNodes supplies the spatial context for the next pass. Only corps
// hosted on registered nodes take part in planning.
func (p *Planner) RegisterNodes(nodes []*world.Node, tick uint64) error {
	if len(p.states) > 0 {
		return ErrCorpStatesRegistered
	}
	p.nodes = slices.Clone(nodes)
	slog.Debug("planner nodes registered", "nodes", len(nodes), "tick", tick)
	return nil
}

// RegisterCorpStates replaces all previously registered corp states.
func (p *Planner) RegisterCorpStates(states []corp.State, tick uint64) {
	p.states = slices.Clone(states)
	p.byID = make(map[string]corp.State, len(states))
	for _, s := range states {
		p.byID[s.ID] = s
	}
	p.statesTick = tick
	p.updateBounds()
}

// updateBounds records the highest mint rate and the cheapest terminal
// corp, which together bound the per-unit price a prefix may reach.
func (p *Planner) updateBounds() {
	p.monotone = true
	p.maxRate = 0
	for _, r := range p.mint {
		p.maxRate = max(p.maxRate, r)
	}
	p.minTerminal = math.Inf(1)
	for _, s := range p.states {
		if !(s.UnitCost >= 0) || !(s.Margin >= 0) {
			p.monotone = false
		}
		if p.mint.IsTerminal(s.Output) {
			p.minTerminal = min(p.minTerminal, s.UnitCost)
		}
	}
}

// SetNavigator enables distance-aware costing. A nil navigator reverts to
// zero travel cost.
func (p *Planner) SetNavigator(nav *navigator.Navigator) {
	p.nav = nav
	p.distances.Purge()
}

// Reset forgets nodes, corp states and cached distances.
func (p *Planner) Reset() {
	p.nodes = nil
	p.states = nil
	p.byID = make(map[string]corp.State)
	p.updateBounds()
	p.collector.Clear()
	p.distances.Purge()
}

// Collector exposes the offer index built by the last pass.
func (p *Planner) Collector() *market.Collector {
	return p.collector
}

// FindViableChains runs the search and returns every chain with positive
// profit, highest profit first. Overlapping chains are all kept.
func (p *Planner) FindViableChains(tick uint64) []chain.Chain {
	p.collectOffers(tick)

	var found []chain.Chain
	for _, producer := range p.producers() {
		price := producer.UnitCost * (1 + producer.Margin)
		if !p.reachable(price) {
			continue
		}
		p.extend([]corp.State{producer}, price, map[string]bool{producer.ID: true}, &found)
	}
	viable := chain.SortByProfit(chain.FilterViable(found))
	slog.Debug("planner search done",
		"tick", tick, "corps", len(p.states), "candidates", len(found), "viable", len(viable))
	return viable
}

// FindOptimalChains returns the greedy non-overlapping selection of viable
// chains for the tick the corp states were registered at.
func (p *Planner) FindOptimalChains() []chain.Chain {
	return chain.SelectNonOverlapping(p.FindViableChains(p.statesTick))
}

func (p *Planner) collectOffers(tick uint64) {
	if len(p.nodes) == 0 {
		p.collector.CollectFromCorps(corp.Sources(p.states), tick)
		return
	}
	p.collector.Collect(p.nodes, func(id string) (market.Source, bool) {
		s, ok := p.byID[id]
		return s, ok
	}, tick)
}

// producers lists the corps selling each resource with no upstream input,
// cheapest first.
func (p *Planner) producers() []corp.State {
	var out []corp.State
	seen := make(map[string]bool)
	for _, res := range p.collector.AvailableResources() {
		for _, ro := range p.collector.CheapestSellOffers(res, nil) {
			s, ok := p.byID[ro.CorpID]
			if !ok || !s.IsProducer() || seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			out = append(out, s)
		}
	}
	return out
}

type candidate struct {
	state    corp.State
	distance float64
	price    float64
}

// extend grows path depth-first towards terminal corps. price is the
// per-unit output price of the last corp in path; every segment cost is
// linear in the chain's flow, so comparing per-unit prices against mint
// rates decides viability exactly.
func (p *Planner) extend(path []corp.State, price float64, used map[string]bool, found *[]chain.Chain) {
	last := path[len(path)-1]
	if len(path) > 1 && p.mint.IsTerminal(last.Output) {
		*found = append(*found, p.build(path))
		return
	}
	if len(path) >= p.cfg.MaxDepth {
		return
	}

	var next []candidate
	for _, offer := range p.collector.BuyOffers(last.Output) {
		buyer, ok := p.byID[offer.CorpID]
		if !ok || used[buyer.ID] {
			continue
		}
		if relay(last) && relay(buyer) && last.NodeID == buyer.NodeID {
			continue
		}
		d, ok := p.distance(last.NodeID, buyer.NodeID)
		if !ok {
			continue
		}
		out := (buyer.UnitCost + price + d*p.cfg.TravelCostPerTile) * (1 + buyer.Margin)
		if !p.promising(buyer, out) {
			continue
		}
		next = append(next, candidate{state: buyer, distance: d, price: out})
	}
	slices.SortStableFunc(next, func(a, b candidate) int {
		ea := a.distance*p.cfg.TravelCostPerTile + a.state.UnitCost
		eb := b.distance*p.cfg.TravelCostPerTile + b.state.UnitCost
		return cmp.Compare(ea, eb)
	})

	for _, c := range next {
		used[c.state.ID] = true
		p.extend(append(path, c.state), c.price, used, found)
		delete(used, c.state.ID)
	}
}

// promising reports whether a corp whose per-unit output price is price
// can still end a viable chain. A terminal must sell below its own mint
// rate. Other corps are cut once price plus the cheapest terminal reaches
// the best mint rate, since prices never fall along a chain.
func (p *Planner) promising(s corp.State, price float64) bool {
	if p.mint.IsTerminal(s.Output) {
		return price < p.mint.Rate(s.Output)
	}
	return p.reachable(price)
}

// reachable reports whether a prefix at per-unit price may still reach a
// viable terminal.
func (p *Planner) reachable(price float64) bool {
	return !p.monotone || price+p.minTerminal < p.maxRate
}

// relay reports whether s passes its input through unchanged.
func relay(s corp.State) bool {
	return s.Input != "" && s.Input == s.Output
}

// build prices a path of corps ending at a terminal. All costs are totals
// for the chain's flow, the smallest capacity along the path.
func (p *Planner) build(path []corp.State) chain.Chain {
	flow := path[0].Capacity
	ids := make([]string, len(path))
	for i, s := range path {
		flow = min(flow, s.Capacity)
		ids[i] = s.ID
	}

	segments := make([]chain.Segment, len(path))
	for i, s := range path {
		cost := s.UnitCost * flow
		if i > 0 {
			d, _ := p.distance(path[i-1].NodeID, s.NodeID)
			cost += segments[i-1].OutputPrice + d*p.cfg.TravelCostPerTile*flow
		}
		segments[i] = chain.BuildSegment(s.ID, string(s.Role), s.Output, flow, cost, s.Margin)
	}

	terminal := path[len(path)-1]
	return chain.New("chain:"+strings.Join(ids, ">"), segments, p.mint.Rate(terminal.Output)*flow)
}

// distance returns the travel distance between two nodes. Without a
// navigator every hop is free. ok is false when no route exists.
func (p *Planner) distance(from, to string) (float64, bool) {
	if p.nav == nil || from == to {
		return 0, true
	}
	key := navigator.EdgeKey(from, to)
	if d, ok := p.distances.Get(key); ok {
		return d, !math.IsInf(d, 1)
	}
	d, ok := p.nav.EdgeWeight(from, to, navigator.Economic)
	if !ok {
		res := p.nav.FindPath(from, to, navigator.Spatial)
		d = res.Distance
	}
	p.distances.Add(key, d)
	return d, !math.IsInf(d, 1)
}

package market

import (
	"cmp"
	"math"
	"slices"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// TravelEstimator prices moving goods between two positions. Returning
// +Inf marks the pair as unreachable.
type TravelEstimator func(from, to world.Position) float64

// Stats summarises the collector contents.
type Stats struct {
	SellOffers int     `json:"sell_offers"`
	BuyOffers  int     `json:"buy_offers"`
	Resources  int     `json:"resources"`
	SellVolume float64 `json:"sell_volume"`
	BuyVolume  float64 `json:"buy_volume"`
}

// RankedOffer is a sell offer with its travel-adjusted price.
type RankedOffer struct {
	Offer
	EffectivePrice float64 `json:"effective_price"`
}

// Collector indexes offers by resource and direction. Insertion order is
// preserved within each bucket and serves as the tie-break.
type Collector struct {
	sells map[string][]Offer
	buys  map[string][]Offer
	order []string // resources in first-seen order

	travel  TravelEstimator
	perTile float64
}

// NewCollector creates an empty collector. Estimated travel is charged at
// perTile credits per tile on top of the nominal price. travel may be nil,
// in which case offers rank by nominal price only.
func NewCollector(travel TravelEstimator, perTile float64) *Collector {
	c := &Collector{travel: travel, perTile: max(perTile, 0)}
	c.Clear()
	return c
}

// Clear drops every indexed offer.
func (c *Collector) Clear() {
	c.sells = make(map[string][]Offer)
	c.buys = make(map[string][]Offer)
	c.order = nil
}

// AddOffer indexes one offer. Offers with a non-positive quantity are ignored.
func (c *Collector) AddOffer(o Offer) {
	if !(o.Quantity > 0) || (o.Type != Buy && o.Type != Sell) {
		return
	}
	if _, ok := c.sells[o.Resource]; !ok {
		if _, ok := c.buys[o.Resource]; !ok {
			c.order = append(c.order, o.Resource)
		}
	}
	switch o.Type {
	case Sell:
		c.sells[o.Resource] = append(c.sells[o.Resource], o)
	case Buy:
		c.buys[o.Resource] = append(c.buys[o.Resource], o)
	}
}

// CollectFromCorps rebuilds the index from the given sources.
func (c *Collector) CollectFromCorps(sources []Source, tick uint64) {
	c.Clear()
	for _, s := range sources {
		for _, o := range s.Offers(tick) {
			c.AddOffer(o)
		}
	}
}

// Collect rebuilds the index from the corps operating in nodes, resolved
// through lookup. Corps lookup cannot resolve are skipped.
func (c *Collector) Collect(nodes []*world.Node, lookup func(corpID string) (Source, bool), tick uint64) {
	c.Clear()
	for _, n := range nodes {
		for _, id := range n.Corps {
			s, ok := lookup(id)
			if !ok {
				continue
			}
			for _, o := range s.Offers(tick) {
				c.AddOffer(o)
			}
		}
	}
}

// SellOffers returns the sell offers for resource in insertion order.
func (c *Collector) SellOffers(resource string) []Offer {
	return slices.Clone(c.sells[resource])
}

// BuyOffers returns the buy offers for resource in insertion order.
func (c *Collector) BuyOffers(resource string) []Offer {
	return slices.Clone(c.buys[resource])
}

// CheapestSellOffers ranks sell offers of resource by effective price:
// nominal price plus estimated travel from the offer's location to buyer,
// charged per tile.
// Without a buyer position, a travel estimator or an offer location the
// nominal price is used. Unreachable offers are dropped.
func (c *Collector) CheapestSellOffers(resource string, buyer *world.Position) []RankedOffer {
	var out []RankedOffer
	for _, o := range c.sells[resource] {
		eff := o.Price
		if buyer != nil && o.Location != nil && c.travel != nil {
			d := c.travel(*o.Location, *buyer)
			if math.IsInf(d, 1) {
				continue
			}
			eff += d * c.perTile
		}
		out = append(out, RankedOffer{Offer: o, EffectivePrice: eff})
	}
	slices.SortStableFunc(out, func(a, b RankedOffer) int { return cmp.Compare(a.EffectivePrice, b.EffectivePrice) })
	return out
}

// TotalSellQuantity sums the quantity offered for sale of resource.
func (c *Collector) TotalSellQuantity(resource string) float64 {
	return sumQuantity(c.sells[resource])
}

// TotalBuyQuantity sums the quantity requested of resource.
func (c *Collector) TotalBuyQuantity(resource string) float64 {
	return sumQuantity(c.buys[resource])
}

// AvailableResources lists resources with at least one sell offer.
func (c *Collector) AvailableResources() []string {
	return c.resourcesWith(c.sells)
}

// RequestedResources lists resources with at least one buy offer.
func (c *Collector) RequestedResources() []string {
	return c.resourcesWith(c.buys)
}

// Stats returns aggregate counts and volumes.
func (c *Collector) Stats() Stats {
	var s Stats
	for _, r := range c.order {
		s.SellOffers += len(c.sells[r])
		s.BuyOffers += len(c.buys[r])
		s.SellVolume += sumQuantity(c.sells[r])
		s.BuyVolume += sumQuantity(c.buys[r])
	}
	s.Resources = len(c.order)
	return s
}

func (c *Collector) resourcesWith(idx map[string][]Offer) []string {
	var out []string
	for _, r := range c.order {
		if len(idx[r]) > 0 {
			out = append(out, r)
		}
	}
	return out
}

func sumQuantity(offers []Offer) float64 {
	total := 0.0
	for _, o := range offers {
		total += o.Quantity
	}
	return total
}

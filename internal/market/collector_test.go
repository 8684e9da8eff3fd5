package market

import (
	"math"
	"slices"
	"testing"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

type staticSource []Offer

func (s staticSource) Offers(uint64) []Offer { return s }

func pos(x int) *world.Position {
	return &world.Position{Region: "E0S0", X: x, Y: 10}
}

func chebyshev(a, b world.Position) float64 {
	if a.Region != b.Region {
		return math.Inf(1)
	}
	return float64(world.Chebyshev(a, b))
}

func TestCollectorIndexes(t *testing.T) {
	c := NewCollector(nil, 0)
	c.AddOffer(NewOffer("p1", Sell, "energy", 100, 0.2, 10, nil))
	c.AddOffer(NewOffer("h1", Buy, "energy", 80, 0, 10, nil))
	c.AddOffer(NewOffer("s1", Sell, "work-ticks", 1500, 0.01, 10, nil))
	c.AddOffer(NewOffer("x", Sell, "energy", 0, 1, 10, nil))
	c.AddOffer(Offer{CorpID: "y", Type: "swap", Resource: "odd", Quantity: 3})

	if got := c.TotalSellQuantity("energy"); got != 100 {
		t.Fatalf("expected 100 energy for sale, got %v", got)
	}
	if got := c.TotalBuyQuantity("energy"); got != 80 {
		t.Fatalf("expected 80 energy requested, got %v", got)
	}
	if got := c.AvailableResources(); !slices.Equal(got, []string{"energy", "work-ticks"}) {
		t.Fatalf("unexpected available resources %v", got)
	}
	if got := c.RequestedResources(); !slices.Equal(got, []string{"energy"}) {
		t.Fatalf("unexpected requested resources %v", got)
	}
	st := c.Stats()
	if st.SellOffers != 2 || st.BuyOffers != 1 || st.Resources != 2 || st.SellVolume != 1600 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestCollectFromCorpsRebuilds(t *testing.T) {
	c := NewCollector(nil, 0)
	c.AddOffer(NewOffer("old", Sell, "energy", 5, 1, 10, nil))
	c.CollectFromCorps([]Source{
		staticSource{NewOffer("p1", Sell, "energy", 10, 1, 10, nil)},
		staticSource{NewOffer("u1", Buy, "energy", 10, 0, 10, nil)},
	}, 1)
	sells := c.SellOffers("energy")
	if len(sells) != 1 || sells[0].CorpID != "p1" {
		t.Fatalf("expected previous offers cleared, got %+v", sells)
	}
}

func TestCollectFromNodes(t *testing.T) {
	n := world.NewNode(world.Position{Region: "E0S0", X: 10, Y: 10}, 0)
	n.AddCorp("p1")
	n.AddCorp("ghost")
	sources := map[string]Source{"p1": staticSource{NewOffer("p1", Sell, "energy", 10, 1, 10, nil)}}
	c := NewCollector(nil, 0)
	c.Collect([]*world.Node{n}, func(id string) (Source, bool) {
		s, ok := sources[id]
		return s, ok
	}, 0)
	if c.Stats().SellOffers != 1 {
		t.Fatalf("expected one offer, got %+v", c.Stats())
	}
}

func TestCheapestSellOffers(t *testing.T) {
	c := NewCollector(chebyshev, 1)
	c.AddOffer(NewOffer("near", Sell, "energy", 10, 5, 10, pos(12)))
	c.AddOffer(NewOffer("cheap-far", Sell, "energy", 10, 1, 10, pos(40)))
	c.AddOffer(NewOffer("tie", Sell, "energy", 10, 5, 10, pos(12)))
	c.AddOffer(NewOffer("nowhere", Sell, "energy", 10, 2, 10, nil))
	c.AddOffer(NewOffer("unreachable", Sell, "energy", 10, 0, 10, &world.Position{Region: "W9N9", X: 1, Y: 1}))

	nominal := c.CheapestSellOffers("energy", nil)
	if nominal[0].CorpID != "unreachable" || nominal[1].CorpID != "cheap-far" {
		t.Fatalf("unexpected nominal ranking %v", corpIDs(nominal))
	}

	buyer := pos(10)
	ranked := c.CheapestSellOffers("energy", buyer)
	want := []string{"nowhere", "near", "tie", "cheap-far"}
	if !slices.Equal(corpIDs(ranked), want) {
		t.Fatalf("expected %v, got %v", want, corpIDs(ranked))
	}
	if ranked[1].EffectivePrice != 7 {
		t.Fatalf("expected effective price 7, got %v", ranked[1].EffectivePrice)
	}
}

func TestCheapestSellOffersChargesPerTile(t *testing.T) {
	c := NewCollector(chebyshev, 0.01)
	c.AddOffer(NewOffer("near", Sell, "energy", 10, 5, 10, pos(12)))
	c.AddOffer(NewOffer("cheap-far", Sell, "energy", 10, 1, 10, pos(40)))

	ranked := c.CheapestSellOffers("energy", pos(10))
	if want := []string{"cheap-far", "near"}; !slices.Equal(corpIDs(ranked), want) {
		t.Fatalf("expected %v, got %v", want, corpIDs(ranked))
	}
	if math.Abs(ranked[0].EffectivePrice-1.3) > 1e-9 {
		t.Fatalf("expected effective price 1.3, got %v", ranked[0].EffectivePrice)
	}
}

func corpIDs(rs []RankedOffer) []string {
	var out []string
	for _, r := range rs {
		out = append(out, r.CorpID)
	}
	return out
}

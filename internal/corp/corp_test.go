package corp

import (
	"testing"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/contract"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/economy"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/market"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

func testNode() *world.Node {
	anchor := world.Position{Region: "E1N1", X: 25, Y: 25}
	n := world.NewNode(anchor, 0)
	n.Resources = []world.Resource{
		{ID: "src1", Type: world.ResourceSource, Position: world.Position{Region: "E1N1", X: 10, Y: 10}, Capacity: 3000},
		{ID: "ctrl", Type: world.ResourceController, Position: world.Position{Region: "E1N1", X: 30, Y: 30}},
	}
	return n
}

func TestRoleIO(t *testing.T) {
	n := testNode()
	p := Params{UnitCost: 0.5, Margin: 0.1, Capacity: 10}
	prod := NewProducer(n, n.Resources[0], p, 1)
	up := NewUpgrader(n, n.Resources[1], p, 1)

	if !prod.State().IsProducer() || prod.State().Output != economy.ResourceEnergy {
		t.Fatalf("unexpected producer state: %+v", prod.State())
	}
	if up.State().Input != economy.ResourceEnergy || up.State().Output != economy.ResourceControllerProgress {
		t.Fatalf("unexpected upgrader state: %+v", up.State())
	}
	if prod.State().Position != n.Resources[0].Position {
		t.Fatalf("producer should sit on its source, got %v", prod.State().Position)
	}
	if len(n.Corps) != 2 || n.Corps[0] != prod.ID() {
		t.Fatalf("expected node to list both corps, got %v", n.Corps)
	}
	if prod.ID() == up.ID() {
		t.Fatalf("expected distinct ids, got %s twice", prod.ID())
	}
}

func TestOffersByRole(t *testing.T) {
	n := testNode()
	p := Params{UnitCost: 1, Margin: 0.5, Capacity: 10, Balance: 40}

	prod := NewProducer(n, n.Resources[0], p, 0).State().Offers(5)
	if len(prod) != 1 || prod[0].Type != market.Sell || prod[0].Price != 1.5 {
		t.Fatalf("expected one sell at 1.5, got %+v", prod)
	}
	if prod[0].Location == nil || *prod[0].Location != n.Resources[0].Position {
		t.Fatalf("expected offer located at source, got %v", prod[0].Location)
	}

	haul := NewHauler(n, p, 0).State().Offers(5)
	if len(haul) != 2 || haul[0].Type != market.Buy || haul[1].Type != market.Sell {
		t.Fatalf("expected buy then sell, got %+v", haul)
	}
	if haul[0].Price != 4 {
		t.Fatalf("expected bid of balance/capacity=4, got %v", haul[0].Price)
	}

	up := NewUpgrader(n, n.Resources[1], p, 0).State().Offers(5)
	if len(up) != 1 || up[0].Type != market.Buy || up[0].Resource != economy.ResourceEnergy {
		t.Fatalf("expected upgrader to only buy energy, got %+v", up)
	}

	spawn := NewSpawner(n, p, 0).State().Offers(5)
	if len(spawn) != 2 || spawn[1].Resource != economy.ResourceWorkTicks {
		t.Fatalf("expected spawner to sell work-ticks, got %+v", spawn)
	}

	idle := NewProducer(n, n.Resources[0], Params{}, 0).State().Offers(5)
	if len(idle) != 0 {
		t.Fatalf("expected no offers at zero capacity, got %+v", idle)
	}
}

func TestWorkerSpecs(t *testing.T) {
	n := testNode()
	var c Corp = NewProducer(n, n.Resources[0], Params{}, 0)
	ws, ok := c.(WorkerSpecifier)
	if !ok || ws.WorkerSpec().Kind != "harvester" {
		t.Fatalf("expected producer to request harvesters")
	}
	var s Corp = NewSpawner(n, Params{}, 0)
	if _, ok := s.(WorkerSpecifier); ok {
		t.Fatalf("spawner should not request a worker body")
	}
}

func TestRegistry(t *testing.T) {
	n := testNode()
	r := NewRegistry()
	a := NewProducer(n, n.Resources[0], Params{Capacity: 1}, 0)
	b := NewHauler(n, Params{Capacity: 1}, 0)
	c := NewUpgrader(n, n.Resources[1], Params{Capacity: 1}, 0)
	r.Add(a)
	r.Add(b)
	r.Add(c)
	r.Add(a)

	if r.TotalCorps() != 3 {
		t.Fatalf("expected 3 corps, got %d", r.TotalCorps())
	}
	states := r.States()
	if states[0].ID != a.ID() || states[2].ID != c.ID() {
		t.Fatalf("expected insertion order, got %v", states)
	}

	if got := r.ActiveCorps(5, 10); got != 3 {
		t.Fatalf("expected all corps active inside the window, got %d", got)
	}
	b.AssignWorker("w1")
	b.AssignWorker("w1")
	if r.ActiveCorps(100, 10) != 1 || b.WorkerCount() != 1 {
		t.Fatalf("expected one active corp with one worker")
	}
	b.ReleaseWorker("w1")
	if r.ActiveCorps(100, 10) != 0 {
		t.Fatalf("expected no active corps after release")
	}

	r.Touch(a.ID(), 95)
	r.Touch(a.ID(), 10)
	if got := a.State().LastActive; got != 95 {
		t.Fatalf("expected last active 95, got %d", got)
	}
	if r.ActiveCorps(100, 10) != 1 {
		t.Fatalf("expected touched corp to count as active")
	}

	a.AddContract(&contract.Contract{ID: "k1"})
	r.ClearContracts()
	if len(a.Contracts()) != 0 {
		t.Fatalf("expected contracts cleared")
	}

	r.Remove(b.ID())
	r.Remove("missing")
	if _, ok := r.Get(b.ID()); ok || r.TotalCorps() != 2 {
		t.Fatalf("expected hauler removed")
	}
}

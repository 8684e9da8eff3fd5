package contract

import (
	"testing"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/chain"
)

func TestIsActive(t *testing.T) {
	c := &Contract{Quantity: 10, StartTick: 100, Duration: 50}
	if !c.IsActive(100) || !c.IsActive(149) {
		t.Fatalf("expected active inside window")
	}
	if c.IsActive(150) {
		t.Fatalf("expected inactive at window end")
	}
	c.RecordDelivery(10)
	if c.IsActive(120) {
		t.Fatalf("expected inactive once fully delivered")
	}
}

func TestRecordDeliveryClamps(t *testing.T) {
	c := &Contract{Quantity: 10, Price: 50}
	if got := c.RecordDelivery(4); got != 4 {
		t.Fatalf("expected 4 accepted, got %v", got)
	}
	if got := c.RecordDelivery(20); got != 6 {
		t.Fatalf("expected 6 accepted, got %v", got)
	}
	if c.Delivered != c.Quantity || c.Remaining() != 0 {
		t.Fatalf("delivered must not exceed quantity: %+v", c)
	}
	if got := c.RecordDelivery(-1); got != 0 {
		t.Fatalf("expected negative delivery ignored")
	}
	if due := c.AmountDue(); due != 50 {
		t.Fatalf("expected 50 due, got %v", due)
	}
	c.RecordPayment(30)
	if due := c.AmountDue(); due != 20 {
		t.Fatalf("expected 20 due after payment, got %v", due)
	}
}

func TestWorkerSlots(t *testing.T) {
	c := &Contract{MaxWorkers: 2}
	if !c.RequestWorker() || !c.RequestWorker() || c.RequestWorker() {
		t.Fatalf("expected exactly two pending requests")
	}
	if !c.ClaimWorker("w1") || c.Pending != 1 || c.Claimed != 1 {
		t.Fatalf("unexpected bookkeeping after claim: %+v", c)
	}
	if !c.ClaimWorker("w1") || c.Claimed != 1 {
		t.Fatalf("re-claiming the same worker must be idempotent")
	}
	if !c.ClaimWorker("w2") || c.ClaimWorker("w3") {
		t.Fatalf("expected cap of two workers")
	}
	c.ReleaseWorker("w1")
	if len(c.AssignedWorkers) != 1 || c.AssignedWorkers[0] != "w2" {
		t.Fatalf("unexpected workers %v", c.AssignedWorkers)
	}
}

type fakeInfo struct{}

func (fakeInfo) TravelTime(s, b string) uint64 { return 12 }
func (fakeInfo) WorkerSpec(b string) *WorkerSpec {
	if b == "h1" {
		return &WorkerSpec{Kind: "hauler", CarryParts: 10, MoveParts: 5}
	}
	return nil
}
func (fakeInfo) MaxWorkers(b string) int { return 3 }

type recorder struct{ got []*Contract }

func (r *recorder) AddContract(c *Contract) { r.got = append(r.got, c) }

func testChain() chain.Chain {
	p := chain.BuildSegment("p1", "producer", "energy", 100, 10, 0.1)
	h := chain.BuildSegment("h1", "hauler", "energy", 100, p.OutputPrice, 0.2)
	u := chain.BuildSegment("u1", "upgrader", "controller-progress", 100, h.OutputPrice, 0.1)
	return chain.New("chain:p1>h1>u1", []chain.Segment{p, h, u}, 100)
}

func TestDerive(t *testing.T) {
	ch := testChain()
	cs := Derive(ch, 500, 1500, fakeInfo{})
	if len(cs) != 2 {
		t.Fatalf("expected 2 contracts, got %d", len(cs))
	}
	first := cs[0]
	if first.SellerID != "p1" || first.BuyerID != "h1" || first.Resource != "energy" {
		t.Fatalf("unexpected first contract %+v", first)
	}
	if first.Price != ch.Segments[0].OutputPrice || first.Quantity != 100 {
		t.Fatalf("unexpected price/qty %+v", first)
	}
	if first.StartTick != 500 || first.Duration != 1500 || first.TravelTime != 12 || first.MaxWorkers != 3 {
		t.Fatalf("unexpected bookkeeping %+v", first)
	}
	if first.WorkerSpec == nil || first.WorkerSpec.Kind != "hauler" {
		t.Fatalf("expected hauler worker spec, got %+v", first.WorkerSpec)
	}
	if cs[1].WorkerSpec != nil || cs[1].ChainID != ch.ID {
		t.Fatalf("unexpected second contract %+v", cs[1])
	}
	if first.ID == "" || first.ID == cs[1].ID {
		t.Fatalf("expected distinct ids")
	}

	if got := Derive(chain.New("solo", ch.Segments[:1], 10), 0, 10, nil); len(got) != 0 {
		t.Fatalf("single-segment chains yield no contracts")
	}
}

func TestDeriveAllAndAssign(t *testing.T) {
	funded := testChain()
	funded.Funded = true
	unfunded := testChain()
	unfunded.ID = "other"

	cs := DeriveAll([]chain.Chain{unfunded, funded}, 1, 10, nil)
	if len(cs) != 2 || cs[0].ChainID != funded.ID || cs[0].MaxWorkers != 1 {
		t.Fatalf("expected only funded chain contracts, got %d", len(cs))
	}

	parties := map[string]*recorder{"p1": {}, "h1": {}}
	Assign(cs, func(id string) (Party, bool) {
		r, ok := parties[id]
		return r, ok
	})
	if len(parties["p1"].got) != 1 || len(parties["h1"].got) != 2 {
		t.Fatalf("unexpected assignment p1=%d h1=%d", len(parties["p1"].got), len(parties["h1"].got))
	}
}

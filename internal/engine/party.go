package engine

import (
	"math"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/contract"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/corp"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/navigator"
)

// UnitsPerWorker is the per-cycle throughput one worker is expected to
// handle; it sizes MaxWorkers on derived contracts.
const UnitsPerWorker = 10

// parties answers contract derivation questions from the corp registry.
type parties struct{ c *Context }

// TravelTime estimates ticks between seller and buyer positions. Unknown
// corps or unparsable regions yield 0.
func (p parties) TravelTime(sellerID, buyerID string) uint64 {
	s, ok1 := p.c.Corps.Get(sellerID)
	b, ok2 := p.c.Corps.Get(buyerID)
	if !ok1 || !ok2 {
		return 0
	}
	d := navigator.EstimateTravel(s.State().Position, b.State().Position)
	if math.IsInf(d, 1) {
		return 0
	}
	return uint64(d)
}

func (p parties) WorkerSpec(buyerID string) *contract.WorkerSpec {
	cp, ok := p.c.Corps.Get(buyerID)
	if !ok {
		return nil
	}
	if ws, ok := cp.(corp.WorkerSpecifier); ok {
		return ws.WorkerSpec()
	}
	return nil
}

func (p parties) MaxWorkers(buyerID string) int {
	cp, ok := p.c.Corps.Get(buyerID)
	if !ok {
		return 1
	}
	return max(1, int(math.Ceil(cp.State().Capacity/UnitsPerWorker)))
}

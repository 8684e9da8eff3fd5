package contract

import (
	"github.com/google/uuid"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/chain"
)

// PartyInfo supplies per-corp execution details when deriving contracts.
type PartyInfo interface {
	TravelTime(sellerID, buyerID string) uint64
	WorkerSpec(buyerID string) *WorkerSpec
	MaxWorkers(buyerID string) int
}

// Party receives contracts it takes part in.
type Party interface {
	AddContract(c *Contract)
}

// Derive creates one contract per adjacent segment pair of ch, starting at
// tick and lasting duration ticks. info may be nil.
func Derive(ch chain.Chain, tick, duration uint64, info PartyInfo) []*Contract {
	var out []*Contract
	for i := 0; i+1 < len(ch.Segments); i++ {
		seller, buyer := ch.Segments[i], ch.Segments[i+1]
		c := &Contract{
			ID:         uuid.NewString(),
			ChainID:    ch.ID,
			SellerID:   seller.CorpID,
			BuyerID:    buyer.CorpID,
			Resource:   seller.Resource,
			Quantity:   seller.Quantity,
			Price:      seller.OutputPrice,
			Duration:   duration,
			StartTick:  tick,
			MaxWorkers: 1,
		}
		if info != nil {
			c.TravelTime = info.TravelTime(seller.CorpID, buyer.CorpID)
			c.WorkerSpec = info.WorkerSpec(buyer.CorpID)
			if n := info.MaxWorkers(buyer.CorpID); n > 0 {
				c.MaxWorkers = n
			}
		}
		out = append(out, c)
	}
	return out
}

// DeriveAll derives contracts for every funded chain, in chain order.
func DeriveAll(chains []chain.Chain, tick, duration uint64, info PartyInfo) []*Contract {
	var out []*Contract
	for _, ch := range chains {
		if !ch.Funded {
			continue
		}
		out = append(out, Derive(ch, tick, duration, info)...)
	}
	return out
}

// Assign hands each contract to both its seller and its buyer. Parties
// that lookup cannot resolve are skipped.
func Assign(contracts []*Contract, lookup func(corpID string) (Party, bool)) {
	for _, c := range contracts {
		if p, ok := lookup(c.SellerID); ok {
			p.AddContract(c)
		}
		if p, ok := lookup(c.BuyerID); ok {
			p.AddContract(c)
		}
	}
}

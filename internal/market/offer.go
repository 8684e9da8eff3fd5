// Package market indexes the buy and sell offers corps publish each
// planning cycle, by resource and direction.
package market

import (
	"github.com/google/uuid"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/world"
)

// Direction is the side of an offer.
type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

// Offer is a standing intent to buy or sell a resource. Price is per unit.
// Offers are immutable within a planning cycle.
type Offer struct {
	ID       string          `json:"id"`
	CorpID   string          `json:"corp_id"`
	Type     Direction       `json:"type"`
	Resource string          `json:"resource"`
	Quantity float64         `json:"quantity"`
	Price    float64         `json:"price"`
	Duration uint64          `json:"duration"`
	Location *world.Position `json:"location,omitempty"`
}

// NewOffer creates an offer with a fresh id.
func NewOffer(corpID string, dir Direction, resource string, quantity, price float64, duration uint64, loc *world.Position) Offer {
	return Offer{
		ID:       uuid.NewString(),
		CorpID:   corpID,
		Type:     dir,
		Resource: resource,
		Quantity: quantity,
		Price:    price,
		Duration: duration,
		Location: loc,
	}
}

// Source is anything that can publish offers for a tick.
type Source interface {
	Offers(tick uint64) []Offer
}

// Package contract turns funded chains into executable seller/buyer
// agreements and tracks their delivery and payment bookkeeping.
package contract

import (
	"slices"
)

// WorkerSpec tells the buyer what kind of worker to request for a contract.
type WorkerSpec struct {
	Kind       string `json:"kind"`
	WorkParts  int    `json:"work_parts,omitempty"`
	CarryParts int    `json:"carry_parts,omitempty"`
	MoveParts  int    `json:"move_parts,omitempty"`
}

// Contract is one hop of a funded chain. Delivered never exceeds Quantity.
// Price is the total price for the full quantity.
type Contract struct {
	ID        string  `json:"id"`
	ChainID   string  `json:"chain_id"`
	SellerID  string  `json:"seller_id"`
	BuyerID   string  `json:"buyer_id"`
	Resource  string  `json:"resource"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Duration  uint64  `json:"duration"`
	StartTick uint64  `json:"start_tick"`
	Delivered float64 `json:"delivered"`
	Paid      float64 `json:"paid"`

	// Execution bookkeeping.
	AssignedWorkers []string    `json:"assigned_workers"`
	MaxWorkers      int         `json:"max_workers"`
	Pending         int         `json:"pending"`
	Claimed         int         `json:"claimed"`
	TravelTime      uint64      `json:"travel_time"`
	WorkerSpec      *WorkerSpec `json:"worker_spec,omitempty"`
}

// IsActive reports whether the contract is inside its window and not yet
// fully delivered.
func (c *Contract) IsActive(tick uint64) bool {
	return tick < c.StartTick+c.Duration && c.Delivered < c.Quantity
}

// Remaining returns the undelivered quantity.
func (c *Contract) Remaining() float64 {
	return max(c.Quantity-c.Delivered, 0)
}

// UnitPrice returns the price per unit, or 0 for an empty contract.
func (c *Contract) UnitPrice() float64 {
	if c.Quantity <= 0 {
		return 0
	}
	return c.Price / c.Quantity
}

// RecordDelivery adds up to qty to Delivered and returns the amount
// accepted. Deliveries beyond Quantity are clamped.
func (c *Contract) RecordDelivery(qty float64) float64 {
	if !(qty > 0) {
		return 0
	}
	accepted := min(qty, c.Remaining())
	c.Delivered += accepted
	return accepted
}

// AmountDue is the value delivered but not yet paid for.
func (c *Contract) AmountDue() float64 {
	return max(c.Delivered*c.UnitPrice()-c.Paid, 0)
}

// RecordPayment adds amount to Paid.
func (c *Contract) RecordPayment(amount float64) {
	if !(amount > 0) {
		return
	}
	c.Paid += amount
}

// RequestWorker reserves a pending worker slot if capacity remains.
func (c *Contract) RequestWorker() bool {
	if len(c.AssignedWorkers)+c.Pending >= c.MaxWorkers {
		return false
	}
	c.Pending++
	return true
}

// ClaimWorker attaches a worker to the contract, consuming a pending slot
// when one exists. It fails once MaxWorkers are assigned.
func (c *Contract) ClaimWorker(workerID string) bool {
	if slices.Contains(c.AssignedWorkers, workerID) {
		return true
	}
	if len(c.AssignedWorkers) >= c.MaxWorkers {
		return false
	}
	c.AssignedWorkers = append(c.AssignedWorkers, workerID)
	c.Claimed++
	if c.Pending > 0 {
		c.Pending--
	}
	return true
}

// ReleaseWorker detaches a worker, e.g. when it dies.
func (c *Contract) ReleaseWorker(workerID string) {
	c.AssignedWorkers = slices.DeleteFunc(c.AssignedWorkers, func(id string) bool { return id == workerID })
}

// Package chain models production chains: ordered corp-to-corp hops from a
// raw input to a mintable terminal output, with the cost, profit and
// conflict-resolution algorithms the planner needs. Everything here is pure.
package chain

import (
	"cmp"
	"slices"
)

// Segment is one hop of a chain. OutputPrice is always
// InputCost × (1 + Margin).
type Segment struct {
	CorpID      string  `json:"corp_id"`
	CorpType    string  `json:"corp_type"`
	Resource    string  `json:"resource"`
	Quantity    float64 `json:"quantity"`
	InputCost   float64 `json:"input_cost"`
	Margin      float64 `json:"margin"`
	OutputPrice float64 `json:"output_price"`
}

// Chain is an ordered sequence of segments plus aggregate economics.
type Chain struct {
	ID        string    `json:"id"`
	Segments  []Segment `json:"segments"`
	LeafCost  float64   `json:"leaf_cost"`
	TotalCost float64   `json:"total_cost"`
	MintValue float64   `json:"mint_value"`
	Profit    float64   `json:"profit"`
	Funded    bool      `json:"funded"`
	Priority  float64   `json:"priority"`
	Age       uint64    `json:"age"`
}

// BuildSegment creates a segment, deriving its output price.
func BuildSegment(corpID, corpType, resource string, quantity, inputCost, margin float64) Segment {
	return Segment{
		CorpID:      corpID,
		CorpType:    corpType,
		Resource:    resource,
		Quantity:    quantity,
		InputCost:   inputCost,
		Margin:      margin,
		OutputPrice: inputCost * (1 + margin),
	}
}

// Reprice sets a new input cost and recomputes the output price.
func (s *Segment) Reprice(inputCost float64) {
	s.InputCost = inputCost
	s.OutputPrice = inputCost * (1 + s.Margin)
}

// RecomputeFrom re-prices segments[i+1:] so that each input cost equals the
// previous segment's output price, after segments[i] changed.
func RecomputeFrom(segments []Segment, i int) {
	for j := max(i+1, 1); j < len(segments); j++ {
		segments[j].Reprice(segments[j-1].OutputPrice)
	}
}

// New creates a chain. Total cost is the last segment's output price, leaf
// cost the first segment's input cost, and priority starts at profit. A nil
// segment list is stored as empty.
func New(id string, segments []Segment, mintValue float64) Chain {
	if segments == nil {
		segments = []Segment{}
	}
	c := Chain{
		ID:        id,
		Segments:  segments,
		TotalCost: TotalCost(segments),
		MintValue: mintValue,
	}
	if len(segments) > 0 {
		c.LeafCost = segments[0].InputCost
	}
	c.Profit = Profit(c)
	c.Priority = c.Profit
	return c
}

// TotalCost returns the stored output price of the last segment, or 0.
func TotalCost(segments []Segment) float64 {
	if len(segments) == 0 {
		return 0
	}
	return segments[len(segments)-1].OutputPrice
}

// Profit is mint value minus total cost.
func Profit(c Chain) float64 {
	return c.MintValue - c.TotalCost
}

// IsViable reports strictly positive profit. Break-even is not viable.
func IsViable(c Chain) bool {
	return Profit(c) > 0
}

// ROI is profit over total cost, or 0 when the chain costs nothing.
func ROI(c Chain) float64 {
	if c.TotalCost == 0 {
		return 0
	}
	return Profit(c) / c.TotalCost
}

// CorpIDs lists the corps of c in segment order.
func CorpIDs(c Chain) []string {
	ids := make([]string, len(c.Segments))
	for i, s := range c.Segments {
		ids[i] = s.CorpID
	}
	return ids
}

// Overlap reports whether a and b share at least one corp.
func Overlap(a, b Chain) bool {
	for _, s := range a.Segments {
		for _, t := range b.Segments {
			if s.CorpID == t.CorpID {
				return true
			}
		}
	}
	return false
}

// SortByProfit returns a copy sorted by descending profit.
func SortByProfit(chains []Chain) []Chain {
	out := slices.Clone(chains)
	slices.SortStableFunc(out, func(a, b Chain) int { return cmp.Compare(Profit(b), Profit(a)) })
	return out
}

// SortByROI returns a copy sorted by descending ROI.
func SortByROI(chains []Chain) []Chain {
	out := slices.Clone(chains)
	slices.SortStableFunc(out, func(a, b Chain) int { return cmp.Compare(ROI(b), ROI(a)) })
	return out
}

// FilterViable keeps only viable chains.
func FilterViable(chains []Chain) []Chain {
	var out []Chain
	for _, c := range chains {
		if IsViable(c) {
			out = append(out, c)
		}
	}
	return out
}

// SelectNonOverlapping greedily takes chains in descending profit order,
// skipping any chain that shares a corp with one already taken. No corp is
// committed twice. This is an approximation, not a maximum-weight solution.
func SelectNonOverlapping(chains []Chain) []Chain {
	used := make(map[string]bool)
	var out []Chain
	for _, c := range SortByProfit(chains) {
		ids := CorpIDs(c)
		if slices.ContainsFunc(ids, func(id string) bool { return used[id] }) {
			continue
		}
		for _, id := range ids {
			used[id] = true
		}
		out = append(out, c)
	}
	return out
}

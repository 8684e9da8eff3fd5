package chain

import (
	"math"
	"reflect"
	"slices"
	"testing"
)

const tolerance = 1e-3

func segs(ids ...string) []Segment {
	var out []Segment
	cost := 10.0
	for _, id := range ids {
		s := BuildSegment(id, "producer", "energy", 100, cost, 0.1)
		out = append(out, s)
		cost = s.OutputPrice
	}
	return out
}

func withProfit(id string, profit float64, corps ...string) Chain {
	s := segs(corps...)
	return New(id, s, TotalCost(s)+profit)
}

func TestBuildSegmentPrice(t *testing.T) {
	s := BuildSegment("c1", "hauler", "energy", 50, 200, 0.25)
	if math.Abs(s.OutputPrice-250) > tolerance {
		t.Fatalf("expected 250, got %v", s.OutputPrice)
	}
}

func TestNewDerivesAggregates(t *testing.T) {
	s := segs("a", "b", "c")
	c := New("x", s, 20)
	if math.Abs(c.TotalCost-s[2].OutputPrice) > tolerance {
		t.Fatalf("total cost must equal last output price, got %v want %v", c.TotalCost, s[2].OutputPrice)
	}
	if math.Abs(c.TotalCost-13.31) > tolerance {
		t.Fatalf("expected 13.31, got %v", c.TotalCost)
	}
	if c.LeafCost != 10 {
		t.Fatalf("expected leaf cost 10, got %v", c.LeafCost)
	}
	if math.Abs(c.Profit-(20-13.31)) > tolerance || c.Priority != c.Profit {
		t.Fatalf("unexpected profit/priority %v/%v", c.Profit, c.Priority)
	}
	if c.Funded || c.Age != 0 {
		t.Fatalf("new chains start unfunded at age 0")
	}
	for i := 1; i < len(s); i++ {
		if math.Abs(s[i].InputCost-s[i-1].OutputPrice) > tolerance {
			t.Fatalf("segment %d not chained", i)
		}
	}
}

func TestEmptyChain(t *testing.T) {
	c := New("empty", nil, 5)
	if c.TotalCost != 0 || c.Profit != 5 {
		t.Fatalf("unexpected empty chain %+v", c)
	}
	if ROI(c) != 0 {
		t.Fatalf("expected ROI 0 for zero cost")
	}
}

func TestViability(t *testing.T) {
	s := segs("a")
	even := New("even", s, TotalCost(s))
	if IsViable(even) {
		t.Fatalf("break-even chain must not be viable")
	}
	if !IsViable(New("up", s, TotalCost(s)+0.01)) {
		t.Fatalf("profitable chain must be viable")
	}
	if IsViable(New("down", s, 1)) {
		t.Fatalf("losing chain must not be viable")
	}
	got := FilterViable([]Chain{even, New("up", s, 100)})
	if len(got) != 1 || got[0].ID != "up" {
		t.Fatalf("unexpected filter result %v", got)
	}
}

func TestROIAndSorting(t *testing.T) {
	a := New("a", []Segment{BuildSegment("1", "p", "e", 1, 100, 0)}, 150) // profit 50, roi 0.5
	b := New("b", []Segment{BuildSegment("2", "p", "e", 1, 10, 0)}, 40)   // profit 30, roi 3
	if r := ROI(a); math.Abs(r-0.5) > tolerance {
		t.Fatalf("expected 0.5, got %v", r)
	}
	in := []Chain{b, a}
	byProfit := SortByProfit(in)
	if byProfit[0].ID != "a" || in[0].ID != "b" {
		t.Fatalf("expected a first and input untouched, got %v / %v", byProfit[0].ID, in[0].ID)
	}
	if byROI := SortByROI([]Chain{a, b}); byROI[0].ID != "b" {
		t.Fatalf("expected b first by ROI")
	}
}

func TestCorpIDsAndOverlap(t *testing.T) {
	a := New("a", segs("p1", "h1", "u1"), 100)
	b := New("b", segs("p2", "h1"), 100)
	c := New("c", segs("p3", "u3"), 100)
	if !slices.Equal(CorpIDs(a), []string{"p1", "h1", "u1"}) {
		t.Fatalf("unexpected ids %v", CorpIDs(a))
	}
	if !Overlap(a, b) || Overlap(a, c) {
		t.Fatalf("unexpected overlap result")
	}
}

func TestSelectNonOverlapping(t *testing.T) {
	low := withProfit("low", 5, "p1", "h1")
	high := withProfit("high", 50, "p2", "h1")
	other := withProfit("other", 10, "p3", "h3")
	got := SelectNonOverlapping([]Chain{low, other, high})
	if len(got) != 2 || got[0].ID != "high" || got[1].ID != "other" {
		t.Fatalf("unexpected selection %v", ids(got))
	}
	seen := map[string]bool{}
	for _, c := range got {
		for _, id := range CorpIDs(c) {
			if seen[id] {
				t.Fatalf("corp %s committed twice", id)
			}
			seen[id] = true
		}
	}
}

func TestSelectNonOverlappingIsGreedy(t *testing.T) {
	// Taking "mid" first blocks two chains whose combined profit is larger;
	// the greedy selection still takes it.
	mid := withProfit("mid", 10, "a", "b")
	left := withProfit("left", 8, "a", "x")
	right := withProfit("right", 8, "b", "y")
	got := SelectNonOverlapping([]Chain{left, right, mid})
	if len(got) != 1 || got[0].ID != "mid" {
		t.Fatalf("expected greedy pick of mid only, got %v", ids(got))
	}
}

func TestRecomputeFrom(t *testing.T) {
	s := segs("a", "b", "c")
	s[0].Reprice(20)
	RecomputeFrom(s, 0)
	if math.Abs(s[0].OutputPrice-22) > tolerance || math.Abs(s[2].OutputPrice-26.62) > tolerance {
		t.Fatalf("unexpected re-pricing %+v", s)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	full := New("chain:p1>h1>u1", segs("p1", "h1", "u1"), 42.5)
	full.Funded = true
	full.Age = 77
	full.Priority = 3.25

	for _, c := range []Chain{full, New("chain:empty", nil, 7)} {
		data, err := Serialize(c)
		if err != nil {
			t.Fatalf("serialize %s: %v", c.ID, err)
		}
		back, err := Deserialize(data)
		if err != nil {
			t.Fatalf("deserialize %s: %v", c.ID, err)
		}
		if !reflect.DeepEqual(c, back) {
			t.Fatalf("round trip mismatch:\n%+v\n%+v", c, back)
		}
	}
}

func TestDeserializeToleratesMissingFields(t *testing.T) {
	c, err := Deserialize([]byte(`{"id":"old","mint_value":3}`))
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if c.ID != "old" || c.MintValue != 3 || c.Segments == nil || c.Funded {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if _, err := Deserialize([]byte(`{`)); err == nil {
		t.Fatalf("expected error on malformed data")
	}
}

func ids(cs []Chain) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

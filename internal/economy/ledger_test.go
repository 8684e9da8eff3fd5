package economy

import (
	"math"
	"testing"
)

func TestLedgerScenario(t *testing.T) {
	l := NewLedger()
	l.Mint(10000, "bootstrap")
	ms := l.MoneySupply()
	if ms.Treasury != 10000 || ms.Minted != 10000 || ms.Taxed != 0 {
		t.Fatalf("unexpected supply after bootstrap: %+v", ms)
	}
	if !l.Spend(4000) {
		t.Fatalf("expected spend of 4000 to succeed")
	}
	if l.Treasury() != 6000 {
		t.Fatalf("expected 6000, got %v", l.Treasury())
	}
	if l.Spend(7000) {
		t.Fatalf("expected spend of 7000 to fail")
	}
	if l.Treasury() != 6000 {
		t.Fatalf("expected treasury unchanged at 6000, got %v", l.Treasury())
	}
	if net := l.MoneySupply().Net; net != 10000 {
		t.Fatalf("expected net 10000, got %v", net)
	}
}

func TestLedgerIgnoresInvalidAmounts(t *testing.T) {
	l := NewLedger()
	l.Mint(0, "zero")
	l.Mint(-5, "negative")
	l.Mint(math.NaN(), "nan")
	l.RecordTaxDestroyed(-1)
	if ms := l.MoneySupply(); ms != (MoneySupply{}) {
		t.Fatalf("expected empty supply, got %+v", ms)
	}
	if len(l.History()) != 0 {
		t.Fatalf("expected no history")
	}
	if l.Spend(-3) {
		t.Fatalf("expected negative spend to be refused")
	}

	l.Mint(100, "seed")
	if l.Spend(math.NaN()) {
		t.Fatalf("expected NaN spend to be refused")
	}
	if l.Treasury() != 100 {
		t.Fatalf("expected treasury untouched at 100, got %v", l.Treasury())
	}
	if !l.Spend(10) || l.Treasury() != 90 {
		t.Fatalf("expected a later spend to debit normally, got treasury %v", l.Treasury())
	}
	if l.Spend(math.Inf(1)) || l.Spend(91) {
		t.Fatalf("expected spends beyond the treasury to be refused")
	}
}

func TestTransferToClamps(t *testing.T) {
	l := NewLedger()
	l.Mint(50, "seed")
	if moved := l.TransferTo(80); moved != 50 {
		t.Fatalf("expected 50 moved, got %v", moved)
	}
	if l.Treasury() != 0 {
		t.Fatalf("expected empty treasury, got %v", l.Treasury())
	}
	if moved := l.TransferTo(10); moved != 0 {
		t.Fatalf("expected nothing moved from empty treasury, got %v", moved)
	}
	l.Mint(30, "seed")
	if moved := l.TransferTo(12); moved != 12 || l.Treasury() != 18 {
		t.Fatalf("expected partial transfer, got moved=%v treasury=%v", moved, l.Treasury())
	}
}

func TestTaxRecordsWithoutTouchingTreasury(t *testing.T) {
	l := NewLedger()
	l.Mint(100, "seed")
	l.RecordTaxDestroyed(7)
	ms := l.MoneySupply()
	if ms.Treasury != 100 || ms.Taxed != 7 || ms.Net != 93 {
		t.Fatalf("unexpected supply %+v", ms)
	}
}

func TestMintHistoryBounds(t *testing.T) {
	l := NewLedger()
	for i := 1; i <= 130; i++ {
		l.Advance(uint64(i))
		l.Mint(1, "tick")
	}
	h := l.History()
	if len(h) != MaxMintHistory {
		t.Fatalf("expected %d events, got %d", MaxMintHistory, len(h))
	}
	if h[0].Tick != 31 || h[len(h)-1].Tick != 130 {
		t.Fatalf("expected oldest evicted, got first=%d last=%d", h[0].Tick, h[len(h)-1].Tick)
	}

	st := l.State()
	if len(st.MintHistory) != MaxPersistedMintHist || st.MintHistory[0].Tick != 111 {
		t.Fatalf("expected last %d persisted, got %d starting at %d", MaxPersistedMintHist, len(st.MintHistory), st.MintHistory[0].Tick)
	}

	restored := LoadLedger(st)
	if restored.MoneySupply() != l.MoneySupply() {
		t.Fatalf("restored supply mismatch: %+v vs %+v", restored.MoneySupply(), l.MoneySupply())
	}
	if len(restored.History()) != MaxPersistedMintHist {
		t.Fatalf("expected %d restored events", MaxPersistedMintHist)
	}
}

func TestLoadLedgerClampsNegative(t *testing.T) {
	l := LoadLedger(LedgerState{Treasury: -10, TotalMinted: 5})
	if l.Treasury() != 0 || l.MoneySupply().Minted != 5 {
		t.Fatalf("unexpected restored ledger %+v", l.MoneySupply())
	}
}

func TestMintValues(t *testing.T) {
	mv := DefaultMintValues().Merge(map[string]float64{"power": 2.5})
	if !mv.IsTerminal(ResourceControllerProgress) || mv.Rate("power") != 2.5 {
		t.Fatalf("unexpected mint table %v", mv)
	}
	if mv.IsTerminal(ResourceEnergy) {
		t.Fatalf("energy must not be terminal")
	}
	if _, ok := DefaultMintValues()["power"]; ok {
		t.Fatalf("Merge must not mutate the receiver")
	}
}

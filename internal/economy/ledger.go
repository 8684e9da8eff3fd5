// Package economy provides the colony's credit ledger, the mint-value table
// for terminal resources, and the names of traded resources.
package economy

// Mint history bounds: in memory and in the persisted state.
const (
	MaxMintHistory       = 100
	MaxPersistedMintHist = 20
)

// MintEvent records one mint.
type MintEvent struct {
	Tick   uint64  `json:"tick"`
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// MoneySupply is an aggregate snapshot of the ledger.
type MoneySupply struct {
	Minted   float64 `json:"minted"`
	Taxed    float64 `json:"taxed"`
	Net      float64 `json:"net"`
	Treasury float64 `json:"treasury"`
}

// Ledger tracks one economic actor's money supply. The treasury never goes
// negative; minted and taxed totals never decrease. Invalid amounts are
// ignored rather than rejected.
type Ledger struct {
	treasury float64
	minted   float64
	taxed    float64
	history  []MintEvent
	tick     uint64
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Advance sets the tick stamped on subsequent mint events.
func (l *Ledger) Advance(tick uint64) {
	l.tick = tick
}

// Mint creates amount credits in the treasury. Non-positive amounts are a no-op.
func (l *Ledger) Mint(amount float64, reason string) {
	if !(amount > 0) {
		return
	}
	l.treasury += amount
	l.minted += amount
	l.history = append(l.history, MintEvent{Tick: l.tick, Amount: amount, Reason: reason})
	if len(l.history) > MaxMintHistory {
		l.history = l.history[len(l.history)-MaxMintHistory:]
	}
}

// Spend debits amount if the treasury covers it. It is all-or-nothing:
// false means nothing changed.
func (l *Ledger) Spend(amount float64) bool {
	if !(amount >= 0) || amount > l.treasury {
		return false
	}
	l.treasury -= amount
	return true
}

// RecordTaxDestroyed adds to the cumulative taxed total. The caller has
// already removed the money from circulation; the treasury is untouched.
func (l *Ledger) RecordTaxDestroyed(amount float64) {
	if !(amount > 0) {
		return
	}
	l.taxed += amount
}

// TransferTo moves up to amount out of the treasury and returns how much
// actually moved. Partial transfers are allowed.
func (l *Ledger) TransferTo(amount float64) float64 {
	if !(amount > 0) {
		return 0
	}
	moved := min(amount, l.treasury)
	l.treasury -= moved
	return moved
}

// Treasury returns the current balance.
func (l *Ledger) Treasury() float64 {
	return l.treasury
}

// MoneySupply returns minted, taxed, net (minted − taxed) and treasury.
func (l *Ledger) MoneySupply() MoneySupply {
	return MoneySupply{
		Minted:   l.minted,
		Taxed:    l.taxed,
		Net:      l.minted - l.taxed,
		Treasury: l.treasury,
	}
}

// History returns a copy of the recent mint events, oldest first.
func (l *Ledger) History() []MintEvent {
	out := make([]MintEvent, len(l.history))
	copy(out, l.history)
	return out
}

// LedgerState is the persisted shape of a ledger.
type LedgerState struct {
	Treasury    float64     `json:"treasury"`
	TotalMinted float64     `json:"total_minted"`
	TotalTaxed  float64     `json:"total_taxed"`
	MintHistory []MintEvent `json:"mint_history"`
}

// State returns the persisted shape, keeping only the newest
// MaxPersistedMintHist mint events.
func (l *Ledger) State() LedgerState {
	hist := l.History()
	if len(hist) > MaxPersistedMintHist {
		hist = hist[len(hist)-MaxPersistedMintHist:]
	}
	return LedgerState{
		Treasury:    l.treasury,
		TotalMinted: l.minted,
		TotalTaxed:  l.taxed,
		MintHistory: hist,
	}
}

// LoadLedger restores a ledger from its persisted shape. Negative values
// from a damaged state are clamped to zero.
func LoadLedger(s LedgerState) *Ledger {
	l := &Ledger{
		treasury: max(s.Treasury, 0),
		minted:   max(s.TotalMinted, 0),
		taxed:    max(s.TotalTaxed, 0),
	}
	l.history = append(l.history, s.MintHistory...)
	if len(l.history) > MaxMintHistory {
		l.history = l.history[len(l.history)-MaxMintHistory:]
	}
	return l
}

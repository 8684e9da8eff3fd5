package economy

// Traded resource names.
const (
	ResourceEnergy             = "energy"              // Harvested from sources, moved by haulers
	ResourceControllerProgress = "controller-progress" // Produced by upgraders; mintable
	ResourceWorkTicks          = "work-ticks"          // Worker lifetime sold by spawners
)

// MintValues maps terminal resources to the credits minted per unit.
type MintValues map[string]float64

// DefaultMintValues returns the stock mint table.
func DefaultMintValues() MintValues {
	return MintValues{
		ResourceControllerProgress: 1.0,
	}
}

// Rate returns the credits per unit for resource, or 0 if it is not terminal.
func (m MintValues) Rate(resource string) float64 {
	return m[resource]
}

// IsTerminal reports whether resource mints credits when produced.
func (m MintValues) IsTerminal(resource string) bool {
	return m[resource] > 0
}

// Merge returns a copy of m with overrides applied key by key.
func (m MintValues) Merge(overrides map[string]float64) MintValues {
	out := make(MintValues, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

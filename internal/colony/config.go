package colony

// Config holds the colony's economic knobs.
type Config struct {
	TaxRate           float64 `yaml:"tax_rate" json:"tax_rate"`
	SeedCapital       float64 `yaml:"seed_capital" json:"seed_capital"`
	GracePeriod       uint64  `yaml:"grace_period" json:"grace_period"`
	MinTreasuryBuffer float64 `yaml:"min_treasury_buffer" json:"min_treasury_buffer"`
	ChainLifetime     uint64  `yaml:"chain_lifetime" json:"chain_lifetime"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		TaxRate:           0.001,
		SeedCapital:       10000,
		GracePeriod:       1500,
		MinTreasuryBuffer: 1000,
		ChainLifetime:     1500,
	}
}

// Sanitize clamps out-of-range values.
func (c Config) Sanitize() Config {
	c.TaxRate = min(max(c.TaxRate, 0), 1)
	c.SeedCapital = max(c.SeedCapital, 0)
	c.MinTreasuryBuffer = max(c.MinTreasuryBuffer, 0)
	return c
}

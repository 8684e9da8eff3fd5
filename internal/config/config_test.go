package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/economy"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colony.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Colony.TaxRate != 0.001 || cfg.Colony.SeedCapital != 10000 ||
		cfg.Colony.GracePeriod != 1500 || cfg.Colony.MinTreasuryBuffer != 1000 {
		t.Fatalf("unexpected colony defaults: %+v", cfg.Colony)
	}
	if cfg.MintValues.Rate(economy.ResourceControllerProgress) != 1 {
		t.Fatalf("expected controller-progress mint rate 1")
	}
	if cfg.Schedule.PlanEvery != 5000 {
		t.Fatalf("expected plan every 5000, got %d", cfg.Schedule.PlanEvery)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
colony:
  tax_rate: 0.05
  seed_capital: 500
mint_values:
  work-ticks: 0.2
planner:
  max_chain_depth: 4
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Colony.TaxRate != 0.05 || cfg.Colony.SeedCapital != 500 {
		t.Fatalf("expected overrides applied, got %+v", cfg.Colony)
	}
	if cfg.Colony.GracePeriod != 1500 || cfg.Colony.ChainLifetime != 1500 {
		t.Fatalf("expected untouched keys to keep defaults, got %+v", cfg.Colony)
	}
	if cfg.MintValues.Rate(economy.ResourceWorkTicks) != 0.2 || cfg.MintValues.Rate(economy.ResourceControllerProgress) != 1 {
		t.Fatalf("expected mint values merged, got %v", cfg.MintValues)
	}
	if cfg.Planner.MaxDepth != 4 || cfg.Planner.PathCacheSize != 1024 {
		t.Fatalf("unexpected planner config: %+v", cfg.Planner)
	}
}

func TestLoadClampsAndErrors(t *testing.T) {
	cfg, err := Load(writeFile(t, "colony:\n  tax_rate: 3\nschedule:\n  plan_every: 0\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Colony.TaxRate != 1 || cfg.Schedule.PlanEvery != 5000 {
		t.Fatalf("expected clamped tax and default schedule, got %+v %+v", cfg.Colony, cfg.Schedule)
	}

	if _, err := Load(writeFile(t, "colony: [")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
	if cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml")); err != nil || cfg.Colony.SeedCapital != 10000 {
		t.Fatalf("expected defaults for missing file, got %+v, %v", cfg, err)
	}
}

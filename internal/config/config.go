// Package config loads the colony's tunables from YAML, layered over the
// built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/colony"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/economy"
	"github.com/ShadyMccoy/DarkPhoenix-sub006/internal/planner"
)

// Schedule sets how often the engine phases run, in ticks.
type Schedule struct {
	SurveyEvery uint64 `yaml:"survey_every"`
	PlanEvery   uint64 `yaml:"plan_every"`
}

// Config is the full set of tunables.
type Config struct {
	Colony     colony.Config      `yaml:"colony"`
	MintValues economy.MintValues `yaml:"mint_values"`
	Schedule   Schedule           `yaml:"schedule"`
	Planner    planner.Config     `yaml:"planner"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Colony:     colony.DefaultConfig(),
		MintValues: economy.DefaultMintValues(),
		Schedule: Schedule{
			SurveyEvery: 100,
			PlanEvery:   5000,
		},
		Planner: planner.DefaultConfig(),
	}
}

// Load reads path and overlays it on Default. Keys absent from the file
// keep their default; mint values merge per resource.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}

	var overrides struct {
		MintValues map[string]float64 `yaml:"mint_values"`
	}
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	cfg.MintValues = economy.DefaultMintValues().Merge(overrides.MintValues)

	cfg.Colony = cfg.Colony.Sanitize()
	if cfg.Schedule.SurveyEvery == 0 {
		cfg.Schedule.SurveyEvery = Default().Schedule.SurveyEvery
	}
	if cfg.Schedule.PlanEvery == 0 {
		cfg.Schedule.PlanEvery = Default().Schedule.PlanEvery
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but treats a missing file as empty.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}

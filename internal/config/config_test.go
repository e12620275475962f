package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
logging:
  level: debug
  format: console
output:
  format: csv
market:
  targetId: guild-hall
  prices:
    wood: 0.5
    Ore: 2
    GEM: 12
  points:
    wood: 1
    ore: 5
    gem: 40
  secondary:
    ore: 0.25
inventory:
  wood: 40
  ore: 3
simulate:
  symbol: gem
  amount: 2
bundle:
  targetReward: 120
  symbols: [wood, ore, ore, gem]
  caps:
    ore: 30
layout:
  budget: 50
  batchSizes: [3, 2, 1]
  candidates:
    - identifier: mine-t2
      profitRate: 4.5
      unitRequirements:
        ore: 2
        wood: 1
  recipes:
    - identifier: smelter
      outputSymbol: gem
      outputPerHour: 0.5
      inputsPerHour:
        ore: 1
      unitRequirements:
        gem: 1
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Sample config",
			configPath: writeConfig(t, sampleConfig),
		},
		{
			name:       "Negative budget",
			configPath: writeConfig(t, "layout:\n  budget: -1\n"),
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationCanonicalizesSymbols(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if conf.Market.TargetID != "guild-hall" {
		t.Errorf("expected target guild-hall, got %q", conf.Market.TargetID)
	}
	if conf.Market.Prices["ORE"] != 2 || conf.Market.Points["GEM"] != 40 {
		t.Errorf("market symbols not canonicalized: %+v", conf.Market)
	}
	if conf.Inventory["WOOD"] != 40 {
		t.Errorf("inventory symbols not canonicalized: %+v", conf.Inventory)
	}
	if conf.Simulate.Symbol != "GEM" || conf.Simulate.Amount != 2 {
		t.Errorf("unexpected simulate section %+v", conf.Simulate)
	}

	wantSymbols := []string{"WOOD", "ORE", "GEM"}
	if strings.Join(conf.Bundle.Symbols, ",") != strings.Join(wantSymbols, ",") {
		t.Errorf("expected deduplicated symbols %v, got %v", wantSymbols, conf.Bundle.Symbols)
	}
	if conf.Bundle.Caps["ORE"] != 30 {
		t.Errorf("expected ORE cap 30, got %v", conf.Bundle.Caps)
	}

	target, err := conf.Bundle.Target()
	if err != nil || target != 120 {
		t.Errorf("Target() = %v, %v; want 120", target, err)
	}

	if len(conf.Layout.Candidates) != 1 || conf.Layout.Candidates[0].UnitRequirements["ORE"] != 2 {
		t.Errorf("unexpected candidates %+v", conf.Layout.Candidates)
	}
	if conf.Logging.Level != "debug" || conf.Output.Format != "csv" {
		t.Errorf("unexpected ambient sections %+v %+v", conf.Logging, conf.Output)
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("CRAFTPLAN_LAYOUT_BUDGET", "75")

	conf, err := LoadConfiguration(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Layout.Budget != 75 {
		t.Errorf("expected env override budget 75, got %v", conf.Layout.Budget)
	}
}

func TestCandidatesIncludeRecipes(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	candidates, unpriced := conf.Candidates()
	if len(unpriced) != 0 {
		t.Fatalf("expected every recipe to be priced, got %v", unpriced)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %+v", candidates)
	}
	// 0.5 GEM/h at 12 minus 1 ORE/h at 2
	if candidates[1].Identifier != "smelter" || candidates[1].ProfitRate != 4 {
		t.Errorf("unexpected recipe candidate %+v", candidates[1])
	}
}

func TestCanonicalSymbol(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"wood", "WOOD"},
		{"  Ore ", "ORE"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if actual := CanonicalSymbol(tc.input); actual != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, actual)
			}
		})
	}
}

func TestExampleConfigurationLoads(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join("..", "..", "config.yaml.example"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if !conf.Bundle.Enabled() || !conf.Layout.Enabled() {
		t.Fatal("expected the example to configure both planners")
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected the example to load without warnings, got %v", warnings)
	}
}

func TestLoadConfigurationRejectsInfiniteCap(t *testing.T) {
	body := "bundle:\n  targetReward: 10\n  caps:\n    gem: .inf\n"
	if _, err := LoadConfigurationFromReader(strings.NewReader(body)); err == nil {
		t.Fatal("expected an infinite cap to be rejected")
	}
}

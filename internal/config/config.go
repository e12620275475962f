// Package config defines the data structures related to configuration and
// includes functions for loading, normalizing and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/planner"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/mathutil"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variables that override config keys,
// e.g. CRAFTPLAN_LAYOUT_BUDGET.
const EnvPrefix = "CRAFTPLAN"

// DefaultTargetID is the reward target used when none is configured.
const DefaultTargetID = "default"

// Configuration holds all configuration for a planning run.
type Configuration struct {
	Logging   LoggingConfig      `yaml:"logging,omitempty" mapstructure:"logging"`
	Output    OutputConfig       `yaml:"output,omitempty" mapstructure:"output"`
	Market    MarketConfig       `yaml:"market" mapstructure:"market"`
	Inventory map[string]float64 `yaml:"inventory,omitempty" mapstructure:"inventory"`
	Simulate  SimulateConfig     `yaml:"simulate,omitempty" mapstructure:"simulate"`
	Bundle    BundleConfig       `yaml:"bundle,omitempty" mapstructure:"bundle"`
	Layout    LayoutConfig       `yaml:"layout,omitempty" mapstructure:"layout"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// MarketConfig is the price and reward snapshot the planners run against.
type MarketConfig struct {
	TargetID  string             `yaml:"targetId,omitempty" mapstructure:"targetId"`
	Prices    map[string]float64 `yaml:"prices,omitempty" mapstructure:"prices"`
	Points    map[string]float64 `yaml:"points,omitempty" mapstructure:"points"`
	Secondary map[string]float64 `yaml:"secondary,omitempty" mapstructure:"secondary"`
}

// SimulateConfig adds a hypothetical amount of one resource to the inventory.
type SimulateConfig struct {
	Symbol string  `yaml:"symbol,omitempty" mapstructure:"symbol"`
	Amount float64 `yaml:"amount,omitempty" mapstructure:"amount"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.Normalize()
	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// CanonicalSymbol returns the canonical spelling of a resource symbol.
// Viper lowercases map keys, so every symbol is upper-cased on the way in.
func CanonicalSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Normalize applies defaults and canonical symbol spelling. It is safe to
// call more than once.
func (c *Configuration) Normalize() {
	c.Market.TargetID = strings.TrimSpace(c.Market.TargetID)
	if c.Market.TargetID == "" {
		c.Market.TargetID = DefaultTargetID
	}
	c.Market.Prices = canonicalMap(c.Market.Prices)
	c.Market.Points = canonicalMap(c.Market.Points)
	c.Market.Secondary = canonicalMap(c.Market.Secondary)
	c.Inventory = canonicalMap(c.Inventory)
	c.Simulate.Symbol = CanonicalSymbol(c.Simulate.Symbol)

	c.Bundle.normalize()
	c.Layout.normalize()
}

// Validate returns an error for configuration the planners cannot run with.
func (c *Configuration) Validate() error {
	for _, table := range []struct {
		name   string
		values map[string]float64
	}{
		{"market price", c.Market.Prices},
		{"market points", c.Market.Points},
		{"market secondary", c.Market.Secondary},
		{"inventory", c.Inventory},
	} {
		for symbol, value := range table.values {
			if value < 0 || !mathutil.IsFinite(value) {
				return fmt.Errorf("%s for %s must be a finite non-negative number, got %v", table.name, symbol, value)
			}
		}
	}

	if !mathutil.IsFinite(c.Simulate.Amount) {
		return fmt.Errorf("simulate amount %v must be finite", c.Simulate.Amount)
	}
	if c.Simulate.Amount != 0 && c.Simulate.Symbol == "" {
		return fmt.Errorf("simulate amount %v requires a symbol", c.Simulate.Amount)
	}

	if err := c.Bundle.Validate(); err != nil {
		return fmt.Errorf("bundle: %w", err)
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

// Candidates returns the explicit layout candidates followed by those built
// from recipes. Recipes whose profit cannot be priced are returned by name.
func (c *Configuration) Candidates() ([]planner.UpgradeCandidate, []string) {
	fromRecipes, unpriced := planner.CandidatesFromRecipes(c.Layout.Recipes, c.Market.Prices)
	candidates := make([]planner.UpgradeCandidate, 0, len(c.Layout.Candidates)+len(fromRecipes))
	candidates = append(candidates, c.Layout.Candidates...)
	candidates = append(candidates, fromRecipes...)
	return candidates, unpriced
}

func canonicalMap(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[CanonicalSymbol(k)] = v
	}
	return out
}

package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/config"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the planning API server.
type Config struct {
	Address string `yaml:"address"`
	// MaxBodySize accepts human-friendly sizes such as "256K".
	MaxBodySize string `yaml:"maxBodySize"`
	// PlannerConfig is the optional planning configuration whose market,
	// inventory and layout act as defaults for every request.
	PlannerConfig string               `yaml:"plannerConfig"`
	Logging       config.LoggingConfig `yaml:"logging"`
	RateLimit     RateLimitConfig      `yaml:"rateLimit"`

	bodySizeBytes int64
}

// RateLimitConfig limits plan requests per client address.
type RateLimitConfig struct {
	Requests          int    `yaml:"requests"`
	Window            string `yaml:"window"`
	TrustForwardedFor bool   `yaml:"trustForwardedFor"`

	window time.Duration
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:     constants.DefaultServerAddress,
		MaxBodySize: fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes),
		RateLimit: RateLimitConfig{
			Requests: constants.DefaultRateLimitRequests,
			Window:   constants.DefaultRateLimitWindow,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BodySizeBytes returns the configured request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// SetBodySizeBytes overrides the configured request body limit.
func (c *Config) SetBodySizeBytes(size int64) {
	if size > 0 {
		c.bodySizeBytes = size
		c.MaxBodySize = fmt.Sprintf("%d", size)
	}
}

// WindowDuration returns the parsed rate limit window.
func (r RateLimitConfig) WindowDuration() time.Duration {
	return r.window
}

// Enabled reports whether requests are rate limited.
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0 && r.window > 0
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	bytes, err := ParseSize(c.MaxBodySize)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxBodySizeBytes
	}
	c.bodySizeBytes = bytes

	if c.RateLimit.Requests < 0 {
		return fmt.Errorf("rate limit requests must not be negative, got %d", c.RateLimit.Requests)
	}
	window := strings.TrimSpace(c.RateLimit.Window)
	if window == "" {
		window = constants.DefaultRateLimitWindow
	}
	d, err := time.ParseDuration(window)
	if err != nil {
		return fmt.Errorf("invalid rate limit window %q: %w", c.RateLimit.Window, err)
	}
	c.RateLimit.Window = window
	c.RateLimit.window = d
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 || (n != 0 && result/multiplier != n) {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}

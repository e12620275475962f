// Package constants provides shared constants for the craftworld planning tools.
package constants

// Planning constants
const (
	// UnitEpsilon absorbs floating point noise when converting rewards back
	// into whole units (e.g. 0.6/0.2 evaluating to 3.0000000000000004).
	UnitEpsilon = 1e-9

	// CurrencyPlaces is the number of decimals shown for prices and costs
	CurrencyPlaces = 2

	// QuantityPlaces is the number of decimals shown for resource quantities
	QuantityPlaces = 3
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the planning API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultRateLimitRequests is the default number of plan requests per window and client
	DefaultRateLimitRequests = 120

	// DefaultRateLimitWindow is the default rate limit window as a duration string
	DefaultRateLimitWindow = "1m"
)

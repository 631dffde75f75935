// Package constants provides shared constants for the mortgage-split application.
package constants

// DateLayout is the format expected for all calendar dates in config files
// and API payloads, and is also the output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// MonthlyPeriodsPerYear is the number of payments per year for monthly loans
	MonthlyPeriodsPerYear = 12

	// SemimonthlyPeriodsPerYear is the number of payments per year for semi-monthly loans
	SemimonthlyPeriodsPerYear = 24

	// BiweeklyPeriodsPerYear is the number of payments per year for bi-weekly loans
	BiweeklyPeriodsPerYear = 26

	// DaysPerBiweeklyPeriod is the length of one bi-weekly payment period in days
	DaysPerBiweeklyPeriod = 14

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default deals configuration file name
	DefaultConfigFile = "deals.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML deal configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

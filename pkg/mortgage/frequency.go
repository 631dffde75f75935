// Package mortgage implements the amortization and payment-split engine for
// mortgage deals: resolving a calendar date to a payment index, computing the
// theoretical principal/interest split at that index, and reconciling an
// observed cash payment into principal, interest, and escrow components.
package mortgage

import (
	"strings"

	"github.com/propbooks/mortgage-split/pkg/constants"
)

// PaymentFrequency identifies how often payments are made on a loan.
type PaymentFrequency string

const (
	// FrequencyMonthly is 12 payments per year.
	FrequencyMonthly PaymentFrequency = "monthly"

	// FrequencySemimonthly is 24 payments per year (two per calendar month).
	FrequencySemimonthly PaymentFrequency = "semimonthly"

	// FrequencyBiweekly is 26 payments per year (every 14 days).
	FrequencyBiweekly PaymentFrequency = "biweekly"
)

// ParseFrequency maps a config string to a PaymentFrequency. Unset or
// unrecognized values default to monthly.
func ParseFrequency(value string) PaymentFrequency {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(FrequencySemimonthly), "semi-monthly":
		return FrequencySemimonthly
	case string(FrequencyBiweekly), "bi-weekly":
		return FrequencyBiweekly
	default:
		return FrequencyMonthly
	}
}

// PeriodsPerYear returns the number of payments per year for the frequency.
func (f PaymentFrequency) PeriodsPerYear() int {
	switch f {
	case FrequencySemimonthly:
		return constants.SemimonthlyPeriodsPerYear
	case FrequencyBiweekly:
		return constants.BiweeklyPeriodsPerYear
	default:
		return constants.MonthlyPeriodsPerYear
	}
}

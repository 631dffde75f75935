// Package validation provides deal configuration validation utilities.
// Malformed loan terms are rejected here, before they ever reach the
// amortization engine, which assumes validated inputs.
package validation

import (
	"fmt"
	"time"

	"github.com/propbooks/mortgage-split/pkg/constants"
)

// DealInfo carries the deal fields needed for validation.
type DealInfo struct {
	Name             string
	Principal        float64
	InterestRate     float64
	TermMonths       int
	Frequency        string
	CloseDate        string
	FirstPaymentDate string
	MonthlyTaxes     float64
	MonthlyInsurance float64
	Payments         []PaymentInfo
}

// PaymentInfo carries one recorded payment for validation.
type PaymentInfo struct {
	Date   string
	Amount float64
}

// ValidateDeal checks a deal's loan terms and recorded payments and returns
// warning strings for anything that would make the split results meaningless.
func ValidateDeal(deal DealInfo) []string {
	var warnings []string

	if deal.Principal <= 0 {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' has non-positive loan amount %.2f", deal.Name, deal.Principal))
	}
	if deal.TermMonths <= 0 {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' has non-positive term of %d months", deal.Name, deal.TermMonths))
	}
	if deal.InterestRate < 0 {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' has negative interest rate %.3f", deal.Name, deal.InterestRate))
	}
	if deal.MonthlyTaxes < 0 {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' has negative monthly taxes %.2f", deal.Name, deal.MonthlyTaxes))
	}
	if deal.MonthlyInsurance < 0 {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' has negative monthly insurance %.2f", deal.Name, deal.MonthlyInsurance))
	}

	if warning := validateFrequency(deal.Name, deal.Frequency); warning != "" {
		warnings = append(warnings, warning)
	}

	closeDate, err := time.Parse(constants.DateLayout, deal.CloseDate)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' has unparseable close date %q", deal.Name, deal.CloseDate))
	}

	if deal.FirstPaymentDate != "" {
		if _, err := time.Parse(constants.DateLayout, deal.FirstPaymentDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("Deal '%s' has unparseable first payment date %q", deal.Name, deal.FirstPaymentDate))
		}
	}

	for _, payment := range deal.Payments {
		paymentDate, parseErr := time.Parse(constants.DateLayout, payment.Date)
		if parseErr != nil {
			warnings = append(warnings, fmt.Sprintf("Deal '%s' has unparseable payment date %q", deal.Name, payment.Date))
			continue
		}
		if payment.Amount <= 0 {
			warnings = append(warnings, fmt.Sprintf("Deal '%s' payment on %s has non-positive amount %.2f", deal.Name, payment.Date, payment.Amount))
		}
		if err == nil && paymentDate.Before(closeDate) {
			warnings = append(warnings, fmt.Sprintf("Deal '%s' payment on %s predates close date %s - it will resolve to the first payment slot", deal.Name, payment.Date, deal.CloseDate))
		}
	}

	return warnings
}

func validateFrequency(dealName, frequency string) string {
	switch frequency {
	case "", "monthly", "semimonthly", "semi-monthly", "biweekly", "bi-weekly":
		return ""
	default:
		return fmt.Sprintf("Deal '%s' has unknown payment frequency %q - treating as monthly", dealName, frequency)
	}
}

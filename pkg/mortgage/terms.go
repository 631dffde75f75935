package mortgage

import (
	"math"
	"time"

	"github.com/propbooks/mortgage-split/pkg/constants"
)

// LoanTerms holds the immutable parameters of a loan, set once at deal
// creation. The engine assumes the caller has validated them: positive
// principal and term, non-negative rate.
type LoanTerms struct {
	// OriginalPrincipal is the amount borrowed.
	OriginalPrincipal float64

	// AnnualRatePercent is the yearly interest rate as a percentage,
	// e.g. 7.125 for 7.125%/year.
	AnnualRatePercent float64

	// TermMonths is the nominal loan length in months regardless of
	// payment frequency.
	TermMonths int

	// CloseDate is the origination/close date, used as the fallback anchor
	// for payment indexing when FirstPaymentDate is unset.
	CloseDate time.Time

	// FirstPaymentDate, when set, is the authoritative anchor for payment
	// index 0.
	FirstPaymentDate *time.Time

	// Frequency is the payment frequency convention; the zero value is
	// treated as monthly.
	Frequency PaymentFrequency
}

// PaymentObservation describes one real-world payment event supplied by the
// caller.
type PaymentObservation struct {
	// PaymentDate is the calendar date the payment was made or recorded.
	PaymentDate time.Time

	// TotalPaid is the full cash amount moved (principal+interest+escrow).
	TotalPaid float64

	// KnownMonthlyTaxes and KnownMonthlyInsurance are the borrower's stated
	// recurring escrow components, at monthly granularity regardless of
	// payment frequency. Zero means unknown.
	KnownMonthlyTaxes     float64
	KnownMonthlyInsurance float64
}

// PaymentSplitResult is the reconciled breakdown of one observed payment.
// All currency fields are rounded to two decimals.
type PaymentSplitResult struct {
	Principal       float64          `json:"principal"`
	Interest        float64          `json:"interest"`
	EscrowTaxes     float64          `json:"escrowTaxes"`
	EscrowInsurance float64          `json:"escrowInsurance"`
	TotalPayment    float64          `json:"totalPayment"`
	PaymentNumber   int              `json:"paymentNumber"`
	Frequency       PaymentFrequency `json:"frequency"`

	// EscrowWasInferred is true when no known escrow figures were supplied
	// and escrow was derived as a residual of the observed total.
	EscrowWasInferred bool `json:"escrowWasInferred"`
}

// resolvedFrequency returns the effective frequency, defaulting to monthly.
func (t LoanTerms) resolvedFrequency() PaymentFrequency {
	if t.Frequency == "" {
		return FrequencyMonthly
	}
	return t.Frequency
}

// PeriodsPerYear returns the number of payments per year under the loan's
// frequency convention.
func (t LoanTerms) PeriodsPerYear() int {
	return t.resolvedFrequency().PeriodsPerYear()
}

// TotalPayments returns the number of payments implied by the term and the
// payment frequency. It is always derived, never stored.
func (t LoanTerms) TotalPayments() int {
	years := float64(t.TermMonths) / constants.MonthsPerYear
	return int(math.Round(years * float64(t.PeriodsPerYear())))
}

// PeriodicRate returns the per-payment interest rate.
func (t LoanTerms) PeriodicRate() float64 {
	return t.AnnualRatePercent / constants.PercentageMultiplier / float64(t.PeriodsPerYear())
}

// anchor returns the date that marks payment index 0: the first payment date
// when present, otherwise the close date.
func (t LoanTerms) anchor() time.Time {
	if t.FirstPaymentDate != nil {
		return *t.FirstPaymentDate
	}
	return t.CloseDate
}

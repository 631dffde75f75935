package mortgage

import (
	"math"

	"github.com/propbooks/mortgage-split/pkg/mathutil"
)

// Amortization holds the theoretical breakdown of a single scheduled payment.
type Amortization struct {
	// Payment is the per-period payment amount used for the split.
	Payment float64

	// Principal and Interest are the portions of the payment.
	Principal float64
	Interest  float64

	// RemainingBalance is the loan balance after this payment is applied.
	RemainingBalance float64
}

// LevelPayment calculates the fixed per-period payment for a loan using the
// standard amortization formula.
func LevelPayment(terms LoanTerms) float64 {
	totalPayments := terms.TotalPayments()
	if terms.AnnualRatePercent == 0 {
		// For zero interest, simply divide the principal by the payment count
		return terms.OriginalPrincipal / float64(totalPayments)
	}

	periodicRate := terms.PeriodicRate()
	power := math.Pow(1.00+periodicRate, float64(totalPayments))
	discountFactor := (power - 1.00) / power
	return terms.OriginalPrincipal * periodicRate / discountFactor
}

// AmortizePayment computes the theoretical principal/interest split for the
// given zero-based payment index using the loan's level payment amount.
func AmortizePayment(terms LoanTerms, paymentIndex int) Amortization {
	return AmortizePaymentWithOverride(terms, paymentIndex, LevelPayment(terms))
}

// AmortizePaymentWithOverride computes the split at paymentIndex using the
// supplied payment amount in place of the derived level payment. The split
// reconciler uses this to re-run the split once the actual principal+interest
// portion of an irregular payment is known.
//
// The walk simulates forward from origination rather than using a closed-form
// per-payment formula so that overrides and early payoff stay correct. Only
// the returned values are rounded; rounding mid-walk would compound error
// across the simulated payments.
func AmortizePaymentWithOverride(terms LoanTerms, paymentIndex int, payment float64) Amortization {
	periodicRate := terms.PeriodicRate()
	balance := terms.OriginalPrincipal

	for step := 0; step < paymentIndex; step++ {
		if balance <= 0 {
			// Loan paid off early; nothing left to amortize.
			balance = 0
			break
		}
		interest := balance * periodicRate
		principal := payment - interest
		if principal > balance {
			principal = balance
		}
		balance -= principal
	}

	interest := balance * periodicRate
	principal := math.Min(payment-interest, balance)
	remaining := math.Max(0, balance-principal)

	return Amortization{
		Payment:          mathutil.Round(payment),
		Principal:        mathutil.Round(principal),
		Interest:         mathutil.Round(interest),
		RemainingBalance: mathutil.Round(remaining),
	}
}

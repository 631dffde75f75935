package mortgage

import (
	"fmt"
	"time"

	"github.com/propbooks/mortgage-split/pkg/constants"
	"github.com/propbooks/mortgage-split/pkg/mathutil"
	"go.uber.org/zap"
)

// SplitCalculator reconciles observed mortgage payments into
// principal/interest/escrow components.
type SplitCalculator struct {
	logger *zap.Logger
}

// NewSplitCalculator creates a new calculator instance.
func NewSplitCalculator(logger *zap.Logger) *SplitCalculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SplitCalculator{logger: logger}
}

// Split reconciles one observed payment against the loan's theoretical
// amortization and the observation's known escrow figures.
func (c *SplitCalculator) Split(terms LoanTerms, obs PaymentObservation) PaymentSplitResult {
	result := ComputeMortgageSplit(terms, obs.KnownMonthlyTaxes, obs.KnownMonthlyInsurance,
		obs.PaymentDate, obs.TotalPaid)

	if result.EscrowWasInferred {
		c.logger.Debug(fmt.Sprintf("%s: inferred %.2f escrow from payment %.2f",
			obs.PaymentDate.Format(constants.DateLayout), result.EscrowTaxes, obs.TotalPaid),
			zap.String("op", "mortgage.Split"),
			zap.Int("paymentNumber", result.PaymentNumber),
		)
	}

	return result
}

// ComputeMortgageSplit produces a principal/interest/escrow breakdown of an
// observed total payment. Known monthly tax/insurance figures, when supplied,
// are scaled to the payment frequency and subtracted first; the remainder is
// re-amortized so the breakdown stays consistent with the observed total.
// With no known escrow, the theoretical principal/interest at the resolved
// payment index is used and the residual becomes inferred escrow, attributed
// entirely to taxes (it cannot be split further without more information).
//
// The function never fails: out-of-range dates clamp to index 0, zero rates
// use the straight-line payment, and underpayments are clamped so that
// principal + interest never exceeds the observed total.
func ComputeMortgageSplit(terms LoanTerms, knownMonthlyTaxes, knownMonthlyInsurance float64,
	paymentDate time.Time, totalPaid float64) PaymentSplitResult {

	paymentIndex := ResolvePaymentIndex(terms, paymentDate)
	expected := AmortizePayment(terms, paymentIndex)

	var principal, interest, escrowTaxes, escrowInsurance float64
	var escrowWasInferred bool

	if knownMonthlyTaxes > 0 || knownMonthlyInsurance > 0 {
		// Escrow figures are stored at monthly granularity; scale them to the
		// per-payment amount for this frequency.
		scaleFactor := constants.MonthsPerYear / float64(terms.PeriodsPerYear())
		escrowTaxes = knownMonthlyTaxes * scaleFactor
		escrowInsurance = knownMonthlyInsurance * scaleFactor

		// Re-run the split with the actual principal+interest portion so the
		// breakdown absorbs any mismatch between the theoretical level
		// payment and the lender's actual P&I.
		actualPI := totalPaid - (escrowTaxes + escrowInsurance)
		actual := AmortizePaymentWithOverride(terms, paymentIndex, actualPI)
		principal = actual.Principal
		interest = actual.Interest
	} else {
		expectedPI := expected.Principal + expected.Interest
		escrowTaxes = mathutil.Max(0, mathutil.Round(totalPaid-expectedPI))
		escrowInsurance = 0
		principal = expected.Principal
		interest = expected.Interest
		escrowWasInferred = true
	}

	// Guarantee principal + interest <= totalPaid even for malformed inputs,
	// e.g. a total smaller than the theoretical interest alone.
	principal = mathutil.Clamp(principal, 0, totalPaid)
	interest = mathutil.Clamp(interest, 0, totalPaid-principal)

	return PaymentSplitResult{
		Principal:         mathutil.Round(principal),
		Interest:          mathutil.Round(interest),
		EscrowTaxes:       mathutil.Round(escrowTaxes),
		EscrowInsurance:   mathutil.Round(escrowInsurance),
		TotalPayment:      mathutil.Round(totalPaid),
		PaymentNumber:     paymentIndex + 1,
		Frequency:         terms.resolvedFrequency(),
		EscrowWasInferred: escrowWasInferred,
	}
}

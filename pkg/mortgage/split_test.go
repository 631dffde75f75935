package mortgage

import (
	"math"
	"testing"

	"github.com/propbooks/mortgage-split/pkg/datetime"
	"go.uber.org/zap"
)

func TestComputeMortgageSplitInferredEscrow(t *testing.T) {
	terms := thirtyYearTerms()
	paymentDate := datetime.MustParseTime(datetime.DateLayout, "2024-01-01")

	result := ComputeMortgageSplit(terms, 0, 0, paymentDate, 2000.00)

	if !result.EscrowWasInferred {
		t.Errorf("expected escrowWasInferred to be true with no known escrow")
	}
	if result.PaymentNumber != 1 {
		t.Errorf("paymentNumber = %d, expected 1", result.PaymentNumber)
	}
	if math.Abs(result.Interest-1500.00) > 0.01 {
		t.Errorf("interest = %.2f, expected 1500.00", result.Interest)
	}
	if math.Abs(result.Principal-298.65) > 0.01 {
		t.Errorf("principal = %.2f, expected 298.65", result.Principal)
	}
	// Residual above expected P&I becomes inferred escrow, all taxes
	if math.Abs(result.EscrowTaxes-201.35) > 0.01 {
		t.Errorf("escrowTaxes = %.2f, expected 201.35", result.EscrowTaxes)
	}
	if result.EscrowInsurance != 0 {
		t.Errorf("escrowInsurance = %.2f, expected 0 when inferred", result.EscrowInsurance)
	}
}

func TestComputeMortgageSplitKnownEscrow(t *testing.T) {
	terms := thirtyYearTerms()
	paymentDate := datetime.MustParseTime(datetime.DateLayout, "2024-01-01")

	result := ComputeMortgageSplit(terms, 250, 100, paymentDate, 2150.00)

	if result.EscrowWasInferred {
		t.Errorf("expected escrowWasInferred to be false with known escrow")
	}
	if math.Abs(result.EscrowTaxes-250.00) > 0.01 {
		t.Errorf("escrowTaxes = %.2f, expected 250.00", result.EscrowTaxes)
	}
	if math.Abs(result.EscrowInsurance-100.00) > 0.01 {
		t.Errorf("escrowInsurance = %.2f, expected 100.00", result.EscrowInsurance)
	}
	// Actual P&I of 1800 re-amortizes to 1500 interest, 300 principal
	if math.Abs(result.Interest-1500.00) > 0.01 {
		t.Errorf("interest = %.2f, expected 1500.00", result.Interest)
	}
	if math.Abs(result.Principal-300.00) > 0.01 {
		t.Errorf("principal = %.2f, expected 300.00", result.Principal)
	}
}

func TestComputeMortgageSplitEscrowScaling(t *testing.T) {
	first := datetime.MustParseTime(datetime.DateLayout, "2024-01-05")
	terms := LoanTerms{
		OriginalPrincipal: 300000,
		AnnualRatePercent: 6.0,
		TermMonths:        360,
		CloseDate:         datetime.MustParseTime(datetime.DateLayout, "2023-12-15"),
		FirstPaymentDate:  &first,
		Frequency:         FrequencyBiweekly,
	}
	paymentDate := datetime.MustParseTime(datetime.DateLayout, "2024-01-05")

	// Monthly figures scale by 12/26 for bi-weekly payments
	result := ComputeMortgageSplit(terms, 260, 130, paymentDate, 1100.00)

	if math.Abs(result.EscrowTaxes-120.00) > 0.01 {
		t.Errorf("escrowTaxes = %.2f, expected 120.00", result.EscrowTaxes)
	}
	if math.Abs(result.EscrowInsurance-60.00) > 0.01 {
		t.Errorf("escrowInsurance = %.2f, expected 60.00", result.EscrowInsurance)
	}
}

func TestComputeMortgageSplitSumsToTotal(t *testing.T) {
	terms := thirtyYearTerms()

	tests := []struct {
		name             string
		monthlyTaxes     float64
		monthlyInsurance float64
		paymentDate      string
		totalPaid        float64
	}{
		{"No known escrow", 0, 0, "2024-01-01", 2000.00},
		{"Known taxes only", 250, 0, "2024-03-01", 2050.00},
		{"Known insurance only", 0, 120, "2024-06-01", 1920.00},
		{"Both known", 250, 100, "2025-01-01", 2148.65},
		{"Exact expected payment, no escrow", 0, 0, "2024-02-01", 1798.65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paymentDate := datetime.MustParseTime(datetime.DateLayout, tt.paymentDate)
			result := ComputeMortgageSplit(terms, tt.monthlyTaxes, tt.monthlyInsurance,
				paymentDate, tt.totalPaid)

			sum := result.Principal + result.Interest + result.EscrowTaxes + result.EscrowInsurance
			if math.Abs(sum-tt.totalPaid) > 0.011 {
				t.Errorf("components sum to %.4f, expected %.2f", sum, tt.totalPaid)
			}
			if result.Principal < 0 || result.Interest < 0 ||
				result.EscrowTaxes < 0 || result.EscrowInsurance < 0 {
				t.Errorf("negative component in %+v", result)
			}
		})
	}
}

func TestComputeMortgageSplitUnderpayment(t *testing.T) {
	terms := thirtyYearTerms()
	paymentDate := datetime.MustParseTime(datetime.DateLayout, "2024-01-01")

	// Total below the theoretical interest alone: the clamps keep the
	// breakdown non-negative and within the observed total.
	result := ComputeMortgageSplit(terms, 0, 0, paymentDate, 1000.00)

	if result.Principal+result.Interest > 1000.01 {
		t.Errorf("principal+interest = %.2f exceeds total 1000.00", result.Principal+result.Interest)
	}
	if result.EscrowTaxes != 0 {
		t.Errorf("escrowTaxes = %.2f, expected 0 for underpayment", result.EscrowTaxes)
	}
	if math.Abs((result.Principal+result.Interest)-1000.00) > 0.011 {
		t.Errorf("underpayment should be fully consumed by P&I, got %.2f", result.Principal+result.Interest)
	}
}

func TestComputeMortgageSplitBeforeAnchor(t *testing.T) {
	terms := thirtyYearTerms()
	paymentDate := datetime.MustParseTime(datetime.DateLayout, "2023-06-01")

	result := ComputeMortgageSplit(terms, 0, 0, paymentDate, 2000.00)
	if result.PaymentNumber != 1 {
		t.Errorf("paymentNumber = %d, expected 1 for payment before anchor", result.PaymentNumber)
	}
}

func TestComputeMortgageSplitFrequencyInResult(t *testing.T) {
	terms := thirtyYearTerms()
	terms.Frequency = ""
	paymentDate := datetime.MustParseTime(datetime.DateLayout, "2024-01-01")

	result := ComputeMortgageSplit(terms, 0, 0, paymentDate, 2000.00)
	if result.Frequency != FrequencyMonthly {
		t.Errorf("frequency = %q, expected monthly default", result.Frequency)
	}
}

func TestSplitCalculator(t *testing.T) {
	calculator := NewSplitCalculator(zap.NewNop())
	terms := thirtyYearTerms()

	result := calculator.Split(terms, PaymentObservation{
		PaymentDate: datetime.MustParseTime(datetime.DateLayout, "2024-02-01"),
		TotalPaid:   2000.00,
	})

	if result.PaymentNumber != 2 {
		t.Errorf("paymentNumber = %d, expected 2", result.PaymentNumber)
	}
	if !result.EscrowWasInferred {
		t.Errorf("expected inferred escrow for observation without known figures")
	}
}

func TestNewSplitCalculatorNilLogger(t *testing.T) {
	calculator := NewSplitCalculator(nil)
	if calculator == nil {
		t.Fatal("NewSplitCalculator(nil) returned nil")
	}

	terms := thirtyYearTerms()
	result := calculator.Split(terms, PaymentObservation{
		PaymentDate: datetime.MustParseTime(datetime.DateLayout, "2024-01-01"),
		TotalPaid:   2000.00,
	})
	if result.TotalPayment != 2000.00 {
		t.Errorf("totalPayment = %.2f, expected 2000.00", result.TotalPayment)
	}
}

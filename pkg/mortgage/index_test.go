package mortgage

import (
	"testing"
	"time"

	"github.com/propbooks/mortgage-split/pkg/datetime"
)

func testTerms(frequency PaymentFrequency, closeDate string, firstPaymentDate string) LoanTerms {
	terms := LoanTerms{
		OriginalPrincipal: 300000,
		AnnualRatePercent: 6.0,
		TermMonths:        360,
		CloseDate:         datetime.MustParseTime(datetime.DateLayout, closeDate),
		Frequency:         frequency,
	}
	if firstPaymentDate != "" {
		first := datetime.MustParseTime(datetime.DateLayout, firstPaymentDate)
		terms.FirstPaymentDate = &first
	}
	return terms
}

func TestResolvePaymentIndexMonthly(t *testing.T) {
	tests := []struct {
		name             string
		closeDate        string
		firstPaymentDate string
		paymentDate      string
		expected         int
	}{
		{
			name:             "Anchor date itself",
			firstPaymentDate: "2024-01-01",
			closeDate:        "2023-12-01",
			paymentDate:      "2024-01-01",
			expected:         0,
		},
		{
			name:             "One month later",
			firstPaymentDate: "2024-01-01",
			closeDate:        "2023-12-01",
			paymentDate:      "2024-02-01",
			expected:         1,
		},
		{
			name:             "Payment before anchor clamps to zero",
			firstPaymentDate: "2024-01-01",
			closeDate:        "2023-12-01",
			paymentDate:      "2023-06-01",
			expected:         0,
		},
		{
			name:             "Payment earlier in month than anchor day",
			firstPaymentDate: "2024-01-15",
			closeDate:        "2023-12-01",
			paymentDate:      "2024-03-10",
			expected:         1,
		},
		{
			name:             "Payment on anchor day of later month",
			firstPaymentDate: "2024-01-15",
			closeDate:        "2023-12-01",
			paymentDate:      "2024-03-15",
			expected:         2,
		},
		{
			name:        "Close date fallback when no first payment date",
			closeDate:   "2023-11-20",
			paymentDate: "2024-01-25",
			expected:    2,
		},
		{
			name:        "Close date fallback with earlier day",
			closeDate:   "2023-11-20",
			paymentDate: "2024-01-15",
			expected:    1,
		},
		{
			name:             "Anchor on 31st against short month",
			firstPaymentDate: "2024-01-31",
			closeDate:        "2023-12-01",
			paymentDate:      "2024-02-29",
			expected:         0,
		},
		{
			name:             "Anchor on 31st against matching day",
			firstPaymentDate: "2024-01-31",
			closeDate:        "2023-12-01",
			paymentDate:      "2024-03-31",
			expected:         2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := testTerms(FrequencyMonthly, tt.closeDate, tt.firstPaymentDate)
			paymentDate := datetime.MustParseTime(datetime.DateLayout, tt.paymentDate)
			result := ResolvePaymentIndex(terms, paymentDate)
			if result != tt.expected {
				t.Errorf("ResolvePaymentIndex() = %d, expected %d", result, tt.expected)
			}
		})
	}
}

func TestResolvePaymentIndexBiweekly(t *testing.T) {
	tests := []struct {
		name        string
		paymentDate string
		expected    int
	}{
		{
			name:        "Anchor date itself",
			paymentDate: "2024-01-05",
			expected:    0,
		},
		{
			name:        "Thirteen days later still period zero",
			paymentDate: "2024-01-18",
			expected:    0,
		},
		{
			name:        "Fourteen days later",
			paymentDate: "2024-01-19",
			expected:    1,
		},
		{
			name:        "Twenty-eight days later",
			paymentDate: "2024-02-02",
			expected:    2,
		},
		{
			name:        "Before anchor clamps to zero",
			paymentDate: "2023-12-01",
			expected:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := testTerms(FrequencyBiweekly, "2023-12-15", "2024-01-05")
			paymentDate := datetime.MustParseTime(datetime.DateLayout, tt.paymentDate)
			result := ResolvePaymentIndex(terms, paymentDate)
			if result != tt.expected {
				t.Errorf("ResolvePaymentIndex() = %d, expected %d", result, tt.expected)
			}
		})
	}
}

func TestResolvePaymentIndexSemimonthly(t *testing.T) {
	tests := []struct {
		name             string
		firstPaymentDate string
		paymentDate      string
		expected         int
	}{
		{
			name:             "First-half anchor same half",
			firstPaymentDate: "2024-01-01",
			paymentDate:      "2024-01-05",
			expected:         0,
		},
		{
			name:             "First-half anchor second half of same month",
			firstPaymentDate: "2024-01-01",
			paymentDate:      "2024-01-20",
			expected:         1,
		},
		{
			name:             "First-half anchor next month first half",
			firstPaymentDate: "2024-01-01",
			paymentDate:      "2024-02-01",
			expected:         2,
		},
		{
			name:             "Second-half anchor next month first half",
			firstPaymentDate: "2024-01-15",
			paymentDate:      "2024-02-01",
			expected:         1,
		},
		{
			name:             "Second-half anchor next month second half",
			firstPaymentDate: "2024-01-15",
			paymentDate:      "2024-02-20",
			expected:         2,
		},
		{
			name:             "Second-half anchor first half of same month clamps",
			firstPaymentDate: "2024-01-15",
			paymentDate:      "2024-01-01",
			expected:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := testTerms(FrequencySemimonthly, "2023-12-01", tt.firstPaymentDate)
			paymentDate := datetime.MustParseTime(datetime.DateLayout, tt.paymentDate)
			result := ResolvePaymentIndex(terms, paymentDate)
			if result != tt.expected {
				t.Errorf("ResolvePaymentIndex() = %d, expected %d", result, tt.expected)
			}
		})
	}
}

func TestResolvePaymentIndexMonotonic(t *testing.T) {
	frequencies := []PaymentFrequency{FrequencyMonthly, FrequencySemimonthly, FrequencyBiweekly}

	for _, frequency := range frequencies {
		t.Run(string(frequency), func(t *testing.T) {
			terms := testTerms(frequency, "2023-12-01", "2024-01-10")
			previous := 0
			date := datetime.MustParseTime(datetime.DateLayout, "2023-10-01")
			for day := 0; day < 720; day++ {
				index := ResolvePaymentIndex(terms, date)
				if index < previous {
					t.Fatalf("index decreased from %d to %d at %s", previous, index,
						date.Format(datetime.DateLayout))
				}
				previous = index
				date = date.AddDate(0, 0, 1)
			}
		})
	}
}

func TestResolvePaymentIndexDefaultsToMonthly(t *testing.T) {
	terms := testTerms("", "2023-12-01", "2024-01-01")
	paymentDate := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	if got := ResolvePaymentIndex(terms, paymentDate); got != 3 {
		t.Errorf("ResolvePaymentIndex() = %d, expected 3", got)
	}
}

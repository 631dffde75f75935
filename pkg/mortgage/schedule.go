package mortgage

import "github.com/propbooks/mortgage-split/pkg/mathutil"

// ScheduledPayment is one row of a theoretical amortization schedule.
type ScheduledPayment struct {
	PaymentNumber    int     `json:"paymentNumber"`
	Payment          float64 `json:"payment"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// ExpectedSchedule walks the amortization engine over the whole loan life and
// returns the theoretical per-payment rows. The walk is a single pass; values
// are rounded only as each row is emitted.
func ExpectedSchedule(terms LoanTerms) []ScheduledPayment {
	totalPayments := terms.TotalPayments()
	payment := LevelPayment(terms)
	periodicRate := terms.PeriodicRate()

	schedule := make([]ScheduledPayment, 0, totalPayments)
	balance := terms.OriginalPrincipal

	for number := 1; number <= totalPayments; number++ {
		interest := balance * periodicRate
		principal := payment - interest
		if principal > balance {
			principal = balance
		}
		balance -= principal

		schedule = append(schedule, ScheduledPayment{
			PaymentNumber:    number,
			Payment:          mathutil.Round(principal + interest),
			Principal:        mathutil.Round(principal),
			Interest:         mathutil.Round(interest),
			RemainingBalance: mathutil.Round(balance),
		})

		if mathutil.Round(balance) == 0 {
			break
		}
	}

	return schedule
}

// Package splits computes payment split histories for configured deals.
package splits

import (
	"fmt"
	"time"

	"github.com/propbooks/mortgage-split/internal/config"
	"github.com/propbooks/mortgage-split/pkg/mortgage"
	"go.uber.org/zap"
)

// History holds the reconciled splits for every recorded payment of one deal.
type History struct {
	Deal string
	Rows []Row
}

// Row pairs a recorded payment date with its reconciled split.
type Row struct {
	Date   string
	Result mortgage.PaymentSplitResult
}

// GetHistories computes the split history for every deal in the
// configuration. Payments with unparseable dates are skipped with a warning;
// a deal whose loan terms cannot be converted fails the whole run since its
// results would be meaningless.
func GetHistories(logger *zap.Logger, conf config.Configuration) ([]History, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	calculator := mortgage.NewSplitCalculator(logger)

	var histories []History
	for _, deal := range conf.Deals {
		terms, err := deal.LoanTerms()
		if err != nil {
			return histories, err
		}

		history := History{Deal: deal.Name}
		for _, payment := range deal.Payments {
			paymentDate, err := time.Parse(config.DateLayout, payment.Date)
			if err != nil {
				logger.Warn(fmt.Sprintf("skipping payment with invalid date %q for deal %s", payment.Date, deal.Name),
					zap.String("op", "splits.GetHistories"),
					zap.Error(err),
				)
				continue
			}

			result := calculator.Split(terms, mortgage.PaymentObservation{
				PaymentDate:           paymentDate,
				TotalPaid:             payment.Amount,
				KnownMonthlyTaxes:     deal.MonthlyTaxes,
				KnownMonthlyInsurance: deal.MonthlyInsurance,
			})

			history.Rows = append(history.Rows, Row{
				Date:   payment.Date,
				Result: result,
			})
		}

		logger.Debug(fmt.Sprintf("computed %d splits for deal %s", len(history.Rows), deal.Name),
			zap.String("op", "splits.GetHistories"),
		)
		histories = append(histories, history)
	}

	return histories, nil
}

// Package output provides utilities for formatting and displaying payment
// split histories.
package output

import (
	"fmt"
	"strings"

	"github.com/propbooks/mortgage-split/internal/splits"
	"github.com/propbooks/mortgage-split/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(histories []splits.History) {
	p := message.NewPrinter(language.English)
	for _, history := range histories {
		fmt.Printf("--- Splits for deal %s ---\n", history.Deal)
		fmt.Printf("Date       | #    | Principal     | Interest      | Taxes         | Insurance     | Total         | Escrow\n")
		fmt.Printf("____       | _    | _________     | ________      | _____         | _________     | _____         | ______\n")
		for _, row := range history.Rows {
			escrowSource := "known"
			if row.Result.EscrowWasInferred {
				escrowSource = "inferred"
			}
			_, _ = p.Printf("%s | %4d | %13s | %13s | %13s | %13s | %13s | %s\n",
				row.Date,
				row.Result.PaymentNumber,
				format.Currency(row.Result.Principal),
				format.Currency(row.Result.Interest),
				format.Currency(row.Result.EscrowTaxes),
				format.Currency(row.Result.EscrowInsurance),
				format.Currency(row.Result.TotalPayment),
				escrowSource,
			)
		}
		if len(histories) > 1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(histories []splits.History) {
	fmt.Print(CsvString(histories))
}

// CsvString renders the split histories as a CSV document.
func CsvString(histories []splits.History) string {
	var builder strings.Builder
	builder.WriteString(`"deal","date","payment number","principal","interest","escrow taxes","escrow insurance","total","escrow inferred"`)
	builder.WriteString("\n")
	for _, history := range histories {
		for _, row := range history.Rows {
			builder.WriteString(fmt.Sprintf(`"%s","%s","%d","%.2f","%.2f","%.2f","%.2f","%.2f","%t"`,
				history.Deal,
				row.Date,
				row.Result.PaymentNumber,
				row.Result.Principal,
				row.Result.Interest,
				row.Result.EscrowTaxes,
				row.Result.EscrowInsurance,
				row.Result.TotalPayment,
				row.Result.EscrowWasInferred,
			))
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

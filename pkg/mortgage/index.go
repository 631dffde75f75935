package mortgage

import (
	"time"

	"github.com/propbooks/mortgage-split/pkg/constants"
	"github.com/propbooks/mortgage-split/pkg/datetime"
)

// ResolvePaymentIndex maps a payment date to a zero-based payment index under
// the loan's frequency convention, anchored at the first payment date when
// available and at the close date otherwise. A date before the anchor always
// resolves to index 0; the first real payment is never negative.
func ResolvePaymentIndex(terms LoanTerms, paymentDate time.Time) int {
	anchor := terms.anchor()

	var index int
	switch terms.resolvedFrequency() {
	case FrequencyBiweekly:
		index = datetime.DaysBetween(anchor, paymentDate) / constants.DaysPerBiweeklyPeriod
	case FrequencySemimonthly:
		index = semimonthlyIndex(anchor, paymentDate)
	default:
		index = monthlyIndex(anchor, paymentDate)
	}

	if index < 0 {
		return 0
	}
	return index
}

// monthlyIndex counts whole months between the anchor and the payment date.
// The index is decremented when the payment falls earlier in its month than
// the anchor's day, because that month's payment has not arrived yet. Day
// ordinals are compared directly; months lacking the anchor's day (e.g. an
// anchor on the 31st) need no special casing.
func monthlyIndex(anchor, paymentDate time.Time) int {
	index := datetime.MonthsBetween(anchor, paymentDate)
	if paymentDate.Day() < anchor.Day() {
		index--
	}
	return index
}

// semimonthlyIndex treats each calendar month as exactly two payment slots.
// Which half of the month the anchor falls in determines slot 0; a payment in
// the opposite half of its month sits one slot ahead of or behind the
// anchor's slot.
func semimonthlyIndex(anchor, paymentDate time.Time) int {
	index := datetime.MonthsBetween(anchor, paymentDate) * 2

	anchorFirstHalf := firstHalfOfMonth(anchor)
	paymentFirstHalf := firstHalfOfMonth(paymentDate)

	if anchorFirstHalf && !paymentFirstHalf {
		index++
	} else if !anchorFirstHalf && paymentFirstHalf {
		index--
	}
	return index
}

func firstHalfOfMonth(date time.Time) bool {
	return date.Day() < 15
}

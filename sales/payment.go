package sales

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Payment terms are bounded to keep due dates inside one year.
const (
	MinPaymentTermDays = 1
	MaxPaymentTermDays = 365
)

// PaymentPlan describes how a sale is financed:
//
//	cash    → AmountPaid = total, BalanceDue = 0, no due date
//	credit  → AmountPaid = 0, BalanceDue = total, due date from term
//	partial → AmountPaid = user amount, BalanceDue = remainder, due date from term
type PaymentPlan struct {
	SaleType        SaleType
	AmountPaid      decimal.Decimal
	BalanceDue      decimal.Decimal
	PaymentTermDays int        // credit/partial only
	DueDate         *time.Time // credit/partial only
}

// ResolvePaymentPlan derives the plan for a sale total. amountPaid is
// only read for partial sales and termDays only for credit and partial.
// The due date is computed in UTC calendar days so a term of N days
// lands on the same day regardless of time of day or DST.
func ResolvePaymentPlan(saleType SaleType, total, amountPaid decimal.Decimal, termDays int, now time.Time) (PaymentPlan, error) {
	plan := PaymentPlan{SaleType: saleType}

	switch saleType {
	case Cash:
		plan.AmountPaid = total
		plan.BalanceDue = decimal.Zero
		return plan, nil
	case Credit:
		plan.AmountPaid = decimal.Zero
		plan.BalanceDue = total
	case Partial:
		plan.AmountPaid = amountPaid
		plan.BalanceDue = total.Sub(amountPaid)
	default:
		return PaymentPlan{}, ErrInvalidSaleType
	}

	if termDays < MinPaymentTermDays || termDays > MaxPaymentTermDays {
		return PaymentPlan{}, ErrInvalidPaymentTerm
	}
	due := now.UTC().AddDate(0, 0, termDays)
	plan.PaymentTermDays = termDays
	plan.DueDate = &due
	return plan, nil
}

// TermLabel names the common payment term presets; any other value is
// shown as "{n} days". Labels are informational only.
func TermLabel(days int) string {
	switch days {
	case 7, 14, 21, 30, 60, 90:
		return fmt.Sprintf("Net %d", days)
	}
	return fmt.Sprintf("%d days", days)
}

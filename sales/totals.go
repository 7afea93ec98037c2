package sales

import "github.com/shopspring/decimal"

// Totals is the invoice aggregate derived from the current line items.
type Totals struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	Total         decimal.Decimal
}

// ComputeTotals recomputes the aggregate from scratch; nothing is
// cached between calls. Line amounts were rounded when each row was
// built, so the sums here are exact.
func ComputeTotals(items []LineItem) Totals {
	t := Totals{
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		Total:         decimal.Zero,
	}
	for _, it := range items {
		t.Subtotal = t.Subtotal.Add(it.Subtotal)
		t.TotalDiscount = t.TotalDiscount.Add(it.DiscountAmount)
		t.Total = t.Total.Add(it.Total)
	}
	return t
}

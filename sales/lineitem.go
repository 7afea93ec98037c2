package sales

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NewLineItem builds one invoice row from a chosen product. A zero
// unitPrice means "use the product's selling price"; callers may pass a
// positive override instead. The row's subtotal and discount amount are
// rounded to 2 decimal places so invoice sums stay exact.
func NewLineItem(product *Product, quantity int, unitPrice, discountPct decimal.Decimal) (LineItem, error) {
	if product == nil {
		return LineItem{}, ErrMissingProduct
	}
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	if unitPrice.IsZero() {
		unitPrice = product.SellingPrice
	}
	if !unitPrice.IsPositive() {
		return LineItem{}, ErrInvalidPrice
	}
	// Out-of-range discounts are rejected, not clamped.
	if discountPct.IsNegative() || discountPct.GreaterThan(hundred) {
		return LineItem{}, ErrInvalidDiscount
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	discount := subtotal.Mul(discountPct).Div(hundred).Round(2)

	return LineItem{
		ProductID:      product.ID,
		ProductName:    product.Name,
		SKU:            product.SKU,
		UnitPrice:      unitPrice,
		Quantity:       quantity,
		DiscountPct:    discountPct,
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal.Sub(discount),
	}, nil
}

// AddLineItem parses the raw item inputs, validates them and returns a
// new list with the row appended. The input list is never mutated, so on
// error the caller's working list is exactly what it was before the add.
// A blank unit price defaults to the product's selling price; a blank
// discount means 0%. Rows for the same product are never merged: every
// add produces a distinct row.
func AddLineItem(product *Product, quantityInput, unitPriceInput, discountInput string, items []LineItem) ([]LineItem, error) {
	if product == nil {
		return items, ErrMissingProduct
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(quantityInput))
	if err != nil || quantity <= 0 {
		return items, ErrInvalidQuantity
	}

	unitPrice := product.SellingPrice
	if s := strings.TrimSpace(unitPriceInput); s != "" {
		unitPrice, err = decimal.NewFromString(s)
		if err != nil {
			return items, ErrInvalidPrice
		}
	}
	if !unitPrice.IsPositive() {
		return items, ErrInvalidPrice
	}

	discountPct := decimal.Zero
	if s := strings.TrimSpace(discountInput); s != "" {
		discountPct, err = decimal.NewFromString(s)
		if err != nil {
			return items, ErrInvalidDiscount
		}
	}

	item, err := NewLineItem(product, quantity, unitPrice, discountPct)
	if err != nil {
		return items, err
	}

	out := make([]LineItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, item), nil
}

// RemoveLineItem drops the row at index and returns the shortened list.
// Items are an ordered sequence, so removal by position is unambiguous.
// An out-of-range index leaves the list unchanged.
func RemoveLineItem(index int, items []LineItem) []LineItem {
	if index < 0 || index >= len(items) {
		return items
	}
	out := make([]LineItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}

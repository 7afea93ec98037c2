// Package sales implements the checkout workflow for a single sale:
// building line items from the catalog, aggregating invoice totals and
// resolving the payment plan for cash, credit and partial sales.
// It is pure domain logic with no HTTP or database coupling.
package sales

import "github.com/shopspring/decimal"

// SaleType categorizes how a sale is financed at creation time.
type SaleType string

const (
	Cash    SaleType = "cash"    // paid in full immediately
	Credit  SaleType = "credit"  // paid later in full
	Partial SaleType = "partial" // split between now and later
)

// Product is the catalog view the workflow needs. Prices are amounts in
// the store's single currency.
type Product struct {
	ID           string
	SKU          string
	Name         string
	SellingPrice decimal.Decimal
	BuyingPrice  decimal.Decimal
}

// LineItem is one product-quantity-price-discount row of an invoice.
// Product fields are copied at add time; later catalog changes do not
// affect an existing row.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	DiscountPct decimal.Decimal `json:"discount_percentage"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

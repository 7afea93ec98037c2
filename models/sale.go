package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Sale is the authoritative record created by one checkout submission.
type Sale struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	InvoiceNumber string  `json:"invoice_number" gorm:"unique"`
	StoreID       uint    `json:"store_id" gorm:"not null;index"`
	Store         Store   `json:"-" gorm:"foreignKey:StoreID;references:Id"`
	ClientID      *uint   `json:"client_id,omitempty"`
	Client        *Client `json:"client,omitempty" gorm:"foreignKey:ClientID;references:Id"`

	SaleType      string `json:"sale_type" gorm:"type:VARCHAR(10);not null"` // "cash" | "credit" | "partial"
	PaymentMethod string `json:"payment_method"`

	Items         []SaleItem      `json:"items" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Subtotal      decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2)"`
	TaxAmount     decimal.Decimal `json:"tax_amount" gorm:"type:numeric(12,2)"`
	DiscountTotal decimal.Decimal `json:"discount_amount" gorm:"type:numeric(12,2)"`
	Total         decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2)"`

	// Payments rollup: AmountPaid grows as settlements arrive,
	// BalanceDue shrinks. BalanceDue is 0 for cash sales from day one.
	AmountPaid decimal.Decimal `json:"amount_paid" gorm:"type:numeric(12,2)"`
	BalanceDue decimal.Decimal `json:"balance_due" gorm:"type:numeric(12,2)"`

	// Set for credit and partial sales only.
	PaymentTermDays *int       `json:"payment_term_days,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// SaleItem snapshots the product at add time; catalog changes after the
// sale do not rewrite history.
type SaleItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	SaleID      uint    `json:"-" gorm:"index"`
	ProductID   string  `json:"product_id" gorm:"not null;index"`
	Product     Product `json:"-" gorm:"foreignKey:ProductID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	Quantity    int     `json:"quantity"`

	UnitPrice      decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2)"`
	DiscountPct    decimal.Decimal `json:"discount_percentage" gorm:"type:numeric(5,2)"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2)"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:numeric(12,2)"`
	Total          decimal.Decimal `json:"total" gorm:"type:numeric(12,2)"`
}

// Immutable snapshot of the sale as it was accepted.
type SaleVersion struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	SaleID    uint           `json:"sale_id" gorm:"index:idx_sale_versions_sale_id_version_no,unique,priority:1"`
	VersionNo int            `json:"version_no" gorm:"not null;index:idx_sale_versions_sale_id_version_no,unique,priority:2"`
	Snapshot  datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}

// SettlementPayment reduces the balance due of a credit or partial sale.
type SettlementPayment struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	SaleID    uint            `json:"sale_id" gorm:"index:idx_settlements_sale_paid_at,priority:1"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(12,2)"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Note      string          `json:"note"`
	PaidAt    time.Time       `json:"paid_at" gorm:"index:idx_settlements_sale_paid_at,priority:2"`
	CreatedAt time.Time       `json:"created_at"`
}

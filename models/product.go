package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	Id           string          `json:"id" gorm:"primaryKey"`
	StoreID      uint            `json:"store_id" gorm:"not null;index"`
	SKU          string          `json:"sku" gorm:"not null;uniqueIndex"`
	Name         string          `json:"product_name" gorm:"not null"`
	SellingPrice decimal.Decimal `json:"selling_price" gorm:"type:numeric(12,2)"`
	BuyingPrice  decimal.Decimal `json:"buying_price" gorm:"type:numeric(12,2)"`
	Active       bool            `json:"-"`
}

func (product *Product) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	product.Id = uuid.NewString()
	return
}

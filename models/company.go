package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the tenant root: one company, one Postgres schema holding
// its stores, catalog, clients and sales.
type Company struct {
	Id          string `json:"id" gorm:"primaryKey"`
	CompanyName string `json:"company_name" gorm:"not null;unique"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Zip         string `json:"zip"`
	OwnerId     string `json:"-"`
	Owner       User   `json:"owner" gorm:"foreignKey:OwnerId;references:Id"`
	SchemaName  string `json:"-" gorm:"unique;not null"`
}

func (company *Company) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	company.Id = uuid.NewString()
	return
}

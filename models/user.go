package models

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is a staff account. Users sign in against the public schema;
// SchemaName routes them to their company's tenant schema.
type User struct {
	Id          string `json:"id" gorm:"primaryKey"`
	FirstName   string `json:"first_name" gorm:"not null"`
	LastName    string `json:"last_name" gorm:"not null"`
	PhoneNumber string `json:"phone_number"`
	Password    []byte `json:"-" gorm:"not null"`
	Email       string `json:"email" gorm:"unique;not null"`
	SchemaName  string `json:"-" gorm:"not null;index"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	user.Id = uuid.NewString()
	return
}

func (user *User) SetPassword(password string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	user.Password = hashedPassword
}

func (user *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(user.Password, []byte(password))
}

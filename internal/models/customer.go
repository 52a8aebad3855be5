package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a retail customer record referenced by invoices and warranties.
type Customer struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	FullName string  `gorm:"size:150;not null" json:"full_name"`
	Phone    string  `gorm:"size:20;not null;uniqueIndex" json:"phone"`
	Email    *string `gorm:"size:150" json:"email"`
	Address  *string `gorm:"size:255" json:"address"`
	Notes    *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

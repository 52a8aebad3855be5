package models

import (
	"time"

	"gorm.io/gorm"
)

// Partner is a supplier or distributor the store sources products from.
type Partner struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:200;not null" json:"name"`
	Code        string  `gorm:"uniqueIndex;size:30;not null" json:"code"`
	ContactName *string `gorm:"size:150" json:"contact_name"`
	Phone       *string `gorm:"size:20" json:"phone"`
	Email       *string `gorm:"size:150" json:"email"`
	Address     *string `gorm:"size:255" json:"address"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Partner) TableName() string {
	return "partners"
}

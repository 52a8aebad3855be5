package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a sellable item. WarrantyMonths is the default coverage window
// offered at sale time.
type Product struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	Name           string   `gorm:"size:200;not null" json:"name"`
	SKU            string   `gorm:"column:sku;size:50;not null;uniqueIndex" json:"sku"`
	Price          float64  `gorm:"type:decimal(18,2);not null" json:"price"`
	WarrantyMonths int      `gorm:"not null;default:12" json:"warranty_months"`
	PartnerID      *uint    `gorm:"index" json:"partner_id"`
	Description    *string  `gorm:"type:text" json:"description"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Partner *Partner `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

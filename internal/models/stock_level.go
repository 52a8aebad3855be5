package models

import (
	"time"
)

// StockLevel tracks on-hand quantity per product. One row per product.
type StockLevel struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductID    uint      `gorm:"not null;uniqueIndex" json:"product_id"`
	Quantity     int       `gorm:"not null;default:0" json:"quantity"`
	ReorderPoint int       `gorm:"not null;default:0" json:"reorder_point"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (StockLevel) TableName() string {
	return "stock_levels"
}

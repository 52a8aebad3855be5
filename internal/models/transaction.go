package models

import (
	"time"
)

// Transaction directions: money in (sale/warranty charge) or out (refund/supplier payment).
const (
	TxDirectionIn  = "in"
	TxDirectionOut = "out"
)

// Transaction is a payment record tied to an invoice.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	InvoiceID *uint     `gorm:"index" json:"invoice_id"`
	Amount    float64   `gorm:"type:decimal(18,2);not null" json:"amount"`
	Method    string    `gorm:"size:30;not null" json:"method"`
	Direction string    `gorm:"type:varchar(10);not null;default:in" json:"direction"`
	Reference *string   `gorm:"size:100" json:"reference"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Invoice *Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

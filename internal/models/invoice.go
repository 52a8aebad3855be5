package models

import (
	"time"
)

// Invoice statuses (open set in the DB, these are the values the API writes).
const (
	InvoiceStatusDraft = "DRAFT"
	InvoiceStatusPaid  = "PAID"
	InvoiceStatusVoid  = "VOID"
)

// Invoice is a sales invoice header. Line items live outside this module's scope;
// warranties reference invoices for proof of purchase.
type Invoice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex;size:30;not null" json:"code"`
	CustomerID  *uint     `gorm:"index" json:"customer_id"`
	TotalAmount float64   `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	Status      string    `gorm:"type:varchar(20);not null;default:DRAFT" json:"status"`
	InvoiceDate time.Time `gorm:"not null;index" json:"invoice_date"`
	Notes       *string   `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

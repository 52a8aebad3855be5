package models

import (
	"time"
)

// WarrantyStatus is the lifecycle state of a warranty ticket.
type WarrantyStatus string

const (
	StatusPending    WarrantyStatus = "PENDING"
	StatusProcessing WarrantyStatus = "PROCESSING"
	StatusCompleted  WarrantyStatus = "COMPLETED"
	StatusRejected   WarrantyStatus = "REJECTED"
)

// ValidStatuses is the set of allowed DB enum values for warranty status.
var ValidStatuses = []WarrantyStatus{StatusPending, StatusProcessing, StatusCompleted, StatusRejected}

// IsValidStatus returns true if s is one of the allowed enum values.
func IsValidStatus(s WarrantyStatus) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Warranty is a product-repair ticket. Code is date-scoped and sequence-numbered
// (WR-YYYYMMDD-NNNN) and unique across all tickets.
type Warranty struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Code         string         `gorm:"uniqueIndex;size:30;not null" json:"code"`
	Status       WarrantyStatus `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`
	CustomerID   *uint          `gorm:"index" json:"customer_id"`
	ProductID    *uint          `gorm:"index" json:"product_id"`
	InvoiceID    *uint          `gorm:"index" json:"invoice_id"`
	CreatorID    *uint          `gorm:"index" json:"creator_id"`
	TechnicianID *uint          `gorm:"index" json:"technician_id"`

	SerialNumber     *string `gorm:"size:100" json:"serial_number"`
	IssueDescription *string `gorm:"type:text" json:"issue_description"`
	Diagnosis        *string `gorm:"type:text" json:"diagnosis"`
	Solution         *string `gorm:"type:text" json:"solution"`
	Notes            *string `gorm:"type:text" json:"notes"`

	ReceivedDate       time.Time  `gorm:"not null;index" json:"received_date"`
	ExpectedReturnDate *time.Time `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date"`

	Cost    *float64 `gorm:"type:decimal(18,2)" json:"cost"`
	Charged bool     `gorm:"not null;default:false" json:"charged"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Invoice    *Invoice  `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
	Creator    *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Technician *User     `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
}

func (Warranty) TableName() string {
	return "warranties"
}

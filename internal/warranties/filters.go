package warranties

import (
	"strings"
	"time"

	"github.com/ilmsadmin/zbase-sub005/internal/models"

	"gorm.io/gorm"
)

// ListFilters is the open bag of optional list criteria. Zero values impose no
// constraint; set fields are AND-combined.
type ListFilters struct {
	Code         string
	SerialNumber string
	Status       models.WarrantyStatus
	CustomerID   *uint
	ProductID    *uint
	InvoiceID    *uint
	TechnicianID *uint
	CreatorID    *uint
	StartDate    *time.Time
	EndDate      *time.Time
}

// apply folds the set filters into a conjunctive GORM predicate.
// Code and serial number match as case-insensitive substrings; StartDate/EndDate
// combine into one inclusive range on received_date.
func (f ListFilters) apply(db *gorm.DB) *gorm.DB {
	if f.Code != "" {
		db = db.Where("lower(code) LIKE ?", "%"+strings.ToLower(f.Code)+"%")
	}
	if f.SerialNumber != "" {
		db = db.Where("lower(serial_number) LIKE ?", "%"+strings.ToLower(f.SerialNumber)+"%")
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.CustomerID != nil {
		db = db.Where("customer_id = ?", *f.CustomerID)
	}
	if f.ProductID != nil {
		db = db.Where("product_id = ?", *f.ProductID)
	}
	if f.InvoiceID != nil {
		db = db.Where("invoice_id = ?", *f.InvoiceID)
	}
	if f.TechnicianID != nil {
		db = db.Where("technician_id = ?", *f.TechnicianID)
	}
	if f.CreatorID != nil {
		db = db.Where("creator_id = ?", *f.CreatorID)
	}
	switch {
	case f.StartDate != nil && f.EndDate != nil:
		db = db.Where("received_date BETWEEN ? AND ?", *f.StartDate, *f.EndDate)
	case f.StartDate != nil:
		db = db.Where("received_date >= ?", *f.StartDate)
	case f.EndDate != nil:
		db = db.Where("received_date <= ?", *f.EndDate)
	}
	return db
}

package invoices

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ilmsadmin/zbase-sub005/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCodeRequired    = errors.New("Invoice code is required")
	ErrInvalidAmount   = errors.New("Total amount must be non-negative")
	ErrInvalidStatus   = errors.New("Invalid invoice status")
	ErrCodeTaken       = errors.New("Invoice code must be unique")
	ErrCustomerMissing = errors.New("Customer not found")
	ErrNotFound        = errors.New("Invoice not found")
)

var validStatuses = map[string]bool{
	models.InvoiceStatusDraft: true,
	models.InvoiceStatusPaid:  true,
	models.InvoiceStatusVoid:  true,
}

type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type CreateInvoiceInput struct {
	Code        string     `json:"code"`
	CustomerID  *uint      `json:"customer_id"`
	TotalAmount float64    `json:"total_amount"`
	Status      string     `json:"status"`
	InvoiceDate *time.Time `json:"invoice_date"`
	Notes       *string    `json:"notes"`
}

func (s *Service) Create(ctx context.Context, in CreateInvoiceInput) (*models.Invoice, error) {
	if strings.TrimSpace(in.Code) == "" {
		return nil, ErrCodeRequired
	}
	if in.TotalAmount < 0 {
		return nil, ErrInvalidAmount
	}
	status := in.Status
	if status == "" {
		status = models.InvoiceStatusDraft
	}
	if !validStatuses[status] {
		return nil, ErrInvalidStatus
	}
	if in.CustomerID != nil {
		var c models.Customer
		if err := s.DB.WithContext(ctx).Select("id").First(&c, *in.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerMissing
			}
			return nil, err
		}
	}
	date := s.now()
	if in.InvoiceDate != nil {
		date = *in.InvoiceDate
	}

	inv := &models.Invoice{
		Code:        strings.TrimSpace(in.Code),
		CustomerID:  in.CustomerID,
		TotalAmount: in.TotalAmount,
		Status:      status,
		InvoiceDate: date,
		Notes:       in.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(inv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	return inv, nil
}

// ListFilters narrows the invoice listing; zero values impose no constraint.
type ListFilters struct {
	CustomerID *uint
	Status     string
	StartDate  *time.Time
	EndDate    *time.Time
}

func (s *Service) List(ctx context.Context, f ListFilters) ([]models.Invoice, error) {
	q := s.DB.WithContext(ctx).Model(&models.Invoice{}).Preload("Customer")
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.Status != "" {
		if !validStatuses[f.Status] {
			return nil, ErrInvalidStatus
		}
		q = q.Where("status = ?", f.Status)
	}
	switch {
	case f.StartDate != nil && f.EndDate != nil:
		q = q.Where("invoice_date BETWEEN ? AND ?", *f.StartDate, *f.EndDate)
	case f.StartDate != nil:
		q = q.Where("invoice_date >= ?", *f.StartDate)
	case f.EndDate != nil:
		q = q.Where("invoice_date <= ?", *f.EndDate)
	}
	var invs []models.Invoice
	if err := q.Order("invoice_date DESC").Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.WithContext(ctx).Preload("Customer").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// SetStatus moves an invoice between DRAFT/PAID/VOID.
func (s *Service) SetStatus(ctx context.Context, id uint, status string) (*models.Invoice, error) {
	if !validStatuses[status] {
		return nil, ErrInvalidStatus
	}
	res := s.DB.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Service) Remove(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&models.Invoice{}, id).Error
}

package warranties

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ilmsadmin/zbase-sub005/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns the warranty ticket lifecycle: code generation, reference
// validation, CRUD and the status state machine. Now is injectable for tests;
// nil means wall clock.
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

// withRelations expands customer/product/invoice plus creator/technician
// summaries (id, fullname, email only).
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("Product").
		Preload("Invoice").
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "fullname", "email")
		}).
		Preload("Technician", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "fullname", "email")
		})
}

// generateCode produces WR-YYYYMMDD-NNNN where NNNN is 1 + the count of
// warranties created today (process-local timezone), zero-padded to 4 digits.
// Runs on tx so the count and the subsequent insert share one transaction;
// a duplicate slipping through still fails the unique index and surfaces as
// a ConflictError.
func (s *Service) generateCode(tx *gorm.DB) (string, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	var count int64
	if err := tx.Model(&models.Warranty{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("WR-%s-%04d", now.Format("20060102"), count+1), nil
}

// validateReferences checks supplied foreign keys resolve to existing rows,
// in order customer -> product -> invoice, stopping at the first miss.
func validateReferences(tx *gorm.DB, customerID, productID, invoiceID *uint) error {
	if customerID != nil {
		var c models.Customer
		if err := tx.Select("id").First(&c, *customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newReferenceError("Customer", *customerID)
			}
			return err
		}
	}
	if productID != nil {
		var p models.Product
		if err := tx.Select("id").First(&p, *productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newReferenceError("Product", *productID)
			}
			return err
		}
	}
	if invoiceID != nil {
		var inv models.Invoice
		if err := tx.Select("id").First(&inv, *invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newReferenceError("Invoice", *invoiceID)
			}
			return err
		}
	}
	return nil
}

// translateConstraint maps persistence constraint violations to the caller-facing
// conflict errors; anything else propagates unchanged.
func translateConstraint(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errDuplicateCode
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errForeignKey
	default:
		return err
	}
}

// CreateWarrantyInput carries the create payload. Nil optionals take defaults:
// code generated, status PENDING, received date now.
type CreateWarrantyInput struct {
	Code         string                 `json:"code"`
	Status       models.WarrantyStatus  `json:"status"`
	CustomerID   *uint                  `json:"customer_id"`
	ProductID    *uint                  `json:"product_id"`
	InvoiceID    *uint                  `json:"invoice_id"`
	CreatorID    *uint                  `json:"creator_id"`
	TechnicianID *uint                  `json:"technician_id"`

	SerialNumber     *string `json:"serial_number"`
	IssueDescription *string `json:"issue_description"`
	Diagnosis        *string `json:"diagnosis"`
	Solution         *string `json:"solution"`
	Notes            *string `json:"notes"`

	ReceivedDate       *time.Time `json:"received_date"`
	ExpectedReturnDate *time.Time `json:"expected_return_date"`

	Cost    *float64 `json:"cost"`
	Charged bool     `json:"charged"`
}

// Create resolves the code (supplied or generated), validates supplied
// references, applies defaults and persists, all in one transaction together
// with the CREATED activity row.
func (s *Service) Create(ctx context.Context, in CreateWarrantyInput) (*models.Warranty, error) {
	if in.Status != "" && !models.IsValidStatus(in.Status) {
		return nil, &ValidationError{Message: fmt.Sprintf("Invalid warranty status: %s", in.Status)}
	}

	var created models.Warranty
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code := in.Code
		if code == "" {
			var err error
			if code, err = s.generateCode(tx); err != nil {
				return err
			}
		}
		if err := validateReferences(tx, in.CustomerID, in.ProductID, in.InvoiceID); err != nil {
			return err
		}

		status := in.Status
		if status == "" {
			status = models.StatusPending
		}
		received := s.now()
		if in.ReceivedDate != nil {
			received = *in.ReceivedDate
		}

		created = models.Warranty{
			Code:               code,
			Status:             status,
			CustomerID:         in.CustomerID,
			ProductID:          in.ProductID,
			InvoiceID:          in.InvoiceID,
			CreatorID:          in.CreatorID,
			TechnicianID:       in.TechnicianID,
			SerialNumber:       in.SerialNumber,
			IssueDescription:   in.IssueDescription,
			Diagnosis:          in.Diagnosis,
			Solution:           in.Solution,
			Notes:              in.Notes,
			ReceivedDate:       received,
			ExpectedReturnDate: in.ExpectedReturnDate,
			Cost:               in.Cost,
			Charged:            in.Charged,
		}
		if err := tx.Create(&created).Error; err != nil {
			return translateConstraint(err)
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"code":   created.Code,
			"status": created.Status,
		})
		return tx.Create(&models.WarrantyEvent{
			WarrantyID:  created.ID,
			EventType:   "CREATED",
			ActorUserID: in.CreatorID,
			EventData:   datatypes.JSON(eventData),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindOne fetches a warranty by id with related records expanded.
func (s *Service) FindOne(ctx context.Context, id uint) (*models.Warranty, error) {
	var w models.Warranty
	if err := withRelations(s.DB.WithContext(ctx)).First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundByID(id)
		}
		return nil, err
	}
	return &w, nil
}

// FindByCode fetches a warranty by its ticket code with related records expanded.
func (s *Service) FindByCode(ctx context.Context, code string) (*models.Warranty, error) {
	var w models.Warranty
	if err := withRelations(s.DB.WithContext(ctx)).Where("code = ?", code).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundByCode(code)
		}
		return nil, err
	}
	return &w, nil
}

// FindAll lists warranties matching the filters, most recently received first.
func (s *Service) FindAll(ctx context.Context, filters ListFilters) ([]models.Warranty, error) {
	var ws []models.Warranty
	q := filters.apply(s.DB.WithContext(ctx).Model(&models.Warranty{}))
	if err := withRelations(q).Order("received_date DESC").Find(&ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

// UpdateWarrantyInput carries the patch; nil fields are left untouched.
// ActorUserID is the session user recorded on the status-change activity row.
type UpdateWarrantyInput struct {
	Code         *string                `json:"code"`
	Status       *models.WarrantyStatus `json:"status"`
	CustomerID   *uint                  `json:"customer_id"`
	ProductID    *uint                  `json:"product_id"`
	InvoiceID    *uint                  `json:"invoice_id"`
	TechnicianID *uint                  `json:"technician_id"`

	SerialNumber     *string `json:"serial_number"`
	IssueDescription *string `json:"issue_description"`
	Diagnosis        *string `json:"diagnosis"`
	Solution         *string `json:"solution"`
	Notes            *string `json:"notes"`

	ReceivedDate       *time.Time `json:"received_date"`
	ExpectedReturnDate *time.Time `json:"expected_return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date"`

	Cost    *float64 `json:"cost"`
	Charged *bool    `json:"charged"`

	ActorUserID *uint `json:"-"`
}

// Update patches a warranty. The record must exist; moving status to COMPLETED
// without an explicit actual return date stamps it with the current time.
// Read and write share one transaction.
func (s *Service) Update(ctx context.Context, id uint, in UpdateWarrantyInput) (*models.Warranty, error) {
	if in.Status != nil && !models.IsValidStatus(*in.Status) {
		return nil, &ValidationError{Message: fmt.Sprintf("Invalid warranty status: %s", *in.Status)}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Warranty
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundByID(id)
			}
			return err
		}

		updates := map[string]interface{}{}
		if in.Code != nil {
			updates["code"] = *in.Code
		}
		if in.Status != nil {
			updates["status"] = *in.Status
			if *in.Status == models.StatusCompleted && in.ActualReturnDate == nil {
				updates["actual_return_date"] = s.now()
			}
		}
		if in.CustomerID != nil {
			updates["customer_id"] = *in.CustomerID
		}
		if in.ProductID != nil {
			updates["product_id"] = *in.ProductID
		}
		if in.InvoiceID != nil {
			updates["invoice_id"] = *in.InvoiceID
		}
		if in.TechnicianID != nil {
			updates["technician_id"] = *in.TechnicianID
		}
		if in.SerialNumber != nil {
			updates["serial_number"] = *in.SerialNumber
		}
		if in.IssueDescription != nil {
			updates["issue_description"] = *in.IssueDescription
		}
		if in.Diagnosis != nil {
			updates["diagnosis"] = *in.Diagnosis
		}
		if in.Solution != nil {
			updates["solution"] = *in.Solution
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}
		if in.ReceivedDate != nil {
			updates["received_date"] = *in.ReceivedDate
		}
		if in.ExpectedReturnDate != nil {
			updates["expected_return_date"] = *in.ExpectedReturnDate
		}
		if in.ActualReturnDate != nil {
			updates["actual_return_date"] = *in.ActualReturnDate
		}
		if in.Cost != nil {
			updates["cost"] = *in.Cost
		}
		if in.Charged != nil {
			updates["charged"] = *in.Charged
		}
		if len(updates) == 0 {
			return &ValidationError{Message: "No update fields provided"}
		}

		if err := tx.Model(&models.Warranty{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return translateConstraint(err)
		}

		if in.Status != nil && *in.Status != existing.Status {
			eventData, _ := json.Marshal(map[string]interface{}{
				"from": existing.Status,
				"to":   *in.Status,
			})
			if err := tx.Create(&models.WarrantyEvent{
				WarrantyID:  id,
				EventType:   "STATUS_CHANGED",
				ActorUserID: in.ActorUserID,
				EventData:   datatypes.JSON(eventData),
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id)
}

// Remove hard-deletes a warranty and its activity rows, returning the record
// as it was at deletion time.
func (s *Service) Remove(ctx context.Context, id uint) (*models.Warranty, error) {
	var removed *models.Warranty
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var w models.Warranty
		if err := withRelations(tx).First(&w, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundByID(id)
			}
			return err
		}
		if err := tx.Where("warranty_id = ?", id).Delete(&models.WarrantyEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Warranty{}, id).Error; err != nil {
			return err
		}
		removed = &w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// ListEvents returns the activity rows for a warranty, oldest first.
// The warranty must exist.
func (s *Service) ListEvents(ctx context.Context, id uint) ([]models.WarrantyEvent, error) {
	var w models.Warranty
	if err := s.DB.WithContext(ctx).Select("id").First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundByID(id)
		}
		return nil, err
	}
	var events []models.WarrantyEvent
	if err := s.DB.WithContext(ctx).
		Where("warranty_id = ?", id).
		Order("created_at ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

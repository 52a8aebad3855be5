package products

import (
	"context"
	"errors"
	"strings"

	"github.com/ilmsadmin/zbase-sub005/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNameRequired   = errors.New("Product name is required")
	ErrSKURequired    = errors.New("Product SKU is required")
	ErrInvalidPrice   = errors.New("Price must be non-negative")
	ErrSKUTaken       = errors.New("SKU already registered")
	ErrNotFound       = errors.New("Product not found")
	ErrPartnerMissing = errors.New("Partner not found")
	ErrNoUpdateFields = errors.New("No valid update fields provided")
)

type Service struct {
	DB *gorm.DB
}

type CreateProductInput struct {
	Name           string  `json:"name"`
	SKU            string  `json:"sku"`
	Price          float64 `json:"price"`
	WarrantyMonths int     `json:"warranty_months"`
	PartnerID      *uint   `json:"partner_id"`
	Description    *string `json:"description"`
}

func (s *Service) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(in.SKU) == "" {
		return nil, ErrSKURequired
	}
	if in.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if in.PartnerID != nil {
		var p models.Partner
		if err := s.DB.WithContext(ctx).Select("id").First(&p, *in.PartnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPartnerMissing
			}
			return nil, err
		}
	}
	months := in.WarrantyMonths
	if months == 0 {
		months = 12
	}

	p := &models.Product{
		Name:           strings.TrimSpace(in.Name),
		SKU:            strings.ToUpper(strings.TrimSpace(in.SKU)),
		Price:          in.Price,
		WarrantyMonths: months,
		PartnerID:      in.PartnerID,
		Description:    in.Description,
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSKUTaken
		}
		return nil, err
	}
	return p, nil
}

// List returns products, optionally filtered by a case-insensitive substring
// of name or SKU, newest first.
func (s *Service) List(ctx context.Context, search string) ([]models.Product, error) {
	q := s.DB.WithContext(ctx).Model(&models.Product{}).Preload("Partner")
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(name) LIKE ? OR lower(sku) LIKE ?", like, like)
	}
	var ps []models.Product
	if err := q.Order("created_at DESC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).Preload("Partner").First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update applies the allowed fields (name, sku, price, warranty_months, partner_id, description).
func (s *Service) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Product, error) {
	allowed := map[string]bool{
		"name": true, "sku": true, "price": true,
		"warranty_months": true, "partner_id": true, "description": true,
	}
	upd := make(map[string]interface{})
	for k, v := range fields {
		if allowed[k] {
			upd[k] = v
		}
	}
	if len(upd) == 0 {
		return nil, ErrNoUpdateFields
	}
	if p, ok := upd["price"].(float64); ok && p < 0 {
		return nil, ErrInvalidPrice
	}
	if sku, ok := upd["sku"].(string); ok {
		upd["sku"] = strings.ToUpper(strings.TrimSpace(sku))
	}

	res := s.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(upd)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrSKUTaken
		}
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
	return s.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}

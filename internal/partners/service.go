package partners

import (
	"context"
	"errors"
	"strings"

	"github.com/ilmsadmin/zbase-sub005/internal/models"
	"github.com/ilmsadmin/zbase-sub005/internal/pkg/validation"

	"gorm.io/gorm"
)

var (
	ErrNameRequired   = errors.New("Partner name is required")
	ErrCodeRequired   = errors.New("Partner code is required")
	ErrInvalidEmail   = errors.New("Invalid email format")
	ErrCodeTaken      = errors.New("Partner code must be unique")
	ErrNotFound       = errors.New("Partner not found")
	ErrNoUpdateFields = errors.New("No valid update fields provided")
)

type Service struct {
	DB *gorm.DB
}

type CreatePartnerInput struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

func (s *Service) Create(ctx context.Context, in CreatePartnerInput) (*models.Partner, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(in.Code) == "" {
		return nil, ErrCodeRequired
	}
	if in.Email != nil && *in.Email != "" && !validation.IsValidEmail(*in.Email) {
		return nil, ErrInvalidEmail
	}

	p := &models.Partner{
		Name:        strings.TrimSpace(in.Name),
		Code:        strings.ToUpper(strings.TrimSpace(in.Code)),
		ContactName: in.ContactName,
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, search string) ([]models.Partner, error) {
	q := s.DB.WithContext(ctx).Model(&models.Partner{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(name) LIKE ? OR lower(code) LIKE ?", like, like)
	}
	var ps []models.Partner
	if err := q.Order("name ASC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Partner, error) {
	var p models.Partner
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update applies the allowed fields (name, contact_name, phone, email, address).
// Code is immutable once assigned.
func (s *Service) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Partner, error) {
	allowed := map[string]bool{"name": true, "contact_name": true, "phone": true, "email": true, "address": true}
	upd := make(map[string]interface{})
	for k, v := range fields {
		if allowed[k] {
			upd[k] = v
		}
	}
	if len(upd) == 0 {
		return nil, ErrNoUpdateFields
	}
	if e, ok := upd["email"].(string); ok && e != "" && !validation.IsValidEmail(e) {
		return nil, ErrInvalidEmail
	}

	res := s.DB.WithContext(ctx).Model(&models.Partner{}).Where("id = ?", id).Updates(upd)
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
	return s.DB.WithContext(ctx).Delete(&models.Partner{}, id).Error
}

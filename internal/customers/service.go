package customers

import (
	"context"
	"errors"
	"strings"

	"github.com/ilmsadmin/zbase-sub005/internal/models"
	"github.com/ilmsadmin/zbase-sub005/internal/pkg/validation"

	"gorm.io/gorm"
)

var (
	ErrNameRequired   = errors.New("Customer name is required")
	ErrInvalidPhone   = errors.New("Invalid phone number")
	ErrInvalidEmail   = errors.New("Invalid email format")
	ErrPhoneTaken     = errors.New("Phone number already registered")
	ErrNotFound       = errors.New("Customer not found")
	ErrNoUpdateFields = errors.New("No valid update fields provided")
)

type Service struct {
	DB *gorm.DB
}

type CreateCustomerInput struct {
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
}

func (s *Service) Create(ctx context.Context, in CreateCustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !validation.IsValidPhone(in.Phone) {
		return nil, ErrInvalidPhone
	}
	if in.Email != nil && *in.Email != "" && !validation.IsValidEmail(*in.Email) {
		return nil, ErrInvalidEmail
	}

	c := &models.Customer{
		FullName: name,
		Phone:    in.Phone,
		Email:    in.Email,
		Address:  in.Address,
		Notes:    in.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	return c, nil
}

// List returns customers, optionally filtered by a case-insensitive substring
// of name or phone, newest first.
func (s *Service) List(ctx context.Context, search string) ([]models.Customer, error) {
	q := s.DB.WithContext(ctx).Model(&models.Customer{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(full_name) LIKE ? OR phone LIKE ?", like, like)
	}
	var cs []models.Customer
	if err := q.Order("created_at DESC").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update applies the allowed fields (full_name, phone, email, address, notes).
func (s *Service) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Customer, error) {
	allowed := map[string]bool{"full_name": true, "phone": true, "email": true, "address": true, "notes": true}
	upd := make(map[string]interface{})
	for k, v := range fields {
		if allowed[k] {
			upd[k] = v
		}
	}
	if len(upd) == 0 {
		return nil, ErrNoUpdateFields
	}
	if p, ok := upd["phone"].(string); ok && !validation.IsValidPhone(p) {
		return nil, ErrInvalidPhone
	}
	if e, ok := upd["email"].(string); ok && e != "" && !validation.IsValidEmail(e) {
		return nil, ErrInvalidEmail
	}

	res := s.DB.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Updates(upd)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrPhoneTaken
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
	return s.DB.WithContext(ctx).Delete(&models.Customer{}, id).Error
}

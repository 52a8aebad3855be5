package users

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/ilmsadmin/zbase-sub005/internal/constants"
	"github.com/ilmsadmin/zbase-sub005/internal/models"
	"github.com/ilmsadmin/zbase-sub005/internal/pkg/validation"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameRequired = errors.New("Username is required and must be a non-empty string")
	ErrInvalidEmail     = errors.New("Invalid email format")
	ErrInvalidPassword  = errors.New("Invalid password format")
	ErrFullnameRequired = errors.New("Full name is required and must be a non-empty string")
	ErrInvalidFullname  = errors.New("Full name contains invalid characters (only letters, spaces, hyphens, and apostrophes allowed)")
	ErrEmailTaken       = errors.New("Email already registered")
	ErrUsernameTaken    = errors.New("Username already registered")
	ErrNoUpdateFields   = errors.New("No valid update fields provided")
	ErrUserNotFound     = errors.New("User not found")
)

// Service holds DB and Redis for user operations.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

type CreateUserInput struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
	Phone    *string `json:"phone"`
}

// CreateUser registers a new account with the viewer role.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(in.UserName) == "" {
		return nil, ErrUsernameRequired
	}
	if in.Email == "" || !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if in.Password == "" || !validation.IsValidPassword(in.Password) {
		return nil, ErrInvalidPassword
	}
	trimmed := strings.TrimSpace(in.Fullname)
	if trimmed == "" {
		return nil, ErrFullnameRequired
	}
	if !validation.IsValidFullname(trimmed) {
		return nil, ErrInvalidFullname
	}

	userName := strings.TrimSpace(in.UserName)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	fullname := titleCaseAndNormalize(trimmed)

	var existing models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}
	if err := s.DB.WithContext(ctx).Where("user_name = ?", userName).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
		Fullname:     fullname,
		Role:         constants.Viewer,
		Phone:        in.Phone,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser updates allowed fields. Allowed: user_name, email, password, fullname, phone.
func (s *Service) UpdateUser(ctx context.Context, userID uint, fields map[string]interface{}) (*models.User, error) {
	if len(fields) == 0 {
		return nil, ErrNoUpdateFields
	}

	allowed := map[string]bool{
		"user_name": true, "email": true, "password": true, "fullname": true, "phone": true,
	}
	upd := make(map[string]interface{})
	for k, v := range fields {
		if !allowed[k] {
			continue
		}
		upd[k] = v
	}
	if len(upd) == 0 {
		return nil, ErrNoUpdateFields
	}

	if e, ok := upd["email"].(string); ok && e != "" {
		if !validation.IsValidEmail(e) {
			return nil, ErrInvalidEmail
		}
		upd["email"] = strings.TrimSpace(strings.ToLower(e))
	}
	if p, ok := upd["password"].(string); ok && p != "" {
		if !validation.IsValidPassword(p) {
			return nil, ErrInvalidPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(p), 10)
		if err != nil {
			return nil, err
		}
		upd["password_hash"] = string(hash)
		delete(upd, "password")
	}
	if fn, ok := upd["fullname"].(string); ok {
		trimmed := strings.TrimSpace(fn)
		if trimmed == "" {
			return nil, ErrFullnameRequired
		}
		if !validation.IsValidFullname(trimmed) {
			return nil, ErrInvalidFullname
		}
		upd["fullname"] = titleCaseAndNormalize(trimmed)
	}
	if un, ok := upd["user_name"].(string); ok {
		upd["user_name"] = strings.TrimSpace(un)
	}

	if e, ok := upd["email"].(string); ok {
		var dup models.User
		if err := s.DB.WithContext(ctx).Where("email = ? AND id != ?", e, userID).First(&dup).Error; err == nil {
			return nil, ErrEmailTaken
		}
	}
	if un, ok := upd["user_name"].(string); ok {
		var dup models.User
		if err := s.DB.WithContext(ctx).Where("user_name = ? AND id != ?", un, userID).First(&dup).Error; err == nil {
			return nil, ErrUsernameTaken
		}
	}

	result := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(upd)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, userID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ViewUser returns a user by ID.
func (s *Service) ViewUser(ctx context.Context, userID uint) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ListUsers returns all accounts, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRole changes a target user's role after the governance check and
// destroys the target's sessions so the new role takes effect immediately.
func (s *Service) UpdateUserRole(ctx context.Context, p RoleAssignmentParams) (*models.User, error) {
	if err := ValidateRoleAssignment(s.DB, p); err != nil {
		return nil, err
	}
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, p.TargetUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.Role = p.TargetRole
	if err := s.DB.WithContext(ctx).Save(&u).Error; err != nil {
		return nil, err
	}
	DestroyUserSessions(ctx, s.Rdb, p.TargetUserID)
	return &u, nil
}

// RemoveUser soft-deletes an account and destroys its sessions. The last
// superadmin cannot be removed.
func (s *Service) RemoveUser(ctx context.Context, actorUserID, targetUserID uint) error {
	var target models.User
	if err := s.DB.WithContext(ctx).First(&target, targetUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if target.Role == constants.Superadmin {
		var count int64
		s.DB.WithContext(ctx).Model(&models.User{}).Where("role = ?", constants.Superadmin).Count(&count)
		if count <= 1 {
			return ErrCannotRemoveLastSuperuser
		}
	}
	if err := s.DB.WithContext(ctx).Delete(&target).Error; err != nil {
		return err
	}
	DestroyUserSessions(ctx, s.Rdb, targetUserID)
	return nil
}

func titleCaseAndNormalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	var b strings.Builder
	capitalize := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !capitalize {
				b.WriteRune(' ')
				capitalize = true
			}
			continue
		}
		if capitalize {
			b.WriteRune(unicode.ToUpper(r))
			capitalize = false
		} else {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

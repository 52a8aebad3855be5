package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a back-office account. Role drives the permission table in
// internal/constants; PasswordHash is bcrypt and never serialized.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Fullname     string  `gorm:"size:150;not null" json:"fullname"`
	UserName     string  `gorm:"size:50;not null;uniqueIndex" json:"user_name"`
	Email        string  `gorm:"size:150;not null;uniqueIndex" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Role         string  `gorm:"size:20;not null;default:viewer" json:"role"`
	Phone        *string `gorm:"size:20" json:"phone"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

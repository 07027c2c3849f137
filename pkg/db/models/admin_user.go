package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminUser is a back-office operator.
type AdminUser struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Email        string     `gorm:"column:email;not null;uniqueIndex"`
	Name         string     `gorm:"column:name;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	IsActive     bool       `gorm:"column:is_active;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (AdminUser) TableName() string { return "admin_users" }

func (a *AdminUser) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

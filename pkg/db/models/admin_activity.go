package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// AdminActivity is an append-only audit row for the admin feed.
type AdminActivity struct {
	ID         uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	AdminID    *uuid.UUID           `gorm:"column:admin_id;type:uuid"`
	Action     enums.ActivityAction `gorm:"column:action;not null"`
	EntityType enums.ActivityEntity `gorm:"column:entity_type;not null"`
	EntityID   *uuid.UUID           `gorm:"column:entity_id;type:uuid"`
	Summary    string               `gorm:"column:summary;not null"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
}

func (AdminActivity) TableName() string { return "admin_activity" }

func (a *AdminActivity) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

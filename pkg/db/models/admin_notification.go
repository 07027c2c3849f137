package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// AdminNotification mirrors every live admin-orders event for admins who were offline.
type AdminNotification struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;primaryKey"`
	Type      enums.NotificationType `gorm:"column:type;not null"`
	Title     string                 `gorm:"column:title;not null"`
	Message   string                 `gorm:"column:message;not null"`
	Link      *string                `gorm:"column:link"`
	OrderID   *uuid.UUID             `gorm:"column:order_id;type:uuid"`
	VariantID *uuid.UUID             `gorm:"column:variant_id;type:uuid"`
	ReadAt    *time.Time             `gorm:"column:read_at"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}

func (AdminNotification) TableName() string { return "admin_notifications" }

func (n *AdminNotification) BeforeCreate(*gorm.DB) error {
	ensureID(&n.ID)
	return nil
}

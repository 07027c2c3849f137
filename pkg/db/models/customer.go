package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is keyed by phone and upserted on every checkout.
type Customer struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Phone           string    `gorm:"column:phone;not null;uniqueIndex"`
	Name            string    `gorm:"column:name;not null"`
	Email           string    `gorm:"column:email;not null"`
	Address         string    `gorm:"column:address;not null"`
	City            *string   `gorm:"column:city"`
	TotalOrders     int       `gorm:"column:total_orders;not null;default:0"`
	TotalSpentCents int64     `gorm:"column:total_spent_cents;not null;default:0"`
	Tags            []string  `gorm:"column:tags;type:jsonb;serializer:json;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog listing. Variants carry their own price and stock.
type Product struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	SKU            string    `gorm:"column:sku;not null;uniqueIndex"`
	Title          string    `gorm:"column:title;not null"`
	Description    *string   `gorm:"column:description"`
	Category       string    `gorm:"column:category;not null"`
	PriceCents     int64     `gorm:"column:price_cents;not null"`
	CompareAtCents *int64    `gorm:"column:compare_at_cents"`
	Stock          int       `gorm:"column:stock;not null;default:0"`
	Images         []string  `gorm:"column:images;type:jsonb;serializer:json;not null"`
	IsActive       bool      `gorm:"column:is_active;not null"`
	Variants       []Variant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	if p.Images == nil {
		p.Images = []string{}
	}
	return nil
}

// Variant is a purchasable color/size combination of a product.
type Variant struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	SKU        string    `gorm:"column:sku;not null;uniqueIndex"`
	Color      *string   `gorm:"column:color"`
	Size       *string   `gorm:"column:size"`
	PriceCents int64     `gorm:"column:price_cents;not null"`
	Stock      int       `gorm:"column:stock;not null;default:0"`
	Images     []string  `gorm:"column:images;type:jsonb;serializer:json;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Variant) TableName() string { return "variants" }

func (v *Variant) BeforeCreate(*gorm.DB) error {
	ensureID(&v.ID)
	if v.Images == nil {
		v.Images = []string{}
	}
	return nil
}

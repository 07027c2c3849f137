package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Order is written once at checkout; afterwards only status and notes change.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID    uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	Customer      *Customer           `gorm:"foreignKey:CustomerID"`
	Items         []OrderItem         `gorm:"column:items;type:jsonb;serializer:json;not null"`
	SubtotalCents int64               `gorm:"column:subtotal_cents;not null"`
	TaxCents      int64               `gorm:"column:tax_cents;not null;default:0"`
	ShippingCents int64               `gorm:"column:shipping_cents;not null;default:0"`
	TotalCents    int64               `gorm:"column:total_cents;not null"`
	Status        enums.OrderStatus   `gorm:"column:status;not null;default:pending"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null;default:cod"`
	CustomerNotes *string             `gorm:"column:customer_notes"`
	AdminNotes    *string             `gorm:"column:admin_notes"`
	RefundReason  *string             `gorm:"column:refund_reason"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

// OrderItem is the JSON snapshot of a purchased line.
type OrderItem struct {
	ProductID      uuid.UUID  `json:"productId"`
	VariantID      *uuid.UUID `json:"variantId,omitempty"`
	SKU            string     `json:"sku"`
	Title          string     `json:"title"`
	Color          *string    `json:"color,omitempty"`
	Size           *string    `json:"size,omitempty"`
	Image          *string    `json:"image,omitempty"`
	UnitPriceCents int64      `json:"unitPriceCents"`
	Qty            int        `json:"qty"`
	LineTotalCents int64      `json:"lineTotalCents"`
}

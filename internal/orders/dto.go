package orders

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// CustomerSummary is the customer block embedded in admin order payloads.
type CustomerSummary struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Address         string    `json:"address"`
	City            *string   `json:"city,omitempty"`
	TotalOrders     int       `json:"totalOrders"`
	TotalSpentCents int64     `json:"totalSpentCents"`
	Tags            []string  `json:"tags"`
}

// OrderDTO is the order payload returned by checkout and admin routes.
type OrderDTO struct {
	ID            uuid.UUID          `json:"id"`
	Number        string             `json:"number"`
	CustomerID    uuid.UUID          `json:"customerId"`
	Customer      *CustomerSummary   `json:"customer,omitempty"`
	Items         []models.OrderItem `json:"items"`
	SubtotalCents int64              `json:"subtotalCents"`
	TaxCents      int64              `json:"taxCents"`
	ShippingCents int64              `json:"shippingCents"`
	TotalCents    int64              `json:"totalCents"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"paymentMethod"`
	CustomerNotes *string            `json:"customerNotes,omitempty"`
	AdminNotes    *string            `json:"adminNotes,omitempty"`
	RefundReason  *string            `json:"refundReason,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// OrderList is one page of admin orders.
type OrderList struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// Number renders the short order reference shown to admins and customers.
func Number(id uuid.UUID) string {
	return "#" + strings.ToUpper(id.String()[:8])
}

// NewOrderDTO maps an order (and its customer, when loaded) to its API shape.
func NewOrderDTO(o *models.Order) OrderDTO {
	items := o.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	dto := OrderDTO{
		ID:            o.ID,
		Number:        Number(o.ID),
		CustomerID:    o.CustomerID,
		Items:         items,
		SubtotalCents: o.SubtotalCents,
		TaxCents:      o.TaxCents,
		ShippingCents: o.ShippingCents,
		TotalCents:    o.TotalCents,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		CustomerNotes: o.CustomerNotes,
		AdminNotes:    o.AdminNotes,
		RefundReason:  o.RefundReason,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if c := o.Customer; c != nil {
		tags := c.Tags
		if tags == nil {
			tags = []string{}
		}
		dto.Customer = &CustomerSummary{
			ID:              c.ID,
			Name:            c.Name,
			Phone:           c.Phone,
			Email:           c.Email,
			Address:         c.Address,
			City:            c.City,
			TotalOrders:     c.TotalOrders,
			TotalSpentCents: c.TotalSpentCents,
			Tags:            tags,
		}
	}
	return dto
}

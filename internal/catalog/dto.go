package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// ProductDTO is the catalog payload shared by storefront and admin routes.
type ProductDTO struct {
	ID             uuid.UUID    `json:"id"`
	SKU            string       `json:"sku"`
	Title          string       `json:"title"`
	Description    *string      `json:"description,omitempty"`
	Category       string       `json:"category"`
	PriceCents     int64        `json:"priceCents"`
	CompareAtCents *int64       `json:"compareAtCents,omitempty"`
	Stock          int          `json:"stock"`
	Images         []string     `json:"images"`
	IsActive       bool         `json:"isActive"`
	Variants       []VariantDTO `json:"variants"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// VariantDTO is one purchasable option of a product.
type VariantDTO struct {
	ID         uuid.UUID `json:"id"`
	SKU        string    `json:"sku"`
	Color      *string   `json:"color,omitempty"`
	Size       *string   `json:"size,omitempty"`
	PriceCents int64     `json:"priceCents"`
	Stock      int       `json:"stock"`
	Images     []string  `json:"images"`
}

// ProductListResult is one page of products.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

// NewProductDTO maps a product model to its API shape.
func NewProductDTO(p *models.Product) ProductDTO {
	variants := make([]VariantDTO, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantDTO{
			ID:         v.ID,
			SKU:        v.SKU,
			Color:      v.Color,
			Size:       v.Size,
			PriceCents: v.PriceCents,
			Stock:      v.Stock,
			Images:     nonNil(v.Images),
		})
	}
	return ProductDTO{
		ID:             p.ID,
		SKU:            p.SKU,
		Title:          p.Title,
		Description:    p.Description,
		Category:       p.Category,
		PriceCents:     p.PriceCents,
		CompareAtCents: p.CompareAtCents,
		Stock:          p.Stock,
		Images:         nonNil(p.Images),
		IsActive:       p.IsActive,
		Variants:       variants,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

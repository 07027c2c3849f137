package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type productRequest struct {
	SKU            string           `json:"sku" validate:"required,max=64"`
	Title          string           `json:"title" validate:"required,max=200"`
	Description    *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category       string           `json:"category" validate:"required,max=64"`
	PriceCents     int64            `json:"priceCents" validate:"gte=0"`
	CompareAtCents *int64           `json:"compareAtCents,omitempty" validate:"omitempty,gte=0"`
	Stock          int              `json:"stock" validate:"gte=0"`
	Images         []string         `json:"images" validate:"omitempty,dive,url"`
	IsActive       *bool            `json:"isActive,omitempty"`
	Variants       []variantRequest `json:"variants" validate:"omitempty,dive"`
}

type variantRequest struct {
	ID         *string  `json:"id,omitempty" validate:"omitempty,uuid"`
	SKU        string   `json:"sku" validate:"required,max=64"`
	Color      *string  `json:"color,omitempty" validate:"omitempty,max=64"`
	Size       *string  `json:"size,omitempty" validate:"omitempty,max=32"`
	PriceCents int64    `json:"priceCents" validate:"gte=0"`
	Stock      int      `json:"stock" validate:"gte=0"`
	Images     []string `json:"images" validate:"omitempty,dive,url"`
}

func (p productRequest) toInput() catalog.ProductInput {
	variants := make([]catalog.VariantInput, 0, len(p.Variants))
	for _, v := range p.Variants {
		in := catalog.VariantInput{
			SKU:        v.SKU,
			Color:      v.Color,
			Size:       v.Size,
			PriceCents: v.PriceCents,
			Stock:      v.Stock,
			Images:     v.Images,
		}
		if v.ID != nil {
			id := uuid.MustParse(*v.ID)
			in.ID = &id
		}
		variants = append(variants, in)
	}
	return catalog.ProductInput{
		SKU:            p.SKU,
		Title:          p.Title,
		Description:    p.Description,
		Category:       p.Category,
		PriceCents:     p.PriceCents,
		CompareAtCents: p.CompareAtCents,
		Stock:          p.Stock,
		Images:         p.Images,
		IsActive:       p.IsActive,
		Variants:       variants,
	}
}

// ListProducts serves the storefront catalog. Inactive products are hidden.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return listProducts(svc, logg, true)
}

// AdminListProducts includes inactive products.
func AdminListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return listProducts(svc, logg, false)
}

func listProducts(svc catalog.Service, logg *logger.Logger, activeOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		query := r.URL.Query()
		result, err := svc.ListProducts(r.Context(), catalog.ListInput{
			Category:   strings.TrimSpace(query.Get("category")),
			ActiveOnly: activeOnly,
			Cursor:     strings.TrimSpace(query.Get("cursor")),
			Limit:      limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return getProduct(svc, logg, true)
}

func AdminGetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return getProduct(svc, logg, false)
}

func getProduct(svc catalog.Service, logg *logger.Logger, activeOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		id, err := validators.ParseURLUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetProduct(r.Context(), id, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.CreateProduct(r.Context(), middleware.AdminIDPtrFromContext(r.Context()), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct replaces the product and reconciles its variants.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		id, err := validators.ParseURLUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.UpdateProduct(r.Context(), middleware.AdminIDPtrFromContext(r.Context()), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/activity"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// Service exposes storefront reads and admin product management.
type Service interface {
	ListProducts(ctx context.Context, input ListInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID, activeOnly bool) (*ProductDTO, error)
	CreateProduct(ctx context.Context, adminID *uuid.UUID, input ProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, adminID *uuid.UUID, id uuid.UUID, input ProductInput) (*ProductDTO, error)
}

// ListInput describes a product page request.
type ListInput struct {
	Category   string
	ActiveOnly bool
	Cursor     string
	Limit      int
}

// ProductInput is the full product body used by create and replace.
type ProductInput struct {
	SKU            string
	Title          string
	Description    *string
	Category       string
	PriceCents     int64
	CompareAtCents *int64
	Stock          int
	Images         []string
	IsActive       *bool
	Variants       []VariantInput
}

// VariantInput is one variant row. A nil ID creates a new variant.
type VariantInput struct {
	ID         *uuid.UUID
	SKU        string
	Color      *string
	Size       *string
	PriceCents int64
	Stock      int
	Images     []string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	activity activity.Recorder
}

// NewService constructs the catalog service.
func NewService(repo *Repository, dbClient *db.Client, recorder activity.Recorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if recorder == nil {
		recorder = activity.Nop{}
	}
	return &service{repo: repo, dbClient: dbClient, activity: recorder}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListInput) (*ProductListResult, error) {
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, err := s.repo.ListProducts(ctx, ListFilter{
		Category:   input.Category,
		ActiveOnly: input.ActiveOnly,
		Cursor:     cursor,
		Limit:      input.Limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	page, next := pagination.Trim(rows, input.Limit, func(p models.Product) pagination.Cursor {
		return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	})
	result := &ProductListResult{Products: make([]ProductDTO, 0, len(page)), NextCursor: next}
	for i := range page {
		result.Products = append(result.Products, NewProductDTO(&page[i]))
	}
	return result, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID, activeOnly bool) (*ProductDTO, error) {
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "product")
	}
	if activeOnly && !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	dto := NewProductDTO(product)
	return &dto, nil
}

func (s *service) CreateProduct(ctx context.Context, adminID *uuid.UUID, input ProductInput) (*ProductDTO, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	for _, v := range input.Variants {
		if v.ID != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "new products cannot reference existing variant ids")
		}
	}

	product := &models.Product{}
	applyProductInput(product, input)
	product.IsActive = true
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	for _, v := range input.Variants {
		product.Variants = append(product.Variants, newVariant(v))
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, mapWriteError(err, "create product")
	}

	s.activity.Record(ctx, activity.Entry{
		AdminID:    adminID,
		Action:     enums.ActivityProductCreated,
		EntityType: enums.EntityProduct,
		EntityID:   &product.ID,
		Summary:    fmt.Sprintf("Created product %s (%s)", product.Title, product.SKU),
	})
	return s.GetProduct(ctx, product.ID, false)
}

func (s *service) UpdateProduct(ctx context.Context, adminID *uuid.UUID, id uuid.UUID, input ProductInput) (*ProductDTO, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindProduct(ctx, id)
		if err != nil {
			return mapLookupError(err, "product")
		}
		existing := make(map[uuid.UUID]models.Variant, len(product.Variants))
		for _, v := range product.Variants {
			existing[v.ID] = v
		}

		applyProductInput(product, input)
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		if err := txRepo.SaveProduct(ctx, product); err != nil {
			return mapWriteError(err, "update product")
		}

		keep := make([]uuid.UUID, 0, len(input.Variants))
		for _, v := range input.Variants {
			if v.ID != nil {
				if _, ok := existing[*v.ID]; !ok {
					return pkgerrors.New(pkgerrors.CodeValidation, "variant does not belong to product").
						WithDetails(map[string]any{"variantId": v.ID.String()})
				}
				keep = append(keep, *v.ID)
			}
		}
		if err := txRepo.DeleteVariantsExcept(ctx, product.ID, keep); err != nil {
			return mapWriteError(err, "delete variants")
		}

		for _, v := range input.Variants {
			if v.ID == nil {
				row := newVariant(v)
				row.ProductID = product.ID
				if err := txRepo.CreateVariant(ctx, &row); err != nil {
					return mapWriteError(err, "create variant")
				}
				continue
			}
			row := existing[*v.ID]
			row.SKU = strings.TrimSpace(v.SKU)
			row.Color = trimOptional(v.Color)
			row.Size = trimOptional(v.Size)
			row.PriceCents = v.PriceCents
			row.Stock = v.Stock
			row.Images = nonNil(v.Images)
			if err := txRepo.SaveVariant(ctx, &row); err != nil {
				return mapWriteError(err, "update variant")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	s.activity.Record(ctx, activity.Entry{
		AdminID:    adminID,
		Action:     enums.ActivityProductUpdated,
		EntityType: enums.EntityProduct,
		EntityID:   &id,
		Summary:    fmt.Sprintf("Updated product %s", strings.TrimSpace(input.Title)),
	})
	return s.GetProduct(ctx, id, false)
}

func validateInput(input ProductInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.SKU) == "" {
		details["sku"] = "is required"
	}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		details["category"] = "is required"
	}
	if input.PriceCents < 0 {
		details["priceCents"] = "must be at least 0"
	}
	if input.CompareAtCents != nil && *input.CompareAtCents < 0 {
		details["compareAtCents"] = "must be at least 0"
	}
	if input.Stock < 0 {
		details["stock"] = "must be at least 0"
	}

	seen := map[string]struct{}{strings.ToLower(strings.TrimSpace(input.SKU)): {}}
	for i, v := range input.Variants {
		prefix := fmt.Sprintf("variants[%d]", i)
		sku := strings.ToLower(strings.TrimSpace(v.SKU))
		if sku == "" {
			details[prefix+".sku"] = "is required"
		} else if _, dup := seen[sku]; dup {
			details[prefix+".sku"] = "must be unique"
		}
		seen[sku] = struct{}{}
		if v.PriceCents < 0 {
			details[prefix+".priceCents"] = "must be at least 0"
		}
		if v.Stock < 0 {
			details[prefix+".stock"] = "must be at least 0"
		}
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func applyProductInput(product *models.Product, input ProductInput) {
	product.SKU = strings.TrimSpace(input.SKU)
	product.Title = strings.TrimSpace(input.Title)
	product.Description = trimOptional(input.Description)
	product.Category = strings.TrimSpace(input.Category)
	product.PriceCents = input.PriceCents
	product.CompareAtCents = input.CompareAtCents
	product.Stock = input.Stock
	product.Images = nonNil(input.Images)
}

func newVariant(v VariantInput) models.Variant {
	return models.Variant{
		SKU:        strings.TrimSpace(v.SKU),
		Color:      trimOptional(v.Color),
		Size:       trimOptional(v.Size),
		PriceCents: v.PriceCents,
		Stock:      v.Stock,
		Images:     nonNil(v.Images),
	}
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapLookupError(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "%s not found", entity)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}

func mapWriteError(err error, op string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}

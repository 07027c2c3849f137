package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// ListFilter narrows product listings.
type ListFilter struct {
	Category   string
	ActiveOnly bool
	Cursor     *pagination.Cursor
	Limit      int
}

// Repository persists products and their variants.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func preloadVariants(db *gorm.DB) *gorm.DB {
	return db.Order("variants.created_at ASC").Order("variants.id ASC")
}

// CreateProduct inserts the product together with its variants.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// SaveProduct writes the product columns only; variants are synced separately.
func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

// SaveVariant updates one existing variant row.
func (r *Repository) SaveVariant(ctx context.Context, variant *models.Variant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

// CreateVariant inserts a new variant row.
func (r *Repository) CreateVariant(ctx context.Context, variant *models.Variant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

// DeleteVariantsExcept removes the product's variants whose ids are not in keep.
func (r *Repository) DeleteVariantsExcept(ctx context.Context, productID uuid.UUID, keep []uuid.UUID) error {
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&models.Variant{}).Error
}

// FindProduct loads a product with its variants.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Variants", preloadVariants).
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns one keyset page (plus a lookahead row), newest first.
func (r *Repository) ListProducts(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Preload("Variants", preloadVariants)
	if filter.ActiveOnly {
		query = query.Where("products.is_active = ?", true)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("LOWER(products.category) = ?", strings.ToLower(category))
	}
	query = pagination.Apply(query, "products", filter.Cursor, filter.Limit)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindVariantsByIDs loads variants in no particular order.
func (r *Repository) FindVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Variant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var variants []models.Variant
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// FindProductsByIDs loads products without variants.
func (r *Repository) FindProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// DecrementVariantStock subtracts qty only while enough stock remains. It
// reports false when the row was missing or had fewer than qty units.
func (r *Repository) DecrementVariantStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	return r.decrement(ctx, &models.Variant{}, id, qty)
}

// DecrementProductStock is DecrementVariantStock for variant-less products.
func (r *Repository) DecrementProductStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	return r.decrement(ctx, &models.Product{}, id, qty)
}

func (r *Repository) decrement(ctx context.Context, model any, id uuid.UUID, qty int) (bool, error) {
	if qty <= 0 {
		return false, nil
	}
	res := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumns(map[string]any{
			"stock":      gorm.Expr("stock - ?", qty),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

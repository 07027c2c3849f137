package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

func strPtr(v string) *string { return &v }

func seedProduct(t *testing.T, conn *gorm.DB, sku string, stock int, variants ...models.Variant) *models.Product {
	t.Helper()
	product := &models.Product{
		SKU:        sku,
		Title:      "Lawn Kurta " + sku,
		Category:   "Women",
		PriceCents: 5000,
		Stock:      stock,
		IsActive:   true,
		Variants:   variants,
	}
	require.NoError(t, NewRepository(conn).CreateProduct(context.Background(), product))
	return product
}

func TestDecrementVariantStockIsConditional(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "KRT-1", 0, models.Variant{SKU: "KRT-1-RED-M", Color: strPtr("Red"), Size: strPtr("M"), PriceCents: 5000, Stock: 3})
	variantID := product.Variants[0].ID

	ok, err := repo.DecrementVariantStock(ctx, variantID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementVariantStock(ctx, variantID, 2)
	require.NoError(t, err)
	assert.False(t, ok, "second decrement must not oversell")

	variants, err := repo.FindVariantsByIDs(ctx, []uuid.UUID{variantID})
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, 1, variants[0].Stock)

	ok, err = repo.DecrementVariantStock(ctx, uuid.New(), 1)
	require.NoError(t, err)
	assert.False(t, ok, "missing variant never reports success")
}

func TestDecrementProductStock(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "SCARF-1", 1)

	ok, err := repo.DecrementProductStock(ctx, product.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementProductStock(ctx, product.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DecrementProductStock(ctx, product.ID, 0)
	require.NoError(t, err)
	assert.False(t, ok, "non-positive quantities are rejected")
}

func TestListProductsFiltersAndPages(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seedProduct(t, conn, "A", 1)
	seedProduct(t, conn, "B", 1)
	hidden := seedProduct(t, conn, "C", 1)
	require.NoError(t, conn.Model(hidden).Update("is_active", false).Error)

	rows, err := repo.ListProducts(ctx, ListFilter{ActiveOnly: true, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	all, err := repo.ListProducts(ctx, ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := repo.ListProducts(ctx, ListFilter{Category: "men", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, none)

	women, err := repo.ListProducts(ctx, ListFilter{Category: "WOMEN", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, women, 3)
}

func TestFindProductPreloadsVariants(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)

	product := seedProduct(t, conn, "P", 0,
		models.Variant{SKU: "P-S", PriceCents: 100, Stock: 1},
		models.Variant{SKU: "P-M", PriceCents: 100, Stock: 2},
	)

	found, err := repo.FindProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, found.Variants, 2)
	assert.Equal(t, product.ID, found.Variants[0].ProductID)

	_, err = repo.FindProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

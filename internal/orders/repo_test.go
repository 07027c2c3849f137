package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

func seedCustomer(t *testing.T, conn *gorm.DB, name, phone string) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: name, Phone: phone, Email: "x@y.pk", Address: "addr", TotalOrders: 1, Tags: []string{"New"}}
	require.NoError(t, conn.Create(customer).Error)
	return customer
}

func seedOrder(t *testing.T, repo Repository, customer *models.Customer, status enums.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		CustomerID:    customer.ID,
		Items:         []models.OrderItem{{ProductID: customer.ID, SKU: "SKU", Title: "Item", UnitPriceCents: 100, Qty: 1, LineTotalCents: 100}},
		SubtotalCents: 100,
		TotalCents:    100,
		Status:        status,
		PaymentMethod: enums.PaymentMethodCOD,
		CreatedAt:     createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestRepositoryListFiltersAndPages(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	ayesha := seedCustomer(t, conn, "Ayesha Khan", "+923001111111")
	bilal := seedCustomer(t, conn, "Bilal", "+923002222222")
	base := time.Now().UTC().Add(-time.Hour)

	first := seedOrder(t, repo, ayesha, enums.OrderStatusPending, base)
	second := seedOrder(t, repo, bilal, enums.OrderStatusShipped, base.Add(time.Minute))
	third := seedOrder(t, repo, ayesha, enums.OrderStatusPending, base.Add(2*time.Minute))

	all, err := repo.List(ctx, ListFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID, "newest first")
	require.NotNil(t, all[0].Customer)
	assert.Equal(t, "Ayesha Khan", all[0].Customer.Name)

	pending := enums.OrderStatusPending
	byStatus, err := repo.List(ctx, ListFilter{Status: &pending, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byQuery, err := repo.List(ctx, ListFilter{Query: "bil", Limit: 10})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, second.ID, byQuery[0].ID)

	byPhone, err := repo.List(ctx, ListFilter{Query: "1111", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byPhone, 2)

	byCustomer, err := repo.List(ctx, ListFilter{CustomerID: &bilal.ID, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 1)

	cursor := &pagination.Cursor{CreatedAt: second.CreatedAt, ID: second.ID}
	older, err := repo.List(ctx, ListFilter{Cursor: cursor, Limit: 10})
	require.NoError(t, err)
	require.Len(t, older, 1)
	assert.Equal(t, first.ID, older[0].ID)
}

func TestRepositoryRoundTripsItemsSnapshot(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	customer := seedCustomer(t, conn, "C", "+920000")
	order := seedOrder(t, repo, customer, enums.OrderStatusPending, time.Now().UTC())

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "SKU", found.Items[0].SKU)
	assert.Equal(t, int64(100), found.Items[0].LineTotalCents)
	assert.Equal(t, enums.PaymentMethodCOD, found.PaymentMethod)
	require.NotNil(t, found.Customer)

	found.Status = enums.OrderStatusConfirmed
	require.NoError(t, repo.Save(context.Background(), found))
	again, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, again.Status)
}

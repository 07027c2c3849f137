package orders

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// ListFilter narrows the admin order list.
type ListFilter struct {
	Status     *enums.OrderStatus
	CustomerID *uuid.UUID
	Query      string
	Cursor     *pagination.Cursor
	Limit      int
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Customer").First(&order, "orders.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Customer")
	if filter.Status != nil {
		query = query.Where("orders.status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("orders.customer_id = ?", *filter.CustomerID)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.
			Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("customers.phone LIKE ? OR LOWER(customers.name) LIKE ?", like, like)
	}
	query = pagination.Apply(query, "orders", filter.Cursor, filter.Limit)

	var rows []models.Order
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(order).Error
}

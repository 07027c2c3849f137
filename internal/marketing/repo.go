package marketing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists one kind of positioned content row.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// List returns rows ordered by position, oldest first on ties.
func (r *Repository[T]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	query := r.db.WithContext(ctx).Order("position ASC").Order("created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository[T]) Find(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository[T]) Create(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *Repository[T]) Save(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// Delete removes the row and reports whether it existed.
func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

package activity

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository persists admin activity rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to a GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create appends one activity row.
func (r *Repository) Create(ctx context.Context, entry *models.AdminActivity) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns the newest rows first, optionally only those created after since.
func (r *Repository) List(ctx context.Context, since *time.Time, limit int) ([]models.AdminActivity, error) {
	query := r.db.WithContext(ctx).Model(&models.AdminActivity{})
	if since != nil {
		query = query.Where("created_at > ?", since.UTC())
	}
	var rows []models.AdminActivity
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteBefore purges rows created before cutoff.
func (r *Repository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff.UTC()).Delete(&models.AdminActivity{})
	return result.RowsAffected, result.Error
}

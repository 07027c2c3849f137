package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// Repository exposes persistence helpers for admin notifications.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, notification *models.AdminNotification) error
	List(ctx context.Context, params listNotificationsParams) ([]models.AdminNotification, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID, now time.Time) (notificationMarkResult, error)
	MarkAllRead(ctx context.Context, now time.Time) (int64, error)
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a notifications repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listNotificationsParams struct {
	Limit      int
	Cursor     *pagination.Cursor
	UnreadOnly bool
}

type notificationMarkResult struct {
	Updated bool
	Found   bool
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, notification *models.AdminNotification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// List returns one page plus a lookahead row, newest first.
func (r *repositoryImpl) List(ctx context.Context, params listNotificationsParams) ([]models.AdminNotification, error) {
	query := r.db.WithContext(ctx).Model(&models.AdminNotification{})
	if params.UnreadOnly {
		query = query.Where("read_at IS NULL")
	}
	query = pagination.Apply(query, "admin_notifications", params.Cursor, params.Limit)

	var rows []models.AdminNotification
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AdminNotification{}).Where("read_at IS NULL").Count(&count).Error
	return count, err
}

func (r *repositoryImpl) MarkRead(ctx context.Context, notificationID uuid.UUID, now time.Time) (notificationMarkResult, error) {
	result := r.db.WithContext(ctx).
		Model(&models.AdminNotification{}).
		Where("id = ? AND read_at IS NULL", notificationID).
		UpdateColumn("read_at", now)
	if result.Error != nil {
		return notificationMarkResult{}, result.Error
	}

	mark := notificationMarkResult{Updated: result.RowsAffected > 0}
	if mark.Updated {
		mark.Found = true
		return mark, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AdminNotification{}).
		Where("id = ?", notificationID).
		Count(&count).Error; err != nil {
		return notificationMarkResult{}, err
	}
	mark.Found = count > 0
	return mark, nil
}

func (r *repositoryImpl) MarkAllRead(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.AdminNotification{}).
		Where("read_at IS NULL").
		UpdateColumn("read_at", now)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteReadBefore purges notifications read before cutoff. Unread rows are kept
// regardless of age.
func (r *repositoryImpl) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("read_at IS NOT NULL AND read_at < ?", cutoff.UTC()).
		Delete(&models.AdminNotification{})
	return result.RowsAffected, result.Error
}

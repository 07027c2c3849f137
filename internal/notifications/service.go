package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// Service defines the persisted notification log operations.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
}

type service struct {
	repo Repository
}

// ListParams configures pagination for notifications.
type ListParams struct {
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// NotificationDTO is one entry of the admin notification log.
type NotificationDTO struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Link      *string    `json:"link,omitempty"`
	OrderID   *uuid.UUID `json:"orderId,omitempty"`
	VariantID *uuid.UUID `json:"variantId,omitempty"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items       []NotificationDTO `json:"items"`
	NextCursor  string            `json:"nextCursor,omitempty"`
	UnreadCount int64             `json:"unreadCount"`
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, err := s.repo.List(ctx, listNotificationsParams{
		Limit:      params.Limit,
		Cursor:     cursor,
		UnreadOnly: params.UnreadOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}

	page, next := pagination.Trim(rows, params.Limit, func(n models.AdminNotification) pagination.Cursor {
		return pagination.Cursor{CreatedAt: n.CreatedAt, ID: n.ID}
	})
	items := make([]NotificationDTO, 0, len(page))
	for _, row := range page {
		items = append(items, toDTO(row))
	}
	return &ListResult{Items: items, NextCursor: next, UnreadCount: unread}, nil
}

func (s *service) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	result, err := s.repo.MarkRead(ctx, notificationID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context) (int64, error) {
	count, err := s.repo.MarkAllRead(ctx, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}

func toDTO(row models.AdminNotification) NotificationDTO {
	return NotificationDTO{
		ID:        row.ID,
		Type:      string(row.Type),
		Title:     row.Title,
		Message:   row.Message,
		Link:      row.Link,
		OrderID:   row.OrderID,
		VariantID: row.VariantID,
		Read:      row.ReadAt != nil,
		ReadAt:    row.ReadAt,
		CreatedAt: row.CreatedAt,
	}
}

package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/activity"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

// Service exposes admin order management.
type Service interface {
	List(ctx context.Context, input ListInput) (*OrderList, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	Update(ctx context.Context, adminID *uuid.UUID, id uuid.UUID, input UpdateInput) (*OrderDTO, error)
}

// ListInput carries the raw query parameters of the admin list.
type ListInput struct {
	Status     string
	CustomerID *uuid.UUID
	Query      string
	Cursor     string
	Limit      int
}

// UpdateInput is the PATCH body. Nil fields are left untouched.
type UpdateInput struct {
	Status       *string
	AdminNotes   *string
	RefundReason *string
}

type service struct {
	repo     Repository
	activity activity.Recorder
}

// NewService constructs the admin orders service.
func NewService(repo Repository, recorder activity.Recorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if recorder == nil {
		recorder = activity.Nop{}
	}
	return &service{repo: repo, activity: recorder}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*OrderList, error) {
	filter := ListFilter{CustomerID: input.CustomerID, Query: input.Query, Limit: input.Limit}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		status, err := enums.ParseOrderStatus(raw)
		if err != nil {
			return nil, invalidStatus(raw)
		}
		filter.Status = &status
	}
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	filter.Cursor = cursor

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	page, next := pagination.Trim(rows, input.Limit, func(o models.Order) pagination.Cursor {
		return pagination.Cursor{CreatedAt: o.CreatedAt, ID: o.ID}
	})

	list := &OrderList{Orders: make([]OrderDTO, 0, len(page)), NextCursor: next}
	for i := range page {
		list.Orders = append(list.Orders, NewOrderDTO(&page[i]))
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewOrderDTO(order)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, adminID *uuid.UUID, id uuid.UUID, input UpdateInput) (*OrderDTO, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	next := order.Status
	if input.Status != nil {
		parsed, err := enums.ParseOrderStatus(*input.Status)
		if err != nil {
			return nil, invalidStatus(*input.Status)
		}
		next = parsed
	}
	statusChanged := next != order.Status

	notesChanged := false
	if input.AdminNotes != nil {
		notes := optionalText(*input.AdminNotes)
		if !equalText(notes, order.AdminNotes) {
			order.AdminNotes = notes
			notesChanged = true
		}
	}
	if input.RefundReason != nil {
		if reason := optionalText(*input.RefundReason); reason != nil && !equalText(reason, order.RefundReason) {
			order.RefundReason = reason
			notesChanged = true
		}
	}

	if statusChanged && next == enums.OrderStatusRefunded && order.RefundReason == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "refund reason is required").
			WithDetails(map[string]string{"refundReason": "is required when status is refunded"})
	}

	if !statusChanged && !notesChanged {
		dto := NewOrderDTO(order)
		return &dto, nil
	}

	previous := order.Status
	order.Status = next
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	if statusChanged {
		s.activity.Record(ctx, activity.Entry{
			AdminID:    adminID,
			Action:     enums.ActivityOrderStatusChanged,
			EntityType: enums.EntityOrder,
			EntityID:   &order.ID,
			Summary:    fmt.Sprintf("Order %s moved from %s to %s", Number(order.ID), previous, next),
		})
	}
	if notesChanged {
		s.activity.Record(ctx, activity.Entry{
			AdminID:    adminID,
			Action:     enums.ActivityOrderNotesUpdated,
			EntityType: enums.EntityOrder,
			EntityID:   &order.ID,
			Summary:    fmt.Sprintf("Order %s notes updated", Number(order.ID)),
		})
	}

	dto := NewOrderDTO(order)
	return &dto, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func invalidStatus(raw string) error {
	allowed := make([]string, 0, len(enums.OrderStatuses()))
	for _, status := range enums.OrderStatuses() {
		allowed = append(allowed, string(status))
	}
	return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", raw).
		WithDetails(map[string]any{"status": "must be one of " + strings.Join(allowed, ", ")})
}

func optionalText(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func equalText(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

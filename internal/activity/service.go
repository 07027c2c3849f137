package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Entry describes one admin-visible event.
type Entry struct {
	AdminID    *uuid.UUID
	Action     enums.ActivityAction
	EntityType enums.ActivityEntity
	EntityID   *uuid.UUID
	Summary    string
}

// Recorder appends activity rows. Failures are logged, never returned.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// Service owns the admin activity feed.
type Service interface {
	Recorder
	List(ctx context.Context, input ListInput) ([]ActivityDTO, error)
}

// ListInput filters the feed.
type ListInput struct {
	Since *time.Time
	Limit int
}

// ActivityDTO is the feed row returned to the back-office.
type ActivityDTO struct {
	ID         uuid.UUID  `json:"id"`
	AdminID    *uuid.UUID `json:"adminId,omitempty"`
	Action     string     `json:"action"`
	EntityType string     `json:"entityType"`
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	Summary    string     `json:"summary"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type activityRepository interface {
	Create(ctx context.Context, entry *models.AdminActivity) error
	List(ctx context.Context, since *time.Time, limit int) ([]models.AdminActivity, error)
}

type service struct {
	repo activityRepository
	logg *logger.Logger
}

// NewService wires the activity feed.
func NewService(repo activityRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Record(ctx context.Context, entry Entry) {
	row := &models.AdminActivity{
		AdminID:    entry.AdminID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Summary:    strings.TrimSpace(entry.Summary),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		fields := map[string]any{"action": string(entry.Action), "entity_type": string(entry.EntityType)}
		s.logg.WarnErr(s.logg.WithFields(ctx, fields), "activity.record failed", err)
	}
}

func (s *service) List(ctx context.Context, input ListInput) ([]ActivityDTO, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	rows, err := s.repo.List(ctx, input.Since, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list activity")
	}
	out := make([]ActivityDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ActivityDTO{
			ID:         row.ID,
			AdminID:    row.AdminID,
			Action:     string(row.Action),
			EntityType: string(row.EntityType),
			EntityID:   row.EntityID,
			Summary:    row.Summary,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Record(context.Context, Entry) {}

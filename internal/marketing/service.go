package marketing

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
)

// Service manages one kind of storefront content.
type Service interface {
	ListActive(ctx context.Context) ([]ItemDTO, error)
	ListAll(ctx context.Context) ([]ItemDTO, error)
	Create(ctx context.Context, adminID *uuid.UUID, input ItemInput) (*ItemDTO, error)
	Update(ctx context.Context, adminID *uuid.UUID, id uuid.UUID, input ItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, adminID *uuid.UUID, id uuid.UUID) error
}

type kind[T any] struct {
	label  string
	entity enums.ActivityEntity
	toDTO  func(*T) ItemDTO
	apply  func(*T, ItemInput)
}

type service[T any] struct {
	repo     *Repository[T]
	kind     kind[T]
	activity activity.Recorder
}

// NewHeroSlides serves the homepage hero slides.
func NewHeroSlides(db *gorm.DB, recorder activity.Recorder) (Service, error) {
	return newService(db, recorder, kind[models.HeroSlide]{
		label:  "hero slide",
		entity: enums.EntityHeroSlide,
		toDTO:  heroSlideDTO,
		apply:  applyHeroSlide,
	})
}

// NewFashionCarousel serves the fashion carousel tiles.
func NewFashionCarousel(db *gorm.DB, recorder activity.Recorder) (Service, error) {
	return newService(db, recorder, kind[models.FashionCarouselItem]{
		label:  "carousel item",
		entity: enums.EntityFashionCarousel,
		toDTO:  carouselDTO,
		apply:  applyCarousel,
	})
}

// NewCollectionStacks serves the stacked collection cards.
func NewCollectionStacks(db *gorm.DB, recorder activity.Recorder) (Service, error) {
	return newService(db, recorder, kind[models.CollectionStack]{
		label:  "collection stack",
		entity: enums.EntityCollectionStack,
		toDTO:  collectionStackDTO,
		apply:  applyCollectionStack,
	})
}

func newService[T any](db *gorm.DB, recorder activity.Recorder, k kind[T]) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db required")
	}
	if recorder == nil {
		recorder = activity.Nop{}
	}
	return &service[T]{repo: NewRepository[T](db), kind: k, activity: recorder}, nil
}

func (s *service[T]) ListActive(ctx context.Context) ([]ItemDTO, error) {
	return s.list(ctx, true)
}

func (s *service[T]) ListAll(ctx context.Context) ([]ItemDTO, error) {
	return s.list(ctx, false)
}

func (s *service[T]) list(ctx context.Context, activeOnly bool) ([]ItemDTO, error) {
	rows, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list "+s.kind.label+"s")
	}
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, s.kind.toDTO(&rows[i]))
	}
	return out, nil
}

func (s *service[T]) Create(ctx context.Context, adminID *uuid.UUID, input ItemInput) (*ItemDTO, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}
	if input.IsActive == nil {
		active := true
		input.IsActive = &active
	}

	row := new(T)
	s.kind.apply(row, input)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create "+s.kind.label)
	}

	dto := s.kind.toDTO(row)
	s.record(ctx, adminID, enums.ActivityContentCreated, dto.ID, "Created %s %q", dto.Title)
	return &dto, nil
}

func (s *service[T]) Update(ctx context.Context, adminID *uuid.UUID, id uuid.UUID, input ItemInput) (*ItemDTO, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "%s not found", s.kind.label)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+s.kind.label)
	}
	s.kind.apply(row, input)
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update "+s.kind.label)
	}

	dto := s.kind.toDTO(row)
	s.record(ctx, adminID, enums.ActivityContentUpdated, dto.ID, "Updated %s %q", dto.Title)
	return &dto, nil
}

func (s *service[T]) Delete(ctx context.Context, adminID *uuid.UUID, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete "+s.kind.label)
	}
	if !found {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "%s not found", s.kind.label)
	}
	s.record(ctx, adminID, enums.ActivityContentDeleted, id, "Deleted %s %s", id.String())
	return nil
}

func (s *service[T]) record(ctx context.Context, adminID *uuid.UUID, action enums.ActivityAction, id uuid.UUID, format, subject string) {
	s.activity.Record(ctx, activity.Entry{
		AdminID:    adminID,
		Action:     action,
		EntityType: s.kind.entity,
		EntityID:   &id,
		Summary:    fmt.Sprintf(format, s.kind.label, subject),
	})
}

func normalize(in ItemInput) (ItemInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.Subtitle = trimOptional(in.Subtitle)
	in.LinkURL = trimOptional(in.LinkURL)
	in.Category = trimOptional(in.Category)

	details := map[string]string{}
	if in.Title == "" {
		details["title"] = "is required"
	}
	if in.ImageURL == "" {
		details["imageUrl"] = "is required"
	}
	if in.Position < 0 {
		details["position"] = "must be at least 0"
	}
	if len(details) > 0 {
		return in, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return in, nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

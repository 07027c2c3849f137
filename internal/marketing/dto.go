package marketing

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// ItemDTO is the shared API shape of slides, carousel tiles and collection stacks.
type ItemDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Subtitle  *string   `json:"subtitle,omitempty"`
	ImageURL  string    `json:"imageUrl"`
	LinkURL   *string   `json:"linkUrl,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ItemInput is the full body accepted by create and replace.
type ItemInput struct {
	Title    string
	Subtitle *string
	ImageURL string
	LinkURL  *string
	// Category only applies to collection stacks.
	Category *string
	Position int
	IsActive *bool
}

func heroSlideDTO(m *models.HeroSlide) ItemDTO {
	return ItemDTO{
		ID:        m.ID,
		Title:     m.Title,
		Subtitle:  m.Subtitle,
		ImageURL:  m.ImageURL,
		LinkURL:   m.LinkURL,
		Position:  m.Position,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func applyHeroSlide(m *models.HeroSlide, in ItemInput) {
	m.Title = in.Title
	m.Subtitle = in.Subtitle
	m.ImageURL = in.ImageURL
	m.LinkURL = in.LinkURL
	m.Position = in.Position
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
}

func carouselDTO(m *models.FashionCarouselItem) ItemDTO {
	return ItemDTO{
		ID:        m.ID,
		Title:     m.Title,
		Subtitle:  m.Subtitle,
		ImageURL:  m.ImageURL,
		LinkURL:   m.LinkURL,
		Position:  m.Position,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func applyCarousel(m *models.FashionCarouselItem, in ItemInput) {
	m.Title = in.Title
	m.Subtitle = in.Subtitle
	m.ImageURL = in.ImageURL
	m.LinkURL = in.LinkURL
	m.Position = in.Position
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
}

func collectionStackDTO(m *models.CollectionStack) ItemDTO {
	return ItemDTO{
		ID:        m.ID,
		Title:     m.Title,
		Subtitle:  m.Subtitle,
		ImageURL:  m.ImageURL,
		LinkURL:   m.LinkURL,
		Category:  m.Category,
		Position:  m.Position,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func applyCollectionStack(m *models.CollectionStack, in ItemInput) {
	m.Title = in.Title
	m.Subtitle = in.Subtitle
	m.ImageURL = in.ImageURL
	m.LinkURL = in.LinkURL
	m.Category = in.Category
	m.Position = in.Position
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HeroSlide is a homepage banner.
type HeroSlide struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Subtitle  *string   `gorm:"column:subtitle"`
	ImageURL  string    `gorm:"column:image_url;not null"`
	LinkURL   *string   `gorm:"column:link_url"`
	Position  int       `gorm:"column:position;not null;default:0"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (HeroSlide) TableName() string { return "hero_slides" }

func (h *HeroSlide) BeforeCreate(*gorm.DB) error {
	ensureID(&h.ID)
	return nil
}

// FashionCarouselItem is a tile in the fashion carousel.
type FashionCarouselItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Subtitle  *string   `gorm:"column:subtitle"`
	ImageURL  string    `gorm:"column:image_url;not null"`
	LinkURL   *string   `gorm:"column:link_url"`
	Position  int       `gorm:"column:position;not null;default:0"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (FashionCarouselItem) TableName() string { return "fashion_carousel_items" }

func (f *FashionCarouselItem) BeforeCreate(*gorm.DB) error {
	ensureID(&f.ID)
	return nil
}

// CollectionStack is a stacked collection card linking to a category.
type CollectionStack struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Subtitle  *string   `gorm:"column:subtitle"`
	ImageURL  string    `gorm:"column:image_url;not null"`
	Category  *string   `gorm:"column:category"`
	LinkURL   *string   `gorm:"column:link_url"`
	Position  int       `gorm:"column:position;not null;default:0"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CollectionStack) TableName() string { return "collection_stacks" }

func (c *CollectionStack) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

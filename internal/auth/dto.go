package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// LoginRequest captures the credentials sent to the admin login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminDTO is the public view of an operator.
type AdminDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// LoginResponse carries the bearer token for subsequent admin calls.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Admin       AdminDTO  `json:"admin"`
}

// CreateAdminInput bootstraps a new operator.
type CreateAdminInput struct {
	Email    string
	Name     string
	Password string
}

func NewAdminDTO(m *models.AdminUser) AdminDTO {
	return AdminDTO{
		ID:          m.ID,
		Email:       m.Email,
		Name:        m.Name,
		LastLoginAt: m.LastLoginAt,
	}
}

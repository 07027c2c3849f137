package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminTokenPayload captures the data available when minting an admin JWT.
type AdminTokenPayload struct {
	AdminID   uuid.UUID
	Email     string
	SessionID string
}

// AdminClaims is the typed JWT handed to the back-office. The registered
// jti carries the redis session id so logout can revoke it.
type AdminClaims struct {
	AdminID uuid.UUID `json:"admin_id"`
	Email   string    `json:"email"`
	jwt.RegisteredClaims
}

// SessionID returns the session identifier embedded as jti.
func (c *AdminClaims) SessionID() string {
	if c == nil {
		return ""
	}
	return c.ID
}

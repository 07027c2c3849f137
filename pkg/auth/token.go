package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/config"
)

var (
	jwtSigningMethod = jwt.SigningMethodHS256

	errMissingSecret = errors.New("jwt secret is required")
)

// MintAccessToken issues a signed admin JWT valid for cfg.TokenTTL().
func MintAccessToken(cfg config.JWTConfig, now time.Time, payload AdminTokenPayload) (string, error) {
	if cfg.Secret == "" {
		return "", errMissingSecret
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if payload.AdminID == uuid.Nil {
		return "", fmt.Errorf("admin id is required")
	}

	jti := strings.TrimSpace(payload.SessionID)
	if jti == "" {
		jti = uuid.NewString()
	}

	claims := AdminClaims{
		AdminID: payload.AdminID,
		Email:   strings.ToLower(strings.TrimSpace(payload.Email)),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   payload.AdminID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL())),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates signature, issuer and expiry and returns typed claims.
func ParseAccessToken(cfg config.JWTConfig, tokenString string) (*AdminClaims, error) {
	if cfg.Secret == "" {
		return nil, errMissingSecret
	}

	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if claims.AdminID == uuid.Nil || claims.ID == "" {
		return nil, fmt.Errorf("token missing admin id or session id")
	}
	return claims, nil
}

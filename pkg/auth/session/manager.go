package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	redisclient "github.com/angelmondragon/storefront-backend/pkg/redis"
)

// ErrSessionNotFound is returned when a session id has no live redis entry.
var ErrSessionNotFound = errors.New("admin session not found")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	HasSession(ctx context.Context, sessionID string) (bool, error)
}

// Manager stores admin sessions in Redis keyed by the JWT jti.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// NewManager constructs a session manager whose entries live as long as access tokens.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.TokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: client, keyer: client, ttl: ttl}, nil
}

// TTL reports how long new sessions live.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create opens a session for adminID and returns its identifier.
func (m *Manager) Create(ctx context.Context, adminID uuid.UUID) (string, error) {
	if adminID == uuid.Nil {
		return "", fmt.Errorf("admin id is required")
	}
	sessionID := NewSessionID()
	if err := m.store.Set(ctx, m.keyer.SessionKey(sessionID), adminID.String(), m.ttl); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Lookup returns the admin owning sessionID.
func (m *Manager) Lookup(ctx context.Context, sessionID string) (uuid.UUID, error) {
	if strings.TrimSpace(sessionID) == "" {
		return uuid.Nil, ErrSessionNotFound
	}
	raw, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return uuid.Nil, ErrSessionNotFound
		}
		return uuid.Nil, err
	}
	adminID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value: %w", err)
	}
	return adminID, nil
}

// HasSession reports whether sessionID is still active.
func (m *Manager) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if _, err := m.Lookup(ctx, sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke deletes the session; revoking an unknown id is not an error.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}

// NewSessionID produces the identifier used as JWT jti and Redis key suffix.
func NewSessionID() string {
	return uuid.NewString()
}

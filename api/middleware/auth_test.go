package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/auth/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthAllowsValidToken(t *testing.T) {
	adminID := uuid.New()
	token, sessionID := mintTestToken(t, adminID)

	var captured struct {
		admin   uuid.UUID
		session string
	}
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.admin, _ = AdminIDFromContext(r.Context())
		captured.session = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.admin != adminID {
		t.Fatalf("expected admin %s in context, got %s", adminID, captured.admin)
	}
	if captured.session != sessionID {
		t.Fatalf("expected session %s got %s", sessionID, captured.session)
	}
}

func TestAuthAcceptsQueryTokenForEventSource(t *testing.T) {
	token, _ := mintTestToken(t, uuid.New())
	handler := Auth(testJWT, stubSessionVerifier{ok: true}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/events?access_token="+token, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	token, _ := mintTestToken(t, uuid.New())
	handler := Auth(testJWT, stubSessionVerifier{ok: false}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSessionStoreFailure(t *testing.T) {
	token, _ := mintTestToken(t, uuid.New())
	handler := Auth(testJWT, stubSessionVerifier{err: errors.New("redis down")}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func mintTestToken(t *testing.T, adminID uuid.UUID) (string, string) {
	t.Helper()
	sessionID := session.NewSessionID()
	token, err := auth.MintAccessToken(testJWT, time.Now(), auth.AdminTokenPayload{
		AdminID:   adminID,
		Email:     "ops@example.com",
		SessionID: sessionID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token, sessionID
}

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s stubSessionVerifier) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.ok, nil
}

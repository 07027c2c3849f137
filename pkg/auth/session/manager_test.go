package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) SessionKey(sessionID string) string {
	return "sess:" + sessionID
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{store: store, keyer: store, ttl: time.Hour}
}

func TestManagerCreateLookupRevoke(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)
	ctx := context.Background()
	adminID := uuid.New()

	sessionID, err := manager.Create(ctx, adminID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if store.ttls[store.SessionKey(sessionID)] != time.Hour {
		t.Fatalf("expected session ttl of one hour")
	}

	got, err := manager.Lookup(ctx, sessionID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != adminID {
		t.Fatalf("expected admin %s, got %s", adminID, got)
	}

	ok, err := manager.HasSession(ctx, sessionID)
	if err != nil || !ok {
		t.Fatalf("expected active session, ok=%v err=%v", ok, err)
	}

	if err := manager.Revoke(ctx, sessionID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err = manager.HasSession(ctx, sessionID)
	if err != nil || ok {
		t.Fatalf("expected revoked session, ok=%v err=%v", ok, err)
	}
	if _, err := manager.Lookup(ctx, sessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerCreateRequiresAdmin(t *testing.T) {
	manager := newTestManager(newMockStore())
	if _, err := manager.Create(context.Background(), uuid.Nil); err == nil {
		t.Fatal("expected error for nil admin id")
	}
}

func TestManagerHasSessionPropagatesStoreErrors(t *testing.T) {
	store := newMockStore()
	store.err = errors.New("redis down")
	manager := newTestManager(store)
	if _, err := manager.HasSession(context.Background(), "abc"); err == nil {
		t.Fatal("expected store error to surface")
	}
}

func TestManagerLookupRejectsCorruptValue(t *testing.T) {
	store := newMockStore()
	store.data[store.SessionKey("bad")] = "not-a-uuid"
	manager := newTestManager(store)
	if _, err := manager.Lookup(context.Background(), "bad"); err == nil || errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected corrupt value error, got %v", err)
	}
}

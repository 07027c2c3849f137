package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/storefront-backend/pkg/config"
)

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	mock.ttl = 42 * time.Second
	client := &Client{store: mock}

	for i := 1; i <= 5; i++ {
		res, err := client.FixedWindowAllow(ctx, "checkout:10.0.0.1", 5, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Allowed || res.Count != int64(i) {
			t.Fatalf("hit %d: unexpected state %+v", i, res)
		}
	}
	if len(mock.expireCalls) != 1 {
		t.Fatalf("expected expire only on first increment, got %d", len(mock.expireCalls))
	}
	if mock.expireCalls[0].ttl != time.Minute {
		t.Fatalf("unexpected window ttl %v", mock.expireCalls[0].ttl)
	}

	res, err := client.FixedWindowAllow(ctx, "checkout:10.0.0.1", 5, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Allowed {
		t.Fatalf("sixth hit should be rejected")
	}
	if res.RetryAfter != 42*time.Second {
		t.Fatalf("expected retry after from ttl, got %v", res.RetryAfter)
	}
}

func TestFixedWindowRetryAfterFallsBackToWindow(t *testing.T) {
	mock := newMockCmdable()
	client := &Client{store: mock}
	ctx := context.Background()

	_, _ = client.FixedWindowAllow(ctx, "scope", 1, 30*time.Second)
	res, err := client.FixedWindowAllow(ctx, "scope", 1, 30*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Allowed || res.RetryAfter != 30*time.Second {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSetNXAndGet(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	ok, err := client.SetNX(ctx, "k", "v1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first SetNX should win: %v %v", ok, err)
	}
	ok, err = client.SetNX(ctx, "k", "v2", time.Minute)
	if err != nil || ok {
		t.Fatalf("second SetNX should lose: %v %v", ok, err)
	}
	got, err := client.Get(ctx, "k")
	if err != nil || got != "v1" {
		t.Fatalf("unexpected value %q %v", got, err)
	}
	if err := client.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := client.Get(ctx, "k"); err != redis.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("scope", "id"); got != "sf:idempotency:scope:id" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.RateLimitKey("checkout:1.2.3.4"); got != "sf:rate_limit:checkout:1.2.3.4" {
		t.Fatalf("unexpected rate limit key %s", got)
	}
	if got := client.SessionKey(" abc "); got != "sf:session:admin:abc" {
		t.Fatalf("unexpected session key %s", got)
	}
	if got := client.LockKey("maintenance:prod"); got != "sf:lock:maintenance:prod" {
		t.Fatalf("unexpected lock key %s", got)
	}
	if got := client.IdempotencyKey("", "id"); got != "sf:idempotency:id" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestUninitializedClient(t *testing.T) {
	var client *Client
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("nil client ping should fail")
	}
	if _, err := client.IncrWithTTL(context.Background(), "k", time.Second); err == nil {
		t.Fatal("nil client incr should fail")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:pw@cache:6380/2", PoolSize: 7})
	if err != nil {
		t.Fatalf("optionsFromConfig: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.DB != 2 || opts.Password != "pw" || opts.PoolSize != 7 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}
}

type mockCmdable struct {
	data        map[string]string
	incr        map[string]int64
	ttl         time.Duration
	expireCalls []expireCall
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		incr: make(map[string]int64),
		ttl:  -1,
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: expiration})
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) TTL(ctx context.Context, key string) *redis.DurationCmd {
	return redis.NewDurationResult(m.ttl, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

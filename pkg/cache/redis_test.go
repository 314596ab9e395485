package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis is an in-memory stand-in for the redis commands the cache uses.
type fakeRedis struct {
	mu     sync.Mutex
	data   map[string]string
	ttls   map[string]time.Duration
	failed error
	closed bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed != nil {
		return redis.NewStringResult("", f.failed)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed != nil {
		return redis.NewStatusResult("", f.failed)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	if f.failed != nil {
		return redis.NewStatusResult("", f.failed)
	}
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := newRedisCache(fake, "pf:")

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping error: %v", err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v; want clean miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("svg"), TTLArtifact); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, ok := fake.data["pf:k"]; !ok {
		t.Error("Set should write the prefixed key")
	}
	if fake.ttls["pf:k"] != TTLArtifact {
		t.Errorf("ttl = %v, want %v", fake.ttls["pf:k"], TTLArtifact)
	}

	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "svg" {
		t.Errorf("Get = %q, %v, %v; want svg hit", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key should miss")
	}

	if err := c.Close(); err != nil || !fake.closed {
		t.Errorf("Close = %v, closed %v", err, fake.closed)
	}
}

func TestRedisCacheErrors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	fake.failed = errors.New("connection refused")
	c := newRedisCache(fake, "")

	if err := c.Ping(ctx); !errors.Is(err, ErrBackend) {
		t.Errorf("Ping error = %v, want ErrBackend", err)
	}

	_, hit, err := c.Get(ctx, "k")
	if hit || !errors.Is(err, ErrBackend) || !IsRetryable(err) {
		t.Errorf("Get error = %v, want retryable ErrBackend", err)
	}

	if err := c.Set(ctx, "k", []byte("x"), 0); !IsRetryable(err) {
		t.Errorf("Set error = %v, want retryable", err)
	}
}

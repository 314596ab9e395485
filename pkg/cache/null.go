package cache

import (
	"context"
	"time"
)

// NullCache disables artifact caching: every lookup misses and writes are
// dropped. The pipeline runner uses it when no cache is configured and the
// CLI selects it for --no-cache.
//
// Like the real backends, every operation reports ctx.Err() once ctx is
// done.
type NullCache struct{}

func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return ctx.Err()
}

func (NullCache) Delete(ctx context.Context, key string) error {
	return ctx.Err()
}

func (NullCache) Close() error { return nil }

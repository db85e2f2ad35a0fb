package ports

import (
	"context"
	"time"
)

// Key/value cache storing JSON-encodable values.
type Cache interface {
	// Decode the cached value into dst; reports false on a miss.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

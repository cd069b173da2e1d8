package contracts

import (
	"context"
	"time"
)

// RedisRepository backs the upsert lock and the reference cache. Values are
// stored JSON-encoded.
type RedisRepository interface {
	// Get returns "" without error for a missing key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// CompareAndDelete removes key only while it still holds value. It
	// reports false when a different value is stored; a missing key counts
	// as removed.
	CompareAndDelete(ctx context.Context, key string, value interface{}) (bool, error)
}

package domain

import (
	"context"
	"time"
)

// ProductSource defines where catalog rows are loaded from. The source is
// the only component that performs I/O; ranking works on snapshots only.
type ProductSource interface {
	LoadProducts(ctx context.Context) ([]Product, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

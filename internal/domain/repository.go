package domain

import (
	"context"
	"time"
)

// ProductSource loads raw catalog rows from an external tabular source.
// Loading happens once at startup; the resulting products are immutable.
type ProductSource interface {
	Load(ctx context.Context) ([]Product, error)
}

// SearchCache defines the interface for caching search responses
type SearchCache interface {
	Get(ctx context.Context, key string) (*SearchResult, error)
	Set(ctx context.Context, key string, value *SearchResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

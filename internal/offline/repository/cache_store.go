package repository

import (
	"context"

	"sp500-screener/internal/offline/dto"
)

// CacheStore is a named store of responses keyed by request path.
// Match returns (nil, nil) on a miss.
type CacheStore interface {
	Name() string
	Match(ctx context.Context, key string) (*dto.CachedResponse, error)
	Put(ctx context.Context, key string, resp *dto.CachedResponse) error
	PutAll(ctx context.Context, entries map[string]*dto.CachedResponse) error
}

func storeKey(cacheName, key string) string {
	return cacheName + ":" + key
}

package repository

import (
	"context"

	"sp500-screener/internal/offline/dto"

	"github.com/patrickmn/go-cache"
)

type memoryCacheStore struct {
	name  string
	items *cache.Cache
}

// NewMemoryCacheStore creates a process-local store. Entries never expire.
func NewMemoryCacheStore(name string) CacheStore {
	return &memoryCacheStore{
		name:  name,
		items: cache.New(cache.NoExpiration, 0),
	}
}

func (s *memoryCacheStore) Name() string {
	return s.name
}

func (s *memoryCacheStore) Match(ctx context.Context, key string) (*dto.CachedResponse, error) {
	v, ok := s.items.Get(storeKey(s.name, key))
	if !ok {
		return nil, nil
	}
	return v.(*dto.CachedResponse).Clone(), nil
}

func (s *memoryCacheStore) Put(ctx context.Context, key string, resp *dto.CachedResponse) error {
	s.items.Set(storeKey(s.name, key), resp.Clone(), cache.NoExpiration)
	return nil
}

func (s *memoryCacheStore) PutAll(ctx context.Context, entries map[string]*dto.CachedResponse) error {
	for key, resp := range entries {
		s.items.Set(storeKey(s.name, key), resp.Clone(), cache.NoExpiration)
	}
	return nil
}

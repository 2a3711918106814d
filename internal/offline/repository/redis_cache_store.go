package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"sp500-screener/internal/offline/dto"
	redisPkg "sp500-screener/pkg/redis"

	"github.com/redis/go-redis/v9"
)

type redisCacheStore struct {
	name   string
	client *redisPkg.Client
}

// NewRedisCacheStore creates a store shared by every proxy pointing at the same Redis.
// Keys are prefixed with the cache name, so renaming the cache starts from empty.
func NewRedisCacheStore(name string, client *redisPkg.Client) CacheStore {
	return &redisCacheStore{name: name, client: client}
}

func (s *redisCacheStore) Name() string {
	return s.name
}

func (s *redisCacheStore) Match(ctx context.Context, key string) (*dto.CachedResponse, error) {
	raw, err := s.client.Get(ctx, storeKey(s.name, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var resp dto.CachedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return &resp, nil
}

func (s *redisCacheStore) Put(ctx context.Context, key string, resp *dto.CachedResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return s.client.Set(ctx, storeKey(s.name, key), raw, 0).Err()
}

// PutAll writes every entry in one MULTI/EXEC transaction.
func (s *redisCacheStore) PutAll(ctx context.Context, entries map[string]*dto.CachedResponse) error {
	encoded := make(map[string][]byte, len(entries))
	for key, resp := range entries {
		raw, err := json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
		}
		encoded[storeKey(s.name, key)] = raw
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, raw := range encoded {
			pipe.Set(ctx, key, raw, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entries: %w", err)
	}
	return nil
}

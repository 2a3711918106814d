package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sp500-screener/internal/offline/dto"
	"sp500-screener/internal/offline/repository"
	"sp500-screener/pkg/logger"
	"sp500-screener/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const persistTimeout = 10 * time.Second

// ErrNoCachedResponse means the origin could not be reached and nothing was cached.
var ErrNoCachedResponse = errors.New("network request failed and no cached response is available")

// WorkerService serves requests cache-first in front of the origin.
type WorkerService interface {
	Install(ctx context.Context) error
	Fetch(ctx context.Context, req dto.FetchRequest) (*dto.FetchResult, error)
}

// NewWorkerService creates a worker over store that pre-caches assets on Install.
func NewWorkerService(store repository.CacheStore, origin repository.OriginRepository, assets []string, log *logger.Logger) WorkerService {
	return &workerService{
		store:  store,
		origin: origin,
		assets: assets,
		logger: log,
	}
}

type workerService struct {
	store  repository.CacheStore
	origin repository.OriginRepository
	assets []string
	logger *logger.Logger
}

// Install fetches every asset and stores them together. If a single asset
// fails nothing is written and the error is returned.
func (s *workerService) Install(ctx context.Context) error {
	responses := make([]*dto.CachedResponse, len(s.assets))

	g, gctx := errgroup.WithContext(ctx)
	for i, asset := range s.assets {
		g.Go(func() error {
			resp, err := s.origin.Do(gctx, dto.FetchRequest{Method: http.MethodGet, Path: asset})
			if err != nil {
				return fmt.Errorf("failed to fetch asset %s: %w", asset, err)
			}
			if !resp.IsSuccess() {
				return fmt.Errorf("failed to fetch asset %s: status %d", asset, resp.StatusCode)
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("Install failed", logger.ErrorField(err), logger.StringField("cache", s.store.Name()))
		return err
	}

	entries := make(map[string]*dto.CachedResponse, len(s.assets))
	for i, asset := range s.assets {
		entries[asset] = responses[i]
	}
	if err := s.store.PutAll(ctx, entries); err != nil {
		s.logger.Error("Failed to populate cache", logger.ErrorField(err), logger.StringField("cache", s.store.Name()))
		return fmt.Errorf("failed to populate cache %s: %w", s.store.Name(), err)
	}

	s.logger.Info("Install complete", logger.StringField("cache", s.store.Name()), logger.IntField("assets", len(entries)))
	return nil
}

// Fetch answers from the cache when it can. A hit is served as-is with no
// background refresh. A miss goes to the origin; the live response is returned
// first and a copy is persisted afterwards.
func (s *workerService) Fetch(ctx context.Context, req dto.FetchRequest) (*dto.FetchResult, error) {
	if !isCacheable(req) {
		resp, err := s.origin.Do(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoCachedResponse, err)
		}
		return &dto.FetchResult{Response: resp}, nil
	}

	cached, err := s.store.Match(ctx, req.Path)
	if err != nil {
		// A broken store degrades to network-only.
		s.logger.Warn("Cache lookup failed", logger.ErrorField(err), logger.StringField("path", req.Path))
	}
	if cached != nil {
		return &dto.FetchResult{Response: cached, FromCache: true}, nil
	}

	resp, err := s.origin.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCachedResponse, err)
	}

	if resp.IsSuccess() {
		copied := resp.Clone()
		utils.GoSafe(func() {
			s.persist(req.Path, copied)
		})
	}
	return &dto.FetchResult{Response: resp}, nil
}

func (s *workerService) persist(key string, resp *dto.CachedResponse) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.store.Put(ctx, key, resp); err != nil {
		s.logger.Error("Failed to persist response", logger.ErrorField(err), logger.StringField("path", key))
		return
	}
	s.logger.Debug("Response persisted", logger.StringField("path", key), logger.StringField("cache", s.store.Name()))
}

func isCacheable(req dto.FetchRequest) bool {
	return req.Method == "" || req.Method == http.MethodGet
}

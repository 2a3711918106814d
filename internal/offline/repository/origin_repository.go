package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sp500-screener/internal/offline/config"
	"sp500-screener/internal/offline/dto"
	"sp500-screener/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// hopHeaders are connection-level headers that must not be replayed from a cache.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// OriginRepository performs live requests against the origin server.
type OriginRepository interface {
	Do(ctx context.Context, req dto.FetchRequest) (*dto.CachedResponse, error)
}

type originRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewOriginRepository creates an origin client. A non-positive
// MaxRequestPerMinute disables rate limiting.
func NewOriginRepository(cfg *config.Config, log *logger.Logger) OriginRepository {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.Offline.MaxRequestPerMinute > 0 {
		perRequest := time.Minute / time.Duration(cfg.Offline.MaxRequestPerMinute)
		limiter = rate.NewLimiter(rate.Every(perRequest), 1)
	}
	return &originRepository{
		cfg:            cfg,
		log:            log,
		httpClient:     &http.Client{},
		requestLimiter: limiter,
	}
}

// Do sends req to the origin and buffers the whole response.
// Any HTTP status is a successful fetch; only transport failures are errors.
func (r *originRepository) Do(ctx context.Context, req dto.FetchRequest) (*dto.CachedResponse, error) {
	url := strings.TrimRight(r.cfg.Offline.OriginURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", url),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create origin request", fields...)
		return nil, fmt.Errorf("failed to create origin request: %w", err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.WarnContext(ctx, "Origin request failed", fields...)
		return nil, fmt.Errorf("origin request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.WarnContext(ctx, "Failed to read origin response", fields...)
		return nil, fmt.Errorf("failed to read origin response: %w", err)
	}

	header := resp.Header.Clone()
	for _, h := range hopHeaders {
		header.Del(h)
	}

	return &dto.CachedResponse{
		StatusCode: resp.StatusCode,
		Header:     header,
		Body:       payload,
	}, nil
}

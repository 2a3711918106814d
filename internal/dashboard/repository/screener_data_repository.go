package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"sp500-screener/internal/dashboard/config"
	"sp500-screener/internal/entity"
	"sp500-screener/pkg/logger"

	"go.uber.org/zap"
)

// ScreenerDataRepository retrieves the published screener dataset.
type ScreenerDataRepository interface {
	Fetch(ctx context.Context) (*entity.ScreenerDataset, error)
}

type screenerDataRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

// NewScreenerDataRepository creates a repository reading from cfg.Data.SourceURL.
// A zero cfg.Data.Timeout leaves the request without a deadline.
func NewScreenerDataRepository(cfg *config.Config, log *logger.Logger) ScreenerDataRepository {
	return &screenerDataRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Data.Timeout,
		},
	}
}

// Fetch downloads and decodes the dataset, asking every cache on the way to step aside.
func (r *screenerDataRepository) Fetch(ctx context.Context) (*entity.ScreenerDataset, error) {
	url := r.cfg.Data.SourceURL
	fields := []zap.Field{zap.String("url", url)}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create screener data request", fields...)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to fetch screener data", fields...)
		return nil, fmt.Errorf("failed to fetch screener data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response for screener data", fields...)
		return nil, fmt.Errorf("unexpected status %d fetching screener data", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read screener data body", fields...)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var dataset entity.ScreenerDataset
	if err := json.Unmarshal(body, &dataset); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to decode screener data", fields...)
		return nil, fmt.Errorf("failed to decode screener data: %w", err)
	}
	if dataset.Rows == nil {
		dataset.Rows = []entity.ScreenerRow{}
	}

	r.log.DebugContext(ctx, "Screener data fetched", zap.String("url", url), zap.Int("rows", len(dataset.Rows)))
	return &dataset, nil
}

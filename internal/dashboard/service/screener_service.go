package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sp500-screener/internal/dashboard/config"
	"sp500-screener/internal/dashboard/dto"
	"sp500-screener/internal/dashboard/repository"
	"sp500-screener/internal/entity"
	"sp500-screener/pkg/logger"
	"sp500-screener/pkg/utils"
)

// ScreenerService owns the loaded dataset. Views are rendered from the
// current dataset and the caller's Params, so a view depends only on the
// request that asked for it.
type ScreenerService interface {
	Load(ctx context.Context) error
	Loaded() bool
	View(params Params) *dto.PageView
}

// NewScreenerService creates a screener service with an empty, not yet loaded dataset.
func NewScreenerService(cfg *config.Config, dataRepo repository.ScreenerDataRepository, log *logger.Logger) ScreenerService {
	return &screenerService{
		cfg:      cfg,
		dataRepo: dataRepo,
		logger:   log,
		rows:     []entity.ScreenerRow{},
		sectors:  []string{},
		status:   StatusNotLoaded,
	}
}

type screenerService struct {
	cfg      *config.Config
	dataRepo repository.ScreenerDataRepository
	logger   *logger.Logger

	mu       sync.RWMutex
	rows     []entity.ScreenerRow
	sectors  []string
	status   string
	loadedAt *time.Time
}

// Load fetches the dataset and replaces rows and sector options in one step.
// On failure the previous rows stay in place and only the status changes.
// Overlapping loads are not serialized: whichever resolves last wins.
func (s *screenerService) Load(ctx context.Context) error {
	dataset, err := s.dataRepo.Fetch(ctx)
	if err != nil {
		s.mu.Lock()
		s.status = StatusLoadFailed
		s.mu.Unlock()
		return fmt.Errorf("failed to load screener data: %w", err)
	}

	sectors := DeriveSectors(dataset.Rows)
	loadedAt := utils.TimeNowIn(s.cfg.App.TimeZone)

	s.mu.Lock()
	s.rows = dataset.Rows
	s.sectors = sectors
	s.status = updatedAtStatus(dataset.UpdatedAt)
	s.loadedAt = &loadedAt
	s.mu.Unlock()

	s.logger.Info("Screener data loaded",
		logger.IntField("rows", len(dataset.Rows)),
		logger.IntField("sectors", len(sectors)))
	return nil
}

// Loaded reports whether a load has succeeded at least once.
func (s *screenerService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt != nil
}

// View renders the current dataset with params.
func (s *screenerService) View(params Params) *dto.PageView {
	s.mu.RLock()
	state := State{
		Rows:     s.rows,
		Sectors:  s.sectors,
		Status:   s.status,
		LoadedAt: s.loadedAt,
		Params:   params,
	}
	s.mu.RUnlock()
	return BuildView(state)
}

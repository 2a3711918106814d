package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sp500-screener/internal/dashboard/config"
	"sp500-screener/internal/dashboard/dto"
	"sp500-screener/internal/entity"
	"sp500-screener/pkg/common"
	"sp500-screener/pkg/logger"
	"sp500-screener/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeDataRepository struct {
	mu      sync.Mutex
	dataset *entity.ScreenerDataset
	err     error
	calls   int
}

func (f *fakeDataRepository) Fetch(ctx context.Context) (*entity.ScreenerDataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.dataset, nil
}

func (f *fakeDataRepository) set(ds *entity.ScreenerDataset, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dataset, f.err = ds, err
}

func newTestService(repo *fakeDataRepository) ScreenerService {
	cfg := &config.Config{}
	cfg.App.TimeZone = "UTC"
	return NewScreenerService(cfg, repo, logger.NewNop())
}

func techEnergyDataset() *entity.ScreenerDataset {
	return &entity.ScreenerDataset{
		UpdatedAt: utils.ToPointer("2025-01-10 21:05"),
		Rows: []entity.ScreenerRow{
			row("AAA", "Alpha", "Tech", utils.ToPointer(50.0), utils.ToPointer(true)),
			row("BBB", "Beta", "Energy", utils.ToPointer(90.0), utils.ToPointer(false)),
			row("CCC", "Gamma", "Tech", utils.ToPointer(70.0), utils.ToPointer(true)),
		},
	}
}

func viewTickers(view *dto.PageView) []string {
	out := make([]string, 0, len(view.Rows))
	for _, r := range view.Rows {
		out = append(out, r.Ticker)
	}
	return out
}

func TestScreenerService_InitialView(t *testing.T) {
	svc := newTestService(&fakeDataRepository{})
	assert.False(t, svc.Loaded())

	view := svc.View(DefaultParams())
	assert.Equal(t, StatusNotLoaded, view.Status)
	assert.Nil(t, view.LoadedAt)
	assert.Empty(t, view.Rows)
	require.Len(t, view.Sectors, 1)
	assert.Equal(t, common.AllSectors, view.Sectors[0].Value)
}

func TestScreenerService_Load(t *testing.T) {
	repo := &fakeDataRepository{dataset: techEnergyDataset()}
	svc := newTestService(repo)

	require.NoError(t, svc.Load(context.Background()))
	assert.True(t, svc.Loaded())

	view := svc.View(DefaultParams())
	assert.Equal(t, "Updated: 2025-01-10 21:05", view.Status)
	assert.NotNil(t, view.LoadedAt)
	assert.Equal(t, []string{"BBB", "CCC", "AAA"}, viewTickers(view))
	assert.Equal(t, 3, view.TotalCount)

	var sectors []string
	for _, o := range view.Sectors {
		sectors = append(sectors, o.Value)
	}
	assert.Equal(t, []string{common.AllSectors, "Energy", "Tech"}, sectors)
}

func TestScreenerService_LoadWithoutUpdatedAt(t *testing.T) {
	repo := &fakeDataRepository{dataset: &entity.ScreenerDataset{Rows: []entity.ScreenerRow{}}}
	svc := newTestService(repo)

	require.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, "Updated: —", svc.View(DefaultParams()).Status)
}

func TestScreenerService_LoadFailureKeepsRows(t *testing.T) {
	repo := &fakeDataRepository{dataset: techEnergyDataset()}
	svc := newTestService(repo)
	require.NoError(t, svc.Load(context.Background()))

	repo.set(nil, errors.New("connection refused"))
	err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	view := svc.View(DefaultParams())
	assert.Equal(t, StatusLoadFailed, view.Status)
	assert.Len(t, view.Rows, 3)
	assert.True(t, svc.Loaded())
}

func TestScreenerService_LoadFailureBeforeFirstLoad(t *testing.T) {
	svc := newTestService(&fakeDataRepository{err: errors.New("boom")})
	require.Error(t, svc.Load(context.Background()))

	view := svc.View(DefaultParams())
	assert.Equal(t, StatusLoadFailed, view.Status)
	assert.Empty(t, view.Rows)
	assert.False(t, svc.Loaded())
}

func TestScreenerService_ReloadReplacesSectors(t *testing.T) {
	repo := &fakeDataRepository{dataset: techEnergyDataset()}
	svc := newTestService(repo)
	require.NoError(t, svc.Load(context.Background()))

	repo.set(&entity.ScreenerDataset{Rows: []entity.ScreenerRow{
		row("AAA", "Alpha", "Tech", utils.ToPointer(50.0), nil),
	}}, nil)
	require.NoError(t, svc.Load(context.Background()))

	view := svc.View(DefaultParams())
	require.Len(t, view.Sectors, 2)
	assert.Equal(t, "Tech", view.Sectors[1].Value)
	assert.Equal(t, []string{"AAA"}, viewTickers(view))
}

func TestScreenerService_ViewDependsOnlyOnParams(t *testing.T) {
	svc := newTestService(&fakeDataRepository{dataset: techEnergyDataset()})
	require.NoError(t, svc.Load(context.Background()))

	filtered := ApplyFilters(DefaultParams(), dto.FilterInput{Query: "a", Sector: "Tech", OnlyPass: true})
	filtered, err := ToggleSort(filtered, "ticker")
	require.NoError(t, err)

	view := svc.View(filtered)
	assert.Equal(t, []string{"CCC", "AAA"}, viewTickers(view))
	assert.Equal(t, "ticker", view.SortKey)
	assert.Equal(t, 3, view.TotalCount)

	assert.Equal(t, []string{"BBB", "CCC", "AAA"}, viewTickers(svc.View(DefaultParams())))
	assert.Equal(t, viewTickers(view), viewTickers(svc.View(filtered)))
}

func TestScreenerService_LoadFailureIsNotLoggedAgain(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := &config.Config{}
	svc := NewScreenerService(cfg, &fakeDataRepository{err: errors.New("boom")}, &logger.Logger{Logger: zap.New(core)})

	require.Error(t, svc.Load(context.Background()))
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len(), "the repository already logged the failure")
}

package service

import (
	"context"
	"fmt"

	"sp500-screener/pkg/logger"

	"github.com/robfig/cron/v3"
)

// RefreshScheduler reloads the dataset on a cron schedule.
type RefreshScheduler struct {
	cron   *cron.Cron
	svc    ScreenerService
	logger *logger.Logger
}

// NewRefreshScheduler validates expr (standard 5-field cron or a descriptor such as "@hourly").
func NewRefreshScheduler(expr string, svc ScreenerService, log *logger.Logger) (*RefreshScheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", expr, err)
	}

	s := &RefreshScheduler{
		cron:   cron.New(cron.WithParser(parser)),
		svc:    svc,
		logger: log,
	}
	s.cron.Schedule(schedule, cron.FuncJob(s.refresh))
	return s, nil
}

// Start runs the schedule until ctx is done.
func (s *RefreshScheduler) Start(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("Refresh scheduler started")
	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	s.logger.Info("Refresh scheduler stopping")
}

func (s *RefreshScheduler) refresh() {
	// The error is already logged and surfaced in the status text by Load.
	_ = s.svc.Load(context.Background())
}

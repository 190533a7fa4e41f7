package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/ledgerdesk/internal/clock"
	ledgerdomain "github.com/smallbiznis/ledgerdesk/internal/ledgerstore/domain"
	reconciliationdomain "github.com/smallbiznis/ledgerdesk/internal/reconciliation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler requires a reconciliation service, logger and clock")

type Params struct {
	fx.In

	Log               *zap.Logger
	Clock             clock.Clock
	ReconciliationSvc reconciliationdomain.Service
	Config            Config `optional:"true"`
}

// Scheduler keeps the reconciliation snapshot warm by re-running the refresh
// cycle on a fixed interval over a rolling issue-date window.
type Scheduler struct {
	log   *zap.Logger
	clock clock.Clock
	cfg   Config
	svc   reconciliationdomain.Service
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.ReconciliationSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:   p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		clock: p.Clock,
		cfg:   p.Config.withDefaults(),
		svc:   p.ReconciliationSvc,
	}, nil
}

// Window is the rolling issue-date range the loop refreshes: the last
// WindowDays full days up to the current instant.
func (s *Scheduler) Window() ledgerdomain.DateWindow {
	now := s.clock.Now()
	return ledgerdomain.DateWindow{
		From: now.AddDate(0, 0, -s.cfg.WindowDays),
		To:   now,
	}
}

// RunOnce executes one refresh cycle under the configured timeout.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	start := s.clock.Now()
	result, err := s.svc.Refresh(ctx, s.Window())
	if err != nil {
		return err
	}
	s.log.Info("scheduled refresh complete",
		zap.String("cycle_id", result.CycleID),
		zap.Int("titles", len(result.Titles)),
		zap.Duration("elapsed", s.clock.Now().Sub(start)),
	)
	return nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Warn("scheduled refresh failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Package worker hosts background loops that run beside the HTTP server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"doable/config"
	"doable/internal/delivery"
	"doable/internal/domain/lifecycle"
	"doable/internal/domain/repository"
	"doable/internal/infra/metrics"

	"go.uber.org/fx"
)

const defaultSweepInterval = time.Hour

// SweeperParams holds dependencies for the session sweeper, injected by Fx.
type SweeperParams struct {
	fx.In
	fx.Lifecycle

	Config      *config.Config
	Logger      *slog.Logger
	SessionRepo repository.SessionRepository
	Collector   *metrics.Collector
}

// sessionSweeper periodically purges expired sessions. Lookups already treat
// expired rows as dead, the sweep just keeps the table from growing forever.
type sessionSweeper struct {
	interval    time.Duration
	sessionRepo repository.SessionRepository
	collector   *metrics.Collector
	logger      *slog.Logger

	stop chan struct{}
	done chan struct{}
}

// NewSessionSweeper builds the sweeper delivery.
func NewSessionSweeper(params SweeperParams) (delivery.Delivery, error) {
	interval := defaultSweepInterval
	if params.Config != nil && params.Config.Session != nil && params.Config.Session.SweepInterval > 0 {
		interval = params.Config.Session.SweepInterval
	}

	sweeper := &sessionSweeper{
		interval:    interval,
		sessionRepo: params.SessionRepo,
		collector:   params.Collector,
		logger:      params.Logger,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStop: sweeper.stopHook,
	})

	return sweeper, nil
}

// Serve runs the sweep loop until stopped. One sweep happens immediately so
// a restart does not wait a full interval to clean up.
func (s *sessionSweeper) Serve(ctx context.Context) error {
	defer close(s.done)

	s.logger.Info("Starting session sweeper", slog.Duration("interval", s.interval))

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *sessionSweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	removed, err := s.sessionRepo.DeleteExpired(sweepCtx, time.Now())
	if err != nil {
		s.logger.Error("Failed to sweep expired sessions", slog.Any("error", err))

		return
	}

	if removed > 0 {
		s.collector.RecordSessionsSwept(removed)
		s.logger.Info("Swept expired sessions", slog.Int64("removed", removed))
	}
}

func (s *sessionSweeper) stopHook(ctx context.Context) error {
	s.logger.Info("Shutting down session sweeper")
	close(s.stop)

	select {
	case <-s.done:
	case <-ctx.Done():
	}

	return nil
}

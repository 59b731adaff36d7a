package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/stampcard/loyalty/internal/loyalty/store"
)

// RevokedKeyRetention is how long a revoked API key stays visible before
// housekeeping purges it.
const RevokedKeyRetention = 30 * 24 * time.Hour

// HousekeepingService periodically deactivates promotions whose window has
// passed and purges long-revoked API keys so the tables do not grow without
// bound.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop() to shut it
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the worker, blocking until any in-progress sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep performs one cleanup pass. Each step is independent; a failure in
// one won't stop the others.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()
	now := time.Now().UTC()
	s.Logger.Debug("starting housekeeping sweep")

	if n, err := s.Store.Promotions().DeactivateEndedPromotions(ctx, now); err != nil {
		s.Logger.Error("failed to deactivate ended promotions", "error", err)
	} else if n > 0 {
		s.Logger.Info("deactivated ended promotions", "count", n)
	}

	cutoff := now.Add(-RevokedKeyRetention)
	if n, err := s.Store.APIKeys().DeleteRevokedAPIKeysBefore(ctx, cutoff); err != nil {
		s.Logger.Error("failed to purge revoked api keys", "error", err)
	} else if n > 0 {
		s.Logger.Info("purged revoked api keys", "count", n)
	}

	s.Logger.Debug("housekeeping sweep completed")
}

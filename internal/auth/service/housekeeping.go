package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/lunamart/lunamart/internal/auth/store"
)

// HousekeepingService periodically cleans up stale database records to
// prevent unbounded growth of sessions and reset codes.
type HousekeepingService struct {
	Store      store.Store
	Logger     *slog.Logger
	Interval   time.Duration
	RefreshTTL time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, refreshTTL time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:      st,
		Logger:     logger,
		Interval:   interval,
		RefreshTTL: refreshTTL,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs the actual deletion of stale records.
// Each deletion is independent so a failure in one won't stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now()

	// Sessions older than the refresh TTL can never be refreshed again,
	// so their rows are dead weight.
	cutoff := now.Add(-s.RefreshTTL)
	if err := s.Store.Sessions().DeleteSessionsCreatedBefore(ctx, cutoff); err != nil {
		s.Logger.Error("failed to delete dead sessions", "error", err)
	} else {
		s.Logger.Debug("deleted dead sessions", "cutoff", cutoff)
	}

	if err := s.Store.Users().ClearExpiredResetOtps(ctx, now); err != nil {
		s.Logger.Error("failed to clear expired reset codes", "error", err)
	} else {
		s.Logger.Debug("cleared expired reset codes")
	}

	s.Logger.Info("housekeeping cleanup completed")
}

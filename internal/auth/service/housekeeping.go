package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
)

// HousekeepingService periodically evicts expired refresh records from token
// stores that have no native key expiry.
type HousekeepingService struct {
	Sweeper  store.ExpiredTokenSweeper
	Logger   *slog.Logger
	Interval time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(sweeper store.ExpiredTokenSweeper, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Sweeper:  sweeper,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress sweep has finished.
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
	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes every refresh record that has expired and returns how many
// were removed.
func (s *HousekeepingService) Sweep(ctx context.Context) int {
	n, err := s.Sweeper.DeleteExpired(ctx, s.Now())
	if err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", "error", err)
		return 0
	}
	s.Logger.Debug("housekeeping cleanup completed", "deleted", n)
	return n
}

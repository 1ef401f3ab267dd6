package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/trigger/internal/dashboard/store"
)

const (
	DefaultHousekeepingInterval = time.Hour
	DefaultSubmissionRetention  = 30 * 24 * time.Hour

	pruneTimeout = 30 * time.Second
)

// HousekeepingService prunes the submission history on an interval.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewHousekeepingService fills non-positive durations with the defaults.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = DefaultHousekeepingInterval
	}
	if retention <= 0 {
		retention = DefaultSubmissionRetention
	}

	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
	}
}

// Start prunes once immediately and then every Interval until Stop.
func (s *HousekeepingService) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
	s.Logger.Info("housekeeping started", "interval", s.Interval, "retention", s.Retention)
}

// Stop waits for an in-progress prune to finish. It is a no-op before Start.
func (s *HousekeepingService) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.Logger.Info("housekeeping stopped")
}

// PruneOnce deletes submissions older than Retention.
func (s *HousekeepingService) PruneOnce(ctx context.Context) (int64, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.Store.Submissions().PruneBefore(ctx, now().Add(-s.Retention))
}

func (s *HousekeepingService) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		s.prune(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *HousekeepingService) prune(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pruneTimeout)
	defer cancel()

	removed, err := s.PruneOnce(ctx)
	if err != nil {
		s.Logger.Error("failed to prune submissions", "error", err)
		return
	}
	if removed > 0 {
		s.Logger.Info("pruned submissions", "removed", removed)
	}
}

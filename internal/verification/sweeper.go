package verification

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper periodically deletes expired code rows. Without it, stale rows
// accumulate forever since a code is only removed when verified.
type Sweeper struct {
	service  *Service
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper builds a sweeper over the verification service.
func NewSweeper(service *Service, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{service: service, interval: interval, logger: logger}
}

// Run blocks, sweeping on the configured cadence until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.service.SweepExpired(ctx); err != nil {
				s.logger.Warn("verification sweep failed", "error", err)
			}
		}
	}
}

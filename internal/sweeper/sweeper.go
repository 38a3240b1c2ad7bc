// Package sweeper runs the retention policy: entities that stayed DELETED past
// the retention horizon are purged together with their bucket objects.
package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"estoquerapido/internal/bucket"
	"estoquerapido/internal/event"
	"estoquerapido/internal/model"
	"estoquerapido/internal/recyclebin"
)

const DefaultInterval = 24 * time.Hour

type Sweeper struct {
	purgers  []recyclebin.Purger
	store    bucket.Bucket
	bus      event.Bus
	interval time.Duration
	now      func() time.Time
	running  atomic.Bool
}

func New(purgers []recyclebin.Purger, store bucket.Bucket, bus event.Bus, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		purgers:  purgers,
		store:    store,
		bus:      bus,
		interval: interval,
		now:      time.Now,
	}
}

// Run ticks until the context is cancelled. Only one sweep executes at a
// time: a tick that fires while the previous sweep is still running is
// skipped.
func (s *Sweeper) Run(ctx context.Context) {
	slog.Info("retention sweeper started", "interval", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention sweeper stopped")
			return
		case <-ticker.C:
			if !s.running.CompareAndSwap(false, true) {
				slog.Warn("previous sweep still running, skipping tick")
				continue
			}
			if _, err := s.SweepOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("sweep failed", "error", err)
			}
			s.running.Store(false)
		}
	}
}

// SweepOnce purges every eligible entity, oldest deleted_at first within each
// kind. A failed bucket deletion keeps the record so the next tick retries
// it. Cancellation is honored between entities, never mid-entity.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	now := s.now().UTC()
	purged := 0

	for _, purger := range s.purgers {
		candidates, err := purger.ExpiredCandidates(ctx, now)
		if err != nil {
			slog.Error("listing purge candidates failed", "kind", purger.Kind(), "error", err)
			continue
		}

		for _, candidate := range candidates {
			if err := ctx.Err(); err != nil {
				return purged, err
			}
			if s.purgeOne(ctx, purger, candidate, now) {
				purged++
			}
		}
	}

	if s.bus != nil {
		s.bus.Publish(event.New(event.TypeDashboardRefreshed, map[string]int{"purged": purged}, ""))
	}
	if purged > 0 {
		slog.Info("sweep completed", "purged", purged)
	}
	return purged, nil
}

func (s *Sweeper) purgeOne(ctx context.Context, purger recyclebin.Purger, c recyclebin.Candidate, now time.Time) bool {
	if c.ObjectKey != "" && s.store != nil {
		if _, err := s.store.Delete(ctx, c.ObjectKey); err != nil {
			slog.Error("object deletion failed, keeping record for the next tick",
				"kind", purger.Kind(), "id", c.ID, "key", c.ObjectKey, "error", err)
			return false
		}
	}

	if err := purger.Purge(ctx, c.CompanyID, c.ID, now); err != nil {
		// A restore or another sweep got there first.
		if errors.Is(err, model.ErrNotEligibleForPurge) || errors.Is(err, model.ErrNotFound) {
			return false
		}
		slog.Error("purge failed", "kind", purger.Kind(), "id", c.ID, "error", err)
		return false
	}

	slog.Info("entity purged", "kind", purger.Kind(), "id", c.ID, "name", c.Name,
		"deleted_at", c.DeletedAt.Format(time.RFC3339))
	return true
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"pressroom/internal/logging"
	"pressroom/internal/repository"
	"pressroom/internal/storage"
)

// SweepResult summarizes one sweep run.
type SweepResult struct {
	Removed int
	Failed  int
}

// OrphanSweeper retries remote deletes for recorded orphans.
type OrphanSweeper struct {
	orphans repository.OrphanRepository
	store   storage.Storage
	batch   int
	timeout time.Duration
}

// NewOrphanSweeper creates a sweeper that handles up to batch orphans per run.
func NewOrphanSweeper(orphans repository.OrphanRepository, store storage.Storage, batch int) *OrphanSweeper {
	if batch <= 0 {
		batch = 50
	}
	return &OrphanSweeper{orphans: orphans, store: store, batch: batch, timeout: 2 * time.Minute}
}

// Sweep processes one batch. Rows are removed after a successful remote
// delete; failures bump the attempt counter.
func (s *OrphanSweeper) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	list, err := s.orphans.ListOldest(ctx, s.batch)
	if err != nil {
		return res, fmt.Errorf("list orphans: %w", err)
	}

	logger := logging.Component("sweeper")
	for _, o := range list {
		if err := s.store.Delete(ctx, o.PublicID); err != nil {
			res.Failed++
			if mErr := s.orphans.MarkFailed(ctx, o.ID, err.Error()); mErr != nil {
				logger.Error().Err(mErr).Str("orphan_id", o.ID).Msg("mark orphan failed")
			}
			continue
		}
		if err := s.orphans.Delete(ctx, o.ID); err != nil {
			logger.Error().Err(err).Str("orphan_id", o.ID).Msg("remove orphan row failed")
			continue
		}
		res.Removed++
	}

	if len(list) > 0 {
		logger.Info().
			Str("event", "orphan_sweep").
			Int("removed", res.Removed).
			Int("failed", res.Failed).
			Msg("orphan sweep finished")
	}
	return res, nil
}

// Schedule registers Sweep on a cron spec and starts the scheduler. An empty
// spec disables sweeping and returns a nil scheduler.
func (s *OrphanSweeper) Schedule(spec string) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}
	logger := logging.Component("sweeper")
	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(logger)),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			logger.Error().Err(err).Msg("orphan sweep failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule orphan sweep %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}

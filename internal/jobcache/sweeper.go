package jobcache

import (
	"context"

	"github.com/robfig/cron/v3"

	"careercompass-backend/internal/shared/storage/kv"
	"careercompass-backend/internal/shared/telemetry"
)

// Sweeper periodically purges expired entries from backends that cannot
// expire keys natively (the in-memory backend; Redis expires on its own).
type Sweeper struct {
	cron *cron.Cron
}

// StartSweeper schedules a purge on the given cron spec (e.g. "@every 10m").
// It returns nil when the backend expires entries natively and needs no sweep.
func StartSweeper(spec string, backend kv.Store) (*Sweeper, error) {
	sweepable, ok := backend.(kv.Sweepable)
	if !ok {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		purged := sweepable.PurgeExpired(context.Background())
		if purged > 0 {
			telemetry.Info("jobcache.sweep", map[string]any{"purged": purged})
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return &Sweeper{cron: c}, nil
}

// Stop halts the sweep schedule. Safe on a nil Sweeper.
func (s *Sweeper) Stop() {
	if s == nil {
		return
	}
	s.cron.Stop()
}

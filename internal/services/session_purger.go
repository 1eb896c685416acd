package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Purger removes sessions that expired before the reference time.
type Purger interface {
	Purge(reference time.Time) (int, error)
}

// SessionPurger periodically sweeps expired sessions out of stores that do
// not expire keys on their own.
type SessionPurger struct {
	store  Purger
	logger *zap.Logger
	cron   *cron.Cron
	now    func() time.Time
}

// EverySchedule renders interval as a cron "@every" spec, ten minutes when unset.
func EverySchedule(interval time.Duration) string {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}
	return fmt.Sprintf("@every %ds", int(interval.Seconds()))
}

// NewSessionPurger schedules sweeps on a seconds-enabled cron spec.
func NewSessionPurger(store Purger, schedule string, logger *zap.Logger) (*SessionPurger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sp := &SessionPurger{
		store:  store,
		logger: logger,
		cron:   cron.New(cron.WithSeconds()),
		now:    time.Now,
	}

	if _, err := sp.cron.AddFunc(schedule, func() {
		if _, err := sp.Sweep(); err != nil {
			sp.logger.Error("session purge failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule session purge %q: %w", schedule, err)
	}

	return sp, nil
}

// Start launches the cron scheduler.
func (sp *SessionPurger) Start() {
	if sp == nil || sp.cron == nil {
		return
	}
	sp.cron.Start()
	sp.logger.Info("session purger started")
}

// Stop waits for a running sweep to finish or ctx to expire.
func (sp *SessionPurger) Stop(ctx context.Context) error {
	if sp == nil || sp.cron == nil {
		return nil
	}
	stopCtx := sp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	sp.logger.Info("session purger stopped")
	return nil
}

// Sweep purges expired sessions once and reports how many were removed.
func (sp *SessionPurger) Sweep() (int, error) {
	if sp == nil || sp.store == nil {
		return 0, nil
	}
	removed, err := sp.store.Purge(sp.now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		sp.logger.Debug("expired sessions purged", zap.Int("count", removed))
	}
	return removed, nil
}

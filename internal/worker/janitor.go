package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/kitestore-next/internal/config"
	"github.com/kitestore-next/internal/logger"
	"github.com/kitestore-next/internal/photos"
	"github.com/kitestore-next/internal/wizard"

	"github.com/robfig/cron/v3"
)

const (
	defaultIdleTimeout   = 60 * time.Minute
	defaultSweepInterval = 10 * time.Minute
)

// Janitor periodically cancels idle admin dialogs and removes orphaned
// provisional photo directories.
type Janitor struct {
	sessions      *wizard.Manager
	photos        *photos.Manager
	idleTimeout   time.Duration
	sweepInterval time.Duration
	cron          *cron.Cron
}

// NewJanitor builds the housekeeping service from the session config section.
func NewJanitor(cfg config.SessionConfig, sessions *wizard.Manager, photoManager *photos.Manager) *Janitor {
	idleTimeout := defaultIdleTimeout
	if cfg.IdleTimeoutMinutes > 0 {
		idleTimeout = time.Duration(cfg.IdleTimeoutMinutes) * time.Minute
	}
	sweepInterval := defaultSweepInterval
	if cfg.SweepIntervalMinutes > 0 {
		sweepInterval = time.Duration(cfg.SweepIntervalMinutes) * time.Minute
	}
	return &Janitor{
		sessions:      sessions,
		photos:        photoManager,
		idleTimeout:   idleTimeout,
		sweepInterval: sweepInterval,
	}
}

// Name identifies the service in runner logs.
func (j *Janitor) Name() string {
	return "janitor"
}

// Start schedules the sweep and blocks until the context is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	j.cron = cron.New()
	spec := fmt.Sprintf("@every %s", j.sweepInterval)
	if _, err := j.cron.AddFunc(spec, j.sweep); err != nil {
		return fmt.Errorf("schedule janitor sweep failed: %w", err)
	}
	j.cron.Start()
	logger.Infow("janitor_start",
		"idle_timeout", j.idleTimeout.String(),
		"sweep_interval", j.sweepInterval.String(),
	)

	<-ctx.Done()
	return ctx.Err()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *Janitor) Stop(ctx context.Context) error {
	if j.cron == nil {
		return nil
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Janitor) sweep() {
	reaped := j.sessions.ReapIdle(j.idleTimeout)
	removed := j.photos.SweepProvisional(j.idleTimeout)
	if reaped == 0 && removed == 0 {
		return
	}
	logger.Infow("janitor_sweep",
		"sessions_reaped", reaped,
		"provisional_removed", removed,
	)
}

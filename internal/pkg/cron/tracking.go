package cron

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teamtrack-hq/timetrack-backend-go/internal/config"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/tracking"
)

// TrackingJobs wires the abandoned-timer sweeps into the scheduler. The short
// sweep catches timers whose agent went silent, the long sweep is the safety
// net for anything that slipped past it.
type TrackingJobs struct {
	trackingSvc tracking.TrackingService
	cfg         config.TrackingConfig
}

func NewTrackingJobs(trackingSvc tracking.TrackingService, cfg config.TrackingConfig) *TrackingJobs {
	return &TrackingJobs{
		trackingSvc: trackingSvc,
		cfg:         cfg,
	}
}

func (j *TrackingJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_abandoned_timers", j.cfg.SweepInterval, j.CloseAbandonedTimers)
	scheduler.AddJob("close_long_running_timers", j.cfg.LongSweepInterval, j.CloseLongRunningTimers)
}

func (j *TrackingJobs) CloseAbandonedTimers(ctx context.Context) error {
	closed, err := j.trackingSvc.SweepAbandoned(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep abandoned timers: %w", err)
	}

	if closed > 0 {
		slog.Info("Cron: Closed abandoned timers", "count", closed)
	}
	return nil
}

func (j *TrackingJobs) CloseLongRunningTimers(ctx context.Context) error {
	closed, err := j.trackingSvc.SweepLongRunning(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep long-running timers: %w", err)
	}

	if closed > 0 {
		slog.Info("Cron: Closed long-running timers", "count", closed)
	}
	return nil
}

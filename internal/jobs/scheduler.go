package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tableside/tableside-api/internal/observability"
	"github.com/tableside/tableside-api/internal/service"
)

// Scheduler runs the recurring maintenance jobs: the domain health-ping
// sweep and the sports-schedule sync.
type Scheduler struct {
	cron   *cron.Cron
	pings  service.HealthPingService
	sync   service.ScheduleSyncService
	team   string
	logger zerolog.Logger
}

// NewScheduler constructs the scheduler without starting it.
func NewScheduler(pings service.HealthPingService, sync service.ScheduleSyncService, team string, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		pings:  pings,
		sync:   sync,
		team:   team,
		logger: logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the jobs under their cron expressions and starts the
// scheduler. An empty expression disables that job.
func (s *Scheduler) Start(pingSweepCron, scheduleSyncCron string) error {
	if pingSweepCron != "" {
		if _, err := s.cron.AddFunc(pingSweepCron, s.runPingSweep); err != nil {
			return err
		}
	}
	if scheduleSyncCron != "" {
		if _, err := s.cron.AddFunc(scheduleSyncCron, s.runScheduleSync); err != nil {
			return err
		}
	}

	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runPingSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	started := time.Now()
	result, err := s.pings.Sweep(ctx)
	if err != nil {
		observability.JobRuns().WithLabelValues("ping_sweep", "error").Inc()
		s.logger.Error().Err(err).Msg("ping sweep failed")
		return
	}

	observability.JobRuns().WithLabelValues("ping_sweep", "ok").Inc()
	s.logger.Info().
		Int("checked", result.Checked).
		Int("failed", result.Failed).
		Dur("elapsed", time.Since(started)).
		Msg("ping sweep completed")
}

func (s *Scheduler) runScheduleSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	started := time.Now()
	result, err := s.sync.SyncAll(ctx, s.team)
	if err != nil {
		observability.JobRuns().WithLabelValues("schedule_sync", "error").Inc()
		s.logger.Error().Err(err).Msg("schedule sync failed")
		return
	}

	observability.JobRuns().WithLabelValues("schedule_sync", "ok").Inc()
	s.logger.Info().
		Int("synced", result.Synced).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Dur("elapsed", time.Since(started)).
		Msg("schedule sync completed")
}

package main

import (
	"github.com/rs/zerolog/log"

	"articles-backend/internal/infrastructure/queue"
	"articles-backend/pkg/container"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler creates and configures the scheduler
func setupScheduler(c *container.Container, cfg *Config) *asynqScheduler {
	scheduler := queue.NewScheduler(c.RedisOpt(), queue.ReconcileSchedule{
		Cron:          c.Config.Reconcile.Schedule,
		BatchSize:     c.Config.Reconcile.BatchSize,
		DeleteOrphans: cfg.ReconcileDeleteOrphans,
	})

	// Register cron jobs
	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] Failed to register")
	}

	// Start scheduler in goroutine
	go func() {
		log.Info().Msg("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] Failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] ✓ Stopped")
}

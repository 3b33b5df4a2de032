package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"articles-backend/internal/shared"
	"articles-backend/pkg/logger"
)

// ReconcileSchedule: cron + batch size cho job đồng bộ search index
type ReconcileSchedule struct {
	Cron          string
	BatchSize     int
	DeleteOrphans bool
}

type Scheduler struct {
	scheduler *asynq.Scheduler
	reconcile ReconcileSchedule
}

func NewScheduler(redisOpt asynq.RedisClientOpt, reconcile ReconcileSchedule) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			Logger:   logger.AsynqLogger{},
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		reconcile: reconcile,
	}
}

// RegisterJobs đăng ký tất cả periodic jobs
func (s *Scheduler) RegisterJobs() error {
	if s.reconcile.Cron == "" {
		logger.Info("Search reconcile schedule disabled", map[string]interface{}{})
		return nil
	}
	return s.registerReconcileJob()
}

// ================================================
// JOB: Reconcile search index (default every 30 minutes)
// ================================================
// Backstop cho dual-write: re-index toàn bộ articles theo batch
// và xóa document không còn row tương ứng trong Postgres
func (s *Scheduler) registerReconcileJob() error {
	payload, err := json.Marshal(shared.ReconcilePayload{
		BatchSize:     s.reconcile.BatchSize,
		DeleteOrphans: s.reconcile.DeleteOrphans,
		TriggeredBy:   "scheduler",
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeReconcileIndex, payload)

	_, err = s.scheduler.Register(
		s.reconcile.Cron,
		task,
		asynq.Queue(shared.QueueSearch),
		asynq.MaxRetry(2),
		asynq.Timeout(30*time.Minute),
		asynq.Unique(30*time.Minute), // lần chạy trước chưa xong => bỏ qua
	)

	if err != nil {
		logger.Error("Failed to register ReconcileIndex job", err)
		return err
	}

	logger.Info("✓ Registered ReconcileIndex", map[string]interface{}{
		"cron":       s.reconcile.Cron,
		"batch_size": s.reconcile.BatchSize,
	})
	return nil
}

// Start blocks until Shutdown
func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

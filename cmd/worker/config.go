package main

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config chứa các tham số riêng của worker process.
// Redis/Postgres/Search dùng chung internal/config qua container.
type Config struct {
	Concurrency     int           `envconfig:"WORKER_CONCURRENCY" default:"10"`
	SearchWeight    int           `envconfig:"WORKER_QUEUE_SEARCH_WEIGHT" default:"6"`
	DefaultWeight   int           `envconfig:"WORKER_QUEUE_DEFAULT_WEIGHT" default:"3"`
	HealthPort      string        `envconfig:"WORKER_HEALTH_PORT" default:"9999"`
	ShutdownTimeout time.Duration `envconfig:"WORKER_SHUTDOWN_TIMEOUT" default:"30s"`
	// Reconcile theo lịch có xóa document mồ côi hay không
	ReconcileDeleteOrphans bool `envconfig:"RECONCILE_DELETE_ORPHANS" default:"true"`
}

// loadConfig loads configuration from environment variables
func loadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load worker config: %w", err)
	}
	if cfg.Concurrency <= 0 {
		return nil, fmt.Errorf("WORKER_CONCURRENCY must be positive")
	}

	log.Info().
		Int("concurrency", cfg.Concurrency).
		Int("search_weight", cfg.SearchWeight).
		Int("default_weight", cfg.DefaultWeight).
		Msg("[Config] Worker config loaded")

	return &cfg, nil
}

package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"articles-backend/internal/shared/metrics"
)

// Config cho RediSearch-backed article index
type Config struct {
	Addr           string
	Password       string
	IndexName      string
	KeyPrefix      string  // "article:"
	MinScore       float64 // hit có score thấp hơn bị bỏ
	MaxCandidates  int
	CommandTimeout time.Duration
}

// Index là adapter tới search engine: giữ projection của articles
// (title, abstract, publication_date, owner_id) dưới dạng HASH "article:<uuid>"
type Index struct {
	client rueidis.Client
	cfg    Config
}

// NewIndex tạo rueidis client tới RediSearch node
func NewIndex(cfg Config) (*Index, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("search addr is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{cfg.Addr},
		Password:     cfg.Password,
		DisableCache: true,
		AlwaysRESP2:  true, // FT.SEARCH parsing dựa trên RESP2 array format
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	return &Index{client: client, cfg: withDefaults(cfg)}, nil
}

func withDefaults(cfg Config) Config {
	if cfg.IndexName == "" {
		cfg.IndexName = "articles"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "article:"
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = 1000
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = 3 * time.Second
	}
	return cfg
}

// Ping checks connectivity.
func (ix *Index) Ping(ctx context.Context) error {
	if err := ix.exec(ctx, OpPing, ix.b().Ping().Build()).Error(); err != nil {
		return &Error{Op: OpPing, Err: err}
	}
	return nil
}

// HealthCheck dùng cho /health
func (ix *Index) HealthCheck(ctx context.Context) error {
	return ix.Ping(ctx)
}

// Close shuts down the client.
func (ix *Index) Close() {
	ix.client.Close()
}

// exec chạy command với timeout riêng và ghi latency metric
func (ix *Index) exec(ctx context.Context, op string, cmd rueidis.Completed) rueidis.RedisResult {
	ctx, cancel := context.WithTimeout(ctx, ix.cfg.CommandTimeout)
	defer cancel()

	start := time.Now()
	res := ix.client.Do(ctx, cmd)

	err := res.Error()
	if rueidis.IsRedisNil(err) {
		err = nil
	}
	metrics.ObserveSearch(op, start, err)
	return res
}

func (ix *Index) b() rueidis.Builder {
	return ix.client.B()
}

func (ix *Index) key(id string) string {
	return ix.cfg.KeyPrefix + id
}

// isRedisErr checks if err is a Redis server error containing substr (case-insensitive).
func isRedisErr(err error, substr string) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), strings.ToLower(substr))
}

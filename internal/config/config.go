package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Search    SearchConfig
	Reconcile ReconcileConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	LogLevel       string
	AllowedOrigins []string
	AdminToken     string // bảo vệ /admin/*, rỗng => tắt
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxConns     int
	MinConns     int
	BootstrapDDL bool // chạy CREATE TABLE IF NOT EXISTS lúc khởi động
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	Issuer            string
	AccessTokenExpiry int // minutes
}

// =====================================================
// SEARCH INDEX CONFIGURATION
// =====================================================

type SearchConfig struct {
	Addr              string // RediSearch node, mặc định dùng chung Redis với cache
	Password          string
	IndexName         string
	KeyPrefix         string
	MinScore          float64
	MaxCandidates     int
	VerifyAfterIndex  bool
	CommandTimeout    time.Duration
	CreateIndexOnBoot bool
}

// ReconcileConfig cho job đồng bộ lại search index từ Postgres
type ReconcileConfig struct {
	Schedule  string // cron expression, "" => không schedule
	BatchSize int
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	redisHost := getEnv("REDIS_HOST", "localhost:6379")

	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Articles API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
			AdminToken:     getEnv("ADMIN_TOKEN", ""),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "articles"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxConns:     getEnvInt("DB_MAX_CONNS", 25),
			MinConns:     getEnvInt("DB_MIN_CONNS", 5),
			BootstrapDDL: getEnvBool("DB_BOOTSTRAP_SCHEMA", true),
		},
		Redis: RedisConfig{
			Host:     redisHost,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			Issuer:            getEnv("JWT_ISSUER", "ArticlesApp"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60), // 60 minutes
		},
		Search: SearchConfig{
			Addr:              getEnv("SEARCH_REDIS_ADDR", redisHost),
			Password:          getEnv("SEARCH_REDIS_PASSWORD", getEnv("REDIS_PASSWORD", "")),
			IndexName:         getEnv("SEARCH_INDEX_NAME", "articles"),
			KeyPrefix:         getEnv("SEARCH_KEY_PREFIX", "article:"),
			MinScore:          getEnvFloat("SEARCH_MIN_SCORE", 0.5),
			MaxCandidates:     getEnvInt("SEARCH_MAX_CANDIDATES", 1000),
			VerifyAfterIndex:  getEnvBool("SEARCH_VERIFY_AFTER_INDEX", false),
			CommandTimeout:    getEnvDuration("SEARCH_COMMAND_TIMEOUT", 3*time.Second),
			CreateIndexOnBoot: getEnvBool("SEARCH_CREATE_INDEX", true),
		},
		Reconcile: ReconcileConfig{
			Schedule:  getEnv("RECONCILE_SCHEDULE", "*/30 * * * *"),
			BatchSize: getEnvInt("RECONCILE_BATCH_SIZE", 200),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	// Production environment phải có JWT secret
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.JWT.AccessTokenExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive")
	}

	if c.Search.MaxCandidates <= 0 {
		return fmt.Errorf("SEARCH_MAX_CANDIDATES must be positive")
	}
	if c.Search.MinScore < 0 {
		return fmt.Errorf("SEARCH_MIN_SCORE must not be negative")
	}

	if c.Reconcile.Schedule != "" {
		if _, err := cron.ParseStandard(c.Reconcile.Schedule); err != nil {
			return fmt.Errorf("invalid RECONCILE_SCHEDULE %q: %w", c.Reconcile.Schedule, err)
		}
	}
	if c.Reconcile.BatchSize <= 0 {
		return fmt.Errorf("RECONCILE_BATCH_SIZE must be positive")
	}

	return nil
}

// AccessTokenTTL trả về expiry dạng time.Duration
func (c JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpiry) * time.Minute
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

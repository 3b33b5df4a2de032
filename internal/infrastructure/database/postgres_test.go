package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDBConfig() *DBConfig {
	return &DBConfig{
		Host:              "localhost",
		Port:              5432,
		Username:          "postgres",
		Password:          "p@ss word",
		DBName:            "articles",
		MaxConns:          10,
		MinConns:          2,
		MaxConnLifetime:   5 * time.Minute,
		MaxConnIdleTime:   time.Minute,
		HealthCheckPeriod: time.Minute,
		ConnectTimeout:    3 * time.Second,
	}
}

func TestConfigurePool(t *testing.T) {
	db := NewPostgresDB(testDBConfig())

	cfg, err := db.configurePool()
	require.NoError(t, err)

	assert.Equal(t, int32(10), cfg.MaxConns)
	assert.Equal(t, int32(2), cfg.MinConns)
	assert.Equal(t, 3*time.Second, cfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, "p@ss word", cfg.ConnConfig.Password)
	assert.Equal(t, "articles", cfg.ConnConfig.Database)
	assert.Equal(t, "UTC", cfg.ConnConfig.RuntimeParams["timezone"])
}

func TestSchemaDDL_PublicationDateIsTimestamptz(t *testing.T) {
	assert.Contains(t, schemaDDL, "publication_date TIMESTAMPTZ NOT NULL")
	assert.NotContains(t, schemaDDL, "publication_date DATE")
	assert.Contains(t, schemaDDL, "ALTER COLUMN publication_date TYPE TIMESTAMPTZ")
}

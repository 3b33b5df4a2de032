package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles-backend/internal/domains/tag/model"
	"articles-backend/pkg/cache"
)

// Cache hit => không chạm tới Postgres (pool nil)
func TestGetByID_ServedFromCache(t *testing.T) {
	mem := cache.NewMemoryCache()
	repo := NewPostgresRepository(nil, mem)
	ctx := context.Background()

	stored := model.Tag{
		ID:        uuid.New(),
		Name:      "golang",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, mem.Set(ctx, "tag:"+stored.ID.String(), stored, tagCacheTTL))

	got, err := repo.GetByID(ctx, stored.ID)

	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, stored.Name, got.Name)
	assert.True(t, stored.CreatedAt.Equal(got.CreatedAt))
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_IncrementAfterExpiryStartsOver(t *testing.T) {
	mem := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mem.SetClock(func() time.Time { return now })
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		n, err := mem.Increment(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, int64(i), n)
	}
	require.NoError(t, mem.Expire(ctx, "counter", time.Minute))

	now = now.Add(time.Minute)

	n, err := mem.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Key mới không mang expiry cũ
	ttl, err := mem.TTL(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)

	var got int64
	found, err := mem.Get(ctx, "counter", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(1), got)
}

func TestMemoryCache_IncrementKeepsLiveCounter(t *testing.T) {
	mem := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mem.SetClock(func() time.Time { return now })
	ctx := context.Background()

	_, err := mem.Increment(ctx, "counter")
	require.NoError(t, err)
	require.NoError(t, mem.Expire(ctx, "counter", time.Minute))

	now = now.Add(30 * time.Second)

	n, err := mem.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ttl, err := mem.TTL(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, ttl)
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"club-notification/internal/domain"
	"club-notification/internal/repository/cache"
)

func TestStatsCache(t *testing.T) {
	t.Parallel()
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})
	t.Cleanup(func() {
		client.Close()
	})

	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	t.Cleanup(cancel)
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis server is not available, skipping test")
		return
	}

	const orgID = 987654
	c := NewStatsCache(client)
	require.NoError(t, c.Invalidate(ctx, orgID, 1))

	_, err := c.Get(ctx, orgID, 0)
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	want := domain.ConfirmationStats{Total: 4, Sent: 3, Confirmed: 1, Pending: 2, Failed: 1, ConfirmationRate: 33.33}
	require.NoError(t, c.Set(ctx, orgID, 0, want))
	require.NoError(t, c.Set(ctx, orgID, 1, want))

	got, err := c.Get(ctx, orgID, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, c.Invalidate(ctx, orgID, 1))
	_, err = c.Get(ctx, orgID, 1)
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}

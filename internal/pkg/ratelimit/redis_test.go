package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSlidingWindowLimiter(t *testing.T) {
	t.Parallel()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() {
		client.Close()
	})

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	t.Cleanup(cancel)
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis server is not available, skipping test")
		return
	}

	const window = 300 * time.Millisecond
	limiter := NewRedisSlidingWindowLimiter(client, window, 2)
	key := "bulk_send:" + uuid.NewString()

	for i := 0; i < 2; i++ {
		limited, err := limiter.Limit(ctx, key)
		require.NoError(t, err)
		assert.False(t, limited)
	}
	limited, err := limiter.Limit(ctx, key)
	require.NoError(t, err)
	assert.True(t, limited)

	// 其他键互不影响
	limited, err = limiter.Limit(ctx, key+":other")
	require.NoError(t, err)
	assert.False(t, limited)

	// 窗口滑过之后恢复
	time.Sleep(window + 50*time.Millisecond)
	limited, err = limiter.Limit(ctx, key)
	require.NoError(t, err)
	assert.False(t, limited)
}

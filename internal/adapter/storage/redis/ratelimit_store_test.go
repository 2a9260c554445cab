package redis_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"wom-connector/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitStore_Allow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewRateLimitStore(client)
	ctx := context.Background()

	t.Run("allows requests within limit", func(t *testing.T) {
		for i := int64(1); i <= 3; i++ {
			result, err := store.Allow(ctx, "operator1:issue", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, result.Allowed, "request %d should be allowed", i)
			assert.Equal(t, int64(3), result.Limit)
			assert.Equal(t, 3-i, result.Remaining)
		}
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		result, err := store.Allow(ctx, "operator1:issue", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, int64(0), result.Remaining)
	})

	t.Run("different keys are independent", func(t *testing.T) {
		result, err := store.Allow(ctx, "operator2:issue", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, int64(4), result.Remaining)
	})

	t.Run("window keys carry a ttl", func(t *testing.T) {
		_, err := store.Allow(ctx, "operator3:pay", 10, time.Minute)
		require.NoError(t, err)

		var found bool
		for _, k := range mr.Keys() {
			if strings.HasPrefix(k, "wom:ratelimit:operator3:pay:") {
				found = true
				assert.Greater(t, mr.TTL(k), time.Duration(0))
			}
		}
		assert.True(t, found)
	})

	t.Run("sets correct ResetAt", func(t *testing.T) {
		result, err := store.Allow(ctx, "operator4:status", 10, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Greater(t, result.ResetAt, time.Now().Unix()-1)
	})

	t.Run("rejects sub-second windows", func(t *testing.T) {
		_, err := store.Allow(ctx, "operator5:issue", 1, 10*time.Millisecond)
		assert.Error(t, err)
	})
}

package integration

import (
	"context"
	"testing"
	"time"

	"restaurant-site/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testRedis := SetupTestRedis(t)
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Get on missing key reports not found", func(t *testing.T) {
		FlushRedis(t, testRedis.Client)
		store := session.NewRedisStore(testRedis.Client, "test:", 0, logger)

		v, ok, err := store.Get(ctx, session.KeyAdminSession)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("Set then Get round trips under the prefix", func(t *testing.T) {
		FlushRedis(t, testRedis.Client)
		store := session.NewRedisStore(testRedis.Client, "test:", 0, logger)

		require.NoError(t, store.Set(ctx, session.KeyAdminSession, "true"))

		v, ok, err := store.Get(ctx, session.KeyAdminSession)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "true", v)

		raw, err := testRedis.Client.Get(ctx, "test:"+session.KeyAdminSession).Result()
		require.NoError(t, err)
		assert.Equal(t, "true", raw)
	})

	t.Run("prefixes isolate sites", func(t *testing.T) {
		FlushRedis(t, testRedis.Client)
		a := session.NewRedisStore(testRedis.Client, "a:", 0, logger)
		b := session.NewRedisStore(testRedis.Client, "b:", 0, logger)

		require.NoError(t, a.Set(ctx, session.KeyAdminSession, "true"))

		_, ok, err := b.Get(ctx, session.KeyAdminSession)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keys expire after the TTL", func(t *testing.T) {
		FlushRedis(t, testRedis.Client)
		store := session.NewRedisStore(testRedis.Client, "test:", time.Second, logger)

		require.NoError(t, store.Set(ctx, session.KeyAdminSession, "true"))

		ttl, err := testRedis.Client.TTL(ctx, "test:"+session.KeyAdminSession).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))

		assert.Eventually(t, func() bool {
			_, ok, err := store.Get(ctx, session.KeyAdminSession)
			return err == nil && !ok
		}, 5*time.Second, 100*time.Millisecond)
	})

	t.Run("Delete removes the key", func(t *testing.T) {
		FlushRedis(t, testRedis.Client)
		store := session.NewRedisStore(testRedis.Client, "test:", 0, logger)

		require.NoError(t, store.Set(ctx, session.KeyAdminToken, "tok"))
		require.NoError(t, store.Delete(ctx, session.KeyAdminToken))

		_, ok, err := store.Get(ctx, session.KeyAdminToken)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

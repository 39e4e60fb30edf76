package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/odoo-connector/internal/infrastructure/config"
)

func TestInMemoryTokenStoreRoundTrip(t *testing.T) {
	store := NewInMemoryTokenStore()
	ctx := context.Background()

	_, ok := store.Get(ctx)
	assert.False(t, ok, "empty store must miss")

	require.NoError(t, store.Set(ctx, "session-abc", time.Minute))

	token, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "session-abc", token)
}

func TestInMemoryTokenStoreExpiry(t *testing.T) {
	store := NewInMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "session-abc", -time.Second))

	_, ok := store.Get(ctx)
	assert.False(t, ok, "expired token must miss")
}

func TestInMemoryTokenStoreOverwrite(t *testing.T) {
	store := NewInMemoryTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "first", time.Minute))
	require.NoError(t, store.Set(ctx, "second", time.Minute))

	token, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "second", token)
}

func TestNewTokenStoreDisabledRedis(t *testing.T) {
	store := NewTokenStore(config.RedisConfig{Enabled: false}, zap.NewNop())
	_, isMemory := store.(*InMemoryTokenStore)
	assert.True(t, isMemory)
}

func TestNewTokenStoreFallsBackWhenRedisUnreachable(t *testing.T) {
	store := NewTokenStore(config.RedisConfig{
		Enabled: true,
		Host:    "127.0.0.1",
		Port:    1, // nothing listens here
	}, zap.NewNop())
	_, isMemory := store.(*InMemoryTokenStore)
	assert.True(t, isMemory)
}

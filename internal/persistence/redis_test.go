package persistence

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/config"
)

func TestDisabledRedis(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{}, zap.NewNop())
	require.Nil(t, r)
	assert.ErrorIs(t, r.Ping(context.Background()), ErrRedisDisabled)
	assert.NoError(t, r.Close())
}

func TestRedisPing(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	r := NewRedis(context.Background(), config.RedisConfig{Addr: addr}, zap.NewNop())
	require.NotNil(t, r)
	t.Cleanup(func() { _ = r.Close() })
	assert.NoError(t, r.Ping(context.Background()))
}

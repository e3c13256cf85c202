package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wartimekillers/snapxchange/internal/config"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(config.RedisConfig{
		Addr: mr.Addr(),
		TTL:  time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client, mr
}

func TestRedisClient_SetGet(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.SetBaseRate(ctx, "VND", "IDR", decimal.RequireFromString("0.6302")))

	rate, err := client.GetBaseRate(ctx, "VND", "IDR")
	require.NoError(t, err)
	assert.Equal(t, "0.6302", rate.String())
	assert.Equal(t, time.Minute, mr.TTL("rate:VND:IDR"))
}

func TestRedisClient_Miss(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetBaseRate(context.Background(), "IDR", "VND")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisClient_Expired(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.SetBaseRate(ctx, "IDR", "VND", decimal.RequireFromString("1.58")))
	mr.FastForward(2 * time.Minute)

	_, err := client.GetBaseRate(ctx, "IDR", "VND")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisClient_InvalidValue(t *testing.T) {
	client, mr := newTestClient(t)
	require.NoError(t, mr.Set("rate:VND:IDR", "not-a-number"))

	_, err := client.GetBaseRate(context.Background(), "VND", "IDR")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisClient_Delete(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.SetBaseRate(ctx, "VND", "IDR", decimal.NewFromInt(1)))

	require.NoError(t, client.DeleteBaseRate(ctx, "VND", "IDR"))
	assert.False(t, mr.Exists("rate:VND:IDR"))
	assert.NoError(t, client.HealthCheck(ctx))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(config.RedisConfig{Addr: addr}, zap.NewNop())
	assert.Error(t, err)
}

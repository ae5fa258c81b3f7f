package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCache(t *testing.T) {
	var c Cache = NoopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []string{"v"}))
	var got []string
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrMiss)
	assert.NoError(t, c.Delete(ctx, "k"))
}

// Requires a running Redis, set TEST_REDIS_ADDR to enable.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	c := NewRedisCacheFromClient(client, "planning-test:", time.Minute)

	type slot struct {
		ID    string `json:"id"`
		Start string `json:"start"`
	}
	in := []slot{{ID: "a", Start: "09:00"}}

	require.NoError(t, c.Set(ctx, "time_slots", in))
	var out []slot
	require.NoError(t, c.Get(ctx, "time_slots", &out))
	assert.Equal(t, in, out)

	require.NoError(t, c.Delete(ctx, "time_slots"))
	assert.ErrorIs(t, c.Get(ctx, "time_slots", &out), ErrMiss)
}

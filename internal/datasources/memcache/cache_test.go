package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetExpiry(t *testing.T) {
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 15*time.Minute))

	got, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)

	now = now.Add(16 * time.Minute)
	_, ok, err = c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_IncrementWindow(t *testing.T) {
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }

	for want := int64(1); want <= 3; want++ {
		got, err := c.Increment(ctx, "rate_limit_newsapi", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// The TTL is fixed at the first increment; later increments inside the
	// window don't extend it.
	now = now.Add(30 * time.Second)
	got, err := c.Increment(ctx, "rate_limit_newsapi", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)

	now = now.Add(31 * time.Second)
	got, err = c.Increment(ctx, "rate_limit_newsapi", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedSummary struct {
	LatestPeriod *string `json:"latest_period"`
	TotalPaid    string  `json:"total_paid"`
}

func TestInMemorySummaryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemorySummaryCache()
	businessID := uuid.New()

	t.Run("miss before set", func(t *testing.T) {
		var out cachedSummary
		assert.ErrorIs(t, cache.Get(ctx, businessID, &out), ErrCacheMiss)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		period := "2026-06"
		require.NoError(t, cache.Set(ctx, businessID, cachedSummary{LatestPeriod: &period, TotalPaid: "12000"}, time.Minute))

		var out cachedSummary
		require.NoError(t, cache.Get(ctx, businessID, &out))
		require.NotNil(t, out.LatestPeriod)
		assert.Equal(t, "2026-06", *out.LatestPeriod)
		assert.Equal(t, "12000", out.TotalPaid)
	})

	t.Run("invalidate removes entry", func(t *testing.T) {
		require.NoError(t, cache.Invalidate(ctx, businessID))
		var out cachedSummary
		assert.ErrorIs(t, cache.Get(ctx, businessID, &out), ErrCacheMiss)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, businessID, cachedSummary{TotalPaid: "1"}, -time.Second))
		var out cachedSummary
		assert.ErrorIs(t, cache.Get(ctx, businessID, &out), ErrCacheMiss)
	})

	t.Run("businesses are isolated", func(t *testing.T) {
		other := uuid.New()
		require.NoError(t, cache.Set(ctx, businessID, cachedSummary{TotalPaid: "5"}, time.Minute))

		var out cachedSummary
		assert.ErrorIs(t, cache.Get(ctx, other, &out), ErrCacheMiss)
	})
}

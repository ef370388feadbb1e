package pricecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_DefaultBeforeFirstFetch(t *testing.T) {
	c := New()

	price, ok := c.PriceUSD()
	assert.False(t, ok)
	assert.Equal(t, DefaultPriceUSD, price)
	assert.Negative(t, c.Age())
}

func TestCache_RefreshSwapsSnapshot(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New(
		WithFetcher(func(context.Context) (float64, error) { return 201.5, nil }),
		WithClock(func() time.Time { return now }),
	)

	require.NoError(t, c.Refresh(context.Background()))
	price, ok := c.PriceUSD()
	assert.True(t, ok)
	assert.Equal(t, 201.5, price)

	now = now.Add(3 * time.Minute)
	assert.Equal(t, 3*time.Minute, c.Age())
}

func TestCache_FailedRefreshKeepsPrevious(t *testing.T) {
	calls := 0
	c := New(WithFetcher(func(context.Context) (float64, error) {
		calls++
		if calls > 1 {
			return 0, errors.New("rate limited")
		}
		return 199.0, nil
	}))

	require.NoError(t, c.Refresh(context.Background()))
	require.Error(t, c.Refresh(context.Background()))

	price, ok := c.PriceUSD()
	assert.True(t, ok)
	assert.Equal(t, 199.0, price)
}

func TestCache_RunStopsOnCancel(t *testing.T) {
	c := New(
		WithTTL(time.Millisecond),
		WithFetcher(func(context.Context) (float64, error) { return 180.0, nil }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	// The immediate refresh populates the snapshot.
	assert.Eventually(t, func() bool {
		_, ok := c.PriceUSD()
		return ok
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newTestLimiter(t *testing.T) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)}
	limiter := New(NewMemoryStore(), 180*time.Second, 5, nil)
	limiter.SetClock(clock.Now)
	return limiter, clock
}

func TestLimiterBlocksAfterMaxFailures(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Allow(ctx, "10.0.0.1"), "attempt %d should be allowed", i+1)
		limiter.RecordFailure(ctx, "10.0.0.1")
	}

	require.False(t, limiter.Allow(ctx, "10.0.0.1"), "sixth attempt should be blocked")
}

func TestLimiterUnblocksAfterWindow(t *testing.T) {
	limiter, clock := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		limiter.RecordFailure(ctx, "10.0.0.1")
	}
	require.False(t, limiter.Allow(ctx, "10.0.0.1"))

	clock.Advance(181 * time.Second)

	require.True(t, limiter.Allow(ctx, "10.0.0.1"), "aged-out failures must not count")
}

func TestLimiterTracksAddressesIndependently(t *testing.T) {
	limiter, _ := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		limiter.RecordFailure(ctx, "10.0.0.1")
	}

	require.False(t, limiter.Allow(ctx, "10.0.0.1"))
	require.True(t, limiter.Allow(ctx, "10.0.0.2"))
}

func TestLimiterPartialWindowExpiry(t *testing.T) {
	limiter, clock := newTestLimiter(t)
	ctx := context.Background()

	// Three early failures, then two more later.
	for i := 0; i < 3; i++ {
		limiter.RecordFailure(ctx, "10.0.0.1")
	}
	clock.Advance(100 * time.Second)
	for i := 0; i < 2; i++ {
		limiter.RecordFailure(ctx, "10.0.0.1")
	}
	require.False(t, limiter.Allow(ctx, "10.0.0.1"))

	// The first three age out; only two remain in the window.
	clock.Advance(90 * time.Second)
	require.True(t, limiter.Allow(ctx, "10.0.0.1"))
}

type failingStore struct{}

func (failingStore) Prune(ctx context.Context, key string, cutoff time.Time) (int, error) {
	return 0, errors.New("store unavailable")
}

func (failingStore) Add(ctx context.Context, key string, at time.Time) error {
	return errors.New("store unavailable")
}

func TestLimiterFailsOpenOnStoreError(t *testing.T) {
	limiter := New(failingStore{}, 180*time.Second, 5, nil)

	require.True(t, limiter.Allow(context.Background(), "10.0.0.1"))
}

func TestMemoryStorePrune(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Add(ctx, "addr", base))
	require.NoError(t, store.Add(ctx, "addr", base.Add(60*time.Second)))
	require.NoError(t, store.Add(ctx, "addr", base.Add(120*time.Second)))

	// Cutoff is inclusive: an attempt exactly at the cutoff still counts.
	count, err := store.Prune(ctx, "addr", base.Add(60*time.Second))
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = store.Prune(ctx, "addr", base.Add(300*time.Second))
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

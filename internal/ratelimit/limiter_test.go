package ratelimit_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jobflow/jobflow/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source for window tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newTestLimiter(clock *fakeClock) *ratelimit.Limiter {
	return ratelimit.NewLimiter(ratelimit.DefaultLimits()).WithClock(clock.Now)
}

func TestLimiter_AdmitsUpToLimit(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	// /resume/enhance resolves to 5 per minute
	for i := range 5 {
		limited, info := limiter.Check("1.2.3.4", "/resume/enhance", 0)

		require.False(t, limited, "request %d should be admitted", i+1)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining, "remaining should decrease by 1 each time")
	}

	limited, info := limiter.Check("1.2.3.4", "/resume/enhance", 0)

	assert.True(t, limited, "6th request should be rejected")
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, clock.Now().Add(ratelimit.Window).Unix(), info.Reset)
}

func TestLimiter_WindowReset(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	for range 5 {
		limited, _ := limiter.Check("1.2.3.4", "/resume/enhance", 0)
		require.False(t, limited)
	}

	limited, _ := limiter.Check("1.2.3.4", "/resume/enhance", 0)
	require.True(t, limited)

	clock.Advance(ratelimit.Window)

	limited, info := limiter.Check("1.2.3.4", "/resume/enhance", 0)

	assert.False(t, limited, "should be admitted after the window elapses")
	assert.Equal(t, 4, info.Remaining, "fresh window should count from 1")
	assert.Equal(t, clock.Now().Add(ratelimit.Window).Unix(), info.Reset)
}

func TestLimiter_IndependentEndpoints(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	for range 5 {
		limited, _ := limiter.Check("1.2.3.4", "/resume/enhance", 0)
		require.False(t, limited)
	}

	limited, _ := limiter.Check("1.2.3.4", "/resume/enhance", 0)
	require.True(t, limited, "enhance should be exhausted")

	limited, info := limiter.Check("1.2.3.4", "/jobs/search", 0)

	assert.False(t, limited, "other endpoints keep their own counters")
	assert.Equal(t, 30, info.Limit)
	assert.Equal(t, 29, info.Remaining)
}

func TestLimiter_IndependentClients(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	for range 5 {
		limited, _ := limiter.Check("1.2.3.4", "/resume/enhance", 0)
		require.False(t, limited)
	}

	limited, _ := limiter.Check("1.2.3.4", "/resume/enhance", 0)
	require.True(t, limited)

	limited, _ = limiter.Check("5.6.7.8", "/resume/enhance", 0)

	assert.False(t, limited, "other clients keep their own counters")
}

func TestLimiter_ExplicitLimitOverride(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	limited, info := limiter.Check("1.2.3.4", "/resume/enhance", 100)

	assert.False(t, limited)
	assert.Equal(t, 100, info.Limit)
	assert.Equal(t, 99, info.Remaining)
}

func TestLimiter_BoundaryBurst(t *testing.T) {
	// Fixed-window counting admits up to 2x the nominal rate across a
	// window boundary. This pins the trade-off so a refactor to a sliding
	// window shows up as a test failure.
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	admitted := 0

	for range 5 {
		if limited, _ := limiter.Check("1.2.3.4", "/resume/enhance", 0); !limited {
			admitted++
		}
	}

	clock.Advance(ratelimit.Window)

	for range 5 {
		if limited, _ := limiter.Check("1.2.3.4", "/resume/enhance", 0); !limited {
			admitted++
		}
	}

	assert.Equal(t, 10, admitted, "both sides of the boundary admit a full window")
}

func TestLimiter_EmptyKeysAdmitted(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	limited, info := limiter.Check("", "", 0)

	assert.False(t, limited)
	assert.Equal(t, 60, info.Limit, "empty endpoint resolves to the default quota")
}

func TestLimiter_ConcurrentChecksSamePair(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.DefaultLimits())

	const (
		n     = 50
		limit = 5
	)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)

	for range n {
		wg.Add(1)

		go func() {
			defer wg.Done()

			limited, _ := limiter.Check("1.2.3.4", "/resume/enhance", 0)
			if !limited {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, limit, admitted, "exactly limit admissions, no lost updates")
}

func TestLimiter_Sweep(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	limiter.Check("1.2.3.4", "/jobs/search", 0)
	limiter.Check("5.6.7.8", "/jobs/search", 0)
	require.Equal(t, 2, limiter.Len())

	// Not yet stale: windows expired but within the retention age.
	clock.Advance(ratelimit.Window + 30*time.Minute)
	assert.Equal(t, 0, limiter.Sweep(time.Hour))

	clock.Advance(time.Hour)
	assert.Equal(t, 2, limiter.Sweep(time.Hour))
	assert.Equal(t, 0, limiter.Len())

	// A swept pair starts over with a fresh window.
	limited, info := limiter.Check("1.2.3.4", "/jobs/search", 0)
	assert.False(t, limited)
	assert.Equal(t, 29, info.Remaining)
}

func TestLimiter_ScenarioEnhanceQuota(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	wantRemaining := []int{4, 3, 2, 1, 0}

	for i, want := range wantRemaining {
		limited, info := limiter.Check("1.2.3.4", "/resume/enhance", 0)

		require.False(t, limited, "request %d", i+1)
		assert.Equal(t, want, info.Remaining)
	}

	limited, info := limiter.Check("1.2.3.4", "/resume/enhance", 0)

	assert.True(t, limited)
	assert.Greater(t, info.Reset, clock.Now().Unix(), "reset lies in the future")
}

package ratelimit

import (
	"sync"
	"time"
)

// Window is the fixed counting interval. Counters reset at the first check
// after the interval elapses, so bursts straddling a boundary can reach up
// to twice the nominal rate. That is the intended fixed-window behavior.
const Window = 60 * time.Second

// Info reports the quota state after a check.
type Info struct {
	// Limit is the resolved quota for the endpoint.
	Limit int
	// Remaining is how many admissions are left in the current window.
	Remaining int
	// Reset is the epoch second at which the current window resets.
	Reset int64
	// Window is the window size in seconds.
	Window int
}

type pairKey struct {
	client   string
	endpoint string
}

type counter struct {
	count       int
	windowStart time.Time
}

type pairEntry struct {
	mu sync.Mutex
	counter
}

// Limiter admits or rejects requests using fixed-window counters kept per
// (client key, endpoint key) pair. State is in-memory and process-local.
type Limiter struct {
	limits Limits
	now    func() time.Time

	mu      sync.Mutex // guards the entries map, not the counters
	entries map[pairKey]*pairEntry
}

// NewLimiter creates a limiter with the given quota table.
func NewLimiter(limits Limits) *Limiter {
	return &Limiter{
		limits:  limits,
		now:     time.Now,
		entries: make(map[pairKey]*pairEntry),
	}
}

// WithClock replaces the limiter's time source. Used by tests to advance
// windows without sleeping.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now

	return l
}

// Check decides whether a request from key to endpoint is admitted. A limit
// of zero or less resolves the quota from the table. The returned Info
// reflects the state after the decision. Check never fails: unknown
// endpoints fall back to the default quota.
//
// Check-and-increment for one pair is a critical section; checks on
// distinct pairs proceed concurrently.
func (l *Limiter) Check(key, endpoint string, limit int) (bool, Info) {
	if limit <= 0 {
		limit = l.limits.Resolve(endpoint)
	}

	entry := l.entry(pairKey{client: key, endpoint: endpoint})

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := l.now()
	if now.Sub(entry.windowStart) >= Window {
		entry.count = 0
		entry.windowStart = now
	}

	limited := entry.count >= limit
	if !limited {
		entry.count++
	}

	remaining := limit - entry.count
	if remaining < 0 {
		remaining = 0
	}

	return limited, Info{
		Limit:     limit,
		Remaining: remaining,
		Reset:     entry.windowStart.Add(Window).Unix(),
		Window:    int(Window / time.Second),
	}
}

// Sweep removes counters whose window expired more than olderThan ago and
// returns how many were dropped. Live windows are never touched, so
// admission results are unaffected.
func (l *Limiter) Sweep(olderThan time.Duration) int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0

	for key, entry := range l.entries {
		entry.mu.Lock()
		stale := now.Sub(entry.windowStart) >= Window+olderThan
		entry.mu.Unlock()

		if stale {
			delete(l.entries, key)

			removed++
		}
	}

	return removed
}

// Len reports how many pairs are currently tracked.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

func (l *Limiter) entry(key pairKey) *pairEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		entry = &pairEntry{counter: counter{windowStart: l.now()}}
		l.entries[key] = entry
	}

	return entry
}

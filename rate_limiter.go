package goGate

import (
	"context"
	"math"
	"sync"
	"time"
)

// windowEntry is the per-client counter state. An entry whose resetAt has
// passed is logically expired and is treated as fresh on the next read, whether
// or not a sweep already removed it.
type windowEntry struct {
	count   int
	resetAt time.Time
}

// windowStore maps client keys to fixed-window counters. It is the only shared
// mutable state in the gate; the single mutex makes each fetch-check-increment
// sequence atomic so concurrent requests for one key can never both observe the
// same count (lost update).
type windowStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	window  time.Duration
	max     int
	sweep   bool
	now     func() time.Time
}

func newWindowStore(cfg RateLimitConfig, now func() time.Time) *windowStore {
	if now == nil {
		now = time.Now
	}
	return &windowStore{
		entries: make(map[string]*windowEntry),
		window:  cfg.Window,
		max:     cfg.MaxRequests,
		sweep:   cfg.SweepOnAllow,
		now:     now,
	}
}

// allow runs one admission check for key: sweep (optional), fetch-or-create,
// lazy expiry, increment, compare. The request that pushes the count past the
// limit is the first one denied, so exactly max requests land per window.
func (s *windowStore) allow(key string) RateDecision {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if s.sweep {
		s.sweepLocked(now)
	}

	entry, ok := s.entries[key]
	if !ok {
		entry = &windowEntry{resetAt: now.Add(s.window)}
		s.entries[key] = entry
	}

	// Consistent with the sweep: arrival exactly at resetAt opens a new window.
	if !now.Before(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(s.window)
	}

	entry.count++

	decision := RateDecision{
		Allowed:   entry.count <= s.max,
		Limit:     s.max,
		Remaining: s.max - entry.count,
		ResetAt:   entry.resetAt,
	}
	if decision.Remaining < 0 {
		decision.Remaining = 0
	}
	if !decision.Allowed {
		decision.RetryAfterSeconds = retryAfterSeconds(entry.resetAt.Sub(now))
	}

	return decision
}

// retryAfterSeconds rounds up: an exact second boundary stays at that second,
// anything past it advances to the next whole second.
func retryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}

func (s *windowStore) sweepLocked(now time.Time) {
	for key, entry := range s.entries {
		if !now.Before(entry.resetAt) {
			delete(s.entries, key)
		}
	}
}

func (s *windowStore) snapshot(key string) (WindowSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return WindowSnapshot{}, false
	}
	return WindowSnapshot{Key: key, Count: entry.count, ResetAt: entry.resetAt}, true
}

func (s *windowStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// startJanitor sweeps expired entries on an interval until ctx is done. Pure
// housekeeping: lazy expiry in allow already guarantees correct counts.
func (s *windowStore) startJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.mu.Lock()
				s.sweepLocked(s.now())
				s.mu.Unlock()
			}
		}
	}()
}

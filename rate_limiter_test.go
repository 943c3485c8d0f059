package goGate

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
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

func testWindowStore(window time.Duration, max int, clock *fakeClock) *windowStore {
	return newWindowStore(RateLimitConfig{
		Window:       window,
		MaxRequests:  max,
		SweepOnAllow: true,
	}, clock.Now)
}

func TestWindowAdmitsExactlyMaxRequests(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := testWindowStore(time.Minute, 5, clock)

	for i := 0; i < 5; i++ {
		d := store.allow("user:alice")
		if !d.Allowed {
			t.Fatalf("request %d expected allowed", i+1)
		}
		if want := 5 - (i + 1); d.Remaining != want {
			t.Fatalf("request %d expected remaining %d, got %d", i+1, want, d.Remaining)
		}
	}

	d := store.allow("user:alice")
	if d.Allowed {
		t.Fatal("request 6 expected denied")
	}
	if d.Remaining != 0 {
		t.Fatalf("denied request expected remaining 0, got %d", d.Remaining)
	}
	if d.RetryAfterSeconds <= 0 {
		t.Fatalf("denied request expected positive retry-after, got %d", d.RetryAfterSeconds)
	}
}

func TestWindowRolloverAtExactBoundary(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := testWindowStore(time.Minute, 1, clock)

	if d := store.allow("user:bob"); !d.Allowed {
		t.Fatal("first request expected allowed")
	}
	if d := store.allow("user:bob"); d.Allowed {
		t.Fatal("second request expected denied")
	}

	// Arrival exactly at resetAt opens a fresh window.
	clock.Advance(time.Minute)
	if d := store.allow("user:bob"); !d.Allowed {
		t.Fatal("request at exact reset boundary expected allowed")
	}
}

func TestWindowKeysAreIsolated(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := testWindowStore(time.Minute, 2, clock)

	store.allow("user:alice")
	store.allow("user:alice")
	if d := store.allow("user:alice"); d.Allowed {
		t.Fatal("alice expected denied after exhausting quota")
	}

	if d := store.allow("ip:203.0.113.1"); !d.Allowed {
		t.Fatal("unrelated key expected allowed")
	}
}

func TestWindowRetryAfterRoundsUp(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := testWindowStore(10*time.Second, 1, clock)

	store.allow("user:carol")

	// 8.2s remain in the window: partial seconds advance to the next whole one.
	clock.Advance(1800 * time.Millisecond)
	d := store.allow("user:carol")
	if d.Allowed {
		t.Fatal("expected denied")
	}
	if d.RetryAfterSeconds != 9 {
		t.Fatalf("expected retry-after 9, got %d", d.RetryAfterSeconds)
	}
}

func TestWindowRetryAfterExactSecondBoundary(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := testWindowStore(10*time.Second, 1, clock)

	store.allow("user:dave")

	// Exactly 7s remain: ceiling must not bump to 8.
	clock.Advance(3 * time.Second)
	d := store.allow("user:dave")
	if d.Allowed {
		t.Fatal("expected denied")
	}
	if d.RetryAfterSeconds != 7 {
		t.Fatalf("expected retry-after 7, got %d", d.RetryAfterSeconds)
	}
}

func TestWindowConcurrentNoLostUpdates(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := testWindowStore(time.Minute, 100, clock)

	const goroutines = 16
	const perG = 25

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				if d := store.allow("user:shared"); d.Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	// 400 attempts against a quota of 100: exactly 100 may land.
	if allowed != 100 {
		t.Fatalf("expected exactly 100 admitted, got %d", allowed)
	}

	snap, ok := store.snapshot("user:shared")
	if !ok {
		t.Fatal("expected live entry for key")
	}
	if snap.Count != goroutines*perG {
		t.Fatalf("expected count %d, got %d", goroutines*perG, snap.Count)
	}
}

func TestWindowSweepRemovesExpiredEntries(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := testWindowStore(time.Minute, 5, clock)

	store.allow("user:alice")
	store.allow("user:bob")
	if got := store.size(); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}

	clock.Advance(2 * time.Minute)

	// Any admission check sweeps every expired entry, not just its own key.
	store.allow("user:carol")
	if got := store.size(); got != 1 {
		t.Fatalf("expected 1 entry after sweep, got %d", got)
	}
}

func TestWindowLazyExpiryWithoutSweep(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	store := newWindowStore(RateLimitConfig{
		Window:       time.Minute,
		MaxRequests:  1,
		SweepOnAllow: false,
	}, clock.Now)

	store.allow("user:alice")
	if d := store.allow("user:alice"); d.Allowed {
		t.Fatal("expected denied within window")
	}

	clock.Advance(2 * time.Minute)

	// The stale entry survives in the map, but reads treat it as fresh.
	if d := store.allow("user:alice"); !d.Allowed {
		t.Fatal("expected allowed after window expiry without sweep")
	}
}

func TestRetryAfterSecondsEdgeCases(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
		want int
	}{
		{"zero", 0, 0},
		{"negative", -time.Second, 0},
		{"sub-second", 200 * time.Millisecond, 1},
		{"exact second", 3 * time.Second, 3},
		{"just past second", 3*time.Second + time.Millisecond, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := retryAfterSeconds(tc.d); got != tc.want {
				t.Fatalf("retryAfterSeconds(%s) = %d, want %d", tc.d, got, tc.want)
			}
		})
	}
}

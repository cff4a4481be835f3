package ratelimit

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newWindow(t *testing.T, max int) (*Window, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	w := New(max, time.Minute, WithClock(clk.now))
	t.Cleanup(w.Stop)
	return w, clk
}

func TestAllowBlocksAfterMax(t *testing.T) {
	w, _ := newWindow(t, 2)
	ip := "203.0.113.10"

	if !w.Allow(ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if !w.Allow(ip) {
		t.Fatalf("expected second attempt to be allowed")
	}
	if w.Allow(ip) {
		t.Fatalf("expected third attempt to be blocked")
	}
}

func TestAllowResetsAfterWindow(t *testing.T) {
	w, clk := newWindow(t, 1)
	ip := "203.0.113.20"

	if !w.Allow(ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if w.Allow(ip) {
		t.Fatalf("expected second attempt to be blocked")
	}
	clk.advance(61 * time.Second)
	if !w.Allow(ip) {
		t.Fatalf("expected attempt after window to be allowed")
	}
}

func TestAllowIsPerKey(t *testing.T) {
	w, _ := newWindow(t, 1)

	if !w.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !w.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if w.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestCheckDoesNotRecord(t *testing.T) {
	w, _ := newWindow(t, 1)
	ip := "203.0.113.40"

	for i := 0; i < 3; i++ {
		if !w.Check(ip) {
			t.Fatalf("Check %d blocked without any recorded failure", i)
		}
	}
	w.Record(ip)
	if w.Check(ip) {
		t.Fatalf("expected block after a recorded failure")
	}
}

func TestSweepForgetsExpiredKeys(t *testing.T) {
	w, clk := newWindow(t, 1)
	w.Record("203.0.113.50")
	w.Record("203.0.113.51")
	clk.advance(30 * time.Second)
	w.Record("203.0.113.51")

	clk.advance(45 * time.Second)
	w.Sweep()
	if n := w.Len(); n != 1 {
		t.Fatalf("sweep kept %d keys, want 1", n)
	}
}

func TestStopEndsSweeper(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	w := New(1, 10*time.Millisecond)
	w.Stop()
	w.Stop()
}

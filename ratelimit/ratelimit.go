// Package ratelimit counts events per key in a sliding time window.
package ratelimit

import (
	"sync"
	"time"
)

// Window allows at most Max events per key within a sliding window. Expired
// entries are dropped lazily and by a background sweep; call Stop to end it.
type Window struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
	done chan struct{}
	once sync.Once
}

// Option configures a Window.
type Option func(*Window)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(w *Window) { w.now = now }
}

// New returns a Window allowing max events per window and starts its sweep.
func New(max int, window time.Duration, opts ...Option) *Window {
	w := &Window{
		max:    max,
		window: window,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w
}

func (w *Window) run() {
	ticker := time.NewTicker(w.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.Sweep()
		case <-w.done:
			return
		}
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (w *Window) Stop() {
	w.once.Do(func() { close(w.done) })
}

// Sweep forgets every key without events inside the window.
func (w *Window) Sweep() {
	cutoff := w.now().Add(-w.window)
	w.mu.Lock()
	defer w.mu.Unlock()
	for key := range w.hits {
		w.trim(key, cutoff)
	}
}

// Len is the number of keys currently tracked.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.hits)
}

// trim drops expired events of key and returns how many remain. w.mu must be held.
func (w *Window) trim(key string, cutoff time.Time) int {
	hits := w.hits[key]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(w.hits, key)
	} else {
		w.hits[key] = kept
	}
	return len(kept)
}

// Allow records an event for key unless key is already at the limit.
func (w *Window) Allow(key string) bool {
	now := w.now()
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.trim(key, now.Add(-w.window)) >= w.max {
		return false
	}
	w.hits[key] = append(w.hits[key], now)
	return true
}

// Check reports whether key is under the limit without recording anything. Login
// flows Check first and Record only failures.
func (w *Window) Check(key string) bool {
	now := w.now()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.trim(key, now.Add(-w.window)) < w.max
}

// Record registers an event for key.
func (w *Window) Record(key string) {
	now := w.now()
	w.mu.Lock()
	w.hits[key] = append(w.hits[key], now)
	w.mu.Unlock()
}

// Package stars fetches a GitHub repository's star count for the header badge.
// Fetching is best effort: a failed request leaves the last known count (or none)
// in place and is never retried early.
package stars

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultAPI = "https://api.github.com"

// Fetcher caches the star count of one repository.
type Fetcher struct {
	repo   string
	api    string
	client *http.Client
	log    *zap.Logger

	mu    sync.RWMutex
	count int
	known bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithAPI overrides the GitHub API base URL.
func WithAPI(base string) Option {
	return func(f *Fetcher) { f.api = strings.TrimSuffix(base, "/") }
}

// WithClient sets the HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithLogger sets the logger for failed fetches.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

// New creates a fetcher for repo in "owner/name" form.
func New(repo string, opts ...Option) *Fetcher {
	f := &Fetcher{
		repo:   strings.Trim(repo, "/"),
		api:    defaultAPI,
		client: &http.Client{Timeout: 5 * time.Second},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Count returns the last fetched count and whether one has ever been fetched.
func (f *Fetcher) Count() (int, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.count, f.known
}

// Refresh fetches the count once.
func (f *Fetcher) Refresh(ctx context.Context) error {
	if f.repo == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.api+"/repos/"+f.repo, nil)
	if err != nil {
		return fmt.Errorf("stars: build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("stars: fetch %s: %w", f.repo, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stars: fetch %s: status %d", f.repo, resp.StatusCode)
	}
	var body struct {
		Stargazers int `json:"stargazers_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("stars: decode: %w", err)
	}
	f.mu.Lock()
	f.count = body.Stargazers
	f.known = true
	f.mu.Unlock()
	return nil
}

// Start refreshes immediately and then every interval until ctx is done.
func (f *Fetcher) Start(ctx context.Context, interval time.Duration) {
	if f.repo == "" {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if err := f.Refresh(ctx); err != nil && ctx.Err() == nil {
				f.log.Warn("star count fetch failed", zap.Error(err))
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Format renders a count the way the badge shows it: 950, 1.2k, 12k.
func Format(n int) string {
	switch {
	case n < 1000:
		return fmt.Sprintf("%d", n)
	case n < 10000:
		s := fmt.Sprintf("%.1fk", float64(n)/1000)
		return strings.Replace(s, ".0k", "k", 1)
	default:
		return fmt.Sprintf("%dk", n/1000)
	}
}

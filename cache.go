package showcase

import (
	"database/sql"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eringen/showcase/content"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// postSnapshot is one immutable load of the published posts.
type postSnapshot struct {
	posts  []content.Post
	bySlug map[string]int
	loaded time.Time
}

// PostCache keeps the published posts in memory for ttl. Every blog request filters
// the whole slice, so readers take a snapshot without locking; only reloads and
// invalidation serialise on mu.
type PostCache struct {
	store *Store
	ttl   time.Duration

	mu  sync.Mutex
	cur atomic.Pointer[postSnapshot]
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) fresh() *postSnapshot {
	if s := c.cur.Load(); s != nil && time.Since(s.loaded) < c.ttl {
		return s
	}
	return nil
}

// Invalidate drops the snapshot. A reload already in flight finishes first, so its
// result cannot outlive the invalidation.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.cur.Store(nil)
	c.mu.Unlock()
}

func (c *PostCache) snapshot() (*postSnapshot, error) {
	if s := c.fresh(); s != nil {
		return s, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.fresh(); s != nil {
		return s, nil
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []content.Post{}
	}
	s := &postSnapshot{posts: posts, bySlug: make(map[string]int, len(posts)), loaded: time.Now()}
	for i, p := range posts {
		s.bySlug[p.Slug] = i
	}
	c.cur.Store(s)
	return s, nil
}

// ListPosts returns published posts, newest first. Callers must not modify the slice.
func (c *PostCache) ListPosts() ([]content.Post, error) {
	s, err := c.snapshot()
	if err != nil {
		return nil, err
	}
	return s.posts, nil
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(slug string) (content.Post, error) {
	s, err := c.snapshot()
	if err != nil {
		return content.Post{}, err
	}
	i, ok := s.bySlug[slug]
	if !ok {
		return content.Post{}, ErrNotFound
	}
	return s.posts[i], nil
}

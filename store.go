package showcase

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/eringen/showcase/content"
)

// Store wraps a SQLite database and provides CRUD operations for posts.
type Store struct {
	db *sql.DB
}

// goose keeps its base FS and dialect in package state.
var migrateMu sync.Mutex

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and applies pending migrations.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("showcase: create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("showcase: open db: %w", err)
	}
	// WAL lets readers proceed during writes; synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("showcase: configure db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()
	goose.SetBaseFS(migrations)
	goose.SetLogger(log.New(io.Discard, "", 0))
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("showcase: goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("showcase: migrate: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const postColumns = `slug, title, excerpt, image, date, authors, body, published`

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (content.Post, error) {
	var p content.Post
	var authors string
	var published int
	if err := row.Scan(&p.Slug, &p.Title, &p.Excerpt, &p.Image, &p.Date, &authors, &p.Body, &published); err != nil {
		return content.Post{}, err
	}
	if authors != "" {
		if err := json.Unmarshal([]byte(authors), &p.Authors); err != nil {
			return content.Post{}, fmt.Errorf("showcase: decode authors of %q: %w", p.Slug, err)
		}
	}
	p.Published = published == 1
	return p, nil
}

func (s *Store) queryPosts(where string, args ...any) ([]content.Post, error) {
	rows, err := s.db.Query(`SELECT `+postColumns+` FROM posts `+where+` ORDER BY date DESC, slug`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}
	cats, err := s.categories()
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Categories = cats[posts[i].Slug]
	}
	return posts, nil
}

// categories returns every post's categories in authored order.
func (s *Store) categories() (map[string][]content.Category, error) {
	rows, err := s.db.Query(`SELECT post_slug, slug, name FROM post_categories ORDER BY post_slug, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string][]content.Category)
	for rows.Next() {
		var post string
		var c content.Category
		if err := rows.Scan(&post, &c.Slug, &c.Name); err != nil {
			return nil, err
		}
		out[post] = append(out[post], c)
	}
	return out, rows.Err()
}

// ListPosts returns all published posts ordered by date descending.
func (s *Store) ListPosts() ([]content.Post, error) {
	return s.queryPosts(`WHERE published = 1`)
}

// ListAllPosts returns every post (published and drafts) ordered by date descending.
func (s *Store) ListAllPosts() ([]content.Post, error) {
	return s.queryPosts(``)
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (content.Post, error) {
	return s.one(`WHERE slug = ? AND published = 1`, slug)
}

// GetPostAny returns a post by slug regardless of published status (for admin).
func (s *Store) GetPostAny(slug string) (content.Post, error) {
	return s.one(`WHERE slug = ?`, slug)
}

func (s *Store) one(where string, args ...any) (content.Post, error) {
	posts, err := s.queryPosts(where, args...)
	if err != nil {
		return content.Post{}, err
	}
	if len(posts) == 0 {
		return content.Post{}, ErrNotFound
	}
	return posts[0], nil
}

// SavePost upserts a post and replaces its categories.
func (s *Store) SavePost(p content.Post) error {
	return s.SavePosts([]content.Post{p})
}

// SavePosts upserts posts in one transaction.
func (s *Store) SavePosts(posts []content.Post) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, p := range posts {
		if err := savePost(tx, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func savePost(tx *sql.Tx, p content.Post) error {
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("showcase: post %q has no slug", p.Title)
	}
	authors := "[]"
	if len(p.Authors) > 0 {
		b, err := json.Marshal(p.Authors)
		if err != nil {
			return fmt.Errorf("showcase: encode authors: %w", err)
		}
		authors = string(b)
	}
	published := 0
	if p.Published {
		published = 1
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Excerpt, p.Image, p.Date, authors, p.Body, published); err != nil {
		return fmt.Errorf("showcase: save post %q: %w", p.Slug, err)
	}
	if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_slug = ?`, p.Slug); err != nil {
		return err
	}
	seen := make(map[string]bool, len(p.Categories))
	for i, c := range p.Categories {
		slug := strings.TrimSpace(c.Slug)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		if _, err := tx.Exec(`INSERT INTO post_categories (post_slug, slug, name, position) VALUES (?, ?, ?, ?)`,
			p.Slug, slug, strings.TrimSpace(c.Name), i); err != nil {
			return fmt.Errorf("showcase: save categories of %q: %w", p.Slug, err)
		}
	}
	return nil
}

// DeletePost removes a post and its categories by slug.
func (s *Store) DeletePost(slug string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_slug = ?`, slug); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE slug = ?`, slug); err != nil {
		return err
	}
	return tx.Commit()
}

// ParseCategories reads a comma-separated "Name" or "Name:slug" list from the admin
// form. Missing slugs are derived from the name.
func ParseCategories(raw string) []content.Category {
	var out []content.Category
	for _, part := range FilterEmpty(strings.Split(raw, ",")) {
		name, slug, ok := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if !ok || strings.TrimSpace(slug) == "" {
			slug = Slugify(name)
		}
		slug = strings.TrimSpace(slug)
		if name == "" || slug == "" {
			continue
		}
		out = append(out, content.Category{Name: name, Slug: slug})
	}
	return out
}

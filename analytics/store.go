package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Store persists events in SQLite and implements Reporter.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// NewStore opens (or creates) the analytics database at path.
func NewStore(path string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("analytics: create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("analytics: open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("analytics: enable WAL: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{db: db, log: log}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("analytics: ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			props TEXT NOT NULL DEFAULT '{}',
			visitor_id TEXT NOT NULL DEFAULT '',
			browser TEXT NOT NULL DEFAULT '',
			os TEXT NOT NULL DEFAULT '',
			device TEXT NOT NULL DEFAULT '',
			referrer TEXT NOT NULL DEFAULT '',
			at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_events_at ON events(at);
		CREATE INDEX IF NOT EXISTS idx_events_name ON events(name);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// GetSetting returns a stored setting, or "" when unset.
func (s *Store) GetSetting(key string) (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

// SetSetting upserts a setting.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Save stores one event.
func (s *Store) Save(ctx context.Context, e Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	props := "{}"
	if len(e.Props) > 0 {
		b, err := json.Marshal(e.Props)
		if err != nil {
			return fmt.Errorf("analytics: encode props: %w", err)
		}
		props = string(b)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO events (id, name, path, props, visitor_id, browser, os, device, referrer, at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), e.Name, e.Path, props, e.VisitorID, e.Browser, e.OS, e.Device, e.Referrer, e.At.UTC())
	return err
}

// Capture saves e and logs, rather than returns, any failure.
func (s *Store) Capture(ctx context.Context, e Event) {
	if err := s.Save(ctx, e); err != nil {
		s.log.Warn("analytics capture failed", zap.String("event", e.Name), zap.Error(err))
	}
}

// NameCount is an aggregate row.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary aggregates events since a point in time.
type Summary struct {
	Since    time.Time   `json:"since"`
	Total    int         `json:"total"`
	Visitors int         `json:"visitors"`
	Events   []NameCount `json:"events"`
	Paths    []NameCount `json:"paths"`
}

// Summarize counts events, distinct visitors and top paths since since.
func (s *Store) Summarize(ctx context.Context, since time.Time, limit int) (Summary, error) {
	sum := Summary{Since: since}
	since = since.UTC()
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT visitor_id) FROM events WHERE at >= ?`, since).
		Scan(&sum.Total, &sum.Visitors); err != nil {
		return Summary{}, err
	}
	var err error
	if sum.Events, err = s.group(ctx, `SELECT name, COUNT(*) c FROM events WHERE at >= ? GROUP BY name ORDER BY c DESC, name LIMIT ?`, since, limit); err != nil {
		return Summary{}, err
	}
	if sum.Paths, err = s.group(ctx, `SELECT path, COUNT(*) c FROM events WHERE at >= ? AND name = 'page_view' GROUP BY path ORDER BY c DESC, path LIMIT ?`, since, limit); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (s *Store) group(ctx context.Context, query string, args ...any) ([]NameCount, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []NameCount
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, err
		}
		out = append(out, nc)
	}
	return out, rows.Err()
}

// Prune deletes events older than retention.
func (s *Store) Prune(ctx context.Context, retention time.Duration) error {
	cutoff := time.Now().UTC().Add(-retention)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE at < ?`, cutoff); err != nil {
		return fmt.Errorf("analytics: prune: %w", err)
	}
	return nil
}

// StartPruning prunes on every interval until the returned stop function is called.
func (s *Store) StartPruning(retention, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.Prune(context.Background(), retention); err != nil {
					s.log.Warn("analytics prune failed", zap.Error(err))
				}
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

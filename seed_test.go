package showcase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eringen/showcase/content"
)

const seedYAML = `
posts:
  - slug: first
    title: First
    date: "2026-03-01"
`

func writeContent(t *testing.T, path, src string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSeedFile(t *testing.T) {
	a := newTestApp(t, nil)
	path := filepath.Join(t.TempDir(), "content.yaml")
	writeContent(t, path, seedYAML)

	if _, err := a.Cache.ListPosts(); err != nil {
		t.Fatal(err)
	}
	n, err := a.SeedFile(path)
	if err != nil {
		t.Fatalf("SeedFile: %v", err)
	}
	if n != 1 {
		t.Fatalf("seeded %d posts, want 1", n)
	}
	if _, err := a.Cache.GetPost("first"); err != nil {
		t.Fatalf("seeded post not visible through the cache: %v", err)
	}
}

func TestSeedFileKeepsStoreOnInvalidContent(t *testing.T) {
	a := newTestApp(t, nil)
	seedPosts(t, a, testPost("kept", "2026-01-01", true))
	path := filepath.Join(t.TempDir(), "content.yaml")
	writeContent(t, path, "posts:\n  - title: no slug\n    date: \"2026-01-01\"\n")

	if _, err := a.SeedFile(path); !errors.Is(err, content.ErrInvalidPost) {
		t.Fatalf("err = %v, want ErrInvalidPost", err)
	}
	if _, err := a.Store.GetPost("kept"); err != nil {
		t.Fatalf("existing post lost: %v", err)
	}
}

func TestSeedFileMissing(t *testing.T) {
	a := newTestApp(t, nil)
	if _, err := a.SeedFile(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestWatchContentReloads(t *testing.T) {
	a := newTestApp(t, nil)
	path := filepath.Join(t.TempDir(), "content.yaml")
	writeContent(t, path, seedYAML)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := a.WatchContent(ctx, path, 20*time.Millisecond); err != nil {
		t.Fatalf("WatchContent: %v", err)
	}

	writeContent(t, path, seedYAML+`  - slug: second
    title: Second
    date: "2026-03-02"
`)
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := a.Cache.GetPost("second"); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("edited content was not reloaded")
}

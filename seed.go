package showcase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/eringen/showcase/content"
)

// SeedFile upserts every post of a YAML content file and invalidates the cache.
// Posts missing from the file are left alone; the admin owns deletions.
func (a *App) SeedFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("showcase: open content: %w", err)
	}
	defer f.Close()
	posts, err := content.Load(f)
	if err != nil {
		return 0, fmt.Errorf("showcase: load %s: %w", path, err)
	}
	if err := a.Store.SavePosts(posts); err != nil {
		return 0, fmt.Errorf("showcase: seed: %w", err)
	}
	if a.Cache != nil {
		a.Cache.Invalidate()
	}
	return len(posts), nil
}

// WatchContent reseeds from path whenever it changes, until ctx is done. Bursts of
// events within debounce collapse into one reload. Reload failures are logged and
// the previous content keeps serving.
func (a *App) WatchContent(ctx context.Context, path string, debounce time.Duration) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("showcase: watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory and filter by name.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("showcase: watch %s: %w", path, err)
	}

	go func() {
		defer w.Close()
		var timer *time.Timer
		reload := make(chan struct{}, 1)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})
			case <-reload:
				n, err := a.SeedFile(abs)
				if err != nil {
					a.Log.Warn("content reload failed", zap.String("path", path), zap.Error(err))
					continue
				}
				a.Log.Info("content reloaded", zap.String("path", path), zap.Int("posts", n))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				a.Log.Warn("content watcher", zap.Error(err))
			}
		}
	}()
	return nil
}

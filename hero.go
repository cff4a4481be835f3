package showcase

import (
	"bytes"
	"errors"
	"image/color"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/showcase/dither"
)

const (
	heroSubdir       = "hero"
	defaultHeroWidth = 800
	maxHeroSource    = 20 << 20 // 20MB
)

// heroCache keeps rendered hero images keyed by source, width and palette. It is
// bounded; when full, the oldest entry is evicted.
type heroCache struct {
	mu      sync.Mutex
	max     int
	entries map[string]heroEntry
	order   []string
}

type heroEntry struct {
	modTime time.Time
	png     []byte
}

func newHeroCache(max int) *heroCache {
	return &heroCache{max: max, entries: make(map[string]heroEntry)}
}

func (h *heroCache) get(key string, modTime time.Time) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.entries[key]
	if !ok || !e.modTime.Equal(modTime) {
		return nil, false
	}
	return e.png, true
}

func (h *heroCache) put(key string, modTime time.Time, png []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.entries[key]; !ok {
		h.order = append(h.order, key)
	}
	h.entries[key] = heroEntry{modTime: modTime, png: png}
	for len(h.order) > h.max {
		delete(h.entries, h.order[0])
		h.order = h.order[1:]
	}
}

// heroPalette reads ?fg= and ?bg= hex colors. Either may be omitted.
func heroPalette(fg, bg string) (color.Palette, error) {
	dark, light := color.Color(color.Black), color.Color(color.White)
	if fg != "" {
		c, err := dither.ParseHex(fg)
		if err != nil {
			return nil, err
		}
		dark = c
	}
	if bg != "" {
		c, err := dither.ParseHex(bg)
		if err != nil {
			return nil, err
		}
		light = c
	}
	return dither.Duotone(dark, light), nil
}

// handleHero serves a dithered PNG rendition of an image under public/hero.
func (a *App) handleHero(c echo.Context) error {
	name := filepath.Base(c.Param("name"))
	if name == "." || name == "/" || strings.HasPrefix(name, ".") {
		return echo.ErrNotFound
	}
	width := defaultHeroWidth
	if v := c.QueryParam("w"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.String(http.StatusBadRequest, "Invalid width")
		}
		width = min(n, dither.MaxWidth)
	}
	fg, bg := c.QueryParam("fg"), c.QueryParam("bg")
	palette, err := heroPalette(fg, bg)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid color")
	}

	path := filepath.Join(a.staticDir, heroSubdir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return echo.ErrNotFound
		}
		return err
	}
	if info.Size() > maxHeroSource {
		return c.String(http.StatusRequestEntityTooLarge, "Source image too large")
	}

	key := name + "|" + strconv.Itoa(width) + "|" + fg + "|" + bg
	if png, ok := a.heroes.get(key, info.ModTime()); ok {
		return c.Blob(http.StatusOK, "image/png", png)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	var buf bytes.Buffer
	if err := dither.Render(&buf, f, width, palette); err != nil {
		if errors.Is(err, dither.ErrTooLarge) {
			return c.String(http.StatusRequestEntityTooLarge, "Source image too large")
		}
		return c.String(http.StatusUnprocessableEntity, "Unsupported image")
	}
	a.heroes.put(key, info.ModTime(), buf.Bytes())
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

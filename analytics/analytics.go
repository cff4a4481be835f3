// Package analytics captures best-effort usage events. Callers depend on the
// Reporter interface; Nop is used when analytics is disabled.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Event names emitted by the site.
const (
	EventPageView   = "page_view"
	EventBlogFilter = "blog_filter"
	EventDeckSlide  = "deck_slide"
	EventHackathon  = "hackathon_action"
)

// Event is one captured interaction.
type Event struct {
	Name      string
	Path      string
	Props     map[string]string
	VisitorID string
	Browser   string
	OS        string
	Device    string
	Referrer  string
	At        time.Time
}

// Reporter receives events. Capture must not block the caller for long and must not
// fail the request that produced the event.
type Reporter interface {
	Capture(ctx context.Context, e Event)
}

// Nop discards every event.
type Nop struct{}

// Capture does nothing.
func (Nop) Capture(context.Context, Event) {}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop{}
	}
	return r
}

// salt is the per-installation secret mixed into visitor hashes.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads the installation salt from store, generating it on first run.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("analytics: read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("analytics: generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("analytics: store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

// VisitorID derives an anonymous visitor identifier from IP and User-Agent.
func VisitorID(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(salt.value + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// ParseUserAgent extracts browser, OS and device class from a User-Agent string.
func ParseUserAgent(ua string) (browser, os, device string) {
	ua = strings.ToLower(ua)

	// More specific browser tokens first: Edge and Opera also claim Chrome.
	switch {
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr"):
		browser = "Opera"
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	default:
		browser = "Other"
	}

	// Android UAs contain "linux".
	switch {
	case strings.Contains(ua, "windows"):
		os = "Windows"
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		os = "iOS"
	case strings.Contains(ua, "macintosh") || strings.Contains(ua, "mac os"):
		os = "macOS"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	default:
		os = "Other"
	}

	// iPad UAs contain "mobile".
	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		device = "Tablet"
	case strings.Contains(ua, "mobile"):
		device = "Mobile"
	default:
		device = "Desktop"
	}
	return
}

var botTokens = []string{
	"bot", "crawler", "spider", "crawl", "slurp", "scrape",
	"facebookexternalhit", "yandex", "baidu",
}

// IsBot reports whether ua looks like a crawler.
func IsBot(ua string) bool {
	ua = strings.ToLower(ua)
	for _, tok := range botTokens {
		if strings.Contains(ua, tok) {
			return true
		}
	}
	return false
}

var referrerDomain = regexp.MustCompile(`^https?://(?:www\.)?([^/]+)`)

// CleanReferrer reduces a referrer URL to a display name.
func CleanReferrer(ref string) string {
	if ref == "" {
		return "Direct"
	}
	lower := strings.ToLower(ref)
	for _, known := range []struct{ token, name string }{
		{"google.", "Google"},
		{"bing.", "Bing"},
		{"duckduckgo.", "DuckDuckGo"},
		{"github.", "GitHub"},
		{"news.ycombinator.", "Hacker News"},
	} {
		if strings.Contains(lower, known.token) {
			return known.name
		}
	}
	if m := referrerDomain.FindStringSubmatch(ref); len(m) > 1 {
		return m[1]
	}
	return "Other"
}

package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		ua                  string
		browser, os, device string
	}{
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", "Chrome", "Windows", "Desktop"},
		{"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148 Safari/604.1", "Safari", "iOS", "Tablet"},
		{"Mozilla/5.0 (Linux; Android 14) AppleWebKit/537.36 Chrome/120.0 Mobile Safari/537.36 EdgA/120", "Edge", "Android", "Mobile"},
		{"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", "Firefox", "Linux", "Desktop"},
		{"", "Other", "Other", "Desktop"},
	}
	for _, tt := range tests {
		b, o, d := ParseUserAgent(tt.ua)
		if b != tt.browser || o != tt.os || d != tt.device {
			t.Errorf("ParseUserAgent(%q) = %s/%s/%s, want %s/%s/%s", tt.ua, b, o, d, tt.browser, tt.os, tt.device)
		}
	}
}

func TestIsBot(t *testing.T) {
	if !IsBot("Mozilla/5.0 (compatible; Googlebot/2.1)") {
		t.Error("Googlebot not detected")
	}
	if IsBot("Mozilla/5.0 (Macintosh) Safari/605") {
		t.Error("Safari flagged as bot")
	}
}

func TestCleanReferrer(t *testing.T) {
	tests := map[string]string{
		"":                              "Direct",
		"https://www.google.com/search": "Google",
		"https://news.ycombinator.com/": "Hacker News",
		"https://www.example.org/a/b":   "example.org",
		"not a url":                     "Other",
	}
	for in, want := range tests {
		if got := CleanReferrer(in); got != want {
			t.Errorf("CleanReferrer(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOrNop(t *testing.T) {
	if _, ok := OrNop(nil).(Nop); !ok {
		t.Fatal("OrNop(nil) should be Nop")
	}
	OrNop(nil).Capture(context.Background(), Event{Name: "x"})
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSummarize(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	events := []Event{
		{Name: EventPageView, Path: "/blog", VisitorID: "a", At: now},
		{Name: EventPageView, Path: "/blog", VisitorID: "b", At: now},
		{Name: EventPageView, Path: "/deck/", VisitorID: "a", At: now},
		{Name: EventDeckSlide, Path: "/deck/", VisitorID: "a", Props: map[string]string{"slide": "2"}, At: now},
		{Name: EventPageView, Path: "/old", VisitorID: "c", At: now.AddDate(0, 0, -90)},
	}
	for _, e := range events {
		if err := s.Save(ctx, e); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	sum, err := s.Summarize(ctx, now.AddDate(0, 0, -30), 10)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.Total != 4 || sum.Visitors != 2 {
		t.Fatalf("Total=%d Visitors=%d, want 4 and 2", sum.Total, sum.Visitors)
	}
	if len(sum.Paths) != 2 || sum.Paths[0].Name != "/blog" || sum.Paths[0].Count != 2 {
		t.Fatalf("Paths = %+v", sum.Paths)
	}
	if len(sum.Events) != 2 || sum.Events[0].Name != EventPageView {
		t.Fatalf("Events = %+v", sum.Events)
	}

	if err := s.Prune(ctx, 60*24*time.Hour); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	all, err := s.Summarize(ctx, now.AddDate(-1, 0, 0), 10)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if all.Total != 4 {
		t.Fatalf("Total after prune = %d, want 4", all.Total)
	}
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)
	if v, err := s.GetSetting("missing"); err != nil || v != "" {
		t.Fatalf("GetSetting(missing) = %q, %v", v, err)
	}
	if err := s.SetSetting("k", "1"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting("k", "2"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.GetSetting("k"); v != "2" {
		t.Fatalf("GetSetting(k) = %q, want 2", v)
	}
}

func TestCollect(t *testing.T) {
	s := newTestStore(t)
	h := NewHandler(s)
	defer h.Close()
	e := echo.New()

	post := func(body string, header map[string]string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/analytics/collect", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh) Safari/605")
		for k, v := range header {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		if err := h.Collect(e.NewContext(req, rec)); err != nil {
			t.Fatalf("Collect: %v", err)
		}
		return rec.Code
	}

	if code := post(`{"path":"/blog"}`, nil); code != http.StatusNoContent {
		t.Fatalf("collect status = %d", code)
	}
	if code := post(`{"path":"/x"}`, map[string]string{"DNT": "1"}); code != http.StatusNoContent {
		t.Fatalf("DNT status = %d", code)
	}
	if code := post(`{"path":"`+strings.Repeat("a", maxPathLen+1)+`"}`, nil); code != http.StatusBadRequest {
		t.Fatalf("oversized path status = %d", code)
	}
	if code := post(`{"path":"/bot"}`, map[string]string{"User-Agent": "Googlebot/2.1"}); code != http.StatusNoContent {
		t.Fatalf("bot status = %d", code)
	}

	sum, err := s.Summarize(context.Background(), time.Now().Add(-time.Hour), 10)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Total != 1 || sum.Paths[0].Name != "/blog" {
		t.Fatalf("summary = %+v, want exactly the /blog view", sum)
	}
}

func TestCollectLimitsPerIP(t *testing.T) {
	h := NewHandler(newTestStore(t))
	defer h.Close()
	e := echo.New()

	var last int
	for i := 0; i < 61; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/analytics/collect", strings.NewReader(`{"path":"/"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.RemoteAddr = "203.0.113.9:1234"
		rec := httptest.NewRecorder()
		if err := h.Collect(e.NewContext(req, rec)); err != nil {
			t.Fatal(err)
		}
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("61st request status = %d, want 429", last)
	}
}

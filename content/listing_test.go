package content

import (
	"fmt"
	"net/url"
	"testing"
)

func manyPosts(n int) []Post {
	posts := make([]Post, n)
	for i := range posts {
		posts[i] = Post{
			Slug:       fmt.Sprintf("post-%d", i),
			Title:      fmt.Sprintf("Post %d", i),
			Categories: []Category{{Slug: "news", Name: "News"}},
		}
	}
	return posts
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestNewListingSeedsFromURL(t *testing.T) {
	tests := []struct {
		raw      string
		category string
		search   string
	}{
		{"/blog", "", ""},
		{"/blog/", "", ""},
		{"/blog/ai", "ai", ""},
		{"/blog/ai/?search=robots", "ai", "robots"},
		{"/blog?category=design&search=tips", "design", "tips"},
		{"/blogroll", "", ""},
		{"/blog/caf%C3%A9", "café", ""},
	}
	for _, tt := range tests {
		l := NewListing(Options{}, mustURL(t, tt.raw))
		st := l.State()
		if st.Category != tt.category || st.Search != tt.search {
			t.Errorf("NewListing(%q) = %+v, want category=%q search=%q", tt.raw, st, tt.category, tt.search)
		}
		if st.Displayed != DefaultPageSize {
			t.Errorf("NewListing(%q) displayed = %d, want %d", tt.raw, st.Displayed, DefaultPageSize)
		}
	}
}

func TestSearchParamRoundTrip(t *testing.T) {
	l := NewListing(Options{}, mustURL(t, "/blog?search=design"))
	pg := l.Page(samplePosts())
	if pg.Total != 1 || pg.Featured[0].Slug != "design-tips" {
		t.Fatalf("Page = %+v, want only design-tips", pg)
	}
}

func TestBlankSearchIsNoSearch(t *testing.T) {
	l := NewListing(Options{}, mustURL(t, "/blog/ai?search=+++"))
	if got := l.State().Search; got != "" {
		t.Fatalf("Search = %q, want empty", got)
	}
	if got := l.Location(); got != "/blog/ai" {
		t.Fatalf("Location = %q, want /blog/ai", got)
	}

	l.SetSearchTerm("  models ")
	if got := l.Location(); got != "/blog/ai?search=models" {
		t.Fatalf("Location = %q, want the trimmed term", got)
	}
	l.SetSearchTerm(" \t")
	if got := l.Location(); got != "/blog/ai" {
		t.Fatalf("Location = %q after a blank term", got)
	}
}

func TestFilterChangesResetDisplayed(t *testing.T) {
	posts := manyPosts(40)
	l := NewListing(Options{PageSize: 5}, nil)
	l.ShowMore(len(posts))
	l.ShowMore(len(posts))
	if got := l.State().Displayed; got != 15 {
		t.Fatalf("displayed = %d, want 15", got)
	}

	l.SetCategory("news")
	if got := l.State().Displayed; got != 5 {
		t.Fatalf("after SetCategory displayed = %d, want 5", got)
	}
	l.ShowMore(len(posts))
	l.SetSearchTerm("post")
	if got := l.State().Displayed; got != 5 {
		t.Fatalf("after SetSearchTerm displayed = %d, want 5", got)
	}
	l.ShowMore(len(posts))
	l.ClearFilters()
	st := l.State()
	if st.Displayed != 5 || st.Category != "" || st.Search != "" {
		t.Fatalf("after ClearFilters state = %+v", st)
	}
}

func TestShowMoreStopsAtTotal(t *testing.T) {
	posts := manyPosts(12)
	l := NewListing(Options{PageSize: 5}, nil)
	for i := 0; i < 10; i++ {
		l.ShowMore(len(posts))
	}
	st := l.State()
	if st.Displayed != 15 {
		t.Fatalf("displayed = %d, want 15", st.Displayed)
	}
	if st.Displayed%5 != 0 {
		t.Fatalf("displayed %d is not a whole number of pages", st.Displayed)
	}
	pg := l.Page(posts)
	if pg.Shown != 12 || pg.HasMore {
		t.Fatalf("Shown = %d HasMore = %v, want 12 false", pg.Shown, pg.HasMore)
	}
	if l.ShowMore(len(posts)) {
		t.Fatal("ShowMore past the end should report no change")
	}
}

func TestPageSplit(t *testing.T) {
	posts := manyPosts(8)
	l := NewListing(Options{PageSize: 3}, nil)
	pg := l.Page(posts)
	if len(pg.Featured) != 2 || len(pg.Grid) != 1 {
		t.Fatalf("featured=%d grid=%d, want 2 and 1", len(pg.Featured), len(pg.Grid))
	}
	if !pg.HasMore || pg.Total != 8 {
		t.Fatalf("HasMore=%v Total=%d", pg.HasMore, pg.Total)
	}
	if pg.Featured[0].Slug != "post-0" || pg.Grid[0].Slug != "post-2" {
		t.Fatalf("unexpected order: %v %v", slugs(pg.Featured), slugs(pg.Grid))
	}

	one := l.Page(posts[:1])
	if len(one.Featured) != 1 || len(one.Grid) != 0 {
		t.Fatalf("single post split featured=%d grid=%d", len(one.Featured), len(one.Grid))
	}
}

func TestPageEmptyReasons(t *testing.T) {
	posts := samplePosts()
	tests := []struct {
		category, search string
		reason           EmptyReason
		message          string
	}{
		{"", "zzz", ReasonSearch, `No posts match "zzz".`},
		{"design", "zzz", ReasonBoth, `No posts in Design match "zzz".`},
		{"ops", "", ReasonCategory, "No posts in ops yet."},
	}
	for _, tt := range tests {
		l := NewListing(Options{}, nil)
		l.SetCategory(tt.category)
		l.SetSearchTerm(tt.search)
		pg := l.Page(posts)
		if !pg.Empty || pg.Reason != tt.reason {
			t.Errorf("(%q,%q) Empty=%v Reason=%v, want reason %v", tt.category, tt.search, pg.Empty, pg.Reason, tt.reason)
		}
		if pg.Message() != tt.message {
			t.Errorf("(%q,%q) Message = %q, want %q", tt.category, tt.search, pg.Message(), tt.message)
		}
	}

	pg := NewListing(Options{}, nil).Page(nil)
	if !pg.Empty || pg.Reason != ReasonNone || len(pg.Categories) != 1 {
		t.Fatalf("nil posts page = %+v", pg)
	}
}

func TestLocation(t *testing.T) {
	l := NewListing(Options{}, nil)
	if got := l.Location(); got != "/blog" {
		t.Fatalf("Location = %q, want /blog", got)
	}
	l.SetCategory("ai")
	if got := l.Location(); got != "/blog/ai" {
		t.Fatalf("Location = %q, want /blog/ai", got)
	}
	l.SetSearchTerm("large models")
	if got := l.Location(); got != "/blog/ai?search=large+models" {
		t.Fatalf("Location = %q", got)
	}
	if got := l.CategoryLocation("design"); got != "/blog/design?search=large+models" {
		t.Fatalf("CategoryLocation = %q", got)
	}
	l.SetSearchTerm("")
	if got := l.Location(); got != "/blog/ai" {
		t.Fatalf("Location after clearing search = %q", got)
	}
	l.ClearFilters()
	if got := l.Location(); got != l.BaseLocation() {
		t.Fatalf("Location after ClearFilters = %q, want %q", got, l.BaseLocation())
	}

	q := NewListing(Options{BasePath: "news/", QueryStyle: true}, nil)
	q.SetCategory("ai")
	q.SetSearchTerm("x")
	if got := q.Location(); got != "/news?category=ai&search=x" {
		t.Fatalf("query style Location = %q", got)
	}
}

func TestRestore(t *testing.T) {
	l := NewListing(Options{PageSize: 4}, nil)
	tests := []struct{ in, want int }{{0, 4}, {3, 4}, {8, 8}, {11, 8}, {-5, 4}}
	for _, tt := range tests {
		l.Restore(tt.in)
		if got := l.State().Displayed; got != tt.want {
			t.Errorf("Restore(%d) displayed = %d, want %d", tt.in, got, tt.want)
		}
	}
}

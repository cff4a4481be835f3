package views

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/showcase/content"
	"github.com/eringen/showcase/deck"
)

func render(t *testing.T, c templ.Component) (string, error) {
	t.Helper()
	var b strings.Builder
	err := c.Render(context.Background(), &b)
	return b.String(), err
}

func TestSlideBodyEveryLayout(t *testing.T) {
	for l := deck.LayoutCover; l <= deck.LayoutClosing; l++ {
		s := deck.Slide{Title: "T", Layout: l, Text: "x", Items: []deck.Item{{Label: "a", Value: 3}}}
		if _, err := render(t, slideBody(s)); err != nil {
			t.Errorf("%s: %v", l, err)
		}
	}
}

func TestSlideBodyUnknownLayout(t *testing.T) {
	_, err := render(t, slideBody(deck.Slide{Layout: deck.Layout(99)}))
	if !errors.Is(err, deck.ErrUnknownLayout) {
		t.Fatalf("err = %v, want ErrUnknownLayout", err)
	}
}

func TestDeckSlideMarksPosition(t *testing.T) {
	slides := []deck.Slide{{Title: "One"}, {Title: "Two", Layout: deck.LayoutStatement}}
	html, err := render(t, DeckSlide(DeckView{Title: "D", Slides: slides, Index: 1, Base: "/deck/"}))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`data-slide="2"`, `data-total="2"`, "Slide 2 of 2", "slide-statement"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestBlogResultsEscapes(t *testing.T) {
	post := content.Post{Slug: "x", Title: `<script>alert(1)</script>`, Date: "2026-01-01", Published: true}
	v := BlogView{
		Page: content.Page{Featured: []content.Post{post}, Total: 1, Shown: 1},
		Base: "/blog",
	}
	html, err := render(t, BlogResults(v))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatalf("title not escaped:\n%s", html)
	}
	if !strings.Contains(html, `id="blog-results"`) {
		t.Error("missing results container")
	}
}

func TestBlogResultsEmptyState(t *testing.T) {
	v := BlogView{
		Page: content.Page{
			Empty:  true,
			Reason: content.ReasonSearch,
			State:  content.FilterState{Search: "go"},
		},
		Base:     "/blog",
		ClearURL: "/blog",
	}
	html, err := render(t, BlogResults(v))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "No posts match") || !strings.Contains(html, "Clear filters") {
		t.Fatalf("empty state missing:\n%s", html)
	}
}

func TestMarkdownDropsRawHTML(t *testing.T) {
	html, err := render(t, Markdown("# Title\n\n<script>x()</script>\n\n| a |\n|---|\n| b |\n"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("raw HTML passed through")
	}
	if !strings.Contains(html, `<h1 id="title">`) || !strings.Contains(html, "<table>") {
		t.Errorf("markdown extensions not applied:\n%s", html)
	}
}

func TestHrefRejectsScriptURLs(t *testing.T) {
	if got := href("javascript:alert(1)"); strings.HasPrefix(got, "javascript:") {
		t.Fatalf("href = %q", got)
	}
	if got := href("/posts/a/"); got != "/posts/a/" {
		t.Fatalf("href = %q", got)
	}
}

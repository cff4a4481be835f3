package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/showcase/content"
)

// CategoryLink is one filter pill.
type CategoryLink struct {
	Category content.Category
	URL      string
	Active   bool
}

// BlogView is everything the blog index and its results partial render.
type BlogView struct {
	Page       content.Page
	Base       string // listing root, target of the search box
	Categories []CategoryLink
	ClearURL   string
	MoreURL    string // empty when every result is shown
}

// Blog is the full blog index page.
func Blog(site Site, meta PageMeta, v BlogView) templ.Component {
	return Layout(site, meta, component(func(o *out) {
		o.open("section", "class", "blog")
		o.el("h1", "Blog")
		o.open("form", "class", "blog-search", "role", "search", "action", href(v.Base), "method", "get",
			"hx-get", v.Base, "hx-target", "#blog-results", "hx-swap", "outerHTML",
			"hx-trigger", "input changed delay:300ms from:input[name=search], submit",
			"hx-include", "#blog-category")
		o.open("label", "for", "blog-search-input", "class", "sr-only")
		o.text("Search posts")
		o.close("label")
		o.open("input", "id", "blog-search-input", "type", "search", "name", "search",
			"value", v.Page.State.Search, "placeholder", "Search posts", "autocomplete", "off")
		o.close("form")
		o.render(BlogResults(v))
		o.close("section")
	}))
}

// BlogResults is the htmx partial swapped on every filter change.
func BlogResults(v BlogView) templ.Component {
	return component(func(o *out) {
		pg := v.Page
		o.open("div", "id", "blog-results", "aria-live", "polite")
		o.open("input", "type", "hidden", "id", "blog-category", "name", "category", "value", pg.State.Category)

		o.open("ul", "class", "category-pills")
		for _, c := range v.Categories {
			o.raw("<li>")
			o.open("a", "href", href(c.URL), "class", classIf("pill", c.Active, "pill-active"),
				"hx-get", c.URL, "hx-target", "#blog-results", "hx-swap", "outerHTML")
			o.text(c.Category.Name)
			o.close("a")
			o.raw("</li>")
		}
		o.close("ul")

		if pg.Empty {
			o.open("div", "class", "empty-state")
			o.el("p", pg.Message())
			if pg.Reason != content.ReasonNone {
				o.el("a", "Clear filters", "href", href(v.ClearURL), "class", "button",
					"hx-get", v.ClearURL, "hx-target", "#blog-results", "hx-swap", "outerHTML")
			}
			o.close("div")
			o.close("div")
			return
		}

		o.el("p", "Showing "+itoa(pg.Shown)+" of "+itoa(pg.Total), "class", "result-count")
		if len(pg.Featured) > 0 {
			o.open("div", "class", "featured")
			for _, p := range pg.Featured {
				card(o, p, true)
			}
			o.close("div")
		}
		if len(pg.Grid) > 0 {
			o.open("div", "class", "grid")
			for _, p := range pg.Grid {
				card(o, p, false)
			}
			o.close("div")
		}
		if pg.HasMore && v.MoreURL != "" {
			o.el("button", "Show more", "type", "button", "class", "button show-more",
				"hx-get", v.MoreURL, "hx-target", "#blog-results", "hx-swap", "outerHTML")
		}
		o.close("div")
	})
}

func card(o *out, p content.Post, featured bool) {
	o.open("article", "class", classIf("card", featured, "card-featured"))
	if p.Image != "" {
		o.open("a", "href", href(p.Link()), "class", "card-image")
		o.open("img", "src", href(p.Image), "alt", p.Title, "loading", "lazy")
		o.close("a")
	}
	if len(p.Categories) > 0 {
		o.open("ul", "class", "card-categories")
		for _, c := range p.Categories {
			o.el("li", c.Name)
		}
		o.close("ul")
	}
	o.open("h3")
	o.el("a", p.Title, "href", href(p.Link()))
	o.close("h3")
	if p.Excerpt != "" {
		o.el("p", p.Excerpt, "class", "excerpt")
	}
	byline(o, p)
	o.close("article")
}

func byline(o *out, p content.Post) {
	o.open("p", "class", "byline")
	if len(p.Authors) > 0 {
		names := make([]string, len(p.Authors))
		for i, a := range p.Authors {
			names[i] = a.Name
		}
		o.el("span", strings.Join(names, ", "), "class", "authors")
	}
	if p.Date != "" {
		o.el("time", p.Date, "datetime", p.Date)
	}
	o.close("p")
}

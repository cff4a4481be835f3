// Package content holds the blog's post model and the filter engine that turns a
// post collection plus a category and search term into the visible listing.
package content

// Post is a published article. The filter engine treats it as read-only.
type Post struct {
	Slug       string     `yaml:"slug"`
	Title      string     `yaml:"title"`
	Excerpt    string     `yaml:"excerpt"`
	Image      string     `yaml:"image"`
	Date       string     `yaml:"date"` // YYYY-MM-DD
	Authors    []Author   `yaml:"authors"`
	Categories []Category `yaml:"categories"`
	Body       string     `yaml:"body"` // markdown
	Published  bool       `yaml:"-"`    // see Load
}

// Author is a post byline.
type Author struct {
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
}

// Category is a post classification. The slug is the identity; the name is display text.
type Category struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

// All is the synthetic category that matches every post.
var All = Category{Name: "All", Slug: ""}

// Link returns the canonical path of the post detail page.
func (p Post) Link() string {
	return "/posts/" + p.Slug + "/"
}

// HasCategory reports whether the post is filed under slug.
func (p Post) HasCategory(slug string) bool {
	for _, c := range p.Categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

// Package views holds the templ components for every page and htmx partial.
package views

// Site carries the site-wide values every layout needs.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
	BlogPath    string
	Repo        string // owner/name for the star badge
	Stars       string // formatted count, empty when unknown
	JSONLD      string
	Analytics   bool
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
	JSONLD      string
}

package content

import (
	"net/url"
	"strings"
)

// DefaultPageSize is the number of posts shown before "show more".
const DefaultPageSize = 9

// featuredCount is how many leading results render in the large layout.
const featuredCount = 2

// Options configures a Listing.
type Options struct {
	BasePath string // blog root, e.g. "/blog"
	PageSize int
	// QueryStyle encodes the category as ?category= instead of a path segment.
	QueryStyle bool
}

func (o *Options) setDefaults() {
	if o.BasePath == "" {
		o.BasePath = "/blog"
	}
	o.BasePath = "/" + strings.Trim(o.BasePath, "/")
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
}

// FilterState is the live filter selection of one listing.
type FilterState struct {
	Category  string
	Search    string
	Displayed int
}

// Listing owns a FilterState and keeps it consistent with the page size and the URL.
// The zero value is not usable; create one with NewListing.
type Listing struct {
	opts  Options
	state FilterState
}

// NewListing seeds a listing from the request URL. u may be nil.
func NewListing(opts Options, u *url.URL) *Listing {
	opts.setDefaults()
	l := &Listing{opts: opts}
	l.state.Displayed = opts.PageSize
	if u == nil {
		return l
	}
	q := u.Query()
	l.state.Category = CategoryFromPath(opts.BasePath, u.Path)
	if l.state.Category == "" {
		l.state.Category = strings.TrimSpace(q.Get("category"))
	}
	l.state.Search = strings.TrimSpace(q.Get("search"))
	return l
}

// State returns a copy of the current filter state.
func (l *Listing) State() FilterState {
	return l.state
}

// Options returns the listing configuration after defaults.
func (l *Listing) Options() Options {
	return l.opts
}

// SetCategory selects a category and rewinds pagination.
func (l *Listing) SetCategory(slug string) {
	l.state.Category = strings.TrimSpace(slug)
	l.state.Displayed = l.opts.PageSize
}

// SetSearchTerm replaces the search term, trimmed of surrounding space, and
// rewinds pagination.
func (l *Listing) SetSearchTerm(term string) {
	l.state.Search = strings.TrimSpace(term)
	l.state.Displayed = l.opts.PageSize
}

// ClearFilters drops both predicates and rewinds pagination.
func (l *Listing) ClearFilters() {
	l.state.Category = ""
	l.state.Search = ""
	l.state.Displayed = l.opts.PageSize
}

// ShowMore reveals another page when total filtered results remain hidden.
// It reports whether anything changed.
func (l *Listing) ShowMore(total int) bool {
	if l.state.Displayed >= total {
		return false
	}
	l.state.Displayed += l.opts.PageSize
	return true
}

// Restore applies a displayed count carried by a "show more" request. The value is
// rounded down to a whole number of pages and never drops below one page.
func (l *Listing) Restore(displayed int) {
	pages := displayed / l.opts.PageSize
	if pages < 1 {
		pages = 1
	}
	l.state.Displayed = pages * l.opts.PageSize
}

// Location is the address-bar URL for the current selection.
func (l *Listing) Location() string {
	return l.locationFor(l.state.Category, l.state.Search)
}

// CategoryLocation is the URL that selecting slug would produce, keeping the search term.
func (l *Listing) CategoryLocation(slug string) string {
	return l.locationFor(slug, l.state.Search)
}

// BaseLocation is the bare blog path.
func (l *Listing) BaseLocation() string {
	return l.opts.BasePath
}

func (l *Listing) locationFor(category, search string) string {
	q := url.Values{}
	p := l.opts.BasePath
	if category != "" {
		if l.opts.QueryStyle {
			q.Set("category", category)
		} else {
			p += "/" + url.PathEscape(category)
		}
	}
	if search != "" {
		q.Set("search", search)
	}
	if len(q) == 0 {
		return p
	}
	return p + "?" + q.Encode()
}

// CategoryFromPath extracts the path segment immediately after base, if any.
func CategoryFromPath(base, p string) string {
	base = "/" + strings.Trim(base, "/")
	rest, ok := strings.CutPrefix(p, base)
	if !ok {
		return ""
	}
	if rest != "" && !strings.HasPrefix(rest, "/") {
		return ""
	}
	seg := strings.Trim(rest, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	if s, err := url.PathUnescape(seg); err == nil {
		return s
	}
	return seg
}

// EmptyReason explains why a filtered listing has no results.
type EmptyReason int

const (
	ReasonNone EmptyReason = iota
	ReasonSearch
	ReasonCategory
	ReasonBoth
)

// Page is the rendered split of one listing.
type Page struct {
	Categories []Category
	Active     Category
	Featured   []Post
	Grid       []Post
	Total      int
	Shown      int
	HasMore    bool
	Empty      bool
	Reason     EmptyReason
	State      FilterState
}

// Page filters posts with the current state and splits the result into featured,
// grid and hidden parts.
func (l *Listing) Page(posts []Post) Page {
	cats := DeriveCategories(posts)
	filtered := FilterPosts(posts, l.state.Category, l.state.Search)

	pg := Page{
		Categories: cats,
		Active:     All,
		Total:      len(filtered),
		State:      l.state,
	}
	for _, c := range cats {
		if c.Slug == l.state.Category {
			pg.Active = c
			break
		}
	}
	if pg.Active.Slug != l.state.Category {
		// Unknown slug from the URL: keep it so the empty state names it.
		pg.Active = Category{Name: l.state.Category, Slug: l.state.Category}
	}

	if len(filtered) == 0 {
		pg.Empty = true
		pg.Reason = l.emptyReason()
		return pg
	}

	shown := min(l.state.Displayed, len(filtered))
	feat := min(featuredCount, shown)
	pg.Featured = filtered[:feat]
	pg.Grid = filtered[feat:shown]
	pg.Shown = shown
	pg.HasMore = shown < len(filtered)
	return pg
}

func (l *Listing) emptyReason() EmptyReason {
	hasSearch := l.state.Search != ""
	hasCat := l.state.Category != ""
	switch {
	case hasSearch && hasCat:
		return ReasonBoth
	case hasSearch:
		return ReasonSearch
	case hasCat:
		return ReasonCategory
	default:
		return ReasonNone
	}
}

// Message is the user-facing explanation for an empty listing.
func (p Page) Message() string {
	switch p.Reason {
	case ReasonBoth:
		return "No posts in " + p.Active.Name + " match \"" + p.State.Search + "\"."
	case ReasonSearch:
		return "No posts match \"" + p.State.Search + "\"."
	case ReasonCategory:
		return "No posts in " + p.Active.Name + " yet."
	default:
		return "No posts published yet."
	}
}

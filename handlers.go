package showcase

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/showcase/analytics"
	"github.com/eringen/showcase/content"
	"github.com/eringen/showcase/views"
)

const (
	homeLatest   = 3
	relatedLimit = 3
)

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return Render(c, views.Home(a.site(), posts[:min(homeLatest, len(posts))]))
}

func (a *App) listingOptions() content.Options {
	return content.Options{
		BasePath:   a.Config.BlogPath,
		PageSize:   a.Config.BlogPageSize,
		QueryStyle: a.Config.BlogQueryStyle,
	}
}

// handleBlog serves the listing for every filter combination. The URL is the only
// input on a full load; htmx swaps get the results partial and an HX-Replace-Url
// header carrying the canonical location, so the address bar follows the UI.
func (a *App) handleBlog(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	l := content.NewListing(a.listingOptions(), c.Request().URL)
	pg := l.Page(posts)
	if raw := c.QueryParam("show"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			l.Restore(n)
			l.ShowMore(pg.Total)
			pg = l.Page(posts)
		}
	}
	v := blogView(l, pg)

	if isHTMX(c) {
		replaceURL(c, l.Location())
		st := l.State()
		a.capture(c, analytics.EventBlogFilter, map[string]string{
			"category":  st.Category,
			"search":    st.Search,
			"displayed": strconv.Itoa(pg.Shown),
		})
		return Render(c, views.BlogResults(v))
	}

	title := "Blog"
	if pg.Active.Slug != "" {
		title = pg.Active.Name + " | Blog"
	}
	meta := views.PageMeta{
		Title: title,
		URL:   strings.TrimRight(a.Config.URL, "/") + l.Location(),
	}
	return Render(c, views.Blog(a.site(), meta, v))
}

func blogView(l *content.Listing, pg content.Page) views.BlogView {
	v := views.BlogView{
		Page:     pg,
		Base:     l.BaseLocation(),
		ClearURL: l.BaseLocation(),
	}
	for _, cat := range pg.Categories {
		v.Categories = append(v.Categories, views.CategoryLink{
			Category: cat,
			URL:      l.CategoryLocation(cat.Slug),
			Active:   cat.Slug == pg.State.Category,
		})
	}
	if pg.HasMore {
		loc := l.Location()
		sep := "?"
		if strings.Contains(loc, "?") {
			sep = "&"
		}
		v.MoreURL = loc + sep + "show=" + strconv.Itoa(pg.State.Displayed)
	}
	return v
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	related := content.RelatedPosts(post, posts)
	related = related[:min(relatedLimit, len(related))]
	site := a.site()
	if isHTMX(c) {
		return Render(c, views.PostBody(site, post, related))
	}
	meta := views.PageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
		URL:         BuildURL(a.Config.URL, post.Link()),
		OGType:      "article",
		Image:       post.Image,
		JSONLD:      BlogPostingJsonLD(post, a.Config),
	}
	return Render(c, views.Post(site, meta, post, related))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		_ = RenderStatus(c, code, views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

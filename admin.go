package showcase

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/showcase/content"
	"github.com/eringen/showcase/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.site(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminPost(c echo.Context) error {
	post, err := a.Store.GetPostAny(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, views.AdminForm(post, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return RenderStatus(c, http.StatusUnauthorized, views.AdminLogin(a.site(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSave(c echo.Context) error {
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}
	authors := ParseAuthors(c.FormValue("authors"))
	if prev, err := a.Store.GetPostAny(slug); err == nil {
		keepAvatars(authors, prev.Authors)
	}
	if err := a.Store.SavePost(content.Post{
		Slug:       slug,
		Title:      title,
		Excerpt:    strings.TrimSpace(c.FormValue("excerpt")),
		Image:      strings.TrimSpace(c.FormValue("image")),
		Date:       date,
		Authors:    authors,
		Categories: ParseCategories(c.FormValue("categories")),
		Body:       c.FormValue("body"),
		Published:  c.FormValue("published") != "",
	}); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if err := a.Store.DeletePost(c.Param("slug")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(a.site(), posts, msg, CsrfToken(c)))
}

// ParseAuthors reads a comma-separated list of author names.
func ParseAuthors(raw string) []content.Author {
	var out []content.Author
	for _, name := range FilterEmpty(strings.Split(raw, ",")) {
		out = append(out, content.Author{Name: name})
	}
	return out
}

// keepAvatars copies avatars from the stored bylines, which the form does not edit.
func keepAvatars(authors, prev []content.Author) {
	avatars := make(map[string]string, len(prev))
	for _, p := range prev {
		avatars[p.Name] = p.Avatar
	}
	for i := range authors {
		if authors[i].Avatar == "" {
			authors[i].Avatar = avatars[authors[i].Name]
		}
	}
}

package showcase

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

var renderBufs = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus renders cmp and writes it with code. The component is rendered to a
// buffer first, so a failing component produces an error response instead of a
// truncated page.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	buf := renderBufs.Get().(*bytes.Buffer)
	buf.Reset()
	defer renderBufs.Put(buf)
	if err := cmp.Render(c.Request().Context(), buf); err != nil {
		return fmt.Errorf("showcase: render: %w", err)
	}
	return c.HTMLBlob(code, buf.Bytes())
}

// isHTMX reports whether the request came from an htmx swap.
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// replaceURL asks htmx to replace the address bar entry without a history push.
func replaceURL(c echo.Context, loc string) {
	c.Response().Header().Set("HX-Replace-Url", loc)
}

// hxRedirect sends htmx to loc with a full page load.
func hxRedirect(c echo.Context, loc string, code int) error {
	c.Response().Header().Set("HX-Redirect", loc)
	return c.NoContent(code)
}

package analytics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/showcase/ratelimit"
)

// Input limits for the collect endpoint.
const (
	maxNameLen     = 64
	maxPathLen     = 2048
	maxReferrerLen = 2048
	maxProps       = 16
	maxPropLen     = 256
)

// CollectRequest is the body a page sends to the collect endpoint.
type CollectRequest struct {
	Name     string            `json:"name"`
	Path     string            `json:"path"`
	Referrer string            `json:"referrer"`
	Props    map[string]string `json:"props"`
}

func (r *CollectRequest) validate() error {
	if r.Name == "" {
		r.Name = EventPageView
	}
	if len(r.Name) > maxNameLen {
		return fmt.Errorf("name exceeds %d bytes", maxNameLen)
	}
	if len(r.Path) > maxPathLen {
		return fmt.Errorf("path exceeds %d bytes", maxPathLen)
	}
	if len(r.Referrer) > maxReferrerLen {
		return fmt.Errorf("referrer exceeds %d bytes", maxReferrerLen)
	}
	if len(r.Props) > maxProps {
		return fmt.Errorf("more than %d props", maxProps)
	}
	for k, v := range r.Props {
		if len(k) > maxPropLen || len(v) > maxPropLen {
			return fmt.Errorf("prop %q exceeds %d bytes", k, maxPropLen)
		}
	}
	return nil
}

// Handler serves the collect and summary endpoints.
type Handler struct {
	store   *Store
	limiter *ratelimit.Window
}

// NewHandler creates a handler allowing 60 collect requests per IP per minute.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store, limiter: ratelimit.New(60, time.Minute)}
}

// Close stops the handler's background sweeper.
func (h *Handler) Close() {
	h.limiter.Stop()
}

// RegisterRoutes mounts the public collect endpoint and the guarded summary.
func (h *Handler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	e.POST("/api/analytics/collect", h.Collect)
	e.GET("/admin/analytics/summary", h.Summary, guard)
}

// Collect records an event sent by the browser.
func (h *Handler) Collect(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP()) {
		return c.NoContent(http.StatusTooManyRequests)
	}
	if c.Request().Header.Get("DNT") == "1" {
		return c.NoContent(http.StatusNoContent)
	}
	var req CollectRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}
	if err := req.validate(); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}
	ua := c.Request().UserAgent()
	if IsBot(ua) {
		return c.NoContent(http.StatusNoContent)
	}
	h.store.Capture(c.Request().Context(), FromRequest(c.Request(), c.RealIP(), req.Name, req.Path, req.Props, req.Referrer))
	return c.NoContent(http.StatusNoContent)
}

// Summary returns aggregate counts for the last ?days= days (default 30).
func (h *Handler) Summary(c echo.Context) error {
	days := 30
	if v := c.QueryParam("days"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &days); err != nil || days < 1 || days > 365 {
			return c.String(http.StatusBadRequest, "Invalid days")
		}
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	sum, err := h.store.Summarize(c.Request().Context(), since, 10)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

// FromRequest builds an event about r. referrer falls back to the Referer header.
func FromRequest(r *http.Request, ip, name, path string, props map[string]string, referrer string) Event {
	ua := r.UserAgent()
	browser, os, device := ParseUserAgent(ua)
	if referrer == "" {
		referrer = r.Referer()
	}
	if path == "" {
		path = r.URL.Path
	}
	return Event{
		Name:      name,
		Path:      path,
		Props:     props,
		VisitorID: VisitorID(ip, ua),
		Browser:   browser,
		OS:        os,
		Device:    device,
		Referrer:  CleanReferrer(referrer),
		At:        time.Now().UTC(),
	}
}

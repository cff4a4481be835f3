package showcase

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/showcase/analytics"
	"github.com/eringen/showcase/deck"
	"github.com/eringen/showcase/views"
)

const deckPath = "/deck/"

func (a *App) deckUnlocked(c echo.Context) bool {
	return a.gate.Authorized(sessionString(c, deck.SessionName, deck.SessionKey))
}

// slideRequest resolves the slide a request asks for. ?slide= is the current
// position (or the jump target); key= and dx/dy= are input events applied to it
// through a Navigator. Without ?slide= the session's last slide is resumed.
func (a *App) slideRequest(c echo.Context) int {
	total := len(a.slides)
	raw := c.QueryParam(deck.SlideQueryParam)
	var start int
	if raw != "" {
		start = deck.ParseSlideParam(raw, total)
	} else if last, ok := lastSlide(c); ok {
		start = min(max(last, 0), total-1)
	}

	action := deck.ActionNone
	if key := c.QueryParam("key"); key != "" {
		action = deck.KeyAction(key)
	} else if dx, dy := c.QueryParam("dx"), c.QueryParam("dy"); dx != "" || dy != "" {
		x, _ := strconv.ParseFloat(dx, 64)
		y, _ := strconv.ParseFloat(dy, 64)
		action = deck.DetectSwipe(x, y)
	}
	if action == deck.ActionNone {
		return start
	}
	nav := deck.NewNavigator(total, start)
	defer nav.Close()
	nav.Do(action)
	return nav.Index()
}

func lastSlide(c echo.Context) (int, bool) {
	n, err := strconv.Atoi(sessionString(c, deck.SessionName, deckLastSlideKey))
	return n, err == nil
}

func (a *App) handleDeck(c echo.Context) error {
	if !a.deckUnlocked(c) {
		if isHTMX(c) {
			return hxRedirect(c, deckPath, http.StatusUnauthorized)
		}
		return Render(c, views.DeckLogin(a.site(), false, CsrfToken(c)))
	}
	idx := a.slideRequest(c)
	if err := setSessionValue(c, deck.SessionName, deckLastSlideKey, strconv.Itoa(idx), true); err != nil {
		a.Log.Warn("save deck position", zap.Error(err))
	}
	v := views.DeckView{Title: a.deck.Title, Slides: a.slides, Index: idx, Base: deckPath}
	loc := deck.Location(deckPath, idx)
	if isHTMX(c) {
		replaceURL(c, loc)
		a.capture(c, analytics.EventDeckSlide, map[string]string{
			"slide":  deck.SlideParam(idx),
			"layout": a.slides[idx].Layout.String(),
		})
		return Render(c, views.DeckSlide(v))
	}
	meta := views.PageMeta{
		Title: a.slides[idx].Title,
		URL:   BuildURL(a.Config.URL, deckPath),
	}
	return Render(c, views.DeckPage(a.site(), meta, v))
}

func (a *App) handleDeckLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many attempts. Try again later.")
	}
	if !a.gate.Check(c.FormValue("password")) {
		a.loginLimiter.Record(ip)
		return RenderStatus(c, http.StatusUnauthorized, views.DeckLogin(a.site(), true, CsrfToken(c)))
	}
	if err := setSessionValue(c, deck.SessionName, deck.SessionKey, deck.SessionToken, true); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, deckPath)
}

func (a *App) handleDeckLogout(c echo.Context) error {
	if err := setSessionValue(c, deck.SessionName, deck.SessionKey, nil, true); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, deckPath)
}

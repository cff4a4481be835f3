package showcase

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/showcase/analytics"
	"github.com/eringen/showcase/hackathon"
	"github.com/eringen/showcase/views"
)

const feedLimit = 10

// currentUser restores the demo user from the session. It is resolved once per
// request and handed to the board and views explicitly.
func currentUser(c echo.Context) hackathon.CurrentUser {
	return hackathon.DecodeUser(sessionString(c, hackathonSessionName, hackathon.StorageKey))
}

func (a *App) handleHackathons(c echo.Context) error {
	status := hackathon.Status(c.QueryParam("status"))
	switch status {
	case "", hackathon.StatusLive, hackathon.StatusUpcoming, hackathon.StatusEnded:
	default:
		status = ""
	}
	q := c.QueryParam("q")
	return Render(c, views.Hackathons(a.site(), views.HackathonList{
		User:   currentUser(c),
		Users:  hackathon.Users(),
		Items:  hackathon.FilterHackathons(status, q),
		Status: status,
		Query:  q,
		CSRF:   CsrfToken(c),
	}))
}

func (a *App) hackathonDetail(c echo.Context, h hackathon.Hackathon, u hackathon.CurrentUser) views.HackathonDetail {
	return views.HackathonDetail{
		User:          u,
		Users:         hackathon.Users(),
		Hackathon:     h,
		Challenges:    a.Board.Challenges(h.ID),
		Registered:    a.Board.Registered(u, h.ID),
		Registrations: a.Board.Registrations(h.ID),
		Feed:          a.Board.Feed(feedLimit),
		CSRF:          CsrfToken(c),
	}
}

func (a *App) handleHackathon(c echo.Context) error {
	h, err := hackathon.HackathonBySlug(c.Param("slug"))
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
	}
	return Render(c, views.HackathonPage(a.site(), a.hackathonDetail(c, h, currentUser(c))))
}

// boardAction runs a mock action and re-renders the board. Permission failures are
// shown inline rather than as an error page.
func (a *App) boardAction(c echo.Context, name string, act func(hackathon.CurrentUser, hackathon.Hackathon) error) error {
	h, err := hackathon.HackathonBySlug(c.Param("slug"))
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
	}
	u := currentUser(c)
	status := http.StatusOK
	notice := ""
	switch err := act(u, h); {
	case errors.Is(err, hackathon.ErrForbidden):
		status, notice = http.StatusForbidden, "Your demo account cannot do that."
	case errors.Is(err, hackathon.ErrNotFound):
		status, notice = http.StatusNotFound, "That item no longer exists."
	case err != nil:
		return err
	default:
		a.capture(c, analytics.EventHackathon, map[string]string{"action": name, "hackathon": h.Slug, "role": string(u.Role)})
	}
	if !isHTMX(c) && status == http.StatusOK {
		return c.Redirect(http.StatusSeeOther, "/hackathon/"+h.Slug+"/")
	}
	v := a.hackathonDetail(c, h, u)
	v.Notice = notice
	return RenderStatus(c, status, views.HackathonBoard(v))
}

func (a *App) handleHackathonRegister(c echo.Context) error {
	return a.boardAction(c, "register", func(u hackathon.CurrentUser, h hackathon.Hackathon) error {
		return a.Board.Register(u, h.ID)
	})
}

func (a *App) handleHackathonCancel(c echo.Context) error {
	return a.boardAction(c, "cancel", func(u hackathon.CurrentUser, h hackathon.Hackathon) error {
		return a.Board.Cancel(u, h.ID)
	})
}

func (a *App) handleChallengeApprove(c echo.Context) error {
	return a.boardAction(c, "approve", func(u hackathon.CurrentUser, h hackathon.Hackathon) error {
		if !challengeOf(h, c.Param("id")) {
			return hackathon.ErrNotFound
		}
		return a.Board.Approve(u, c.Param("id"))
	})
}

func (a *App) handleChallengeReject(c echo.Context) error {
	return a.boardAction(c, "reject", func(u hackathon.CurrentUser, h hackathon.Hackathon) error {
		if !challengeOf(h, c.Param("id")) {
			return hackathon.ErrNotFound
		}
		return a.Board.Reject(u, c.Param("id"))
	})
}

func challengeOf(h hackathon.Hackathon, id string) bool {
	for _, ch := range hackathon.ChallengesFor(h.ID) {
		if ch.ID == id {
			return true
		}
	}
	return false
}

func (a *App) handleHackathonSignIn(c echo.Context) error {
	u, err := hackathon.SignIn(c.FormValue("user"))
	if err != nil {
		return c.String(http.StatusBadRequest, "Unknown demo account")
	}
	raw, err := u.Encode()
	if err != nil {
		return err
	}
	if err := setSessionValue(c, hackathonSessionName, hackathon.StorageKey, raw, false); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, safeNext(c.FormValue("next")))
}

func (a *App) handleHackathonSignOut(c echo.Context) error {
	if err := setSessionValue(c, hackathonSessionName, hackathon.StorageKey, nil, false); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, safeNext(c.FormValue("next")))
}

func (a *App) handleHackathonReset(c echo.Context) error {
	a.Board.Reset()
	return c.Redirect(http.StatusSeeOther, "/hackathon/")
}

// safeNext keeps post-sign-in redirects inside the demo.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/hackathon/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/hackathon/"
}

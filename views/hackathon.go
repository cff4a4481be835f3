package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/showcase/hackathon"
)

// HackathonList is the data behind the hackathon index.
type HackathonList struct {
	User   hackathon.CurrentUser
	Users  []hackathon.User
	Items  []hackathon.Hackathon
	Status hackathon.Status
	Query  string
	CSRF   string
}

// HackathonDetail is the data behind one hackathon page and its board partial.
type HackathonDetail struct {
	User          hackathon.CurrentUser
	Users         []hackathon.User
	Hackathon     hackathon.Hackathon
	Challenges    []hackathon.Challenge
	Registered    bool
	Registrations int
	Feed          []hackathon.Activity
	Notice        string
	CSRF          string
}

var statusFilters = []struct {
	Label  string
	Status hackathon.Status
}{
	{"All", ""},
	{"Live", hackathon.StatusLive},
	{"Upcoming", hackathon.StatusUpcoming},
	{"Ended", hackathon.StatusEnded},
}

// Hackathons is the index page.
func Hackathons(site Site, v HackathonList) templ.Component {
	return Layout(site, PageMeta{Title: "Hackathon OS"}, component(func(o *out) {
		o.open("section", "class", "hackathons")
		o.el("h1", "Hackathon OS")
		o.el("p", "A demo workspace. Nothing you do here is saved.", "class", "notice")
		account(o, v.User, v.Users, v.CSRF, "/hackathon/")
		o.open("form", "method", "get", "action", "/hackathon/", "class", "hackathon-filter",
			"hx-get", "/hackathon/", "hx-target", "#hackathon-list", "hx-select", "#hackathon-list",
			"hx-swap", "outerHTML", "hx-trigger", "change, input changed delay:300ms from:input[name=q]")
		o.raw("<select name=\"status\">")
		for _, f := range statusFilters {
			attrs := []string{"value", string(f.Status)}
			if f.Status == v.Status {
				attrs = append(attrs, "selected", "selected")
			}
			o.el("option", f.Label, attrs...)
		}
		o.raw("</select>")
		o.open("input", "type", "search", "name", "q", "value", v.Query, "placeholder", "Search hackathons")
		o.close("form")

		o.open("ul", "id", "hackathon-list", "class", "hackathon-list")
		if len(v.Items) == 0 {
			o.el("li", "No hackathons match.", "class", "empty-state")
		}
		for _, h := range v.Items {
			o.raw("<li>")
			o.el("a", h.Name, "href", href("/hackathon/"+h.Slug+"/"))
			o.el("span", string(h.Status), "class", "status status-"+string(h.Status))
			o.el("p", h.Tagline)
			o.el("time", h.Starts.Format("Jan 2")+" – "+h.Ends.Format("Jan 2, 2006"))
			o.raw("</li>")
		}
		o.close("ul")
		o.close("section")
	}))
}

// HackathonPage is one hackathon with its challenge board.
func HackathonPage(site Site, v HackathonDetail) templ.Component {
	return Layout(site, PageMeta{Title: v.Hackathon.Name}, component(func(o *out) {
		h := v.Hackathon
		o.open("section", "class", "hackathon")
		o.el("a", "← All hackathons", "href", "/hackathon/", "class", "back")
		o.el("h1", h.Name)
		o.el("p", h.Tagline, "class", "lede")
		account(o, v.User, v.Users, v.CSRF, "/hackathon/"+h.Slug+"/")
		o.render(HackathonBoard(v))
		o.close("section")
	}))
}

// HackathonBoard is the htmx partial updated by every mock action.
func HackathonBoard(v HackathonDetail) templ.Component {
	return component(func(o *out) {
		h := v.Hackathon
		base := "/hackathon/" + h.Slug + "/"
		o.open("div", "id", "hackathon-board")
		if v.Notice != "" {
			o.el("p", v.Notice, "class", "notice notice-error", "role", "alert")
		}
		o.open("p", "class", "registration")
		o.text(itoa(v.Registrations) + " registered")
		if v.User.CanRegister() {
			action, label := "register/", "Register"
			if v.Registered {
				action, label = "cancel/", "Cancel registration"
			}
			actionButton(o, base+action, label, v.CSRF)
		}
		o.close("p")

		o.el("h2", "Challenges")
		o.el("p", "Approved prize pool: $"+itoa(hackathon.TotalPrize(v.Challenges)), "class", "prize-pool")
		o.raw("<table class=\"challenges\"><thead><tr><th>Challenge</th><th>Sponsor</th><th>Prize</th><th>Status</th>")
		if v.User.CanReview() {
			o.raw("<th>Review</th>")
		}
		o.raw("</tr></thead><tbody>")
		for _, c := range v.Challenges {
			o.raw("<tr>")
			o.el("td", c.Title)
			o.el("td", c.Sponsor)
			o.el("td", "$"+itoa(c.Prize))
			o.el("td", string(c.Status), "class", "status status-"+string(c.Status))
			if v.User.CanReview() {
				o.raw("<td>")
				if c.Status != hackathon.ChallengeApproved {
					actionButton(o, base+"challenges/"+c.ID+"/approve/", "Approve", v.CSRF)
				}
				if c.Status != hackathon.ChallengeRejected {
					actionButton(o, base+"challenges/"+c.ID+"/reject/", "Reject", v.CSRF)
				}
				o.raw("</td>")
			}
			o.raw("</tr>")
		}
		o.raw("</tbody></table>")

		if len(v.Feed) > 0 {
			o.el("h2", "Activity")
			o.raw("<ul class=\"feed\">")
			for _, a := range v.Feed {
				o.el("li", a.UserID+" "+a.Action+" "+a.Target+" · "+a.At.Format("15:04:05"))
			}
			o.raw("</ul>")
		}
		o.close("div")
	})
}

func actionButton(o *out, action, label, csrf string) {
	o.open("form", "method", "post", "action", href(action), "class", "inline",
		"hx-post", action, "hx-target", "#hackathon-board", "hx-swap", "outerHTML")
	o.csrfField(csrf)
	o.el("button", label, "type", "submit", "class", "button button-small")
	o.close("form")
}

func account(o *out, u hackathon.CurrentUser, users []hackathon.User, csrf, next string) {
	o.open("div", "class", "account")
	if u.SignedIn {
		o.el("span", "Signed in as "+u.Name+" ("+string(u.Role)+")")
		o.open("form", "method", "post", "action", "/hackathon/signout/", "class", "inline")
		o.csrfField(csrf)
		o.open("input", "type", "hidden", "name", "next", "value", next)
		o.el("button", "Sign out", "type", "submit", "class", "button button-small")
		o.close("form")
		o.close("div")
		return
	}
	o.open("form", "method", "post", "action", "/hackathon/signin/", "class", "inline")
	o.csrfField(csrf)
	o.open("input", "type", "hidden", "name", "next", "value", next)
	o.el("label", "Demo account", "for", "demo-user")
	o.raw("<select id=\"demo-user\" name=\"user\">")
	for _, acct := range users {
		o.el("option", acct.Name+" · "+string(acct.Role), "value", acct.ID)
	}
	o.raw("</select>")
	o.el("button", "Sign in", "type", "submit", "class", "button button-small")
	o.close("form")
	o.close("div")
}

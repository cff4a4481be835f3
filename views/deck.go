package views

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/showcase/deck"
)

// DeckView is one rendered position of the presentation.
type DeckView struct {
	Title  string
	Slides []deck.Slide
	Index  int
	Base   string // deck path, e.g. "/deck/"
}

func (v DeckView) total() int { return len(v.Slides) }

// deckScript forwards keys and swipes to the server, dropping input while a swap is
// in flight.
const deckScript = `(function(){
function el(){return document.getElementById("deck");}
function go(q){var d=el();if(!d||d.classList.contains("htmx-request")||d.classList.contains("htmx-settling"))return;
htmx.ajax("GET",d.dataset.base+"?slide="+d.dataset.slide+"&"+q,{target:"#deck",swap:"outerHTML settle:500ms"});}
document.addEventListener("keydown",function(e){if(e.target.closest&&e.target.closest("input,textarea,select"))return;
var k=e.key===" "?"Space":e.key;if(["ArrowRight","ArrowLeft","ArrowUp","ArrowDown","Space","PageUp","PageDown","Home","End"].indexOf(k)<0)return;
e.preventDefault();go("key="+encodeURIComponent(k));});
var sx=0,sy=0;document.addEventListener("touchstart",function(e){sx=e.touches[0].clientX;sy=e.touches[0].clientY;},{passive:true});
document.addEventListener("touchend",function(e){var t=e.changedTouches[0];go("dx="+Math.round(t.clientX-sx)+"&dy="+Math.round(t.clientY-sy));},{passive:true});
})();`

// DeckPage is the full presentation page at one slide.
func DeckPage(site Site, meta PageMeta, v DeckView) templ.Component {
	return Layout(site, meta, component(func(o *out) {
		o.render(DeckSlide(v))
		o.raw("<script>", deckScript, "</script>")
	}))
}

// DeckSlide is the htmx partial for one slide with its controls and jump list.
func DeckSlide(v DeckView) templ.Component {
	return component(func(o *out) {
		if v.total() == 0 {
			o.el("p", "This deck has no slides.", "class", "notice")
			return
		}
		s := v.Slides[v.Index]
		o.open("section", "id", "deck", "class", "deck", "aria-roledescription", "carousel",
			"data-base", v.Base, "data-slide", deck.SlideParam(v.Index), "data-total", itoa(v.total()))
		o.open("div", "class", "slide slide-"+s.Layout.String(), "data-layout", s.Layout.String(),
			"style", slideStyle(s), "aria-label", "Slide "+deck.SlideParam(v.Index)+" of "+itoa(v.total()))
		o.render(slideBody(s))
		o.close("div")
		controls(o, v)
		contents(o, v)
		o.close("section")
	})
}

func slideStyle(s deck.Slide) string {
	style := ""
	if s.Background != "" {
		style += "background:" + s.Background + ";"
	}
	if s.TextColor != "" {
		style += "color:" + s.TextColor + ";"
	}
	return style
}

func (v DeckView) link(i int) string {
	return deck.Location(v.Base, i)
}

func controls(o *out, v DeckView) {
	last := v.total() - 1
	o.open("nav", "class", "deck-controls", "aria-label", "Slide navigation")
	navButton(o, v, "First", 0, v.Index == 0)
	navButton(o, v, "Previous", max(v.Index-1, 0), v.Index == 0)
	o.el("span", deck.SlideParam(v.Index)+" / "+itoa(v.total()), "class", "deck-position")
	navButton(o, v, "Next", min(v.Index+1, last), v.Index == last)
	navButton(o, v, "Last", last, v.Index == last)
	o.close("nav")
}

func navButton(o *out, v DeckView, label string, to int, disabled bool) {
	if disabled {
		o.el("span", label, "class", "button button-disabled", "aria-disabled", "true")
		return
	}
	u := v.link(to)
	o.el("a", label, "href", href(u), "class", "button",
		"hx-get", u, "hx-target", "#deck", "hx-swap", "outerHTML settle:500ms")
}

func contents(o *out, v DeckView) {
	o.open("details", "class", "deck-contents")
	o.el("summary", "Contents")
	o.raw("<ol>")
	for _, e := range deck.Contents(v.Slides) {
		o.raw("<li>")
		u := v.link(e.Index)
		title := e.Title
		if title == "" {
			title = "Slide " + deck.SlideParam(e.Index)
		}
		attrs := []string{"href", href(u), "hx-get", u, "hx-target", "#deck", "hx-swap", "outerHTML settle:500ms"}
		if e.Index == v.Index {
			attrs = append(attrs, "aria-current", "true")
		}
		o.el("a", title, attrs...)
		o.raw("</li>")
	}
	o.raw("</ol>")
	o.close("details")
}

// slideBody dispatches on the layout. Every layout must have a case; an unknown
// value is a render error.
func slideBody(s deck.Slide) templ.Component {
	return component(func(o *out) {
		switch s.Layout {
		case deck.LayoutCover:
			o.el("h1", s.Title, "class", "slide-title")
			if s.Text != "" {
				o.el("p", s.Text, "class", "slide-subtitle")
			}
		case deck.LayoutStatement:
			o.el("h2", s.Title, "class", "slide-title")
			o.el("p", s.Text, "class", "statement")
		case deck.LayoutBullets:
			o.el("h2", s.Title, "class", "slide-title")
			o.raw("<ul class=\"bullets\">")
			for i, it := range s.Items {
				o.open("li", "class", "reveal", "style", staggerStyle(i, deck.RevealStagger.Milliseconds()))
				o.el("strong", it.Label)
				if it.Detail != "" {
					o.el("span", it.Detail)
				}
				o.close("li")
			}
			o.raw("</ul>")
		case deck.LayoutMetrics:
			o.el("h2", s.Title, "class", "slide-title")
			o.raw("<dl class=\"metrics\">")
			for _, it := range s.Items {
				o.raw("<div>")
				o.el("dt", it.Label)
				o.el("dd", formatValue(it.Value)+it.Suffix, "class", "count-up",
					"data-count-to", formatValue(it.Value), "data-suffix", it.Suffix,
					"data-duration", strconv.FormatInt(deck.CountDuration.Milliseconds(), 10))
				o.raw("</div>")
			}
			o.raw("</dl>")
		case deck.LayoutBars:
			o.el("h2", s.Title, "class", "slide-title")
			o.raw("<ul class=\"bars\">")
			top := maxValue(s.Items)
			for i, it := range s.Items {
				o.raw("<li>")
				o.el("span", it.Label, "class", "bar-label")
				width := 0.0
				if top > 0 {
					width = it.Value / top * 100
				}
				o.open("span", "class", "bar", "style",
					fmt.Sprintf("--bar-width:%.1f%%;%s", width, staggerStyle(i, deck.RevealStagger.Milliseconds())))
				o.close("span")
				o.el("span", formatValue(it.Value)+it.Suffix, "class", "bar-value")
				o.raw("</li>")
			}
			o.raw("</ul>")
		case deck.LayoutTimeline:
			o.el("h2", s.Title, "class", "slide-title")
			o.raw("<ol class=\"timeline\">")
			for i, it := range s.Items {
				o.open("li", "class", "reveal", "style", staggerStyle(i, deck.RevealStagger.Milliseconds()))
				o.el("time", it.Label)
				o.el("p", it.Detail)
				o.close("li")
			}
			o.raw("</ol>")
		case deck.LayoutQuote:
			o.raw("<figure class=\"quote\">")
			o.el("blockquote", s.Text)
			if s.Title != "" {
				o.el("figcaption", s.Title)
			}
			o.raw("</figure>")
		case deck.LayoutTeam:
			o.el("h2", s.Title, "class", "slide-title")
			o.raw("<ul class=\"team\">")
			for _, it := range s.Items {
				o.raw("<li>")
				o.el("strong", it.Label)
				o.el("span", it.Detail, "class", "role")
				o.raw("</li>")
			}
			o.raw("</ul>")
		case deck.LayoutSplit:
			o.raw("<div class=\"split\"><div>")
			o.el("h2", s.Title, "class", "slide-title")
			o.el("p", s.Text)
			o.raw("</div><ul>")
			for _, it := range s.Items {
				o.el("li", it.Label)
			}
			o.raw("</ul></div>")
		case deck.LayoutGrid:
			o.el("h2", s.Title, "class", "slide-title")
			o.raw("<div class=\"tiles\">")
			for _, it := range s.Items {
				o.raw("<div class=\"tile\">")
				o.el("h3", it.Label)
				o.el("p", it.Detail)
				o.raw("</div>")
			}
			o.raw("</div>")
		case deck.LayoutClosing:
			o.el("h2", s.Title, "class", "slide-title")
			if s.Text != "" {
				o.el("p", s.Text, "class", "slide-subtitle")
			}
		default:
			o.err = fmt.Errorf("views: %w: %d", deck.ErrUnknownLayout, int(s.Layout))
		}
	})
}

func staggerStyle(i int, stepMS int64) string {
	return "--delay:" + strconv.FormatInt(int64(i)*stepMS, 10) + "ms"
}

func maxValue(items []deck.Item) float64 {
	top := 0.0
	for _, it := range items {
		top = max(top, it.Value)
	}
	return top
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DeckLogin is the password gate in front of the deck.
func DeckLogin(site Site, failed bool, csrfToken string) templ.Component {
	return Layout(site, PageMeta{Title: "Presentation"}, component(func(o *out) {
		o.open("section", "class", "gate")
		o.el("h1", "This presentation is private")
		if failed {
			o.el("p", "That password is not right.", "class", "notice notice-error", "role", "alert")
		}
		o.open("form", "method", "post", "action", "/deck/login/")
		o.csrfField(csrfToken)
		o.el("label", "Password", "for", "deck-password")
		o.open("input", "id", "deck-password", "type", "password", "name", "password", "required", "required", "autofocus", "autofocus")
		o.el("button", "Unlock", "type", "submit", "class", "button")
		o.close("form")
		o.close("section")
	}))
}

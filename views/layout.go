package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/showcase/content"
)

// analyticsScript posts one page_view per load to the collect endpoint.
const analyticsScript = `(function(){if(navigator.doNotTrack==="1")return;var b=JSON.stringify({name:"page_view",path:location.pathname,referrer:document.referrer});if(navigator.sendBeacon){navigator.sendBeacon("/api/analytics/collect",new Blob([b],{type:"application/json"}));}else{fetch("/api/analytics/collect",{method:"POST",headers:{"Content-Type":"application/json"},body:b,keepalive:true});}})();`

// Layout wraps body in the document shell: head metadata, navigation and footer.
func Layout(site Site, meta PageMeta, body templ.Component) templ.Component {
	return component(func(o *out) {
		title := site.Name
		if meta.Title != "" {
			title = meta.Title + " | " + site.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = site.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		o.raw("<!DOCTYPE html>")
		o.open("html", "lang", "en")
		o.raw("<head>")
		o.raw(`<meta charset="utf-8">`, `<meta name="viewport" content="width=device-width, initial-scale=1">`)
		o.el("title", title)
		o.open("meta", "name", "description", "content", desc)
		o.open("meta", "property", "og:title", "content", title)
		o.open("meta", "property", "og:description", "content", desc)
		o.open("meta", "property", "og:type", "content", ogType)
		if meta.URL != "" {
			o.open("link", "rel", "canonical", "href", href(meta.URL))
			o.open("meta", "property", "og:url", "content", meta.URL)
		}
		if meta.Image != "" {
			o.open("meta", "property", "og:image", "content", meta.Image)
		}
		o.open("link", "rel", "icon", "href", "/favicon.svg", "type", "image/svg+xml")
		o.open("link", "rel", "alternate", "type", "application/rss+xml", "title", site.Name, "href", "/feed.xml")
		o.open("link", "rel", "stylesheet", "href", "/public/styles.css")
		o.raw(`<script src="/public/hx.js" defer></script>`)
		ld := meta.JSONLD
		if ld == "" {
			ld = site.JSONLD
		}
		if ld != "" {
			// JSON-LD from json.Marshal escapes <, > and & already.
			o.raw(`<script type="application/ld+json">`, ld, `</script>`)
		}
		if site.Analytics {
			o.raw("<script>", analyticsScript, "</script>")
		}
		o.raw("</head>")
		o.raw("<body>")
		nav(o, site)
		o.open("main", "id", "main", "class", "container")
		o.render(body)
		o.close("main")
		o.open("footer", "class", "site-footer")
		o.text("© " + site.Name)
		o.close("footer")
		o.raw("</body></html>")
	})
}

func nav(o *out, site Site) {
	o.open("header", "class", "site-header")
	o.open("a", "href", "/", "class", "brand")
	o.text(site.Name)
	o.close("a")
	o.open("nav")
	o.el("a", "Blog", "href", href(site.BlogPath))
	o.el("a", "Deck", "href", "/deck/")
	o.el("a", "Hackathon OS", "href", "/hackathon/")
	o.close("nav")
	if site.Repo != "" {
		o.open("a", "class", "star-badge", "href", href("https://github.com/"+site.Repo), "rel", "noopener")
		o.text("★ GitHub")
		if site.Stars != "" {
			o.el("span", site.Stars, "class", "star-count")
		}
		o.close("a")
	}
	o.close("header")
}

// Home is the landing page.
func Home(site Site, latest []content.Post) templ.Component {
	return Layout(site, PageMeta{URL: site.URL}, component(func(o *out) {
		o.open("section", "class", "hero")
		o.el("h1", site.Name)
		if site.Description != "" {
			o.el("p", site.Description, "class", "lede")
		}
		o.open("img", "class", "hero-image", "src", "/hero/hero.png?w=1200", "alt", "", "loading", "lazy")
		o.close("section")
		if len(latest) > 0 {
			o.open("section", "class", "latest")
			o.el("h2", "Latest posts")
			o.open("div", "class", "grid")
			for _, c := range latest {
				card(o, c, false)
			}
			o.close("div")
			o.el("a", "All posts →", "href", href(site.BlogPath), "class", "more")
			o.close("section")
		}
	}))
}

// NotFound is the 404 page.
func NotFound(site Site) templ.Component {
	return Layout(site, PageMeta{Title: "Not found"}, component(func(o *out) {
		o.open("section", "class", "error-page")
		o.el("h1", "Page not found")
		o.el("p", "The page you are looking for does not exist.")
		o.el("a", "Back home", "href", "/")
		o.close("section")
	}))
}

// ServerError is the 500 page.
func ServerError(site Site) templ.Component {
	return Layout(site, PageMeta{Title: "Error"}, component(func(o *out) {
		o.open("section", "class", "error-page")
		o.el("h1", "Something went wrong")
		o.el("p", "Please try again in a moment.")
		o.close("section")
	}))
}

// Message renders a short inline notice, used as an htmx error fragment.
func Message(kind, text string) templ.Component {
	return component(func(o *out) {
		o.el("p", text, "class", "notice notice-"+kind, "role", "status")
	})
}

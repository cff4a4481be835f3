package showcase

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/showcase/content"
	"github.com/eringen/showcase/hackathon"
)

// rssItemLimit caps the feed; readers only look at the newest entries.
const rssItemLimit = 20

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Self          atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
	Creator     string   `xml:"author,omitempty"`
}

type urlSet struct {
	XMLName xml.Name  `xml:"urlset"`
	XMLNS   string    `xml:"xmlns,attr"`
	URLs    []siteURL `xml:"url"`
}

type siteURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

func rfc1123(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.Format(time.RFC1123Z)
}

func (a *App) feedItem(p content.Post) rssItem {
	link := BuildURL(a.Config.URL, p.Link())
	it := rssItem{
		Title:       p.Title,
		Link:        link,
		Description: p.Excerpt,
		PubDate:     rfc1123(p.Date),
		GUID:        link,
	}
	for _, cat := range p.Categories {
		it.Categories = append(it.Categories, cat.Name)
	}
	names := make([]string, len(p.Authors))
	for i, au := range p.Authors {
		names[i] = au.Name
	}
	it.Creator = strings.Join(names, ", ")
	return it
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	posts = posts[:min(rssItemLimit, len(posts))]
	ch := rssChannel{
		Title:       a.Config.Name,
		Link:        BuildURL(a.Config.URL),
		Description: a.Config.Description,
		Language:    "en",
		Self:        atomLink{Href: strings.TrimRight(a.Config.URL, "/") + "/feed.xml", Rel: "self", Type: "application/rss+xml"},
	}
	if len(posts) > 0 {
		ch.LastBuildDate = rfc1123(posts[0].Date)
	}
	for _, p := range posts {
		ch.Items = append(ch.Items, a.feedItem(p))
	}
	return writeXML(c, "application/rss+xml; charset=utf-8", rssFeed{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: ch,
	})
}

// handleSitemap lists the home page, the blog and each category, every post and the
// hackathon pages. The deck is left out because it may be gated.
func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	base := a.Config.URL
	root := strings.TrimRight(base, "/")
	l := content.NewListing(a.listingOptions(), nil)

	urls := []siteURL{
		{Loc: BuildURL(base), ChangeFreq: "weekly"},
		{Loc: root + l.BaseLocation(), ChangeFreq: "daily"},
	}
	for _, cat := range content.DeriveCategories(posts) {
		if cat.Slug != content.All.Slug {
			urls = append(urls, siteURL{Loc: root + l.CategoryLocation(cat.Slug), ChangeFreq: "weekly"})
		}
	}
	for _, p := range posts {
		urls = append(urls, siteURL{Loc: BuildURL(base, p.Link()), LastMod: p.Date})
	}
	urls = append(urls, siteURL{Loc: BuildURL(base, "hackathon")})
	for _, h := range hackathon.Hackathons() {
		urls = append(urls, siteURL{Loc: BuildURL(base, "hackathon", h.Slug)})
	}
	return writeXML(c, "application/xml; charset=utf-8", urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

// writeXML encodes v fully before writing so an encoding error still reaches the
// error handler.
func writeXML(c echo.Context, contentType string, v any) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

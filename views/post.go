package views

import (
	"bytes"
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/eringen/showcase/content"
)

// md renders GitHub-flavoured markdown. Raw HTML in post bodies is dropped.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// RenderMarkdown writes the HTML form of src to w.
func RenderMarkdown(w io.Writer, src string) error {
	return md.Convert([]byte(src), w)
}

// Markdown returns a component that renders src as HTML.
func Markdown(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := RenderMarkdown(&buf, src); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Post is a full post page.
func Post(site Site, meta PageMeta, p content.Post, related []content.Post) templ.Component {
	return Layout(site, meta, PostBody(site, p, related))
}

// PostBody is the article without the document shell.
func PostBody(site Site, p content.Post, related []content.Post) templ.Component {
	return component(func(o *out) {
		o.open("article", "class", "post")
		o.open("header")
		if len(p.Categories) > 0 {
			o.open("ul", "class", "card-categories")
			for _, c := range p.Categories {
				o.raw("<li>")
				o.el("a", c.Name, "href", href(site.BlogPath+"/"+url.PathEscape(c.Slug)))
				o.raw("</li>")
			}
			o.close("ul")
		}
		o.el("h1", p.Title)
		byline(o, p)
		o.close("header")
		if p.Image != "" {
			o.open("img", "class", "post-image", "src", href(p.Image), "alt", p.Title)
		}
		o.open("div", "class", "prose")
		o.render(Markdown(p.Body))
		o.close("div")
		o.close("article")

		if len(related) > 0 {
			o.open("aside", "class", "related")
			o.el("h2", "Related posts")
			o.open("div", "class", "grid")
			for _, r := range related {
				card(o, r, false)
			}
			o.close("div")
			o.close("aside")
		}
	})
}

package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// out writes HTML and keeps the first error, so components can be written as a
// straight sequence of calls.
type out struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(o *out)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := &out{ctx: ctx, w: w}
		fn(o)
		return o.err
	})
}

func (o *out) raw(parts ...string) {
	for _, s := range parts {
		if o.err != nil {
			return
		}
		_, o.err = io.WriteString(o.w, s)
	}
}

// text writes escaped text.
func (o *out) text(s string) {
	o.raw(templ.EscapeString(s))
}

// open writes a start tag. attrs are name, value pairs; values are escaped.
func (o *out) open(tag string, attrs ...string) {
	o.raw("<", tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		o.raw(" ", attrs[i], `="`, templ.EscapeString(attrs[i+1]), `"`)
	}
	o.raw(">")
}

func (o *out) close(tag string) {
	o.raw("</", tag, ">")
}

// el writes a whole element with escaped text content.
func (o *out) el(tag, text string, attrs ...string) {
	o.open(tag, attrs...)
	o.text(text)
	o.close(tag)
}

func (o *out) render(c templ.Component) {
	if o.err != nil || c == nil {
		return
	}
	o.err = c.Render(o.ctx, o.w)
}

// href sanitises a URL for an attribute value.
func href(u string) string {
	return string(templ.URL(u))
}

// csrfField renders the hidden token field used by every form.
func (o *out) csrfField(token string) {
	o.open("input", "type", "hidden", "name", "_csrf", "value", token)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func classIf(base string, on bool, extra string) string {
	if on {
		return base + " " + extra
	}
	return base
}

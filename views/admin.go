package views

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/showcase/content"
)

// AdminLogin is the admin password form.
func AdminLogin(site Site, showError bool, csrfToken string) templ.Component {
	return Layout(site, PageMeta{Title: "Admin"}, component(func(o *out) {
		o.open("section", "class", "gate")
		o.el("h1", "Admin")
		if showError {
			o.el("p", "Invalid password.", "class", "notice notice-error", "role", "alert")
		}
		o.open("form", "method", "post", "action", "/admin/login/")
		o.csrfField(csrfToken)
		o.el("label", "Password", "for", "admin-password")
		o.open("input", "id", "admin-password", "type", "password", "name", "password", "required", "required")
		o.el("button", "Log in", "type", "submit", "class", "button")
		o.close("form")
		o.close("section")
	}))
}

// AdminDashboard lists every post with an editor.
func AdminDashboard(site Site, posts []content.Post, message, csrfToken string) templ.Component {
	return Layout(site, PageMeta{Title: "Admin"}, component(func(o *out) {
		o.open("section", "class", "admin")
		o.raw("<header class=\"admin-header\">")
		o.el("h1", "Posts")
		o.el("a", "Analytics", "href", "/admin/analytics/summary")
		o.open("form", "method", "post", "action", "/admin/logout/", "class", "inline")
		o.csrfField(csrfToken)
		o.el("button", "Log out", "type", "submit", "class", "button button-small")
		o.close("form")
		o.raw("</header>")
		if message != "" {
			o.el("p", message, "class", "notice", "role", "status")
		}
		o.raw("<table class=\"admin-posts\"><thead><tr><th>Title</th><th>Date</th><th>Status</th><th></th></tr></thead><tbody>")
		for _, p := range posts {
			o.raw("<tr>")
			o.el("td", p.Title)
			o.el("td", p.Date)
			status := "draft"
			if p.Published {
				status = "published"
			}
			o.el("td", status)
			o.raw("<td>")
			editURL := "/admin/post/" + p.Slug + "/"
			o.el("a", "Edit", "href", href(editURL), "hx-get", editURL, "hx-target", "#post-form", "hx-swap", "outerHTML")
			o.el("button", "Delete", "type", "button", "class", "button button-small",
				"hx-delete", editURL, "hx-confirm", "Delete "+p.Title+"?", "hx-target", "body",
				"hx-headers", `{"X-CSRF-Token":"`+csrfToken+`"}`)
			o.raw("</td></tr>")
		}
		o.raw("</tbody></table>")
		o.render(AdminForm(content.Post{Published: true}, csrfToken))
		o.close("section")
	}))
}

// AdminForm is the create/edit form, also served as an htmx partial.
func AdminForm(p content.Post, csrfToken string) templ.Component {
	return component(func(o *out) {
		o.open("form", "id", "post-form", "method", "post", "action", "/admin/save/", "class", "post-form")
		o.csrfField(csrfToken)
		field(o, "Title", "title", p.Title)
		field(o, "Slug", "slug", p.Slug)
		field(o, "Date", "date", p.Date)
		field(o, "Image", "image", p.Image)
		field(o, "Excerpt", "excerpt", p.Excerpt)
		names := make([]string, len(p.Authors))
		for i, a := range p.Authors {
			names[i] = a.Name
		}
		field(o, "Authors", "authors", strings.Join(names, ", "))
		cats := make([]string, len(p.Categories))
		for i, c := range p.Categories {
			cats[i] = c.Name + ":" + c.Slug
		}
		field(o, "Categories (Name:slug, …)", "categories", strings.Join(cats, ", "))
		o.el("label", "Body", "for", "post-body")
		o.el("textarea", p.Body, "id", "post-body", "name", "body", "rows", "16")
		o.raw("<label class=\"checkbox\">")
		attrs := []string{"type", "checkbox", "name", "published", "value", "1"}
		if p.Published {
			attrs = append(attrs, "checked", "checked")
		}
		o.open("input", attrs...)
		o.text(" Published")
		o.raw("</label>")
		o.el("button", "Save", "type", "submit", "class", "button")
		o.close("form")
	})
}

func field(o *out, label, name, value string) {
	id := "post-" + name
	o.el("label", label, "for", id)
	o.open("input", "id", id, "type", "text", "name", name, "value", value)
}

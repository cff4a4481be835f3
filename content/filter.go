package content

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DeriveCategories collects the distinct categories across posts, keeping the first
// name seen for each slug, sorted by name and prefixed with All.
func DeriveCategories(posts []Post) []Category {
	seen := make(map[string]struct{})
	var found []Category
	for _, p := range posts {
		for _, c := range p.Categories {
			if c.Slug == "" {
				continue
			}
			if _, ok := seen[c.Slug]; ok {
				continue
			}
			seen[c.Slug] = struct{}{}
			found = append(found, c)
		}
	}

	coll := collate.New(language.English, collate.Loose)
	slices.SortStableFunc(found, func(a, b Category) int {
		return coll.CompareString(a.Name, b.Name)
	})

	return append([]Category{All}, found...)
}

// FilterPosts returns the posts in category slug (empty matches all) whose title,
// excerpt, author names or category names contain term, ignoring case.
// The input order is preserved and posts are never modified.
func FilterPosts(posts []Post, slug, term string) []Post {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))

	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if slug != "" && !p.HasCategory(slug) {
			continue
		}
		if needle != "" && !matches(fold, p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(fold cases.Caser, p Post, needle string) bool {
	contains := func(s string) bool {
		return s != "" && strings.Contains(fold.String(s), needle)
	}
	if contains(p.Title) || contains(p.Excerpt) {
		return true
	}
	for _, a := range p.Authors {
		if contains(a.Name) {
			return true
		}
	}
	for _, c := range p.Categories {
		if contains(c.Name) {
			return true
		}
	}
	return false
}

// RelatedPosts returns the posts other than current that share a category with it.
func RelatedPosts(current Post, posts []Post) []Post {
	var related []Post
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, c := range current.Categories {
			if p.HasCategory(c.Slug) {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

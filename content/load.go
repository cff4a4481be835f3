package content

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPost reports a post entry that cannot be stored.
var ErrInvalidPost = errors.New("content: invalid post")

type file struct {
	Posts []entry `yaml:"posts"`
}

// entry mirrors Post but lets published default to true when omitted.
type entry struct {
	Post      `yaml:",inline"`
	Published *bool `yaml:"published"`
}

// Load decodes a YAML content file of the form `posts: [...]`. Posts without a
// published flag are published. Every post needs a slug, a title and a date, and
// slugs must be unique.
func Load(r io.Reader) ([]Post, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	posts := make([]Post, 0, len(f.Posts))
	seen := make(map[string]bool, len(f.Posts))
	for i, e := range f.Posts {
		p := e.Post
		p.Published = e.Published == nil || *e.Published
		p.Slug = strings.TrimSpace(p.Slug)
		switch {
		case p.Slug == "":
			return nil, fmt.Errorf("%w: entry %d has no slug", ErrInvalidPost, i)
		case strings.TrimSpace(p.Title) == "":
			return nil, fmt.Errorf("%w: %q has no title", ErrInvalidPost, p.Slug)
		case p.Date == "":
			return nil, fmt.Errorf("%w: %q has no date", ErrInvalidPost, p.Slug)
		case seen[p.Slug]:
			return nil, fmt.Errorf("%w: duplicate slug %q", ErrInvalidPost, p.Slug)
		}
		seen[p.Slug] = true
		posts = append(posts, p)
	}
	return posts, nil
}

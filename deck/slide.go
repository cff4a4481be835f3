// Package deck drives the investor presentation: the slide model, a navigator that
// serialises transitions between slides, per-slide count-up and reveal effects, input
// mapping and the password gate in front of it.
package deck

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownLayout is returned when a slide names a layout that is not defined.
var ErrUnknownLayout = errors.New("deck: unknown layout")

// Layout selects how a slide is rendered.
type Layout int

const (
	LayoutCover Layout = iota
	LayoutStatement
	LayoutBullets
	LayoutMetrics
	LayoutBars
	LayoutTimeline
	LayoutQuote
	LayoutTeam
	LayoutSplit
	LayoutGrid
	LayoutClosing
)

var layoutNames = [...]string{
	LayoutCover:     "cover",
	LayoutStatement: "statement",
	LayoutBullets:   "bullets",
	LayoutMetrics:   "metrics",
	LayoutBars:      "bars",
	LayoutTimeline:  "timeline",
	LayoutQuote:     "quote",
	LayoutTeam:      "team",
	LayoutSplit:     "split",
	LayoutGrid:      "grid",
	LayoutClosing:   "closing",
}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return fmt.Sprintf("Layout(%d)", int(l))
	}
	return layoutNames[l]
}

// ParseLayout maps a layout name to its Layout.
func ParseLayout(s string) (Layout, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range layoutNames {
		if name == s {
			return Layout(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownLayout, s)
}

// UnmarshalYAML decodes a layout name.
func (l *Layout) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseLayout(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML encodes the layout name.
func (l Layout) MarshalYAML() (any, error) {
	return l.String(), nil
}

// Animated reports whether slides of this layout carry count-up or reveal effects.
func (l Layout) Animated() bool {
	return l == LayoutMetrics || l == LayoutBars
}

// Item is one entry on a slide: a bullet, a metric, a bar, a team member.
type Item struct {
	Label  string  `yaml:"label"`
	Detail string  `yaml:"detail,omitempty"`
	Value  float64 `yaml:"value,omitempty"`
	Suffix string  `yaml:"suffix,omitempty"`
}

// Slide is one page of the deck.
type Slide struct {
	Title      string `yaml:"title"`
	Layout     Layout `yaml:"layout"`
	Background string `yaml:"background,omitempty"`
	TextColor  string `yaml:"text_color,omitempty"`
	Text       string `yaml:"text,omitempty"`
	Items      []Item `yaml:"items,omitempty"`
	Tag        string `yaml:"tag,omitempty"`
}

// Deck is an authored presentation file.
type Deck struct {
	Title    string  `yaml:"title"`
	Subtitle string  `yaml:"subtitle"`
	Slides   []Slide `yaml:"slides"`
}

// LoadDeck decodes a YAML deck.
func LoadDeck(r io.Reader) (Deck, error) {
	var d Deck
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return Deck{}, nil
		}
		return Deck{}, fmt.Errorf("deck: decode: %w", err)
	}
	return d, nil
}

// Cover builds the opening slide of d.
func (d Deck) Cover() Slide {
	return Slide{
		Title:      d.Title,
		Layout:     LayoutCover,
		Background: "#0b0b0f",
		TextColor:  "#f9fafb",
		Text:       d.Subtitle,
		Tag:        "cover",
	}
}

// Sequence is the full navigable order: the cover, the built-in retrospective and
// then the authored slides.
func (d Deck) Sequence() []Slide {
	out := make([]Slide, 0, 1+len(retrospective)+len(d.Slides))
	out = append(out, d.Cover())
	out = append(out, retrospective...)
	return append(out, d.Slides...)
}

var retrospective = []Slide{
	{
		Title:      "Where we started",
		Layout:     LayoutStatement,
		Background: "#111827",
		Text:       "A small team, one product and a list of customers we could count on two hands.",
		Tag:        "retrospective",
	},
	{
		Title:      "Last year in numbers",
		Layout:     LayoutMetrics,
		Background: "#0f172a",
		Items: []Item{
			{Label: "Customers", Value: 1200, Suffix: "+"},
			{Label: "Net revenue retention", Value: 128, Suffix: "%"},
			{Label: "Countries", Value: 34},
		},
		Tag: "retrospective",
	},
	{
		Title:      "Where time went",
		Layout:     LayoutBars,
		Background: "#1e1b4b",
		Items: []Item{
			{Label: "Product", Value: 46, Suffix: "%"},
			{Label: "Customer success", Value: 27, Suffix: "%"},
			{Label: "Go to market", Value: 19, Suffix: "%"},
			{Label: "Operations", Value: 8, Suffix: "%"},
		},
		Tag: "retrospective",
	},
}

// Entry is one line of the table of contents.
type Entry struct {
	Index int
	Title string
	Tag   string
}

// Contents lists every slide for the jump list.
func Contents(slides []Slide) []Entry {
	out := make([]Entry, len(slides))
	for i, s := range slides {
		out[i] = Entry{Index: i, Title: s.Title, Tag: s.Tag}
	}
	return out
}

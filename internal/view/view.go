package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/five82/cinevault/internal/route"
)

// Style classifies a line or segment for the terminal theme.
type Style int

const (
	StylePlain Style = iota
	StyleHeading
	StyleMuted
	StyleAccent
	StyleRating
	StyleTag
	StyleError
	StyleLink
)

// Segment is a run of text within a line. Action is the index into
// Rendered.Actions, or -1.
type Segment struct {
	Text   string
	Style  Style
	Action int
	Active bool
}

// Line is one logical output line.
type Line struct {
	Segments []Segment
	Style    Style
	Dim      bool
}

// Text returns the line without styling.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// ActionRef is an activatable element and the line it was drawn on.
type ActionRef struct {
	Action route.Action
	Label  string
	Line   int
}

// Block is the line span of one reveal-on-scroll element. End is exclusive.
type Block struct {
	ID    string
	Start int
	End   int
}

// Rendered is a flattened document.
type Rendered struct {
	Lines   []Line
	Actions []ActionRef
	Blocks  []Block
}

// Plain renders the lines as text, each action prefixed with its number
// in brackets.
func (r Rendered) Plain() string {
	var b strings.Builder
	for _, line := range r.Lines {
		prev := -1
		for _, s := range line.Segments {
			if s.Action >= 0 && s.Action != prev {
				fmt.Fprintf(&b, "[%d]", s.Action+1)
			}
			prev = s.Action
			b.WriteString(s.Text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Options controls the page-scoped decorations.
type Options struct {
	HeroActive int
	// Hidden reports whether a reveal block has not been revealed yet. Nil
	// means everything is visible.
	Hidden func(id string) bool
}

// Document is parsed page markup.
type Document struct {
	doc          *goquery.Document
	activeSeason int
}

// Parse reads markup produced by the renderers.
func Parse(markup string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	d := &Document{doc: doc}
	d.activeSeason = findActiveSeason(doc)
	return d, nil
}

// ActiveSeason is the season whose episodes are shown, or 0.
func (d *Document) ActiveSeason() int {
	return d.activeSeason
}

// HeroSlides counts the banner slides.
func (d *Document) HeroSlides() int {
	return d.doc.Find(".hero-slide").Length()
}

// SeriesID returns the id the season buttons point at.
func (d *Document) SeriesID() string {
	frag, ok := d.doc.Find(".season-btn").First().Attr(route.AttrFragment)
	if !ok {
		return ""
	}
	return route.Decode(frag).Get("id")
}

// The loaded episode list wins over the selector's initial marker, since a
// season switch only replaces the list.
func findActiveSeason(doc *goquery.Document) int {
	if raw, ok := doc.Find(".episode-list[data-season]").First().Attr("data-season"); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	if raw, ok := doc.Find(".season-btn.active").First().Attr(route.AttrIndex); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return 0
}

// Render flattens the document into lines.
func (d *Document) Render(opts Options) Rendered {
	w := &walker{opts: opts, activeSeason: d.activeSeason}
	w.walk(d.doc.Find("body"))
	w.flush()
	return w.out
}

// Option is one choice of a <select>.
type Option struct {
	Value string
	Label string
}

// ParseOptions extracts the <option> elements of markup in order.
func ParseOptions(markup string) ([]Option, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}
	var out []Option
	doc.Find("option").Each(func(_ int, s *goquery.Selection) {
		value, _ := s.Attr("value")
		out = append(out, Option{Value: value, Label: collapse(s.Text())})
	})
	return out, nil
}

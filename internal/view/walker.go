package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/five82/cinevault/internal/route"
)

var skippedTags = map[string]bool{
	"#comment": true,
	"script":   true,
	"style":    true,
	"img":      true,
	"select":   true,
	"option":   true,
	"head":     true,
}

var blockTags = map[string]bool{
	"div": true, "p": true, "h1": true, "h2": true, "h3": true,
	"section": true, "ul": true, "li": true, "a": true,
}

// classStyles is checked in order; the first class an element has wins.
var classStyles = []struct {
	class string
	style Style
}{
	{"error-state", StyleError},
	{"no-results", StyleMuted},
	{"loading", StyleMuted},
	{"section-title", StyleHeading},
	{"hero-title", StyleHeading},
	{"hero-tag", StyleAccent},
	{"tagline", StyleMuted},
	{"rating-badge", StyleRating},
	{"hero-rating", StyleRating},
	{"episode-rating", StyleRating},
	{"filmography-rating", StyleRating},
	{"votes", StyleMuted},
	{"genre-tag", StyleTag},
	{"meta-tag", StyleTag},
	{"filter-badge", StyleTag},
	{"card-meta", StyleMuted},
	{"ep-meta", StyleMuted},
	{"filmography-year", StyleMuted},
	{"filmography-character", StyleMuted},
	{"credit-job", StyleMuted},
	{"person-meta", StyleMuted},
	{"page-info", StyleMuted},
	{"search-results-info", StyleMuted},
}

var tagStyles = map[string]Style{
	"h1":     StyleHeading,
	"h2":     StyleHeading,
	"h3":     StyleHeading,
	"strong": StyleAccent,
}

// spacedContainers separate their child elements with a dot.
var spacedContainers = []string{"meta-row", "genre-tags", "person-meta", "hero-meta", "filter-badges"}

const separator = " · "

type walker struct {
	opts         Options
	activeSeason int
	out          Rendered
	cur          Line
	style        Style
	dim          int
	revealSeq    int
}

func styleOf(s *goquery.Selection) (Style, bool) {
	for _, cs := range classStyles {
		if s.HasClass(cs.class) {
			return cs.style, true
		}
	}
	if st, ok := tagStyles[goquery.NodeName(s)]; ok {
		return st, true
	}
	return StylePlain, false
}

func (w *walker) walk(sel *goquery.Selection) {
	spaced := false
	for _, c := range spacedContainers {
		if sel.HasClass(c) {
			spaced = true
			break
		}
	}
	written := false
	sel.Contents().Each(func(_ int, n *goquery.Selection) {
		if spaced && goquery.NodeName(n) != "#text" {
			if written && strings.TrimSpace(n.Text()) != "" {
				w.append(Segment{Text: separator, Style: StyleMuted, Action: -1})
			}
			if strings.TrimSpace(n.Text()) != "" {
				written = true
			}
		}
		w.node(n)
	})
}

func (w *walker) node(n *goquery.Selection) {
	name := goquery.NodeName(n)
	if name == "#text" {
		if text := spaceText(n.Text()); text != "" {
			w.append(Segment{Text: text, Style: w.style, Action: -1})
		}
		return
	}
	if skippedTags[name] || w.skip(n) {
		return
	}
	if n.HasClass("skeleton-card") {
		w.flush()
		w.append(Segment{Text: "▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒▒", Style: StyleMuted, Action: -1})
		w.flush()
		return
	}
	if _, ok := n.Attr(route.AttrAction); ok {
		w.action(n)
		return
	}
	if n.HasClass("animate-in") {
		w.reveal(n)
		return
	}
	if name == "a" {
		w.link(n)
		return
	}
	w.element(n, blockTags[name])
}

func (w *walker) skip(n *goquery.Selection) bool {
	switch {
	case n.HasClass("spinner"):
		return true
	case n.HasClass("hero-slide"):
		idx, _ := strconv.Atoi(n.AttrOr(route.AttrIndex, "0"))
		return idx != w.opts.HeroActive
	}
	return false
}

func (w *walker) element(n *goquery.Selection, block bool) {
	prev := w.style
	if st, ok := styleOf(n); ok {
		w.style = st
	}
	if block {
		w.flush()
	}
	w.walk(n)
	if block {
		w.flush()
	}
	w.style = prev
}

func (w *walker) reveal(n *goquery.Selection) {
	id := n.AttrOr("id", "")
	if id == "" {
		id = fmt.Sprintf("reveal-%d", w.revealSeq)
	}
	w.revealSeq++

	w.flush()
	start := len(w.out.Lines)
	hidden := w.opts.Hidden != nil && w.opts.Hidden(id)
	if hidden {
		w.dim++
	}
	w.element(n, true)
	if hidden {
		w.dim--
	}
	w.out.Blocks = append(w.out.Blocks, Block{ID: id, Start: start, End: len(w.out.Lines)})
}

func (w *walker) link(n *goquery.Selection) {
	w.flush()
	label := collapse(n.Text())
	if label == "" {
		label = n.AttrOr("title", "link")
	}
	w.append(Segment{Text: "↗ " + label, Style: StyleAccent, Action: -1})
	if href := n.AttrOr("href", ""); href != "" {
		w.append(Segment{Text: "  " + href, Style: StyleLink, Action: -1})
	}
	w.flush()
}

func (w *walker) action(n *goquery.Selection) {
	a, err := route.ParseAction(func(name string) (string, bool) { return n.Attr(name) })
	if err != nil {
		w.element(n, blockTags[goquery.NodeName(n)])
		return
	}
	block := goquery.NodeName(n) == "div"
	if block {
		w.flush()
	}
	label := actionLabel(n)
	active := false
	switch a.Kind {
	case route.ActionHero:
		active = a.Index == w.opts.HeroActive
		label = "○"
		if active {
			label = "●"
		}
	case route.ActionSeason:
		active = a.Index == w.activeSeason
	}
	style, _ := styleOf(n)
	idx := len(w.out.Actions)
	w.append(Segment{Text: label, Style: style, Action: idx, Active: active})
	w.out.Actions = append(w.out.Actions, ActionRef{Action: a, Label: label, Line: len(w.out.Lines)})
	if block {
		w.flush()
	}
}

// actionLabel is the one-line text of an actionable element.
func actionLabel(n *goquery.Selection) string {
	switch {
	case n.HasClass("card") && !n.HasClass("person-card"):
		return joinNonEmpty("  ",
			collapse(n.Find(".card-title").Text()),
			collapse(n.Find(".card-meta").Text()),
			collapse(n.Find(".card-rating-overlay").Text()),
			collapse(n.Find(".card-type-overlay").Text()),
		)
	case n.HasClass("person-card"):
		return joinNonEmpty("  ",
			collapse(n.Find(".card-title").Text()),
			collapse(n.Find(".card-meta").Text()),
			"person",
		)
	case n.HasClass("cast-card"):
		name := collapse(n.Find(".cast-name").Text())
		if character := collapse(n.Find(".cast-character").Text()); character != "" {
			return name + " as " + character
		}
		return name
	}
	return collapse(n.Text())
}

func (w *walker) append(s Segment) {
	if s.Style == StylePlain {
		s.Style = w.style
	}
	if len(w.cur.Segments) == 0 {
		w.cur.Style = w.style
	} else if last := w.cur.Segments[len(w.cur.Segments)-1]; s.Action < 0 && strings.HasSuffix(last.Text, " ") {
		s.Text = strings.TrimLeft(s.Text, " ")
		if s.Text == "" {
			return
		}
	}
	w.cur.Segments = append(w.cur.Segments, s)
}

func (w *walker) flush() {
	line := w.cur
	w.cur = Line{}
	if strings.TrimSpace(line.Text()) == "" {
		return
	}
	line.Segments = trimSegments(line.Segments)
	line.Dim = w.dim > 0
	w.out.Lines = append(w.out.Lines, line)
}

// trimSegments drops blank edge segments and trims the outer spaces.
func trimSegments(segs []Segment) []Segment {
	for len(segs) > 0 && segs[0].Action < 0 && strings.TrimSpace(segs[0].Text) == "" {
		segs = segs[1:]
	}
	for len(segs) > 0 && segs[len(segs)-1].Action < 0 && strings.TrimSpace(segs[len(segs)-1].Text) == "" {
		segs = segs[:len(segs)-1]
	}
	if len(segs) == 0 {
		return nil
	}
	out := make([]Segment, len(segs))
	copy(out, segs)
	if out[0].Action < 0 {
		out[0].Text = strings.TrimLeft(out[0].Text, " ")
	}
	last := len(out) - 1
	if out[last].Action < 0 {
		out[last].Text = strings.TrimRight(out[last].Text, " ")
	}
	return out
}

// collapse folds whitespace runs into single spaces and trims the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// spaceText collapses a text node but keeps a single space at either end
// when the node had whitespace there, so inline runs stay separated.
func spaceText(s string) string {
	if s == "" {
		return ""
	}
	text := collapse(s)
	if text == "" {
		return " "
	}
	if isSpace(s[0]) {
		text = " " + text
	}
	if isSpace(s[len(s)-1]) {
		text += " "
	}
	return text
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

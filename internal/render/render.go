package render

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/five82/cinevault/internal/route"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Display caps.
const (
	CastLimit        = 12
	FilmographyLimit = 20
	SimilarLimit     = 10
	GridLimit        = 20
	HeroLimit        = 5
	SkeletonCards    = 8
)

// placeholderURL is shown wherever an image URL is absent.
const placeholderURL = template.URL(`data:image/svg+xml,%3Csvg%20xmlns%3D%22http%3A%2F%2Fwww.w3.org%2F2000%2Fsvg%22%20viewBox%3D%220%200%20300%20450%22%3E%3Crect%20fill%3D%22%2310101c%22%20width%3D%22300%22%20height%3D%22450%22%2F%3E%3Ctext%20x%3D%22150%22%20y%3D%22225%22%20text-anchor%3D%22middle%22%20fill%3D%22%234a4a6a%22%20font-family%3D%22sans-serif%22%20font-size%3D%2216%22%3ENo%20Poster%3C%2Ftext%3E%3C%2Fsvg%3E`)

// Renderer turns view models into markup. It holds no per-call state, so the
// same input always yields the same output.
type Renderer struct {
	tmpl    *template.Template
	printer *message.Printer
	lang    language.Tag
}

// NewRenderer parses the embedded templates. locale is a BCP 47 tag used for
// number formatting; an unparsable tag falls back to English.
func NewRenderer(locale string) (*Renderer, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	r := &Renderer{
		printer: message.NewPrinter(tag),
		lang:    tag,
	}
	tmpl, err := template.New("cinevault").Funcs(r.funcs()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Locale returns the language tag numbers are formatted for.
func (r *Renderer) Locale() language.Tag {
	return r.lang
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"frag":        fragment,
		"rating":      FormatRating,
		"count":       r.FormatCount,
		"img":         imageSource,
		"truncate":    truncate,
		"join":        strings.Join,
		"add1":        func(i int) int { return i + 1 },
		"sectionIcon": sectionIcon,
	}
}

func (r *Renderer) exec(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// chrome renders a panel that must never fail the caller.
func (r *Renderer) chrome(name string, data any, fallback string) string {
	out, err := r.exec(name, data)
	if err != nil {
		return `<div class="empty-state"><p>` + html.EscapeString(fallback) + `</p></div>`
	}
	return out
}

// fragment builds "#page?k=v" from alternating key/value arguments.
func fragment(page string, kv ...string) string {
	params := route.Params{}
	for i := 0; i+1 < len(kv); i += 2 {
		params[kv[i]] = kv[i+1]
	}
	return route.Encode(route.Page(page), params)
}

// FormatRating renders a score with one decimal.
func FormatRating(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// FormatCount renders n with the locale's thousands separators.
func (r *Renderer) FormatCount(n int64) string {
	return r.printer.Sprintf("%d", n)
}

func imageSource(u string) any {
	if strings.TrimSpace(u) == "" {
		return placeholderURL
	}
	return u
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "…"
}

func capList[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// Loading is the placeholder written into the container when a navigation
// begins.
func (r *Renderer) Loading(page route.Page) string {
	return r.chrome("loading", string(page), "Loading...")
}

// Skeleton renders n placeholder cards.
func (r *Renderer) Skeleton(n int) string {
	if n <= 0 {
		n = SkeletonCards
	}
	return r.chrome("skeleton", make([]struct{}, n), "Loading...")
}

// Placeholder is what a navigation to page shows until it loads. Card grid
// pages get a skeleton grid under the loading line.
func (r *Renderer) Placeholder(page route.Page) string {
	switch page {
	case route.Home, route.Search, route.Discover:
		return r.Loading(page) + r.Skeleton(SkeletonCards)
	}
	return r.Loading(page)
}

// Error renders the uniform failure panel.
func (r *Renderer) Error(msg string) string {
	if strings.TrimSpace(msg) == "" {
		msg = "Something went wrong."
	}
	return r.chrome("error", msg, msg)
}

// Empty renders the "no results" panel.
func (r *Renderer) Empty(icon, msg string) string {
	return r.chrome("empty", struct{ Icon, Message string }{icon, msg}, msg)
}

type pagerData struct {
	Current int
	Total   int
	Prev    string
	Next    string
}

// Pagination renders prev/next controls for target with its page parameter
// replaced. Nothing is rendered when total <= 1.
func (r *Renderer) Pagination(current, total int, target route.Route) string {
	if total <= 1 {
		return ""
	}
	if current < 1 {
		current = 1
	}
	data := pagerData{Current: current, Total: total}
	if current > 1 {
		data.Prev = pageFragment(target, current-1)
	}
	if current < total {
		data.Next = pageFragment(target, current+1)
	}
	return r.chrome("pagination", data, "")
}

// LoadMore renders a control that navigates to the next page when the
// backend reports more results without a page count.
func (r *Renderer) LoadMore(current int, hasMore bool, target route.Route) string {
	if !hasMore {
		return ""
	}
	if current < 1 {
		current = 1
	}
	return r.chrome("loadmore", pageFragment(target, current+1), "")
}

func pageFragment(target route.Route, page int) string {
	return route.Encode(target.Page, target.Params.With("page", fmt.Sprint(page)))
}

// pager picks between numbered pagination and load-more.
func (r *Renderer) pager(current, total int, hasMore bool, target route.Route) template.HTML {
	if total > 0 {
		return template.HTML(r.Pagination(current, total, target))
	}
	return template.HTML(r.LoadMore(current, hasMore, target))
}

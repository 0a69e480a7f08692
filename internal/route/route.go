package route

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Page identifies which loader renders a route.
type Page string

const (
	Home     Page = "home"
	Title    Page = "title"
	Person   Page = "person"
	Search   Page = "search"
	Discover Page = "discover"
	Series   Page = "series"
	Credits  Page = "credits"
)

var knownPages = map[Page]bool{
	Home:     true,
	Title:    true,
	Person:   true,
	Search:   true,
	Discover: true,
	Series:   true,
	Credits:  true,
}

// Known reports whether p has a loader.
func (p Page) Known() bool {
	return knownPages[p]
}

// Params holds the decoded query of a fragment. Values are never coerced.
type Params map[string]string

// Clone returns a copy safe to mutate.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// With returns a copy of p with key set to value.
func (p Params) With(key, value string) Params {
	out := p.Clone()
	out[key] = value
	return out
}

// Route is a parsed fragment.
type Route struct {
	Page   Page
	Params Params
}

// New builds a Route, copying params.
func New(page Page, params Params) Route {
	if params == nil {
		return Route{Page: page, Params: Params{}}
	}
	return Route{Page: page, Params: params.Clone()}
}

// Fragment encodes the route back into "#page?k=v".
func (r Route) Fragment() string {
	return Encode(r.Page, r.Params)
}

// Get returns the trimmed value for key.
func (r Route) Get(key string) string {
	return strings.TrimSpace(r.Params[key])
}

// Int parses key as an integer, returning def when absent or malformed.
func (r Route) Int(key string, def int) int {
	raw := r.Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// PageNumber returns the "page" parameter clamped to at least 1.
func (r Route) PageNumber() int {
	n := r.Int("page", 1)
	if n < 1 {
		return 1
	}
	return n
}

// Encode serializes page and params into a fragment. Keys are sorted so the
// output is stable; empty values are kept.
func Encode(page Page, params Params) string {
	if len(params) == 0 {
		return "#" + string(page)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("#")
	b.WriteString(string(page))
	b.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

// Decode parses a fragment. An empty fragment or unknown page yields Home.
// Repeated keys resolve to their last occurrence.
func Decode(fragment string) Route {
	h := strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	name, qs, _ := strings.Cut(h, "?")

	page := Page(name)
	if name == "" || !page.Known() {
		page = Home
	}
	return Route{Page: page, Params: parseQuery(qs)}
}

// parseQuery keeps every pair that decodes cleanly; url.ParseQuery would
// reject the whole string on the first bad escape.
func parseQuery(qs string) Params {
	params := Params{}
	for qs != "" {
		var pair string
		pair, qs, _ = strings.Cut(qs, "&")
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}
		params[key] = value
	}
	return params
}

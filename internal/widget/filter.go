package widget

import (
	"strings"

	"github.com/five82/cinevault/internal/render"
	"github.com/five82/cinevault/internal/route"
)

// FilterField names one discover filter.
type FilterField string

const (
	FieldType   FilterField = "type"
	FieldGenre  FilterField = "genre"
	FieldYear   FilterField = "year"
	FieldRating FilterField = "rating"
	FieldSort   FilterField = "sort"
)

// FilterFields lists the fields in panel order.
var FilterFields = []FilterField{FieldType, FieldGenre, FieldYear, FieldRating, FieldSort}

// FilterChoices are the fixed values of the enumerated fields. Genre choices
// come from the catalog and year is free text.
var FilterChoices = map[FilterField][]string{
	FieldType:   {"movie", "tv"},
	FieldRating: {"", "5", "6", "7", "8", "9"},
	FieldSort:   {"popularity", "rating", "release_date", "votes"},
}

var filterDefaults = map[FilterField]string{
	FieldType: "movie",
	FieldSort: "popularity",
}

// FilterPanel collects discover filters. Changing a field never navigates;
// only Apply produces a route.
type FilterPanel struct {
	open   bool
	values map[FilterField]string
}

// NewFilterPanel returns a closed panel holding the defaults.
func NewFilterPanel() *FilterPanel {
	p := &FilterPanel{values: map[FilterField]string{}}
	for k, v := range filterDefaults {
		p.values[k] = v
	}
	return p
}

// Toggle opens or closes the panel and reports the new state.
func (p *FilterPanel) Toggle() bool {
	p.open = !p.open
	return p.open
}

// Close hides the panel.
func (p *FilterPanel) Close() {
	p.open = false
}

// Open reports whether the panel is shown.
func (p *FilterPanel) Open() bool {
	return p.open
}

// Set changes one field.
func (p *FilterPanel) Set(field FilterField, value string) {
	p.values[field] = strings.TrimSpace(value)
}

// Value returns the current value of field.
func (p *FilterPanel) Value(field FilterField) string {
	return p.values[field]
}

// Cycle moves field delta steps through choices, wrapping at either end. A
// value not among choices restarts from the first.
func (p *FilterPanel) Cycle(field FilterField, choices []string, delta int) {
	if len(choices) == 0 {
		return
	}
	idx := -1
	for i, c := range choices {
		if c == p.values[field] {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.Set(field, choices[0])
		return
	}
	n := len(choices)
	p.Set(field, choices[((idx+delta)%n+n)%n])
}

// Prefill copies filter values from params, e.g. the current discover route.
func (p *FilterPanel) Prefill(params route.Params) {
	for _, f := range FilterFields {
		if v, ok := params[string(f)]; ok {
			p.Set(f, v)
		}
	}
}

// Apply returns the discover route for the current values, on page 1. Empty
// type and sort fall back to their defaults.
func (p *FilterPanel) Apply() route.Route {
	params := route.Params{"page": "1"}
	for _, f := range FilterFields {
		v := p.values[f]
		if v == "" {
			v = filterDefaults[f]
		}
		params[string(f)] = v
	}
	return route.New(route.Discover, params)
}

// Badges previews the filters Apply would use.
func (p *FilterPanel) Badges() []string {
	return render.FilterBadges(p.Apply().Params)
}

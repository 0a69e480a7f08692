// Package render turns catalog view models into page markup.
//
// Every renderer is a pure function of its inputs: the same view model always
// yields the same markup, and nothing is fetched or cached here. Templates
// live in templates/*.tmpl and are embedded at build time; html/template's
// contextual escaping keeps every backend string inert wherever it lands.
//
// Clickable elements carry data-action, data-fragment and data-index
// attributes (see route.Action) instead of inline handlers. The terminal view
// reads those attributes back to build its action list.
//
// Optional fields are omitted rather than rendered empty. A missing image
// falls back to an inline SVG placeholder, and elements that may fail to load
// carry data-fallback="placeholder".
package render

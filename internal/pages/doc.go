// Package pages holds one loader per page kind.
//
// A loader fetches what its page needs from the catalog, renders it and
// returns a Result for the router to commit. Loaders never leave the page in
// a loading state: every path ends in page markup, the "no results" panel or
// the error panel.
//
// Rules shared by all loaders:
//
//   - A detail route (title, person, series, credits) without an id silently
//     loads home instead.
//   - Any catalog failure renders the error panel and records Err.
//   - Streaming links on the title page are best effort.
//   - Unknown route parameters are passed through to search and discover.
package pages

// Package state holds the content container shared by the router and the UI.
//
// # Overview
//
// Store is the one place page markup lives. The router writes to it; the
// terminal shell reads Snapshot on every redraw. Writes go through a
// generation counter:
//
//	gen := store.Begin(route, loadingMarkup)   // new navigation
//	...fetch and render...
//	store.Commit(gen, page)                     // dropped if gen is stale
//
// A later Begin invalidates every earlier generation, so whichever
// navigation started last is the one that ends up on screen, regardless of
// the order responses arrive in.
//
// # Regions
//
// Some pages load part of their content separately. The series page renders
// a season selector and an empty element marked data-region="episodes"; the
// episode list is written into that region with BeginRegion/CommitRegion.
// Regions carry their own sequence number so a slow season fetch cannot
// overwrite a later season selection. Snapshot composes region markup into
// the page.
//
// # Concurrency Model
//
// Store uses a readers-writer lock held only while copying. The zero value
// is ready to use.
//
// # Error Propagation
//
// A failed page load still commits (its markup is the error panel) and the
// error is kept in LastError. ConsecutiveFailures counts failed loads since
// the last success so the status line can report an unreachable catalog.
package state

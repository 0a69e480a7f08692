// Package router is the two-state navigation engine.
//
// The router is Idle until a fragment arrives, then Loading(route) until the
// page loader returns:
//
//	Idle --Begin(fragment)--> Loading(route) --Run--> Idle
//
// Begin runs the one-shot leave hooks registered by the previous page (hero
// rotation timer, pending search debounce), writes the loading placeholder
// and stamps a generation in the content container. Run invokes the loader
// and commits. A navigation that begins while another is loading does not
// cancel it; the older result simply fails to commit because its generation
// is stale.
package router

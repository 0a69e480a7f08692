package router

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/five82/cinevault/internal/pages"
	"github.com/five82/cinevault/internal/render"
	"github.com/five82/cinevault/internal/route"
	"github.com/five82/cinevault/internal/state"
)

// Pending is a navigation that has begun but not yet loaded.
type Pending struct {
	Gen   uint64
	Route route.Route
}

// Outcome reports how a navigation ended. Committed is false when a newer
// navigation began while this one was loading; its result was discarded.
type Outcome struct {
	Gen       uint64
	Route     route.Route
	Committed bool
	Effects   state.Effects
	Err       error
}

// Router maps fragments to page loaders and writes their output into the
// content container.
type Router struct {
	store   *state.Store
	pages   *pages.Set
	log     *logrus.Entry
	session string

	mu    sync.Mutex
	leave []func()
}

// New builds a Router. log may be nil.
func New(store *state.Store, set *pages.Set, log *logrus.Entry) *Router {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	session := uuid.NewString()
	return &Router{
		store:   store,
		pages:   set,
		session: session,
		log:     log.WithFields(logrus.Fields{"component": "router", "session": session}),
	}
}

// Session identifies this router instance in logs.
func (r *Router) Session() string {
	return r.session
}

// OnLeave registers fn to run once when the current page is left.
func (r *Router) OnLeave(fn func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.leave = append(r.leave, fn)
	r.mu.Unlock()
}

func (r *Router) runLeave() {
	r.mu.Lock()
	hooks := r.leave
	r.leave = nil
	r.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// Begin starts navigating to fragment: page teardown hooks run, the loading
// placeholder replaces the content and a new generation is stamped. Unknown
// pages resolve to home.
func (r *Router) Begin(fragment string) Pending {
	rt := route.Decode(fragment)
	r.runLeave()
	gen := r.store.Begin(rt, r.pages.Renderer().Placeholder(rt.Page))
	r.log.WithFields(logrus.Fields{"page": rt.Page, "gen": gen, "fragment": rt.Fragment()}).Debug("navigation started")
	return Pending{Gen: gen, Route: rt}
}

// Run loads p and commits the result unless p has been superseded.
func (r *Router) Run(ctx context.Context, p Pending) Outcome {
	res := r.pages.Load(ctx, p.Route)
	out := Outcome{Gen: p.Gen, Route: res.Route, Effects: res.Effects, Err: res.Err}
	out.Committed = r.store.Commit(p.Gen, res)

	entry := r.log.WithFields(logrus.Fields{"page": p.Route.Page, "gen": p.Gen})
	if !out.Committed {
		entry.Debug("discarded stale page load")
		return out
	}
	if res.Err != nil {
		entry.WithError(res.Err).Info("page committed with error")
		return out
	}
	entry.Debug("page committed")
	return out
}

// Navigate is Begin followed by Run.
func (r *Router) Navigate(ctx context.Context, fragment string) Outcome {
	return r.Run(ctx, r.Begin(fragment))
}

// SelectSeason reloads only the episodes region of the series page loaded
// under gen. It reports whether the new list was committed.
func (r *Router) SelectSeason(ctx context.Context, gen uint64, seriesID string, season int) bool {
	seq, ok := r.store.BeginRegion(gen, render.EpisodesRegion, r.pages.Renderer().Loading(route.Series))
	if !ok {
		return false
	}
	markup := r.pages.Episodes(ctx, seriesID, season)
	committed := r.store.CommitRegion(gen, render.EpisodesRegion, seq, markup)
	r.log.WithFields(logrus.Fields{"gen": gen, "season": season, "committed": committed}).Debug("season loaded")
	return committed
}

package pages

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/five82/cinevault/internal/catalog"
	"github.com/five82/cinevault/internal/render"
	"github.com/five82/cinevault/internal/route"
	"github.com/five82/cinevault/internal/state"
)

// Catalog is the set of catalog reads the loaders depend on.
type Catalog interface {
	Home(ctx context.Context) (catalog.HomeFeed, error)
	Search(ctx context.Context, query string, page int, filters map[string]string) (catalog.ResultPage, error)
	Discover(ctx context.Context, filters map[string]string) (catalog.ResultPage, error)
	Title(ctx context.Context, id, mediaType string) (catalog.TitleDetail, error)
	FullCredits(ctx context.Context, id, mediaType string) (catalog.Credits, error)
	Streaming(ctx context.Context, id string) ([]catalog.StreamingLink, error)
	Seasons(ctx context.Context, id string) (catalog.SeasonIndex, error)
	Episodes(ctx context.Context, id string, season int) (catalog.EpisodeList, error)
	Person(ctx context.Context, id string) (catalog.PersonDetail, error)
}

// Result is a finished page load, ready for the content container.
type Result = state.Page

// Loader builds the page for a route.
type Loader func(ctx context.Context, r route.Route) Result

// Set binds the page loaders to a catalog and a renderer.
type Set struct {
	catalog Catalog
	render  *render.Renderer
	log     *logrus.Entry
}

// NewSet builds the loaders. log may be nil.
func NewSet(c Catalog, r *render.Renderer, log *logrus.Entry) *Set {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Set{catalog: c, render: r, log: log.WithField("component", "pages")}
}

// Loader returns the loader for page. Unknown pages load home.
func (s *Set) Loader(page route.Page) Loader {
	switch page {
	case route.Title:
		return s.Title
	case route.Person:
		return s.Person
	case route.Search:
		return s.Search
	case route.Discover:
		return s.Discover
	case route.Series:
		return s.Series
	case route.Credits:
		return s.Credits
	default:
		return s.Home
	}
}

// Load dispatches r to its loader.
func (s *Set) Load(ctx context.Context, r route.Route) Result {
	return s.Loader(r.Page)(ctx, r)
}

// Renderer returns the renderer the loaders draw with.
func (s *Set) Renderer() *render.Renderer {
	return s.render
}

// fail converts any loader error into the uniform error panel.
func (s *Set) fail(r route.Route, err error) Result {
	s.log.WithFields(logrus.Fields{"page": r.Page, "error": err}).Warn("page load failed")
	return Result{Route: r, Markup: s.render.Error(err.Error()), Err: err}
}

func (s *Set) page(r route.Route, markup string, err error, effects state.Effects) Result {
	if err != nil {
		return s.fail(r, err)
	}
	return Result{Route: r, Markup: markup, Effects: effects}
}

// redirectHome is the silent fallback for detail routes without an id.
func (s *Set) redirectHome(ctx context.Context, r route.Route) Result {
	s.log.WithField("page", r.Page).Debug("route has no id, loading home")
	return s.Home(ctx, route.New(route.Home, nil))
}

// Home loads the landing feed with its hero banner.
func (s *Set) Home(ctx context.Context, r route.Route) Result {
	feed, err := s.catalog.Home(ctx)
	if err != nil {
		return s.fail(r, err)
	}
	markup, err := s.render.Home(feed)
	effects := state.Effects{HeroSlides: len(render.HeroSlides(feed)), Reveal: true}
	return s.page(r, markup, err, effects)
}

// Title loads the detail page. Streaming links are optional: their failure
// is logged and otherwise ignored.
func (s *Set) Title(ctx context.Context, r route.Route) Result {
	id := r.Get("id")
	if id == "" {
		return s.redirectHome(ctx, r)
	}
	detail, err := s.catalog.Title(ctx, id, r.Get("type"))
	if err != nil {
		return s.fail(r, err)
	}
	links, err := s.catalog.Streaming(ctx, id)
	if err != nil {
		s.log.WithFields(logrus.Fields{"id": id, "error": err}).Debug("streaming links unavailable")
		links = nil
	}
	markup, err := s.render.Title(detail, links)
	return s.page(r, markup, err, state.Effects{Reveal: true})
}

// Person loads a biography and filmography.
func (s *Set) Person(ctx context.Context, r route.Route) Result {
	id := r.Get("id")
	if id == "" {
		return s.redirectHome(ctx, r)
	}
	detail, err := s.catalog.Person(ctx, id)
	if err != nil {
		return s.fail(r, err)
	}
	markup, err := s.render.Person(detail)
	return s.page(r, markup, err, state.Effects{Reveal: true})
}

// Search runs the query in q. Parameters other than q and page are passed
// to the backend untouched.
func (s *Set) Search(ctx context.Context, r route.Route) Result {
	query := r.Params["q"]
	page := r.PageNumber()
	filters := map[string]string{}
	for k, v := range r.Params {
		if k == "q" || k == "page" {
			continue
		}
		filters[k] = v
	}
	results, err := s.catalog.Search(ctx, query, page, filters)
	if err != nil {
		return s.fail(r, err)
	}
	markup, err := s.render.Search(query, results, r)
	return s.page(r, markup, err, state.Effects{Reveal: true})
}

// DiscoverDefaults fill in discover parameters the route leaves out.
var DiscoverDefaults = map[string]string{
	"type": "movie",
	"sort": "popularity",
}

// Discover browses with the route's filters as opaque parameters.
func (s *Set) Discover(ctx context.Context, r route.Route) Result {
	filters := map[string]string{}
	for k, v := range r.Params {
		filters[k] = v
	}
	for k, v := range DiscoverDefaults {
		if filters[k] == "" {
			filters[k] = v
		}
	}
	filters["page"] = strconv.Itoa(r.PageNumber())

	results, err := s.catalog.Discover(ctx, filters)
	if err != nil {
		return s.fail(r, err)
	}
	markup, err := s.render.Discover(r, results)
	return s.page(r, markup, err, state.Effects{Reveal: true})
}

// Series loads the season index, then the requested (or first) season's
// episodes into the episodes region.
func (s *Set) Series(ctx context.Context, r route.Route) Result {
	id := r.Get("id")
	if id == "" {
		return s.redirectHome(ctx, r)
	}
	index, err := s.catalog.Seasons(ctx, id)
	if err != nil {
		return s.fail(r, err)
	}
	season := pickSeason(index.Seasons, r.Int("season", 0))
	markup, err := s.render.Series(index, season, r)
	if err != nil {
		return s.fail(r, err)
	}
	res := Result{Route: r, Markup: markup}
	if len(index.Seasons) > 0 {
		res.Regions = map[string]string{render.EpisodesRegion: s.Episodes(ctx, id, season)}
	}
	return res
}

// pickSeason returns want when the series has it, else the first season.
func pickSeason(seasons []int, want int) int {
	if len(seasons) == 0 {
		return 0
	}
	for _, n := range seasons {
		if n == want {
			return n
		}
	}
	return seasons[0]
}

// Episodes renders one season's episode list for the episodes region. A
// failure renders the error panel inside the region only.
func (s *Set) Episodes(ctx context.Context, seriesID string, season int) string {
	list, err := s.catalog.Episodes(ctx, seriesID, season)
	if err != nil {
		s.log.WithFields(logrus.Fields{"id": seriesID, "season": season, "error": err}).Warn("episode load failed")
		return s.render.Error(err.Error())
	}
	markup, err := s.render.Episodes(list)
	if err != nil {
		return s.render.Error(fmt.Sprintf("season %d: %v", season, err))
	}
	return markup
}

// Credits loads the complete cast and crew.
func (s *Set) Credits(ctx context.Context, r route.Route) Result {
	id := r.Get("id")
	if id == "" {
		return s.redirectHome(ctx, r)
	}
	credits, err := s.catalog.FullCredits(ctx, id, r.Get("type"))
	if err != nil {
		return s.fail(r, err)
	}
	markup, err := s.render.Credits(credits)
	return s.page(r, markup, err, state.Effects{Reveal: true})
}

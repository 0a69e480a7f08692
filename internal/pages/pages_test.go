package pages

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/cinevault/internal/catalog"
	"github.com/five82/cinevault/internal/render"
	"github.com/five82/cinevault/internal/route"
)

type fakeCatalog struct {
	calls []string

	home        catalog.HomeFeed
	homeErr     error
	search      catalog.ResultPage
	searchErr   error
	searchArgs  map[string]string
	searchQuery string
	searchPage  int
	discover    catalog.ResultPage
	discoverArg map[string]string
	title       catalog.TitleDetail
	titleErr    error
	streamErr   error
	links       []catalog.StreamingLink
	seasons     catalog.SeasonIndex
	episodes    map[int]catalog.EpisodeList
	episodesErr error
	person      catalog.PersonDetail
	credits     catalog.Credits
}

func (f *fakeCatalog) Home(ctx context.Context) (catalog.HomeFeed, error) {
	f.calls = append(f.calls, "home")
	return f.home, f.homeErr
}

func (f *fakeCatalog) Search(ctx context.Context, query string, page int, filters map[string]string) (catalog.ResultPage, error) {
	f.calls = append(f.calls, "search")
	f.searchQuery, f.searchPage, f.searchArgs = query, page, filters
	return f.search, f.searchErr
}

func (f *fakeCatalog) Discover(ctx context.Context, filters map[string]string) (catalog.ResultPage, error) {
	f.calls = append(f.calls, "discover")
	f.discoverArg = filters
	return f.discover, nil
}

func (f *fakeCatalog) Title(ctx context.Context, id, mediaType string) (catalog.TitleDetail, error) {
	f.calls = append(f.calls, "title:"+id+":"+mediaType)
	return f.title, f.titleErr
}

func (f *fakeCatalog) FullCredits(ctx context.Context, id, mediaType string) (catalog.Credits, error) {
	f.calls = append(f.calls, "credits:"+id)
	return f.credits, nil
}

func (f *fakeCatalog) Streaming(ctx context.Context, id string) ([]catalog.StreamingLink, error) {
	f.calls = append(f.calls, "streaming:"+id)
	return f.links, f.streamErr
}

func (f *fakeCatalog) Seasons(ctx context.Context, id string) (catalog.SeasonIndex, error) {
	f.calls = append(f.calls, "seasons:"+id)
	return f.seasons, nil
}

func (f *fakeCatalog) Episodes(ctx context.Context, id string, season int) (catalog.EpisodeList, error) {
	f.calls = append(f.calls, "episodes:"+id)
	if f.episodesErr != nil {
		return catalog.EpisodeList{}, f.episodesErr
	}
	return f.episodes[season], nil
}

func (f *fakeCatalog) Person(ctx context.Context, id string) (catalog.PersonDetail, error) {
	f.calls = append(f.calls, "person:"+id)
	return f.person, nil
}

func newSet(t *testing.T, c Catalog) (*Set, *test.Hook) {
	t.Helper()
	r, err := render.NewRenderer("en")
	require.NoError(t, err)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewSet(c, r, logrus.NewEntry(logger)), hook
}

func doc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return d
}

func TestDetailRoutesWithoutIDLoadHome(t *testing.T) {
	for _, page := range []route.Page{route.Title, route.Person, route.Series, route.Credits} {
		t.Run(string(page), func(t *testing.T) {
			fake := &fakeCatalog{}
			set, _ := newSet(t, fake)
			res := set.Load(context.Background(), route.New(page, route.Params{"type": "movie"}))
			require.NoError(t, res.Err)
			assert.Equal(t, []string{"home"}, fake.calls)
			assert.Equal(t, route.Home, res.Route.Page)
			assert.Equal(t, 1, doc(t, res.Markup).Find(".mood-section").Length())
		})
	}
}

func TestUnknownPageLoadsHome(t *testing.T) {
	fake := &fakeCatalog{}
	set, _ := newSet(t, fake)
	res := set.Load(context.Background(), route.New(route.Page("nowhere"), nil))
	assert.Equal(t, []string{"home"}, fake.calls)
	assert.NoError(t, res.Err)
}

func TestFetchFailureRendersErrorPanel(t *testing.T) {
	fake := &fakeCatalog{titleErr: &catalog.HTTPError{Status: 500, Path: "/api/title/x"}}
	set, hook := newSet(t, fake)

	res := set.Title(context.Background(), route.New(route.Title, route.Params{"id": "x"}))
	require.Error(t, res.Err)
	var httpErr *catalog.HTTPError
	require.True(t, errors.As(res.Err, &httpErr))
	d := doc(t, res.Markup)
	assert.Equal(t, "HTTP 500", d.Find(".error-state p").Text())
	assert.Equal(t, 0, d.Find(".loading").Length())
	assert.NotContains(t, fake.calls, "streaming:x")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestTitleStreamingIsBestEffort(t *testing.T) {
	fake := &fakeCatalog{
		title:     catalog.TitleDetail{TitleSummary: catalog.TitleSummary{ID: "x", Title: "X"}},
		streamErr: errors.New("HTTP 404"),
	}
	set, _ := newSet(t, fake)

	res := set.Title(context.Background(), route.New(route.Title, route.Params{"id": "x", "type": "movie"}))
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"title:x:movie", "streaming:x"}, fake.calls)
	d := doc(t, res.Markup)
	assert.Equal(t, "X", d.Find("h1").Text())
	assert.Equal(t, 0, d.Find(".error-state").Length())
	assert.True(t, res.Effects.Reveal)
}

func TestSearchPassesParamsThrough(t *testing.T) {
	fake := &fakeCatalog{search: catalog.ResultPage{
		TotalPages: 3,
		Results:    []catalog.Result{{Title: &catalog.TitleSummary{ID: "a", Title: "A"}}},
	}}
	set, _ := newSet(t, fake)

	r := route.New(route.Search, route.Params{"q": "alien", "page": "0", "type": "tv", "includeAdult": "false"})
	res := set.Search(context.Background(), r)
	require.NoError(t, res.Err)
	assert.Equal(t, "alien", fake.searchQuery)
	assert.Equal(t, 1, fake.searchPage)
	assert.Equal(t, map[string]string{"type": "tv", "includeAdult": "false"}, fake.searchArgs)

	next, ok := doc(t, res.Markup).Find(".pagination .page-btn").Attr("data-fragment")
	require.True(t, ok)
	assert.Equal(t, "#search?includeAdult=false&page=2&q=alien&type=tv", next)
}

func TestSearchEmptyResults(t *testing.T) {
	set, _ := newSet(t, &fakeCatalog{search: catalog.ResultPage{TotalPages: 2}})
	res := set.Search(context.Background(), route.New(route.Search, route.Params{"q": "zz"}))
	require.NoError(t, res.Err)
	d := doc(t, res.Markup)
	assert.Equal(t, 1, d.Find(".no-results").Length())
	assert.Equal(t, 0, d.Find(".pagination").Length())
}

func TestDiscoverDefaults(t *testing.T) {
	fake := &fakeCatalog{}
	set, _ := newSet(t, fake)
	res := set.Discover(context.Background(), route.New(route.Discover, route.Params{"genre": "28", "year": ""}))
	require.NoError(t, res.Err)
	assert.Equal(t, map[string]string{
		"genre": "28",
		"year":  "",
		"type":  "movie",
		"sort":  "popularity",
		"page":  "1",
	}, fake.discoverArg)
	assert.Contains(t, res.Markup, "No movies found with these filters.")
}

func TestSeriesLoadsRequestedSeason(t *testing.T) {
	fake := &fakeCatalog{
		seasons: catalog.SeasonIndex{SeriesID: "tv1", Seasons: []int{1, 2}},
		episodes: map[int]catalog.EpisodeList{
			1: {Season: 1, Episodes: []catalog.Episode{{Number: 1, Title: "One"}}},
			2: {Season: 2, Episodes: []catalog.Episode{{Number: 1, Title: "Two"}}},
		},
	}
	set, _ := newSet(t, fake)

	res := set.Series(context.Background(), route.New(route.Series, route.Params{"id": "tv1", "season": "2"}))
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"seasons:tv1", "episodes:tv1"}, fake.calls)
	assert.Contains(t, res.Regions[render.EpisodesRegion], "Two")
	assert.Equal(t, "S2", doc(t, res.Markup).Find(".season-btn.active").Text())

	res = set.Series(context.Background(), route.New(route.Series, route.Params{"id": "tv1", "season": "9"}))
	assert.Contains(t, res.Regions[render.EpisodesRegion], "One")
}

func TestSeriesEpisodeFailureStaysInRegion(t *testing.T) {
	fake := &fakeCatalog{
		seasons:     catalog.SeasonIndex{Seasons: []int{1}},
		episodesErr: &catalog.HTTPError{Status: 502},
	}
	set, _ := newSet(t, fake)
	res := set.Series(context.Background(), route.New(route.Series, route.Params{"id": "tv1"}))
	require.NoError(t, res.Err)
	assert.Contains(t, res.Regions[render.EpisodesRegion], "HTTP 502")
	assert.NotContains(t, res.Markup, "HTTP 502")
}

func TestSeriesWithoutSeasons(t *testing.T) {
	fake := &fakeCatalog{}
	set, _ := newSet(t, fake)
	res := set.Series(context.Background(), route.New(route.Series, route.Params{"id": "tv1"}))
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"seasons:tv1"}, fake.calls)
	assert.Empty(t, res.Regions)
	assert.Contains(t, res.Markup, "No season data available.")
}

func TestHomeEffects(t *testing.T) {
	fake := &fakeCatalog{home: catalog.HomeFeed{Sections: []catalog.FeedSection{{
		Key: "trending",
		Items: []catalog.TitleSummary{
			{ID: "a", PosterURL: "https://p/a.jpg"},
			{ID: "b", BackdropURL: "https://p/b.jpg"},
			{ID: "c"},
		},
	}}}}
	set, _ := newSet(t, fake)
	res := set.Home(context.Background(), route.New(route.Home, nil))
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Effects.HeroSlides)
	assert.True(t, res.Effects.Reveal)
}

func TestPersonAndCredits(t *testing.T) {
	fake := &fakeCatalog{
		person:  catalog.PersonDetail{PersonSummary: catalog.PersonSummary{ID: "nm1", Name: "Someone"}},
		credits: catalog.Credits{Title: "Film", Cast: []catalog.CastMember{{ID: "nm1", Name: "Someone"}}},
	}
	set, _ := newSet(t, fake)

	res := set.Person(context.Background(), route.New(route.Person, route.Params{"id": "nm1"}))
	require.NoError(t, res.Err)
	assert.Equal(t, "Someone", doc(t, res.Markup).Find("h1").Text())

	res = set.Credits(context.Background(), route.New(route.Credits, route.Params{"id": "tt1"}))
	require.NoError(t, res.Err)
	assert.Equal(t, 1, doc(t, res.Markup).Find(".cast-card").Length())
}

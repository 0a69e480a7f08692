package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/five82/cinevault/internal/catalog"
	"github.com/five82/cinevault/internal/pages"
	"github.com/five82/cinevault/internal/render"
	"github.com/five82/cinevault/internal/route"
	"github.com/five82/cinevault/internal/router"
	"github.com/five82/cinevault/internal/state"
)

type fakeCatalog struct {
	mu       sync.Mutex
	searches []string
	discover []map[string]string
}

func (f *fakeCatalog) Home(ctx context.Context) (catalog.HomeFeed, error) {
	var items []catalog.TitleSummary
	for i := 1; i <= 3; i++ {
		items = append(items, catalog.TitleSummary{
			ID:        fmt.Sprintf("tt%d", i),
			Title:     fmt.Sprintf("Trending %d", i),
			PosterURL: "https://img.example/p.jpg",
			MediaType: "movie",
		})
	}
	return catalog.HomeFeed{Sections: []catalog.FeedSection{{Key: "trending", Label: "Trending", Items: items}}}, nil
}

func (f *fakeCatalog) Search(ctx context.Context, query string, page int, filters map[string]string) (catalog.ResultPage, error) {
	f.mu.Lock()
	f.searches = append(f.searches, query)
	f.mu.Unlock()
	return catalog.ResultPage{Query: query, Page: page, TotalPages: 1, Results: []catalog.Result{
		{Title: &catalog.TitleSummary{ID: "tt9", Title: "Heat", MediaType: "movie"}},
	}}, nil
}

func (f *fakeCatalog) Discover(ctx context.Context, filters map[string]string) (catalog.ResultPage, error) {
	f.mu.Lock()
	f.discover = append(f.discover, filters)
	f.mu.Unlock()
	return catalog.ResultPage{}, nil
}

func (f *fakeCatalog) Title(ctx context.Context, id, mediaType string) (catalog.TitleDetail, error) {
	return catalog.TitleDetail{}, &catalog.HTTPError{Status: 404, Path: "/api/title/" + id}
}

func (f *fakeCatalog) FullCredits(ctx context.Context, id, mediaType string) (catalog.Credits, error) {
	return catalog.Credits{}, nil
}

func (f *fakeCatalog) Streaming(ctx context.Context, id string) ([]catalog.StreamingLink, error) {
	return nil, nil
}

func (f *fakeCatalog) Seasons(ctx context.Context, id string) (catalog.SeasonIndex, error) {
	return catalog.SeasonIndex{SeriesID: id, Title: "Show", Seasons: []int{1, 2}}, nil
}

func (f *fakeCatalog) Episodes(ctx context.Context, id string, season int) (catalog.EpisodeList, error) {
	return catalog.EpisodeList{SeriesID: id, Season: season, Episodes: []catalog.Episode{
		{Number: 1, Title: fmt.Sprintf("S%d pilot", season)},
	}}, nil
}

func (f *fakeCatalog) Person(ctx context.Context, id string) (catalog.PersonDetail, error) {
	return catalog.PersonDetail{}, nil
}

func newTestModel(t *testing.T, c *fakeCatalog) Model {
	t.Helper()
	rend, err := render.NewRenderer("en")
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}
	logger, _ := test.NewNullLogger()
	log := logrus.NewEntry(logger)
	store := &state.Store{}
	r := router.New(store, pages.NewSet(c, rend, log), log)

	m := New(Options{
		Router:       r,
		Store:        store,
		Debounce:     10 * time.Millisecond,
		HeroInterval: time.Hour,
		Log:          log,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

// collect runs cmd and returns the messages it produces, expanding batches.
// Commands that do not finish promptly, such as long ticks, are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(300 * time.Millisecond):
		return nil
	}
}

// settle feeds every message produced by cmd back into the model.
func settle(m Model, cmd tea.Cmd) Model {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		next, c := m.Update(msg)
		m = settle(next.(Model), c)
	}
	return m
}

func press(m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = next.(Model)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func open(m Model, fragment string) Model {
	next, cmd := m.Update(gotoMsg{fragment: fragment})
	return settle(next.(Model), cmd)
}

func actionIndex(m Model, kind route.ActionKind, index int) int {
	for i, a := range m.page.Actions {
		if a.Action.Kind == kind && a.Action.Index == index {
			return i
		}
	}
	return -1
}

func TestHomeStartsHeroAndSelectMovesIt(t *testing.T) {
	m := open(newTestModel(t, &fakeCatalog{}), "")

	if m.current != "#home" {
		t.Fatalf("current = %q, want #home", m.current)
	}
	if m.snapshot.Loading {
		t.Fatalf("snapshot still loading after navigation settled")
	}
	if !m.hero.Running() {
		t.Fatalf("hero rotation not started for a 3-slide banner")
	}

	idx := actionIndex(m, route.ActionHero, 2)
	if idx < 0 {
		t.Fatalf("no hero dot for slide 2 among %d actions", len(m.page.Actions))
	}
	m.selected = idx
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.hero.Active(); got != 2 {
		t.Fatalf("hero active = %d, want 2", got)
	}
}

func TestNavigateAndHistoryBack(t *testing.T) {
	m := open(newTestModel(t, &fakeCatalog{}), "#home")
	m = open(m, "#search?page=1&q=heat")

	if m.current != "#search?page=1&q=heat" {
		t.Fatalf("current = %q, want search fragment", m.current)
	}
	if len(m.history) != 1 || m.history[0] != "#home" {
		t.Fatalf("history = %v, want [#home]", m.history)
	}
	if m.hero.Running() {
		t.Fatalf("hero still running after leaving home")
	}
	if got := m.searchInput.Value(); got != "heat" {
		t.Fatalf("search box = %q, want heat", got)
	}

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = settle(m, cmd)
	if m.current != "#home" || len(m.history) != 0 {
		t.Fatalf("after back current = %q history = %v, want #home and empty", m.current, m.history)
	}
}

func TestSearchDebounceFiresOnlyNewestInput(t *testing.T) {
	c := &fakeCatalog{}
	m := open(newTestModel(t, c), "#home")

	m, _ = press(m, runes("/"))
	if m.mode != modeSearch {
		t.Fatalf("mode = %v, want search", m.mode)
	}
	m, cmd := press(m, runes("h"), runes("e"), runes("a"), runes("t"))
	m = settle(m, cmd)

	if m.current != "#search?page=1&q=heat" {
		t.Fatalf("current = %q, want debounced search for heat", m.current)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.searches) != 1 || c.searches[0] != "heat" {
		t.Fatalf("searches = %v, want only [heat]", c.searches)
	}
}

func TestEnterInSearchSubmitsImmediately(t *testing.T) {
	m := open(newTestModel(t, &fakeCatalog{}), "#home")

	m, _ = press(m, runes("/"), runes("u"), runes("p"))
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(m, cmd)

	if m.current != "#search?page=1&q=up" {
		t.Fatalf("current = %q, want immediate search for up", m.current)
	}
	if m.mode != modeBrowse {
		t.Fatalf("mode = %v, want browse after submit", m.mode)
	}
}

func TestEnterInSearchIgnoresShortQuery(t *testing.T) {
	c := &fakeCatalog{}
	m := open(newTestModel(t, c), "#home")

	m, _ = press(m, runes("/"), runes("x"))
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(m, cmd)

	if m.current != "#home" {
		t.Fatalf("current = %q, a one-character query must not navigate", m.current)
	}
	if m.mode != modeSearch {
		t.Fatalf("mode = %v, want search box still focused", m.mode)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.searches) != 0 {
		t.Fatalf("searches = %v, want none", c.searches)
	}
}

func TestFilterModalAppliesOnlyOnEnter(t *testing.T) {
	c := &fakeCatalog{}
	m := open(newTestModel(t, c), "#home")

	m, _ = press(m, runes("f"))
	if m.mode != modeFilters {
		t.Fatalf("mode = %v, want filters", m.mode)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, runes("1"), runes("9"), runes("9"), runes("9"))
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.current != "#home" {
		t.Fatalf("current = %q, filter changes must not navigate", m.current)
	}

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(m, cmd)

	r := route.Decode(m.current)
	if r.Page != route.Discover {
		t.Fatalf("page = %q, want discover", r.Page)
	}
	want := map[string]string{"type": "tv", "year": "1999", "sort": "rating", "page": "1"}
	for k, v := range want {
		if got := r.Get(k); got != v {
			t.Fatalf("param %s = %q, want %q (route %s)", k, got, v, m.current)
		}
	}
	if m.mode != modeBrowse || m.filters.Open() {
		t.Fatalf("filter modal still open after apply")
	}
}

func TestSeasonSelectReplacesOnlyEpisodes(t *testing.T) {
	m := open(newTestModel(t, &fakeCatalog{}), "#series?id=tv1")
	if m.doc == nil || m.doc.ActiveSeason() != 1 {
		t.Fatalf("initial active season not 1")
	}
	gen := m.snapshot.Generation

	idx := actionIndex(m, route.ActionSeason, 2)
	if idx < 0 {
		t.Fatalf("no season 2 button")
	}
	m.selected = idx
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(m, cmd)

	if got := m.doc.ActiveSeason(); got != 2 {
		t.Fatalf("active season = %d, want 2", got)
	}
	if m.current != "#series?id=tv1" {
		t.Fatalf("current = %q, season switch must keep the fragment", m.current)
	}
	if m.snapshot.Generation != gen {
		t.Fatalf("generation changed from %d to %d on season switch", gen, m.snapshot.Generation)
	}
	if m.loading() {
		t.Fatalf("season still marked loading")
	}
}

func TestOverlappingSeasonSwitchesKeepLoadingUntilNewest(t *testing.T) {
	m := open(newTestModel(t, &fakeCatalog{}), "#series?id=tv1")
	gen := m.snapshot.Generation

	for _, season := range []int{2, 1} {
		idx := actionIndex(m, route.ActionSeason, season)
		if idx < 0 {
			t.Fatalf("no season %d button", season)
		}
		m.selected = idx
		if cmd := m.activate(); cmd == nil {
			t.Fatalf("season %d switch returned no command", season)
		}
	}

	next, _ := m.Update(seasonLoadedMsg{gen: gen, seq: 1, committed: true})
	m = next.(Model)
	if !m.loading() {
		t.Fatalf("older season load finished and cleared the newer one's spinner")
	}

	next, _ = m.Update(seasonLoadedMsg{gen: gen, seq: 2, committed: true})
	m = next.(Model)
	if m.loading() {
		t.Fatalf("still loading after the newest season load finished")
	}
}

func TestLinkSelectionWraps(t *testing.T) {
	m := open(newTestModel(t, &fakeCatalog{}), "#home")
	n := len(m.page.Actions)
	if n < 2 {
		t.Fatalf("want at least 2 actions, got %d", n)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != 0 {
		t.Fatalf("selected = %d, want 0", m.selected)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.selected != n-1 {
		t.Fatalf("selected = %d, want %d", m.selected, n-1)
	}
	m, _ = press(m, runes("j"))
	if m.selected != 0 {
		t.Fatalf("selected = %d, want wrap to 0", m.selected)
	}
}

func TestErrorPageShowsHTTPStatus(t *testing.T) {
	m := open(newTestModel(t, &fakeCatalog{}), "#title?id=tt404")
	if m.snapshot.LastError == nil {
		t.Fatalf("LastError = nil, want the catalog failure")
	}
	if got := classifyError(m.snapshot.LastError); got != "HTTP 404" {
		t.Fatalf("classifyError = %q, want HTTP 404", got)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, &fakeCatalog{})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("load: %w", &catalog.HTTPError{Status: 503}), "HTTP 503"},
		{errors.New("dial tcp: connection refused"), "OFFLINE"},
		{errors.New("context deadline exceeded"), "TIMEOUT"},
		{errors.New("boom"), "ERROR"},
	}
	for _, tc := range cases {
		if got := classifyError(tc.err); got != tc.want {
			t.Fatalf("classifyError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestTruncateHelpers(t *testing.T) {
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("truncate = %q, want abc...", got)
	}
	if got := truncate("ab", 6); got != "ab" {
		t.Fatalf("truncate short = %q, want ab", got)
	}
	if got := truncateMiddle("#title?id=tt0113277", 12); got != "#ti...113277" {
		t.Fatalf("truncateMiddle = %q, want #ti...113277", got)
	}
}

func TestThemeCycle(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
	if got := GetTheme("Unknown").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula", got)
	}

	m := newTestModel(t, &fakeCatalog{})
	m, _ = press(m, runes("T"))
	if m.theme.Name != "Slate" {
		t.Fatalf("theme after T = %q, want Slate", m.theme.Name)
	}
}

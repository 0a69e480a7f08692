package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/cinevault/internal/route"
	"github.com/five82/cinevault/internal/router"
	"github.com/five82/cinevault/internal/state"
	"github.com/five82/cinevault/internal/view"
	"github.com/five82/cinevault/internal/widget"
)

// GenreSource lists the genre choices for the filter modal.
type GenreSource func(ctx context.Context) ([]view.Option, error)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Router       *router.Router
	Store        *state.Store
	Genres       GenreSource // optional
	ThemeName    string
	Debounce     time.Duration
	HeroInterval time.Duration
	Start        string // initial fragment; empty opens home
	Log          *logrus.Entry
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeGoto
	modeFilters
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx    context.Context
	router *router.Router
	store  *state.Store
	genres GenreSource
	log    *logrus.Entry
	start  string

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	mode     inputMode
	showHelp bool

	searchInput textinput.Model
	gotoInput   textinput.Model
	yearInput   textinput.Model
	viewport    viewport.Model
	spinner     spinner.Model

	// Widgets
	debounce     *widget.Debouncer
	filters      *widget.FilterPanel
	filterField  int
	genreOptions []view.Option
	hero         *widget.Hero
	heroInterval time.Duration
	reveal       *widget.Revealer

	// Page state
	snapshot state.Snapshot
	doc      *view.Document
	page     view.Rendered
	offsets  []int // first viewport line of each document line, plus the total
	selected int   // index into page.Actions, -1 for none

	// Season switches are numbered; seasonPending is the newest one still
	// loading, or 0.
	seasonSeq     uint64
	seasonPending uint64

	// History of fragments left by forward navigation.
	history []string
	current string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	heroInterval := opts.HeroInterval
	if heroInterval <= 0 {
		heroInterval = widget.DefaultHeroInterval
	}
	start := opts.Start
	if start == "" {
		start = homeFragment
	}

	search := textinput.New()
	search.Placeholder = "Search movies, shows, people..."
	search.Prompt = "🔍 "
	search.CharLimit = 120

	goTo := textinput.New()
	goTo.Placeholder = "#title?id=..."
	goTo.Prompt = "go to: "
	goTo.CharLimit = 400

	year := textinput.New()
	year.Placeholder = "any"
	year.Prompt = ""
	year.CharLimit = 4

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:          ctx,
		router:       opts.Router,
		store:        opts.Store,
		genres:       opts.Genres,
		log:          log.WithField("component", "ui"),
		start:        start,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(opts.ThemeName),
		searchInput:  search,
		gotoInput:    goTo,
		yearInput:    year,
		spinner:      sp,
		debounce:     widget.NewDebouncer(opts.Debounce),
		filters:      widget.NewFilterPanel(),
		hero:         &widget.Hero{},
		heroInterval: heroInterval,
		reveal:       &widget.Revealer{},
		selected:     -1,
	}
	m.applyTheme()
	return m
}

var homeFragment = route.New(route.Home, nil).Fragment()

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	start := m.start
	cmds := []tea.Cmd{
		func() tea.Msg { return gotoMsg{fragment: start} },
	}
	if m.genres != nil {
		ctx, genres := m.ctx, m.genres
		cmds = append(cmds, func() tea.Msg {
			opts, err := genres(ctx)
			return genresMsg{options: opts, err: err}
		})
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.render()
		m.revealVisible()
		return m, nil

	case gotoMsg:
		cmd := m.navigate(msg.fragment, true)
		return m, cmd

	case navigatedMsg:
		return m.handleNavigated(router.Outcome(msg))

	case debounceMsg:
		if r, ok := m.debounce.Fire(msg.seq); ok {
			cmd := m.navigate(r.Fragment(), true)
			return m, cmd
		}
		return m, nil

	case heroTickMsg:
		if m.hero.Tick(msg.tag) {
			m.render()
			return m, m.heroTick(msg.tag)
		}
		return m, nil

	case seasonLoadedMsg:
		if msg.seq == m.seasonPending {
			m.seasonPending = 0
		}
		if msg.committed && msg.gen == m.snapshot.Generation {
			m.refresh()
			m.revealVisible()
		}
		return m, nil

	case genresMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("genre list unavailable")
			return m, nil
		}
		m.genreOptions = msg.options
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.mode == modeFilters {
		return m.renderFilters()
	}
	return m.renderMain()
}

func (m Model) loading() bool {
	return m.snapshot.Loading || m.seasonPending != 0
}

// handleNavigated draws a committed page and starts its page-scoped effects.
func (m Model) handleNavigated(out router.Outcome) (tea.Model, tea.Cmd) {
	if !out.Committed {
		return m, nil
	}
	if frag := out.Route.Fragment(); frag != m.current {
		// Loaders may redirect, e.g. a title without an id lands on home.
		m.current = frag
	}
	if out.Route.Page == route.Search && m.mode != modeSearch {
		m.searchInput.SetValue(out.Route.Get("q"))
	}

	m.refresh()
	var cmds []tea.Cmd
	if out.Effects.HeroSlides > 0 {
		if tag, ok := m.hero.Start(out.Effects.HeroSlides); ok {
			cmds = append(cmds, m.heroTick(tag))
		}
	}
	if out.Effects.Reveal {
		ids := make([]string, 0, len(m.page.Blocks))
		for _, b := range m.page.Blocks {
			ids = append(ids, b.ID)
		}
		m.reveal.Observe(ids)
	}
	m.render()
	m.revealVisible()
	return m, tea.Batch(cmds...)
}

// navigate begins loading fragment and returns the command that finishes it.
func (m *Model) navigate(fragment string, push bool) tea.Cmd {
	if m.router == nil {
		return nil
	}
	p := m.router.Begin(fragment)
	if push && m.current != "" {
		m.history = append(m.history, m.current)
	}
	m.current = p.Route.Fragment()

	hero, reveal, debounce := m.hero, m.reveal, m.debounce
	m.router.OnLeave(func() {
		hero.Stop()
		reveal.Reset()
		debounce.Cancel()
	})

	m.selected = -1
	m.refresh()
	m.viewport.GotoTop()

	ctx, r := m.ctx, m.router
	return tea.Batch(
		func() tea.Msg { return navigatedMsg(r.Run(ctx, p)) },
		m.spinner.Tick,
	)
}

// back returns to the previous fragment, or home when there is none.
func (m *Model) back() tea.Cmd {
	if len(m.history) == 0 {
		if m.current == homeFragment {
			return nil
		}
		return m.navigate(homeFragment, false)
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.navigate(prev, false)
}

// activate runs the selected action.
func (m *Model) activate() tea.Cmd {
	if m.selected < 0 || m.selected >= len(m.page.Actions) {
		return nil
	}
	a := m.page.Actions[m.selected].Action
	switch a.Kind {
	case route.ActionNavigate:
		return m.navigate(a.Target.Fragment(), true)
	case route.ActionBack:
		return m.back()
	case route.ActionHero:
		tag, ok := m.hero.Select(a.Index)
		m.render()
		if ok {
			return m.heroTick(tag)
		}
	case route.ActionSeason:
		return m.selectSeason(a)
	}
	return nil
}

func (m *Model) selectSeason(a route.Action) tea.Cmd {
	seriesID := a.Target.Get("id")
	if seriesID == "" && m.doc != nil {
		seriesID = m.doc.SeriesID()
	}
	if seriesID == "" || m.router == nil {
		return nil
	}
	m.seasonSeq++
	m.seasonPending = m.seasonSeq
	ctx, r, gen, season, seq := m.ctx, m.router, m.snapshot.Generation, a.Index, m.seasonSeq
	return tea.Batch(
		func() tea.Msg {
			return seasonLoadedMsg{gen: gen, seq: seq, committed: r.SelectSeason(ctx, gen, seriesID, season)}
		},
		m.spinner.Tick,
	)
}

func (m Model) heroTick(tag uint64) tea.Cmd {
	return tea.Tick(m.heroInterval, func(time.Time) tea.Msg {
		return heroTickMsg{tag: tag}
	})
}

func (m Model) debounceTick(seq uint64) tea.Cmd {
	return tea.Tick(m.debounce.Quiet(), func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// Messages

type gotoMsg struct{ fragment string }

type navigatedMsg router.Outcome

type debounceMsg struct{ seq uint64 }

type heroTickMsg struct{ tag uint64 }

type seasonLoadedMsg struct {
	gen       uint64
	seq       uint64
	committed bool
}

type genresMsg struct {
	options []view.Option
	err     error
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
		opts.Context = ctx
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

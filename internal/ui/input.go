package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cinevault/internal/route"
	"github.com/five82/cinevault/internal/widget"
)

// handleKey processes keyboard input for the active mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeGoto:
		return m.handleGotoKey(msg)
	case modeFilters:
		return m.handleFilterKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.render()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Goto):
		m.mode = modeGoto
		m.gotoInput.SetValue(m.current)
		m.gotoInput.CursorEnd()
		cmd := m.gotoInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Home):
		cmd := m.navigate(homeFragment, true)
		return m, cmd

	case key.Matches(msg, m.keys.Back):
		cmd := m.back()
		return m, cmd

	case key.Matches(msg, m.keys.Filters):
		m.openFilters()
		cmd := m.filterFocusCmd()
		return m, cmd

	case key.Matches(msg, m.keys.Next):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Activate):
		cmd := m.activate()
		return m, cmd

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	default:
		return m, nil
	}
	m.revealVisible()
	return m, nil
}

// handleSearchKey feeds the search box. Typing arms the debounce; enter
// submits at once.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "tab":
		m.mode = modeBrowse
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Activate):
		r, ok := m.debounce.Enter(m.searchInput.Value())
		if !ok {
			return m, nil
		}
		m.mode = modeBrowse
		m.searchInput.Blur()
		cmd := m.navigate(r.Fragment(), true)
		return m, cmd
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}
	if seq, armed := m.debounce.Input(m.searchInput.Value()); armed {
		return m, tea.Batch(cmd, m.debounceTick(seq))
	}
	return m, cmd
}

func (m Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeBrowse
		m.gotoInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Activate):
		fragment := strings.TrimSpace(m.gotoInput.Value())
		m.mode = modeBrowse
		m.gotoInput.Blur()
		if fragment == "" {
			return m, nil
		}
		if !strings.HasPrefix(fragment, "#") {
			fragment = "#" + fragment
		}
		cmd := m.navigate(fragment, true)
		return m, cmd
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// handleFilterKey drives the filter modal. Field changes never navigate;
// enter applies.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := widget.FilterFields[m.filterField]

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeFilters()
		return m, nil

	case key.Matches(msg, m.keys.Activate):
		r := m.filters.Apply()
		m.closeFilters()
		cmd := m.navigate(r.Fragment(), true)
		return m, cmd

	case key.Matches(msg, m.keys.FieldNext):
		m.focusFilterField(1)
		cmd := m.filterFocusCmd()
		return m, cmd

	case key.Matches(msg, m.keys.FieldPrev):
		m.focusFilterField(-1)
		cmd := m.filterFocusCmd()
		return m, cmd

	case field != widget.FieldYear && key.Matches(msg, m.keys.ValueNext):
		m.filters.Cycle(field, m.filterChoices(field), 1)
		return m, nil

	case field != widget.FieldYear && key.Matches(msg, m.keys.ValuePrev):
		m.filters.Cycle(field, m.filterChoices(field), -1)
		return m, nil
	}

	if field != widget.FieldYear {
		if msg.String() == "f" {
			m.closeFilters()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.yearInput, cmd = m.yearInput.Update(msg)
	m.filters.Set(widget.FieldYear, digitsOnly(m.yearInput.Value()))
	return m, cmd
}

// moveSelection steps through the page actions and scrolls the selected one
// into view.
func (m *Model) moveSelection(delta int) {
	n := len(m.page.Actions)
	if n == 0 {
		m.selected = -1
		return
	}
	switch {
	case m.selected < 0 && delta > 0:
		m.selected = m.firstVisibleAction()
	case m.selected < 0:
		m.selected = n - 1
	default:
		m.selected = ((m.selected+delta)%n + n) % n
	}
	m.render()
	m.ensureSelectedVisible()
	m.revealVisible()
}

func (m *Model) openFilters() {
	m.mode = modeFilters
	m.filterField = 0
	if r := route.Decode(m.current); r.Page == route.Discover {
		m.filters.Prefill(r.Params)
	}
	if !m.filters.Open() {
		m.filters.Toggle()
	}
	m.yearInput.SetValue(m.filters.Value(widget.FieldYear))
	m.yearInput.Blur()
}

func (m *Model) closeFilters() {
	m.filters.Close()
	m.yearInput.Blur()
	m.mode = modeBrowse
}

func (m *Model) focusFilterField(delta int) {
	n := len(widget.FilterFields)
	m.filterField = ((m.filterField+delta)%n + n) % n
}

// filterFocusCmd focuses the year box when it is the current field.
func (m *Model) filterFocusCmd() tea.Cmd {
	if widget.FilterFields[m.filterField] == widget.FieldYear {
		m.yearInput.CursorEnd()
		return m.yearInput.Focus()
	}
	m.yearInput.Blur()
	return nil
}

func (m Model) filterChoices(field widget.FilterField) []string {
	if field == widget.FieldGenre {
		out := make([]string, 0, len(m.genreOptions)+1)
		if len(m.genreOptions) == 0 || m.genreOptions[0].Value != "" {
			out = append(out, "")
		}
		for _, o := range m.genreOptions {
			out = append(out, o.Value)
		}
		return out
	}
	return widget.FilterChoices[field]
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/cinevault/internal/view"
)

// chromeLines is the header, command bar and status line around the viewport.
const chromeLines = 3

// resize fits the viewport and inputs to the terminal.
func (m *Model) resize() {
	height := m.height - chromeLines
	if height < 1 {
		height = 1
	}
	if m.viewport.Width == 0 && m.viewport.Height == 0 {
		m.viewport = viewport.New(m.width, height)
	}
	m.viewport.Width = m.width
	m.viewport.Height = height
	m.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	m.searchInput.Width = clamp(m.width/3, 16, 60)
	m.gotoInput.Width = clamp(m.width-20, 16, 200)
	m.yearInput.Width = 6
}

// applyTheme restyles the text inputs for the current theme.
func (m *Model) applyTheme() {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	styleInput(&m.searchInput, styles)
	styleInput(&m.gotoInput, styles)
	styleInput(&m.yearInput, styles)
	m.spinner.Style = styles.AccentText
	m.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
}

func styleInput(in *textinput.Model, styles Styles) {
	in.PromptStyle = styles.AccentText
	in.TextStyle = styles.Text
	in.PlaceholderStyle = styles.FaintText
}

// refresh re-reads the content container and re-parses its markup.
func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.snapshot = m.store.Snapshot()
	doc, err := view.Parse(m.snapshot.Markup)
	if err != nil {
		m.log.WithError(err).Warn("unreadable page markup")
		doc = nil
	}
	m.doc = doc
	m.render()
}

// render flattens the parsed page with the current hero and reveal state.
func (m *Model) render() {
	if m.doc == nil {
		m.page = view.Rendered{}
		m.offsets = nil
		m.viewport.SetContent("")
		return
	}
	m.page = m.doc.Render(view.Options{
		HeroActive: m.hero.Active(),
		Hidden:     m.reveal.Hidden,
	})
	if m.selected >= len(m.page.Actions) {
		m.selected = len(m.page.Actions) - 1
	}
	content, offsets := m.renderContent()
	m.offsets = offsets
	m.viewport.SetContent(content)
}

// renderContent wraps the document lines to the viewport width. The returned
// offsets give the first wrapped line of each document line.
func (m Model) renderContent() (string, []int) {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	width := m.width - 2
	if width < 10 {
		width = 10
	}

	var out []string
	offsets := make([]int, 0, len(m.page.Lines)+1)
	for i, line := range m.page.Lines {
		if line.Style == view.StyleHeading && i > 0 {
			out = append(out, bg.FillLine("", m.width))
		}
		offsets = append(offsets, len(out))
		wrapped := ansi.Wrap(m.renderLine(line, styles, bg), width, "")
		for _, phys := range strings.Split(wrapped, "\n") {
			out = append(out, bg.FillLine(bg.Space()+phys, m.width))
		}
	}
	offsets = append(offsets, len(out))
	return strings.Join(out, "\n"), offsets
}

func (m Model) renderLine(line view.Line, styles Styles, bg BgStyle) string {
	var b strings.Builder
	for _, seg := range line.Segments {
		if seg.Action >= 0 && seg.Action == m.selected {
			b.WriteString(styles.Selected.Render(seg.Text))
			continue
		}
		st := styles.ContentStyle(seg.Style)
		switch {
		case line.Dim:
			st = styles.FaintText
		case seg.Active:
			st = styles.SuccessText
		case seg.Action >= 0 && seg.Style == view.StylePlain:
			st = styles.AccentText
		}
		b.WriteString(bg.Render(seg.Text, st))
	}
	return b.String()
}

// physical maps a document line to its first wrapped line.
func (m Model) physical(line int) int {
	if line < 0 {
		return 0
	}
	if line < len(m.offsets) {
		return m.offsets[line]
	}
	if n := len(m.offsets); n > 0 {
		return m.offsets[n-1]
	}
	return 0
}

func (m *Model) ensureSelectedVisible() {
	if m.selected < 0 || m.selected >= len(m.page.Actions) {
		return
	}
	y := m.physical(m.page.Actions[m.selected].Line)
	switch {
	case y < m.viewport.YOffset:
		m.viewport.SetYOffset(y)
	case y >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(y - m.viewport.Height + 1)
	}
}

// firstVisibleAction is the first action at or below the top of the
// viewport, so tab starts where the reader is looking.
func (m Model) firstVisibleAction() int {
	for i, a := range m.page.Actions {
		if m.physical(a.Line) >= m.viewport.YOffset {
			return i
		}
	}
	return 0
}

// revealVisible reveals the hidden blocks that intersect the viewport.
func (m *Model) revealVisible() {
	if len(m.page.Blocks) == 0 {
		return
	}
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height
	var visible []string
	for _, b := range m.page.Blocks {
		if m.physical(b.Start) < bottom && m.physical(b.End) > top {
			visible = append(visible, b.ID)
		}
	}
	if fresh := m.reveal.Intersect(visible); len(fresh) > 0 {
		m.render()
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

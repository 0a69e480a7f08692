package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cinevault/internal/catalog"
)

const logo = "🎬 CineVault"

// renderMain stacks header, command bar, page and status line.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderHeader renders the logo and the search box.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render(logo, styles.Logo),
		m.searchInput.View(),
	}
	if m.snapshot.IsOffline() {
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	}
	return styles.Header.Width(m.width).MaxHeight(1).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the current mode.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.mode {
	case modeSearch:
		commands = []cmd{
			{"enter", "Search now"},
			{"esc", "Leave search"},
		}
	case modeGoto:
		commands = []cmd{
			{"enter", "Open"},
			{"esc", "Cancel"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"tab/j/k", "Links"},
			{"enter", "Open"},
			{"bksp", "Back"},
			{"f", "Filters"},
			{"g", "Go to"},
			{"H", "Home"},
			{"?", "More"},
		}
	}

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxHeight(1).Render(bg.Join(segments, "  "))
}

// renderStatus shows the current fragment, load state and selection.
func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < 100

	if m.mode == modeGoto {
		return styles.Header.Width(m.width).MaxHeight(1).Render(m.gotoInput.View())
	}

	var parts []string
	switch {
	case m.loading():
		parts = append(parts, m.spinner.View()+bg.Render("Loading...", styles.WarningText))
	case m.snapshot.LastError != nil:
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render(classifyError(m.snapshot.LastError), styles.DangerText)+bg.Space()+
				bg.Render(truncate(m.snapshot.LastError.Error(), maxErr), styles.MutedText))
	}

	maxFrag := 60
	if compact {
		maxFrag = 30
	}
	parts = append(parts, bg.Render(truncateMiddle(m.current, maxFrag), styles.InfoText))

	if n := len(m.page.Actions); n > 0 {
		pos := "-"
		if m.selected >= 0 {
			pos = fmt.Sprintf("%d", m.selected+1)
		}
		parts = append(parts, bg.Render(fmt.Sprintf("link %s/%d", pos, n), styles.MutedText))
		if m.selected >= 0 && !compact {
			label := m.page.Actions[m.selected].Label
			parts = append(parts, bg.Render(truncate(label, 40), styles.Text))
		}
	}
	if depth := len(m.history); depth > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("back %d", depth), styles.FaintText))
	}
	if !m.snapshot.LastUpdated.IsZero() && !compact {
		parts = append(parts, bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	sep := bg.Space() + bg.Render("•", styles.FaintText) + bg.Space()
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(m.width).
		MaxHeight(1).
		Padding(0, 1).
		Render(strings.Join(parts, sep))
}

// classifyError returns a short label for a page load failure.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	var httpErr *catalog.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("HTTP %d", httpErr.Status)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 {
		return ""
	}
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// truncateMiddle shortens s in the middle, keeping more of the end where
// fragments carry their ids.
func truncateMiddle(s string, max int) string {
	r := []rune(s)
	if max <= 0 {
		return ""
	}
	if len(r) <= max {
		return s
	}
	if max <= 5 {
		return string(r[:max])
	}
	endLen := (max - 3) * 2 / 3
	startLen := max - 3 - endLen
	return string(r[:startLen]) + "..." + string(r[len(r)-endLen:])
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cinevault/internal/widget"
)

var filterLabels = map[widget.FilterField]string{
	widget.FieldType:   "Type",
	widget.FieldGenre:  "Genre",
	widget.FieldYear:   "Year",
	widget.FieldRating: "Min rating",
	widget.FieldSort:   "Sort by",
}

// renderFilters renders the discover filter modal.
func (m Model) renderFilters() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Discover"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 34)))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Width(12)
	for i, field := range widget.FilterFields {
		focused := i == m.filterField
		label := labelStyle.Inherit(styles.MutedText).Render(filterLabels[field])
		if focused {
			label = labelStyle.Inherit(styles.AccentText.Bold(true)).Render("› " + filterLabels[field])
		}

		var value string
		switch {
		case field == widget.FieldYear:
			value = m.yearInput.View()
		case focused:
			value = styles.Selected.Render("‹ " + m.filterDisplay(field) + " ›")
		default:
			value = styles.Text.Render(m.filterDisplay(field))
		}
		b.WriteString(label + value + "\n")
	}

	if badges := m.filters.Badges(); len(badges) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(strings.Join(badges, " · ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("tab field · ←/→ value · enter apply · esc close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(52)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// filterDisplay is the human label of a field's current value.
func (m Model) filterDisplay(field widget.FilterField) string {
	v := m.filters.Value(field)
	if field == widget.FieldGenre {
		for _, o := range m.genreOptions {
			if o.Value == v {
				return o.Label
			}
		}
	}
	if v == "" {
		return "any"
	}
	return strings.ReplaceAll(v, "_", " ")
}

// Package ui provides the terminal shell of CineVault.
//
// # Architecture Overview
//
// The shell is a Bubble Tea program. It never fetches or renders pages
// itself: every navigation goes through the router, which writes loading and
// final markup into the state.Store. After each commit the shell re-reads the
// store snapshot, parses the markup with the view package and draws the
// resulting lines in a scrollable viewport.
//
// # Package Structure
//
//   - app.go: Model, Options, message types, navigation and Run
//   - input.go: key handling for browse, search, goto and filter modes
//   - content.go: document layout, wrapping, selection and reveal-on-scroll
//   - header.go: header with the search box, command bar and status line
//   - filters.go: discover filter modal
//   - help.go: keyboard help overlay
//   - keys.go: key bindings
//   - theme.go, style_helpers.go: lipgloss themes and background helpers
//
// # Page Effects
//
// Timers live in the Bubble Tea runtime, not in the widgets. The search
// debounce and hero rotation hand out sequence tags; the shell schedules a
// tea.Tick carrying the tag and the widget ignores ticks whose tag is no
// longer current. Leaving a page runs the router's teardown hooks, which stop
// the hero, forget reveal state and cancel a pending search.
//
// # Key Features
//
//   - Links: every actionable element is numbered; tab/j/k move, enter opens
//   - History: backspace returns to the previous fragment
//   - Search: "/" focuses the box, typing searches after a quiet period
//   - Filters: "f" opens the discover filters, enter applies
//   - Go to: "g" accepts any #page?key=value fragment
package ui

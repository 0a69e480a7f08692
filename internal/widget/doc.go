// Package widget implements the small state machines around the page
// content: debounced search, the discover filter panel, the home banner
// rotation and reveal-on-scroll.
//
// None of them start goroutines or timers. Callers schedule ticks (tea.Tick
// in the terminal shell) and hand back the sequence number or tag they were
// given; anything stale is ignored.
package widget

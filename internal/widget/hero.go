package widget

import "time"

// DefaultHeroInterval is the rotation period of the home banner.
const DefaultHeroInterval = 7 * time.Second

// Hero tracks the active banner slide. Like Debouncer it owns no timer: each
// Start or Select hands out a tag, and Tick only advances for the newest tag,
// so stopping or restarting invalidates every tick already scheduled.
type Hero struct {
	slides  int
	active  int
	tag     uint64
	running bool
}

// Start begins rotating n slides from the first. Rotation only runs when
// there is more than one slide.
func (h *Hero) Start(n int) (tag uint64, ok bool) {
	h.tag++
	h.slides = n
	h.active = 0
	h.running = n > 1
	return h.tag, h.running
}

// Tick advances to the next slide if tag is current.
func (h *Hero) Tick(tag uint64) bool {
	if !h.running || tag != h.tag {
		return false
	}
	h.active = (h.active + 1) % h.slides
	return true
}

// Select shows slide i and restarts the rotation timer. The returned tag
// replaces any outstanding one.
func (h *Hero) Select(i int) (tag uint64, ok bool) {
	if h.slides == 0 || i < 0 || i >= h.slides {
		return h.tag, false
	}
	h.active = i
	h.tag++
	return h.tag, h.running
}

// Stop ends rotation; outstanding ticks become no-ops.
func (h *Hero) Stop() {
	h.tag++
	h.running = false
	h.slides = 0
	h.active = 0
}

// Active returns the index of the shown slide.
func (h *Hero) Active() int {
	return h.active
}

// Running reports whether rotation is active.
func (h *Hero) Running() bool {
	return h.running
}

package widget

import (
	"strconv"
	"strings"
	"time"

	"github.com/five82/cinevault/internal/route"
)

// Search input defaults.
const (
	DefaultQuiet     = 350 * time.Millisecond
	MinQueryLength   = 2
	firstResultsPage = 1
)

// Debouncer turns keystrokes into at most one search navigation per quiet
// period. It does not own a timer: Input returns a sequence number the caller
// schedules, and Fire only succeeds for the newest one.
type Debouncer struct {
	quiet   time.Duration
	seq     uint64
	armed   bool
	pending string
}

// NewDebouncer returns a Debouncer with the given quiet period; zero or less
// uses DefaultQuiet.
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{quiet: quiet}
}

// Quiet is how long input must stay unchanged before firing.
func (d *Debouncer) Quiet() time.Duration {
	return d.quiet
}

// Input records the current text and cancels any pending fire. armed is false
// when the trimmed text is too short to search for.
func (d *Debouncer) Input(text string) (seq uint64, armed bool) {
	d.seq++
	q := strings.TrimSpace(text)
	if len([]rune(q)) < MinQueryLength {
		d.armed = false
		d.pending = ""
		return d.seq, false
	}
	d.armed = true
	d.pending = q
	return d.seq, true
}

// Fire returns the search route for seq when it is still the newest input.
func (d *Debouncer) Fire(seq uint64) (route.Route, bool) {
	if !d.armed || seq != d.seq {
		return route.Route{}, false
	}
	d.armed = false
	return searchRoute(d.pending), true
}

// Enter submits text immediately, cancelling any pending fire. Queries
// shorter than MinQueryLength are rejected.
func (d *Debouncer) Enter(text string) (route.Route, bool) {
	d.Cancel()
	q := strings.TrimSpace(text)
	if len([]rune(q)) < MinQueryLength {
		return route.Route{}, false
	}
	return searchRoute(q), true
}

// Cancel drops any pending fire.
func (d *Debouncer) Cancel() {
	d.seq++
	d.armed = false
	d.pending = ""
}

// Pending reports whether a fire is armed.
func (d *Debouncer) Pending() bool {
	return d.armed
}

func searchRoute(q string) route.Route {
	return route.New(route.Search, route.Params{"q": q, "page": strconv.Itoa(firstResultsPage)})
}

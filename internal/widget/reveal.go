package widget

// Revealer is the one-shot reveal-on-scroll observer: each observed element
// becomes visible the first time it intersects the viewport and is then
// forgotten.
type Revealer struct {
	pending map[string]bool
	order   []string
}

// Observe starts watching ids, forgetting anything observed before.
func (r *Revealer) Observe(ids []string) {
	r.pending = make(map[string]bool, len(ids))
	r.order = append(r.order[:0], ids...)
	for _, id := range ids {
		r.pending[id] = true
	}
}

// Intersect marks the visible ids revealed and returns those that were not
// revealed before, in observation order.
func (r *Revealer) Intersect(visible []string) []string {
	if len(r.pending) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(visible))
	for _, id := range visible {
		seen[id] = true
	}
	var fresh []string
	for _, id := range r.order {
		if r.pending[id] && seen[id] {
			delete(r.pending, id)
			fresh = append(fresh, id)
		}
	}
	return fresh
}

// Hidden reports whether id is observed and not yet revealed.
func (r *Revealer) Hidden(id string) bool {
	return r.pending[id]
}

// Reset stops observing.
func (r *Revealer) Reset() {
	r.pending = nil
	r.order = nil
}

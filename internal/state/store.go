package state

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/five82/cinevault/internal/route"
)

// Effects are the page-scoped behaviours the shell starts after a commit.
type Effects struct {
	HeroSlides int  // rotation runs when there is more than one slide
	Reveal     bool // .animate-in blocks start hidden and reveal on scroll
}

// Page is a finished page load ready to be committed.
type Page struct {
	Route   route.Route
	Markup  string
	Regions map[string]string
	Effects Effects
	Err     error
}

// Snapshot represents the content container as the shell should draw it.
type Snapshot struct {
	Route               route.Route
	Generation          uint64
	Loading             bool
	Markup              string // page markup with regions filled in
	Effects             Effects
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed page loads
}

// IsOffline returns true when the catalog has failed several loads in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

type region struct {
	seq    uint64
	markup string
}

// Store is the single content container. Every navigation stamps a new
// generation; writes carrying an older generation are dropped, so a slow
// response can never overwrite a newer page.
type Store struct {
	mu       sync.RWMutex
	gen      uint64
	snapshot Snapshot
	regions  map[string]*region
}

// Begin starts a navigation to r, replacing the content with placeholder.
// It returns the generation the eventual Commit must carry.
func (s *Store) Begin(r route.Route, placeholder string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.regions = nil
	s.snapshot.Route = r
	s.snapshot.Generation = s.gen
	s.snapshot.Loading = true
	s.snapshot.Markup = placeholder
	s.snapshot.Effects = Effects{}
	s.snapshot.LastUpdated = time.Now()
	return s.gen
}

// Current returns the newest generation handed out by Begin.
func (s *Store) Current() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Commit replaces the content with p when gen is still current. It reports
// whether the write was applied.
func (s *Store) Commit(gen uint64, p Page) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}
	s.snapshot.Route = p.Route
	s.snapshot.Loading = false
	s.snapshot.Markup = p.Markup
	s.snapshot.Effects = p.Effects
	s.snapshot.LastUpdated = time.Now()
	s.regions = nil
	for name, markup := range p.Regions {
		s.setRegion(name, markup)
	}
	if p.Err != nil {
		s.snapshot.LastError = p.Err
		s.snapshot.ConsecutiveFailures++
		return true
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return true
}

func (s *Store) setRegion(name, markup string) *region {
	if s.regions == nil {
		s.regions = map[string]*region{}
	}
	reg, ok := s.regions[name]
	if !ok {
		reg = &region{}
		s.regions[name] = reg
	}
	reg.seq++
	reg.markup = markup
	return reg
}

// BeginRegion replaces the named region of the current page with
// placeholder. ok is false when gen is stale.
func (s *Store) BeginRegion(gen uint64, name, placeholder string) (seq uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return 0, false
	}
	reg := s.setRegion(name, placeholder)
	s.snapshot.LastUpdated = time.Now()
	return reg.seq, true
}

// CommitRegion fills the named region when neither the page nor the region
// has been superseded since BeginRegion.
func (s *Store) CommitRegion(gen uint64, name string, seq uint64, markup string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}
	reg, ok := s.regions[name]
	if !ok || reg.seq != seq {
		return false
	}
	reg.markup = markup
	s.snapshot.LastUpdated = time.Now()
	return true
}

// Snapshot returns a copy of the current content with regions composed in.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Route = route.New(s.snapshot.Route.Page, s.snapshot.Route.Params)
	snap.Markup = compose(s.snapshot.Markup, s.regions)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// compose inserts each region's markup into its empty slot element.
func compose(markup string, regions map[string]*region) string {
	for name, reg := range regions {
		marker := fmt.Sprintf(`data-region="%s">`, name)
		i := strings.Index(markup, marker)
		if i < 0 {
			continue
		}
		at := i + len(marker)
		markup = markup[:at] + reg.markup + markup[at:]
	}
	return markup
}

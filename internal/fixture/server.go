// Package fixture serves a small embedded catalog over the same HTTP contract
// as the CineVault backend. Entries are written in both backend dialects, the
// local IMDb import and the TMDB proxy, so the client sees every alias it must
// normalize.
package fixture

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// PageSize is the number of results per search or discover page.
const PageSize = 4

const trendingSize = 5

// Options configures a Server.
type Options struct {
	Delay time.Duration // added to every response
	Log   *logrus.Entry
}

// Server answers the backend endpoints from a Catalog.
type Server struct {
	catalog *Catalog
	delay   time.Duration
	log     *logrus.Entry
	router  *mux.Router
}

// NewServer builds the routes for c.
func NewServer(c *Catalog, opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Server{catalog: c, delay: opts.Delay, log: log.WithField("component", "fixture")}

	r := mux.NewRouter()
	r.Use(s.requestLog)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/home", s.home).Methods(http.MethodGet)
	api.HandleFunc("/search", s.search).Methods(http.MethodGet)
	api.HandleFunc("/discover", s.discover).Methods(http.MethodGet)
	api.HandleFunc("/genres", s.genres).Methods(http.MethodGet)
	api.HandleFunc("/title/{id}", s.title).Methods(http.MethodGet)
	api.HandleFunc("/title/{id}/full-credits", s.credits).Methods(http.MethodGet)
	api.HandleFunc("/title/{id}/streaming", s.streaming).Methods(http.MethodGet)
	api.HandleFunc("/series/{id}/seasons", s.seasons).Methods(http.MethodGet)
	api.HandleFunc("/series/{id}/episodes", s.episodes).Methods(http.MethodGet)
	api.HandleFunc("/series/{id}/season/{season:[0-9]+}", s.episodes).Methods(http.MethodGet)
	api.HandleFunc("/person/{id}", s.person).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		if s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-r.Context().Done():
				return
			}
		}
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"request_id": id,
			"path":       r.URL.Path,
			"query":      r.URL.RawQuery,
			"elapsed":    time.Since(start).String(),
		}).Debug("fixture request")
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// home mirrors the backend feed: named arrays in display order plus metadata
// members the client must skip.
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	type feed struct {
		Trending  []map[string]any `json:"trending"`
		TopRated  []map[string]any `json:"topRated"`
		MostVoted []map[string]any `json:"mostVoted"`
		UpdatedAt string           `json:"updated_at"`
	}
	trending := s.catalog.Filter(TitleFilter{Sort: "popularity"})
	if len(trending) > trendingSize {
		trending = trending[:trendingSize]
	}
	writeJSON(w, feed{
		Trending:  summaries(trending),
		TopRated:  summaries(s.catalog.Filter(TitleFilter{Sort: "rating"})),
		MostVoted: summaries(s.catalog.Filter(TitleFilter{Sort: "votes"})),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// search answers in the local dialect's camelCase paging fields.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	f := filterFromQuery(r)
	f.Query = q

	results := summaries(s.catalog.Filter(f))
	if f.Type == "" {
		for _, p := range s.catalog.SearchPeople(q) {
			results = append(results, p.summary())
		}
	}
	page := pageParam(r)
	items, totalPages := paginate(results, page)
	writeJSON(w, map[string]any{
		"query":        q,
		"page":         page,
		"totalPages":   totalPages,
		"totalResults": len(results),
		"hasMore":      page < totalPages,
		"results":      items,
	})
}

// discover answers in the TMDB dialect's snake_case paging fields.
func (s *Server) discover(w http.ResponseWriter, r *http.Request) {
	results := summaries(s.catalog.Filter(filterFromQuery(r)))
	page := pageParam(r)
	items, totalPages := paginate(results, page)
	writeJSON(w, map[string]any{
		"page":          page,
		"total_pages":   totalPages,
		"total_results": len(results),
		"results":       items,
	})
}

func (s *Server) genres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"genres": s.catalog.Genres})
}

func (s *Server) title(w http.ResponseWriter, r *http.Request) {
	if t, ok := s.lookupTitle(w, r); ok {
		writeRaw(w, t.Detail)
	}
}

func (s *Server) credits(w http.ResponseWriter, r *http.Request) {
	if t, ok := s.lookupTitle(w, r); ok {
		writeRaw(w, t.Credits)
	}
}

func (s *Server) streaming(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookupTitle(w, r)
	if !ok {
		return
	}
	if len(t.Streaming) == 0 {
		writeJSON(w, map[string]any{"links": []any{}})
		return
	}
	writeRaw(w, t.Streaming)
}

func (s *Server) seasons(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookupSeries(w, r)
	if ok {
		writeRaw(w, t.Seasons)
	}
}

// episodes serves both /episodes?season=N and /season/N.
func (s *Server) episodes(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookupSeries(w, r)
	if !ok {
		return
	}
	season := mux.Vars(r)["season"]
	if season == "" {
		season = r.URL.Query().Get("season")
	}
	if _, err := strconv.Atoi(season); err != nil {
		writeError(w, http.StatusBadRequest, "season must be a number")
		return
	}
	raw, ok := t.Episodes[season]
	if !ok {
		writeError(w, http.StatusNotFound, "season not found")
		return
	}
	writeRaw(w, raw)
}

func (s *Server) person(w http.ResponseWriter, r *http.Request) {
	p, ok := s.catalog.Person(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "person not found")
		return
	}
	writeRaw(w, p.Detail)
}

func (s *Server) lookupTitle(w http.ResponseWriter, r *http.Request) (Title, bool) {
	t, ok := s.catalog.Title(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "title not found")
		return Title{}, false
	}
	return t, true
}

func (s *Server) lookupSeries(w http.ResponseWriter, r *http.Request) (Title, bool) {
	t, ok := s.lookupTitle(w, r)
	if !ok {
		return Title{}, false
	}
	if !t.IsSeries() || len(t.Seasons) == 0 {
		writeError(w, http.StatusNotFound, "not a series")
		return Title{}, false
	}
	return t, true
}

func filterFromQuery(r *http.Request) TitleFilter {
	q := r.URL.Query()
	f := TitleFilter{
		Type:  strings.TrimSpace(q.Get("type")),
		Genre: strings.TrimSpace(q.Get("genre")),
		Year:  strings.TrimSpace(q.Get("year")),
		Sort:  strings.TrimSpace(q.Get("sort")),
	}
	if v, err := strconv.ParseFloat(q.Get("rating"), 64); err == nil {
		f.MinRating = v
	}
	return f
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func paginate(items []map[string]any, page int) ([]map[string]any, int) {
	totalPages := int(math.Ceil(float64(len(items)) / PageSize))
	start := (page - 1) * PageSize
	if start >= len(items) {
		return []map[string]any{}, totalPages
	}
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

func summaries(titles []Title) []map[string]any {
	out := make([]map[string]any, 0, len(titles))
	for _, t := range titles {
		out = append(out, t.summary())
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

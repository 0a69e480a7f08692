package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:1234" {
		t.Fatalf("url = %q, want http://example.com:1234", u.String())
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts.BaseURL = server.URL
	c, err := NewClient(opts)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestFetchJSON_HTTPErrorCarriesStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}, Options{})

	_, err := c.FetchJSON(testContext(t), "/api/title/tt1")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want *HTTPError", err)
	}
	if httpErr.Status != http.StatusNotFound || httpErr.Path != "/api/title/tt1" {
		t.Fatalf("HTTPError = %+v", httpErr)
	}
	if err.Error() != "HTTP 404" {
		t.Fatalf("message = %q, want HTTP 404", err.Error())
	}
}

func TestFetchJSON_RejectsInvalidBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}, Options{})

	if _, err := c.FetchJSON(testContext(t), "/api/home"); err == nil {
		t.Fatalf("expected decode error for non-JSON body")
	}
}

func TestFetchJSON_SendsHeaders(t *testing.T) {
	var accept, agent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		agent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{}`))
	}, Options{})

	if _, err := c.FetchJSON(testContext(t), "/api/genres"); err != nil {
		t.Fatalf("FetchJSON returned error: %v", err)
	}
	if accept != "application/json" {
		t.Fatalf("Accept = %q", accept)
	}
	if agent != defaultUserAgent {
		t.Fatalf("User-Agent = %q", agent)
	}
}

func TestSearch_EncodesQueryAndFilters(t *testing.T) {
	var got url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			http.NotFound(w, r)
			return
		}
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"results":[{"tconst":"tt1","primary_title":"Heat","start_year":1995}],"totalPages":3,"totalResults":41}`))
	}, Options{})

	page, err := c.Search(testContext(t), "heat & dust", 2, map[string]string{"type": "movie", "includeAdult": "false"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if got.Get("q") != "heat & dust" || got.Get("page") != "2" || got.Get("type") != "movie" || got.Get("includeAdult") != "false" {
		t.Fatalf("query = %v", got)
	}
	if page.Page != 2 || page.TotalPages != 3 || page.TotalResults != 41 {
		t.Fatalf("page = %+v", page)
	}
	if len(page.Results) != 1 || page.Results[0].Title == nil || page.Results[0].Title.Title != "Heat" {
		t.Fatalf("results = %+v", page.Results)
	}
	if page.Query != "heat & dust" {
		t.Fatalf("query echo = %q", page.Query)
	}
}

func TestEpisodes_RouteStyles(t *testing.T) {
	tests := []struct {
		name  string
		style EpisodeStyle
		want  string
	}{
		{name: "query", style: EpisodesQuery, want: "/api/series/tt9/episodes?season=2"},
		{name: "path", style: EpisodesPath, want: "/api/series/tt9/season/2"},
		{name: "default", style: "", want: "/api/series/tt9/episodes?season=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.RequestURI()
				_, _ = w.Write([]byte(`{"episodes":[{"ep_num":1,"primary_title":"Pilot"}]}`))
			}, Options{EpisodeStyle: tt.style})

			list, err := c.Episodes(testContext(t), "tt9", 2)
			if err != nil {
				t.Fatalf("Episodes returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("request = %q, want %q", got, tt.want)
			}
			if list.Season != 2 || len(list.Episodes) != 1 || list.Episodes[0].Title != "Pilot" {
				t.Fatalf("list = %+v", list)
			}
		})
	}
}

func TestTitle_PassesTypeAndEscapesID(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RequestURI()
		_, _ = w.Write([]byte(`{"id":603,"title":"The Matrix","vote_average":8.2,"source":"tmdb"}`))
	}, Options{})

	d, err := c.Title(testContext(t), "a/b", "movie")
	if err != nil {
		t.Fatalf("Title returned error: %v", err)
	}
	if got != "/api/title/a%2Fb?type=movie" {
		t.Fatalf("request = %q", got)
	}
	if d.ID != "603" || d.Title != "The Matrix" || d.Rating != 8.2 || d.Source != SourceTMDB {
		t.Fatalf("detail = %+v", d)
	}
}

func TestFetchJSON_PacesWithLimiter(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{}`))
	}, Options{RequestsPerSecond: 1000})

	if c.limiter == nil {
		t.Fatalf("limiter not configured")
	}
	for i := 0; i < 3; i++ {
		if _, err := c.FetchJSON(testContext(t), "/api/home"); err != nil {
			t.Fatalf("FetchJSON returned error: %v", err)
		}
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestFetchJSON_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchJSON(ctx, "/api/home"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Fetcher defines the catalog reads the page loaders depend on.
// This interface is implemented by *Client and can be faked in tests.
type Fetcher interface {
	Home(ctx context.Context) (HomeFeed, error)
	Search(ctx context.Context, query string, page int, filters map[string]string) (ResultPage, error)
	Discover(ctx context.Context, filters map[string]string) (ResultPage, error)
	Genres(ctx context.Context) ([]Genre, error)
	Title(ctx context.Context, id, mediaType string) (TitleDetail, error)
	FullCredits(ctx context.Context, id, mediaType string) (Credits, error)
	Streaming(ctx context.Context, id string) ([]StreamingLink, error)
	Seasons(ctx context.Context, id string) (SeasonIndex, error)
	Episodes(ctx context.Context, id string, season int) (EpisodeList, error)
	Person(ctx context.Context, id string) (PersonDetail, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// EpisodeStyle selects how the episode endpoint addresses a season.
type EpisodeStyle string

const (
	// EpisodesQuery requests /api/series/{id}/episodes?season=N.
	EpisodesQuery EpisodeStyle = "query"
	// EpisodesPath requests /api/series/{id}/season/N.
	EpisodesPath EpisodeStyle = "path"
)

const (
	defaultBaseURL   = "http://localhost:5000"
	defaultImageBase = "https://image.tmdb.org/t/p"
	defaultUserAgent = "cinevault/0.1"
)

// Options configures a Client. Zero values pick defaults: no timeout beyond
// the transport's own, no request pacing.
type Options struct {
	BaseURL           string
	ImageBase         string
	Timeout           time.Duration
	RequestsPerSecond float64
	EpisodeStyle      EpisodeStyle
	Logger            *logrus.Entry
}

// HTTPError reports a response outside the 2xx range.
type HTTPError struct {
	Status int
	Path   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Client talks to the catalog REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
	episodes  EpisodeStyle
	norm      normalizer
	log       *logrus.Entry
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	imageBase := strings.TrimSpace(opts.ImageBase)
	if imageBase == "" {
		imageBase = defaultImageBase
	}
	style := opts.EpisodeStyle
	if style != EpisodesPath {
		style = EpisodesQuery
	}
	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: opts.Timeout},
		userAgent: defaultUserAgent,
		episodes:  style,
		norm:      normalizer{imageBase: imageBase},
		log:       log.WithField("component", "catalog"),
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return c, nil
}

// FetchJSON issues a single GET for a path relative to the API root and
// returns the body when it is valid JSON.
func (c *Client) FetchJSON(ctx context.Context, path string) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for request slot: %w", err)
		}
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	entry := c.log.WithFields(logrus.Fields{
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(started).Round(time.Millisecond),
	})
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		entry.Warn("catalog request failed")
		return nil, &HTTPError{Status: resp.StatusCode, Path: path}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("decode response: invalid JSON from %s", path)
	}
	entry.Debug("catalog request")
	return json.RawMessage(body), nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	body, err := c.FetchJSON(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Home retrieves the landing feed.
func (c *Client) Home(ctx context.Context) (HomeFeed, error) {
	body, err := c.FetchJSON(ctx, "/api/home")
	if err != nil {
		return HomeFeed{}, err
	}
	return c.norm.home(body)
}

// Search runs a full-text query. Filters are passed through verbatim.
func (c *Client) Search(ctx context.Context, query string, page int, filters map[string]string) (ResultPage, error) {
	values := url.Values{}
	for k, v := range filters {
		values.Set(k, v)
	}
	values.Set("q", query)
	if page < 1 {
		page = 1
	}
	values.Set("page", strconv.Itoa(page))
	var raw rawResultPage
	if err := c.get(ctx, "/api/search?"+values.Encode(), &raw); err != nil {
		return ResultPage{}, err
	}
	out := c.norm.resultPage(raw)
	if out.Query == "" {
		out.Query = query
	}
	if out.Page == 0 {
		out.Page = page
	}
	return out, nil
}

// Discover browses the catalog with opaque filter params.
func (c *Client) Discover(ctx context.Context, filters map[string]string) (ResultPage, error) {
	values := url.Values{}
	for k, v := range filters {
		values.Set(k, v)
	}
	var raw rawResultPage
	if err := c.get(ctx, "/api/discover?"+values.Encode(), &raw); err != nil {
		return ResultPage{}, err
	}
	out := c.norm.resultPage(raw)
	if out.Page == 0 {
		out.Page = 1
		if n, err := strconv.Atoi(filters["page"]); err == nil && n > 0 {
			out.Page = n
		}
	}
	return out, nil
}

// Genres enumerates the genre taxonomy.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var raw rawGenres
	if err := c.get(ctx, "/api/genres", &raw); err != nil {
		return nil, err
	}
	return genres(raw), nil
}

func withType(path, mediaType string) string {
	if mediaType = strings.TrimSpace(mediaType); mediaType == "" {
		return path
	}
	return path + "?type=" + url.QueryEscape(mediaType)
}

// Title retrieves the detail view of a movie or series.
func (c *Client) Title(ctx context.Context, id, mediaType string) (TitleDetail, error) {
	var raw rawDetail
	path := withType("/api/title/"+url.PathEscape(id), mediaType)
	if err := c.get(ctx, path, &raw); err != nil {
		return TitleDetail{}, err
	}
	d := c.norm.detail(raw)
	if d.ID == "" {
		d.ID = id
	}
	if d.MediaType == "" {
		d.MediaType = mediaType
	}
	return d, nil
}

// FullCredits retrieves the complete cast and crew of a title.
func (c *Client) FullCredits(ctx context.Context, id, mediaType string) (Credits, error) {
	var raw rawCredits
	path := withType("/api/title/"+url.PathEscape(id)+"/full-credits", mediaType)
	if err := c.get(ctx, path, &raw); err != nil {
		return Credits{}, err
	}
	credits, err := c.norm.credits(raw)
	if err != nil {
		return Credits{}, err
	}
	if credits.ID == "" {
		credits.ID = id
	}
	return credits, nil
}

// Streaming retrieves explicit streaming links stored for a title.
func (c *Client) Streaming(ctx context.Context, id string) ([]StreamingLink, error) {
	var raw rawStreaming
	if err := c.get(ctx, "/api/title/"+url.PathEscape(id)+"/streaming", &raw); err != nil {
		return nil, err
	}
	return streaming(raw), nil
}

// Seasons retrieves the season index of a series.
func (c *Client) Seasons(ctx context.Context, id string) (SeasonIndex, error) {
	var raw rawSeasons
	if err := c.get(ctx, "/api/series/"+url.PathEscape(id)+"/seasons", &raw); err != nil {
		return SeasonIndex{}, err
	}
	idx, err := seasons(raw)
	if err != nil {
		return SeasonIndex{}, err
	}
	if idx.SeriesID == "" {
		idx.SeriesID = id
	}
	return idx, nil
}

// Episodes retrieves the episodes of one season.
func (c *Client) Episodes(ctx context.Context, id string, season int) (EpisodeList, error) {
	var path string
	switch c.episodes {
	case EpisodesPath:
		path = fmt.Sprintf("/api/series/%s/season/%d", url.PathEscape(id), season)
	default:
		path = fmt.Sprintf("/api/series/%s/episodes?season=%d", url.PathEscape(id), season)
	}
	var raw rawEpisodes
	if err := c.get(ctx, path, &raw); err != nil {
		return EpisodeList{}, err
	}
	return episodes(id, season, raw), nil
}

// Person retrieves a person's biography and filmography.
func (c *Client) Person(ctx context.Context, id string) (PersonDetail, error) {
	var raw rawPerson
	if err := c.get(ctx, "/api/person/"+url.PathEscape(id), &raw); err != nil {
		return PersonDetail{}, err
	}
	p, err := c.norm.person(raw)
	if err != nil {
		return PersonDetail{}, err
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

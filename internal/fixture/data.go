package fixture

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed data/catalog.json
var dataFS embed.FS

// Schema names which backend dialect an entry is served in.
type Schema string

const (
	SchemaLocal Schema = "local"
	SchemaTMDB  Schema = "tmdb"
)

// Genre is one entry of the genre taxonomy.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Title is a catalog entry with the payloads served for it.
type Title struct {
	Schema      Schema   `json:"schema"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	MediaType   string   `json:"media_type"`
	Year        string   `json:"year"`
	ReleaseDate string   `json:"release_date"`
	Runtime     int      `json:"runtime"`
	Rating      float64  `json:"rating"`
	Votes       int64    `json:"votes"`
	Popularity  float64  `json:"popularity"`
	Genres      []string `json:"genres"`
	Poster      string   `json:"poster"`
	Backdrop    string   `json:"backdrop"`
	Overview    string   `json:"overview"`

	Detail    json.RawMessage            `json:"detail"`
	Credits   json.RawMessage            `json:"credits"`
	Streaming json.RawMessage            `json:"streaming"`
	Seasons   json.RawMessage            `json:"seasons"`
	Episodes  map[string]json.RawMessage `json:"episodes"`
}

// IsSeries reports whether the title is a TV series in either dialect.
func (t Title) IsSeries() bool {
	return strings.HasPrefix(strings.ToLower(t.MediaType), "tv")
}

// Person is a catalog person with their detail payload.
type Person struct {
	Schema             Schema          `json:"schema"`
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	KnownForDepartment string          `json:"known_for_department"`
	Profile            string          `json:"profile"`
	Detail             json.RawMessage `json:"detail"`
}

// Catalog is the whole fixture data set.
type Catalog struct {
	Genres []Genre  `json:"genres"`
	Titles []Title  `json:"titles"`
	People []Person `json:"people"`
}

// Load decodes the embedded catalog.
func Load() (*Catalog, error) {
	data, err := dataFS.ReadFile("data/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("read fixture catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode fixture catalog: %w", err)
	}
	return &c, nil
}

// Title returns the title with id.
func (c *Catalog) Title(id string) (Title, bool) {
	for _, t := range c.Titles {
		if t.ID == id {
			return t, true
		}
	}
	return Title{}, false
}

// Person returns the person with id.
func (c *Catalog) Person(id string) (Person, bool) {
	for _, p := range c.People {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// TitleFilter narrows Filter. Empty fields match everything.
type TitleFilter struct {
	Query     string
	Type      string // movie or tv
	Genre     string // genre id or name
	Year      string
	MinRating float64
	Sort      string // popularity, rating, release_date or votes
}

// Filter returns the matching titles in sort order.
func (c *Catalog) Filter(f TitleFilter) []Title {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	genre := c.genreName(f.Genre)

	var out []Title
	for _, t := range c.Titles {
		switch {
		case query != "" && !strings.Contains(strings.ToLower(t.Title), query):
			continue
		case f.Type == "tv" && !t.IsSeries():
			continue
		case f.Type == "movie" && t.IsSeries():
			continue
		case genre != "" && !containsFold(t.Genres, genre):
			continue
		case f.Year != "" && t.Year != f.Year:
			continue
		case t.Rating < f.MinRating:
			continue
		}
		out = append(out, t)
	}

	less := sortKeys[f.Sort]
	if less == nil {
		less = sortKeys["popularity"]
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

var sortKeys = map[string]func(a, b Title) bool{
	"popularity":   func(a, b Title) bool { return a.Popularity > b.Popularity },
	"rating":       func(a, b Title) bool { return a.Rating > b.Rating },
	"votes":        func(a, b Title) bool { return a.Votes > b.Votes },
	"release_date": func(a, b Title) bool { return a.sortDate() > b.sortDate() },
}

func (t Title) sortDate() string {
	if t.ReleaseDate != "" {
		return t.ReleaseDate
	}
	return t.Year
}

// SearchPeople returns the people whose name contains query.
func (c *Catalog) SearchPeople(query string) []Person {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Person
	for _, p := range c.People {
		if query != "" && strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) genreName(idOrName string) string {
	idOrName = strings.TrimSpace(idOrName)
	for _, g := range c.Genres {
		if g.ID == idOrName {
			return g.Name
		}
	}
	return idOrName
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

// summary renders a title the way its dialect lists it.
func (t Title) summary() map[string]any {
	if t.Schema == SchemaLocal {
		return map[string]any{
			"tconst":          t.ID,
			"primary_title":   t.Title,
			"start_year":      t.Year,
			"runtime_minutes": t.Runtime,
			"average_rating":  t.Rating,
			"num_votes":       t.Votes,
			"genres":          strings.Join(t.Genres, ","),
			"title_type":      t.MediaType,
			"poster_url":      t.Poster,
			"overview":        t.Overview,
		}
	}
	out := map[string]any{
		"id":            t.ID,
		"vote_average":  t.Rating,
		"vote_count":    t.Votes,
		"genres":        t.Genres,
		"media_type":    t.MediaType,
		"poster_path":   t.Poster,
		"backdrop_path": t.Backdrop,
		"overview":      t.Overview,
	}
	if t.IsSeries() {
		out["name"] = t.Title
		out["first_air_date"] = t.ReleaseDate
	} else {
		out["title"] = t.Title
		out["release_date"] = t.ReleaseDate
	}
	return out
}

func (p Person) summary() map[string]any {
	if p.Schema == SchemaLocal {
		return map[string]any{
			"nconst":               p.ID,
			"primary_name":         p.Name,
			"known_for_department": p.KnownForDepartment,
		}
	}
	return map[string]any{
		"id":                   p.ID,
		"name":                 p.Name,
		"media_type":           "person",
		"profile_path":         p.Profile,
		"known_for_department": p.KnownForDepartment,
	}
}

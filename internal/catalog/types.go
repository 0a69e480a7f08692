package catalog

import "strings"

// Source tags which backend schema produced a payload.
type Source string

const (
	SourceLocal Source = "local"
	SourceTMDB  Source = "tmdb"
)

// TitleSummary is the card-level view of a movie or series.
// Zero values mean the field was absent.
type TitleSummary struct {
	ID          string
	Title       string
	Year        string
	Runtime     int
	Rating      float64
	VoteCount   int64
	Genres      []string
	PosterURL   string
	BackdropURL string
	MediaType   string
	Overview    string
}

// IsSeries reports whether the title has seasons.
func (t TitleSummary) IsSeries() bool {
	switch strings.ToLower(t.MediaType) {
	case "tv", "tvseries", "tvminiseries":
		return true
	}
	return false
}

// NavType is the value passed back to the backend as ?type=.
func (t TitleSummary) NavType() string {
	if t.IsSeries() {
		return "tv"
	}
	if t.MediaType == "" {
		return "movie"
	}
	return t.MediaType
}

// CastMember is an actor credit.
type CastMember struct {
	ID         string
	Name       string
	Character  string
	ProfileURL string
}

// CrewMember is a non-acting credit.
type CrewMember struct {
	ID        string
	Name      string
	Job       string
	Character string
}

// Provider is a watch provider offering the title.
type Provider struct {
	Name    string
	LogoURL string
}

// StreamingLink is an explicit streaming URL stored for a title.
type StreamingLink struct {
	Platform string
	URL      string
	Icon     string
	Color    string
}

// TitleDetail is everything the title page shows.
type TitleDetail struct {
	TitleSummary
	Tagline     string
	Status      string
	Directors   []CrewMember
	Writers     []CrewMember
	Cast        []CastMember
	Similar     []TitleSummary
	Providers   []Provider
	WatchLink   string
	SeasonCount int
	Source      Source
}

// PersonSummary is the card-level view of a person.
type PersonSummary struct {
	ID                 string
	Name               string
	ProfileURL         string
	KnownForDepartment string
}

// FilmographyEntry is one credit on a person page.
type FilmographyEntry struct {
	ID        string
	Title     string
	Year      string
	MediaType string
	Rating    float64
	Character string
}

// FilmographyGroup holds the entries of one category, in payload order.
type FilmographyGroup struct {
	Category string
	Entries  []FilmographyEntry
}

// PersonDetail is everything the person page shows.
type PersonDetail struct {
	PersonSummary
	BirthDate    string
	DeathDate    string
	BirthYear    string
	DeathYear    string
	PlaceOfBirth string
	Biography    string
	Filmography  []FilmographyGroup
}

// Episode is one episode of a season.
type Episode struct {
	Number  int
	Title   string
	AirDate string
	Runtime int
	Rating  float64
}

// SeasonIndex lists the seasons of a series.
type SeasonIndex struct {
	SeriesID string
	Title    string
	Seasons  []int
}

// EpisodeList is the episode listing of one season.
type EpisodeList struct {
	SeriesID string
	Season   int
	Episodes []Episode
}

// Result is one search hit; exactly one of Title or Person is set.
type Result struct {
	Title  *TitleSummary
	Person *PersonSummary
}

// ResultPage is a page of search or discover results. TotalPages is zero
// when the backend only reports HasMore.
type ResultPage struct {
	Query        string
	Page         int
	TotalPages   int
	TotalResults int64
	HasMore      bool
	Results      []Result
}

// FeedSection is one named list on the home page.
type FeedSection struct {
	Key   string
	Label string
	Items []TitleSummary
}

// HomeFeed is the landing page payload.
type HomeFeed struct {
	Sections []FeedSection
}

// Section returns the section with key, if present.
func (f HomeFeed) Section(key string) (FeedSection, bool) {
	for _, s := range f.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return FeedSection{}, false
}

// CreditGroup is one department of the full credits listing.
type CreditGroup struct {
	Department string
	Members    []CrewMember
}

// Credits is the full cast and crew of a title.
type Credits struct {
	ID     string
	Title  string
	Cast   []CastMember
	Groups []CreditGroup
	Source Source
}

// Genre is one entry of the genre taxonomy.
type Genre struct {
	ID   string
	Name string
}

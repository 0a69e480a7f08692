package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Raw payload shapes. Every alias either schema uses is listed; normalize.go
// collapses them into the view models once, at the client boundary.

type rawTitle struct {
	ID           flexString `json:"id"`
	Tconst       flexString `json:"tconst"`
	Title        flexString `json:"title"`
	PrimaryTitle flexString `json:"primary_title"`
	Name         flexString `json:"name"`

	Year         flexString `json:"year"`
	StartYear    flexString `json:"start_year"`
	ReleaseDate  flexString `json:"release_date"`
	FirstAirDate flexString `json:"first_air_date"`

	Runtime        flexInt `json:"runtime"`
	RuntimeMinutes flexInt `json:"runtime_minutes"`

	Rating        flexFloat `json:"rating"`
	AverageRating flexFloat `json:"average_rating"`
	VoteAverage   flexFloat `json:"vote_average"`

	Votes     flexInt `json:"votes"`
	NumVotes  flexInt `json:"num_votes"`
	VoteCount flexInt `json:"vote_count"`

	Genres nameList `json:"genres"`

	Poster       flexString `json:"poster"`
	PosterPath   flexString `json:"poster_path"`
	PosterURL    flexString `json:"poster_url"`
	Backdrop     flexString `json:"backdrop"`
	BackdropPath flexString `json:"backdrop_path"`

	MediaType  flexString `json:"media_type"`
	TitleType  flexString `json:"title_type"`
	ResultType flexString `json:"result_type"`

	Overview flexString `json:"overview"`
}

type rawCredit struct {
	ID          flexString `json:"id"`
	Nconst      flexString `json:"nconst"`
	Name        flexString `json:"name"`
	PrimaryName flexString `json:"primary_name"`
	Character   flexString `json:"character"`
	Characters  flexString `json:"characters"`
	Profile     flexString `json:"profile"`
	ProfilePath flexString `json:"profile_path"`
	Job         flexString `json:"job"`
	Department  flexString `json:"department"`
	Category    flexString `json:"category"`
}

type rawProvider struct {
	Name         flexString `json:"name"`
	ProviderName flexString `json:"provider_name"`
	Logo         flexString `json:"logo"`
	LogoPath     flexString `json:"logo_path"`
}

type rawDetail struct {
	rawTitle
	Tagline         flexString    `json:"tagline"`
	Status          flexString    `json:"status"`
	Director        nameList      `json:"director"`
	Directors       nameList      `json:"directors"`
	Writers         nameList      `json:"writers"`
	Cast            []rawCredit   `json:"cast"`
	Similar         []rawTitle    `json:"similar"`
	Providers       []rawProvider `json:"providers"`
	WatchLink       flexString    `json:"watch_link"`
	NumberOfSeasons flexInt       `json:"number_of_seasons"`
	Source          flexString    `json:"source"`
}

type rawResult struct {
	rawTitle
	Nconst             flexString `json:"nconst"`
	PrimaryName        flexString `json:"primary_name"`
	Profile            flexString `json:"profile"`
	ProfilePath        flexString `json:"profile_path"`
	KnownForDepartment flexString `json:"known_for_department"`
}

type rawResultPage struct {
	Query             flexString  `json:"query"`
	Page              flexInt     `json:"page"`
	TotalPages        flexInt     `json:"totalPages"`
	TotalPagesSnake   flexInt     `json:"total_pages"`
	TotalResults      flexInt     `json:"totalResults"`
	TotalResultsSnake flexInt     `json:"total_results"`
	HasMore           bool        `json:"hasMore"`
	Results           []rawResult `json:"results"`
}

type rawFilmEntry struct {
	ID            flexString `json:"id"`
	Tconst        flexString `json:"tconst"`
	Title         flexString `json:"title"`
	PrimaryTitle  flexString `json:"primary_title"`
	Name          flexString `json:"name"`
	Year          flexString `json:"year"`
	StartYear     flexString `json:"start_year"`
	ReleaseDate   flexString `json:"release_date"`
	FirstAirDate  flexString `json:"first_air_date"`
	MediaType     flexString `json:"media_type"`
	TitleType     flexString `json:"title_type"`
	VoteAverage   flexFloat  `json:"vote_average"`
	AverageRating flexFloat  `json:"average_rating"`
	Rating        flexFloat  `json:"rating"`
	Character     flexString `json:"character"`
	Characters    flexString `json:"characters"`
	Category      flexString `json:"category"`
	Department    flexString `json:"department"`
}

type rawPerson struct {
	ID                 flexString      `json:"id"`
	Nconst             flexString      `json:"nconst"`
	Name               flexString      `json:"name"`
	PrimaryName        flexString      `json:"primary_name"`
	Profile            flexString      `json:"profile"`
	ProfilePath        flexString      `json:"profile_path"`
	KnownForDepartment flexString      `json:"known_for_department"`
	Birthday           flexString      `json:"birthday"`
	Deathday           flexString      `json:"deathday"`
	BirthYear          flexString      `json:"birth_year"`
	DeathYear          flexString      `json:"death_year"`
	PlaceOfBirth       flexString      `json:"place_of_birth"`
	Biography          flexString      `json:"biography"`
	Filmography        json.RawMessage `json:"filmography"`
	Credits            json.RawMessage `json:"credits"`
}

type rawSeasons struct {
	ID           flexString        `json:"id"`
	Tconst       flexString        `json:"tconst"`
	Title        flexString        `json:"title"`
	PrimaryTitle flexString        `json:"primary_title"`
	Name         flexString        `json:"name"`
	Seasons      []json.RawMessage `json:"seasons"`
}

type rawEpisode struct {
	EpisodeNumber  flexInt    `json:"episode_number"`
	EpNum          flexInt    `json:"ep_num"`
	Name           flexString `json:"name"`
	Title          flexString `json:"title"`
	PrimaryTitle   flexString `json:"primary_title"`
	AirDate        flexString `json:"air_date"`
	StartYear      flexString `json:"start_year"`
	Runtime        flexInt    `json:"runtime"`
	RuntimeMinutes flexInt    `json:"runtime_minutes"`
	VoteAverage    flexFloat  `json:"vote_average"`
	AverageRating  flexFloat  `json:"average_rating"`
	Rating         flexFloat  `json:"rating"`
}

type rawEpisodes struct {
	Season   flexInt      `json:"season"`
	Episodes []rawEpisode `json:"episodes"`
}

type rawCredits struct {
	ID      flexString      `json:"id"`
	Title   flexString      `json:"title"`
	Cast    []rawCredit     `json:"cast"`
	Crew    json.RawMessage `json:"crew"`
	Credits json.RawMessage `json:"credits"`
	Source  flexString      `json:"source"`
}

type rawStreaming struct {
	Links []struct {
		Platform flexString `json:"platform"`
		URL      flexString `json:"url"`
		Icon     flexString `json:"icon"`
		Color    flexString `json:"color"`
	} `json:"links"`
}

type rawGenres struct {
	Genres nameList `json:"genres"`
}

// keyedRaw is one member of a JSON object, in document order.
type keyedRaw struct {
	Key   string
	Value json.RawMessage
}

// orderedMembers decodes a JSON object keeping member order, which
// map[string]T would lose.
func orderedMembers(data []byte) ([]keyedRaw, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var out []keyedRaw
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode member %q: %w", key, err)
		}
		out = append(out, keyedRaw{Key: key, Value: value})
	}
	return out, nil
}

// jsonKind returns the first significant byte of a JSON value, or 0.
func jsonKind(data []byte) byte {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

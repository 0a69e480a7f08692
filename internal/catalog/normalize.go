package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

const (
	posterSize   = "w500"
	backdropSize = "w1280"
	profileSize  = "w185"
	logoSize     = "w92"
)

// normalizer maps raw payloads onto view models. imageBase prefixes the
// relative image paths TMDB returns.
type normalizer struct {
	imageBase string
}

func (n normalizer) image(path, size string) string {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"), strings.HasPrefix(path, "data:"):
		return path
	case strings.HasPrefix(path, "/") && n.imageBase != "":
		return strings.TrimRight(n.imageBase, "/") + "/" + size + path
	}
	return path
}

// displayYear prefers an explicit year, then the first four characters of a date.
func displayYear(explicit []flexString, dates ...flexString) string {
	for _, y := range explicit {
		if s := y.String(); s != "" {
			return s
		}
	}
	for _, d := range dates {
		if s := d.String(); len(s) >= 4 {
			return s[:4]
		}
	}
	return ""
}

// firstCharacter unwraps the local schema's JSON-encoded characters list.
func firstCharacter(values ...flexString) string {
	for _, v := range values {
		s := v.String()
		if s == "" {
			continue
		}
		if strings.HasPrefix(s, "[") {
			var list []string
			if err := json.Unmarshal([]byte(s), &list); err == nil {
				if len(list) > 0 {
					return strings.TrimSpace(list[0])
				}
				continue
			}
		}
		return s
	}
	return ""
}

func (n normalizer) title(r rawTitle) TitleSummary {
	return TitleSummary{
		ID:          first(r.ID.String(), r.Tconst.String()),
		Title:       first(r.Title.String(), r.PrimaryTitle.String(), r.Name.String()),
		Year:        displayYear([]flexString{r.Year, r.StartYear}, r.ReleaseDate, r.FirstAirDate),
		Runtime:     int(firstInt(r.Runtime, r.RuntimeMinutes)),
		Rating:      firstFloat(r.Rating, r.AverageRating, r.VoteAverage),
		VoteCount:   firstInt(r.Votes, r.NumVotes, r.VoteCount),
		Genres:      r.Genres.names(),
		PosterURL:   n.image(first(r.Poster.String(), r.PosterPath.String(), r.PosterURL.String()), posterSize),
		BackdropURL: n.image(first(r.Backdrop.String(), r.BackdropPath.String()), backdropSize),
		MediaType:   first(r.MediaType.String(), r.TitleType.String()),
		Overview:    r.Overview.String(),
	}
}

func (n normalizer) titles(raw []rawTitle) []TitleSummary {
	if len(raw) == 0 {
		return nil
	}
	out := make([]TitleSummary, 0, len(raw))
	for _, r := range raw {
		out = append(out, n.title(r))
	}
	return out
}

func (n normalizer) cast(raw []rawCredit) []CastMember {
	if len(raw) == 0 {
		return nil
	}
	out := make([]CastMember, 0, len(raw))
	for _, c := range raw {
		out = append(out, CastMember{
			ID:         first(c.ID.String(), c.Nconst.String()),
			Name:       first(c.Name.String(), c.PrimaryName.String()),
			Character:  firstCharacter(c.Character, c.Characters),
			ProfileURL: n.image(first(c.Profile.String(), c.ProfilePath.String()), profileSize),
		})
	}
	return out
}

func crewMember(c rawCredit) CrewMember {
	return CrewMember{
		ID:        first(c.ID.String(), c.Nconst.String()),
		Name:      first(c.Name.String(), c.PrimaryName.String()),
		Job:       c.Job.String(),
		Character: firstCharacter(c.Character, c.Characters),
	}
}

func refsToCrew(refs nameList) []CrewMember {
	if len(refs) == 0 {
		return nil
	}
	out := make([]CrewMember, 0, len(refs))
	for _, r := range refs {
		out = append(out, CrewMember{ID: r.ID, Name: r.Name})
	}
	return out
}

func (n normalizer) detail(r rawDetail) TitleDetail {
	d := TitleDetail{
		TitleSummary: n.title(r.rawTitle),
		Tagline:      r.Tagline.String(),
		Status:       r.Status.String(),
		Writers:      refsToCrew(r.Writers),
		Cast:         n.cast(r.Cast),
		Similar:      n.titles(r.Similar),
		WatchLink:    r.WatchLink.String(),
		SeasonCount:  int(r.NumberOfSeasons),
		Source:       Source(r.Source.String()),
	}
	d.Directors = refsToCrew(r.Directors)
	if len(d.Directors) == 0 {
		d.Directors = refsToCrew(r.Director)
	}
	for _, p := range r.Providers {
		name := first(p.Name.String(), p.ProviderName.String())
		if name == "" {
			continue
		}
		d.Providers = append(d.Providers, Provider{
			Name:    name,
			LogoURL: n.image(first(p.Logo.String(), p.LogoPath.String()), logoSize),
		})
	}
	return d
}

func (n normalizer) result(r rawResult) Result {
	isPerson := strings.EqualFold(r.MediaType.String(), "person") ||
		strings.EqualFold(r.ResultType.String(), "person") ||
		r.Nconst.String() != ""
	if isPerson {
		return Result{Person: &PersonSummary{
			ID:                 first(r.ID.String(), r.Nconst.String()),
			Name:               first(r.Name.String(), r.PrimaryName.String()),
			ProfileURL:         n.image(first(r.Profile.String(), r.ProfilePath.String()), profileSize),
			KnownForDepartment: r.KnownForDepartment.String(),
		}}
	}
	t := n.title(r.rawTitle)
	return Result{Title: &t}
}

func (n normalizer) resultPage(r rawResultPage) ResultPage {
	p := ResultPage{
		Query:        r.Query.String(),
		Page:         int(r.Page),
		TotalPages:   int(firstInt(r.TotalPages, r.TotalPagesSnake)),
		TotalResults: firstInt(r.TotalResults, r.TotalResultsSnake),
		HasMore:      r.HasMore,
	}
	for _, res := range r.Results {
		p.Results = append(p.Results, n.result(res))
	}
	return p
}

var sectionLabels = map[string]string{
	"trending":  "Trending This Week",
	"topRated":  "Top Rated",
	"mostVoted": "Most Voted",
	"popular":   "Popular",
}

// sectionLabel turns an unknown camelCase key into words.
func sectionLabel(key string) string {
	if label, ok := sectionLabels[key]; ok {
		return label
	}
	var b strings.Builder
	for i, r := range key {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// home keeps every array member of the payload as a section, in payload order.
func (n normalizer) home(data []byte) (HomeFeed, error) {
	members, err := orderedMembers(data)
	if err != nil {
		return HomeFeed{}, fmt.Errorf("decode home: %w", err)
	}
	var feed HomeFeed
	for _, m := range members {
		if jsonKind(m.Value) != '[' {
			continue
		}
		var raw []rawTitle
		if err := json.Unmarshal(m.Value, &raw); err != nil {
			return HomeFeed{}, fmt.Errorf("decode home section %q: %w", m.Key, err)
		}
		feed.Sections = append(feed.Sections, FeedSection{
			Key:   m.Key,
			Label: sectionLabel(m.Key),
			Items: n.titles(raw),
		})
	}
	return feed, nil
}

func filmEntry(f rawFilmEntry) FilmographyEntry {
	return FilmographyEntry{
		ID:        first(f.ID.String(), f.Tconst.String()),
		Title:     first(f.Title.String(), f.PrimaryTitle.String(), f.Name.String()),
		Year:      displayYear([]flexString{f.Year, f.StartYear}, f.ReleaseDate, f.FirstAirDate),
		MediaType: first(f.MediaType.String(), f.TitleType.String()),
		Rating:    firstFloat(f.VoteAverage, f.AverageRating, f.Rating),
		Character: firstCharacter(f.Character, f.Characters),
	}
}

// groupFilmography accepts a flat array (grouped by category or department in
// first-seen order) or an object of category -> entries (member order kept).
func groupFilmography(data json.RawMessage) ([]FilmographyGroup, error) {
	switch jsonKind(data) {
	case '[':
		var flat []rawFilmEntry
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil, err
		}
		var groups []FilmographyGroup
		index := map[string]int{}
		for _, f := range flat {
			cat := first(f.Category.String(), f.Department.String(), "Other")
			i, ok := index[cat]
			if !ok {
				i = len(groups)
				index[cat] = i
				groups = append(groups, FilmographyGroup{Category: cat})
			}
			groups[i].Entries = append(groups[i].Entries, filmEntry(f))
		}
		return groups, nil
	case '{':
		members, err := orderedMembers(data)
		if err != nil {
			return nil, err
		}
		var groups []FilmographyGroup
		for _, m := range members {
			var entries []rawFilmEntry
			if err := json.Unmarshal(m.Value, &entries); err != nil {
				return nil, fmt.Errorf("category %q: %w", m.Key, err)
			}
			g := FilmographyGroup{Category: m.Key}
			for _, f := range entries {
				g.Entries = append(g.Entries, filmEntry(f))
			}
			groups = append(groups, g)
		}
		return groups, nil
	}
	return nil, nil
}

func (n normalizer) person(r rawPerson) (PersonDetail, error) {
	p := PersonDetail{
		PersonSummary: PersonSummary{
			ID:                 first(r.ID.String(), r.Nconst.String()),
			Name:               first(r.Name.String(), r.PrimaryName.String()),
			ProfileURL:         n.image(first(r.Profile.String(), r.ProfilePath.String()), "w300"),
			KnownForDepartment: r.KnownForDepartment.String(),
		},
		BirthDate:    r.Birthday.String(),
		DeathDate:    r.Deathday.String(),
		BirthYear:    r.BirthYear.String(),
		DeathYear:    r.DeathYear.String(),
		PlaceOfBirth: r.PlaceOfBirth.String(),
		Biography:    r.Biography.String(),
	}
	source := r.Filmography
	if jsonKind(source) == 0 || jsonKind(source) == 'n' {
		source = r.Credits
	}
	groups, err := groupFilmography(source)
	if err != nil {
		return PersonDetail{}, fmt.Errorf("decode filmography: %w", err)
	}
	p.Filmography = groups
	return p, nil
}

func seasons(r rawSeasons) (SeasonIndex, error) {
	idx := SeasonIndex{
		SeriesID: first(r.ID.String(), r.Tconst.String()),
		Title:    first(r.Title.String(), r.PrimaryTitle.String(), r.Name.String()),
	}
	for _, s := range r.Seasons {
		if jsonKind(s) == '{' {
			var obj struct {
				SeasonNumber flexInt `json:"season_number"`
			}
			if err := json.Unmarshal(s, &obj); err != nil {
				return SeasonIndex{}, fmt.Errorf("decode season: %w", err)
			}
			idx.Seasons = append(idx.Seasons, int(obj.SeasonNumber))
			continue
		}
		var num flexInt
		if err := num.UnmarshalJSON(s); err != nil {
			return SeasonIndex{}, fmt.Errorf("decode season: %w", err)
		}
		idx.Seasons = append(idx.Seasons, int(num))
	}
	return idx, nil
}

func episodes(seriesID string, season int, r rawEpisodes) EpisodeList {
	list := EpisodeList{SeriesID: seriesID, Season: season}
	if r.Season != 0 {
		list.Season = int(r.Season)
	}
	for _, e := range r.Episodes {
		list.Episodes = append(list.Episodes, Episode{
			Number:  int(firstInt(e.EpisodeNumber, e.EpNum)),
			Title:   first(e.Name.String(), e.Title.String(), e.PrimaryTitle.String()),
			AirDate: first(e.AirDate.String(), e.StartYear.String()),
			Runtime: int(firstInt(e.Runtime, e.RuntimeMinutes)),
			Rating:  firstFloat(e.VoteAverage, e.AverageRating, e.Rating),
		})
	}
	return list
}

// groupCrew accepts an object of department -> members or a flat array.
func groupCrew(data json.RawMessage) ([]CreditGroup, error) {
	switch jsonKind(data) {
	case '{':
		members, err := orderedMembers(data)
		if err != nil {
			return nil, err
		}
		var groups []CreditGroup
		for _, m := range members {
			var raw []rawCredit
			if err := json.Unmarshal(m.Value, &raw); err != nil {
				return nil, fmt.Errorf("department %q: %w", m.Key, err)
			}
			g := CreditGroup{Department: m.Key}
			for _, c := range raw {
				g.Members = append(g.Members, crewMember(c))
			}
			groups = append(groups, g)
		}
		return groups, nil
	case '[':
		var raw []rawCredit
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		var groups []CreditGroup
		index := map[string]int{}
		for _, c := range raw {
			dept := first(c.Department.String(), c.Category.String(), "Other")
			i, ok := index[dept]
			if !ok {
				i = len(groups)
				index[dept] = i
				groups = append(groups, CreditGroup{Department: dept})
			}
			groups[i].Members = append(groups[i].Members, crewMember(c))
		}
		return groups, nil
	}
	return nil, nil
}

func (n normalizer) credits(r rawCredits) (Credits, error) {
	c := Credits{
		ID:     r.ID.String(),
		Title:  r.Title.String(),
		Cast:   n.cast(r.Cast),
		Source: Source(r.Source.String()),
	}
	crew := r.Crew
	if jsonKind(crew) == 0 || jsonKind(crew) == 'n' {
		crew = r.Credits
	}
	groups, err := groupCrew(crew)
	if err != nil {
		return Credits{}, fmt.Errorf("decode crew: %w", err)
	}
	c.Groups = groups
	return c, nil
}

func genres(r rawGenres) []Genre {
	out := make([]Genre, 0, len(r.Genres))
	for _, g := range r.Genres {
		if g.Name == "" {
			continue
		}
		out = append(out, Genre{ID: first(g.ID, g.Name), Name: g.Name})
	}
	return out
}

func streaming(r rawStreaming) []StreamingLink {
	var out []StreamingLink
	for _, l := range r.Links {
		if l.URL.String() == "" {
			continue
		}
		out = append(out, StreamingLink{
			Platform: l.Platform.String(),
			URL:      l.URL.String(),
			Icon:     l.Icon.String(),
			Color:    l.Color.String(),
		})
	}
	return out
}

package render

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/five82/cinevault/internal/catalog"
	"github.com/five82/cinevault/internal/route"
)

// Mood is a discovery shortcut on the home page.
type Mood struct {
	GenreID string
	Emoji   string
	Label   string
}

// Fragment is the discover route the mood opens.
func (m Mood) Fragment() string {
	return route.Encode(route.Discover, route.Params{
		"type":  "movie",
		"genre": m.GenreID,
		"sort":  "popularity",
		"page":  "1",
	})
}

// Moods are keyed by TMDB genre ids.
var Moods = []Mood{
	{"28", "💥", "Action"},
	{"35", "😂", "Comedy"},
	{"18", "🎭", "Drama"},
	{"27", "👻", "Horror"},
	{"10749", "❤️", "Romance"},
	{"878", "🚀", "Sci-Fi"},
	{"53", "🔪", "Thriller"},
	{"16", "✨", "Animation"},
	{"14", "🧙", "Fantasy"},
	{"12", "🗺️", "Adventure"},
}

func sectionIcon(key string) string {
	switch key {
	case "trending":
		return "🔥"
	case "topRated":
		return "⭐"
	case "mostVoted":
		return "🗳"
	}
	return "🎬"
}

// HeroSlides picks the titles featured in the home banner: the first few
// trending titles that carry artwork.
func HeroSlides(feed catalog.HomeFeed) []catalog.TitleSummary {
	section, ok := feed.Section("trending")
	if !ok && len(feed.Sections) > 0 {
		section = feed.Sections[0]
	}
	var slides []catalog.TitleSummary
	for _, t := range section.Items {
		if t.BackdropURL == "" && t.PosterURL == "" {
			continue
		}
		slides = append(slides, t)
		if len(slides) == HeroLimit {
			break
		}
	}
	return slides
}

type homeData struct {
	Hero     []catalog.TitleSummary
	Moods    []Mood
	Sections []catalog.FeedSection
}

// Home renders the landing feed.
func (r *Renderer) Home(feed catalog.HomeFeed) (string, error) {
	data := homeData{Hero: HeroSlides(feed), Moods: Moods}
	for _, s := range feed.Sections {
		s.Items = capList(s.Items, GridLimit)
		data.Sections = append(data.Sections, s)
	}
	return r.exec("home", data)
}

type resultsData struct {
	Query   string
	Type    string
	Total   int64
	Badges  []string
	Results []catalog.Result
	Empty   template.HTML
	Pager   template.HTML
}

// Search renders a page of search hits for query. target is the route the
// pager links are derived from.
func (r *Renderer) Search(query string, results catalog.ResultPage, target route.Route) (string, error) {
	data := resultsData{
		Query:   query,
		Total:   results.TotalResults,
		Results: capList(results.Results, GridLimit),
	}
	if len(results.Results) == 0 {
		data.Empty = template.HTML(r.Empty("🔍", "No results found. Try another query."))
	} else {
		data.Pager = r.pager(target.PageNumber(), results.TotalPages, results.HasMore, target)
	}
	return r.exec("search", data)
}

// Discover renders a page of filtered results.
func (r *Renderer) Discover(target route.Route, results catalog.ResultPage) (string, error) {
	data := resultsData{
		Type:    target.Get("type"),
		Total:   results.TotalResults,
		Badges:  FilterBadges(target.Params),
		Results: capList(results.Results, GridLimit),
	}
	if data.Type == "" {
		data.Type = "movies"
	}
	if len(results.Results) == 0 {
		data.Empty = template.HTML(r.Empty("🎬", "No movies found with these filters."))
	} else {
		data.Pager = r.pager(target.PageNumber(), results.TotalPages, results.HasMore, target)
	}
	return r.exec("discover", data)
}

// FilterBadges summarises the active discover filters.
func FilterBadges(params route.Params) []string {
	var badges []string
	if g := strings.TrimSpace(params["genre"]); g != "" {
		badges = append(badges, "Genre "+g)
	}
	if y := strings.TrimSpace(params["year"]); y != "" {
		badges = append(badges, "Year "+y)
	}
	if v := strings.TrimSpace(params["rating"]); v != "" {
		badges = append(badges, "Rating ≥ "+v)
	}
	if s := strings.TrimSpace(params["sort"]); s != "" {
		badges = append(badges, "Sort: "+s)
	}
	return badges
}

// GenreOptions renders the genre choices for the filter panel.
func (r *Renderer) GenreOptions(genres []catalog.Genre) (string, error) {
	return r.exec("genreOptions", genres)
}

type providerLink struct {
	Name    string
	URL     string
	LogoURL string
}

type titleData struct {
	catalog.TitleDetail
	ProviderLinks []providerLink
	Links         []catalog.StreamingLink
	CastCards     []catalog.CastMember
	SimilarCards  []catalog.TitleSummary
}

// Title renders the detail page. links are the optional streaming links and
// may be nil.
func (r *Renderer) Title(detail catalog.TitleDetail, links []catalog.StreamingLink) (string, error) {
	data := titleData{
		TitleDetail:  detail,
		Links:        links,
		CastCards:    capList(detail.Cast, CastLimit),
		SimilarCards: capList(detail.Similar, SimilarLimit),
	}
	for _, p := range detail.Providers {
		data.ProviderLinks = append(data.ProviderLinks, providerLink{
			Name:    p.Name,
			URL:     ProviderURL(p.Name, detail.Title),
			LogoURL: p.LogoURL,
		})
	}
	return r.exec("title", data)
}

type filmGroup struct {
	Index    int
	Category string
	Entries  []catalog.FilmographyEntry
}

type personData struct {
	catalog.PersonDetail
	Groups []filmGroup
}

// Person renders a person's biography and filmography.
func (r *Renderer) Person(detail catalog.PersonDetail) (string, error) {
	data := personData{PersonDetail: detail}
	for i, g := range detail.Filmography {
		if len(g.Entries) == 0 {
			continue
		}
		data.Groups = append(data.Groups, filmGroup{
			Index:    i,
			Category: g.Category,
			Entries:  capList(g.Entries, FilmographyLimit),
		})
	}
	return r.exec("person", data)
}

type seasonButton struct {
	Number   int
	Active   bool
	Fragment string
}

type seriesData struct {
	Title   string
	Seasons []seasonButton
	Empty   template.HTML
}

// EpisodesRegion names the container the season's episode list loads into.
const EpisodesRegion = "episodes"

// Series renders the season selector with an empty episodes region. active
// marks the selected season; target supplies the series route.
func (r *Renderer) Series(index catalog.SeasonIndex, active int, target route.Route) (string, error) {
	data := seriesData{Title: index.Title}
	if len(index.Seasons) == 0 {
		data.Empty = template.HTML(r.Empty("📺", "No season data available."))
	}
	for _, n := range index.Seasons {
		data.Seasons = append(data.Seasons, seasonButton{
			Number:   n,
			Active:   n == active,
			Fragment: route.Encode(route.Series, target.Params.With("season", strconv.Itoa(n))),
		})
	}
	return r.exec("series", data)
}

// Episodes renders the episode list of one season.
func (r *Renderer) Episodes(list catalog.EpisodeList) (string, error) {
	if len(list.Episodes) == 0 {
		return r.Empty("📺", "No episodes found."), nil
	}
	return r.exec("episodes", list)
}

type creditGroup struct {
	Index      int
	Department string
	Members    []catalog.CrewMember
}

type creditsData struct {
	Title  string
	Cast   []catalog.CastMember
	Groups []creditGroup
	Empty  template.HTML
}

// Credits renders the full cast and crew listing.
func (r *Renderer) Credits(credits catalog.Credits) (string, error) {
	data := creditsData{Title: credits.Title, Cast: credits.Cast}
	for i, g := range credits.Groups {
		if len(g.Members) == 0 {
			continue
		}
		data.Groups = append(data.Groups, creditGroup{Index: i, Department: g.Department, Members: g.Members})
	}
	if len(data.Cast) == 0 && len(data.Groups) == 0 {
		data.Empty = template.HTML(r.Empty("👥", "No cast data available."))
	}
	return r.exec("credits", data)
}

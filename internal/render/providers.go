package render

import (
	"net/url"
	"strings"
)

// providerSearch maps a lower-cased provider name fragment to a search URL
// format. Order matters: the first pattern that matches wins.
var providerSearch = []struct {
	pattern string
	format  string
}{
	{"netflix", "https://www.netflix.com/search?q=%s"},
	{"amazon prime video", "https://www.amazon.com/s?k=%s&i=instant-video"},
	{"amazon video", "https://www.amazon.com/s?k=%s&i=instant-video"},
	{"disney plus", "https://www.disneyplus.com/search/%s"},
	{"apple tv plus", "https://tv.apple.com/search?term=%s"},
	{"apple tv", "https://tv.apple.com/search?term=%s"},
	{"apple itunes", "https://tv.apple.com/search?term=%s"},
	{"google play movies", "https://play.google.com/store/search?q=%s&c=movies"},
	{"youtube", "https://www.youtube.com/results?search_query=%s+full+movie"},
	{"hulu", "https://www.hulu.com/search?q=%s"},
	{"hbo max", "https://play.max.com/search?q=%s"},
	{"max", "https://play.max.com/search?q=%s"},
	{"paramount plus", "https://www.paramountplus.com/search/?q=%s"},
	{"paramount+ amazon channel", "https://www.paramountplus.com/search/?q=%s"},
	{"peacock", "https://www.peacocktv.com/search?q=%s"},
	{"crunchyroll", "https://www.crunchyroll.com/search?q=%s"},
	{"vudu", "https://www.vudu.com/content/movies/search?searchString=%s"},
	{"microsoft store", "https://www.microsoft.com/en-us/search/shop/movies-tv?q=%s"},
	{"mubi", "https://mubi.com/en/search?query=%s"},
	{"starz", "https://www.starz.com/search?q=%s"},
}

// ProviderURL returns a deep link searching provider for title, falling back
// to a web search when the provider is not in the table.
func ProviderURL(provider, title string) string {
	escaped := url.QueryEscape(title)
	key := strings.ToLower(strings.TrimSpace(provider))
	if key != "" {
		for _, p := range providerSearch {
			if strings.Contains(key, p.pattern) || strings.Contains(p.pattern, key) {
				return strings.ReplaceAll(p.format, "%s", escaped)
			}
		}
	}
	return "https://www.google.com/search?q=watch+" + escaped + "+on+" + url.QueryEscape(provider)
}

package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/cinevault/internal/catalog"
	"github.com/five82/cinevault/internal/render"
	"github.com/five82/cinevault/internal/route"
)

func texts(r Rendered) []string {
	out := make([]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		out = append(out, l.Text())
	}
	return out
}

func TestRenderBlocksAndInline(t *testing.T) {
	doc, err := Parse(`<div><h1>Heat</h1>
		<div class="meta-row"><span>movie</span><span>1995</span><span>170 min</span></div>
		<p class="overview">A   crew of
		thieves.</p></div>`)
	require.NoError(t, err)

	out := doc.Render(Options{})
	assert.Equal(t, []string{"Heat", "movie · 1995 · 170 min", "A crew of thieves."}, texts(out))
	assert.Equal(t, StyleHeading, out.Lines[0].Style)
	assert.Empty(t, out.Actions)
}

func TestRenderActions(t *testing.T) {
	doc, err := Parse(`<button class="back-btn" data-action="back">← Back</button>
		<div class="card" data-action="navigate" data-fragment="#title?id=tt1&amp;type=movie">
		<div class="card-poster-wrap"><img src="x"><div class="card-rating-overlay"><span class="star">★</span> 8.1</div></div>
		<div class="card-body"><div class="card-title">Heat</div><div class="card-meta"><span>1995</span></div></div></div>
		<div class="pagination"><span class="page-info">Page 2 of 3</span><button class="page-btn" data-action="navigate" data-fragment="#search?page=3&amp;q=x">Next →</button></div>`)
	require.NoError(t, err)

	out := doc.Render(Options{})
	require.Len(t, out.Actions, 3)
	assert.Equal(t, route.ActionBack, out.Actions[0].Action.Kind)

	card := out.Actions[1]
	assert.Equal(t, "Heat  1995  ★ 8.1", card.Label)
	assert.Equal(t, route.Title, card.Action.Target.Page)
	assert.Equal(t, "tt1", card.Action.Target.Params["id"])
	assert.Equal(t, "Heat  1995  ★ 8.1", out.Lines[card.Line].Text())

	next := out.Actions[2]
	assert.Equal(t, "3", next.Action.Target.Params["page"])
	segs := out.Lines[next.Line].Segments
	assert.Equal(t, 2, segs[len(segs)-1].Action)
	assert.Contains(t, out.Lines[next.Line].Text(), "Page 2 of 3")
}

func TestRenderHeroShowsActiveSlide(t *testing.T) {
	markup := `<div class="hero">
		<div class="hero-slide active" data-index="0"><h1 class="hero-title">First</h1></div>
		<div class="hero-slide" data-index="1"><h1 class="hero-title">Second</h1></div>
		<div class="hero-dots"><span class="hero-dot" data-action="hero" data-index="0">1</span><span class="hero-dot" data-action="hero" data-index="1">2</span></div>
	</div>`
	doc, err := Parse(markup)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.HeroSlides())

	first := doc.Render(Options{HeroActive: 0})
	assert.Contains(t, texts(first), "First")
	assert.NotContains(t, texts(first), "Second")

	second := doc.Render(Options{HeroActive: 1})
	assert.Contains(t, texts(second), "Second")
	require.Len(t, second.Actions, 2)
	assert.Equal(t, "○", second.Actions[0].Label)
	assert.Equal(t, "●", second.Actions[1].Label)
	assert.Equal(t, 1, second.Actions[1].Action.Index)
}

func TestRenderRevealBlocks(t *testing.T) {
	doc, err := Parse(`<div class="section-title animate-in" id="trending-title">Trending</div>
		<div class="card-grid animate-in"><div>a</div><div>b</div></div>`)
	require.NoError(t, err)

	out := doc.Render(Options{Hidden: func(id string) bool { return id == "reveal-1" }})
	require.Len(t, out.Blocks, 2)
	assert.Equal(t, Block{ID: "trending-title", Start: 0, End: 1}, out.Blocks[0])
	assert.Equal(t, Block{ID: "reveal-1", Start: 1, End: 3}, out.Blocks[1])
	assert.False(t, out.Lines[0].Dim)
	assert.True(t, out.Lines[1].Dim)
	assert.True(t, out.Lines[2].Dim)
}

func TestActiveSeasonFollowsEpisodeList(t *testing.T) {
	doc, err := Parse(`<div class="season-selector">
		<button class="season-btn active" data-action="season" data-index="1" data-fragment="#series?id=tv1&amp;season=1">S1</button>
		<button class="season-btn" data-action="season" data-index="2" data-fragment="#series?id=tv1&amp;season=2">S2</button></div>
		<div class="region" data-region="episodes"><div class="episode-list" data-season="2"></div></div>`)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.ActiveSeason())
	assert.Equal(t, "tv1", doc.SeriesID())

	out := doc.Render(Options{})
	require.Len(t, out.Actions, 2)
	line := out.Lines[out.Actions[1].Line]
	var active []string
	for _, s := range line.Segments {
		if s.Active {
			active = append(active, s.Text)
		}
	}
	assert.Equal(t, []string{"S2"}, active)
}

func TestRenderRendererOutput(t *testing.T) {
	r, err := render.NewRenderer("en")
	require.NoError(t, err)
	markup, err := r.Title(catalog.TitleDetail{
		TitleSummary: catalog.TitleSummary{ID: "tt1", Title: "Heat", Year: "1995", Rating: 8.3, Genres: []string{"Crime", "Drama"}},
		Cast:         []catalog.CastMember{{ID: "nm1", Name: "Al Pacino", Character: "Vincent Hanna"}},
		Providers:    []catalog.Provider{{Name: "Netflix"}},
	}, nil)
	require.NoError(t, err)

	doc, err := Parse(markup)
	require.NoError(t, err)
	out := doc.Render(Options{})
	lines := texts(out)
	assert.Contains(t, lines, "Heat")
	assert.Contains(t, lines, "Crime · Drama")

	var labels []string
	for _, a := range out.Actions {
		labels = append(labels, a.Label)
	}
	assert.Contains(t, labels, "Al Pacino as Vincent Hanna")
	assert.Contains(t, labels, "👥 Full Cast")
	assert.Contains(t, lines, "↗ Netflix  https://www.netflix.com/search?q=Heat")
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions(`<select><option value="">All genres</option><option value="28">Action</option></select>`)
	require.NoError(t, err)
	assert.Equal(t, []Option{{Value: "", Label: "All genres"}, {Value: "28", Label: "Action"}}, opts)
}

func TestRenderErrorPanelStyle(t *testing.T) {
	r, err := render.NewRenderer("en")
	require.NoError(t, err)
	doc, err := Parse(r.Error("HTTP 500"))
	require.NoError(t, err)
	out := doc.Render(Options{})
	require.NotEmpty(t, out.Lines)
	var found bool
	for _, l := range out.Lines {
		if l.Text() == "HTTP 500" {
			found = true
			assert.Equal(t, StyleError, l.Style)
		}
	}
	assert.True(t, found)
	require.Len(t, out.Actions, 1)
	assert.Equal(t, route.Home, out.Actions[0].Action.Target.Page)
}

func TestRenderedPlainNumbersActions(t *testing.T) {
	doc, err := Parse(`<h2>Results</h2>
		<div class="pagination"><button class="page-btn" data-action="navigate" data-fragment="#search?page=1&amp;q=x">← Prev</button><span class="page-info">Page 2 of 3</span><button class="page-btn" data-action="navigate" data-fragment="#search?page=3&amp;q=x">Next →</button></div>`)
	require.NoError(t, err)

	plain := doc.Render(Options{}).Plain()
	assert.Contains(t, plain, "Results\n")
	assert.Contains(t, plain, "[1]← Prev")
	assert.Contains(t, plain, "[2]Next →")
}

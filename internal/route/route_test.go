package route

import (
	"reflect"
	"testing"
)

func TestEncode_EmptyParams(t *testing.T) {
	if got := Encode(Home, nil); got != "#home" {
		t.Fatalf("Encode(home, nil) = %q, want #home", got)
	}
	if got := Encode(Discover, Params{}); got != "#discover" {
		t.Fatalf("Encode(discover, {}) = %q, want #discover", got)
	}
}

func TestEncode_SortedAndEscaped(t *testing.T) {
	got := Encode(Search, Params{"q": "a&b c", "page": "2", "type": ""})
	want := "#search?page=2&q=a%26b+c&type="
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		page   Page
		params Params
	}{
		{"no params", Home, Params{}},
		{"title", Title, Params{"id": "603", "type": "movie"}},
		{"markup chars", Search, Params{"q": "<script>alert(1)</script>", "page": "1"}},
		{"reserved chars", Discover, Params{"genre": "a=b&c", "year": "", "sort": "#x?y"}},
		{"unicode", Person, Params{"id": "nm0000206", "name": "Keanu Reeves ☃"}},
		{"plus and percent", Search, Params{"q": "1+1=2 100%"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Decode(Encode(tc.page, tc.params))
			if r.Page != tc.page {
				t.Fatalf("page = %q, want %q", r.Page, tc.page)
			}
			if !reflect.DeepEqual(r.Params, tc.params) {
				t.Fatalf("params = %#v, want %#v", r.Params, tc.params)
			}
		})
	}
}

func TestDecode_DefaultsToHome(t *testing.T) {
	for _, frag := range []string{"", "#", "  ", "#?x=1", "#nowhere", "nowhere?id=1"} {
		if got := Decode(frag).Page; got != Home {
			t.Fatalf("Decode(%q).Page = %q, want home", frag, got)
		}
	}
}

func TestDecode_NoQueryYieldsEmptyParams(t *testing.T) {
	r := Decode("#title")
	if r.Page != Title {
		t.Fatalf("page = %q, want title", r.Page)
	}
	if len(r.Params) != 0 {
		t.Fatalf("params = %#v, want empty", r.Params)
	}
}

func TestDecode_LastOccurrenceWins(t *testing.T) {
	r := Decode("#search?q=first&page=1&q=second")
	if r.Params["q"] != "second" {
		t.Fatalf("q = %q, want second", r.Params["q"])
	}
}

func TestDecode_AcceptsMissingHash(t *testing.T) {
	r := Decode("person?id=nm1")
	if r.Page != Person || r.Params["id"] != "nm1" {
		t.Fatalf("Decode = %#v, want person id=nm1", r)
	}
}

func TestDecode_KeepsPairsAroundBadEscapes(t *testing.T) {
	r := Decode("#search?q=ok&bad=%zz&page=3")
	if r.Params["q"] != "ok" || r.Params["page"] != "3" {
		t.Fatalf("params = %#v, want q and page kept", r.Params)
	}
	if _, ok := r.Params["bad"]; ok {
		t.Fatalf("params = %#v, want bad pair dropped", r.Params)
	}
}

func TestRoute_PageNumber(t *testing.T) {
	cases := map[string]int{
		"#search":          1,
		"#search?page=":    1,
		"#search?page=abc": 1,
		"#search?page=0":   1,
		"#search?page=-4":  1,
		"#search?page=7":   7,
	}
	for frag, want := range cases {
		if got := Decode(frag).PageNumber(); got != want {
			t.Fatalf("PageNumber(%q) = %d, want %d", frag, got, want)
		}
	}
}

func TestParams_WithDoesNotMutate(t *testing.T) {
	p := Params{"page": "1"}
	q := p.With("page", "2")
	if p["page"] != "1" || q["page"] != "2" {
		t.Fatalf("With mutated original: p=%v q=%v", p, q)
	}
}

func TestAction_AttrsRoundTrip(t *testing.T) {
	actions := []Action{
		Navigate(Title, Params{"id": "tt0133093", "type": "movie"}),
		{Kind: ActionBack},
		{Kind: ActionHero, Index: 3},
		{Kind: ActionSeason, Index: 2, Target: New(Series, Params{"id": "1399"})},
	}
	for _, a := range actions {
		attrs := a.Attrs()
		got, err := ParseAction(func(name string) (string, bool) {
			v, ok := attrs[name]
			return v, ok
		})
		if err != nil {
			t.Fatalf("ParseAction(%v) returned error: %v", attrs, err)
		}
		if !reflect.DeepEqual(got, a) {
			t.Fatalf("ParseAction = %#v, want %#v", got, a)
		}
	}
}

func TestParseAction_Errors(t *testing.T) {
	cases := []map[string]string{
		{},
		{AttrAction: "explode"},
		{AttrAction: "navigate"},
		{AttrAction: "hero", AttrIndex: "x"},
	}
	for _, attrs := range cases {
		_, err := ParseAction(func(name string) (string, bool) {
			v, ok := attrs[name]
			return v, ok
		})
		if err == nil {
			t.Fatalf("ParseAction(%v) returned nil error", attrs)
		}
	}
}

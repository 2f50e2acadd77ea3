package fetch

import (
	"testing"
	"time"

	"github.com/abelbrown/newsdesk/internal/feeds"
)

var (
	normNow = time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	normSrc = feeds.Source{Name: "Wire", Kind: feeds.KindFeed, Reliability: 0.9}
)

func emptyLocale() *LocaleMatcher {
	return NewLocaleMatcher(nil)
}

func TestNormalizeComplete(t *testing.T) {
	pub := normNow.Add(-2 * time.Hour)
	raw := RawItem{
		Title:       "  A headline  ",
		Link:        "http://example.com/a",
		Description: "Summary text",
		Published:   &pub,
	}

	a := Normalize(raw, normSrc, emptyLocale(), normNow)
	if a == nil {
		t.Fatal("expected article")
	}
	if a.Title != "A headline" {
		t.Errorf("title not trimmed: %q", a.Title)
	}
	if a.URL != "http://example.com/a" {
		t.Errorf("unexpected URL: %s", a.URL)
	}
	if a.Summary != "Summary text" {
		t.Errorf("unexpected summary: %s", a.Summary)
	}
	if !a.Published.Equal(pub) {
		t.Errorf("unexpected published: %v", a.Published)
	}
	if a.SourceName != "Wire" || a.Reliability != 0.9 {
		t.Error("source fields not carried over")
	}
	if a.Origin != feeds.KindFeed {
		t.Errorf("unexpected origin: %s", a.Origin)
	}
}

func TestNormalizeDropsMissingEssentials(t *testing.T) {
	tests := []struct {
		name string
		raw  RawItem
	}{
		{"no title", RawItem{Link: "http://example.com/a"}},
		{"blank title", RawItem{Title: "   ", Link: "http://example.com/a"}},
		{"no link", RawItem{Title: "Headline"}},
		{"empty", RawItem{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if a := Normalize(tc.raw, normSrc, emptyLocale(), normNow); a != nil {
				t.Errorf("expected nil, got %+v", a)
			}
		})
	}
}

func TestNormalizeLinkFallback(t *testing.T) {
	raw := RawItem{Title: "Headline", URL: "http://example.com/via-url"}

	a := Normalize(raw, normSrc, emptyLocale(), normNow)
	if a == nil || a.URL != "http://example.com/via-url" {
		t.Errorf("expected url field fallback, got %+v", a)
	}
}

func TestNormalizeSummaryFallbackOrder(t *testing.T) {
	tests := []struct {
		name string
		raw  RawItem
		want string
	}{
		{"description wins", RawItem{Description: "d", Summary: "s", Content: "c"}, "d"},
		{"summary next", RawItem{Summary: "s", Content: "c"}, "s"},
		{"content last", RawItem{Content: "c"}, "c"},
		{"none", RawItem{}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.raw.Title = "Headline"
			tc.raw.Link = "http://example.com/a"
			a := Normalize(tc.raw, normSrc, emptyLocale(), normNow)
			if a.Summary != tc.want {
				t.Errorf("summary = %q, want %q", a.Summary, tc.want)
			}
		})
	}
}

func TestNormalizeTimestampFallbackOrder(t *testing.T) {
	t1 := normNow.Add(-1 * time.Hour)
	t2 := normNow.Add(-2 * time.Hour)
	t3 := normNow.Add(-3 * time.Hour)

	tests := []struct {
		name string
		raw  RawItem
		want time.Time
	}{
		{"publishedAt wins", RawItem{PublishedAt: &t1, Published: &t2, Updated: &t3}, t1},
		{"published next", RawItem{Published: &t2, Updated: &t3}, t2},
		{"updated next", RawItem{Updated: &t3}, t3},
		{"now as last resort", RawItem{}, normNow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.raw.Title = "Headline"
			tc.raw.Link = "http://example.com/a"
			a := Normalize(tc.raw, normSrc, emptyLocale(), normNow)
			if !a.Published.Equal(tc.want) {
				t.Errorf("published = %v, want %v", a.Published, tc.want)
			}
		})
	}
}

func TestNormalizeLocaleRelevance(t *testing.T) {
	locale := NewLocaleMatcher([]string{"india", "mumbai"})

	tests := []struct {
		name string
		raw  RawItem
		src  feeds.Source
		want bool
	}{
		{
			"keyword in title",
			RawItem{Title: "Mumbai metro expands", Link: "http://e/1"},
			normSrc, true,
		},
		{
			"keyword in summary",
			RawItem{Title: "Transit news", Link: "http://e/2", Description: "New line opens in India"},
			normSrc, true,
		},
		{
			"case insensitive",
			RawItem{Title: "INDIA wins series", Link: "http://e/3"},
			normSrc, true,
		},
		{
			"keyword in source name",
			RawItem{Title: "Transit news", Link: "http://e/4"},
			feeds.Source{Name: "India Daily"}, true,
		},
		{
			"locale source marks everything",
			RawItem{Title: "Transit news", Link: "http://e/5"},
			feeds.Source{Name: "Wire", Locale: true}, true,
		},
		{
			"no match",
			RawItem{Title: "Transit news", Link: "http://e/6"},
			normSrc, false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Normalize(tc.raw, tc.src, locale, normNow)
			if a.LocaleRelevant != tc.want {
				t.Errorf("LocaleRelevant = %v, want %v", a.LocaleRelevant, tc.want)
			}
		})
	}
}

func TestLocaleMatcherNilSafe(t *testing.T) {
	var m *LocaleMatcher
	if m.Match("anything about india") {
		t.Error("nil matcher should match nothing")
	}
}

package dedup

import (
	"testing"

	"github.com/abelbrown/newsdesk/internal/feeds"
)

func art(title, url string) feeds.Article {
	return feeds.Article{Title: title, URL: url}
}

func TestFilterExactURLDuplicate(t *testing.T) {
	d := New()
	in := []feeds.Article{
		art("First story", "http://example.com/1"),
		art("Completely different headline", "http://example.com/1"),
		art("Second story", "http://example.com/2"),
	}

	out := d.Filter(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(out))
	}
	if out[0].Title != "First story" || out[1].Title != "Second story" {
		t.Errorf("unexpected survivors: %v", out)
	}
}

func TestFilterNearDuplicateTitles(t *testing.T) {
	d := New()
	in := []feeds.Article{
		art("Govt announces new policy", "http://a.example/1"),
		art("Govt announces new policy!!", "http://b.example/2"),
	}

	out := d.Filter(in)
	if len(out) != 1 {
		t.Fatalf("expected near-duplicate collapsed, got %d survivors", len(out))
	}
	// Earlier article wins.
	if out[0].URL != "http://a.example/1" {
		t.Errorf("expected first occurrence kept, got %s", out[0].URL)
	}
}

func TestFilterDistinctTitlesSurvive(t *testing.T) {
	d := New()
	in := []feeds.Article{
		art("Markets rally on strong earnings", "http://a.example/1"),
		art("Monsoon arrives early in the south", "http://b.example/2"),
		art("New telescope spots distant galaxy", "http://c.example/3"),
	}

	out := d.Filter(in)
	if len(out) != 3 {
		t.Errorf("expected all distinct articles kept, got %d", len(out))
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	d := New()
	in := []feeds.Article{
		art("Zebra story", "http://x.example/z"),
		art("Apple story", "http://x.example/a"),
		art("Mango story", "http://x.example/m"),
	}

	out := d.Filter(in)
	for i := range out {
		if out[i].URL != in[i].URL {
			t.Fatalf("order changed at %d: got %s", i, out[i].URL)
		}
	}
}

func TestFilterIdempotent(t *testing.T) {
	d := New()
	in := []feeds.Article{
		art("Govt announces new policy", "http://a.example/1"),
		art("Govt announces new policy!!", "http://b.example/2"),
		art("Cricket final tonight", "http://c.example/3"),
	}

	once := d.Filter(in)
	twice := d.Filter(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed batch: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].URL != twice[i].URL {
			t.Errorf("second pass reordered index %d", i)
		}
	}
}

func TestFilterEmptyTitlesNeverCollapse(t *testing.T) {
	d := New()
	in := []feeds.Article{
		art("", "http://a.example/1"),
		art("", "http://b.example/2"),
	}

	out := d.Filter(in)
	if len(out) != 2 {
		t.Errorf("empty titles should not be treated as similar, got %d survivors", len(out))
	}
}

func TestTitleWordSet(t *testing.T) {
	a := titleWordSet("Govt announces NEW policy!!")
	b := titleWordSet("govt announces new policy")
	if len(a) != len(b) {
		t.Fatalf("normalization mismatch: %v vs %v", a, b)
	}
	for w := range a {
		if !b[w] {
			t.Errorf("word %q missing after normalization", w)
		}
	}
}

func TestJaccardThresholdBoundary(t *testing.T) {
	// Similarity must be strictly greater than the threshold; exactly
	// 0.8 (4 shared of 5 union) keeps both articles.
	d := New()
	in := []feeds.Article{
		art("alpha beta gamma delta", "http://a.example/1"),
		art("alpha beta gamma delta epsilon", "http://b.example/2"),
	}

	out := d.Filter(in)
	if len(out) != 2 {
		t.Errorf("similarity equal to threshold should keep both, got %d", len(out))
	}
}

// Package dedup removes duplicate articles from a batch. An article is
// a duplicate when its URL was already seen or when its normalized
// title is near-identical to an earlier survivor.
package dedup

import (
	"strings"

	"github.com/abelbrown/newsdesk/internal/feeds"
)

// DefaultThreshold is the Jaccard similarity above which two titles
// count as the same story.
const DefaultThreshold = 0.8

// Deduper drops repeated articles while preserving input order.
// Running it over an already-deduplicated batch is a no-op.
type Deduper struct {
	Threshold float64
}

// New returns a Deduper with the default similarity threshold.
func New() *Deduper {
	return &Deduper{Threshold: DefaultThreshold}
}

// Filter returns the surviving articles in input order. Comparison is
// pairwise against earlier survivors, so cost grows quadratically with
// batch size; batches here are a few hundred items at most.
func (d *Deduper) Filter(articles []feeds.Article) []feeds.Article {
	threshold := d.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	seenURLs := make(map[string]bool, len(articles))
	keptSets := make([]map[string]bool, 0, len(articles))
	kept := make([]feeds.Article, 0, len(articles))

	for _, a := range articles {
		url := strings.TrimSpace(a.URL)
		if url != "" && seenURLs[url] {
			continue
		}

		words := titleWordSet(a.Title)
		dup := false
		for _, prev := range keptSets {
			if jaccard(words, prev) > threshold {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		if url != "" {
			seenURLs[url] = true
		}
		keptSets = append(keptSets, words)
		kept = append(kept, a)
	}
	return kept
}

// titleWordSet lowercases, strips punctuation, and splits on
// whitespace, so "Govt announces new policy!!" and "govt announces
// new policy" produce the same set.
func titleWordSet(title string) map[string]bool {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n':
			b.WriteRune(' ')
		default:
			// punctuation dropped
		}
	}
	set := make(map[string]bool)
	for _, w := range strings.Fields(b.String()) {
		set[w] = true
	}
	return set
}

// jaccard computes |a∩b| / |a∪b|. Two empty sets are not similar, so
// titleless articles never collapse into each other.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

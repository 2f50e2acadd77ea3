// Package ranking orders articles by an additive relevance score.
// Scoring is deliberately transparent: each signal contributes a fixed
// bonus, so a score can always be explained by listing its parts.
package ranking

import (
	"sort"
	"time"
	"unicode/utf8"

	"github.com/abelbrown/newsdesk/internal/feeds"
)

const (
	reliabilityWeight = 10

	recencyFresh  = 15 // under 6 hours
	recencyDay    = 10 // under 24 hours
	recencyRecent = 5  // under 72 hours

	localeBonus = 20

	titleLenBonus = 5
	titleLenMin   = 30
	titleLenMax   = 100

	summaryBonus = 5
)

// Score computes the relevance score for a single article at the given
// reference time. The locale bonus applies only when the caller asked
// for locale focus.
func Score(a feeds.Article, focusLocale bool, now time.Time) float64 {
	score := a.Reliability * reliabilityWeight

	if !a.Published.IsZero() {
		age := now.Sub(a.Published)
		switch {
		case age < 6*time.Hour:
			score += recencyFresh
		case age < 24*time.Hour:
			score += recencyDay
		case age < 72*time.Hour:
			score += recencyRecent
		}
	}

	if focusLocale && a.LocaleRelevant {
		score += localeBonus
	}

	// Characters, not bytes: non-ASCII headlines are common here.
	if n := utf8.RuneCountInString(a.Title); n >= titleLenMin && n <= titleLenMax {
		score += titleLenBonus
	}

	if a.Summary != "" {
		score += summaryBonus
	}

	return score
}

// Rank scores every article and sorts descending. The sort is stable,
// so equal scores keep their pre-sort order and repeated calls on the
// same input produce the same output.
func Rank(articles []feeds.Article, focusLocale bool, now time.Time) []feeds.Article {
	for i := range articles {
		articles[i].Score = Score(articles[i], focusLocale, now)
	}
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Score > articles[j].Score
	})
	return articles
}

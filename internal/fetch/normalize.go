package fetch

import (
	"strings"
	"time"

	"github.com/abelbrown/newsdesk/internal/feeds"
)

// LocaleMatcher decides whether text is relevant to the configured
// locale by scanning for any of its keywords, case-insensitively.
type LocaleMatcher struct {
	keywords []string
}

// NewLocaleMatcher builds a matcher over the given keyword list.
// Keywords are matched as substrings, so multi-word entries work.
func NewLocaleMatcher(keywords []string) *LocaleMatcher {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &LocaleMatcher{keywords: lowered}
}

// Match reports whether any keyword appears in the text.
func (m *LocaleMatcher) Match(text string) bool {
	if m == nil || len(m.keywords) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range m.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Normalize converts a raw wire item into an Article, applying the
// field fallback order and dropping items that lack the essentials.
// Returns nil for items with no usable title or link.
func Normalize(raw RawItem, src feeds.Source, locale *LocaleMatcher, now time.Time) *feeds.Article {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return nil
	}

	link := strings.TrimSpace(raw.Link)
	if link == "" {
		link = strings.TrimSpace(raw.URL)
	}
	if link == "" {
		return nil
	}

	summary := strings.TrimSpace(raw.Description)
	if summary == "" {
		summary = strings.TrimSpace(raw.Summary)
	}
	if summary == "" {
		summary = strings.TrimSpace(raw.Content)
	}

	published := now
	switch {
	case raw.PublishedAt != nil:
		published = *raw.PublishedAt
	case raw.Published != nil:
		published = *raw.Published
	case raw.Updated != nil:
		published = *raw.Updated
	}

	// A locale-focused source marks everything it publishes; otherwise
	// the keyword scan over title, summary, and source name decides.
	localeRelevant := src.Locale ||
		locale.Match(title) || locale.Match(summary) || locale.Match(src.Name)

	return &feeds.Article{
		Title:          title,
		URL:            link,
		Summary:        summary,
		Published:      published,
		SourceName:     src.Name,
		Reliability:    src.Reliability,
		LocaleRelevant: localeRelevant,
		Origin:         src.Kind,
	}
}

// DefaultLocaleKeywords is the built-in locale vocabulary, tuned for
// Indian coverage. Override via configuration.
func DefaultLocaleKeywords() []string {
	return []string{
		"india", "indian", "delhi", "mumbai", "bangalore", "bengaluru",
		"chennai", "kolkata", "hyderabad", "pune", "modi", "lok sabha",
		"rajya sabha", "rupee", "bollywood", "isro", "ipl", "kerala",
		"gujarat", "maharashtra", "karnataka", "tamil nadu",
	}
}

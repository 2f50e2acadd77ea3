package feeds

import "time"

// Kind identifies how a source is fetched, or where an article came from.
type Kind string

const (
	KindAPI   Kind = "api"   // REST news API returning JSON
	KindFeed  Kind = "feed"  // RSS/Atom syndication feed
	KindStore Kind = "store" // previously-saved article from the local store
)

// Source describes one external origin of news items. The catalog is
// static; the only runtime state (quarantine) lives in the Registry.
type Source struct {
	Name        string
	URL         string
	Kind        Kind
	Category    string
	Reliability float64 // 0.0-1.0 editorial trust weight, feeds the ranker
	Locale      bool    // source publishes locale-focused coverage
}

// Article is the unified record every raw payload normalizes into.
// Topic and Score are filled in by later pipeline stages.
type Article struct {
	Title          string
	URL            string // canonical link, the dedup key
	Summary        string
	Published      time.Time
	SourceName     string
	Reliability    float64
	Topic          string
	LocaleRelevant bool
	Origin         Kind
	Score          float64
}

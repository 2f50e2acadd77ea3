// Package news is the aggregation facade: one call runs the full
// fetch, normalize, dedupe, classify, filter, rank pipeline and
// returns a paginated feed, with results cached per query.
package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/abelbrown/newsdesk/internal/cache"
	"github.com/abelbrown/newsdesk/internal/classify"
	"github.com/abelbrown/newsdesk/internal/config"
	"github.com/abelbrown/newsdesk/internal/dedup"
	"github.com/abelbrown/newsdesk/internal/feeds"
	"github.com/abelbrown/newsdesk/internal/fetch"
	"github.com/abelbrown/newsdesk/internal/logging"
	"github.com/abelbrown/newsdesk/internal/ranking"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultLimit is the page size when a query does not specify one.
const DefaultLimit = 20

// Query selects and pages a feed. The zero value means "everything,
// first page".
type Query struct {
	Topic       string `json:"topic,omitempty"`
	Source      string `json:"source,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Offset      int    `json:"offset,omitempty"`
	FocusLocale bool   `json:"focus_locale,omitempty"`
}

// Key returns the cache key for this query. Topic and source are
// folded so "Tech" and "tech" share an entry.
func (q Query) Key() string {
	return fmt.Sprintf("feed|t=%s|s=%s|l=%d|o=%d|f=%t",
		strings.ToLower(q.Topic), strings.ToLower(q.Source), q.limit(), q.Offset, q.FocusLocale)
}

func (q Query) limit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

// Feed is one page of ranked articles plus the total match count
// before pagination.
type Feed struct {
	Articles []feeds.Article `json:"articles"`
	Total    int             `json:"total"`
}

// Store is the persistence collaborator the facade blends history
// from. Satisfied by *store.Store.
type Store interface {
	QueryArticles(topic, source string, limit int) ([]feeds.Article, error)
	SaveArticles(articles []feeds.Article) (int, error)
}

// Service ties the pipeline stages together.
type Service struct {
	registry   *feeds.Registry
	health     *fetch.Health
	orch       *fetch.Orchestrator
	deduper    *dedup.Deduper
	classifier *classify.Classifier
	cache      *cache.Cache
	store      Store

	// sourceCategory maps source name to catalog category, for the
	// category arm of topic filtering.
	sourceCategory map[string]string

	// topicKeywords backs the keyword arm of topic filtering.
	topicKeywords map[string][]string
}

// New assembles a service from configuration. The store may be nil;
// the facade then serves live fetches only.
func New(cfg *config.Config, st Store) *Service {
	catalog := feeds.DefaultSources()
	catalog = append(catalog, feeds.APISources(cfg.NewsAPIKey, cfg.GNewsAPIKey)...)
	registry := feeds.NewRegistry(catalog)

	keywords := cfg.LocaleKeywords
	if len(keywords) == 0 {
		keywords = fetch.DefaultLocaleKeywords()
	}
	locale := fetch.NewLocaleMatcher(keywords)

	health := fetch.NewHealth()
	orch := fetch.NewOrchestrator(registry, health, locale, fetch.Options{
		Timeout:        time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		Concurrency:    cfg.MaxConcurrentFetches,
		PerSourceLimit: cfg.PerSourceLimit,
	})

	classifier := classify.NewWithTopics(classify.DefaultTopics(), cfg.MinTopicScore)

	return build(registry, health, orch,
		&dedup.Deduper{Threshold: cfg.SimilarityThreshold},
		classifier,
		cache.New(time.Duration(cfg.CacheTTLSeconds)*time.Second),
		st)
}

func build(registry *feeds.Registry, health *fetch.Health, orch *fetch.Orchestrator,
	deduper *dedup.Deduper, classifier *classify.Classifier, c *cache.Cache, st Store) *Service {

	categories := make(map[string]string)
	for _, src := range registry.All() {
		categories[strings.ToLower(src.Name)] = src.Category
	}
	keywords := make(map[string][]string)
	for _, topic := range classifier.Topics() {
		keywords[topic.Name] = topic.Keywords
	}

	return &Service{
		registry:       registry,
		health:         health,
		orch:           orch,
		deduper:        deduper,
		classifier:     classifier,
		cache:          c,
		store:          st,
		sourceCategory: categories,
		topicKeywords:  keywords,
	}
}

// Feed returns one page of the aggregated feed for the query. Results
// come from the cache when a fresh snapshot exists; otherwise the full
// pipeline runs once, even under concurrent identical queries. An
// empty feed is a valid result, not an error.
func (s *Service) Feed(ctx context.Context, q Query) (*Feed, error) {
	data, hit, err := s.cache.GetOrCompute(q.Key(), func() ([]byte, error) {
		feed := s.buildFeed(ctx, q)
		return json.Marshal(feed)
	})
	if err != nil {
		return nil, fmt.Errorf("news: build feed: %w", err)
	}
	if hit {
		logging.Debug("feed served from cache", "key", q.Key())
	}

	var feed Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("news: decode cached feed: %w", err)
	}
	if feed.Articles == nil {
		feed.Articles = []feeds.Article{}
	}
	return &feed, nil
}

func (s *Service) buildFeed(ctx context.Context, q Query) *Feed {
	articles := s.orch.FetchAll(ctx, s.fetchCategory(q.Topic))
	logging.Info("fetch cycle complete", "live", len(articles))

	// Classify before persisting so stored rows carry their topic.
	for i := range articles {
		articles[i].Topic = s.classifier.Classify(articles[i].Title, articles[i].Summary)
	}

	if s.store != nil {
		if n, err := s.store.SaveArticles(articles); err != nil {
			logging.Warn("saving articles failed", "error", err)
		} else if n > 0 {
			logging.Debug("articles saved", "new", n)
		}

		// Blend recent history in behind the live batch; dedup keeps
		// the live copy when both have the same URL.
		stored, err := s.store.QueryArticles("", "", 200)
		if err != nil {
			logging.Warn("loading stored articles failed", "error", err)
		} else {
			articles = append(articles, stored...)
		}
	}

	articles = s.deduper.Filter(articles)
	articles = s.filterByTopic(articles, q.Topic)
	articles = filterBySource(articles, q.Source)
	articles = ranking.Rank(articles, q.FocusLocale, time.Now())

	total := len(articles)
	page := paginate(articles, q.Offset, q.limit())
	return &Feed{Articles: page, Total: total}
}

// fetchCategory narrows a fetch cycle to the topic's catalog category
// when at least one source carries it; otherwise the whole catalog is
// fetched and filtering happens downstream.
func (s *Service) fetchCategory(topic string) string {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" || topic == "all" || topic == classify.General {
		return ""
	}
	for _, category := range s.sourceCategory {
		if category == topic {
			return topic
		}
	}
	return ""
}

// filterByTopic keeps articles matching the topic by any of four
// signals: the classified label, the source's catalog category, the
// topic name itself appearing in the text, or at least two topic
// keywords appearing in the text. "general" is a passthrough, not a
// filter.
func (s *Service) filterByTopic(articles []feeds.Article, topic string) []feeds.Article {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" || topic == "all" || topic == classify.General {
		return articles
	}

	keywords := s.topicKeywords[topic]
	out := articles[:0]
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Summary)
		switch {
		case strings.ToLower(a.Topic) == topic:
			out = append(out, a)
		case s.sourceCategory[strings.ToLower(a.SourceName)] == topic:
			out = append(out, a)
		case strings.Contains(text, topic):
			out = append(out, a)
		case countKeywordHits(text, keywords) >= 2:
			// Enough topic vocabulary to relabel the article.
			a.Topic = topic
			out = append(out, a)
		}
	}
	return out
}

func filterBySource(articles []feeds.Article, source string) []feeds.Article {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		return articles
	}
	out := articles[:0]
	for _, a := range articles {
		if strings.ToLower(a.SourceName) == source {
			out = append(out, a)
		}
	}
	return out
}

func countKeywordHits(text string, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}

func paginate(articles []feeds.Article, offset, limit int) []feeds.Article {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(articles) {
		return []feeds.Article{}
	}
	end := offset + limit
	if end > len(articles) {
		end = len(articles)
	}
	return articles[offset:end]
}

// PerformanceStats reports fetch health plus the quarantine list.
type PerformanceStats struct {
	Fetch       fetch.Stats
	Quarantined []string
}

// PerformanceStats returns the current health picture.
func (s *Service) PerformanceStats() PerformanceStats {
	return PerformanceStats{
		Fetch:       s.health.Stats(),
		Quarantined: s.registry.Quarantined(),
	}
}

// ResetQuarantine clears the quarantine set and health history and
// invalidates cached feeds, so recovered sources show up immediately.
// Returns how many sources became eligible again.
func (s *Service) ResetQuarantine() int {
	n := s.registry.ResetQuarantine()
	s.health.Reset()
	s.cache.Purge()
	logging.Info("quarantine reset", "restored", n)
	return n
}

// Sources exposes the catalog for display.
func (s *Service) Sources() []feeds.Source {
	return s.registry.All()
}

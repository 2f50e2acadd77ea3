package news

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abelbrown/newsdesk/internal/cache"
	"github.com/abelbrown/newsdesk/internal/classify"
	"github.com/abelbrown/newsdesk/internal/dedup"
	"github.com/abelbrown/newsdesk/internal/feeds"
	"github.com/abelbrown/newsdesk/internal/fetch"
)

type fakeFetcher struct {
	name  string
	items []fetch.RawItem
	err   error
	calls *atomic.Int32
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) Fetch(ctx context.Context) ([]fetch.RawItem, error) {
	if f.calls != nil {
		f.calls.Add(1)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeStore struct {
	saved  []feeds.Article
	stored []feeds.Article
}

func (s *fakeStore) SaveArticles(articles []feeds.Article) (int, error) {
	s.saved = append(s.saved, articles...)
	return len(articles), nil
}

func (s *fakeStore) QueryArticles(topic, source string, limit int) ([]feeds.Article, error) {
	return s.stored, nil
}

// newTestService wires a service over fake fetchers with a short TTL
// cache and no persistence unless st is given.
func newTestService(sources []feeds.Source, fetchers map[string]*fakeFetcher, st Store) (*Service, *feeds.Registry) {
	registry := feeds.NewRegistry(sources)
	health := fetch.NewHealth()
	locale := fetch.NewLocaleMatcher([]string{"india", "mumbai"})
	orch := fetch.NewOrchestrator(registry, health, locale, fetch.Options{Timeout: time.Second})
	orch.SetFetcherFactory(func(src feeds.Source) fetch.Fetcher {
		return fetchers[src.Name]
	})

	svc := build(registry, health, orch, dedup.New(), classify.New(), cache.New(time.Minute), st)
	return svc, registry
}

func techItems() []fetch.RawItem {
	return []fetch.RawItem{
		{Title: "New AI chip boosts smartphone performance", Link: "http://t/1", Description: "Faster silicon for handsets"},
		{Title: "Startup raises funding for robot software", Link: "http://t/2", Description: "Automation push continues"},
	}
}

func TestFeedEndToEnd(t *testing.T) {
	sources := []feeds.Source{{Name: "TechWire", Kind: feeds.KindFeed, Category: "technology", Reliability: 0.9}}
	fetchers := map[string]*fakeFetcher{
		"TechWire": {name: "TechWire", items: techItems()},
	}
	svc, _ := newTestService(sources, fetchers, nil)

	feed, err := svc.Feed(context.Background(), Query{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if feed.Total != 2 || len(feed.Articles) != 2 {
		t.Fatalf("expected 2 articles, got total=%d page=%d", feed.Total, len(feed.Articles))
	}
	if feed.Articles[0].Topic != "technology" {
		t.Errorf("expected classified topic, got %q", feed.Articles[0].Topic)
	}
	if feed.Articles[0].Score == 0 {
		t.Error("articles should be scored")
	}
}

func TestFeedCacheHitAvoidsRefetch(t *testing.T) {
	calls := &atomic.Int32{}
	sources := []feeds.Source{{Name: "TechWire", Kind: feeds.KindFeed, Reliability: 0.9}}
	fetchers := map[string]*fakeFetcher{
		"TechWire": {name: "TechWire", items: techItems(), calls: calls},
	}
	svc, _ := newTestService(sources, fetchers, nil)

	svc.Feed(context.Background(), Query{Topic: "technology"})
	svc.Feed(context.Background(), Query{Topic: "technology"})
	if got := calls.Load(); got != 1 {
		t.Errorf("identical query should hit cache, fetched %d times", got)
	}

	// A different query misses and fetches again.
	svc.Feed(context.Background(), Query{Topic: "sports"})
	if got := calls.Load(); got != 2 {
		t.Errorf("distinct query should refetch, got %d fetches", got)
	}
}

func TestFeedEmptyWhenAllQuarantined(t *testing.T) {
	sources := []feeds.Source{{Name: "Down", Kind: feeds.KindFeed}}
	fetchers := map[string]*fakeFetcher{
		"Down": {name: "Down", err: errors.New("unreachable")},
	}
	svc, reg := newTestService(sources, fetchers, nil)

	feed, err := svc.Feed(context.Background(), Query{})
	if err != nil {
		t.Fatalf("expected empty feed, not error: %v", err)
	}
	if feed.Total != 0 || len(feed.Articles) != 0 {
		t.Errorf("expected empty feed, got %+v", feed)
	}
	if !reg.IsQuarantined("Down") {
		t.Error("failing source should be quarantined")
	}
}

func TestFeedTopicFilterArms(t *testing.T) {
	sources := []feeds.Source{
		{Name: "MorningWire", Kind: feeds.KindFeed, Category: "general", Reliability: 0.9},
		{Name: "GeneralDaily", Kind: feeds.KindFeed, Category: "general", Reliability: 0.8},
	}
	fetchers := map[string]*fakeFetcher{
		// Classifies as technology.
		"MorningWire": {name: "MorningWire", items: []fetch.RawItem{
			{Title: "New AI chip boosts smartphone performance", Link: "http://t/1"},
		}},
		"GeneralDaily": {name: "GeneralDaily", items: []fetch.RawItem{
			// Classifies as sports, but carries two tech keywords, so a
			// technology query still keeps it (and relabels it).
			{Title: "Cricket team storms into the championship match", Link: "http://g/1", Description: "Fans followed the score on internet streams and smartphone screens"},
			// Nothing tech at all.
			{Title: "Monsoon update for farmers", Link: "http://g/2", Description: "Rainfall ahead"},
		}},
	}
	svc, _ := newTestService(sources, fetchers, nil)

	feed, err := svc.Feed(context.Background(), Query{Topic: "technology", Limit: 10})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}

	byURL := make(map[string]feeds.Article)
	for _, a := range feed.Articles {
		byURL[a.URL] = a
	}
	if _, ok := byURL["http://t/1"]; !ok {
		t.Error("classified technology article missing")
	}
	kept, ok := byURL["http://g/1"]
	if !ok {
		t.Error("two-keyword match should pass the topic filter")
	} else if kept.Topic != "technology" {
		t.Errorf("keyword match should relabel the article, got topic %q", kept.Topic)
	}
	if _, ok := byURL["http://g/2"]; ok {
		t.Error("unrelated article should be filtered out")
	}
}

func TestFeedGeneralTopicIsPassthrough(t *testing.T) {
	sources := []feeds.Source{{Name: "Wire", Kind: feeds.KindFeed, Reliability: 0.9}}
	fetchers := map[string]*fakeFetcher{
		"Wire": {name: "Wire", items: []fetch.RawItem{
			{Title: "New AI chip boosts smartphone performance", Link: "http://w/1"},
			{Title: "Quiet afternoon in the old town square", Link: "http://w/2"},
		}},
	}
	svc, _ := newTestService(sources, fetchers, nil)

	feed, err := svc.Feed(context.Background(), Query{Topic: "general"})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if feed.Total != 2 {
		t.Errorf("general should pass every article through, got %d of 2", feed.Total)
	}
}

func TestFeedTopicNameInTextPasses(t *testing.T) {
	svc, _ := newTestService(nil, nil, nil)

	articles := []feeds.Article{
		// Not classified health, no health category, only one health
		// keyword, but the topic name itself is in the title.
		{Title: "A note about health matters", URL: "http://h/1", Topic: "general", SourceName: "Wire"},
		{Title: "Completely unrelated item", URL: "http://h/2", Topic: "general", SourceName: "Wire"},
	}
	out := svc.filterByTopic(articles, "health")
	if len(out) != 1 || out[0].URL != "http://h/1" {
		t.Errorf("topic name in text should pass the filter, got %+v", out)
	}
}

func TestFeedTopicCategoryNarrowsFetch(t *testing.T) {
	techCalls := &atomic.Int32{}
	sportCalls := &atomic.Int32{}
	sources := []feeds.Source{
		{Name: "TechWire", Kind: feeds.KindFeed, Category: "technology", Reliability: 0.9},
		{Name: "SportDaily", Kind: feeds.KindFeed, Category: "sports", Reliability: 0.8},
	}
	fetchers := map[string]*fakeFetcher{
		"TechWire":   {name: "TechWire", items: techItems(), calls: techCalls},
		"SportDaily": {name: "SportDaily", items: []fetch.RawItem{{Title: "Final tonight", Link: "http://s/1"}}, calls: sportCalls},
	}
	svc, _ := newTestService(sources, fetchers, nil)

	feed, err := svc.Feed(context.Background(), Query{Topic: "technology"})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if techCalls.Load() != 1 || sportCalls.Load() != 0 {
		t.Errorf("expected only the technology category fetched, got tech=%d sport=%d",
			techCalls.Load(), sportCalls.Load())
	}
	if feed.Total != 2 {
		t.Errorf("expected the tech articles, got %d", feed.Total)
	}

	// A topic no source carries as its category fetches everything.
	svc.Feed(context.Background(), Query{Topic: "science"})
	if sportCalls.Load() != 1 {
		t.Errorf("unmatched category should fetch the whole catalog, sport fetched %d times", sportCalls.Load())
	}
}

func TestFeedSourceFilter(t *testing.T) {
	sources := []feeds.Source{
		{Name: "Alpha", Kind: feeds.KindFeed},
		{Name: "Beta", Kind: feeds.KindFeed},
	}
	fetchers := map[string]*fakeFetcher{
		"Alpha": {name: "Alpha", items: []fetch.RawItem{{Title: "From alpha this morning", Link: "http://a/1"}}},
		"Beta":  {name: "Beta", items: []fetch.RawItem{{Title: "From beta this morning too", Link: "http://b/1"}}},
	}
	svc, _ := newTestService(sources, fetchers, nil)

	feed, err := svc.Feed(context.Background(), Query{Source: "alpha"})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if feed.Total != 1 || feed.Articles[0].SourceName != "Alpha" {
		t.Errorf("source filter failed: %+v", feed)
	}
}

func TestFeedPagination(t *testing.T) {
	items := make([]fetch.RawItem, 5)
	for i := range items {
		items[i] = fetch.RawItem{
			Title: "Completely distinct headline number " + string(rune('A'+i)),
			Link:  "http://p/" + string(rune('a'+i)),
		}
	}
	sources := []feeds.Source{{Name: "Pager", Kind: feeds.KindFeed, Reliability: 0.5}}
	fetchers := map[string]*fakeFetcher{"Pager": {name: "Pager", items: items}}
	svc, _ := newTestService(sources, fetchers, nil)

	page, err := svc.Feed(context.Background(), Query{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if page.Total != 5 {
		t.Errorf("total should ignore pagination, got %d", page.Total)
	}
	if len(page.Articles) != 2 {
		t.Errorf("expected page of 2, got %d", len(page.Articles))
	}

	// Offset past the end yields an empty page, same total.
	past, err := svc.Feed(context.Background(), Query{Limit: 2, Offset: 10})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if past.Total != 5 || len(past.Articles) != 0 {
		t.Errorf("expected empty page with total 5, got %+v", past)
	}
}

func TestFeedMergesStoredArticles(t *testing.T) {
	st := &fakeStore{stored: []feeds.Article{{
		Title: "Older story from the archive", URL: "http://s/1",
		SourceName: "Archive", Reliability: 0.7, Topic: "general",
		Published: time.Now().Add(-48 * time.Hour), Origin: feeds.KindStore,
	}}}
	sources := []feeds.Source{{Name: "Live", Kind: feeds.KindFeed, Reliability: 0.9}}
	fetchers := map[string]*fakeFetcher{
		"Live": {name: "Live", items: []fetch.RawItem{{Title: "Fresh off the wire today", Link: "http://l/1"}}},
	}
	svc, _ := newTestService(sources, fetchers, st)

	feed, err := svc.Feed(context.Background(), Query{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if feed.Total != 2 {
		t.Fatalf("expected live + stored, got %d", feed.Total)
	}
	if len(st.saved) != 1 || st.saved[0].URL != "http://l/1" {
		t.Errorf("live article should have been persisted: %+v", st.saved)
	}
	// Live article outranks the stale stored one.
	if feed.Articles[0].URL != "http://l/1" {
		t.Errorf("expected live article first, got %s", feed.Articles[0].URL)
	}
}

func TestFeedDedupesAcrossLiveAndStored(t *testing.T) {
	st := &fakeStore{stored: []feeds.Article{{
		Title: "Same story either way", URL: "http://dup/1",
		SourceName: "Archive", Origin: feeds.KindStore,
	}}}
	sources := []feeds.Source{{Name: "Live", Kind: feeds.KindFeed}}
	fetchers := map[string]*fakeFetcher{
		"Live": {name: "Live", items: []fetch.RawItem{{Title: "Same story either way", Link: "http://dup/1"}}},
	}
	svc, _ := newTestService(sources, fetchers, st)

	feed, err := svc.Feed(context.Background(), Query{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if feed.Total != 1 {
		t.Fatalf("expected duplicate collapsed, got %d", feed.Total)
	}
	// The live copy arrives first in the batch and wins.
	if feed.Articles[0].Origin == feeds.KindStore {
		t.Error("live copy should survive dedup")
	}
}

func TestResetQuarantineRestoresAndInvalidates(t *testing.T) {
	calls := &atomic.Int32{}
	fl := &fakeFetcher{name: "Flaky", err: errors.New("boom"), calls: calls}
	sources := []feeds.Source{{Name: "Flaky", Kind: feeds.KindFeed}}
	svc, reg := newTestService(sources, map[string]*fakeFetcher{"Flaky": fl}, nil)

	svc.Feed(context.Background(), Query{})
	if !reg.IsQuarantined("Flaky") {
		t.Fatal("source should be quarantined")
	}

	// Source recovers.
	fl.err = nil
	fl.items = techItems()

	if n := svc.ResetQuarantine(); n != 1 {
		t.Errorf("expected 1 source restored, got %d", n)
	}

	feed, err := svc.Feed(context.Background(), Query{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if feed.Total != 2 {
		t.Errorf("expected articles after reset, got %d", feed.Total)
	}
	if calls.Load() != 2 {
		t.Errorf("expected refetch after reset, got %d calls", calls.Load())
	}
}

func TestPerformanceStats(t *testing.T) {
	sources := []feeds.Source{
		{Name: "Good", Kind: feeds.KindFeed},
		{Name: "Bad", Kind: feeds.KindFeed},
	}
	fetchers := map[string]*fakeFetcher{
		"Good": {name: "Good", items: techItems()},
		"Bad":  {name: "Bad", err: errors.New("down")},
	}
	svc, _ := newTestService(sources, fetchers, nil)

	svc.Feed(context.Background(), Query{})

	stats := svc.PerformanceStats()
	if stats.Fetch.Attempts != 2 || stats.Fetch.Successes != 1 {
		t.Errorf("unexpected fetch stats: %+v", stats.Fetch)
	}
	if stats.Fetch.SuccessRate != 0.5 {
		t.Errorf("success rate = %v, want 0.5", stats.Fetch.SuccessRate)
	}
	if len(stats.Quarantined) != 1 || stats.Quarantined[0] != "Bad" {
		t.Errorf("unexpected quarantine list: %v", stats.Quarantined)
	}
}

func TestQueryKey(t *testing.T) {
	a := Query{Topic: "Tech", Limit: 20}
	b := Query{Topic: "tech", Limit: 20}
	if a.Key() != b.Key() {
		t.Error("topic case should not split the cache")
	}
	c := Query{Topic: "tech", Limit: 20, Offset: 20}
	if a.Key() == c.Key() {
		t.Error("different pages must use different keys")
	}
}

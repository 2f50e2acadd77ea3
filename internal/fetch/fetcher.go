// Package fetch retrieves raw items from external sources, normalizes
// them into articles, and fans fetches out across the catalog under a
// concurrency cap with per-source timeouts.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/abelbrown/newsdesk/internal/feeds"
)

const userAgent = "newsdesk/1.0 (+https://github.com/abelbrown/newsdesk)"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RawItem is a not-yet-normalized item as it came off the wire. Field
// population varies wildly between sources; the Normalizer applies the
// fallback order.
type RawItem struct {
	Title       string
	Link        string
	URL         string
	Description string
	Summary     string
	Content     string
	PublishedAt *time.Time
	Published   *time.Time
	Updated     *time.Time
}

// Fetcher retrieves raw items from one source.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]RawItem, error)
}

// NewFetcher builds the right fetcher for a catalog entry. Unknown
// kinds default to RSS, the dominant source type.
func NewFetcher(src feeds.Source) Fetcher {
	switch src.Kind {
	case feeds.KindAPI:
		return NewAPIFetcher(src.Name, src.URL)
	default:
		return NewRSSFetcher(src.Name, src.URL)
	}
}

// RSSFetcher pulls an RSS or Atom feed and parses it with gofeed.
type RSSFetcher struct {
	name    string
	url     string
	client  *http.Client
	parser  *gofeed.Parser
	limiter *rate.Limiter
}

// NewRSSFetcher creates a fetcher for the given feed URL.
func NewRSSFetcher(name, url string) *RSSFetcher {
	return &RSSFetcher{
		name:   name,
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		parser: gofeed.NewParser(),
		// Feeds are polled repeatedly; keep requests polite.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
}

func (f *RSSFetcher) Name() string { return f.name }

// Fetch retrieves and parses the feed. The caller's context carries
// the per-source deadline.
func (f *RSSFetcher) Fetch(ctx context.Context) ([]RawItem, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch %s: rate limiter wait: %w", f.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: create request: %w", f.name, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", f.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", f.name, resp.StatusCode)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: parse feed: %w", f.name, err)
	}

	items := make([]RawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		raw := RawItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Content:     item.Content,
			Published:   item.PublishedParsed,
			Updated:     item.UpdatedParsed,
		}
		items = append(items, raw)
	}
	return items, nil
}

// APIFetcher pulls a JSON news API endpoint. Different providers wrap
// the article list and name fields differently; the decoder accepts
// the common shapes and leaves field fallback to the Normalizer.
type APIFetcher struct {
	name    string
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

// NewAPIFetcher creates a fetcher for the given API endpoint.
func NewAPIFetcher(name, url string) *APIFetcher {
	return &APIFetcher{
		name:   name,
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		// API quotas are tight; ~80 requests per minute.
		limiter: rate.NewLimiter(rate.Every(750*time.Millisecond), 1),
	}
}

func (f *APIFetcher) Name() string { return f.name }

// apiItem covers the field spellings seen across NewsAPI/GNews-style
// providers. Timestamps stay strings here; parsing happens below so a
// bad date in one item does not sink the batch.
type apiItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
	Published   string `json:"published_at"`
	PubDate     string `json:"pub_date"`
}

type apiEnvelope struct {
	Articles []apiItem `json:"articles"`
	News     []apiItem `json:"news"`
	Data     []apiItem `json:"data"`
	Results  []apiItem `json:"results"`
}

// Fetch retrieves and decodes the endpoint's article list.
func (f *APIFetcher) Fetch(ctx context.Context) ([]RawItem, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch %s: rate limiter wait: %w", f.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: create request: %w", f.name, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", f.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", f.name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read response: %w", f.name, err)
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("fetch %s: decode response: %w", f.name, err)
	}

	list := env.Articles
	if len(list) == 0 {
		list = env.News
	}
	if len(list) == 0 {
		list = env.Data
	}
	if len(list) == 0 {
		list = env.Results
	}

	items := make([]RawItem, 0, len(list))
	for _, it := range list {
		items = append(items, RawItem{
			Title:       it.Title,
			Link:        it.Link,
			URL:         it.URL,
			Description: it.Description,
			Summary:     it.Summary,
			Content:     it.Content,
			PublishedAt: parseAPITime(it.PublishedAt),
			Published:   parseAPITime(firstNonEmpty(it.Published, it.PubDate)),
		})
	}
	return items, nil
}

// parseAPITime tries the timestamp layouts news APIs actually emit.
// Unparseable dates return nil and the Normalizer falls back to now.
func parseAPITime(s string) *time.Time {
	if s == "" {
		return nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z0700",
		"2006-01-02 15:04:05",
		time.RFC1123Z,
		time.RFC1123,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

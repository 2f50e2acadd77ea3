package fetch

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/newsdesk/internal/feeds"
	"github.com/abelbrown/newsdesk/internal/logging"
)

const (
	// DefaultTimeout bounds a single source fetch.
	DefaultTimeout = 10 * time.Second
	// DefaultConcurrency caps how many sources fetch at once.
	DefaultConcurrency = 10
	// DefaultPerSourceLimit caps items taken from one source per cycle.
	DefaultPerSourceLimit = 15
)

// Options tunes a fetch cycle. Zero values take the defaults above.
type Options struct {
	Timeout        time.Duration
	Concurrency    int
	PerSourceLimit int
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.PerSourceLimit <= 0 {
		o.PerSourceLimit = DefaultPerSourceLimit
	}
	return o
}

// Orchestrator fans fetches out across the healthy catalog, normalizes
// the results, and quarantines sources that fail or time out. One slow
// or broken source never affects its siblings.
type Orchestrator struct {
	registry *feeds.Registry
	health   *Health
	locale   *LocaleMatcher
	opts     Options

	// newFetcher is swappable so tests can inject fakes. Built
	// fetchers are cached per source so their rate limiters pace
	// repeated polls across cycles.
	newFetcher func(feeds.Source) Fetcher
	fetcherMu  sync.Mutex
	fetchers   map[string]Fetcher
}

// NewOrchestrator wires an orchestrator over the given registry.
func NewOrchestrator(registry *feeds.Registry, health *Health, locale *LocaleMatcher, opts Options) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		health:     health,
		locale:     locale,
		opts:       opts.withDefaults(),
		newFetcher: NewFetcher,
		fetchers:   make(map[string]Fetcher),
	}
}

// SetFetcherFactory overrides fetcher construction, for tests. Any
// already-built fetchers are discarded.
func (o *Orchestrator) SetFetcherFactory(f func(feeds.Source) Fetcher) {
	o.fetcherMu.Lock()
	defer o.fetcherMu.Unlock()
	o.newFetcher = f
	o.fetchers = make(map[string]Fetcher)
}

// fetcherFor returns the cached fetcher for a source, building it on
// first use. One fetcher per source lives for the orchestrator's
// lifetime, so its HTTP client and rate limiter persist across cycles.
func (o *Orchestrator) fetcherFor(src feeds.Source) Fetcher {
	o.fetcherMu.Lock()
	defer o.fetcherMu.Unlock()
	if f, ok := o.fetchers[src.Name]; ok {
		return f
	}
	f := o.newFetcher(src)
	o.fetchers[src.Name] = f
	return f
}

// FetchAll runs one fetch cycle over the healthy sources in the given
// category ("" means all) and returns the normalized articles. Failed
// sources are quarantined and recorded; they contribute no articles
// and no error. Cancelling ctx stops the cycle early.
func (o *Orchestrator) FetchAll(ctx context.Context, category string) []feeds.Article {
	sources := o.registry.List(category)
	if len(sources) == 0 {
		return nil
	}

	var mu sync.Mutex
	var collected []feeds.Article

	g := &errgroup.Group{}
	g.SetLimit(o.opts.Concurrency)

	for _, src := range sources {
		src := src
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
			defer cancel()

			start := time.Now()
			items, err := o.fetcherFor(src).Fetch(fetchCtx)
			elapsed := time.Since(start)

			if err != nil {
				outcome := OutcomeError
				if errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
					outcome = OutcomeTimeout
				}
				o.health.Record(src.Name, elapsed, outcome)
				o.registry.MarkQuarantined(src.Name)
				logging.Warn("source fetch failed", "source", src.Name, "outcome", outcome, "elapsed", elapsed, "error", err)
				return nil
			}

			o.health.Record(src.Name, elapsed, OutcomeSuccess)

			now := time.Now()
			articles := make([]feeds.Article, 0, len(items))
			for _, raw := range items {
				if len(articles) >= o.opts.PerSourceLimit {
					break
				}
				if a := Normalize(raw, src, o.locale, now); a != nil {
					articles = append(articles, *a)
				}
			}
			logging.Debug("source fetched", "source", src.Name, "items", len(items), "kept", len(articles), "elapsed", elapsed)

			mu.Lock()
			collected = append(collected, articles...)
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; failures are recorded per source.
	_ = g.Wait()
	return collected
}

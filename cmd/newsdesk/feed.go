package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/abelbrown/newsdesk/internal/news"
)

func runFeed() {
	fs := flag.NewFlagSet("feed", flag.ExitOnError)
	topic := fs.String("topic", "", "Topic filter (technology, business, sports, ...)")
	source := fs.String("source", "", "Only articles from this source")
	limit := fs.Int("limit", 20, "Page size")
	offset := fs.Int("offset", 0, "Page offset")
	local := fs.Bool("local", false, "Boost locale-relevant coverage")
	fs.Parse(os.Args[1:])

	svc, _, cleanup := bootstrap()
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	feed, err := svc.Feed(ctx, news.Query{
		Topic:       *topic,
		Source:      *source,
		Limit:       *limit,
		Offset:      *offset,
		FocusLocale: *local,
	})
	if err != nil {
		fatal("feed: %v", err)
	}

	fmt.Printf("%d articles (showing %d from offset %d)\n\n", feed.Total, len(feed.Articles), *offset)
	for i, a := range feed.Articles {
		age := "unknown age"
		if !a.Published.IsZero() {
			age = fmt.Sprintf("%s ago", time.Since(a.Published).Round(time.Minute))
		}
		fmt.Printf("%2d. [%5.1f] %s\n", *offset+i+1, a.Score, a.Title)
		fmt.Printf("    %s | %s | %s\n", a.SourceName, a.Topic, age)
		if a.Summary != "" {
			fmt.Printf("    %s\n", truncate(a.Summary, 120))
		}
		fmt.Printf("    %s\n\n", a.URL)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/abelbrown/newsdesk/internal/news"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	refresh := fs.Bool("refresh", false, "Run a fetch cycle first so stats reflect current source health")
	fs.Parse(os.Args[1:])

	svc, st, cleanup := bootstrap()
	defer cleanup()

	if *refresh {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := svc.Feed(ctx, news.Query{Limit: 1}); err != nil {
			fatal("refresh fetch: %v", err)
		}
	}

	stats := svc.PerformanceStats()

	fmt.Printf("Fetch attempts:   %d\n", stats.Fetch.Attempts)
	fmt.Printf("Successes:        %d\n", stats.Fetch.Successes)
	fmt.Printf("Failures:         %d\n", stats.Fetch.Failures)
	if stats.Fetch.Attempts > 0 {
		fmt.Printf("Success rate:     %.1f%%\n", stats.Fetch.SuccessRate*100)
	}

	if len(stats.Fetch.Sources) > 0 {
		names := make([]string, 0, len(stats.Fetch.Sources))
		for name := range stats.Fetch.Sources {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Printf("\nPer source:\n")
		for _, name := range names {
			s := stats.Fetch.Sources[name]
			fmt.Printf("  %-25s %d/%d ok, avg %s\n",
				truncate(name, 25), s.Successes, s.Attempts, s.AvgDuration.Round(time.Millisecond))
		}
	}

	if len(stats.Quarantined) > 0 {
		fmt.Printf("\nQuarantined (%d):\n", len(stats.Quarantined))
		for _, name := range stats.Quarantined {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println("\nRun 'newsdesk reset' to make these eligible again.")
	} else {
		fmt.Println("\nNo sources quarantined.")
	}

	if n, err := st.Count(); err == nil {
		fmt.Printf("\nArchived articles: %d\n", n)
	}
}

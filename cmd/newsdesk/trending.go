package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

func runTrending() {
	fs := flag.NewFlagSet("trending", flag.ExitOnError)
	hours := fs.Int("hours", 24, "Window size in hours")
	limit := fs.Int("limit", 10, "Max topics to show")
	fs.Parse(os.Args[1:])

	_, st, cleanup := bootstrap()
	defer cleanup()

	since := time.Now().Add(-time.Duration(*hours) * time.Hour)
	trends, err := st.TrendingTopics(since, *limit)
	if err != nil {
		fatal("trending: %v", err)
	}
	if len(trends) == 0 {
		fmt.Println("No archived articles in the window; run 'newsdesk feed' first.")
		return
	}

	fmt.Printf("Trending topics, last %dh:\n", *hours)
	for i, tc := range trends {
		fmt.Printf("%2d. %-15s %d articles\n", i+1, tc.Topic, tc.Count)
	}
}

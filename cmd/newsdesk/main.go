// Command newsdesk runs the aggregation pipeline from the terminal.
//
// Usage:
//
//	newsdesk                Show help
//	newsdesk feed           Fetch, rank, and print a feed page
//	newsdesk stats          Fetch health and quarantine status
//	newsdesk reset          Clear the quarantine set
//	newsdesk sources        Print the source catalog
//	newsdesk trending       Busiest topics in the recent archive
package main

import (
	"fmt"
	"os"
)

const usage = `newsdesk — news aggregation CLI

Usage:
  newsdesk <command> [flags]

Commands:
  feed        Fetch, dedupe, classify, rank, and print articles
  stats       Per-source fetch health and quarantine status
  reset       Clear the quarantine set so all sources retry
  sources     Print the source catalog
  trending    Busiest topics in the recent archive

Environment:
  NEWSAPI_KEY    NewsAPI key (unlocks the NewsAPI source)
  GNEWS_API_KEY  GNews key (unlocks the GNews source)

Run 'newsdesk <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "feed":
		runFeed()
	case "stats":
		runStats()
	case "reset":
		runReset()
	case "sources":
		runSources()
	case "trending":
		runTrending()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "newsdesk: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
)

func runSources() {
	fs := flag.NewFlagSet("sources", flag.ExitOnError)
	category := fs.String("category", "", "Only sources in this category")
	fs.Parse(os.Args[1:])

	svc, _, cleanup := bootstrap()
	defer cleanup()

	count := 0
	for _, src := range svc.Sources() {
		if *category != "" && src.Category != *category {
			continue
		}
		locale := ""
		if src.Locale {
			locale = " [locale]"
		}
		fmt.Printf("%-25s %-13s %.2f %-5s%s\n",
			truncate(src.Name, 25), src.Category, src.Reliability, src.Kind, locale)
		count++
	}
	if count == 0 {
		fmt.Println("No sources match.")
	}
}

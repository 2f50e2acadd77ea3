package main

import (
	"flag"
	"fmt"
	"os"
)

func runReset() {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	svc, _, cleanup := bootstrap()
	defer cleanup()

	n := svc.ResetQuarantine()
	if n == 0 {
		fmt.Println("No sources were quarantined.")
		return
	}
	fmt.Printf("Restored %d source(s); they will be retried on the next fetch.\n", n)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abelbrown/newsdesk/internal/config"
	"github.com/abelbrown/newsdesk/internal/logging"
	"github.com/abelbrown/newsdesk/internal/news"
	"github.com/abelbrown/newsdesk/internal/store"
)

// bootstrap loads config, sets up logging, opens the store, and wires
// the service. The returned cleanup closes the store.
func bootstrap() (*news.Service, *store.Store, func()) {
	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}
	if err := logging.Init(cfg.LogLevel); err != nil {
		// Logging is not worth dying for; fall back to stderr.
		logging.InitStderr(cfg.LogLevel)
	}
	log := logging.WithPrefix("cli")

	st, err := store.Open(dbPath(cfg))
	if err != nil {
		fatal("open store: %v", err)
	}
	log.Debug("store opened", "path", dbPath(cfg))

	svc := news.New(cfg, st)
	return svc, st, func() { st.Close() }
}

func dbPath(cfg *config.Config) string {
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	dir, err := config.Dir()
	if err != nil {
		return "newsdesk.db"
	}
	os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "newsdesk.db")
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "newsdesk: "+format+"\n", args...)
	os.Exit(1)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen > 3 {
		return s[:maxLen-3] + "..."
	}
	return s[:maxLen]
}

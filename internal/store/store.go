// Package store persists fetched articles in SQLite so queries can
// blend live fetches with recent history, and so trending topics can
// be computed over more than one fetch cycle.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/abelbrown/newsdesk/internal/feeds"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	url         TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	summary     TEXT NOT NULL DEFAULT '',
	published   INTEGER NOT NULL,
	source      TEXT NOT NULL,
	reliability REAL NOT NULL DEFAULT 0,
	topic       TEXT NOT NULL DEFAULT '',
	locale      INTEGER NOT NULL DEFAULT 0,
	fetched_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published DESC);
CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic);
CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source);
`

// Store wraps the SQLite database. The mutex serializes writes; the
// modernc driver is safe but write contention on one file is cheaper
// to resolve here than in the driver.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open creates or opens the database at path. Use ":memory:" for an
// in-process database in tests.
func Open(path string) (*Store, error) {
	dsn := path
	if path == ":memory:" {
		// A bare :memory: DSN gives every pooled connection its own
		// empty database; shared cache keeps them on one.
		dsn = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: enable WAL: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveArticles inserts articles, skipping URLs already present, and
// returns how many rows were actually added.
func (s *Store) SaveArticles(articles []feeds.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("store: begin save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO articles
		(url, title, summary, published, source, reliability, topic, locale, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	inserted := 0
	for _, a := range articles {
		if a.URL == "" {
			continue
		}
		res, err := stmt.Exec(a.URL, a.Title, a.Summary, a.Published.Unix(),
			a.SourceName, a.Reliability, a.Topic, boolToInt(a.LocaleRelevant), now)
		if err != nil {
			return 0, fmt.Errorf("store: insert %s: %w", a.URL, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit save: %w", err)
	}
	return inserted, nil
}

// QueryArticles returns saved articles, newest first, optionally
// narrowed by topic and source name. Either filter may be empty.
func (s *Store) QueryArticles(topic, source string, limit int) ([]feeds.Article, error) {
	if limit <= 0 {
		limit = 50
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var conds []string
	var args []interface{}
	if topic != "" {
		conds = append(conds, "topic = ?")
		args = append(args, topic)
	}
	if source != "" {
		conds = append(conds, "source = ?")
		args = append(args, source)
	}

	query := "SELECT url, title, summary, published, source, reliability, topic, locale FROM articles"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY published DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query articles: %w", err)
	}
	defer rows.Close()

	var out []feeds.Article
	for rows.Next() {
		var a feeds.Article
		var published int64
		var locale int
		if err := rows.Scan(&a.URL, &a.Title, &a.Summary, &published,
			&a.SourceName, &a.Reliability, &a.Topic, &locale); err != nil {
			return nil, fmt.Errorf("store: scan article: %w", err)
		}
		a.Published = time.Unix(published, 0).UTC()
		a.LocaleRelevant = locale != 0
		a.Origin = feeds.KindStore
		out = append(out, a)
	}
	return out, rows.Err()
}

// TopicCount is one row of the trending aggregation.
type TopicCount struct {
	Topic string
	Count int
}

// TrendingTopics counts articles per topic published since the cutoff,
// busiest first. The general bucket is excluded; it is a fallback
// label, not a trend.
func (s *Store) TrendingTopics(since time.Time, limit int) ([]TopicCount, error) {
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT topic, COUNT(*) AS n FROM articles
		WHERE published >= ? AND topic != '' AND topic != 'general'
		GROUP BY topic ORDER BY n DESC, topic ASC LIMIT ?`,
		since.Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("store: trending topics: %w", err)
	}
	defer rows.Close()

	var out []TopicCount
	for rows.Next() {
		var tc TopicCount
		if err := rows.Scan(&tc.Topic, &tc.Count); err != nil {
			return nil, fmt.Errorf("store: scan topic count: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// Count reports the number of saved articles.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// PruneOlderThan deletes articles published before the cutoff and
// returns how many were removed.
func (s *Store) PruneOlderThan(cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM articles WHERE published < ?", cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("store: prune: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

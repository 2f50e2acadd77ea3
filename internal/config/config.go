// Package config loads and saves the JSON configuration file under
// the user's home directory. Every pipeline tunable lives here so
// nothing operational is hard-coded.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all runtime settings.
type Config struct {
	// Fetch pipeline tunables.
	FetchTimeoutSeconds  int `json:"fetch_timeout_seconds"`
	MaxConcurrentFetches int `json:"max_concurrent_fetches"`
	PerSourceLimit       int `json:"per_source_limit"`

	// Cache and dedup tunables.
	CacheTTLSeconds     int     `json:"cache_ttl_seconds"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	MinTopicScore       int     `json:"min_topic_score"`

	// Locale relevance vocabulary; empty means the built-in list.
	LocaleKeywords []string `json:"locale_keywords,omitempty"`

	// API keys unlock the REST sources; either may be blank.
	NewsAPIKey  string `json:"newsapi_key,omitempty"`
	GNewsAPIKey string `json:"gnews_api_key,omitempty"`

	// DBPath overrides the default database location.
	DBPath string `json:"db_path,omitempty"`

	LogLevel string `json:"log_level,omitempty"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		FetchTimeoutSeconds:  10,
		MaxConcurrentFetches: 10,
		PerSourceLimit:       15,
		CacheTTLSeconds:      300,
		SimilarityThreshold:  0.8,
		MinTopicScore:        3,
		LogLevel:             "info",
	}
}

// Dir returns the application directory, ~/.newsdesk.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home dir: %w", err)
	}
	return filepath.Join(home, ".newsdesk"), nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, falling back to defaults when it does
// not exist. Missing fields in an existing file also take defaults, so
// old files keep working as settings are added.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file at an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.AutoPopulateFromEnv()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.sanitize()
	cfg.AutoPopulateFromEnv()
	return cfg, nil
}

// Save writes the config file, creating the app directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// AutoPopulateFromEnv fills blank API keys from the environment, so
// keys can stay out of the config file.
func (c *Config) AutoPopulateFromEnv() {
	if c.NewsAPIKey == "" {
		c.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	}
	if c.GNewsAPIKey == "" {
		c.GNewsAPIKey = os.Getenv("GNEWS_API_KEY")
	}
}

// sanitize clamps nonsensical values back to defaults rather than
// letting a hand-edited file zero out the pipeline.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = def.FetchTimeoutSeconds
	}
	if c.MaxConcurrentFetches <= 0 {
		c.MaxConcurrentFetches = def.MaxConcurrentFetches
	}
	if c.PerSourceLimit <= 0 {
		c.PerSourceLimit = def.PerSourceLimit
	}
	if c.CacheTTLSeconds <= 0 {
		c.CacheTTLSeconds = def.CacheTTLSeconds
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		c.SimilarityThreshold = def.SimilarityThreshold
	}
	if c.MinTopicScore <= 0 {
		c.MinTopicScore = def.MinTopicScore
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

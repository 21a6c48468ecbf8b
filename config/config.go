package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingDataDir      = errors.New("data_dir is required")
	ErrInvalidMaxPages     = errors.New("max_pages must be at least 1")
	ErrInvalidMinPerPage   = errors.New("min_candidates_per_page must be non-negative")
	ErrInvalidFetchDelay   = errors.New("fetch_delay_ms must be non-negative")
	ErrInvalidBlockSeconds = errors.New("block_seconds must be non-negative")
)

// Config represents the application configuration
type Config struct {
	// Harvest configuration
	DataDir              string `yaml:"data_dir"`
	MaxPages             int    `yaml:"max_pages"`
	MinCandidatesPerPage int    `yaml:"min_candidates_per_page"`
	FetchDelayMs         int    `yaml:"fetch_delay_ms"`
	BlockSeconds         int    `yaml:"block_seconds"`

	// Memcache configuration (optional; empty disables the block cache)
	MemcacheAddr string `yaml:"memcache_addr"`

	// Redis configuration (optional; empty disables publishing)
	RedisAddr            string `yaml:"redis_addr"`
	RedisDB              int    `yaml:"redis_db"`
	RedisStream          string `yaml:"redis_stream"`
	RedisStreamMaxLength int    `yaml:"redis_stream_max_length"`

	// Source endpoints
	HiruAPIURL       string `yaml:"hiru_api_url"`
	HiruArticleURL   string `yaml:"hiru_article_url"`
	NewsFirstAPIURL  string `yaml:"newsfirst_api_url"`
	NewsFirstSiteURL string `yaml:"newsfirst_site_url"`
	LankadeepaURL    string `yaml:"lankadeepa_url"`
	ITNNewsURL       string `yaml:"itnnews_url"`

	// Environment
	Environment string `yaml:"environment"`
}

// LoadConfig loads the configuration. Defaults are overlaid first by
// an optional YAML file (HARVESTER_CONFIG), then by environment
// variables.
func LoadConfig() Config {
	cfg := Config{
		DataDir:              "data",
		MaxPages:             3,
		MinCandidatesPerPage: 3,
		FetchDelayMs:         2000,
		BlockSeconds:         500,
		RedisStream:          "articles",
		RedisStreamMaxLength: 500,
		HiruAPIURL:           "https://hirunews.lk/api/fetch_news.php",
		HiruArticleURL:       "https://hirunews.lk/",
		NewsFirstAPIURL:      "https://apisinhala.newsfirst.lk",
		NewsFirstSiteURL:     "https://sinhala.newsfirst.lk/",
		LankadeepaURL:        "https://www.lankadeepa.lk",
		ITNNewsURL:           "https://www.itnnews.lk",
		Environment:          "development",
	}

	if path := os.Getenv("HARVESTER_CONFIG"); path != "" {
		loadFile(path, &cfg)
	}

	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.MaxPages = getEnvInt("MAX_PAGES", cfg.MaxPages)
	cfg.MinCandidatesPerPage = getEnvInt("MIN_CANDIDATES_PER_PAGE", cfg.MinCandidatesPerPage)
	cfg.FetchDelayMs = getEnvInt("FETCH_DELAY_MS", cfg.FetchDelayMs)
	cfg.BlockSeconds = getEnvInt("BLOCK_SECONDS", cfg.BlockSeconds)
	cfg.MemcacheAddr = getEnv("MEMCACHE_ADDR", cfg.MemcacheAddr)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB)
	cfg.RedisStream = getEnv("REDIS_STREAM", cfg.RedisStream)
	cfg.RedisStreamMaxLength = getEnvInt("REDIS_STREAM_MAX_LENGTH", cfg.RedisStreamMaxLength)
	cfg.HiruAPIURL = getEnv("HIRU_API_URL", cfg.HiruAPIURL)
	cfg.HiruArticleURL = getEnv("HIRU_ARTICLE_URL", cfg.HiruArticleURL)
	cfg.NewsFirstAPIURL = getEnv("NEWSFIRST_API_URL", cfg.NewsFirstAPIURL)
	cfg.NewsFirstSiteURL = getEnv("NEWSFIRST_SITE_URL", cfg.NewsFirstSiteURL)
	cfg.LankadeepaURL = getEnv("LANKADEEPA_URL", cfg.LankadeepaURL)
	cfg.ITNNewsURL = getEnv("ITNNEWS_URL", cfg.ITNNewsURL)
	cfg.Environment = getEnv("HARVESTER_ENVIRONMENT", cfg.Environment)

	return cfg
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return ErrMissingDataDir
	}
	if c.MaxPages < 1 {
		return ErrInvalidMaxPages
	}
	if c.MinCandidatesPerPage < 0 {
		return ErrInvalidMinPerPage
	}
	if c.FetchDelayMs < 0 {
		return ErrInvalidFetchDelay
	}
	if c.BlockSeconds < 0 {
		return ErrInvalidBlockSeconds
	}
	return nil
}

// FetchDelay returns the pacing interval between detail fetches
func (c *Config) FetchDelay() time.Duration {
	return time.Duration(c.FetchDelayMs) * time.Millisecond
}

// loadFile overlays configuration from a YAML file; a missing or
// malformed file leaves the passed config untouched.
func loadFile(path string, cfg *Config) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = yaml.Unmarshal(data, cfg)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an integer environment variable or returns a
// default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

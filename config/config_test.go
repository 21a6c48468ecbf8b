package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 3, cfg.MaxPages)
	assert.Equal(t, 3, cfg.MinCandidatesPerPage)
	assert.Equal(t, 2000, cfg.FetchDelayMs)
	assert.Equal(t, 500, cfg.BlockSeconds)
	assert.Empty(t, cfg.MemcacheAddr)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "articles", cfg.RedisStream)
	assert.Equal(t, 500, cfg.RedisStreamMaxLength)
	assert.Equal(t, "https://www.lankadeepa.lk", cfg.LankadeepaURL)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/var/lib/harvester")
	t.Setenv("MAX_PAGES", "7")
	t.Setenv("FETCH_DELAY_MS", "0")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HARVESTER_ENVIRONMENT", "production")

	cfg := LoadConfig()

	assert.Equal(t, "/var/lib/harvester", cfg.DataDir)
	assert.Equal(t, 7, cfg.MaxPages)
	assert.Equal(t, 0, cfg.FetchDelayMs)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoadConfigInvalidIntFallsBack(t *testing.T) {
	t.Setenv("MAX_PAGES", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, 3, cfg.MaxPages)
}

func TestLoadConfigYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvester.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"data_dir: /srv/news\nmax_pages: 5\nredis_stream: harvested\n"), 0o644))
	t.Setenv("HARVESTER_CONFIG", path)

	cfg := LoadConfig()

	assert.Equal(t, "/srv/news", cfg.DataDir)
	assert.Equal(t, 5, cfg.MaxPages)
	assert.Equal(t, "harvested", cfg.RedisStream)
	// Untouched keys keep their defaults
	assert.Equal(t, 2000, cfg.FetchDelayMs)
}

func TestLoadConfigEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvester.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_pages: 5\n"), 0o644))
	t.Setenv("HARVESTER_CONFIG", path)
	t.Setenv("MAX_PAGES", "9")

	cfg := LoadConfig()
	assert.Equal(t, 9, cfg.MaxPages)
}

func TestLoadConfigMissingFileIsIgnored(t *testing.T) {
	t.Setenv("HARVESTER_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg := LoadConfig()
	assert.Equal(t, "data", cfg.DataDir)
}

func TestValidate(t *testing.T) {
	valid := LoadConfig()
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"missing data dir", func(c *Config) { c.DataDir = "" }, ErrMissingDataDir},
		{"zero max pages", func(c *Config) { c.MaxPages = 0 }, ErrInvalidMaxPages},
		{"negative min per page", func(c *Config) { c.MinCandidatesPerPage = -1 }, ErrInvalidMinPerPage},
		{"negative fetch delay", func(c *Config) { c.FetchDelayMs = -1 }, ErrInvalidFetchDelay},
		{"negative block seconds", func(c *Config) { c.BlockSeconds = -1 }, ErrInvalidBlockSeconds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestFetchDelay(t *testing.T) {
	cfg := Config{FetchDelayMs: 1500}
	assert.Equal(t, 1500*time.Millisecond, cfg.FetchDelay())
}

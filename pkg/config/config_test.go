package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://www.moltbook.com/api/v1", cfg.Moltbook.BaseURL)
	assert.Equal(t, 500, cfg.Scrape.TargetCount)
	assert.Equal(t, 25, cfg.Scrape.BatchSize)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 3*time.Second, cfg.Retry.BaseDelay)
	assert.Equal(t, "moltbook_posts.json", cfg.Scrape.OutputFile)
	assert.NoError(t, cfg.Validate())
}

func TestCheckpointPathDerivation(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "moltbook_posts_checkpoint.json", cfg.CheckpointPath())

	cfg.Scrape.OutputFile = "out/posts.json"
	assert.Equal(t, "out/posts_checkpoint.json", cfg.CheckpointPath())

	cfg.Scrape.CheckpointFile = "/tmp/cp.json"
	assert.Equal(t, "/tmp/cp.json", cfg.CheckpointPath())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MOLTSCRAPER_BASE_URL", "http://localhost:9999/api/v1")
	t.Setenv("MOLTSCRAPER_BATCH_SIZE", "10")
	t.Setenv("MOLTSCRAPER_MAX_RETRIES", "2")
	t.Setenv("LANGSMITH_API_KEY", "ls-test-key")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "http://localhost:9999/api/v1", cfg.Moltbook.BaseURL)
	assert.Equal(t, 10, cfg.Scrape.BatchSize)
	assert.Equal(t, 2, cfg.Retry.MaxAttempts)
	assert.Equal(t, "ls-test-key", cfg.LangSmith.APIKey)
}

func TestLoadFromEnvIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("MOLTSCRAPER_BATCH_SIZE", "not-a-number")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())
	assert.Equal(t, 25, cfg.Scrape.BatchSize)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
scrape:
  target_count: 50
  batch_size: 5
  output_file: custom.json
retry:
  max_attempts: 7
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, 50, cfg.Scrape.TargetCount)
	assert.Equal(t, 5, cfg.Scrape.BatchSize)
	assert.Equal(t, "custom.json", cfg.Scrape.OutputFile)
	assert.Equal(t, 7, cfg.Retry.MaxAttempts)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults
	assert.Equal(t, 3*time.Second, cfg.Retry.BaseDelay)
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"count":       100,
		"output":      "flagged.json",
		"checkpoint":  "cp.json",
		"batch-size":  15,
		"max-retries": 4,
	})

	assert.Equal(t, 100, cfg.Scrape.TargetCount)
	assert.Equal(t, "flagged.json", cfg.Scrape.OutputFile)
	assert.Equal(t, "cp.json", cfg.Scrape.CheckpointFile)
	assert.Equal(t, 15, cfg.Scrape.BatchSize)
	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero target count", func(c *Config) { c.Scrape.TargetCount = 0 }},
		{"negative batch size", func(c *Config) { c.Scrape.BatchSize = -1 }},
		{"empty output", func(c *Config) { c.Scrape.OutputFile = "" }},
		{"zero retries", func(c *Config) { c.Retry.MaxAttempts = 0 }},
		{"max delay below base", func(c *Config) { c.Retry.MaxDelay = time.Millisecond }},
		{"empty base URL", func(c *Config) { c.Moltbook.BaseURL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the Moltbook scraper
type Config struct {
	// Moltbook API settings
	Moltbook MoltbookConfig `yaml:"moltbook" json:"moltbook"`

	// Scrape run settings
	Scrape ScrapeConfig `yaml:"scrape" json:"scrape"`

	// Retry behavior for transient fetch failures
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// LangSmith upload settings
	LangSmith LangSmithConfig `yaml:"langsmith" json:"langsmith"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// MoltbookConfig holds listing endpoint settings
type MoltbookConfig struct {
	BaseURL           string        `yaml:"base_url" json:"base_url"`
	UserAgent         string        `yaml:"user_agent" json:"user_agent"`
	RequestTimeout    time.Duration `yaml:"request_timeout" json:"request_timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
}

// ScrapeConfig holds run-loop settings
type ScrapeConfig struct {
	TargetCount    int    `yaml:"target_count" json:"target_count"`
	BatchSize      int    `yaml:"batch_size" json:"batch_size"`
	OutputFile     string `yaml:"output_file" json:"output_file"`
	CheckpointFile string `yaml:"checkpoint_file" json:"checkpoint_file"`
}

// RetryConfig holds backoff settings for transient failures
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay" json:"max_delay"`
	Multiplier  float64       `yaml:"multiplier" json:"multiplier"`
}

// LangSmithConfig holds ingestion API settings
type LangSmithConfig struct {
	APIKey      string `yaml:"-" json:"-"` // never persisted, env or keyring only
	BaseURL     string `yaml:"base_url" json:"base_url"`
	DatasetName string `yaml:"dataset_name" json:"dataset_name"`
	ProjectName string `yaml:"project_name" json:"project_name"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Moltbook: MoltbookConfig{
			BaseURL:           "https://www.moltbook.com/api/v1",
			UserAgent:         "MoltbookScraper/1.0",
			RequestTimeout:    60 * time.Second,
			RequestsPerSecond: 1,
		},
		Scrape: ScrapeConfig{
			TargetCount: 500,
			BatchSize:   25,
			OutputFile:  "moltbook_posts.json",
		},
		Retry: RetryConfig{
			MaxAttempts: 5,
			BaseDelay:   3 * time.Second,
			MaxDelay:    60 * time.Second,
			Multiplier:  2.0,
		},
		LangSmith: LangSmithConfig{
			BaseURL:     "https://api.smith.langchain.com",
			DatasetName: "moltbook_posts",
			ProjectName: "moltbook-analysis",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CheckpointPath returns the configured checkpoint file, deriving one
// next to the output file when not set explicitly.
func (c *Config) CheckpointPath() string {
	if c.Scrape.CheckpointFile != "" {
		return c.Scrape.CheckpointFile
	}
	out := c.Scrape.OutputFile
	if strings.HasSuffix(out, ".json") {
		return strings.TrimSuffix(out, ".json") + "_checkpoint.json"
	}
	return out + ".checkpoint"
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if base := os.Getenv("MOLTSCRAPER_BASE_URL"); base != "" {
		c.Moltbook.BaseURL = base
	}
	if ua := os.Getenv("MOLTSCRAPER_USER_AGENT"); ua != "" {
		c.Moltbook.UserAgent = ua
	}
	if batch := os.Getenv("MOLTSCRAPER_BATCH_SIZE"); batch != "" {
		if val, err := strconv.Atoi(batch); err == nil && val > 0 {
			c.Scrape.BatchSize = val
		}
	}
	if retries := os.Getenv("MOLTSCRAPER_MAX_RETRIES"); retries != "" {
		if val, err := strconv.Atoi(retries); err == nil && val > 0 {
			c.Retry.MaxAttempts = val
		}
	}
	if level := os.Getenv("MOLTSCRAPER_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if key := os.Getenv("LANGSMITH_API_KEY"); key != "" {
		c.LangSmith.APIKey = key
	}
	if endpoint := os.Getenv("LANGSMITH_ENDPOINT"); endpoint != "" {
		c.LangSmith.BaseURL = endpoint
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for a config file in standard locations
func findConfigFile() string {
	locations := []string{
		".moltscraper.yaml",
		".moltscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "moltscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".moltscraper.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// MergeCommandLineFlags applies CLI flag values over the loaded config
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	for key, value := range flags {
		switch key {
		case "count":
			if v, ok := value.(int); ok && v > 0 {
				c.Scrape.TargetCount = v
			}
		case "output":
			if v, ok := value.(string); ok && v != "" {
				c.Scrape.OutputFile = v
			}
		case "checkpoint":
			if v, ok := value.(string); ok && v != "" {
				c.Scrape.CheckpointFile = v
			}
		case "batch-size":
			if v, ok := value.(int); ok && v > 0 {
				c.Scrape.BatchSize = v
			}
		case "max-retries":
			if v, ok := value.(int); ok && v > 0 {
				c.Retry.MaxAttempts = v
			}
		case "dataset":
			if v, ok := value.(string); ok && v != "" {
				c.LangSmith.DatasetName = v
			}
		case "project":
			if v, ok := value.(string); ok && v != "" {
				c.LangSmith.ProjectName = v
			}
		case "log-level":
			if v, ok := value.(string); ok && v != "" {
				c.Logging.Level = v
			}
		}
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Scrape.TargetCount <= 0 {
		return fmt.Errorf("target count must be positive, got %d", c.Scrape.TargetCount)
	}
	if c.Scrape.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.Scrape.BatchSize)
	}
	if c.Scrape.OutputFile == "" {
		return fmt.Errorf("output file must not be empty")
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("max retry attempts must be positive, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.BaseDelay <= 0 || c.Retry.MaxDelay < c.Retry.BaseDelay {
		return fmt.Errorf("invalid retry delays: base %v, max %v", c.Retry.BaseDelay, c.Retry.MaxDelay)
	}
	if c.Moltbook.BaseURL == "" {
		return fmt.Errorf("moltbook base URL must not be empty")
	}
	return nil
}

// Load builds the final configuration: defaults, then config file, then
// environment (including .env files), then command line flags.
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".moltscraper.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Claude summarization
	AnthropicAPIKey string
	AnthropicModel  string
	EnableSummaries bool

	// Worker pool
	WorkerCount            int
	MaxQueueSize           int
	MaxConcurrentSummaries int

	// Request limits
	MaxBodyBytes int64

	// Task state
	TaskTTL time.Duration

	// Result store
	DBPath string
}

// fileConfig is the optional YAML overlay. Pointer fields so absent keys
// leave the env-derived value alone.
type fileConfig struct {
	Port                   *string `yaml:"port"`
	AnthropicModel         *string `yaml:"anthropic_model"`
	EnableSummaries        *bool   `yaml:"enable_summaries"`
	WorkerCount            *int    `yaml:"worker_count"`
	MaxQueueSize           *int    `yaml:"max_queue_size"`
	MaxConcurrentSummaries *int    `yaml:"max_concurrent_summaries"`
	MaxBodyBytes           *int64  `yaml:"max_body_bytes"`
	TaskTTL                *string `yaml:"task_ttl"`
	DBPath                 *string `yaml:"db_path"`
}

// Load reads configuration from the environment, then applies the YAML
// file named by DOCGRAPH_CONFIG when set. Secrets come from the
// environment only.
func Load() (Config, error) {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCGRAPH_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		EnableSummaries: envBool("ENABLE_SUMMARIES", true),

		WorkerCount:            envInt("WORKER_COUNT", 2),
		MaxQueueSize:           envInt("MAX_QUEUE_SIZE", 50),
		MaxConcurrentSummaries: envInt("MAX_CONCURRENT_SUMMARIES", 4),

		MaxBodyBytes: envInt64("MAX_BODY_BYTES", 33554432), // 32MB

		TaskTTL: envDuration("TASK_TTL", 1*time.Hour),

		DBPath: envOr("DB_PATH", "docgraph.db"),
	}

	if path := os.Getenv("DOCGRAPH_CONFIG"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxConcurrentSummaries <= 0 {
		cfg.MaxConcurrentSummaries = 4
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 33554432
	}
	if cfg.TaskTTL <= 0 {
		cfg.TaskTTL = 1 * time.Hour
	}

	// Without a credential, summaries are skipped entirely.
	if cfg.AnthropicAPIKey == "" {
		cfg.EnableSummaries = false
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Port != nil {
		cfg.Port = *fc.Port
	}
	if fc.AnthropicModel != nil {
		cfg.AnthropicModel = *fc.AnthropicModel
	}
	if fc.EnableSummaries != nil {
		cfg.EnableSummaries = *fc.EnableSummaries
	}
	if fc.WorkerCount != nil {
		cfg.WorkerCount = *fc.WorkerCount
	}
	if fc.MaxQueueSize != nil {
		cfg.MaxQueueSize = *fc.MaxQueueSize
	}
	if fc.MaxConcurrentSummaries != nil {
		cfg.MaxConcurrentSummaries = *fc.MaxConcurrentSummaries
	}
	if fc.MaxBodyBytes != nil {
		cfg.MaxBodyBytes = *fc.MaxBodyBytes
	}
	if fc.TaskTTL != nil {
		d, err := time.ParseDuration(*fc.TaskTTL)
		if err != nil {
			return fmt.Errorf("parse task_ttl: %w", err)
		}
		cfg.TaskTTL = d
	}
	if fc.DBPath != nil {
		cfg.DBPath = *fc.DBPath
	}
	return nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCGRAPH_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

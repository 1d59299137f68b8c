package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so host state cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DOCGRAPH_API_KEY", "ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
		"ENABLE_SUMMARIES", "WORKER_COUNT", "MAX_QUEUE_SIZE",
		"MAX_CONCURRENT_SUMMARIES", "MAX_BODY_BYTES", "TASK_TTL",
		"DB_PATH", "DOCGRAPH_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8091" {
		t.Errorf("expected default port 8091, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 2 || cfg.MaxQueueSize != 50 || cfg.MaxConcurrentSummaries != 4 {
		t.Errorf("unexpected worker defaults: %+v", cfg)
	}
	if cfg.MaxBodyBytes != 33554432 {
		t.Errorf("expected 32MB body limit, got %d", cfg.MaxBodyBytes)
	}
	if cfg.TaskTTL != time.Hour {
		t.Errorf("expected 1h task ttl, got %v", cfg.TaskTTL)
	}
	if cfg.DBPath != "docgraph.db" {
		t.Errorf("expected default db path, got %q", cfg.DBPath)
	}
	// No Anthropic key means summaries are off regardless of the flag.
	if cfg.EnableSummaries {
		t.Error("expected summaries disabled without ANTHROPIC_API_KEY")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_MODEL", "claude-test")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("TASK_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.AnthropicModel != "claude-test" {
		t.Errorf("expected model override, got %q", cfg.AnthropicModel)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.WorkerCount)
	}
	if cfg.TaskTTL != 30*time.Minute {
		t.Errorf("expected 30m ttl, got %v", cfg.TaskTTL)
	}
	if !cfg.EnableSummaries {
		t.Error("expected summaries enabled with key present")
	}
}

func TestLoad_FileOverlay(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "port: \"7777\"\nworker_count: 3\ntask_ttl: 15m\nenable_summaries: false\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("DOCGRAPH_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// The file wins over the environment.
	if cfg.Port != "7777" {
		t.Errorf("expected file port 7777, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.WorkerCount)
	}
	if cfg.TaskTTL != 15*time.Minute {
		t.Errorf("expected 15m ttl, got %v", cfg.TaskTTL)
	}
	if cfg.EnableSummaries {
		t.Error("expected file to disable summaries")
	}
	// Keys absent from the file keep their env-derived values.
	if cfg.MaxQueueSize != 50 {
		t.Errorf("expected untouched queue size, got %d", cfg.MaxQueueSize)
	}
}

func TestLoad_BadFileTTL(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("task_ttl: notaduration\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("DOCGRAPH_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid task_ttl")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("ENABLE_SUMMARIES", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("expected fallback worker count, got %d", cfg.WorkerCount)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("expected error without api key")
	}
	if err := (Config{APIKey: "secret"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

type fakeFS struct {
	files map[string]bool
}

func (f *fakeFS) Exists(path string) bool  { return f.files[path] }
func (f *fakeFS) LoadEnv(path string) error { return nil }

func TestToolkitConfig_ApplyDefaults(t *testing.T) {
	cfg := ToolkitConfig{Name: "host"}
	cfg.ApplyDefaults()

	if cfg.Environment != "development" {
		t.Errorf("expected environment 'development', got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled in development")
	}
	if cfg.Retry.MaxRetries != 3 {
		t.Errorf("expected default max_retries=3, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.InitialDelayMs != 1000 || cfg.Retry.MaxDelayMs != 30000 {
		t.Errorf("unexpected delay defaults: %+v", cfg.Retry)
	}
	if cfg.Retry.BackoffMultiplier != 2 {
		t.Errorf("expected default backoff_multiplier=2, got %v", cfg.Retry.BackoffMultiplier)
	}
	if cfg.Observability.Endpoint != "localhost:4318" {
		t.Errorf("unexpected observability endpoint: %q", cfg.Observability.Endpoint)
	}
}

func TestToolkitConfig_Validate(t *testing.T) {
	cfg := ToolkitConfig{Name: "host"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestToolkitConfig_Validate_MissingName(t *testing.T) {
	cfg := ToolkitConfig{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestToolkitConfig_Validate_RetryBounds(t *testing.T) {
	cfg := ToolkitConfig{Name: "host"}
	cfg.ApplyDefaults()

	cfg.Retry.MaxRetries = 11
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for max_retries above bound")
	}

	cfg.Retry.MaxRetries = 3
	cfg.Retry.BackoffMultiplier = 0.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for backoff_multiplier below 1")
	}
}

func TestRetryDefaults_Apply(t *testing.T) {
	defaults := RetryDefaults{MaxRetries: 5, InitialDelayMs: 200, MaxDelayMs: 2000, BackoffMultiplier: 3}
	input := map[string]any{"prompt": "hi", "maxRetries": 1}

	out := defaults.Apply(input)
	if out["maxRetries"] != 1 {
		t.Errorf("expected caller value kept, got %v", out["maxRetries"])
	}
	if out["initialDelayMs"] != 200.0 {
		t.Errorf("expected default applied, got %v", out["initialDelayMs"])
	}
	if _, ok := input["initialDelayMs"]; ok {
		t.Error("expected input map untouched")
	}
}

func TestLoadConfig_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte("name: pipeline-host\nenvironment: staging\nretry:\n  max_retries: 5\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	var cfg ToolkitConfig
	if err := LoadConfig("pipeline-host", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "pipeline-host" {
		t.Errorf("expected name from file, got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Retry.MaxRetries != 5 {
		t.Errorf("expected max_retries=5, got %d", cfg.Retry.MaxRetries)
	}
}

func TestLoadConfig_NoFilesFound(t *testing.T) {
	fs := &fakeFS{files: map[string]bool{}}

	var cfg ToolkitConfig
	if err := LoadConfig("missing-host", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("expected no error when files are absent, got %v", err)
	}
	if cfg.Name != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

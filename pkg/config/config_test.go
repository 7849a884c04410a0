package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/jxlpack/pkg/encoder"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Effort != "squirrel" {
		t.Errorf("expected default effort squirrel, got %q", cfg.Effort)
	}
	if cfg.Distance != nil {
		t.Errorf("expected default distance to be unset, got %v", *cfg.Distance)
	}
	if cfg.PullBuffer != 64*1024 {
		t.Errorf("expected default pull buffer 65536, got %d", cfg.PullBuffer)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	yamlContent := `
distance: 0.5
effort: kitten
progressive: 2
modular: true
verify: true
workers: 8
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Distance == nil || *cfg.Distance != 0.5 {
		t.Errorf("expected distance 0.5, got %v", cfg.Distance)
	}
	if cfg.Effort != "kitten" {
		t.Errorf("expected effort kitten, got %q", cfg.Effort)
	}
	if cfg.Progressive != 2 {
		t.Errorf("expected progressive 2, got %d", cfg.Progressive)
	}
	if !cfg.Modular {
		t.Error("expected modular to be true")
	}
	if !cfg.Verify {
		t.Error("expected verify to be true")
	}
	if cfg.Workers != 8 {
		t.Errorf("expected workers 8, got %d", cfg.Workers)
	}

	// Unset fields keep their defaults.
	if cfg.PullBuffer != 64*1024 {
		t.Errorf("expected default pull buffer, got %d", cfg.PullBuffer)
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Effort = "9"
	cfg.Progressive = 3

	oc, err := cfg.ToOrchestratorConfig()
	if err != nil {
		t.Fatalf("ToOrchestratorConfig failed: %v", err)
	}
	if oc.Effort != encoder.Tortoise {
		t.Errorf("expected effort tortoise, got %s", oc.Effort)
	}
	if oc.Progressive != 3 {
		t.Errorf("expected progressive 3, got %d", oc.Progressive)
	}
}

func TestToOrchestratorConfig_InvalidEffort(t *testing.T) {
	cfg := Defaults()
	cfg.Effort = "warp-speed"

	if _, err := cfg.ToOrchestratorConfig(); err == nil {
		t.Error("expected error for unknown effort name")
	}
}

func TestToOrchestratorConfig_ProgressiveRange(t *testing.T) {
	cfg := Defaults()
	cfg.Progressive = 5

	if _, err := cfg.ToOrchestratorConfig(); err == nil {
		t.Error("expected error for progressive level out of range")
	}
}

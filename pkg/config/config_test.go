package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != 8080 {
		t.Errorf("default port: got %d, want 8080", cfg.Port)
	}
	if cfg.SchemaDir != "./schemas" {
		t.Errorf("default schema dir: got %q", cfg.SchemaDir)
	}
	if cfg.Workers != 4 {
		t.Errorf("default workers: got %d, want 4", cfg.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level: got %q, want info", cfg.Logging.Level)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "lodestone_config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.InputDir = "/srv/game/config"
	cfg.MaxDepth = 32
	cfg.Security.APIKey = "test-key"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file permissions: got %o, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.InputDir != "/srv/game/config" {
		t.Errorf("InputDir: got %q", loaded.InputDir)
	}
	if loaded.MaxDepth != 32 {
		t.Errorf("MaxDepth: got %d, want 32", loaded.MaxDepth)
	}
	if loaded.Security.APIKey != "test-key" {
		t.Errorf("APIKey: got %q", loaded.Security.APIKey)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/lodestone.yaml")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestBootstrapConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "lodestone_bootstrap_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.yaml")

	cfg, err := BootstrapConfig(path, "/srv/input")
	if err != nil {
		t.Fatalf("BootstrapConfig failed: %v", err)
	}

	if cfg.InputDir != "/srv/input" {
		t.Errorf("InputDir: got %q", cfg.InputDir)
	}
	if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
		t.Errorf("expected generated API key, got %q", cfg.Security.APIKey)
	}
	// 32 random bytes hex-encoded
	if len(cfg.Security.APIKey) != 64 {
		t.Errorf("API key length: got %d, want 64", len(cfg.Security.APIKey))
	}
	if !ConfigExists(path) {
		t.Error("bootstrap should have written the config file")
	}
}

func TestGenerateSecureKey_Unique(t *testing.T) {
	a, err := GenerateSecureKey(16)
	if err != nil {
		t.Fatalf("GenerateSecureKey failed: %v", err)
	}
	b, err := GenerateSecureKey(16)
	if err != nil {
		t.Fatalf("GenerateSecureKey failed: %v", err)
	}
	if a == b {
		t.Error("two generated keys are identical")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInitPermitDirCreatesLayout(t *testing.T) {
	dir := t.TempDir()
	if err := InitPermitDir(dir); err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, sub := range []string{"logs", "exports"} {
		info, err := os.Stat(filepath.Join(dir, PermitDir, sub))
		if err != nil || !info.IsDir() {
			t.Fatalf("missing %s directory: %v", sub, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, PermitDir, "config.yaml")); err != nil {
		t.Fatalf("missing default config: %v", err)
	}
}

func TestInitPermitDirKeepsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	if err := InitPermitDir(dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	custom := []byte("version: 1\nvalidator:\n  endpoint: https://city.example.gov/validate\n")
	path := filepath.Join(dir, PermitDir, "config.yaml")
	if err := os.WriteFile(path, custom, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := InitPermitDir(dir); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != string(custom) {
		t.Fatalf("re-init overwrote the config file")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := NewConfig(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}

	if cfg.ValidatorEndpoint() != defaultEndpoint {
		t.Fatalf("endpoint = %q", cfg.ValidatorEndpoint())
	}
	if cfg.AgentID() != defaultAgentID {
		t.Fatalf("agent id = %q", cfg.AgentID())
	}
	if cfg.SubmitTimeout() != 60*time.Second {
		t.Fatalf("timeout = %v", cfg.SubmitTimeout())
	}
	if cfg.LogPath() != filepath.Join(dir, PermitDir, "logs", "wizard.log") {
		t.Fatalf("log path = %q", cfg.LogPath())
	}
	if cfg.ExportsDir() != filepath.Join(dir, PermitDir, "exports") {
		t.Fatalf("exports dir = %q", cfg.ExportsDir())
	}
}

func TestNewConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	if err := InitPermitDir(dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	content := `version: 1
validator:
  endpoint: https://city.example.gov/validate
  agent_id: springfield-permits
  submit_timeout_seconds: 15
`
	if err := os.WriteFile(filepath.Join(dir, PermitDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := NewConfig(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.ValidatorEndpoint() != "https://city.example.gov/validate" {
		t.Fatalf("endpoint = %q", cfg.ValidatorEndpoint())
	}
	if cfg.AgentID() != "springfield-permits" {
		t.Fatalf("agent id = %q", cfg.AgentID())
	}
	if cfg.SubmitTimeout() != 15*time.Second {
		t.Fatalf("timeout = %v", cfg.SubmitTimeout())
	}
}

func TestNewConfigPartialFileGetsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := InitPermitDir(dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	content := "validator:\n  agent_id: springfield-permits\n"
	if err := os.WriteFile(filepath.Join(dir, PermitDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := NewConfig(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.ValidatorEndpoint() != defaultEndpoint {
		t.Fatalf("endpoint = %q", cfg.ValidatorEndpoint())
	}
	if cfg.SubmitTimeout() != 60*time.Second {
		t.Fatalf("timeout = %v", cfg.SubmitTimeout())
	}
}

func TestNewConfigEnvOverride(t *testing.T) {
	t.Setenv(endpointEnvVar, "http://localhost:8080/validate")
	cfg, err := NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.ValidatorEndpoint() != "http://localhost:8080/validate" {
		t.Fatalf("endpoint = %q", cfg.ValidatorEndpoint())
	}
}

func TestNewConfigRejectsBadEndpoint(t *testing.T) {
	t.Setenv(endpointEnvVar, "not a url")
	if _, err := NewConfig(t.TempDir()); err == nil {
		t.Fatalf("invalid endpoint accepted")
	}
}

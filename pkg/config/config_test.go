package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pulsecheck/pulsecheck/pkg/health"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("Backend = %q, want %q", cfg.Storage.Backend, "local")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pulsecheck.yaml")
	data := []byte(`
scoring:
  login_target: 30
  max_tickets: 20
server:
  port: "9090"
  api_key: sekrit
storage:
  backend: s3
  bucket: reports
  region: us-east-1
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scoring.LoginTarget != 30 {
		t.Errorf("LoginTarget = %d, want 30", cfg.Scoring.LoginTarget)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Server.Port, "9090")
	}
	if cfg.Storage.Bucket != "reports" {
		t.Errorf("Bucket = %q, want %q", cfg.Storage.Bucket, "reports")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("scoring: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestEngineConfigMergesOntoDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.LoginTarget = 40

	ec := cfg.EngineConfig()
	if ec.LoginTarget != 40 {
		t.Errorf("LoginTarget = %d, want 40", ec.LoginTarget)
	}
	// Untouched parameters keep engine defaults.
	def := health.DefaultConfig()
	if ec.MaxTickets != def.MaxTickets {
		t.Errorf("MaxTickets = %d, want default %d", ec.MaxTickets, def.MaxTickets)
	}
	if len(ec.Weights) != len(def.Weights) {
		t.Errorf("Weights size = %d, want %d", len(ec.Weights), len(def.Weights))
	}

	// The merged config must still satisfy the engine.
	if _, err := health.NewEngine(ec); err != nil {
		t.Errorf("NewEngine with merged config: %v", err)
	}
}

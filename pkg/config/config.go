// Package config handles loading and managing Pulsecheck configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pulsecheck/pulsecheck/pkg/health"
)

// Config is the top-level configuration for Pulsecheck.
type Config struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

// ScoringConfig overrides the scoring engine parameters. Zero values fall
// back to the engine defaults.
type ScoringConfig struct {
	LoginTarget      int                `yaml:"login_target"`
	TotalKeyFeatures int                `yaml:"total_key_features"`
	MaxTickets       int                `yaml:"max_tickets"`
	Weights          map[string]float64 `yaml:"weights"`
}

// ServerConfig controls the API daemon.
type ServerConfig struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`
	APIKey      string `yaml:"api_key"` // empty disables write auth
}

// StorageConfig selects the report archive backend.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // local | s3 | gcs
	LocalPath string `yaml:"local_path"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // S3-compatible endpoint override
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			DatabaseURL: "postgres://localhost:5432/pulsecheck?sslmode=disable",
		},
		Storage: StorageConfig{
			Backend:   "local",
			LocalPath: "/tmp/pulsecheck-reports",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// EngineConfig merges the scoring overrides onto the engine defaults.
// A weight override replaces the whole table, so partial tables (which would
// not sum to 1.0) are rejected by the engine rather than silently patched.
func (c *Config) EngineConfig() health.Config {
	ec := health.DefaultConfig()
	if c.Scoring.LoginTarget > 0 {
		ec.LoginTarget = c.Scoring.LoginTarget
	}
	if c.Scoring.TotalKeyFeatures > 0 {
		ec.TotalKeyFeatures = c.Scoring.TotalKeyFeatures
	}
	if c.Scoring.MaxTickets > 0 {
		ec.MaxTickets = c.Scoring.MaxTickets
	}
	if len(c.Scoring.Weights) > 0 {
		ec.Weights = c.Scoring.Weights
	}
	return ec
}

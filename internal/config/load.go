package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name looked up when none is given.
const DefaultConfigFile = "deployctl.yaml"

// LoadFile reads and parses the run configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg.Timeouts = LoadTimeouts()

	return &cfg, nil
}

// WriteFile renders the configuration as YAML and writes it to path.
func WriteFile(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyDefaults fills in defaults for fields the file may omit.
func (c *Config) ApplyDefaults() {
	if c.Strategy == "" {
		c.Strategy = StrategyLocalBuild
	}
	if len(c.APIs) == 0 {
		c.APIs = []string{
			"run.googleapis.com",
			"cloudbuild.googleapis.com",
			"secretmanager.googleapis.com",
			"bigquery.googleapis.com",
			"artifactregistry.googleapis.com",
		}
	}
	if c.Service.HealthPath == "" {
		c.Service.HealthPath = "/health"
	}
	if c.Service.Port == 0 {
		c.Service.Port = 8000
	}
	if c.Service.Tag == "" {
		c.Service.Tag = "latest"
	}
	if c.Build.ContextDir == "" {
		c.Build.ContextDir = "."
	}
	if c.Secret.Backend == "" {
		c.Secret.Backend = SecretBackendCloud
	}
	if c.Secret.EnvVar == "" {
		c.Secret.EnvVar = "MONGODB_URL"
	}
	if c.Warehouse.Dataset == "" {
		c.Warehouse.Dataset = "crypto_tracker"
	}
	if c.Warehouse.Table == "" {
		c.Warehouse.Table = "smart_wallets"
	}
	if len(c.Warehouse.Schema) == 0 {
		c.Warehouse.Schema = DefaultWalletSchema()
	}
	if len(c.Identity.Roles) == 0 && c.Identity.Name != "" {
		c.Identity.Roles = []string{
			"roles/secretmanager.secretAccessor",
			"roles/bigquery.dataEditor",
			"roles/bigquery.jobUser",
		}
	}
}

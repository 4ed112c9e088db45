// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"retail-analytics/internal/errors"
	"retail-analytics/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" hcl:"version,optional"`

	// Data contains data source configuration
	Data DataConfig `json:"data" hcl:"data,block"`

	// Output contains output configuration
	Output OutputConfig `json:"output" hcl:"output,block"`

	// Server contains API server configuration
	Server ServerConfig `json:"server" hcl:"server,block"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" hcl:"logging,block"`
}

// DataConfig contains data source settings
type DataConfig struct {
	// Dir is the directory holding customers/products/transactions files
	Dir string `json:"dir" hcl:"dir,optional"`

	// Format is the entity file format (csv, json)
	Format string `json:"format" hcl:"format,optional"`

	// DSN is the MySQL connection string for database-backed datasets
	DSN string `json:"dsn,omitempty" hcl:"dsn,optional"`
}

// OutputConfig contains export settings
type OutputConfig struct {
	// DefaultFormat is the default export format (csv, json, xlsx)
	DefaultFormat string `json:"default_format" hcl:"default_format,optional"`

	// Dir is the directory export files are written to
	Dir string `json:"dir" hcl:"dir,optional"`
}

// ServerConfig contains API server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" hcl:"addr,optional"`

	// MaxBodyBytes limits request body size
	MaxBodyBytes int64 `json:"max_body_bytes" hcl:"max_body_bytes,optional"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Data: DataConfig{
			Dir:    "data",
			Format: "csv",
		},
		Output: OutputConfig{
			DefaultFormat: "csv",
			Dir:           "reports",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 32 << 20,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a JSON or HCL file
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		if err := hclsimple.DecodeFile(path, nil, config); err != nil {
			return nil, errors.Config("failed to decode HCL config", err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Config("failed to read config file", err)
		}
		if err := json.Unmarshal(data, config); err != nil {
			return nil, errors.Config("failed to decode JSON config", err)
		}
	}

	return config, nil
}

// Save saves configuration to a JSON file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

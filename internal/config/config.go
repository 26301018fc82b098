// Package config provides configuration management for ipannotate.
//
// Config file locations (priority order):
//  1. $IPANNOTATE_CONFIG
//  2. ./ipannotate.yaml
//  3. $XDG_CONFIG_HOME/ipannotate/config.yaml
//  4. ~/.config/ipannotate/config.yaml
//  5. /etc/ipannotate/config.yaml
//
// Environment variables override the file, and command-line flags
// override both.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultDataFile is the annotation document loaded at startup
	DefaultDataFile = "manual.json"
	// DefaultLogLevel is used when no level is configured
	DefaultLogLevel = "info"
)

// Environment overrides
const (
	EnvDataFile = "IPANNOTATE_DATA_FILE"
	EnvLogLevel = "IPANNOTATE_LOG_LEVEL"
	EnvCityDB   = "IPANNOTATE_GEOIP_CITY_DB"
	EnvASNDB    = "IPANNOTATE_GEOIP_ASN_DB"
)

// Load finds and loads the config file, or returns defaults if none found.
// Environment overrides are applied in both cases.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnv()
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		DataFile: DefaultDataFile,
		Log:      LogConfig{Level: DefaultLogLevel},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.DataFile == "" {
		c.DataFile = DefaultDataFile
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// applyEnv overrides file values with non-empty environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataFile); v != "" {
		c.DataFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvCityDB); v != "" {
		c.GeoIP.CityDB = v
	}
	if v := os.Getenv(EnvASNDB); v != "" {
		c.GeoIP.ASNDB = v
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Data file: %s, Log level: %s", c.DataFile, c.Log.Level)
	if c.GeoIP.Enabled() {
		summary += fmt.Sprintf(", GeoIP: city=%q asn=%q", c.GeoIP.CityDB, c.GeoIP.ASNDB)
	}
	return summary
}

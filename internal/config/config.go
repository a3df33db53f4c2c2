// Package config provides configuration management.
package config

import (
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"utilfee/internal/errors"
	"utilfee/internal/logging"
)

// EnvPrefix prefixes environment overrides. Nested keys use a double
// underscore: UTILFEE_DATA__PATH=/tmp/periods.json
const EnvPrefix = "UTILFEE_"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Data contains rate table storage settings
	Data DataConfig `json:"data"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// DataConfig contains rate table storage settings
type DataConfig struct {
	// Backend is the storage backend (file, memory)
	Backend string `json:"backend"`

	// Path is the persisted rate table document
	Path string `json:"path"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ExportFile is the default export file name
	ExportFile string `json:"export_file"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataPath := filepath.Join(homeDir, ".utilfee", "periods.json")

	return &Config{
		Version: "1.0",
		Data: DataConfig{
			Backend: "file",
			Path:    dataPath,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ExportFile:    "uti_periods_rubles.json",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads a JSON or YAML file over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			parser, err := parserFor(path)
			if err != nil {
				return nil, err
			}
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, errors.Config("failed to load "+path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Config("failed to stat "+path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, errors.Config("failed to read environment overrides", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, errors.Config("failed to decode configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Data.Backend {
	case "file", "memory":
	default:
		return errors.Newf(errors.TypeConfig, "unsupported data backend: %s", c.Data.Backend)
	}
	switch c.Output.DefaultFormat {
	case "cli", "json":
	default:
		return errors.Newf(errors.TypeConfig, "unsupported output format: %s", c.Output.DefaultFormat)
	}
	if c.Data.Backend == "file" && c.Data.Path == "" {
		return errors.Config("data.path is required for the file backend", nil)
	}
	return nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return kjson.Parser(), nil
	default:
		return nil, errors.Newf(errors.TypeConfig, "unsupported config format: %s", filepath.Ext(path))
	}
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

// Package config handles configuration loading and validation for axbridge.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Config holds the complete process configuration.
type Config struct {
	Bridge  BridgeConfig  `toml:"bridge"  json:"bridge"  yaml:"bridge"`
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
	Metrics MetricsConfig `toml:"metrics" json:"metrics" yaml:"metrics"`
	Serve   ServeConfig   `toml:"serve"   json:"serve"   yaml:"serve"`
}

// BridgeConfig configures the bridge itself.
type BridgeConfig struct {
	// FullFocusMode makes every readable node a focus target.
	FullFocusMode bool `toml:"full_focus_mode" json:"full_focus_mode" yaml:"full_focus_mode"`

	// TreeID fixes the tree id. Empty mints a fresh ULID per bridge.
	TreeID string `toml:"tree_id" json:"tree_id" yaml:"tree_id"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is json or console.
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is stderr, stdout or a file path.
	Output string `toml:"output" json:"output" yaml:"output"`
}

// MetricsConfig holds prometheus configuration.
type MetricsConfig struct {
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`

	// Addr is the listen address of the /metrics endpoint.
	Addr string `toml:"addr" json:"addr" yaml:"addr"`
}

// ServeConfig holds MCP server configuration.
type ServeConfig struct {
	// Transport is stdio or http.
	Transport string `toml:"transport" json:"transport" yaml:"transport"`

	// Port is the HTTP listen port when Transport is http.
	Port int `toml:"port" json:"port" yaml:"port"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9464",
		},
		Serve: ServeConfig{
			Transport: "stdio",
			Port:      8765,
		},
	}
}

// Load reads a TOML file over the defaults and validates the result. An
// empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}
	return cfg, nil
}

// Decode parses TOML into cfg, rejecting unknown keys.
func Decode(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Newf("unknown key %q", undecoded[0].String())
	}
	return nil
}

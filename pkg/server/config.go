package server

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// Config is the HTTP server configuration, loadable from a YAML file with
// flag overrides applied by the CLI.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// MaxUploadBytes caps the accepted upload size.
	MaxUploadBytes int64 `yaml:"maxUploadBytes"`

	// DefaultDialect is used when a request omits the dialect form value.
	DefaultDialect string `yaml:"defaultDialect"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		MaxUploadBytes: 16 << 20,
		DefaultDialect: "outline",
	}
}

// LoadConfig reads a YAML config file over the defaults. Unset keys keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

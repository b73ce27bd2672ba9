package bridge

import (
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/viewbridge/pkg/errors"
)

// Config represents the optional viewbridge.yaml configuration.
type Config struct {
	Protocol ProtocolConfig `yaml:"protocol"`
	Log      LogConfig      `yaml:"log"`
}

// ProtocolConfig controls the runtime handshake.
type ProtocolConfig struct {
	// MinVersion is the lowest runtime protocol version Attach accepts.
	// Defaults to ProtocolVersion when empty.
	MinVersion string `yaml:"min_version,omitempty"`
}

// LogConfig controls error logging.
type LogConfig struct {
	// Verbose enables stack traces in the default error handler.
	Verbose bool `yaml:"verbose,omitempty"`
}

// LoadOptional reads viewbridge.yaml from dir if present. A missing file
// yields the zero config, not an error.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "viewbridge.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if goerrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read viewbridge.yaml: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse viewbridge.yaml: %w", err)
	}
	return &cfg, nil
}

// Apply installs config-driven process defaults: currently the verbosity
// of the global error handler.
func (c *Config) Apply() {
	errors.SetHandler(&errors.LogHandler{Verbose: c.Log.Verbose})
}

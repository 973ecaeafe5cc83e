package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".webdetect"

// xdgConfigFile is the file name looked up inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .webdetect configuration file.
type File struct {
	// Credentials is the path to a service account JSON key.
	Credentials string `yaml:"credentials,omitempty"`

	// APIKey is a Google API key.
	APIKey string `yaml:"api_key,omitempty"`

	// Endpoint overrides the Cloud Vision endpoint.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Listen is the HTTP server listen address.
	Listen string `yaml:"listen,omitempty"`

	// ReadHeaderTimeout is the HTTP read header timeout, e.g. "10s".
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout,omitempty"`

	// ShutdownTimeout is the graceful shutdown timeout, e.g. "30s".
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// LoadConfigFile loads the configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .webdetect in the current directory
// 3. Look for .webdetect in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

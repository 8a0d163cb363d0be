package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load builds the env-based config and overlays the YAML file at path on top.
// Keys missing from the file keep their env/default values. An empty path
// falls back to CONFIG_FILE, and no file at all is not an error.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

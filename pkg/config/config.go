package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all cushare configuration.
type Config struct {
	LogPaths   []string `yaml:"log_paths"`
	Timezone   string   `yaml:"timezone"`
	Project    string   `yaml:"project"`
	TokenLimit int64    `yaml:"token_limit"`
}

// Default returns a Config with sensible defaults. Empty LogPaths means the
// usual Claude config directories are discovered at run time, and a zero
// TokenLimit means the limit is auto-detected from observed session blocks.
func Default() *Config {
	return &Config{}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

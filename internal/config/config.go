package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/menta2k/gvision"
	"github.com/menta2k/gvision/pkg/codec"
)

// Config holds the application configuration
type Config struct {
	Vision gvision.Config `yaml:"vision"`
	Output OutputConfig   `yaml:"output"`
}

// OutputConfig holds configuration for overlay files written by the CLI
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
	Format string `yaml:"format"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Vision: gvision.DefaultConfig(),
		Output: OutputConfig{
			Dir:    "./output",
			Prefix: "",
			Suffix: "_bounds",
			Format: "",
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// ApplyEnv overrides configuration with environment variables if present
func (c *Config) ApplyEnv() error {
	if creds := os.Getenv("GOOGLE_VISION_CREDENTIALS"); creds != "" {
		c.Vision.Credentials = creds
	}
	if endpoint := os.Getenv("GOOGLE_VISION_ENDPOINT"); endpoint != "" {
		c.Vision.Endpoint = endpoint
	}
	if max := os.Getenv("GOOGLE_VISION_MAX_RESULTS"); max != "" {
		n, err := strconv.Atoi(max)
		if err != nil {
			return fmt.Errorf("GOOGLE_VISION_MAX_RESULTS: %w", err)
		}
		c.Vision.MaxResults = n
	}
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Vision.Validate(); err != nil {
		return err
	}

	if c.Output.Format != "" && !codec.Supported(c.Output.Format) {
		return fmt.Errorf("output.format %q is not a supported image format", c.Output.Format)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}
	return filepath.Join(home, ".config", "gvision", "config.yaml")
}

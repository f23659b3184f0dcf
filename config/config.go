// Package config provides configuration loading for checklistml.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete checklistml configuration.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Schema SchemaConfig `yaml:"schema"`
	Watch  WatchConfig  `yaml:"watch"`
}

// InputConfig configures where checklist XML files are read from.
type InputConfig struct {
	// Dir is the directory scanned for *.xml files when no explicit
	// input files are given.
	Dir string `yaml:"dir"`
}

// OutputConfig configures where generated schemas are written.
type OutputConfig struct {
	// Dir is the destination directory for <accession>.yaml files.
	Dir string `yaml:"dir"`
}

// SchemaConfig configures the generated schema metadata.
type SchemaConfig struct {
	// BaseURI prefixes each schema id (id = base URI + "/" + accession).
	BaseURI string `yaml:"base_uri"`

	// Version is the emitted schema version string.
	Version string `yaml:"version"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// DebounceDelay is how long to wait for further changes before
	// reconverting (e.g. "500ms").
	DebounceDelay string `yaml:"debounce_delay"`
}

// GetDebounceDelay returns the debounce delay as a duration, falling
// back to 500ms for empty or unparseable values.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// DefaultConfig returns a Config with the standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Dir: "assets/ena_schema",
		},
		Output: OutputConfig{
			Dir: "schemas",
		},
		Schema: SchemaConfig{
			BaseURI: "https://github.com/timrozday/ena-submission-dataharmonizer",
			Version: "1.0.0",
		},
		Watch: WatchConfig{
			DebounceDelay: "500ms",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Input.Dir == "" {
		return fmt.Errorf("input.dir is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Schema.BaseURI == "" {
		return fmt.Errorf("schema.base_uri is required")
	}
	if !strings.Contains(c.Schema.BaseURI, "://") {
		return fmt.Errorf("schema.base_uri must be an absolute URI")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, applied on top of
// the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Merge merges another config into this one (other takes precedence
// for non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Input.Dir != "" {
		c.Input.Dir = other.Input.Dir
	}
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Schema.BaseURI != "" {
		c.Schema.BaseURI = other.Schema.BaseURI
	}
	if other.Schema.Version != "" {
		c.Schema.Version = other.Schema.Version
	}
	if other.Watch.DebounceDelay != "" {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
}

// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"github.com/user/jxlpack/pkg/encoder"
	"github.com/user/jxlpack/pkg/orchestrator"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for jxlpack.
type Config struct {
	// Quality
	Distance *float64 `yaml:"distance"`
	Effort   string   `yaml:"effort"`

	// Encoding modes
	Progressive   int  `yaml:"progressive"`
	Modular       bool `yaml:"modular"`
	FromPixels    bool `yaml:"from_pixels"`
	DecodingSpeed int  `yaml:"decoding_speed"`

	// Verification
	Verify bool `yaml:"verify"`

	// Runtime
	Workers    int `yaml:"workers"`
	PullBuffer int `yaml:"pull_buffer"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Effort:     encoder.Squirrel.String(),
		PullBuffer: 64 * 1024,
		LogLevel:   "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config. The effort
// name is parsed here so invalid values surface before any encoding starts.
func (c Config) ToOrchestratorConfig() (orchestrator.Config, error) {
	effort, err := encoder.ParseEffort(c.Effort)
	if err != nil {
		return orchestrator.Config{}, fmt.Errorf("config: %w", err)
	}
	if c.Progressive < 0 || c.Progressive > 4 {
		return orchestrator.Config{}, fmt.Errorf("config: progressive level %d out of range 0..4", c.Progressive)
	}

	return orchestrator.Config{
		Distance:       c.Distance,
		Effort:         effort,
		Progressive:    c.Progressive,
		Modular:        c.Modular,
		FromPixels:     c.FromPixels,
		DecodingSpeed:  c.DecodingSpeed,
		Verify:         c.Verify,
		PullBufferSize: c.PullBuffer,
	}, nil
}

// Package config loads the tool's configuration from an optional YAML file,
// a .env file, and environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all company-intel configuration.
type Config struct {
	// Gemini API settings
	Gemini GeminiConfig `yaml:"gemini"`

	// Research behavior
	Research ResearchConfig `yaml:"research"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// GeminiConfig configures the Gemini client.
type GeminiConfig struct {
	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	BaseURL         string  `yaml:"base_url"`
	Timeout         string  `yaml:"timeout"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature"`
}

// ResearchConfig configures pipeline behavior.
type ResearchConfig struct {
	// Relevance threshold for deep-analysis source selection (0-100)
	RelevanceThreshold int `yaml:"relevance_threshold"`

	// Run the acquirer follow-up when an acquisition is detected
	IncludeAcquirer bool `yaml:"include_acquirer"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model:           "gemini-2.0-flash",
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			Timeout:         "120s",
			MaxOutputTokens: 8192,
			Temperature:     0.2,
		},
		Research: ResearchConfig{
			RelevanceThreshold: 80,
			IncludeAcquirer:    true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment variables (after a best-effort .env load) override file values.
func Load(path string) (*Config, error) {
	// Values already exported in the environment win over .env entries.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
	if model := os.Getenv("INTEL_GEMINI_MODEL"); model != "" {
		c.Gemini.Model = model
	}
	if url := os.Getenv("INTEL_GEMINI_BASE_URL"); url != "" {
		c.Gemini.BaseURL = url
	}
	if level := os.Getenv("INTEL_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// GeminiTimeout parses the configured Gemini timeout, falling back to two
// minutes on a bad or empty value.
func (c *Config) GeminiTimeout() time.Duration {
	d, err := time.ParseDuration(c.Gemini.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// Validate checks settings a run cannot proceed without.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini api key is required (set GEMINI_API_KEY)")
	}
	if c.Research.RelevanceThreshold < 0 || c.Research.RelevanceThreshold > 100 {
		return fmt.Errorf("relevance_threshold must be 0-100, got %d", c.Research.RelevanceThreshold)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is consulted when no --config flag is given; a missing file
// at this path is not an error.
const DefaultPath = "pptcheck.toml"

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type AnalysisConfig struct {
	// BatchSize is the number of consecutive slides sent per model call.
	BatchSize int `toml:"batch_size"`
	// PaceMs is the minimum interval between model calls, in milliseconds.
	PaceMs int `toml:"pace_ms"`
	// OCR enables text recovery from embedded slide images.
	OCR bool `toml:"ocr"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Analysis AnalysisConfig `toml:"analysis"`
	Server   ServerConfig   `toml:"server"`
}

func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash-exp",
		},
		Analysis: AnalysisConfig{
			BatchSize: 6,
			PaceMs:    1000,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides config values from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if c.LLM.APIKey == "" {
		if v := os.Getenv("GEMINI_API_KEY"); v != "" {
			c.LLM.APIKey = v
		}
	}
}

func (c *Config) Validate() error {
	if c.Analysis.BatchSize < 1 {
		return fmt.Errorf("batch_size must be a positive integer, got %d", c.Analysis.BatchSize)
	}
	if c.Analysis.PaceMs < 0 {
		return fmt.Errorf("pace_ms must not be negative, got %d", c.Analysis.PaceMs)
	}
	return nil
}

// Pace returns the inter-call pacing delay.
func (c *Config) Pace() time.Duration {
	return time.Duration(c.Analysis.PaceMs) * time.Millisecond
}

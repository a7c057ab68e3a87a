package inference

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config selects the provider endpoint, credentials, and per-stage models.
type Config struct {
	BaseURL          string `toml:"base_url"`
	APIKey           string `toml:"api_key"`
	APIVersion       string `toml:"api_version"`
	ClassifyModel    string `toml:"classify_model"`
	ExtractModel     string `toml:"extract_model"`
	MaxTokens        int    `toml:"max_tokens"`
	ExtractMaxTokens int    `toml:"extract_max_tokens"`
	Timeout          string `toml:"timeout"`
}

// Env maps config fields to environment variable names. FallbackAPIKey is
// consulted only when APIKey resolves to nothing.
type Env struct {
	BaseURL          string
	APIKey           string
	FallbackAPIKey   string
	APIVersion       string
	ClassifyModel    string
	ExtractModel     string
	MaxTokens        string
	ExtractMaxTokens string
	Timeout          string
}

func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
// A missing API key is not an error: requests may carry their own key.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.APIVersion != "" {
		c.APIVersion = overlay.APIVersion
	}
	if overlay.ClassifyModel != "" {
		c.ClassifyModel = overlay.ClassifyModel
	}
	if overlay.ExtractModel != "" {
		c.ExtractModel = overlay.ExtractModel
	}
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
	if overlay.ExtractMaxTokens != 0 {
		c.ExtractMaxTokens = overlay.ExtractMaxTokens
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.anthropic.com"
	}
	if c.APIVersion == "" {
		c.APIVersion = "2023-06-01"
	}
	if c.ClassifyModel == "" {
		c.ClassifyModel = "claude-haiku-4-5-20251001"
	}
	if c.ExtractModel == "" {
		c.ExtractModel = "claude-sonnet-4-5-20250929"
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 4096
	}
	if c.ExtractMaxTokens == 0 {
		c.ExtractMaxTokens = 16000
	}
	if c.Timeout == "" {
		c.Timeout = "5m"
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(dst *string, key string) {
		if key == "" {
			return
		}
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if key == "" {
			return
		}
		if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
			*dst = n
		}
	}

	set(&c.BaseURL, env.BaseURL)
	set(&c.APIKey, env.APIKey)
	if c.APIKey == "" {
		set(&c.APIKey, env.FallbackAPIKey)
	}
	set(&c.APIVersion, env.APIVersion)
	set(&c.ClassifyModel, env.ClassifyModel)
	set(&c.ExtractModel, env.ExtractModel)
	setInt(&c.MaxTokens, env.MaxTokens)
	setInt(&c.ExtractMaxTokens, env.ExtractMaxTokens)
	set(&c.Timeout, env.Timeout)
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q", c.BaseURL)
	}
	if c.MaxTokens < 1 || c.ExtractMaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
